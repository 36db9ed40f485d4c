package narration

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"

	"github.com/jwulff/holodeck/internal/db"
)

// Store is the persistence the narration cache needs.
type Store interface {
	Get(key string) (*db.Narration, error)
	Put(n db.Narration) error
}

// Fingerprinter is implemented by providers whose audio depends on more than
// their name, such as the synthesis model.
type Fingerprinter interface {
	Fingerprint() string
}

// providerIdentity names p for cache keys.
func providerIdentity(p Provider) string {
	if f, ok := p.(Fingerprinter); ok {
		return f.Fingerprint()
	}
	return p.Name()
}

// CacheKey fingerprints a synthesis request.
func CacheKey(provider, voice string, speed float64, text string) string {
	h := sha256.New()
	for _, part := range []string{provider, voice, strconv.FormatFloat(speed, 'g', -1, 64), text} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

func speechFromRow(n *db.Narration) *Speech {
	return &Speech{
		Audio:      n.Audio,
		Format:     n.Format,
		SampleRate: n.SampleRate,
		Voice:      n.Voice,
		Provider:   n.Provider,
	}
}

func rowFromSpeech(key string, s *Speech) db.Narration {
	return db.Narration{
		Key:        key,
		Provider:   s.Provider,
		Voice:      s.Voice,
		Format:     s.Format,
		SampleRate: s.SampleRate,
		Audio:      s.Audio,
	}
}
