// Package daemon provides the client and protocol types for talking to a
// local speech synthesis daemon over a Unix socket using NDJSON.
package daemon

// Command names understood by the daemon.
const (
	CmdSynthesize = "synthesize"
	CmdStatus     = "status"
	CmdVoices     = "voices"
)

// Command is sent from a client to the daemon.
type Command struct {
	Cmd    string   `json:"cmd"`
	Text   string   `json:"text,omitempty"`
	Voice  string   `json:"voice,omitempty"`
	Speed  *float64 `json:"speed,omitempty"`
	Format string   `json:"format,omitempty"`
}

// Response is returned by the daemon after processing a command.
// Audio is base64 on the wire.
type Response struct {
	OK         bool     `json:"ok"`
	Error      string   `json:"error,omitempty"`
	Audio      []byte   `json:"audio,omitempty"`
	Format     string   `json:"format,omitempty"`
	SampleRate int      `json:"sampleRate,omitempty"`
	Voices     []string `json:"voices,omitempty"`
	Status     string   `json:"status,omitempty"`
}

// Float64Ptr returns a pointer to a float64 value. Convenience for building commands.
func Float64Ptr(f float64) *float64 { return &f }
