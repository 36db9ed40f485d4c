package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jwulff/holodeck/internal/db"
)

// contentPack is the YAML document layout for custom content.
type contentPack struct {
	Modules []Module `yaml:"modules"`
}

// LoadFile loads a content pack, choosing the format by file extension.
// An empty path yields the builtin catalog.
func LoadFile(path string) (*Catalog, error) {
	if path == "" {
		return Builtin(), nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read content pack: %w", err)
		}
		return ParseYAML(data)
	case ".db", ".sqlite", ".sqlite3":
		store, err := db.Open(path)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		return FromStore(store)
	default:
		return nil, fmt.Errorf("%w: unsupported content pack %q", ErrInvalidContent, path)
	}
}

// ParseYAML decodes a YAML content pack.
func ParseYAML(data []byte) (*Catalog, error) {
	var pack contentPack
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return nil, fmt.Errorf("%w: decode yaml: %v", ErrInvalidContent, err)
	}
	return New(pack.Modules)
}

// EncodeYAML encodes the catalog in the content pack layout.
func (c *Catalog) EncodeYAML() ([]byte, error) {
	return yaml.Marshal(contentPack{Modules: c.Modules()})
}

// ModuleSource is the read side of a SQLite content pack.
type ModuleSource interface {
	Modules() ([]db.ModuleRow, error)
	QuestionsForModule(moduleID string) ([]db.QuestionRow, error)
}

// FromStore reads every module and its quiz from a content pack store.
func FromStore(src ModuleSource) (*Catalog, error) {
	rows, err := src.Modules()
	if err != nil {
		return nil, fmt.Errorf("load modules: %w", err)
	}

	modules := make([]Module, 0, len(rows))
	for _, r := range rows {
		qs, err := src.QuestionsForModule(r.ID)
		if err != nil {
			return nil, fmt.Errorf("load quiz for %s: %w", r.ID, err)
		}
		m := Module{
			ID:          ModuleID(r.ID),
			Title:       r.Title,
			Description: r.Description,
			Lecture:     r.Lecture,
			Color:       r.Color,
		}
		for _, q := range qs {
			m.Quiz = append(m.Quiz, Question{Prompt: q.Prompt, Options: q.Options, Correct: q.Correct})
		}
		modules = append(modules, m)
	}
	return New(modules)
}
