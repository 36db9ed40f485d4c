// Package catalog holds the static lesson content: the science modules, their
// lecture scripts and their quiz banks.
package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ModuleID identifies one selectable science topic.
type ModuleID string

const (
	Atom             ModuleID = "ATOM"
	NewtonLaws       ModuleID = "NEWTON_LAWS"
	SolarSystem      ModuleID = "SOLAR_SYSTEM"
	MolecularBonding ModuleID = "MOLECULAR_BONDING"
	DNAStructure     ModuleID = "DNA_STRUCTURE"
	Magnetism        ModuleID = "MAGNETISM"
	Photosynthesis   ModuleID = "PHOTOSYNTHESIS"
	SoundWaves       ModuleID = "SOUND_WAVES"
	Animalia         ModuleID = "ANIMALIA"
	Plantae          ModuleID = "PLANTAE"
)

// AllIDs lists every known module identifier in display order.
var AllIDs = []ModuleID{
	Atom, NewtonLaws, SolarSystem, MolecularBonding, DNAStructure,
	Magnetism, Photosynthesis, SoundWaves, Animalia, Plantae,
}

// Known reports whether id is one of the enumerated module identifiers.
func (id ModuleID) Known() bool {
	for _, k := range AllIDs {
		if k == id {
			return true
		}
	}
	return false
}

var (
	ErrUnknownModule  = errors.New("unknown module")
	ErrInvalidContent = errors.New("invalid content")
)

// Question is one multiple-choice quiz item.
type Question struct {
	Prompt  string   `yaml:"question"`
	Options []string `yaml:"options"`
	Correct int      `yaml:"correct"`
}

// Module is the display and teaching content for one topic.
type Module struct {
	ID          ModuleID   `yaml:"id"`
	Title       string     `yaml:"title"`
	Description string     `yaml:"description"`
	Lecture     string     `yaml:"lecture"`
	Color       string     `yaml:"color"`
	Quiz        []Question `yaml:"quiz"`
}

// MaxOptions is the most answers a question may offer; the quiz binds keys 1-4.
const MaxOptions = 4

// Validate checks that the module can drive a lesson.
func (m Module) Validate() error {
	if !m.ID.Known() {
		return fmt.Errorf("%w: module id %q", ErrInvalidContent, m.ID)
	}
	if strings.TrimSpace(m.Title) == "" {
		return fmt.Errorf("%w: module %s has no title", ErrInvalidContent, m.ID)
	}
	if strings.TrimSpace(m.Lecture) == "" {
		return fmt.Errorf("%w: module %s has no lecture", ErrInvalidContent, m.ID)
	}
	if len(m.Quiz) == 0 {
		return fmt.Errorf("%w: module %s has no quiz", ErrInvalidContent, m.ID)
	}
	for i, q := range m.Quiz {
		if len(q.Options) < 2 {
			return fmt.Errorf("%w: module %s question %d needs at least two options", ErrInvalidContent, m.ID, i)
		}
		if len(q.Options) > MaxOptions {
			return fmt.Errorf("%w: module %s question %d has more than %d options", ErrInvalidContent, m.ID, i, MaxOptions)
		}
		if q.Correct < 0 || q.Correct >= len(q.Options) {
			return fmt.Errorf("%w: module %s question %d correct index %d out of range", ErrInvalidContent, m.ID, i, q.Correct)
		}
	}
	return nil
}

// Catalog is an ordered, read-only set of modules.
type Catalog struct {
	modules []Module
	index   map[ModuleID]int
}

// New validates modules and builds a catalog preserving their order.
func New(modules []Module) (*Catalog, error) {
	if len(modules) == 0 {
		return nil, fmt.Errorf("%w: empty catalog", ErrInvalidContent)
	}
	c := &Catalog{
		modules: make([]Module, 0, len(modules)),
		index:   make(map[ModuleID]int, len(modules)),
	}
	for _, m := range modules {
		if err := m.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.index[m.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate module %s", ErrInvalidContent, m.ID)
		}
		c.index[m.ID] = len(c.modules)
		c.modules = append(c.modules, m)
	}
	return c, nil
}

// Get returns the module for id.
func (c *Catalog) Get(id ModuleID) (Module, error) {
	i, ok := c.index[id]
	if !ok {
		return Module{}, fmt.Errorf("%w: %s", ErrUnknownModule, id)
	}
	return c.modules[i], nil
}

// Has reports whether id is present in the catalog.
func (c *Catalog) Has(id ModuleID) bool {
	_, ok := c.index[id]
	return ok
}

// Modules returns a copy of the modules in display order.
func (c *Catalog) Modules() []Module {
	out := make([]Module, len(c.modules))
	copy(out, c.modules)
	return out
}

// IDs returns the module identifiers in display order.
func (c *Catalog) IDs() []ModuleID {
	ids := make([]ModuleID, len(c.modules))
	for i, m := range c.modules {
		ids[i] = m.ID
	}
	return ids
}

// Len is the number of modules.
func (c *Catalog) Len() int { return len(c.modules) }

// Index returns the display position of id, or -1.
func (c *Catalog) Index(id ModuleID) int {
	i, ok := c.index[id]
	if !ok {
		return -1
	}
	return i
}

// First returns the first module in display order.
func (c *Catalog) First() Module { return c.modules[0] }
