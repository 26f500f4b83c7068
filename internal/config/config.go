package config

import (
	"fmt"
	"strings"
)

// Scope is a custom variable scope code.
type Scope int

// Custom variable scopes.
const (
	ScopeVisitor Scope = 1
	ScopeSession Scope = 2
	ScopePage    Scope = 3
)

// MaxVariableSlot is the highest custom variable slot.
const MaxVariableSlot = 5

var scopeNames = map[string]Scope{
	"visitor": ScopeVisitor,
	"session": ScopeSession,
	"page":    ScopePage,
}

// ParseScope resolves a scope name (visitor, session or page).
func ParseScope(s string) (Scope, error) {
	if sc, ok := scopeNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return sc, nil
	}
	return 0, fmt.Errorf("unknown scope %q", s)
}

// Valid reports whether sc is one of the three scope codes.
func (sc Scope) Valid() bool {
	return sc >= ScopeVisitor && sc <= ScopePage
}

// Tracker configures one tracker namespace. The default tracker has an
// empty Name.
type Tracker struct {
	Name          string
	WebPropertyID string
	TrackPageview Gate
}

// Variable declares a custom variable slot.
type Variable struct {
	Name  string
	Slot  int
	Scope Scope
}

// Config holds analytics settings.
type Config struct {
	// WebPropertyID is the account of the default tracker.
	WebPropertyID string

	// TrackPageview gates the automatic pageview of the default tracker.
	TrackPageview Gate

	// AnonymizeIP gates the anonymize_ip command.
	AnonymizeIP Gate

	// RenderGAJS gates emission of the loader snippet.
	RenderGAJS Gate

	// Trackers are the additional named trackers, in declaration order.
	Trackers []Tracker

	// Variables are the declared custom variables, in declaration order.
	Variables []Variable
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		TrackPageview: Bool(true),
		AnonymizeIP:   Bool(false),
		RenderGAJS:    Envs("production"),
	}
}

// AllTrackers returns the default tracker followed by the named trackers.
func (c *Config) AllTrackers() []Tracker {
	out := make([]Tracker, 0, len(c.Trackers)+1)
	out = append(out, Tracker{WebPropertyID: c.WebPropertyID, TrackPageview: c.TrackPageview})
	return append(out, c.Trackers...)
}

// Tracker looks up a tracker by name; "" is the default tracker.
func (c *Config) Tracker(name string) (Tracker, bool) {
	for _, t := range c.AllTrackers() {
		if t.Name == name {
			return t, true
		}
	}
	return Tracker{}, false
}

// Variable looks up a custom variable by name.
func (c *Config) Variable(name string) (Variable, bool) {
	for _, v := range c.Variables {
		if v.Name == name {
			return v, true
		}
	}
	return Variable{}, false
}

// Validate checks tracker and variable declarations.
//
// Tracker names must be non-empty and unique. Variables need a non-empty
// unique name, a unique slot in 1..MaxVariableSlot and a known scope.
func (c *Config) Validate() error {
	trackers := make(map[string]bool, len(c.Trackers))
	for i, t := range c.Trackers {
		field := fmt.Sprintf("trackers[%d].name", i)
		if strings.TrimSpace(t.Name) == "" {
			return trackerError(field, "tracker name is required")
		}
		if trackers[t.Name] {
			return trackerError(field, "tracker %q declared twice", t.Name)
		}
		trackers[t.Name] = true
	}

	names := make(map[string]bool, len(c.Variables))
	slots := make(map[int]string, len(c.Variables))
	for i, v := range c.Variables {
		field := fmt.Sprintf("variables[%d]", i)
		if strings.TrimSpace(v.Name) == "" {
			return variableError(field+".name", "variable name is required")
		}
		if names[v.Name] {
			return variableError(field+".name", "variable %q declared twice", v.Name)
		}
		if v.Slot < 1 || v.Slot > MaxVariableSlot {
			return variableError(field+".slot", "slot %d out of range 1..%d", v.Slot, MaxVariableSlot)
		}
		if owner, taken := slots[v.Slot]; taken {
			return variableError(field+".slot", "slot %d already taken by %q", v.Slot, owner)
		}
		if !v.Scope.Valid() {
			return variableError(field+".scope", "unknown scope %d", int(v.Scope))
		}
		names[v.Name] = true
		slots[v.Slot] = v.Name
	}
	return nil
}

// ApplyEnv overlays environment overrides onto c.
func (c *Config) ApplyEnv(e Env) {
	if e.WebPropertyID != "" {
		c.WebPropertyID = e.WebPropertyID
	}
}
