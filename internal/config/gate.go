package config

import (
	"fmt"
	"slices"
	"strings"
)

// Gate is a setting that is on, off, or on only in some environments.
//
// The zero Gate is off.
type Gate struct {
	on    bool
	byEnv bool
	envs  []string
}

// Bool returns a Gate fixed to b.
func Bool(b bool) Gate {
	return Gate{on: b}
}

// Envs returns a Gate that is on only in the named environments.
func Envs(envs ...string) Gate {
	return Gate{byEnv: true, envs: slices.Clone(envs)}
}

// Enabled evaluates the gate for env.
func (g Gate) Enabled(env string) bool {
	if !g.byEnv {
		return g.on
	}
	return slices.Contains(g.envs, env)
}

// String renders the gate the way it is written in configuration.
func (g Gate) String() string {
	if !g.byEnv {
		return fmt.Sprint(g.on)
	}
	if len(g.envs) == 1 {
		return fmt.Sprintf("%q", g.envs[0])
	}
	quoted := make([]string, len(g.envs))
	for i, e := range g.envs {
		quoted[i] = fmt.Sprintf("%q", e)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
