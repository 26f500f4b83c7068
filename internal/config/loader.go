package config

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed schema.cue
var schemaSrc string

// Load reads and validates a CUE configuration file.
func Load(path string) (*Config, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(path, src)
}

// Parse compiles src, unifies it with the closed configuration schema and
// decodes the result. Unset settings keep their Default values.
func Parse(filename string, src []byte) (*Config, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString("close({"+schemaSrc+"})", cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}

	value := ctx.CompileBytes(src, cue.Filename(filename))
	if err := value.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	if err := schema.Unify(value).Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err)
	}

	cfg, err := decode(value)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(v cue.Value) (*Config, error) {
	cfg := Default()
	var err error

	if cfg.WebPropertyID, err = optionalString(v, "web_property_id", cfg.WebPropertyID); err != nil {
		return nil, err
	}
	if cfg.TrackPageview, err = optionalGate(v, "track_pageview", cfg.TrackPageview); err != nil {
		return nil, err
	}
	if cfg.AnonymizeIP, err = optionalGate(v, "anonymize_ip", cfg.AnonymizeIP); err != nil {
		return nil, err
	}
	if cfg.RenderGAJS, err = optionalGate(v, "render_ga_js", cfg.RenderGAJS); err != nil {
		return nil, err
	}

	if err := eachElement(v, "trackers", func(i int, tv cue.Value) error {
		t, err := decodeTracker(tv)
		if err != nil {
			return err
		}
		cfg.Trackers = append(cfg.Trackers, t)
		return nil
	}); err != nil {
		return nil, err
	}

	if err := eachElement(v, "variables", func(i int, vv cue.Value) error {
		variable, err := decodeVariable(i, vv)
		if err != nil {
			return err
		}
		cfg.Variables = append(cfg.Variables, variable)
		return nil
	}); err != nil {
		return nil, err
	}

	return cfg, nil
}

func decodeTracker(v cue.Value) (Tracker, error) {
	t := Tracker{TrackPageview: Bool(true)}
	var err error
	if t.Name, err = optionalString(v, "name", ""); err != nil {
		return Tracker{}, err
	}
	if t.WebPropertyID, err = optionalString(v, "web_property_id", ""); err != nil {
		return Tracker{}, err
	}
	if t.TrackPageview, err = optionalGate(v, "track_pageview", t.TrackPageview); err != nil {
		return Tracker{}, err
	}
	return t, nil
}

func decodeVariable(i int, v cue.Value) (Variable, error) {
	variable := Variable{Scope: ScopePage}
	var err error
	if variable.Name, err = optionalString(v, "name", ""); err != nil {
		return Variable{}, err
	}

	slot := v.LookupPath(cue.ParsePath("slot"))
	if slot.Exists() {
		n, err := slot.Int64()
		if err != nil {
			return Variable{}, formatCUEError(err)
		}
		variable.Slot = int(n)
	}

	scope := v.LookupPath(cue.ParsePath("scope"))
	if !scope.Exists() {
		return variable, nil
	}
	field := fmt.Sprintf("variables[%d].scope", i)
	switch scope.Kind() {
	case cue.StringKind:
		s, err := scope.String()
		if err != nil {
			return Variable{}, formatCUEError(err)
		}
		if variable.Scope, err = ParseScope(s); err != nil {
			e := variableError(field, "%v", err)
			e.Pos = scope.Pos()
			return Variable{}, e
		}
	case cue.IntKind:
		n, err := scope.Int64()
		if err != nil {
			return Variable{}, formatCUEError(err)
		}
		variable.Scope = Scope(n)
	default:
		e := variableError(field, "scope must be a name or a number")
		e.Pos = scope.Pos()
		return Variable{}, e
	}
	return variable, nil
}

func optionalString(v cue.Value, path, def string) (string, error) {
	f := v.LookupPath(cue.ParsePath(path))
	if !f.Exists() {
		return def, nil
	}
	s, err := f.String()
	if err != nil {
		return "", formatCUEError(err)
	}
	return s, nil
}

func optionalGate(v cue.Value, path string, def Gate) (Gate, error) {
	f := v.LookupPath(cue.ParsePath(path))
	if !f.Exists() {
		return def, nil
	}

	switch f.Kind() {
	case cue.BoolKind:
		b, err := f.Bool()
		if err != nil {
			return Gate{}, formatCUEError(err)
		}
		return Bool(b), nil
	case cue.StringKind:
		s, err := f.String()
		if err != nil {
			return Gate{}, formatCUEError(err)
		}
		return Envs(s), nil
	case cue.ListKind:
		var envs []string
		if err := f.Decode(&envs); err != nil {
			return Gate{}, formatCUEError(err)
		}
		return Envs(envs...), nil
	}
	return Gate{}, &Error{Kind: ErrSchema, Field: path, Message: "gate must be a bool, a string or a list of strings", Pos: f.Pos()}
}

func eachElement(v cue.Value, path string, fn func(int, cue.Value) error) error {
	list := v.LookupPath(cue.ParsePath(path))
	if !list.Exists() {
		return nil
	}
	iter, err := list.List()
	if err != nil {
		return formatCUEError(err)
	}
	for i := 0; iter.Next(); i++ {
		if err := fn(i, iter.Value()); err != nil {
			return err
		}
	}
	return nil
}
