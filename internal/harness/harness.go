package harness

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/gaq/internal/config"
	"github.com/roach88/gaq/internal/ir"
	"github.com/roach88/gaq/internal/language"
	"github.com/roach88/gaq/internal/session"
	"github.com/roach88/gaq/internal/tracking"
)

// Harness runs scenarios against the built-in vocabulary over an in-memory
// flash.
type Harness struct {
	reg    *language.Registry
	cfg    *config.Config
	env    string
	flash  *session.MemoryFlash
	logger *slog.Logger
}

// Option configures a scenario run.
type Option func(*Harness)

// WithLogger sets the logger passed to the adapter and tracking handles.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Harness) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithRegistry replaces the built-in vocabulary.
func WithRegistry(reg *language.Registry) Option {
	return func(h *Harness) {
		if reg != nil {
			h.reg = reg
		}
	}
}

// Run executes a scenario and returns the result.
//
// Each scenario starts with an empty flash. Requests run in order; every
// request finalizes its payload and commits its next-request commands before
// the next one starts. An error is returned when the scenario cannot be
// executed at all (bad config, rejected step); expectation mismatches are
// reported in Result.Errors instead.
func Run(scenario *Scenario, opts ...Option) (*Result, error) {
	cfg := config.Default()
	if scenario.Config != "" {
		loaded, err := config.Load(scenario.Config)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	env := scenario.Environment
	if env == "" {
		env = DefaultEnvironment
	}

	h := &Harness{
		reg:    language.Builtin(),
		cfg:    cfg,
		env:    env,
		flash:  session.NewMemoryFlash(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(h)
	}

	ctx := context.Background()
	result := NewResult()
	for i, req := range scenario.Requests {
		rr, err := h.executeRequest(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("request %d: %w", i, err)
		}
		result.Requests = append(result.Requests, rr)

		if req.Expect != nil {
			if msg := compareExpect(req.Expect, rr.Payload); msg != "" {
				result.AddError(fmt.Sprintf("requests[%d]: %s", i, msg))
			}
		}
		for _, msg := range EvaluateAssertions(rr, req.Assertions) {
			result.AddError(fmt.Sprintf("requests[%d]: %s", i, msg))
		}

		h.logger.Debug("request completed",
			"scenario", scenario.Name,
			"request", i,
			"segments", len(rr.Payload),
			"carried", len(rr.Flash.Early)+len(rr.Flash.Normal),
		)
	}

	return result, nil
}

func (h *Harness) executeRequest(ctx context.Context, req Request) (RequestResult, error) {
	adapter := session.NewAdapter(h.reg, h.flash, h.logger)
	handle := tracking.New(h.reg, h.cfg, adapter, h.env, h.logger)

	for j, step := range req.Immediate {
		if err := applyStep(handle.Root(), step); err != nil {
			return RequestResult{}, fmt.Errorf("immediate[%d]: %w", j, err)
		}
	}
	for j, step := range req.NextRequest {
		if err := applyStep(handle.NextRequest(), step); err != nil {
			return RequestResult{}, fmt.Errorf("next_request[%d]: %w", j, err)
		}
	}

	payload, err := handle.Finalize(ctx)
	if err != nil {
		return RequestResult{}, err
	}
	if err := handle.Commit(ctx); err != nil {
		return RequestResult{}, err
	}

	carried, _, err := h.flash.Get(ctx, session.FlashKey)
	if err != nil {
		return RequestResult{}, err
	}
	return RequestResult{Payload: payload, Flash: carried}, nil
}

func applyStep(target *tracking.Target, step Step) error {
	if step.Tracker != "" {
		var err error
		if target, err = target.Tracker(step.Tracker); err != nil {
			return err
		}
	}
	if step.Variable != "" {
		return target.SetVariable(step.Variable, step.Value)
	}
	return target.Push(language.Identifier(step.Command), step.Args...)
}

// compareExpect compares the canonical JSON of the expected and actual
// payloads. Returns "" on match.
func compareExpect(expect [][]any, actual []ir.Segment) string {
	want := make([]ir.Segment, len(expect))
	for i, raw := range expect {
		seg, err := convertToSegment(raw)
		if err != nil {
			return fmt.Sprintf("expect[%d]: %v", i, err)
		}
		want[i] = seg
	}

	wantJSON, err := ir.MarshalCanonical(want)
	if err != nil {
		return fmt.Sprintf("expect: %v", err)
	}
	gotJSON, err := ir.MarshalCanonical(actual)
	if err != nil {
		return fmt.Sprintf("payload: %v", err)
	}
	if !bytes.Equal(wantJSON, gotJSON) {
		return fmt.Sprintf("payload mismatch\n  Expected: %s\n  Actual: %s", wantJSON, gotJSON)
	}
	return ""
}

func convertToSegment(raw []any) (ir.Segment, error) {
	seg := make(ir.Segment, len(raw))
	for i, v := range raw {
		val, err := convertToValue(v)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		seg[i] = val
	}
	return seg, nil
}

// convertToValue converts a YAML-parsed scalar to an ir.Value.
func convertToValue(val any) (ir.Value, error) {
	switch v := val.(type) {
	case nil:
		return ir.Null{}, nil
	case string:
		return ir.String(v), nil
	case int:
		return ir.Int(int64(v)), nil
	case int64:
		return ir.Int(v), nil
	case uint64:
		if v > 1<<63-1 {
			return nil, fmt.Errorf("integer %d out of range", v)
		}
		return ir.Int(int64(v)), nil
	case float64:
		if v == float64(int64(v)) {
			return ir.Int(int64(v)), nil
		}
		return nil, fmt.Errorf("floats are not supported: %v", v)
	case bool:
		return ir.Bool(v), nil
	default:
		return nil, fmt.Errorf("unsupported type %T", val)
	}
}
