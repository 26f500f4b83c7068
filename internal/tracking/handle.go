package tracking

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/gaq/internal/config"
	"github.com/roach88/gaq/internal/ir"
	"github.com/roach88/gaq/internal/language"
	"github.com/roach88/gaq/internal/session"
)

var (
	// ErrUnknownTracker is returned when a target names an undeclared tracker.
	ErrUnknownTracker = errors.New("unknown tracker")

	// ErrUnknownVariable is returned when setting an undeclared custom variable.
	ErrUnknownVariable = errors.New("unknown variable")
)

// phases holds commands in emission phase order.
type phases struct {
	early  []language.Command
	normal []language.Command
}

func (p *phases) push(early bool, cmd language.Command) {
	if early {
		p.early = append(p.early, cmd)
		return
	}
	p.normal = append(p.normal, cmd)
}

// Handle collects the analytics commands of one request.
//
// Commands pushed through Root are emitted by Finalize together with those
// carried over in the flash. Commands pushed through NextRequest are written
// to the flash by Commit.
//
// A Handle is used by a single request and is not safe for concurrent use.
type Handle struct {
	reg     *language.Registry
	cfg     *config.Config
	adapter *session.Adapter
	env     string
	logger  *slog.Logger

	loaded  bool
	flashed phases
	current phases
	next    phases
}

// New creates a Handle for one request in environment env.
// A nil logger discards output.
func New(reg *language.Registry, cfg *config.Config, adapter *session.Adapter, env string, logger *slog.Logger) *Handle {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Handle{reg: reg, cfg: cfg, adapter: adapter, env: env, logger: logger}
}

// Root targets the current request on the default tracker.
func (h *Handle) Root() *Target {
	return &Target{h: h, into: &h.current}
}

// NextRequest targets the following request on the default tracker.
func (h *Handle) NextRequest() *Target {
	return &Target{h: h, into: &h.next}
}

// load reads the flash once per request.
func (h *Handle) load(ctx context.Context) error {
	if h.loaded {
		return nil
	}
	early, normal, err := h.adapter.Load(ctx)
	if err != nil {
		return fmt.Errorf("load flash: %w", err)
	}
	h.flashed = phases{early: early, normal: normal}
	h.loaded = true
	return nil
}

// Finalize returns the sorted segments to emit for this request: commands
// carried in the flash, commands pushed through Root, anonymize_ip when
// gated on, and for every tracker (default first) set_account plus
// track_pageview when gated on.
func (h *Handle) Finalize(ctx context.Context) ([]ir.Segment, error) {
	if err := h.load(ctx); err != nil {
		return nil, err
	}

	var cmds []language.Command
	cmds = append(cmds, h.flashed.early...)
	cmds = append(cmds, h.flashed.normal...)
	cmds = append(cmds, h.current.early...)
	cmds = append(cmds, h.current.normal...)

	if h.cfg.AnonymizeIP.Enabled(h.env) {
		cmd, err := h.reg.NewCommand(language.AnonymizeIP)
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, cmd)
	}

	for _, t := range h.cfg.AllTrackers() {
		setup, err := h.trackerSetup(t)
		if err != nil {
			return nil, fmt.Errorf("tracker %q: %w", t.Name, err)
		}
		cmds = append(cmds, setup...)
	}

	h.reg.Sort(cmds)
	segs := h.reg.Encode(cmds)

	h.logger.Debug("finalized",
		"env", h.env,
		"flashed", len(h.flashed.early)+len(h.flashed.normal),
		"pushed", len(h.current.early)+len(h.current.normal),
		"segments", len(segs))
	return segs, nil
}

func (h *Handle) trackerSetup(t config.Tracker) ([]language.Command, error) {
	account, err := h.reg.NewCommand(language.SetAccount, t.WebPropertyID)
	if err != nil {
		return nil, err
	}
	cmds := []language.Command{account.WithTracker(t.Name)}

	if t.TrackPageview.Enabled(h.env) {
		pageview, err := h.reg.NewCommand(language.TrackPageview)
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, pageview.WithTracker(t.Name))
	}
	return cmds, nil
}

// Payload returns the finalized segments as the JSON pushed to _gaq.
func (h *Handle) Payload(ctx context.Context) ([]byte, error) {
	segs, err := h.Finalize(ctx)
	if err != nil {
		return nil, err
	}
	return ir.MarshalPayload(segs)
}

// RenderEnabled reports whether the ga.js loader should be emitted.
func (h *Handle) RenderEnabled() bool {
	return h.cfg.RenderGAJS.Enabled(h.env)
}

// Commit writes the commands queued for the next request to the flash,
// replacing what this request received. With nothing queued the flash entry
// is emptied.
func (h *Handle) Commit(ctx context.Context) error {
	// The incoming entry must be read before it is overwritten.
	if err := h.load(ctx); err != nil {
		return err
	}
	if err := h.adapter.Save(ctx, h.next.early, h.next.normal); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
