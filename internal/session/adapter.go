package session

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/gaq/internal/language"
)

// Adapter moves command lists between a Flash and the command model.
type Adapter struct {
	reg    *language.Registry
	flash  Flash
	logger *slog.Logger
}

// NewAdapter creates an Adapter. A nil logger discards output.
func NewAdapter(reg *language.Registry, flash Flash, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Adapter{reg: reg, flash: flash, logger: logger}
}

// Load decodes the early and normal phases stored under FlashKey.
// A missing entry yields two empty lists.
func (a *Adapter) Load(ctx context.Context) (early, normal []language.Command, err error) {
	p, ok, err := a.flash.Get(ctx, FlashKey)
	if err != nil {
		return nil, nil, fmt.Errorf("read flash: %w", err)
	}
	if !ok {
		a.logger.Debug("flash empty", "key", FlashKey)
		return []language.Command{}, []language.Command{}, nil
	}

	early, err = a.reg.Decode(p.Early)
	if err != nil {
		return nil, nil, fmt.Errorf("decode early phase: %w", err)
	}
	normal, err = a.reg.Decode(p.Normal)
	if err != nil {
		return nil, nil, fmt.Errorf("decode normal phase: %w", err)
	}

	a.logger.Debug("flash loaded", "key", FlashKey, "early", len(early), "normal", len(normal))
	return early, normal, nil
}

// Save encodes both phases and writes them under FlashKey, replacing
// whatever was stored. Saving two empty lists consumes the entry.
func (a *Adapter) Save(ctx context.Context, early, normal []language.Command) error {
	p := Phases{
		Early:  a.reg.Encode(early),
		Normal: a.reg.Encode(normal),
	}
	if err := a.flash.Set(ctx, FlashKey, p); err != nil {
		return fmt.Errorf("write flash: %w", err)
	}
	a.logger.Debug("flash saved", "key", FlashKey, "early", len(p.Early), "normal", len(p.Normal))
	return nil
}
