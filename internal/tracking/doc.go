// Package tracking is the per-request entry point for analytics commands.
//
// A Handle is created for each request. Application code pushes commands on
// Root (emitted in this response) or NextRequest (carried in the flash to the
// following response). Finalize merges everything with the configured
// tracker setup, sorts by slot and encodes to segments:
//
//	h := tracking.New(language.Builtin(), cfg, session.NewAdapter(reg, flash, logger), "production", logger)
//	_ = h.Root().TrackEvent("signup", "complete")
//	_ = h.NextRequest().SetVariable("plan", "gold")
//	payload, err := h.Payload(ctx)
//	...
//	err = h.Commit(ctx)
package tracking
