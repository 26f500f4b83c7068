// Package language implements the gaq command language: a registry of typed
// command descriptors, argument coercion, deterministic ordering and the
// segment codec.
//
// A caller builds Commands through a Registry (identifier plus raw
// arguments), the coercer normalizes the arguments against the descriptor's
// signature, Sort orders the finished list, and Encode/Decode convert between
// Commands and wire segments:
//
//	reg := language.Builtin()
//	cmd, err := reg.NewCommand(language.TrackPageview, "/checkout")
//	cmds := []language.Command{cmd.WithTracker("rollup")}
//	reg.Sort(cmds)
//	segs := reg.Encode(cmds) // [["rollup._trackPageview","/checkout"]]
//
// # Ordering
//
// Commands sort by descriptor slot; descriptors without a slot share one
// fallback slot after the highest declared one. Ties keep input order.
//
// # Tokens
//
// A segment's first element is "{tracker}.{name}" or just "{name}". Decoding
// splits on the last dot, so a dotted wire name (_gat._anonymizeIp) only
// round-trips on the default tracker.
package language
