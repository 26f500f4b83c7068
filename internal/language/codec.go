package language

import (
	"strings"

	"github.com/roach88/gaq/internal/ir"
)

// trackerSeparator joins a tracker name and a wire name in a segment token.
const trackerSeparator = "."

// Encode converts commands to wire segments, one per command, in order.
// Callers sort first when emission order matters. A zero Command has no
// descriptor and is skipped.
func (r *Registry) Encode(cmds []Command) []ir.Segment {
	segs := make([]ir.Segment, 0, len(cmds))
	for _, c := range cmds {
		if c.descriptor == nil {
			continue
		}
		segs = append(segs, encodeCommand(c))
	}
	return segs
}

func encodeCommand(c Command) ir.Segment {
	params := c.params
	if arity := c.descriptor.Arity(); len(params) > arity {
		params = params[:arity]
	}
	return ir.NewSegment(composeToken(c.tracker, c.descriptor.name), params...)
}

// composeToken builds "{tracker}.{name}", or just "{name}" for the default tracker.
func composeToken(tracker, name string) string {
	if tracker == "" {
		return name
	}
	return tracker + trackerSeparator + name
}

// splitToken splits a token on its LAST separator: the last component is the
// wire name, everything before it the tracker name.
//
// Wire names that contain the separator themselves (_gat._anonymizeIp) are
// only recoverable without a tracker prefix: "foo._gat._anonymizeIp" splits
// into tracker "foo._gat" and name "_anonymizeIp", which does not resolve.
// Stored segments depend on this rule, so it is kept as is.
func splitToken(token string) (tracker, name string) {
	i := strings.LastIndex(token, trackerSeparator)
	if i < 0 {
		return "", token
	}
	return token[:i], token[i+len(trackerSeparator):]
}

// Decode converts wire segments back to commands.
//
// Parameters are taken as stored, up to the descriptor's arity, without
// coercion. Any malformed segment or unknown command fails the whole call.
func (r *Registry) Decode(segs []ir.Segment) ([]Command, error) {
	cmds := make([]Command, 0, len(segs))
	for i, seg := range segs {
		cmd, err := r.decodeSegment(i, seg)
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, cmd)
	}
	return cmds, nil
}

func (r *Registry) decodeSegment(index int, seg ir.Segment) (Command, error) {
	if len(seg) == 0 {
		return Command{}, newMalformedSegmentError(index, "empty segment")
	}
	token, ok := seg.Token()
	if !ok {
		return Command{}, newMalformedSegmentError(index, "first element must be a string token")
	}

	tracker, name := splitToken(token)
	desc, err := r.LookupByName(name)
	if err != nil {
		le := newUnknownCommandError(name)
		le.Index = index
		le.Message = "no command registered for token " + token
		return Command{}, le
	}

	stored := seg.Params()
	n := min(len(stored), desc.Arity())
	params := make([]ir.Value, n)
	copy(params, stored[:n])
	return Command{descriptor: desc, params: params, tracker: tracker}, nil
}
