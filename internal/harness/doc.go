// Package harness runs analytics scenarios end to end.
//
// A scenario is a YAML file describing a sequence of requests that share one
// flash. Each request pushes commands on the current request and on the next
// one, then finalizes. The finalized payload is compared with the request's
// expect list and assertions:
//
//	name: carry_over
//	description: "Events queued before a redirect are emitted after it"
//	config: configs/basic.cue
//	environment: production
//	requests:
//	  - next_request:
//	      - command: track_event
//	        args: ["signup", "complete"]
//	    assertions:
//	      - type: payload_count
//	        token: _trackEvent
//	        count: 0
//	  - expect:
//	      - ["_setAccount", "UA-1000-1"]
//	      - ["_trackPageview"]
//	      - ["_trackEvent", "signup", "complete"]
//
// RunWithGolden additionally snapshots every payload and carried flash as
// canonical JSON under testdata/golden.
package harness
