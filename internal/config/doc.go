// Package config loads analytics settings from a CUE file.
//
// A configuration file looks like:
//
//	web_property_id: "UA-XXXXX-1"
//	anonymize_ip:    true
//	render_ga_js:    ["production", "staging"]
//	trackers: [{name: "rollup", web_property_id: "UA-XXXXX-2", track_pageview: "production"}]
//	variables: [{name: "plan", slot: 1, scope: "visitor"}]
//
// The file is unified with a closed schema, so unknown settings are rejected.
// Gates (track_pageview, anonymize_ip, render_ga_js) take a bool, an
// environment name, or a list of environment names.
package config
