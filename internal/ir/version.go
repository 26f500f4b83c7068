package ir

// ToolVersion is the gaq version reported by the CLI.
const ToolVersion = "0.1.0"
