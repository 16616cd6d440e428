package main

// Exit codes
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (no workspace, no database, no token) or rejected token
	ExitDataError   = 3 // Data error (malformed input file, unknown node)
	ExitRemoteError = 4 // Notion API error (not found, rate limit, network)
)
