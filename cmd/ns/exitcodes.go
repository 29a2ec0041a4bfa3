package main

// Exit codes
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (missing token or database, unreadable config)
	ExitDataError   = 3 // Data error (malformed BibTeX, invalid year, no input)
	ExitRemoteError = 4 // Notion error (auth, not found, rate limit, network)
)
