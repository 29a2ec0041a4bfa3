package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/thomashirtz/notion-scholar/internal/bibtex"
	"github.com/thomashirtz/notion-scholar/internal/config"
	"github.com/thomashirtz/notion-scholar/internal/notion"
	"github.com/thomashirtz/notion-scholar/internal/publication"
	"github.com/thomashirtz/notion-scholar/internal/syncer"
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputHuman writes a human-readable string to stdout.
func outputHuman(format string, args ...any) {
	fmt.Printf(format, args...)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// StatusResponse is a generic response for commands that return status.
type StatusResponse struct {
	Status string `json:"status"`
	Path   string `json:"path,omitempty"`
}

// exitError attaches an exit code to an error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// withExitCode marks err to exit with code.
func withExitCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: code, err: err}
}

// exitCodeFor maps an error to the process exit code and a short error code
// for JSON output.
func exitCodeFor(err error) (int, string) {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code, ""
	}

	var missing *config.MissingError
	switch {
	case errors.As(err, &missing):
		return ExitConfigError, "missing_setting"
	case errors.Is(err, notion.ErrInvalidDatabaseID):
		return ExitConfigError, "invalid_database_id"
	case errors.Is(err, syncer.ErrIllegalInput):
		return ExitDataError, "illegal_input"
	case errors.Is(err, bibtex.ErrSyntax):
		return ExitDataError, "bibtex_syntax"
	case errors.Is(err, publication.ErrInvalidYear):
		return ExitDataError, "invalid_year"
	case notion.IsAuthError(err):
		return ExitRemoteError, "auth_error"
	case notion.IsNotFound(err):
		return ExitRemoteError, "not_found"
	case notion.IsRateLimited(err):
		return ExitRemoteError, "rate_limited"
	case errors.Is(err, notion.ErrNetworkError), errors.Is(err, notion.ErrAPIError),
		errors.Is(err, notion.ErrInvalidResponse):
		return ExitRemoteError, "api_error"
	case errors.Is(err, context.Canceled):
		return ExitRemoteError, "canceled"
	default:
		return ExitError, ""
	}
}

// reportError outputs an error in the appropriate format (human or JSON) and
// returns the exit code.
func reportError(err error) int {
	code, errCode := exitCodeFor(err)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		if notion.IsNotFound(err) {
			fmt.Fprintln(os.Stderr, "  Check the database ID and that the database is shared with the integration.")
		}
	} else {
		_ = outputJSON(ErrorResponse{Error: err.Error(), Code: errCode})
	}
	return code
}
