package domain

import "fmt"

// ValidationError reports malformed input (bad repo reference, empty
// username, inverted date range). It is raised before any network I/O and
// aborts the whole run.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return "validation error: " + e.Msg
}

// APIError reports a non-200 HTTP status (other than the benign 403/404)
// from the commit-listing endpoint. It aborts the fetch for one
// repository only.
type APIError struct {
	StatusCode int
	Repo       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("github api error for %s: HTTP %d", e.Repo, e.StatusCode)
}

// NetworkError reports a transport failure that survived the retry
// budget. It aborts the fetch for one repository only.
type NetworkError struct {
	Repo string
	Err  error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error for %s: %v", e.Repo, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
