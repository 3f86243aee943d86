// Package domain contains the core data structures and domain logic for the application.
package domain

import (
	"fmt"
	"strings"
)

// Repo identifies one GitHub repository as an owner/name pair.
// It is the core reference type handed to the gateway.
type Repo struct {
	Owner string
	Name  string
}

// ParseRepo validates and splits an "owner/name" reference.
// Both segments must be non-empty, carry no surrounding whitespace,
// and the reference must contain exactly one separator.
func ParseRepo(ref string) (Repo, error) {
	parts := strings.Split(ref, "/")
	if len(parts) != 2 {
		return Repo{}, &ValidationError{
			Msg: fmt.Sprintf("invalid repository format %q: expected 'owner/repo'", ref),
		}
	}
	for _, part := range parts {
		if part == "" || part != strings.TrimSpace(part) {
			return Repo{}, &ValidationError{
				Msg: fmt.Sprintf("invalid repository format %q: expected 'owner/repo'", ref),
			}
		}
	}
	return Repo{Owner: parts[0], Name: parts[1]}, nil
}

// FullName returns the "owner/name" form used in API paths and logs.
func (r Repo) FullName() string {
	return r.Owner + "/" + r.Name
}

// ShortName returns the name segment, used as the result table's column key.
// Not guaranteed unique across distinct owners.
func (r Repo) ShortName() string {
	return r.Name
}
