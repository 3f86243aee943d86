package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRepo(t *testing.T) {
	testCases := []struct {
		name        string
		ref         string
		expected    Repo
		expectError bool
	}{
		{
			name:     "happy path",
			ref:      "Lightning-AI/litdata",
			expected: Repo{Owner: "Lightning-AI", Name: "litdata"},
		},
		{
			name:        "no separator",
			ref:         "owner",
			expectError: true,
		},
		{
			name:        "double separator",
			ref:         "owner//repo",
			expectError: true,
		},
		{
			name:        "empty owner",
			ref:         "/repo",
			expectError: true,
		},
		{
			name:        "empty name",
			ref:         "owner/",
			expectError: true,
		},
		{
			name:        "surrounding whitespace",
			ref:         "owner/ repo",
			expectError: true,
		},
		{
			name:        "empty reference",
			ref:         "",
			expectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo, err := ParseRepo(tc.ref)
			if tc.expectError {
				assert.Error(t, err)
				var vErr *ValidationError
				assert.ErrorAs(t, err, &vErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, repo)
			}
		})
	}
}

func TestRepoNames(t *testing.T) {
	repo := Repo{Owner: "Lightning-AI", Name: "litgpt"}
	assert.Equal(t, "Lightning-AI/litgpt", repo.FullName())
	assert.Equal(t, "litgpt", repo.ShortName())
}
