package auth

import (
	"fmt"

	"github.com/spf13/afero"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	// DefaultCredentialsFile is the OAuth client secret downloaded from the
	// Google Cloud console.
	DefaultCredentialsFile = "credentials.json"

	// DefaultTokenFile holds the persisted user token.
	DefaultTokenFile = "token.json"
)

// DefaultScopes are the read-only scopes every classroom query needs.
var DefaultScopes = []string{
	"https://www.googleapis.com/auth/classroom.courses.readonly",
	"https://www.googleapis.com/auth/classroom.coursework.me.readonly",
	"https://www.googleapis.com/auth/classroom.topics.readonly",
	"https://www.googleapis.com/auth/classroom.announcements.readonly",
	"https://www.googleapis.com/auth/classroom.courseworkmaterials.readonly",
}

// LoadClientConfig reads an installed-app or web client secret file and
// returns the OAuth config for scopes.
func LoadClientConfig(fs afero.Fs, path string, scopes ...string) (*oauth2.Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read client secret file: %w", err)
	}

	cfg, err := google.ConfigFromJSON(data, scopes...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse client secret file %s: %w", path, err)
	}

	return cfg, nil
}

// coversScopes reports whether granted contains every scope in wanted.
func coversScopes(granted, wanted []string) bool {
	have := make(map[string]bool, len(granted))
	for _, s := range granted {
		have[s] = true
	}
	for _, s := range wanted {
		if !have[s] {
			return false
		}
	}
	return true
}
