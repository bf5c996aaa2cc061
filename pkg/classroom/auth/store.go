package auth

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"golang.org/x/oauth2"
)

// storedToken is the "authorized_user" credential layout used by Google
// client libraries, so token files are interchangeable with them.
type storedToken struct {
	Type         string    `json:"type,omitempty"`
	Token        string    `json:"token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	TokenURI     string    `json:"token_uri,omitempty"`
	ClientID     string    `json:"client_id,omitempty"`
	ClientSecret string    `json:"client_secret,omitempty"`
	Scopes       []string  `json:"scopes,omitempty"`
	Expiry       time.Time `json:"expiry,omitzero"`
}

// TokenStore persists a user token to a single file.
type TokenStore struct {
	fs     afero.Fs
	path   string
	config *oauth2.Config
}

// NewTokenStore creates a TokenStore for path. config supplies the client
// id, secret, token URI and scopes written alongside the token.
func NewTokenStore(fs afero.Fs, path string, config *oauth2.Config) *TokenStore {
	return &TokenStore{
		fs:     fs,
		path:   path,
		config: config,
	}
}

// Path returns the token file path.
func (s *TokenStore) Path() string {
	return s.path
}

// Load reads the stored token and the scopes it was granted for. A missing
// file returns an error satisfying errors.Is(err, fs.ErrNotExist).
func (s *TokenStore) Load() (*oauth2.Token, []string, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		return nil, nil, err
	}

	var st storedToken
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, nil, fmt.Errorf("failed to decode token file %s: %w", s.path, err)
	}

	tok := &oauth2.Token{
		AccessToken:  st.Token,
		TokenType:    "Bearer",
		RefreshToken: st.RefreshToken,
		Expiry:       st.Expiry,
	}
	return tok, st.Scopes, nil
}

// Save writes tok with owner-only permissions.
func (s *TokenStore) Save(tok *oauth2.Token) error {
	st := storedToken{
		Type:         "authorized_user",
		Token:        tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		Expiry:       tok.Expiry,
	}
	if s.config != nil {
		st.TokenURI = s.config.Endpoint.TokenURL
		st.ClientID = s.config.ClientID
		st.ClientSecret = s.config.ClientSecret
		st.Scopes = s.config.Scopes
	}

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := s.fs.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("failed to create token directory: %w", err)
		}
	}
	if err := afero.WriteFile(s.fs, s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write token file %s: %w", s.path, err)
	}

	return nil
}
