package auth

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/afero"
	"golang.org/x/oauth2"

	"github.com/hashicorp-forge/classbridge/pkg/classroom"
)

// Options configures Open.
type Options struct {
	CredentialsFile string
	TokenFile       string
	Scopes          []string

	// Fs holds both files. Defaults to the OS filesystem.
	Fs afero.Fs

	// OpenURL and FlowTimeout are passed to the interactive Flow.
	OpenURL     func(url string) error
	FlowTimeout time.Duration

	Logger hclog.Logger
}

// Session is an authenticated Classroom user session. Tokens refreshed
// after Open are written back to the token file.
type Session struct {
	config *oauth2.Config
	tokens oauth2.TokenSource
	store  *TokenStore
}

// Open establishes a session:
//
//  1. load the client secret (required),
//  2. load the stored token, dropping it if it lacks a requested scope,
//  3. use it if valid, refresh it if it has a refresh token, otherwise run
//     the interactive Flow,
//  4. persist the resulting token.
//
// Every failure wraps classroom.ErrSessionUnavailable.
func Open(ctx context.Context, opts Options) (*Session, error) {
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.CredentialsFile == "" {
		opts.CredentialsFile = DefaultCredentialsFile
	}
	if opts.TokenFile == "" {
		opts.TokenFile = DefaultTokenFile
	}
	if len(opts.Scopes) == 0 {
		opts.Scopes = DefaultScopes
	}
	if opts.Logger == nil {
		opts.Logger = hclog.NewNullLogger()
	}
	logger := opts.Logger.Named("auth")

	config, err := LoadClientConfig(opts.Fs, opts.CredentialsFile, opts.Scopes...)
	if err != nil {
		return nil, unavailable(err)
	}

	store := NewTokenStore(opts.Fs, opts.TokenFile, config)
	tok, granted, err := store.Load()
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logger.Debug("no stored token", "path", store.Path())
	case err != nil:
		logger.Warn("ignoring unreadable token file", "path", store.Path(), "error", err)
		tok = nil
	case !coversScopes(granted, opts.Scopes):
		logger.Info("stored token lacks requested scopes, re-authorizing", "path", store.Path())
		tok = nil
	}

	switch {
	case tok != nil && tok.Valid():
		logger.Debug("using stored token", "expiry", tok.Expiry)

	case tok != nil && tok.RefreshToken != "":
		logger.Debug("refreshing stored token")
		tok, err = config.TokenSource(ctx, tok).Token()
		if err != nil {
			return nil, unavailable(fmt.Errorf("failed to refresh token: %w", err))
		}
		if err := store.Save(tok); err != nil {
			return nil, unavailable(err)
		}

	default:
		flow := &Flow{
			Config:  config,
			OpenURL: opts.OpenURL,
			Timeout: opts.FlowTimeout,
			Logger:  logger,
		}
		tok, err = flow.Run(ctx)
		if err != nil {
			return nil, unavailable(err)
		}
		if err := store.Save(tok); err != nil {
			return nil, unavailable(err)
		}
		logger.Info("saved token", "path", store.Path())
	}

	return &Session{
		config: config,
		store:  store,
		tokens: &persistingTokenSource{
			base:   config.TokenSource(ctx, tok),
			store:  store,
			logger: logger,
			last:   tok.AccessToken,
		},
	}, nil
}

// Client returns an HTTP client that authorizes requests with the session
// token.
func (s *Session) Client(ctx context.Context) *http.Client {
	return oauth2.NewClient(ctx, s.tokens)
}

// TokenSource returns the session token source.
func (s *Session) TokenSource() oauth2.TokenSource {
	return s.tokens
}

// TokenFile returns the path the session persists tokens to.
func (s *Session) TokenFile() string {
	return s.store.Path()
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %w", classroom.ErrSessionUnavailable, err)
}

// persistingTokenSource saves every new access token handed out by base.
type persistingTokenSource struct {
	base   oauth2.TokenSource
	store  *TokenStore
	logger hclog.Logger

	mu   sync.Mutex
	last string
}

func (p *persistingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := p.base.Token()
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if tok.AccessToken != p.last {
		if err := p.store.Save(tok); err != nil {
			// The token is still usable for this process.
			p.logger.Warn("failed to persist refreshed token", "error", err)
		} else {
			p.logger.Debug("persisted refreshed token", "expiry", tok.Expiry)
		}
		p.last = tok.AccessToken
	}

	return tok, nil
}
