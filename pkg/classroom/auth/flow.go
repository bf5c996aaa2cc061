package auth

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/pkg/browser"
	"golang.org/x/oauth2"
)

// DefaultFlowTimeout bounds how long Flow waits for the user to finish
// consent in the browser.
const DefaultFlowTimeout = 5 * time.Minute

// Flow runs the installed-app authorization code flow with a loopback
// redirect: a one-shot HTTP listener on 127.0.0.1 receives the code.
type Flow struct {
	Config *oauth2.Config

	// OpenURL opens the consent page. Defaults to the system browser.
	OpenURL func(url string) error

	Timeout time.Duration
	Logger  hclog.Logger
}

type callbackResult struct {
	code string
	err  error
}

// Run performs the flow and returns the exchanged token.
func (f *Flow) Run(ctx context.Context) (*oauth2.Token, error) {
	if f.Config == nil {
		return nil, errors.New("oauth config is required")
	}
	openURL := f.OpenURL
	if openURL == nil {
		openURL = browser.OpenURL
	}
	timeout := f.Timeout
	if timeout <= 0 {
		timeout = DefaultFlowTimeout
	}
	logger := f.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("failed to start loopback listener: %w", err)
	}

	cfg := *f.Config
	cfg.RedirectURL = fmt.Sprintf("http://%s/", ln.Addr().String())

	state := uuid.NewString()
	verifier := oauth2.GenerateVerifier()
	authURL := cfg.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.S256ChallengeOption(verifier),
	)

	results := make(chan callbackResult, 1)
	srv := &http.Server{
		Handler:           callbackHandler(state, results),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go srv.Serve(ln)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	logger.Info("waiting for authorization in browser", "url", authURL)
	if err := openURL(authURL); err != nil {
		logger.Warn("failed to open browser; visit the URL manually", "url", authURL, "error", err)
	}

	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var res callbackResult
	select {
	case res = <-results:
	case <-waitCtx.Done():
		return nil, fmt.Errorf("timed out waiting for authorization: %w", waitCtx.Err())
	}
	if res.err != nil {
		return nil, res.err
	}

	tok, err := cfg.Exchange(ctx, res.code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	logger.Info("authorization complete")
	return tok, nil
}

func callbackHandler(state string, results chan<- callbackResult) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}

		q := r.URL.Query()

		// Requests with neither a code nor an error (prefetches, reloads)
		// are not authorization responses and leave the flow waiting.
		if q.Get("code") == "" && q.Get("error") == "" {
			http.Error(w, "authorization response missing code", http.StatusBadRequest)
			return
		}

		var res callbackResult
		switch {
		case q.Get("error") != "":
			res.err = fmt.Errorf("authorization denied: %s", q.Get("error"))
		case q.Get("state") != state:
			res.err = errors.New("authorization state mismatch")
		default:
			res.code = q.Get("code")
		}

		if res.err != nil {
			http.Error(w, res.err.Error(), http.StatusBadRequest)
		} else {
			fmt.Fprintln(w, "Authorization complete. You can close this window.")
		}

		select {
		case results <- res:
		default:
		}
	})
}
