// Stridelog - Wearable Activity Acquisition and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stridelog

package session

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"golang.org/x/oauth2"

	"github.com/tomtom215/stridelog/internal/activity"
	"github.com/tomtom215/stridelog/internal/config"
	"github.com/tomtom215/stridelog/internal/logging"
	"github.com/tomtom215/stridelog/internal/metrics"
	"github.com/tomtom215/stridelog/internal/provider"
)

// ErrMissingCredentials is returned when a fresh login is needed but no
// username or password is configured.
var ErrMissingCredentials = errors.New("provider credentials not configured")

// Auth method and outcome labels.
const (
	methodSession = "session"
	methodLogin   = "login"

	outcomeSuccess = "success"
	outcomeFailure = "failure"
	outcomeSkipped = "skipped"
)

// Handle is an authenticated provider session.
type Handle interface {
	Token() *oauth2.Token
	ListActivities(ctx context.Context, start, limit int) ([]activity.Raw, error)
	ActivityDetails(ctx context.Context, activityID int64) (interface{}, error)
}

// Authenticator performs the login half of the provider boundary.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (Handle, error)
	Resume(ctx context.Context, tok *oauth2.Token) (Handle, error)
}

// Options configures a Manager.
type Options struct {
	Username string
	Password string

	// SessionFile is the cache path. Nil disables reading and writing it.
	SessionFile *string
}

// OptionsFromConfig builds Options from loaded configuration.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Username:    cfg.Provider.Username,
		Password:    cfg.Provider.Password,
		SessionFile: cfg.Session.Path(),
	}
}

// Manager authenticates against the provider.
type Manager struct {
	auth Authenticator
	opts Options
}

// NewManager creates a Manager.
func NewManager(auth Authenticator, opts Options) *Manager {
	return &Manager{auth: auth, opts: opts}
}

// Authenticate returns a usable handle, from the cached session when the
// provider still accepts it, otherwise from a fresh login.
func (m *Manager) Authenticate(ctx context.Context) (Handle, error) {
	logger := logging.Ctx(ctx)

	if m.opts.SessionFile != nil {
		h, err := m.restore(ctx, *m.opts.SessionFile)
		if err == nil {
			metrics.RecordAuth(methodSession, outcomeSuccess)
			logger.Info().Str("session_file", *m.opts.SessionFile).Msg("Restored cached provider session")
			return h, nil
		}
		if errors.Is(err, fs.ErrNotExist) {
			metrics.RecordAuth(methodSession, outcomeSkipped)
			logger.Debug().Str("session_file", *m.opts.SessionFile).Msg("No cached session, logging in")
		} else {
			metrics.RecordAuth(methodSession, outcomeFailure)
			logger.Warn().Err(err).Str("session_file", *m.opts.SessionFile).Msg("Cached session unusable, falling back to login")
		}
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	creds := config.ProviderConfig{Username: m.opts.Username, Password: m.opts.Password}
	if !creds.HasCredentials() {
		metrics.RecordAuth(methodLogin, outcomeFailure)
		return nil, ErrMissingCredentials
	}

	h, err := m.auth.Login(ctx, m.opts.Username, m.opts.Password)
	if err != nil {
		metrics.RecordAuth(methodLogin, outcomeFailure)
		return nil, fmt.Errorf("fresh login: %w", err)
	}
	metrics.RecordAuth(methodLogin, outcomeSuccess)
	logger.Info().Str("username", logging.SanitizeUsername(m.opts.Username)).Msg("Logged in to provider")

	if m.opts.SessionFile != nil {
		if err := m.persist(*m.opts.SessionFile, h.Token()); err != nil {
			metrics.SessionPersistErrors.Inc()
			logger.Warn().Err(err).Str("session_file", *m.opts.SessionFile).Msg("Failed to persist session")
		}
	}

	return h, nil
}

// restore resumes a handle from the session file at path.
func (m *Manager) restore(ctx context.Context, path string) (Handle, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, err
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("session file %s is not valid JSON", path)
	}

	tok, err := provider.DecodeSession(data)
	if err != nil {
		return nil, err
	}

	h, err := m.auth.Resume(ctx, tok)
	if err != nil {
		return nil, fmt.Errorf("resume session: %w", err)
	}
	return h, nil
}

// persist writes tok to path through a temporary file in the same
// directory followed by a rename.
func (m *Manager) persist(path string, tok *oauth2.Token) error {
	data, err := provider.EncodeSession(tok)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp session file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write session file: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("chmod session file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close session file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace session file: %w", err)
	}
	return nil
}

// ClientAuthenticator adapts a provider.Client to Authenticator.
type ClientAuthenticator struct {
	Client *provider.Client
}

// Login implements Authenticator.
func (a ClientAuthenticator) Login(ctx context.Context, username, password string) (Handle, error) {
	h, err := a.Client.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	return h, nil
}

// Resume implements Authenticator.
func (a ClientAuthenticator) Resume(ctx context.Context, tok *oauth2.Token) (Handle, error) {
	h, err := a.Client.Resume(ctx, tok)
	if err != nil {
		return nil, err
	}
	return h, nil
}
