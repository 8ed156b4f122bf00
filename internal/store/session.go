package store

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/TriByteGenius/CareerCompass/internal/api"
	"github.com/TriByteGenius/CareerCompass/internal/logger"
	"github.com/TriByteGenius/CareerCompass/internal/models"
)

// savedSession is the on-disk shape of a persisted login.
type savedSession struct {
	Token    string `yaml:"token"`
	UserID   int64  `yaml:"user_id"`
	Username string `yaml:"username"`
	Email    string `yaml:"email"`
}

// SessionStore holds the authentication state the other stores react to:
// token, user profile and the login request status. Listeners fire on every
// auth change, which is how favorites fetch-on-login and clear-on-logout
// stay event-driven.
type SessionStore struct {
	client *api.Client
	log    *logger.Logger
	file   string // optional persistence path

	mu        sync.Mutex
	state     RequestState
	user      *models.User
	listeners []func()
}

// NewSessionStore creates a session store. When file is non-empty a
// previously saved session is restored from it and the client token set.
func NewSessionStore(client *api.Client, log *logger.Logger, file string) *SessionStore {
	if log == nil {
		log = logger.Nop()
	}
	s := &SessionStore{client: client, log: log, file: file}
	s.restore()
	return s
}

// Subscribe registers a listener invoked after every auth state change.
func (s *SessionStore) Subscribe(fn func()) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// Login authenticates and installs the returned token. On success the
// session is persisted and listeners are notified.
func (s *SessionStore) Login(ctx context.Context, username, password string) error {
	s.mu.Lock()
	s.state.begin()
	s.mu.Unlock()
	s.notify()

	resp, err := s.client.Login(ctx, username, password)
	if err != nil {
		s.mu.Lock()
		s.state.fail(serverMessage(err, "Login failed"))
		s.mu.Unlock()
		s.notify()
		return err
	}

	s.client.SetToken(resp.JWTToken)

	s.mu.Lock()
	s.user = &models.User{
		ID:       resp.ID,
		Username: resp.Username,
		Email:    resp.Email,
		Roles:    resp.Roles,
	}
	s.state.succeed()
	s.mu.Unlock()

	s.persist(resp.JWTToken)
	s.notify()
	return nil
}

// Signup creates a new account. It does not log the user in.
func (s *SessionStore) Signup(ctx context.Context, username, email, password string) (string, error) {
	resp, err := s.client.Signup(ctx, api.SignupRequest{
		Username: username,
		Email:    email,
		Password: password,
	})
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Refresh re-fetches the user profile behind the current token. A rejected
// token clears the session.
func (s *SessionStore) Refresh(ctx context.Context) error {
	if !s.client.Authenticated() {
		return nil
	}
	user, err := s.client.CurrentUser(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("session refresh failed, clearing session")
		s.Logout()
		return err
	}
	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()
	s.notify()
	return nil
}

// Logout discards the token and user locally. The JWT is stateless, so no
// server call is involved.
func (s *SessionStore) Logout() {
	s.client.SetToken("")
	s.mu.Lock()
	s.user = nil
	s.state = RequestState{Phase: PhaseIdle}
	s.mu.Unlock()
	if s.file != "" {
		_ = os.Remove(s.file)
	}
	s.notify()
}

// Authenticated reports whether a token is installed.
func (s *SessionStore) Authenticated() bool {
	return s.client.Authenticated()
}

// User returns the current profile, or nil when logged out.
func (s *SessionStore) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// State returns the login request status.
func (s *SessionStore) State() RequestState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *SessionStore) restore() {
	if s.file == "" {
		return
	}
	data, err := os.ReadFile(s.file)
	if err != nil {
		return
	}
	var saved savedSession
	if err := yaml.Unmarshal(data, &saved); err != nil || saved.Token == "" {
		return
	}
	s.client.SetToken(saved.Token)
	s.user = &models.User{ID: saved.UserID, Username: saved.Username, Email: saved.Email}
	s.log.Debug().Str("user", saved.Username).Msg("session restored")
}

func (s *SessionStore) persist(token string) {
	if s.file == "" {
		return
	}
	s.mu.Lock()
	saved := savedSession{Token: token}
	if s.user != nil {
		saved.UserID = s.user.ID
		saved.Username = s.user.Username
		saved.Email = s.user.Email
	}
	s.mu.Unlock()

	data, err := yaml.Marshal(saved)
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.file), 0700); err != nil {
		s.log.Warn().Err(err).Msg("cannot create session dir")
		return
	}
	if err := os.WriteFile(s.file, data, 0600); err != nil {
		s.log.Warn().Err(err).Msg("cannot persist session")
	}
}

func (s *SessionStore) notify() {
	s.mu.Lock()
	listeners := make([]func(), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()
	for _, fn := range listeners {
		fn()
	}
}
