package service

import (
	"context"
	"sync"

	"homefix/internal/domain"
	"homefix/internal/events"
	"homefix/internal/models"
	"homefix/internal/validate"

	"github.com/rs/zerolog"
)

// sessionCacheKey is where the access token of the signed-in user persists
// between restarts, next to the booking lists.
const sessionCacheKey = "session"

// SessionService holds the process-wide session value: set at startup from a
// stored-session check, updated on sign-in and sign-up, cleared on sign-out.
// Subscribers are notified synchronously on every change.
type SessionService struct {
	auth     domain.AuthClient
	cache    domain.CacheStore
	eventBus domain.EventPublisher
	logger   *zerolog.Logger

	mu          sync.RWMutex
	current     *models.Session
	subscribers []func(*models.Session)
}

func NewSessionService(auth domain.AuthClient, cache domain.CacheStore, eventBus domain.EventPublisher, logger *zerolog.Logger) *SessionService {
	return &SessionService{
		auth:     auth,
		cache:    cache,
		eventBus: eventBus,
		logger:   logger,
	}
}

// Current returns a copy of the active session, or nil when signed out.
func (s *SessionService) Current() *models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	session := *s.current
	return &session
}

// Token returns the current access token, empty when signed out.
func (s *SessionService) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ""
	}
	return s.current.AccessToken
}

// Subscribe registers a callback fired on every session change. The callback
// receives the new session, nil on sign-out.
func (s *SessionService) Subscribe(fn func(*models.Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Restore performs the startup stored-session check: if a token survived the
// last run and the auth provider still accepts it, the session is restored.
func (s *SessionService) Restore(ctx context.Context) {
	raw, err := s.cache.Get(ctx, sessionCacheKey)
	if err != nil || len(raw) == 0 {
		return
	}

	session, err := s.auth.CurrentUser(ctx, string(raw))
	if err != nil {
		s.logger.Info().Err(err).Msg("stored session rejected, starting signed out")
		s.clearStoredToken(ctx)
		return
	}

	s.setSession(ctx, session)
	s.logger.Info().Str("user_id", session.UserID).Msg("session restored")
}

// SignUp registers a new account and signs the user in.
func (s *SessionService) SignUp(ctx context.Context, email, password string) (*models.Session, error) {
	if err := validate.Credentials(email, password); err != nil {
		return nil, err
	}

	session, err := s.auth.SignUp(ctx, email, password)
	if err != nil {
		return nil, err
	}

	s.setSession(ctx, session)
	return s.Current(), nil
}

// SignIn exchanges credentials for a session.
func (s *SessionService) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	if err := validate.Credentials(email, password); err != nil {
		return nil, err
	}

	session, err := s.auth.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}

	s.setSession(ctx, session)
	return s.Current(), nil
}

// SignOut clears the session. The backend revocation is best effort; the
// local session is cleared regardless.
func (s *SessionService) SignOut(ctx context.Context) error {
	token := s.Token()
	if token == "" {
		return ErrNotSignedIn
	}

	if err := s.auth.SignOut(ctx, token); err != nil {
		s.logger.Warn().Err(err).Msg("backend sign-out failed, clearing local session anyway")
	}

	s.mu.Lock()
	s.current = nil
	subs := append([](func(*models.Session))(nil), s.subscribers...)
	s.mu.Unlock()

	s.clearStoredToken(ctx)
	s.notify(subs, nil)
	s.publishChange("", false)
	return nil
}

func (s *SessionService) setSession(ctx context.Context, session *models.Session) {
	s.mu.Lock()
	s.current = session
	subs := append([](func(*models.Session))(nil), s.subscribers...)
	s.mu.Unlock()

	if err := s.cache.Set(ctx, sessionCacheKey, []byte(session.AccessToken)); err != nil {
		s.logger.Warn().Err(err).Msg("persist session token")
	}

	copied := *session
	s.notify(subs, &copied)
	s.publishChange(session.UserID, true)
}

func (s *SessionService) clearStoredToken(ctx context.Context) {
	if err := s.cache.Delete(ctx, sessionCacheKey); err != nil {
		s.logger.Warn().Err(err).Msg("clear stored session token")
	}
}

func (s *SessionService) notify(subs []func(*models.Session), session *models.Session) {
	for _, fn := range subs {
		fn(session)
	}
}

func (s *SessionService) publishChange(userID string, signedIn bool) {
	if s.eventBus == nil {
		return
	}
	payload := events.SessionEventPayload{UserID: userID, SignedIn: signedIn}
	if err := s.eventBus.PublishJSON(events.EventSessionChanged, payload); err != nil {
		s.logger.Error().Err(err).Msg("publish session event")
	}
}
