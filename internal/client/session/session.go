// Package session holds the bearer token used for API calls and answers the
// local "may this user mutate right now" question before any state is touched.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	clientapi "github.com/iudanet/qaforum/internal/client/api"
)

// Claims - поля токена, которые клиент читает без проверки подписи.
// Подпись проверяет сервер.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Session хранит текущий access token
type Session struct {
	now    func() time.Time
	claims *Claims
	token  string
	mu     sync.RWMutex
}

// New creates a session; token may be empty (signed out)
func New(token string) *Session {
	s := &Session{now: time.Now}
	s.SetToken(token)
	return s
}

// SetToken replaces the current token. Tokens that are not JWTs are accepted
// as opaque bearer tokens; only the server can judge them.
func (s *Session) SetToken(token string) {
	var claims *Claims
	if token != "" {
		claims = parseClaims(token)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
	s.claims = claims
}

// Token returns the raw bearer token. Suitable as an api.TokenSource.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token
}

// UserID returns the user id claim, if the token carries one
func (s *Session) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.claims == nil {
		return ""
	}
	if s.claims.UserID != "" {
		return s.claims.UserID
	}
	return s.claims.Subject
}

// Authorize fails with api.ErrUnauthorized when there is no token or the
// token has expired.
func (s *Session) Authorize() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.token == "" {
		return fmt.Errorf("%w: not signed in", clientapi.ErrUnauthorized)
	}
	if s.claims != nil && s.claims.ExpiresAt != nil && !s.now().Before(s.claims.ExpiresAt.Time) {
		return fmt.Errorf("%w: access token has expired", clientapi.ErrUnauthorized)
	}
	return nil
}

// Clear signs the session out
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	s.claims = nil
}

func parseClaims(token string) *Claims {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		// Непрозрачный токен (не JWT) - проверить срок действия локально нельзя
		return nil
	}
	return claims
}
