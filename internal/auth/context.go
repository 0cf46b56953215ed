package auth

import (
	"context"
	"time"
)

// RoleStaff is the only role the back office knows about.
const RoleStaff = "staff"

// Session is the verified identity behind an admin request.
type Session struct {
	Subject   string    `json:"subject"`
	Role      string    `json:"role"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

type sessionKey struct{}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFromContext returns the session stored by the auth middleware.
func SessionFromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(*Session)
	return s, ok && s != nil
}

// Subject is a logging helper; it returns "" for anonymous contexts.
func Subject(ctx context.Context) string {
	if s, ok := SessionFromContext(ctx); ok {
		return s.Subject
	}
	return ""
}
