package web

import (
	"context"

	"github.com/coinomad/payroll-dashboard/internal/session"
)

type contextKey string

const sessionContextKey contextKey = "web.session"

// ContextWithSession attaches the authenticated session to the context.
func ContextWithSession(ctx context.Context, sess session.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, sess)
}

// SessionFromContext returns the session placed by the gate middleware.
func SessionFromContext(ctx context.Context) (session.Session, bool) {
	sess, ok := ctx.Value(sessionContextKey).(session.Session)
	return sess, ok
}
