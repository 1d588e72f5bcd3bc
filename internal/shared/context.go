package shared

import "context"

type sessionContextKey struct{}

type adminContextKey struct{}

// Admin is the signed in administrator resolved for the request.
type Admin struct {
	ID    int64
	Email string
	Role  string
}

// ContextWithSession stores the session in context.
func ContextWithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, sess)
}

// SessionFromContext extracts the session from context.
func SessionFromContext(ctx context.Context) *Session {
	sess, _ := ctx.Value(sessionContextKey{}).(*Session)
	return sess
}

// ContextWithAdmin stores the resolved administrator.
func ContextWithAdmin(ctx context.Context, admin Admin) context.Context {
	return context.WithValue(ctx, adminContextKey{}, admin)
}

// AdminFromContext returns the administrator resolved by the RBAC middleware.
func AdminFromContext(ctx context.Context) (Admin, bool) {
	admin, ok := ctx.Value(adminContextKey{}).(Admin)
	return admin, ok
}
