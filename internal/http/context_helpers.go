package httpx

import "context"

// consoleSessionKey is an unexported context key type to avoid collisions across packages.
type consoleSessionKey struct{}

// SetConsoleSession returns a child context that carries the given session.
// If session is nil, the original ctx is returned unchanged.
func SetConsoleSession(ctx context.Context, session *ConsoleSession) context.Context {
	if session == nil {
		return ctx
	}
	return context.WithValue(ctx, consoleSessionKey{}, session)
}

// ConsoleSessionFromContext returns the console session from context and a boolean indicating presence.
func ConsoleSessionFromContext(ctx context.Context) (*ConsoleSession, bool) {
	if s, ok := ctx.Value(consoleSessionKey{}).(*ConsoleSession); ok && s != nil {
		return s, true
	}
	return nil, false
}
