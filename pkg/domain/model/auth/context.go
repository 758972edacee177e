package auth

import "context"

type ctxTokenKey struct{}

// ContextWithToken returns a context carrying the authenticated token
func ContextWithToken(ctx context.Context, token *Token) context.Context {
	return context.WithValue(ctx, ctxTokenKey{}, token)
}

// TokenFromContext extracts the authenticated token from the context.
// Returns nil if no token is present.
func TokenFromContext(ctx context.Context) *Token {
	token, ok := ctx.Value(ctxTokenKey{}).(*Token)
	if !ok {
		return nil
	}
	return token
}
