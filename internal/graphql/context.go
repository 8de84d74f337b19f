package graphql

import "context"

type tokenKey struct{}

// WithToken attaches a bearer token to ctx; Client.Do sends it in the
// Authorization header.
func WithToken(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFromContext returns the token attached by WithToken.
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}
