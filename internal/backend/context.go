package backend

import "context"

type contextKey string

const tokenKey contextKey = "backend-token"

// WithToken stores the operator's backend token; the client sends it as a bearer token.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey).(string)
	return token, ok && token != ""
}
