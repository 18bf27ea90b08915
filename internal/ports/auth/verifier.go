package auth

import "context"

// AuthVerifier checks a bearer token and returns claims or an error.
// Token issuance lives outside this service; only the port is defined here.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
