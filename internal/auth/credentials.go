package auth

import (
	"context"
	"net/http"
	"time"
)

// Credentials is the authentication context attached to outgoing API calls.
// The zero value is anonymous.
type Credentials struct {
	Token     string
	ExpiresAt time.Time
}

func (c Credentials) IsZero() bool {
	return c.Token == ""
}

func (c Credentials) Authorize(req *http.Request) {
	if c.Token == "" {
		return
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
}

// Provider hands out the credentials current at call time.
type Provider interface {
	Credentials(ctx context.Context) (Credentials, error)
}

type ProviderFunc func(ctx context.Context) (Credentials, error)

func (f ProviderFunc) Credentials(ctx context.Context) (Credentials, error) {
	return f(ctx)
}

// Static returns a Provider that always yields creds.
func Static(creds Credentials) Provider {
	return ProviderFunc(func(context.Context) (Credentials, error) {
		return creds, nil
	})
}
