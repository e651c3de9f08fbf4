package auth

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/idtoken"

	"medibook/utils"
)

// TokenVerifier validates a third-party identity token and yields the
// subject and email it asserts. The booking flow only ever consumes
// success or failure; provider protocol detail stays behind this
// interface.
type TokenVerifier interface {
	Verify(ctx context.Context, idToken string) (subject, email string, err error)
}

// GoogleVerifier validates Google-issued ID tokens against a client id.
type GoogleVerifier struct {
	Audience string
}

func (v *GoogleVerifier) Verify(ctx context.Context, raw string) (string, string, error) {
	payload, err := idtoken.Validate(ctx, raw, v.Audience)
	if err != nil {
		return "", "", fmt.Errorf("id token validation failed: %w", err)
	}
	email, _ := payload.Claims["email"].(string)
	return payload.Subject, email, nil
}

// sessionTokenTTL is the lifetime of the first-party token issued after a
// successful exchange.
const sessionTokenTTL = 24 * time.Hour

// ExchangeToken turns a verified identity token into a first-party JWT the
// client uses for the rest of the flow.
func ExchangeToken(ctx context.Context, verifier TokenVerifier, raw string) (token, subject, email string, err error) {
	subject, email, err = verifier.Verify(ctx, raw)
	if err != nil {
		return "", "", "", err
	}
	token, err = utils.GenerateToken(subject, email, sessionTokenTTL)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to issue session token: %w", err)
	}
	return token, subject, email, nil
}
