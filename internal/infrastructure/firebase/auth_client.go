package firebase

import (
	"context"

	"firebase.google.com/go/v4/auth"

	"drivn/internal/domain/entity"
)

// AuthClient wraps the Firebase auth boundary. The core never manages
// login/logout or token refresh; it only resolves an ambient session from a
// verified ID token.
type AuthClient struct {
	client *auth.Client
}

func NewAuthClient(client *auth.Client) *AuthClient {
	return &AuthClient{
		client: client,
	}
}

func (a *AuthClient) VerifyToken(ctx context.Context, idToken string) (string, error) {
	token, err := a.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", err
	}
	return token.UID, nil
}

// SessionFromToken resolves the viewer session for a verified ID token.
func (a *AuthClient) SessionFromToken(ctx context.Context, idToken string) (*entity.Session, error) {
	token, err := a.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, err
	}

	session := &entity.Session{UID: token.UID}
	if name, ok := token.Claims["name"].(string); ok {
		session.Username = name
	}
	return session, nil
}

// GenerateCustomToken mints a custom token for a uid; used by the dev token
// endpoint in non-production environments only.
func (a *AuthClient) GenerateCustomToken(ctx context.Context, uid string) (string, error) {
	return a.client.CustomToken(ctx, uid)
}
