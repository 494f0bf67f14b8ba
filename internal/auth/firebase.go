package auth

import (
	"context"
	"fmt"
	"os"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// Session identifies the signed-in user. The zero value means signed out,
// which is a valid steady state: every tracker operation treats it as a
// silent no-op, not an error.
type Session struct {
	UID      string
	Email    string
	Name     string
	Verified bool
}

// SignedIn reports whether the session belongs to an authenticated user.
func (s Session) SignedIn() bool {
	return s.UID != ""
}

// FirebaseAuth verifies Firebase ID tokens into Sessions.
type FirebaseAuth struct {
	client *fbauth.Client
}

// NewFirebaseAuth creates a FirebaseAuth instance. On Cloud Run the default
// credentials apply; locally a service account key file can be pointed at via
// the usual environment variables.
func NewFirebaseAuth(ctx context.Context) (*FirebaseAuth, error) {
	opts := []option.ClientOption{}
	if creds := serviceAccountPath(); creds != "" {
		opts = append(opts, option.WithCredentialsFile(creds))
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("initialize firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("get auth client: %w", err)
	}

	return &FirebaseAuth{client: client}, nil
}

// VerifyToken verifies a Firebase ID token and returns the session it
// represents.
func (f *FirebaseAuth) VerifyToken(ctx context.Context, idToken string) (Session, error) {
	token, err := f.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return Session{}, fmt.Errorf("verify ID token: %w", err)
	}

	verified, _ := token.Claims["email_verified"].(bool)
	sess := Session{
		UID:      token.UID,
		Verified: verified,
	}
	if email, ok := token.Claims["email"].(string); ok {
		sess.Email = email
	}
	if name, ok := token.Claims["name"].(string); ok {
		sess.Name = name
	}

	return sess, nil
}

func serviceAccountPath() string {
	for _, envVar := range []string{"GOOGLE_APPLICATION_CREDENTIALS", "FIREBASE_SERVICE_ACCOUNT_KEY"} {
		if path := os.Getenv(envVar); path != "" {
			return path
		}
	}
	return ""
}
