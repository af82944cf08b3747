package db

import (
	"context"
	"fmt"
	"log"

	"firebase.google.com/go/v4/auth"
)

// firebaseAuthAccounts implements AuthAccounts on the Firebase Auth admin client.
type firebaseAuthAccounts struct {
	client *auth.Client
}

// NewFirebaseAuthAccounts creates a new Firebase-backed AuthAccounts.
func NewFirebaseAuthAccounts(client *auth.Client) AuthAccounts {
	if client == nil {
		log.Fatal("Firebase Auth client is not initialized for AuthAccounts.")
	}
	return &firebaseAuthAccounts{client: client}
}

// CreateAccount creates an email+password account in the identity provider
// and returns its opaque UID. The UID becomes the user document ID.
func (a *firebaseAuthAccounts) CreateAccount(ctx context.Context, email, password, displayName string) (string, error) {
	params := (&auth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(displayName)

	record, err := a.client.CreateUser(ctx, params)
	if err != nil {
		return "", fmt.Errorf("failed to create auth account for '%s': %w", email, err)
	}
	return record.UID, nil
}

// SendPasswordResetLink generates a password-reset link for the email. The
// caller is responsible for delivering it.
func (a *firebaseAuthAccounts) SendPasswordResetLink(ctx context.Context, email string) (string, error) {
	link, err := a.client.PasswordResetLink(ctx, email)
	if err != nil {
		return "", fmt.Errorf("failed to generate password reset link for '%s': %w", email, err)
	}
	return link, nil
}
