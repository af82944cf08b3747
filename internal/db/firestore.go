package db

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	gcs "cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"hisma-backend-go/internal/config"
)

// Clients bundles the Firebase Admin SDK clients the application depends on.
// It is created once at startup and passed explicitly to every component that
// needs backend access, so tests can substitute in-memory fakes behind the
// repository interfaces instead.
type Clients struct {
	Firestore *firestore.Client
	Auth      *auth.Client
	Storage   *gcs.Client
}

// InitFirebase initializes the Firebase Admin SDK and returns the Firestore,
// Auth and Storage clients. Credentials come from the config: a service
// account file path, a base64-encoded service account JSON, or Application
// Default Credentials when neither is set.
func InitFirebase(ctx context.Context, appConfig *config.Config) (*Clients, error) {
	if appConfig == nil {
		return nil, fmt.Errorf("InitFirebase: appConfig cannot be nil")
	}

	var opts []option.ClientOption
	switch {
	case appConfig.GoogleApplicationCredentials != "":
		if _, err := os.Stat(appConfig.GoogleApplicationCredentials); os.IsNotExist(err) {
			log.Printf("Warning: credentials file does not exist: %s", appConfig.GoogleApplicationCredentials)
		}
		opts = append(opts, option.WithCredentialsFile(appConfig.GoogleApplicationCredentials))
	case appConfig.FirebaseServiceAccountJSONBase64 != "":
		decoded, err := base64.StdEncoding.DecodeString(appConfig.FirebaseServiceAccountJSONBase64)
		if err != nil {
			return nil, fmt.Errorf("failed to decode FIREBASE_SERVICE_ACCOUNT_JSON_BASE64: %w", err)
		}
		opts = append(opts, option.WithCredentialsJSON(decoded))
	default:
		log.Println("Initializing Firebase using Application Default Credentials (ADC).")
	}

	fbConfig := &firebase.Config{
		ProjectID:     appConfig.FirebaseProjectID,
		StorageBucket: appConfig.StorageBucket,
	}

	app, err := firebase.NewApp(ctx, fbConfig, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase.NewApp: %w", err)
	}

	fsClient, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("app.Firestore: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		fsClient.Close()
		return nil, fmt.Errorf("app.Auth: %w", err)
	}

	gcsClient, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		fsClient.Close()
		return nil, fmt.Errorf("storage.NewClient: %w", err)
	}

	return &Clients{Firestore: fsClient, Auth: authClient, Storage: gcsClient}, nil
}

// Close releases the underlying client connections.
func (c *Clients) Close() {
	if c.Firestore != nil {
		c.Firestore.Close()
	}
	if c.Storage != nil {
		c.Storage.Close()
	}
}
