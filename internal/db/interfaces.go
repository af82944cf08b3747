package db

import (
	"context"

	"hisma-backend-go/internal/models"
)

// UserRepository defines the interface for user document storage.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, userID string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	// SetRoleAndLubricenter assigns a role and shop to an existing user, the
	// post-creation step of both registration flows.
	SetRoleAndLubricenter(ctx context.Context, userID string, role models.UserRole, lubricenterID string) error
}

// LubricenterRepository defines the interface for lubricenter document storage.
type LubricenterRepository interface {
	Create(ctx context.Context, lubricenter *models.Lubricenter) (string, error) // Returns new lubricenter ID
	GetByID(ctx context.Context, lubricenterID string) (*models.Lubricenter, error)
	GetByOwnerID(ctx context.Context, ownerID string) ([]*models.Lubricenter, error)
	GetByCUIT(ctx context.Context, cuit string) (*models.Lubricenter, error)
	Update(ctx context.Context, lubricenter *models.Lubricenter) error
	SetSubscriptionID(ctx context.Context, lubricenterID, subscriptionID string) error
	SetLogoURL(ctx context.Context, lubricenterID, logoURL string) error
}

// SubscriptionRepository defines the interface for subscription document storage.
type SubscriptionRepository interface {
	Create(ctx context.Context, subscription *models.Subscription) (string, error) // Returns new subscription ID
	GetByID(ctx context.Context, subscriptionID string) (*models.Subscription, error)
	// GetByLubricenterID returns the (at most one) subscription referencing the
	// lubricenter, or ErrNotFound when there is none.
	GetByLubricenterID(ctx context.Context, lubricenterID string) (*models.Subscription, error)
	// Overwrite replaces the subscription document fields by ID (renewal).
	Overwrite(ctx context.Context, subscription *models.Subscription) error
	// IncrementOilChangesUsed adds one to the usage counter inside a Firestore
	// transaction so concurrent increments are serialized, never a blind
	// read-then-write.
	IncrementOilChangesUsed(ctx context.Context, subscriptionID string) error
}

// OilChangeRepository defines the interface for the per-shop oilChanges
// sub-collection.
type OilChangeRepository interface {
	Create(ctx context.Context, lubricenterID string, record *models.OilChangeRecord) (string, error) // Returns new record ID
	GetByID(ctx context.Context, lubricenterID, recordID string) (*models.OilChangeRecord, error)
	// ListByLubricenter returns the full record collection for a shop, most
	// recent first. Search filters client-side on top of this; acceptable only
	// at small per-shop volumes.
	ListByLubricenter(ctx context.Context, lubricenterID string) ([]*models.OilChangeRecord, error)
	Update(ctx context.Context, lubricenterID string, record *models.OilChangeRecord) error
	Delete(ctx context.Context, lubricenterID, recordID string) error
}

// AuditRepository defines the interface for audit log storage.
type AuditRepository interface {
	Create(ctx context.Context, logEntry models.AuditLog) error
}

// AuthAccounts wraps the identity provider's account management: sign-up by
// email+password returning an opaque user ID, and password reset by email.
type AuthAccounts interface {
	CreateAccount(ctx context.Context, email, password, displayName string) (string, error)
	SendPasswordResetLink(ctx context.Context, email string) (string, error)
}
