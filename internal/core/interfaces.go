package core

import (
	"context"
	"time"

	"hisma-backend-go/internal/models"
)

// UserService defines user-profile operations.
type UserService interface {
	GetByID(ctx context.Context, userID string) (*models.User, error)
	// ResolveLubricenterID determines which shop the user acts for: their
	// assigned lubricenterId, or the first shop they own.
	ResolveLubricenterID(ctx context.Context, userID string) (string, error)
}

// LubricenterService defines shop profile operations.
type LubricenterService interface {
	GetByID(ctx context.Context, lubricenterID string) (*models.Lubricenter, error)
	Update(ctx context.Context, userID, lubricenterID string, req models.UpdateLubricenterRequest) (*models.Lubricenter, error)
	SetLogo(ctx context.Context, userID, lubricenterID string, image []byte, contentType string) (string, error)
}

// CheckStatus tags the outcome of a subscription validity check.
type CheckStatus string

const (
	CheckValid   CheckStatus = "VALID"
	CheckExpired CheckStatus = "EXPIRED"
	// CheckError covers backend-level failures, distinct from business expiry.
	CheckError CheckStatus = "ERROR"
)

// CheckResult is the tagged outcome of Check: Valid, Expired(message) or
// Error(message).
type CheckResult struct {
	Status  CheckStatus `json:"status"`
	Message string      `json:"message,omitempty"`
}

// SubscriptionService defines subscription lifecycle and quota operations.
type SubscriptionService interface {
	// Check determines whether the lubricenter's subscription permits further
	// service recording. Read-only.
	Check(ctx context.Context, lubricenterID string) CheckResult
	// Create establishes a new subscription and links it to the lubricenter.
	Create(ctx context.Context, lubricenterID string, planType models.PlanType, durationMonths int, autoRenew bool) (*models.Subscription, error)
	// Renew overwrites the subscription with a fresh period, limit and a reset
	// usage counter.
	Renew(ctx context.Context, subscriptionID string, planType models.PlanType, durationMonths int, autoRenew bool) (*models.Subscription, error)
	GetByLubricenterID(ctx context.Context, lubricenterID string) (*models.Subscription, error)
	// RecordUsage transactionally counts one oil change against the quota.
	RecordUsage(ctx context.Context, subscriptionID string) error
}

// OilChangeService defines record CRUD and search scoped to a lubricenter.
type OilChangeService interface {
	Create(ctx context.Context, userID string, req models.OilChangeRequest) (*models.OilChangeRecord, error)
	GetByID(ctx context.Context, userID, recordID string) (*models.OilChangeRecord, error)
	// List returns the shop's records, most recent first; a non-empty query
	// filters by case-insensitive substring across customer name, plate,
	// vehicle brand and model.
	List(ctx context.Context, userID, query string) ([]*models.OilChangeRecord, error)
	Update(ctx context.Context, userID, recordID string, req models.OilChangeRequest) (*models.OilChangeRecord, error)
	Delete(ctx context.Context, userID, recordID string) error
	// BuildTicket renders the printable PDF for a record.
	BuildTicket(ctx context.Context, userID, recordID string) ([]byte, string, error)
	// WhatsAppShareLink builds the chat deep link with the service summary.
	WhatsAppShareLink(ctx context.Context, userID, recordID string) (string, error)
	// EmailShareLink builds a mail-compose link with the service summary.
	EmailShareLink(ctx context.Context, userID, recordID, to string) (string, error)
}

// RegistrationService defines the multi-step sign-up flows. Steps are
// best-effort sequential: a mid-flow failure leaves earlier steps committed
// and the error names the step that failed.
type RegistrationService interface {
	RegisterLubricenter(ctx context.Context, req models.RegisterLubricenterRequest) (*models.Lubricenter, error)
	RegisterEmployee(ctx context.Context, req models.RegisterEmployeeRequest) (*models.User, error)
}

// AuditService records audit trail events.
type AuditService interface {
	CreateAuditLog(ctx context.Context, logEntry models.AuditLog) error
}

// Clock supplies the current time; injected so date arithmetic is testable.
type Clock func() time.Time
