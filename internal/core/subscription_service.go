package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hisma-backend-go/internal/db"
	"hisma-backend-go/internal/models"
)

// Errors returned by the SubscriptionService.
var (
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrInvalidPlanType      = errors.New("unknown plan type")
	ErrInvalidDuration      = errors.New("durationMonths must be greater than zero")
	// ErrSubscriptionUnlinked signals a partial failure: the subscription
	// document was created but writing its ID onto the lubricenter failed.
	// There is no automatic rollback; the record exists but is unlinked.
	ErrSubscriptionUnlinked = errors.New("subscription created but could not be linked to the lubricenter")
)

// Expiry messages used by Check. The validity check is read-only; ordering of
// the conditions matters for message precision, not correctness.
const (
	msgNoSubscription  = "no active subscription"
	msgPeriodEnded     = "subscription period ended"
	msgUsageLimit      = "usage limit reached"
	msgStatusNotActive = "subscription status is %s"
)

// A subscription month is a fixed 30 days, not a calendar month.
const daysPerMonth = 30

// subscriptionService implements the SubscriptionService interface.
type subscriptionService struct {
	subscriptionRepo db.SubscriptionRepository
	lubricenterRepo  db.LubricenterRepository
	auditService     AuditService
	now              Clock
}

// NewSubscriptionService creates a new SubscriptionService instance. A nil
// clock defaults to time.Now.
func NewSubscriptionService(
	sr db.SubscriptionRepository,
	lr db.LubricenterRepository,
	as AuditService,
	now Clock,
) SubscriptionService {
	if now == nil {
		now = time.Now
	}
	return &subscriptionService{
		subscriptionRepo: sr,
		lubricenterRepo:  lr,
		auditService:     as,
		now:              now,
	}
}

// Check determines whether the lubricenter's subscription permits further
// service recording. Backend failures yield CheckError, distinct from the
// business-expired outcomes.
func (s *subscriptionService) Check(ctx context.Context, lubricenterID string) CheckResult {
	if lubricenterID == "" {
		return CheckResult{Status: CheckError, Message: "lubricenterId is required"}
	}

	subscription, err := s.subscriptionRepo.GetByLubricenterID(ctx, lubricenterID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return CheckResult{Status: CheckExpired, Message: msgNoSubscription}
		}
		return CheckResult{Status: CheckError, Message: err.Error()}
	}

	if subscription.Status != models.SubscriptionActive {
		return CheckResult{Status: CheckExpired, Message: fmt.Sprintf(msgStatusNotActive, subscription.Status)}
	}
	if subscription.EndDate.Before(s.now()) {
		return CheckResult{Status: CheckExpired, Message: msgPeriodEnded}
	}
	if subscription.OilChangesUsed >= subscription.OilChangesLimit {
		return CheckResult{Status: CheckExpired, Message: msgUsageLimit}
	}

	return CheckResult{Status: CheckValid}
}

// buildPeriod computes the subscription window and quota for a plan.
func (s *subscriptionService) buildPeriod(planType models.PlanType, durationMonths int) (start, end time.Time, limit int, err error) {
	if !planType.Valid() {
		return time.Time{}, time.Time{}, 0, fmt.Errorf("%w: '%s'", ErrInvalidPlanType, planType)
	}
	if durationMonths <= 0 {
		return time.Time{}, time.Time{}, 0, ErrInvalidDuration
	}
	start = s.now().UTC()
	end = start.Add(time.Duration(durationMonths) * daysPerMonth * 24 * time.Hour)
	return start, end, planType.OilChangeLimit(), nil
}

// Create establishes a new ACTIVE subscription for the lubricenter and writes
// the subscription ID back onto the shop document. A link failure after a
// successful create surfaces as ErrSubscriptionUnlinked so the caller knows
// the document exists; there is no rollback.
func (s *subscriptionService) Create(ctx context.Context, lubricenterID string, planType models.PlanType, durationMonths int, autoRenew bool) (*models.Subscription, error) {
	if lubricenterID == "" {
		return nil, errors.New("lubricenterId is required to create a subscription")
	}

	start, end, limit, err := s.buildPeriod(planType, durationMonths)
	if err != nil {
		return nil, err
	}

	subscription := &models.Subscription{
		LubricenterID:   lubricenterID,
		PlanType:        planType,
		Status:          models.SubscriptionActive,
		StartDate:       start,
		EndDate:         end,
		OilChangesLimit: limit,
		OilChangesUsed:  0,
		AutoRenew:       autoRenew,
		CreatedAt:       start,
		UpdatedAt:       start,
	}

	subscriptionID, err := s.subscriptionRepo.Create(ctx, subscription)
	if err != nil {
		return nil, fmt.Errorf("failed to create subscription for lubricenter '%s': %w", lubricenterID, err)
	}
	subscription.ID = subscriptionID

	if err := s.lubricenterRepo.SetSubscriptionID(ctx, lubricenterID, subscriptionID); err != nil {
		return subscription, fmt.Errorf("%w (subscription ID '%s'): %v", ErrSubscriptionUnlinked, subscriptionID, err)
	}

	s.audit(ctx, subscription.LubricenterID, "SUBSCRIPTION_CREATE", subscriptionID, map[string]interface{}{
		"planType":       planType,
		"durationMonths": durationMonths,
	})

	return subscription, nil
}

// Renew overwrites the subscription with a fresh period and limit for the
// chosen plan, resets the usage counter and reactivates it.
func (s *subscriptionService) Renew(ctx context.Context, subscriptionID string, planType models.PlanType, durationMonths int, autoRenew bool) (*models.Subscription, error) {
	subscription, err := s.subscriptionRepo.GetByID(ctx, subscriptionID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: ID '%s'", ErrSubscriptionNotFound, subscriptionID)
		}
		return nil, fmt.Errorf("failed to get subscription '%s' for renewal: %w", subscriptionID, err)
	}

	start, end, limit, err := s.buildPeriod(planType, durationMonths)
	if err != nil {
		return nil, err
	}

	subscription.PlanType = planType
	subscription.Status = models.SubscriptionActive
	subscription.StartDate = start
	subscription.EndDate = end
	subscription.OilChangesLimit = limit
	subscription.OilChangesUsed = 0
	subscription.AutoRenew = autoRenew
	subscription.UpdatedAt = s.now().UTC()

	if err := s.subscriptionRepo.Overwrite(ctx, subscription); err != nil {
		return nil, fmt.Errorf("failed to renew subscription '%s': %w", subscriptionID, err)
	}

	s.audit(ctx, subscription.LubricenterID, "SUBSCRIPTION_RENEW", subscriptionID, map[string]interface{}{
		"planType":       planType,
		"durationMonths": durationMonths,
	})

	return subscription, nil
}

// GetByLubricenterID returns the lubricenter's subscription.
func (s *subscriptionService) GetByLubricenterID(ctx context.Context, lubricenterID string) (*models.Subscription, error) {
	subscription, err := s.subscriptionRepo.GetByLubricenterID(ctx, lubricenterID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: lubricenter '%s'", ErrSubscriptionNotFound, lubricenterID)
		}
		return nil, fmt.Errorf("failed to get subscription for lubricenter '%s': %w", lubricenterID, err)
	}
	return subscription, nil
}

// RecordUsage counts one oil change against the quota via the repository's
// transactional increment. The counter is allowed to pass the limit; the
// validity check is what blocks further recording. Failures are reported,
// never retried automatically.
func (s *subscriptionService) RecordUsage(ctx context.Context, subscriptionID string) error {
	if err := s.subscriptionRepo.IncrementOilChangesUsed(ctx, subscriptionID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("%w: ID '%s'", ErrSubscriptionNotFound, subscriptionID)
		}
		return fmt.Errorf("failed to record usage on subscription '%s': %w", subscriptionID, err)
	}
	return nil
}

// audit best-effort records a subscription lifecycle event. Audit failures
// are logged by the audit service and never fail the main operation.
func (s *subscriptionService) audit(ctx context.Context, userID, action, targetID string, details map[string]interface{}) {
	if s.auditService == nil {
		return
	}
	_ = s.auditService.CreateAuditLog(ctx, models.AuditLog{
		UserID:     userID,
		Action:     action,
		TargetType: "SUBSCRIPTION",
		TargetID:   targetID,
		Details:    details,
	})
}
