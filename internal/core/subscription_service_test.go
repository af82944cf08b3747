package core

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hisma-backend-go/internal/models"
)

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func newSubscriptionFixture(now time.Time) (SubscriptionService, *memSubscriptionRepo, *memLubricenterRepo) {
	subRepo := newMemSubscriptionRepo()
	lubRepo := newMemLubricenterRepo()
	service := NewSubscriptionService(subRepo, lubRepo, NewAuditService(newMemAuditRepo()), fixedClock(now))
	return service, subRepo, lubRepo
}

func seedShop(t *testing.T, lubRepo *memLubricenterRepo) string {
	t.Helper()
	id, err := lubRepo.Create(context.Background(), &models.Lubricenter{
		FantasyName: "Lubricentro Norte",
		CUIT:        "30-12345678-9",
		OwnerID:     "owner-1",
		Active:      true,
	})
	require.NoError(t, err)
	return id
}

func TestCreateSubscriptionPeriodIsThirtyDayMonths(t *testing.T) {
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	service, _, lubRepo := newSubscriptionFixture(now)
	shopID := seedShop(t, lubRepo)

	sub, err := service.Create(context.Background(), shopID, models.PlanStandard, 3, false)
	require.NoError(t, err)

	assert.Equal(t, now, sub.StartDate)
	assert.Equal(t, now.Add(3*30*24*time.Hour), sub.EndDate, "a month is a fixed 30 days")
	assert.Equal(t, models.SubscriptionActive, sub.Status)
	assert.Equal(t, 0, sub.OilChangesUsed)
}

func TestCreateSubscriptionPlanLimits(t *testing.T) {
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		plan  models.PlanType
		limit int
	}{
		{models.PlanBasic, 50},
		{models.PlanStandard, 100},
		{models.PlanPremium, 200},
	}

	for _, tt := range tests {
		t.Run(string(tt.plan), func(t *testing.T) {
			service, _, lubRepo := newSubscriptionFixture(now)
			shopID := seedShop(t, lubRepo)

			sub, err := service.Create(context.Background(), shopID, tt.plan, 1, false)
			require.NoError(t, err)
			assert.Equal(t, tt.limit, sub.OilChangesLimit)
		})
	}
}

func TestCreateSubscriptionLinksShop(t *testing.T) {
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	service, _, lubRepo := newSubscriptionFixture(now)
	shopID := seedShop(t, lubRepo)

	sub, err := service.Create(context.Background(), shopID, models.PlanBasic, 1, true)
	require.NoError(t, err)

	shop, err := lubRepo.GetByID(context.Background(), shopID)
	require.NoError(t, err)
	assert.Equal(t, sub.ID, shop.SubscriptionID)
}

func TestCreateSubscriptionRejectsBadInput(t *testing.T) {
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	service, _, lubRepo := newSubscriptionFixture(now)
	shopID := seedShop(t, lubRepo)

	_, err := service.Create(context.Background(), shopID, models.PlanType("GOLD"), 1, false)
	assert.ErrorIs(t, err, ErrInvalidPlanType)

	_, err = service.Create(context.Background(), shopID, models.PlanBasic, 0, false)
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestCheckOutcomes(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		mutate      func(*models.Subscription)
		wantStatus  CheckStatus
		wantMessage string
	}{
		{
			name:       "active within period and quota",
			mutate:     func(s *models.Subscription) {},
			wantStatus: CheckValid,
		},
		{
			name:        "status not active",
			mutate:      func(s *models.Subscription) { s.Status = models.SubscriptionCancelled },
			wantStatus:  CheckExpired,
			wantMessage: "subscription status is CANCELLED",
		},
		{
			name:        "period ended",
			mutate:      func(s *models.Subscription) { s.EndDate = now.Add(-time.Hour) },
			wantStatus:  CheckExpired,
			wantMessage: "subscription period ended",
		},
		{
			name:        "quota exhausted",
			mutate:      func(s *models.Subscription) { s.OilChangesUsed = s.OilChangesLimit },
			wantStatus:  CheckExpired,
			wantMessage: "usage limit reached",
		},
		{
			name:        "quota overshot",
			mutate:      func(s *models.Subscription) { s.OilChangesUsed = s.OilChangesLimit + 3 },
			wantStatus:  CheckExpired,
			wantMessage: "usage limit reached",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, subRepo, lubRepo := newSubscriptionFixture(now)
			shopID := seedShop(t, lubRepo)

			sub, err := service.Create(context.Background(), shopID, models.PlanBasic, 1, false)
			require.NoError(t, err)

			tt.mutate(sub)
			require.NoError(t, subRepo.Overwrite(context.Background(), sub))

			result := service.Check(context.Background(), shopID)
			assert.Equal(t, tt.wantStatus, result.Status)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, result.Message)
			}
		})
	}
}

func TestCheckWithoutSubscription(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	service, _, lubRepo := newSubscriptionFixture(now)
	shopID := seedShop(t, lubRepo)

	result := service.Check(context.Background(), shopID)
	assert.Equal(t, CheckExpired, result.Status)
	assert.Equal(t, "no active subscription", result.Message)
}

func TestRenewResetsUsageAndPeriod(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	service, subRepo, lubRepo := newSubscriptionFixture(now)
	shopID := seedShop(t, lubRepo)

	sub, err := service.Create(context.Background(), shopID, models.PlanBasic, 1, false)
	require.NoError(t, err)

	sub.OilChangesUsed = 47
	sub.Status = models.SubscriptionExpired
	require.NoError(t, subRepo.Overwrite(context.Background(), sub))

	renewed, err := service.Renew(context.Background(), sub.ID, models.PlanPremium, 12, true)
	require.NoError(t, err)

	assert.Equal(t, models.SubscriptionActive, renewed.Status)
	assert.Equal(t, 0, renewed.OilChangesUsed)
	assert.Equal(t, 200, renewed.OilChangesLimit)
	assert.Equal(t, now.Add(12*30*24*time.Hour), renewed.EndDate)
	assert.True(t, renewed.AutoRenew)
}

func TestRenewUnknownSubscription(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	service, _, _ := newSubscriptionFixture(now)

	_, err := service.Renew(context.Background(), "missing", models.PlanBasic, 1, false)
	assert.ErrorIs(t, err, ErrSubscriptionNotFound)
}

func TestRecordUsageConcurrentIncrementsAreNotLost(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	service, subRepo, lubRepo := newSubscriptionFixture(now)
	shopID := seedShop(t, lubRepo)

	sub, err := service.Create(context.Background(), shopID, models.PlanPremium, 1, false)
	require.NoError(t, err)

	const workers = 25
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			assert.NoError(t, service.RecordUsage(context.Background(), sub.ID))
		}()
	}
	wg.Wait()

	stored, err := subRepo.GetByID(context.Background(), sub.ID)
	require.NoError(t, err)
	assert.Equal(t, workers, stored.OilChangesUsed)
}
