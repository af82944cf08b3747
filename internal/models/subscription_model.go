package models

import "time"

// PlanType is the subscription tier, fixing the oil-change quota.
type PlanType string

const (
	PlanBasic    PlanType = "BASIC"
	PlanStandard PlanType = "STANDARD"
	PlanPremium  PlanType = "PREMIUM"
)

// PlanOilChangeLimits maps each plan to its oil-change quota per period.
var PlanOilChangeLimits = map[PlanType]int{
	PlanBasic:    50,
	PlanStandard: 100,
	PlanPremium:  200,
}

// OilChangeLimit returns the quota for the plan. Unknown plans fall back to
// the BASIC quota rather than an unlimited one.
func (p PlanType) OilChangeLimit() int {
	if limit, ok := PlanOilChangeLimits[p]; ok {
		return limit
	}
	return PlanOilChangeLimits[PlanBasic]
}

// Valid reports whether p is one of the known plan tiers.
func (p PlanType) Valid() bool {
	_, ok := PlanOilChangeLimits[p]
	return ok
}

// SubscriptionStatus is the lifecycle state of a subscription.
type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "ACTIVE"
	SubscriptionInactive  SubscriptionStatus = "INACTIVE"
	SubscriptionExpired   SubscriptionStatus = "EXPIRED"
	SubscriptionCancelled SubscriptionStatus = "CANCELLED"
)

// Subscription tracks the plan, period and usage quota of a lubricenter.
// Exactly one active subscription per lubricenter at a time; OilChangesUsed is
// monotonically non-decreasing within a period and only ever written through
// the transactional increment.
type Subscription struct {
	ID              string             `json:"id" firestore:"-"` // Document ID, auto-generated
	LubricenterID   string             `json:"lubricenterId" firestore:"lubricenterId"`
	PlanType        PlanType           `json:"planType" firestore:"planType"`
	Status          SubscriptionStatus `json:"status" firestore:"status"`
	StartDate       time.Time          `json:"startDate" firestore:"startDate"`
	EndDate         time.Time          `json:"endDate" firestore:"endDate"`
	OilChangesLimit int                `json:"oilChangesLimit" firestore:"oilChangesLimit"`
	OilChangesUsed  int                `json:"oilChangesUsed" firestore:"oilChangesUsed"`
	AutoRenew       bool               `json:"autoRenew" firestore:"autoRenew"`
	CreatedAt       time.Time          `json:"createdAt" firestore:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt" firestore:"updatedAt"`
}
