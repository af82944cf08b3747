package models

import "time"

// Lubricenter represents a lubrication-service shop, the tenant unit that owns
// oil-change records and a subscription. Shops are never hard-deleted; the
// Active flag soft-deactivates them.
type Lubricenter struct {
	ID             string    `json:"id" firestore:"-"` // Document ID, auto-generated
	FantasyName    string    `json:"fantasyName" firestore:"fantasyName"`
	CUIT           string    `json:"cuit" firestore:"cuit"` // Tax ID, unique per shop
	Address        string    `json:"address" firestore:"address"`
	Phone          string    `json:"phone,omitempty" firestore:"phone,omitempty"`
	Email          string    `json:"email,omitempty" firestore:"email,omitempty"`
	Responsible    string    `json:"responsible,omitempty" firestore:"responsible,omitempty"`
	TicketPrefix   string    `json:"ticketPrefix,omitempty" firestore:"ticketPrefix,omitempty"`
	LogoURL        string    `json:"logoUrl,omitempty" firestore:"logoUrl,omitempty"`
	OwnerID        string    `json:"ownerId" firestore:"ownerId"` // Must reference a LUBRICENTER_ADMIN user
	SubscriptionID string    `json:"subscriptionId,omitempty" firestore:"subscriptionId,omitempty"`
	Active         bool      `json:"active" firestore:"active"`
	CreatedAt      time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	UpdatedAt      time.Time `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
}
