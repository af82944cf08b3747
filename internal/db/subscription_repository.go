package db

import (
	"context"
	"errors"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"hisma-backend-go/internal/models"
)

const subscriptionsCollection = "subscriptions"

// firestoreSubscriptionRepository implements SubscriptionRepository on Firestore.
type firestoreSubscriptionRepository struct {
	client *firestore.Client
}

// NewFirestoreSubscriptionRepository creates a new Firestore-backed SubscriptionRepository.
func NewFirestoreSubscriptionRepository(client *firestore.Client) SubscriptionRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for SubscriptionRepository.")
	}
	return &firestoreSubscriptionRepository{client: client}
}

// Create adds a new subscription document with an auto-generated ID and sets
// subscription.ID before saving.
func (r *firestoreSubscriptionRepository) Create(ctx context.Context, subscription *models.Subscription) (string, error) {
	docRef := r.client.Collection(subscriptionsCollection).NewDoc()
	subscription.ID = docRef.ID

	_, err := docRef.Create(ctx, subscription)
	if err != nil {
		return "", fmt.Errorf("failed to create subscription: %w", err)
	}
	return docRef.ID, nil
}

// GetByID retrieves a subscription document by its ID.
func (r *firestoreSubscriptionRepository) GetByID(ctx context.Context, subscriptionID string) (*models.Subscription, error) {
	if subscriptionID == "" {
		return nil, errors.New("subscriptionID cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(subscriptionsCollection).Doc(subscriptionID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("subscription with ID '%s' not found: %w", subscriptionID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get subscription with ID '%s': %w", subscriptionID, err)
	}

	var subscription models.Subscription
	if err := docSnap.DataTo(&subscription); err != nil {
		return nil, fmt.Errorf("failed to decode subscription data for ID '%s': %w", subscriptionID, err)
	}
	subscription.ID = docSnap.Ref.ID

	return &subscription, nil
}

// GetByLubricenterID returns the subscription referencing the lubricenter.
// There is at most one; absence is ErrNotFound, distinct from query failures.
func (r *firestoreSubscriptionRepository) GetByLubricenterID(ctx context.Context, lubricenterID string) (*models.Subscription, error) {
	if lubricenterID == "" {
		return nil, errors.New("lubricenterID cannot be empty for GetByLubricenterID operation")
	}

	iter := r.client.Collection(subscriptionsCollection).
		Where("lubricenterId", "==", lubricenterID).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, fmt.Errorf("subscription for lubricenter '%s' not found: %w", lubricenterID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query subscription for lubricenter '%s': %w", lubricenterID, err)
	}

	var subscription models.Subscription
	if err := doc.DataTo(&subscription); err != nil {
		return nil, fmt.Errorf("failed to decode subscription data for lubricenter '%s': %w", lubricenterID, err)
	}
	subscription.ID = doc.Ref.ID

	return &subscription, nil
}

// Overwrite replaces the subscription document fields by ID. Used for renewal,
// which resets the period and usage counter in one write.
func (r *firestoreSubscriptionRepository) Overwrite(ctx context.Context, subscription *models.Subscription) error {
	if subscription.ID == "" {
		return errors.New("subscription ID cannot be empty for Overwrite operation")
	}
	_, err := r.client.Collection(subscriptionsCollection).Doc(subscription.ID).Set(ctx, subscription)
	if err != nil {
		return fmt.Errorf("failed to overwrite subscription with ID '%s': %w", subscription.ID, err)
	}
	return nil
}

// IncrementOilChangesUsed adds one to the usage counter inside a Firestore
// transaction: read the current value, write current+1. The transaction's
// optimistic retry serializes concurrent increments so none are lost. The
// counter is not capped here; the validity check is what enforces the quota.
func (r *firestoreSubscriptionRepository) IncrementOilChangesUsed(ctx context.Context, subscriptionID string) error {
	if subscriptionID == "" {
		return errors.New("subscriptionID cannot be empty for IncrementOilChangesUsed operation")
	}

	docRef := r.client.Collection(subscriptionsCollection).Doc(subscriptionID)
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		docSnap, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return fmt.Errorf("subscription with ID '%s' not found: %w", subscriptionID, ErrNotFound)
			}
			return err
		}

		current, err := docSnap.DataAt("oilChangesUsed")
		if err != nil {
			return fmt.Errorf("failed to read oilChangesUsed: %w", err)
		}
		used, ok := current.(int64)
		if !ok {
			return fmt.Errorf("unexpected type %T for oilChangesUsed", current)
		}

		return tx.Update(docRef, []firestore.Update{
			{Path: "oilChangesUsed", Value: used + 1},
		})
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to increment usage for subscription '%s': %w", subscriptionID, err)
	}
	return nil
}
