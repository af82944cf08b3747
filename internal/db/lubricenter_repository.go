package db

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"hisma-backend-go/internal/models"
)

const lubricentersCollection = "lubricenters"

// firestoreLubricenterRepository implements LubricenterRepository on Firestore.
type firestoreLubricenterRepository struct {
	client *firestore.Client
}

// NewFirestoreLubricenterRepository creates a new Firestore-backed LubricenterRepository.
func NewFirestoreLubricenterRepository(client *firestore.Client) LubricenterRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for LubricenterRepository.")
	}
	return &firestoreLubricenterRepository{client: client}
}

// Create adds a new lubricenter document with an auto-generated ID and sets
// lubricenter.ID before saving.
func (r *firestoreLubricenterRepository) Create(ctx context.Context, lubricenter *models.Lubricenter) (string, error) {
	docRef := r.client.Collection(lubricentersCollection).NewDoc()
	lubricenter.ID = docRef.ID

	_, err := docRef.Create(ctx, lubricenter)
	if err != nil {
		return "", fmt.Errorf("failed to create lubricenter: %w", err)
	}
	return docRef.ID, nil
}

// GetByID retrieves a lubricenter document by its ID.
func (r *firestoreLubricenterRepository) GetByID(ctx context.Context, lubricenterID string) (*models.Lubricenter, error) {
	if lubricenterID == "" {
		return nil, errors.New("lubricenterID cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(lubricentersCollection).Doc(lubricenterID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("lubricenter with ID '%s' not found: %w", lubricenterID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get lubricenter with ID '%s': %w", lubricenterID, err)
	}

	var lubricenter models.Lubricenter
	if err := docSnap.DataTo(&lubricenter); err != nil {
		return nil, fmt.Errorf("failed to decode lubricenter data for ID '%s': %w", lubricenterID, err)
	}
	lubricenter.ID = docSnap.Ref.ID

	return &lubricenter, nil
}

// GetByOwnerID retrieves all lubricenters owned by a user, most recent first.
func (r *firestoreLubricenterRepository) GetByOwnerID(ctx context.Context, ownerID string) ([]*models.Lubricenter, error) {
	if ownerID == "" {
		return nil, errors.New("ownerID cannot be empty for GetByOwnerID operation")
	}

	iter := r.client.Collection(lubricentersCollection).
		Where("ownerId", "==", ownerID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var lubricenters []*models.Lubricenter
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate lubricenters for owner '%s': %w", ownerID, err)
		}

		var lubricenter models.Lubricenter
		if err := doc.DataTo(&lubricenter); err != nil {
			log.Printf("Error decoding lubricenter data (ID: %s) for owner '%s': %v. Skipping.", doc.Ref.ID, ownerID, err)
			continue
		}
		lubricenter.ID = doc.Ref.ID
		lubricenters = append(lubricenters, &lubricenter)
	}

	return lubricenters, nil
}

// GetByCUIT retrieves the lubricenter registered under the given tax ID, or
// ErrNotFound when no shop uses it. CUIT is unique per shop.
func (r *firestoreLubricenterRepository) GetByCUIT(ctx context.Context, cuit string) (*models.Lubricenter, error) {
	if cuit == "" {
		return nil, errors.New("cuit cannot be empty for GetByCUIT operation")
	}

	iter := r.client.Collection(lubricentersCollection).
		Where("cuit", "==", cuit).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, fmt.Errorf("lubricenter with CUIT '%s' not found: %w", cuit, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query lubricenter by CUIT '%s': %w", cuit, err)
	}

	var lubricenter models.Lubricenter
	if err := doc.DataTo(&lubricenter); err != nil {
		return nil, fmt.Errorf("failed to decode lubricenter data for CUIT '%s': %w", cuit, err)
	}
	lubricenter.ID = doc.Ref.ID

	return &lubricenter, nil
}

// Update overwrites the lubricenter document with the given state.
func (r *firestoreLubricenterRepository) Update(ctx context.Context, lubricenter *models.Lubricenter) error {
	if lubricenter.ID == "" {
		return errors.New("lubricenter ID cannot be empty for Update operation")
	}
	_, err := r.client.Collection(lubricentersCollection).Doc(lubricenter.ID).Set(ctx, lubricenter, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to update lubricenter with ID '%s': %w", lubricenter.ID, err)
	}
	return nil
}

// SetSubscriptionID writes the subscriptionId link field onto a lubricenter.
// Called after subscription creation; the caller treats a failure here as a
// distinct partial-failure outcome since the subscription document exists.
func (r *firestoreLubricenterRepository) SetSubscriptionID(ctx context.Context, lubricenterID, subscriptionID string) error {
	if lubricenterID == "" {
		return errors.New("lubricenterID cannot be empty for SetSubscriptionID operation")
	}
	_, err := r.client.Collection(lubricentersCollection).Doc(lubricenterID).Update(ctx, []firestore.Update{
		{Path: "subscriptionId", Value: subscriptionID},
		{Path: "updatedAt", Value: time.Now().UTC()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("lubricenter with ID '%s' not found: %w", lubricenterID, ErrNotFound)
		}
		return fmt.Errorf("failed to set subscription on lubricenter '%s': %w", lubricenterID, err)
	}
	return nil
}

// SetLogoURL writes the logoUrl field onto a lubricenter.
func (r *firestoreLubricenterRepository) SetLogoURL(ctx context.Context, lubricenterID, logoURL string) error {
	if lubricenterID == "" {
		return errors.New("lubricenterID cannot be empty for SetLogoURL operation")
	}
	_, err := r.client.Collection(lubricentersCollection).Doc(lubricenterID).Update(ctx, []firestore.Update{
		{Path: "logoUrl", Value: logoURL},
		{Path: "updatedAt", Value: time.Now().UTC()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("lubricenter with ID '%s' not found: %w", lubricenterID, ErrNotFound)
		}
		return fmt.Errorf("failed to set logo on lubricenter '%s': %w", lubricenterID, err)
	}
	return nil
}
