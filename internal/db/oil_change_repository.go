package db

import (
	"context"
	"errors"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"hisma-backend-go/internal/models"
)

const oilChangesCollection = "oilChanges"

// firestoreOilChangeRepository implements OilChangeRepository on the
// lubricenters/{id}/oilChanges sub-collection.
type firestoreOilChangeRepository struct {
	client *firestore.Client
}

// NewFirestoreOilChangeRepository creates a new Firestore-backed OilChangeRepository.
func NewFirestoreOilChangeRepository(client *firestore.Client) OilChangeRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for OilChangeRepository.")
	}
	return &firestoreOilChangeRepository{client: client}
}

func (r *firestoreOilChangeRepository) records(lubricenterID string) *firestore.CollectionRef {
	return r.client.Collection(lubricentersCollection).Doc(lubricenterID).Collection(oilChangesCollection)
}

// Create adds a new record under the lubricenter's sub-collection. A record ID
// is generated when the caller did not assign one.
func (r *firestoreOilChangeRepository) Create(ctx context.Context, lubricenterID string, record *models.OilChangeRecord) (string, error) {
	if lubricenterID == "" {
		return "", errors.New("lubricenterID cannot be empty for Create operation")
	}
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	record.LubricenterID = lubricenterID

	_, err := r.records(lubricenterID).Doc(record.ID).Create(ctx, record)
	if err != nil {
		return "", fmt.Errorf("failed to create oil-change record: %w", err)
	}
	return record.ID, nil
}

// GetByID retrieves a record by its ID within the lubricenter's sub-collection.
func (r *firestoreOilChangeRepository) GetByID(ctx context.Context, lubricenterID, recordID string) (*models.OilChangeRecord, error) {
	if lubricenterID == "" || recordID == "" {
		return nil, errors.New("lubricenterID and recordID cannot be empty for GetByID operation")
	}
	docSnap, err := r.records(lubricenterID).Doc(recordID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("oil-change record '%s' not found: %w", recordID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get oil-change record '%s': %w", recordID, err)
	}

	var record models.OilChangeRecord
	if err := docSnap.DataTo(&record); err != nil {
		return nil, fmt.Errorf("failed to decode oil-change record '%s': %w", recordID, err)
	}
	record.ID = docSnap.Ref.ID

	return &record, nil
}

// ListByLubricenter fetches the full record collection for a shop, ordered by
// creation timestamp descending. The backend has no substring query; search
// filters this list client-side, which is O(n) and only acceptable at small
// per-shop volumes (a few hundred records).
func (r *firestoreOilChangeRepository) ListByLubricenter(ctx context.Context, lubricenterID string) ([]*models.OilChangeRecord, error) {
	if lubricenterID == "" {
		return nil, errors.New("lubricenterID cannot be empty for ListByLubricenter operation")
	}

	iter := r.records(lubricenterID).OrderBy("createdAt", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	var records []*models.OilChangeRecord
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate oil-change records for lubricenter '%s': %w", lubricenterID, err)
		}

		var record models.OilChangeRecord
		if err := doc.DataTo(&record); err != nil {
			log.Printf("Error decoding oil-change record (ID: %s): %v. Skipping.", doc.Ref.ID, err)
			continue
		}
		record.ID = doc.Ref.ID
		records = append(records, &record)
	}

	return records, nil
}

// Update overwrites the record document by ID. Full overwrite; the caller
// supplies the complete record.
func (r *firestoreOilChangeRepository) Update(ctx context.Context, lubricenterID string, record *models.OilChangeRecord) error {
	if lubricenterID == "" || record.ID == "" {
		return errors.New("lubricenterID and record ID cannot be empty for Update operation")
	}
	_, err := r.records(lubricenterID).Doc(record.ID).Set(ctx, record)
	if err != nil {
		return fmt.Errorf("failed to update oil-change record '%s': %w", record.ID, err)
	}
	return nil
}

// Delete hard-deletes the record by ID. No undo.
func (r *firestoreOilChangeRepository) Delete(ctx context.Context, lubricenterID, recordID string) error {
	if lubricenterID == "" || recordID == "" {
		return errors.New("lubricenterID and recordID cannot be empty for Delete operation")
	}
	_, err := r.records(lubricenterID).Doc(recordID).Delete(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("oil-change record '%s' not found for deletion: %w", recordID, ErrNotFound)
		}
		return fmt.Errorf("failed to delete oil-change record '%s': %w", recordID, err)
	}
	return nil
}
