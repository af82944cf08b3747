package db

import (
	"context"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"

	"hisma-backend-go/internal/models"
)

const auditLogsCollection = "auditLogs"

// firestoreAuditRepository implements AuditRepository on Firestore.
type firestoreAuditRepository struct {
	client *firestore.Client
}

// NewFirestoreAuditRepository creates a new Firestore-backed AuditRepository.
func NewFirestoreAuditRepository(client *firestore.Client) AuditRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for AuditRepository.")
	}
	return &firestoreAuditRepository{client: client}
}

// Create appends an audit log entry with an auto-generated ID. The timestamp
// is server-assigned via the serverTimestamp tag.
func (r *firestoreAuditRepository) Create(ctx context.Context, logEntry models.AuditLog) error {
	_, _, err := r.client.Collection(auditLogsCollection).Add(ctx, logEntry)
	if err != nil {
		return fmt.Errorf("failed to create audit log entry: %w", err)
	}
	return nil
}
