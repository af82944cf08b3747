package core

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"hisma-backend-go/internal/db"
	"hisma-backend-go/internal/models"
	"hisma-backend-go/internal/pdf"
	"hisma-backend-go/internal/plates"
	"hisma-backend-go/internal/share"
)

// Errors returned by the OilChangeService.
var (
	ErrRecordNotFound      = errors.New("oil-change record not found")
	ErrInvalidPlate        = errors.New("invalid license plate format, use AB123CD, ABC123 or A123BCD")
	ErrMissingCustomerName = errors.New("customer name is required")
	ErrSubscriptionExpired = errors.New("subscription does not permit further service recording")
)

// oilChangeService implements the OilChangeService interface.
type oilChangeService struct {
	oilChangeRepo       db.OilChangeRepository
	lubricenterRepo     db.LubricenterRepository
	userService         UserService
	subscriptionService SubscriptionService
	auditService        AuditService
	now                 Clock
}

// NewOilChangeService creates a new OilChangeService instance. A nil clock
// defaults to time.Now.
func NewOilChangeService(
	or db.OilChangeRepository,
	lr db.LubricenterRepository,
	us UserService,
	ss SubscriptionService,
	as AuditService,
	now Clock,
) OilChangeService {
	if now == nil {
		now = time.Now
	}
	return &oilChangeService{
		oilChangeRepo:       or,
		lubricenterRepo:     lr,
		userService:         us,
		subscriptionService: ss,
		auditService:        as,
		now:                 now,
	}
}

// validateRequest runs the pre-flight checks that never reach the backend:
// required fields and plate format. The plate is normalized in place.
func validateRequest(req *models.OilChangeRequest) error {
	if strings.TrimSpace(req.CustomerName) == "" {
		return ErrMissingCustomerName
	}
	normalized, ok := plates.Normalize(req.VehiclePlate)
	if !ok {
		return fmt.Errorf("%w: '%s'", ErrInvalidPlate, req.VehiclePlate)
	}
	req.VehiclePlate = normalized
	return nil
}

// buildRecord maps a request onto a record without touching server-assigned
// fields (id, lubricenterId, timestamps, createdBy).
func buildRecord(req models.OilChangeRequest) models.OilChangeRecord {
	return models.OilChangeRecord{
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		VehicleType:   req.VehicleType,
		VehiclePlate:  req.VehiclePlate,
		VehicleBrand:  req.VehicleBrand,
		VehicleModel:  req.VehicleModel,
		VehicleYear:   req.VehicleYear,

		CurrentKm:    req.CurrentKm,
		NextChangeKm: req.NextChangeKm,
		PeriodMonths: req.PeriodMonths,

		OilBrand:     req.OilBrand,
		OilType:      req.OilType,
		OilViscosity: req.OilViscosity,
		OilQuantity:  req.OilQuantity,

		OilFilter:        req.OilFilter,
		OilFilterNotes:   req.OilFilterNotes,
		AirFilter:        req.AirFilter,
		AirFilterNotes:   req.AirFilterNotes,
		CabinFilter:      req.CabinFilter,
		CabinFilterNotes: req.CabinFilterNotes,
		FuelFilter:       req.FuelFilter,
		FuelFilterNotes:  req.FuelFilterNotes,

		Coolant:           req.Coolant,
		CoolantNotes:      req.CoolantNotes,
		Grease:            req.Grease,
		GreaseNotes:       req.GreaseNotes,
		Additive:          req.Additive,
		AdditiveType:      req.AdditiveType,
		AdditiveNotes:     req.AdditiveNotes,
		Gearbox:           req.Gearbox,
		GearboxNotes:      req.GearboxNotes,
		Differential:      req.Differential,
		DifferentialNotes: req.DifferentialNotes,

		Observations: req.Observations,
	}
}

// Create validates the request, checks the shop's subscription, persists the
// record and counts it against the quota. The usage increment runs after the
// record commit; an increment failure is reported but the record stays.
func (s *oilChangeService) Create(ctx context.Context, userID string, req models.OilChangeRequest) (*models.OilChangeRecord, error) {
	if err := validateRequest(&req); err != nil {
		return nil, err
	}

	lubricenterID, err := s.userService.ResolveLubricenterID(ctx, userID)
	if err != nil {
		return nil, err
	}

	check := s.subscriptionService.Check(ctx, lubricenterID)
	switch check.Status {
	case CheckValid:
	case CheckExpired:
		return nil, fmt.Errorf("%w: %s", ErrSubscriptionExpired, check.Message)
	default:
		return nil, fmt.Errorf("failed to verify subscription for lubricenter '%s': %s", lubricenterID, check.Message)
	}

	user, err := s.userService.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	record := buildRecord(req)
	record.LubricenterID = lubricenterID
	record.CreatedBy = user.FullName()
	record.CreatedAt = s.now().UTC()
	record.UpdatedAt = record.CreatedAt

	recordID, err := s.oilChangeRepo.Create(ctx, lubricenterID, &record)
	if err != nil {
		return nil, fmt.Errorf("failed to save oil-change record: %w", err)
	}
	record.ID = recordID

	subscription, err := s.subscriptionService.GetByLubricenterID(ctx, lubricenterID)
	if err != nil {
		return &record, fmt.Errorf("record saved but subscription lookup for usage accounting failed: %w", err)
	}
	if err := s.subscriptionService.RecordUsage(ctx, subscription.ID); err != nil {
		return &record, fmt.Errorf("record saved but usage accounting failed: %w", err)
	}

	s.audit(ctx, userID, "RECORD_CREATE", record.ID, map[string]interface{}{
		"vehiclePlate": record.VehiclePlate,
		"customerName": record.CustomerName,
	})

	return &record, nil
}

// GetByID retrieves a record from the acting user's shop. Absence is
// ErrRecordNotFound, distinct from backend failures.
func (s *oilChangeService) GetByID(ctx context.Context, userID, recordID string) (*models.OilChangeRecord, error) {
	lubricenterID, err := s.userService.ResolveLubricenterID(ctx, userID)
	if err != nil {
		return nil, err
	}

	record, err := s.oilChangeRepo.GetByID(ctx, lubricenterID, recordID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: ID '%s'", ErrRecordNotFound, recordID)
		}
		return nil, fmt.Errorf("failed to get oil-change record '%s': %w", recordID, err)
	}
	return record, nil
}

// matchesQuery reports whether the record matches the free-text query by
// case-insensitive substring across customer name, plate, brand and model.
func matchesQuery(record *models.OilChangeRecord, query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(record.CustomerName), q) ||
		strings.Contains(strings.ToLower(record.VehiclePlate), q) ||
		strings.Contains(strings.ToLower(record.VehicleBrand), q) ||
		strings.Contains(strings.ToLower(record.VehicleModel), q)
}

// List returns the shop's records, most recent first. A non-empty query
// filters client-side over the full collection fetch; the backend has no
// substring query, so this is O(n) per search and only holds up at small
// per-shop volumes.
func (s *oilChangeService) List(ctx context.Context, userID, query string) ([]*models.OilChangeRecord, error) {
	lubricenterID, err := s.userService.ResolveLubricenterID(ctx, userID)
	if err != nil {
		return nil, err
	}

	records, err := s.oilChangeRepo.ListByLubricenter(ctx, lubricenterID)
	if err != nil {
		return nil, fmt.Errorf("failed to list oil-change records for lubricenter '%s': %w", lubricenterID, err)
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return records, nil
	}

	filtered := make([]*models.OilChangeRecord, 0, len(records))
	for _, record := range records {
		if matchesQuery(record, query) {
			filtered = append(filtered, record)
		}
	}
	return filtered, nil
}

// Update overwrites the record by ID, preserving its creation metadata.
func (s *oilChangeService) Update(ctx context.Context, userID, recordID string, req models.OilChangeRequest) (*models.OilChangeRecord, error) {
	if err := validateRequest(&req); err != nil {
		return nil, err
	}

	existing, err := s.GetByID(ctx, userID, recordID)
	if err != nil {
		return nil, err
	}

	record := buildRecord(req)
	record.ID = existing.ID
	record.LubricenterID = existing.LubricenterID
	record.CreatedAt = existing.CreatedAt
	record.CreatedBy = existing.CreatedBy
	record.UpdatedAt = s.now().UTC()

	if err := s.oilChangeRepo.Update(ctx, existing.LubricenterID, &record); err != nil {
		return nil, fmt.Errorf("failed to update oil-change record '%s': %w", recordID, err)
	}

	s.audit(ctx, userID, "RECORD_UPDATE", record.ID, map[string]interface{}{
		"vehiclePlate": record.VehiclePlate,
	})

	return &record, nil
}

// Delete hard-deletes the record. No undo and no effect on the usage counter,
// which is monotonically non-decreasing within a subscription period.
func (s *oilChangeService) Delete(ctx context.Context, userID, recordID string) error {
	lubricenterID, err := s.userService.ResolveLubricenterID(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.oilChangeRepo.Delete(ctx, lubricenterID, recordID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("%w: ID '%s'", ErrRecordNotFound, recordID)
		}
		return fmt.Errorf("failed to delete oil-change record '%s': %w", recordID, err)
	}

	s.audit(ctx, userID, "RECORD_DELETE", recordID, nil)
	return nil
}

// BuildTicket renders the printable PDF for a record and returns the bytes
// plus a suggested file name.
func (s *oilChangeService) BuildTicket(ctx context.Context, userID, recordID string) ([]byte, string, error) {
	record, err := s.GetByID(ctx, userID, recordID)
	if err != nil {
		return nil, "", err
	}

	lubricenter, err := s.lubricenterRepo.GetByID(ctx, record.LubricenterID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get lubricenter '%s' for ticket: %w", record.LubricenterID, err)
	}

	ticket := pdf.Ticket{
		Lubricenter: lubricenter,
		Record:      record,
		TicketID:    pdf.NewTicketID(lubricenter.TicketPrefix),
		Operator:    record.CreatedBy,
		ServiceDate: record.CreatedAt,
	}

	data, err := pdf.Build(ticket)
	if err != nil {
		return nil, "", err
	}

	fileName := fmt.Sprintf("oil_change_%s_%s.pdf", record.VehiclePlate, record.CreatedAt.Format("20060102_150405"))
	return data, fileName, nil
}

// WhatsAppShareLink builds the chat deep link with the service summary for
// the record's customer.
func (s *oilChangeService) WhatsAppShareLink(ctx context.Context, userID, recordID string) (string, error) {
	record, err := s.GetByID(ctx, userID, recordID)
	if err != nil {
		return "", err
	}
	return share.WhatsAppLink(record.CustomerPhone, share.ServiceMessage(record)), nil
}

// EmailShareLink builds a mail-compose link with the service summary. The
// recipient defaults to none so the sender's mail client asks for one.
func (s *oilChangeService) EmailShareLink(ctx context.Context, userID, recordID, to string) (string, error) {
	record, err := s.GetByID(ctx, userID, recordID)
	if err != nil {
		return "", err
	}
	subject := fmt.Sprintf("Oil change service - %s", record.VehiclePlate)
	return share.MailtoLink(to, subject, share.ServiceMessage(record)), nil
}

func (s *oilChangeService) audit(ctx context.Context, userID, action, targetID string, details map[string]interface{}) {
	if s.auditService == nil {
		return
	}
	if err := s.auditService.CreateAuditLog(ctx, models.AuditLog{
		UserID:     userID,
		Action:     action,
		TargetType: "OIL_CHANGE_RECORD",
		TargetID:   targetID,
		Details:    details,
	}); err != nil {
		log.Printf("Warning: audit log failed for %s on record %s: %v", action, targetID, err)
	}
}
