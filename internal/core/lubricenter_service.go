package core

import (
	"context"
	"errors"
	"fmt"
	"log"

	"hisma-backend-go/internal/db"
	"hisma-backend-go/internal/models"
)

// Errors returned by the LubricenterService.
var (
	ErrLubricenterNotFound = errors.New("lubricenter not found")
	ErrNotShopMember       = errors.New("user does not belong to this lubricenter")
)

// LogoUploader stores a shop logo and returns its public URL.
type LogoUploader interface {
	Upload(ctx context.Context, lubricenterID string, image []byte, contentType string) (string, error)
}

// lubricenterService implements the LubricenterService interface.
type lubricenterService struct {
	lubricenterRepo db.LubricenterRepository
	userService     UserService
	logoUploader    LogoUploader
	auditService    AuditService
}

// NewLubricenterService creates a new LubricenterService instance. The
// uploader may be nil when no storage bucket is configured; SetLogo then
// fails with a clear error.
func NewLubricenterService(lr db.LubricenterRepository, us UserService, lu LogoUploader, as AuditService) LubricenterService {
	return &lubricenterService{
		lubricenterRepo: lr,
		userService:     us,
		logoUploader:    lu,
		auditService:    as,
	}
}

// GetByID retrieves a lubricenter profile.
func (s *lubricenterService) GetByID(ctx context.Context, lubricenterID string) (*models.Lubricenter, error) {
	lubricenter, err := s.lubricenterRepo.GetByID(ctx, lubricenterID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: ID '%s'", ErrLubricenterNotFound, lubricenterID)
		}
		return nil, fmt.Errorf("failed to get lubricenter '%s': %w", lubricenterID, err)
	}
	return lubricenter, nil
}

// authorize verifies the acting user works for or owns the lubricenter.
func (s *lubricenterService) authorize(ctx context.Context, userID, lubricenterID string) error {
	resolved, err := s.userService.ResolveLubricenterID(ctx, userID)
	if err != nil {
		return err
	}
	if resolved != lubricenterID {
		return fmt.Errorf("%w: user '%s', lubricenter '%s'", ErrNotShopMember, userID, lubricenterID)
	}
	return nil
}

// Update applies the non-nil fields of the request to the shop profile.
// Identity fields (CUIT, owner, subscription) are not updatable here.
func (s *lubricenterService) Update(ctx context.Context, userID, lubricenterID string, req models.UpdateLubricenterRequest) (*models.Lubricenter, error) {
	if err := s.authorize(ctx, userID, lubricenterID); err != nil {
		return nil, err
	}

	lubricenter, err := s.GetByID(ctx, lubricenterID)
	if err != nil {
		return nil, err
	}

	if req.FantasyName != nil {
		lubricenter.FantasyName = *req.FantasyName
	}
	if req.Address != nil {
		lubricenter.Address = *req.Address
	}
	if req.Phone != nil {
		lubricenter.Phone = *req.Phone
	}
	if req.Email != nil {
		lubricenter.Email = *req.Email
	}
	if req.Responsible != nil {
		lubricenter.Responsible = *req.Responsible
	}
	if req.TicketPrefix != nil {
		lubricenter.TicketPrefix = *req.TicketPrefix
	}

	if err := s.lubricenterRepo.Update(ctx, lubricenter); err != nil {
		return nil, fmt.Errorf("failed to update lubricenter '%s': %w", lubricenterID, err)
	}

	s.audit(ctx, userID, "LUBRICENTER_UPDATE", lubricenterID)
	return lubricenter, nil
}

// SetLogo uploads the image to object storage and records its public URL on
// the shop profile.
func (s *lubricenterService) SetLogo(ctx context.Context, userID, lubricenterID string, image []byte, contentType string) (string, error) {
	if s.logoUploader == nil {
		return "", fmt.Errorf("logo storage is not configured")
	}
	if err := s.authorize(ctx, userID, lubricenterID); err != nil {
		return "", err
	}
	if len(image) == 0 {
		return "", fmt.Errorf("logo image is empty")
	}

	logoURL, err := s.logoUploader.Upload(ctx, lubricenterID, image, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload logo for lubricenter '%s': %w", lubricenterID, err)
	}

	if err := s.lubricenterRepo.SetLogoURL(ctx, lubricenterID, logoURL); err != nil {
		return "", fmt.Errorf("logo uploaded but failed to record URL on lubricenter '%s': %w", lubricenterID, err)
	}

	s.audit(ctx, userID, "LUBRICENTER_LOGO_SET", lubricenterID)
	return logoURL, nil
}

func (s *lubricenterService) audit(ctx context.Context, userID, action, lubricenterID string) {
	if s.auditService == nil {
		return
	}
	if err := s.auditService.CreateAuditLog(ctx, models.AuditLog{
		UserID:     userID,
		Action:     action,
		TargetType: "LUBRICENTER",
		TargetID:   lubricenterID,
	}); err != nil {
		log.Printf("Warning: audit log failed for %s on lubricenter %s: %v", action, lubricenterID, err)
	}
}
