package core

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"unicode"

	"hisma-backend-go/internal/db"
	"hisma-backend-go/internal/models"
)

// Errors returned by the RegistrationService.
var (
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
	ErrCUITTaken        = errors.New("a lubricenter with this CUIT already exists")
)

// Trial subscription granted to every newly registered lubricenter.
const (
	trialPlan           = models.PlanBasic
	trialDurationMonths = 1
)

// registrationService implements the RegistrationService interface. The
// flows are sequential without rollback; a mid-flow failure leaves earlier
// steps committed and the returned error names the failed step so support
// can finish the onboarding by hand.
type registrationService struct {
	accounts            db.AuthAccounts
	userRepo            db.UserRepository
	lubricenterRepo     db.LubricenterRepository
	subscriptionService SubscriptionService
	auditService        AuditService
}

// NewRegistrationService creates a new RegistrationService instance.
func NewRegistrationService(
	accounts db.AuthAccounts,
	ur db.UserRepository,
	lr db.LubricenterRepository,
	ss SubscriptionService,
	as AuditService,
) RegistrationService {
	return &registrationService{
		accounts:            accounts,
		userRepo:            ur,
		lubricenterRepo:     lr,
		subscriptionService: ss,
		auditService:        as,
	}
}

// ticketPrefixFor derives the default ticket prefix from the shop name: the
// first two letters, uppercased. Falls back to "LC" for names without two
// letters.
func ticketPrefixFor(name string) string {
	var letters []rune
	for _, r := range name {
		if unicode.IsLetter(r) {
			letters = append(letters, unicode.ToUpper(r))
			if len(letters) == 2 {
				return string(letters)
			}
		}
	}
	return "LC"
}

func validateCredentials(email, password string) error {
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("email is required")
	}
	if len(password) < 6 {
		return ErrPasswordTooShort
	}
	return nil
}

// RegisterLubricenter runs the owner sign-up flow: auth account, user
// document, shop document, owner role assignment and a one-month trial
// subscription on the basic plan.
func (s *registrationService) RegisterLubricenter(ctx context.Context, req models.RegisterLubricenterRequest) (*models.Lubricenter, error) {
	if err := validateCredentials(req.Email, req.Password); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.LubricenterName) == "" {
		return nil, fmt.Errorf("lubricenter name is required")
	}
	if strings.TrimSpace(req.CUIT) == "" {
		return nil, fmt.Errorf("CUIT is required")
	}

	// CUIT uniqueness is checked up front so the common duplicate case fails
	// before any step commits. A concurrent duplicate can still slip through;
	// the check is advisory, not a constraint.
	if _, err := s.lubricenterRepo.GetByCUIT(ctx, req.CUIT); err == nil {
		return nil, fmt.Errorf("%w: '%s'", ErrCUITTaken, req.CUIT)
	} else if !errors.Is(err, db.ErrNotFound) {
		return nil, fmt.Errorf("failed to verify CUIT availability: %w", err)
	}

	displayName := strings.TrimSpace(req.OwnerName + " " + req.OwnerLastName)
	userID, err := s.accounts.CreateAccount(ctx, req.Email, req.Password, displayName)
	if err != nil {
		return nil, fmt.Errorf("registration failed at account creation: %w", err)
	}

	user := &models.User{
		ID:       userID,
		Email:    req.Email,
		Name:     req.OwnerName,
		LastName: req.OwnerLastName,
		Role:     models.RoleEmployee,
		Active:   true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("account created but registration failed at user profile creation (user '%s'): %w", userID, err)
	}

	lubricenter := &models.Lubricenter{
		FantasyName:  req.LubricenterName,
		CUIT:         req.CUIT,
		Address:      req.Address,
		Phone:        req.Phone,
		Email:        req.Email,
		Responsible:  displayName,
		TicketPrefix: ticketPrefixFor(req.LubricenterName),
		OwnerID:      userID,
		Active:       true,
	}
	lubricenterID, err := s.lubricenterRepo.Create(ctx, lubricenter)
	if err != nil {
		return nil, fmt.Errorf("user created but registration failed at lubricenter creation (user '%s'): %w", userID, err)
	}
	lubricenter.ID = lubricenterID

	if err := s.userRepo.SetRoleAndLubricenter(ctx, userID, models.RoleLubricenterAdmin, lubricenterID); err != nil {
		return nil, fmt.Errorf("lubricenter '%s' created but registration failed at owner role assignment: %w", lubricenterID, err)
	}

	subscription, err := s.subscriptionService.Create(ctx, lubricenterID, trialPlan, trialDurationMonths, false)
	if err != nil {
		return nil, fmt.Errorf("lubricenter '%s' created but registration failed at trial subscription creation: %w", lubricenterID, err)
	}
	lubricenter.SubscriptionID = subscription.ID

	s.audit(ctx, userID, "LUBRICENTER_REGISTER", "LUBRICENTER", lubricenterID)
	return lubricenter, nil
}

// RegisterEmployee creates an auth account and user profile attached to an
// existing lubricenter.
func (s *registrationService) RegisterEmployee(ctx context.Context, req models.RegisterEmployeeRequest) (*models.User, error) {
	if err := validateCredentials(req.Email, req.Password); err != nil {
		return nil, err
	}

	if _, err := s.lubricenterRepo.GetByID(ctx, req.LubricenterID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: ID '%s'", ErrLubricenterNotFound, req.LubricenterID)
		}
		return nil, fmt.Errorf("failed to verify lubricenter '%s': %w", req.LubricenterID, err)
	}

	displayName := strings.TrimSpace(req.Name + " " + req.LastName)
	userID, err := s.accounts.CreateAccount(ctx, req.Email, req.Password, displayName)
	if err != nil {
		return nil, fmt.Errorf("registration failed at account creation: %w", err)
	}

	user := &models.User{
		ID:       userID,
		Email:    req.Email,
		Name:     req.Name,
		LastName: req.LastName,
		Role:     models.RoleEmployee,
		Active:   true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("account created but registration failed at user profile creation (user '%s'): %w", userID, err)
	}

	if err := s.userRepo.SetRoleAndLubricenter(ctx, userID, models.RoleEmployee, req.LubricenterID); err != nil {
		return nil, fmt.Errorf("user '%s' created but registration failed at lubricenter assignment: %w", userID, err)
	}
	user.LubricenterID = req.LubricenterID

	s.audit(ctx, userID, "EMPLOYEE_REGISTER", "USER", userID)
	return user, nil
}

func (s *registrationService) audit(ctx context.Context, userID, action, targetType, targetID string) {
	if s.auditService == nil {
		return
	}
	if err := s.auditService.CreateAuditLog(ctx, models.AuditLog{
		UserID:     userID,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
	}); err != nil {
		log.Printf("Warning: audit log failed for %s on %s %s: %v", action, targetType, targetID, err)
	}
}
