package core

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hisma-backend-go/internal/models"
)

type fakeLogoUploader struct {
	uploads int
	fail    error
}

func (u *fakeLogoUploader) Upload(ctx context.Context, lubricenterID string, image []byte, contentType string) (string, error) {
	if u.fail != nil {
		return "", u.fail
	}
	u.uploads++
	return fmt.Sprintf("https://storage.example/%s/logo", lubricenterID), nil
}

func newLubricenterFixture(t *testing.T) (LubricenterService, *memLubricenterRepo, *fakeLogoUploader, string) {
	t.Helper()
	userRepo := newMemUserRepo()
	lubRepo := newMemLubricenterRepo()
	uploader := &fakeLogoUploader{}

	shopID, err := lubRepo.Create(context.Background(), &models.Lubricenter{
		FantasyName: "Lubricentro Norte",
		CUIT:        "30-12345678-9",
		Address:     "Av. Siempreviva 742",
		OwnerID:     "owner-1",
		Active:      true,
	})
	require.NoError(t, err)

	require.NoError(t, userRepo.Create(context.Background(), &models.User{
		ID:            "owner-1",
		Email:         "ana@example.com",
		Name:          "Ana",
		Role:          models.RoleLubricenterAdmin,
		LubricenterID: shopID,
		Active:        true,
	}))
	require.NoError(t, userRepo.Create(context.Background(), &models.User{
		ID:            "outsider",
		Email:         "x@example.com",
		Name:          "X",
		Role:          models.RoleEmployee,
		LubricenterID: "some-other-shop",
		Active:        true,
	}))

	userService := NewUserService(userRepo, lubRepo)
	service := NewLubricenterService(lubRepo, userService, uploader, NewAuditService(newMemAuditRepo()))
	return service, lubRepo, uploader, shopID
}

func strPtr(s string) *string { return &s }

func TestUpdateLubricenterMergesProvidedFields(t *testing.T) {
	service, _, _, shopID := newLubricenterFixture(t)

	updated, err := service.Update(context.Background(), "owner-1", shopID, models.UpdateLubricenterRequest{
		Phone:        strPtr("+54 11 9999 0000"),
		TicketPrefix: strPtr("NX"),
	})
	require.NoError(t, err)

	assert.Equal(t, "+54 11 9999 0000", updated.Phone)
	assert.Equal(t, "NX", updated.TicketPrefix)
	// Untouched fields keep their values.
	assert.Equal(t, "Lubricentro Norte", updated.FantasyName)
	assert.Equal(t, "Av. Siempreviva 742", updated.Address)
	assert.Equal(t, "30-12345678-9", updated.CUIT)
}

func TestUpdateLubricenterRejectsNonMember(t *testing.T) {
	service, _, _, shopID := newLubricenterFixture(t)

	_, err := service.Update(context.Background(), "outsider", shopID, models.UpdateLubricenterRequest{
		Phone: strPtr("+54 11 9999 0000"),
	})
	assert.ErrorIs(t, err, ErrNotShopMember)
}

func TestSetLogoStoresURL(t *testing.T) {
	service, lubRepo, uploader, shopID := newLubricenterFixture(t)

	url, err := service.SetLogo(context.Background(), "owner-1", shopID, []byte{0x89, 0x50}, "image/png")
	require.NoError(t, err)
	assert.Equal(t, 1, uploader.uploads)

	shop, err := lubRepo.GetByID(context.Background(), shopID)
	require.NoError(t, err)
	assert.Equal(t, url, shop.LogoURL)
}

func TestSetLogoRejectsEmptyImage(t *testing.T) {
	service, _, _, shopID := newLubricenterFixture(t)

	_, err := service.SetLogo(context.Background(), "owner-1", shopID, nil, "image/png")
	assert.Error(t, err)
}

func TestGetLubricenterNotFound(t *testing.T) {
	service, _, _, _ := newLubricenterFixture(t)

	_, err := service.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrLubricenterNotFound)
}
