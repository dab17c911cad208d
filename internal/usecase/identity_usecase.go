package usecase

import (
	"context"
	"errors"
	"strings"

	"satici_paneli/internal/domain/entities"
	"satici_paneli/internal/usecase/interfaces"
)

var (
	ErrMissingCredential = errors.New("missing bearer credential")
	ErrInvalidCredential = errors.New("invalid or expired credential")
	ErrVendorNotFound    = errors.New("vendor not found")
)

// IIdentityUseCase resolves a bearer credential to a vendor record. The
// approval gate itself lives in the HTTP middleware; this usecase only
// answers "who is calling".
type IIdentityUseCase interface {
	Resolve(ctx context.Context, credential string) (entities.Vendor, error)
}

type IdentityUseCase struct {
	tokens  interfaces.ITokenVerifier
	vendors interfaces.IVendorRepository
}

var _ IIdentityUseCase = (*IdentityUseCase)(nil)

func NewIdentityUseCase(tokens interfaces.ITokenVerifier, vendors interfaces.IVendorRepository) *IdentityUseCase {
	return &IdentityUseCase{tokens: tokens, vendors: vendors}
}

func (u *IdentityUseCase) Resolve(ctx context.Context, credential string) (entities.Vendor, error) {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return entities.Vendor{}, ErrMissingCredential
	}

	vendorID, err := u.tokens.Verify(credential)
	if err != nil {
		return entities.Vendor{}, ErrInvalidCredential
	}

	vendor, err := u.vendors.GetByID(ctx, vendorID)
	if err != nil {
		return entities.Vendor{}, err
	}
	if vendor.ID == "" {
		return entities.Vendor{}, ErrVendorNotFound
	}
	return vendor, nil
}
