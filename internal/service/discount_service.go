package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tripova/tourbase/internal/domain"
	"github.com/tripova/tourbase/internal/dto"
	"github.com/tripova/tourbase/internal/repository"
)

// DiscountService errors
var (
	ErrDiscountNotFound      = errors.New("discount code not found")
	ErrDiscountNotRedeemable = errors.New("discount code is not redeemable")
)

// discountService implements the DiscountService interface. Codes are
// strictly tenant-scoped: a code created by the default tenant does not
// apply on other tenants' storefronts.
type discountService struct {
	repo repository.DiscountRepository
	now  func() time.Time
}

// NewDiscountService creates a new DiscountService
func NewDiscountService(repo repository.DiscountRepository) DiscountService {
	return &discountService{repo: repo, now: time.Now}
}

// CreateDiscount creates a discount code scoped to the tenant
func (s *discountService) CreateDiscount(ctx context.Context, req *dto.CreateDiscountRequest) (*domain.Discount, error) {
	if valid, msg := req.Validate(); !valid {
		return nil, errors.New(msg)
	}
	if req.TenantID == "" {
		return nil, domain.ErrTenantScopeRequired
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	exists, err := s.repo.ExistsByCode(ctx, req.TenantID, code, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrSlugConflict
	}

	d := &domain.Discount{
		ID:         uuid.New().String(),
		TenantID:   req.TenantID,
		Code:       code,
		Percentage: req.Percentage,
		MaxUses:    req.MaxUses,
		ValidFrom:  req.ValidFrom,
		ValidUntil: req.ValidUntil,
		IsActive:   req.IsActive,
	}
	if err := s.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// ApplyDiscount validates a code against the tenant and quotes the result.
// Amounts are rounded to cents.
func (s *discountService) ApplyDiscount(ctx context.Context, tenantID string, req *dto.ApplyDiscountRequest) (*dto.DiscountQuote, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	d, err := s.repo.GetByCode(ctx, code, tenantID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, ErrDiscountNotFound
	}
	if !d.IsRedeemable(s.now()) {
		return nil, ErrDiscountNotRedeemable
	}

	discount := math.Round(req.Amount*d.Percentage) / 100
	return &dto.DiscountQuote{
		Code:           d.Code,
		Percentage:     d.Percentage,
		OriginalAmount: req.Amount,
		DiscountAmount: discount,
		FinalAmount:    math.Round((req.Amount-discount)*100) / 100,
	}, nil
}

// RedeemDiscount consumes one use of a code. The usage ceiling is enforced
// atomically in the store, so concurrent redemptions cannot overshoot.
func (s *discountService) RedeemDiscount(ctx context.Context, tenantID, code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	d, err := s.repo.GetByCode(ctx, code, tenantID)
	if err != nil {
		return err
	}
	if d == nil {
		return ErrDiscountNotFound
	}
	if !d.IsRedeemable(s.now()) {
		return ErrDiscountNotRedeemable
	}

	if err := s.repo.IncrementUsage(ctx, d.ID, tenantID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Another redemption took the last use between check and update.
			return ErrDiscountNotRedeemable
		}
		return err
	}
	return nil
}

// ListDiscounts lists the tenant's discount codes
func (s *discountService) ListDiscounts(ctx context.Context, tenantID string, activeOnly bool) ([]*domain.Discount, error) {
	return s.repo.List(ctx, tenantID, activeOnly)
}

// UpdateDiscount updates a discount code
func (s *discountService) UpdateDiscount(ctx context.Context, tenantID, id string, req *dto.UpdateDiscountRequest) (*domain.Discount, error) {
	d, err := s.repo.GetByID(ctx, id, tenantID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, ErrDiscountNotFound
	}

	if req.Code != "" {
		code := strings.ToUpper(strings.TrimSpace(req.Code))
		if code != d.Code {
			exists, err := s.repo.ExistsByCode(ctx, tenantID, code, id)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, domain.ErrSlugConflict
			}
			d.Code = code
		}
	}
	if req.Percentage != nil {
		d.Percentage = *req.Percentage
	}
	if req.MaxUses != nil {
		d.MaxUses = *req.MaxUses
	}
	if req.ValidFrom != nil {
		d.ValidFrom = req.ValidFrom
	}
	if req.ValidUntil != nil {
		d.ValidUntil = req.ValidUntil
	}
	if req.IsActive != nil {
		d.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}
