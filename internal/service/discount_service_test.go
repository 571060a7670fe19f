package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripova/tourbase/internal/domain"
	"github.com/tripova/tourbase/internal/dto"
)

type fakeDiscountRepo struct {
	byTenantCode map[string]map[string]*domain.Discount

	incrementErr error
	increments   []string
}

func newFakeDiscountRepo() *fakeDiscountRepo {
	return &fakeDiscountRepo{byTenantCode: make(map[string]map[string]*domain.Discount)}
}

func (f *fakeDiscountRepo) put(d *domain.Discount) {
	m, ok := f.byTenantCode[d.TenantID]
	if !ok {
		m = make(map[string]*domain.Discount)
		f.byTenantCode[d.TenantID] = m
	}
	m[d.Code] = d
}

func (f *fakeDiscountRepo) Create(ctx context.Context, d *domain.Discount) error {
	f.put(d)
	return nil
}

func (f *fakeDiscountRepo) GetByID(ctx context.Context, id, tenantID string) (*domain.Discount, error) {
	for _, d := range f.byTenantCode[tenantID] {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, nil
}

func (f *fakeDiscountRepo) GetByCode(ctx context.Context, code, tenantID string) (*domain.Discount, error) {
	return f.byTenantCode[tenantID][code], nil
}

func (f *fakeDiscountRepo) List(ctx context.Context, tenantID string, activeOnly bool) ([]*domain.Discount, error) {
	out := make([]*domain.Discount, 0)
	for _, d := range f.byTenantCode[tenantID] {
		if activeOnly && !d.IsActive {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (f *fakeDiscountRepo) Update(ctx context.Context, d *domain.Discount) error {
	f.put(d)
	return nil
}

func (f *fakeDiscountRepo) IncrementUsage(ctx context.Context, id, tenantID string) error {
	if f.incrementErr != nil {
		return f.incrementErr
	}
	f.increments = append(f.increments, id)
	return nil
}

func (f *fakeDiscountRepo) ExistsByCode(ctx context.Context, tenantID, code, excludeID string) (bool, error) {
	d, ok := f.byTenantCode[tenantID][code]
	if !ok {
		return false, nil
	}
	return d.ID != excludeID, nil
}

func summerSale() *domain.Discount {
	return &domain.Discount{
		ID:         "d1",
		TenantID:   "acme",
		Code:       "SUMMER15",
		Percentage: 15,
		IsActive:   true,
	}
}

func TestApplyDiscount_Quote(t *testing.T) {
	repo := newFakeDiscountRepo()
	repo.put(summerSale())
	svc := NewDiscountService(repo)

	quote, err := svc.ApplyDiscount(context.Background(), "acme", &dto.ApplyDiscountRequest{
		Code:   "summer15",
		Amount: 100,
	})
	require.NoError(t, err)
	assert.Equal(t, "SUMMER15", quote.Code)
	assert.Equal(t, 15.0, quote.DiscountAmount)
	assert.Equal(t, 85.0, quote.FinalAmount)
}

func TestApplyDiscount_RoundsToCents(t *testing.T) {
	repo := newFakeDiscountRepo()
	repo.put(summerSale())
	svc := NewDiscountService(repo)

	quote, err := svc.ApplyDiscount(context.Background(), "acme", &dto.ApplyDiscountRequest{
		Code:   "SUMMER15",
		Amount: 49.99,
	})
	require.NoError(t, err)
	// 15% of 49.99 is 7.4985, rounded to 7.50
	assert.Equal(t, 7.5, quote.DiscountAmount)
	assert.Equal(t, 42.49, quote.FinalAmount)
}

func TestApplyDiscount_UnknownCode(t *testing.T) {
	svc := NewDiscountService(newFakeDiscountRepo())

	_, err := svc.ApplyDiscount(context.Background(), "acme", &dto.ApplyDiscountRequest{
		Code:   "NOPE",
		Amount: 100,
	})
	assert.ErrorIs(t, err, ErrDiscountNotFound)
}

func TestApplyDiscount_CodesDoNotCrossTenants(t *testing.T) {
	repo := newFakeDiscountRepo()
	repo.put(summerSale())
	svc := NewDiscountService(repo)

	_, err := svc.ApplyDiscount(context.Background(), "other-tenant", &dto.ApplyDiscountRequest{
		Code:   "SUMMER15",
		Amount: 100,
	})
	assert.ErrorIs(t, err, ErrDiscountNotFound)
}

func TestApplyDiscount_InactiveCode(t *testing.T) {
	repo := newFakeDiscountRepo()
	d := summerSale()
	d.IsActive = false
	repo.put(d)
	svc := NewDiscountService(repo)

	_, err := svc.ApplyDiscount(context.Background(), "acme", &dto.ApplyDiscountRequest{
		Code:   "SUMMER15",
		Amount: 100,
	})
	assert.ErrorIs(t, err, ErrDiscountNotRedeemable)
}

func TestApplyDiscount_ExpiredCode(t *testing.T) {
	repo := newFakeDiscountRepo()
	d := summerSale()
	until := time.Now().Add(-time.Hour)
	d.ValidUntil = &until
	repo.put(d)
	svc := NewDiscountService(repo)

	_, err := svc.ApplyDiscount(context.Background(), "acme", &dto.ApplyDiscountRequest{
		Code:   "SUMMER15",
		Amount: 100,
	})
	assert.ErrorIs(t, err, ErrDiscountNotRedeemable)
}

func TestApplyDiscount_UsageExhausted(t *testing.T) {
	repo := newFakeDiscountRepo()
	d := summerSale()
	d.MaxUses = 5
	d.UsedCount = 5
	repo.put(d)
	svc := NewDiscountService(repo)

	_, err := svc.ApplyDiscount(context.Background(), "acme", &dto.ApplyDiscountRequest{
		Code:   "SUMMER15",
		Amount: 100,
	})
	assert.ErrorIs(t, err, ErrDiscountNotRedeemable)
}

func TestRedeemDiscount(t *testing.T) {
	repo := newFakeDiscountRepo()
	repo.put(summerSale())
	svc := NewDiscountService(repo)

	require.NoError(t, svc.RedeemDiscount(context.Background(), "acme", " summer15 "))
	assert.Equal(t, []string{"d1"}, repo.increments)
}

func TestRedeemDiscount_LostRaceOnLastUse(t *testing.T) {
	repo := newFakeDiscountRepo()
	repo.put(summerSale())
	repo.incrementErr = domain.ErrNotFound
	svc := NewDiscountService(repo)

	err := svc.RedeemDiscount(context.Background(), "acme", "SUMMER15")
	assert.ErrorIs(t, err, ErrDiscountNotRedeemable)
}

func TestCreateDiscount_DuplicateCode(t *testing.T) {
	repo := newFakeDiscountRepo()
	repo.put(summerSale())
	svc := NewDiscountService(repo)

	_, err := svc.CreateDiscount(context.Background(), &dto.CreateDiscountRequest{
		Code:       "summer15",
		Percentage: 20,
		TenantID:   "acme",
	})
	assert.ErrorIs(t, err, domain.ErrSlugConflict)
}

func TestCreateDiscount_UppercasesCode(t *testing.T) {
	repo := newFakeDiscountRepo()
	svc := NewDiscountService(repo)

	created, err := svc.CreateDiscount(context.Background(), &dto.CreateDiscountRequest{
		Code:       " winter10 ",
		Percentage: 10,
		IsActive:   true,
		TenantID:   "acme",
	})
	require.NoError(t, err)
	assert.Equal(t, "WINTER10", created.Code)
}
