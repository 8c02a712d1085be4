package services

import (
	"context"
	"fmt"
	"time"

	"club-platform/internal/status"
	"club-platform/models"
	"club-platform/store"

	"github.com/shopspring/decimal"
)

// CouponService validates and applies discount codes to order amounts.
type CouponService struct {
	coupons store.CouponStore
}

func NewCouponService(coupons store.CouponStore) *CouponService {
	return &CouponService{coupons: coupons}
}

// Apply returns the discounted amount for the given code. The coupon is not
// consumed here; Redeem is called once the order is actually created.
func (s *CouponService) Apply(ctx context.Context, code, eventID string, amount decimal.Decimal) (decimal.Decimal, *models.Coupon, error) {
	coupon, err := s.coupons.FindByCode(ctx, code)
	if err != nil {
		return amount, nil, fmt.Errorf("coupon.Apply: %w", err)
	}

	if !coupon.Active {
		return amount, nil, fmt.Errorf("coupon.Apply: coupon inactive: %w", status.ErrValidation)
	}
	if !coupon.ExpiresAt.IsZero() && time.Now().After(coupon.ExpiresAt) {
		return amount, nil, fmt.Errorf("coupon.Apply: coupon expired: %w", status.ErrValidation)
	}
	if coupon.MaxUses > 0 && coupon.Used >= coupon.MaxUses {
		return amount, nil, fmt.Errorf("coupon.Apply: coupon exhausted: %w", status.ErrValidation)
	}
	if coupon.EventID != "" && coupon.EventID != eventID {
		return amount, nil, fmt.Errorf("coupon.Apply: coupon not valid for this event: %w", status.ErrValidation)
	}

	discount := amount.Mul(coupon.DiscountPercent).Div(decimal.NewFromInt(100))
	discounted := amount.Sub(discount).Round(2)
	if discounted.IsNegative() {
		discounted = decimal.Zero
	}
	return discounted, coupon, nil
}

// Redeem consumes one use of the coupon.
func (s *CouponService) Redeem(ctx context.Context, coupon *models.Coupon) error {
	if coupon == nil {
		return nil
	}
	if err := s.coupons.IncrementUsed(ctx, coupon.ID); err != nil {
		return fmt.Errorf("coupon.Redeem: %w", err)
	}
	return nil
}
