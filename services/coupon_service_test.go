package services

import (
	"context"
	"testing"
	"time"

	"club-platform/internal/status"
	"club-platform/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func activeCoupon() *models.Coupon {
	return &models.Coupon{
		ID:              "cp1",
		Code:            "FEST20",
		DiscountPercent: decimal.NewFromInt(20),
		MaxUses:         100,
		Used:            10,
		Active:          true,
		ExpiresAt:       time.Now().Add(24 * time.Hour),
	}
}

func TestApplyDiscountsAmount(t *testing.T) {
	coupons := &MockCouponStore{}
	service := NewCouponService(coupons)

	coupons.On("FindByCode", mock.Anything, "FEST20").Return(activeCoupon(), nil)

	discounted, coupon, err := service.Apply(context.Background(), "FEST20", "ev1", decimal.NewFromInt(250))

	require.NoError(t, err)
	assert.Equal(t, "cp1", coupon.ID)
	assert.True(t, discounted.Equal(decimal.NewFromInt(200)), "got %s", discounted)
}

func TestApplyRoundsToTwoDecimals(t *testing.T) {
	coupons := &MockCouponStore{}
	service := NewCouponService(coupons)

	c := activeCoupon()
	c.DiscountPercent = decimal.NewFromFloat(33.33)
	coupons.On("FindByCode", mock.Anything, "FEST20").Return(c, nil)

	discounted, _, err := service.Apply(context.Background(), "FEST20", "ev1", decimal.NewFromInt(99))

	require.NoError(t, err)
	// 99 - 99*0.3333 = 66.0033 -> 66.00
	assert.True(t, discounted.Equal(decimal.NewFromFloat(66.00)), "got %s", discounted)
}

func TestApplyRejectsExpiredCoupon(t *testing.T) {
	coupons := &MockCouponStore{}
	service := NewCouponService(coupons)

	c := activeCoupon()
	c.ExpiresAt = time.Now().Add(-time.Hour)
	coupons.On("FindByCode", mock.Anything, "FEST20").Return(c, nil)

	_, _, err := service.Apply(context.Background(), "FEST20", "ev1", decimal.NewFromInt(250))

	assert.ErrorIs(t, err, status.ErrValidation)
}

func TestApplyRejectsExhaustedCoupon(t *testing.T) {
	coupons := &MockCouponStore{}
	service := NewCouponService(coupons)

	c := activeCoupon()
	c.Used = c.MaxUses
	coupons.On("FindByCode", mock.Anything, "FEST20").Return(c, nil)

	_, _, err := service.Apply(context.Background(), "FEST20", "ev1", decimal.NewFromInt(250))

	assert.ErrorIs(t, err, status.ErrValidation)
}

func TestApplyRejectsWrongEvent(t *testing.T) {
	coupons := &MockCouponStore{}
	service := NewCouponService(coupons)

	c := activeCoupon()
	c.EventID = "ev-other"
	coupons.On("FindByCode", mock.Anything, "FEST20").Return(c, nil)

	_, _, err := service.Apply(context.Background(), "FEST20", "ev1", decimal.NewFromInt(250))

	assert.ErrorIs(t, err, status.ErrValidation)
}

func TestApplyUnknownCode(t *testing.T) {
	coupons := &MockCouponStore{}
	service := NewCouponService(coupons)

	coupons.On("FindByCode", mock.Anything, "NOPE").Return(nil, status.ErrNotFound)

	_, _, err := service.Apply(context.Background(), "NOPE", "ev1", decimal.NewFromInt(250))

	assert.ErrorIs(t, err, status.ErrNotFound)
}

func TestRedeemIncrementsUse(t *testing.T) {
	coupons := &MockCouponStore{}
	service := NewCouponService(coupons)

	coupons.On("IncrementUsed", mock.Anything, "cp1").Return(nil)

	err := service.Redeem(context.Background(), activeCoupon())

	require.NoError(t, err)
	coupons.AssertCalled(t, "IncrementUsed", mock.Anything, "cp1")
}
