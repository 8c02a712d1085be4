package handlers

import (
	"net/http"
	"time"

	"club-platform/models"
	"club-platform/services"
	"club-platform/store"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/shopspring/decimal"
)

type CouponHandler struct {
	coupons store.CouponStore
	service *services.CouponService
}

func NewCouponHandler(coupons store.CouponStore, service *services.CouponService) *CouponHandler {
	return &CouponHandler{coupons: coupons, service: service}
}

type createCouponInput struct {
	Code            string          `json:"code"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	EventID         string          `json:"event_id"`
	MaxUses         int             `json:"max_uses"`
	ExpiresAt       time.Time       `json:"expires_at"`
}

func (in createCouponInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Code, validation.Required, validation.Length(3, 32)),
	)
}

type previewCouponInput struct {
	Code    string          `json:"code"`
	EventID string          `json:"event_id"`
	Amount  decimal.Decimal `json:"amount"`
}

// Create - POST /api/v1/coupons (admin)
func (h *CouponHandler) Create(e *core.RequestEvent) error {
	if e.Auth == nil || e.Auth.Collection().Name != "admins" {
		return apis.NewUnauthorizedError("Admin access required", nil)
	}

	var in createCouponInput
	if err := e.BindBody(&in); err != nil {
		return apis.NewBadRequestError("Invalid request body", err)
	}
	if err := in.Validate(); err != nil {
		return apis.NewBadRequestError(err.Error(), nil)
	}
	if in.DiscountPercent.IsNegative() || in.DiscountPercent.GreaterThan(decimal.NewFromInt(100)) {
		return apis.NewBadRequestError("discount_percent must be between 0 and 100", nil)
	}

	coupon := &models.Coupon{
		Code:            in.Code,
		DiscountPercent: in.DiscountPercent,
		EventID:         in.EventID,
		MaxUses:         in.MaxUses,
		Active:          true,
		ExpiresAt:       in.ExpiresAt,
	}
	if err := h.coupons.Create(e.Request.Context(), coupon); err != nil {
		return toAPIError(err)
	}
	return e.JSON(http.StatusCreated, coupon)
}

// Preview - POST /api/v1/coupons/preview
//
// Lets the client show the discounted amount before the order is placed.
// Nothing is consumed here.
func (h *CouponHandler) Preview(e *core.RequestEvent) error {
	var in previewCouponInput
	if err := e.BindBody(&in); err != nil {
		return apis.NewBadRequestError("Invalid request body", err)
	}
	if !in.Amount.IsPositive() {
		return apis.NewBadRequestError("amount must be positive", nil)
	}

	discounted, coupon, err := h.service.Apply(e.Request.Context(), in.Code, in.EventID, in.Amount)
	if err != nil {
		return toAPIError(err)
	}
	return e.JSON(http.StatusOK, map[string]any{
		"code":              coupon.Code,
		"original_amount":   in.Amount,
		"discounted_amount": discounted,
	})
}
