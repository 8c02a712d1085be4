package handlers

import (
	"net/http"

	"club-platform/store"
	"club-platform/utils"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
)

type MemberHandler struct {
	app *pocketbase.PocketBase
}

func NewMemberHandler(app *pocketbase.PocketBase) *MemberHandler {
	return &MemberHandler{app: app}
}

type registerInput struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	LpuID    string `json:"lpuId"`
	Course   string `json:"course"`
	Password string `json:"password"`
}

func (in registerInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.FullName, validation.Required, validation.Length(2, 120)),
		validation.Field(&in.Email, validation.Required, is.Email),
		validation.Field(&in.LpuID, validation.Required, validation.Length(4, 20)),
		validation.Field(&in.Password, validation.Required, validation.Length(8, 72)),
	)
}

// Register - POST /api/v1/members/register
func (h *MemberHandler) Register(e *core.RequestEvent) error {
	var in registerInput
	if err := e.BindBody(&in); err != nil {
		return apis.NewBadRequestError("Invalid request body", err)
	}
	if err := in.Validate(); err != nil {
		return apis.NewBadRequestError(err.Error(), nil)
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return toAPIError(err)
	}

	collection, err := h.app.FindCollectionByNameOrId("members")
	if err != nil {
		return toAPIError(err)
	}

	record := core.NewRecord(collection)
	record.Set("full_name", in.FullName)
	record.Set("email", in.Email)
	record.Set("phone", in.Phone)
	record.Set("lpu_id", in.LpuID)
	record.Set("course", in.Course)
	record.Set("password_hash", hash)
	record.Set("is_admin", false)

	if err := h.app.SaveWithContext(e.Request.Context(), record); err != nil {
		if store.IsUniqueViolation(err) {
			return apis.NewApiError(http.StatusConflict, "A member with this email or id already exists", nil)
		}
		return toAPIError(err)
	}

	return e.JSON(http.StatusCreated, map[string]string{
		"id":     record.Id,
		"status": "registered",
	})
}
