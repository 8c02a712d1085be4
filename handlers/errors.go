package handlers

import (
	"errors"
	"net/http"

	"club-platform/internal/status"

	"github.com/pocketbase/pocketbase/apis"
)

// toAPIError maps service-layer sentinels onto HTTP responses.
func toAPIError(err error) error {
	switch {
	case errors.Is(err, status.ErrValidation):
		return apis.NewBadRequestError(err.Error(), nil)
	case errors.Is(err, status.ErrNotFound):
		return apis.NewNotFoundError(err.Error(), nil)
	case errors.Is(err, status.ErrConflict):
		return apis.NewApiError(http.StatusConflict, err.Error(), nil)
	case errors.Is(err, status.ErrUpstream):
		return apis.NewApiError(http.StatusBadGateway, "Payment gateway unavailable. Please retry.", nil)
	default:
		return apis.NewApiError(http.StatusInternalServerError, "Something went wrong.", nil)
	}
}
