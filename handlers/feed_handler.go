package handlers

import (
	"net/http"

	"club-platform/models"
	"club-platform/services"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
)

type FeedHandler struct {
	app    *pocketbase.PocketBase
	notify services.Notifier
}

func NewFeedHandler(app *pocketbase.PocketBase, notify services.Notifier) *FeedHandler {
	return &FeedHandler{app: app, notify: notify}
}

type createPostInput struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	ImageURL string `json:"image_url"`
}

func (in createPostInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required, validation.Length(2, 200)),
		validation.Field(&in.Body, validation.Required, validation.Length(2, 10000)),
	)
}

// List - GET /api/v1/feed
func (h *FeedHandler) List(e *core.RequestEvent) error {
	records, err := h.app.FindRecordsByFilter("posts", "id != ''", "-created", 50, 0)
	if err != nil {
		return toAPIError(err)
	}

	posts := make([]*models.Post, 0, len(records))
	for _, record := range records {
		posts = append(posts, &models.Post{
			ID:        record.Id,
			Author:    record.GetString("author"),
			Title:     record.GetString("title"),
			Body:      record.GetString("body"),
			ImageURL:  record.GetString("image_url"),
			CreatedAt: record.GetDateTime("created").Time(),
		})
	}
	return e.JSON(http.StatusOK, posts)
}

// Create - POST /api/v1/feed (admin)
//
// New posts are pushed to the realtime feed channel so open clients update
// without refreshing.
func (h *FeedHandler) Create(e *core.RequestEvent) error {
	if e.Auth == nil || e.Auth.Collection().Name != "admins" {
		return apis.NewUnauthorizedError("Admin access required", nil)
	}

	var in createPostInput
	if err := e.BindBody(&in); err != nil {
		return apis.NewBadRequestError("Invalid request body", err)
	}
	if err := in.Validate(); err != nil {
		return apis.NewBadRequestError(err.Error(), nil)
	}

	collection, err := h.app.FindCollectionByNameOrId("posts")
	if err != nil {
		return toAPIError(err)
	}

	record := core.NewRecord(collection)
	record.Set("author", e.Auth.GetString("email"))
	record.Set("title", in.Title)
	record.Set("body", in.Body)
	record.Set("image_url", in.ImageURL)
	if err := h.app.SaveWithContext(e.Request.Context(), record); err != nil {
		return toAPIError(err)
	}

	post := &models.Post{
		ID:        record.Id,
		Author:    record.GetString("author"),
		Title:     in.Title,
		Body:      in.Body,
		ImageURL:  in.ImageURL,
		CreatedAt: record.GetDateTime("created").Time(),
	}
	h.notify.PostPublished(post)

	return e.JSON(http.StatusCreated, post)
}
