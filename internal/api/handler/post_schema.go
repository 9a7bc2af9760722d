package handler

import (
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/blog-api/internal/core/ports"
)

// createPostForm mirrors the multipart form fields of POST /posts. The image
// arrives as a separate file part and is handled outside validation.
type createPostForm struct {
	Title       string `form:"title" validate:"required,max=255"`
	Description string `form:"description" validate:"required"`
	Body        string `form:"body" validate:"required"`
	CategoryID  string `form:"category_id" validate:"required"`
	IsPrivate   bool   `form:"is_private"`
}

type postResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Body        string    `json:"body"`
	ImageURL    string    `json:"image_url,omitempty"`
	CategoryID  string    `json:"category_id"`
	Category    string    `json:"category,omitempty"`
	UserID      string    `json:"user_id"`
	IsPrivate   bool      `json:"is_private"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toPostResponse(view *ports.PostView) postResponse {
	return postResponse{
		ID:          view.ID,
		Title:       view.Title,
		Description: view.Description,
		Body:        view.Body,
		ImageURL:    view.ImageURL,
		CategoryID:  view.CategoryID,
		Category:    view.CategoryName,
		UserID:      view.UserID,
		IsPrivate:   view.IsPrivate,
		CreatedAt:   view.CreatedAt,
		UpdatedAt:   view.UpdatedAt,
	}
}

func toPostResponses(views []*ports.PostView) []postResponse {
	out := make([]postResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toPostResponse(v))
	}
	return out
}

// formImage extracts the optional image file part. A missing part is not an
// error; any other multipart failure is a 400.
func formImage(c echo.Context) (ports.ImageUpload, func(), error) {
	fh, err := c.FormFile("image")
	if err != nil {
		if err == http.ErrMissingFile {
			return ports.ImageUpload{}, func() {}, nil
		}
		// echo wraps missing-part errors differently depending on the form
		// encoding; treat any lookup failure on an absent part as "no image".
		if _, ferr := c.MultipartForm(); ferr != nil {
			return ports.ImageUpload{}, func() {}, nil
		}
		return ports.ImageUpload{}, func() {}, echo.NewHTTPError(http.StatusBadRequest, "invalid image upload")
	}
	return openUpload(fh)
}

func openUpload(fh *multipart.FileHeader) (ports.ImageUpload, func(), error) {
	file, err := fh.Open()
	if err != nil {
		return ports.ImageUpload{}, func() {}, echo.NewHTTPError(http.StatusBadRequest, "invalid image upload")
	}
	return ports.ImageUpload{Filename: fh.Filename, Reader: file}, func() { _ = file.Close() }, nil
}

// updatePostInput builds a partial update from whichever form fields were
// actually sent. FormValue cannot distinguish "absent" from "empty", so
// presence is checked against the parsed form value map.
func updatePostInput(c echo.Context) (ports.UpdatePostInput, func(), error) {
	values, err := c.FormParams()
	if err != nil {
		return ports.UpdatePostInput{}, func() {}, echo.NewHTTPError(http.StatusBadRequest, "invalid form payload")
	}

	var input ports.UpdatePostInput
	if v, ok := formField(values, "title"); ok {
		input.Title = &v
	}
	if v, ok := formField(values, "description"); ok {
		input.Description = &v
	}
	if v, ok := formField(values, "body"); ok {
		input.Body = &v
	}
	if v, ok := formField(values, "category_id"); ok {
		input.CategoryID = &v
	}
	if v, ok := formField(values, "is_private"); ok {
		private, err := strconv.ParseBool(v)
		if err != nil {
			return ports.UpdatePostInput{}, func() {}, echo.NewHTTPError(http.StatusBadRequest, "is_private must be a boolean")
		}
		input.IsPrivate = &private
	}

	image, closeImage, err := formImage(c)
	if err != nil {
		return ports.UpdatePostInput{}, func() {}, err
	}
	input.Image = image
	return input, closeImage, nil
}

func formField(values map[string][]string, key string) (string, bool) {
	v, ok := values[key]
	if !ok || len(v) == 0 {
		return "", false
	}
	return v[0], true
}
