package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/blog-api/internal/core/ports"
)

type PostHandler struct {
	postService ports.PostService
}

func NewPostHandler(postService ports.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// Create publishes a new post owned by the authenticated user. The payload is
// a multipart form so an image can ride along.
//
// @Summary      Create post
// @Tags         posts
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  postResponse
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var form createPostForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form payload")
	}
	if err := c.Validate(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	image, closeImage, err := formImage(c)
	if err != nil {
		return err
	}
	defer closeImage()

	view, err := h.postService.Create(c.Request().Context(), identity, ports.CreatePostInput{
		Title:       form.Title,
		Description: form.Description,
		Body:        form.Body,
		CategoryID:  form.CategoryID,
		IsPrivate:   form.IsPrivate,
		Image:       image,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toPostResponse(view))
}

// List returns all posts visible to the caller.
//
// @Summary      List posts
// @Tags         posts
// @Produce      json
// @Success      200  {array}  postResponse
// @Router       /posts [get]
func (h *PostHandler) List(c echo.Context) error {
	views, err := h.postService.List(c.Request().Context(), ctxIdentityOptional(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPostResponses(views))
}

// Get returns a single post, honouring private-post visibility.
//
// @Summary      Get post
// @Tags         posts
// @Produce      json
// @Param        id  path  string  true  "Post id"
// @Success      200  {object}  postResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id} [get]
func (h *PostHandler) Get(c echo.Context) error {
	view, err := h.postService.Get(c.Request().Context(), ctxIdentityOptional(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPostResponse(view))
}

// Update applies a partial update. Owner or admin only.
//
// @Summary      Update post
// @Tags         posts
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Post id"
// @Success      200  {object}  postResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id} [put]
func (h *PostHandler) Update(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	input, closeImage, err := updatePostInput(c)
	if err != nil {
		return err
	}
	defer closeImage()

	view, err := h.postService.Update(c.Request().Context(), identity, c.Param("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPostResponse(view))
}

// Delete removes a post. Owner or admin only.
//
// @Summary      Delete post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Post id"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	if err := h.postService.Delete(c.Request().Context(), identity, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "post deleted successfully"})
}
