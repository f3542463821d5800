package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bloglist/bloglist-api/internal/api/middleware"
	"github.com/bloglist/bloglist-api/internal/core/ports"
)

// BlogHandler handles HTTP requests for blog operations.
type BlogHandler struct {
	service ports.BlogService
}

func NewBlogHandler(service ports.BlogService) *BlogHandler {
	return &BlogHandler{service: service}
}

// List handles GET /api/blogs.
//
// @Summary      List all blogs
// @Tags         blogs
// @Produce      json
// @Success      200  {array}  blogResponse
// @Router       /api/blogs [get]
func (h *BlogHandler) List(c echo.Context) error {
	blogs, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBlogResponses(blogs))
}

// Create handles POST /api/blogs.
//
// @Summary      Create a blog
// @Tags         blogs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createBlogRequest  true  "Blog details"
// @Success      201   {object}  blogResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/blogs [post]
func (h *BlogHandler) Create(c echo.Context) error {
	var req createBlogRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	callerID, _ := c.Get(middleware.UserIDKey).(string)

	blog, err := h.service.Create(c.Request().Context(), ports.CreateBlogInput{
		Title:  req.Title,
		Author: req.Author,
		URL:    req.URL,
		Likes:  req.Likes,
	}, callerID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toBlogResponse(*blog))
}

// Update handles PUT /api/blogs/:id. Only fields present in the payload are
// applied; no authentication is required (anonymous likes).
//
// @Summary      Update a blog
// @Tags         blogs
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "Blog id"
// @Param        body  body      updateBlogRequest  true  "Fields to update"
// @Success      200   {object}  blogResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/blogs/{id} [put]
func (h *BlogHandler) Update(c echo.Context) error {
	var req updateBlogRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	blog, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.BlogUpdate{
		Title:  req.Title,
		Author: req.Author,
		URL:    req.URL,
		Likes:  req.Likes,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toBlogResponse(*blog))
}

// Delete handles DELETE /api/blogs/:id. Only the owning user may delete.
//
// @Summary      Delete a blog
// @Tags         blogs
// @Security     BearerAuth
// @Param        id  path  string  true  "Blog id"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/blogs/{id} [delete]
func (h *BlogHandler) Delete(c echo.Context) error {
	callerID, _ := c.Get(middleware.UserIDKey).(string)

	if err := h.service.Remove(c.Request().Context(), c.Param("id"), callerID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
