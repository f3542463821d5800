package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bloglist/bloglist-api/internal/core/ports"
)

// TestingHandler exposes the test-only reset endpoint. It must only be
// mounted when the service runs in the test environment: the bulk delete is
// not safe to run against live traffic.
type TestingHandler struct {
	blogs    ports.BlogRepository
	users    ports.UserRepository
	activity ports.ActivityRepository
	log      zerolog.Logger
}

func NewTestingHandler(blogs ports.BlogRepository, users ports.UserRepository, activity ports.ActivityRepository, log zerolog.Logger) *TestingHandler {
	return &TestingHandler{blogs: blogs, users: users, activity: activity, log: log}
}

// Reset handles POST /api/testing/reset: clears all blogs, users and activity
// records and returns 204.
func (h *TestingHandler) Reset(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.blogs.DeleteAll(ctx); err != nil {
		return err
	}
	if err := h.users.DeleteAll(ctx); err != nil {
		return err
	}
	if h.activity != nil {
		if err := h.activity.DeleteAll(ctx); err != nil {
			return err
		}
	}

	h.log.Warn().Msg("all data cleared via testing reset")
	return c.NoContent(http.StatusNoContent)
}
