package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/andesmarket/storefront-gateway/internal/core/domain"
)

// ctxSession extracts the session injected by the Session middleware. A
// missing or malformed value means the route was wired without the
// middleware; reject with 401 rather than proceed unauthenticated.
func ctxSession(c echo.Context) (*domain.Session, error) {
	sess, ok := c.Get("session").(*domain.Session)
	if !ok || sess == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	return sess, nil
}
