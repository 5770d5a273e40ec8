package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hotelhub/hotel-api/internal/api/middleware"
)

// Page answers a gated dashboard route with the page name and the signed-in
// user. The gate itself is middleware.PageGate.
func Page(name string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, pageResponse{Page: name, User: middleware.CurrentUser(c)})
	}
}
