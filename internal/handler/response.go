// Package handler contains the HTTP route handlers. Handlers are thin:
// validate input shape, call a service, map the outcome onto the
// uniform `{success, message?, ...}` envelope with a fixed status set
// (200/201, 400, 401, 403, 404, 409, 500).
package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/rdrx/rdrx/internal/apperror"
)

// respond writes a success envelope merging the payload fields.
func respond(c echo.Context, status int, payload echo.Map) error {
	body := echo.Map{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	return c.JSON(status, body)
}

// fail maps a service error to its HTTP status and writes the failure
// envelope. Only the apperror message ever reaches the client;
// wrapped causes stay server-side.
func fail(c echo.Context, err error) error {
	ae := apperror.From(err)
	return c.JSON(ae.StatusCode(), echo.Map{"success": false, "message": ae.Message})
}
