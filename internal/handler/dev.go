package handler

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/rdrx/rdrx/internal/apperror"
	"github.com/rdrx/rdrx/internal/database"
	"github.com/rdrx/rdrx/internal/service"
)

// DevHandler serves the development conveniences: seeding the fixed
// test account and (re)running schema bootstrap. Both are disabled
// outside dev by the router.
type DevHandler struct {
	Auth *service.AuthService
	DB   *sql.DB
	Log  *zap.Logger
}

func NewDevHandler(svc *service.AuthService, db *sql.DB, log *zap.Logger) *DevHandler {
	return &DevHandler{Auth: svc, DB: db, Log: log}
}

// CreateTestUser seeds the well-known verified test account. Calling
// it again when the account exists is not an error.
func (h *DevHandler) CreateTestUser(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	user, err := h.Auth.SeedTestUser(ctx)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, echo.Map{
		"message": "test user ready",
		"user":    echo.Map{"id": user.ID, "email": user.Email, "username": user.Username},
	})
}

// InitDB runs the idempotent schema bootstrap.
func (h *DevHandler) InitDB(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	if err := database.Bootstrap(ctx, h.DB); err != nil {
		h.Log.Error("schema bootstrap failed", zap.Error(err))
		return fail(c, apperror.NewPersistence("init schema", err))
	}
	return respond(c, http.StatusOK, echo.Map{"message": "schema initialized"})
}
