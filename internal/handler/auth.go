package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/rdrx/rdrx/internal/apperror"
	"github.com/rdrx/rdrx/internal/auth"
	"github.com/rdrx/rdrx/internal/middleware"
	"github.com/rdrx/rdrx/internal/service"
)

// AuthHandler serves signup, login and the account-recovery endpoints.
type AuthHandler struct {
	Auth *service.AuthService
	Log  *zap.Logger
}

func NewAuthHandler(svc *service.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{Auth: svc, Log: log}
}

type signupRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Signup registers a new account. The verification token is returned
// in the payload; mail delivery is handled out of process.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, apperror.NewValidation("invalid request body"))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	user, token, err := h.Auth.Signup(ctx, req.Email, req.Username, req.Password)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusCreated, echo.Map{
		"message":            "account created, verification required",
		"user":               echo.Map{"id": user.ID, "email": user.Email, "username": user.Username},
		"verification_token": token,
	})
}

// Verify confirms an email address via the token from the signup mail.
func (h *AuthHandler) Verify(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return fail(c, apperror.NewValidation("token is required"))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Auth.VerifyEmail(ctx, token); err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, echo.Map{"message": "email verified"})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login checks credentials and, on success, sets the session cookie
// and returns the token in the body for API clients.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, apperror.NewValidation("invalid request body"))
	}
	if req.Email == "" || req.Password == "" {
		return fail(c, apperror.NewValidation("email and password are required"))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	user, token, err := h.Auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		return fail(c, err)
	}

	c.SetCookie(sessionCookie(token, int(auth.SessionTTL.Seconds())))
	return respond(c, http.StatusOK, echo.Map{
		"message": "login successful",
		"token":   token,
		"user": echo.Map{
			"id":       user.ID,
			"email":    user.Email,
			"username": user.Username,
			"is_admin": user.IsAdmin,
		},
	})
}

// Logout clears the session cookie. The token itself stays valid until
// expiry; sessions are stateless.
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(sessionCookie("", -1))
	return respond(c, http.StatusOK, echo.Map{"message": "logged out"})
}

// Me returns the account behind the current session. The row is
// loaded fresh so flag changes show up before the token rolls over.
func (h *AuthHandler) Me(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return fail(c, apperror.NewAuth("authentication required"))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	user, err := h.Auth.Me(ctx, claims.UserID)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, echo.Map{
		"user": echo.Map{
			"id":             user.ID,
			"email":          user.Email,
			"username":       user.Username,
			"is_admin":       user.IsAdmin,
			"email_verified": user.EmailVerified,
		},
	})
}

type resetRequest struct {
	Email string `json:"email"`
}

// RequestReset starts password recovery. The response is identical
// whether or not the address exists.
func (h *AuthHandler) RequestReset(c echo.Context) error {
	var req resetRequest
	if err := c.Bind(&req); err != nil || req.Email == "" {
		return fail(c, apperror.NewValidation("email is required"))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	token, err := h.Auth.RequestPasswordReset(ctx, req.Email)
	if err != nil {
		h.Log.Warn("password reset request failed", zap.Error(err))
	} else {
		// Mail delivery runs out of process; surface the token for it.
		h.Log.Debug("password reset token issued", zap.String("email", req.Email), zap.String("token", token))
	}
	return respond(c, http.StatusOK, echo.Map{"message": "if the account exists, a reset link has been sent"})
}

type resetConfirmRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// ConfirmReset sets a new password from a valid reset token.
func (h *AuthHandler) ConfirmReset(c echo.Context) error {
	var req resetConfirmRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, apperror.NewValidation("invalid request body"))
	}
	if req.Token == "" || req.NewPassword == "" {
		return fail(c, apperror.NewValidation("token and new_password are required"))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Auth.ResetPassword(ctx, req.Token, req.NewPassword); err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, echo.Map{"message": "password updated"})
}

// sessionCookie builds the auth cookie with the attributes every
// session path uses; maxAge -1 clears it.
func sessionCookie(token string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	}
}
