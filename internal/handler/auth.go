// Package handler exposes the HTTP handlers of the school-administration
// API. Every response uses the same JSON envelope: successes carry
// {"success":true} plus data or a message, failures carry
// {"success":false,"message":...}. Database error detail is logged
// server-side and never echoed to the client.
package handler

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"schooladmin/internal/config"
	"schooladmin/internal/repository"
	"schooladmin/internal/utils"
)

const dbTimeout = 5 * time.Second

// AuthHandler bundles dependencies for administrator login.
type AuthHandler struct {
	Cfg    config.Config
	Admins *repository.AdminRepo
}

func NewAuthHandler(cfg config.Config, a *repository.AdminRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Admins: a}
}

// ----- DTOs -----

// loginReq carries form tags as well: clients that still post
// form-encoded bodies bind through the same struct.
type loginReq struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

type adminPart struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// Login verifies administrator credentials and returns the admin profile
// with a signed access token. Unknown logins and wrong passwords produce
// byte-identical responses so the endpoint leaks nothing about which
// accounts exist.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid request body."})
	}
	// The password is trimmed for the emptiness check only; verification
	// sees the supplied value untouched.
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || strings.TrimSpace(req.Password) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Username and password are required."})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	a, err := h.Admins.FindByLogin(ctx, req.Username)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "Invalid username or password."})
		}
		log.Printf("login: admin lookup failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error."})
	}
	// Inactive check comes before password verification: a deactivated
	// admin gets the inactive message even with correct credentials.
	if !a.IsActive {
		return c.JSON(http.StatusForbidden, echo.Map{"success": false, "message": "This account has been deactivated."})
	}
	if !utils.VerifyPassword(a.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "Invalid username or password."})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, a.ID, "admin", h.Cfg.AccessTTLMin)
	if err != nil {
		log.Printf("login: issue access token failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error."})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"user": adminPart{
				ID:       strconv.FormatUint(a.ID, 10),
				Username: a.Username,
				Email:    a.Email,
				Name:     a.Name,
				Role:     "admin",
			},
			"token": tokenPart{Token: access.Token, Expires: access.Exp},
		},
	})
}

// Me echoes the claims injected by the JWT middleware.
func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"admin_id": c.Get("admin_id"),
			"role":     c.Get("role"),
		},
	})
}
