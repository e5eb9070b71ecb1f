package handler

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"schooladmin/internal/model"
	"schooladmin/internal/queue"
	"schooladmin/internal/repository"
	queue_publisher "schooladmin/internal/service"
	"schooladmin/internal/utils"
)

// PasswordHandler owns the user password-change flow. Publish emits the
// audit event after a successful change; it defaults to the RabbitMQ
// publisher and is a field so tests can swap it out.
type PasswordHandler struct {
	Accounts *repository.AccountRepo
	Publish  func(context.Context, queue.PasswordChangedEvent) error
}

func NewPasswordHandler(a *repository.AccountRepo) *PasswordHandler {
	return &PasswordHandler{Accounts: a, Publish: queue_publisher.PublishPasswordChanged}
}

// changeReq ids travel as strings on the wire, matching every id this API
// emits.
type changeReq struct {
	UserID          string `json:"user_id" form:"user_id"`
	CurrentPassword string `json:"current_password" form:"current_password"`
	NewPassword     string `json:"new_password" form:"new_password"`
}

// Change validates the request, verifies the current password against
// whichever storage scheme the account is on, and migrates the row to the
// current scheme with the new value. Verification dispatches on the
// resolved CredentialRecord: a non-empty plaintext column wins, the
// legacy hash is only consulted when plaintext is absent.
func (h *PasswordHandler) Change(c echo.Context) error {
	var req changeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid request body."})
	}
	req.UserID = strings.TrimSpace(req.UserID)
	if req.UserID == "" || strings.TrimSpace(req.CurrentPassword) == "" || strings.TrimSpace(req.NewPassword) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "All fields are required."})
	}
	if len(req.NewPassword) < 8 {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "New password must be at least 8 characters."})
	}
	if utils.SecureEquals(req.NewPassword, req.CurrentPassword) {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "New password must differ from the current password."})
	}
	id, err := strconv.ParseUint(req.UserID, 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid user id."})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	acct, err := h.Accounts.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Account not found."})
		}
		log.Printf("password-change: account lookup failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error."})
	}

	if !model.CredentialOf(acct).Verify(req.CurrentPassword) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "Current password is incorrect."})
	}

	// Zero affected rows is fine: re-submitting an identical new value is
	// an idempotent no-op on drivers that report unchanged rows as 0.
	if _, err := h.Accounts.UpdatePassword(ctx, id, req.NewPassword); err != nil {
		log.Printf("password-change: update failed for user %d: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error."})
	}

	// Audit trail is best effort; the change already committed.
	_ = h.Publish(ctx, queue.PasswordChangedEvent{
		UserID:    req.UserID,
		RemoteIP:  c.RealIP(),
		ChangedAt: time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Password updated."})
}
