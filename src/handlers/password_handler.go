package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/username/propledger/backend/src/database"
	"github.com/username/propledger/backend/src/logger"
	"github.com/username/propledger/backend/src/security/validation"
	"github.com/username/propledger/backend/src/utils"
)

type ChangePasswordRequest struct {
	CurrentPassword    string `json:"current_password"`
	NewPassword        string `json:"new_password"`
	ConfirmNewPassword string `json:"confirm_new_password"`
}

// ChangePasswordHandler replaces the caller's password and ends every other session.
func (h *UserHandler) ChangePasswordHandler(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	user, ok := GetUserFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.NewPassword != req.ConfirmNewPassword {
		utils.SendJSONError(w, "New passwords do not match", http.StatusBadRequest)
		return
	}
	if err := validation.ValidatePassword(req.NewPassword); err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := user.CheckPassword(req.CurrentPassword); err != nil {
		log.Warn("Current password mismatch for password change")
		utils.SendJSONError(w, "Incorrect current password", http.StatusForbidden)
		return
	}

	if err := user.HashPassword(req.NewPassword); err != nil {
		log.Error("Failed to hash new password", "error", err)
		utils.SendJSONError(w, "Failed to process new password", http.StatusInternalServerError)
		return
	}
	if err := user.UpdatePassword(database.DB); err != nil {
		log.Error("Failed to update password in DB", "error", err)
		utils.SendJSONError(w, "Failed to change password", http.StatusInternalServerError)
		return
	}
	if err := user.DeleteOtherSessions(database.DB, bearerToken(r)); err != nil {
		log.Warn("Failed to revoke other sessions after password change", "error", err)
	}

	log.Info("Password changed successfully")
	utils.SendJSON(w, map[string]string{"message": "Password changed successfully."}, http.StatusOK)
}
