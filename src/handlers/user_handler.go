// backend/src/handlers/user_handler.go

package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/username/propledger/backend/src/database"
	"github.com/username/propledger/backend/src/logger"
	"github.com/username/propledger/backend/src/model"
	"github.com/username/propledger/backend/src/security"
	"github.com/username/propledger/backend/src/services"
	"github.com/username/propledger/backend/src/utils"
)

type UserHandler struct {
	authService *security.AuthService
	mfaService  *services.MFAService
}

func NewUserHandler(authService *security.AuthService, mfaService *services.MFAService) *UserHandler {
	return &UserHandler{
		authService: authService,
		mfaService:  mfaService,
	}
}

func (h *UserHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := GetUserFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var company *model.Company
	if user.CompanyID != nil {
		c, err := model.GetCompanyByID(database.DB, *user.CompanyID)
		if err != nil {
			logger.FromContext(r.Context()).Warn("Company lookup failed for current user", "companyID", *user.CompanyID, "error", err)
		} else {
			company = c
		}
	}

	utils.SendJSON(w, map[string]interface{}{
		"user":       user,
		"company":    company,
		"adminTier":  security.IsAdminTier(user.Role),
		"privileged": security.IsPrivileged(user.Role),
	}, http.StatusOK)
}

// HandleSetupMFA stores a pending TOTP secret; it is enforced only after HandleActivateMFA.
func (h *UserHandler) HandleSetupMFA(w http.ResponseWriter, r *http.Request) {
	user, ok := GetUserFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "Authentication required", http.StatusUnauthorized)
		return
	}
	if user.Role != security.RoleSuperAdmin {
		utils.SendJSONError(w, "Forbidden: MFA is only available for super administrators", http.StatusForbidden)
		return
	}

	secret, qrCode, err := h.mfaService.GenerateMFASecret(user.Username)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to generate MFA secret", "error", err)
		utils.SendJSONError(w, "Failed to generate MFA", http.StatusInternalServerError)
		return
	}

	if err := user.UpdateMfaSecret(database.DB, secret); err != nil {
		logger.FromContext(r.Context()).Error("Failed to save MFA secret", "error", err)
		utils.SendJSONError(w, "Failed to save MFA secret", http.StatusInternalServerError)
		return
	}

	utils.SendJSON(w, map[string]string{
		"secret":  secret,
		"qr_code": qrCode,
	}, http.StatusOK)
}

func (h *UserHandler) HandleActivateMFA(w http.ResponseWriter, r *http.Request) {
	user, ok := GetUserFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if user.MfaSecret == "" {
		utils.SendJSONError(w, "MFA setup has not been started", http.StatusBadRequest)
		return
	}
	if !h.mfaService.ValidateToken(user.MfaSecret, strings.TrimSpace(req.Code)) {
		utils.SendJSONError(w, "Código inválido", http.StatusUnauthorized)
		return
	}

	if err := user.UpdateMfaEnabled(database.DB, true); err != nil {
		logger.FromContext(r.Context()).Error("Failed to enable MFA", "error", err)
		utils.SendJSONError(w, "Failed to enable MFA", http.StatusInternalServerError)
		return
	}

	logger.FromContext(r.Context()).Info("MFA enabled")
	utils.SendJSON(w, map[string]string{"message": "MFA activado correctamente"}, http.StatusOK)
}
