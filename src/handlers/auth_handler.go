// backend/src/handlers/auth_handler.go
package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/username/propledger/backend/src/config"
	"github.com/username/propledger/backend/src/database"
	"github.com/username/propledger/backend/src/logger"
	"github.com/username/propledger/backend/src/model"
	"github.com/username/propledger/backend/src/security/validation"
	"github.com/username/propledger/backend/src/utils"
)

const defaultRefreshTokenExpiry = 168 * time.Hour

func refreshTokenExpiry() time.Duration {
	if config.Cfg != nil && config.Cfg.RefreshTokenExpiry > 0 {
		return config.Cfg.RefreshTokenExpiry
	}
	return defaultRefreshTokenExpiry
}

type tokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// issueSession signs a new access token, creates its refresh token and stores both.
func (h *UserHandler) issueSession(r *http.Request, userID int64) (*tokenPair, error) {
	accessToken, err := h.authService.GenerateToken(fmt.Sprintf("%d", userID))
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, err := h.authService.GenerateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	session := &model.Session{
		UserID:       userID,
		Token:        accessToken,
		RefreshToken: refreshToken,
		UserAgent:    r.UserAgent(),
		ClientIP:     r.RemoteAddr,
		IsBlocked:    false,
		ExpiresAt:    time.Now().Add(refreshTokenExpiry()),
	}
	if err := model.CreateSession(database.DB, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return &tokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (h *UserHandler) LoginUserHandler(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	log.Debug("Login request received", "remoteAddr", r.RemoteAddr)

	var credentials struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
		MfaCode  string `json:"mfa_code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		log.Warn("Invalid request body for login", "error", err)
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var (
		user *model.User
		err  error
	)
	if email := strings.ToLower(validation.SanitizeText(strings.TrimSpace(credentials.Email))); email != "" {
		user, err = model.GetUserByEmail(database.DB, email)
	} else {
		user, err = model.GetUserByUsername(database.DB, validation.SanitizeText(strings.TrimSpace(credentials.Username)))
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Warn("Login failed: user not found")
		} else {
			log.Error("User lookup failed for login", "error", err)
		}
		utils.SendJSONError(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	if err := user.CheckPassword(credentials.Password); err != nil {
		log.Warn("Password check failed for login", "userID", user.ID)
		utils.SendJSONError(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	if user.MfaEnabled {
		if strings.TrimSpace(credentials.MfaCode) == "" {
			utils.SendJSONErrorWithDetails(w, "MFA code required", map[string]string{"code": "MFA_REQUIRED"}, http.StatusUnauthorized)
			return
		}
		if !h.mfaService.ValidateToken(user.MfaSecret, strings.TrimSpace(credentials.MfaCode)) {
			log.Warn("Invalid MFA code on login", "userID", user.ID)
			utils.SendJSONError(w, "Invalid MFA code", http.StatusUnauthorized)
			return
		}
	}

	if err := user.RecordLogin(database.DB); err != nil {
		log.Warn("Failed to record login", "userID", user.ID, "error", err)
	}

	tokens, err := h.issueSession(r, user.ID)
	if err != nil {
		log.Error("Failed to issue session", "userID", user.ID, "error", err)
		utils.SendJSONError(w, "Failed to create session", http.StatusInternalServerError)
		return
	}

	log.Info("User login successful, tokens generated", "userID", user.ID)
	utils.SendJSON(w, map[string]interface{}{
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
		"user":          user,
	}, http.StatusOK)
}

func (h *UserHandler) RefreshTokenHandler(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var requestBody struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if requestBody.RefreshToken == "" {
		utils.SendJSONError(w, "Refresh token is required", http.StatusBadRequest)
		return
	}

	oldSession, err := model.GetSessionByRefreshToken(database.DB, requestBody.RefreshToken)
	if err != nil {
		log.Warn("Refresh token lookup failed or token invalid/expired", "error", err)
		utils.SendJSONError(w, "Invalid or expired refresh token", http.StatusUnauthorized)
		return
	}

	if err := model.DeleteSessionByRefreshToken(database.DB, requestBody.RefreshToken); err != nil {
		log.Error("Failed to delete old session during refresh", "userID", oldSession.UserID, "error", err)
		utils.SendJSONError(w, "Failed to rotate session", http.StatusInternalServerError)
		return
	}

	tokens, err := h.issueSession(r, oldSession.UserID)
	if err != nil {
		log.Error("Failed to issue session on refresh", "userID", oldSession.UserID, "error", err)
		utils.SendJSONError(w, "Failed to create new session on refresh", http.StatusInternalServerError)
		return
	}

	log.Info("Token refreshed successfully", "userID", oldSession.UserID)
	utils.SendJSON(w, tokens, http.StatusOK)
}

func (h *UserHandler) LogoutUserHandler(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	tokenString := bearerToken(r)
	if tokenString != "" {
		if err := model.DeleteSessionByToken(database.DB, tokenString); err != nil {
			log.Warn("Failed to delete session on logout", "tokenPrefix", tokenString[:min(10, len(tokenString))], "error", err)
		} else {
			log.Info("Session invalidated successfully on logout")
		}
	} else {
		log.Warn("Logout attempt with no token in Authorization header")
	}

	w.WriteHeader(http.StatusNoContent)
}
