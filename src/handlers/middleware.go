// backend/src/handlers/middleware.go
package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/username/propledger/backend/src/database"
	"github.com/username/propledger/backend/src/logger"
	"github.com/username/propledger/backend/src/model"
	"github.com/username/propledger/backend/src/security"
	"github.com/username/propledger/backend/src/security/validation"
	"github.com/username/propledger/backend/src/utils"
)

type contextKey string

const (
	requestIDContextKey contextKey = "requestID"
	userIDContextKey    contextKey = "userID"
	userContextKey      contextKey = "user"
)

var (
	errNoCompany      = errors.New("no company associated with this account")
	errInvalidCompany = errors.New("invalid companyId")
)

// ContextualLoggerMiddleware attaches a request-scoped logger carrying a fresh request ID.
func ContextualLoggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.New().String()
		ctxLogger := logger.L.With(slog.String("requestID", requestID))

		ctx := logger.ToContext(r.Context(), ctxLogger)
		ctx = context.WithValue(ctx, requestIDContextKey, requestID)
		w.Header().Set("X-Request-ID", requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return authHeader
}

// AuthMiddleware requires a valid access token backed by a live session and
// loads the caller into the request context.
func (h *UserHandler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxLogger := logger.FromContext(r.Context())

		tokenString := bearerToken(r)
		if tokenString == "" {
			ctxLogger.Debug("AuthMiddleware: Authorization header missing", "path", r.URL.Path)
			utils.SendJSONError(w, "Authorization header required", http.StatusUnauthorized)
			return
		}

		userIDStr, err := h.authService.ValidateToken(tokenString)
		if err != nil {
			ctxLogger.Warn("AuthMiddleware: Token validation failed", "path", r.URL.Path, "error", err)
			utils.SendJSONError(w, "Invalid or expired token", http.StatusUnauthorized)
			return
		}

		if _, err := model.GetSessionByToken(database.DB, tokenString); err != nil {
			ctxLogger.Warn("AuthMiddleware: Session validation failed", "path", r.URL.Path, "error", err)
			utils.SendJSONError(w, "Invalid or expired session", http.StatusUnauthorized)
			return
		}

		userID, err := strconv.ParseInt(userIDStr, 10, 64)
		if err != nil {
			ctxLogger.Error("AuthMiddleware: Invalid user ID format in token", "userIDStr", userIDStr, "error", err)
			utils.SendJSONError(w, "Invalid user ID in token", http.StatusUnauthorized)
			return
		}

		user, err := model.GetUserByID(database.DB, userID)
		if err != nil {
			ctxLogger.Warn("AuthMiddleware: User not found for token", "userID", userID, "error", err)
			utils.SendJSONError(w, "Invalid session or user", http.StatusUnauthorized)
			return
		}

		enrichedLogger := ctxLogger.With(slog.Int64("userID", userID), slog.String("role", user.Role))
		ctx := logger.ToContext(r.Context(), enrichedLogger)
		ctx = context.WithValue(ctx, userIDContextKey, userID)
		ctx = context.WithValue(ctx, userContextKey, user)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdminTier rejects callers whose role may not manage accounting data.
func RequireAdminTier(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := GetUserFromContext(r.Context())
		if !ok {
			utils.SendJSONError(w, "Authentication required", http.StatusUnauthorized)
			return
		}
		if !security.IsAdminTier(user.Role) {
			logger.FromContext(r.Context()).Warn("Admin-tier access denied", "role", user.Role)
			utils.SendJSONError(w, "Forbidden: insufficient role", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDContextKey).(int64)
	return userID, ok
}

func GetUserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(userContextKey).(*model.User)
	return user, ok && user != nil
}

// WithUser returns ctx carrying user as the authenticated caller.
func WithUser(ctx context.Context, user *model.User) context.Context {
	ctx = context.WithValue(ctx, userIDContextKey, user.ID)
	return context.WithValue(ctx, userContextKey, user)
}

// resolveCompanyID decides which company a request acts on. Privileged roles may
// name any company with companyId and default to their own; everyone else is
// pinned to their own company whatever companyId says.
func resolveCompanyID(r *http.Request, user *model.User) (int64, error) {
	requested, err := validation.ValidateIDString(r.FormValue("companyId"), "companyId")
	if err != nil {
		return 0, errInvalidCompany
	}

	if security.IsPrivileged(user.Role) && requested != 0 {
		return requested, nil
	}
	if user.CompanyID == nil {
		return 0, errNoCompany
	}
	if requested != 0 && requested != *user.CompanyID {
		logger.FromContext(r.Context()).Warn("Ignoring companyId from non-privileged caller",
			"requested", requested, "own", *user.CompanyID)
	}
	return *user.CompanyID, nil
}

// companyScope resolves the caller and its company, writing the error response
// itself when either is missing.
func companyScope(w http.ResponseWriter, r *http.Request) (*model.User, int64, bool) {
	user, ok := GetUserFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required or user not found in context", http.StatusUnauthorized)
		return nil, 0, false
	}
	companyID, err := resolveCompanyID(r, user)
	switch {
	case errors.Is(err, errInvalidCompany):
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return nil, 0, false
	case err != nil:
		utils.SendJSONError(w, err.Error(), http.StatusForbidden)
		return nil, 0, false
	}
	return user, companyID, true
}
