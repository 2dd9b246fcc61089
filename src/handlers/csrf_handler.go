package handlers

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/username/propledger/backend/src/config"
	"github.com/username/propledger/backend/src/logger"
	"github.com/username/propledger/backend/src/utils"
)

const csrfCookieName = "_csrf"

func GetCSRFToken(w http.ResponseWriter, r *http.Request) {
	logger.L.Debug("Generating CSRF token", "remoteAddr", r.RemoteAddr)
	token := generateRandomToken()

	http.SetCookie(w, &http.Cookie{
		Name:     csrfCookieName,
		Value:    token,
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		MaxAge:   3600,
	})

	w.Header().Set("X-CSRF-Token", token)
	utils.SendJSON(w, map[string]string{"csrfToken": token}, http.StatusOK)
}

func csrfKey() []byte {
	if config.Cfg != nil {
		return config.Cfg.CSRFAuthKey
	}
	return nil
}

func signCSRFNonce(nonce string) string {
	mac := hmac.New(sha256.New, csrfKey())
	mac.Write([]byte(nonce))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// generateRandomToken returns "<nonce>.<hmac>" so only tokens minted by this
// server pass CSRFMiddleware.
func generateRandomToken() string {
	b := make([]byte, 32)
	nonce := ""
	if _, err := rand.Read(b); err != nil {
		logger.L.Error("Error generating random bytes for CSRF token", "error", err)
		nonce = fmt.Sprintf("%d", time.Now().UnixNano())
	} else {
		nonce = base64.RawURLEncoding.EncodeToString(b)
	}
	return nonce + "." + signCSRFNonce(nonce)
}

func validCSRFSignature(token string) bool {
	nonce, sig, ok := strings.Cut(token, ".")
	if !ok || nonce == "" {
		return false
	}
	return hmac.Equal([]byte(sig), []byte(signCSRFNonce(nonce)))
}

// CSRFMiddleware enforces the signed double-submit cookie on state-changing methods.
func CSRFMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next.ServeHTTP(w, r)
			return
		}

		headerToken := r.Header.Get("X-CSRF-Token")
		cookie, errCookie := r.Cookie(csrfCookieName)
		if headerToken != "" && errCookie == nil &&
			subtle.ConstantTimeCompare([]byte(headerToken), []byte(cookie.Value)) == 1 &&
			validCSRFSignature(headerToken) {
			next.ServeHTTP(w, r)
			return
		}

		logger.FromContext(r.Context()).Warn("CSRF Validation Failed",
			slog.String("method", r.Method),
			slog.String("url", r.URL.String()),
			slog.Bool("headerTokenPresent", headerToken != ""),
			slog.Bool("cookiePresent", errCookie == nil),
			slog.String("origin", r.Header.Get("Origin")),
		)
		utils.SendJSONError(w, "CSRF token validation failed", http.StatusForbidden)
	})
}
