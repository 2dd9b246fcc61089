package main

import (
	"crypto/tls"
	stdlog "log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/patrickmn/go-cache"
	"github.com/username/propledger/backend/src/config"
	"github.com/username/propledger/backend/src/database"
	"github.com/username/propledger/backend/src/handlers"
	"github.com/username/propledger/backend/src/logger"
	"github.com/username/propledger/backend/src/model"
	"github.com/username/propledger/backend/src/parsers/accounting"
	"github.com/username/propledger/backend/src/processors"
	"github.com/username/propledger/backend/src/security"
	"github.com/username/propledger/backend/src/services"
	"github.com/username/propledger/backend/src/utils"
	"golang.org/x/time/rate"
)

func proxyHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Forwarded-Proto") == "https" {
			r.URL.Scheme = "https"
			r.TLS = &tls.ConnectionState{}
		}
		next.ServeHTTP(w, r)
	})
}

func rateLimitMiddleware(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				logger.L.Warn("Rate limit exceeded", "path", r.URL.Path)
				utils.SendJSONError(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func enableCORS(allowed []string) func(http.Handler) http.Handler {
	allowedOrigins := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		allowedOrigins[o] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if allowedOrigins[origin] {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE, PATCH")
				w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, X-Requested-With, Cookie, If-None-Match")
				w.Header().Set("Access-Control-Expose-Headers", "X-CSRF-Token, ETag, X-Request-ID")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func main() {
	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel)

	logger.L.Info("PropLedger backend server starting...")

	if len(config.Cfg.JWTSecret) < 32 {
		logger.L.Error("JWT_SECRET configuration invalid: must be at least 32 characters")
		os.Exit(1)
	}

	logger.L.Info("Initializing database...", "path", config.Cfg.DatabasePath)
	database.InitDB(config.Cfg.DatabasePath)
	database.RunMigrations()

	reportCache := cache.New(config.Cfg.ReportCacheTTL, services.CacheCleanupInterval)

	authService := security.NewAuthService(config.Cfg.JWTSecret)
	mfaService := services.NewMFAService(config.Cfg.MFAIssuer)

	accountingService := services.NewAccountingService(
		model.NewAccountingRepository(database.DB),
		accounting.NewParser(),
		processors.NewSummaryProcessor(),
		reportCache,
		services.ImportOptions{
			NumberFormat: accounting.NumberFormat{
				Decimal:   config.Cfg.ImportDecimalSeparator,
				Thousands: config.Cfg.ImportThousandsSeparator,
			},
			Header: accounting.HeaderOptions{
				ScanRows:   config.Cfg.ImportHeaderScanRows,
				MinMatches: config.Cfg.ImportHeaderMinMatches,
			},
		},
	)

	userHandler := handlers.NewUserHandler(authService, mfaService)
	importHandler := handlers.NewImportHandler(accountingService, config.Cfg.MaxUploadSizeBytes)
	txHandler := handlers.NewTransactionHandler(accountingService)
	inventoryHandler := handlers.NewInventoryHandler()

	limiter := rate.NewLimiter(rate.Limit(config.Cfg.RateLimitRPS), config.Cfg.RateLimitBurst)

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(handlers.ContextualLoggerMiddleware)
	r.Use(proxyHeadersMiddleware)
	r.Use(enableCORS(config.Cfg.AllowedOrigins))
	r.Use(rateLimitMiddleware(limiter))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		utils.SendJSON(w, map[string]string{"message": "PropLedger Backend is running"}, http.StatusOK)
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/auth/csrf", handlers.GetCSRFToken)

		r.Group(func(r chi.Router) {
			r.Use(handlers.CSRFMiddleware)
			r.Post("/auth/login", userHandler.LoginUserHandler)
			r.Post("/auth/refresh", userHandler.RefreshTokenHandler)
		})

		r.Group(func(r chi.Router) {
			r.Use(handlers.CSRFMiddleware)
			r.Use(userHandler.AuthMiddleware)

			r.Post("/auth/logout", userHandler.LogoutUserHandler)
			r.Get("/auth/me", userHandler.HandleMe)
			r.Post("/auth/change-password", userHandler.ChangePasswordHandler)
			r.Get("/auth/mfa/setup", userHandler.HandleSetupMFA)
			r.Post("/auth/mfa/enable", userHandler.HandleActivateMFA)

			r.Group(func(r chi.Router) {
				r.Use(handlers.RequireAdminTier)

				r.Post("/accounting/import", importHandler.HandleImport)
				r.Post("/accounting/import/preview", importHandler.HandlePreview)
				r.Get("/accounting/imports", importHandler.HandleListImports)
				r.Delete("/accounting/imports/{id}", importHandler.HandleRollbackImport)

				r.Get("/accounting/transactions", txHandler.HandleListTransactions)
				r.Delete("/accounting/transactions", txHandler.HandleDeleteTransactions)
				r.Delete("/accounting/transactions/{id}", txHandler.HandleDeleteTransaction)
				r.Get("/accounting/summary", txHandler.HandleGetSummary)

				r.Get("/buildings", inventoryHandler.ListBuildings)
				r.Post("/buildings", inventoryHandler.CreateBuilding)
				r.Get("/buildings/{id}/units", inventoryHandler.ListUnits)
				r.Post("/buildings/{id}/units", inventoryHandler.CreateUnit)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			utils.SendJSONError(w, "Not found", http.StatusNotFound)
			return
		}
		http.NotFound(w, r)
	})

	serverAddr := ":" + config.Cfg.Port
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.L.Info("Server starting", "address", serverAddr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		stdlog.Fatalf("Failed to start server: %v", err)
	}
}
