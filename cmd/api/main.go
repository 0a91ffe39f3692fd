package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/01moynul/bales-storefront/internal/ai"
	"github.com/01moynul/bales-storefront/internal/catalog"
	"github.com/01moynul/bales-storefront/internal/config"
	"github.com/01moynul/bales-storefront/internal/database"
	"github.com/01moynul/bales-storefront/internal/handlers"
	"github.com/01moynul/bales-storefront/internal/metrics"
	"github.com/01moynul/bales-storefront/internal/middleware"
	"github.com/01moynul/bales-storefront/internal/notify"
	"github.com/01moynul/bales-storefront/internal/orders"
	"github.com/01moynul/bales-storefront/internal/payment"
	"github.com/01moynul/bales-storefront/internal/paystack"
	"github.com/01moynul/bales-storefront/internal/routes"
	"github.com/01moynul/bales-storefront/internal/store/legacy"
	"github.com/01moynul/bales-storefront/internal/store/memory"
	"github.com/01moynul/bales-storefront/internal/store/postgres"
	"github.com/01moynul/bales-storefront/internal/tracking"
	"github.com/01moynul/bales-storefront/internal/verification"
)

// backend is everything the services read and write.
type backend interface {
	verification.Store
	payment.Store
	tracking.OrderFinder
	orders.Store
	metrics.Store
	catalog.Store
	middleware.RoleChecker
}

func main() {
	// 0. --- Load Configuration (.env + environment) ---
	cfg := config.Load()

	// 1. --- Main Database Connection ---
	var store backend
	if cfg.InMemory() {
		log.Println("WARNING: DATABASE_URL is not set. Running with the in-memory store; data is lost on restart.")
		store = memory.New()
	} else {
		db, err := database.OpenDB(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to primary database: %v", err)
		}
		defer db.Close()

		pg, err := postgres.New(db)
		if err != nil {
			log.Fatalf("Failed to initialize store: %v", err)
		}
		store = pg
	}

	// 2. --- Legacy Order Database (optional, read-only) ---
	finders := []tracking.OrderFinder{store}
	if cfg.LegacyMySQLDSN != "" {
		legacyDB, err := database.OpenLegacyDB(cfg.LegacyMySQLDSN)
		if err != nil {
			log.Printf("WARNING: legacy order lookup disabled: %v", err)
		} else {
			defer legacyDB.Close()
			finders = append(finders, legacy.New(legacyDB))
		}
	}

	// 3. --- Providers ---
	dispatcher := notify.NewDispatcher(
		notify.WithSalesInbox(cfg.SalesEmail),
		notify.WithContactInbox(cfg.ContactEmail),
	)
	if s := notify.NewResendSender(cfg.ResendAPIKey, cfg.EmailFrom); s != nil {
		notify.WithEmail(s)(dispatcher)
	} else {
		log.Println("WARNING: RESEND_API_KEY is not set. Email delivery is disabled.")
	}
	if s := notify.NewWinSMSSender(cfg.WinSMSAPIKey, cfg.WinSMSBaseURL); s != nil {
		notify.WithSMS(s)(dispatcher)
	} else {
		log.Println("WARNING: WINSMS_API_KEY is not set. SMS delivery is disabled.")
	}
	if cfg.PaystackSecretKey == "" {
		log.Println("WARNING: PAYSTACK_SECRET_KEY is not set. Payments will fail.")
	}
	if cfg.JWTSecret == "" {
		log.Println("WARNING: SUPABASE_JWT_SECRET is not set. Admin routes will reject every request.")
	}

	// 4. --- AI Service Initialization (optional) ---
	var generator ai.TextGenerator
	if cfg.GeminiAPIKey != "" {
		gemini, err := ai.NewGeminiGenerator(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Printf("WARNING: Failed to initialize AI Service: %v", err)
		} else {
			defer gemini.Close()
			generator = gemini
		}
	}

	// --- Application Setup ---
	// We inject every service into the Handlers struct.
	catalogSvc := catalog.NewService(store)
	app := &handlers.Handlers{
		Verification: verification.NewService(store, dispatcher, cfg.PinTTL),
		Payments:     payment.NewService(paystack.NewClient(cfg.PaystackSecretKey, cfg.PaystackBaseURL), store),
		Tracking:     tracking.NewService(finders...),
		Orders:       orders.NewService(store, dispatcher),
		Metrics:      metrics.NewService(store),
		Catalog:      catalogSvc,
		Notify:       dispatcher,
		Copywriter:   ai.NewCopywriter(generator, catalogSvc),
		UploadDir:    cfg.UploadDir,
		BaseURL:      cfg.BaseURL,
	}

	// --- Router Setup ---
	router := routes.SetupRouter(app, []byte(cfg.JWTSecret), store)

	// --- Start Server ---
	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Printf("Starting Bales Store API server on port %s...", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
