package main

import (
	"encoding/gob"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"github.com/fuzzyshak/narah/internal/config"
	"github.com/fuzzyshak/narah/internal/database"
	"github.com/fuzzyshak/narah/internal/handlers"
	"github.com/fuzzyshak/narah/internal/middleware"
	"github.com/fuzzyshak/narah/internal/models"
	"github.com/fuzzyshak/narah/internal/repositories"
	"github.com/fuzzyshak/narah/internal/services"
)

func main() {
	// The cart lives in the gorilla session and must be gob-registered.
	gob.Register(&models.Cart{})
	gob.Register(models.CartItem{})
	gob.Register([]models.CartItem{})

	cfg, err := config.Load()
	if err != nil {
		// Missing connection parameters are a hard precondition: refuse to
		// serve the normal application and answer every route with the
		// configuration-error state instead.
		log.Printf("startup configuration error: %v", err)
		serveConfigurationError(cfg, err)
		return
	}

	db, err := database.NewConnection(database.Config{
		URL:          cfg.Database.URL,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
	})
	if err != nil {
		log.Printf("startup database error: %v", err)
		serveConfigurationError(cfg, err)
		return
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}
	log.Println("database ready")

	sessionStore := sessions.NewCookieStore([]byte(cfg.Session.Secret))
	sessionStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   cfg.Session.MaxAge,
		HttpOnly: true,
		Secure:   !cfg.IsDevelopment(),
		SameSite: http.SameSiteLaxMode,
	}

	userRepo := repositories.NewUserRepository(db.DB)
	venueRepo := repositories.NewVenueRepository(db.DB)
	bookingRepo := repositories.NewBookingRepository(db.DB)
	vendorRepo := repositories.NewVendorRepository(db.DB)
	contactRepo := repositories.NewContactRepository(db.DB)

	mailer := services.NewLogMailer(cfg.Mail.FromEmail, cfg.Mail.FromName)
	authService := services.NewAuthService(userRepo, mailer)
	venueService := services.NewVenueService(venueRepo, vendorRepo, contactRepo)
	bookingService := services.NewBookingService(bookingRepo, services.NewMockPaymentService(), mailer)

	authMiddleware := middleware.NewAuthMiddleware(authService, sessionStore, cfg.Session.Name)
	loginLimiter := middleware.NewRateLimiter(10, 15*time.Minute)

	authHandler := handlers.NewAuthHandler(authService, sessionStore, cfg.Session.Name)
	publicHandler := handlers.NewPublicHandler(venueService)
	cartHandler := handlers.NewCartHandler(venueService, sessionStore, cfg.Session.Name)
	checkoutHandler := handlers.NewCheckoutHandler(bookingService, sessionStore, cfg.Session.Name)
	bookingsHandler := handlers.NewBookingsHandler(bookingService)
	vendorHandler := handlers.NewVendorHandler(venueService)
	contentHandler := handlers.NewContentHandler()

	// Expired sessions are swept in the background.
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if err := authService.CleanupExpiredSessions(); err != nil {
				log.Printf("warning: session cleanup failed: %v", err)
			}
		}
	}()

	r := chi.NewRouter()
	r.Use(middleware.Recover)
	r.Use(middleware.Logging)
	r.Use(authMiddleware.LoadUser)

	// Public surface.
	r.Get("/", publicHandler.Home)
	r.Get("/venues", publicHandler.ListVenues)
	r.Get("/venues/{id}", publicHandler.GetVenue)
	r.Get("/pages/{slug}", contentHandler.GetPage)
	r.Post("/contact", publicHandler.SubmitContact)

	// Authentication.
	r.Group(func(r chi.Router) {
		r.Use(loginLimiter.Limit)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/forgot-password", authHandler.ForgotPassword)
		r.Post("/auth/reset-password", authHandler.ResetPassword)
	})
	r.Post("/auth/logout", authHandler.Logout)
	r.Get("/auth/me", authHandler.Me)

	// Cart is session-scoped; no sign-in needed to fill it.
	r.Get("/cart", cartHandler.ViewCart)
	r.Post("/cart/items", cartHandler.AddToCart)
	r.Delete("/cart/items/{id}", cartHandler.RemoveFromCart)
	r.Delete("/cart", cartHandler.ClearCart)

	// Protected surface.
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.RequireAuth)
		r.Post("/checkout", checkoutHandler.Checkout)
		r.Get("/bookings", bookingsHandler.List)
	})
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.RequirePermission(models.PermManageVenues))
		r.Post("/vendors/applications", vendorHandler.Submit)
	})

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	log.Printf("listening on %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

// serveConfigurationError answers every route with the configuration-error
// state so the failure is visible instead of a silent crash loop.
func serveConfigurationError(cfg *config.Config, cause error) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprintf(w, `{"error":"configuration required","detail":%q}`, cause.Error())
	})

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	log.Printf("serving configuration-error state on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
