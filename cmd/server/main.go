package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"dispatch-gateway/internal/engine"
	"dispatch-gateway/internal/handlers"
	"dispatch-gateway/internal/middleware"
	"dispatch-gateway/internal/notify"
	"dispatch-gateway/internal/realtime"
	"dispatch-gateway/internal/upstream"
	"dispatch-gateway/internal/websocket"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
)

func main() {
	log.Println("═══════════════════════════════════════════════════════════════════")
	log.Println("🚀 DISPATCH GATEWAY STARTING")
	log.Println("═══════════════════════════════════════════════════════════════════")

	// Load .env file
	log.Println("📂 Loading environment variables...")
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  Warning: .env file not found, using environment variables from system")
	} else {
		log.Println("✅ .env file loaded successfully")
	}

	// Fleet API endpoint
	log.Println("🔍 Checking UPSTREAM_API_URL environment variable...")
	apiURL := os.Getenv("UPSTREAM_API_URL")
	if apiURL == "" {
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Println("❌ FATAL ERROR: UPSTREAM_API_URL environment variable is required")
		log.Println("   Set it to the fleet API base URL, e.g. http://localhost:8000/api")
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Fatal("UPSTREAM_API_URL environment variable is required")
	}
	log.Printf("✅ UPSTREAM_API_URL found: %s", apiURL)

	if os.Getenv("APP_JWT_SECRET") == "" {
		log.Fatal("APP_JWT_SECRET environment variable is required")
	}

	// Fleet API client
	api := upstream.NewClient(apiURL)

	ctx := context.Background()

	// Authenticate against the fleet API: a pre-issued token wins, otherwise
	// log in with service credentials.
	if token := os.Getenv("UPSTREAM_API_TOKEN"); token != "" {
		api.SetToken(token)
		log.Println("✅ Using pre-issued fleet API token")
	} else if email := os.Getenv("UPSTREAM_EMAIL"); email != "" {
		log.Printf("🔐 Logging in to fleet API as %s...", email)
		if _, err := api.Login(ctx, email, os.Getenv("UPSTREAM_PASSWORD")); err != nil {
			log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
			log.Println("❌ FATAL ERROR: Fleet API login failed")
			log.Printf("   Error: %v", err)
			log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
			log.Fatal(err)
		}
		log.Println("✅ Fleet API login successful")
	} else {
		log.Println("⚠️  No UPSTREAM_API_TOKEN or UPSTREAM_EMAIL set - operator login will supply the session")
	}

	// Initialize dashboard fan-out hub
	hub := websocket.NewHub()
	go hub.Run()
	log.Println("✅ WebSocket hub started")

	// Reconciliation engine
	notifier := notify.NewHubNotifier(hub)
	eng := engine.New(api, notifier, hub)

	// Initial load (the gateway keeps serving on failure; the dashboard can
	// retry via the branch filter or a manual reload)
	log.Println("📋 Loading initial dashboard state...")
	if err := eng.LoadAll(ctx); err != nil {
		log.Printf("⚠️  Initial load incomplete: %v", err)
	} else {
		log.Printf("✅ Initial state loaded: %d riders, %d orders", len(eng.Store().Riders()), len(eng.Store().Orders()))
	}

	// Realtime subscription to the fleet broker
	wsURL := os.Getenv("UPSTREAM_WS_URL")
	if wsURL == "" {
		log.Println("⚠️  UPSTREAM_WS_URL not set - realtime updates disabled")
	} else {
		rt := realtime.NewClient(wsURL, eng)
		go rt.Run(ctx)
		log.Printf("✅ Realtime subscriber started for %s", wsURL)
	}

	// Create router
	r := chi.NewRouter()

	// Middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Authentication routes (no auth required)
	r.Post("/api/auth/login", handlers.Login(api))

	// WebSocket endpoint (authentication handled in handler via query param)
	r.Get("/ws", websocket.HandleWebSocket(hub))

	// API routes (require authentication)
	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth)

			r.Post("/auth/logout", handlers.Logout(api))

			// Reconciled dashboard state
			r.Get("/snapshot", handlers.Snapshot(eng))
			r.Put("/branch-filter", handlers.SetBranchFilter(eng))

			// Orders
			r.Get("/orders", handlers.GetOrders(eng))
			r.Post("/orders", handlers.CreateOrder(eng))
			r.Get("/orders/history", handlers.OrderHistory(api))
			r.Post("/orders/{id}/assign", handlers.AssignOrder(eng))
			r.Post("/orders/{id}/status", handlers.UpdateOrderStatus(eng))

			// Riders
			r.Get("/riders", handlers.GetRiders(eng))
			r.Post("/riders", handlers.CreateRider(eng))
			r.Put("/riders/{id}", handlers.UpdateRider(api, eng))
			r.Get("/map/riders", handlers.RiderPositions(api))

			// Branches (proxied to the fleet API)
			r.Get("/branches", handlers.GetBranches(api))
			r.Post("/branches", handlers.CreateBranch(api))
			r.Get("/branches/{id}", handlers.GetBranch(api))
			r.Put("/branches/{id}", handlers.UpdateBranch(api))
			r.Delete("/branches/{id}", handlers.DeleteBranch(api))
			r.Post("/branches/{id}/activate", handlers.ActivateBranch(api))
			r.Post("/branches/{id}/deactivate", handlers.DeactivateBranch(api))

			// Settings
			r.Get("/settings", handlers.GetSettings(api))
			r.Put("/settings", handlers.UpdateSettings(api, eng))
		})
	})

	// Get port
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
		log.Printf("⚠️  PORT not set, using default: %s", port)
	} else {
		log.Printf("✅ PORT found: %s", port)
	}

	log.Println("═══════════════════════════════════════════════════════════════════")
	log.Println("✅ ALL INITIALIZATION COMPLETE")
	log.Printf("🚀 Gateway listening on http://localhost:%s", port)
	log.Println("═══════════════════════════════════════════════════════════════════")

	// Start server
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Println("❌ FATAL ERROR: Server failed to start")
		log.Printf("   Error: %v", err)
		log.Printf("   Port: %s", port)
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Fatal(err)
	}
}
