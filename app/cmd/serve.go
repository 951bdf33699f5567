package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/printcraft/storefront/app/configs"
	"github.com/printcraft/storefront/app/repositories"
	"github.com/printcraft/storefront/app/routes"
	"github.com/printcraft/storefront/app/services"
	"github.com/printcraft/storefront/app/utils/renderer"
	"github.com/printcraft/storefront/app/utils/sessions"
)

const (
	sweepInterval   = 10 * time.Minute
	freshSessionTTL = 30 * time.Minute
	shutdownTimeout = 10 * time.Second
)

// NewServer wires the storefront from env. The returned manager owns all session state.
func NewServer(env configs.ENV) (*http.Server, *services.SessionManager, error) {
	products, err := repositories.NewProductRepository(env.CatalogPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load catalog: %w", err)
	}
	log.Println("✅ Catalog loaded.")

	keys, err := configs.LoadOrGenerateSessionKeys(env)
	if err != nil {
		return nil, nil, err
	}
	store := sessions.NewCookieSessionStore(env.SessionTTL, env.IsProduction(), keys.AuthKey, keys.EncKey)
	manager := services.NewSessionManager(env.SessionTTL,
		services.WithFreshTTL(freshSessionTTL),
		services.WithMaxSessions(env.MaxSessions),
	)
	log.Println("✅ Session store initialized.")

	var sender services.ContactSender = services.SimulatedContactSender{Delay: env.ContactDelay}
	if env.EmailHost != "" {
		sender = services.NewMailer(services.Config{
			Host:     env.EmailHost,
			Port:     env.EmailPort,
			Username: env.EmailUsername,
			Password: env.EmailPassword,
			From:     env.EmailFrom,
			To:       env.EmailTo,
		})
		log.Printf("✅ Contact messages will be mailed to %s via %s.", env.EmailTo, env.EmailHost)
	}

	validate := services.NewValidator()
	deps := routes.Dependencies{
		Products:       products,
		SessionStore:   store,
		SessionManager: manager,
		CheckoutSvc:    services.NewCheckoutService(services.SimulatedSubmitter{Delay: env.CheckoutDelay}),
		ContactSvc:     services.NewContactService(validate, sender),
		Validate:       validate,
		Render:         renderer.New(!env.IsProduction()),
	}
	if env.IsProduction() {
		deps.CSRFKey = keys.AuthKey[:32]
		deps.SecureCSRF = true
	}

	server := &http.Server{
		Addr:              env.Port,
		Handler:           routes.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return server, manager, nil
}

// Serve runs the HTTP server until ctx is cancelled, then drains in-flight requests.
func Serve(ctx context.Context, env configs.ENV) error {
	server, manager, err := NewServer(env)
	if err != nil {
		return err
	}

	stopSweeper := make(chan struct{})
	defer close(stopSweeper)
	go manager.RunSweeper(sweepInterval, stopSweeper)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("🚀 Server starting on %s", server.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	log.Println("✅ Server stopped.")
	return nil
}
