package routes

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/printcraft/storefront/app/handlers"
	"github.com/printcraft/storefront/app/middlewares"
	"github.com/printcraft/storefront/app/repositories"
	"github.com/printcraft/storefront/app/services"
	"github.com/printcraft/storefront/app/utils/sessions"
	"github.com/unrolled/render"
)

type Dependencies struct {
	Products       repositories.ProductRepositoryImpl
	SessionStore   sessions.SessionStore
	SessionManager *services.SessionManager
	CheckoutSvc    *services.CheckoutService
	ContactSvc     *services.ContactService
	Validate       *validator.Validate
	Render         *render.Render

	// UploadWait bounds how long an upload response waits for the decode.
	UploadWait time.Duration
	// CSRFKey enables CSRF protection when set. It must be 32 bytes.
	CSRFKey    []byte
	SecureCSRF bool
}

func NewRouter(deps Dependencies) http.Handler {
	if deps.UploadWait <= 0 {
		deps.UploadWait = 5 * time.Second
	}

	homeHandler := handlers.NewHomeHandler(deps.Products, deps.Render)
	productHandler := handlers.NewProductHandler(deps.Products, deps.Render)
	cartHandler := handlers.NewCartHandler(deps.Products, deps.Validate, deps.Render)
	designHandler := handlers.NewDesignHandler(deps.Render, deps.UploadWait)
	checkoutHandler := handlers.NewCheckoutHandler(deps.CheckoutSvc, deps.Render)
	contactHandler := handlers.NewContactHandler(deps.ContactSvc, deps.Render)
	sessionHandler := handlers.NewSessionHandler(deps.SessionStore, deps.SessionManager, deps.Render)

	// Read-only routes only look sessions up; stateful routes create them on first use.
	lookup := chain(middlewares.SessionLookupMiddleware(deps.SessionStore, deps.SessionManager), middlewares.CartCountMiddleware)
	stateful := chain(middlewares.SessionMiddleware(deps.SessionStore, deps.SessionManager), middlewares.CartCountMiddleware)

	router := mux.NewRouter()

	router.Handle("/", lookup(homeHandler.Home)).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()

	api.Handle("/products", lookup(productHandler.Products)).Methods("GET")
	api.Handle("/products/{id}", lookup(productHandler.ProductDetail)).Methods("GET")
	api.Handle("/contact", lookup(contactHandler.SubmitContact)).Methods("POST")
	api.Handle("/session", lookup(sessionHandler.EndSession)).Methods("DELETE")

	api.Handle("/cart", stateful(cartHandler.GetCart)).Methods("GET")
	api.Handle("/cart", stateful(cartHandler.ClearCart)).Methods("DELETE")
	api.Handle("/cart/items", stateful(cartHandler.AddItemCart)).Methods("POST")
	api.Handle("/cart/items/{id}", stateful(cartHandler.UpdateCartItem)).Methods("PATCH")
	api.Handle("/cart/items/{id}", stateful(cartHandler.DeleteCartItem)).Methods("DELETE")

	api.Handle("/design", stateful(designHandler.GetDraft)).Methods("GET")
	api.Handle("/design/upload", stateful(designHandler.UploadDesign)).Methods("POST")
	api.Handle("/design/upload", stateful(designHandler.ClearDesign)).Methods("DELETE")
	api.Handle("/design/color", stateful(designHandler.SetColor)).Methods("PUT")
	api.Handle("/design/size", stateful(designHandler.SetSize)).Methods("PUT")
	api.Handle("/design/quantity", stateful(designHandler.SetQuantity)).Methods("PUT")
	api.Handle("/design/preview.svg", stateful(designHandler.Preview)).Methods("GET")
	api.Handle("/design/confirm", stateful(designHandler.ConfirmOrder)).Methods("POST")

	api.Handle("/checkout", stateful(checkoutHandler.Checkout)).Methods("POST")

	var handler http.Handler = router
	if len(deps.CSRFKey) > 0 {
		handler = middlewares.CSRFMiddleware(deps.CSRFKey, deps.SecureCSRF)(handler)
	}
	return middlewares.MethodOverrideMiddleware(handler)
}

// chain applies mws outermost first.
func chain(mws ...func(http.Handler) http.Handler) func(http.HandlerFunc) http.Handler {
	return func(h http.HandlerFunc) http.Handler {
		var handler http.Handler = h
		for i := len(mws) - 1; i >= 0; i-- {
			handler = mws[i](handler)
		}
		return handler
	}
}
