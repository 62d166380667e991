package transport

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	appservice "inventory/pkg/inventory/application/service"
	"inventory/pkg/inventory/domain/model"
)

const (
	userIDHeader   = "X-User-ID"
	userNameHeader = "X-User-Name"
)

type Services struct {
	Products appservice.ProductService
	Recipes  appservice.RecipeService
	Waste    appservice.WasteService
	Sales    appservice.SalesService
	Audit    appservice.AuditService
	// Health reports whether the catalog store is reachable; nil means always healthy.
	Health func(ctx context.Context) error
}

type handler struct {
	services Services
}

func Router(services Services) http.Handler {
	h := &handler{services: services}

	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(notFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)

	s := r.PathPrefix("/api/v1").Subrouter()
	s.Use(routeTagMiddleware, actorMiddleware)

	s.HandleFunc("/health", h.health).Methods(http.MethodGet)

	s.HandleFunc("/products", h.listProducts).Methods(http.MethodGet)
	s.HandleFunc("/products", h.createProduct).Methods(http.MethodPost)
	s.HandleFunc("/products/transfer", h.transferByBody).Methods(http.MethodPost)
	s.HandleFunc("/products/{id}", h.getProduct).Methods(http.MethodGet)
	s.HandleFunc("/products/{id}", h.updateProduct).Methods(http.MethodPut)
	s.HandleFunc("/products/{id}", h.deleteProduct).Methods(http.MethodDelete)
	s.HandleFunc("/products/{id}/transfer", h.transfer).Methods(http.MethodPost)
	s.HandleFunc("/products/{id}/inventory", h.adjustInventory).Methods(http.MethodPut)

	s.HandleFunc("/recipes", h.listRecipes).Methods(http.MethodGet)
	s.HandleFunc("/recipes", h.createRecipe).Methods(http.MethodPost)
	s.HandleFunc("/recipes/{id}", h.getRecipe).Methods(http.MethodGet)
	s.HandleFunc("/recipes/{id}", h.updateRecipe).Methods(http.MethodPut)
	s.HandleFunc("/recipes/{id}", h.deleteRecipe).Methods(http.MethodDelete)
	s.HandleFunc("/recipes/{id}/ingredients", h.recipeIngredients).Methods(http.MethodGet)
	s.HandleFunc("/recipes/{id}/max-servings", h.maxServings).Methods(http.MethodGet)
	s.HandleFunc("/recipes/{id}/consume", h.consumeRecipe).Methods(http.MethodPost)

	s.HandleFunc("/sales", h.listSales).Methods(http.MethodGet)
	s.HandleFunc("/sales/summary", h.salesSummary).Methods(http.MethodGet)

	s.HandleFunc("/waste", h.listWaste).Methods(http.MethodGet)
	s.HandleFunc("/waste", h.recordWaste).Methods(http.MethodPost)
	s.HandleFunc("/waste/{id}", h.getWaste).Methods(http.MethodGet)
	s.HandleFunc("/waste-logs", h.listWaste).Methods(http.MethodGet)

	s.HandleFunc("/audit", h.listAudit).Methods(http.MethodGet)
	s.HandleFunc("/audit", h.appendAudit).Methods(http.MethodPost)

	return logMiddleware(otelhttp.NewHandler(r, "inventory",
		otelhttp.WithTracerProvider(otel.GetTracerProvider()),
		otelhttp.WithMeterProvider(otel.GetMeterProvider()),
		otelhttp.WithPropagators(otel.GetTextMapPropagator()),
	))
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	if h.services.Health != nil {
		if err := h.services.Health(r.Context()); err != nil {
			log.WithError(err).Error("health check failed")
			writeResponse(w, http.StatusServiceUnavailable, envelope{Message: "catalog store is unavailable"})
			return
		}
	}
	writeOK(w, "service is healthy", map[string]string{"status": "ok"})
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeResponse(w, http.StatusNotFound, envelope{Message: "route " + r.URL.Path + " not found"})
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeResponse(w, http.StatusMethodNotAllowed, envelope{Message: "method " + r.Method + " is not allowed"})
}

func logMiddleware(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.WithFields(log.Fields{
			"method":     r.Method,
			"url":        r.URL,
			"remoteAddr": r.RemoteAddr,
			"userAgent":  r.UserAgent(),
		}).Info("got a new request")
		h.ServeHTTP(w, r)
	})
}

func actorMiddleware(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor := model.Actor{ID: r.Header.Get(userIDHeader), Name: r.Header.Get(userNameHeader)}
		h.ServeHTTP(w, r.WithContext(appservice.WithActor(r.Context(), actor)))
	})
}

// routeTagMiddleware names the server span after the matched route template.
func routeTagMiddleware(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := mux.CurrentRoute(r)
		if route == nil {
			h.ServeHTTP(w, r)
			return
		}
		template, err := route.GetPathTemplate()
		if err != nil {
			h.ServeHTTP(w, r)
			return
		}
		trace.SpanFromContext(r.Context()).SetName(r.Method + " " + template)
		otelhttp.WithRouteTag(template, h).ServeHTTP(w, r)
	})
}
