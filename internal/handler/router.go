package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	analyticsHandler "github.com/davemont/deskpilot/internal/handler/analytics"
	customerHandler "github.com/davemont/deskpilot/internal/handler/customer"
	triageHandler "github.com/davemont/deskpilot/internal/handler/triage"
	middlewarePkg "github.com/davemont/deskpilot/internal/middleware"
	customerModel "github.com/davemont/deskpilot/internal/model/customer"
	analyticsService "github.com/davemont/deskpilot/internal/service/analytics"
	triageService "github.com/davemont/deskpilot/internal/service/triage"
)

// Deps bundles everything the router needs.
type Deps struct {
	Customers        customerModel.Store
	Triage           *triageService.Service
	Analytics        *analyticsService.Service
	Registry         *prometheus.Registry
	Logger           *logrus.Logger
	LiveFeedInterval time.Duration
}

// NewRouter wires HTTP routes to core services.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	triageH := triageHandler.New(deps.Triage, deps.Customers, deps.Logger)
	customerH := customerHandler.New(deps.Customers)
	analyticsH := analyticsHandler.New(deps.Analytics, deps.LiveFeedInterval, deps.Logger)

	r.Route("/api", func(api chi.Router) {
		triageH.RegisterRoutes(api)
		customerH.RegisterRoutes(api)
		analyticsH.RegisterRoutes(api)
	})

	r.Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))

	return r
}
