package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/zhouzirui/candidate-desk/backend/internal/handler/candidate"
	"github.com/zhouzirui/candidate-desk/backend/internal/handler/feed"
	"github.com/zhouzirui/candidate-desk/backend/internal/metrics"
	middlewarePkg "github.com/zhouzirui/candidate-desk/backend/internal/middleware"
	candidateService "github.com/zhouzirui/candidate-desk/backend/internal/service/candidate"
	"github.com/zhouzirui/candidate-desk/backend/internal/ui"
	"github.com/zhouzirui/candidate-desk/backend/pkg/utils"
)

// Deps groups what the router needs from main.
type Deps struct {
	Candidates     *candidateService.Service
	Feed           *feed.Handler
	Metrics        *metrics.Metrics
	Logger         *zap.Logger
	AllowedOrigins []string
}

// NewRouter wires HTTP routes to core services.
func NewRouter(deps Deps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewarePkg.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS(deps.AllowedOrigins))

	candidateHandler := candidate.New(deps.Candidates, logger)

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			utils.RespondJSON(w, http.StatusOK, map[string]string{
				"status":  "ok",
				"message": "Server is running",
			})
		})

		api.Route("/candidates", func(cr chi.Router) {
			// Register feed routes before /{id} is matched
			if deps.Feed != nil {
				deps.Feed.RegisterRoutes(cr)
			}
			candidateHandler.RegisterRoutes(cr)
		})

		api.NotFound(func(w http.ResponseWriter, r *http.Request) {
			utils.RespondError(w, http.StatusNotFound, "Route not found")
		})
	})

	if deps.Metrics != nil {
		r.Handle("/metrics", deps.Metrics.Handler())
	}

	ui.MountRoutes(r, ui.New(deps.Candidates, logger))

	return r
}
