package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	appanalysis "github.com/complianceworks/geogate/internal/application/analysis"
	"github.com/complianceworks/geogate/internal/middleware"
)

var errBadRequest = errors.New("bad request")

type Router struct {
	svc *appanalysis.Service
}

// NewRouter exposes single-feature analysis over HTTP. checkers feed the
// /health endpoint.
func NewRouter(svc *appanalysis.Service, log *zap.Logger, checkers map[string]middleware.HealthChecker) http.Handler {
	r := &Router{svc: svc}
	mux := chi.NewRouter()

	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	mux.Use(middleware.RequestLogger(log))

	mux.Get("/health", middleware.HealthHandler(checkers))
	mux.Get("/ready", middleware.ReadinessHandler)
	mux.Get("/live", middleware.LivenessHandler)

	mux.Route("/v1", func(rt chi.Router) {
		rt.Post("/analyze", r.wrap(r.handleAnalyze))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			if errors.Is(err, errBadRequest) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}

// POST /v1/analyze
// Body: {"feature_name": "...", "feature_description": "..."}
// feature_name is echoed back and optional.
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		FeatureName        string `json:"feature_name"`
		FeatureDescription string `json:"feature_description"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}

	res := r.svc.Analyze(req.Context(), body.FeatureDescription)

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(struct {
		FeatureName           string `json:"feature_name,omitempty"`
		IsGeoComplianceNeeded *bool  `json:"is_geo_compliance_needed"`
		Reasoning             string `json:"reasoning"`
		RelevantRegulation    string `json:"relevant_regulation"`
	}{
		FeatureName:           body.FeatureName,
		IsGeoComplianceNeeded: res.IsGeoComplianceNeeded,
		Reasoning:             res.Reasoning,
		RelevantRegulation:    res.RelevantRegulation,
	})
}
