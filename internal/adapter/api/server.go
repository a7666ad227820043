package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"github.com/wealthpulse/wealthpulse/internal/domain"
	"github.com/wealthpulse/wealthpulse/internal/usecase/ingest"
	"github.com/wealthpulse/wealthpulse/internal/usecase/timeseries"
)

// Server wires the use-case services to the HTTP surface
type Server struct {
	SeriesService *timeseries.SeriesService
	IngestService *ingest.IngestService

	logger *logrus.Logger
}

// NewServer creates a new API server instance
func NewServer(
	seriesService *timeseries.SeriesService,
	ingestService *ingest.IngestService,
	logger *logrus.Logger,
) *Server {
	return &Server{
		SeriesService: seriesService,
		IngestService: ingestService,
		logger:        logger,
	}
}

// Router builds the HTTP router. The health endpoint is public; everything
// else requires the bearer token.
func (s *Server) Router(apiToken string, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/system/health", s.health)

		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(apiToken))

			r.Route("/portfolio", func(r chi.Router) {
				r.Get("/series", s.getSeries)
				r.Get("/series/chart", s.getSeriesChart)
			})

			r.Post("/crypto/samples", s.postCryptoSample)
			r.Post("/finance/statements", s.postFinanceStatement)
		})
	})

	return r
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// getSeries returns the unified asset series for the requested window as JSON.
func (s *Server) getSeries(w http.ResponseWriter, r *http.Request) {
	opts, err := parseSeriesOptions(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid series options", err.Error())
		return
	}

	points, err := s.SeriesService.BuildUnifiedSeries(r.Context(), opts)
	if err != nil {
		if errors.Is(err, domain.ErrNoData) {
			respondError(w, http.StatusNotFound, "nothing to chart for the requested window", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to build unified series", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, toSeriesResponse(points))
}

// getSeriesChart renders the unified series as a PNG chart.
func (s *Server) getSeriesChart(w http.ResponseWriter, r *http.Request) {
	opts, err := parseSeriesOptions(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid series options", err.Error())
		return
	}

	image, err := s.SeriesService.BuildChart(r.Context(), opts)
	if err != nil {
		if errors.Is(err, domain.ErrNoData) {
			respondError(w, http.StatusNotFound, "nothing to chart for the requested window", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to render chart", err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(image); err != nil {
		s.logger.WithError(err).Error("failed to write chart response")
	}
}

// postCryptoSample records a new portfolio snapshot.
func (s *Server) postCryptoSample(w http.ResponseWriter, r *http.Request) {
	input, err := parseCryptoSampleRequest(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid crypto sample", err.Error())
		return
	}

	sample, err := s.IngestService.RecordCryptoSample(r.Context(), input)
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to record crypto sample", err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{"id": sample.ID.String()})
}

// postFinanceStatement records a new account statement.
func (s *Server) postFinanceStatement(w http.ResponseWriter, r *http.Request) {
	input, err := parseFinanceStatementRequest(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid finance statement", err.Error())
		return
	}

	statement, err := s.IngestService.RecordFinanceStatement(r.Context(), input)
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to record finance statement", err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{"id": statement.ID.String()})
}
