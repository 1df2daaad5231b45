package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/spatialsim/geocompute/internal/scenario"
	"github.com/spatialsim/geocompute/internal/store"
)

var (
	servePort int
	serveSave bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the scenario simulation server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		srv := &scenarioServer{
			params: scenario.Params{
				RadiusKM:  cfg.Analysis.RadiusKM,
				MinPoints: cfg.Analysis.MinPoints,
				MaxPoints: cfg.Analysis.MaxPoints,
			},
			rps:   cfg.Server.RateLimitRPS,
			burst: cfg.Server.RateLimitBurst,
		}
		if serveSave {
			st, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close() //nolint:errcheck
			if err := st.Migrate(ctx); err != nil {
				return err
			}
			srv.store = st
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		httpSrv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: srv.routes(),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			httpSrv.Shutdown(ctx) //nolint:errcheck
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	serveCmd.Flags().BoolVar(&serveSave, "save", false, "persist each scenario request to the run store")
	rootCmd.AddCommand(serveCmd)
}

// scenarioServer handles simulation requests. The store is optional; when
// present every request is recorded as a run.
type scenarioServer struct {
	params scenario.Params
	store  store.Store
	rps    float64
	burst  int
}

func (s *scenarioServer) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))
	r.Use(rateLimit(rate.NewLimiter(rate.Limit(s.rps), s.burst)))

	r.Get("/health", s.handleHealth)
	r.Post("/spatialSimulator/main", s.handleScenario)
	return r
}

func (s *scenarioServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *scenarioServer) handleScenario(w http.ResponseWriter, r *http.Request) {
	var req scenario.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	resp, err := scenario.Generate(&req, s.params)
	s.record(r, resp, err)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// record persists the request outcome when a store is configured. Storage
// failures are logged, not surfaced; the response already succeeded.
func (s *scenarioServer) record(r *http.Request, resp *scenario.Response, genErr error) {
	if s.store == nil {
		return
	}
	ctx := r.Context()

	pointCount := 0
	if resp != nil && resp.SpatialAnalysis != nil {
		pointCount = resp.SpatialAnalysis.PointCount
	}

	run, err := s.store.CreateRun(ctx, store.RunKindScenario, pointCount)
	if err != nil {
		zap.L().Error("record scenario run", zap.Error(err))
		return
	}
	if genErr != nil {
		err = s.store.FailRun(ctx, run.ID, genErr)
	} else {
		err = s.store.CompleteRun(ctx, run.ID, resp)
	}
	if err != nil {
		zap.L().Error("record scenario run", zap.String("run_id", run.ID), zap.Error(err))
	}
}

// rateLimit rejects requests beyond the configured sustained rate.
func rateLimit(l *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.Allow() {
				writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("encode response", zap.Error(err))
	}
}
