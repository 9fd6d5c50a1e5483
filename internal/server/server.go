package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"rippl-backend/internal/analytics"
	"rippl-backend/internal/app"
	"rippl-backend/internal/auth"
	"rippl-backend/internal/logging"
	"rippl-backend/internal/notifications"
	"rippl-backend/internal/orgs"
	"rippl-backend/internal/report"
	"rippl-backend/internal/tasks"
	"rippl-backend/internal/users"
)

type Options struct {
	Addr        string
	JWTSecret   []byte
	CORSOrigins []string
	Events      *analytics.Recorder
}

type Server struct {
	state *app.State
	opts  Options
}

func New(state *app.State, opts Options) *Server {
	return &Server{state: state, opts: opts}
}

// Handler builds the routed, CORS-wrapped and traced handler.
func (s *Server) Handler() http.Handler {
	st := s.state
	mw := auth.New(s.opts.JWTSecret)
	th := tasks.NewHandler(st.Tasks, st.Users, st.Feed, s.opts.Events)
	volunteer := func(h http.HandlerFunc) http.HandlerFunc { return mw.Require(auth.Volunteer, h) }
	org := func(h http.HandlerFunc) http.HandlerFunc { return mw.Require(auth.Org, h) }

	mux := http.NewServeMux()

	// Health endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("OK"))
	})

	// ----- AUTH -----
	mux.HandleFunc("/auth/session", auth.SessionHandler(s.opts.JWTSecret))
	mux.HandleFunc("/auth/logout", mw.Wrap(auth.LogoutHandler()))
	mux.HandleFunc("/auth/whoami", mw.Wrap(auth.WhoAmIHandler()))

	// ----- DISCOVERY -----
	mux.HandleFunc("/tasks", mw.Wrap(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			org(th.Create)(w, r)
			return
		}
		tasks.ListHandler(st.Tasks)(w, r)
	}))
	mux.HandleFunc("/task", mw.Wrap(tasks.GetHandler(st.Tasks)))
	mux.HandleFunc("/categories", mw.Wrap(tasks.CategoriesHandler(st.Tasks)))
	mux.HandleFunc("/orgs", mw.Wrap(orgs.ListHandler(st.Tasks)))
	mux.HandleFunc("/org", mw.Wrap(orgs.GetHandler(st.Tasks)))

	// ----- LIFECYCLE -----
	mux.HandleFunc("/task/apply", volunteer(th.Apply))
	mux.HandleFunc("/task/review", org(th.Review))
	mux.HandleFunc("/task/evidence", volunteer(th.SubmitEvidence))
	mux.HandleFunc("/task/verify", org(th.Verify))
	mux.HandleFunc("/task/reject", org(th.Reject))

	// ----- DASHBOARDS -----
	mux.HandleFunc("/queue", org(tasks.QueueHandler(st.Tasks)))
	mux.HandleFunc("/dashboard", volunteer(th.VolunteerDashboard))
	mux.HandleFunc("/org/dashboard", org(th.OrgDashboard))
	mux.HandleFunc("/me", volunteer(users.MeHandler(st.Users)))
	mux.HandleFunc("/notifications", mw.Wrap(notifications.Handler(st.Feed)))
	mux.HandleFunc("/impact/export", mw.Wrap(report.ExportHandler(report.NewExporter(st.Tasks, st.Users))))

	// ----- CLIENT EVENTS -----
	mux.HandleFunc("/events/app-opened", mw.Wrap(analytics.AppOpenedHandler(s.opts.Events)))
	mux.HandleFunc("/events/mission-viewed", mw.Wrap(analytics.MissionViewedHandler(s.opts.Events)))

	origins := s.opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "Idempotency-Key", "X-Source-Event-Key", "X-Platform", "X-App-Version", "X-Session-Id", "X-Device-Locale"},
		AllowCredentials: true,
	})

	return otelhttp.NewHandler(c.Handler(mux), "rippl-api")
}

// httpServer routes net/http's own errors through the bridged logger.
func (s *Server) httpServer() *http.Server {
	return &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          slog.NewLogLogger(logging.Logger().Handler(), slog.LevelError),
	}
}

// Run serves until ctx is cancelled, then drains for up to 10s.
func (s *Server) Run(ctx context.Context) error {
	httpServer := s.httpServer()

	serverErr := make(chan error, 1)
	go func() {
		logging.Info(ctx, "api server starting", "addr", s.opts.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server startup failed: %w", err)
	case <-ctx.Done():
		logging.Info(context.Background(), "shutdown signal received, closing server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		logging.Info(context.Background(), "server exited cleanly")
	}
	return nil
}
