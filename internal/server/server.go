// Package server hosts the studio daemon: the content store, the booking
// wizard sessions, and the JSON API that the site frontend and studioctl
// talk to.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/eastdocs/studioctl/internal/audit"
	"github.com/eastdocs/studioctl/internal/booking"
	"github.com/eastdocs/studioctl/internal/checkout"
	"github.com/eastdocs/studioctl/internal/content"
	dbpkg "github.com/eastdocs/studioctl/internal/db"
	"github.com/eastdocs/studioctl/internal/identity"
	"github.com/eastdocs/studioctl/internal/media"
	"github.com/eastdocs/studioctl/internal/placeholder"
)

const (
	shutdownTimeout = 10 * time.Second
	sweepInterval   = 5 * time.Minute
)

type Server struct {
	cfg     Config
	logger  *slog.Logger
	version string

	db          *sql.DB
	queries     *dbpkg.Queries
	store       *content.Store
	sessions    *booking.Registry
	identity    *identity.Service
	auditLogger audit.Logger

	// checkout and mediaFetcher may be injected before Start; tests use
	// that to stub the collaborators.
	checkout     booking.CheckoutClient
	mediaFetcher media.Fetcher

	placeholders *placeholder.Cache

	listener    net.Listener
	httpServer  *http.Server
	errCh       chan error
	sweepCancel context.CancelFunc
}

func New(cfg Config, logger *slog.Logger, version string) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	if version == "" {
		version = "dev"
	}

	srv := &Server{
		cfg:          cfg,
		logger:       logger,
		version:      version,
		placeholders: placeholder.NewCache(),
		errCh:        make(chan error, 1),
	}

	mux := http.NewServeMux()
	registerHealthRoutes(mux, version)
	registerAPIRoutes(mux, srv)
	srv.httpServer = &http.Server{
		Addr:         cfg.ListenAddr(),
		Handler:      mux,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return srv, nil
}

func (s *Server) Start() error {
	if err := os.MkdirAll(s.cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data directory %s: %w", s.cfg.DataDir, err)
	}

	dbPath := s.cfg.DBPath
	if dbPath == "" {
		dbPath = s.cfg.DataDir + "/studio.db"
	}
	sqlDB, err := dbpkg.Open(dbpkg.Options{
		Path:          dbPath,
		EnableWAL:     s.cfg.DBWAL,
		BusyTimeoutMS: 5000,
		MaxOpenConns:  5,
		MaxIdleConns:  5,
	})
	if err != nil {
		return err
	}
	if err := dbpkg.RunMigrations(context.Background(), sqlDB); err != nil {
		_ = sqlDB.Close()
		return err
	}
	s.db = sqlDB
	s.queries = dbpkg.NewQueries(sqlDB)

	baseAuditLogger, err := audit.NewSQLiteLogger(sqlDB)
	if err != nil {
		s.closeDB()
		return fmt.Errorf("initialize audit logger: %w", err)
	}
	s.auditLogger = audit.NewAsyncLogger(baseAuditLogger, 512, func(err error) {
		s.logger.Error("asynchronous audit write failed", "error", err)
	})

	store, err := content.NewStore(context.Background(), dbpkg.NewSnapshotStore(s.queries), s.logger)
	if err != nil {
		s.closeDB()
		return err
	}
	s.store = store

	s.identity = identity.NewService(sqlDB)
	s.sessions = booking.NewRegistry(time.Duration(s.cfg.SessionTTLMinutes) * time.Minute)

	if s.checkout == nil {
		if s.cfg.Checkout.Endpoint != "" {
			client, err := checkout.NewHTTPClient(s.cfg.Checkout.Endpoint, s.cfg.Checkout.APIKey)
			if err != nil {
				s.closeDB()
				return err
			}
			s.checkout = client
		} else {
			s.logger.Warn("no checkout endpoint configured, booking submission is disabled")
			s.checkout = checkout.Disabled{}
		}
	}

	if s.mediaFetcher == nil && s.cfg.Media.APIKey != "" {
		fetcher, err := media.NewPexelsClient(s.cfg.Media.APIKey)
		if err != nil {
			s.closeDB()
			return err
		}
		s.mediaFetcher = fetcher
	}

	ln, err := net.Listen("tcp", s.cfg.ListenAddr())
	if err != nil {
		s.closeDB()
		return fmt.Errorf("listen on %s: %w", s.cfg.ListenAddr(), err)
	}
	s.listener = ln

	if !isLoopbackHost(s.cfg.BindAddr) {
		s.logger.Warn("binding to non-loopback address", "bind", s.cfg.BindAddr)
	}

	s.logger.Info("studioservd starting",
		"listen_addr", ln.Addr().String(),
		"data_dir", s.cfg.DataDir,
		"db_path", dbPath,
		"version", s.version,
	)

	sweepCtx, cancel := context.WithCancel(context.Background())
	s.sweepCancel = cancel
	go s.runSweeper(sweepCtx)

	if s.mediaFetcher != nil {
		go media.BackfillHeroVideos(sweepCtx, s.store, s.mediaFetcher, s.logger)
	}

	go func() {
		err := s.httpServer.Serve(ln)
		if err != nil && err != http.ErrServerClosed {
			s.errCh <- err
		}
		close(s.errCh)
	}()

	return nil
}

func (s *Server) Run(ctx context.Context) error {
	if err := s.Start(); err != nil {
		return err
	}

	select {
	case err := <-s.errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.listener == nil && s.db == nil {
		return nil
	}

	s.logger.Info("studioservd shutting down")
	if s.sweepCancel != nil {
		s.sweepCancel()
		s.sweepCancel = nil
	}
	if s.listener != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		if err, ok := <-s.errCh; ok && err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		s.listener = nil
	}
	if closer, ok := s.auditLogger.(interface{ Close(context.Context) error }); ok {
		if err := closer.Close(ctx); err != nil {
			return fmt.Errorf("close audit logger: %w", err)
		}
	}
	s.auditLogger = nil
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			return fmt.Errorf("close sqlite db: %w", err)
		}
		s.db = nil
	}
	return nil
}

func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func (s *Server) runSweeper(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if removed := s.sessions.PruneExpired(now); removed > 0 {
				s.logger.Info("pruned idle booking sessions", "removed", removed)
			}
			if removed, err := s.identity.PruneExpired(ctx); err != nil {
				s.logger.Warn("prune identity sessions failed", "error", err)
			} else if removed > 0 {
				s.logger.Info("pruned expired identity sessions", "removed", removed)
			}
		}
	}
}

func (s *Server) closeDB() {
	if s.db != nil {
		_ = s.db.Close()
		s.db = nil
	}
}

func isLoopbackHost(host string) bool {
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	if ip == nil {
		return false
	}
	return ip.IsLoopback()
}

func parseLogLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level %q (expected debug|info|warn|error)", level)
	}
}

func NewLogger(level string) (*slog.Logger, error) {
	parsed, err := parseLogLevel(level)
	if err != nil {
		return nil, err
	}
	h := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: parsed})
	return slog.New(h), nil
}
