package cli

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/andrescamacho/research-queue/internal/adapters/catalog"
	"github.com/andrescamacho/research-queue/internal/adapters/host"
	"github.com/andrescamacho/research-queue/internal/adapters/logging"
	"github.com/andrescamacho/research-queue/internal/adapters/metrics"
	"github.com/andrescamacho/research-queue/internal/adapters/notification"
	"github.com/andrescamacho/research-queue/internal/adapters/persistence"
	"github.com/andrescamacho/research-queue/internal/application/common"
	"github.com/andrescamacho/research-queue/internal/application/mediator"
	researchApp "github.com/andrescamacho/research-queue/internal/application/research"
	researchCommands "github.com/andrescamacho/research-queue/internal/application/research/commands"
	"github.com/andrescamacho/research-queue/internal/application/setup"
	"github.com/andrescamacho/research-queue/internal/domain/shared"
	"github.com/andrescamacho/research-queue/internal/infrastructure/config"
	"github.com/andrescamacho/research-queue/internal/infrastructure/database"
	"github.com/andrescamacho/research-queue/internal/infrastructure/pidfile"
)

// sessionOptions controls how much of the runtime a command needs
type sessionOptions struct {
	// writable sessions take the lock and persist the queue and host state on close
	writable bool
	// withMetrics registers Prometheus collectors on a fresh registry
	withMetrics bool
}

// sessionApp is everything one CLI invocation works with
type sessionApp struct {
	cfg       *config.Config
	db        *gorm.DB
	lock      *pidfile.PIDFile
	logger    *logging.ZapLogger
	ctx       context.Context
	sessionID shared.SessionID

	host             *host.InMemoryHost
	catalog          *catalog.StaticCatalog
	session          *researchApp.Session
	simulator        *researchApp.Simulator
	mediator         mediator.Mediator
	hostRepo         *persistence.GormHostStateRepository
	notificationRepo *persistence.GormNotificationRepository
	logRepo          *persistence.GormSessionLogRepository

	registry *metricsRegistry
	writable bool
}

type metricsRegistry struct {
	research *metrics.ResearchMetricsCollector
	commands *metrics.CommandMetricsCollector
}

// loadConfig loads configuration honouring the --config flag
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// resolveSessionID picks the --session flag over the configured default
func resolveSessionID(cfg *config.Config) (shared.SessionID, error) {
	raw := sessionFlag
	if raw == "" {
		raw = cfg.Research.SessionID
	}
	return shared.NewSessionID(raw)
}

// openSession bootstraps a session: config, logger, database, lock,
// host state, catalog and the saved queue, in that order.
func openSession(parent context.Context, opts sessionOptions) (*sessionApp, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	sessionID, err := resolveSessionID(cfg)
	if err != nil {
		return nil, fmt.Errorf("invalid session: %w", err)
	}

	zapLogger, err := logging.NewZapLogger(cfg.Logging)
	if err != nil {
		return nil, err
	}

	db, err := connect(cfg)
	if err != nil {
		return nil, err
	}

	app := &sessionApp{
		cfg:              cfg,
		db:               db,
		logger:           zapLogger,
		sessionID:        sessionID,
		writable:         opts.writable,
		hostRepo:         persistence.NewGormHostStateRepository(db, nil),
		notificationRepo: persistence.NewGormNotificationRepository(db),
		logRepo:          persistence.NewGormSessionLogRepository(db, nil),
	}

	var logger common.Logger = zapLogger
	if cfg.Logging.Persist {
		logger = logging.NewSessionLogger(zapLogger, app.logRepo, sessionID.String())
	}
	app.ctx = common.WithLogger(parent, logger)

	if opts.writable {
		app.lock = pidfile.New(lockPath(cfg.Session.LockFile, sessionID), sessionID.String())
		if err := app.lock.Acquire(); err != nil {
			app.closeResources()
			return nil, err
		}
	}

	if err := app.wire(opts); err != nil {
		app.closeResources()
		return nil, err
	}

	return app, nil
}

// wire builds the domain graph and restores the saved queue
func (a *sessionApp) wire(opts sessionOptions) error {
	a.catalog = catalog.NewYAMLCatalog(a.cfg.Research.CatalogPath)
	if err := a.catalog.Initialize(a.ctx); err != nil {
		return err
	}

	a.host = host.NewInMemoryHost(a.catalog, a.cfg.Research.ProgressRate, a.cfg.Research.FastResearch)
	state, err := a.hostRepo.LoadHostState(a.ctx, a.sessionID)
	if err != nil {
		return err
	}
	a.host.ImportState(state)

	var recorder researchApp.ProgressRecorder
	if opts.withMetrics {
		registry := metrics.InitRegistry()
		a.registry = &metricsRegistry{
			research: metrics.NewResearchMetricsCollector(),
			commands: metrics.NewCommandMetricsCollector(),
		}
		if err := a.registry.research.Register(registry); err != nil {
			return fmt.Errorf("failed to register research metrics: %w", err)
		}
		if err := a.registry.commands.Register(registry); err != nil {
			return fmt.Errorf("failed to register command metrics: %w", err)
		}
		recorder = a.registry.research
	}

	session, err := researchApp.NewSession(a.sessionID, researchApp.SessionDependencies{
		Catalog: a.catalog,
		Host:    a.host,
		Sink: notification.NewMultiSink(
			notification.NewLogSink(),
			notification.NewRepositorySink(a.notificationRepo, a.sessionID),
		),
		Snapshots:              persistence.NewGormQueueSnapshotRepository(a.db, nil),
		Recorder:               recorder,
		FastResearchMultiplier: a.cfg.Research.FastResearchMultiplier,
	})
	if err != nil {
		return err
	}
	a.session = session
	a.simulator = researchApp.NewSimulator(session, a.cfg.Simulation.TicksPerSecond, a.cfg.Simulation.WorkPerTick)

	a.mediator = mediator.NewMediator()
	a.mediator.RegisterMiddleware(logging.LoggingMiddleware())
	if a.registry != nil {
		a.mediator.RegisterMiddleware(metrics.PrometheusMiddleware(a.registry.commands))
	}
	if err := setup.NewHandlerRegistry(session, a.simulator, a.notificationRepo).RegisterAll(a.mediator); err != nil {
		return err
	}

	if _, err := a.mediator.Send(a.ctx, &researchCommands.LoadQueueCommand{}); err != nil {
		return fmt.Errorf("failed to load saved queue: %w", err)
	}
	return nil
}

// send dispatches a request through the mediator with the session context
func (a *sessionApp) send(request mediator.Request) (mediator.Response, error) {
	return a.mediator.Send(a.ctx, request)
}

// Close persists a writable session, then releases every resource.
// Persistence errors are returned after cleanup has run.
func (a *sessionApp) Close() error {
	var saveErr error
	if a.writable && a.session != nil {
		saveErr = a.save()
	}
	a.closeResources()
	return saveErr
}

// abort closes the session after a failed step. The close error, if any,
// is joined to the failure instead of being dropped.
func (a *sessionApp) abort(err error) error {
	return errors.Join(err, a.Close())
}

func (a *sessionApp) save() error {
	// Saving must survive an interrupted run
	ctx, cancel := context.WithTimeout(context.WithoutCancel(a.ctx), 10*time.Second)
	defer cancel()

	var errs []error
	if _, err := a.mediator.Send(ctx, &researchCommands.SaveQueueCommand{}); err != nil {
		errs = append(errs, fmt.Errorf("failed to save queue: %w", err))
	}
	if err := a.hostRepo.SaveHostState(ctx, a.host.ExportState(a.sessionID)); err != nil {
		errs = append(errs, fmt.Errorf("failed to save host state: %w", err))
	}
	return errors.Join(errs...)
}

func (a *sessionApp) closeResources() {
	if a.lock != nil {
		_ = a.lock.Release()
	}
	if a.db != nil {
		_ = database.Close(a.db)
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// openDatabase connects without building a session, for read-only listings
func openDatabase() (*config.Config, *gorm.DB, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	db, err := connect(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}

// connect opens the save database and brings its schema up to date
func connect(cfg *config.Config) (*gorm.DB, error) {
	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		_ = database.Close(db)
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return db, nil
}

// lockPath derives a per-session lock file from the configured one,
// so separate save slots never block each other.
func lockPath(configured string, sessionID shared.SessionID) string {
	if strings.HasSuffix(configured, ".pid") {
		return strings.TrimSuffix(configured, ".pid") + "-" + sessionID.String() + ".pid"
	}
	return configured + "-" + sessionID.String()
}

// maskPassword masks passwords in connection strings for display
func maskPassword(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return parsed.Redacted()
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04:05")
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
