// Package service orchestrates the save pipeline: build the graph, persist
// it together with the legacy projection in one transaction, then record
// metrics, refresh the status cache, and publish the saved event. Everything
// after the commit is fail-open.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"mortgageportal/internal/application/builder"
	"mortgageportal/internal/application/models"
	"mortgageportal/internal/application/store"
	"mortgageportal/internal/events"
	"mortgageportal/internal/platform/metrics"
	"mortgageportal/internal/platform/middleware"
	"mortgageportal/internal/status"
	dErrors "mortgageportal/pkg/domain-errors"
	"mortgageportal/pkg/platform/sentinel"
)

// LegacyWriter is the wide-row projection hook. It runs inside the save
// transaction via the context-carried tx.
type LegacyWriter interface {
	Upsert(ctx context.Context, g *models.Graph) error
}

// Service is the application save and read surface.
type Service struct {
	writer   store.Writer
	txRunner store.TxRunner
	reader   store.Reader

	builder     *builder.Builder
	legacy      LegacyWriter
	publisher   events.Publisher
	statusCache *status.Cache
	metrics     *metrics.Metrics
	logger      *slog.Logger
	tracer      trace.Tracer
	saveTimeout time.Duration
}

// Option configures a Service.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithPublisher(p events.Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

func WithLegacy(l LegacyWriter) Option {
	return func(s *Service) { s.legacy = l }
}

func WithReader(r store.Reader) Option {
	return func(s *Service) { s.reader = r }
}

func WithStatusCache(c *status.Cache) Option {
	return func(s *Service) { s.statusCache = c }
}

func WithSaveTimeout(d time.Duration) Option {
	return func(s *Service) { s.saveTimeout = d }
}

func New(writer store.Writer, txRunner store.TxRunner, opts ...Option) *Service {
	s := &Service{
		writer:   writer,
		txRunner: txRunner,
		logger:   slog.Default(),
		tracer:   otel.Tracer("mortgageportal/application"),
	}
	for _, opt := range opts {
		opt(s)
	}

	// the builder reports enum fallbacks through the metrics counter when
	// metrics are wired
	builderOpts := []builder.Option{}
	if s.metrics != nil {
		builderOpts = append(builderOpts, builder.WithFallbackObserver(s.metrics.IncrementEnumFallback))
	}
	s.builder = builder.New(builderOpts...)

	return s
}

// Save turns one submission into a persisted application and returns the new
// application id. The normalized graph and the legacy projection commit or
// roll back together.
func (s *Service) Save(ctx context.Context, sub *models.Submission, userID string) (uuid.UUID, error) {
	if s.saveTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.saveTimeout)
		defer cancel()
	}

	ctx, span := s.tracer.Start(ctx, "application.save",
		trace.WithAttributes(attribute.String("user.id", userID)))
	defer span.End()

	g := s.builder.Build(sub, userID)
	report := status.Evaluate(sub)
	if g.Application.SectionStatus == "" {
		g.Application.SectionStatus = report.JSON()
	}

	start := time.Now()
	err := s.txRunner.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := s.writer.Save(ctx, g); err != nil {
			return err
		}
		if s.legacy != nil {
			return s.legacy.Upsert(ctx, g)
		}
		return nil
	})
	if err != nil {
		if s.metrics != nil {
			s.metrics.IncrementSaveFailures()
		}
		s.logger.ErrorContext(ctx, "save application", "error", err, "user_id", userID)
		if errors.Is(err, context.DeadlineExceeded) {
			return uuid.Nil, dErrors.Wrap(err, dErrors.CodeTimeout, "application save timed out")
		}
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save application")
	}

	if s.metrics != nil {
		s.metrics.IncrementApplicationsSaved()
		s.metrics.ObserveSaveDuration(time.Since(start).Seconds())
	}
	span.SetAttributes(attribute.String("application.id", g.ApplicationID().String()))

	s.statusCache.Put(ctx, userID, report)
	s.publish(ctx, g)

	s.logger.InfoContext(ctx, "application saved",
		"application_id", g.ApplicationID(),
		"user_id", userID,
		"borrowers", len(g.Borrowers),
		"client_ip", middleware.GetClientIP(ctx),
		"device", middleware.GetDevice(ctx),
	)
	return g.ApplicationID(), nil
}

// publish emits the saved event. Broker failures are logged and swallowed;
// the application is already committed.
func (s *Service) publish(ctx context.Context, g *models.Graph) {
	if s.publisher == nil {
		return
	}
	event := events.ApplicationSaved{
		ApplicationID:      g.ApplicationID(),
		UserID:             g.Application.UserID,
		PriorApplicationID: g.Application.PriorApplicationID,
		Status:             g.Application.Status,
		BorrowerCount:      len(g.Borrowers),
		SavedAt:            g.Application.CreatedAt,
	}
	if err := s.publisher.PublishApplicationSaved(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "publish saved event",
			"error", err, "application_id", g.ApplicationID())
	}
}

// Summary is the read-back shape for one application.
type Summary struct {
	Application models.LoanApplication
	Counts      store.EntityCounts
}

// Get loads one application with its entity counts.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (Summary, error) {
	if s.reader == nil {
		return Summary{}, dErrors.New(dErrors.CodeInternal, "read surface not configured")
	}
	app, err := s.reader.FindApplication(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return Summary{}, dErrors.Wrap(err, dErrors.CodeNotFound, "application not found")
		}
		return Summary{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load application")
	}
	counts, err := s.reader.CountEntities(ctx, id)
	if err != nil {
		return Summary{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count entities")
	}
	return Summary{Application: app, Counts: counts}, nil
}

// SectionStatus returns the cached progress report for a user, falling back
// to an empty report on cache miss.
func (s *Service) SectionStatus(ctx context.Context, userID string) (status.Report, error) {
	report, ok, err := s.statusCache.Get(ctx, userID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load status")
	}
	if !ok {
		return status.Report{}, nil
	}
	return report, nil
}
