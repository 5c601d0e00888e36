// Package app wires the board collaborators into a running service.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	apiboard "github.com/depotops/crewboard/api/board"
	"github.com/depotops/crewboard/config"
	"github.com/depotops/crewboard/core/archive"
	"github.com/depotops/crewboard/core/calendar"
	"github.com/depotops/crewboard/core/conflict"
	"github.com/depotops/crewboard/core/engine"
	"github.com/depotops/crewboard/core/events"
	coremetrics "github.com/depotops/crewboard/core/metrics"
	"github.com/depotops/crewboard/core/model"
	"github.com/depotops/crewboard/core/travel"
	"github.com/depotops/crewboard/infra/logger"
	"github.com/depotops/crewboard/infra/metrics"
	"github.com/depotops/crewboard/infra/mqtt"
	"github.com/depotops/crewboard/infra/order"
	"github.com/depotops/crewboard/infra/store"
	"github.com/depotops/crewboard/internal/eventbus"
)

// Service orchestrates the store, the scheduling engine and the outward
// surfaces (HTTP, MQTT, metrics).
type Service struct {
	Store  store.Store
	Orders *order.MemoryOrderProvider

	cfg       *config.Config
	bus       *eventbus.Bus[events.Event]
	sink      coremetrics.Sink
	publisher mqtt.Publisher
	srv       *http.Server
	log       logger.Logger
	closers   []func() error
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	if err := logger.SetLevel(cfg.Logging.Level); err != nil {
		return nil, err
	}
	logg := logger.New("service")

	svc := &Service{
		Orders: order.NewMemoryOrderProvider(),
		cfg:    cfg,
		bus:    eventbus.New[events.Event](),
		log:    logg,
	}

	switch cfg.Storage.Backend {
	case "sqlite":
		st, err := store.NewSQLiteStore(cfg.Storage.Path)
		if err != nil {
			return nil, fmt.Errorf("sqlite store: %w", err)
		}
		svc.Store = st
		svc.closers = append(svc.closers, st.Close)
	default:
		svc.Store = store.NewMemoryStore()
	}

	var sinks []coremetrics.Sink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink()
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg.Metrics))
	}
	switch len(sinks) {
	case 0:
		svc.sink = coremetrics.NopSink{}
	case 1:
		svc.sink = sinks[0]
	default:
		svc.sink = metrics.NewMultiSink(sinks...)
	}

	if cfg.MQTT.Enabled {
		pub, err := mqtt.NewBoardPublisher(cfg.MQTT)
		if err != nil {
			return nil, fmt.Errorf("mqtt publisher: %w", err)
		}
		svc.publisher = pub
	}

	mux := http.NewServeMux()
	viewDays := cfg.Board.ViewDays
	weekStart := time.Weekday(cfg.Board.WeekStartsOn)
	mux.Handle("/api/board", apiboard.NewBoardHandler(svc.Store, svc.Orders, viewDays, weekStart))
	mux.Handle("/api/crews", apiboard.NewCrewsHandler(svc.Store))
	mux.Handle("/api/report", apiboard.NewReportHandler(svc.Store))
	mux.Handle("/api/conflict", apiboard.NewConflictHandler(svc.Board, svc.observeConflict))
	svc.srv = &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      mux,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutS) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutS) * time.Second,
	}

	return svc, nil
}

// Board loads the current snapshot from the store.
func (s *Service) Board(ctx context.Context) (*model.Board, error) {
	items, err := s.Store.Items(ctx)
	if err != nil {
		return nil, fmt.Errorf("load items: %w", err)
	}
	crews, err := s.Store.Crews(ctx)
	if err != nil {
		return nil, fmt.Errorf("load crews: %w", err)
	}
	employees, err := s.Store.Employees(ctx)
	if err != nil {
		return nil, fmt.Errorf("load employees: %w", err)
	}
	vehicles, err := s.Store.Vehicles(ctx)
	if err != nil {
		return nil, fmt.Errorf("load vehicles: %w", err)
	}
	return &model.Board{Items: items, Crews: crews, Employees: employees, Vehicles: vehicles}, nil
}

// Engine builds a scheduling engine over the current snapshot.
func (s *Service) Engine(ctx context.Context) (*engine.Engine, error) {
	b, err := s.Board(ctx)
	if err != nil {
		return nil, err
	}
	est := travel.FixedOffset{Travel: time.Duration(s.cfg.Board.TravelMinutes) * time.Minute}
	cfg := engine.Config{
		ViewDays:      s.cfg.Board.ViewDays,
		WeekStartsOn:  time.Weekday(s.cfg.Board.WeekStartsOn),
		FallbackStart: s.cfg.Board.FallbackStart,
	}
	return engine.New(b, calendar.SystemClock{}, uuid.NewString, est, cfg, s.log)
}

// ApplyBatch persists one engine batch, records metrics and publishes
// the applied mutations on the event bus.
func (s *Service) ApplyBatch(ctx context.Context, op string, res engine.BatchResult) (int, error) {
	applied, err := store.Apply(ctx, s.Store, res, s.Orders)
	if applied > 0 {
		if merr := s.sink.RecordMutations(op, applied); merr != nil {
			s.log.Warnf("record mutations: %v", merr)
		}
	}
	if rec, ok := s.sink.(coremetrics.SkipRecorder); ok {
		for reason, n := range countSkips(res.Skipped) {
			if merr := rec.RecordSkips(reason, n); merr != nil {
				s.log.Warnf("record skips: %v", merr)
			}
		}
	}
	now := time.Now()
	for i, m := range res.Mutations {
		if i >= applied {
			break
		}
		ev := events.MutationEvent{
			Op:      string(m.Kind),
			ItemID:  m.Item.ID,
			CrewID:  m.Item.CrewID,
			DepotID: s.cfg.Board.DepotID,
			Date:    m.Item.Date,
			Time:    now,
		}
		if m.Kind == engine.MutationDelete || m.Kind == engine.MutationReorder {
			ev.ItemID = m.ItemID
		}
		s.bus.Publish(events.Event{Mutation: &ev})
	}
	return applied, err
}

// Run starts the service and blocks until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	if s.cfg.Metrics.PrometheusEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	if s.publisher != nil {
		sub := s.bus.Subscribe()
		go func() {
			for ev := range sub {
				if err := s.publisher.PublishEvent(ev); err != nil {
					s.log.Errorf("publish event: %v", err)
				}
			}
		}()
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			s.log.Errorf("http shutdown: %v", err)
		}
	}()
	s.log.Infof("listening on %s", s.cfg.Server.Addr)
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.bus.Close()
	if s.publisher != nil {
		s.publisher.Disconnect()
	}
	var firstErr error
	for _, c := range s.closers {
		if err := c(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// ArchiveCrew soft-deletes a crew against the viewed week. When the plan
// carries future items and migrate is false, nothing is applied and the
// returned plan lets the caller present the archive-and-migrate choice.
// With migrate true the future items move to the previous crew on the
// same shift before the crew is archived. A blocked or boundary-violating
// plan applies nothing.
func (s *Service) ArchiveCrew(ctx context.Context, crewID string, viewedWeekStart, viewedWeekEnd time.Time, migrate bool) (archive.Plan, error) {
	b, err := s.Board(ctx)
	if err != nil {
		return archive.Plan{}, err
	}
	plan, err := archive.PlanArchive(b, crewID, viewedWeekStart, viewedWeekEnd)
	if err != nil {
		var blocked *archive.BlockedError
		if errors.As(err, &blocked) {
			s.recordArchive(crewID, "blocked", 0)
		}
		return archive.Plan{}, err
	}
	if plan.HasMigration() && !migrate {
		return plan, nil
	}

	migrated := 0
	if plan.HasMigration() {
		moves, err := archive.MigrationMoves(plan)
		if err != nil {
			return plan, err
		}
		ids := make([]string, len(moves))
		for i, it := range moves {
			ids[i] = it.ID
		}
		if err := s.Store.MoveItemsToCrew(ctx, ids, plan.PreviousCrewID); err != nil {
			return plan, fmt.Errorf("migrate items: %w", err)
		}
		migrated = len(ids)
	}
	if err := s.Store.ArchiveCrew(ctx, crewID, time.Now()); err != nil {
		return plan, fmt.Errorf("archive crew: %w", err)
	}
	outcome := "archived"
	if migrated > 0 {
		outcome = "migrated"
	}
	s.recordArchive(crewID, outcome, migrated)
	return plan, nil
}

func (s *Service) recordArchive(crewID, outcome string, migrated int) {
	if err := s.sink.RecordArchive(outcome); err != nil {
		s.log.Warnf("record archive: %v", err)
	}
	s.bus.Publish(events.Event{Archive: &events.ArchiveEvent{
		CrewID:   crewID,
		Outcome:  outcome,
		Migrated: migrated,
		Time:     time.Now(),
	}})
}

// observeConflict records advisory check outcomes and publishes the
// unavailable ones.
func (s *Service) observeConflict(kind conflict.ResourceKind, resourceID string, date time.Time, res conflict.Result) {
	if !res.Conflict {
		return
	}
	if err := s.sink.RecordConflict(kind, res.Reason); err != nil {
		s.log.Warnf("record conflict: %v", err)
	}
	s.bus.Publish(events.Event{Conflict: &events.ConflictEvent{
		Kind:       kind,
		ResourceID: resourceID,
		Reason:     res.Reason,
		Date:       date,
		Time:       time.Now(),
	}})
}

func countSkips(skipped []engine.Skipped) map[engine.SkipReason]int {
	out := map[engine.SkipReason]int{}
	for _, sk := range skipped {
		out[sk.Reason]++
	}
	return out
}
