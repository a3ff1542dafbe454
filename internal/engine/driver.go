// Package engine implements the Shift Generation Engine: a
// multi-pass, greedy-with-rebalancing constraint solver that assigns
// publishers to recurring shifts. Driver.Generate is the only public
// entry point; everything else in the package is a pipeline stage it
// composes.
package engine

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/MarckFp/ppoc-gen-v2/internal/entity"
	"github.com/MarckFp/ppoc-gen-v2/internal/repository"
	"go.uber.org/zap"
)

// MetricsRecorder is the observability hook the driver reports through.
// It is satisfied by an adapter over internal/metrics; engine itself
// never imports Prometheus directly so the core solver stays free of
// the hosting layer's dependencies.
type MetricsRecorder interface {
	ObserveGenerationDuration(seconds float64)
	IncGenerationRun(outcome string)
	IncShiftsGenerated(n int)
	IncShiftWarning(reason string)
	IncCandidatesFiltered(n int)
}

type noopMetrics struct{}

func (noopMetrics) ObserveGenerationDuration(float64) {}
func (noopMetrics) IncGenerationRun(string)           {}
func (noopMetrics) IncShiftsGenerated(int)            {}
func (noopMetrics) IncShiftWarning(string)            {}
func (noopMetrics) IncCandidatesFiltered(int)         {}

// Summary is the non-error result of a generation run: how many
// shifts were newly created, how many (date, schedule) pairs were
// skipped because a shift already existed there, and how many of the
// created shifts carry a warning.
type Summary struct {
	Created         int
	SkippedExisting int
	Warned          int
}

// Driver is the Generator Driver: it owns a single generation run's
// fairness accumulators and relationship cache, walks every matching
// (date, schedule) pair in order, and persists the resulting shifts.
type Driver struct {
	Store  repository.Store
	Config Config

	// Seed controls Jitter. Zero means the driver derives one from the
	// wall clock at Generate time, so unrelated runs diverge; tests
	// that need reproducibility set this explicitly.
	Seed uint64

	Metrics MetricsRecorder
	Logger  *zap.SugaredLogger
}

// NewDriver builds a Driver with the given store and config, falling
// back to a no-op metrics recorder and a no-op logger when none are
// supplied.
func NewDriver(store repository.Store, cfg Config) *Driver {
	return &Driver{
		Store:   store,
		Config:  cfg,
		Metrics: noopMetrics{},
		Logger:  zap.NewNop().Sugar(),
	}
}

func (d *Driver) metrics() MetricsRecorder {
	if d.Metrics == nil {
		return noopMetrics{}
	}
	return d.Metrics
}

func (d *Driver) logger() *zap.SugaredLogger {
	if d.Logger == nil {
		return zap.NewNop().Sugar()
	}
	return d.Logger
}

// Generate runs the full pipeline over [rangeStart, rangeEnd], both
// inclusive. It fails only on an inverted range or a store error;
// every other difficulty is recorded as a warning on the affected
// shift instead of aborting the run.
func (d *Driver) Generate(ctx context.Context, rangeStart, rangeEnd time.Time) (Summary, error) {
	started := time.Now()
	rangeStart = NormalizeDate(rangeStart)
	rangeEnd = NormalizeDate(rangeEnd)

	if rangeEnd.Before(rangeStart) {
		d.metrics().IncGenerationRun("input_range_error")
		return Summary{}, newInputRangeError(ErrInvertedRange)
	}

	seed := d.Seed
	if seed == 0 {
		seed = uint64(started.UnixNano())
	}

	lookbackStart := rangeStart.AddDate(0, 0, -d.Config.FairnessWindowDays)
	existing, err := d.Store.ListShiftsBetween(ctx, lookbackStart, rangeEnd)
	if err != nil {
		d.metrics().IncGenerationRun("store_error")
		return Summary{}, newStoreError(fmt.Errorf("list shifts for fairness window: %w", err))
	}
	fairness := BuildFairnessWindow(existing)

	publishers, err := d.Store.ListPublishers(ctx)
	if err != nil {
		d.metrics().IncGenerationRun("store_error")
		return Summary{}, newStoreError(fmt.Errorf("list publishers: %w", err))
	}
	publishersByID := make(map[entity.PublisherID]*entity.Publisher, len(publishers))
	for _, p := range publishers {
		publishersByID[p.ID] = p
	}

	schedules, err := d.Store.ListSchedules(ctx)
	if err != nil {
		d.metrics().IncGenerationRun("store_error")
		return Summary{}, newStoreError(fmt.Errorf("list schedules: %w", err))
	}
	schedulesByWeekday := make(map[int][]*entity.Schedule)
	for _, s := range schedules {
		schedulesByWeekday[s.Weekday] = append(schedulesByWeekday[s.Weekday], s)
	}
	for wd := range schedulesByWeekday {
		sort.Slice(schedulesByWeekday[wd], func(i, j int) bool {
			return schedulesByWeekday[wd][i].ID < schedulesByWeekday[wd][j].ID
		})
	}

	relIndex := newRelationshipIndex(d.Store)
	summary := Summary{}
	var pending []*entity.Shift

	walkErr := DateRange(rangeStart, rangeEnd, func(day time.Time) error {
		assignedToday := make(map[entity.PublisherID]bool)
		dayOrdinal := day.Unix() / int64((24 * time.Hour).Seconds())

		for _, sched := range schedulesByWeekday[Weekday(day)] {
			startDT, err := CombineDateAndHour(day, sched.StartHour)
			if err != nil {
				return newStoreError(fmt.Errorf("schedule %d start hour: %w", sched.ID, err))
			}
			endDT, err := CombineDateAndHour(day, sched.EndHour)
			if err != nil {
				return newStoreError(fmt.Errorf("schedule %d end hour: %w", sched.ID, err))
			}

			if dup, err := d.shiftAlreadyExists(ctx, sched, startDT, endDT); err != nil {
				return newStoreError(err)
			} else if dup {
				summary.SkippedExisting++
				continue
			}

			pool, err := BuildCandidatePool(ctx, d.Store, sched, day, assignedToday, publishersByID)
			if err != nil {
				return newStoreError(err)
			}
			d.metrics().IncCandidatesFiltered(len(pool))

			relationships, err := relIndex.snapshot(ctx, pool)
			if err != nil {
				return newStoreError(err)
			}

			sc := ScoreContext{
				Config:        d.Config,
				Fairness:      fairness,
				Relationships: relationships,
				Seed:          seed,
				DayOrdinal:    dayOrdinal,
			}

			sel := GreedySelect(sc, pool, sched)
			sel, warning := Repair(sc, sel, pool, sched)

			ids := make([]entity.PublisherID, len(sel))
			for i, p := range sel {
				ids[i] = p.ID
			}

			shift := &entity.Shift{
				ScheduleID:    sched.ID,
				StartDatetime: startDT,
				EndDatetime:   endDT,
				Location:      sched.Location,
				Publishers:    ids,
				Warning:       warning,
			}
			pending = append(pending, shift)

			summary.Created++
			if warning != "" {
				summary.Warned++
				d.metrics().IncShiftWarning(warning)
			}

			for _, pid := range ids {
				assignedToday[pid] = true
			}
			fairness.Record(ids)
		}
		return nil
	})

	if walkErr != nil {
		d.metrics().ObserveGenerationDuration(time.Since(started).Seconds())
		d.metrics().IncGenerationRun("store_error")
		if ge, ok := walkErr.(*GenerationError); ok {
			return Summary{}, ge
		}
		return Summary{}, newStoreError(walkErr)
	}

	if len(pending) > 0 {
		if _, err := d.Store.CreateShifts(ctx, pending); err != nil {
			d.metrics().ObserveGenerationDuration(time.Since(started).Seconds())
			d.metrics().IncGenerationRun("store_error")
			return Summary{}, newStoreError(fmt.Errorf("persist generated shifts: %w", err))
		}
	}

	d.metrics().ObserveGenerationDuration(time.Since(started).Seconds())
	d.metrics().IncShiftsGenerated(summary.Created)
	d.metrics().IncGenerationRun("ok")
	d.logger().Infow("generation run complete",
		"range_start", rangeStart.Format("2006-01-02"),
		"range_end", rangeEnd.Format("2006-01-02"),
		"created", summary.Created,
		"skipped_existing", summary.SkippedExisting,
		"warned", summary.Warned,
	)
	return summary, nil
}

// shiftAlreadyExists implements the idempotence check: a shift at the
// same (location, start, end) already persisted blocks regeneration.
func (d *Driver) shiftAlreadyExists(ctx context.Context, sched *entity.Schedule, start, end time.Time) (bool, error) {
	shifts, err := d.Store.ListShiftsBetween(ctx, start, start)
	if err != nil {
		return false, fmt.Errorf("check existing shift for schedule %d: %w", sched.ID, err)
	}
	for _, sh := range shifts {
		if sh.Location == sched.Location && sh.StartDatetime.Equal(start) && sh.EndDatetime.Equal(end) {
			return true, nil
		}
	}
	return false, nil
}
