package ecs

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

// storageBinder is implemented by Query and Singleton fields.
type storageBinder interface {
	Init(storage *Storage)
}

// requirer is implemented by Singleton fields.
type requirer interface {
	require() error
}

type registeredSystem struct {
	system    System
	stats     SystemStats
	requirers []requirer
}

// Scheduler runs its systems in registration order, once per frame. The
// registration order is the execution order; there is no implicit sorting.
type Scheduler struct {
	storage  *Storage
	systems  []*registeredSystem
	commands Commands
	frames   uint64
}

// NewScheduler creates a scheduler for the given storage.
func NewScheduler(storage *Storage) *Scheduler {
	return &Scheduler{storage: storage}
}

// Storage returns the storage the scheduler runs against.
func (s *Scheduler) Storage() *Storage {
	return s.storage
}

// Register appends a system to the schedule and binds its Query and
// Singleton fields to the scheduler's storage.
func (s *Scheduler) Register(system System) {
	entry := &registeredSystem{
		system: system,
		stats: SystemStats{
			Name:        systemName(system),
			MinDuration: time.Duration(1<<63 - 1),
		},
	}
	entry.requirers = s.bindFields(system)
	s.systems = append(s.systems, entry)
}

func systemName(system System) string {
	t := reflect.TypeOf(system)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() == "" {
		return t.String()
	}
	return t.Name()
}

// bindFields initialises exported Query/Singleton fields and returns the
// singletons that must exist for the system to run. Singleton fields tagged
// `ecs:"optional"` are bound but not required.
func (s *Scheduler) bindFields(system System) []requirer {
	value := reflect.ValueOf(system)
	if value.Kind() != reflect.Pointer || value.Elem().Kind() != reflect.Struct {
		return nil
	}
	value = value.Elem()

	var required []requirer
	for i := 0; i < value.NumField(); i++ {
		field := value.Field(i)
		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}

		binder, ok := field.Addr().Interface().(storageBinder)
		if !ok {
			continue
		}
		binder.Init(s.storage)

		if r, ok := binder.(requirer); ok && value.Type().Field(i).Tag.Get("ecs") != "optional" {
			required = append(required, r)
		}
	}
	return required
}

// Validate checks that every required singleton of every registered system
// exists. Call it once setup is complete and before the first frame.
func (s *Scheduler) Validate() error {
	var errs []error
	for _, entry := range s.systems {
		for _, r := range entry.requirers {
			if err := r.require(); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", entry.stats.Name, err))
			}
		}
	}
	return errors.Join(errs...)
}

// Once executes all registered systems once with the given delta time (in
// seconds), then flushes the commands they queued.
func (s *Scheduler) Once(dt float64) {
	frame := &UpdateFrame{
		Index:     s.frames,
		DeltaTime: dt,
		Commands:  &s.commands,
		Storage:   s.storage,
	}
	s.frames++

	for _, entry := range s.systems {
		start := time.Now()
		entry.system.Execute(frame)
		entry.record(time.Since(start))
	}

	s.commands.Flush(s.storage)
}

func (e *registeredSystem) record(d time.Duration) {
	st := &e.stats
	st.ExecutionCount++
	st.LastDuration = d
	st.TotalDuration += d
	st.MinDuration = min(st.MinDuration, d)
	st.MaxDuration = max(st.MaxDuration, d)
}

// Frames returns how many frames have been executed.
func (s *Scheduler) Frames() uint64 {
	return s.frames
}

// Run executes all systems at the given interval until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			s.Once(dt)
		}
	}
}

// Stats returns a snapshot of per-system execution statistics.
func (s *Scheduler) Stats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Systems:     make([]SystemStats, len(s.systems)),
	}
	for i, entry := range s.systems {
		st := entry.stats
		if st.ExecutionCount > 0 {
			st.AvgDuration = st.TotalDuration / time.Duration(st.ExecutionCount)
		} else {
			st.MinDuration = 0
		}
		stats.Systems[i] = st
		stats.TotalExecutions += st.ExecutionCount
	}
	return stats
}
