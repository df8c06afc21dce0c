// Package board runs edit intents against the schedule index. Every save,
// delete and status switch passes the gatekeepers (field rules, status
// transitions, editability, overlap) before the persistence call, and the
// index is only touched once that call succeeds.
package board

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/javiermolinar/wisesched/internal/metrics"
	"github.com/javiermolinar/wisesched/internal/schedule"
	"github.com/javiermolinar/wisesched/internal/scheduler"
)

// Recorder receives intent outcomes and refresh timings.
// *metrics.Collector implements it.
type Recorder interface {
	RecordIntent(intent, result string)
	RecordRefresh(seconds float64, items int)
	RecordRefreshFailure()
	SetItems(n int)
	SetGroups(n int)
}

type nopRecorder struct{}

func (nopRecorder) RecordIntent(string, string) {}
func (nopRecorder) RecordRefresh(float64, int) {}
func (nopRecorder) RecordRefreshFailure() {}
func (nopRecorder) SetItems(int) {}
func (nopRecorder) SetGroups(int) {}

// Options configures a Board. Zero values select the defaults.
type Options struct {
	Transformer schedule.Transformer
	Rules       *schedule.Rules // DefaultRules when nil
	Overlap     schedule.OverlapValidator
	Calculator  *scheduler.Calculator // New(WorkStartHour) when nil
	Logger      *slog.Logger
	Recorder    Recorder
	NewID       func() string // uuid when nil
}

// Board owns the schedule index for one editing session.
type Board struct {
	mu sync.Mutex

	repo   schedule.Repository
	index  *schedule.Index
	groups []schedule.MachineGroup
	known  map[string]schedule.MachineGroup

	tr      schedule.Transformer
	rules   schedule.Rules
	overlap schedule.OverlapValidator
	calc    *scheduler.Calculator
	log     *slog.Logger
	rec     Recorder
	newID   func() string
}

// New creates a board backed by repo. Call Load before using it.
func New(repo schedule.Repository, opts Options) *Board {
	b := &Board{
		repo:    repo,
		index:   schedule.NewIndex(),
		known:   make(map[string]schedule.MachineGroup),
		tr:      opts.Transformer,
		rules:   schedule.DefaultRules(),
		overlap: opts.Overlap,
		calc:    opts.Calculator,
		log:     opts.Logger,
		rec:     opts.Recorder,
		newID:   opts.NewID,
	}
	if opts.Rules != nil {
		b.rules = *opts.Rules
	}
	if b.calc == nil {
		b.calc = scheduler.New(scheduler.WorkStartHour)
	}
	if b.log == nil {
		b.log = slog.Default()
	}
	if b.rec == nil {
		b.rec = nopRecorder{}
	}
	if b.newID == nil {
		b.newID = func() string { return uuid.New().String() }
	}
	return b
}

// Load reads the machine list once and seeds the index.
func (b *Board) Load(ctx context.Context, now time.Time) error {
	machines, err := b.repo.ListMachines(ctx)
	if err != nil {
		return &schedule.PersistenceError{Op: "list machines", Err: err}
	}

	b.mu.Lock()
	b.groups = schedule.GroupsFromMachines(machines)
	clear(b.known)
	for _, g := range b.groups {
		b.known[g.ID] = g
	}
	n := len(b.groups)
	b.rec.SetGroups(n)
	b.mu.Unlock()

	b.log.Debug("machines loaded", "groups", n)
	return b.Refresh(ctx, now)
}

// Refresh refetches the record list and replaces the index contents.
// On failure the index keeps its previous contents.
func (b *Board) Refresh(ctx context.Context, now time.Time) error {
	began := time.Now()

	recs, err := b.repo.ListRecords(ctx)
	if err != nil {
		b.rec.RecordRefreshFailure()
		b.log.Error("refresh failed", "error", err)
		return &schedule.PersistenceError{Op: "list", Err: err}
	}
	items := b.tr.TransformAll(recs, now)

	b.mu.Lock()
	b.index.Replace(items)
	n := b.index.Len()
	b.mu.Unlock()

	b.rec.RecordRefresh(time.Since(began).Seconds(), n)
	b.log.Debug("index refreshed", "records", len(recs), "items", n)
	return nil
}

// Groups returns the machine lanes.
func (b *Board) Groups() []schedule.MachineGroup {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]schedule.MachineGroup, len(b.groups))
	copy(out, b.groups)
	return out
}

// Items returns every item with editability recomputed against now.
func (b *Board) Items(now time.Time) []schedule.Item {
	b.mu.Lock()
	items := b.index.All()
	b.mu.Unlock()

	for i := range items {
		items[i].Editable = schedule.ResolveItem(items[i], now)
	}
	return items
}

// Get returns one item with editability recomputed against now.
func (b *Board) Get(id string, now time.Time) (schedule.Item, error) {
	b.mu.Lock()
	it, ok := b.index.Get(id)
	b.mu.Unlock()

	if !ok {
		return schedule.Item{}, fmt.Errorf("%w: %s", schedule.ErrItemNotFound, id)
	}
	it.Editable = schedule.ResolveItem(it, now)
	return it, nil
}

// Window returns the viewport for granularity g around ref.
func (b *Board) Window(g scheduler.Granularity, ref time.Time) scheduler.Window {
	return b.calc.Window(g, ref)
}

// Calculator returns the time window calculator in use.
func (b *Board) Calculator() *scheduler.Calculator {
	return b.calc
}

// Save validates draft and creates it, or updates it when an item with the
// same id is already on the board. It returns the item as stored.
func (b *Board) Save(ctx context.Context, draft schedule.Item, now time.Time) (schedule.Item, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	it, err := b.save(ctx, draft, now)
	b.record("save", draft, err)
	return it, err
}

// SwitchStatus changes the line status of a stored segment. The switch must
// follow the transition table; reason replaces the segment's reason when set.
func (b *Board) SwitchStatus(ctx context.Context, id string, to schedule.Status, reason string, now time.Time) (schedule.Item, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	prev, ok := b.index.Get(id)
	if !ok {
		err := fmt.Errorf("%w: %s", schedule.ErrItemNotFound, id)
		b.record("switch", schedule.Item{ID: id}, err)
		return schedule.Item{}, err
	}

	if err := schedule.Transition(prev.Status, to); err != nil {
		b.record("switch", prev, err)
		return schedule.Item{}, err
	}

	draft := prev.Clone()
	draft.Status = to
	if draft.Machine == nil {
		draft.Machine = &schedule.StatusInfo{}
	}
	if reason != "" {
		draft.Machine.Reason = reason
	}

	it, err := b.save(ctx, draft, now)
	b.record("switch", draft, err)
	return it, err
}

// Delete removes an item that is still removable at now.
func (b *Board) Delete(ctx context.Context, id string, now time.Time) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	err := b.delete(ctx, id, now)
	b.record("delete", schedule.Item{ID: id}, err)
	return err
}

func (b *Board) delete(ctx context.Context, id string, now time.Time) error {
	prev, ok := b.index.Get(id)
	if !ok {
		return fmt.Errorf("%w: %s", schedule.ErrItemNotFound, id)
	}
	if !schedule.ResolveItem(prev, now).Remove {
		return fmt.Errorf("%w: %s", schedule.ErrNotRemovable, id)
	}

	if err := b.repo.DeleteRecord(ctx, id); err != nil {
		return &schedule.PersistenceError{Op: "delete", ID: id, Err: err}
	}

	b.index.Remove(id)
	b.rec.SetItems(b.index.Len())
	return nil
}

// save runs the gatekeeper chain. Callers hold b.mu.
func (b *Board) save(ctx context.Context, draft schedule.Item, now time.Time) (schedule.Item, error) {
	var (
		prev   schedule.Item
		exists bool
	)
	if draft.ID != "" {
		prev, exists = b.index.Get(draft.ID)
	}

	// The order length rule binds new orders and rescheduled ones only.
	rules := b.rules
	if exists && prev.Start.Equal(draft.Start) && prev.End.Equal(draft.End) {
		rules.MinOrderDuration = 0
	}
	if err := rules.Validate(draft, b.knownGroup); err != nil {
		return schedule.Item{}, err
	}

	candidate := draft.Clone()
	candidate.Area = b.areaOf(candidate.Group)

	if exists {
		if err := checkUpdate(prev, candidate, now); err != nil {
			return schedule.Item{}, err
		}
	} else if candidate.ID == "" {
		candidate.ID = b.newID()
	}

	if err := b.overlap.Validate(candidate, b.index.InGroup(candidate.Group)); err != nil {
		return schedule.Item{}, err
	}

	payload := schedule.ToRecord(candidate)

	var (
		saved schedule.Record
		err   error
	)
	if exists {
		saved, err = b.repo.UpdateRecord(ctx, candidate.ID, payload)
		if err != nil {
			return schedule.Item{}, &schedule.PersistenceError{Op: "update", ID: candidate.ID, Err: err}
		}
	} else {
		saved, err = b.repo.CreateRecord(ctx, payload)
		if err != nil {
			return schedule.Item{}, &schedule.PersistenceError{Op: "create", ID: candidate.ID, Err: err}
		}
	}

	it := b.tr.Transform(saved, now)
	if it.ID == "" {
		it.ID = candidate.ID
	}
	it.Area = b.areaOf(it.Group)

	b.index.Update(it)
	b.rec.SetItems(b.index.Len())
	return it.Clone(), nil
}

// checkUpdate applies the status and editability rules of the stored item
// to an update.
func checkUpdate(prev, next schedule.Item, now time.Time) error {
	if prev.Status != next.Status {
		if err := schedule.Transition(prev.Status, next.Status); err != nil {
			return err
		}
	}

	ed := schedule.ResolveItem(prev, now)
	if (!prev.Start.Equal(next.Start) || !prev.End.Equal(next.End)) && !ed.UpdateTime {
		return fmt.Errorf("%w: %s", schedule.ErrTimeLocked, prev.ID)
	}
	if prev.Group != next.Group && !ed.UpdateGroup {
		return fmt.Errorf("%w: %s", schedule.ErrGroupLocked, prev.ID)
	}
	return nil
}

func (b *Board) knownGroup(id string) bool {
	if len(b.known) == 0 {
		return true
	}
	_, ok := b.known[id]
	return ok
}

func (b *Board) areaOf(group string) string {
	if g, ok := b.known[group]; ok && g.Area != "" {
		return g.Area
	}
	return schedule.AreaOf(group)
}

func (b *Board) record(intent string, it schedule.Item, err error) {
	kind := Kind(err)
	b.rec.RecordIntent(intent, kind)

	switch kind {
	case metrics.ResultOK:
		b.log.Debug("intent applied", "intent", intent, "id", it.ID, "group", it.Group)
	case metrics.ResultPersistence:
		b.log.Error("intent failed", "intent", intent, "id", it.ID, "group", it.Group, "error", err)
	default:
		b.log.Info("intent rejected", "intent", intent, "kind", kind, "id", it.ID, "group", it.Group, "error", err)
	}
}

// Kind classifies an error returned by the board into one of the
// metrics.Result* labels.
func Kind(err error) string {
	var (
		verrs schedule.ValidationErrors
		terr  *schedule.StatusTransitionError
		oerr  *schedule.OverlapError
		perr  *schedule.PersistenceError
	)
	switch {
	case err == nil:
		return metrics.ResultOK
	case errors.As(err, &perr):
		return metrics.ResultPersistence
	case errors.As(err, &verrs):
		return metrics.ResultValidation
	case errors.As(err, &terr):
		return metrics.ResultTransition
	case errors.As(err, &oerr):
		return metrics.ResultOverlap
	case errors.Is(err, schedule.ErrTimeLocked),
		errors.Is(err, schedule.ErrGroupLocked),
		errors.Is(err, schedule.ErrNotRemovable):
		return metrics.ResultLocked
	case errors.Is(err, schedule.ErrItemNotFound):
		return metrics.ResultNotFound
	default:
		return metrics.ResultValidation
	}
}
