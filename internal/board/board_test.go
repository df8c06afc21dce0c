package board

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/javiermolinar/wisesched/internal/metrics"
	"github.com/javiermolinar/wisesched/internal/schedule"
	"github.com/javiermolinar/wisesched/internal/scheduler"
)

var errBoom = errors.New("backend unavailable")

// memRepo is an in-memory schedule.Repository with failure injection.
type memRepo struct {
	machines []schedule.Machine
	records  map[string]schedule.Record
	order    []string

	failList   error
	failCreate error
	failUpdate error
	failDelete error

	creates, updates, deletes int
}

func newMemRepo(machines []schedule.Machine, recs ...schedule.Record) *memRepo {
	r := &memRepo{machines: machines, records: make(map[string]schedule.Record)}
	for _, rec := range recs {
		r.put(rec)
	}
	return r
}

func (r *memRepo) put(rec schedule.Record) {
	id := rec.Key()
	if _, ok := r.records[id]; !ok {
		r.order = append(r.order, id)
	}
	r.records[id] = rec
}

func (r *memRepo) ListMachines(context.Context) ([]schedule.Machine, error) {
	return r.machines, nil
}

func (r *memRepo) ListRecords(context.Context) ([]schedule.Record, error) {
	if r.failList != nil {
		return nil, r.failList
	}
	out := make([]schedule.Record, 0, len(r.order))
	for _, id := range r.order {
		if rec, ok := r.records[id]; ok {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *memRepo) CreateRecord(_ context.Context, rec schedule.Record) (schedule.Record, error) {
	if r.failCreate != nil {
		return schedule.Record{}, r.failCreate
	}
	r.creates++
	if rec.Key() == "" {
		rec.ID = fmt.Sprintf("rec-%d", r.creates)
	}
	r.put(rec)
	return rec, nil
}

func (r *memRepo) UpdateRecord(_ context.Context, id string, rec schedule.Record) (schedule.Record, error) {
	if r.failUpdate != nil {
		return schedule.Record{}, r.failUpdate
	}
	if _, ok := r.records[id]; !ok {
		return schedule.Record{}, schedule.ErrItemNotFound
	}
	r.updates++
	r.records[id] = rec
	return rec, nil
}

func (r *memRepo) DeleteRecord(_ context.Context, id string) error {
	if r.failDelete != nil {
		return r.failDelete
	}
	if _, ok := r.records[id]; !ok {
		return schedule.ErrItemNotFound
	}
	r.deletes++
	delete(r.records, id)
	return nil
}

func (r *memRepo) Close() error { return nil }

type countingRecorder struct {
	intents  map[string]int
	refresh  int
	failures int
	items    int
	groups   int
}

func (c *countingRecorder) RecordIntent(intent, result string) {
	if c.intents == nil {
		c.intents = make(map[string]int)
	}
	c.intents[intent+"/"+result]++
}
func (c *countingRecorder) RecordRefresh(_ float64, items int) { c.refresh++; c.items = items }
func (c *countingRecorder) RecordRefreshFailure() { c.failures++ }
func (c *countingRecorder) SetItems(n int) { c.items = n }
func (c *countingRecorder) SetGroups(n int) { c.groups = n }

func at(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02T15:04", s, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

// now sits between the past and future fixtures.
var now = at("2024-08-15T12:00")

func fixtureMachines() []schedule.Machine {
	return []schedule.Machine{
		{ID: "1", MachineSN: "A1", SingleOrDoubleColor: "single"},
		{ID: "2", MachineSN: "B2", ProductionArea: "B", SingleOrDoubleColor: "double"},
		{ID: "3", MachineSN: "A3", SingleOrDoubleColor: "single"},
	}
}

func fixtureRecords() []schedule.Record {
	return []schedule.Record{
		{
			Group:                      "A1",
			TimeLineStatus:             "待機中",
			MachineStatusID:            "idle-1",
			MachineStatusPlanStartTime: "2024-08-16T10:00:00",
			MachineStatusPlanEndTime:   "2024-08-16T12:00:00",
		},
		{
			Group:                "A1",
			TimeLineStatus:       "製令單",
			ProductionScheduleID: "order-1",
			PlanOnMachineDate:    "2024-08-16T08:00:00",
			PlanFinishDate:       "2024-08-16T12:00:00",
			ProductSN:            "P-100",
			ProductName:          "Cup lid",
			WorkOrderQuantity:    500,
		},
		{
			Group:                      "B2",
			TimeLineStatus:             "機台停機",
			MachineStatusID:            "past-1",
			MachineStatusPlanStartTime: "2024-08-14T08:00:00",
			MachineStatusPlanEndTime:   "2024-08-14T10:00:00",
			MachineStatusReason:        "mold crack",
		},
		{
			Group:                "B2",
			TimeLineStatus:       "製令單",
			ProductionScheduleID: "order-past",
			PlanOnMachineDate:    "2024-08-14T00:00:00",
			PlanFinishDate:       "2024-08-14T06:00:00",
			WorkOrderQuantity:    100,
		},
	}
}

func newTestBoard(t *testing.T, opts Options) (*Board, *memRepo) {
	t.Helper()
	repo := newMemRepo(fixtureMachines(), fixtureRecords()...)
	opts.Transformer = schedule.NewTransformer(0, time.UTC)
	if opts.NewID == nil {
		n := 0
		opts.NewID = func() string {
			n++
			return fmt.Sprintf("new-%d", n)
		}
	}
	b := New(repo, opts)
	if err := b.Load(context.Background(), now); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return b, repo
}

func TestLoad(t *testing.T) {
	rec := &countingRecorder{}
	b, _ := newTestBoard(t, Options{Recorder: rec})

	groups := b.Groups()
	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(groups))
	}
	if groups[1].Area != "B" || groups[0].Area != "A" {
		t.Errorf("unexpected areas: %+v", groups)
	}

	items := b.Items(now)
	if len(items) != 4 {
		t.Fatalf("expected 4 items, got %d", len(items))
	}
	if rec.refresh != 1 || rec.items != 4 || rec.groups != 3 {
		t.Errorf("unexpected recorder state %+v", rec)
	}

	order, err := b.Get("order-1", now)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	want := schedule.Editable{UpdateTime: true, UpdateGroup: true}
	if order.Editable != want {
		t.Errorf("order-1 editable = %+v, want %+v", order.Editable, want)
	}
}

func TestLoad_Concurrent(t *testing.T) {
	repo := newMemRepo(fixtureMachines(), fixtureRecords()...)
	b := New(repo, Options{
		Transformer: schedule.NewTransformer(0, time.UTC),
		Logger:      slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug})),
	})

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if err := b.Load(context.Background(), now); err != nil {
				t.Errorf("Load() error = %v", err)
			}
		}()
		go func() {
			defer wg.Done()
			_ = b.Groups()
		}()
	}
	wg.Wait()

	if got := len(b.Groups()); got != 3 {
		t.Errorf("expected 3 groups, got %d", got)
	}
}

func TestRefresh_FailureKeepsIndex(t *testing.T) {
	rec := &countingRecorder{}
	b, repo := newTestBoard(t, Options{Recorder: rec})

	repo.failList = errBoom
	err := b.Refresh(context.Background(), now)

	var perr *schedule.PersistenceError
	if !errors.As(err, &perr) || !errors.Is(err, errBoom) {
		t.Fatalf("expected PersistenceError wrapping errBoom, got %v", err)
	}
	if got := len(b.Items(now)); got != 4 {
		t.Errorf("index changed after failed refresh: %d items", got)
	}
	if rec.failures != 1 {
		t.Errorf("expected 1 refresh failure, got %d", rec.failures)
	}
}

func TestRefresh_ReplacesContents(t *testing.T) {
	b, repo := newTestBoard(t, Options{})

	delete(repo.records, "idle-1")
	if err := b.Refresh(context.Background(), now); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if _, err := b.Get("idle-1", now); !errors.Is(err, schedule.ErrItemNotFound) {
		t.Errorf("expected idle-1 to be gone after refresh, got %v", err)
	}
}

func TestItems_RecomputesEditability(t *testing.T) {
	b, _ := newTestBoard(t, Options{})

	later := at("2024-08-17T00:00")
	it, err := b.Get("order-1", later)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if it.Editable != (schedule.Editable{}) {
		t.Errorf("expected order-1 frozen at %v, got %+v", later, it.Editable)
	}
}

func TestSave_CreateSegment(t *testing.T) {
	rec := &countingRecorder{}
	b, repo := newTestBoard(t, Options{Recorder: rec})

	draft := schedule.NewSegment("A1", schedule.StatusSetup, at("2024-08-16T13:00"), at("2024-08-16T15:00"), "", "P-100")
	saved, err := b.Save(context.Background(), draft, now)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if saved.ID != "new-1" {
		t.Errorf("expected generated id new-1, got %q", saved.ID)
	}
	if repo.creates != 1 || repo.updates != 0 {
		t.Errorf("expected one create, got creates=%d updates=%d", repo.creates, repo.updates)
	}
	want := schedule.Editable{UpdateGroup: true, Remove: true}
	if saved.Editable != want {
		t.Errorf("editable = %+v, want %+v", saved.Editable, want)
	}
	if saved.Area != "A" {
		t.Errorf("area = %q, want A", saved.Area)
	}
	if _, err := b.Get("new-1", now); err != nil {
		t.Errorf("saved item missing from index: %v", err)
	}
	if rec.intents["save/"+metrics.ResultOK] != 1 {
		t.Errorf("expected one successful save, got %v", rec.intents)
	}
}

func TestSave_Overlap(t *testing.T) {
	tests := []struct {
		name     string
		draft    schedule.Item
		adjacent bool
		wantErr  bool
	}{
		{
			name:    "segment crossing existing segment",
			draft:   schedule.NewSegment("A1", schedule.StatusSetup, at("2024-08-16T11:00"), at("2024-08-16T13:00"), "", ""),
			wantErr: true,
		},
		{
			name:  "order crossing existing segment",
			draft: schedule.NewOrder("A1", at("2024-08-16T11:00"), at("2024-08-16T15:00"), schedule.OrderInfo{Quantity: 10}),
		},
		{
			name:    "segment touching existing segment",
			draft:   schedule.NewSegment("A1", schedule.StatusTesting, at("2024-08-16T12:00"), at("2024-08-16T14:00"), "", ""),
			wantErr: true,
		},
		{
			name:     "segment touching with adjacency allowed",
			draft:    schedule.NewSegment("A1", schedule.StatusTesting, at("2024-08-16T12:00"), at("2024-08-16T14:00"), "", ""),
			adjacent: true,
		},
		{
			name:  "segment on another machine",
			draft: schedule.NewSegment("A3", schedule.StatusSetup, at("2024-08-16T11:00"), at("2024-08-16T13:00"), "", ""),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, repo := newTestBoard(t, Options{Overlap: schedule.OverlapValidator{AllowAdjacent: tt.adjacent}})

			_, err := b.Save(context.Background(), tt.draft, now)
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("Save() error = %v", err)
				}
				return
			}

			var oerr *schedule.OverlapError
			if !errors.As(err, &oerr) {
				t.Fatalf("expected OverlapError, got %v", err)
			}
			if oerr.Conflict != "idle-1" {
				t.Errorf("conflict = %q, want idle-1", oerr.Conflict)
			}
			if repo.creates != 0 {
				t.Error("persistence must not be called on overlap")
			}
			if got := len(b.Items(now)); got != 4 {
				t.Errorf("index changed on rejected save: %d items", got)
			}
		})
	}
}

func TestSave_Validation(t *testing.T) {
	tests := []struct {
		name  string
		draft schedule.Item
		field string
	}{
		{
			name:  "stop without reason",
			draft: schedule.NewSegment("A3", schedule.StatusStopped, at("2024-08-16T10:00"), at("2024-08-16T12:00"), "", ""),
			field: "reason",
		},
		{
			name:  "unknown machine",
			draft: schedule.NewSegment("Z9", schedule.StatusIdle, at("2024-08-16T10:00"), at("2024-08-16T12:00"), "", ""),
			field: "group",
		},
		{
			name:  "short order",
			draft: schedule.NewOrder("A3", at("2024-08-16T10:00"), at("2024-08-16T12:00"), schedule.OrderInfo{}),
			field: "end",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, repo := newTestBoard(t, Options{})

			_, err := b.Save(context.Background(), tt.draft, now)
			var verrs schedule.ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("expected ValidationErrors, got %v", err)
			}
			if _, ok := verrs.Field(tt.field); !ok {
				t.Errorf("expected a %s error, got %v", tt.field, verrs)
			}
			if repo.creates != 0 {
				t.Error("persistence must not be called on invalid drafts")
			}
		})
	}
}

func TestSave_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("move future segment to another machine", func(t *testing.T) {
		b, repo := newTestBoard(t, Options{})
		draft, _ := b.Get("idle-1", now)
		draft.MoveTo("A3")

		saved, err := b.Save(ctx, draft, now)
		if err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		if repo.updates != 1 || repo.creates != 0 {
			t.Errorf("expected one update, got creates=%d updates=%d", repo.creates, repo.updates)
		}
		if saved.Group != "A3" {
			t.Errorf("group = %q, want A3", saved.Group)
		}
	})

	t.Run("reschedule future order", func(t *testing.T) {
		b, _ := newTestBoard(t, Options{})
		draft, _ := b.Get("order-1", now)
		draft.Reschedule(at("2024-08-16T13:00"), at("2024-08-16T18:00"))

		saved, err := b.Save(ctx, draft, now)
		if err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		if !saved.Start.Equal(at("2024-08-16T13:00")) || !saved.End.Equal(at("2024-08-16T18:00")) {
			t.Errorf("unexpected range %v - %v", saved.Start, saved.End)
		}
		if saved.Order == nil || saved.Order.ProductName != "Cup lid" {
			t.Errorf("order info lost on update: %+v", saved.Order)
		}
	})

	t.Run("move fallback-length order to another machine", func(t *testing.T) {
		b, repo := newTestBoard(t, Options{})
		repo.put(schedule.Record{
			Group:                "A3",
			TimeLineStatus:       "製令單",
			ProductionScheduleID: "order-short",
			PlanOnMachineDate:    "2024-08-17T08:00:00",
		})
		if err := b.Refresh(ctx, now); err != nil {
			t.Fatalf("Refresh() error = %v", err)
		}

		draft, err := b.Get("order-short", now)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if d := draft.End.Sub(draft.Start); d != schedule.DefaultSpan {
			t.Fatalf("fallback length = %s, want %s", d, schedule.DefaultSpan)
		}
		if !draft.Editable.UpdateGroup {
			t.Fatalf("expected a future order to allow machine moves, got %+v", draft.Editable)
		}
		draft.MoveTo("B2")

		saved, err := b.Save(ctx, draft, now)
		if err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		if saved.Group != "B2" || repo.updates != 1 {
			t.Errorf("unexpected result %+v (updates=%d)", saved, repo.updates)
		}
	})

	t.Run("rescheduling keeps the order length rule", func(t *testing.T) {
		b, repo := newTestBoard(t, Options{})
		draft, _ := b.Get("order-1", now)
		draft.Reschedule(at("2024-08-16T13:00"), at("2024-08-16T15:00"))

		_, err := b.Save(ctx, draft, now)
		var verrs schedule.ValidationErrors
		if !errors.As(err, &verrs) {
			t.Fatalf("expected ValidationErrors, got %v", err)
		}
		if _, ok := verrs.Field("end"); !ok {
			t.Errorf("expected an end error, got %v", verrs)
		}
		if repo.updates != 0 {
			t.Error("persistence must not be called on invalid drafts")
		}
	})

	t.Run("unchanged instants with sub-second precision", func(t *testing.T) {
		b, _ := newTestBoard(t, Options{})
		start := at("2024-08-17T08:00").Add(250 * time.Millisecond)
		created, err := b.Save(ctx, schedule.NewSegment("A3", schedule.StatusIdle, start, start.Add(2*time.Hour), "", ""), now)
		if err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		if !created.Start.Equal(start) {
			t.Fatalf("start = %v, want %v", created.Start, start)
		}

		draft, _ := b.Get(created.ID, now)
		draft.Start = start
		draft.End = start.Add(2 * time.Hour)
		draft.MoveTo("A1")
		if _, err := b.Save(ctx, draft, now); err != nil {
			t.Fatalf("Save() with echoed instants error = %v", err)
		}
	})

	t.Run("segment time is locked", func(t *testing.T) {
		b, repo := newTestBoard(t, Options{})
		draft, _ := b.Get("idle-1", now)
		draft.Reschedule(at("2024-08-16T14:00"), at("2024-08-16T16:00"))

		_, err := b.Save(ctx, draft, now)
		if !errors.Is(err, schedule.ErrTimeLocked) {
			t.Fatalf("expected ErrTimeLocked, got %v", err)
		}
		if repo.updates != 0 {
			t.Error("persistence must not be called on locked update")
		}
	})

	t.Run("past order machine is locked", func(t *testing.T) {
		b, _ := newTestBoard(t, Options{})
		draft, _ := b.Get("order-past", now)
		draft.MoveTo("A3")

		_, err := b.Save(ctx, draft, now)
		if !errors.Is(err, schedule.ErrGroupLocked) {
			t.Fatalf("expected ErrGroupLocked, got %v", err)
		}
	})

	t.Run("illegal status change", func(t *testing.T) {
		b, _ := newTestBoard(t, Options{})
		draft, _ := b.Get("past-1", now)
		draft.Status = schedule.StatusSetup

		_, err := b.Save(ctx, draft, now)
		var terr *schedule.StatusTransitionError
		if !errors.As(err, &terr) {
			t.Fatalf("expected StatusTransitionError, got %v", err)
		}
		if terr.From != schedule.StatusStopped || terr.To != schedule.StatusSetup {
			t.Errorf("unexpected transition %s -> %s", terr.From, terr.To)
		}
	})
}

func TestSave_PersistenceFailure(t *testing.T) {
	b, repo := newTestBoard(t, Options{})
	repo.failCreate = errBoom

	draft := schedule.NewSegment("A3", schedule.StatusIdle, at("2024-08-16T10:00"), at("2024-08-16T12:00"), "", "")
	_, err := b.Save(context.Background(), draft, now)

	var perr *schedule.PersistenceError
	if !errors.As(err, &perr) {
		t.Fatalf("expected PersistenceError, got %v", err)
	}
	if perr.Op != "create" || !errors.Is(err, errBoom) {
		t.Errorf("unexpected persistence error %+v", perr)
	}
	if got := len(b.Items(now)); got != 4 {
		t.Errorf("index changed after failed create: %d items", got)
	}
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr error
	}{
		{"future segment", "idle-1", nil},
		{"past segment", "past-1", schedule.ErrNotRemovable},
		{"future order", "order-1", schedule.ErrNotRemovable},
		{"missing", "nope", schedule.ErrItemNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, repo := newTestBoard(t, Options{})

			err := b.Delete(context.Background(), tt.id, now)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Delete() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				if repo.deletes != 0 {
					t.Error("persistence must not be called on rejected delete")
				}
				return
			}
			if _, err := b.Get(tt.id, now); !errors.Is(err, schedule.ErrItemNotFound) {
				t.Errorf("expected %s removed from index", tt.id)
			}
		})
	}
}

func TestDelete_PersistenceFailureKeepsItem(t *testing.T) {
	b, repo := newTestBoard(t, Options{})
	repo.failDelete = errBoom

	err := b.Delete(context.Background(), "idle-1", now)
	if !errors.Is(err, errBoom) {
		t.Fatalf("expected errBoom, got %v", err)
	}
	if _, err := b.Get("idle-1", now); err != nil {
		t.Errorf("item removed despite failed delete: %v", err)
	}
}

func TestSwitchStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("idle to stopped with reason", func(t *testing.T) {
		rec := &countingRecorder{}
		b, repo := newTestBoard(t, Options{Recorder: rec})

		it, err := b.SwitchStatus(ctx, "idle-1", schedule.StatusStopped, "nozzle leak", now)
		if err != nil {
			t.Fatalf("SwitchStatus() error = %v", err)
		}
		if it.Status != schedule.StatusStopped || it.Machine == nil || it.Machine.Reason != "nozzle leak" {
			t.Errorf("unexpected item after switch: %+v", it)
		}
		if repo.updates != 1 {
			t.Errorf("expected one update, got %d", repo.updates)
		}
		if rec.intents["switch/"+metrics.ResultOK] != 1 {
			t.Errorf("expected switch recorded, got %v", rec.intents)
		}
	})

	t.Run("stopped needs a reason", func(t *testing.T) {
		b, _ := newTestBoard(t, Options{})

		_, err := b.SwitchStatus(ctx, "idle-1", schedule.StatusStopped, "", now)
		var verrs schedule.ValidationErrors
		if !errors.As(err, &verrs) {
			t.Fatalf("expected ValidationErrors, got %v", err)
		}
	})

	t.Run("testing to setup rejected", func(t *testing.T) {
		b, _ := newTestBoard(t, Options{})
		if _, err := b.SwitchStatus(ctx, "idle-1", schedule.StatusTesting, "", now); err != nil {
			t.Fatalf("idle -> testing: %v", err)
		}

		_, err := b.SwitchStatus(ctx, "idle-1", schedule.StatusSetup, "", now)
		var terr *schedule.StatusTransitionError
		if !errors.As(err, &terr) {
			t.Fatalf("expected StatusTransitionError, got %v", err)
		}

		if _, err := b.SwitchStatus(ctx, "idle-1", schedule.StatusIdle, "", now); err != nil {
			t.Errorf("testing -> idle: %v", err)
		}
	})

	t.Run("orders never switch", func(t *testing.T) {
		b, _ := newTestBoard(t, Options{})

		_, err := b.SwitchStatus(ctx, "order-1", schedule.StatusIdle, "", now)
		var terr *schedule.StatusTransitionError
		if !errors.As(err, &terr) {
			t.Fatalf("expected StatusTransitionError, got %v", err)
		}
	})

	t.Run("missing item", func(t *testing.T) {
		b, _ := newTestBoard(t, Options{})

		_, err := b.SwitchStatus(ctx, "nope", schedule.StatusIdle, "", now)
		if !errors.Is(err, schedule.ErrItemNotFound) {
			t.Fatalf("expected ErrItemNotFound, got %v", err)
		}
	})
}

func TestWindow(t *testing.T) {
	b, _ := newTestBoard(t, Options{Calculator: scheduler.New(7)})

	w := b.Window(scheduler.Day, at("2024-08-16T15:00"))
	if !w.Start.Equal(at("2024-08-16T07:00")) || !w.End.Equal(at("2024-08-16T23:00")) {
		t.Errorf("unexpected window %v - %v", w.Start, w.End)
	}
}

func TestKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, metrics.ResultOK},
		{schedule.ValidationErrors{{Field: "group", Message: "x"}}, metrics.ResultValidation},
		{&schedule.StatusTransitionError{From: schedule.StatusTesting, To: schedule.StatusSetup}, metrics.ResultTransition},
		{&schedule.OverlapError{ID: "a", Conflict: "b"}, metrics.ResultOverlap},
		{fmt.Errorf("%w: x", schedule.ErrTimeLocked), metrics.ResultLocked},
		{fmt.Errorf("%w: x", schedule.ErrGroupLocked), metrics.ResultLocked},
		{fmt.Errorf("%w: x", schedule.ErrNotRemovable), metrics.ResultLocked},
		{fmt.Errorf("%w: x", schedule.ErrItemNotFound), metrics.ResultNotFound},
		{&schedule.PersistenceError{Op: "update", Err: schedule.ErrItemNotFound}, metrics.ResultPersistence},
	}

	for _, tt := range tests {
		if got := Kind(tt.err); got != tt.want {
			t.Errorf("Kind(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
