package board

import (
	"context"
	"errors"
	"testing"

	"github.com/javiermolinar/wisesched/internal/schedule"
)

func ptr[T any](v T) *T { return &v }

func TestPatch_Apply(t *testing.T) {
	seg := schedule.NewSegment("A1", schedule.StatusIdle, at("2024-08-16T10:00"), at("2024-08-16T12:00"), "", "")
	seg.ID = "s1"

	t.Run("empty patch keeps item", func(t *testing.T) {
		p := Patch{}
		if !p.Empty() {
			t.Fatal("expected empty patch")
		}
		got := p.Apply(seg)
		if got.Group != seg.Group || !got.Start.Equal(seg.Start) || got.Status != seg.Status {
			t.Errorf("empty patch changed item: %+v", got)
		}
	})

	t.Run("group and reason", func(t *testing.T) {
		got := Patch{Group: ptr("B7"), Reason: ptr("heater fault")}.Apply(seg)
		if got.Group != "B7" || got.Area != "B" {
			t.Errorf("group not moved: %s / %s", got.Group, got.Area)
		}
		if got.Machine.Reason != "heater fault" {
			t.Errorf("reason = %q", got.Machine.Reason)
		}
		if seg.Machine.Reason != "" {
			t.Error("patch must not mutate the source item")
		}
	})

	t.Run("end only", func(t *testing.T) {
		got := Patch{End: ptr(at("2024-08-16T13:00"))}.Apply(seg)
		if !got.Start.Equal(seg.Start) || !got.End.Equal(at("2024-08-16T13:00")) {
			t.Errorf("unexpected range %v - %v", got.Start, got.End)
		}
		if got.PlanEnd == nil || !got.PlanEnd.Equal(got.End) {
			t.Errorf("plan end not updated: %v", got.PlanEnd)
		}
	})

	t.Run("status keeps exactly one payload", func(t *testing.T) {
		got := Patch{Status: ptr(schedule.StatusOrderCreated)}.Apply(seg)
		if got.Order == nil || got.Machine != nil {
			t.Errorf("expected order payload only, got order=%v machine=%v", got.Order, got.Machine)
		}
	})
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("move future segment", func(t *testing.T) {
		b, repo := newTestBoard(t, Options{})

		it, err := b.Update(ctx, "idle-1", Patch{Group: ptr("A3")}, now)
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if it.Group != "A3" || repo.updates != 1 {
			t.Errorf("unexpected result %+v (updates=%d)", it, repo.updates)
		}
	})

	t.Run("missing item", func(t *testing.T) {
		b, _ := newTestBoard(t, Options{})

		_, err := b.Update(ctx, "nope", Patch{Group: ptr("A3")}, now)
		if !errors.Is(err, schedule.ErrItemNotFound) {
			t.Fatalf("expected ErrItemNotFound, got %v", err)
		}
	})

	t.Run("segment time locked", func(t *testing.T) {
		b, _ := newTestBoard(t, Options{})

		_, err := b.Update(ctx, "idle-1", Patch{Start: ptr(at("2024-08-16T09:00"))}, now)
		if !errors.Is(err, schedule.ErrTimeLocked) {
			t.Fatalf("expected ErrTimeLocked, got %v", err)
		}
	})
}
