package integration

import (
	"context"
	"testing"
	"time"

	"github.com/javiermolinar/wisesched/internal/board"
	"github.com/javiermolinar/wisesched/internal/schedule"
	"github.com/javiermolinar/wisesched/internal/scheduler"
)

// Records written with an explicit offset and records without one must land
// on the same wall clock in the plant's zone.
func TestTimezone_PlantLocalTimes(t *testing.T) {
	taipei, err := time.LoadLocation("Asia/Taipei")
	if err != nil {
		t.Skip("Asia/Taipei zone data not available")
	}

	repo := openRepo(t)
	seed(t, repo,
		segmentRecord("idle-offset", "A1", schedule.StatusIdle, "2024-08-16T10:00:00+08:00", "2024-08-16T12:00:00+08:00"),
		segmentRecord("idle-naive", "A2", schedule.StatusIdle, "2024-08-16 10:00:00", "2024-08-16 12:00:00"),
	)

	now := time.Date(2024, 8, 15, 12, 0, 0, 0, taipei)
	b := board.New(repo, board.Options{
		Transformer: schedule.NewTransformer(0, taipei),
		Calculator:  scheduler.New(8),
	})
	if err := b.Load(context.Background(), now); err != nil {
		t.Fatalf("failed to load board: %v", err)
	}

	offset, err := b.Get("idle-offset", now)
	if err != nil {
		t.Fatalf("failed to get idle-offset: %v", err)
	}
	naive, err := b.Get("idle-naive", now)
	if err != nil {
		t.Fatalf("failed to get idle-naive: %v", err)
	}
	if !offset.Start.Equal(naive.Start) || !offset.End.Equal(naive.End) {
		t.Errorf("ranges differ: offset %v-%v, naive %v-%v", offset.Start, offset.End, naive.Start, naive.End)
	}

	// Both fall inside the plant's day window, not the UTC one.
	w := b.Window(scheduler.Day, time.Date(2024, 8, 16, 15, 0, 0, 0, taipei))
	t.Logf("window %v - %v", w.Start, w.End)
	for _, it := range []schedule.Item{offset, naive} {
		if !w.Contains(it.Start) {
			t.Errorf("%s start %v outside window %v - %v", it.ID, it.Start, w.Start, w.End)
		}
	}
	if got := w.Start.In(time.UTC).Hour(); got != 0 {
		t.Errorf("08:00 in Taipei should be 00:00 UTC, got %d", got)
	}
}
