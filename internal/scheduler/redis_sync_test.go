package scheduler

import (
	"context"
	"testing"
)

func TestRedisSyncer_Sync(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	for i := 0; i < 3; i++ {
		sess, err := f.boards.Create(ctx)
		if err != nil {
			t.Fatal(err)
		}
		f.boards.Index().Remove(sess.ID())
	}
	// an ID whose data is gone
	if _, err := f.mr.SAdd("linkboard:boards:all", "00000000-0000-4000-8000-000000000000"); err != nil {
		t.Fatal(err)
	}

	rs := NewRedisSyncer(f.store, f.boards, f.log, 2)
	if err := rs.Sync(ctx); err != nil {
		t.Fatalf("Sync failed: %v", err)
	}
	if got := f.boards.Index().Count(); got != 2 {
		t.Errorf("Sync loaded %d boards, want the limit of 2", got)
	}
}

func TestRedisSyncer_SyncFlushesResolutions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	if err := f.store.CacheResolution(ctx, "board", "git", "https://github.com"); err != nil {
		t.Fatal(err)
	}

	rs := NewRedisSyncer(f.store, f.boards, f.log, 0)
	if err := rs.Sync(ctx); err != nil {
		t.Fatalf("Sync failed: %v", err)
	}

	url, err := f.store.GetCachedResolution(ctx, "board", "git")
	if err != nil || url != "" {
		t.Errorf("cached resolution survived Sync: %q, %v", url, err)
	}
}

func TestRedisSyncer_SyncEmpty(t *testing.T) {
	f := newFixture(t)
	rs := NewRedisSyncer(f.store, f.boards, f.log, 0)

	if rs.limit != DefaultWarmLimit {
		t.Errorf("limit = %d, want default", rs.limit)
	}
	if err := rs.Sync(context.Background()); err != nil {
		t.Fatalf("Sync failed: %v", err)
	}
}

func TestRedisSyncer_Flush(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	sess, err := f.boards.Create(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if err := sess.CreateOrUpdateCategory("Later", ""); err != nil {
		t.Fatal(err)
	}

	rs := NewRedisSyncer(f.store, f.boards, f.log, 0)
	if err := rs.Flush(ctx); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}

	state, _, err := f.store.GetBoard(ctx, sess.ID())
	if err != nil {
		t.Fatal(err)
	}
	if !state.HasCategory("Later") {
		t.Errorf("Flush did not save the board: %v", state.Order)
	}
}
