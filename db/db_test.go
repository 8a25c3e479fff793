package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	arena "go-arena"
	"go-arena/cmd"
)

func setup(t *testing.T) *db {
	t.Helper()
	st := cmd.MakeState()
	conf := &cmd.Conf{
		Database: cmd.DatabaseConf{
			File: filepath.Join(t.TempDir(), "test.db"),
		},
	}
	Register(st, conf)
	if st.Database == nil {
		t.Fatal("no database registered")
	}
	d := st.Database.(*db)
	t.Cleanup(d.Shutdown)
	return d
}

func TestRecordMatch(t *testing.T) {
	d := setup(t)
	ctx := context.Background()

	res := &arena.MatchResult{
		Id:      uuid.New(),
		Summary: "alice wins",
		Winner:  "alice",
		Scores:  map[string]float64{"alice": 1, "bob": 0},
		Times: map[string]time.Duration{
			"alice": 20 * time.Millisecond,
			"bob":   35 * time.Millisecond,
		},
		Moves:    map[string]uint{"alice": 4, "bob": 3},
		Duration: 80 * time.Millisecond,
	}
	d.RecordMatch(ctx, res, []string{"alice", "bob"})

	var winner string
	err := d.write.QueryRowContext(ctx,
		"SELECT winner FROM match WHERE id = ?;",
		res.Id.String()).Scan(&winner)
	if err != nil {
		t.Fatal(err)
	}
	if winner != "alice" {
		t.Errorf("stored winner is %q", winner)
	}

	var outcomes int
	err = d.write.QueryRowContext(ctx,
		"SELECT count(*) FROM outcome WHERE match = ?;",
		res.Id.String()).Scan(&outcomes)
	if err != nil {
		t.Fatal(err)
	}
	if outcomes != 2 {
		t.Errorf("stored %d outcomes, want 2", outcomes)
	}
}

func TestRecordStandingUpsert(t *testing.T) {
	d := setup(t)
	ctx := context.Background()

	d.RecordStanding(ctx, &arena.Standing{Name: "alice", Score: 1, Games: 2})
	d.RecordStanding(ctx, &arena.Standing{Name: "alice", Score: 3, Games: 4})

	var (
		count int
		score float64
	)
	err := d.write.QueryRowContext(ctx,
		"SELECT count(*), max(score) FROM standing WHERE player = 'alice';").
		Scan(&count, &score)
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("%d rows for one player", count)
	}
	if score != 3 {
		t.Errorf("stale score %g kept", score)
	}
}
