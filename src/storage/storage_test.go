package storage

import (
	"testing"

	"cellchess/src/base"
	"cellchess/src/logic/history"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func openTest(t *testing.T) *Storage {
	t.Helper()
	s, err := OpenInMemory()
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func moves(n int) []history.Entry {
	out := make([]history.Entry, n)
	for i := range out {
		c := base.White
		if i%2 == 1 {
			c = base.Black
		}
		out[i] = history.Entry{Piece: base.PieceID(i + 1), Color: c, To: base.Cell{File: i % 8, Rank: 3}, Ply: i + 1}
	}
	return out
}

func TestRecordGameRejectsRunningGame(t *testing.T) {
	s := openTest(t)
	if _, err := s.RecordGame(Result{State: base.InProgress}); err == nil {
		t.Fatal("recorded a game still in progress")
	}
	stats, err := s.LoadStats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.GamesPlayed != 0 {
		t.Errorf("games played = %d; want 0", stats.GamesPlayed)
	}
}

func TestRecordGameUpdatesStats(t *testing.T) {
	s := openTest(t)
	white, black := base.White, base.Black

	results := []Result{
		{State: base.Checkmate, Winner: &white, Moves: moves(7)},
		{State: base.Checkmate, Winner: &black, Moves: moves(4)},
		{State: base.Stalemate, Moves: moves(12)},
		{State: base.Checkmate, Winner: &white, Moves: moves(9)},
	}
	ids := map[string]bool{}
	for _, res := range results {
		rec, err := s.RecordGame(res)
		if err != nil {
			t.Fatalf("record: %v", err)
		}
		if rec.Plies != len(res.Moves) {
			t.Errorf("plies = %d; want %d", rec.Plies, len(res.Moves))
		}
		ids[rec.ID.String()] = true
	}
	if len(ids) != len(results) {
		t.Errorf("ids not unique: %v", ids)
	}

	stats, err := s.LoadStats()
	if err != nil {
		t.Fatal(err)
	}
	want := &Stats{GamesPlayed: 4, WhiteWins: 2, BlackWins: 1, Stalemates: 1, LongestGame: 12}
	if diff := cmp.Diff(want, stats); diff != "" {
		t.Errorf("stats mismatch (-want +got):\n%s", diff)
	}
	if got := stats.WhiteWinRate(); got < 66.6 || got > 66.7 {
		t.Errorf("white win rate = %.2f", got)
	}
}

func TestGameRoundTrip(t *testing.T) {
	s := openTest(t)
	black := base.Black
	rec, err := s.RecordGame(Result{State: base.Checkmate, Winner: &black, Moves: moves(4)})
	if err != nil {
		t.Fatal(err)
	}

	got, err := s.Game(rec.ID)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(rec, *got, cmpopts.EquateApproxTime(0)); diff != "" {
		t.Errorf("record mismatch (-stored +loaded):\n%s", diff)
	}

	all, err := s.Games()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 || all[0].ID != rec.ID {
		t.Errorf("games = %+v", all)
	}
}

func TestEmptyStore(t *testing.T) {
	s := openTest(t)
	stats, err := s.LoadStats()
	if err != nil {
		t.Fatal(err)
	}
	if *stats != (Stats{}) || stats.WhiteWinRate() != 0 {
		t.Errorf("stats = %+v", stats)
	}
	games, err := s.Games()
	if err != nil || len(games) != 0 {
		t.Errorf("games = %v, %v", games, err)
	}
}
