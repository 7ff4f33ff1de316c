package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/Ikbal01/tanks-game/internal/multiplayer"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenCreatesNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreSaveAndRetrieveScores(t *testing.T) {
	store := openTestStore(t)

	for _, s := range []struct{ score, stage int }{{100, 1}, {50, 1}, {200, 3}} {
		if _, err := store.SaveScore("tanks", s.score, s.stage); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("tanks_coop", 500, 2); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("tanks", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	want := []int{200, 100, 50}
	for i, w := range want {
		if scores[i].Score != w {
			t.Errorf("scores[%d] = %d, expected %d", i, scores[i].Score, w)
		}
	}
	if scores[0].Stage != 3 {
		t.Errorf("best score stage = %d, expected 3", scores[0].Stage)
	}

	top, err := store.TopScores("tanks", 2)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(top) != 2 {
		t.Errorf("Expected limit of 2 scores, got %d", len(top))
	}
}

func TestStoreHighScoreAndClear(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("tanks")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected 0 for empty game, got %d", high)
	}

	store.SaveScore("tanks", 300, 1)
	store.SaveScore("tanks", 700, 2)

	if high, _ = store.HighScore("tanks"); high != 700 {
		t.Errorf("HighScore() = %d, expected 700", high)
	}

	if err := store.ClearScores("tanks"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}
	scores, _ := store.TopScores("tanks", 10)
	if len(scores) != 0 {
		t.Errorf("Expected no scores after clear, got %d", len(scores))
	}
}

func TestStoreBattles(t *testing.T) {
	store := openTestStore(t)

	first, err := store.SaveBattle(BattleRecord{
		GameID:    "tanks",
		Mode:      multiplayer.MatchModeSolo.String(),
		Score1:    1200,
		Stage:     2,
		EndReason: "Defeat",
	})
	if err != nil {
		t.Fatalf("SaveBattle() failed: %v", err)
	}
	if _, err := uuid.Parse(first); err != nil {
		t.Errorf("battle ID %q is not a uuid: %v", first, err)
	}

	second, err := store.SaveBattle(BattleRecord{
		GameID:       "tanks_coop",
		Mode:         multiplayer.MatchModeLocalCoop.String(),
		Score1:       900,
		Score2:       800,
		Stage:        3,
		Won:          true,
		EndReason:    "Victory",
		DurationSecs: 410,
	})
	if err != nil {
		t.Fatalf("SaveBattle() failed: %v", err)
	}

	got, err := store.BattleByID(second)
	if err != nil || got == nil {
		t.Fatalf("BattleByID() = %v, %v", got, err)
	}
	if !got.Won || got.Score2 != 800 || got.DurationSecs != 410 || got.Mode != "Local co-op" {
		t.Errorf("BattleByID() = %+v", got)
	}

	missing, err := store.BattleByID("nope")
	if err != nil || missing != nil {
		t.Errorf("BattleByID(missing) = %v, %v; expected nil, nil", missing, err)
	}

	recent, err := store.RecentBattles(10)
	if err != nil {
		t.Fatalf("RecentBattles() failed: %v", err)
	}
	if len(recent) != 2 || recent[0].ID != second || recent[1].ID != first {
		t.Errorf("RecentBattles() should list the newest battle first, got %+v", recent)
	}
}

func TestStoreSaveMatchResult(t *testing.T) {
	store := openTestStore(t)

	id := uuid.NewString()
	err := store.SaveMatchResult(multiplayer.MatchResultData{
		MatchID:        id,
		GameID:         "tanks_coop",
		HostSession:    "alice",
		PartnerSession: "bob",
		Score1:         400,
		Score2:         300,
		Stage:          2,
		EndReason:      multiplayer.MatchEndReasonDefeat.String(),
		DurationSecs:   95,
	})
	if err != nil {
		t.Fatalf("SaveMatchResult() failed: %v", err)
	}

	b, err := store.BattleByID(id)
	if err != nil || b == nil {
		t.Fatalf("BattleByID() = %v, %v", b, err)
	}
	if b.Mode != "Online co-op" || b.HostSession != "alice" || b.PartnerSession != "bob" || b.Won {
		t.Errorf("saved match = %+v", b)
	}

	if high, _ := store.HighScore("tanks_coop"); high != 700 {
		t.Errorf("co-op high score = %d, expected the combined 700", high)
	}

	stats, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	s := stats["tanks_coop"]
	if s == nil || s.GamesCount != 1 || s.BestStage != 2 {
		t.Errorf("stats = %+v", s)
	}
}
