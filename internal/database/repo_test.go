package database

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/AndrewDonelson/dance-card-orchestrator/internal/models"
	"github.com/AndrewDonelson/dance-card-orchestrator/pkg/moves"
	_ "github.com/mattn/go-sqlite3"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	schema, err := os.ReadFile(filepath.Join("..", "..", "scripts", "schema.sql"))
	if err != nil {
		t.Fatalf("failed to read schema: %v", err)
	}
	if _, err := db.Exec(string(schema)); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}

	return db
}

func TestSongRepository(t *testing.T) {
	repo := NewSongRepository(testDB(t))

	song := &models.Song{
		VideoID:         "dQw4w9WgXcQ",
		Title:           "Test Song",
		Artist:          "Test Artist",
		YoutubeURL:      "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		DurationSeconds: 212.5,
		BPM:             113,
		Difficulty:      2,
	}

	if err := repo.Upsert(song); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	got, err := repo.GetByVideoID("dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("GetByVideoID failed: %v", err)
	}
	if got == nil {
		t.Fatal("song not found after upsert")
	}
	if got.Title != "Test Song" || got.BPM != 113 {
		t.Errorf("unexpected song data: %+v", got)
	}
	if got.Published {
		t.Error("new song should not be published")
	}

	// Unpublished songs stay out of the public library.
	published, err := repo.GetPublished()
	if err != nil {
		t.Fatalf("GetPublished failed: %v", err)
	}
	if len(published) != 0 {
		t.Errorf("expected no published songs, got %d", len(published))
	}

	if err := repo.SetPublished("dQw4w9WgXcQ", true); err != nil {
		t.Fatalf("SetPublished failed: %v", err)
	}
	published, err = repo.GetPublished()
	if err != nil {
		t.Fatalf("GetPublished failed: %v", err)
	}
	if len(published) != 1 {
		t.Fatalf("expected 1 published song, got %d", len(published))
	}

	// Reprocessing updates metadata but keeps the published flag.
	song.Title = "Renamed Song"
	if err := repo.Upsert(song); err != nil {
		t.Fatalf("second Upsert failed: %v", err)
	}
	got, _ = repo.GetByVideoID("dQw4w9WgXcQ")
	if got.Title != "Renamed Song" {
		t.Errorf("title not updated on upsert: %q", got.Title)
	}
	if !got.Published {
		t.Error("published flag lost on upsert")
	}

	missing, err := repo.GetByVideoID("nonexistent1")
	if err != nil {
		t.Fatalf("GetByVideoID failed for missing song: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for missing song")
	}
}

func TestLyricsRepository(t *testing.T) {
	db := testDB(t)
	songRepo := NewSongRepository(db)
	repo := NewLyricsRepository(db)

	song := &models.Song{VideoID: "abc123def45", Title: "T", Artist: "A", YoutubeURL: "u"}
	if err := songRepo.Upsert(song); err != nil {
		t.Fatalf("song setup failed: %v", err)
	}

	record := &models.LyricsRecord{
		VideoID:      "abc123def45",
		SegmentsJSON: `[{"start":1,"end":2,"text":"hello"}]`,
		Language:     "en",
		Source:       "whisper",
	}
	if err := repo.Save(record); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := repo.GetByVideoID("abc123def45")
	if err != nil {
		t.Fatalf("GetByVideoID failed: %v", err)
	}
	if got == nil || got.SegmentsJSON != record.SegmentsJSON {
		t.Errorf("unexpected lyrics record: %+v", got)
	}

	// Retiming replaces segments without touching structure.
	if err := repo.UpdateStructure("abc123def45", `{"sections":[]}`); err != nil {
		t.Fatalf("UpdateStructure failed: %v", err)
	}
	if err := repo.UpdateSegments("abc123def45", `[{"start":2,"end":3,"text":"hello"}]`, "manual"); err != nil {
		t.Fatalf("UpdateSegments failed: %v", err)
	}
	got, _ = repo.GetByVideoID("abc123def45")
	if got.StructureJSON != `{"sections":[]}` {
		t.Errorf("structure lost on segment update: %q", got.StructureJSON)
	}
	if got.Source != "manual" {
		t.Errorf("source not updated: %q", got.Source)
	}
}

func TestRoutineRepositoryDefaults(t *testing.T) {
	db := testDB(t)
	songRepo := NewSongRepository(db)
	repo := NewRoutineRepository(db)

	song := &models.Song{VideoID: "abc123def45", Title: "T", Artist: "A", YoutubeURL: "u"}
	if err := songRepo.Upsert(song); err != nil {
		t.Fatalf("song setup failed: %v", err)
	}

	first := &models.Routine{
		VideoID:          "abc123def45",
		VersionName:      "Original",
		MoveSequenceJSON: `[{"moveId":"clap","timestamp":5,"beats":4}]`,
		IsDefault:        true,
	}
	second := &models.Routine{
		VideoID:          "abc123def45",
		VersionName:      "Remix",
		MoveSequenceJSON: `[{"moveId":"jump","timestamp":5,"beats":8}]`,
	}
	if err := repo.Create(first); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := repo.Create(second); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	def, err := repo.GetDefault("abc123def45")
	if err != nil {
		t.Fatalf("GetDefault failed: %v", err)
	}
	if def == nil || def.RoutineID != first.RoutineID {
		t.Fatalf("expected first routine as default, got %+v", def)
	}

	// Promoting the second must clear the flag on the first.
	if err := repo.SetDefault("abc123def45", second.RoutineID); err != nil {
		t.Fatalf("SetDefault failed: %v", err)
	}
	def, _ = repo.GetDefault("abc123def45")
	if def == nil || def.RoutineID != second.RoutineID {
		t.Fatalf("expected second routine as default, got %+v", def)
	}

	all, err := repo.GetByVideoID("abc123def45")
	if err != nil {
		t.Fatalf("GetByVideoID failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 routines, got %d", len(all))
	}
	if !all[0].IsDefault {
		t.Error("default routine should sort first")
	}

	count, err := repo.CountByVideoID("abc123def45")
	if err != nil || count != 2 {
		t.Errorf("CountByVideoID = %d, %v", count, err)
	}
}

func TestQueueRepositoryOrdering(t *testing.T) {
	repo := NewQueueRepository(testDB(t))

	low := &models.QueueItem{VideoID: "aaaaaaaaaaa", YoutubeURL: "u1", LyricsMode: "auto", Status: models.StatusQueued, Priority: 0}
	high := &models.QueueItem{VideoID: "bbbbbbbbbbb", YoutubeURL: "u2", LyricsMode: "auto", Status: models.StatusQueued, Priority: 5}
	if err := repo.Create(low); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := repo.Create(high); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	next, err := repo.GetNextPending()
	if err != nil {
		t.Fatalf("GetNextPending failed: %v", err)
	}
	if next == nil || next.VideoID != "bbbbbbbbbbb" {
		t.Fatalf("expected high-priority item first, got %+v", next)
	}

	next.Status = models.StatusProcessing
	if err := repo.Update(next); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	// A processing item still counts as active for duplicate checks.
	active, err := repo.GetActiveByVideoID("bbbbbbbbbbb")
	if err != nil {
		t.Fatalf("GetActiveByVideoID failed: %v", err)
	}
	if active == nil {
		t.Fatal("expected processing item to be active")
	}

	next, err = repo.GetNextPending()
	if err != nil {
		t.Fatalf("GetNextPending failed: %v", err)
	}
	if next == nil || next.VideoID != "aaaaaaaaaaa" {
		t.Fatalf("expected remaining queued item, got %+v", next)
	}
}

func TestMoveRepositorySeed(t *testing.T) {
	repo := NewMoveRepository(testDB(t))

	if err := repo.Seed(); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	// Seeding twice must not duplicate rows.
	if err := repo.Seed(); err != nil {
		t.Fatalf("second Seed failed: %v", err)
	}

	all, err := repo.GetAll()
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(all) != len(moves.Catalog) {
		t.Errorf("expected %d moves, got %d", len(moves.Catalog), len(all))
	}

	m, err := repo.GetByID("step_touch")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if m == nil || m.Name != "Step Touch" {
		t.Errorf("unexpected move: %+v", m)
	}
}
