package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/erazemk/stockroom/internal/db"
	"github.com/erazemk/stockroom/internal/model"
)

func TestSaveDraftCreatesDraft(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	draft := model.SurveyDraft{
		InstructorFirstName: "Ada",
		InstructorLastName:  "Lovelace",
		Date:                "2025-05-01",
		PackingNotes:        "bins 1-4",
		LowStockItems:       json.RawMessage(`[{"id": 2, "name": "Glue"}]`),
	}
	draft.CheckedIn = true

	s, err := SaveDraft(ctx, database, draft)
	if err != nil {
		t.Fatalf("SaveDraft: %v", err)
	}
	if s.ID == 0 {
		t.Error("expected an id to be assigned")
	}
	if s.Status != model.SurveyStatusDraft {
		t.Errorf("expected status draft, got %q", s.Status)
	}
	if s.Date.String() != "2025-05-01" {
		t.Errorf("expected date 2025-05-01, got %s", s.Date)
	}
	if s.Timestamp == nil || time.Since(*s.Timestamp) > time.Minute {
		t.Errorf("expected a fresh timestamp, got %v", s.Timestamp)
	}
	if !s.CheckedIn || s.ReviewedTaskList {
		t.Errorf("unexpected checklist %+v", s.Checklist)
	}
	if s.PackingNotes != "bins 1-4" {
		t.Errorf("expected packing notes, got %q", s.PackingNotes)
	}
	if s.LowStockItems != `[{"id":2,"name":"Glue"}]` {
		t.Errorf("unexpected low_stock_items %q", s.LowStockItems)
	}
}

func TestSaveDraftDefaults(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	s, err := SaveDraft(ctx, database, model.SurveyDraft{InstructorFirstName: "Grace"})
	if err != nil {
		t.Fatalf("SaveDraft: %v", err)
	}
	if s.Date.String() != model.Today().String() {
		t.Errorf("expected today's date, got %s", s.Date)
	}
	if s.LowStockItems != "[]" {
		t.Errorf("expected empty low_stock_items list, got %q", s.LowStockItems)
	}
	if s.InstructorLastName != "" || s.ShiftNotes != "" {
		t.Errorf("expected empty text fields, got %+v", s)
	}
}

func TestSaveDraftUpdatesSameRow(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	first, err := SaveDraft(ctx, database, model.SurveyDraft{InstructorFirstName: "Ada", Date: "2025-05-01"})
	if err != nil {
		t.Fatalf("SaveDraft: %v", err)
	}

	second, err := SaveDraft(ctx, database, model.SurveyDraft{
		ID:                  int64Ptr(first.ID),
		InstructorFirstName: "Ada",
		Date:                "2025-05-01",
		ShiftNotes:          "all good",
	})
	if err != nil {
		t.Fatalf("SaveDraft update: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("expected same id %d, got %d", first.ID, second.ID)
	}
	if second.ShiftNotes != "all good" {
		t.Errorf("expected shift notes updated, got %q", second.ShiftNotes)
	}
	if !second.Timestamp.Equal(*first.Timestamp) {
		t.Errorf("timestamp must not change on update: %v -> %v", first.Timestamp, second.Timestamp)
	}

	surveys, _ := ListSurveys(ctx, database)
	if len(surveys) != 1 {
		t.Errorf("expected 1 survey row, got %d", len(surveys))
	}

	// Omitting the id always inserts.
	if _, err := SaveDraft(ctx, database, model.SurveyDraft{InstructorFirstName: "Ada", Date: "2025-05-01"}); err != nil {
		t.Fatalf("SaveDraft: %v", err)
	}
	surveys, _ = ListSurveys(ctx, database)
	if len(surveys) != 2 {
		t.Errorf("expected 2 survey rows, got %d", len(surveys))
	}
}

func TestSaveDraftReplacesAbsentBooleans(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	draft := model.SurveyDraft{InstructorFirstName: "Ada"}
	draft.SweptFloor = true
	draft.LockedStorage = true
	first, _ := SaveDraft(ctx, database, draft)

	next := model.SurveyDraft{ID: int64Ptr(first.ID), InstructorFirstName: "Ada"}
	next.LockedStorage = true
	second, err := SaveDraft(ctx, database, next)
	if err != nil {
		t.Fatalf("SaveDraft: %v", err)
	}
	if second.SweptFloor {
		t.Error("swept_floor left out of the draft must reset to false")
	}
	if !second.LockedStorage {
		t.Error("locked_storage should stay true")
	}
}

func TestSaveDraftUnknownID(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	_, err := SaveDraft(ctx, database, model.SurveyDraft{ID: int64Ptr(42), InstructorFirstName: "Ada"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	surveys, _ := ListSurveys(ctx, database)
	if len(surveys) != 0 {
		t.Errorf("expected no rows written, got %d", len(surveys))
	}
}

func TestSaveDraftZeroIDInserts(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	s, err := SaveDraft(ctx, database, model.SurveyDraft{ID: int64Ptr(0), InstructorFirstName: "Ada"})
	if err != nil {
		t.Fatalf("SaveDraft: %v", err)
	}
	if s.ID == 0 {
		t.Error("expected a zero id to insert a new survey")
	}
}

func TestSaveDraftInvalidInput(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		draft model.SurveyDraft
	}{
		{"bad date", model.SurveyDraft{InstructorFirstName: "Ada", Date: "05/01/2025"}},
		{"bad low stock json", model.SurveyDraft{InstructorFirstName: "Ada", LowStockItems: json.RawMessage(`[1,`)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SaveDraft(ctx, database, tt.draft)
			if !errors.Is(err, ErrSaveFailed) {
				t.Errorf("expected ErrSaveFailed, got %v", err)
			}
		})
	}

	surveys, _ := ListSurveys(ctx, database)
	if len(surveys) != 0 {
		t.Errorf("expected no rows written, got %d", len(surveys))
	}
}

func TestSaveDraftStoreFailure(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	database.Close()

	_, err := SaveDraft(ctx, database, model.SurveyDraft{InstructorFirstName: "Ada"})
	if !errors.Is(err, ErrSaveFailed) {
		t.Errorf("expected ErrSaveFailed on closed store, got %v", err)
	}
}

func TestCompleteSurvey(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if err := CompleteSurvey(ctx, database, 7); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	s, _ := SaveDraft(ctx, database, model.SurveyDraft{InstructorFirstName: "Ada"})

	for i := 0; i < 2; i++ {
		if err := CompleteSurvey(ctx, database, s.ID); err != nil {
			t.Fatalf("CompleteSurvey #%d: %v", i+1, err)
		}
		got, _ := GetSurvey(ctx, database, s.ID)
		if got.Status != model.SurveyStatusCompleted {
			t.Errorf("expected completed after call %d, got %q", i+1, got.Status)
		}
	}
}

func TestSaveDraftDoesNotReopenCompleted(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	s, _ := SaveDraft(ctx, database, model.SurveyDraft{InstructorFirstName: "Ada"})
	CompleteSurvey(ctx, database, s.ID)

	saved, err := SaveDraft(ctx, database, model.SurveyDraft{ID: int64Ptr(s.ID), InstructorFirstName: "Ada"})
	if err != nil {
		t.Fatalf("SaveDraft: %v", err)
	}
	if saved.Status != model.SurveyStatusCompleted {
		t.Errorf("completed survey reverted to %q", saved.Status)
	}
}

func TestFindDraft(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	today := model.Today()
	yesterday := model.NewDate(today.AddDate(0, 0, -1))

	old, _ := SaveDraft(ctx, database, model.SurveyDraft{InstructorFirstName: "Ada", Date: yesterday.String()})
	current, _ := SaveDraft(ctx, database, model.SurveyDraft{InstructorFirstName: "Ada", InstructorLastName: "Lovelace", Date: today.String()})
	SaveDraft(ctx, database, model.SurveyDraft{InstructorFirstName: "Grace", Date: today.String()})

	got, err := FindDraft(ctx, database, "Ada Lovelace", today)
	if err != nil {
		t.Fatalf("FindDraft: %v", err)
	}
	if got == nil || got.ID != current.ID {
		t.Fatalf("expected today's draft %d, got %+v", current.ID, got)
	}

	// Yesterday's draft is visible when searching from yesterday; lowest id wins.
	got, _ = FindDraft(ctx, database, "Ada", yesterday)
	if got == nil || got.ID != old.ID {
		t.Errorf("expected draft %d, got %+v", old.ID, got)
	}

	// Completed surveys are not drafts.
	CompleteSurvey(ctx, database, current.ID)
	got, _ = FindDraft(ctx, database, "Ada", today)
	if got != nil {
		t.Errorf("expected no draft after completion, got %+v", got)
	}

	for _, name := range []string{"", "   ", "Lovelace Ada"} {
		got, err := FindDraft(ctx, database, name, yesterday)
		if err != nil {
			t.Fatalf("FindDraft(%q): %v", name, err)
		}
		if got != nil {
			t.Errorf("FindDraft(%q): expected nil, got %+v", name, got)
		}
	}
}

func TestListSurveysNewestFirst(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	var ids []int64
	for _, name := range []string{"A", "B", "C"} {
		s, err := SaveDraft(ctx, database, model.SurveyDraft{InstructorFirstName: name})
		if err != nil {
			t.Fatalf("SaveDraft: %v", err)
		}
		ids = append(ids, s.ID)
		time.Sleep(2 * time.Millisecond)
	}

	surveys, err := ListSurveys(ctx, database)
	if err != nil {
		t.Fatalf("ListSurveys: %v", err)
	}
	if len(surveys) != 3 {
		t.Fatalf("expected 3 surveys, got %d", len(surveys))
	}
	if surveys[0].ID != ids[2] || surveys[2].ID != ids[0] {
		t.Errorf("expected newest first, got ids %d, %d, %d", surveys[0].ID, surveys[1].ID, surveys[2].ID)
	}
}

func TestGetSurveyMissing(t *testing.T) {
	database := db.NewTestDB(t)

	got, err := GetSurvey(context.Background(), database, 1)
	if err != nil {
		t.Fatalf("GetSurvey: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
}
