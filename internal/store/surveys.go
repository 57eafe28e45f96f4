package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/erazemk/stockroom/internal/model"
)

const surveyColumns = `id, instructor_first_name, instructor_last_name, date, timestamp, status,
	reviewed_task_list, checked_in,
	used_correct_materials, gathered_materials, double_checked, labeled_bins, returned_bins,
	returned_all_items, shelves_clean, checked_low_stock, logged_whiteboard,
	materials_correct_classroom, took_picture,
	swept_floor, removed_trash, locked_storage, checked_in_before_leaving,
	packing_notes, items_need_ordering, shift_notes, low_stock_items`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSurvey(row rowScanner) (*model.Survey, error) {
	s := &model.Survey{}
	c := &s.Checklist
	err := row.Scan(&s.ID, &s.InstructorFirstName, &s.InstructorLastName, &s.Date, &s.Timestamp, &s.Status,
		&c.ReviewedTaskList, &c.CheckedIn,
		&c.UsedCorrectMaterials, &c.GatheredMaterials, &c.DoubleChecked, &c.LabeledBins, &c.ReturnedBins,
		&c.ReturnedAllItems, &c.ShelvesClean, &c.CheckedLowStock, &c.LoggedWhiteboard,
		&c.MaterialsCorrectClassroom, &c.TookPicture,
		&c.SweptFloor, &c.RemovedTrash, &c.LockedStorage, &c.CheckedInBeforeLeaving,
		&s.PackingNotes, &s.ItemsNeedOrdering, &s.ShiftNotes, &s.LowStockItems)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// GetSurvey returns a survey by ID, or nil if it does not exist.
func GetSurvey(ctx context.Context, db *sql.DB, id int64) (*model.Survey, error) {
	return getSurvey(ctx, db, id)
}

func getSurvey(ctx context.Context, q querier, id int64) (*model.Survey, error) {
	s, err := scanSurvey(q.QueryRowContext(ctx,
		`SELECT `+surveyColumns+` FROM shift_survey WHERE id = ?`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting survey: %w", err)
	}
	return s, nil
}

// ListSurveys returns every survey, newest first.
func ListSurveys(ctx context.Context, db *sql.DB) ([]model.Survey, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+surveyColumns+` FROM shift_survey ORDER BY timestamp DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing surveys: %w", err)
	}
	defer rows.Close()

	var surveys []model.Survey
	for rows.Next() {
		s, err := scanSurvey(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning survey: %w", err)
		}
		surveys = append(surveys, *s)
	}
	return surveys, rows.Err()
}

// FindDraft returns the instructor's open draft dated on or after the given
// date. Only the first whitespace-separated token of instructorName is
// matched against the stored first name. When several drafts match, the one
// with the lowest ID wins. Returns nil when there is no match or the name is
// empty.
func FindDraft(ctx context.Context, db *sql.DB, instructorName string, onOrAfter model.Date) (*model.Survey, error) {
	fields := strings.Fields(instructorName)
	if len(fields) == 0 {
		return nil, nil
	}

	s, err := scanSurvey(db.QueryRowContext(ctx,
		`SELECT `+surveyColumns+` FROM shift_survey
		 WHERE instructor_first_name = ? AND status = ? AND date >= ?
		 ORDER BY id LIMIT 1`,
		fields[0], model.SurveyStatusDraft, onOrAfter,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding draft survey: %w", err)
	}
	return s, nil
}

// SaveDraft creates or overwrites a draft survey.
//
// With a non-zero ID the existing survey is overwritten; ErrNotFound is returned if
// it does not exist. Without an ID a new survey is inserted in the draft
// state. Either way every checklist, text and date field is replaced from
// the draft, so fields left out of the draft reset to false or empty. The
// status of an existing survey is left alone. Any other failure rolls back
// and is reported as ErrSaveFailed.
func SaveDraft(ctx context.Context, db *sql.DB, draft model.SurveyDraft) (*model.Survey, error) {
	date, err := draft.SurveyDate()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}
	lowStock, err := draft.LowStockJSON()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: beginning transaction: %w", ErrSaveFailed, err)
	}
	defer tx.Rollback()

	var id int64
	if draft.ID != nil && *draft.ID != 0 {
		id = *draft.ID
		existing, err := getSurvey(ctx, tx, id)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSaveFailed, err)
		}
		if existing == nil {
			return nil, fmt.Errorf("survey %d: %w", id, ErrNotFound)
		}
	} else {
		result, err := tx.ExecContext(ctx,
			`INSERT INTO shift_survey
			 (instructor_first_name, instructor_last_name, date, timestamp, status,
			  packing_notes, items_need_ordering, shift_notes, low_stock_items)
			 VALUES (?, ?, ?, ?, ?, '', '', '', '[]')`,
			draft.InstructorFirstName, draft.InstructorLastName, date, time.Now().UTC(), model.SurveyStatusDraft,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: creating survey: %w", ErrSaveFailed, err)
		}
		id, err = result.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("%w: getting survey id: %w", ErrSaveFailed, err)
		}
	}

	c := draft.Checklist
	_, err = tx.ExecContext(ctx,
		`UPDATE shift_survey SET
		 instructor_first_name = ?, instructor_last_name = ?, date = ?,
		 reviewed_task_list = ?, checked_in = ?,
		 used_correct_materials = ?, gathered_materials = ?, double_checked = ?, labeled_bins = ?, returned_bins = ?,
		 returned_all_items = ?, shelves_clean = ?, checked_low_stock = ?, logged_whiteboard = ?,
		 materials_correct_classroom = ?, took_picture = ?,
		 swept_floor = ?, removed_trash = ?, locked_storage = ?, checked_in_before_leaving = ?,
		 packing_notes = ?, items_need_ordering = ?, shift_notes = ?, low_stock_items = ?
		 WHERE id = ?`,
		draft.InstructorFirstName, draft.InstructorLastName, date,
		c.ReviewedTaskList, c.CheckedIn,
		c.UsedCorrectMaterials, c.GatheredMaterials, c.DoubleChecked, c.LabeledBins, c.ReturnedBins,
		c.ReturnedAllItems, c.ShelvesClean, c.CheckedLowStock, c.LoggedWhiteboard,
		c.MaterialsCorrectClassroom, c.TookPicture,
		c.SweptFloor, c.RemovedTrash, c.LockedStorage, c.CheckedInBeforeLeaving,
		draft.PackingNotes, draft.ItemsNeedOrdering, draft.ShiftNotes, lowStock,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: updating survey: %w", ErrSaveFailed, err)
	}

	saved, err := getSurvey(ctx, tx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: committing: %w", ErrSaveFailed, err)
	}
	return saved, nil
}

// CompleteSurvey marks a survey completed. Completing an already completed
// survey is accepted.
func CompleteSurvey(ctx context.Context, db *sql.DB, id int64) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	existing, err := getSurvey(ctx, tx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("survey %d: %w", id, ErrNotFound)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE shift_survey SET status = ? WHERE id = ?`,
		model.SurveyStatusCompleted, id,
	); err != nil {
		return fmt.Errorf("completing survey: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing survey completion: %w", err)
	}
	return nil
}
