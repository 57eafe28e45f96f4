package model

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Survey statuses. A survey moves from draft to completed and never back.
const (
	SurveyStatusDraft     = "draft"
	SurveyStatusCompleted = "completed"
)

// DateLayout is the wire and storage format of a survey date.
const DateLayout = "2006-01-02"

// Date is a calendar date without a time of day.
type Date struct {
	time.Time
}

// NewDate truncates t to its calendar date in t's location.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current UTC date.
func Today() Date {
	return NewDate(time.Now().UTC())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{t}, nil
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Format(DateLayout)
}

// MarshalJSON renders YYYY-MM-DD, or null for the zero date.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts YYYY-MM-DD or null.
func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value stores the date as YYYY-MM-DD text, which both engines accept for a
// DATE column and which orders correctly as a string.
func (d Date) Value() (driver.Value, error) {
	return d.String(), nil
}

// Scan accepts the representations the drivers hand back for a DATE column.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d = NewDate(v)
		return nil
	case string:
		return d.scanText(v)
	case []byte:
		return d.scanText(string(v))
	case nil:
		*d = Date{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}

func (d *Date) scanText(s string) error {
	if len(s) < len(DateLayout) {
		return fmt.Errorf("invalid date %q", s)
	}
	parsed, err := ParseDate(s[:len(DateLayout)])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Checklist is the full set of yes/no items an instructor ticks off during a
// shift, grouped by phase.
type Checklist struct {
	// Check-in.
	ReviewedTaskList bool `json:"reviewed_task_list"`
	CheckedIn        bool `json:"checked_in"`

	// Packing.
	UsedCorrectMaterials bool `json:"used_correct_materials"`
	GatheredMaterials    bool `json:"gathered_materials"`
	DoubleChecked        bool `json:"double_checked"`
	LabeledBins          bool `json:"labeled_bins"`
	ReturnedBins         bool `json:"returned_bins"`

	// Return.
	ReturnedAllItems          bool `json:"returned_all_items"`
	ShelvesClean              bool `json:"shelves_clean"`
	CheckedLowStock           bool `json:"checked_low_stock"`
	LoggedWhiteboard          bool `json:"logged_whiteboard"`
	MaterialsCorrectClassroom bool `json:"materials_correct_classroom"`
	TookPicture               bool `json:"took_picture"`

	// Close-out.
	SweptFloor             bool `json:"swept_floor"`
	RemovedTrash           bool `json:"removed_trash"`
	LockedStorage          bool `json:"locked_storage"`
	CheckedInBeforeLeaving bool `json:"checked_in_before_leaving"`
}

// Survey is an end-of-shift checklist filled in by an instructor.
type Survey struct {
	ID                  int64      `json:"id"`
	InstructorFirstName string     `json:"instructor_first_name"`
	InstructorLastName  string     `json:"instructor_last_name"`
	Date                Date       `json:"date"`
	Timestamp           *time.Time `json:"timestamp"`
	Status              string     `json:"status"`

	Checklist

	PackingNotes      string `json:"packing_notes"`
	ItemsNeedOrdering string `json:"items_need_ordering"`
	ShiftNotes        string `json:"shift_notes"`

	// LowStockItems is the JSON text captured at save time. It is rendered
	// as a string, not re-parsed.
	LowStockItems string `json:"low_stock_items"`
}

// SurveyDraft is the payload of a draft save. Every field replaces the
// stored value; absent fields fall back to zero values.
type SurveyDraft struct {
	ID                  *int64 `json:"id"`
	InstructorFirstName string `json:"instructor_first_name"`
	InstructorLastName  string `json:"instructor_last_name"`
	Date                string `json:"date"`

	Checklist

	PackingNotes      string          `json:"packing_notes"`
	ItemsNeedOrdering string          `json:"items_need_ordering"`
	ShiftNotes        string          `json:"shift_notes"`
	LowStockItems     json.RawMessage `json:"low_stock_items"`
}

// ErrUnknownSurveyID is returned when a draft names its survey with a
// string that is not an integer. No stored survey can have such an id.
var ErrUnknownSurveyID = errors.New("unknown survey id")

// UnmarshalJSON decodes a draft. The id may be a number or a numeric
// string; null, 0 and "" all mean a new survey.
func (d *SurveyDraft) UnmarshalJSON(data []byte) error {
	type fields SurveyDraft
	var aux struct {
		fields
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	id, err := parseSurveyID(aux.ID)
	if err != nil {
		return err
	}
	*d = SurveyDraft(aux.fields)
	d.ID = id
	return nil
}

func parseSurveyID(raw json.RawMessage) (*int64, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil, nil
		}
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSurveyID, s)
		}
		return &id, nil
	}

	var id int64
	if err := json.Unmarshal(raw, &id); err != nil {
		return nil, fmt.Errorf("invalid survey id %s: %w", raw, err)
	}
	return &id, nil
}

// SurveyDate returns the draft's date, or today when none was given.
func (d SurveyDraft) SurveyDate() (Date, error) {
	if d.Date == "" {
		return Today(), nil
	}
	return ParseDate(d.Date)
}

// LowStockJSON returns the compacted low_stock_items text, "[]" when absent.
func (d SurveyDraft) LowStockJSON() (string, error) {
	if len(d.LowStockItems) == 0 {
		return "[]", nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, d.LowStockItems); err != nil {
		return "", fmt.Errorf("invalid low_stock_items: %w", err)
	}
	return buf.String(), nil
}
