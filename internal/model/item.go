package model

import (
	"encoding/json"
	"strings"
	"time"
)

// Item defaults applied on create.
const (
	DefaultUnit        = "units"
	DefaultMinQuantity = 10
)

// Units with their own low-stock threshold.
const UnitBoxes = "boxes"

// Low-stock thresholds: an item is low when its quantity is at or below the
// threshold for its unit.
const (
	LowStockBoxes = 10
	LowStockUnits = 50
)

// Item is a stockroom material tracked by quantity.
type Item struct {
	ID             int64      `json:"id"`
	Name           string     `json:"name"`
	Quantity       int        `json:"quantity"`
	Unit           string     `json:"unit"`
	Activity       string     `json:"activity"`
	Curriculum     string     `json:"curriculum"`
	Location       string     `json:"location"`
	MinQuantity    int        `json:"min_quantity"`
	Notes          string     `json:"notes"`
	NotesUpdatedAt *time.Time `json:"notes_updated_at"`
}

// IsLowStock reports whether the item is at or below its unit's threshold.
func (i Item) IsLowStock() bool {
	return IsLowStock(i.Quantity, i.Unit)
}

// ActivityTags returns the item's activity split into tags.
func (i Item) ActivityTags() []string {
	return ActivityTags(i.Activity)
}

// MarshalJSON renders the stored fields together with the derived
// is_low_stock and activity_tags fields.
func (i Item) MarshalJSON() ([]byte, error) {
	type stored Item
	return json.Marshal(struct {
		stored
		IsLowStock   bool     `json:"is_low_stock"`
		ActivityTags []string `json:"activity_tags"`
	}{
		stored:       stored(i),
		IsLowStock:   i.IsLowStock(),
		ActivityTags: i.ActivityTags(),
	})
}

// IsLowStock applies the unit-dependent threshold. Boxes are low at 10 or
// fewer, everything else at 50 or fewer. min_quantity is not consulted.
func IsLowStock(quantity int, unit string) bool {
	if unit == UnitBoxes {
		return quantity <= LowStockBoxes
	}
	return quantity <= LowStockUnits
}

// ActivityTags splits a comma-separated activity string. Tokens are kept
// exactly as stored (no trimming). An empty activity yields an empty slice.
func ActivityTags(activity string) []string {
	if activity == "" {
		return []string{}
	}
	return strings.Split(activity, ",")
}

// NewItem holds the fields accepted when creating an item. Nil pointers take
// the documented defaults.
type NewItem struct {
	Name        string  `json:"name"`
	Quantity    *int    `json:"quantity"`
	Unit        *string `json:"unit"`
	Activity    string  `json:"activity"`
	Curriculum  string  `json:"curriculum"`
	Location    string  `json:"location"`
	MinQuantity *int    `json:"min_quantity"`
	Notes       string  `json:"notes"`
}

// ItemPatch holds a partial update. Only non-nil fields are applied.
type ItemPatch struct {
	Name        *string `json:"name"`
	Quantity    *int    `json:"quantity"`
	Unit        *string `json:"unit"`
	Activity    *string `json:"activity"`
	Curriculum  *string `json:"curriculum"`
	Location    *string `json:"location"`
	MinQuantity *int    `json:"min_quantity"`
	Notes       *string `json:"notes"`
}

// UnmarshalJSON decodes a patch. A notes key that is present but null still
// counts as a notes write and clears the notes.
func (p *ItemPatch) UnmarshalJSON(data []byte) error {
	type fields ItemPatch
	var f fields
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	*p = ItemPatch(f)
	if _, ok := keys["notes"]; ok && p.Notes == nil {
		cleared := ""
		p.Notes = &cleared
	}
	return nil
}

// Apply copies the present fields onto item. It reports whether notes were
// written, in which case the caller stamps NotesUpdatedAt.
func (p ItemPatch) Apply(item *Item) (notesChanged bool) {
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.Quantity != nil {
		item.Quantity = *p.Quantity
	}
	if p.Unit != nil {
		item.Unit = *p.Unit
	}
	if p.Activity != nil {
		item.Activity = *p.Activity
	}
	if p.Curriculum != nil {
		item.Curriculum = *p.Curriculum
	}
	if p.Location != nil {
		item.Location = *p.Location
	}
	if p.MinQuantity != nil {
		item.MinQuantity = *p.MinQuantity
	}
	if p.Notes != nil {
		item.Notes = *p.Notes
		return true
	}
	return false
}
