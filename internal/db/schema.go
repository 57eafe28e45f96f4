package db

import (
	"database/sql"
	"fmt"
)

// sqliteSchema is the full SQLite schema.
var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS inventory_item (
    id               INTEGER PRIMARY KEY,
    name             TEXT NOT NULL,
    quantity         INTEGER NOT NULL DEFAULT 0,
    unit             TEXT NOT NULL DEFAULT 'units',
    activity         TEXT NOT NULL DEFAULT '',
    curriculum       TEXT NOT NULL DEFAULT '',
    location         TEXT NOT NULL DEFAULT '',
    min_quantity     INTEGER NOT NULL DEFAULT 10,
    notes            TEXT NOT NULL DEFAULT '',
    notes_updated_at DATETIME
)`,

	`CREATE TABLE IF NOT EXISTS shift_survey (
    id                          INTEGER PRIMARY KEY,
    instructor_first_name       TEXT NOT NULL,
    instructor_last_name        TEXT NOT NULL,
    date                        DATE NOT NULL,
    timestamp                   DATETIME NOT NULL,
    status                      TEXT NOT NULL DEFAULT 'draft' CHECK (status IN ('draft', 'completed')),
    reviewed_task_list          BOOLEAN NOT NULL DEFAULT 0,
    checked_in                  BOOLEAN NOT NULL DEFAULT 0,
    used_correct_materials      BOOLEAN NOT NULL DEFAULT 0,
    gathered_materials          BOOLEAN NOT NULL DEFAULT 0,
    double_checked              BOOLEAN NOT NULL DEFAULT 0,
    labeled_bins                BOOLEAN NOT NULL DEFAULT 0,
    returned_bins               BOOLEAN NOT NULL DEFAULT 0,
    packing_notes               TEXT NOT NULL DEFAULT '',
    returned_all_items          BOOLEAN NOT NULL DEFAULT 0,
    shelves_clean               BOOLEAN NOT NULL DEFAULT 0,
    checked_low_stock           BOOLEAN NOT NULL DEFAULT 0,
    logged_whiteboard           BOOLEAN NOT NULL DEFAULT 0,
    items_need_ordering         TEXT NOT NULL DEFAULT '',
    low_stock_items             TEXT NOT NULL DEFAULT '[]',
    materials_correct_classroom BOOLEAN NOT NULL DEFAULT 0,
    took_picture                BOOLEAN NOT NULL DEFAULT 0,
    swept_floor                 BOOLEAN NOT NULL DEFAULT 0,
    removed_trash               BOOLEAN NOT NULL DEFAULT 0,
    locked_storage              BOOLEAN NOT NULL DEFAULT 0,
    checked_in_before_leaving   BOOLEAN NOT NULL DEFAULT 0,
    shift_notes                 TEXT NOT NULL DEFAULT ''
)`,

	`CREATE INDEX IF NOT EXISTS idx_shift_survey_draft
    ON shift_survey(instructor_first_name, status, date)`,

	`CREATE TABLE IF NOT EXISTS admin_user (
    id            INTEGER PRIMARY KEY,
    username      TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
)`,
}

// mysqlSchema mirrors sqliteSchema. TEXT columns carry no defaults since
// every insert supplies them.
var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS inventory_item (
    id               BIGINT AUTO_INCREMENT PRIMARY KEY,
    name             VARCHAR(200) NOT NULL,
    quantity         INT NOT NULL DEFAULT 0,
    unit             VARCHAR(20) NOT NULL DEFAULT 'units',
    activity         VARCHAR(200) NOT NULL DEFAULT '',
    curriculum       VARCHAR(200) NOT NULL DEFAULT '',
    location         VARCHAR(100) NOT NULL DEFAULT '',
    min_quantity     INT NOT NULL DEFAULT 10,
    notes            TEXT NOT NULL,
    notes_updated_at DATETIME(6) NULL
) CHARACTER SET utf8mb4`,

	`CREATE TABLE IF NOT EXISTS shift_survey (
    id                          BIGINT AUTO_INCREMENT PRIMARY KEY,
    instructor_first_name       VARCHAR(200) NOT NULL,
    instructor_last_name        VARCHAR(200) NOT NULL,
    date                        DATE NOT NULL,
    timestamp                   DATETIME(6) NOT NULL,
    status                      VARCHAR(20) NOT NULL DEFAULT 'draft',
    reviewed_task_list          BOOLEAN NOT NULL DEFAULT FALSE,
    checked_in                  BOOLEAN NOT NULL DEFAULT FALSE,
    used_correct_materials      BOOLEAN NOT NULL DEFAULT FALSE,
    gathered_materials          BOOLEAN NOT NULL DEFAULT FALSE,
    double_checked              BOOLEAN NOT NULL DEFAULT FALSE,
    labeled_bins                BOOLEAN NOT NULL DEFAULT FALSE,
    returned_bins               BOOLEAN NOT NULL DEFAULT FALSE,
    packing_notes               TEXT NOT NULL,
    returned_all_items          BOOLEAN NOT NULL DEFAULT FALSE,
    shelves_clean               BOOLEAN NOT NULL DEFAULT FALSE,
    checked_low_stock           BOOLEAN NOT NULL DEFAULT FALSE,
    logged_whiteboard           BOOLEAN NOT NULL DEFAULT FALSE,
    items_need_ordering         TEXT NOT NULL,
    low_stock_items             TEXT NOT NULL,
    materials_correct_classroom BOOLEAN NOT NULL DEFAULT FALSE,
    took_picture                BOOLEAN NOT NULL DEFAULT FALSE,
    swept_floor                 BOOLEAN NOT NULL DEFAULT FALSE,
    removed_trash               BOOLEAN NOT NULL DEFAULT FALSE,
    locked_storage              BOOLEAN NOT NULL DEFAULT FALSE,
    checked_in_before_leaving   BOOLEAN NOT NULL DEFAULT FALSE,
    shift_notes                 TEXT NOT NULL,
    INDEX idx_shift_survey_draft (instructor_first_name, status, date),
    CHECK (status IN ('draft', 'completed'))
) CHARACTER SET utf8mb4`,

	`CREATE TABLE IF NOT EXISTS admin_user (
    id            BIGINT AUTO_INCREMENT PRIMARY KEY,
    username      VARCHAR(50) NOT NULL UNIQUE,
    password_hash VARCHAR(200) NOT NULL,
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
) CHARACTER SET utf8mb4`,
}

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	schema := sqliteSchema
	if DialectOf(db) == DialectMySQL {
		schema = mysqlSchema
	}

	for i, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("creating schema (statement %d): %w", i+1, err)
		}
	}
	return nil
}
