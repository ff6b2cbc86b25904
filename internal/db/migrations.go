package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'plate_source') THEN
			CREATE TYPE plate_source AS ENUM ('DIRECT', 'MERGED', 'OVERLAY');
		END IF;
	END
	$$;`,
	`CREATE TABLE IF NOT EXISTS recognitions (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		image_ref TEXT,
		requested_by UUID,
		fragment_count INTEGER NOT NULL DEFAULT 0,
		plate_count INTEGER NOT NULL DEFAULT 0,
		include_low_confidence BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_recognitions_requested_by ON recognitions (requested_by);`,
	`CREATE INDEX IF NOT EXISTS idx_recognitions_created_at ON recognitions (created_at);`,
	`CREATE TABLE IF NOT EXISTS plate_reads (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		recognition_id UUID NOT NULL REFERENCES recognitions(id) ON DELETE CASCADE,
		plate_number VARCHAR(32) NOT NULL,
		normalized_plate VARCHAR(32) NOT NULL,
		confidence DOUBLE PRECISION NOT NULL,
		is_low_confidence BOOLEAN NOT NULL DEFAULT FALSE,
		source plate_source NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_plate_reads_recognition_id ON plate_reads (recognition_id);`,
	`CREATE INDEX IF NOT EXISTS idx_plate_reads_normalized_plate ON plate_reads (normalized_plate);`,
	`CREATE INDEX IF NOT EXISTS idx_plate_reads_created_at ON plate_reads (created_at);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
