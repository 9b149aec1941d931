/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"fmt"

	"github.com/humaidq/labscan/pathology"
)

// SyncReferenceEntries upserts every entry of table into reference_entries
// and removes entries the table no longer has. The application never reads
// the copy back; it mirrors the active table for SQL queries over
// report_tests.
func SyncReferenceEntries(ctx context.Context, table *pathology.ReferenceTable) error {
	if pool == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	if table == nil {
		table = pathology.DefaultReferenceTable()
	}

	names := table.Names()
	logger.Infof("Syncing %d reference entries to database...", len(names))

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		_ = tx.Rollback(ctx)
	}()

	query := `
		INSERT INTO reference_entries (test_name, normal_min, normal_max, meaning, tips)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (test_name)
		DO UPDATE SET
			normal_min = EXCLUDED.normal_min,
			normal_max = EXCLUDED.normal_max,
			meaning = EXCLUDED.meaning,
			tips = EXCLUDED.tips,
			updated_at = now()
	`

	for _, name := range names {
		entry, _ := table.Lookup(name)

		if _, err := tx.Exec(ctx, query, name, entry.NormalMin, entry.NormalMax, entry.Meaning, entry.Tips); err != nil {
			return fmt.Errorf("failed to sync reference entry %s: %w", name, err)
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM reference_entries WHERE NOT (test_name = ANY($1))`, names); err != nil {
		return fmt.Errorf("failed to prune reference entries: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit reference entries: %w", err)
	}

	logger.Infof("Successfully synced %d reference entries", len(names))

	return nil
}
