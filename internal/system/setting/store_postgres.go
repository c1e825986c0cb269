// Copyright (c) 2026 NotesAI. All rights reserved.

package setting

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cevheri/noteai/internal/platform/database/schema"
	"github.com/cevheri/noteai/internal/platform/dberr"
)

// PostgresRepository stores documents as JSONB rows in system.setting.
type PostgresRepository struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// NewPostgresRepository creates a pgx-backed Repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool, now: time.Now}
}

/*
Get loads and decodes a document.

Parameters:
  - context: context.Context
  - key: string
  - target: any (pointer to decode into)

Returns:
  - error: NotFound, decode or execution errors
*/
func (repository *PostgresRepository) Get(context context.Context, key string, target any) error {
	s := schema.SystemSetting
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1", s.Value, s.Table, s.Key)

	var payload []byte
	if err := repository.pool.QueryRow(context, query, key).Scan(&payload); err != nil {
		return dberr.Wrap(err, "Setting")
	}
	if err := json.Unmarshal(payload, target); err != nil {
		return fmt.Errorf("postgres_setting_unmarshal_failed: %w", err)
	}
	return nil
}

// Put upserts a document.
func (repository *PostgresRepository) Put(context context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("postgres_setting_marshal_failed: %w", err)
	}

	s := schema.SystemSetting
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3)
		ON CONFLICT (%s) DO UPDATE SET %s = EXCLUDED.%s, %s = EXCLUDED.%s`,
		s.Table, s.Key, s.Value, s.UpdatedAt,
		s.Key, s.Value, s.Value, s.UpdatedAt, s.UpdatedAt,
	)

	if _, err := repository.pool.Exec(context, query, key, payload, repository.now()); err != nil {
		return dberr.Wrap(err, "Setting")
	}
	return nil
}
