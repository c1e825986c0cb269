// Copyright (c) 2026 NotesAI. All rights reserved.

package notes

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cevheri/noteai/internal/platform/database/schema"
	"github.com/cevheri/noteai/internal/platform/dberr"
	"github.com/cevheri/noteai/internal/platform/postgres"
)

// # Notes

// PostgresNoteRepository implements NoteRepository against notes.note.
//
// Ids are allocated as max+1 under a table lock held for the insert's
// transaction, so concurrent creates serialize instead of colliding.
type PostgresNoteRepository struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// NewPostgresNoteRepository creates a pgx-backed NoteRepository.
func NewPostgresNoteRepository(pool *pgxpool.Pool) *PostgresNoteRepository {
	return &PostgresNoteRepository{pool: pool, now: time.Now}
}

var noteColumns = strings.Join(schema.Note.Columns(), ", ")

func scanNote(row pgx.Row) (*Note, error) {
	note := &Note{}
	err := row.Scan(
		&note.ID,
		&note.UserID,
		&note.CategoryID,
		&note.Title,
		&note.Content,
		&note.Tags,
		&note.IsFavorite,
		&note.IsArchived,
		&note.IsDeleted,
		&note.CreatedAt,
		&note.UpdatedAt,
	)
	if note.Tags == nil {
		note.Tags = []int64{}
	}
	return note, err
}

func tagsOrEmpty(tags []int64) []int64 {
	if tags == nil {
		return []int64{}
	}
	return tags
}

// filterClause renders filter as a predicate; $1 is always the owner.
func filterClause(filter Filter) (string, []any) {
	n := schema.Note
	live := fmt.Sprintf("NOT %s AND NOT %s", n.IsArchived, n.IsDeleted)

	switch filter.Selector {
	case SelectSearch:
		return fmt.Sprintf("%s AND (strpos(lower(%s), lower($2)) > 0 OR strpos(lower(%s), lower($2)) > 0)",
			live, n.Title, n.Content), []any{filter.Search}
	case SelectFavorites:
		return fmt.Sprintf("%s AND %s", live, n.IsFavorite), nil
	case SelectArchived:
		return fmt.Sprintf("%s AND NOT %s", n.IsArchived, n.IsDeleted), nil
	case SelectTrash:
		return n.IsDeleted, nil
	case SelectCategory:
		return fmt.Sprintf("%s AND %s = $2", live, n.CategoryID), []any{filter.CategoryID}
	case SelectTag:
		return fmt.Sprintf("%s AND $2 = ANY(%s)", live, n.TagIDs), []any{filter.TagID}
	default:
		return live, nil
	}
}

/*
List returns the owner's notes selected by filter.

Parameters:
  - context: context.Context
  - userID: string
  - filter: Filter

Returns:
  - []*Note: Matches in listing order
  - error: Execution errors
*/
func (repository *PostgresNoteRepository) List(context context.Context, userID string, filter Filter) ([]*Note, error) {
	where, extra := filterClause(filter)
	args := append([]any{userID}, extra...)

	order := fmt.Sprintf("%s ASC", schema.Note.ID)
	if filter.Selector == SelectRecent {
		order = fmt.Sprintf("%s DESC, %s DESC", schema.Note.UpdatedAt, schema.Note.ID)
	}

	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1 AND %s ORDER BY %s",
		noteColumns, schema.Note.Table, schema.Note.UserID, where, order)
	if limit := filter.EffectiveLimit(); limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "Note")
	}
	defer rows.Close()

	notes := make([]*Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "Note")
		}
		notes = append(notes, note)
	}
	return notes, dberr.Wrap(rows.Err(), "Note")
}

func (repository *PostgresNoteRepository) FindByID(context context.Context, id int64) (*Note, error) {
	return findNote(context, repository.pool, id, false)
}

func findNote(context context.Context, querier postgres.Querier, id int64, forUpdate bool) (*Note, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1", noteColumns, schema.Note.Table, schema.Note.ID)
	if forUpdate {
		query += " FOR UPDATE"
	}

	note, err := scanNote(querier.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "Note")
	}
	return note, nil
}

/*
Create inserts a note with id = max+1.

Parameters:
  - context: context.Context
  - draft: NoteDraft

Returns:
  - *Note: The stored row
  - error: ValidationError on a dangling category, or execution errors
*/
func (repository *PostgresNoteRepository) Create(context context.Context, draft NoteDraft) (*Note, error) {
	n := schema.Note
	var created *Note

	err := postgres.WithTx(context, repository.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(context, fmt.Sprintf("LOCK TABLE %s IN SHARE ROW EXCLUSIVE MODE", n.Table)); err != nil {
			return err
		}

		query := fmt.Sprintf(`
			INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
			SELECT COALESCE(MAX(%s), 0) + 1, $1, $2, $3, $4, $5, $6, $6 FROM %s
			RETURNING %s`,
			n.Table, n.ID, n.UserID, n.CategoryID, n.Title, n.Content, n.TagIDs, n.CreatedAt, n.UpdatedAt,
			n.ID, n.Table,
			noteColumns,
		)

		var err error
		created, err = scanNote(tx.QueryRow(context, query,
			draft.UserID, draft.CategoryID, draft.Title, draft.Content, tagsOrEmpty(draft.Tags), repository.now()))
		return err
	})
	if err != nil {
		return nil, dberr.Wrap(err, "Note")
	}
	return created, nil
}

/*
Update locks the row, merges patch and writes every mutable column back.

Parameters:
  - context: context.Context
  - id: int64
  - patch: NotePatch

Returns:
  - *Note: The updated row
  - error: NotFound or execution errors
*/
func (repository *PostgresNoteRepository) Update(context context.Context, id int64, patch NotePatch) (*Note, error) {
	n := schema.Note
	var updated *Note

	err := postgres.WithTx(context, repository.pool, func(tx pgx.Tx) error {
		note, err := findNote(context, tx, id, true)
		if err != nil {
			return err
		}
		patch.Apply(note, repository.now())

		query := fmt.Sprintf(`
			UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8, %s = $9
			WHERE %s = $1
			RETURNING %s`,
			n.Table, n.Title, n.Content, n.CategoryID, n.TagIDs, n.IsFavorite, n.IsArchived, n.IsDeleted, n.UpdatedAt,
			n.ID,
			noteColumns,
		)

		updated, err = scanNote(tx.QueryRow(context, query, id,
			note.Title, note.Content, note.CategoryID, tagsOrEmpty(note.Tags),
			note.IsFavorite, note.IsArchived, note.IsDeleted, note.UpdatedAt))
		return err
	})
	if err != nil {
		return nil, dberr.Wrap(err, "Note")
	}
	return updated, nil
}

func (repository *PostgresNoteRepository) Delete(context context.Context, id int64, permanent bool) (bool, error) {
	n := schema.Note

	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", n.Table, n.ID)
	args := []any{id}
	if !permanent {
		query = fmt.Sprintf("UPDATE %s SET %s = TRUE, %s = $2 WHERE %s = $1", n.Table, n.IsDeleted, n.UpdatedAt, n.ID)
		args = append(args, repository.now())
	}

	tag, err := repository.pool.Exec(context, query, args...)
	if err != nil {
		return false, dberr.Wrap(err, "Note")
	}
	return tag.RowsAffected() > 0, nil
}

func (repository *PostgresNoteRepository) CountByOwner(context context.Context, userID string) (int, error) {
	return repository.count(context, fmt.Sprintf("%s = $1", schema.Note.UserID), userID)
}

func (repository *PostgresNoteRepository) Count(context context.Context) (int, error) {
	return repository.count(context, "TRUE")
}

func (repository *PostgresNoteRepository) CountCreatedSince(context context.Context, since time.Time) (int, error) {
	return repository.count(context, fmt.Sprintf("%s >= $1", schema.Note.CreatedAt), since)
}

func (repository *PostgresNoteRepository) count(context context.Context, where string, args ...any) (int, error) {
	var total int
	query := fmt.Sprintf("SELECT count(*) FROM %s WHERE %s", schema.Note.Table, where)
	if err := repository.pool.QueryRow(context, query, args...).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, "Note")
	}
	return total, nil
}

func (repository *PostgresNoteRepository) DeleteByOwner(context context.Context, userID string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", schema.Note.Table, schema.Note.UserID)
	_, err := repository.pool.Exec(context, query, userID)
	return dberr.Wrap(err, "Note")
}

// # Categories

// PostgresCategoryRepository implements CategoryRepository against notes.category.
//
// Reference nulling is delegated to the ON DELETE SET NULL foreign key.
type PostgresCategoryRepository struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// NewPostgresCategoryRepository creates a pgx-backed CategoryRepository.
func NewPostgresCategoryRepository(pool *pgxpool.Pool) *PostgresCategoryRepository {
	return &PostgresCategoryRepository{pool: pool, now: time.Now}
}

var categoryColumns = strings.Join(schema.NoteCategory.Columns(), ", ")

func scanCategory(row pgx.Row) (*Category, error) {
	category := &Category{}
	err := row.Scan(&category.ID, &category.UserID, &category.Name, &category.Color, &category.Icon, &category.CreatedAt)
	return category, err
}

func (repository *PostgresCategoryRepository) ListByOwner(context context.Context, userID string) ([]*Category, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1 ORDER BY %s ASC",
		categoryColumns, schema.NoteCategory.Table, schema.NoteCategory.UserID, schema.NoteCategory.ID)

	rows, err := repository.pool.Query(context, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "Category")
	}
	defer rows.Close()

	categories := make([]*Category, 0)
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "Category")
		}
		categories = append(categories, category)
	}
	return categories, dberr.Wrap(rows.Err(), "Category")
}

func (repository *PostgresCategoryRepository) FindByID(context context.Context, id int64) (*Category, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1",
		categoryColumns, schema.NoteCategory.Table, schema.NoteCategory.ID)

	category, err := scanCategory(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "Category")
	}
	return category, nil
}

func (repository *PostgresCategoryRepository) Create(context context.Context, draft CategoryDraft) (*Category, error) {
	c := schema.NoteCategory
	var created *Category

	err := postgres.WithTx(context, repository.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(context, fmt.Sprintf("LOCK TABLE %s IN SHARE ROW EXCLUSIVE MODE", c.Table)); err != nil {
			return err
		}

		query := fmt.Sprintf(`
			INSERT INTO %s (%s, %s, %s, %s, %s, %s)
			SELECT COALESCE(MAX(%s), 0) + 1, $1, $2, $3, $4, $5 FROM %s
			RETURNING %s`,
			c.Table, c.ID, c.UserID, c.Name, c.Color, c.Icon, c.CreatedAt,
			c.ID, c.Table,
			categoryColumns,
		)

		var err error
		created, err = scanCategory(tx.QueryRow(context, query, draft.UserID, draft.Name, draft.Color, draft.Icon, repository.now()))
		return err
	})
	if err != nil {
		return nil, dberr.Wrap(err, "Category")
	}
	return created, nil
}

func (repository *PostgresCategoryRepository) Delete(context context.Context, id int64) (bool, error) {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", schema.NoteCategory.Table, schema.NoteCategory.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return false, dberr.Wrap(err, "Category")
	}
	return tag.RowsAffected() > 0, nil
}

func (repository *PostgresCategoryRepository) DeleteByOwner(context context.Context, userID string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", schema.NoteCategory.Table, schema.NoteCategory.UserID)
	_, err := repository.pool.Exec(context, query, userID)
	return dberr.Wrap(err, "Category")
}

// # Tags

// PostgresTagRepository implements TagRepository against notes.tag.
type PostgresTagRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresTagRepository creates a pgx-backed TagRepository.
func NewPostgresTagRepository(pool *pgxpool.Pool) *PostgresTagRepository {
	return &PostgresTagRepository{pool: pool}
}

var tagColumns = strings.Join(schema.NoteTag.Columns(), ", ")

func scanTag(row pgx.Row) (*Tag, error) {
	tag := &Tag{}
	err := row.Scan(&tag.ID, &tag.UserID, &tag.Name, &tag.Slug, &tag.Color)
	return tag, err
}

func (repository *PostgresTagRepository) ListByOwner(context context.Context, userID string) ([]*Tag, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1 ORDER BY %s ASC",
		tagColumns, schema.NoteTag.Table, schema.NoteTag.UserID, schema.NoteTag.ID)

	rows, err := repository.pool.Query(context, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "Tag")
	}
	defer rows.Close()

	tags := make([]*Tag, 0)
	for rows.Next() {
		tag, err := scanTag(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "Tag")
		}
		tags = append(tags, tag)
	}
	return tags, dberr.Wrap(rows.Err(), "Tag")
}

func (repository *PostgresTagRepository) FindByID(context context.Context, id int64) (*Tag, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1", tagColumns, schema.NoteTag.Table, schema.NoteTag.ID)

	tag, err := scanTag(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "Tag")
	}
	return tag, nil
}

/*
Create inserts a tag with id = max+1.

The (userid, slug) unique index turns a duplicate name into a Conflict.

Parameters:
  - context: context.Context
  - draft: TagDraft

Returns:
  - *Tag: The stored row
  - error: Conflict or execution errors
*/
func (repository *PostgresTagRepository) Create(context context.Context, draft TagDraft) (*Tag, error) {
	t := schema.NoteTag
	var created *Tag

	err := postgres.WithTx(context, repository.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(context, fmt.Sprintf("LOCK TABLE %s IN SHARE ROW EXCLUSIVE MODE", t.Table)); err != nil {
			return err
		}

		query := fmt.Sprintf(`
			INSERT INTO %s (%s, %s, %s, %s, %s)
			SELECT COALESCE(MAX(%s), 0) + 1, $1, $2, $3, $4 FROM %s
			RETURNING %s`,
			t.Table, t.ID, t.UserID, t.Name, t.Slug, t.Color,
			t.ID, t.Table,
			tagColumns,
		)

		var err error
		created, err = scanTag(tx.QueryRow(context, query, draft.UserID, draft.Name, draft.Slug, draft.Color))
		return err
	})
	if err != nil {
		return nil, dberr.Wrap(err, "Tag")
	}
	return created, nil
}

/*
Delete prunes the tag from every note and removes it, in one transaction.

Parameters:
  - context: context.Context
  - id: int64

Returns:
  - bool: Whether the tag existed
  - error: Execution errors
*/
func (repository *PostgresTagRepository) Delete(context context.Context, id int64) (bool, error) {
	var existed bool

	err := postgres.WithTx(context, repository.pool, func(tx pgx.Tx) error {
		prune := fmt.Sprintf("UPDATE %s SET %s = array_remove(%s, $1) WHERE $1 = ANY(%s)",
			schema.Note.Table, schema.Note.TagIDs, schema.Note.TagIDs, schema.Note.TagIDs)
		if _, err := tx.Exec(context, prune, id); err != nil {
			return err
		}

		remove := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", schema.NoteTag.Table, schema.NoteTag.ID)
		tag, err := tx.Exec(context, remove, id)
		if err != nil {
			return err
		}
		existed = tag.RowsAffected() > 0
		return nil
	})
	if err != nil {
		return false, dberr.Wrap(err, "Tag")
	}
	return existed, nil
}

// DeleteByOwner removes the owner's tags after emptying the tag lists of
// the owner's notes, the only notes allowed to reference them.
func (repository *PostgresTagRepository) DeleteByOwner(context context.Context, userID string) error {
	err := postgres.WithTx(context, repository.pool, func(tx pgx.Tx) error {
		empty := fmt.Sprintf("UPDATE %s SET %s = '{}' WHERE %s = $1", schema.Note.Table, schema.Note.TagIDs, schema.Note.UserID)
		if _, err := tx.Exec(context, empty, userID); err != nil {
			return err
		}

		remove := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", schema.NoteTag.Table, schema.NoteTag.UserID)
		_, err := tx.Exec(context, remove, userID)
		return err
	})
	return dberr.Wrap(err, "Tag")
}
