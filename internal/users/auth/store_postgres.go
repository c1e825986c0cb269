// Copyright (c) 2026 NotesAI. All rights reserved.

package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cevheri/noteai/internal/platform/apperr"
	"github.com/cevheri/noteai/internal/platform/database/schema"
	"github.com/cevheri/noteai/internal/platform/dberr"
	"github.com/cevheri/noteai/pkg/uuid"
)

// # User Repository

// PostgresUserRepository implements the UserRepository interface using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

var userColumns = strings.Join(schema.UserAccount.Columns(), ", ")

func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Name,
		&user.Avatar,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	return user, err
}

/*
FindByID retrieves a user record by their unique ID.

Parameters:
  - context: context.Context
  - id: string (UUIDv7)

Returns:
  - *User: Hydrated account entity
  - error: NotFound or execution errors
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	// A malformed id cannot name an account.
	if !uuid.IsValid(id) {
		return nil, apperr.NotFound("User")
	}

	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1",
		userColumns, schema.UserAccount.Table, schema.UserAccount.ID)

	user, err := scanUser(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "User")
	}
	return user, nil
}

/*
FindByEmail retrieves a user record by email, matched on lower(email).

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *User: Hydrated account entity
  - error: NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE lower(%s) = lower($1)",
		userColumns, schema.UserAccount.Table, schema.UserAccount.Email)

	user, err := scanUser(repository.pool.QueryRow(context, query, strings.TrimSpace(email)))
	if err != nil {
		return nil, dberr.Wrap(err, "User")
	}
	return user, nil
}

/*
Create persists a new user record into the users.account table.

The unique index on lower(email) turns a duplicate into a Conflict.

Parameters:
  - context: context.Context
  - user: *User (Entity to persist)

Returns:
  - error: Conflict or connectivity errors
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)",
		schema.UserAccount.Table, userColumns)

	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.Name,
		user.Avatar,
		user.Role,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if dberr.IsUniqueViolation(err) {
		return dberr.Wrap(err, "Email")
	}
	return dberr.Wrap(err, "User")
}

/*
Update persists changes to a user's mutable fields.

Parameters:
  - context: context.Context
  - user: *User

Returns:
  - error: NotFound or update failures
*/
func (repository *PostgresUserRepository) Update(context context.Context, user *User) error {
	query := fmt.Sprintf("UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = $5 WHERE %s = $1",
		schema.UserAccount.Table,
		schema.UserAccount.Name,
		schema.UserAccount.AvatarURL,
		schema.UserAccount.Role,
		schema.UserAccount.UpdatedAt,
		schema.UserAccount.ID,
	)

	tag, err := repository.pool.Exec(context, query, user.ID, user.Name, user.Avatar, user.Role, user.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "User")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "User")
	}
	return nil
}

/*
Delete removes the account. Sessions, notes, categories and tags cascade.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - bool: Whether a row was removed
  - error: Execution errors
*/
func (repository *PostgresUserRepository) Delete(context context.Context, id string) (bool, error) {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", schema.UserAccount.Table, schema.UserAccount.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return false, dberr.Wrap(err, "User")
	}
	return tag.RowsAffected() > 0, nil
}

/*
List returns a window of accounts matching the search, newest first.

Parameters:
  - context: context.Context
  - query: UserQuery

Returns:
  - []*User: The requested window
  - int: Total matches
  - error: Execution errors
*/
func (repository *PostgresUserRepository) List(context context.Context, query UserQuery) ([]*User, int, error) {
	where := "TRUE"
	args := []any{}
	if search := strings.TrimSpace(query.Search); search != "" {
		args = append(args, "%"+search+"%")
		where = fmt.Sprintf("(%s ILIKE $1 OR %s ILIKE $1)", schema.UserAccount.Name, schema.UserAccount.Email)
	}

	var total int
	countQuery := fmt.Sprintf("SELECT count(*) FROM %s WHERE %s", schema.UserAccount.Table, where)
	if err := repository.pool.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "User")
	}

	listQuery := fmt.Sprintf("SELECT %s FROM %s WHERE %s ORDER BY %s DESC, %s DESC LIMIT $%d OFFSET $%d",
		userColumns, schema.UserAccount.Table, where,
		schema.UserAccount.CreatedAt, schema.UserAccount.ID,
		len(args)+1, len(args)+2,
	)

	rows, err := repository.pool.Query(context, listQuery, append(args, query.Limit, query.Offset)...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "User")
	}
	defer rows.Close()

	users := []*User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "User")
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "User")
	}

	return users, total, nil
}

// CountCreatedSince counts accounts with createdat >= since.
func (repository *PostgresUserRepository) CountCreatedSince(context context.Context, since time.Time) (int, error) {
	query := fmt.Sprintf("SELECT count(*) FROM %s WHERE %s >= $1", schema.UserAccount.Table, schema.UserAccount.CreatedAt)

	var total int
	if err := repository.pool.QueryRow(context, query, since).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, "User")
	}
	return total, nil
}

// # Session Repository

// PostgresSessionRepository implements the SessionRepository interface.
type PostgresSessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository creates a new PostgreSQL implementation of SessionRepository.
func NewSessionRepository(pool *pgxpool.Pool) *PostgresSessionRepository {
	return &PostgresSessionRepository{pool: pool}
}

var sessionColumns = strings.Join(schema.UserSession.Columns(), ", ")

/*
Create persists a new session record into the users.session table.

Parameters:
  - context: context.Context
  - session: *Session

Returns:
  - error: Storage failures
*/
func (repository *PostgresSessionRepository) Create(context context.Context, session *Session) error {
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6)",
		schema.UserSession.Table, sessionColumns)

	_, err := repository.pool.Exec(context, query,
		session.ID,
		session.UserID,
		session.IPAddress,
		session.UserAgent,
		session.ExpiresAt,
		session.CreatedAt,
	)
	return dberr.Wrap(err, "Session")
}

/*
FindByID retrieves a session by id, expired or not.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Session: Hydrated session metadata
  - error: NotFound or execution errors
*/
func (repository *PostgresSessionRepository) FindByID(context context.Context, id string) (*Session, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1",
		sessionColumns, schema.UserSession.Table, schema.UserSession.ID)

	session := &Session{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&session.ID,
		&session.UserID,
		&session.IPAddress,
		&session.UserAgent,
		&session.ExpiresAt,
		&session.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Session")
	}
	return session, nil
}

// Delete removes one session row.
func (repository *PostgresSessionRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", schema.UserSession.Table, schema.UserSession.ID)
	_, err := repository.pool.Exec(context, query, id)
	return dberr.Wrap(err, "Session")
}

// DeleteByUser removes every session row of a user.
func (repository *PostgresSessionRepository) DeleteByUser(context context.Context, userID string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", schema.UserSession.Table, schema.UserSession.UserID)
	_, err := repository.pool.Exec(context, query, userID)
	return dberr.Wrap(err, "Session")
}

// CountActiveUsers counts distinct users with expiresat > now.
func (repository *PostgresSessionRepository) CountActiveUsers(context context.Context, now time.Time) (int, error) {
	query := fmt.Sprintf("SELECT count(DISTINCT %s) FROM %s WHERE %s > $1",
		schema.UserSession.UserID, schema.UserSession.Table, schema.UserSession.ExpiresAt)

	var total int
	if err := repository.pool.QueryRow(context, query, now).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, "Session")
	}
	return total, nil
}
