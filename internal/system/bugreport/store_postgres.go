// Copyright (c) 2026 NotesAI. All rights reserved.

package bugreport

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

// PostgresRepository implements Repository against system.bugreport.
type PostgresRepository struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// NewPostgresRepository creates a pgx-backed Repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool, now: time.Now}
}

var reportColumns = strings.Join(schema.SystemBugReport.Columns(), ", ")

func scanReport(row pgx.Row) (*BugReport, error) {
	report := &BugReport{}
	err := row.Scan(
		&report.ID,
		&report.Title,
		&report.Description,
		&report.Type,
		&report.Severity,
		&report.Status,
		&report.UserID,
		&report.UserEmail,
		&report.URL,
		&report.UserAgent,
		&report.CreatedAt,
		&report.UpdatedAt,
	)
	return report, err
}

/*
Create inserts a report with id = max+1 under a table lock.

Parameters:
  - context: context.Context
  - draft: Draft

Returns:
  - *BugReport: The stored row
  - error: Execution errors
*/
func (repository *PostgresRepository) Create(context context.Context, draft Draft) (*BugReport, error) {
	b := schema.SystemBugReport
	var created *BugReport

	err := postgres.WithTx(context, repository.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(context, fmt.Sprintf("LOCK TABLE %s IN SHARE ROW EXCLUSIVE MODE", b.Table)); err != nil {
			return err
		}

		query := fmt.Sprintf(`
			INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
			SELECT COALESCE(MAX(%s), 0) + 1, $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10 FROM %s
			RETURNING %s`,
			b.Table, b.ID, b.Title, b.Description, b.Type, b.Severity, b.Status,
			b.UserID, b.UserEmail, b.URL, b.UserAgent, b.CreatedAt, b.UpdatedAt,
			b.ID, b.Table,
			reportColumns,
		)

		var err error
		created, err = scanReport(tx.QueryRow(context, query,
			draft.Title, draft.Description, draft.Type, draft.Severity, StatusOpen,
			draft.UserID, draft.UserEmail, draft.URL, draft.UserAgent, repository.now()))
		return err
	})
	if err != nil {
		return nil, dberr.Wrap(err, "Bug report")
	}
	return created, nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*BugReport, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1",
		reportColumns, schema.SystemBugReport.Table, schema.SystemBugReport.ID)

	report, err := scanReport(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "Bug report")
	}
	return report, nil
}

/*
List returns a filtered window, newest first, and the total match count.

Parameters:
  - context: context.Context
  - query: Query

Returns:
  - []*BugReport: The requested window
  - int: Total matches
  - error: Execution errors
*/
func (repository *PostgresRepository) List(context context.Context, query Query) ([]*BugReport, int, error) {
	b := schema.SystemBugReport

	conditions := []string{"TRUE"}
	args := []any{}
	if query.Status != "" {
		args = append(args, query.Status)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", b.Status, len(args)))
	}
	if query.Severity != "" {
		args = append(args, query.Severity)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", b.Severity, len(args)))
	}
	where := strings.Join(conditions, " AND ")

	var total int
	countQuery := fmt.Sprintf("SELECT count(*) FROM %s WHERE %s", b.Table, where)
	if err := repository.pool.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "Bug report")
	}

	listQuery := fmt.Sprintf("SELECT %s FROM %s WHERE %s ORDER BY %s DESC, %s DESC LIMIT $%d OFFSET $%d",
		reportColumns, b.Table, where, b.CreatedAt, b.ID, len(args)+1, len(args)+2)

	rows, err := repository.pool.Query(context, listQuery, append(args, query.Limit, query.Offset)...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Bug report")
	}
	defer rows.Close()

	reports := make([]*BugReport, 0)
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "Bug report")
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "Bug report")
	}
	return reports, total, nil
}

func (repository *PostgresRepository) UpdateStatus(context context.Context, id int64, status Status) (*BugReport, error) {
	b := schema.SystemBugReport
	query := fmt.Sprintf("UPDATE %s SET %s = $2, %s = $3 WHERE %s = $1 RETURNING %s",
		b.Table, b.Status, b.UpdatedAt, b.ID, reportColumns)

	report, err := scanReport(repository.pool.QueryRow(context, query, id, status, repository.now()))
	if err != nil {
		return nil, dberr.Wrap(err, "Bug report")
	}
	return report, nil
}

func (repository *PostgresRepository) Delete(context context.Context, id int64) (bool, error) {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", schema.SystemBugReport.Table, schema.SystemBugReport.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return false, dberr.Wrap(err, "Bug report")
	}
	return tag.RowsAffected() > 0, nil
}

func (repository *PostgresRepository) CountByStatus(context context.Context) (map[Status]int, error) {
	histogram := make(map[Status]int, len(Statuses))
	for _, status := range Statuses {
		histogram[status] = 0
	}

	err := repository.groupCount(context, schema.SystemBugReport.Status, func(key string, count int) {
		histogram[Status(key)] = count
	})
	return histogram, err
}

func (repository *PostgresRepository) CountBySeverity(context context.Context) (map[Severity]int, error) {
	histogram := make(map[Severity]int, len(Severities))
	for _, severity := range Severities {
		histogram[severity] = 0
	}

	err := repository.groupCount(context, schema.SystemBugReport.Severity, func(key string, count int) {
		histogram[Severity(key)] = count
	})
	return histogram, err
}

func (repository *PostgresRepository) groupCount(context context.Context, column string, collect func(key string, count int)) error {
	query := fmt.Sprintf("SELECT %s, count(*) FROM %s GROUP BY %s", column, schema.SystemBugReport.Table, column)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return dberr.Wrap(err, "Bug report")
	}
	defer rows.Close()

	for rows.Next() {
		var (
			key   string
			count int
		)
		if err := rows.Scan(&key, &count); err != nil {
			return dberr.Wrap(err, "Bug report")
		}
		collect(key, count)
	}
	return dberr.Wrap(rows.Err(), "Bug report")
}
