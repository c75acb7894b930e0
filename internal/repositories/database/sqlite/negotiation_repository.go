package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/negotiation_tracker/internal/apperrors"
	"github.com/SscSPs/negotiation_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/negotiation_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/negotiation_tracker/internal/models"
	"github.com/SscSPs/negotiation_tracker/internal/utils/mapping"
	"github.com/google/uuid"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Schema creates the negotiations table. seq breaks created_at ties so that
// records created within the same microsecond still list newest first.
const Schema = `
CREATE TABLE IF NOT EXISTS negotiations (
	seq                INTEGER PRIMARY KEY AUTOINCREMENT,
	id                 TEXT NOT NULL UNIQUE,
	title              TEXT NOT NULL CHECK (title <> ''),
	client             TEXT NOT NULL CHECK (client <> ''),
	date               TEXT NOT NULL,
	description        TEXT NOT NULL DEFAULT '',
	amount             INTEGER NOT NULL DEFAULT 0 CHECK (amount >= 0),
	status             TEXT NOT NULL DEFAULT 'LEAD',
	next_action_date   TEXT,
	next_action_detail TEXT,
	attachment_url     TEXT,
	created_at         TEXT NOT NULL,
	updated_at         TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_negotiations_status ON negotiations (status);
CREATE INDEX IF NOT EXISTS idx_negotiations_created_at ON negotiations (created_at);
`

// timestampLayout is fixed width so text ordering matches time ordering.
const timestampLayout = "2006-01-02T15:04:05.000000Z"

const negotiationColumns = `id, title, client, date, description, amount, status,
	next_action_date, next_action_detail, attachment_url, created_at, updated_at`

const newestFirst = `ORDER BY created_at DESC, seq DESC`

// NegotiationRepository stores negotiations in a SQLite database.
type NegotiationRepository struct {
	db  *sql.DB
	now func() time.Time
}

var _ portsrepo.NegotiationRepositoryFacade = (*NegotiationRepository)(nil)

// NewNegotiationRepository creates the repository. Call EnsureSchema before first use.
func NewNegotiationRepository(db *sql.DB) *NegotiationRepository {
	return &NegotiationRepository{db: db, now: time.Now}
}

// EnsureSchema creates the table and indexes when they do not exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("create negotiations schema: %w", err)
	}
	return nil
}

func (r *NegotiationRepository) timestamp() string {
	return r.now().UTC().Format(timestampLayout)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanNegotiation(row scanner) (models.NegotiationRow, error) {
	var m models.NegotiationRow
	err := row.Scan(
		&m.ID,
		&m.Title,
		&m.Client,
		&m.Date,
		&m.Description,
		&m.Amount,
		&m.Status,
		&m.NextActionDate,
		&m.NextActionDetail,
		&m.AttachmentURL,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

func (r *NegotiationRepository) list(ctx context.Context, op, where string, args ...any) ([]domain.Negotiation, error) {
	query := `SELECT ` + negotiationColumns + ` FROM negotiations ` + where + ` ` + newestFirst
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapErr(op, err)
	}
	defer func() { _ = rows.Close() }()

	var modelRows []models.NegotiationRow
	for rows.Next() {
		m, err := scanNegotiation(rows)
		if err != nil {
			return nil, wrapErr(op, err)
		}
		modelRows = append(modelRows, m)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(op, err)
	}
	return mapping.ToDomainNegotiationSlice(modelRows), nil
}

// FetchAll retrieves every negotiation, newest first.
func (r *NegotiationRepository) FetchAll(ctx context.Context) ([]domain.Negotiation, error) {
	return r.list(ctx, "fetch all negotiations", "")
}

// FetchByID retrieves one negotiation or nil when absent.
func (r *NegotiationRepository) FetchByID(ctx context.Context, id string) (*domain.Negotiation, error) {
	if uuid.Validate(id) != nil {
		return nil, nil
	}
	row := r.db.QueryRowContext(ctx, `SELECT `+negotiationColumns+` FROM negotiations WHERE id = ?`, id)
	m, err := scanNegotiation(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("fetch negotiation", err)
	}
	n := mapping.ToDomainNegotiation(m)
	return &n, nil
}

// statusIn renders a filter matching every stored form of statuses. Rows may
// hold a wire code in any case or a display label.
func statusIn(statuses ...domain.Status) (string, []any) {
	values := domain.StoredValues(statuses...)
	placeholders := make([]string, len(values))
	args := make([]any, len(values))
	for i, v := range values {
		placeholders[i] = "?"
		args[i] = v
	}
	return `UPPER(TRIM(status)) IN (` + strings.Join(placeholders, ", ") + `)`, args
}

func (r *NegotiationRepository) FindByStatus(ctx context.Context, status domain.Status) ([]domain.Negotiation, error) {
	cond, args := statusIn(status)
	return r.list(ctx, "find negotiations by status", `WHERE `+cond, args...)
}

// FindByClient and SearchByKeyword match in Go because SQLite's LOWER and
// LIKE fold ASCII letters only.

func (r *NegotiationRepository) FindByClient(ctx context.Context, client string) ([]domain.Negotiation, error) {
	all, err := r.list(ctx, "find negotiations by client", "")
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(client)
	return filter(all, func(n domain.Negotiation) bool {
		return strings.Contains(strings.ToLower(n.Client), needle)
	}), nil
}

func (r *NegotiationRepository) SearchByKeyword(ctx context.Context, keyword string) ([]domain.Negotiation, error) {
	all, err := r.list(ctx, "search negotiations", "")
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(keyword)
	return filter(all, func(n domain.Negotiation) bool {
		return strings.Contains(strings.ToLower(n.Title), needle) ||
			strings.Contains(strings.ToLower(n.Description), needle)
	}), nil
}

func filter(items []domain.Negotiation, keep func(domain.Negotiation) bool) []domain.Negotiation {
	var out []domain.Negotiation
	for _, n := range items {
		if keep(n) {
			out = append(out, n)
		}
	}
	return out
}

// Create inserts a draft with a fresh id and returns the stored record.
func (r *NegotiationRepository) Create(ctx context.Context, draft domain.Draft) (*domain.Negotiation, error) {
	ins := mapping.ToInsertRow(draft)
	ts := r.timestamp()
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO negotiations (id, title, client, date, description, amount, status,
			next_action_date, next_action_detail, attachment_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+negotiationColumns,
		uuid.NewString(),
		ins.Title,
		ins.Client,
		ins.Date,
		ins.Description,
		ins.Amount,
		ins.Status,
		ins.NextActionDate,
		ins.NextActionDetail,
		ins.AttachmentURL,
		ts,
		ts,
	)
	m, err := scanNegotiation(row)
	if err != nil {
		return nil, wrapErr("create negotiation", err)
	}
	n := mapping.ToDomainNegotiation(m)
	return &n, nil
}

// Update writes only the columns present in the patch. updated_at never moves backwards.
func (r *NegotiationRepository) Update(ctx context.Context, id string, patch domain.NegotiationPatch) (*domain.Negotiation, error) {
	const op = "update negotiation"
	if uuid.Validate(id) != nil {
		return nil, apperrors.NewNotFound(op, id)
	}
	cols := mapping.ToUpdateRow(patch).Columns()

	sets := make([]string, 0, len(cols)+1)
	args := make([]any, 0, len(cols)+2)
	for _, c := range cols {
		sets = append(sets, c.Name+" = ?")
		args = append(args, c.Value)
	}
	sets = append(sets, "updated_at = MAX(?, updated_at)")
	args = append(args, r.timestamp(), id)

	query := fmt.Sprintf(`UPDATE negotiations SET %s WHERE id = ? RETURNING %s`,
		strings.Join(sets, ", "), negotiationColumns)
	m, err := scanNegotiation(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFound(op, id)
		}
		return nil, wrapErr(op, err)
	}
	n := mapping.ToDomainNegotiation(m)
	return &n, nil
}

// Delete removes a negotiation. Deleting an absent row is reported as NotFound.
func (r *NegotiationRepository) Delete(ctx context.Context, id string) error {
	const op = "delete negotiation"
	if uuid.Validate(id) != nil {
		return apperrors.NewNotFound(op, id)
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM negotiations WHERE id = ?`, id)
	if err != nil {
		return wrapErr(op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return wrapErr(op, err)
	}
	if affected == 0 {
		return apperrors.NewNotFound(op, id)
	}
	return nil
}

func (r *NegotiationRepository) MonthlyRevenueForecast(ctx context.Context) (int64, error) {
	cond, args := statusIn(domain.ForecastStatuses()...)
	var total int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM negotiations WHERE `+cond, args...,
	).Scan(&total)
	if err != nil {
		return 0, wrapErr("calculate revenue forecast", err)
	}
	return total, nil
}

func (r *NegotiationRepository) MonthlyWonCount(ctx context.Context, now time.Time) (int, error) {
	first, last := domain.MonthBounds(now)
	cond, args := statusIn(domain.StatusClosedWon)
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM negotiations WHERE `+cond+` AND date BETWEEN ? AND ?`,
		append(args, first, last)...,
	).Scan(&count)
	if err != nil {
		return 0, wrapErr("count monthly wins", err)
	}
	return count, nil
}

func (r *NegotiationRepository) CountByStatus(ctx context.Context) (map[domain.Status]int, error) {
	const op = "count negotiations by status"
	rows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM negotiations GROUP BY status`)
	if err != nil {
		return nil, wrapErr(op, err)
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[domain.Status]int)
	for rows.Next() {
		var code string
		var n int
		if err := rows.Scan(&code, &n); err != nil {
			return nil, wrapErr(op, err)
		}
		status, _ := domain.ParseStatus(code)
		counts[status] += n
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(op, err)
	}
	return counts, nil
}

// wrapErr maps driver failures onto the remote error taxonomy. A locked
// database or an expired context is treated as the store being unreachable.
func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) || errors.Is(err, sql.ErrConnDone) {
		return &apperrors.RemoteUnavailableError{Op: op, Err: err}
	}
	var sqlErr *sqlite.Error
	if errors.As(err, &sqlErr) {
		primary := sqlErr.Code() & 0xff
		if primary == sqlite3.SQLITE_BUSY || primary == sqlite3.SQLITE_LOCKED || primary == sqlite3.SQLITE_CANTOPEN {
			return &apperrors.RemoteUnavailableError{Op: op, Err: err}
		}
		return &apperrors.RemoteError{Op: op, Code: sqlite.ErrorCodeString[sqlErr.Code()], Message: sqlErr.Error(), Err: err}
	}
	return &apperrors.RemoteError{Op: op, Message: err.Error(), Err: err}
}
