package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/negotiation_tracker/internal/apperrors"
	"github.com/SscSPs/negotiation_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/negotiation_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/negotiation_tracker/internal/models"
	"github.com/SscSPs/negotiation_tracker/internal/utils"
	"github.com/SscSPs/negotiation_tracker/internal/utils/mapping"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// negotiationColumns renders every column as text so rows reach the mapper in wire form.
const negotiationColumns = `
	id::text, title, client, date::text, description, amount::text, status,
	next_action_date::text, next_action_detail, attachment_url,
	to_char(created_at AT TIME ZONE 'UTC', 'YYYY-MM-DD"T"HH24:MI:SS.US"Z"'),
	to_char(updated_at AT TIME ZONE 'UTC', 'YYYY-MM-DD"T"HH24:MI:SS.US"Z"')`

const newestFirst = `ORDER BY created_at DESC, id DESC`

type PgxNegotiationRepository struct {
	BaseRepository
}

// newPgxNegotiationRepository creates a new repository for negotiation data.
func newPgxNegotiationRepository(pool *pgxpool.Pool) portsrepo.NegotiationRepositoryFacade {
	return &PgxNegotiationRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.NegotiationRepositoryFacade = (*PgxNegotiationRepository)(nil)

func scanNegotiation(row pgx.Row) (models.NegotiationRow, error) {
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

func (r *PgxNegotiationRepository) list(ctx context.Context, op, where string, args ...any) ([]domain.Negotiation, error) {
	query := `SELECT ` + negotiationColumns + ` FROM negotiations ` + where + ` ` + newestFirst
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr(op, err)
	}
	defer rows.Close()

	modelRows, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.NegotiationRow, error) {
		return scanNegotiation(row)
	})
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return mapping.ToDomainNegotiationSlice(modelRows), nil
}

// FetchAll retrieves every negotiation, newest first.
func (r *PgxNegotiationRepository) FetchAll(ctx context.Context) ([]domain.Negotiation, error) {
	return r.list(ctx, "fetch all negotiations", "")
}

// FetchByID retrieves one negotiation or nil when absent.
func (r *PgxNegotiationRepository) FetchByID(ctx context.Context, id string) (*domain.Negotiation, error) {
	if uuid.Validate(id) != nil {
		return nil, nil
	}
	query := `SELECT ` + negotiationColumns + ` FROM negotiations WHERE id = $1`
	m, err := scanNegotiation(r.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("fetch negotiation", err)
	}
	n := mapping.ToDomainNegotiation(m)
	return &n, nil
}

// statusMatch compares against every stored form of a status: the wire code in
// any case or the display label.
const statusMatch = `upper(btrim(status)) = ANY($1)`

// FindByStatus retrieves negotiations with the given status.
func (r *PgxNegotiationRepository) FindByStatus(ctx context.Context, status domain.Status) ([]domain.Negotiation, error) {
	return r.list(ctx, "find negotiations by status", `WHERE `+statusMatch, domain.StoredValues(status))
}

// FindByClient retrieves negotiations whose client contains the text, ignoring case.
func (r *PgxNegotiationRepository) FindByClient(ctx context.Context, client string) ([]domain.Negotiation, error) {
	return r.list(ctx, "find negotiations by client", `WHERE client ILIKE $1 ESCAPE '\'`, utils.ContainsPattern(client))
}

// SearchByKeyword retrieves negotiations whose title or description contains the keyword.
func (r *PgxNegotiationRepository) SearchByKeyword(ctx context.Context, keyword string) ([]domain.Negotiation, error) {
	return r.list(ctx, "search negotiations",
		`WHERE title ILIKE $1 ESCAPE '\' OR description ILIKE $1 ESCAPE '\'`, utils.ContainsPattern(keyword))
}

// Create inserts a draft and returns the stored record.
func (r *PgxNegotiationRepository) Create(ctx context.Context, draft domain.Draft) (*domain.Negotiation, error) {
	ins := mapping.ToInsertRow(draft)
	query := `
		INSERT INTO negotiations (title, client, date, description, amount, status,
			next_action_date, next_action_detail, attachment_url)
		VALUES ($1, $2, $3::date, $4, $5, $6, $7::date, $8, $9)
		RETURNING ` + negotiationColumns

	m, err := scanNegotiation(r.Pool.QueryRow(ctx, query,
		ins.Title,
		ins.Client,
		ins.Date,
		ins.Description,
		ins.Amount,
		ins.Status,
		ins.NextActionDate,
		ins.NextActionDetail,
		ins.AttachmentURL,
	))
	if err != nil {
		return nil, wrapErr("create negotiation", err)
	}
	n := mapping.ToDomainNegotiation(m)
	return &n, nil
}

// Update writes only the columns present in the patch and bumps updated_at.
func (r *PgxNegotiationRepository) Update(ctx context.Context, id string, patch domain.NegotiationPatch) (*domain.Negotiation, error) {
	const op = "update negotiation"
	if uuid.Validate(id) != nil {
		return nil, apperrors.NewNotFound(op, id)
	}
	cols := mapping.ToUpdateRow(patch).Columns()

	sets := make([]string, 0, len(cols)+1)
	args := make([]any, 0, len(cols)+1)
	for _, c := range cols {
		args = append(args, c.Value)
		placeholder := fmt.Sprintf("$%d", len(args))
		if c.Name == "date" || c.Name == "next_action_date" {
			placeholder += "::date"
		}
		sets = append(sets, c.Name+" = "+placeholder)
	}
	sets = append(sets, "updated_at = GREATEST(now(), updated_at)")
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE negotiations SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), negotiationColumns)

	m, err := scanNegotiation(r.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound(op, id)
		}
		return nil, wrapErr(op, err)
	}
	n := mapping.ToDomainNegotiation(m)
	return &n, nil
}

// Delete removes a negotiation. Deleting an absent row is reported as NotFound.
func (r *PgxNegotiationRepository) Delete(ctx context.Context, id string) error {
	const op = "delete negotiation"
	if uuid.Validate(id) != nil {
		return apperrors.NewNotFound(op, id)
	}
	tag, err := r.Pool.Exec(ctx, `DELETE FROM negotiations WHERE id = $1`, id)
	if err != nil {
		return wrapErr(op, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFound(op, id)
	}
	return nil
}

// MonthlyRevenueForecast sums amounts of Proposal, Negotiation and ClosedWon records.
func (r *PgxNegotiationRepository) MonthlyRevenueForecast(ctx context.Context) (int64, error) {
	var total int64
	err := r.Pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0)::bigint FROM negotiations WHERE `+statusMatch,
		domain.StoredValues(domain.ForecastStatuses()...),
	).Scan(&total)
	if err != nil {
		return 0, wrapErr("calculate revenue forecast", err)
	}
	return total, nil
}

// MonthlyWonCount counts ClosedWon records dated within now's calendar month.
func (r *PgxNegotiationRepository) MonthlyWonCount(ctx context.Context, now time.Time) (int, error) {
	first, last := domain.MonthBounds(now)
	var count int
	err := r.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM negotiations WHERE `+statusMatch+` AND date BETWEEN $2::date AND $3::date`,
		domain.StoredValues(domain.StatusClosedWon), first, last,
	).Scan(&count)
	if err != nil {
		return 0, wrapErr("count monthly wins", err)
	}
	return count, nil
}

// CountByStatus counts records per status.
func (r *PgxNegotiationRepository) CountByStatus(ctx context.Context) (map[domain.Status]int, error) {
	const op = "count negotiations by status"
	rows, err := r.Pool.Query(ctx, `SELECT status, COUNT(*) FROM negotiations GROUP BY status`)
	if err != nil {
		return nil, wrapErr(op, err)
	}
	defer rows.Close()

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
