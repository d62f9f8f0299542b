package storage

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	"employee-insights/insights-svc/internal/domain"
)

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

// Querier is the store capability the repository runs on. *sql.DB, *sql.Conn
// and *sql.Tx all satisfy it.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type pinger interface {
	PingContext(ctx context.Context) error
}

const insightColumns = `id, word, total_count, positive_count, negative_count, neutral_count,
		positive_pct, negative_pct, neutral_pct, created_at`

var placeholderRe = regexp.MustCompile(`\$\d+`)

// SQLRepository reads the insight_summary table. Queries are written with
// $n placeholders and rebound for SQLite, where each placeholder must appear
// once and in order.
type SQLRepository struct {
	db      Querier
	dialect string
}

func NewSQLRepository(db Querier, dialect string) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

func (r *SQLRepository) rebind(query string) string {
	if r.dialect != DialectSQLite {
		return query
	}
	return placeholderRe.ReplaceAllString(query, "?")
}

func (r *SQLRepository) Ping(ctx context.Context) error {
	if p, ok := r.db.(pinger); ok {
		if err := p.PingContext(ctx); err != nil {
			return &RepositoryError{Kind: ConnectionFailure, Op: "ping", Err: err}
		}
		return nil
	}

	var one int
	if err := r.db.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil {
		return queryError("ping", err)
	}
	return nil
}

func (r *SQLRepository) ListAll(ctx context.Context) ([]domain.InsightSummary, error) {
	return r.queryInsights(ctx, "list all", `
		SELECT `+insightColumns+`
		FROM insight_summary
		ORDER BY total_count DESC, id ASC`)
}

func (r *SQLRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.queryScalar(ctx, "count all", "SELECT COUNT(*) FROM insight_summary", &count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *SQLRepository) SumTotalCount(ctx context.Context) (int64, error) {
	var total int64
	if err := r.queryScalar(ctx, "sum total count", "SELECT COALESCE(SUM(total_count), 0) FROM insight_summary", &total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *SQLRepository) SumByCategory(ctx context.Context) (domain.CategorySums, error) {
	var sums domain.CategorySums
	err := r.queryScalar(ctx, "sum by category", `
		SELECT COALESCE(SUM(positive_count), 0),
			COALESCE(SUM(negative_count), 0),
			COALESCE(SUM(neutral_count), 0)
		FROM insight_summary`,
		&sums.Positive, &sums.Negative, &sums.Neutral)
	if err != nil {
		return domain.CategorySums{}, err
	}
	return sums, nil
}

// TopByPercentage returns rows whose category percentage is strictly above
// threshold, highest percentage first and larger volume first on ties.
func (r *SQLRepository) TopByPercentage(ctx context.Context, category domain.Category, threshold float64, limit int) ([]domain.InsightSummary, error) {
	column, err := percentageColumn(category)
	if err != nil {
		return nil, &RepositoryError{Kind: QueryFailure, Op: "top by percentage", Err: err}
	}

	query := fmt.Sprintf(`
		SELECT `+insightColumns+`
		FROM insight_summary
		WHERE %[1]s > $1
		ORDER BY %[1]s DESC, total_count DESC, id ASC
		LIMIT $2`, column)

	return r.queryInsights(ctx, "top "+string(category), query, threshold, limit)
}

func (r *SQLRepository) SampleOrderedByTotal(ctx context.Context, limit int) ([]domain.InsightSummary, error) {
	return r.queryInsights(ctx, "sample by total", `
		SELECT `+insightColumns+`
		FROM insight_summary
		ORDER BY total_count DESC, id ASC
		LIMIT $1`, limit)
}

// SearchByWord matches substring anywhere in word using the store's LIKE
// operator, so case sensitivity is whatever the store's LIKE does.
func (r *SQLRepository) SearchByWord(ctx context.Context, substring string) ([]domain.InsightSummary, error) {
	return r.queryInsights(ctx, "search by word", `
		SELECT `+insightColumns+`
		FROM insight_summary
		WHERE word LIKE $1
		ORDER BY total_count DESC, id ASC`, "%"+substring+"%")
}

func percentageColumn(category domain.Category) (string, error) {
	switch category {
	case domain.CategoryPositive:
		return "positive_pct", nil
	case domain.CategoryNegative:
		return "negative_pct", nil
	case domain.CategoryNeutral:
		return "neutral_pct", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
}

func (r *SQLRepository) queryScalar(ctx context.Context, op, query string, dest ...any) error {
	row := r.db.QueryRowContext(ctx, r.rebind(query))
	if err := row.Err(); err != nil {
		return queryError(op, err)
	}
	if err := row.Scan(dest...); err != nil {
		return decodeError(op, err)
	}
	return nil
}

func (r *SQLRepository) queryInsights(ctx context.Context, op, query string, args ...any) ([]domain.InsightSummary, error) {
	rows, err := r.db.QueryContext(ctx, r.rebind(query), args...)
	if err != nil {
		return nil, queryError(op, err)
	}
	defer rows.Close()

	insights := make([]domain.InsightSummary, 0)
	for rows.Next() {
		var in domain.InsightSummary
		if err := rows.Scan(
			&in.ID, &in.Word, &in.TotalCount,
			&in.PositiveCount, &in.NegativeCount, &in.NeutralCount,
			&in.PositivePct, &in.NegativePct, &in.NeutralPct,
			&in.CreatedAt,
		); err != nil {
			return nil, decodeError(op, err)
		}
		insights = append(insights, in)
	}
	if err := rows.Err(); err != nil {
		return nil, queryError(op, err)
	}

	return insights, nil
}
