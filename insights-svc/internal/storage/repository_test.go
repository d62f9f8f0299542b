package storage

import (
	"context"
	"database/sql"
	"errors"
	"net"
	"testing"

	"employee-insights/insights-svc/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE insight_summary (
	id INTEGER PRIMARY KEY,
	word TEXT NOT NULL,
	total_count INTEGER NOT NULL,
	positive_count INTEGER NOT NULL,
	negative_count INTEGER NOT NULL,
	neutral_count INTEGER NOT NULL,
	positive_pct REAL NOT NULL,
	negative_pct REAL NOT NULL,
	neutral_pct REAL NOT NULL,
	created_at TEXT NOT NULL
)`

func newSQLiteRepository(t *testing.T, rows ...domain.InsightSummary) *SQLRepository {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(schema)
	require.NoError(t, err)

	for _, in := range rows {
		_, err := db.Exec(`INSERT INTO insight_summary VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			in.ID, in.Word, in.TotalCount, in.PositiveCount, in.NegativeCount, in.NeutralCount,
			in.PositivePct, in.NegativePct, in.NeutralPct, "2024-01-01T00:00:00Z")
		require.NoError(t, err)
	}

	return NewSQLRepository(db, DialectSQLite)
}

func row(id int, word string, total int, posPct, negPct, neuPct float64) domain.InsightSummary {
	return domain.InsightSummary{
		ID: id, Word: word, TotalCount: total,
		PositiveCount: int(float64(total) * posPct / 100),
		NegativeCount: int(float64(total) * negPct / 100),
		NeutralCount:  int(float64(total) * neuPct / 100),
		PositivePct:   posPct, NegativePct: negPct, NeutralPct: neuPct,
	}
}

func words(rows []domain.InsightSummary) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Word)
	}
	return out
}

func TestSQLRepository_EmptyTable(t *testing.T) {
	repo := newSQLiteRepository(t)
	ctx := context.Background()

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)

	count, err := repo.CountAll(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	total, err := repo.SumTotalCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, total)

	sums, err := repo.SumByCategory(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.CategorySums{}, sums)

	top, err := repo.TopByPercentage(ctx, domain.CategoryPositive, 70, 5)
	require.NoError(t, err)
	assert.NotNil(t, top)
	assert.Empty(t, top)
}

func TestSQLRepository_ListAll(t *testing.T) {
	repo := newSQLiteRepository(t,
		row(1, "small", 10, 50, 30, 20),
		row(2, "large", 100, 50, 30, 20),
		row(3, "tied", 100, 50, 30, 20),
	)

	all, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"large", "tied", "small"}, words(all))
	assert.Equal(t, "2024-01-01T00:00:00Z", all[0].CreatedAt)
	assert.Equal(t, 50.0, all[0].PositivePct)
}

func TestSQLRepository_Aggregates(t *testing.T) {
	repo := newSQLiteRepository(t,
		domain.InsightSummary{ID: 1, Word: "great", TotalCount: 100, PositiveCount: 80, NegativeCount: 10, NeutralCount: 10, PositivePct: 80, NegativePct: 10, NeutralPct: 10},
		domain.InsightSummary{ID: 2, Word: "bad", TotalCount: 50, PositiveCount: 5, NegativeCount: 40, NeutralCount: 5, PositivePct: 10, NegativePct: 80, NeutralPct: 10},
	)
	ctx := context.Background()

	count, err := repo.CountAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	total, err := repo.SumTotalCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(150), total)

	sums, err := repo.SumByCategory(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.CategorySums{Positive: 85, Negative: 50, Neutral: 15}, sums)
}

func TestSQLRepository_TopByPercentage(t *testing.T) {
	repo := newSQLiteRepository(t,
		row(1, "exactly", 500, 70, 20, 10),
		row(2, "strong", 10, 90, 5, 5),
		row(3, "strong-busy", 40, 90, 5, 5),
		row(4, "mild", 300, 75, 15, 10),
		row(5, "negative", 20, 5, 90, 5),
	)
	ctx := context.Background()

	top, err := repo.TopByPercentage(ctx, domain.CategoryPositive, 70, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"strong-busy", "strong", "mild"}, words(top))

	top, err = repo.TopByPercentage(ctx, domain.CategoryPositive, 70, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"strong-busy", "strong"}, words(top))

	top, err = repo.TopByPercentage(ctx, domain.CategoryNegative, 70, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"negative"}, words(top))
}

func TestSQLRepository_TopByPercentage_UnknownCategory(t *testing.T) {
	repo := newSQLiteRepository(t)

	_, err := repo.TopByPercentage(context.Background(), domain.Category("mixed"), 70, 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownCategory)

	kind, ok := KindOf(err)
	assert.True(t, ok)
	assert.Equal(t, QueryFailure, kind)
}

func TestSQLRepository_SampleOrderedByTotal(t *testing.T) {
	rows := make([]domain.InsightSummary, 0, 25)
	for i := 1; i <= 25; i++ {
		rows = append(rows, row(i, "w"+string(rune('a'+i-1)), i, 40, 30, 30))
	}
	repo := newSQLiteRepository(t, rows...)

	sample, err := repo.SampleOrderedByTotal(context.Background(), 20)
	require.NoError(t, err)
	require.Len(t, sample, 20)
	assert.Equal(t, 25, sample[0].TotalCount)
	assert.Equal(t, 6, sample[19].TotalCount)
}

func TestSQLRepository_SearchByWord(t *testing.T) {
	repo := newSQLiteRepository(t,
		row(1, "foobar", 10, 50, 30, 20),
		row(2, "barfoo", 20, 50, 30, 20),
		row(3, "baz", 30, 50, 30, 20),
	)
	ctx := context.Background()

	found, err := repo.SearchByWord(ctx, "foo")
	require.NoError(t, err)
	assert.Equal(t, []string{"barfoo", "foobar"}, words(found))

	found, err = repo.SearchByWord(ctx, "qux")
	require.NoError(t, err)
	assert.NotNil(t, found)
	assert.Empty(t, found)
}

func TestSQLRepository_Ping(t *testing.T) {
	repo := newSQLiteRepository(t)
	assert.NoError(t, repo.Ping(context.Background()))
}

func TestSQLRepository_PostgresQueries(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSQLRepository(db, DialectPostgres)
	columns := []string{"id", "word", "total_count", "positive_count", "negative_count", "neutral_count",
		"positive_pct", "negative_pct", "neutral_pct", "created_at"}

	mock.ExpectQuery(`WHERE negative_pct > \$1\s+ORDER BY negative_pct DESC, total_count DESC, id ASC\s+LIMIT \$2`).
		WithArgs(float64(70), 10).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(7, "bad", 50, 5, 40, 5, 10.0, 80.0, 10.0, "2024-01-01T00:00:00Z"))

	top, err := repo.TopByPercentage(context.Background(), domain.CategoryNegative, 70, 10)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, domain.InsightSummary{
		ID: 7, Word: "bad", TotalCount: 50,
		PositiveCount: 5, NegativeCount: 40, NeutralCount: 5,
		PositivePct: 10, NegativePct: 80, NeutralPct: 10,
		CreatedAt: "2024-01-01T00:00:00Z",
	}, top[0])

	mock.ExpectQuery(`WHERE word LIKE \$1`).
		WithArgs("%happy%").
		WillReturnRows(sqlmock.NewRows(columns))

	found, err := repo.SearchByWord(context.Background(), "happy")
	require.NoError(t, err)
	assert.Empty(t, found)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLRepository_ErrorKinds(t *testing.T) {
	tests := []struct {
		name     string
		prepare  func(mock sqlmock.Sqlmock)
		call     func(repo *SQLRepository) error
		wantKind ErrorKind
	}{
		{
			name: "network failure",
			prepare: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT").WillReturnError(&net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")})
			},
			call: func(repo *SQLRepository) error {
				_, err := repo.ListAll(context.Background())
				return err
			},
			wantKind: ConnectionFailure,
		},
		{
			name: "postgres connection exception",
			prepare: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT COUNT").WillReturnError(&pq.Error{Code: "08006"})
			},
			call: func(repo *SQLRepository) error {
				_, err := repo.CountAll(context.Background())
				return err
			},
			wantKind: ConnectionFailure,
		},
		{
			name: "missing table",
			prepare: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT").WillReturnError(&pq.Error{Code: "42P01", Message: "relation does not exist"})
			},
			call: func(repo *SQLRepository) error {
				_, err := repo.SearchByWord(context.Background(), "x")
				return err
			},
			wantKind: QueryFailure,
		},
		{
			name: "scalar of wrong type",
			prepare: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT COALESCE").WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow("not-a-number"))
			},
			call: func(repo *SQLRepository) error {
				_, err := repo.SumTotalCount(context.Background())
				return err
			},
			wantKind: DecodeFailure,
		},
		{
			name: "row of wrong shape",
			prepare: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"id", "word"}).AddRow(1, "x"))
			},
			call: func(repo *SQLRepository) error {
				_, err := repo.SampleOrderedByTotal(context.Background(), 20)
				return err
			},
			wantKind: DecodeFailure,
		},
		{
			name: "row iteration failure",
			prepare: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT").WillReturnRows(
					sqlmock.NewRows([]string{"id", "word", "total_count", "positive_count", "negative_count", "neutral_count",
						"positive_pct", "negative_pct", "neutral_pct", "created_at"}).
						AddRow(1, "a", 1, 1, 0, 0, 100.0, 0.0, 0.0, "2024-01-01").
						RowError(0, errors.New("stream reset")))
			},
			call: func(repo *SQLRepository) error {
				_, err := repo.ListAll(context.Background())
				return err
			},
			wantKind: QueryFailure,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			testCase.prepare(mock)
			err = testCase.call(NewSQLRepository(db, DialectPostgres))
			require.Error(t, err)

			kind, ok := KindOf(err)
			assert.True(t, ok)
			assert.Equal(t, testCase.wantKind, kind)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSQLRepository_CancelledContext(t *testing.T) {
	repo := newSQLiteRepository(t, row(1, "a", 1, 100, 0, 0))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.ListAll(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRebind(t *testing.T) {
	sqlite := NewSQLRepository(nil, DialectSQLite)
	postgres := NewSQLRepository(nil, DialectPostgres)

	query := "SELECT * FROM t WHERE a > $1 LIMIT $2"
	assert.Equal(t, "SELECT * FROM t WHERE a > ? LIMIT ?", sqlite.rebind(query))
	assert.Equal(t, query, postgres.rebind(query))
}
