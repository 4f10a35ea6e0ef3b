package readstore

import (
	"context"

	"biblio-api/internal/infra"
	"biblio-api/internal/infra/db"
	"biblio-api/internal/usecase/queries"
)

type StatsReadStore struct {
	db db.DBTX
}

func NewStatsReadStore(dbtx db.DBTX) *StatsReadStore {
	return &StatsReadStore{db: dbtx}
}

var _ queries.StatsReadStore = (*StatsReadStore)(nil)

const dashboardCountsSQL = `
SELECT
  (SELECT count(*) FROM books),
  (SELECT count(*) FROM users WHERE role = 'student'),
  (SELECT count(*) FROM loans WHERE status IN ('active', 'return_requested', 'overdue')),
  (SELECT count(*) FROM loans WHERE status = 'returned' AND returned_at >= date_trunc('month', now())),
  (SELECT count(DISTINCT user_id) FROM loans WHERE requested_at >= now() - interval '30 days'),
  (SELECT count(*) FROM loans WHERE status = 'overdue' OR (status = 'active' AND due_at < now()))
`

const popularBooksSQL = `
SELECT b.id, b.title, b.author, count(l.id) AS loan_count
FROM books b
LEFT JOIN loans l ON l.book_id = b.id
GROUP BY b.id, b.title, b.author
ORDER BY loan_count DESC, b.title ASC
LIMIT 5
`

const loansPerMonthSQL = `
SELECT to_char(date_trunc('month', requested_at), 'YYYY-MM') AS month, count(*)
FROM loans
WHERE requested_at >= now() - interval '6 months'
GROUP BY 1
ORDER BY 1
`

func (s *StatsReadStore) Dashboard(ctx context.Context) (*queries.DashboardView, error) {
	var v queries.DashboardView

	row := s.db.QueryRow(ctx, dashboardCountsSQL)
	if err := row.Scan(
		&v.TotalBooks, &v.TotalUsers, &v.ActiveLoans,
		&v.ReturnsThisMonth, &v.ActiveBorrowers, &v.OverdueLoans,
	); err != nil {
		return nil, infra.WrapRepoErr("failed to load dashboard counts", err)
	}

	rows, err := s.db.Query(ctx, popularBooksSQL)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load popular books", err)
	}
	defer rows.Close()
	for rows.Next() {
		var b queries.PopularBookView
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.LoanCount); err != nil {
			return nil, infra.WrapRepoErr("failed to scan popular book row", err)
		}
		v.PopularBooks = append(v.PopularBooks, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read popular book rows", err)
	}

	monthRows, err := s.db.Query(ctx, loansPerMonthSQL)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load monthly loan counts", err)
	}
	defer monthRows.Close()
	for monthRows.Next() {
		var m queries.MonthlyLoanCount
		if err := monthRows.Scan(&m.Month, &m.Count); err != nil {
			return nil, infra.WrapRepoErr("failed to scan monthly loan row", err)
		}
		v.LoansPerMonth = append(v.LoansPerMonth, &m)
	}
	if err := monthRows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read monthly loan rows", err)
	}

	return &v, nil
}
