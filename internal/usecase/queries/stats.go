package queries

import "context"

type StatsReadStore interface {
	Dashboard(ctx context.Context) (*DashboardView, error)
}

type StatsQueries interface {
	Dashboard(ctx context.Context) (*DashboardView, error)
}

type statsQueriesImpl struct {
	store StatsReadStore
}

func NewStatsQueries(store StatsReadStore) StatsQueries {
	return &statsQueriesImpl{store: store}
}

func (q *statsQueriesImpl) Dashboard(ctx context.Context) (*DashboardView, error) {
	return q.store.Dashboard(ctx)
}
