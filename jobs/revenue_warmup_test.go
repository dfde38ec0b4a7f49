package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/merx-commerce/merx/internal/revenue"
	_ "github.com/merx-commerce/merx/internal/testing/guard"
)

type warmupStore struct {
	calls atomic.Int64
	fail  bool
}

func (s *warmupStore) EligibleLineItems(ctx context.Context, mode revenue.Mode, filter revenue.RowFilter) ([]revenue.LineItemRow, error) {
	s.calls.Add(1)
	if s.fail {
		return nil, errors.New("connection refused")
	}
	return []revenue.LineItemRow{
		{InvoiceID: 1, MerchantID: 1, ItemID: 1, CreatedAt: time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC), Quantity: 2, UnitPrice: decimal.NewFromInt(25)},
	}, nil
}

func (s *warmupStore) MerchantExists(ctx context.Context, id int64) (bool, error) {
	return true, nil
}

func (s *warmupStore) ItemExists(ctx context.Context, id int64) (bool, error) {
	return true, nil
}

func TestRevenueWarmupWarmsAllAggregates(t *testing.T) {
	store := &warmupStore{}
	job := NewRevenueWarmupJob(revenue.NewService(store, nil), nil, nil)

	task, err := NewRevenueWarmupTask(RevenueWarmupPayload{TopLimit: 5})
	require.NoError(t, err)

	err = job.Handle(context.Background(), task)
	require.NoError(t, err)

	// weekly + top merchants + top items each hit the store once.
	require.EqualValues(t, 3, store.calls.Load())
}

func TestRevenueWarmupSelectsAggregates(t *testing.T) {
	store := &warmupStore{}
	job := NewRevenueWarmupJob(revenue.NewService(store, nil), nil, nil)

	task, err := NewRevenueWarmupTask(RevenueWarmupPayload{Aggregates: []string{AggregateWeekly}})
	require.NoError(t, err)

	require.NoError(t, job.Handle(context.Background(), task))
	require.EqualValues(t, 1, store.calls.Load())
}

func TestRevenueWarmupPropagatesStoreFailure(t *testing.T) {
	store := &warmupStore{fail: true}
	job := NewRevenueWarmupJob(revenue.NewService(store, nil), nil, nil)

	task, err := NewRevenueWarmupTask(RevenueWarmupPayload{Aggregates: []string{AggregateTopItems}})
	require.NoError(t, err)

	require.Error(t, job.Handle(context.Background(), task))
}

func TestRevenueWarmupRejectsMalformedPayload(t *testing.T) {
	store := &warmupStore{}
	job := NewRevenueWarmupJob(revenue.NewService(store, nil), nil, nil)

	err := job.Handle(context.Background(), asynq.NewTask(TaskRevenueWarmup, []byte("{not json")))
	require.ErrorIs(t, err, asynq.SkipRetry)
	require.Zero(t, store.calls.Load())
}
