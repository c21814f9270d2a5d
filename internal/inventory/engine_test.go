package inventory

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type memoryIncrementer struct {
	quantities map[uuid.UUID]int
	calls      []Delta
	failOn     uuid.UUID
}

func (m *memoryIncrementer) Increment(ctx context.Context, productID uuid.UUID, delta int) (int64, error) {
	m.calls = append(m.calls, Delta{ProductID: productID, Quantity: delta})
	if productID == m.failOn {
		return 0, errors.New("store unavailable")
	}
	if _, ok := m.quantities[productID]; !ok {
		return 0, nil
	}
	m.quantities[productID] += delta
	return 1, nil
}

func TestApplyRunsInOrder(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	store := &memoryIncrementer{quantities: map[uuid.UUID]int{a: 10, b: 10}}
	engine := NewEngine(store, slog.Default())

	deltas := []Delta{{ProductID: a, Quantity: 5}, {ProductID: b, Quantity: -3}}
	require.NoError(t, engine.Apply(context.Background(), deltas))
	require.Equal(t, deltas, store.calls)
	require.Equal(t, 15, store.quantities[a])
	require.Equal(t, 7, store.quantities[b])
}

func TestApplySkipsMissingProduct(t *testing.T) {
	a := uuid.New()
	store := &memoryIncrementer{quantities: map[uuid.UUID]int{a: 10}}
	engine := NewEngine(store, slog.Default())

	err := engine.Apply(context.Background(), []Delta{
		{ProductID: uuid.New(), Quantity: 4},
		{ProductID: a, Quantity: 4},
	})
	require.NoError(t, err)
	require.Equal(t, 14, store.quantities[a])
}

func TestApplyStopsAtFirstError(t *testing.T) {
	a, bad, c := uuid.New(), uuid.New(), uuid.New()
	store := &memoryIncrementer{quantities: map[uuid.UUID]int{a: 10, c: 10}, failOn: bad}
	engine := NewEngine(store, slog.Default())

	err := engine.Apply(context.Background(), []Delta{
		{ProductID: a, Quantity: 1},
		{ProductID: bad, Quantity: 1},
		{ProductID: c, Quantity: 1},
	})
	require.Error(t, err)
	require.Len(t, store.calls, 2, "third delta never attempted")
	require.Equal(t, 11, store.quantities[a])
	require.Equal(t, 10, store.quantities[c])
}

func TestInvert(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	inverted := Invert([]Delta{{ProductID: a, Quantity: 5}, {ProductID: b, Quantity: -2}})
	require.Equal(t, []Delta{{ProductID: a, Quantity: -5}, {ProductID: b, Quantity: 2}}, inverted)
}
