package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/rvalverdem/takt/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConcurrentToggles_SameSerial hammers one serial from many goroutines.
// Toggles must serialize: the final log must alternate IN/OUT perfectly,
// with no duplicate-IN or orphan-OUT anomalies and never more than one open
// session.
func TestConcurrentToggles_SameSerial(t *testing.T) {
	env := setupFileEnv(t)
	ctx := context.Background()
	wo := env.seedWorkOrder(t)

	const toggles = 10

	var wg sync.WaitGroup
	errs := make([]error, toggles)
	for i := 0; i < toggles; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, errs[n] = env.scans.Toggle(ctx, wo.ID, "SN001", "")
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "toggle %d failed", i)
	}

	res, err := env.scans.BuildSummary(ctx, wo.ID)
	require.NoError(t, err)
	assert.Empty(t, res.Anomalies, "serialized toggles can never mispair")
	assert.Equal(t, toggles/2, res.Summary.CompletedUnits)
	assert.Zero(t, res.Summary.InProgressUnits, "an even toggle count closes every session")

	count, err := env.events.CountByWorkOrder(ctx, wo.ID)
	require.NoError(t, err)
	assert.Equal(t, toggles, count)
}

// TestConcurrentToggles_DifferentSerials verifies that distinct serials on
// the same work order need no coordination and none are lost.
func TestConcurrentToggles_DifferentSerials(t *testing.T) {
	env := setupFileEnv(t)
	ctx := context.Background()
	wo := env.seedWorkOrder(t)

	const serials = 8

	var wg sync.WaitGroup
	errs := make([]error, serials)
	for i := 0; i < serials; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, errs[n] = env.scans.Toggle(ctx, wo.ID, fmt.Sprintf("SN%03d", n), fmt.Sprintf("emp-%d", n))
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "toggle for serial %d failed", i)
	}

	res, err := env.scans.BuildSummary(ctx, wo.ID)
	require.NoError(t, err)
	assert.Empty(t, res.Anomalies)
	assert.Equal(t, serials, res.Summary.InProgressUnits)
	assert.Equal(t, serials, res.Summary.ActiveWorkers, "each open session carries its own employee")
}

// TestConcurrentToggles_FullCyclesPerSerial runs IN+OUT pairs concurrently
// across serials and checks every session closes with a committed cycle.
func TestConcurrentToggles_FullCyclesPerSerial(t *testing.T) {
	env := setupFileEnv(t)
	ctx := context.Background()
	wo := env.seedWorkOrder(t)

	const serials = 5

	var wg sync.WaitGroup
	for i := 0; i < serials; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			serial := fmt.Sprintf("SN%03d", n)
			if _, err := env.scans.Toggle(ctx, wo.ID, serial, ""); err != nil {
				t.Errorf("serial %s IN: %v", serial, err)
				return
			}
			if _, err := env.scans.Toggle(ctx, wo.ID, serial, ""); err != nil {
				t.Errorf("serial %s OUT: %v", serial, err)
			}
		}(i)
	}
	wg.Wait()

	res, err := env.scans.BuildSummary(ctx, wo.ID)
	require.NoError(t, err)
	assert.Equal(t, serials, res.Summary.CompletedUnits)
	for _, s := range res.Sessions {
		assert.Equal(t, domain.SessionClosed, s.Status)
		require.NotNil(t, s.CycleSeconds)
		assert.GreaterOrEqual(t, *s.CycleSeconds, 0)
	}
}
