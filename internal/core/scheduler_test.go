package core

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invconv/internal/types"
)

func requireKind(t *testing.T, err error, kind ErrorKind) *Error {
	t.Helper()
	require.Error(t, err)
	var axmErr *Error
	require.ErrorAs(t, err, &axmErr)
	assert.Equal(t, kind, axmErr.Kind, axmErr.Error())
	return axmErr
}

func TestSchedulerRunsPhasesInOrder(t *testing.T) {
	s := NewScheduler()
	var got []string
	record := func(name string) func(context.Context) error {
		return func(context.Context) error {
			got = append(got, name)
			return nil
		}
	}
	require.NoError(t, s.Add(types.PhaseOutputString, "output", record("output")))
	require.NoError(t, s.Add(types.PhaseInherit, "inherit-1", record("inherit-1")))
	require.NoError(t, s.Add(types.PhaseValidColumn, "valid", record("valid")))
	require.NoError(t, s.Add(types.PhaseDeleteAvoid, "delete", record("delete")))
	require.NoError(t, s.Add(types.PhaseInherit, "inherit-2", record("inherit-2")))
	assert.Equal(t, 2, s.Count(types.PhaseInherit))

	require.NoError(t, s.RunAll(context.Background()))

	want := []string{"inherit-1", "inherit-2", "delete", "valid", "output"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("run order mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 0, s.Len())
}

func TestSchedulerRejectsUnknownPhase(t *testing.T) {
	s := NewScheduler()
	noop := func(context.Context) error { return nil }

	requireKind(t, s.Add(types.Phase(-1), "negative", noop), KindInvalidPriority)
	requireKind(t, s.Add(types.Phase(7), "unknown", noop), KindInvalidPriority)
	assert.Equal(t, 0, s.Len())
}

func TestSchedulerRunAllTwiceIsNoop(t *testing.T) {
	s := NewScheduler()
	calls := 0
	require.NoError(t, s.Add(types.PhaseInherit, "count", func(context.Context) error {
		calls++
		return nil
	}))

	require.NoError(t, s.RunAll(context.Background()))
	require.NoError(t, s.RunAll(context.Background()))
	assert.Equal(t, 1, calls)

	empty := NewScheduler()
	require.NoError(t, empty.RunAll(context.Background()))
	require.NoError(t, empty.RunAll(context.Background()))
}

func TestSchedulerStopsOnFirstError(t *testing.T) {
	s := NewScheduler()
	boom := errors.New("boom")
	ran := false
	require.NoError(t, s.Add(types.PhaseInherit, "fail", func(context.Context) error { return boom }))
	require.NoError(t, s.Add(types.PhaseOutputString, "later", func(context.Context) error {
		ran = true
		return nil
	}))

	err := s.RunAll(context.Background())
	require.ErrorIs(t, err, boom)
	assert.False(t, ran)
	assert.Equal(t, 0, s.Len())
}

func TestSchedulerAddWhileRunning(t *testing.T) {
	s := NewScheduler()
	var got []string
	require.NoError(t, s.Add(types.PhaseDeleteAvoid, "outer", func(context.Context) error {
		got = append(got, "outer")
		requireKind(t, s.Add(types.PhaseInherit, "earlier", func(context.Context) error { return nil }), KindInvalidPriority)
		requireKind(t, s.Add(types.PhaseDeleteAvoid, "same", func(context.Context) error { return nil }), KindInvalidPriority)
		return s.Add(types.PhaseValidColumn, "later", func(context.Context) error {
			got = append(got, "later")
			return nil
		})
	}))

	require.NoError(t, s.RunAll(context.Background()))
	assert.Equal(t, []string{"outer", "later"}, got)
}
