package preprocess_test

import (
	"context"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/forge/internal/engine/preprocess"
	"go.trai.ch/zerr"
)

func TestRunAll_PreservesSubmissionOrder(t *testing.T) {
	items := []int{5, 3, 8, 1}

	out, err := preprocess.RunAll(context.Background(), items, 4,
		func(_ context.Context, n int) (string, error) {
			return strconv.Itoa(n * 2), nil
		})

	require.NoError(t, err)
	assert.Equal(t, []string{"10", "6", "16", "2"}, out)
}

func TestRunAll_FailureDoesNotCancelSiblings(t *testing.T) {
	var attempts atomic.Int32
	items := []string{"a", "bad", "c"}

	out, err := preprocess.RunAll(context.Background(), items, 2,
		func(_ context.Context, s string) (string, error) {
			attempts.Add(1)
			if s == "bad" {
				return "", zerr.With(zerr.New("cannot process"), "item", s)
			}
			return s + "!", nil
		})

	require.Error(t, err)
	assert.Equal(t, int32(3), attempts.Load(), "every item must be attempted")
	assert.Equal(t, []string{"a!", "c!"}, out, "successes survive in order")
	assert.Contains(t, err.Error(), "cannot process")
}

func TestRunAll_AggregatesAllFailures(t *testing.T) {
	items := []int{1, 2, 3}

	_, err := preprocess.RunAll(context.Background(), items, 1,
		func(_ context.Context, n int) (int, error) {
			if n != 2 {
				return 0, zerr.New("item " + strconv.Itoa(n) + " broke")
			}
			return n, nil
		})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "item 1 broke")
	assert.Contains(t, err.Error(), "item 3 broke")
}

func TestRunAll_JobLimitRespected(t *testing.T) {
	var active, peak atomic.Int32
	items := make([]int, 32)

	_, err := preprocess.RunAll(context.Background(), items, 2,
		func(_ context.Context, _ int) (struct{}, error) {
			n := active.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			active.Add(-1)
			return struct{}{}, nil
		})

	require.NoError(t, err)
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestRunAll_EmptyInput(t *testing.T) {
	out, err := preprocess.RunAll(context.Background(), nil, 4,
		func(_ context.Context, _ int) (int, error) { return 0, nil })

	require.NoError(t, err)
	assert.Empty(t, out)
}
