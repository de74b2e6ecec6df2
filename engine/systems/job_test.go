package systems

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJobSystemValidatesConfig(t *testing.T) {
	_, err := NewJobSystem(0, 1)
	assert.ErrorIs(t, err, ErrNoWorkers)

	_, err = NewJobSystem(1, -1)
	assert.ErrorIs(t, err, ErrNegativeChannelSize)
}

func TestJobSystemRunsCallbacks(t *testing.T) {
	js, err := NewJobSystem(4, 8)
	require.NoError(t, err)

	var (
		mu        sync.Mutex
		results   []int
		failures  int32
		completed int32
		wg        sync.WaitGroup
	)
	boom := errors.New("boom")

	for i := 0; i < 10; i++ {
		wg.Add(1)
		require.NoError(t, js.Submit(JobTask{
			InputParams: i,
			OnStart: func(params interface{}) (interface{}, error) {
				n := params.(int)
				if n%2 == 1 {
					return nil, boom
				}
				return n * 10, nil
			},
			OnComplete: func(result interface{}) {
				mu.Lock()
				results = append(results, result.(int))
				mu.Unlock()
			},
			OnFailure: func(err error) {
				assert.ErrorIs(t, err, boom)
				atomic.AddInt32(&failures, 1)
			},
			OnCompletionCallback: func() {
				atomic.AddInt32(&completed, 1)
				wg.Done()
			},
		}))
	}
	wg.Wait()

	assert.ElementsMatch(t, []int{0, 20, 40, 60, 80}, results)
	assert.EqualValues(t, 5, failures)
	assert.EqualValues(t, 10, completed)

	require.NoError(t, js.Shutdown())
	require.NoError(t, js.Shutdown())
	assert.ErrorIs(t, js.Submit(JobTask{}), ErrJobSystemClosed)
}
