package poll

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetbot/provider"
	"meetbot/types"
)

var errTransient = errors.New("connection reset")

// script returns a Fetch that replays the given results in order and counts
// calls. A nil entry means success with the paired bot.
type step struct {
	bot *types.Bot
	err error
}

func script(t *testing.T, steps []step) (Fetch, *int) {
	t.Helper()
	calls := 0
	fetch := func(ctx context.Context) (*types.Bot, error) {
		require.Less(t, calls, len(steps), "fetch called more often than scripted")
		s := steps[calls]
		calls++
		return s.bot, s.err
	}
	return fetch, &calls
}

func fastPolicy(attempts int) Policy {
	return Policy{MaxAttempts: attempts, Delay: time.Millisecond}
}

func TestDoAlwaysFailingConsumesExactBudget(t *testing.T) {
	for _, n := range []int{1, 3, 5} {
		calls := 0
		fetch := func(ctx context.Context) (*types.Bot, error) {
			calls++
			return nil, errTransient
		}

		_, err := Do(context.Background(), fastPolicy(n), fetch)
		require.Error(t, err)
		assert.Equal(t, n, calls, "max attempts %d", n)
		assert.ErrorIs(t, err, errTransient)
	}
}

func TestDoNotFoundNeverRetried(t *testing.T) {
	notFound := &provider.APIError{StatusCode: http.StatusNotFound, Message: "bot not found"}
	fetch, calls := script(t, []step{{err: notFound}})

	_, err := Do(context.Background(), fastPolicy(5), fetch)
	require.Error(t, err)
	assert.Equal(t, 1, *calls)
	assert.True(t, provider.IsNotFound(err))
}

func TestDoSucceedsMidBudget(t *testing.T) {
	fetch, calls := script(t, []step{
		{err: errTransient},
		{err: errTransient},
		{bot: &types.Bot{ID: "abc123", Status: "joined"}},
	})

	bot, err := Do(context.Background(), fastPolicy(5), fetch)
	require.NoError(t, err)
	assert.Equal(t, 3, *calls)
	assert.Equal(t, "abc123", bot.ID)
}

func TestDoImmediateSuccess(t *testing.T) {
	fetch, calls := script(t, []step{{bot: &types.Bot{ID: "abc123"}}})

	bot, err := Do(context.Background(), fastPolicy(5), fetch)
	require.NoError(t, err)
	assert.Equal(t, 1, *calls)
	assert.Equal(t, "abc123", bot.ID)
}

func TestDoZeroAttemptsTreatedAsOne(t *testing.T) {
	calls := 0
	fetch := func(ctx context.Context) (*types.Bot, error) {
		calls++
		return nil, errTransient
	}

	_, err := Do(context.Background(), Policy{MaxAttempts: 0, Delay: time.Millisecond}, fetch)
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestDoCancelledDuringDelay(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	fetch := func(ctx context.Context) (*types.Bot, error) {
		calls++
		cancel()
		return nil, errTransient
	}

	_, err := Do(ctx, Policy{MaxAttempts: 3, Delay: time.Minute}, fetch)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls, "no further attempt after cancellation")
}
