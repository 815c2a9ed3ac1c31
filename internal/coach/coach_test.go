package coach

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastBackoff() Backoff {
	return Backoff{MaxAttempts: 3, InitialWait: time.Millisecond, MaxWait: 5 * time.Millisecond, Multiplier: 2}
}

func TestMotivate(t *testing.T) {
	mock := NewMockProvider(MockReply{Content: json.RawMessage(`{"message":"  Steady practice wins.  "}`)})
	c := NewWithProvider(mock, time.Second, nil)

	msg, err := c.Motivate(context.Background(), Moment{Correct: 9, Total: 10, Accuracy: 90, XP: 90, Streak: 4, StreakIncreased: true})
	require.NoError(t, err)
	assert.Equal(t, "Steady practice wins.", msg)

	require.Equal(t, 1, mock.Calls())
	p := mock.Prompts[0]
	assert.Equal(t, messageSchema, p.Schema)
	assert.Contains(t, p.User, "9 of 10 correct (90%)")
	assert.Contains(t, p.User, "Streak extended to 4 days")
}

func TestMotivate_SchemaViolation(t *testing.T) {
	mock := NewMockProvider(MockReply{Content: json.RawMessage(`{"text":"hi"}`)})
	c := NewWithProvider(mock, time.Second, nil)

	_, err := c.Motivate(context.Background(), Moment{})
	var inv *ErrInvalidResponse
	assert.ErrorAs(t, err, &inv)
}

func TestMotivate_ProviderDown(t *testing.T) {
	c := NewWithProvider(NewMockProvider(), time.Second, nil)
	_, err := c.Motivate(context.Background(), Moment{})
	var un *ErrProviderUnavailable
	assert.ErrorAs(t, err, &un)
}

func TestMotivate_CancelledContext(t *testing.T) {
	c := NewWithProvider(NewMockProvider(MockReply{Content: json.RawMessage(`{"message":"x"}`)}), time.Second, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Motivate(ctx, Moment{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDescribe(t *testing.T) {
	s := describe(Moment{
		Correct: 5, Total: 5, Accuracy: 100, XP: 50, Streak: 7,
		Milestone: "Week Warrior", Achievements: []string{"Flawless"}, League: "Silver", Rank: 3,
	})
	assert.Contains(t, s, "Current streak: 7 days")
	assert.Contains(t, s, "Week Warrior")
	assert.Contains(t, s, "Flawless")
	assert.Contains(t, s, "Silver, rank 3")
}

func TestRetry_TransientThenSuccess(t *testing.T) {
	mock := NewMockProvider(
		MockReply{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
		MockReply{Err: &ErrRateLimit{Err: errors.New("slow down")}},
		MockReply{Content: json.RawMessage(`{"message":"ok"}`)},
	)
	reply, err := WithRetry(mock, fastBackoff()).Generate(context.Background(), Prompt{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"ok"}`, string(reply.Content))
	assert.Equal(t, 3, mock.Calls())
}

func TestRetry_GivesUp(t *testing.T) {
	mock := NewMockProvider(
		MockReply{Err: &ErrProviderUnavailable{}},
		MockReply{Err: &ErrProviderUnavailable{}},
		MockReply{Err: &ErrProviderUnavailable{}},
		MockReply{Content: json.RawMessage(`{}`)},
	)
	_, err := WithRetry(mock, fastBackoff()).Generate(context.Background(), Prompt{})
	assert.Error(t, err)
	assert.Equal(t, 3, mock.Calls())
}

func TestRetry_InvalidOnlyOnce(t *testing.T) {
	bad := MockReply{Err: &ErrInvalidResponse{Err: errors.New("bad")}}
	mock := NewMockProvider(bad, bad, MockReply{Content: json.RawMessage(`{}`)})
	_, err := WithRetry(mock, fastBackoff()).Generate(context.Background(), Prompt{})
	var inv *ErrInvalidResponse
	assert.ErrorAs(t, err, &inv)
	assert.Equal(t, 2, mock.Calls())
}

func TestRetry_ContextNotRetried(t *testing.T) {
	mock := NewMockProvider(MockReply{Err: context.DeadlineExceeded}, MockReply{Content: json.RawMessage(`{}`)})
	_, err := WithRetry(mock, fastBackoff()).Generate(context.Background(), Prompt{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, mock.Calls())
}

func TestValidate(t *testing.T) {
	assert.NoError(t, validate(nil, json.RawMessage(`not json`)))
	assert.NoError(t, validate(messageSchema, json.RawMessage(`{"message":"hello"}`)))
	assert.Error(t, validate(messageSchema, json.RawMessage(`{"message":""}`)))
	assert.Error(t, validate(messageSchema, json.RawMessage(`{"message":"a","extra":1}`)))
	assert.Error(t, validate(messageSchema, json.RawMessage(`{`)))
}

func TestNew(t *testing.T) {
	ctx := context.Background()

	c, err := New(ctx, Config{Provider: ProviderNone}, nil)
	require.NoError(t, err)
	assert.Nil(t, c)

	c, err = New(ctx, Config{Provider: ProviderMock}, nil)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, DefaultTimeout, c.timeout)
	assert.Equal(t, "mock", c.provider.Model())

	_, err = New(ctx, Config{Provider: ProviderOpenAI}, nil)
	assert.ErrorContains(t, err, "API key is required")

	_, err = New(ctx, Config{Provider: "clippy"}, nil)
	assert.ErrorContains(t, err, "unknown coach provider")
}
