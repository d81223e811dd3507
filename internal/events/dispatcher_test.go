package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPublishInvokesEverySubscriber(t *testing.T) {
	d := NewInMemoryDispatcher()

	var calls []string
	d.Subscribe(EventAccountConfirmed, func(_ context.Context, e Event) error {
		calls = append(calls, "first:"+e.AccountID)
		return errors.New("boom")
	})
	d.Subscribe(EventAccountConfirmed, func(_ context.Context, e Event) error {
		calls = append(calls, "second:"+e.AccountID)
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventAccountConfirmed, AccountID: "acc-1"})
	require.NoError(t, err)
	// a failing subscriber does not stop the rest
	require.Equal(t, []string{"first:acc-1", "second:acc-1"}, calls)
}

func TestPublishWithoutSubscribersIsNoOp(t *testing.T) {
	d := NewInMemoryDispatcher()
	require.NoError(t, d.Publish(context.Background(), Event{Type: EventPasswordChanged}))
}
