package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublisherSyncMode(t *testing.T) {
	store := NewInMemoryStore()
	pub := NewPublisher(store)
	defer pub.Close()

	pub.Emit(context.Background(), Event{
		Timestamp: time.Now(),
		Action:    ActionProfileCreated,
		SubjectID: "p-1",
	})

	events, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, ActionProfileCreated, events[0].Action)
}

func TestPublisherAsyncDrainsOnClose(t *testing.T) {
	store := NewInMemoryStore()
	pub := NewPublisher(store, WithAsyncBuffer(100))

	for i := 0; i < 10; i++ {
		pub.Emit(context.Background(), Event{
			Action:    ActionProfileActivated,
			SubjectID: "p-1",
		})
	}

	// Close must drain every buffered event.
	pub.Close()

	events, err := store.ListBySubject(context.Background(), "p-1")
	require.NoError(t, err)
	require.Len(t, events, 10)
}

func TestPublisherCloseIsIdempotent(t *testing.T) {
	pub := NewPublisher(NewInMemoryStore(), WithAsyncBuffer(1))
	pub.Close()
	pub.Close()
}

func TestListBySubjectFilters(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, Event{Action: ActionProfileCreated, SubjectID: "a"}))
	require.NoError(t, store.Append(ctx, Event{Action: ActionProfileDeleted, SubjectID: "b"}))
	require.NoError(t, store.Append(ctx, Event{Action: ActionProfileArchived, SubjectID: "a"}))

	events, err := store.ListBySubject(ctx, "a")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, ActionProfileCreated, events[0].Action)
	assert.Equal(t, ActionProfileArchived, events[1].Action)
}
