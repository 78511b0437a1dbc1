// internal/handlers/events_internal_test.go
package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/retifica-be/internal/core/domain"
	"github.com/ammerola/retifica-be/test/helpers"
	"github.com/ammerola/retifica-be/test/mocks"
)

func TestEventHub_DropsSlowClients(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)

	var notify func()
	unsubscribed := false
	store.EXPECT().Subscribe(gomock.Any()).DoAndReturn(func(fn func()) func() {
		notify = fn
		return func() { unsubscribed = true }
	})
	store.EXPECT().Status().Return(domain.StoreStatus{Mode: domain.ModeOnline, Batches: 2, Engines: 5}).AnyTimes()

	hub := NewEventHub(store, helpers.TestLogger())
	require.NotNil(t, notify)

	slow, ok := hub.register()
	require.True(t, ok)
	fast, ok := hub.register()
	require.True(t, ok)

	for i := 0; i < clientBuffer; i++ {
		notify()
		<-fast
	}
	assert.Equal(t, 2, hub.Clients())

	notify()
	assert.Equal(t, 1, hub.Clients())

	ev := <-fast
	assert.Equal(t, domain.ModeOnline, ev.Mode)
	assert.Equal(t, 5, ev.Engines)

	drained := 0
	for range slow {
		drained++
	}
	assert.Equal(t, clientBuffer, drained)

	hub.Close()
	assert.True(t, unsubscribed)
	_, open := <-fast
	assert.False(t, open)

	_, ok = hub.register()
	assert.False(t, ok)
}
