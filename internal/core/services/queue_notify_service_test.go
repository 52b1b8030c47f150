package services

import (
	"context"
	"testing"

	"clinic-queue/internal/adapters/persistence/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(id, username string, size int) *EventClient {
	return &EventClient{ID: id, Username: username, Channel: make(chan QueueEvent, size)}
}

func TestEventHubBroadcastAndSendToUser(t *testing.T) {
	f := newFixture(t)
	hub := NewEventHub(f.log)

	screen := newClient("screen", "", 4)
	alice := newClient("alice-tab", "alice", 4)
	hub.Register(screen)
	hub.Register(alice)
	assert.Equal(t, 2, hub.ClientCount())

	assert.Equal(t, 2, hub.Broadcast(QueueEvent{Event: EventQueueUpdate}))
	assert.Equal(t, 1, hub.SendToUser("alice", QueueEvent{Event: EventTokenCalled}))
	assert.Equal(t, 0, hub.SendToUser("bob", QueueEvent{Event: EventTokenCalled}))

	assert.Len(t, screen.Channel, 1)
	assert.Len(t, alice.Channel, 2)

	hub.Unregister("alice-tab")
	assert.Equal(t, 1, hub.ClientCount())
	_, open := <-drain(alice.Channel)
	assert.False(t, open)
}

// drain empties ch and returns it, so the next receive observes close
func drain(ch chan QueueEvent) chan QueueEvent {
	for len(ch) > 0 {
		<-ch
	}
	return ch
}

func TestEventHubSkipsFullClients(t *testing.T) {
	f := newFixture(t)
	hub := NewEventHub(f.log)
	slow := newClient("slow", "", 1)
	hub.Register(slow)

	assert.Equal(t, 1, hub.Broadcast(QueueEvent{Event: EventQueueUpdate}))
	assert.Equal(t, 0, hub.Broadcast(QueueEvent{Event: EventQueueUpdate}))
}

func TestNilNotifierIsSafe(t *testing.T) {
	var n *QueueNotifyService
	n.NotifyQueueUpdate(models.QueueState{})
	n.NotifyTokenCalled("alice", 1)
}

func TestQueueServiceNotifiesOnIssueAndAdvance(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	notify := NewQueueNotifyService(f.log)
	svc := NewQueueService(f.queue, f.accounts, f.metrics, f.log).WithNotifier(notify)

	screen := newClient("screen", "", 8)
	aliceTab := newClient("alice-tab", "alice", 8)
	notify.Hub.Register(screen)
	notify.Hub.Register(aliceTab)

	alice := f.addPatient(t, "alice", "General")
	_, err := svc.IssueToken(ctx, alice)
	require.NoError(t, err)

	update := <-screen.Channel
	assert.Equal(t, EventQueueUpdate, update.Event)
	assert.Equal(t, 1, update.Data.(models.QueueState).LastToken)

	_, err = svc.AdvanceQueue(ctx, doctorCap(t, "doctor1", "General"))
	require.NoError(t, err)

	update = <-screen.Channel
	assert.Equal(t, 1, update.Data.(models.QueueState).CurrentToken)
	assert.Len(t, screen.Channel, 0)

	// alice sees both updates plus her call
	require.Len(t, aliceTab.Channel, 3)
	<-aliceTab.Channel
	<-aliceTab.Channel
	called := <-aliceTab.Channel
	assert.Equal(t, EventTokenCalled, called.Event)
	assert.Equal(t, 1, called.Data.(map[string]interface{})["token"])

	// empty queue: no events
	_, err = svc.AdvanceQueue(ctx, doctorCap(t, "doctor1", "General"))
	require.NoError(t, err)
	assert.Len(t, screen.Channel, 0)
}
