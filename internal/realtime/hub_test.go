package realtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishUser_ReachesOnlyThatUser(t *testing.T) {
	hub := NewHub()

	ch1, cancel1 := hub.Subscribe("user-1", false)
	defer cancel1()
	ch2, cancel2 := hub.Subscribe("user-2", false)
	defer cancel2()

	hub.PublishUser("user-1", Message{Event: "notification", Data: []byte(`{"id":"n1"}`)})

	select {
	case msg := <-ch1:
		assert.Equal(t, "notification", msg.Event)
		assert.JSONEq(t, `{"id":"n1"}`, string(msg.Data))
	default:
		t.Fatal("expected message for user-1")
	}

	select {
	case <-ch2:
		t.Fatal("user-2 must not receive user-1 messages")
	default:
	}
}

func TestHub_PublishAdmin_ReachesAdminsOnly(t *testing.T) {
	hub := NewHub()

	userCh, cancelUser := hub.Subscribe("user-1", false)
	defer cancelUser()
	adminCh, cancelAdmin := hub.Subscribe("admin-1", true)
	defer cancelAdmin()

	hub.PublishAdmin(Message{Event: "admin-notification", Data: []byte(`{}`)})

	select {
	case msg := <-adminCh:
		assert.Equal(t, "admin-notification", msg.Event)
	default:
		t.Fatal("expected admin message")
	}

	select {
	case <-userCh:
		t.Fatal("non-admin must not receive admin broadcasts")
	default:
	}
}

func TestHub_AdminAlsoGetsOwnUserMessages(t *testing.T) {
	hub := NewHub()

	ch, cancel := hub.Subscribe("admin-1", true)
	defer cancel()

	hub.PublishUser("admin-1", Message{Event: "notification"})

	select {
	case msg := <-ch:
		assert.Equal(t, "notification", msg.Event)
	default:
		t.Fatal("expected message")
	}
}

func TestHub_CancelClosesChannel(t *testing.T) {
	hub := NewHub()

	ch, cancel := hub.Subscribe("user-1", false)
	require.Equal(t, 1, hub.Subscribers())

	cancel()
	assert.Equal(t, 0, hub.Subscribers())

	_, open := <-ch
	assert.False(t, open)

	// Cancelling twice is harmless.
	cancel()

	// Publishing after cancel goes nowhere and does not panic.
	hub.PublishUser("user-1", Message{Event: "notification"})
}

func TestHub_SlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	hub := NewHub()

	ch, cancel := hub.Subscribe("user-1", false)
	defer cancel()

	for i := 0; i < subscriberBuffer+10; i++ {
		hub.PublishUser("user-1", Message{Event: "notification"})
	}

	assert.Len(t, ch, subscriberBuffer)
}
