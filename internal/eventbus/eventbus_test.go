package eventbus

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestPublishDeliversInOrder(t *testing.T) {
	b := New(quietLogger())
	defer b.Close()

	got := make(chan uint64, 3)
	b.Subscribe(EventSearchStarted, func(e DomainEvent) {
		got <- e.(SearchStartedEvent).ID
	})

	for i := uint64(1); i <= 3; i++ {
		b.Publish(SearchStartedEvent{ID: i, Term: "cats"})
	}

	for want := uint64(1); want <= 3; want++ {
		select {
		case id := <-got:
			require.Equal(t, want, id)
		case <-time.After(time.Second):
			t.Fatalf("event %d not delivered", want)
		}
	}
}

func TestUnsubscribe(t *testing.T) {
	b := New(quietLogger())
	defer b.Close()

	first := make(chan struct{}, 1)
	second := make(chan error, 1)
	unsub := b.Subscribe(EventSearchFailed, func(DomainEvent) { first <- struct{}{} })
	b.Subscribe(EventSearchFailed, func(e DomainEvent) { second <- e.(SearchFailedEvent).Err })
	unsub()

	b.Publish(SearchFailedEvent{Term: "dogs", Err: errors.New("boom")})

	select {
	case err := <-second:
		require.EqualError(t, err, "boom")
	case <-time.After(time.Second):
		t.Fatal("remaining subscriber not called")
	}
	require.Empty(t, first, "unsubscribed handler should not run")
}

func TestHandlerPanicIsRecovered(t *testing.T) {
	b := New(quietLogger())
	defer b.Close()

	done := make(chan struct{})
	b.Subscribe(EventSearchRequested, func(DomainEvent) { panic("bad handler") })
	b.Subscribe(EventSearchRequested, func(DomainEvent) { close(done) })

	b.Publish(SearchRequestedEvent{Term: "birds"})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("handler after panicking one was not called")
	}
}

func TestPublishAfterCloseDoesNotBlock(t *testing.T) {
	b := New(quietLogger())
	b.Close()
	b.Close()
	b.Publish(SearchRequestedEvent{Term: "late"})
}

func TestLogSearchFailures(t *testing.T) {
	b := New(quietLogger())
	defer b.Close()

	logger, hook := test.NewNullLogger()
	unsub := LogSearchFailures(b, logger)
	defer unsub()

	done := make(chan struct{})
	b.Subscribe(EventSearchFailed, func(DomainEvent) { close(done) })
	b.Publish(SearchFailedEvent{ID: 7, Term: "cats", Err: errors.New("refused")})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("failure not dispatched")
	}

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	require.Equal(t, logrus.ErrorLevel, entry.Level)
	require.Equal(t, "cats", entry.Data["term"])
	require.Equal(t, uint64(7), entry.Data["id"])
}
