package publishers

import (
	"context"
	"errors"
	"testing"
)

type stubPublisher struct {
	id       string
	typ      string
	err      error
	calls    int
	closed   bool
	closeErr error
}

func (s *stubPublisher) ID() string   { return s.id }
func (s *stubPublisher) Type() string { return s.typ }
func (s *stubPublisher) Publish(context.Context, Event) error {
	s.calls++
	return s.err
}

type closingPublisher struct {
	*stubPublisher
}

func (c closingPublisher) Close() error {
	c.closed = true
	return c.closeErr
}

func TestFanoutPublishAggregatesErrors(t *testing.T) {
	failing := errors.New("failed")
	fanout := NewFanout([]Publisher{
		&stubPublisher{id: "ok", typ: "http"},
		nil,
		&stubPublisher{id: "bad", typ: "http", err: failing},
	})

	if fanout.Size() != 2 {
		t.Fatalf("expected nil publisher to be skipped, size=%d", fanout.Size())
	}
	count, err := fanout.Publish(context.Background(), Event{})
	if count != 1 {
		t.Fatalf("expected 1 success, got %d", count)
	}
	if !errors.Is(err, failing) {
		t.Fatalf("expected aggregated error wrapping the failure, got %v", err)
	}
}

func TestFanoutCloseReachesClosers(t *testing.T) {
	plain := &stubPublisher{id: "plain", typ: "sqs"}
	closer := closingPublisher{&stubPublisher{id: "pubsub", typ: TypeGCPPubSub, closeErr: errors.New("flush")}}

	err := NewFanout([]Publisher{plain, closer}).Close()
	if !closer.closed {
		t.Fatalf("closer was not closed")
	}
	if err == nil {
		t.Fatalf("expected close error to surface")
	}
}

func TestNilFanoutIsInert(t *testing.T) {
	var f *Fanout
	if n, err := f.Publish(context.Background(), Event{}); n != 0 || err != nil {
		t.Fatalf("unexpected result %d, %v", n, err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestBuildAllWithDefaultRegistry(t *testing.T) {
	pubs, err := BuildAll(context.Background(), DefaultRegistry(), []PublisherConfig{
		{ID: "http", Type: TypeHTTP, HTTP: &HTTPPublisherConfig{URL: "https://example.com", Method: "POST", TimeoutSeconds: 1}},
	}, nil)
	if err != nil {
		t.Fatalf("BuildAll: %v", err)
	}
	if len(pubs) != 1 || pubs[0].Type() != TypeHTTP {
		t.Fatalf("expected 1 http publisher, got %#v", pubs)
	}
}

func TestBuildAllUnknownTypeClosesBuilt(t *testing.T) {
	built := &stubPublisher{id: "first", typ: "stub"}
	closer := closingPublisher{built}
	reg := NewRegistry(map[string]Builder{
		"stub": func(context.Context, PublisherConfig, Logger) (Publisher, error) { return closer, nil },
	})

	_, err := BuildAll(context.Background(), reg, []PublisherConfig{
		{ID: "first", Type: "stub"},
		{ID: "second", Type: "kafka"},
	}, nil)
	if err == nil {
		t.Fatalf("expected error for unregistered type")
	}
	if !built.closed {
		t.Fatalf("already built publisher should be closed")
	}
}
