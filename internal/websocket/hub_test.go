// Dealradar - Deals Discovery Analytics and Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dealradar

package websocket

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/tomtom215/dealradar/internal/logging"
)

//nolint:gochecknoinits // init ensures consistent logging for tests
func init() {
	logging.Init(logging.Config{
		Level:  "info",
		Format: "console",
		Output: io.Discard,
	})
}

// setupHub creates and starts a new hub for testing
func setupHub(t *testing.T) (*Hub, context.CancelFunc) {
	t.Helper()
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = hub.RunWithContext(ctx) }()
	time.Sleep(10 * time.Millisecond)
	return hub, cancel
}

// createTestClient creates a mock client for testing
func createTestClient(hub *Hub) *Client {
	return &Client{id: clientIDCounter.Add(1), hub: hub, conn: nil, send: make(chan Message, 256)}
}

// registerClient registers a client and waits for registration to complete
func registerClient(hub *Hub, client *Client) {
	hub.Register <- client
	time.Sleep(20 * time.Millisecond)
}

func TestNewHub(t *testing.T) {
	hub := NewHub()

	if hub == nil {
		t.Fatal("NewHub returned nil")
	}

	checks := []struct {
		name   string
		check  bool
		errMsg string
	}{
		{"clients map", hub.clients != nil, "clients map not initialized"},
		{"broadcast channel", hub.broadcast != nil, "broadcast channel not initialized"},
		{"Register channel", hub.Register != nil, "Register channel not initialized"},
		{"Unregister channel", hub.Unregister != nil, "Unregister channel not initialized"},
		{"empty clients", len(hub.clients) == 0, "clients map should be empty"},
	}

	for _, c := range checks {
		if !c.check {
			t.Error(c.errMsg)
		}
	}
}

func TestRegisterUnregister(t *testing.T) {
	hub, cancel := setupHub(t)
	defer cancel()

	client := createTestClient(hub)
	registerClient(hub, client)

	if got := hub.GetClientCount(); got != 1 {
		t.Errorf("client count after register = %d, want 1", got)
	}

	hub.Unregister <- client
	time.Sleep(20 * time.Millisecond)

	if got := hub.GetClientCount(); got != 0 {
		t.Errorf("client count after unregister = %d, want 0", got)
	}
}

func TestBroadcastJSONReachesAllClients(t *testing.T) {
	hub, cancel := setupHub(t)
	defer cancel()

	a := createTestClient(hub)
	b := createTestClient(hub)
	registerClient(hub, a)
	registerClient(hub, b)

	hub.BroadcastJSON(MessageTypeFraudAlert, map[string]string{"alert_id": "a1"})
	time.Sleep(20 * time.Millisecond)

	for name, client := range map[string]*Client{"a": a, "b": b} {
		select {
		case msg := <-client.send:
			if msg.Type != MessageTypeFraudAlert {
				t.Errorf("client %s got message type %q, want fraud_alert", name, msg.Type)
			}
		default:
			t.Errorf("client %s received no message", name)
		}
	}
}

func TestBroadcastScoreUpdate(t *testing.T) {
	hub, cancel := setupHub(t)
	defer cancel()

	client := createTestClient(hub)
	registerClient(hub, client)

	hub.BroadcastScoreUpdate("deal-1", 83.5, 2)
	time.Sleep(20 * time.Millisecond)

	select {
	case msg := <-client.send:
		if msg.Type != MessageTypeScoreUpdate {
			t.Fatalf("message type = %q, want score_update", msg.Type)
		}
		data, ok := msg.Data.(ScoreUpdateData)
		if !ok {
			t.Fatalf("message data is %T, want ScoreUpdateData", msg.Data)
		}
		if data.DealID != "deal-1" || data.Overall != 83.5 || data.Rank != 2 {
			t.Errorf("unexpected payload: %+v", data)
		}
	default:
		t.Fatal("no message received")
	}
}

func TestSlowClientDropped(t *testing.T) {
	hub, cancel := setupHub(t)
	defer cancel()

	// Unbuffered send channel simulates a client that never drains.
	slow := &Client{id: clientIDCounter.Add(1), hub: hub, send: make(chan Message)}
	registerClient(hub, slow)

	hub.BroadcastJSON(MessageTypeScoreUpdate, nil)
	time.Sleep(20 * time.Millisecond)

	if got := hub.GetClientCount(); got != 0 {
		t.Errorf("client count = %d, want 0 after dropping stuck client", got)
	}
}

func TestRunWithContextShutdown(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- hub.RunWithContext(ctx) }()
	time.Sleep(10 * time.Millisecond)

	client := createTestClient(hub)
	registerClient(hub, client)

	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("RunWithContext returned %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("hub did not stop after context cancellation")
	}

	if got := hub.GetClientCount(); got != 0 {
		t.Errorf("client count after shutdown = %d, want 0", got)
	}

	// The client's channel must be closed so its write pump exits.
	select {
	case _, open := <-client.send:
		if open {
			t.Error("client channel delivered a message instead of closing")
		}
	default:
		t.Error("client send channel not closed on shutdown")
	}
}

func TestBroadcastChannelFullDoesNotBlock(t *testing.T) {
	hub := NewHub() // not running, broadcast channel fills up

	donec := make(chan struct{})
	go func() {
		for i := 0; i < 300; i++ {
			hub.BroadcastJSON(MessageTypeScoreUpdate, i)
		}
		close(donec)
	}()

	select {
	case <-donec:
	case <-time.After(time.Second):
		t.Fatal("BroadcastJSON blocked on a full channel")
	}
}

func TestGetShutdownReason(t *testing.T) {
	canceled, cancel := context.WithCancel(context.Background())
	cancel()
	if got := getShutdownReason(canceled); got != ShutdownReasonContextCanceled {
		t.Errorf("reason = %q, want context_canceled", got)
	}

	expired, cancel2 := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel2()
	if got := getShutdownReason(expired); got != ShutdownReasonContextDeadline {
		t.Errorf("reason = %q, want context_deadline", got)
	}
}
