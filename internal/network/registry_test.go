package network

import "testing"

func TestRegistry_JoinAndGet(t *testing.T) {
	reg := NewRegistry()
	reg.Join(ConnectionEntry{
		ConnID:      "conn_1",
		SessionID:   "sess_1",
		UserID:      "user_1",
		CharacterID: "char_elara",
		DisplayName: "Alice",
	})

	entry := reg.Get("conn_1")
	if entry == nil {
		t.Fatal("Expected entry for conn_1")
	}
	if entry.UserID != "user_1" || entry.CharacterID != "char_elara" {
		t.Errorf("Bad entry: %+v", entry)
	}
	if entry.ConnectedAt.IsZero() {
		t.Error("ConnectedAt must be stamped on Join")
	}

	// Get отдает копию: мутация у вызывающего не трогает реестр
	entry.DisplayName = "Mallory"
	if reg.Get("conn_1").DisplayName != "Alice" {
		t.Error("Get must return a copy, not the stored entry")
	}
}

func TestRegistry_LeaveReturnsEntryAndPrunes(t *testing.T) {
	reg := NewRegistry()
	reg.Join(ConnectionEntry{ConnID: "conn_1", SessionID: "sess_1", UserID: "user_1"})

	removed := reg.Leave("conn_1")
	if removed == nil || removed.UserID != "user_1" {
		t.Fatalf("Expected the removed entry back, got %v", removed)
	}
	if reg.Get("conn_1") != nil {
		t.Error("Entry must be gone after Leave")
	}
	if len(reg.ListPlayers("sess_1")) != 0 {
		t.Error("Session index must be pruned")
	}

	// Повторный Leave того же connID — nil, без паники
	if reg.Leave("conn_1") != nil {
		t.Error("Second Leave must return nil")
	}
}

func TestRegistry_ListPlayers(t *testing.T) {
	reg := NewRegistry()
	reg.Join(ConnectionEntry{ConnID: "conn_1", SessionID: "sess_1", UserID: "user_1"})
	reg.Join(ConnectionEntry{ConnID: "conn_2", SessionID: "sess_1", UserID: "user_2", IsModerator: true})
	reg.Join(ConnectionEntry{ConnID: "conn_3", SessionID: "sess_other", UserID: "user_3"})

	players := reg.ListPlayers("sess_1")
	if len(players) != 2 {
		t.Fatalf("Expected 2 connections in sess_1, got %d", len(players))
	}
	for _, p := range players {
		if p.SessionID != "sess_1" {
			t.Errorf("Foreign session leaked into listing: %+v", p)
		}
	}
}

func TestRegistry_IsOnlineMultiDevice(t *testing.T) {
	reg := NewRegistry()
	reg.Join(ConnectionEntry{ConnID: "phone", SessionID: "sess_1", UserID: "user_1"})
	reg.Join(ConnectionEntry{ConnID: "laptop", SessionID: "sess_1", UserID: "user_1"})

	reg.Leave("phone")
	if !reg.IsOnline("sess_1", "user_1") {
		t.Error("User with a second device must stay online")
	}

	reg.Leave("laptop")
	if reg.IsOnline("sess_1", "user_1") {
		t.Error("User must be offline after the last device leaves")
	}
}
