package network

import (
	"os"
	"testing"

	"github.com/peakflames/riddle-sub001/pkg/api"
	"github.com/peakflames/riddle-sub001/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func drain(ch chan api.ServerEvent) []api.ServerEvent {
	out := []api.ServerEvent{}
	for {
		select {
		case ev := <-ch:
			out = append(out, ev)
		default:
			return out
		}
	}
}

func TestPublish_ScopeAll(t *testing.T) {
	hub := NewHub()
	player := hub.Subscribe("sess_1", "conn_p", false)
	mod := hub.Subscribe("sess_1", "conn_m", true)

	hub.Publish("sess_1", EventNarration, api.NarrationEvent{Text: "A door creaks."})

	if got := drain(player); len(got) != 1 || got[0].Event != EventNarration {
		t.Errorf("Player expected 1 narration event, got %v", got)
	}
	if got := drain(mod); len(got) != 1 {
		t.Errorf("Moderator expected 1 narration event, got %v", got)
	}
}

func TestPublish_ScopePlayersExcludesModerator(t *testing.T) {
	hub := NewHub()
	player := hub.Subscribe("sess_1", "conn_p", false)
	mod := hub.Subscribe("sess_1", "conn_m", true)

	hub.Publish("sess_1", EventPulse, api.PulseEvent{Intensity: "rising"})

	if got := drain(player); len(got) != 1 {
		t.Errorf("Player expected the pulse event, got %v", got)
	}
	if got := drain(mod); len(got) != 0 {
		t.Errorf("Moderator must NOT receive player-scoped events, got %v", got)
	}
}

func TestPublish_ScopeModeratorExcludesPlayers(t *testing.T) {
	hub := NewHub()
	player := hub.Subscribe("sess_1", "conn_p", false)
	mod := hub.Subscribe("sess_1", "conn_m", true)

	hub.Publish("sess_1", EventChoiceSubmitted, api.ChoiceSubmittedEvent{PlayerID: "user_1", Choice: "open the door"})

	if got := drain(player); len(got) != 0 {
		t.Errorf("Player must NOT receive moderator-scoped events, got %v", got)
	}
	if got := drain(mod); len(got) != 1 {
		t.Errorf("Moderator expected the submission, got %v", got)
	}
}

func TestPublish_SessionIsolation(t *testing.T) {
	hub := NewHub()
	a := hub.Subscribe("sess_a", "conn_1", false)
	b := hub.Subscribe("sess_b", "conn_2", false)

	hub.Publish("sess_a", EventNarration, api.NarrationEvent{Text: "only for A"})

	if got := drain(a); len(got) != 1 {
		t.Errorf("Session A expected the event, got %v", got)
	}
	if got := drain(b); len(got) != 0 {
		t.Errorf("Session B must stay silent, got %v", got)
	}
}

func TestPublish_UnroutedEventDropped(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe("sess_1", "conn_1", false)

	hub.Publish("sess_1", "no_such_event", nil)

	if got := drain(sub); len(got) != 0 {
		t.Errorf("Unrouted event must be dropped, got %v", got)
	}
}

func TestPublish_FullBufferDoesNotBlock(t *testing.T) {
	hub := NewHub()
	hub.Subscribe("sess_1", "conn_1", false)

	// 150 событий в канал на 100: лишние молча падают, Publish не виснет
	for i := 0; i < 150; i++ {
		hub.Publish("sess_1", EventNarration, api.NarrationEvent{Text: "spam"})
	}
}

func TestSubscribe_ReplaceClosesOldChannel(t *testing.T) {
	hub := NewHub()
	old := hub.Subscribe("sess_1", "conn_1", false)
	fresh := hub.Subscribe("sess_1", "conn_1", false)

	if _, ok := <-old; ok {
		t.Error("Old channel must be closed on re-subscribe")
	}

	hub.Publish("sess_1", EventNarration, api.NarrationEvent{Text: "hi"})
	if got := drain(fresh); len(got) != 1 {
		t.Errorf("Fresh channel expected the event, got %v", got)
	}
	if hub.SubscriberCount("sess_1") != 1 {
		t.Errorf("Expected 1 subscriber, got %d", hub.SubscriberCount("sess_1"))
	}
}

func TestUnsubscribe_PrunesSession(t *testing.T) {
	hub := NewHub()
	ch := hub.Subscribe("sess_1", "conn_1", false)

	hub.Unsubscribe("sess_1", "conn_1")

	if _, ok := <-ch; ok {
		t.Error("Channel must be closed on unsubscribe")
	}
	if hub.SubscriberCount("sess_1") != 0 {
		t.Error("Expected empty session after last unsubscribe")
	}
	// Повторный Unsubscribe — no-op
	hub.Unsubscribe("sess_1", "conn_1")
}
