package systems

import (
	"testing"
)

func TestNormalizeName(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Brom Ironfist", "brom ironfist"},
		{"brom_ironfist", "brom ironfist"},
		{"BROM-IRONFIST", "brom ironfist"},
		{"  brom   ironfist  ", "brom ironfist"},
		{"", ""},
	}
	for _, c := range cases {
		if got := NormalizeName(c.in); got != c.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestResolveCharacter(t *testing.T) {
	sess := partySession()

	if ch := ResolveCharacter(sess, "char_brom"); ch == nil || ch.Name != "Brom Ironfist" {
		t.Error("Expected exact ID match to win")
	}
	if ch := ResolveCharacter(sess, "brom_ironfist"); ch == nil || ch.ID != "char_brom" {
		t.Error("Expected normalized name match")
	}
	if ch := ResolveCharacter(sess, "ELARA"); ch == nil || ch.ID != "char_elara" {
		t.Error("Expected case-insensitive name match")
	}
	if ch := ResolveCharacter(sess, "Vecna"); ch != nil {
		t.Errorf("Expected nil for unknown ref, got %s", ch.Name)
	}
	if ch := ResolveCharacter(sess, ""); ch != nil {
		t.Error("Expected nil for empty ref")
	}
}

func TestResolveCharacter_ReturnsLiveReference(t *testing.T) {
	sess := partySession()

	ch := ResolveCharacter(sess, "Elara")
	ch.CurrentHP = 3

	if sess.Characters[0].CurrentHP != 3 {
		t.Error("Resolved character must point into the session, not a copy")
	}
}

func TestResolveEntity_PartyBeforeCombatants(t *testing.T) {
	sess := partySession()
	enc, _, err := StartCombat(sess,
		[]EnemySpec{{Name: "Goblin", Initiative: 15, MaxHP: 7}},
		map[string]int{"Elara": 18},
		nil,
	)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	sess.Combat = enc

	// Elara exists in both indexes: the party entry wins
	ch, cd := ResolveEntity(sess, "Elara")
	if ch == nil || cd != nil {
		t.Errorf("Expected party match for Elara, got ch=%v cd=%v", ch, cd)
	}

	// The goblin only exists in the encounter
	ch, cd = ResolveEntity(sess, "goblin")
	if ch != nil || cd == nil {
		t.Errorf("Expected combatant match for goblin, got ch=%v cd=%v", ch, cd)
	}

	ch, cd = ResolveEntity(sess, "nobody")
	if ch != nil || cd != nil {
		t.Error("Expected double nil for unknown ref")
	}
}

func TestResolveCombatant_NilEncounter(t *testing.T) {
	if cd := ResolveCombatant(nil, "Goblin"); cd != nil {
		t.Error("Expected nil for nil encounter")
	}
}
