package systems

import (
	"testing"

	"github.com/peakflames/riddle-sub001/internal/domain"
)

func partySession() *domain.Session {
	return &domain.Session{
		ID:   "sess_1",
		Name: "Test Campaign",
		Characters: []domain.Character{
			{ID: "char_elara", Name: "Elara", Kind: domain.KindPC, CurrentHP: 10, MaxHP: 10},
			{ID: "char_brom", Name: "Brom Ironfist", Kind: domain.KindPC, CurrentHP: 14, MaxHP: 14},
		},
	}
}

func TestStartCombat_Order(t *testing.T) {
	sess := partySession()

	enc, warnings, err := StartCombat(sess,
		[]EnemySpec{{Name: "Goblin", Initiative: 15, MaxHP: 7}},
		map[string]int{"Elara": 18},
		nil,
	)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("Expected no warnings, got %v", warnings)
	}

	if enc.Round != 1 || enc.CurrentTurnIndex != 0 {
		t.Errorf("Expected round=1 index=0, got round=%d index=%d", enc.Round, enc.CurrentTurnIndex)
	}
	if len(enc.TurnOrder) != 2 {
		t.Fatalf("Expected 2 combatants, got %d", len(enc.TurnOrder))
	}
	if enc.Combatants[enc.TurnOrder[0]].Name != "Elara" {
		t.Errorf("Expected Elara first, got %s", enc.Combatants[enc.TurnOrder[0]].Name)
	}
	if enc.Combatants[enc.TurnOrder[1]].Name != "Goblin" {
		t.Errorf("Expected Goblin second, got %s", enc.Combatants[enc.TurnOrder[1]].Name)
	}
	// Party member must mirror the character sheet
	elara := enc.Combatants[enc.TurnOrder[0]]
	if elara.ID != "char_elara" || elara.CurrentHP != 10 || elara.Type != domain.CombatantPC {
		t.Errorf("Bad party combatant details: %+v", elara)
	}
}

func TestStartCombat_ClampsAndSkips(t *testing.T) {
	sess := partySession()

	enc, warnings, err := StartCombat(sess,
		[]EnemySpec{{Name: "Ogre", Initiative: 99, MaxHP: 30}},
		map[string]int{"Elara": 0, "Nobody": 12},
		nil,
	)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// 99 -> 30, 0 -> 1, "Nobody" skipped: three warnings, combat still starts
	if len(warnings) != 3 {
		t.Errorf("Expected 3 warnings, got %v", warnings)
	}
	if len(enc.TurnOrder) != 2 {
		t.Fatalf("Expected 2 combatants, got %d", len(enc.TurnOrder))
	}
	if ogre := enc.Combatants[enc.TurnOrder[0]]; ogre.Initiative != 30 {
		t.Errorf("Expected ogre initiative clamped to 30, got %d", ogre.Initiative)
	}
}

func TestStartCombat_TiesKeepInputOrder(t *testing.T) {
	sess := partySession()

	enc, _, err := StartCombat(sess,
		[]EnemySpec{
			{Name: "Wolf A", Initiative: 12, MaxHP: 5},
			{Name: "Wolf B", Initiative: 12, MaxHP: 5},
		},
		map[string]int{"Elara": 12},
		nil,
	)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	names := []string{}
	for _, id := range enc.TurnOrder {
		names = append(names, enc.Combatants[id].Name)
	}
	// Party is assembled before enemies, enemies keep their input order
	want := []string{"Elara", "Wolf A", "Wolf B"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("Expected order %v, got %v", want, names)
		}
	}
}

func TestAdvanceTurn_WrapClearsSurprise(t *testing.T) {
	sess := partySession()
	enc, _, err := StartCombat(sess,
		[]EnemySpec{{Name: "Goblin", Initiative: 15, MaxHP: 7}},
		map[string]int{"Elara": 18},
		[]string{"Goblin"},
	)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(enc.Surprised) != 1 {
		t.Fatalf("Expected 1 surprised combatant, got %d", len(enc.Surprised))
	}

	if err := AdvanceTurn(enc); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if enc.Round != 1 || enc.CurrentTurnIndex != 1 {
		t.Errorf("Expected round=1 index=1, got round=%d index=%d", enc.Round, enc.CurrentTurnIndex)
	}

	if err := AdvanceTurn(enc); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if enc.Round != 2 || enc.CurrentTurnIndex != 0 {
		t.Errorf("Expected round=2 index=0, got round=%d index=%d", enc.Round, enc.CurrentTurnIndex)
	}
	if enc.Surprised != nil {
		t.Errorf("Surprised set must be cleared entering round 2, got %v", enc.Surprised)
	}
}

func TestAdvanceTurn_NoEncounter(t *testing.T) {
	if err := AdvanceTurn(nil); err == nil {
		t.Error("Expected error for nil encounter")
	}
}

func TestDefeat_LastEnemyEndsCombat(t *testing.T) {
	sess := partySession()
	enc, _, _ := StartCombat(sess,
		[]EnemySpec{{Name: "Goblin", Initiative: 15, MaxHP: 7}},
		map[string]int{"Elara": 18},
		nil,
	)

	goblin := ResolveCombatant(enc, "Goblin")
	defeated, ended := SetCombatantHP(enc, goblin, 0)

	if !defeated {
		t.Error("Expected goblin to be defeated at 0 HP")
	}
	if !ended {
		t.Error("Expected combat to end: the goblin was the only enemy")
	}
	if !goblin.IsDefeated {
		t.Error("Expected IsDefeated flag")
	}
	if enc.OrderPosition(goblin.ID) != -1 {
		t.Error("Defeated combatant must leave the turn order")
	}
}

func TestDefeat_IndexShift(t *testing.T) {
	sess := partySession()
	enc, _, _ := StartCombat(sess,
		[]EnemySpec{
			{Name: "Goblin", Initiative: 20, MaxHP: 7},
			{Name: "Ogre", Initiative: 5, MaxHP: 30},
		},
		map[string]int{"Elara": 12},
		nil,
	)
	// Order: Goblin(20), Elara(12), Ogre(5). Make Elara the current actor.
	if err := AdvanceTurn(enc); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if enc.CurrentTurnIndex != 1 {
		t.Fatalf("Expected index 1, got %d", enc.CurrentTurnIndex)
	}

	// Goblin (slot 0, before current) dies: index shifts down, Elara stays current.
	goblin := ResolveCombatant(enc, "Goblin")
	_, ended := SetCombatantHP(enc, goblin, 0)
	if ended {
		t.Fatal("Combat must continue, the ogre is alive")
	}
	if enc.CurrentTurnIndex != 0 {
		t.Errorf("Expected index shifted to 0, got %d", enc.CurrentTurnIndex)
	}
	if active := enc.Combatants[enc.ActiveCombatantID()]; active.Name != "Elara" {
		t.Errorf("Expected Elara to stay active, got %s", active.Name)
	}
}

func TestDefeat_LastSlotWrapsToZero(t *testing.T) {
	sess := partySession()
	enc, _, _ := StartCombat(sess,
		[]EnemySpec{
			{Name: "Goblin", Initiative: 5, MaxHP: 7},
			{Name: "Ogre", Initiative: 3, MaxHP: 30},
		},
		map[string]int{"Elara": 12},
		nil,
	)
	// Order: Elara(12), Goblin(5), Ogre(3). Move to the last slot.
	AdvanceTurn(enc)
	AdvanceTurn(enc)
	if enc.CurrentTurnIndex != 2 {
		t.Fatalf("Expected index 2, got %d", enc.CurrentTurnIndex)
	}

	// The current, last combatant dies: index wraps to 0.
	ogre := ResolveCombatant(enc, "Ogre")
	SetCombatantHP(enc, ogre, 0)
	if enc.CurrentTurnIndex != 0 {
		t.Errorf("Expected index wrapped to 0, got %d", enc.CurrentTurnIndex)
	}
}

func TestInsertCombatant_KeepsDescendingOrder(t *testing.T) {
	sess := partySession()
	enc, _, _ := StartCombat(sess,
		[]EnemySpec{{Name: "Goblin", Initiative: 15, MaxHP: 7}},
		map[string]int{"Elara": 18},
		nil,
	)

	reinforcement := &domain.CombatantDetails{
		ID: "npc_wolf", Name: "Wolf", Type: domain.CombatantEnemy,
		Initiative: 16, CurrentHP: 5, MaxHP: 5,
	}
	InsertCombatant(enc, reinforcement)

	names := []string{}
	for _, id := range enc.TurnOrder {
		names = append(names, enc.Combatants[id].Name)
	}
	want := []string{"Elara", "Wolf", "Goblin"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("Expected order %v, got %v", want, names)
		}
	}
}

func TestRemoveCombatant_Gone(t *testing.T) {
	sess := partySession()
	enc, _, _ := StartCombat(sess,
		[]EnemySpec{{Name: "Goblin", Initiative: 15, MaxHP: 7}},
		map[string]int{"Elara": 18},
		nil,
	)

	goblin := ResolveCombatant(enc, "Goblin")
	if !RemoveCombatant(enc, goblin.ID) {
		t.Fatal("Expected removal to succeed")
	}
	if ResolveCombatant(enc, "Goblin") != nil {
		t.Error("Removed combatant must not resolve anymore")
	}
	if len(enc.TurnOrder) != 1 {
		t.Errorf("Expected 1 combatant left, got %d", len(enc.TurnOrder))
	}
}
