package systems

import (
	"testing"

	"github.com/peakflames/riddle-sub001/internal/domain"
)

func makeHero(hp int) *domain.Character {
	return &domain.Character{
		ID:        "hero_1",
		Name:      "Elara",
		Kind:      domain.KindPC,
		CurrentHP: hp,
		MaxHP:     10,
	}
}

func TestSetCharacterHP_CrossingDown(t *testing.T) {
	ch := makeHero(10)
	ch.DeathSaveSuccesses = 2 // leftovers from a previous fight must reset

	crossing := SetCharacterHP(ch, -5)

	if crossing != CrossingDown {
		t.Errorf("Expected CrossingDown, got %v", crossing)
	}
	if ch.CurrentHP != 0 {
		t.Errorf("HP should clamp to 0, got %d", ch.CurrentHP)
	}
	if !ch.HasCondition(domain.ConditionUnconscious) {
		t.Error("Expected Unconscious condition")
	}
	if ch.DeathSaveSuccesses != 0 || ch.DeathSaveFailures != 0 {
		t.Errorf("Counters should reset, got %d/%d", ch.DeathSaveSuccesses, ch.DeathSaveFailures)
	}
}

func TestSetCharacterHP_CrossingUp(t *testing.T) {
	ch := makeHero(0)
	ch.AddCondition(domain.ConditionUnconscious)
	ch.AddCondition(domain.ConditionStable)
	ch.DeathSaveSuccesses = 3
	ch.DeathSaveFailures = 1

	crossing := SetCharacterHP(ch, 4)

	if crossing != CrossingUp {
		t.Errorf("Expected CrossingUp, got %v", crossing)
	}
	if ch.HasCondition(domain.ConditionUnconscious) || ch.HasCondition(domain.ConditionStable) {
		t.Errorf("Dying tags should be cleared, got %v", ch.Conditions)
	}
	if ch.DeathSaveSuccesses != 0 || ch.DeathSaveFailures != 0 {
		t.Errorf("Counters should reset, got %d/%d", ch.DeathSaveSuccesses, ch.DeathSaveFailures)
	}
}

func TestSetCharacterHP_NoCrossing(t *testing.T) {
	ch := makeHero(5)
	if crossing := SetCharacterHP(ch, 3); crossing != CrossingNone {
		t.Errorf("Expected CrossingNone, got %v", crossing)
	}
	// Overheal clamps to max
	SetCharacterHP(ch, 99)
	if ch.CurrentHP != 10 {
		t.Errorf("HP should clamp to MaxHP, got %d", ch.CurrentHP)
	}
}

func TestDeathSaves_RejectedWhileHealthy(t *testing.T) {
	ch := makeHero(5)

	if err := DeathSaveSuccess(ch, false); err == nil {
		t.Error("Expected error for success roll at HP > 0")
	}
	if err := DeathSaveFailure(ch, 1); err == nil {
		t.Error("Expected error for failure roll at HP > 0")
	}
	if err := Stabilize(ch); err == nil {
		t.Error("Expected error for stabilize at HP > 0")
	}
	if ch.DeathSaveSuccesses != 0 || ch.DeathSaveFailures != 0 {
		t.Error("Counters must stay untouched on rejected rolls")
	}
}

func TestDeathSaves_RejectedWhenDead(t *testing.T) {
	ch := makeHero(0)
	ch.DeathSaveFailures = 3

	if err := DeathSaveSuccess(ch, false); err == nil {
		t.Error("Expected error for success roll on a dead character")
	}
	if err := Stabilize(ch); err == nil {
		t.Error("Expected error for stabilize on a dead character")
	}
}

func TestDeathSaveSuccess_ReachesStable(t *testing.T) {
	ch := makeHero(0)

	for i := 0; i < 5; i++ { // extra rolls must not push past the cap
		if ch.IsStable() {
			break
		}
		if err := DeathSaveSuccess(ch, false); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
	}

	if ch.DeathSaveSuccesses != 3 {
		t.Errorf("Expected 3 successes, got %d", ch.DeathSaveSuccesses)
	}
	if !ch.IsStable() {
		t.Error("Expected IsStable after 3 successes at 0 HP")
	}
	if !ch.HasCondition(domain.ConditionStable) {
		t.Error("Expected Stable condition tag")
	}
}

func TestDeathSaveSuccess_CriticalRevives(t *testing.T) {
	ch := makeHero(0)
	ch.AddCondition(domain.ConditionUnconscious)
	ch.DeathSaveSuccesses = 2
	ch.DeathSaveFailures = 2

	if err := DeathSaveSuccess(ch, true); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if ch.CurrentHP != 1 {
		t.Errorf("Critical success must set HP to exactly 1, got %d", ch.CurrentHP)
	}
	if ch.HasCondition(domain.ConditionUnconscious) {
		t.Error("Unconscious must be cleared on critical success")
	}
	if ch.DeathSaveSuccesses != 0 || ch.DeathSaveFailures != 0 {
		t.Errorf("Counters must be zeroed, got %d/%d", ch.DeathSaveSuccesses, ch.DeathSaveFailures)
	}
}

func TestDeathSaveFailure_DoubleAndDeath(t *testing.T) {
	ch := makeHero(0)

	// Critical miss counts as two failures
	if err := DeathSaveFailure(ch, 2); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if ch.DeathSaveFailures != 2 {
		t.Errorf("Expected 2 failures, got %d", ch.DeathSaveFailures)
	}

	if err := DeathSaveFailure(ch, 2); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if ch.DeathSaveFailures != 3 {
		t.Errorf("Failures must cap at 3, got %d", ch.DeathSaveFailures)
	}
	if !ch.IsDead() {
		t.Error("Expected IsDead after 3 failures")
	}
	if !ch.HasCondition(domain.ConditionDead) {
		t.Error("Expected Dead condition tag")
	}
}

func TestDeathSaveFailure_RemovesStable(t *testing.T) {
	ch := makeHero(0)
	if err := Stabilize(ch); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !ch.IsStable() {
		t.Fatal("Expected stable character")
	}

	// A stable character can still be hurt back into dying and die
	DeathSaveFailure(ch, 3)

	if ch.HasCondition(domain.ConditionStable) {
		t.Error("Stable tag must be removed on death")
	}
	if !ch.IsDead() {
		t.Error("Expected IsDead")
	}
}

func TestStabilize(t *testing.T) {
	ch := makeHero(0)
	ch.DeathSaveSuccesses = 1

	if err := Stabilize(ch); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if ch.DeathSaveSuccesses != 3 {
		t.Errorf("Stabilize must set successes to 3, got %d", ch.DeathSaveSuccesses)
	}
	if !ch.IsStable() {
		t.Error("Expected IsStable")
	}
}
