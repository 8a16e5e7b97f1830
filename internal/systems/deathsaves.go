package systems

import (
	"fmt"

	"github.com/peakflames/riddle-sub001/internal/domain"
)

// Машина состояний умирания для персонажей партии.
// Персонаж с HP <= 0 находится в под-состоянии:
//   dying (0-2 успеха, 0-2 провала) -> stable (3 успеха) | dead (3 провала),
// либо возвращается в строй, если HP поднялся выше нуля.

// HPCrossing описывает пересечение нуля при изменении HP.
type HPCrossing int

const (
	CrossingNone HPCrossing = iota
	CrossingDown            // был > 0, стал <= 0
	CrossingUp              // был <= 0, стал > 0
)

// SetCharacterHP выставляет новое значение HP и применяет переходы
// состояния при пересечении нуля. HP ограничивается диапазоном [0, MaxHP].
func SetCharacterHP(ch *domain.Character, newHP int) HPCrossing {
	if newHP > ch.MaxHP {
		newHP = ch.MaxHP
	}
	if newHP < 0 {
		newHP = 0
	}

	wasUp := ch.CurrentHP > 0
	ch.CurrentHP = newHP

	switch {
	case wasUp && newHP <= 0:
		// Падение: без сознания, счетчики с нуля.
		ch.AddCondition(domain.ConditionUnconscious)
		ch.ResetDeathSaves()
		return CrossingDown

	case !wasUp && newHP > 0:
		// Подъем: в строй, следы умирания стираются.
		ch.RemoveCondition(domain.ConditionUnconscious)
		ch.RemoveCondition(domain.ConditionStable)
		ch.ResetDeathSaves()
		return CrossingUp
	}
	return CrossingNone
}

// guardDying проверяет, что спасбросок вообще уместен.
func guardDying(ch *domain.Character) error {
	if ch.CurrentHP > 0 {
		return fmt.Errorf("%s is not dying (current HP %d)", ch.Name, ch.CurrentHP)
	}
	if ch.IsDead() {
		return fmt.Errorf("%s is already dead", ch.Name)
	}
	return nil
}

// DeathSaveSuccess фиксирует успешный спасбросок.
// critical (натуральная 20) — полное возвращение в строй с 1 HP.
// Обычный успех двигает счетчик к потолку 3; на трех успехах — Stable.
func DeathSaveSuccess(ch *domain.Character, critical bool) error {
	if err := guardDying(ch); err != nil {
		return err
	}

	if critical {
		ch.CurrentHP = 1
		ch.RemoveCondition(domain.ConditionUnconscious)
		ch.RemoveCondition(domain.ConditionStable)
		ch.ResetDeathSaves()
		return nil
	}

	if ch.DeathSaveSuccesses < 3 {
		ch.DeathSaveSuccesses++
	}
	if ch.DeathSaveSuccesses >= 3 {
		ch.AddCondition(domain.ConditionStable)
	}
	return nil
}

// DeathSaveFailure фиксирует провал. amount позволяет двойной провал
// на критическом промахе; счетчик не уходит выше 3.
// Три провала — Dead, тег Stable снимается.
func DeathSaveFailure(ch *domain.Character, amount int) error {
	if err := guardDying(ch); err != nil {
		return err
	}
	if amount < 1 {
		amount = 1
	}

	ch.DeathSaveFailures += amount
	if ch.DeathSaveFailures > 3 {
		ch.DeathSaveFailures = 3
	}
	if ch.DeathSaveFailures >= 3 {
		ch.AddCondition(domain.ConditionDead)
		ch.RemoveCondition(domain.ConditionStable)
	}
	return nil
}

// Stabilize — внешнее вмешательство (медицина, заклинание).
// Безусловно выставляет 3 успеха и тег Stable.
func Stabilize(ch *domain.Character) error {
	if err := guardDying(ch); err != nil {
		return err
	}
	ch.DeathSaveSuccesses = 3
	ch.AddCondition(domain.ConditionStable)
	return nil
}
