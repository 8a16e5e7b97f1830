package systems

import (
	"strings"

	"github.com/peakflames/riddle-sub001/internal/domain"
)

// Модель присылает ссылки на сущности как попало: внутренний ID,
// имя в другом регистре, подчеркивания вместо пробелов. Все хендлеры
// обязаны матчить одинаково, поэтому нормализация и поиск живут здесь.

// NormalizeName приводит ссылку к канонической форме для сравнения:
// нижний регистр, '_' и '-' становятся пробелами, лишние пробелы схлопываются.
func NormalizeName(ref string) string {
	s := strings.ToLower(ref)
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, "-", " ")
	return strings.Join(strings.Fields(s), " ")
}

// ResolveCharacter ищет персонажа партии: сначала точный ID, потом
// нормализованное имя. nil, если не нашли.
func ResolveCharacter(sess *domain.Session, ref string) *domain.Character {
	if ref == "" {
		return nil
	}
	if ch := sess.FindCharacter(ref); ch != nil {
		return ch
	}
	want := NormalizeName(ref)
	for i := range sess.Characters {
		if NormalizeName(sess.Characters[i].Name) == want {
			return &sess.Characters[i]
		}
	}
	return nil
}

// ResolveCombatant ищет участника активного боя по тем же правилам.
func ResolveCombatant(enc *domain.CombatEncounter, ref string) *domain.CombatantDetails {
	if enc == nil || ref == "" {
		return nil
	}
	if cd, ok := enc.Combatants[ref]; ok {
		return cd
	}
	want := NormalizeName(ref)
	for _, cd := range enc.Combatants {
		if NormalizeName(cd.Name) == want {
			return cd
		}
	}
	return nil
}

// ResolveEntity — двухпроходный поиск, общий для всех хендлеров:
// сначала партия, затем (если идет бой) участники энкаунтера.
// Ровно одно из возвращаемых значений не-nil при успехе.
func ResolveEntity(sess *domain.Session, ref string) (*domain.Character, *domain.CombatantDetails) {
	if ch := ResolveCharacter(sess, ref); ch != nil {
		return ch, nil
	}
	if cd := ResolveCombatant(sess.Combat, ref); cd != nil {
		return nil, cd
	}
	return nil, nil
}
