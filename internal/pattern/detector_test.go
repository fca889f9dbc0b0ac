package pattern

import (
	"testing"

	"github.com/run-bigpig/carpick/internal/models"
	"github.com/run-bigpig/carpick/internal/persona"
)

func vehiclesAt(prices ...int) []models.VehicleItem {
	out := make([]models.VehicleItem, 0, len(prices))
	for i, p := range prices {
		out = append(out, models.VehicleItem{
			ID:           uint(i + 1),
			Manufacturer: "현대",
			Model:        "아반떼",
			Year:         2021,
			Price:        p,
			Mileage:      40000,
		})
	}
	return out
}

func TestDetectPersonaShortCircuit(t *testing.T) {
	p := persona.ByID(persona.FirstCarAnxiety)
	pat := Detect("첫차 추천해주세요 무서워요", models.Budget{Min: 1600, Max: 2000}, vehiclesAt(1700, 1800), p)

	if pat.Type != PersonaFirstCarAnxiety {
		t.Errorf("type = %s, want %s", pat.Type, PersonaFirstCarAnxiety)
	}
	if pat.Priority != 5 {
		t.Errorf("priority = %d, want 5", pat.Priority)
	}
	if pat.PersonaID != persona.FirstCarAnxiety {
		t.Errorf("personaId = %q, want %q", pat.PersonaID, persona.FirstCarAnxiety)
	}
}

func TestDetectBudgetConstrained(t *testing.T) {
	t.Run("소수의 후보", func(t *testing.T) {
		// Four candidates under a wide budget: constrained purely by supply.
		pat := Detect("2500만원 정도로 차 추천해주세요", models.Budget{Min: 100, Max: 4000},
			vehiclesAt(2400, 2500, 2500, 2600), nil)

		if pat.Type != BudgetConstrained {
			t.Fatalf("type = %s, want %s", pat.Type, BudgetConstrained)
		}
		if pat.Priority != 5 {
			t.Errorf("priority = %d, want 5", pat.Priority)
		}
		if pat.PersonaID != "" {
			t.Errorf("personaId should be empty, got %q", pat.PersonaID)
		}
	})

	t.Run("평균가 초과", func(t *testing.T) {
		pat := Detect("세단 위주로 봐주세요", models.Budget{Min: 1000, Max: 1500},
			vehiclesAt(2000, 2100, 2200, 2300, 2400, 2500), nil)

		if pat.Type != BudgetConstrained {
			t.Fatalf("type = %s, want %s", pat.Type, BudgetConstrained)
		}
		if !hasTrigger(pat, "average_price_over_budget") {
			t.Errorf("missing average_price_over_budget trigger: %v", pat.KeyTriggers)
		}
	})

	t.Run("저예산 고급 취향", func(t *testing.T) {
		pat := Detect("벤츠 스타일 세단이 좋아요", models.Budget{Min: 1000, Max: 2000},
			vehiclesAt(1500, 1600, 1700, 1800, 1900, 2000), nil)

		if pat.Type != BudgetConstrained {
			t.Fatalf("type = %s, want %s", pat.Type, BudgetConstrained)
		}
		if !hasTrigger(pat, "luxury_taste_low_budget") {
			t.Errorf("missing luxury_taste_low_budget trigger: %v", pat.KeyTriggers)
		}
	})
}

func TestDetectConflicting(t *testing.T) {
	pat := Detect("연비 좋고 경제적인데 넓은 대형 SUV요", models.Budget{Min: 2000, Max: 3000},
		vehiclesAt(2200, 2400, 2600, 2800, 2900), nil)

	if pat.Type != ConflictingRequirements {
		t.Fatalf("type = %s, want %s", pat.Type, ConflictingRequirements)
	}
	if pat.Priority != 4 {
		t.Errorf("priority = %d, want 4", pat.Priority)
	}
}

func TestDetectInformationGap(t *testing.T) {
	t.Run("짧은 요청", func(t *testing.T) {
		pat := Detect("차 추천", models.Budget{Min: 1000, Max: 2000},
			vehiclesAt(1200, 1400, 1600, 1800, 1900), nil)
		if pat.Type != InformationGap {
			t.Fatalf("type = %s, want %s", pat.Type, InformationGap)
		}
	})

	t.Run("모호한 표현", func(t *testing.T) {
		pat := Detect("아무거나 괜찮은 차로 알아서 추천해주시면 됩니다", models.Budget{Min: 1000, Max: 2000},
			vehiclesAt(1200, 1400, 1600, 1800, 1900), nil)
		if pat.Type != InformationGap {
			t.Fatalf("type = %s, want %s", pat.Type, InformationGap)
		}
	})

	t.Run("구체적 요구사항 부재", func(t *testing.T) {
		// Normal length, nothing vague, but no concrete requirement either.
		pat := Detect("중고차 한 대 장만하려고 생각하고 있습니다", models.Budget{Min: 1000, Max: 2000},
			vehiclesAt(1200, 1400, 1600, 1800, 1900), nil)
		if pat.Type != InformationGap {
			t.Fatalf("type = %s, want %s", pat.Type, InformationGap)
		}
		if !hasTrigger(pat, "no_concrete_requirement") {
			t.Errorf("triggers = %v, want no_concrete_requirement", pat.KeyTriggers)
		}
	})

	t.Run("요구사항이 구체적이면 미해당", func(t *testing.T) {
		pat := Detect("연비 좋은 가솔린 세단을 찾고 있어요, 주행거리 짧은 걸로요", models.Budget{Min: 1500, Max: 2500},
			vehiclesAt(1600, 1800, 2000, 2200, 2400), nil)
		if pat.Type == InformationGap {
			t.Error("specific request should not be an information gap")
		}
	})
}

func TestDetectStandardFallback(t *testing.T) {
	pat := Detect("출근용으로 쓸 가솔린 세단 추천 부탁드립니다", models.Budget{Min: 1500, Max: 2500},
		vehiclesAt(1600, 1800, 2000, 2200, 2400), nil)

	if pat.Type != Standard {
		t.Errorf("type = %s, want %s", pat.Type, Standard)
	}
	if pat.Priority != 1 {
		t.Errorf("priority = %d, want 1", pat.Priority)
	}
}

func TestShouldUpgrade(t *testing.T) {
	std := standardPattern()
	constrained := CollaborationPattern{Type: BudgetConstrained, Priority: 5}

	if !ShouldUpgrade(std, constrained) {
		t.Error("higher priority must upgrade")
	}
	if ShouldUpgrade(constrained, std) {
		t.Error("patterns never downgrade")
	}
	if ShouldUpgrade(constrained, constrained) {
		t.Error("equal priority must not replace")
	}
}

func hasTrigger(pat CollaborationPattern, trigger string) bool {
	for _, tr := range pat.KeyTriggers {
		if tr == trigger {
			return true
		}
	}
	return false
}
