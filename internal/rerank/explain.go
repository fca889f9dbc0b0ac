package rerank

import (
	"fmt"
	"strings"
	"time"

	"github.com/run-bigpig/carpick/internal/models"
)

// explain generates the natural-language rationale for one ranked vehicle.
func explain(rv *models.RankedVehicle, req Request) models.Explanations {
	return models.Explanations{
		WhyRecommended: whyRecommended(rv),
		PersonaMatch:   personaMatch(rv, req),
		SemanticMatch:  fmt.Sprintf("요청하신 조건과의 유사도는 %d%%예요", int(rv.Score.Semantic*100)),
	}
}

func whyRecommended(rv *models.RankedVehicle) string {
	v := rv.Vehicle
	var parts []string

	if rv.Score.Budget >= 1.0 {
		parts = append(parts, "예산 범위에 딱 맞고")
	} else if rv.Score.Budget >= 0.5 {
		parts = append(parts, "예산에서 크게 벗어나지 않고")
	}

	age := time.Now().Year() - v.Year
	switch {
	case age <= 3 && v.Mileage <= 60000:
		parts = append(parts, "연식과 주행거리 모두 여유가 있어요")
	case v.Mileage <= 80000:
		parts = append(parts, "주행거리가 적당한 편이에요")
	default:
		parts = append(parts, "가격 대비 상품성이 좋아요")
	}

	return fmt.Sprintf("%s %s은(는) %s", v.Manufacturer, v.Model, strings.Join(parts, " "))
}

func personaMatch(rv *models.RankedVehicle, req Request) string {
	if req.Persona == nil {
		return ""
	}
	top := ""
	if len(req.Persona.Priorities) > 0 {
		top = req.Persona.Priorities[0]
	}
	return fmt.Sprintf("%s 분들이 중요하게 보는 %s 기준에서 %d%% 잘 맞아요",
		req.Persona.Name, top, int(rv.Score.Persona*100))
}
