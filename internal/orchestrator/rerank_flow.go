package orchestrator

import (
	"context"
	"fmt"
	"sort"

	"github.com/run-bigpig/carpick/internal/models"
	"github.com/run-bigpig/carpick/internal/pattern"
	"github.com/run-bigpig/carpick/internal/pkg/krtext"
	"github.com/run-bigpig/carpick/internal/rerank"
	"github.com/run-bigpig/carpick/internal/tco"
)

// Priority-shift dimensions and their trigger keywords. A follow-up turn
// that matches any of these over existing recommendations takes the
// re-ranking path instead of the multi-round flow.
const (
	ShiftSpace   = "space"
	ShiftEconomy = "economy"
	ShiftSafety  = "safety"
	ShiftPrice   = "price"
	ShiftEase    = "ease"
	ShiftRethink = "rethink"
)

var priorityShiftKeywords = map[string][]string{
	ShiftSpace:   {"평탄", "공간", "차박", "넓은", "넓게", "트렁크"},
	ShiftEconomy: {"연비", "경제적", "유지비", "기름값"},
	ShiftSafety:  {"안전", "아이", "가족"},
	ShiftPrice:   {"가격", "저렴", "싸게", "싼"},
	ShiftEase:    {"운전하기 편한", "운전이 편한", "초보", "주차"},
	ShiftRethink: {"다시 추천", "다시 골라", "우선순위", "다시 생각"},
}

// Stable evaluation order for shift detection.
var shiftOrder = []string{ShiftSpace, ShiftEconomy, ShiftSafety, ShiftPrice, ShiftEase, ShiftRethink}

// Score adjustments applied per shifted dimension.
const (
	spaciousBodyBonus   = 0.15
	sedanSpacePenalty   = 0.05
	topFuelBonus        = 0.15
	midFuelBonus        = 0.08
	reliableBrandBonus  = 0.10
	costEfficiencyBonus = 0.12
)

// DetectPriorityShift returns the priority dimensions a follow-up turn
// shifts toward, in fixed order. Empty when the text carries no shift
// language.
func DetectPriorityShift(text string) []string {
	var shifts []string
	for _, dim := range shiftOrder {
		if krtext.ContainsAny(text, priorityShiftKeywords[dim]) {
			shifts = append(shifts, dim)
		}
	}
	return shifts
}

// rerankTurn recomputes the previous recommendations' scores with
// category bonuses for the shifted dimensions, optionally pulls in fresh
// spacious candidates, and emits the updated ranking. The multi-round agent
// flow never runs on this path.
func (o *Orchestrator) rerankTurn(ctx context.Context, sess *models.A2ASession, req Request, shifts []string, cb EventCallback) (*Result, error) {
	log.Info("re-ranking turn for session %s, shifts: %v", sess.SessionID, shifts)

	o.sessions.AddQuestion(ctx, sess, req.Question)
	o.sessions.SetState(ctx, sess, models.SessionReranking)

	// A priority-shift follow-up means the previous ranking missed; record
	// the dissatisfaction signal on the session before re-ranking.
	o.sessions.UpdateSatisfaction(ctx, sess, 0.4, "우선순위 변경 요청")

	pat := pattern.CollaborationPattern{
		Type:        pattern.Standard,
		Priority:    1,
		Description: "우선순위 변경에 따른 재추천",
		Agents:      []string{sessionRerankAgent},
		KeyTriggers: shifts,
		Resolution:  "category_rerank",
	}
	emit(cb, Event{Type: EventPatternDetected, Content: pat.Description, Pattern: &pat})

	candidates := make([]models.VehicleItem, 0, len(sess.VehicleRecommendations))
	baseScores := make(map[uint]float64, len(sess.VehicleRecommendations))
	for _, rec := range sess.VehicleRecommendations {
		candidates = append(candidates, rec.Vehicle)
		baseScores[rec.Vehicle.ID] = rec.Score
	}

	if hasShift(shifts, ShiftSpace) {
		candidates = o.addSpaciousCandidates(ctx, candidates, req.Budget, baseScores)
	}

	costRanks := tco.CostEfficiencyRanks(candidates)
	scored := make([]models.VehicleRecommendation, 0, len(candidates))
	for _, v := range candidates {
		score := clampScore(baseScores[v.ID] + shiftAdjustment(v, shifts, costRanks))
		scored = append(scored, models.VehicleRecommendation{Vehicle: v, Score: score})
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	if len(scored) > recommendationCount {
		scored = scored[:recommendationCount]
	}

	for i := range scored {
		scored[i].Rank = i + 1
		scored[i].Reason = shiftExplanation(scored[i].Vehicle, shifts)
		scored[i].Pros = prosOf(scored[i].Vehicle, req.Budget)
		scored[i].Cons = consOf(scored[i].Vehicle, req.Budget)
		breakdown := tco.Calculate(scored[i].Vehicle)
		scored[i].TCO = &breakdown

		emit(cb, Event{
			Type:    EventAgentResponse,
			AgentID: sessionRerankAgent,
			Content: scored[i].Reason,
		})
	}

	o.sessions.SaveVehicleRecommendations(ctx, sess, scored)
	emit(cb, Event{Type: EventVehicleRecommendations, Recommendations: scored})
	emit(cb, Event{Type: EventCollaborationComplete, Content: "변경된 우선순위로 재추천을 완료했습니다."})

	return &Result{
		SessionID:       sess.SessionID,
		Pattern:         pat,
		Reranked:        true,
		Recommendations: scored,
	}, nil
}

const sessionRerankAgent = "data_analyst"

// addSpaciousCandidates pulls fresh SUV/van candidates from the full
// inventory when the shift favors space, seeding their base score from the
// deterministic budget and feature scores. Inventory trouble keeps the
// existing candidates.
func (o *Orchestrator) addSpaciousCandidates(ctx context.Context, candidates []models.VehicleItem, budget models.Budget, baseScores map[uint]float64) []models.VehicleItem {
	fresh, err := o.inventory.All(ctx, 0)
	if err != nil {
		log.Warn("fresh candidate fetch failed: %v", err)
		return candidates
	}

	have := make(map[uint]bool, len(candidates))
	for _, v := range candidates {
		have[v.ID] = true
	}

	for _, v := range fresh {
		if have[v.ID] || v.Price > budget.Max*12/10 {
			continue
		}
		switch rerank.BodyTypeOf(v) {
		case rerank.BodySUV, rerank.BodyVan:
			candidates = append(candidates, v)
			baseScores[v.ID] = 0.7*rerank.BudgetScore(v.Price, budget) + 0.3*rerank.FeatureScore(v)
			have[v.ID] = true
		}
	}
	return candidates
}

// shiftAdjustment sums the category bonuses and penalties for one vehicle
// across the shifted dimensions.
func shiftAdjustment(v models.VehicleItem, shifts []string, costRanks map[uint]int) float64 {
	var adj float64
	body := rerank.BodyTypeOf(v)

	for _, dim := range shifts {
		switch dim {
		case ShiftSpace:
			switch body {
			case rerank.BodySUV, rerank.BodyVan, rerank.BodyWagon:
				adj += spaciousBodyBonus
			case rerank.BodySedan:
				adj -= sedanSpacePenalty
			}
		case ShiftEconomy:
			switch rerank.FuelEconomyRank(v.FuelType) {
			case 1:
				adj += topFuelBonus
			case 2:
				adj += midFuelBonus
			}
		case ShiftSafety:
			if tco.ReliabilityRank(v.Manufacturer) <= 3 {
				adj += reliableBrandBonus
			}
			if body == rerank.BodySUV || body == rerank.BodyVan {
				adj += midFuelBonus
			}
		case ShiftPrice, ShiftRethink:
			if rank, ok := costRanks[v.ID]; ok && rank <= 3 {
				adj += costEfficiencyBonus / float64(rank)
			}
		case ShiftEase:
			if v.Displacement > 0 && v.Displacement <= 1600 {
				adj += midFuelBonus
			}
		}
	}
	return adj
}

func shiftExplanation(v models.VehicleItem, shifts []string) string {
	name := fmt.Sprintf("%s %s", v.Manufacturer, v.Model)
	for _, dim := range shifts {
		switch dim {
		case ShiftSpace:
			if bt := rerank.BodyTypeOf(v); bt == rerank.BodySUV || bt == rerank.BodyVan {
				return name + "은(는) 차박과 적재에 유리한 넓은 공간을 갖추고 있어 변경된 우선순위에 잘 맞습니다."
			}
		case ShiftEconomy:
			if rerank.FuelEconomyRank(v.FuelType) <= 2 {
				return name + "은(는) 연료 효율이 뛰어나 유지비 부담을 크게 줄일 수 있습니다."
			}
		case ShiftSafety:
			if tco.ReliabilityRank(v.Manufacturer) <= 3 {
				return name + "은(는) 신뢰도가 높은 브랜드로 가족과 함께 타기에 안심할 수 있습니다."
			}
		}
	}
	return name + "은(는) 변경된 우선순위를 반영해도 여전히 균형 잡힌 선택지입니다."
}

func hasShift(shifts []string, dim string) bool {
	for _, s := range shifts {
		if s == dim {
			return true
		}
	}
	return false
}

func clampScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}
