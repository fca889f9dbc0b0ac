package agents

import (
	"fmt"
	"strings"

	"github.com/run-bigpig/carpick/internal/blackboard"
)

func buildConciergePrompt(sc *blackboard.SharedContext) string {
	var sb strings.Builder
	sb.WriteString("당신은 중고차 상담 서비스의 컨시어지입니다. 고객 요청을 종합적으로 파악하고 상담 방향을 제시하세요.\n\n")
	writeRequest(&sb, sc)
	writeInsightHistory(&sb, sc)
	sb.WriteString("## 작성 지침\n")
	sb.WriteString("1. 고객이 진짜 원하는 것이 무엇인지 핵심 발견을 2~3문장으로 정리\n")
	sb.WriteString("2. 상담에서 주의할 점이 있으면 '우려:'로 시작하는 문장으로 기술\n")
	sb.WriteString("3. 다른 분석가에게 확인이 필요하면 물음표로 끝나는 질문으로 기술\n")
	sb.WriteString("4. 어떤 방향의 차량을 추천할지 '추천:'으로 시작하는 문장으로 제안\n")
	return sb.String()
}

func buildNeedsAnalystPrompt(sc *blackboard.SharedContext) string {
	var sb strings.Builder
	sb.WriteString("당신은 고객 니즈 분석가입니다. 문장 뒤에 숨은 라이프스타일과 실제 용도를 찾아내세요.\n\n")
	writeRequest(&sb, sc)
	writeInsightHistory(&sb, sc)
	sb.WriteString("## 작성 지침\n")
	sb.WriteString("1. 고객의 라이프스타일, 주 사용 용도, 동승자 구성을 추정해 핵심 발견으로 정리\n")
	sb.WriteString("2. 요청에서 드러나지 않은 잠재 니즈가 있으면 짚어주세요\n")
	sb.WriteString("3. 불안감이나 걱정이 느껴지면 '우려:' 문장으로 기술\n")
	sb.WriteString("4. 데이터 확인이 필요하면 물음표로 끝나는 질문으로 기술\n")
	return sb.String()
}

func buildDataAnalystPrompt(sc *blackboard.SharedContext) string {
	var sb strings.Builder
	sb.WriteString("당신은 중고차 시세 데이터 분석가입니다. 매물 데이터와 예산을 근거로 판단하세요.\n\n")
	writeRequest(&sb, sc)
	writeVehicleSummary(&sb, sc)
	writeInsightHistory(&sb, sc)
	sb.WriteString("## 작성 지침\n")
	sb.WriteString("1. 예산 대비 매물 분포를 핵심 발견으로 정리 (가격대, 연식, 주행거리)\n")
	sb.WriteString("2. 예산이 빠듯하거나 매물이 부족하면 '우려:' 문장으로 기술\n")
	sb.WriteString("3. 고객 정보가 더 필요하면 물음표로 끝나는 질문으로 기술\n")
	sb.WriteString("4. 데이터상 유리한 선택지를 '추천:' 문장으로 제안\n")
	return sb.String()
}

func buildAnswerPrompt(a *Agent, sc *blackboard.SharedContext, q *blackboard.InterAgentQuestion) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("당신은 %s입니다. 동료 분석가의 질문에 전문 분야 관점에서 간결하게 답하세요.\n\n", a.Name))
	writeRequest(&sb, sc)
	sb.WriteString("## 동료의 질문\n")
	sb.WriteString(fmt.Sprintf("(%s) %s\n", q.FromAgent, q.Question))
	if q.Context != "" {
		sb.WriteString("맥락: " + q.Context + "\n")
	}
	sb.WriteString("\n2~3문장으로 답변하세요.\n")
	return sb.String()
}

func buildConsensusPrompt(a *Agent, sc *blackboard.SharedContext, disputed []string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("당신은 %s입니다. 분석가들 사이에 의견이 갈린 지점을 정리하고 합의안을 제시하세요.\n\n", a.Name))
	writeRequest(&sb, sc)
	sb.WriteString("## 쟁점\n")
	for _, d := range disputed {
		sb.WriteString("- " + d + "\n")
	}
	sb.WriteString("\n각 쟁점에 대해 고객 입장에서 가장 합리적인 절충안을 2~3문장으로 제시하세요.\n")
	return sb.String()
}

func writeRequest(sb *strings.Builder, sc *blackboard.SharedContext) {
	sb.WriteString("## 고객 요청\n")
	sb.WriteString(sc.OriginalQuestion + "\n")
	if sc.Budget.Max > 0 {
		sb.WriteString(fmt.Sprintf("예산: %d만원 ~ %d만원\n", sc.Budget.Min, sc.Budget.Max))
	}
	if len(sc.UserNeeds) > 0 {
		sb.WriteString("파악된 니즈: " + strings.Join(sc.UserNeeds, ", ") + "\n")
	}
	sb.WriteString("\n")
}

// writeVehicleSummary appends at most maxListedVehicles candidate lines so the
// prompt stays bounded regardless of inventory size.
const maxListedVehicles = 10

func writeVehicleSummary(sb *strings.Builder, sc *blackboard.SharedContext) {
	if len(sc.VehicleData) == 0 {
		return
	}
	sb.WriteString(fmt.Sprintf("## 후보 매물 (%d대)\n", len(sc.VehicleData)))
	for i, v := range sc.VehicleData {
		if i >= maxListedVehicles {
			sb.WriteString(fmt.Sprintf("... 외 %d대\n", len(sc.VehicleData)-maxListedVehicles))
			break
		}
		sb.WriteString(fmt.Sprintf("- %s %s %d년식, %d만원, %dkm, %s\n",
			v.Manufacturer, v.Model, v.Year, v.Price, v.Mileage, v.FuelType))
	}
	sb.WriteString("\n")
}

func writeInsightHistory(sb *strings.Builder, sc *blackboard.SharedContext) {
	insights := sc.InsightLog()
	if len(insights) == 0 {
		return
	}
	sb.WriteString("## 지금까지의 분석\n")
	for _, in := range insights {
		for _, f := range in.KeyFindings {
			sb.WriteString(fmt.Sprintf("- [%s] %s\n", in.AgentID, f))
		}
	}
	sb.WriteString("\n")
}
