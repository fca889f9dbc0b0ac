package agents

// Canned role responses used when the model call fails. Plain declarative
// sentences only, so extraction files them as findings and the round loop
// converges instead of spawning follow-up questions.
var fallbackResponses = map[Role]string{
	RoleConcierge: "고객님의 요청을 바탕으로 예산과 용도에 맞는 차량을 찾고 있습니다. " +
		"추천: 예산 범위 안에서 연식과 주행거리의 균형이 좋은 차량을 중심으로 안내드리겠습니다.",
	RoleNeedsAnalyst: "요청 내용으로 볼 때 일상 주행 중심의 실용적인 차량 니즈로 판단됩니다. " +
		"유지비 부담이 적고 운전이 편한 차량이 적합합니다.",
	RoleDataAnalyst: "현재 후보 매물은 예산 범위 안에 고르게 분포해 있습니다. " +
		"추천: 동급 대비 주행거리가 짧고 감가가 완만한 매물을 우선 검토하겠습니다.",
}

func fallbackResponse(r Role) string {
	if resp, ok := fallbackResponses[r]; ok {
		return resp
	}
	return fallbackResponses[RoleConcierge]
}
