// Package persona holds the static user-persona catalog and the sentiment
// scorer that matches free-text requests against it.
package persona

// KeywordCategory classifies a profile keyword's emotional signal.
type KeywordCategory string

const (
	CategoryAnxiety    KeywordCategory = "anxiety"
	CategoryConfidence KeywordCategory = "confidence"
	CategoryUrgency    KeywordCategory = "urgency"
	CategoryComplexity KeywordCategory = "complexity"
)

// ProfileKeyword is one weighted keyword in a persona's sentiment profile.
type ProfileKeyword struct {
	Keyword  string
	Weight   float64
	Category KeywordCategory
}

// SentimentProfile describes how a persona expresses itself in free text.
type SentimentProfile struct {
	AnxietyIndex    float64
	ComplexityIndex float64
	Keywords        []ProfileKeyword
	Threshold       float64
}

// Weights is a per-factor priority weight vector. Normalized reranker
// weights always sum to 1.
type Weights struct {
	Semantic       float64
	Price          float64
	FuelEfficiency float64
	Safety         float64
	Space          float64
	Brand          float64
	Condition      float64
}

// Sum returns the L1 mass of the vector.
func (w Weights) Sum() float64 {
	return w.Semantic + w.Price + w.FuelEfficiency + w.Safety + w.Space + w.Brand + w.Condition
}

// Normalized returns the vector scaled so its components sum to 1.
func (w Weights) Normalized() Weights {
	sum := w.Sum()
	if sum == 0 {
		return w
	}
	return Weights{
		Semantic:       w.Semantic / sum,
		Price:          w.Price / sum,
		FuelEfficiency: w.FuelEfficiency / sum,
		Safety:         w.Safety / sum,
		Space:          w.Space / sum,
		Brand:          w.Brand / sum,
		Condition:      w.Condition / sum,
	}
}

// Persona is a named user archetype. Instances are immutable catalog data.
type Persona struct {
	ID              string
	Name            string
	BudgetMin       int // 만원
	BudgetMax       int
	Priorities      []string
	Profile         SentimentProfile
	Weights         Weights
	ContextKeywords []string
}

// Persona IDs, in catalog order.
const (
	FirstCarAnxiety     = "first_car_anxiety"
	CEOExecutive        = "ceo_executive"
	FamilySafety        = "family_safety"
	CampingLifestyle    = "camping_lifestyle"
	EconomyCommuter     = "economy_commuter"
	LongDistanceCommute = "long_distance_commuter"
	NewlywedCouple      = "newlywed_couple"
	YoungTrendy         = "young_trendy"
)

// catalog is fixed at process start and never mutated. Order matters:
// earlier personas win score ties.
var catalog = []Persona{
	{
		ID:         FirstCarAnxiety,
		Name:       "첫차가 무서운 사회초년생",
		BudgetMin:  800,
		BudgetMax:  2500,
		Priorities: []string{"안전", "유지비", "관리 편의"},
		Profile: SentimentProfile{
			AnxietyIndex:    0.8,
			ComplexityIndex: 0.6,
			Threshold:       0.3,
			Keywords: []ProfileKeyword{
				{Keyword: "첫차", Weight: 0.4, Category: CategoryComplexity},
				{Keyword: "무서워", Weight: 0.5, Category: CategoryAnxiety},
				{Keyword: "불안", Weight: 0.5, Category: CategoryAnxiety},
				{Keyword: "걱정", Weight: 0.4, Category: CategoryAnxiety},
				{Keyword: "초보", Weight: 0.4, Category: CategoryAnxiety},
				{Keyword: "처음", Weight: 0.3, Category: CategoryComplexity},
				{Keyword: "잘 몰라", Weight: 0.3, Category: CategoryComplexity},
				{Keyword: "사회초년생", Weight: 0.3, Category: CategoryComplexity},
			},
		},
		Weights: Weights{
			Semantic: 0.25, Price: 0.20, FuelEfficiency: 0.10,
			Safety: 0.25, Space: 0.05, Brand: 0.05, Condition: 0.10,
		},
		ContextKeywords: []string{"초보운전", "안전한", "관리하기 쉬운", "소형차"},
	},
	{
		ID:         CEOExecutive,
		Name:       "품격을 찾는 대표님",
		BudgetMin:  4000,
		BudgetMax:  15000,
		Priorities: []string{"브랜드", "의전", "승차감"},
		Profile: SentimentProfile{
			AnxietyIndex:    0.2,
			ComplexityIndex: 0.5,
			Threshold:       0.25,
			Keywords: []ProfileKeyword{
				{Keyword: "법인", Weight: 0.5, Category: CategoryComplexity},
				{Keyword: "대표", Weight: 0.4, Category: CategoryConfidence},
				{Keyword: "의전", Weight: 0.5, Category: CategoryConfidence},
				{Keyword: "골프", Weight: 0.4, Category: CategoryConfidence},
				{Keyword: "접대", Weight: 0.4, Category: CategoryUrgency},
				{Keyword: "품격", Weight: 0.4, Category: CategoryConfidence},
				{Keyword: "중후", Weight: 0.3, Category: CategoryConfidence},
			},
		},
		Weights: Weights{
			Semantic: 0.25, Price: 0.05, FuelEfficiency: 0.05,
			Safety: 0.10, Space: 0.10, Brand: 0.35, Condition: 0.10,
		},
		ContextKeywords: []string{"고급 세단", "프리미엄", "법인차", "대형"},
	},
	{
		ID:         FamilySafety,
		Name:       "아이 안전이 최우선인 부모",
		BudgetMin:  2000,
		BudgetMax:  5000,
		Priorities: []string{"안전", "공간", "편의장비"},
		Profile: SentimentProfile{
			AnxietyIndex:    0.7,
			ComplexityIndex: 0.5,
			Threshold:       0.3,
			Keywords: []ProfileKeyword{
				{Keyword: "아이", Weight: 0.5, Category: CategoryAnxiety},
				{Keyword: "아기", Weight: 0.4, Category: CategoryAnxiety},
				{Keyword: "안전", Weight: 0.5, Category: CategoryAnxiety},
				{Keyword: "가족", Weight: 0.4, Category: CategoryComplexity},
				{Keyword: "카시트", Weight: 0.4, Category: CategoryComplexity},
				{Keyword: "유치원", Weight: 0.3, Category: CategoryUrgency},
			},
		},
		Weights: Weights{
			Semantic: 0.25, Price: 0.15, FuelEfficiency: 0.10,
			Safety: 0.30, Space: 0.15, Brand: 0.03, Condition: 0.02,
		},
		ContextKeywords: []string{"패밀리카", "안전등급", "넓은 실내", "SUV"},
	},
	{
		ID:         CampingLifestyle,
		Name:       "주말마다 떠나는 차박러",
		BudgetMin:  1500,
		BudgetMax:  4500,
		Priorities: []string{"공간", "평탄화", "적재"},
		Profile: SentimentProfile{
			AnxietyIndex:    0.2,
			ComplexityIndex: 0.4,
			Threshold:       0.25,
			Keywords: []ProfileKeyword{
				{Keyword: "캠핑", Weight: 0.5, Category: CategoryConfidence},
				{Keyword: "차박", Weight: 0.5, Category: CategoryConfidence},
				{Keyword: "평탄화", Weight: 0.4, Category: CategoryComplexity},
				{Keyword: "트렁크", Weight: 0.3, Category: CategoryComplexity},
				{Keyword: "여행", Weight: 0.3, Category: CategoryConfidence},
				{Keyword: "주말", Weight: 0.2, Category: CategoryUrgency},
			},
		},
		Weights: Weights{
			Semantic: 0.25, Price: 0.10, FuelEfficiency: 0.10,
			Safety: 0.10, Space: 0.35, Brand: 0.05, Condition: 0.05,
		},
		ContextKeywords: []string{"차박", "평탄화", "SUV", "왜건", "넓은 트렁크"},
	},
	{
		ID:         EconomyCommuter,
		Name:       "유지비가 고민인 출퇴근러",
		BudgetMin:  500,
		BudgetMax:  2000,
		Priorities: []string{"연비", "유지비", "가격"},
		Profile: SentimentProfile{
			AnxietyIndex:    0.5,
			ComplexityIndex: 0.4,
			Threshold:       0.3,
			Keywords: []ProfileKeyword{
				{Keyword: "출퇴근", Weight: 0.4, Category: CategoryUrgency},
				{Keyword: "연비", Weight: 0.5, Category: CategoryComplexity},
				{Keyword: "유지비", Weight: 0.4, Category: CategoryComplexity},
				{Keyword: "경제적", Weight: 0.4, Category: CategoryConfidence},
				{Keyword: "기름값", Weight: 0.4, Category: CategoryAnxiety},
				{Keyword: "저렴", Weight: 0.3, Category: CategoryUrgency},
			},
		},
		Weights: Weights{
			Semantic: 0.20, Price: 0.30, FuelEfficiency: 0.30,
			Safety: 0.05, Space: 0.05, Brand: 0.05, Condition: 0.05,
		},
		ContextKeywords: []string{"연비 좋은", "경차", "하이브리드", "유지비 낮은"},
	},
	{
		ID:         LongDistanceCommute,
		Name:       "장거리 통근자",
		BudgetMin:  1500,
		BudgetMax:  3500,
		Priorities: []string{"연비", "피로도", "내구성"},
		Profile: SentimentProfile{
			AnxietyIndex:    0.4,
			ComplexityIndex: 0.5,
			Threshold:       0.3,
			Keywords: []ProfileKeyword{
				{Keyword: "장거리", Weight: 0.5, Category: CategoryComplexity},
				{Keyword: "고속도로", Weight: 0.4, Category: CategoryConfidence},
				{Keyword: "왕복", Weight: 0.3, Category: CategoryUrgency},
				{Keyword: "디젤", Weight: 0.3, Category: CategoryComplexity},
				{Keyword: "피로", Weight: 0.4, Category: CategoryAnxiety},
			},
		},
		Weights: Weights{
			Semantic: 0.20, Price: 0.15, FuelEfficiency: 0.30,
			Safety: 0.15, Space: 0.05, Brand: 0.05, Condition: 0.10,
		},
		ContextKeywords: []string{"고속 주행", "연비", "중형 세단", "크루즈 컨트롤"},
	},
	{
		ID:         NewlywedCouple,
		Name:       "신혼부부 첫 공동명의",
		BudgetMin:  1800,
		BudgetMax:  4000,
		Priorities: []string{"디자인", "공간", "가성비"},
		Profile: SentimentProfile{
			AnxietyIndex:    0.3,
			ComplexityIndex: 0.4,
			Threshold:       0.25,
			Keywords: []ProfileKeyword{
				{Keyword: "신혼", Weight: 0.5, Category: CategoryConfidence},
				{Keyword: "결혼", Weight: 0.4, Category: CategoryComplexity},
				{Keyword: "부부", Weight: 0.4, Category: CategoryConfidence},
				{Keyword: "둘이", Weight: 0.3, Category: CategoryComplexity},
				{Keyword: "예비", Weight: 0.2, Category: CategoryUrgency},
			},
		},
		Weights: Weights{
			Semantic: 0.25, Price: 0.20, FuelEfficiency: 0.10,
			Safety: 0.20, Space: 0.15, Brand: 0.05, Condition: 0.05,
		},
		ContextKeywords: []string{"신혼부부", "준중형", "깔끔한 디자인"},
	},
	{
		ID:         YoungTrendy,
		Name:       "스타일이 중요한 2030",
		BudgetMin:  1000,
		BudgetMax:  3000,
		Priorities: []string{"디자인", "브랜드", "드라이브"},
		Profile: SentimentProfile{
			AnxietyIndex:    0.2,
			ComplexityIndex: 0.3,
			Threshold:       0.25,
			Keywords: []ProfileKeyword{
				{Keyword: "디자인", Weight: 0.5, Category: CategoryConfidence},
				{Keyword: "스타일", Weight: 0.4, Category: CategoryConfidence},
				{Keyword: "드라이브", Weight: 0.4, Category: CategoryConfidence},
				{Keyword: "예쁜", Weight: 0.3, Category: CategoryConfidence},
				{Keyword: "색상", Weight: 0.3, Category: CategoryComplexity},
				{Keyword: "인스타", Weight: 0.3, Category: CategoryUrgency},
			},
		},
		Weights: Weights{
			Semantic: 0.25, Price: 0.15, FuelEfficiency: 0.10,
			Safety: 0.05, Space: 0.05, Brand: 0.30, Condition: 0.10,
		},
		ContextKeywords: []string{"디자인 좋은", "쿠페", "개성", "깔끔한 외관"},
	},
}

// Catalog returns the full persona catalog in priority order.
func Catalog() []Persona {
	return catalog
}

// ByID looks up a persona by id, returning nil when unknown.
func ByID(id string) *Persona {
	for i := range catalog {
		if catalog[i].ID == id {
			return &catalog[i]
		}
	}
	return nil
}

// DefaultWeights is the factor vector used when no persona is detected.
func DefaultWeights() Weights {
	return Weights{
		Semantic: 0.30, Price: 0.20, FuelEfficiency: 0.10,
		Safety: 0.15, Space: 0.10, Brand: 0.10, Condition: 0.05,
	}
}
