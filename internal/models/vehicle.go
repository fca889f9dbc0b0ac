package models

// VehicleItem is a flattened used-vehicle inventory record. Prices are in
// 만원 (10,000 KRW), mileage in km. Treated as immutable for the duration of
// a consultation turn.
type VehicleItem struct {
	ID            uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Manufacturer  string `gorm:"size:64;index" json:"manufacturer"`
	Model         string `gorm:"size:128" json:"model"`
	Year          int    `gorm:"index" json:"year"`
	Price         int    `gorm:"index" json:"price"`
	Mileage       int    `json:"mileage"`
	Location      string `gorm:"size:64" json:"location"`
	FuelType      string `gorm:"size:32" json:"fuelType"`
	Displacement  int    `json:"displacement"`
	Color         string `gorm:"size:32" json:"color"`
	ListingURL    string `gorm:"size:512" json:"listingUrl"`
	PhotoURL      string `gorm:"size:512" json:"photoUrl"`
	Platform      string `gorm:"size:32" json:"platform"`
	OriginalPrice int    `json:"originalPrice"`
}

// Budget is the user's price band in 만원. Read-only during a collaboration
// run.
type Budget struct {
	Min           int  `json:"min"`
	Max           int  `json:"max"`
	Flexible      bool `json:"flexible"`
	UserConfirmed bool `json:"userConfirmed"`
}

// Contains reports whether price falls inside the band.
func (b Budget) Contains(price int) bool {
	return price >= b.Min && price <= b.Max
}

// Mid returns the midpoint of the band.
func (b Budget) Mid() int {
	return (b.Min + b.Max) / 2
}

// SimilarityScore holds the per-factor scores produced by the reranker.
// Final is clamped to [0,1].
type SimilarityScore struct {
	Semantic float64 `json:"semantic"`
	Persona  float64 `json:"persona"`
	Budget   float64 `json:"budget"`
	Feature  float64 `json:"feature"`
	Final    float64 `json:"final"`
}

// Explanations carries the generated natural-language rationale for one
// ranked vehicle.
type Explanations struct {
	WhyRecommended string `json:"whyRecommended"`
	PersonaMatch   string `json:"personaMatch"`
	SemanticMatch  string `json:"semanticMatch"`
}

// RankedVehicle is a reranker output row: the vehicle plus its rank movement,
// scores and explanations. Immutable once produced.
type RankedVehicle struct {
	Vehicle      VehicleItem     `json:"vehicle"`
	OriginalRank int             `json:"originalRank"`
	NewRank      int             `json:"newRank"`
	Score        SimilarityScore `json:"similarityScore"`
	Explanation  Explanations    `json:"explanations"`
}

// TCOBreakdown is a 3-year total-cost-of-ownership estimate in 만원.
type TCOBreakdown struct {
	Depreciation   int      `json:"depreciation"`
	Maintenance    int      `json:"maintenance"`
	Fuel           int      `json:"fuel"`
	Insurance      int      `json:"insurance"`
	Total          int      `json:"total"`
	MonthlyAverage int      `json:"monthlyAverage"`
	Insights       []string `json:"insights"`
}

// VehicleRecommendation is the canonical output row of a completed
// consultation: rank, score, rationale, pros/cons and TCO figures.
type VehicleRecommendation struct {
	Rank    int           `json:"rank"`
	Vehicle VehicleItem   `json:"vehicle"`
	Score   float64       `json:"score"`
	Reason  string        `json:"reason"`
	Pros    []string      `json:"pros"`
	Cons    []string      `json:"cons"`
	TCO     *TCOBreakdown `json:"tco,omitempty"`
}
