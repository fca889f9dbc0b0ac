// Package tco estimates the 3-year total cost of ownership for a used
// vehicle from static brand and fuel-type statistics. All figures are in
// 만원.
package tco

import (
	"fmt"
	"sort"
	"time"

	"github.com/run-bigpig/carpick/internal/models"
)

// Assumed annual driving distance in km.
const annualDistanceKm = 15000

// Horizon of the estimate in years.
const horizonYears = 3

// brandStat holds per-manufacturer statistics.
type brandStat struct {
	DepreciationRate float64 // annual value loss fraction
	Reliability      float64 // maintenance cost multiplier, lower is better
}

// defaultBrandStat covers manufacturers missing from the table.
var defaultBrandStat = brandStat{DepreciationRate: 0.15, Reliability: 1.1}

var brandStats = map[string]brandStat{
	"현대":     {DepreciationRate: 0.13, Reliability: 0.9},
	"기아":     {DepreciationRate: 0.13, Reliability: 0.9},
	"제네시스":   {DepreciationRate: 0.16, Reliability: 0.95},
	"쉐보레":    {DepreciationRate: 0.17, Reliability: 1.1},
	"르노코리아":  {DepreciationRate: 0.18, Reliability: 1.1},
	"KG모빌리티": {DepreciationRate: 0.18, Reliability: 1.15},
	"도요타":    {DepreciationRate: 0.11, Reliability: 0.8},
	"렉서스":    {DepreciationRate: 0.12, Reliability: 0.8},
	"혼다":     {DepreciationRate: 0.13, Reliability: 0.85},
	"BMW":    {DepreciationRate: 0.19, Reliability: 1.35},
	"벤츠":     {DepreciationRate: 0.18, Reliability: 1.3},
	"아우디":    {DepreciationRate: 0.20, Reliability: 1.35},
	"폭스바겐":   {DepreciationRate: 0.18, Reliability: 1.25},
	"볼보":     {DepreciationRate: 0.16, Reliability: 1.15},
	"포르쉐":    {DepreciationRate: 0.14, Reliability: 1.5},
	"미니":     {DepreciationRate: 0.18, Reliability: 1.3},
	"테슬라":    {DepreciationRate: 0.20, Reliability: 1.0},
}

// fuelCostPerKm is the fuel/energy cost per km in 만원.
var fuelCostPerKm = map[string]float64{
	"가솔린":   0.011,
	"디젤":    0.009,
	"LPG":   0.007,
	"하이브리드": 0.007,
	"전기":    0.004,
}

const defaultFuelCostPerKm = 0.011

// Calculate estimates the 3-year TCO for one vehicle as of now.
func Calculate(v models.VehicleItem) models.TCOBreakdown {
	return CalculateAt(v, time.Now())
}

// CalculateAt estimates the 3-year TCO for one vehicle as of the given time.
func CalculateAt(v models.VehicleItem, now time.Time) models.TCOBreakdown {
	stat := brandStatFor(v.Manufacturer)
	age := now.Year() - v.Year
	if age < 0 {
		age = 0
	}

	depreciation := depreciationOver(v.Price, stat.DepreciationRate, age)
	maintenance := maintenanceOver(age, v.Mileage, stat.Reliability)
	fuel := fuelOver(v.FuelType)
	insurance := insuranceOver(v.Price, age)

	total := depreciation + maintenance + fuel + insurance
	breakdown := models.TCOBreakdown{
		Depreciation:   depreciation,
		Maintenance:    maintenance,
		Fuel:           fuel,
		Insurance:      insurance,
		Total:          total,
		MonthlyAverage: total / (horizonYears * 12),
	}
	breakdown.Insights = insights(v, stat, breakdown)
	return breakdown
}

// brandStatFor returns the statistics row for a manufacturer.
func brandStatFor(manufacturer string) brandStat {
	if s, ok := brandStats[manufacturer]; ok {
		return s
	}
	return defaultBrandStat
}

// ReliabilityRank orders manufacturers by maintenance reliability, 1 being
// the most reliable. Unknown brands rank behind every known one.
func ReliabilityRank(manufacturer string) int {
	stat, known := brandStats[manufacturer]
	if !known {
		return len(brandStats) + 1
	}

	rank := 1
	for _, s := range brandStats {
		if s.Reliability < stat.Reliability {
			rank++
		}
	}
	return rank
}

// depreciationOver estimates value loss over the horizon. Older vehicles sit
// lower on the depreciation curve and lose value more slowly.
func depreciationOver(price int, rate float64, age int) int {
	ageFactor := 1.0
	switch {
	case age > 6:
		ageFactor = 0.6
	case age > 3:
		ageFactor = 0.8
	}
	effective := rate * ageFactor

	remaining := 1.0
	for i := 0; i < horizonYears; i++ {
		remaining *= 1 - effective
	}
	return int(float64(price) * (1 - remaining))
}

// maintenanceOver estimates service and repair cost over the horizon.
func maintenanceOver(age, mileage int, reliability float64) int {
	annual := 40.0 + 10.0*float64(age) + float64(mileage)/20000.0*10.0
	return int(annual * reliability * horizonYears)
}

// fuelOver estimates fuel/energy cost over the horizon.
func fuelOver(fuelType string) int {
	cpk, ok := fuelCostPerKm[fuelType]
	if !ok {
		cpk = defaultFuelCostPerKm
	}
	return int(cpk * annualDistanceKm * horizonYears)
}

// insuranceOver estimates premium cost over the horizon from the price band.
func insuranceOver(price, age int) int {
	var annual float64
	switch {
	case price < 1000:
		annual = 80
	case price < 3000:
		annual = 110
	case price < 6000:
		annual = 150
	default:
		annual = 200
	}
	if age <= 2 {
		annual *= 1.1
	}
	return int(annual * horizonYears)
}

// insights derives qualitative Korean tags from the breakdown.
func insights(v models.VehicleItem, stat brandStat, b models.TCOBreakdown) []string {
	var tags []string
	if stat.DepreciationRate <= 0.13 {
		tags = append(tags, "감가가 적은 브랜드라 되팔 때 유리해요")
	}
	if b.Fuel <= fuelOver("LPG") {
		tags = append(tags, "연료비 부담이 적은 편이에요")
	}
	if stat.Reliability >= 1.25 {
		tags = append(tags, "수입 브랜드 특성상 정비 비용이 높을 수 있어요")
	}
	if b.MonthlyAverage <= 40 {
		tags = append(tags, fmt.Sprintf("월평균 약 %d만원으로 유지비가 효율적이에요", b.MonthlyAverage))
	}
	if v.Mileage >= 120000 {
		tags = append(tags, "주행거리가 많아 소모품 교체 시기를 확인하세요")
	}
	return tags
}

// CostEfficiencyRanks ranks vehicles by estimated 3-year total cost, 1 being
// the cheapest to own. Used as a re-ranking signal.
func CostEfficiencyRanks(vehicles []models.VehicleItem) map[uint]int {
	type entry struct {
		id    uint
		total int
	}
	entries := make([]entry, 0, len(vehicles))
	for _, v := range vehicles {
		entries = append(entries, entry{id: v.ID, total: Calculate(v).Total})
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].total < entries[j].total })

	ranks := make(map[uint]int, len(entries))
	for i, e := range entries {
		ranks[e.id] = i + 1
	}
	return ranks
}
