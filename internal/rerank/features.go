package rerank

import (
	"time"

	"github.com/run-bigpig/carpick/internal/models"
	"github.com/run-bigpig/carpick/internal/pkg/krtext"
)

// Body types inferred from model names. The inference is a keyword lookup,
// good enough for the Korean used-car market where model names are stable.
const (
	BodySedan     = "sedan"
	BodySUV       = "suv"
	BodyWagon     = "wagon"
	BodyVan       = "van"
	BodyHatchback = "hatchback"
)

var suvModels = []string{
	"투싼", "싼타페", "팰리세이드", "코나", "베뉴", "캐스퍼",
	"쏘렌토", "스포티지", "셀토스", "니로", "모하비", "EV6",
	"QM6", "XM3", "코란도", "티볼리", "렉스턴", "트레일블레이저",
	"GV70", "GV80", "X3", "X5", "GLC", "GLE", "티구안", "RAV4", "CR-V", "XC60", "XC90",
}

var vanModels = []string{"카니발", "스타리아", "스타렉스"}

var wagonModels = []string{"i40", "투어링"}

var hatchbackModels = []string{"i30", "벨로스터", "클리오", "폴로", "골프", "미니 쿠퍼", "레이", "모닝", "스파크"}

// BodyTypeOf infers the body type of a vehicle from its model name.
func BodyTypeOf(v models.VehicleItem) string {
	switch {
	case krtext.ContainsAny(v.Model, suvModels):
		return BodySUV
	case krtext.ContainsAny(v.Model, vanModels):
		return BodyVan
	case krtext.ContainsAny(v.Model, wagonModels):
		return BodyWagon
	case krtext.ContainsAny(v.Model, hatchbackModels):
		return BodyHatchback
	default:
		return BodySedan
	}
}

// brandPrestige scores manufacturer image on [0,1].
var brandPrestige = map[string]float64{
	"벤츠":   0.95,
	"포르쉐":  0.95,
	"BMW":  0.90,
	"아우디":  0.85,
	"제네시스": 0.85,
	"렉서스":  0.85,
	"볼보":   0.80,
	"테슬라":  0.80,
	"도요타":  0.75,
	"폭스바겐": 0.72,
	"현대":   0.70,
	"기아":   0.70,
	"혼다":   0.70,
	"미니":   0.70,
}

const defaultBrandPrestige = 0.60

// fuelTypeScore scores drivetrain desirability on [0,1].
var fuelTypeScore = map[string]float64{
	"하이브리드": 0.90,
	"전기":    0.85,
	"가솔린":   0.70,
	"LPG":   0.60,
	"디젤":    0.60,
}

const defaultFuelTypeScore = 0.60

// FuelEconomyRank orders fuel types by running cost, 1 being the cheapest.
func FuelEconomyRank(fuelType string) int {
	switch fuelType {
	case "전기":
		return 1
	case "하이브리드":
		return 2
	case "LPG":
		return 3
	case "디젤":
		return 4
	default:
		return 5
	}
}

// BudgetScore scores price fit on [0,1]: 1.0 inside the band and below the
// floor, linearly decaying to 0 at 20% over the ceiling.
func BudgetScore(price int, b models.Budget) float64 {
	if b.Max <= 0 {
		return 1.0
	}
	if price <= b.Max {
		return 1.0
	}
	over := float64(price-b.Max) / float64(b.Max)
	return clamp01(1.0 - over/0.2)
}

// FeatureScore is the fixed weighted blend of vehicle-age, mileage,
// brand-prestige and fuel-type scores.
func FeatureScore(v models.VehicleItem) float64 {
	return FeatureScoreAt(v, time.Now())
}

// FeatureScoreAt computes FeatureScore as of the given time.
func FeatureScoreAt(v models.VehicleItem, now time.Time) float64 {
	return 0.3*ageScore(v.Year, now) +
		0.3*mileageScore(v.Mileage) +
		0.2*prestigeScore(v.Manufacturer) +
		0.2*fuelScore(v.FuelType)
}

func ageScore(year int, now time.Time) float64 {
	age := now.Year() - year
	if age <= 2 {
		return 1.0
	}
	return clamp01(1.0 - 0.08*float64(age-2))
}

func mileageScore(mileage int) float64 {
	return clamp01(1.0 - float64(mileage)/200000.0)
}

func prestigeScore(manufacturer string) float64 {
	if s, ok := brandPrestige[manufacturer]; ok {
		return s
	}
	return defaultBrandPrestige
}

func fuelScore(fuelType string) float64 {
	if s, ok := fuelTypeScore[fuelType]; ok {
		return s
	}
	return defaultFuelTypeScore
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
