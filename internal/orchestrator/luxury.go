package orchestrator

import (
	"time"

	"github.com/run-bigpig/carpick/internal/models"
	"github.com/run-bigpig/carpick/internal/pkg/krtext"
	"github.com/run-bigpig/carpick/internal/rerank"
)

// Brand tiers for executive consultations, keyed off the budget midpoint.
var (
	premiumBrands = []string{"벤츠", "BMW", "아우디", "포르쉐", "제네시스", "렉서스", "랜드로버"}
	upscaleBrands = []string{"제네시스", "렉서스", "볼보", "벤츠", "BMW", "아우디"}
)

const (
	premiumTierMid = 6000 // 만원
	upscaleTierMid = 3500

	luxuryMaxAge     = 5 // years
	luxuryMaxMileage = 80000

	relaxedMaxAge     = 8
	relaxedMaxMileage = 120000
)

var golfKeywords = []string{"골프", "골프백", "골프채"}

// ApplyLuxuryFilter narrows executive-tier candidates: brand tier by budget
// midpoint, then age and mileage ceilings, then a body filter when the
// request mentions golf gear. An empty result retries once with relaxed
// ceilings and the brand tier fully open; still empty falls back to the
// unfiltered list rather than an empty turn.
func ApplyLuxuryFilter(vehicles []models.VehicleItem, budget models.Budget, question string) []models.VehicleItem {
	brands := brandTier(budget)
	wantsGolf := krtext.ContainsAny(question, golfKeywords)

	filtered := filterLuxury(vehicles, brands, wantsGolf, luxuryMaxAge, luxuryMaxMileage)
	if len(filtered) > 0 {
		return filtered
	}

	log.Info("luxury filter empty, retrying with relaxed ceilings and open brand tier")
	filtered = filterLuxury(vehicles, nil, wantsGolf, relaxedMaxAge, relaxedMaxMileage)
	if len(filtered) > 0 {
		return filtered
	}

	log.Warn("luxury filter found no matches, keeping unfiltered candidates")
	return vehicles
}

func brandTier(budget models.Budget) []string {
	mid := budget.Mid()
	switch {
	case mid >= premiumTierMid:
		return premiumBrands
	case mid >= upscaleTierMid:
		return upscaleBrands
	default:
		// Midpoint below the upscale tier: leave brands open and let the
		// age/mileage ceilings do the filtering.
		return nil
	}
}

func filterLuxury(vehicles []models.VehicleItem, brands []string, wantsGolf bool, maxAge, maxMileage int) []models.VehicleItem {
	minYear := time.Now().Year() - maxAge

	var out []models.VehicleItem
	for _, v := range vehicles {
		if len(brands) > 0 && !brandIn(v.Manufacturer, brands) {
			continue
		}
		if v.Year < minYear || v.Mileage > maxMileage {
			continue
		}
		if wantsGolf && !golfFriendly(v) {
			continue
		}
		out = append(out, v)
	}
	return out
}

func brandIn(manufacturer string, brands []string) bool {
	for _, b := range brands {
		if krtext.Contains(manufacturer, b) {
			return true
		}
	}
	return false
}

// golfFriendly keeps bodies with trunk room for a golf bag: SUVs, vans and
// full-size sedans pass, small hatchbacks do not.
func golfFriendly(v models.VehicleItem) bool {
	switch rerank.BodyTypeOf(v) {
	case rerank.BodySUV, rerank.BodyVan, rerank.BodyWagon:
		return true
	case rerank.BodyHatchback:
		return false
	default:
		return v.Displacement >= 1900
	}
}
