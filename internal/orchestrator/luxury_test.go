package orchestrator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/run-bigpig/carpick/internal/models"
)

func luxuryVehicle(id uint, brand, model string, age, mileage, displacement int) models.VehicleItem {
	return models.VehicleItem{
		ID:           id,
		Manufacturer: brand,
		Model:        model,
		Year:         time.Now().Year() - age,
		Mileage:      mileage,
		Displacement: displacement,
	}
}

func TestApplyLuxuryFilterPremiumTier(t *testing.T) {
	vehicles := []models.VehicleItem{
		luxuryVehicle(1, "벤츠", "E클래스 W213", 3, 40000, 1991),
		luxuryVehicle(2, "현대", "그랜저 GN7", 2, 20000, 2497),
		luxuryVehicle(3, "제네시스", "G80 RG3", 2, 30000, 2497),
	}
	budget := models.Budget{Min: 5000, Max: 8000} // midpoint 6500

	got := ApplyLuxuryFilter(vehicles, budget, "법인 차량이 필요합니다")
	require.Len(t, got, 2)
	for _, v := range got {
		assert.NotEqual(t, "현대", v.Manufacturer, "non-premium brand filtered at the premium tier")
	}
}

func TestApplyLuxuryFilterUpscaleTier(t *testing.T) {
	vehicles := []models.VehicleItem{
		luxuryVehicle(1, "볼보", "XC60", 3, 50000, 1969),
		luxuryVehicle(2, "포르쉐", "카이엔", 3, 30000, 2995),
	}
	budget := models.Budget{Min: 3000, Max: 5000} // midpoint 4000

	got := ApplyLuxuryFilter(vehicles, budget, "업무용 차량 추천해주세요")
	require.Len(t, got, 1)
	assert.Equal(t, "볼보", got[0].Manufacturer, "포르쉐 is premium tier only")
}

func TestApplyLuxuryFilterCeilings(t *testing.T) {
	t.Run("연식 초과", func(t *testing.T) {
		old := []models.VehicleItem{luxuryVehicle(1, "벤츠", "E클래스 W212", 7, 40000, 1991)}
		fresh := []models.VehicleItem{luxuryVehicle(2, "벤츠", "E클래스 W213", 3, 40000, 1991)}
		budget := models.Budget{Min: 5000, Max: 8000}

		got := ApplyLuxuryFilter(append(old, fresh...), budget, "")
		require.Len(t, got, 1)
		assert.Equal(t, uint(2), got[0].ID)
	})

	t.Run("주행거리 초과", func(t *testing.T) {
		vehicles := []models.VehicleItem{
			luxuryVehicle(1, "BMW", "5시리즈 G30", 3, 95000, 1998),
			luxuryVehicle(2, "BMW", "5시리즈 G30", 3, 60000, 1998),
		}
		budget := models.Budget{Min: 5000, Max: 8000}

		got := ApplyLuxuryFilter(vehicles, budget, "")
		require.Len(t, got, 1)
		assert.Equal(t, uint(2), got[0].ID)
	})
}

func TestApplyLuxuryFilterGolf(t *testing.T) {
	suv := luxuryVehicle(1, "제네시스", "GV80", 2, 30000, 2497)
	hatch := luxuryVehicle(2, "벤츠", "A클래스 해치백", 2, 20000, 1332)
	bigSedan := luxuryVehicle(3, "벤츠", "S클래스 W223", 2, 20000, 2999)
	smallSedan := luxuryVehicle(4, "벤츠", "C클래스 세단", 2, 20000, 1496)
	budget := models.Budget{Min: 5000, Max: 9000}

	got := ApplyLuxuryFilter([]models.VehicleItem{suv, hatch, bigSedan, smallSedan}, budget, "주말마다 골프백을 싣고 다닙니다")
	require.Len(t, got, 2)

	ids := []uint{got[0].ID, got[1].ID}
	assert.Contains(t, ids, suv.ID)
	assert.Contains(t, ids, bigSedan.ID, "full-size sedan trunk fits a golf bag")
}

func TestApplyLuxuryFilterRelaxedRetry(t *testing.T) {
	// Nothing passes the strict ceilings; the relaxed pass keeps the
	// 7-year-old car instead of returning empty.
	vehicles := []models.VehicleItem{
		luxuryVehicle(1, "렉서스", "ES300h", 7, 100000, 2487),
	}
	budget := models.Budget{Min: 3000, Max: 5000}

	got := ApplyLuxuryFilter(vehicles, budget, "")
	require.Len(t, got, 1)
	assert.Equal(t, uint(1), got[0].ID)
}

func TestApplyLuxuryFilterRelaxedOpensBrandTier(t *testing.T) {
	// The strict pass rejects the only candidate on brand; the relaxed pass
	// drops the tier entirely instead of returning empty.
	vehicles := []models.VehicleItem{
		luxuryVehicle(1, "현대", "그랜저 GN7", 2, 20000, 2497),
	}
	budget := models.Budget{Min: 5000, Max: 8000} // premium tier

	got := ApplyLuxuryFilter(vehicles, budget, "")
	require.Len(t, got, 1)
	assert.Equal(t, uint(1), got[0].ID)
}

func TestApplyLuxuryFilterUnfilteredFallback(t *testing.T) {
	// No vehicle matches even relaxed ceilings; the original list survives.
	vehicles := []models.VehicleItem{
		luxuryVehicle(1, "기아", "모닝", 10, 150000, 998),
		luxuryVehicle(2, "현대", "아반떼 AD", 9, 140000, 1591),
	}
	budget := models.Budget{Min: 5000, Max: 8000}

	got := ApplyLuxuryFilter(vehicles, budget, "")
	assert.Equal(t, vehicles, got)
}
