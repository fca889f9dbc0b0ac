package rerank

import (
	"testing"

	"github.com/run-bigpig/carpick/internal/models"
)

func TestBudgetScore(t *testing.T) {
	b := models.Budget{Min: 1500, Max: 2500}

	t.Run("범위 내", func(t *testing.T) {
		for _, price := range []int{1500, 2000, 2500} {
			if got := BudgetScore(price, b); got != 1.0 {
				t.Errorf("BudgetScore(%d) = %.3f, want 1.0", price, got)
			}
		}
	})

	t.Run("하한 이하도 만점", func(t *testing.T) {
		if got := BudgetScore(900, b); got != 1.0 {
			t.Errorf("BudgetScore(900) = %.3f, want 1.0", got)
		}
	})

	t.Run("상한 초과는 선형 감소", func(t *testing.T) {
		mid := BudgetScore(2750, b) // 10% over
		if mid <= 0 || mid >= 1 {
			t.Errorf("10%% over should score in (0,1), got %.3f", mid)
		}
		if got := BudgetScore(3000, b); got != 0 {
			t.Errorf("20%% over should score 0, got %.3f", got)
		}
		if got := BudgetScore(5000, b); got != 0 {
			t.Errorf("far over should score 0, got %.3f", got)
		}
	})

	t.Run("항상 0과 1 사이", func(t *testing.T) {
		for price := 0; price <= 6000; price += 137 {
			got := BudgetScore(price, b)
			if got < 0 || got > 1 {
				t.Fatalf("BudgetScore(%d) = %.3f out of [0,1]", price, got)
			}
		}
	})
}

func TestFeatureScoreRange(t *testing.T) {
	vehicles := []models.VehicleItem{
		{Manufacturer: "현대", Model: "아반떼", Year: 2022, Mileage: 20000, FuelType: "가솔린"},
		{Manufacturer: "벤츠", Model: "E클래스", Year: 2015, Mileage: 190000, FuelType: "디젤"},
		{Manufacturer: "무명", Model: "모델X", Year: 2008, Mileage: 300000, FuelType: "LPG"},
	}
	for _, v := range vehicles {
		got := FeatureScore(v)
		if got < 0 || got > 1 {
			t.Errorf("FeatureScore(%s %s) = %.3f out of [0,1]", v.Manufacturer, v.Model, got)
		}
	}
}

func TestFeatureScorePrefersNewer(t *testing.T) {
	older := models.VehicleItem{Manufacturer: "현대", Model: "아반떼", Year: 2016, Mileage: 60000, FuelType: "가솔린"}
	newer := older
	newer.Year = 2023
	newer.Mileage = 20000

	if FeatureScore(newer) <= FeatureScore(older) {
		t.Error("newer, lower-mileage vehicle must score higher")
	}
}

func TestBodyTypeOf(t *testing.T) {
	cases := []struct {
		model string
		want  string
	}{
		{"투싼 NX4", BodySUV},
		{"쏘렌토 MQ4", BodySUV},
		{"카니발 KA4", BodyVan},
		{"레이", BodyHatchback},
		{"아반떼 CN7", BodySedan},
		{"그랜저 IG", BodySedan},
	}
	for _, tc := range cases {
		t.Run(tc.model, func(t *testing.T) {
			v := models.VehicleItem{Model: tc.model}
			if got := BodyTypeOf(v); got != tc.want {
				t.Errorf("BodyTypeOf(%q) = %s, want %s", tc.model, got, tc.want)
			}
		})
	}
}

func TestFuelEconomyRank(t *testing.T) {
	if FuelEconomyRank("전기") != 1 {
		t.Error("electric must rank first")
	}
	if FuelEconomyRank("하이브리드") != 2 {
		t.Error("hybrid must rank second")
	}
	if FuelEconomyRank("가솔린") <= FuelEconomyRank("하이브리드") {
		t.Error("gasoline must rank behind hybrid")
	}
}
