package inventory

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/run-bigpig/carpick/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "inventory.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return store
}

func TestSeedAndCount(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Seed(ctx, Fixtures()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	n, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != int64(len(Fixtures())) {
		t.Errorf("count = %d, want %d", n, len(Fixtures()))
	}
}

func TestFindByBudget(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	seed := []models.VehicleItem{
		{Manufacturer: "현대", Model: "아반떼", Year: 2021, Price: 1850, Mileage: 42000, FuelType: "가솔린"},
		{Manufacturer: "기아", Model: "K5", Year: 2020, Price: 2150, Mileage: 49000, FuelType: "가솔린"},
		{Manufacturer: "벤츠", Model: "E클래스", Year: 2019, Price: 4250, Mileage: 68000, FuelType: "가솔린"},
		// Sanity-filtered rows.
		{Manufacturer: "현대", Model: "쏘나타", Year: 2012, Price: 900, Mileage: 80000, FuelType: "LPG"},
		{Manufacturer: "기아", Model: "모닝", Year: 2018, Price: 600, Mileage: 230000, FuelType: "가솔린"},
		{Manufacturer: "쉐보레", Model: "스파크", Year: 2019, Price: 0, Mileage: 40000, FuelType: "가솔린"},
	}
	if err := store.Seed(ctx, seed); err != nil {
		t.Fatalf("seed: %v", err)
	}

	t.Run("예산 필터", func(t *testing.T) {
		got, err := store.FindByBudget(ctx, models.Budget{Min: 1500, Max: 2500}, 0, "")
		if err != nil {
			t.Fatalf("find: %v", err)
		}
		// 아반떼 and K5 fit; E클래스 is past the 20% headroom; the rest fail
		// the sanity predicates.
		if len(got) != 2 {
			t.Fatalf("got %d vehicles, want 2: %+v", len(got), got)
		}
		if got[0].Price > got[1].Price {
			t.Error("default order must be ascending price")
		}
	})

	t.Run("상한 여유 20퍼센트", func(t *testing.T) {
		got, err := store.FindByBudget(ctx, models.Budget{Min: 1000, Max: 1800}, 0, "")
		if err != nil {
			t.Fatalf("find: %v", err)
		}
		// Ceiling 1800 +20% = 2160, so K5 at 2150 is kept.
		found := false
		for _, v := range got {
			if v.Model == "K5" {
				found = true
			}
		}
		if !found {
			t.Error("vehicle within 20% headroom should be included")
		}
	})

	t.Run("무예산은 전체", func(t *testing.T) {
		got, err := store.FindByBudget(ctx, models.Budget{}, 0, "")
		if err != nil {
			t.Fatalf("find: %v", err)
		}
		if len(got) != 3 {
			t.Errorf("got %d vehicles, want 3 sane rows", len(got))
		}
	})
}

func TestAll(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Seed(ctx, Fixtures()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	got, err := store.All(ctx, 0)
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(got) != len(Fixtures()) {
		t.Errorf("got %d vehicles, want %d", len(got), len(Fixtures()))
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].Price > got[i].Price {
			t.Fatal("All must return ascending price order")
		}
	}
}

func TestFixturesAreSane(t *testing.T) {
	for _, v := range Fixtures() {
		if v.Price <= 0 {
			t.Errorf("%s %s has non-positive price", v.Manufacturer, v.Model)
		}
		if v.Mileage >= maxMileageKm {
			t.Errorf("%s %s fails the mileage sanity bound", v.Manufacturer, v.Model)
		}
		if v.Year < minModelYear {
			t.Errorf("%s %s fails the model-year sanity bound", v.Manufacturer, v.Model)
		}
	}
}
