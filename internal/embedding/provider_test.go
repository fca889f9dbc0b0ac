package embedding

import (
	"context"
	"math"
	"reflect"
	"testing"
)

func TestFallbackVector(t *testing.T) {
	t.Run("차원 고정", func(t *testing.T) {
		vec := FallbackVector("출퇴근용 세단 추천")
		if len(vec) != Dimensions {
			t.Fatalf("len = %d, want %d", len(vec), Dimensions)
		}
	})

	t.Run("L2 노름 1", func(t *testing.T) {
		for _, text := range []string{"첫차", "차박하기 좋은 SUV", "a", ""} {
			vec := FallbackVector(text)
			var sq float64
			for _, v := range vec {
				sq += float64(v) * float64(v)
			}
			if math.Abs(math.Sqrt(sq)-1.0) > 1e-5 {
				t.Errorf("norm(%q) = %.6f, want 1.0", text, math.Sqrt(sq))
			}
		}
	})

	t.Run("결정적", func(t *testing.T) {
		a := FallbackVector("연비 좋은 하이브리드")
		b := FallbackVector("연비 좋은 하이브리드")
		if !reflect.DeepEqual(a, b) {
			t.Error("same text must produce the same vector")
		}
	})

	t.Run("정규화 동등성", func(t *testing.T) {
		// Composed and decomposed Hangul, and case variants, embed the same.
		a := FallbackVector("SUV 추천")
		b := FallbackVector("suv 추천")
		if !reflect.DeepEqual(a, b) {
			t.Error("case variants must embed identically")
		}
	})
}

func TestServiceFallbackMode(t *testing.T) {
	s := NewService(nil, "")

	vec, err := s.Embed(context.Background(), "출퇴근용 세단")
	if err != nil {
		t.Fatalf("fallback-mode embed must not error: %v", err)
	}
	if len(vec) != Dimensions {
		t.Fatalf("len = %d, want %d", len(vec), Dimensions)
	}

	// Repeat calls stay deterministic.
	again, err := s.Embed(context.Background(), "출퇴근용 세단")
	if err != nil {
		t.Fatalf("repeat embed: %v", err)
	}
	if !reflect.DeepEqual(vec, again) {
		t.Error("repeat vector differs from first result")
	}

	// Fallback results never enter the cache: a backend that comes back up
	// must be asked again for the same text.
	s.mu.RLock()
	cached := len(s.cache)
	s.mu.RUnlock()
	if cached != 0 {
		t.Errorf("cache holds %d fallback entries, want 0", cached)
	}
}

func TestEmbedBatchOrder(t *testing.T) {
	s := NewService(nil, "")
	texts := []string{"첫차", "패밀리카", "캠핑카"}

	vecs, err := s.EmbedBatch(context.Background(), texts)
	if err != nil {
		t.Fatalf("batch embed: %v", err)
	}
	if len(vecs) != len(texts) {
		t.Fatalf("got %d vectors, want %d", len(vecs), len(texts))
	}
	for i, text := range texts {
		if !reflect.DeepEqual(vecs[i], FallbackVector(text)) {
			t.Errorf("vector %d does not match the per-text embedding", i)
		}
	}
}

func TestDot(t *testing.T) {
	a := FallbackVector("연비 좋은 차")
	if d := Dot(a, a); math.Abs(d-1.0) > 1e-5 {
		t.Errorf("self dot = %.6f, want 1.0", d)
	}

	b := FallbackVector("완전히 다른 주제의 문장입니다")
	if d := Dot(a, b); d < -1.0001 || d > 1.0001 {
		t.Errorf("dot = %.6f out of [-1,1]", d)
	}
}
