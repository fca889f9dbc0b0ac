package krtext

import (
	"reflect"
	"testing"

	"golang.org/x/text/unicode/norm"
)

func TestNormalize(t *testing.T) {
	decomposed := norm.NFD.String("차박")
	if got := Normalize(decomposed); got != "차박" {
		t.Fatalf("Normalize(%q) = %q, want composed form", decomposed, got)
	}
	if got := Normalize("SUV 추천"); got != "suv 추천" {
		t.Fatalf("Normalize = %q, want lower-cased", got)
	}
}

func TestContains(t *testing.T) {
	if !Contains("골프백을 싣고 다닙니다", "골프") {
		t.Fatal("substring match failed")
	}
	if !Contains("suv가 좋아요", "SUV") {
		t.Fatal("case-insensitive match failed")
	}
	if !Contains(norm.NFD.String("평탄화가 중요해요"), "평탄") {
		t.Fatal("decomposed Hangul must match composed keyword")
	}
	if Contains("세단이 좋아요", "SUV") {
		t.Fatal("unexpected match")
	}
}

func TestContainsAny(t *testing.T) {
	keywords := []string{"연비", "유지비", "기름값"}
	if !ContainsAny("유지비가 부담돼요", keywords) {
		t.Fatal("expected a keyword hit")
	}
	if ContainsAny("디자인이 중요해요", keywords) {
		t.Fatal("unexpected keyword hit")
	}
	if ContainsAny("아무거나", nil) {
		t.Fatal("empty keyword list never matches")
	}
}

func TestMatchAll(t *testing.T) {
	keywords := []string{"차박", "평탄", "트렁크"}
	got := MatchAll("차박할 때 평탄화가 중요해요", keywords)
	want := []string{"차박", "평탄"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("MatchAll = %v, want %v", got, want)
	}
	if MatchAll("색상이 중요해요", keywords) != nil {
		t.Fatal("no hits must return nil")
	}
}

func TestFirstWord(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"예산 초과가 우려됩니다", "예산"},
		{"  SUV 추천", "suv"},
		{"", ""},
		{"   ", ""},
	}
	for _, tc := range cases {
		if got := FirstWord(tc.in); got != tc.want {
			t.Errorf("FirstWord(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSplitSentences(t *testing.T) {
	t.Run("구두점 분리", func(t *testing.T) {
		got := SplitSentences("예산이 적정합니다. 시세는 어떤가요? 확인해보겠습니다!")
		want := []string{"예산이 적정합니다.", "시세는 어떤가요?", "확인해보겠습니다!"}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("SplitSentences = %v, want %v", got, want)
		}
	})

	t.Run("마침표 없는 꼬리", func(t *testing.T) {
		got := SplitSentences("첫 문장입니다. 끝맺지 않은 꼬리")
		if len(got) != 2 || got[1] != "끝맺지 않은 꼬리" {
			t.Fatalf("trailing fragment must be kept, got %v", got)
		}
	})

	t.Run("개행 분리", func(t *testing.T) {
		got := SplitSentences("첫 줄\n둘째 줄")
		want := []string{"첫 줄", "둘째 줄"}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("SplitSentences = %v, want %v", got, want)
		}
	})

	t.Run("빈 입력", func(t *testing.T) {
		if got := SplitSentences("   "); got != nil {
			t.Fatalf("blank input must return nil, got %v", got)
		}
	})
}
