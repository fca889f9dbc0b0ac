// Package krtext provides the text normalization and substring matching used
// by every keyword heuristic in carpick. Matching is intentionally
// approximate: lower-cased, NFC-normalized substring containment, tuned for
// short Korean consultation requests.
package krtext

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize lower-cases and NFC-normalizes s so composed and decomposed
// Hangul compare equal.
func Normalize(s string) string {
	return norm.NFC.String(strings.ToLower(s))
}

// Contains reports whether keyword occurs in text. Both sides are
// normalized.
func Contains(text, keyword string) bool {
	return strings.Contains(Normalize(text), Normalize(keyword))
}

// ContainsAny reports whether any keyword occurs in text.
func ContainsAny(text string, keywords []string) bool {
	t := Normalize(text)
	for _, kw := range keywords {
		if strings.Contains(t, Normalize(kw)) {
			return true
		}
	}
	return false
}

// MatchAll returns the keywords that occur in text.
func MatchAll(text string, keywords []string) []string {
	t := Normalize(text)
	var matched []string
	for _, kw := range keywords {
		if strings.Contains(t, Normalize(kw)) {
			matched = append(matched, kw)
		}
	}
	return matched
}

// FirstWord returns the first whitespace-delimited token of s, normalized.
func FirstWord(s string) string {
	fields := strings.Fields(Normalize(s))
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// SplitSentences splits text on Korean/Latin sentence boundaries. Trailing
// fragments without terminal punctuation are kept.
func SplitSentences(text string) []string {
	var sentences []string
	var sb strings.Builder
	for _, r := range text {
		sb.WriteRune(r)
		if r == '.' || r == '!' || r == '?' || r == '\n' {
			if s := strings.TrimSpace(sb.String()); s != "" {
				sentences = append(sentences, s)
			}
			sb.Reset()
		}
	}
	if s := strings.TrimSpace(sb.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}
