// Package keyword derives short keyword tags from record titles.
package keyword

import (
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/width"

	"github.com/matsen/notiongraph/internal/record"
)

// DefaultCount is the number of keywords kept per title.
const DefaultCount = 5

// Extractor derives up to n keywords from a title.
type Extractor interface {
	Extract(title string, n int) []string
}

// ExtractorFunc adapts a function to the Extractor interface.
type ExtractorFunc func(title string, n int) []string

// Extract calls f.
func (f ExtractorFunc) Extract(title string, n int) []string {
	return f(title, n)
}

// Enrich returns copies of records with Keywords derived from their titles.
// The input slice and its records are not modified.
func Enrich(records []record.Record, ex Extractor, n int) []record.Record {
	if ex == nil {
		ex = NewFrequencyExtractor()
	}
	out := make([]record.Record, len(records))
	for i, r := range records {
		out[i] = r.WithKeywords(ex.Extract(r.Title, n))
	}
	return out
}

var (
	urlPattern        = regexp.MustCompile(`https?://\S+`)
	onXPattern        = regexp.MustCompile(`(?i)\bon\s+X\b:?`)
	sourcePrefix      = regexp.MustCompile(`^[^:|]+[:|]\s*`)
	trailingParens    = regexp.MustCompile(`\([^)]*\)$`)
	bracketsAndMarks  = regexp.MustCompile(`[「」“”"『』【】\[\](),.:|/]`)
	digitsOnlyPattern = regexp.MustCompile(`^\d+$`)
)

// FrequencyExtractor scores tokens by occurrence and length.
type FrequencyExtractor struct {
	stop map[string]bool
}

// NewFrequencyExtractor returns an extractor using the built-in stopword list
// plus any extra words.
func NewFrequencyExtractor(extraStopwords ...string) *FrequencyExtractor {
	stop := make(map[string]bool, len(stopwords)+len(extraStopwords))
	for _, w := range stopwords {
		stop[w] = true
	}
	for _, w := range extraStopwords {
		stop[strings.ToLower(w)] = true
	}
	return &FrequencyExtractor{stop: stop}
}

// Extract returns the n highest scoring tokens of title. Each occurrence of a
// token scores 1 + 0.2*len(token); ties keep first-occurrence order.
func (e *FrequencyExtractor) Extract(title string, n int) []string {
	if n <= 0 {
		return []string{}
	}

	type scored struct {
		word  string
		score float64
	}
	var order []*scored
	byWord := make(map[string]*scored)

	for _, tok := range Tokenize(title) {
		if !e.keep(tok) {
			continue
		}
		s, ok := byWord[tok]
		if !ok {
			s = &scored{word: tok}
			byWord[tok] = s
			order = append(order, s)
		}
		s.score += 1 + float64(utf8.RuneCountInString(tok))*0.2
	}

	slices.SortStableFunc(order, func(a, b *scored) int {
		switch {
		case a.score > b.score:
			return -1
		case a.score < b.score:
			return 1
		}
		return 0
	})

	out := make([]string, 0, min(n, len(order)))
	for _, s := range order {
		if len(out) == n {
			break
		}
		out = append(out, s.word)
	}
	return out
}

func (e *FrequencyExtractor) keep(tok string) bool {
	if e.stop[tok] {
		return false
	}
	if utf8.RuneCountInString(tok) == 1 {
		return false
	}
	if digitsOnlyPattern.MatchString(tok) {
		return false
	}
	return !isPunctOrSymbol(tok)
}

func isPunctOrSymbol(s string) bool {
	for _, r := range s {
		if !unicode.IsPunct(r) && !unicode.IsSymbol(r) {
			return false
		}
	}
	return true
}

// Normalize removes URLs, "on X" suffixes, a leading "source:" prefix and a
// trailing parenthetical, replaces brackets and separators with spaces and
// folds full-width characters.
func Normalize(text string) string {
	text = urlPattern.ReplaceAllString(text, "")
	text = onXPattern.ReplaceAllString(text, "")
	text = sourcePrefix.ReplaceAllString(text, "")
	text = trailingParens.ReplaceAllString(text, "")
	text = bracketsAndMarks.ReplaceAllString(text, " ")
	text = width.Fold.String(text)
	return strings.TrimSpace(text)
}

// Tokenize normalizes text and splits it into letter/number runs. A change of
// script (for example Latin to Han, or Katakana to Hiragana) also ends a token.
// Purely alphabetic ASCII tokens are lower-cased.
func Tokenize(text string) []string {
	text = Normalize(text)

	var tokens []string
	var cur strings.Builder
	var curScript *unicode.RangeTable

	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
		curScript = nil
	}

	for _, r := range text {
		if !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '-' && r != '_' && r != 'ー' {
			flush()
			continue
		}
		sc := scriptOf(r)
		if cur.Len() > 0 && sc != nil && curScript != nil && sc != curScript {
			flush()
		}
		if sc != nil {
			curScript = sc
		}
		cur.WriteRune(r)
	}
	flush()

	for i, t := range tokens {
		t = strings.Trim(t, "-_")
		if isASCIIAlpha(t) {
			t = strings.ToLower(t)
		}
		tokens[i] = t
	}
	return slices.DeleteFunc(tokens, func(t string) bool { return t == "" })
}

var scripts = []*unicode.RangeTable{unicode.Han, unicode.Hiragana, unicode.Katakana, unicode.Hangul, unicode.Latin}

// scriptOf returns the script table of r, or nil for digits and joiners that
// stick to whatever token they appear in.
func scriptOf(r rune) *unicode.RangeTable {
	if r == 'ー' {
		return nil
	}
	for _, s := range scripts {
		if unicode.Is(s, r) {
			return s
		}
	}
	return nil
}

func isASCIIAlpha(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}
