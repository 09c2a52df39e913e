package wikisynth

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Keyword suggestion defaults.
const (
	DefaultKeywordLimit     = 10
	DefaultKeywordMinLength = 4
)

// DefaultStopwords returns the built-in stopword list. Only words of at
// least DefaultKeywordMinLength letters matter since shorter tokens are
// never suggested.
func DefaultStopwords() []string {
	return []string{
		"about", "above", "across", "after", "again", "against", "almost",
		"along", "already", "also", "although", "always", "among", "another",
		"anything", "around", "became", "because", "become", "becomes", "been",
		"before", "being", "below", "between", "both", "called", "came",
		"cannot", "could", "does", "doing", "done", "down", "during", "each",
		"early", "either", "else", "even", "ever", "every", "first", "following",
		"found", "from", "further", "given", "have", "having", "here", "however",
		"include", "included", "includes", "including", "into", "itself",
		"just", "known", "large", "largest", "last", "later", "least", "less",
		"like", "made", "main", "make", "many", "more", "most", "much", "must",
		"near", "never", "next", "often", "only", "other", "others", "over",
		"part", "same", "several", "should", "since", "some", "such", "than",
		"that", "their", "them", "then", "there", "these", "they", "this",
		"those", "though", "through", "thus", "together", "under", "until",
		"upon", "used", "using", "very", "well", "were", "what", "when",
		"where", "whether", "which", "while", "whom", "whose", "will", "with",
		"within", "without", "would", "year", "years", "your",
	}
}

// KeywordSuggester ranks article words by frequency.
type KeywordSuggester struct {
	stopwords map[string]struct{}

	// Limit caps the number of suggestions. Zero means DefaultKeywordLimit.
	Limit int

	// MinLength is the minimum token length in letters.
	// Zero means DefaultKeywordMinLength.
	MinLength int
}

// NewKeywordSuggester creates a suggester with the given stopword list.
func NewKeywordSuggester(stopwords []string) *KeywordSuggester {
	stops := make(map[string]struct{}, len(stopwords))
	for _, w := range stopwords {
		stops[strings.ToLower(w)] = struct{}{}
	}
	return &KeywordSuggester{stopwords: stops}
}

// SuggestKeywords ranks keywords with the default stopwords and limits.
func SuggestKeywords(article *ParsedArticle) []string {
	return NewKeywordSuggester(DefaultStopwords()).Suggest(article)
}

// Suggest returns the most frequent non-stopword tokens across all section
// paragraphs, most frequent first. Ties keep first-seen order.
func (s *KeywordSuggester) Suggest(article *ParsedArticle) []string {
	if article == nil {
		return nil
	}

	counts := make(map[string]int)
	var order []string
	for _, section := range article.Sections {
		for _, tok := range s.Tokenize(section.Paragraph) {
			if counts[tok] == 0 {
				order = append(order, tok)
			}
			counts[tok]++
		}
	}

	slices.SortStableFunc(order, func(a, b string) int {
		return counts[b] - counts[a]
	})

	limit := s.Limit
	if limit <= 0 {
		limit = DefaultKeywordLimit
	}
	if len(order) > limit {
		order = order[:limit]
	}
	return order
}

// Tokenize lower-cases text and returns its runs of letters that are long
// enough and not stopwords.
func (s *KeywordSuggester) Tokenize(text string) []string {
	minLen := s.MinLength
	if minLen <= 0 {
		minLen = DefaultKeywordMinLength
	}

	var tokens []string
	for _, word := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	}) {
		if utf8.RuneCountInString(word) < minLen || s.isStopword(word) {
			continue
		}
		tokens = append(tokens, word)
	}
	return tokens
}

func (s *KeywordSuggester) isStopword(word string) bool {
	_, ok := s.stopwords[word]
	return ok
}
