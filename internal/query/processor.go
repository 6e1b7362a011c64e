// ABOUTME: Stateless query normalization and DSA context extraction
// ABOUTME: Cleans raw query text and detects topics, intent flags, difficulty, language
package query

import (
	"regexp"
	"sort"
	"strings"

	"github.com/dsamentor/dsa-mentor/internal/models"
)

var (
	whitespaceRE = regexp.MustCompile(`\s+`)
	// Allow word characters, question punctuation, and plus/minus (for
	// things like "O(n+m)" and "c++" once the parens are stripped).
	disallowedRE = regexp.MustCompile(`[^\w\s?!.+\-]`)
)

// typoCorrections maps common misspellings and abbreviations to their
// canonical form. Whole-word patterns only, so partial words stay intact.
// Order matters: abbreviation expansions come before the broader stem
// corrections that may apply to their output.
var typoCorrections = []struct {
	pattern     *regexp.Regexp
	replacement string
}{
	{regexp.MustCompile(`\balgorithem\b`), "algorithm"},
	{regexp.MustCompile(`\balgoritm\b`), "algorithm"},
	{regexp.MustCompile(`\blinklist\b`), "linked list"},
	{regexp.MustCompile(`\bbst\b`), "binary search tree"},
	{regexp.MustCompile(`\bgrapth\b`), "graph"},
	{regexp.MustCompile(`\bsearch\b`), "searching"},
	{regexp.MustCompile(`\bsort\b`), "sorting"},
	{regexp.MustCompile(`\brecursiv\b`), "recursion"},
}

// Topic is one entry of the DSA topic table: a canonical tag and the
// surface keywords that signal it.
type Topic struct {
	Name     string
	Keywords []string
}

// Topics is the static topic-keyword table scanned during context
// extraction. Scan order decides tie order among equally-scored topics.
var Topics = []Topic{
	{"array", []string{"array", "arrays", "list", "arraylist"}},
	{"linked_list", []string{"linked list", "linkedlist", "node", "pointer"}},
	{"stack", []string{"stack", "lifo", "push", "pop"}},
	{"queue", []string{"queue", "fifo", "enqueue", "dequeue"}},
	{"tree", []string{"tree", "binary tree", "bst", "binary search tree", "avl", "heap"}},
	{"graph", []string{"graph", "vertex", "edge", "adjacency", "dijkstra", "bfs", "dfs"}},
	{"sorting", []string{"sort", "sorting", "bubble sort", "merge sort", "quick sort", "heap sort"}},
	{"searching", []string{"search", "searching", "binary search", "linear search"}},
	{"dynamic_programming", []string{"dp", "dynamic programming", "memoization", "tabulation"}},
	{"recursion", []string{"recursion", "recursive", "backtracking"}},
	{"hashing", []string{"hash", "hashing", "hash table", "hashmap", "hash map", "collision"}},
	{"string", []string{"string", "substring", "palindrome", "anagram", "pattern matching"}},
}

var (
	complexityKeywords     = []string{"time complexity", "space complexity", "big o", "complexity"}
	implementationKeywords = []string{"implement", "code", "program", "write", "coding"}
	exampleKeywords        = []string{"example", "sample", "demo", "show me"}
	comparisonKeywords     = []string{"vs", "versus", "compare", "difference", "better"}
	questionGenKeywords    = []string{
		"generate question", "create question", "ask question", "practice question",
		"quiz", "test me", "give me question", "generate problem", "practice problem",
	}
	easyKeywords = []string{"easy", "beginner", "simple", "basic"}
	hardKeywords = []string{"hard", "difficult", "advanced", "expert", "challenging"}

	// Programming language names scanned for a language preference.
	languageNames = []string{
		"python", "java", "javascript", "typescript", "c++", "c#",
		"golang", "go", "rust", "kotlin", "swift", "ruby",
	}
)

// Clean normalizes a raw query: collapse whitespace, strip characters
// outside the allow-list, lower-case, then apply the typo correction table.
// Idempotent: Clean(Clean(x)) == Clean(x).
func Clean(query string) string {
	if query == "" {
		return ""
	}

	cleaned := whitespaceRE.ReplaceAllString(strings.TrimSpace(query), " ")
	cleaned = disallowedRE.ReplaceAllString(strings.ToLower(cleaned), "")

	for _, tc := range typoCorrections {
		cleaned = tc.pattern.ReplaceAllString(cleaned, tc.replacement)
	}

	return cleaned
}

// ExtractContext derives structural features from a query. Topics are
// deduplicated and ranked by keyword-hit count, with table order breaking
// ties. Empty input returns the zero-value context (difficulty medium).
func ExtractContext(query string) models.QueryContext {
	ctx := models.QueryContext{Difficulty: models.DifficultyMedium}
	if strings.TrimSpace(query) == "" {
		return ctx
	}

	normalized := strings.ToLower(query)

	type scoredTopic struct {
		name  string
		score int
	}
	var matched []scoredTopic
	for _, topic := range Topics {
		score := 0
		for _, kw := range topic.Keywords {
			if strings.Contains(normalized, kw) {
				score++
			}
		}
		if score > 0 {
			matched = append(matched, scoredTopic{topic.Name, score})
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].score > matched[j].score
	})
	for _, m := range matched {
		ctx.Topics = append(ctx.Topics, m.name)
	}

	ctx.ComplexityAsked = anyKeyword(normalized, complexityKeywords)
	ctx.ImplementationAsked = anyKeyword(normalized, implementationKeywords)
	ctx.ExampleAsked = anyKeyword(normalized, exampleKeywords)
	ctx.ComparisonAsked = anyKeyword(normalized, comparisonKeywords)
	ctx.QuestionGenerationAsked = anyKeyword(normalized, questionGenKeywords)

	if anyKeyword(normalized, easyKeywords) {
		ctx.Difficulty = models.DifficultyEasy
	} else if anyKeyword(normalized, hardKeywords) {
		ctx.Difficulty = models.DifficultyHard
	}

	for _, lang := range languageNames {
		if containsWord(normalized, lang) {
			ctx.LanguagePreference = lang
			break
		}
	}

	return ctx
}

// anyKeyword uses plain substring containment, matching how the topic and
// intent tables are written (stems like "sort" are meant to hit "sorting").
func anyKeyword(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// containsWord matches kw as a whole word (or phrase) inside s. Needed for
// language names: "go" must not hit the middle of "algorithm". Keywords
// ending in non-word characters like "c++" keep a plain suffix check.
func containsWord(s, kw string) bool {
	idx := strings.Index(s, kw)
	for idx >= 0 {
		beforeOK := idx == 0 || !isWordChar(s[idx-1])
		end := idx + len(kw)
		afterOK := end == len(s) || !isWordChar(s[end]) || !isWordChar(kw[len(kw)-1])
		if beforeOK && afterOK {
			return true
		}
		next := strings.Index(s[idx+1:], kw)
		if next < 0 {
			return false
		}
		idx = idx + 1 + next
	}
	return false
}

func isWordChar(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
