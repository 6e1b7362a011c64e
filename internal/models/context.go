// ABOUTME: QueryContext model holding structural features extracted from a query
// ABOUTME: Stateless, derived purely from query text and recomputed every call
package models

// Difficulty is the requested difficulty level inferred from a query.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// QueryContext holds structural features extracted from a query: the DSA
// topics it mentions (deduplicated, relevance-ranked) and what kind of
// answer was asked for. Used by the fallback classifier and for response
// shaping.
type QueryContext struct {
	Topics                  []string   `json:"topics"`
	ComplexityAsked         bool       `json:"complexity_asked"`
	ImplementationAsked     bool       `json:"implementation_asked"`
	ExampleAsked            bool       `json:"example_asked"`
	ComparisonAsked         bool       `json:"comparison_asked"`
	QuestionGenerationAsked bool       `json:"question_generation_asked"`
	Difficulty              Difficulty `json:"difficulty_level"`
	LanguagePreference      string     `json:"language_preference,omitempty"`
}

// HasTopic reports whether the context detected the given topic.
func (c QueryContext) HasTopic(topic string) bool {
	for _, t := range c.Topics {
		if t == topic {
			return true
		}
	}
	return false
}
