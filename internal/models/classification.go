// ABOUTME: Intent classification result model and the fixed intent taxonomy
// ABOUTME: Produced per query by the classifier, never persisted
package models

// IntentType is one of the fixed intent categories a query can fall into.
type IntentType string

const (
	IntentGreeting           IntentType = "greeting"
	IntentCasualChat         IntentType = "casual_chat"
	IntentFunChat            IntentType = "fun_chat"
	IntentDSASpecific        IntentType = "dsa_specific"
	IntentQuestionGeneration IntentType = "question_generation"
	IntentVagueQuestion      IntentType = "vague_question"
)

// KnownIntent reports whether t is one of the fixed intent categories.
func KnownIntent(t IntentType) bool {
	switch t {
	case IntentGreeting, IntentCasualChat, IntentFunChat,
		IntentDSASpecific, IntentQuestionGeneration, IntentVagueQuestion:
		return true
	}
	return false
}

// Classification is the result of intent classification for a single query.
type Classification struct {
	Type       IntentType `json:"type"`
	Confidence float64    `json:"confidence"`
	IsDSA      bool       `json:"is_dsa"`
	Reasoning  string     `json:"reasoning"`
}
