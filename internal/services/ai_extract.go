package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/notemind/notemind-backend/internal/apierr"
	"github.com/notemind/notemind-backend/internal/types"
)

// The completion service is not contractually guaranteed to return pure JSON,
// so extraction is defensive. There is no self-repair: a reply that does not
// contain the expected payload fails the whole request.

// ExtractStrictJSON handles strict-JSON replies. The body must parse as JSON;
// when it is an object carrying a "questions" member that value is returned,
// otherwise the parsed document is returned unchanged.
func ExtractStrictJSON(raw string) (json.RawMessage, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, apierr.MalformedOutput(fmt.Errorf("empty completion reply"))
	}
	if !json.Valid([]byte(trimmed)) {
		return nil, apierr.MalformedOutput(fmt.Errorf("completion reply is not valid JSON"))
	}
	var wrapper struct {
		Questions json.RawMessage `json:"questions"`
	}
	if err := json.Unmarshal([]byte(trimmed), &wrapper); err == nil && len(wrapper.Questions) > 0 {
		return wrapper.Questions, nil
	}
	return json.RawMessage(trimmed), nil
}

// ExtractQuizQuestions coerces a strict-JSON reply into the typed question
// list used for persistence.
func ExtractQuizQuestions(raw string) ([]types.QuizQuestion, error) {
	payload, err := ExtractStrictJSON(raw)
	if err != nil {
		return nil, err
	}
	var questions []types.QuizQuestion
	if err := json.Unmarshal(payload, &questions); err != nil {
		return nil, apierr.MalformedOutput(fmt.Errorf("completion reply is not a question array: %w", err))
	}
	if len(questions) == 0 {
		return nil, apierr.MalformedOutput(fmt.Errorf("completion reply contains no questions"))
	}
	return questions, nil
}

// FlashcardPair is one extracted front/back pair before persistence.
type FlashcardPair struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// ExtractFlashcards handles embedded-JSON replies: the model may wrap the
// array in prose, so the substring from the first '[' through the last ']'
// is parsed (greedy bracket match).
func ExtractFlashcards(raw string) ([]FlashcardPair, error) {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start == -1 || end == -1 || end < start {
		return nil, apierr.MalformedOutput(fmt.Errorf("completion reply contains no JSON array"))
	}

	var cards []FlashcardPair
	if err := json.Unmarshal([]byte(raw[start:end+1]), &cards); err != nil {
		return nil, apierr.MalformedOutput(fmt.Errorf("completion reply array does not parse: %w", err))
	}
	if len(cards) == 0 {
		return nil, apierr.MalformedOutput(fmt.Errorf("completion reply contains no flashcards"))
	}
	return cards, nil
}
