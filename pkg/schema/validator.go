package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ValidationError marks generated content that failed structural validation.
// The pipeline treats it like an external failure: fatal for the run, no
// auto-repair.
type ValidationError struct {
	SchemaRef string
	Err       error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("schema %s: %v", e.SchemaRef, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{
		validate: validator.New(),
	}
}

// Validate decodes the loose payload into the struct registered for
// schemaRef and runs the field rules. Unknown refs are rejected, not
// silently accepted.
func (v *Validator) Validate(payload map[string]interface{}, schemaRef string) error {
	target, ok := v.targetFor(schemaRef)
	if !ok {
		return &ValidationError{SchemaRef: schemaRef, Err: fmt.Errorf("unknown schema reference")}
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return &ValidationError{SchemaRef: schemaRef, Err: err}
	}

	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return &ValidationError{SchemaRef: schemaRef, Err: err}
	}

	if err := v.validate.Struct(target); err != nil {
		return &ValidationError{SchemaRef: schemaRef, Err: err}
	}
	return nil
}

func (v *Validator) targetFor(schemaRef string) (interface{}, bool) {
	switch schemaRef {
	case RefLearningPack:
		return &LearningPackContent{}, true
	case RefGameFlashcards:
		return &FlashcardsPayload{}, true
	case RefGameQuiz:
		return &QuizPayload{}, true
	case RefGameMatching:
		return &MatchingPayload{}, true
	case RefGameTrueFalse:
		return &TrueFalsePayload{}, true
	case RefGameFillBlank:
		return &FillBlankPayload{}, true
	case RefGameOrdering:
		return &OrderingPayload{}, true
	case RefGameMultipleSelect:
		return &MultipleSelectPayload{}, true
	case RefGameShortAnswer:
		return &ShortAnswerPayload{}, true
	}
	return nil, false
}

// GameSchemaRef maps a game type to its schema reference.
func GameSchemaRef(gameType string) string {
	return "game." + gameType
}
