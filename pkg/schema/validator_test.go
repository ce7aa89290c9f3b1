package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateLearningPack(t *testing.T) {
	payload := map[string]interface{}{
		"title":   "Fractions",
		"summary": "All about adding fractions.",
		"items": []interface{}{
			map[string]interface{}{
				"concept_key": "fractions.addition",
				"heading":     "Adding fractions",
				"body":        "Make the denominators match first.",
				"example":     "1/2 + 1/4 = 3/4",
			},
		},
	}

	assert.NoError(t, NewValidator().Validate(payload, RefLearningPack))
}

func TestValidateLearningPackMissingItems(t *testing.T) {
	payload := map[string]interface{}{
		"title":   "Fractions",
		"summary": "All about adding fractions.",
		"items":   []interface{}{},
	}

	err := NewValidator().Validate(payload, RefLearningPack)
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, RefLearningPack, vErr.SchemaRef)
}

func TestValidateFlashcards(t *testing.T) {
	payload := map[string]interface{}{
		"cards": []interface{}{
			map[string]interface{}{"front": "1/2 + 1/4", "back": "3/4"},
		},
	}

	assert.NoError(t, NewValidator().Validate(payload, RefGameFlashcards))
}

func TestValidateFillBlankRequiresPlaceholder(t *testing.T) {
	payload := map[string]interface{}{
		"items": []interface{}{
			map[string]interface{}{"sentence": "No placeholder here", "answer": "x"},
		},
	}

	assert.Error(t, NewValidator().Validate(payload, RefGameFillBlank))
}

func TestValidateRejectsUnknownFields(t *testing.T) {
	payload := map[string]interface{}{
		"cards":      []interface{}{map[string]interface{}{"front": "a", "back": "b"}},
		"difficulty": "extreme",
	}

	assert.Error(t, NewValidator().Validate(payload, RefGameFlashcards))
}

func TestValidateUnknownSchemaRef(t *testing.T) {
	assert.Error(t, NewValidator().Validate(map[string]interface{}{}, "game.sudoku"))
}

func TestGameSchemaRefCoversAllTypes(t *testing.T) {
	v := NewValidator()
	for _, gameType := range []string{"flashcards", "quiz", "matching", "true_false", "fill_blank", "ordering", "multiple_select", "short_answer"} {
		_, ok := v.targetFor(GameSchemaRef(gameType))
		assert.True(t, ok, "missing schema for %s", gameType)
	}
}
