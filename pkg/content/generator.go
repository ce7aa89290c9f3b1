package content

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"ai-schoolplay-be/internal/constant"
	"ai-schoolplay-be/pkg/llm"
	"ai-schoolplay-be/pkg/pipeline"
	"ai-schoolplay-be/pkg/storage"
	"ai-schoolplay-be/pkg/utils"
)

// packTextLimit bounds the document text fed into pack generation.
const packTextLimit = 8000

// gameShapes holds the JSON shape the model must fill per game type.
// Keep these in sync with the structural schemas in pkg/schema.
var gameShapes = map[string]string{
	constant.GameTypeFlashcards: `{"cards": [{"front": "...", "back": "..."}]}`,
	constant.GameTypeQuiz: `{"questions": [{"question": "...", "options": ["...", "..."], "answer_index": 0}]}`,
	constant.GameTypeMatching: `{"pairs": [{"left": "...", "right": "..."}]}`,
	constant.GameTypeTrueFalse: `{"statements": [{"statement": "...", "is_true": true}]}`,
	constant.GameTypeFillBlank: `{"items": [{"sentence": "a sentence with a ___ placeholder", "answer": "..."}]}`,
	constant.GameTypeOrdering: `{"prompt": "...", "steps": ["first", "second", "third"]}`,
	constant.GameTypeMultipleSelect: `{"questions": [{"question": "...", "options": ["...", "...", "..."], "answer_indexes": [0, 2]}]}`,
	constant.GameTypeShortAnswer: `{"items": [{"question": "...", "accepted_answers": ["...", "..."]}]}`,
}

type LLMContentGenerator struct {
	provider       llm.LLMProvider
	visionProvider llm.LLMProvider
	store          storage.Store
}

func NewLLMContentGenerator(provider, visionProvider llm.LLMProvider, store storage.Store) *LLMContentGenerator {
	return &LLMContentGenerator{
		provider:       provider,
		visionProvider: visionProvider,
		store:          store,
	}
}

func (g *LLMContentGenerator) GeneratePack(ctx context.Context, source PackSource, concepts []ExtractedConcept) (map[string]interface{}, error) {
	var sb strings.Builder
	sb.WriteString(constant.PackGenerationPromptV1)
	sb.WriteString("\n\nConcepts:\n")
	for _, c := range concepts {
		fmt.Fprintf(&sb, "- %s: %s\n", c.Key, c.Label)
	}

	// Image documents carry no extracted text; the stored image itself is
	// the source and goes to the vision model.
	if pipeline.IsImage(source.MimeType, source.StoragePath) {
		data, err := g.store.Read(ctx, storage.DiskUploads, source.StoragePath)
		if err != nil {
			return nil, pipeline.NewExternalServiceError("storage", err)
		}
		msg := llm.Message{Role: "user", Content: sb.String(), Images: [][]byte{data}}

		raw, err := g.visionProvider.Chat(ctx, []llm.Message{msg}, llm.WithTemperature(0.4))
		if err != nil {
			return nil, pipeline.NewExternalServiceError("content_generator", err)
		}
		var pack map[string]interface{}
		if err := decodeResponse(raw, &pack); err != nil {
			return nil, pipeline.NewExternalServiceError("content_generator", err)
		}
		return pack, nil
	}

	sb.WriteString("\nDocument text:\n")
	sb.WriteString(utils.SplitText(source.Text, packTextLimit, 0)[0])

	raw, err := g.provider.Generate(ctx, sb.String(), llm.WithTemperature(0.4))
	if err != nil {
		return nil, pipeline.NewExternalServiceError("content_generator", err)
	}

	var pack map[string]interface{}
	if err := decodeResponse(raw, &pack); err != nil {
		return nil, pipeline.NewExternalServiceError("content_generator", err)
	}
	return pack, nil
}

func (g *LLMContentGenerator) GenerateGame(ctx context.Context, gameType string, packContent map[string]interface{}) (map[string]interface{}, error) {
	shape, ok := gameShapes[gameType]
	if !ok {
		return nil, fmt.Errorf("unknown game type: %s", gameType)
	}

	packJSON, err := json.Marshal(packContent)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal pack content: %w", err)
	}

	prompt := fmt.Sprintf("%s\n\nPack content:\n%s",
		fmt.Sprintf(constant.GameGenerationPromptV1, gameType, shape),
		string(packJSON),
	)

	raw, err := g.provider.Generate(ctx, prompt, llm.WithTemperature(0.4))
	if err != nil {
		return nil, pipeline.NewExternalServiceError("content_generator", err)
	}

	var payload map[string]interface{}
	if err := decodeResponse(raw, &payload); err != nil {
		return nil, pipeline.NewExternalServiceError("content_generator", err)
	}
	return payload, nil
}
