package content

import (
	"context"
	"fmt"

	"ai-schoolplay-be/internal/constant"
	"ai-schoolplay-be/pkg/llm"
	"ai-schoolplay-be/pkg/pipeline"
	"ai-schoolplay-be/pkg/utils"
)

// conceptTextLimit bounds the prompt input. Long documents are chunked and
// only the leading chunk is mined; concepts repeat across a document, so the
// head carries the bulk of the signal.
const conceptTextLimit = 8000

type LLMConceptExtractor struct {
	provider llm.LLMProvider
}

func NewLLMConceptExtractor(provider llm.LLMProvider) *LLMConceptExtractor {
	return &LLMConceptExtractor{provider: provider}
}

func (e *LLMConceptExtractor) Extract(ctx context.Context, text string) ([]ExtractedConcept, error) {
	bounded := utils.SplitText(text, conceptTextLimit, 0)[0]

	prompt := fmt.Sprintf("%s\n\nDocument text:\n%s",
		fmt.Sprintf(constant.ConceptExtractionPromptV1, constant.MaxConceptsPerDocument),
		bounded,
	)

	raw, err := e.provider.Generate(ctx, prompt, llm.WithTemperature(0.2))
	if err != nil {
		return nil, pipeline.NewExternalServiceError("concept_extractor", err)
	}

	var parsed struct {
		Concepts []ExtractedConcept `json:"concepts"`
	}
	if err := decodeResponse(raw, &parsed); err != nil {
		return nil, pipeline.NewExternalServiceError("concept_extractor", err)
	}

	concepts := parsed.Concepts
	if len(concepts) > constant.MaxConceptsPerDocument {
		concepts = concepts[:constant.MaxConceptsPerDocument]
	}

	// Drop malformed entries instead of failing the whole stage.
	valid := make([]ExtractedConcept, 0, len(concepts))
	for _, c := range concepts {
		if c.Key == "" || c.Label == "" {
			continue
		}
		if c.Difficulty < 0 {
			c.Difficulty = 0
		}
		if c.Difficulty > 1 {
			c.Difficulty = 1
		}
		valid = append(valid, c)
	}
	return valid, nil
}
