package content

import (
	"context"
	"fmt"
	"strings"

	"ai-schoolplay-be/internal/constant"
	"ai-schoolplay-be/pkg/llm"
	"ai-schoolplay-be/pkg/pipeline"
	"ai-schoolplay-be/pkg/storage"
)

type LLMTextExtractor struct {
	provider llm.LLMProvider
	store    storage.Store
}

func NewLLMTextExtractor(provider llm.LLMProvider, store storage.Store) *LLMTextExtractor {
	return &LLMTextExtractor{provider: provider, store: store}
}

func (e *LLMTextExtractor) ExtractText(ctx context.Context, storagePath, mimeType string) (string, error) {
	data, err := e.store.Read(ctx, storage.DiskUploads, storagePath)
	if err != nil {
		return "", pipeline.NewExternalServiceError("storage", err)
	}

	// Text-like uploads carry their own content; no model round-trip needed.
	if !pipeline.IsImage(mimeType, storagePath) {
		return strings.TrimSpace(string(data)), nil
	}

	msg := llm.Message{
		Role:    "user",
		Content: constant.TextExtractionPromptV1,
		Images:  [][]byte{data},
	}

	raw, err := e.provider.Chat(ctx, []llm.Message{msg}, llm.WithTemperature(0))
	if err != nil {
		return "", pipeline.NewExternalServiceError("text_extractor", err)
	}

	text := strings.TrimSpace(raw)
	if text == "" {
		return "", pipeline.NewExternalServiceError("text_extractor", fmt.Errorf("empty extraction result"))
	}
	return text, nil
}
