package content

import (
	"context"
	"fmt"

	"ai-schoolplay-be/internal/constant"
	"ai-schoolplay-be/pkg/llm"
	"ai-schoolplay-be/pkg/pipeline"
	"ai-schoolplay-be/pkg/storage"
	"ai-schoolplay-be/pkg/utils"
)

// scanTextLimit bounds how much of a text upload goes into the quick-scan
// prompt. Classification only needs the opening of the document.
const scanTextLimit = 4000

type LLMClassifier struct {
	provider llm.LLMProvider
	store    storage.Store
	model    string
}

func NewLLMClassifier(provider llm.LLMProvider, store storage.Store, model string) *LLMClassifier {
	return &LLMClassifier{provider: provider, store: store, model: model}
}

func (c *LLMClassifier) Scan(ctx context.Context, storagePath, mimeType string) (*ScanResult, error) {
	msg := llm.Message{Role: "user", Content: constant.QuickScanPromptV1}

	data, err := c.store.Read(ctx, storage.DiskUploads, storagePath)
	if err != nil {
		return nil, pipeline.NewExternalServiceError("storage", err)
	}

	if pipeline.IsImage(mimeType, storagePath) {
		msg.Images = [][]byte{data}
	} else {
		text := utils.SplitText(string(data), scanTextLimit, 0)[0]
		msg.Content = fmt.Sprintf("%s\n\nDocument text:\n%s", constant.QuickScanPromptV1, text)
	}

	raw, err := c.provider.Chat(ctx, []llm.Message{msg}, llm.WithTemperature(0.1))
	if err != nil {
		return nil, pipeline.NewExternalServiceError("classifier", err)
	}

	var result ScanResult
	if err := decodeResponse(raw, &result); err != nil {
		return nil, pipeline.NewExternalServiceError("classifier", err)
	}
	result.Model = c.model

	if result.Topic == "" {
		return nil, pipeline.NewExternalServiceError("classifier", fmt.Errorf("empty topic in scan result"))
	}
	return &result, nil
}
