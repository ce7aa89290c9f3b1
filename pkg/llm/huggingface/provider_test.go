package huggingface

import (
	"context"
	"testing"

	"ai-schoolplay-be/pkg/llm"
)

func TestChatRejectsImageAttachments(t *testing.T) {
	provider := NewHuggingFaceProvider("", "http://localhost:0", "test-model")

	history := []llm.Message{
		{Role: "user", Content: "classify this", Images: [][]byte{{0x89, 'P', 'N', 'G'}}},
	}

	_, err := provider.Chat(context.Background(), history)
	if err == nil {
		t.Fatal("expected an error for a message with image attachments")
	}
}
