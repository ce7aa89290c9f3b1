package content

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"ai-schoolplay-be/pkg/llm"
)

type recordingProvider struct {
	response string
	chats    [][]llm.Message
	prompts  []string
}

func (p *recordingProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	p.chats = append(p.chats, history)
	return p.response, nil
}

func (p *recordingProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	p.prompts = append(p.prompts, prompt)
	return p.response, nil
}

type mapStore struct {
	files map[string][]byte
}

func (s *mapStore) Write(ctx context.Context, disk, path string, data []byte) error {
	s.files[disk+"/"+path] = data
	return nil
}

func (s *mapStore) Read(ctx context.Context, disk, path string) ([]byte, error) {
	data, ok := s.files[disk+"/"+path]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", path)
	}
	return data, nil
}

func TestGeneratePackAttachesImageForImageSource(t *testing.T) {
	imageBytes := []byte{0x89, 'P', 'N', 'G'}
	store := &mapStore{files: map[string][]byte{"uploads/doc-1/worksheet.png": imageBytes}}
	text := &recordingProvider{response: `{"title":"t"}`}
	vision := &recordingProvider{response: `{"title":"t"}`}
	gen := NewLLMContentGenerator(text, vision, store)

	source := PackSource{StoragePath: "doc-1/worksheet.png", MimeType: "image/png"}
	_, err := gen.GeneratePack(context.Background(), source, nil)
	if err != nil {
		t.Fatalf("GeneratePack: %v", err)
	}

	if len(text.prompts) != 0 {
		t.Errorf("text provider was called for an image source")
	}
	if len(vision.chats) != 1 {
		t.Fatalf("vision chats = %d, want 1", len(vision.chats))
	}
	msg := vision.chats[0][0]
	if len(msg.Images) != 1 || string(msg.Images[0]) != string(imageBytes) {
		t.Errorf("image bytes not attached to the vision message")
	}
	if !strings.Contains(msg.Content, "learning pack") {
		t.Errorf("prompt missing from the vision message")
	}
}

func TestGeneratePackUsesTextForTextSource(t *testing.T) {
	store := &mapStore{files: map[string][]byte{}}
	text := &recordingProvider{response: `{"title":"t"}`}
	vision := &recordingProvider{response: `{"title":"t"}`}
	gen := NewLLMContentGenerator(text, vision, store)

	source := PackSource{
		Text:        "Adding fractions with the same denominator.",
		StoragePath: "doc-1/worksheet.pdf",
		MimeType:    "application/pdf",
	}
	_, err := gen.GeneratePack(context.Background(), source, []ExtractedConcept{
		{Key: "fractions.addition", Label: "Adding fractions"},
	})
	if err != nil {
		t.Fatalf("GeneratePack: %v", err)
	}

	if len(vision.chats) != 0 {
		t.Errorf("vision provider was called for a text source")
	}
	if len(text.prompts) != 1 {
		t.Fatalf("text prompts = %d, want 1", len(text.prompts))
	}
	if !strings.Contains(text.prompts[0], "Adding fractions with the same denominator.") {
		t.Errorf("document text missing from the prompt")
	}
	if !strings.Contains(text.prompts[0], "fractions.addition") {
		t.Errorf("concept list missing from the prompt")
	}
}
