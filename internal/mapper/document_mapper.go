package mapper

import (
	"encoding/json"
	"time"

	"ai-schoolplay-be/internal/entity"
	"ai-schoolplay-be/internal/model"

	"gorm.io/datatypes"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToEntity(d *model.Document) *entity.Document {
	if d == nil {
		return nil
	}

	var updatedAt *time.Time
	if !d.UpdatedAt.IsZero() {
		t := d.UpdatedAt
		updatedAt = &t
	}

	var history []entity.StageEvent
	if len(d.StageHistory) > 0 {
		_ = json.Unmarshal(d.StageHistory, &history)
	}

	var timings map[string]int64
	if len(d.StageTimings) > 0 {
		_ = json.Unmarshal(d.StageTimings, &timings)
	}

	var alternatives []entity.ScanAlternative
	if len(d.ScanAlternatives) > 0 {
		_ = json.Unmarshal(d.ScanAlternatives, &alternatives)
	}

	var tags []string
	if len(d.Tags) > 0 {
		_ = json.Unmarshal(d.Tags, &tags)
	}

	return &entity.Document{
		Id:               d.Id,
		ChildId:          d.ChildId,
		UserId:           d.UserId,
		StoragePath:      d.StoragePath,
		MimeType:         d.MimeType,
		OriginalFilename: d.OriginalFilename,
		ExtractedText:    d.ExtractedText,
		ErrorMessage:     d.ErrorMessage,
		Subject:          d.Subject,
		Grade:            d.Grade,
		Tags:             tags,

		PipelineStage:    d.PipelineStage,
		StageStartedAt:   d.StageStartedAt,
		StageCompletedAt: d.StageCompletedAt,
		ProgressHint:     d.ProgressHint,
		StageHistory:     history,
		StageTimings:     timings,

		ScanStatus:             d.ScanStatus,
		ScanTopicSuggestion:    d.ScanTopicSuggestion,
		ScanLanguageSuggestion: d.ScanLanguageSuggestion,
		ScanConfidence:         d.ScanConfidence,
		ScanAlternatives:       alternatives,
		ScanModel:              d.ScanModel,
		ScanCompletedAt:        d.ScanCompletedAt,

		ValidationStatus:  d.ValidationStatus,
		ValidatedTopic:    d.ValidatedTopic,
		ValidatedLanguage: d.ValidatedLanguage,
		ValidatedAt:       d.ValidatedAt,

		Status:      d.Status,
		ProcessedAt: d.ProcessedAt,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   updatedAt,
	}
}

func (m *DocumentMapper) ToModel(d *entity.Document) *model.Document {
	if d == nil {
		return nil
	}

	var updatedAt time.Time
	if d.UpdatedAt != nil {
		updatedAt = *d.UpdatedAt
	}

	historyJson, _ := json.Marshal(d.StageHistory)
	timingsJson, _ := json.Marshal(d.StageTimings)
	alternativesJson, _ := json.Marshal(d.ScanAlternatives)
	tagsJson, _ := json.Marshal(d.Tags)

	return &model.Document{
		Id:               d.Id,
		ChildId:          d.ChildId,
		UserId:           d.UserId,
		StoragePath:      d.StoragePath,
		MimeType:         d.MimeType,
		OriginalFilename: d.OriginalFilename,
		ExtractedText:    d.ExtractedText,
		ErrorMessage:     d.ErrorMessage,
		Subject:          d.Subject,
		Grade:            d.Grade,
		Tags:             datatypes.JSON(tagsJson),

		PipelineStage:    d.PipelineStage,
		StageStartedAt:   d.StageStartedAt,
		StageCompletedAt: d.StageCompletedAt,
		ProgressHint:     d.ProgressHint,
		StageHistory:     datatypes.JSON(historyJson),
		StageTimings:     datatypes.JSON(timingsJson),

		ScanStatus:             d.ScanStatus,
		ScanTopicSuggestion:    d.ScanTopicSuggestion,
		ScanLanguageSuggestion: d.ScanLanguageSuggestion,
		ScanConfidence:         d.ScanConfidence,
		ScanAlternatives:       datatypes.JSON(alternativesJson),
		ScanModel:              d.ScanModel,
		ScanCompletedAt:        d.ScanCompletedAt,

		ValidationStatus:  d.ValidationStatus,
		ValidatedTopic:    d.ValidatedTopic,
		ValidatedLanguage: d.ValidatedLanguage,
		ValidatedAt:       d.ValidatedAt,

		Status:      d.Status,
		ProcessedAt: d.ProcessedAt,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   updatedAt,
	}
}

func (m *DocumentMapper) ToEntities(models []*model.Document) []*entity.Document {
	entities := make([]*entity.Document, 0, len(models))
	for _, d := range models {
		entities = append(entities, m.ToEntity(d))
	}
	return entities
}
