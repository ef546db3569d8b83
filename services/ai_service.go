package services

import (
	"context"

	"github.com/HSouheill/lostfound_backend/models"
	"github.com/HSouheill/lostfound_backend/utils"
)

// AIService serves the standalone analysis endpoints used by the
// submission form
type AIService struct {
	Deps
}

func NewAIService(d Deps) *AIService {
	return &AIService{Deps: d}
}

func (s *AIService) analyzer() (Analyzer, error) {
	if s.Analyzer == nil {
		return nil, newError(ErrUnavailable, "AI analysis is not configured")
	}
	return s.Analyzer, nil
}

// AnalyzeImage describes a base64 encoded photo
func (s *AIService) AnalyzeImage(ctx context.Context, encoded string) (*models.ImageAnalysis, error) {
	analyzer, err := s.analyzer()
	if err != nil {
		return nil, err
	}
	image, err := utils.DecodeBase64(encoded)
	if err != nil {
		return nil, newError(ErrInvalidInput, "Invalid image data")
	}
	contentType, err := utils.DetectImageType(image)
	if err != nil {
		return nil, newError(ErrInvalidInput, "Only jpg, jpeg, png and gif images are allowed")
	}

	actx, cancel := s.external(ctx)
	defer cancel()
	analysis, err := analyzer.AnalyzeImage(actx, image, contentType)
	if err != nil {
		s.Log.Error("Image analysis failed", "error", err)
		return nil, newError(ErrUpstream, "Failed to analyze image")
	}
	return analysis, nil
}

// Transcribe turns a base64 encoded recording into text and item details
func (s *AIService) Transcribe(ctx context.Context, encoded string) (*models.TranscriptionResult, error) {
	analyzer, err := s.analyzer()
	if err != nil {
		return nil, err
	}
	audio, err := utils.DecodeBase64(encoded)
	if err != nil {
		return nil, newError(ErrInvalidInput, "Invalid audio data")
	}

	actx, cancel := s.external(ctx)
	defer cancel()
	transcription, err := analyzer.Transcribe(actx, audio)
	if err != nil {
		s.Log.Error("Transcription failed", "error", err)
		return nil, newError(ErrUpstream, "Failed to transcribe audio")
	}
	details, err := analyzer.ExtractItemDetails(actx, transcription.Text)
	if err != nil {
		s.Log.Error("Item extraction failed", "error", err)
		return nil, newError(ErrUpstream, "Failed to extract item details")
	}
	return &models.TranscriptionResult{Transcription: *transcription, ItemDetails: *details}, nil
}
