package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/HSouheill/lostfound_backend/config"
	"github.com/HSouheill/lostfound_backend/models"
	"github.com/HSouheill/lostfound_backend/utils"
	openai "github.com/sashabaranov/go-openai"
)

const (
	imagePrompt   = "Analyze the image and provide details in JSON format, including itemName, itemDescription, condition, category, and optional fields like color, brand, and size."
	extractPrompt = "Extract structured information about lost items from this description and answer in JSON format with the fields itemName, itemDescription, condition, category, color, brand and size: "
)

// Analyzer describes item photos and spoken descriptions
type Analyzer interface {
	AnalyzeImage(ctx context.Context, image []byte, contentType string) (*models.ImageAnalysis, error)
	Transcribe(ctx context.Context, audio []byte) (*models.Transcription, error)
	ExtractItemDetails(ctx context.Context, text string) (*models.ImageAnalysis, error)
}

// openAIClient is the subset of the OpenAI compatible client used here
type openAIClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
	CreateTranscription(ctx context.Context, req openai.AudioRequest) (openai.AudioResponse, error)
}

// GroqAnalyzer talks to Groq through its OpenAI compatible API
type GroqAnalyzer struct {
	client          openAIClient
	visionModel     string
	textModel       string
	transcribeModel string
}

// NewGroqAnalyzer returns nil when no API key is configured
func NewGroqAnalyzer(cfg *config.Config) *GroqAnalyzer {
	if cfg.GroqAPIKey == "" {
		return nil
	}
	clientConfig := openai.DefaultConfig(cfg.GroqAPIKey)
	clientConfig.BaseURL = cfg.GroqBaseURL

	return &GroqAnalyzer{
		client:          openai.NewClientWithConfig(clientConfig),
		visionModel:     cfg.GroqVisionModel,
		textModel:       cfg.GroqTextModel,
		transcribeModel: cfg.GroqTranscribeModel,
	}
}

func (a *GroqAnalyzer) AnalyzeImage(ctx context.Context, image []byte, contentType string) (*models.ImageAnalysis, error) {
	if contentType == "" {
		contentType = "image/jpeg"
	}
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.visionModel,
		Messages: []openai.ChatCompletionMessage{{
			Role: openai.ChatMessageRoleUser,
			MultiContent: []openai.ChatMessagePart{
				{Type: openai.ChatMessagePartTypeText, Text: imagePrompt},
				{Type: openai.ChatMessagePartTypeImageURL, ImageURL: &openai.ChatMessageImageURL{
					URL: utils.ToDataURL(contentType, image),
				}},
			},
		}},
		Temperature:    0.3,
		MaxTokens:      500,
		ResponseFormat: &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject},
	})
	if err != nil {
		return nil, fmt.Errorf("image analysis request failed: %w", err)
	}

	analysis, err := decodeAnalysis(resp)
	if err != nil {
		return nil, err
	}
	if analysis.ItemName == "" || analysis.ItemDescription == "" {
		return nil, fmt.Errorf("image analysis is missing itemName or itemDescription")
	}
	return analysis, nil
}

func (a *GroqAnalyzer) Transcribe(ctx context.Context, audio []byte) (*models.Transcription, error) {
	resp, err := a.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    a.transcribeModel,
		FilePath: "audio.wav",
		Reader:   bytes.NewReader(audio),
		Format:   openai.AudioResponseFormatJSON,
		Language: "en",
	})
	if err != nil {
		return nil, fmt.Errorf("transcription request failed: %w", err)
	}

	return &models.Transcription{
		Text:     strings.TrimSpace(resp.Text),
		Language: resp.Language,
		Duration: resp.Duration,
	}, nil
}

func (a *GroqAnalyzer) ExtractItemDetails(ctx context.Context, text string) (*models.ImageAnalysis, error) {
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.textModel,
		Messages: []openai.ChatCompletionMessage{{
			Role:    openai.ChatMessageRoleUser,
			Content: extractPrompt + text,
		}},
		Temperature:    0.3,
		MaxTokens:      500,
		ResponseFormat: &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject},
	})
	if err != nil {
		return nil, fmt.Errorf("item extraction request failed: %w", err)
	}
	return decodeAnalysis(resp)
}

func decodeAnalysis(resp openai.ChatCompletionResponse) (*models.ImageAnalysis, error) {
	content := "{}"
	if len(resp.Choices) > 0 && resp.Choices[0].Message.Content != "" {
		content = resp.Choices[0].Message.Content
	}

	var analysis models.ImageAnalysis
	if err := json.Unmarshal([]byte(content), &analysis); err != nil {
		return nil, fmt.Errorf("malformed analysis response: %w", err)
	}
	return &analysis, nil
}

// DescribeAnalysis formats an analysis for appending to a staff description
func DescribeAnalysis(a *models.ImageAnalysis) string {
	var b strings.Builder
	b.WriteString("AI Analysis:\n")
	b.WriteString(a.ItemDescription)
	fmt.Fprintf(&b, "\nCondition: %s\nCategory: %s", a.Condition, a.Category)
	if a.Brand != "" {
		b.WriteString("\nBrand: " + a.Brand)
	}
	if a.Color != "" {
		b.WriteString("\nColor: " + a.Color)
	}
	if a.Size != "" {
		b.WriteString("\nSize: " + a.Size)
	}
	return b.String()
}
