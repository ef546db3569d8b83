package models

// ImageAnalysis is the structured description of an item photo
type ImageAnalysis struct {
	ItemName        string `json:"itemName"`
	ItemDescription string `json:"itemDescription"`
	Condition       string `json:"condition"`
	Category        string `json:"category"`
	Color           string `json:"color,omitempty"`
	Brand           string `json:"brand,omitempty"`
	Size            string `json:"size,omitempty"`
}

// Transcription of a spoken item description
type Transcription struct {
	Text     string  `json:"text"`
	Language string  `json:"language,omitempty"`
	Duration float64 `json:"duration,omitempty"`
}

// TranscriptionResult pairs the transcript with the details extracted from it
type TranscriptionResult struct {
	Transcription Transcription `json:"transcription"`
	ItemDetails   ImageAnalysis `json:"itemDetails"`
}
