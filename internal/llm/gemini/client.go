package gemini

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"

	"github.com/Thanajai/GrowFuse/internal/crops"
	"github.com/Thanajai/GrowFuse/internal/llm"
	"github.com/Thanajai/GrowFuse/internal/shared/metrics"
	"github.com/Thanajai/GrowFuse/internal/shared/telemetry"
	"github.com/Thanajai/GrowFuse/internal/shared/util"
)

const (
	defaultModel      = "gemini-2.5-flash"
	defaultImageModel = "imagen-3.0-generate-002"
)

// recommendationSchema constrains the text response to a JSON array of
// recommendation objects; image URLs are filled in afterwards.
var recommendationSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"cropName": {
				Type:        genai.TypeString,
				Description: "Name of the recommended crop, translated into the specified language.",
			},
			"englishCropName": {
				Type:        genai.TypeString,
				Description: `The English name of the crop (e.g., "Wheat", "Black Gram").`,
			},
			"confidenceScore": {
				Type:        genai.TypeNumber,
				Description: "A score from 0 to 100 representing the suitability of the crop for the given conditions.",
			},
			"justification": {
				Type:        genai.TypeString,
				Description: "A brief, 1-2 sentence justification for why this crop is recommended, in the specified language.",
			},
		},
		Required: []string{"cropName", "englishCropName", "confidenceScore", "justification"},
	},
}

// Client implements llm.Client using the Gemini API for text and Imagen for
// per-crop photographs.
type Client struct {
	client     *genai.Client
	model      string
	imageModel string
}

// NewClient constructs a Gemini-backed recommendation client.
func NewClient(ctx context.Context, apiKey, model, imageModel string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, llm.ErrNotConfigured
	}
	if strings.TrimSpace(model) == "" {
		model = defaultModel
	}
	if strings.TrimSpace(imageModel) == "" {
		imageModel = defaultImageModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Client{client: client, model: model, imageModel: imageModel}, nil
}

type recommendationPayload struct {
	CropName        string  `json:"cropName"`
	EnglishCropName string  `json:"englishCropName"`
	ConfidenceScore float64 `json:"confidenceScore"`
	Justification   string  `json:"justification"`
}

// RecommendCrops asks the model for ranked suggestions, then fetches one
// generated image per crop. Image failures degrade to a deterministic
// external reference and never fail the batch.
func (c *Client) RecommendCrops(ctx context.Context, input llm.RecommendInput) ([]crops.Recommendation, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(BuildPrompt(input)), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   recommendationSchema,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get recommendations: %w", err)
	}

	raw := strings.TrimSpace(resp.Text())
	var payload []recommendationPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("recommendation response is not a valid array: %w", err)
	}

	out := make([]crops.Recommendation, len(payload))
	var wg sync.WaitGroup
	for i, rec := range payload {
		out[i] = crops.Recommendation{
			CropName:        rec.CropName,
			EnglishCropName: rec.EnglishCropName,
			ConfidenceScore: rec.ConfidenceScore,
			Justification:   rec.Justification,
		}
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			out[i].ImageURL = c.cropImage(ctx, name)
		}(i, rec.EnglishCropName)
	}
	wg.Wait()

	return out, nil
}

// cropImage returns a data URI for a generated photograph, or the external
// fallback URL when generation fails for this crop.
func (c *Client) cropImage(ctx context.Context, englishCropName string) string {
	resp, err := c.client.Models.GenerateImages(ctx, c.imageModel, BuildImagePrompt(englishCropName), &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		OutputMIMEType: "image/jpeg",
		AspectRatio:    "16:9",
	})
	if err == nil && len(resp.GeneratedImages) > 0 && resp.GeneratedImages[0].Image != nil {
		encoded := base64.StdEncoding.EncodeToString(resp.GeneratedImages[0].Image.ImageBytes)
		return "data:image/jpeg;base64," + encoded
	}

	metrics.IncImageFallback()
	fields := map[string]any{"crop": englishCropName}
	if err != nil {
		fields["error"] = err.Error()
	}
	telemetry.Warn("gemini.image_fallback", fields)
	return util.CropImageFallbackURL(englishCropName)
}
