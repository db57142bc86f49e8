package gemini

import (
	"fmt"
	"strings"

	"github.com/Thanajai/GrowFuse/internal/crops"
	"github.com/Thanajai/GrowFuse/internal/llm"
)

// BuildPrompt renders the advisor prompt for the given farm inputs. The
// response language and the forecast window are woven into the instructions
// so the model localizes names and weighs long-term viability.
func BuildPrompt(input llm.RecommendInput) string {
	languageName := input.Language.Name()

	var b strings.Builder
	fmt.Fprintf(&b, "As an expert agricultural advisor for Indian farmers, recommend the top 5 most suitable crops based on the following farm data and long-term weather forecast.\n")
	fmt.Fprintf(&b, "Your analysis should prioritize crops that will thrive over the specified period.\n\n")
	fmt.Fprintf(&b, "Farm Data & Forecast:\n")
	fmt.Fprintf(&b, "- Language for Response: %s\n", languageName)
	fmt.Fprintf(&b, "- Location: %s, India\n", input.Location)
	fmt.Fprintf(&b, "- Soil Type: %s\n", input.SoilType)
	fmt.Fprintf(&b, "- Land Area: %g acres\n", input.LandArea)
	fmt.Fprintf(&b, "- Forecast Period: Considering the typical weather patterns and climate forecast for the next %s months.\n", input.ForecastDuration)
	if input.CropType != "" && input.CropType != crops.CropAll {
		fmt.Fprintf(&b, "- Crop Category: Restrict recommendations to %s.\n", input.CropType)
	}
	fmt.Fprintf(&b, "\nInstructions:\n")
	fmt.Fprintf(&b, "1. Analyze the inputs, giving significant weight to the long-term weather viability over the next %s months.\n", input.ForecastDuration)
	fmt.Fprintf(&b, "2. Provide the 'cropName' in the %s language.\n", languageName)
	fmt.Fprintf(&b, "3. Provide the 'englishCropName' for each crop. This should be a simple, clean name (e.g., \"Wheat\", \"Sorghum\", \"Black Gram\") suitable for use in an image search query. Avoid adding regional names or other text in parentheses.\n")
	fmt.Fprintf(&b, "4. Provide a confidence score (0-100) for each recommendation, reflecting its suitability for the entire forecast period.\n")
	fmt.Fprintf(&b, "5. Write a short justification for each crop in the %s language.\n", languageName)
	fmt.Fprintf(&b, "6. Return the response as a valid JSON array matching the provided schema. Do not include any extra text or markdown formatting.\n")
	return b.String()
}

// BuildImagePrompt renders the per-crop image prompt.
func BuildImagePrompt(englishCropName string) string {
	return fmt.Sprintf("A high-quality, vibrant photograph of a healthy %s crop growing in a sun-drenched field. Focus on the crop itself. Photorealistic, agricultural photography, clear blue sky.", englishCropName)
}
