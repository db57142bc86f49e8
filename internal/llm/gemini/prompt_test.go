package gemini

import (
	"strings"
	"testing"

	"github.com/Thanajai/GrowFuse/internal/crops"
	"github.com/Thanajai/GrowFuse/internal/llm"
)

func TestBuildPromptIncludesFarmData(t *testing.T) {
	prompt := BuildPrompt(llm.RecommendInput{
		Location:         "560001",
		SoilType:         crops.SoilRed,
		LandArea:         2.5,
		Language:         crops.LangKannada,
		ForecastDuration: crops.TwelveMonths,
		CropType:         crops.CropAll,
	})

	for _, want := range []string{
		"Location: 560001, India",
		"Soil Type: Red",
		"Land Area: 2.5 acres",
		"next 12 months",
		"Kannada",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	if strings.Contains(prompt, "Crop Category") {
		t.Errorf("unrestricted request should not mention a crop category")
	}
}

func TestBuildPromptRestrictsCropCategory(t *testing.T) {
	prompt := BuildPrompt(llm.RecommendInput{
		Location:         "110001",
		SoilType:         crops.SoilAlluvial,
		LandArea:         1,
		Language:         crops.LangEnglish,
		ForecastDuration: crops.SixMonths,
		CropType:         crops.CropPulses,
	})

	if !strings.Contains(prompt, "Restrict recommendations to Pulses") {
		t.Fatalf("prompt missing crop category restriction:\n%s", prompt)
	}
}

func TestBuildPromptDefaultsToEnglishForUnknownLanguage(t *testing.T) {
	prompt := BuildPrompt(llm.RecommendInput{
		Location:         "110001",
		SoilType:         crops.SoilBlack,
		LandArea:         3,
		Language:         crops.Language("xx"),
		ForecastDuration: crops.SixMonths,
	})

	if !strings.Contains(prompt, "Language for Response: English") {
		t.Fatalf("expected English fallback:\n%s", prompt)
	}
}

func TestBuildImagePromptNamesTheCrop(t *testing.T) {
	prompt := BuildImagePrompt("Black Gram")
	if !strings.Contains(prompt, "healthy Black Gram crop") {
		t.Fatalf("unexpected image prompt: %s", prompt)
	}
}
