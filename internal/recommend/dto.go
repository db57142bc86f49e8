package recommend

import (
	"regexp"
	"strings"

	"github.com/Thanajai/GrowFuse/internal/crops"
	"github.com/Thanajai/GrowFuse/internal/llm"
)

// Indian postal PIN codes are exactly six digits.
var pinPattern = regexp.MustCompile(`^\d{6}$`)

type recommendRequest struct {
	Location         string  `json:"location"`
	SoilType         string  `json:"soilType"`
	LandArea         float64 `json:"landArea"`
	Language         string  `json:"language"`
	ForecastDuration string  `json:"forecastDuration"`
	CropType         string  `json:"cropType"`
}

// toInput validates the request and converts it to provider input. A non-nil
// issues slice means validation failed and input must not be used.
func (r recommendRequest) toInput() (llm.RecommendInput, []map[string]string) {
	var issues []map[string]string

	location := strings.TrimSpace(r.Location)
	if !pinPattern.MatchString(location) {
		issues = append(issues, map[string]string{"field": "location", "issue": "must be a 6-digit PIN code"})
	}

	soil := crops.SoilType(r.SoilType)
	if !soil.Valid() {
		issues = append(issues, map[string]string{"field": "soilType", "issue": "unknown soil type"})
	}

	if r.LandArea <= 0 {
		issues = append(issues, map[string]string{"field": "landArea", "issue": "must be greater than zero"})
	}

	language := crops.Language(r.Language)
	if r.Language == "" {
		language = crops.LangEnglish
	} else if !language.Valid() {
		issues = append(issues, map[string]string{"field": "language", "issue": "unsupported language"})
	}

	duration := crops.ForecastDuration(r.ForecastDuration)
	if !duration.Valid() {
		issues = append(issues, map[string]string{"field": "forecastDuration", "issue": "must be 6 or 12"})
	}

	cropType := crops.CropType(r.CropType)
	if r.CropType == "" {
		cropType = crops.CropAll
	} else if !cropType.Valid() {
		issues = append(issues, map[string]string{"field": "cropType", "issue": "unknown crop category"})
	}

	if issues != nil {
		return llm.RecommendInput{}, issues
	}

	return llm.RecommendInput{
		Location:         location,
		SoilType:         soil,
		LandArea:         r.LandArea,
		Language:         language,
		ForecastDuration: duration,
		CropType:         cropType,
	}, nil
}
