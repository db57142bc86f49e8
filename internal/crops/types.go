package crops

// SoilType classifies the major Indian soil groups the recommender understands.
type SoilType string

const (
	SoilAlluvial SoilType = "Alluvial"
	SoilBlack    SoilType = "Black"
	SoilRed      SoilType = "Red"
	SoilLaterite SoilType = "Laterite"
	SoilArid     SoilType = "Arid"
	SoilForest   SoilType = "Forest"
)

// SoilTypes lists every supported soil type in display order.
var SoilTypes = []SoilType{SoilAlluvial, SoilBlack, SoilRed, SoilLaterite, SoilArid, SoilForest}

func (s SoilType) Valid() bool {
	for _, known := range SoilTypes {
		if s == known {
			return true
		}
	}
	return false
}

// Language is the BCP-47-style code for the response language.
type Language string

const (
	LangEnglish Language = "en"
	LangHindi   Language = "hi"
	LangTamil   Language = "ta"
	LangTelugu  Language = "te"
	LangKannada Language = "kn"
	LangBengali Language = "bn"
	LangMarathi Language = "mr"
	LangPunjabi Language = "pa"
)

// Name returns the English name of the language for prompt construction.
// Unknown codes fall back to English.
func (l Language) Name() string {
	switch l {
	case LangHindi:
		return "Hindi"
	case LangTamil:
		return "Tamil"
	case LangTelugu:
		return "Telugu"
	case LangKannada:
		return "Kannada"
	case LangBengali:
		return "Bengali"
	case LangMarathi:
		return "Marathi"
	case LangPunjabi:
		return "Punjabi"
	default:
		return "English"
	}
}

func (l Language) Valid() bool {
	switch l {
	case LangEnglish, LangHindi, LangTamil, LangTelugu, LangKannada, LangBengali, LangMarathi, LangPunjabi:
		return true
	}
	return false
}

// ForecastDuration is the forecast window in months.
type ForecastDuration string

const (
	SixMonths    ForecastDuration = "6"
	TwelveMonths ForecastDuration = "12"
)

func (d ForecastDuration) Valid() bool {
	return d == SixMonths || d == TwelveMonths
}

// CropType optionally narrows recommendations to one crop category.
type CropType string

const (
	CropAll        CropType = "All"
	CropCereals    CropType = "Cereals"
	CropPulses     CropType = "Pulses"
	CropVegetables CropType = "Vegetables"
	CropFruits     CropType = "Fruits"
	CropOilseeds   CropType = "Oilseeds"
	CropCashCrops  CropType = "Cash Crops"
)

func (t CropType) Valid() bool {
	switch t {
	case CropAll, CropCereals, CropPulses, CropVegetables, CropFruits, CropOilseeds, CropCashCrops:
		return true
	}
	return false
}

// Recommendation is one AI-produced crop suggestion. Immutable once produced.
type Recommendation struct {
	CropName        string  `json:"cropName"`
	EnglishCropName string  `json:"englishCropName"`
	ConfidenceScore float64 `json:"confidenceScore"`
	Justification   string  `json:"justification"`
	ImageURL        string  `json:"imageUrl"`
}
