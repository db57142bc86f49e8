package users

import (
	"github.com/Thanajai/GrowFuse/internal/crops"
	"github.com/Thanajai/GrowFuse/internal/history"
)

type otpRequestBody struct {
	Phone string `json:"phone"`
}

type otpVerifyBody struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

type addFarmBody struct {
	Name     string         `json:"name"`
	Location string         `json:"location"`
	SoilType crops.SoilType `json:"soilType"`
	LandArea float64        `json:"landArea"`
}

type saveRecommendationBody struct {
	FarmID string        `json:"farmId"`
	Entry  history.Entry `json:"entry"`
}
