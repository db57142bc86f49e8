package users

import (
	"github.com/Thanajai/GrowFuse/internal/crops"
	"github.com/Thanajai/GrowFuse/internal/history"
)

// Farm is one plot owned by a user, created by explicit user action.
type Farm struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Location string         `json:"location"`
	SoilType crops.SoilType `json:"soilType"`
	LandArea float64        `json:"landArea"`
}

// SavedRecommendation is a history entry the user pinned to one of their farms.
type SavedRecommendation struct {
	history.Entry
	FarmID string `json:"farmId"`
}

// User is the durable per-phone profile. Phone is the unique lookup key; at
// most one profile exists per phone number.
type User struct {
	ID                   string                `json:"id"`
	Name                 string                `json:"name"`
	Phone                string                `json:"phone"`
	Farms                []Farm                `json:"farms"`
	SavedRecommendations []SavedRecommendation `json:"savedRecommendations"`
}
