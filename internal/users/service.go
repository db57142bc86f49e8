package users

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/Thanajai/GrowFuse/internal/crops"
	"github.com/Thanajai/GrowFuse/internal/history"
)

var (
	ErrNotLoggedIn  = errors.New("users: not logged in")
	ErrFarmNotFound = errors.New("users: farm not found")
	ErrInvalidFarm  = errors.New("users: invalid farm")
)

// Service layers profile mutations (farms, saved recommendations) on top of
// the repository. Mutations act on the verified caller identity, never on
// the shared session record.
type Service struct {
	Repo *Repo
}

func NewService(repo *Repo) *Service {
	return &Service{Repo: repo}
}

func (s *Service) Login(ctx context.Context, phone string) (User, error) {
	return s.Repo.LoginWithPhone(ctx, phone)
}

func (s *Service) Logout(ctx context.Context, phone string) {
	s.Repo.Logout(ctx, phone)
}

// Current returns the profile for the given verified phone.
func (s *Service) Current(ctx context.Context, phone string) (User, bool) {
	return s.Repo.ByPhone(ctx, phone)
}

// AddFarm appends a farm to the caller's profile and persists it.
func (s *Service) AddFarm(ctx context.Context, phone, name, location string, soilType crops.SoilType, landArea float64) (User, error) {
	if strings.TrimSpace(name) == "" || !soilType.Valid() || landArea <= 0 {
		return User{}, ErrInvalidFarm
	}
	user, ok := s.Repo.ByPhone(ctx, phone)
	if !ok {
		return User{}, ErrNotLoggedIn
	}

	user.Farms = append(user.Farms, Farm{
		ID:       uuid.NewString(),
		Name:     strings.TrimSpace(name),
		Location: strings.TrimSpace(location),
		SoilType: soilType,
		LandArea: landArea,
	})
	if err := s.Repo.Save(ctx, user); err != nil {
		return User{}, err
	}
	return user, nil
}

// SaveRecommendation pins a history entry to one of the caller's farms.
func (s *Service) SaveRecommendation(ctx context.Context, phone, farmID string, entry history.Entry) (User, error) {
	user, ok := s.Repo.ByPhone(ctx, phone)
	if !ok {
		return User{}, ErrNotLoggedIn
	}

	found := false
	for _, farm := range user.Farms {
		if farm.ID == farmID {
			found = true
			break
		}
	}
	if !found {
		return User{}, ErrFarmNotFound
	}

	user.SavedRecommendations = append(user.SavedRecommendations, SavedRecommendation{
		Entry:  entry,
		FarmID: farmID,
	})
	if err := s.Repo.Save(ctx, user); err != nil {
		return User{}, err
	}
	return user, nil
}
