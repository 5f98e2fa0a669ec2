package service

import (
	"math"
	"time"

	"family-gifts/internal/apperr"
	"family-gifts/internal/model"
	"family-gifts/internal/repository"
)

// ProfileService manages per-(user, family) gift preference records.
type ProfileService struct {
	profileRepo *repository.ProfileRepository
	memberRepo  *repository.FamilyMemberRepository
}

func NewProfileService(
	profileRepo *repository.ProfileRepository,
	memberRepo *repository.FamilyMemberRepository,
) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		memberRepo:  memberRepo,
	}
}

type UpsertProfileRequest struct {
	FamilyID uint `json:"family_id" binding:"required"`

	ShoeSize  string `json:"shoe_size"`
	PantSize  string `json:"pant_size"`
	ShirtSize string `json:"shirt_size"`
	DressSize string `json:"dress_size"`
	RingSize  string `json:"ring_size"`

	FavoriteColors []string `json:"favorite_colors"`

	VehicleMake  string `json:"vehicle_make"`
	VehicleModel string `json:"vehicle_model"`
	VehicleYear  *int   `json:"vehicle_year"`

	Hobbies   []string `json:"hobbies"`
	Interests []string `json:"interests"`

	Allergies           string `json:"allergies"`
	DietaryRestrictions string `json:"dietary_restrictions"`
	Notes               string `json:"notes"`

	Birthday    *time.Time `json:"birthday"`
	Anniversary *time.Time `json:"anniversary"`
}

// ProfileView pairs a profile with its completion score.
type ProfileView struct {
	Profile           *model.Profile `json:"profile"`
	CompletionPercent int            `json:"completion_percent"`
}

// GetProfile returns the target member's profile; any member of the family
// may view any other member's profile.
func (s *ProfileService) GetProfile(viewerID, familyID, targetUserID uint) (*ProfileView, error) {
	if err := s.requireMember(familyID, viewerID); err != nil {
		return nil, err
	}
	if targetUserID != viewerID {
		if err := s.requireMember(familyID, targetUserID); err != nil {
			return nil, apperr.NotFoundf("profile not found")
		}
	}

	profile, err := s.profileRepo.FindByUserAndFamily(targetUserID, familyID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperr.NotFoundf("profile not found")
	}
	return &ProfileView{Profile: profile, CompletionPercent: CompletionPercent(profile)}, nil
}

// UpsertProfile creates or overwrites the caller's profile for the family.
// List-valued fields are stored as given; deduplication is the caller's
// concern.
func (s *ProfileService) UpsertProfile(userID uint, req UpsertProfileRequest) (*ProfileView, error) {
	if err := s.requireMember(req.FamilyID, userID); err != nil {
		return nil, err
	}

	profile := &model.Profile{
		UserID:              userID,
		FamilyID:            req.FamilyID,
		ShoeSize:            req.ShoeSize,
		PantSize:            req.PantSize,
		ShirtSize:           req.ShirtSize,
		DressSize:           req.DressSize,
		RingSize:            req.RingSize,
		FavoriteColors:      req.FavoriteColors,
		VehicleMake:         req.VehicleMake,
		VehicleModel:        req.VehicleModel,
		VehicleYear:         req.VehicleYear,
		Hobbies:             req.Hobbies,
		Interests:           req.Interests,
		Allergies:           req.Allergies,
		DietaryRestrictions: req.DietaryRestrictions,
		Notes:               req.Notes,
		Birthday:            req.Birthday,
		Anniversary:         req.Anniversary,
	}
	if err := s.profileRepo.Upsert(profile); err != nil {
		return nil, err
	}
	return &ProfileView{Profile: profile, CompletionPercent: CompletionPercent(profile)}, nil
}

// CompletionPercent scores a profile against a fixed nine-field checklist,
// rounded to the nearest percent.
func CompletionPercent(p *model.Profile) int {
	if p == nil {
		return 0
	}
	checks := []bool{
		p.ShoeSize != "",
		p.PantSize != "",
		p.ShirtSize != "",
		p.RingSize != "",
		len(p.FavoriteColors) > 0,
		p.VehicleMake != "",
		len(p.Hobbies) > 0,
		len(p.Interests) > 0,
		p.Birthday != nil,
	}
	filled := 0
	for _, ok := range checks {
		if ok {
			filled++
		}
	}
	return int(math.Round(float64(filled) / float64(len(checks)) * 100))
}

func (s *ProfileService) requireMember(familyID, userID uint) error {
	member, err := s.memberRepo.FindMember(familyID, userID)
	if err != nil {
		return err
	}
	if member == nil {
		return apperr.Authorizationf("you are not a member of this family")
	}
	return nil
}
