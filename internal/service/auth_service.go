package service

import (
	"strings"

	"family-gifts/internal/apperr"
	"family-gifts/internal/model"
	"family-gifts/internal/repository"
	"family-gifts/pkg/logger"
	"family-gifts/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration and login.
type AuthService struct {
	userRepo   *repository.UserRepository
	familyRepo *repository.FamilyRepository
	memberRepo *repository.FamilyMemberRepository
}

func NewAuthService(
	userRepo *repository.UserRepository,
	familyRepo *repository.FamilyRepository,
	memberRepo *repository.FamilyMemberRepository,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		familyRepo: familyRepo,
		memberRepo: memberRepo,
	}
}

type RegisterRequest struct {
	Name       string `json:"name" binding:"max=255"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=6"`
	InviteCode string `json:"invite_code"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register creates the user and, when a valid invite code is supplied, joins
// the matching family as a regular member. An invalid code does not fail the
// registration; the join is skipped and logged.
func (s *AuthService) Register(req RegisterRequest) (*model.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflictf("an account with this email already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		Password: string(hashedPassword),
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	if code := normalizeInviteCode(req.InviteCode); code != "" {
		family, err := s.familyRepo.FindByInviteCode(code)
		if err != nil {
			return nil, err
		}
		if family == nil {
			logger.L.Warn("Register: invite code did not match any family",
				zap.Uint("userID", user.ID), zap.String("code", code))
		} else if err := s.memberRepo.Add(family.ID, user.ID, model.RoleMember); err != nil {
			return nil, err
		}
	}

	return user, nil
}

// Login verifies credentials and returns a signed session token. The error
// message is uniform so callers cannot probe which emails exist.
func (s *AuthService) Login(req LoginRequest) (string, *model.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, apperr.Authenticationf("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return "", nil, apperr.Authenticationf("invalid email or password")
	}

	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func normalizeInviteCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
