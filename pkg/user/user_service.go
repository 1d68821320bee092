package user

import (
	"context"
	"cookbook-backend/domain"
	"cookbook-backend/entities"
	"cookbook-backend/internal/utils"
	"cookbook-backend/internal/utils/mailing"
	"cookbook-backend/pkg/database"
	"cookbook-backend/pkg/jwt"
	"cookbook-backend/pkg/otp"
	"cookbook-backend/pkg/recipe"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	defaultUserPageLimit = 20
	maxUserPageLimit     = 100
	minPasswordLength    = 6
)

type (
	UserService interface {
		SendRegisterOTP(ctx context.Context, req domain.SendOTPRequest) error
		Register(ctx context.Context, req domain.RegisterRequest) (domain.UserResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		ForgotPassword(ctx context.Context, req domain.ForgotPasswordRequest) error
		ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error
		ChangePassword(ctx context.Context, userID uuid.UUID, req domain.ChangePasswordRequest) error

		Me(ctx context.Context, userID uuid.UUID) (domain.UserResponse, error)
		GetUser(ctx context.Context, userID uuid.UUID) (domain.UserResponse, error)
		UpdateProfile(ctx context.Context, userID uuid.UUID, req domain.UpdateProfileRequest) (domain.UserResponse, error)
		EmailExists(ctx context.Context, email string) (bool, error)

		ListUsers(ctx context.Context, page domain.PaginationRequest) (domain.UserListResponse, error)
		DeleteUser(ctx context.Context, userID uuid.UUID) error
	}

	userService struct {
		userRepository   UserRepository
		recipeRepository recipe.RecipeRepository
		jwtService       jwt.JWTService
		otpStore         otp.Store
		mailer           mailing.Mailer
		transactor       database.Transactor
	}
)

func NewUserService(
	userRepository UserRepository,
	recipeRepository recipe.RecipeRepository,
	jwtService jwt.JWTService,
	otpStore otp.Store,
	mailer mailing.Mailer,
	transactor database.Transactor,
) UserService {
	return &userService{
		userRepository:   userRepository,
		recipeRepository: recipeRepository,
		jwtService:       jwtService,
		otpStore:         otpStore,
		mailer:           mailer,
		transactor:       transactor,
	}
}

func (s *userService) SendRegisterOTP(ctx context.Context, req domain.SendOTPRequest) error {
	exists, err := s.userRepository.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrEmailAlreadyExists
	}
	return s.sendCode(ctx, otp.PurposeRegister, req.Email, "Verify your email", "registration")
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.UserResponse, error) {
	if len(req.Password) < minPasswordLength {
		return domain.UserResponse{}, domain.ErrPasswordTooShort
	}
	exists, err := s.userRepository.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return domain.UserResponse{}, err
	}
	if exists {
		return domain.UserResponse{}, domain.ErrEmailAlreadyExists
	}
	if err := s.otpStore.Verify(ctx, otp.PurposeRegister, req.Email, req.OTP); err != nil {
		return domain.UserResponse{}, err
	}

	hashed, err := hashPassword(req.Password)
	if err != nil {
		return domain.UserResponse{}, err
	}
	u := &entities.User{
		Email:    normalizeEmail(req.Email),
		Password: hashed,
		FullName: strings.TrimSpace(req.FullName),
		Provider: entities.ProviderLocal,
		Role:     entities.RoleUser,
	}
	if err := s.userRepository.CreateUser(ctx, u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.UserResponse{}, domain.ErrEmailAlreadyExists
		}
		return domain.UserResponse{}, err
	}
	return ToUserResponse(*u), nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	u, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.LoginResponse{}, domain.ErrCredentialsInvalid
		}
		return domain.LoginResponse{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)) != nil {
		return domain.LoginResponse{}, domain.ErrCredentialsInvalid
	}

	token, err := s.jwtService.GenerateTokenUser(u.ID.String(), u.Role)
	if err != nil {
		return domain.LoginResponse{}, err
	}
	return domain.LoginResponse{Token: token, Role: u.Role, User: ToUserResponse(*u)}, nil
}

func (s *userService) ForgotPassword(ctx context.Context, req domain.ForgotPasswordRequest) error {
	exists, err := s.userRepository.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrEmailNotFound
	}
	return s.sendCode(ctx, otp.PurposeReset, req.Email, "Reset your password", "password reset")
}

func (s *userService) ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error {
	if len(req.NewPassword) < minPasswordLength {
		return domain.ErrPasswordTooShort
	}
	u, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrEmailNotFound
		}
		return err
	}
	if err := s.otpStore.Verify(ctx, otp.PurposeReset, req.Email, req.OTP); err != nil {
		return err
	}

	hashed, err := hashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	return s.userRepository.UpdatePassword(ctx, u.ID, hashed)
}

func (s *userService) ChangePassword(ctx context.Context, userID uuid.UUID, req domain.ChangePasswordRequest) error {
	if len(req.NewPassword) < minPasswordLength {
		return domain.ErrPasswordTooShort
	}
	u, err := s.getUser(ctx, userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.OldPassword)) != nil {
		return domain.ErrPasswordMismatch
	}

	hashed, err := hashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	return s.userRepository.UpdatePassword(ctx, u.ID, hashed)
}

func (s *userService) Me(ctx context.Context, userID uuid.UUID) (domain.UserResponse, error) {
	return s.GetUser(ctx, userID)
}

func (s *userService) GetUser(ctx context.Context, userID uuid.UUID) (domain.UserResponse, error) {
	u, err := s.getUser(ctx, userID)
	if err != nil {
		return domain.UserResponse{}, err
	}
	return ToUserResponse(*u), nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, req domain.UpdateProfileRequest) (domain.UserResponse, error) {
	name := strings.TrimSpace(req.FullName)
	if name == "" {
		return domain.UserResponse{}, domain.BadRequest("full name must not be blank")
	}

	err := s.userRepository.UpdateProfile(ctx, userID, map[string]any{
		"full_name":  name,
		"avatar_url": strings.TrimSpace(req.AvatarURL),
		"bio":        strings.TrimSpace(req.Bio),
		"hometown":   strings.TrimSpace(req.Hometown),
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserResponse{}, domain.ErrUserNotFound
		}
		return domain.UserResponse{}, err
	}
	return s.GetUser(ctx, userID)
}

func (s *userService) EmailExists(ctx context.Context, email string) (bool, error) {
	return s.userRepository.ExistsByEmail(ctx, email)
}

func (s *userService) ListUsers(ctx context.Context, page domain.PaginationRequest) (domain.UserListResponse, error) {
	page = page.Normalize(defaultUserPageLimit, maxUserPageLimit)
	users, total, err := s.userRepository.ListUsers(ctx, page)
	if err != nil {
		return domain.UserListResponse{}, err
	}

	out := make([]domain.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, ToUserResponse(u))
	}
	return domain.UserListResponse{Users: out, Pagination: domain.NewPaginationResponse(page, total)}, nil
}

// DeleteUser removes the account together with its recipes and everything the
// user wrote elsewhere, then rebuilds the counters those rows fed into.
func (s *userService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	return s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.getUser(ctx, userID); err != nil {
			return err
		}

		owned, err := s.recipeRepository.ListIDsByOwner(ctx, userID)
		if err != nil {
			return err
		}
		for _, id := range owned {
			if err := s.recipeRepository.DeleteRecipe(ctx, id); err != nil {
				return fmt.Errorf("delete recipe %s: %w", id, err)
			}
		}

		engaged, err := s.recipeRepository.EngagedRecipeIDs(ctx, userID)
		if err != nil {
			return err
		}
		neighbors, err := s.userRepository.FollowNeighborIDs(ctx, userID)
		if err != nil {
			return err
		}

		if err := s.userRepository.DeleteUserData(ctx, userID); err != nil {
			return err
		}
		if err := s.recipeRepository.RecountCounters(ctx, engaged); err != nil {
			return err
		}
		if err := s.userRepository.RecountFollowCounters(ctx, neighbors); err != nil {
			return err
		}

		utils.Logger.Info("user deleted",
			zap.String("user_id", userID.String()),
			zap.Int("recipes", len(owned)),
			zap.Int("engaged_recipes", len(engaged)),
		)
		return nil
	})
}

func (s *userService) sendCode(ctx context.Context, purpose otp.Purpose, email, subject, label string) error {
	code, err := s.otpStore.Issue(ctx, purpose, email)
	if err != nil {
		return err
	}
	minutes := int(s.otpStore.TTL().Minutes())
	if err := s.mailer.SendMail(normalizeEmail(email), subject, mailing.OTPMailBody(code, label, minutes)); err != nil {
		utils.Logger.Error("failed to send otp mail", zap.String("purpose", string(purpose)), zap.Error(err))
		// an undelivered code must not hold the resend window
		if relErr := s.otpStore.Release(ctx, purpose, email); relErr != nil {
			utils.Logger.Warn("failed to release otp code", zap.String("purpose", string(purpose)), zap.Error(relErr))
		}
		return fmt.Errorf("send otp mail: %w", err)
	}
	return nil
}

func (s *userService) getUser(ctx context.Context, userID uuid.UUID) (*entities.User, error) {
	u, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}
