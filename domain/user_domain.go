package domain

import (
	"net/http"
	"time"
)

var (
	MessageSuccessSendOTP        = "verification code sent"
	MessageSuccessRegister       = "user registered successfully"
	MessageSuccessLogin          = "login successful"
	MessageSuccessForgotPassword = "password reset code sent"
	MessageSuccessResetPassword  = "password reset successfully"
	MessageSuccessChangePassword = "password changed successfully"
	MessageSuccessGetUser        = "success get user"
	MessageSuccessUpdateUser     = "profile updated successfully"
	MessageSuccessDeleteUser     = "user deleted successfully"
	MessageSuccessGetUsers       = "success get users"

	MessageFailedSendOTP        = "failed to send verification code"
	MessageFailedRegister       = "failed to register user"
	MessageFailedLogin          = "failed to login"
	MessageFailedForgotPassword = "failed to send password reset code"
	MessageFailedResetPassword  = "failed to reset password"
	MessageFailedChangePassword = "failed to change password"
	MessageFailedGetUser        = "failed to get user"
	MessageFailedUpdateUser     = "failed to update profile"
	MessageFailedDeleteUser     = "failed to delete user"

	ErrUserNotFound        = NewClientError(http.StatusNotFound, "user not found")
	ErrEmailAlreadyExists  = NewClientError(http.StatusConflict, "email already registered")
	ErrEmailNotFound       = NewClientError(http.StatusNotFound, "email not registered")
	ErrCredentialsInvalid  = NewClientError(http.StatusUnauthorized, "invalid email or password")
	ErrPasswordMismatch    = NewClientError(http.StatusBadRequest, "current password is incorrect")
	ErrPasswordTooShort    = NewClientError(http.StatusBadRequest, "password must be at least 6 characters")
	ErrOTPInvalid          = NewClientError(http.StatusBadRequest, "incorrect verification code")
	ErrOTPExpired          = NewClientError(http.StatusBadRequest, "verification code expired or not requested")
	ErrOTPRateLimited      = NewClientError(http.StatusTooManyRequests, "too many verification code requests")
	ErrOTPAttemptsExceeded = NewClientError(http.StatusTooManyRequests, "too many verification attempts, request a new code")
)

type (
	SendOTPRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	RegisterRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=6"`
		FullName string `json:"fullName" validate:"required,notblank"`
		OTP      string `json:"otp" validate:"required,len=6,numeric"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string       `json:"token"`
		Role  string       `json:"role"`
		User  UserResponse `json:"user"`
	}

	ForgotPasswordRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	ResetPasswordRequest struct {
		Email       string `json:"email" validate:"required,email"`
		OTP         string `json:"otp" validate:"required,len=6,numeric"`
		NewPassword string `json:"newPassword" validate:"required,min=6"`
	}

	ChangePasswordRequest struct {
		OldPassword string `json:"oldPassword" validate:"required"`
		NewPassword string `json:"newPassword" validate:"required,min=6"`
	}

	UpdateProfileRequest struct {
		FullName  string `json:"fullName" validate:"required,notblank"`
		AvatarURL string `json:"avatarUrl" validate:"omitempty,url"`
		Bio       string `json:"bio" validate:"max=500"`
		Hometown  string `json:"hometown" validate:"max=100"`
	}

	UserResponse struct {
		ID             string    `json:"id"`
		Email          string    `json:"email"`
		FullName       string    `json:"fullName"`
		AvatarURL      string    `json:"avatarUrl,omitempty"`
		Bio            string    `json:"bio,omitempty"`
		Hometown       string    `json:"hometown,omitempty"`
		Provider       string    `json:"provider"`
		Role           string    `json:"role"`
		FollowersCount int       `json:"followersCount"`
		FollowingCount int       `json:"followingCount"`
		CreatedAt      time.Time `json:"createdAt"`
	}

	// UserSummary is the public projection used in follower lists.
	UserSummary struct {
		ID        string `json:"id"`
		FullName  string `json:"fullName"`
		AvatarURL string `json:"avatarUrl,omitempty"`
		Bio       string `json:"bio,omitempty"`
	}

	EmailExistsResponse struct {
		Exists bool `json:"exists"`
	}

	UserListResponse struct {
		Users      []UserResponse     `json:"users"`
		Pagination PaginationResponse `json:"pagination"`
	}
)
