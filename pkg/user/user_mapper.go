package user

import (
	"cookbook-backend/domain"
	"cookbook-backend/entities"
)

func ToUserResponse(u entities.User) domain.UserResponse {
	return domain.UserResponse{
		ID:             u.ID.String(),
		Email:          u.Email,
		FullName:       u.FullName,
		AvatarURL:      u.AvatarURL,
		Bio:            u.Bio,
		Hometown:       u.Hometown,
		Provider:       u.Provider,
		Role:           u.Role,
		FollowersCount: u.FollowersCount,
		FollowingCount: u.FollowingCount,
		CreatedAt:      u.CreatedAt,
	}
}

func ToUserSummary(u entities.User) domain.UserSummary {
	return domain.UserSummary{
		ID:        u.ID.String(),
		FullName:  u.FullName,
		AvatarURL: u.AvatarURL,
		Bio:       u.Bio,
	}
}

func ToUserSummaries(users []entities.User) []domain.UserSummary {
	out := make([]domain.UserSummary, 0, len(users))
	for _, u := range users {
		out = append(out, ToUserSummary(u))
	}
	return out
}
