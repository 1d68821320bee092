package domain

import "net/http"

var (
	MessageSuccessFollow       = "followed successfully"
	MessageSuccessUnfollow     = "unfollowed successfully"
	MessageSuccessGetFollowers = "success get followers"
	MessageSuccessGetFollowing = "success get following"

	MessageFailedFollow   = "failed to follow user"
	MessageFailedUnfollow = "failed to unfollow user"

	ErrCannotFollowSelf = NewClientError(http.StatusBadRequest, "Cannot follow yourself")
	ErrAlreadyFollowing = NewClientError(http.StatusConflict, "Already following this user")
	ErrNotFollowing     = NewClientError(http.StatusBadRequest, "Not following this user")
)

type (
	FollowStatsResponse struct {
		FollowersCount int `json:"followersCount"`
		FollowingCount int `json:"followingCount"`
	}

	IsFollowingResponse struct {
		Following bool `json:"following"`
	}
)
