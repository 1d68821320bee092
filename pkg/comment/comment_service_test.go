package comment

import (
	"context"
	"errors"
	"testing"

	"cookbook-backend/domain"
	"cookbook-backend/entities"
	"cookbook-backend/internal/testutil"
	"cookbook-backend/pkg/database"
	"cookbook-backend/pkg/notification"
	"cookbook-backend/pkg/recipe"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setup(t *testing.T) (*gorm.DB, CommentService) {
	t.Helper()

	db := testutil.NewDB(t)
	svc := NewCommentService(
		NewCommentRepository(db),
		recipe.NewRecipeRepository(db),
		notification.NewNotificationService(notification.NewNotificationRepository(db)),
		database.NewTransactor(db),
	)
	return db, svc
}

func ptr(s string) *string { return &s }

func TestAddComment_RootAndReplyCounters(t *testing.T) {
	db, svc := setup(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, db, "a@example.com", "A")
	guest := testutil.CreateUser(t, db, "b@example.com", "B")
	r := testutil.CreateRecipe(t, db, owner, "Cơm tấm")

	root, err := svc.AddComment(ctx, guest.ID, r.ID, domain.CommentRequest{Comment: "  Looks great  "})
	require.NoError(t, err)
	assert.Equal(t, "Looks great", root.Comment)
	assert.Equal(t, "B", root.UserName)
	assert.Nil(t, root.ParentCommentID)
	assert.Equal(t, 1, testutil.Reload(t, db, r.ID).CommentsCount)

	reply, err := svc.AddComment(ctx, owner.ID, r.ID, domain.CommentRequest{Comment: "Thanks!", ParentCommentID: ptr(root.ID)})
	require.NoError(t, err)
	require.NotNil(t, reply.ParentCommentID)
	assert.Equal(t, root.ID, *reply.ParentCommentID)
	assert.Equal(t, 1, testutil.Reload(t, db, r.ID).CommentsCount)

	assert.Equal(t, int64(1), testutil.Count(t, db, &entities.Notification{}, "user_id = ? AND type = ?", owner.ID, entities.NotificationComment))
	assert.Equal(t, int64(1), testutil.Count(t, db, &entities.Notification{}, "user_id = ? AND type = ?", guest.ID, entities.NotificationReply))
}

func TestAddComment_ReplyToReplyJoinsRootThread(t *testing.T) {
	db, svc := setup(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, db, "a@example.com", "A")
	b := testutil.CreateUser(t, db, "b@example.com", "B")
	c := testutil.CreateUser(t, db, "c@example.com", "C")
	r := testutil.CreateRecipe(t, db, owner, "Cơm tấm")

	root, err := svc.AddComment(ctx, owner.ID, r.ID, domain.CommentRequest{Comment: "Ask me anything"})
	require.NoError(t, err)
	first, err := svc.AddComment(ctx, b.ID, r.ID, domain.CommentRequest{Comment: "Rice type?", ParentCommentID: ptr(root.ID)})
	require.NoError(t, err)
	second, err := svc.AddComment(ctx, c.ID, r.ID, domain.CommentRequest{Comment: "Broken rice", ParentCommentID: ptr(first.ID)})
	require.NoError(t, err)

	require.NotNil(t, second.ParentCommentID)
	assert.Equal(t, root.ID, *second.ParentCommentID)
	assert.Equal(t, int64(1), testutil.Count(t, db, &entities.Notification{}, "user_id = ? AND type = ? AND actor_id = ?", b.ID, entities.NotificationReply, c.ID))

	threads, err := svc.ListComments(ctx, r.ID)
	require.NoError(t, err)
	require.Len(t, threads, 1)
	require.Len(t, threads[0].Replies, 2)
	assert.Equal(t, "Rice type?", threads[0].Replies[0].Comment)
	assert.Equal(t, "Broken rice", threads[0].Replies[1].Comment)
}

func TestAddComment_Validation(t *testing.T) {
	db, svc := setup(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, db, "a@example.com", "A")
	r := testutil.CreateRecipe(t, db, owner, "Cơm tấm")
	other := testutil.CreateRecipe(t, db, owner, "Chè")

	_, err := svc.AddComment(ctx, owner.ID, r.ID, domain.CommentRequest{Comment: "   "})
	assert.ErrorIs(t, err, domain.ErrCommentBlank)

	_, err = svc.AddComment(ctx, owner.ID, uuid.New(), domain.CommentRequest{Comment: "hi"})
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)

	_, err = svc.AddComment(ctx, owner.ID, r.ID, domain.CommentRequest{Comment: "hi", ParentCommentID: ptr(uuid.NewString())})
	assert.ErrorIs(t, err, domain.ErrParentCommentNotFound)

	elsewhere, err := svc.AddComment(ctx, owner.ID, other.ID, domain.CommentRequest{Comment: "on another recipe"})
	require.NoError(t, err)
	_, err = svc.AddComment(ctx, owner.ID, r.ID, domain.CommentRequest{Comment: "hi", ParentCommentID: ptr(elsewhere.ID)})
	assert.ErrorIs(t, err, domain.ErrParentCommentNotFound)

	assert.Equal(t, 0, testutil.Reload(t, db, r.ID).CommentsCount)
}

func TestUpdateComment_Ownership(t *testing.T) {
	db, svc := setup(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, db, "a@example.com", "A")
	guest := testutil.CreateUser(t, db, "b@example.com", "B")
	r := testutil.CreateRecipe(t, db, owner, "Cơm tấm")

	c, err := svc.AddComment(ctx, guest.ID, r.ID, domain.CommentRequest{Comment: "first"})
	require.NoError(t, err)
	id := uuid.MustParse(c.ID)

	_, err = svc.UpdateComment(ctx, owner.ID, id, domain.UpdateCommentRequest{Comment: "hijack"})
	assert.ErrorIs(t, err, domain.ErrCommentForbidden)

	updated, err := svc.UpdateComment(ctx, guest.ID, id, domain.UpdateCommentRequest{Comment: "edited"})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Comment)

	_, err = svc.UpdateComment(ctx, guest.ID, uuid.New(), domain.UpdateCommentRequest{Comment: "x"})
	assert.ErrorIs(t, err, domain.ErrCommentNotFound)
}

func TestDeleteComment_RootTakesRepliesAndDecrementsOnce(t *testing.T) {
	db, svc := setup(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, db, "a@example.com", "A")
	guest := testutil.CreateUser(t, db, "b@example.com", "B")
	r := testutil.CreateRecipe(t, db, owner, "Cơm tấm")

	keep, err := svc.AddComment(ctx, owner.ID, r.ID, domain.CommentRequest{Comment: "keep"})
	require.NoError(t, err)
	root, err := svc.AddComment(ctx, guest.ID, r.ID, domain.CommentRequest{Comment: "root"})
	require.NoError(t, err)
	for _, text := range []string{"one", "two"} {
		_, err := svc.AddComment(ctx, owner.ID, r.ID, domain.CommentRequest{Comment: text, ParentCommentID: ptr(root.ID)})
		require.NoError(t, err)
	}
	assert.Equal(t, 2, testutil.Reload(t, db, r.ID).CommentsCount)

	assert.ErrorIs(t, svc.DeleteComment(ctx, owner.ID, uuid.MustParse(root.ID)), domain.ErrCommentForbidden)
	require.NoError(t, svc.DeleteComment(ctx, guest.ID, uuid.MustParse(root.ID)))

	assert.Equal(t, 1, testutil.Reload(t, db, r.ID).CommentsCount)
	assert.Equal(t, int64(1), testutil.Count(t, db, &entities.RecipeComment{}, "recipe_id = ?", r.ID))
	assert.Equal(t, int64(0), testutil.Count(t, db, &entities.Notification{}, "type = ?", entities.NotificationReply))

	reply, err := svc.AddComment(ctx, guest.ID, r.ID, domain.CommentRequest{Comment: "reply", ParentCommentID: ptr(keep.ID)})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteComment(ctx, guest.ID, uuid.MustParse(reply.ID)))
	assert.Equal(t, 1, testutil.Reload(t, db, r.ID).CommentsCount)

	threads, err := svc.ListComments(ctx, r.ID)
	require.NoError(t, err)
	require.Len(t, threads, 1)
	assert.Empty(t, threads[0].Replies)
}

// brokenNotifications fails the writes the notification service makes.
type brokenNotifications struct {
	notification.NotificationRepository
	dupErr    error
	createErr error
}

func (b brokenNotifications) HasUnreadDuplicate(context.Context, uuid.UUID, entities.NotificationType, uuid.UUID, *uuid.UUID) (bool, error) {
	return false, b.dupErr
}

func (b brokenNotifications) CreateNotification(context.Context, *entities.Notification) error {
	return b.createErr
}

func brokenNotificationCases() map[string]brokenNotifications {
	return map[string]brokenNotifications{
		"duplicate check fails": {dupErr: errors.New("notifications table unavailable")},
		"insert fails":          {createErr: errors.New("notifications table unavailable")},
	}
}

func TestAddComment_SucceedsWhenNotificationFails(t *testing.T) {
	for name, repo := range brokenNotificationCases() {
		t.Run(name, func(t *testing.T) {
			db := testutil.NewDB(t)
			svc := NewCommentService(NewCommentRepository(db), recipe.NewRecipeRepository(db),
				notification.NewNotificationService(repo), database.NewTransactor(db))
			ctx := context.Background()
			owner := testutil.CreateUser(t, db, "a@example.com", "A")
			guest := testutil.CreateUser(t, db, "b@example.com", "B")
			r := testutil.CreateRecipe(t, db, owner, "Cá kho tộ")

			root, err := svc.AddComment(ctx, guest.ID, r.ID, domain.CommentRequest{Comment: "Delicious"})
			require.NoError(t, err)
			assert.Equal(t, 1, testutil.Reload(t, db, r.ID).CommentsCount)

			_, err = svc.AddComment(ctx, owner.ID, r.ID, domain.CommentRequest{Comment: "Thank you", ParentCommentID: ptr(root.ID)})
			require.NoError(t, err)
			assert.Equal(t, 1, testutil.Reload(t, db, r.ID).CommentsCount)
			assert.Equal(t, int64(2), testutil.Count(t, db, &entities.RecipeComment{}, "recipe_id = ?", r.ID))
			assert.Equal(t, int64(0), testutil.Count(t, db, &entities.Notification{}, "1 = 1"))
		})
	}
}
