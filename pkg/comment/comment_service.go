package comment

import (
	"context"
	"cookbook-backend/domain"
	"cookbook-backend/entities"
	"cookbook-backend/internal/metrics"
	"cookbook-backend/pkg/database"
	"cookbook-backend/pkg/notification"
	"cookbook-backend/pkg/recipe"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	CommentService interface {
		AddComment(ctx context.Context, userID, recipeID uuid.UUID, req domain.CommentRequest) (domain.CommentResponse, error)
		UpdateComment(ctx context.Context, userID, commentID uuid.UUID, req domain.UpdateCommentRequest) (domain.CommentResponse, error)
		DeleteComment(ctx context.Context, userID, commentID uuid.UUID) error
		ListComments(ctx context.Context, recipeID uuid.UUID) ([]domain.CommentResponse, error)
		GetComment(ctx context.Context, commentID uuid.UUID) (domain.CommentResponse, error)
	}

	commentService struct {
		commentRepository   CommentRepository
		recipeRepository    recipe.RecipeRepository
		notificationService notification.NotificationService
		transactor          database.Transactor
	}
)

func NewCommentService(
	commentRepository CommentRepository,
	recipeRepository recipe.RecipeRepository,
	notificationService notification.NotificationService,
	transactor database.Transactor,
) CommentService {
	return &commentService{
		commentRepository:   commentRepository,
		recipeRepository:    recipeRepository,
		notificationService: notificationService,
		transactor:          transactor,
	}
}

// AddComment stores a root comment or a reply. Replies to a reply join the
// root thread so nesting stays one level deep, but the author of the comment
// being answered is the one notified.
func (s *commentService) AddComment(ctx context.Context, userID, recipeID uuid.UUID, req domain.CommentRequest) (domain.CommentResponse, error) {
	text := strings.TrimSpace(req.Comment)
	if text == "" {
		return domain.CommentResponse{}, domain.ErrCommentBlank
	}

	var parentID *uuid.UUID
	if req.ParentCommentID != nil && strings.TrimSpace(*req.ParentCommentID) != "" {
		id, err := uuid.Parse(*req.ParentCommentID)
		if err != nil {
			return domain.CommentResponse{}, domain.ErrParseUUID
		}
		parentID = &id
	}

	var (
		target  *entities.Recipe
		created = &entities.RecipeComment{UserID: userID, RecipeID: recipeID, Comment: text}
		notice  notification.Notice
	)
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		r, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrRecipeNotFound
			}
			return err
		}
		target = r

		if parentID == nil {
			if err := s.commentRepository.CreateComment(ctx, created); err != nil {
				return err
			}
			notice = notification.Notice{
				RecipientID: target.UserID,
				Type:        entities.NotificationComment,
				Message:     "commented on your recipe",
			}
			return s.recipeRepository.IncrementCounter(ctx, recipeID, entities.ColumnCommentsCount)
		}

		parent, err := s.commentRepository.GetCommentByID(ctx, *parentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrParentCommentNotFound
			}
			return err
		}
		if parent.RecipeID != recipeID {
			return domain.ErrParentCommentNotFound
		}

		root := parent.ID
		if parent.ParentCommentID != nil {
			root = *parent.ParentCommentID
		}
		created.ParentCommentID = &root
		if err := s.commentRepository.CreateComment(ctx, created); err != nil {
			return err
		}
		notice = notification.Notice{
			RecipientID: parent.UserID,
			Type:        entities.NotificationReply,
			Message:     "replied to your comment",
		}
		return nil
	})
	if err != nil {
		return domain.CommentResponse{}, err
	}

	metrics.RecordEngagement("comment", "add")
	notice.ActorID = userID
	notice.RecipeID = &target.ID
	notice.CommentID = &created.ID
	s.notificationService.NotifyBestEffort(ctx, notice)

	return s.GetComment(ctx, created.ID)
}

func (s *commentService) UpdateComment(ctx context.Context, userID, commentID uuid.UUID, req domain.UpdateCommentRequest) (domain.CommentResponse, error) {
	text := strings.TrimSpace(req.Comment)
	if text == "" {
		return domain.CommentResponse{}, domain.ErrCommentBlank
	}

	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.getOwned(ctx, userID, commentID); err != nil {
			return err
		}
		return s.commentRepository.UpdateComment(ctx, commentID, text)
	})
	if err != nil {
		return domain.CommentResponse{}, err
	}
	return s.GetComment(ctx, commentID)
}

// DeleteComment removes a comment the caller wrote. Deleting a root comment
// takes its replies with it and lowers commentsCount by exactly one.
func (s *commentService) DeleteComment(ctx context.Context, userID, commentID uuid.UUID) error {
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		c, err := s.getOwned(ctx, userID, commentID)
		if err != nil {
			return err
		}
		if err := s.commentRepository.DeleteComment(ctx, commentID); err != nil {
			return err
		}
		if !c.IsRoot() {
			return nil
		}
		return s.recipeRepository.DecrementCounter(ctx, c.RecipeID, entities.ColumnCommentsCount)
	})
	if err != nil {
		return err
	}
	metrics.RecordEngagement("comment", "remove")
	return nil
}

func (s *commentService) ListComments(ctx context.Context, recipeID uuid.UUID) ([]domain.CommentResponse, error) {
	target, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}

	threads, err := s.commentRepository.GetThreads(ctx, target.ID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.CommentResponse, 0, len(threads))
	for _, c := range threads {
		out = append(out, toResponse(c))
	}
	return out, nil
}

func (s *commentService) GetComment(ctx context.Context, commentID uuid.UUID) (domain.CommentResponse, error) {
	c, err := s.commentRepository.GetCommentByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.CommentResponse{}, domain.ErrCommentNotFound
		}
		return domain.CommentResponse{}, err
	}
	return toResponse(*c), nil
}

func (s *commentService) getOwned(ctx context.Context, userID, commentID uuid.UUID) (*entities.RecipeComment, error) {
	c, err := s.commentRepository.GetCommentByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCommentNotFound
		}
		return nil, err
	}
	if c.UserID != userID {
		return nil, domain.ErrCommentForbidden
	}
	return c, nil
}

func toResponse(c entities.RecipeComment) domain.CommentResponse {
	resp := domain.CommentResponse{
		ID:        c.ID.String(),
		RecipeID:  c.RecipeID.String(),
		UserID:    c.UserID.String(),
		Comment:   c.Comment,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if c.User != nil {
		resp.UserName = c.User.FullName
		resp.UserAvatar = c.User.AvatarURL
	}
	if c.ParentCommentID != nil {
		parent := c.ParentCommentID.String()
		resp.ParentCommentID = &parent
	}
	for _, reply := range c.Replies {
		resp.Replies = append(resp.Replies, toResponse(reply))
	}
	return resp
}
