package service

import (
	"context"
	"time"

	"github.com/boardhouse/board-service/internal/core/domain"
	"github.com/boardhouse/board-service/internal/core/ports"
)

// CommentService implements comment use-cases. A comment can only be created
// on an existing post; deletion follows the author-or-admin rule.
type CommentService struct {
	repo  ports.CommentRepository
	posts ports.PostRepository
}

func NewCommentService(repo ports.CommentRepository, posts ports.PostRepository) *CommentService {
	return &CommentService{repo: repo, posts: posts}
}

func (s *CommentService) CreateComment(ctx context.Context, identity domain.Identity, postID, content string) (*domain.Comment, error) {
	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, &domain.Comment{
		PostID:    postID,
		Author:    identity.Subject,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	})
}

func (s *CommentService) ListComments(ctx context.Context, postID string) ([]*domain.Comment, error) {
	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.repo.ListByPost(ctx, postID)
}

func (s *CommentService) DeleteComment(ctx context.Context, identity domain.Identity, id string) error {
	comment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !canMutate(identity, comment.Author) {
		return domain.ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}
