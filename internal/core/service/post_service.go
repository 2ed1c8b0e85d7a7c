package service

import (
	"context"
	"strings"
	"time"

	"github.com/boardhouse/board-service/internal/core/domain"
	"github.com/boardhouse/board-service/internal/core/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// PostService implements the board's post use-cases. Mutation is restricted
// to the author or an admin.
type PostService struct {
	repo ports.PostRepository
}

func NewPostService(repo ports.PostRepository) *PostService {
	return &PostService{repo: repo}
}

func (s *PostService) CreatePost(ctx context.Context, identity domain.Identity, title, content string) (*domain.Post, error) {
	now := time.Now().UTC()
	return s.repo.Create(ctx, &domain.Post{
		Author:    identity.Subject,
		Title:     strings.TrimSpace(title),
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (s *PostService) GetPost(ctx context.Context, id string) (*domain.Post, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *PostService) ListPosts(ctx context.Context, filter ports.ListPostsFilter) (*ports.ListPostsResult, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = defaultPageLimit
	}
	if filter.Limit > maxPageLimit {
		filter.Limit = maxPageLimit
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return &ports.ListPostsResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	}, nil
}

func (s *PostService) UpdatePost(ctx context.Context, identity domain.Identity, id, title, content string) (*domain.Post, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canMutate(identity, post.Author) {
		return nil, domain.ErrForbidden
	}

	post.Title = strings.TrimSpace(title)
	post.Content = content
	post.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) DeletePost(ctx context.Context, identity domain.Identity, id string) error {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !canMutate(identity, post.Author) {
		return domain.ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}

func canMutate(identity domain.Identity, author string) bool {
	return identity.Subject == author || identity.IsAdmin()
}
