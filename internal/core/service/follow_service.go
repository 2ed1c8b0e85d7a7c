package service

import (
	"context"
	"time"

	"github.com/boardhouse/board-service/internal/core/domain"
	"github.com/boardhouse/board-service/internal/core/ports"
)

// FollowService maintains the follow graph. Both ends of an edge must be
// existing accounts.
type FollowService struct {
	repo  ports.FollowRepository
	users ports.AuthRepository
}

func NewFollowService(repo ports.FollowRepository, users ports.AuthRepository) *FollowService {
	return &FollowService{repo: repo, users: users}
}

func (s *FollowService) Follow(ctx context.Context, follower, followee string) error {
	if follower == followee {
		return domain.ErrSelfFollow
	}
	if _, err := s.users.FindByUsername(ctx, followee); err != nil {
		return err
	}

	return s.repo.Create(ctx, &domain.Follow{
		Follower:  follower,
		Followee:  followee,
		CreatedAt: time.Now().UTC(),
	})
}

func (s *FollowService) Unfollow(ctx context.Context, follower, followee string) error {
	return s.repo.Delete(ctx, follower, followee)
}

func (s *FollowService) Following(ctx context.Context, username string) ([]string, error) {
	return s.repo.ListFollowing(ctx, username)
}

func (s *FollowService) Followers(ctx context.Context, username string) ([]string, error) {
	return s.repo.ListFollowers(ctx, username)
}
