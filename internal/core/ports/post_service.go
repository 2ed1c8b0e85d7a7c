package ports

import (
	"context"

	"github.com/boardhouse/board-service/internal/core/domain"
)

// ListPostsResult is returned by ListPosts.
type ListPostsResult struct {
	Items      []*domain.Post
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// PostService defines use-case operations for posts.
type PostService interface {
	CreatePost(ctx context.Context, identity domain.Identity, title, content string) (*domain.Post, error)
	GetPost(ctx context.Context, id string) (*domain.Post, error)
	ListPosts(ctx context.Context, filter ListPostsFilter) (*ListPostsResult, error)
	// UpdatePost and DeletePost enforce ownership: only the author or an
	// admin may mutate a post.
	UpdatePost(ctx context.Context, identity domain.Identity, id, title, content string) (*domain.Post, error)
	DeletePost(ctx context.Context, identity domain.Identity, id string) error
}

// CommentService defines use-case operations for comments.
type CommentService interface {
	CreateComment(ctx context.Context, identity domain.Identity, postID, content string) (*domain.Comment, error)
	ListComments(ctx context.Context, postID string) ([]*domain.Comment, error)
	DeleteComment(ctx context.Context, identity domain.Identity, id string) error
}

// FollowService defines use-case operations for the follow graph.
type FollowService interface {
	Follow(ctx context.Context, follower, followee string) error
	Unfollow(ctx context.Context, follower, followee string) error
	Following(ctx context.Context, username string) ([]string, error)
	Followers(ctx context.Context, username string) ([]string, error)
}
