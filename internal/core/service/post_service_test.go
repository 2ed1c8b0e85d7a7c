package service

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/boardhouse/board-service/internal/core/domain"
	"github.com/boardhouse/board-service/internal/core/ports"
)

type stubPostRepo struct {
	posts   map[string]*domain.Post
	nextID  int
	listGot ports.ListPostsFilter
}

func newStubPostRepo() *stubPostRepo {
	return &stubPostRepo{posts: make(map[string]*domain.Post)}
}

func (r *stubPostRepo) Create(_ context.Context, p *domain.Post) (*domain.Post, error) {
	r.nextID++
	p.ID = strconv.Itoa(r.nextID)
	r.posts[p.ID] = p
	return p, nil
}

func (r *stubPostRepo) FindByID(_ context.Context, id string) (*domain.Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *stubPostRepo) List(_ context.Context, filter ports.ListPostsFilter) ([]*domain.Post, int64, error) {
	r.listGot = filter
	out := make([]*domain.Post, 0, len(r.posts))
	for _, p := range r.posts {
		if filter.Author != "" && p.Author != filter.Author {
			continue
		}
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

func (r *stubPostRepo) Update(_ context.Context, p *domain.Post) error {
	if _, ok := r.posts[p.ID]; !ok {
		return domain.ErrPostNotFound
	}
	r.posts[p.ID] = p
	return nil
}

func (r *stubPostRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.posts[id]; !ok {
		return domain.ErrPostNotFound
	}
	delete(r.posts, id)
	return nil
}

var (
	alice = domain.Identity{Subject: "alice", Role: domain.RoleUser}
	bob   = domain.Identity{Subject: "bob", Role: domain.RoleUser}
	root  = domain.Identity{Subject: "root", Role: domain.RoleAdmin}
)

func seedPost(t *testing.T, svc *PostService, author domain.Identity, title string) *domain.Post {
	t.Helper()
	post, err := svc.CreatePost(context.Background(), author, title, "body")
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	return post
}

func TestCreatePost_TrimsTitleAndSetsAuthor(t *testing.T) {
	svc := NewPostService(newStubPostRepo())

	post, err := svc.CreatePost(context.Background(), alice, "  hello  ", "body")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if post.Title != "hello" {
		t.Fatalf("title = %q, want trimmed", post.Title)
	}
	if post.Author != "alice" {
		t.Fatalf("author = %q", post.Author)
	}
	if post.CreatedAt.IsZero() || post.UpdatedAt.IsZero() {
		t.Fatalf("timestamps not set")
	}
}

func TestUpdatePost_AuthorAllowed(t *testing.T) {
	repo := newStubPostRepo()
	svc := NewPostService(repo)
	post := seedPost(t, svc, alice, "first")

	before := post.UpdatedAt
	time.Sleep(time.Millisecond)

	updated, err := svc.UpdatePost(context.Background(), alice, post.ID, "second", "edited")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "second" || updated.Content != "edited" {
		t.Fatalf("post = %+v", updated)
	}
	if !updated.UpdatedAt.After(before) {
		t.Fatalf("UpdatedAt not advanced")
	}
}

func TestUpdatePost_OtherUserForbidden(t *testing.T) {
	repo := newStubPostRepo()
	svc := NewPostService(repo)
	post := seedPost(t, svc, alice, "first")

	if _, err := svc.UpdatePost(context.Background(), bob, post.ID, "hijacked", ""); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
	if repo.posts[post.ID].Title != "first" {
		t.Fatalf("post modified by non-author")
	}
}

func TestDeletePost_AdminAllowed(t *testing.T) {
	repo := newStubPostRepo()
	svc := NewPostService(repo)
	post := seedPost(t, svc, alice, "first")

	if err := svc.DeletePost(context.Background(), root, post.ID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	if _, ok := repo.posts[post.ID]; ok {
		t.Fatalf("post survived admin delete")
	}
}

func TestDeletePost_OtherUserForbidden(t *testing.T) {
	repo := newStubPostRepo()
	svc := NewPostService(repo)
	post := seedPost(t, svc, alice, "first")

	if err := svc.DeletePost(context.Background(), bob, post.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}

func TestDeletePost_NotFound(t *testing.T) {
	svc := NewPostService(newStubPostRepo())

	if err := svc.DeletePost(context.Background(), alice, "missing"); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("err = %v, want ErrPostNotFound", err)
	}
}

func TestListPosts_DefaultsAndCaps(t *testing.T) {
	repo := newStubPostRepo()
	svc := NewPostService(repo)

	result, err := svc.ListPosts(context.Background(), ports.ListPostsFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if repo.listGot.Page != 1 || repo.listGot.Limit != defaultPageLimit {
		t.Fatalf("filter = %+v, want page 1 limit %d", repo.listGot, defaultPageLimit)
	}
	if result.Page != 1 || result.Limit != defaultPageLimit {
		t.Fatalf("result = %+v", result)
	}

	if _, err := svc.ListPosts(context.Background(), ports.ListPostsFilter{Page: 3, Limit: 10_000}); err != nil {
		t.Fatalf("list: %v", err)
	}
	if repo.listGot.Limit != maxPageLimit {
		t.Fatalf("limit = %d, want capped at %d", repo.listGot.Limit, maxPageLimit)
	}
}

func TestListPosts_TotalPages(t *testing.T) {
	repo := newStubPostRepo()
	svc := NewPostService(repo)
	for i := 0; i < 5; i++ {
		seedPost(t, svc, alice, "post")
	}

	result, err := svc.ListPosts(context.Background(), ports.ListPostsFilter{Limit: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if result.Total != 5 || result.TotalPages != 3 {
		t.Fatalf("total=%d pages=%d, want 5 and 3", result.Total, result.TotalPages)
	}
}
