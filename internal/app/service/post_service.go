package service

import (
	"context"
	"fmt"

	"postboard/internal/common"
	"postboard/internal/domain/model"
	"postboard/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// PostService owns post records and the authorship rule: only a post's
// author may mutate or delete it.
type PostService struct {
	postRepo repository.PostRepository
}

func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

type CreatePostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type UpdatePostRequest struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

// postSlug derives a URL slug from the title, suffixed with the id prefix
// so two posts with the same title do not collide.
func postSlug(title, id string) string {
	return slug.Make(title) + "-" + id[:8]
}

// Create inserts a post for the given author. The author id comes from
// the caller's verified identity, never from the request body.
func (s *PostService) Create(ctx context.Context, authorID string, req CreatePostRequest) (*model.Post, error) {
	if req.Title == "" || req.Content == "" {
		return nil, fmt.Errorf("title and content are required: %w", common.ErrValidation)
	}

	id := uuid.NewString()
	post := &model.Post{
		ID:       id,
		Title:    req.Title,
		Slug:     postSlug(req.Title, id),
		Content:  req.Content,
		AuthorID: authorID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	// Re-read to embed the author projection.
	return s.postRepo.FindByID(ctx, post.ID)
}

func (s *PostService) List(ctx context.Context) ([]model.Post, error) {
	return s.postRepo.FindAll(ctx)
}

func (s *PostService) Get(ctx context.Context, id string) (*model.Post, error) {
	return s.postRepo.FindByID(ctx, id)
}

func (s *PostService) GetBySlug(ctx context.Context, slugStr string) (*model.Post, error) {
	return s.postRepo.FindBySlug(ctx, slugStr)
}

func (s *PostService) ListByAuthor(ctx context.Context, authorID string) ([]model.Post, error) {
	return s.postRepo.FindByAuthor(ctx, authorID)
}

// Update applies a partial update after the load-then-authorize check.
// Existence takes priority over authorization: a missing post is
// NotFound for every caller, owner or not.
func (s *PostService) Update(ctx context.Context, id, callerID string, req UpdatePostRequest) (*model.Post, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != callerID {
		return nil, fmt.Errorf("you can only update your own posts: %w", common.ErrForbidden)
	}

	if req.Title != nil {
		post.Title = *req.Title
		post.Slug = postSlug(post.Title, post.ID)
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if post.Title == "" || post.Content == "" {
		return nil, fmt.Errorf("title and content must not be empty: %w", common.ErrValidation)
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.FindByID(ctx, id)
}

// Delete removes a post after the same load-then-authorize check as Update.
func (s *PostService) Delete(ctx context.Context, id, callerID string) error {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if post.AuthorID != callerID {
		return fmt.Errorf("you can only delete your own posts: %w", common.ErrForbidden)
	}
	return s.postRepo.Delete(ctx, id)
}
