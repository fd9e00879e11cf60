package service

import (
	"context"
	"fmt"
	"time"

	"postboard/internal/common"
	"postboard/internal/domain/model"
)

// --- in-memory repositories for service tests ---

type memUserRepo struct {
	users map[string]*model.User // keyed by id

	failWith error // when set, every call returns this
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*model.User{}}
}

func (r *memUserRepo) Create(ctx context.Context, user *model.User) error {
	if r.failWith != nil {
		return r.failWith
	}
	for _, u := range r.users {
		if u.Email == user.Email || u.Username == user.Username {
			// Mirrors the unique-constraint translation in the pg repo.
			return fmt.Errorf("user with this email or username already exists: %w", common.ErrConflict)
		}
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *memUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	if u, ok := r.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, common.ErrNotFound
}

func (r *memUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *memUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	for _, u := range r.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *memUserRepo) FindAll(ctx context.Context) ([]model.User, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	users := []model.User{}
	for _, u := range r.users {
		users = append(users, *u)
	}
	return users, nil
}

func (r *memUserRepo) Update(ctx context.Context, user *model.User) error {
	if r.failWith != nil {
		return r.failWith
	}
	stored, ok := r.users[user.ID]
	if !ok {
		return common.ErrNotFound
	}
	stored.FirstName = user.FirstName
	stored.LastName = user.LastName
	stored.UpdatedAt = time.Now()
	user.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r *memUserRepo) Delete(ctx context.Context, id string) error {
	if r.failWith != nil {
		return r.failWith
	}
	if _, ok := r.users[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

type memPostRepo struct {
	posts map[string]*model.Post // keyed by id
	users *memUserRepo           // for the author projection
}

func newMemPostRepo(users *memUserRepo) *memPostRepo {
	return &memPostRepo{posts: map[string]*model.Post{}, users: users}
}

func (r *memPostRepo) withAuthor(p *model.Post) *model.Post {
	clone := *p
	if author, ok := r.users.users[p.AuthorID]; ok {
		clone.Author = author.PublicView()
	}
	return &clone
}

func (r *memPostRepo) Create(ctx context.Context, post *model.Post) error {
	if _, ok := r.users.users[post.AuthorID]; !ok {
		return fmt.Errorf("post author does not exist: %w", common.ErrNotFound)
	}
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	clone := *post
	r.posts[post.ID] = &clone
	return nil
}

func (r *memPostRepo) FindByID(ctx context.Context, id string) (*model.Post, error) {
	if p, ok := r.posts[id]; ok {
		return r.withAuthor(p), nil
	}
	return nil, common.ErrNotFound
}

func (r *memPostRepo) FindBySlug(ctx context.Context, slug string) (*model.Post, error) {
	for _, p := range r.posts {
		if p.Slug == slug {
			return r.withAuthor(p), nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *memPostRepo) FindAll(ctx context.Context) ([]model.Post, error) {
	posts := []model.Post{}
	for _, p := range r.posts {
		posts = append(posts, *r.withAuthor(p))
	}
	return posts, nil
}

func (r *memPostRepo) FindByAuthor(ctx context.Context, authorID string) ([]model.Post, error) {
	posts := []model.Post{}
	for _, p := range r.posts {
		if p.AuthorID == authorID {
			posts = append(posts, *r.withAuthor(p))
		}
	}
	return posts, nil
}

func (r *memPostRepo) Update(ctx context.Context, post *model.Post) error {
	stored, ok := r.posts[post.ID]
	if !ok {
		return common.ErrNotFound
	}
	stored.Title = post.Title
	stored.Slug = post.Slug
	stored.Content = post.Content
	stored.UpdatedAt = time.Now()
	post.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r *memPostRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.posts[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.posts, id)
	return nil
}
