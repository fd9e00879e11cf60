package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"postboard/internal/common"
	"postboard/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id string) (*model.Post, error)
	FindBySlug(ctx context.Context, slug string) (*model.Post, error)
	FindAll(ctx context.Context) ([]model.Post, error)
	FindByAuthor(ctx context.Context, authorID string) ([]model.Post, error)
	Update(ctx context.Context, post *model.Post) error
	Delete(ctx context.Context, id string) error
}

type pgPostRepository struct {
	db *sql.DB
}

func NewPgPostRepository(db *sql.DB) PostRepository {
	return &pgPostRepository{db: db}
}

// Every read joins the author's public fields; the hashed password is
// never selected on this path.
const postSelect = `SELECT p.id, p.title, p.slug, p.content, p.author_id, p.created_at, p.updated_at,
	       u.id, u.username, u.first_name, u.last_name
	FROM posts p
	JOIN users u ON u.id = p.author_id`

func scanPostRow(scan func(dest ...interface{}) error) (*model.Post, error) {
	post := &model.Post{Author: &model.Author{}}
	err := scan(
		&post.ID, &post.Title, &post.Slug, &post.Content, &post.AuthorID,
		&post.CreatedAt, &post.UpdatedAt,
		&post.Author.ID, &post.Author.Username, &post.Author.FirstName, &post.Author.LastName,
	)
	if err != nil {
		return nil, err
	}
	return post, nil
}

func (r *pgPostRepository) Create(ctx context.Context, post *model.Post) error {
	query := `INSERT INTO posts (id, title, slug, content, author_id)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		post.ID, post.Title, post.Slug, post.Content, post.AuthorID,
	).Scan(&post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // Duplicate slug
				return fmt.Errorf("post with this slug already exists: %w", common.ErrConflict)
			}
			if pgErr.Code == "23503" { // Author foreign key
				return fmt.Errorf("post author does not exist: %w", common.ErrNotFound)
			}
		}
		return fmt.Errorf("pgPostRepository.Create: %w", err)
	}
	return nil
}

func (r *pgPostRepository) FindByID(ctx context.Context, id string) (*model.Post, error) {
	row := r.db.QueryRowContext(ctx, postSelect+` WHERE p.id = $1`, id)
	post, err := scanPostRow(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgPostRepository.FindByID: %w", err)
	}
	return post, nil
}

func (r *pgPostRepository) FindBySlug(ctx context.Context, slug string) (*model.Post, error) {
	row := r.db.QueryRowContext(ctx, postSelect+` WHERE p.slug = $1`, slug)
	post, err := scanPostRow(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgPostRepository.FindBySlug: %w", err)
	}
	return post, nil
}

func (r *pgPostRepository) FindAll(ctx context.Context) ([]model.Post, error) {
	return r.queryPosts(ctx, postSelect+` ORDER BY p.created_at DESC`)
}

func (r *pgPostRepository) FindByAuthor(ctx context.Context, authorID string) ([]model.Post, error) {
	return r.queryPosts(ctx, postSelect+` WHERE p.author_id = $1 ORDER BY p.created_at DESC`, authorID)
}

func (r *pgPostRepository) queryPosts(ctx context.Context, query string, args ...interface{}) ([]model.Post, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pgPostRepository.queryPosts: %w", err)
	}
	defer rows.Close()

	posts := []model.Post{}
	for rows.Next() {
		post, err := scanPostRow(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("pgPostRepository.queryPosts: %w", err)
		}
		posts = append(posts, *post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgPostRepository.queryPosts: %w", err)
	}
	return posts, nil
}

func (r *pgPostRepository) Update(ctx context.Context, post *model.Post) error {
	query := `UPDATE posts SET title = $1, slug = $2, content = $3, updated_at = NOW()
	          WHERE id = $4
	          RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query, post.Title, post.Slug, post.Content, post.ID).Scan(&post.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrNotFound
		}
		return fmt.Errorf("pgPostRepository.Update: %w", err)
	}
	return nil
}

func (r *pgPostRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgPostRepository.Delete: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgPostRepository.Delete: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}
