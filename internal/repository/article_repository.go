package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/supportdesk/helpdesk-service/internal/domain"
)

// ArticleFilter narrows knowledge base listings. Search matches a substring
// in title or content; Category is an exact match.
type ArticleFilter struct {
	Category *string
	Search   *string
}

// ArticleRepository persists knowledge base articles.
type ArticleRepository interface {
	Create(ctx context.Context, article *domain.Article) error
	Update(ctx context.Context, article *domain.Article) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Article, error)
	ListWithFilter(ctx context.Context, filter ArticleFilter) ([]domain.Article, error)
	Categories(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int64, error)
}

type articleRepository struct {
	pool *pgxpool.Pool
}

// NewArticleRepository constructs repository.
func NewArticleRepository(pool *pgxpool.Pool) ArticleRepository {
	return &articleRepository{pool: pool}
}

const articleSelect = `
        SELECT a.id, a.title, a.content, a.category, a.author_id, a.created_at, a.updated_at,
               u.username, u.email
        FROM knowledge_base_articles a
        JOIN users u ON u.id = a.author_id`

func (r *articleRepository) Create(ctx context.Context, article *domain.Article) error {
	const query = `
        INSERT INTO knowledge_base_articles (title, content, category, author_id)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		article.Title,
		article.Content,
		article.Category,
		article.AuthorID,
	).Scan(&article.ID, &article.CreatedAt, &article.UpdatedAt)
}

func (r *articleRepository) Update(ctx context.Context, article *domain.Article) error {
	const query = `
        UPDATE knowledge_base_articles SET title=$1, content=$2, category=$3, updated_at=NOW()
        WHERE id=$4
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, query,
		article.Title,
		article.Content,
		article.Category,
		article.ID,
	).Scan(&article.UpdatedAt)
}

func (r *articleRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM knowledge_base_articles WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *articleRepository) GetByID(ctx context.Context, id int64) (*domain.Article, error) {
	return scanArticle(r.pool.QueryRow(ctx, articleSelect+` WHERE a.id=$1`, id))
}

func (r *articleRepository) ListWithFilter(ctx context.Context, filter ArticleFilter) ([]domain.Article, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Category != nil {
		args = append(args, *filter.Category)
		clauses = append(clauses, fmt.Sprintf("a.category=$%d", len(args)))
	}
	if filter.Search != nil && strings.TrimSpace(*filter.Search) != "" {
		args = append(args, "%"+strings.TrimSpace(*filter.Search)+"%")
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(a.title LIKE %s OR a.content LIKE %s)", placeholder, placeholder))
	}

	query := fmt.Sprintf("%s WHERE %s ORDER BY a.created_at DESC",
		articleSelect, strings.Join(clauses, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Article
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *article)
	}
	return result, rows.Err()
}

func (r *articleRepository) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT DISTINCT category FROM knowledge_base_articles ORDER BY category ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, err
		}
		result = append(result, category)
	}
	return result, rows.Err()
}

func (r *articleRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM knowledge_base_articles`).Scan(&count)
	return count, err
}

func scanArticle(row pgx.Row) (*domain.Article, error) {
	var (
		article     domain.Article
		authorName  string
		authorEmail string
	)
	if err := row.Scan(
		&article.ID,
		&article.Title,
		&article.Content,
		&article.Category,
		&article.AuthorID,
		&article.CreatedAt,
		&article.UpdatedAt,
		&authorName,
		&authorEmail,
	); err != nil {
		return nil, err
	}
	article.Author = &domain.User{ID: article.AuthorID, Username: authorName, Email: authorEmail}
	return &article, nil
}
