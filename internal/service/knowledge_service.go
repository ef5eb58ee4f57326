package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/supportdesk/helpdesk-service/internal/domain"
	"github.com/supportdesk/helpdesk-service/internal/repository"
	apperrors "github.com/supportdesk/helpdesk-service/pkg/util"
)

// KnowledgeService manages the public knowledge base. Reads are open to
// anyone; writes are restricted to admins at the route level.
type KnowledgeService struct {
	articles repository.ArticleRepository
}

// NewKnowledgeService constructs the service.
func NewKnowledgeService(articles repository.ArticleRepository) *KnowledgeService {
	return &KnowledgeService{articles: articles}
}

// ArticleCreateInput describes a new article.
type ArticleCreateInput struct {
	Title    string
	Content  string
	Category string
}

// ArticleUpdateInput carries partial article changes. Nil fields are left
// untouched.
type ArticleUpdateInput struct {
	Title    *string
	Content  *string
	Category *string
}

// List returns articles matching the filter, newest first.
func (s *KnowledgeService) List(ctx context.Context, filter repository.ArticleFilter) ([]domain.Article, error) {
	articles, err := s.articles.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return articles, nil
}

// Get fetches one article.
func (s *KnowledgeService) Get(ctx context.Context, id int64) (*domain.Article, error) {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("article", map[string]any{"article_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return article, nil
}

// Create publishes a new article authored by the actor.
func (s *KnowledgeService) Create(ctx context.Context, actor *domain.User, input ArticleCreateInput) (*domain.Article, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Content = strings.TrimSpace(input.Content)
	input.Category = strings.TrimSpace(input.Category)
	if input.Title == "" || input.Content == "" || input.Category == "" {
		return nil, apperrors.NewValidationError("title, content and category are required", nil)
	}

	article := &domain.Article{
		Title:    input.Title,
		Content:  input.Content,
		Category: input.Category,
		AuthorID: actor.ID,
	}
	if err := s.articles.Create(ctx, article); err != nil {
		return nil, apperrors.MapError(err)
	}
	article.Author = actor
	return article, nil
}

// Update applies a partial edit to an article.
func (s *KnowledgeService) Update(ctx context.Context, id int64, input ArticleUpdateInput) (*domain.Article, error) {
	article, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, apperrors.NewValidationError("title cannot be empty", nil)
		}
		article.Title = strings.TrimSpace(*input.Title)
	}
	if input.Content != nil {
		if strings.TrimSpace(*input.Content) == "" {
			return nil, apperrors.NewValidationError("content cannot be empty", nil)
		}
		article.Content = strings.TrimSpace(*input.Content)
	}
	if input.Category != nil {
		if strings.TrimSpace(*input.Category) == "" {
			return nil, apperrors.NewValidationError("category cannot be empty", nil)
		}
		article.Category = strings.TrimSpace(*input.Category)
	}

	if err := s.articles.Update(ctx, article); err != nil {
		return nil, apperrors.MapError(err)
	}
	return article, nil
}

// Delete removes an article.
func (s *KnowledgeService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.articles.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// Categories lists the distinct categories in use.
func (s *KnowledgeService) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.articles.Categories(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return categories, nil
}
