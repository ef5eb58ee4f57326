package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supportdesk/helpdesk-service/internal/domain"
	"github.com/supportdesk/helpdesk-service/internal/repository"
	apperrors "github.com/supportdesk/helpdesk-service/pkg/util"
)

func TestArticleCreateRequiresAllFields(t *testing.T) {
	svc := NewKnowledgeService(&mockArticleRepo{})

	_, err := svc.Create(context.Background(), admin(1), ArticleCreateInput{
		Title:   "Missing category",
		Content: "body",
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestArticleCreateSetsAuthor(t *testing.T) {
	var created *domain.Article
	articles := &mockArticleRepo{
		createFn: func(ctx context.Context, article *domain.Article) error {
			article.ID = 1
			created = article
			return nil
		},
	}
	svc := NewKnowledgeService(articles)

	article, err := svc.Create(context.Background(), admin(3), ArticleCreateInput{
		Title:    "  How to reset a password  ",
		Content:  "Step by step",
		Category: "Guides",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), created.AuthorID)
	assert.Equal(t, "How to reset a password", article.Title)
}

func TestArticleUpdateAppliesPartialChanges(t *testing.T) {
	stored := &domain.Article{ID: 7, Title: "Old title", Content: "Old body", Category: "FAQ"}
	var updated *domain.Article
	articles := &mockArticleRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.Article, error) {
			copy := *stored
			return &copy, nil
		},
		updateFn: func(ctx context.Context, article *domain.Article) error {
			updated = article
			return nil
		},
	}
	svc := NewKnowledgeService(articles)

	title := "New title"
	_, err := svc.Update(context.Background(), 7, ArticleUpdateInput{Title: &title})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "New title", updated.Title)
	assert.Equal(t, "Old body", updated.Content)
	assert.Equal(t, "FAQ", updated.Category)
}

func TestArticleUpdateRejectsBlankTitle(t *testing.T) {
	articles := &mockArticleRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.Article, error) {
			return &domain.Article{ID: id, Title: "t", Content: "c", Category: "FAQ"}, nil
		},
	}
	svc := NewKnowledgeService(articles)

	blank := "   "
	_, err := svc.Update(context.Background(), 7, ArticleUpdateInput{Title: &blank})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestArticleGetUnknownIDIsNotFound(t *testing.T) {
	svc := NewKnowledgeService(&mockArticleRepo{})

	_, err := svc.Get(context.Background(), 404)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

func TestArticleListPassesFilterThrough(t *testing.T) {
	var captured repository.ArticleFilter
	articles := &mockArticleRepo{
		listFn: func(ctx context.Context, filter repository.ArticleFilter) ([]domain.Article, error) {
			captured = filter
			return nil, nil
		},
	}
	svc := NewKnowledgeService(articles)

	category := "Guides"
	search := "password"
	_, err := svc.List(context.Background(), repository.ArticleFilter{Category: &category, Search: &search})
	require.NoError(t, err)
	require.NotNil(t, captured.Category)
	assert.Equal(t, "Guides", *captured.Category)
	require.NotNil(t, captured.Search)
	assert.Equal(t, "password", *captured.Search)
}
