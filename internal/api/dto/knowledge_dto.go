package dto

import (
	"time"

	"github.com/supportdesk/helpdesk-service/internal/domain"
)

// CreateArticleRequest payload.
type CreateArticleRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
}

// UpdateArticleRequest payload. Absent fields stay unchanged.
type UpdateArticleRequest struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	Category *string `json:"category"`
}

// ArticleResponse represents a knowledge base article.
type ArticleResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	Author    string    `json:"author,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewArticleResponse maps a domain article.
func NewArticleResponse(article *domain.Article) ArticleResponse {
	resp := ArticleResponse{
		ID:        article.ID,
		Title:     article.Title,
		Content:   article.Content,
		Category:  article.Category,
		CreatedAt: article.CreatedAt,
		UpdatedAt: article.UpdatedAt,
	}
	if article.Author != nil {
		resp.Author = article.Author.Username
	}
	return resp
}
