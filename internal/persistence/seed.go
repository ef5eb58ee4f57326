package persistence

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/supportdesk/helpdesk-service/internal/auth"
	"github.com/supportdesk/helpdesk-service/internal/domain"
	"github.com/supportdesk/helpdesk-service/internal/repository"
)

// SeedDependencies bundles the repositories touched by first-run seeding.
type SeedDependencies struct {
	Statuses repository.StatusRepository
	Users    repository.UserRepository
	Articles repository.ArticleRepository
}

// Seed performs idempotent first-run initialization: the status registry,
// the default accounts, and the bootstrap knowledge base articles.
func Seed(ctx context.Context, deps SeedDependencies, bcryptCost int, logger *zap.Logger) error {
	if err := seedStatuses(ctx, deps.Statuses, logger); err != nil {
		return err
	}
	if err := seedUsers(ctx, deps.Users, bcryptCost, logger); err != nil {
		return err
	}
	return seedArticles(ctx, deps.Articles, deps.Users, logger)
}

func seedStatuses(ctx context.Context, statuses repository.StatusRepository, logger *zap.Logger) error {
	for _, def := range domain.DefaultStatuses {
		_, err := statuses.GetByName(ctx, def.Name)
		if err == nil {
			continue
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return err
		}
		status := def
		if err := statuses.Create(ctx, &status); err != nil {
			return err
		}
		logger.Info("seeded status", zap.String("name", string(status.Name)))
	}
	return nil
}

func seedUsers(ctx context.Context, users repository.UserRepository, bcryptCost int, logger *zap.Logger) error {
	defaults := []struct {
		username string
		email    string
		password string
		role     domain.Role
	}{
		{"admin", "admin@example.com", "admin123", domain.RoleAdmin},
		{"customer1", "customer1@example.com", "password123", domain.RoleCustomer},
	}

	for _, def := range defaults {
		_, err := users.GetByUsername(ctx, def.username)
		if err == nil {
			continue
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return err
		}
		hash, err := auth.HashPassword(def.password, bcryptCost)
		if err != nil {
			return err
		}
		user := &domain.User{
			Username:     def.username,
			Email:        def.email,
			PasswordHash: hash,
			Role:         def.role,
		}
		if err := users.Create(ctx, user); err != nil {
			return err
		}
		logger.Info("seeded user", zap.String("username", user.Username), zap.String("role", string(user.Role)))
	}
	return nil
}

func seedArticles(ctx context.Context, articles repository.ArticleRepository, users repository.UserRepository, logger *zap.Logger) error {
	count, err := articles.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	admin, err := users.FirstByRole(ctx, domain.RoleAdmin)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// No admin yet; retried on the next startup.
			logger.Info("skipping knowledge base seeding, no admin account")
			return nil
		}
		return err
	}

	for _, def := range bootstrapArticles {
		article := &domain.Article{
			Title:    def.title,
			Content:  def.content,
			Category: def.category,
			AuthorID: admin.ID,
		}
		if err := articles.Create(ctx, article); err != nil {
			return err
		}
	}
	logger.Info("seeded knowledge base articles", zap.Int("count", len(bootstrapArticles)))
	return nil
}

var bootstrapArticles = []struct {
	title    string
	category string
	content  string
}{
	{
		title:    "How to file a support ticket",
		category: "Guides",
		content: `# How to file a support ticket

## Step 1: Sign in
Use your account credentials to sign in to the support portal.

## Step 2: Open the ticket form
Click "New ticket" on the main page.

## Step 3: Fill in the form
- **Title**: a short summary of the problem
- **Description**: what you tried to do, what happened instead, and the
  steps to reproduce it
- **Priority**: pick the level that matches the impact

## Step 4: Submit
Click "Create ticket".

## What happens next
Your ticket gets a number, an administrator assigns an agent, and the
agent contacts you through the ticket thread.`,
	},
	{
		title:    "Frequently asked questions",
		category: "FAQ",
		content: `# Frequently asked questions

### How long does a ticket take?
Handling time depends on priority: Critical within an hour, High within
four hours, Medium within one business day, Low within three business days.

### Can I edit a ticket after filing it?
No, but you can add details by posting messages in the ticket thread.

### How do I track my ticket?
Sign in and open "My tickets" to see the current status of everything
you filed.

### I forgot my password
Contact an administrator to have your password reset.`,
	},
	{
		title:    "Troubleshooting sign-in problems",
		category: "Troubleshooting",
		content: `# Troubleshooting sign-in problems

## Symptoms
- Cannot sign in
- "Invalid credentials" error
- The sign-in page does not load

## Things to check
1. Verify the username and password, keyboard layout, and Caps Lock.
2. Clear the browser cache and cookies, or try a private window.
3. Check your network connection.
4. If the account may be locked, contact an administrator.

## Still stuck?
File a support ticket describing the browser you use, the exact error,
when it started, and what you already tried.`,
	},
}
