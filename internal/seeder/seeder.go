// Package seeder populates a blog backend with generated demo content.
// It is a development tool: point it at a fresh instance and it fills the
// post listing, categories and comments with plausible-looking data.
package seeder

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/cryptoblog/blogctl/internal/api"
	"github.com/cryptoblog/blogctl/internal/logging"
)

// Config controls how much demo content gets generated.
type Config struct {
	Posts           int
	CommentsPerPost int
	PublishRatio    float64
}

// DefaultConfig seeds a modest demo blog.
func DefaultConfig() Config {
	return Config{
		Posts:           10,
		CommentsPerPost: 3,
		PublishRatio:    0.7,
	}
}

// Runner drives the seeding through the regular API client, so seeded
// content goes through the same validation as real content.
type Runner struct {
	client *api.Client
	config Config
	log    *logging.Logger
}

func NewRunner(client *api.Client, config Config, log *logging.Logger) *Runner {
	return &Runner{client: client, config: config, log: log}
}

var cryptoTopics = []string{
	"Bitcoin", "Ethereum", "DeFi", "NFTs", "staking", "layer 2 rollups",
	"stablecoins", "cold wallets", "on-chain analytics", "tokenomics",
}

// Run creates the configured number of demo posts with comments.
// Returns the number of posts created.
func (r *Runner) Run(ctx context.Context) (int, error) {
	gofakeit.Seed(time.Now().UnixNano())

	created := 0
	for i := 0; i < r.config.Posts; i++ {
		post, err := r.client.CreatePost(ctx, r.generatePost())
		if err != nil {
			if created == 0 {
				return 0, fmt.Errorf("seeding failed: %w", err)
			}
			r.log.Warn("failed to create demo post", "error", err)
			continue
		}
		created++

		if gofakeit.Float64() < r.config.PublishRatio {
			if _, err := r.client.PublishPost(ctx, post.ID); err != nil {
				r.log.Warn("failed to publish demo post", "post_id", post.ID, "error", err)
			}
		}

		for j := 0; j < r.config.CommentsPerPost; j++ {
			if _, err := r.client.CreateComment(ctx, post.ID, gofakeit.Sentence(12)); err != nil {
				r.log.Warn("failed to add demo comment", "post_id", post.ID, "error", err)
				break
			}
		}
	}

	return created, nil
}

func (r *Runner) generatePost() api.PostRequest {
	topic := cryptoTopics[gofakeit.Number(0, len(cryptoTopics)-1)]
	title := fmt.Sprintf("%s %s", gofakeit.HipsterWord(), topic)
	title = strings.ToUpper(title[:1]) + title[1:]

	paragraphs := make([]string, gofakeit.Number(3, 6))
	for i := range paragraphs {
		paragraphs[i] = gofakeit.Paragraph(1, 4, 12, " ")
	}

	return api.PostRequest{
		Title:           title,
		Excerpt:         gofakeit.Sentence(16),
		Content:         strings.Join(paragraphs, "\n\n"),
		MetaDescription: gofakeit.Sentence(10),
		Status:          api.StatusDraft,
		Tags:            []string{strings.ToLower(topic), gofakeit.HipsterWord()},
	}
}
