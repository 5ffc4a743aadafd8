package service

import (
	"context"
	"fmt"
	"time"

	"alkoteka/parser/internal/client"
	"alkoteka/parser/internal/domain"
	"alkoteka/parser/internal/normalizer"
	"alkoteka/parser/internal/repository"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type Service struct {
	client     client.AlkotekaClient
	normalizer *normalizer.Normalizer
	repository repository.ItemRepository
	categories []domain.Category
	maxWorkers int
	now        func() time.Time
}

func NewService(
	client client.AlkotekaClient,
	normalizer *normalizer.Normalizer,
	repository repository.ItemRepository,
	categories []domain.Category,
	maxWorkers int,
) *Service {
	return &Service{
		client:     client,
		normalizer: normalizer,
		repository: repository,
		categories: categories,
		maxWorkers: max(1, maxWorkers),
		now:        time.Now,
	}
}

// ParseAll bootstraps a session, walks every category and saves the collected
// items. A failed bootstrap degrades to baseline cookies; a category that fails
// mid-way keeps the items gathered before the failure.
func (s *Service) ParseAll(ctx context.Context) error {
	cookies, err := s.client.Bootstrap(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("failed to bootstrap session: %w", err)
		}
		log.Warnf("⚠️ Session bootstrap failed, continuing with baseline cookies: %v", err)
	}

	results := s.ParseCategories(ctx, cookies)

	items := make([]domain.Item, 0)
	for _, result := range results {
		items = append(items, result.Items...)
	}

	// Persist partial results even when the run was interrupted
	if err := s.repository.SaveItems(context.WithoutCancel(ctx), items); err != nil {
		return fmt.Errorf("failed to save items: %w", err)
	}
	log.Infof("💾 Saved %d items", len(items))

	return ctx.Err()
}

// ParseCategories runs one sequential page chain per category, up to maxWorkers
// chains at a time. Results follow the configured category order.
func (s *Service) ParseCategories(ctx context.Context, cookies domain.Cookies) []*domain.CategoryResults {
	results := make([]*domain.CategoryResults, len(s.categories))

	errGroup := new(errgroup.Group)
	errGroup.SetLimit(s.maxWorkers)

	for i, category := range s.categories {
		errGroup.Go(func() error {
			log.Infof("🔄 Processing category: %s", category)

			results[i] = s.parseCategory(ctx, category, cookies)

			if results[i].Err != nil {
				log.Warnf("⚠️ Category %s stopped after %d pages: %v", category, results[i].Pages, results[i].Err)
			}
			log.Infof("✅ Completed %s: %d of %d pages, %d items",
				category, results[i].Pages, results[i].TotalPages, len(results[i].Items))
			return nil
		})
	}

	_ = errGroup.Wait()

	return results
}

func (s *Service) parseCategory(ctx context.Context, category domain.Category, cookies domain.Cookies) *domain.CategoryResults {
	results := &domain.CategoryResults{
		Category: category,
		Items:    make([]domain.Item, 0),
	}

	pageNumber := 1
	for {
		if err := ctx.Err(); err != nil {
			results.Err = err
			return results
		}

		page, err := s.client.GetProductPage(ctx, category, pageNumber, cookies)
		if err != nil {
			results.Err = err
			return results
		}

		results.Pages++
		results.TotalPages = page.TotalPages

		log.Infof("Parsed %d products for category '%s', page %d", len(page.Listings), category, pageNumber)

		captureTime := s.now()
		for _, listing := range page.Listings {
			results.Items = append(results.Items, s.normalizer.Normalize(listing, captureTime))
		}

		if !page.HasMore() {
			return results
		}
		pageNumber = page.NextPage()
	}
}
