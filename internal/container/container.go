package container

import (
	"context"
	"fmt"

	"alkoteka/parser/internal/client"
	"alkoteka/parser/internal/config"
	"alkoteka/parser/internal/domain"
	"alkoteka/parser/internal/normalizer"
	"alkoteka/parser/internal/proxy"
	"alkoteka/parser/internal/repository"
	"alkoteka/parser/internal/service"

	log "github.com/sirupsen/logrus"
)

// Container holds all initialized components
type Container struct {
	Config     *config.Config
	Client     client.AlkotekaClient
	Normalizer *normalizer.Normalizer
	Repository repository.ItemRepository

	Service *service.Service
}

// New creates a new container with all dependencies initialized
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	container := &Container{
		Config: cfg,
	}

	categories := make([]domain.Category, 0, len(cfg.Alkoteka.Categories))
	for _, startURL := range cfg.Alkoteka.Categories {
		category, err := domain.NewCategory(startURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse category: %w", err)
		}
		categories = append(categories, category)
	}

	proxySupplier := proxy.NewProxySupplier(ctx, cfg.Alkoteka.Proxies, cfg.Alkoteka.BaseURL)
	if len(cfg.Alkoteka.Proxies) > 0 && proxySupplier.Len() == 0 {
		return nil, fmt.Errorf("none of the %d configured proxies is usable", len(cfg.Alkoteka.Proxies))
	}

	itemNormalizer, err := normalizer.New(cfg.Alkoteka.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize normalizer: %w", err)
	}
	container.Normalizer = itemNormalizer

	container.Repository = repository.NewFileItemRepository(cfg.Output.Path)
	container.Client = client.NewAlkotekaClient(cfg.Alkoteka, proxySupplier)

	container.Service = service.NewService(
		container.Client,
		itemNormalizer,
		container.Repository,
		categories,
		cfg.Alkoteka.MaxWorkers,
	)

	return container, nil
}

// Run bootstraps the session and parses every configured category
func (c *Container) Run(ctx context.Context) error {
	return c.Service.ParseAll(ctx)
}

// Close performs cleanup when shutting down
func (c *Container) Close() error {
	log.Debug("Shutting down container...")

	return c.Client.Close()
}
