package usecase

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/iamvkosarev/perplexity-chat/internal/model"
	"github.com/iamvkosarev/perplexity-chat/pkg/modelcards"
)

type CatalogUsecaseDeps struct {
	HTTPClient *http.Client
	Extractor  modelcards.Extractor
}

type CatalogUsecase struct {
	CatalogUsecaseDeps
}

func NewCatalogUsecase(deps CatalogUsecaseDeps) *CatalogUsecase {
	if deps.HTTPClient == nil {
		deps.HTTPClient = &http.Client{}
	}
	if deps.Extractor == nil {
		deps.Extractor = modelcards.NewTableExtractor()
	}
	return &CatalogUsecase{CatalogUsecaseDeps: deps}
}

// FetchModels never fails: any fetch or parse problem is logged and an empty
// list is returned, which callers treat as "no models available".
func (c *CatalogUsecase) FetchModels(ctx context.Context, url string) []string {
	models, err := c.fetchModels(ctx, url)
	if err != nil {
		log.Printf("failed to fetch models from %s: %v", url, err)
		return []string{}
	}
	return models
}

func (c *CatalogUsecase) fetchModels(ctx context.Context, url string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrFetchFailure, err)
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrFetchFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status %s", model.ErrFetchFailure, resp.Status)
	}
	models, err := c.Extractor.Extract(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrFetchFailure, err)
	}
	return models, nil
}
