package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/mirstone/ordermart/internal/adapter/config"
	"github.com/mirstone/ordermart/internal/core/domain"
	"go.uber.org/zap"
)

// Client talks to the product-catalog service over HTTP. It implements
// port.ProductCatalog.
type Client struct {
	host   string
	http   *http.Client
	logger *zap.Logger
}

func NewClient(conf *config.Catalog, logger *zap.Logger) (*Client, error) {
	return &Client{
		host:   conf.HostString,
		http:   &http.Client{Timeout: 5 * time.Second},
		logger: logger,
	}, nil
}

type productResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Price         string `json:"price"`
	Currency      string `json:"currency"`
	IsAvailable   bool   `json:"is_available"`
	StockQuantity int    `json:"stock_quantity"`
}

func (c *Client) GetProduct(ctx context.Context, id domain.ProductID) (*domain.Product, error) {
	endpoint := fmt.Sprintf("%s/api/products/%s", c.host, url.PathEscape(id.String()))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("catalog request failed", zap.String("product", id.String()), zap.Error(err))
		return nil, domain.ErrInternal
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, domain.ErrNotFound
	default:
		c.logger.Error("catalog returned unexpected status",
			zap.String("product", id.String()),
			zap.Int("status", resp.StatusCode))
		return nil, domain.ErrInternal
	}

	var body productResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding catalog response: %w", err)
	}

	price, err := domain.ParseMoney(body.Price, body.Currency)
	if err != nil {
		return nil, err
	}

	return &domain.Product{
		ID:            id,
		Name:          body.Name,
		Price:         price,
		IsAvailable:   body.IsAvailable,
		StockQuantity: body.StockQuantity,
	}, nil
}
