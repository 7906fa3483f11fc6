// Package catalog is the HTTP adapter for the catalog collaborator. It
// implements ports.CatalogLookup against the item-by-id endpoints
// (/console/{id}, /game/{id}, /tshirt/{id}).
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/jcmexdev/gamestore/internal/invoicing-service/core/domain"
	"github.com/jcmexdev/gamestore/internal/invoicing-service/core/ports"
)

// defaultTimeout bounds every catalog call. A timed-out lookup surfaces to
// the pipeline the same way as a missing item; the transport cause is only
// logged.
const defaultTimeout = 5 * time.Second

type Client struct {
	baseURL string
	http    *http.Client
}

var _ ports.CatalogLookup = (*Client)(nil)

// NewClient returns a catalog client for the given base URL, instrumented
// with OTel so the outbound hop shows up in the request trace.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   defaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// itemResponse is the slice of the catalog payload the pricer needs. The
// catalog returns more fields per item type; everything beyond price and
// stock is ignored here.
type itemResponse struct {
	Price    decimal.Decimal `json:"price"`
	Quantity int64           `json:"quantity"`
}

// Resolve fetches the current price/stock snapshot for an item. A missing
// item, an unexpected status, and an unreachable catalog all map to
// domain.ErrItemNotFound; the non-404 causes are logged so availability
// incidents can be told apart from bad item ids after the fact.
func (c *Client) Resolve(ctx context.Context, itemType domain.ItemType, itemID int64) (domain.CatalogItem, error) {
	segment, ok := pathSegment(itemType)
	if !ok {
		return domain.CatalogItem{}, fmt.Errorf("catalog: no endpoint for item type %q: %w", itemType, domain.ErrItemNotFound)
	}

	url := fmt.Sprintf("%s/%s/%d", c.baseURL, segment, itemID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.CatalogItem{}, fmt.Errorf("catalog: build request: %w", err)
	}

	res, err := c.http.Do(req)
	if err != nil {
		slog.WarnContext(ctx, "catalog service unreachable",
			"url", url,
			"error", err,
		)
		return domain.CatalogItem{}, fmt.Errorf("catalog: get %s: %w", url, domain.ErrItemNotFound)
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusNotFound:
		return domain.CatalogItem{}, domain.ErrItemNotFound
	case res.StatusCode != http.StatusOK:
		slog.WarnContext(ctx, "catalog service returned unexpected status",
			"url", url,
			"status", res.StatusCode,
		)
		return domain.CatalogItem{}, fmt.Errorf("catalog: get %s: status %d: %w", url, res.StatusCode, domain.ErrItemNotFound)
	}

	var body itemResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return domain.CatalogItem{}, fmt.Errorf("catalog: decode %s: %w", url, err)
	}

	return domain.CatalogItem{
		Price:    body.Price,
		Quantity: body.Quantity,
	}, nil
}

func pathSegment(itemType domain.ItemType) (string, bool) {
	switch itemType {
	case domain.ItemTypeConsole:
		return "console", true
	case domain.ItemTypeGame:
		return "game", true
	case domain.ItemTypeTShirt:
		return "tshirt", true
	}
	return "", false
}
