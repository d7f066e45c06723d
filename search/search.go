package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"

	"github.com/elastic/go-elasticsearch/v8"

	"github.com/b-himadri/bakery-backend-api/model"
)

const productIndex = "products"

// Client keeps the product catalog searchable. Indexing is best-effort: the
// catalog in Postgres stays authoritative and callers only log failures.
type Client struct {
	es *elasticsearch.Client
}

func New(url string) (*Client, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{url},
	})
	if err != nil {
		return nil, err
	}
	return &Client{es: es}, nil
}

func (c *Client) IndexProduct(ctx context.Context, p *model.Product) error {
	doc, err := json.Marshal(p)
	if err != nil {
		return err
	}

	res, err := c.es.Index(
		productIndex,
		bytes.NewReader(doc),
		c.es.Index.WithDocumentID(strconv.FormatUint(uint64(p.ID), 10)),
		c.es.Index.WithContext(ctx),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("failed to index product %d: %s", p.ID, res.Status())
	}
	log.Printf("Indexed product %d", p.ID)
	return nil
}

func (c *Client) DeleteProduct(ctx context.Context, id uint) error {
	res, err := c.es.Delete(
		productIndex,
		strconv.FormatUint(uint64(id), 10),
		c.es.Delete.WithContext(ctx),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("failed to delete product %d: %s", id, res.Status())
	}
	return nil
}

// SearchProducts matches query against name and description, optionally
// filtered by category and a price range.
func (c *Client) SearchProducts(ctx context.Context, query, category, minPrice, maxPrice string) ([]model.Product, error) {
	boolQuery := map[string]interface{}{
		"must": []interface{}{
			map[string]interface{}{
				"multi_match": map[string]interface{}{
					"query":  query,
					"fields": []string{"name", "description"},
				},
			},
		},
	}

	filters := []interface{}{}
	if category != "" {
		filters = append(filters, map[string]interface{}{
			"term": map[string]interface{}{"category.keyword": category},
		})
	}

	priceRange := map[string]interface{}{}
	if minPrice != "" {
		priceRange["gte"] = minPrice
	}
	if maxPrice != "" {
		priceRange["lte"] = maxPrice
	}
	if len(priceRange) > 0 {
		filters = append(filters, map[string]interface{}{
			"range": map[string]interface{}{"price": priceRange},
		})
	}
	if len(filters) > 0 {
		boolQuery["filter"] = filters
	}

	body, err := json.Marshal(map[string]interface{}{
		"query": map[string]interface{}{"bool": boolQuery},
	})
	if err != nil {
		return nil, err
	}

	res, err := c.es.Search(
		c.es.Search.WithContext(ctx),
		c.es.Search.WithIndex(productIndex),
		c.es.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search failed: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source model.Product `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	products := make([]model.Product, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		products = append(products, hit.Source)
	}
	return products, nil
}
