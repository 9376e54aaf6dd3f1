// Package es provides the Elasticsearch client used for product search.
package es

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"taller-go/internal/config"
	"taller-go/internal/model"
	"taller-go/pkg/log"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

var ESClient *elasticsearch.Client

// InitES initializes the Elasticsearch client and makes sure the product
// index exists.
func InitES(esCfg config.ElasticsearchConfig) error {
	cfg := elasticsearch.Config{
		Addresses: []string{esCfg.Addresses},
		Username:  esCfg.Username,
		Password:  esCfg.Password,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		},
	}
	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return err
	}
	ESClient = client
	return createIndexIfNotExists(esCfg.IndexName)
}

func createIndexIfNotExists(indexName string) error {
	res, err := ESClient.Indices.Exists([]string{indexName})
	if err != nil {
		log.Errorf("checking index existence failed: %v", err)
		return err
	}
	if !res.IsError() && res.StatusCode == http.StatusOK {
		log.Infof("index '%s' already exists", indexName)
		return nil
	}
	if res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("unexpected status %d while checking index '%s'", res.StatusCode, indexName)
	}

	mapping := `{
		"mappings": {
			"properties": {
				"product_id": { "type": "long" },
				"company_id": { "type": "long" },
				"sku":        { "type": "keyword" },
				"barcode":    { "type": "keyword" },
				"name":       { "type": "text" },
				"brand":      { "type": "text" },
				"price":      { "type": "double" },
				"stock":      { "type": "integer" }
			}
		}
	}`

	res, err = ESClient.Indices.Create(
		indexName,
		ESClient.Indices.Create.WithBody(strings.NewReader(mapping)),
	)
	if err != nil {
		log.Errorf("creating index '%s' failed: %v", indexName, err)
		return err
	}
	if res.IsError() {
		return fmt.Errorf("elasticsearch rejected index creation: %s", res.String())
	}
	log.Infof("index '%s' created", indexName)
	return nil
}

// IndexProduct upserts one product document, keyed by product id.
func IndexProduct(ctx context.Context, indexName string, doc model.EsProduct) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal product document: %w", err)
	}

	req := esapi.IndexRequest{
		Index:      indexName,
		DocumentID: fmt.Sprintf("%d", doc.ProductID),
		Body:       bytes.NewReader(body),
		Refresh:    "false",
	}
	res, err := req.Do(ctx, ESClient)
	if err != nil {
		return fmt.Errorf("index product %d: %w", doc.ProductID, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("elasticsearch rejected product %d: %s", doc.ProductID, res.String())
	}
	return nil
}

// SearchProductsByName runs a multi-term match over name and brand,
// scoped to one company.
func SearchProductsByName(ctx context.Context, indexName string, companyID uint, terms []string, limit int) ([]model.EsProduct, error) {
	if limit <= 0 {
		limit = 10
	}

	must := []map[string]interface{}{
		{"term": map[string]interface{}{"company_id": companyID}},
	}
	for _, term := range terms {
		must = append(must, map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     term,
				"fields":    []string{"name^2", "brand"},
				"fuzziness": "AUTO",
			},
		})
	}

	query := map[string]interface{}{
		"size": limit,
		"query": map[string]interface{}{
			"bool": map[string]interface{}{"must": must},
		},
	}
	body, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("marshal search query: %w", err)
	}

	res, err := ESClient.Search(
		ESClient.Search.WithContext(ctx),
		ESClient.Search.WithIndex(indexName),
		ESClient.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch rejected search: %s", res.String())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source model.EsProduct `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	out := make([]model.EsProduct, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		out = append(out, hit.Source)
	}
	return out, nil
}
