// Package pipeline contains the asynchronous product indexing worker.
package pipeline

import (
	"context"
	"fmt"

	"taller-go/internal/model"
	"taller-go/internal/repository"
	"taller-go/pkg/es"
	"taller-go/pkg/log"
	"taller-go/pkg/tasks"
)

// Indexer consumes product index tasks and mirrors products into
// Elasticsearch so the name-search tool has something to query.
type Indexer struct {
	products  repository.ProductRepository
	indexName string
}

// NewIndexer creates an Indexer.
func NewIndexer(products repository.ProductRepository, indexName string) *Indexer {
	return &Indexer{products: products, indexName: indexName}
}

// Process loads the product and upserts its search document.
func (i *Indexer) Process(ctx context.Context, task tasks.ProductIndexTask) error {
	product, err := i.products.FindByID(ctx, task.CompanyID, task.ProductID)
	if err != nil {
		return fmt.Errorf("load product %d: %w", task.ProductID, err)
	}

	doc := model.EsProduct{
		ProductID: product.ID,
		CompanyID: product.CompanyID,
		SKU:       product.SKU,
		Barcode:   product.Barcode,
		Name:      product.Name,
		Brand:     product.Brand,
		Price:     product.Price,
		Stock:     product.Stock,
	}
	if err := es.IndexProduct(ctx, i.indexName, doc); err != nil {
		return err
	}
	log.Infof("indexed product %d (%s)", product.ID, task.Reason)
	return nil
}
