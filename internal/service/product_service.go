package service

import (
	"context"

	"taller-go/internal/model"
	"taller-go/internal/repository"
	"taller-go/pkg/es"
	"taller-go/pkg/kafka"
	"taller-go/pkg/log"
	"taller-go/pkg/tasks"
)

// ProductService manages the catalog and powers the product tools.
type ProductService interface {
	Create(ctx context.Context, product *model.Product) error
	Update(ctx context.Context, product *model.Product) error
	List(ctx context.Context, companyID uint, offset, limit int) ([]model.Product, int64, error)
	FindByBarcode(ctx context.Context, companyID uint, barcode string) (*model.Product, error)
	FindBySKU(ctx context.Context, companyID uint, sku string) (*model.Product, error)
	SearchByName(ctx context.Context, companyID uint, terms []string, limit int) ([]model.Product, error)
	LowStock(ctx context.Context, companyID uint) ([]model.Product, error)
	UpdatePrice(ctx context.Context, companyID uint, sku string, price float64) (*model.Product, error)
}

type productService struct {
	products  repository.ProductRepository
	indexName string
}

// NewProductService creates a ProductService.
func NewProductService(products repository.ProductRepository, indexName string) ProductService {
	return &productService{products: products, indexName: indexName}
}

func (s *productService) Create(ctx context.Context, product *model.Product) error {
	if err := s.products.Create(ctx, product); err != nil {
		return err
	}
	s.enqueueIndex(product, "created")
	return nil
}

func (s *productService) Update(ctx context.Context, product *model.Product) error {
	if err := s.products.Update(ctx, product); err != nil {
		return err
	}
	s.enqueueIndex(product, "updated")
	return nil
}

func (s *productService) List(ctx context.Context, companyID uint, offset, limit int) ([]model.Product, int64, error) {
	return s.products.List(ctx, companyID, offset, limit)
}

func (s *productService) FindByBarcode(ctx context.Context, companyID uint, barcode string) (*model.Product, error) {
	return s.products.FindByBarcode(ctx, companyID, barcode)
}

func (s *productService) FindBySKU(ctx context.Context, companyID uint, sku string) (*model.Product, error) {
	return s.products.FindBySKU(ctx, companyID, sku)
}

// SearchByName queries Elasticsearch first and falls back to a LIKE scan
// when the index is unavailable or empty.
func (s *productService) SearchByName(ctx context.Context, companyID uint, terms []string, limit int) ([]model.Product, error) {
	if es.ESClient != nil {
		docs, err := es.SearchProductsByName(ctx, s.indexName, companyID, terms, limit)
		if err != nil {
			log.Warnf("product search fell back to database: %v", err)
		} else if len(docs) > 0 {
			products := make([]model.Product, 0, len(docs))
			for _, d := range docs {
				products = append(products, model.Product{
					ID:        d.ProductID,
					CompanyID: d.CompanyID,
					SKU:       d.SKU,
					Barcode:   d.Barcode,
					Name:      d.Name,
					Brand:     d.Brand,
					Price:     d.Price,
					Stock:     d.Stock,
				})
			}
			return products, nil
		}
	}
	return s.products.SearchByNameLike(ctx, companyID, terms, limit)
}

func (s *productService) LowStock(ctx context.Context, companyID uint) ([]model.Product, error) {
	return s.products.LowStock(ctx, companyID)
}

func (s *productService) UpdatePrice(ctx context.Context, companyID uint, sku string, price float64) (*model.Product, error) {
	product, err := s.products.UpdatePrice(ctx, companyID, sku, price)
	if err != nil {
		return nil, err
	}
	s.enqueueIndex(product, "updated")
	return product, nil
}

// enqueueIndex publishes the index task; a queue failure never fails the
// write itself.
func (s *productService) enqueueIndex(product *model.Product, reason string) {
	task := tasks.ProductIndexTask{
		CompanyID: product.CompanyID,
		ProductID: product.ID,
		Reason:    reason,
	}
	if err := kafka.ProduceIndexTask(task); err != nil {
		log.Errorf("enqueueing index task for product %d failed: %v", product.ID, err)
	}
}
