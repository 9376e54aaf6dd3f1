package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"taller-go/internal/model"
	"taller-go/pkg/log"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const productCacheTTL = 10 * time.Minute

// ProductRepository persists products. Barcode and SKU lookups are the
// hot path of the assistant, so both go through Redis.
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	Update(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, companyID, id uint) (*model.Product, error)
	FindByBarcode(ctx context.Context, companyID uint, barcode string) (*model.Product, error)
	FindBySKU(ctx context.Context, companyID uint, sku string) (*model.Product, error)
	SearchByNameLike(ctx context.Context, companyID uint, terms []string, limit int) ([]model.Product, error)
	LowStock(ctx context.Context, companyID uint) ([]model.Product, error)
	UpdatePrice(ctx context.Context, companyID uint, sku string, price float64) (*model.Product, error)
	List(ctx context.Context, companyID uint, offset, limit int) ([]model.Product, int64, error)
}

type productRepository struct {
	db  *gorm.DB
	rdb *redis.Client
}

// NewProductRepository creates a ProductRepository backed by GORM and Redis.
func NewProductRepository(db *gorm.DB, rdb *redis.Client) ProductRepository {
	return &productRepository{db: db, rdb: rdb}
}

func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return err
	}
	r.invalidate(ctx, product)
	return nil
}

func (r *productRepository) FindByID(ctx context.Context, companyID, id uint) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) FindByBarcode(ctx context.Context, companyID uint, barcode string) (*model.Product, error) {
	return r.cachedLookup(ctx, barcodeKey(companyID, barcode), "barcode = ?", barcode, companyID)
}

func (r *productRepository) FindBySKU(ctx context.Context, companyID uint, sku string) (*model.Product, error) {
	return r.cachedLookup(ctx, skuKey(companyID, sku), "sku = ?", sku, companyID)
}

// cachedLookup tries Redis first and falls back to MySQL, repopulating the
// cache on a hit. Cache failures degrade to a plain DB read.
func (r *productRepository) cachedLookup(ctx context.Context, key, cond string, value interface{}, companyID uint) (*model.Product, error) {
	if r.rdb != nil {
		if raw, err := r.rdb.Get(ctx, key).Result(); err == nil {
			var product model.Product
			if err := json.Unmarshal([]byte(raw), &product); err == nil {
				return &product, nil
			}
		} else if err != redis.Nil {
			log.Warnf("product cache read failed for %s: %v", key, err)
		}
	}

	var product model.Product
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Where(cond, value).
		First(&product).Error
	if err != nil {
		return nil, err
	}

	if r.rdb != nil {
		if raw, err := json.Marshal(&product); err == nil {
			if err := r.rdb.Set(ctx, key, raw, productCacheTTL).Err(); err != nil {
				log.Warnf("product cache write failed for %s: %v", key, err)
			}
		}
	}
	return &product, nil
}

func (r *productRepository) SearchByNameLike(ctx context.Context, companyID uint, terms []string, limit int) ([]model.Product, error) {
	if limit <= 0 {
		limit = 10
	}
	q := r.db.WithContext(ctx).Where("company_id = ?", companyID)
	for _, term := range terms {
		q = q.Where("name LIKE ? OR brand LIKE ?", "%"+term+"%", "%"+term+"%")
	}
	var products []model.Product
	err := q.Limit(limit).Find(&products).Error
	return products, err
}

func (r *productRepository) LowStock(ctx context.Context, companyID uint) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND stock <= min_stock", companyID).
		Order("stock ASC").
		Find(&products).Error
	return products, err
}

func (r *productRepository) UpdatePrice(ctx context.Context, companyID uint, sku string, price float64) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND sku = ?", companyID, sku).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	product.Price = price
	if err := r.db.WithContext(ctx).Model(&product).Update("price", price).Error; err != nil {
		return nil, err
	}
	r.invalidate(ctx, &product)
	return &product, nil
}

func (r *productRepository) List(ctx context.Context, companyID uint, offset, limit int) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Product{}).Where("company_id = ?", companyID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Offset(offset).Limit(limit).Order("name").Find(&products).Error
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *productRepository) invalidate(ctx context.Context, product *model.Product) {
	if r.rdb == nil {
		return
	}
	keys := []string{skuKey(product.CompanyID, product.SKU)}
	if product.Barcode != "" {
		keys = append(keys, barcodeKey(product.CompanyID, product.Barcode))
	}
	if err := r.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Warnf("product cache invalidation failed: %v", err)
	}
}

func barcodeKey(companyID uint, barcode string) string {
	return fmt.Sprintf("product:%d:barcode:%s", companyID, barcode)
}

func skuKey(companyID uint, sku string) string {
	return fmt.Sprintf("product:%d:sku:%s", companyID, sku)
}
