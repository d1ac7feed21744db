package repos

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/diewo77/presupuestos-app/internal/logger"
	"github.com/diewo77/presupuestos-app/internal/models"
)

// ProductRepo is the catalog store. All operations are single statements;
// no transactions are needed here.
type ProductRepo interface {
	GetProducts(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id int) (*models.Product, error)
	Create(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, p *models.Product) (bool, error)
	Delete(ctx context.Context, id int) (bool, error)
}

type productRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProductRepo(db *gorm.DB, baseLog *logger.Logger) ProductRepo {
	return &productRepo{db: db, log: baseLog.With("repo", "ProductRepo")}
}

func (r *productRepo) GetProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).Order(`"IdProducto"`).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// GetByID returns nil (not an error) when the product does not exist.
func (r *productRepo) GetByID(ctx context.Context, id int) (*models.Product, error) {
	var p models.Product
	err := r.db.WithContext(ctx).Where(`"IdProducto" = ?`, id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	return &p, nil
}

func (r *productRepo) Create(ctx context.Context, p *models.Product) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// Update returns false when no row matched the id; callers treat that as
// not found, never as silent success.
func (r *productRepo) Update(ctx context.Context, p *models.Product) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Product{}).
		Where(`"IdProducto" = ?`, p.ID).
		Updates(map[string]interface{}{
			"Descripcion": p.Description,
			"Precio":      p.UnitPrice,
		})
	if res.Error != nil {
		return false, fmt.Errorf("update product %d: %w", p.ID, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Delete refuses to cascade: a product still referenced by quotation lines
// surfaces ErrProductReferenced from the backing store's FK check.
func (r *productRepo) Delete(ctx context.Context, id int) (bool, error) {
	res := r.db.WithContext(ctx).Where(`"IdProducto" = ?`, id).Delete(&models.Product{})
	if res.Error != nil {
		if isForeignKeyViolation(res.Error) {
			r.log.Warn("delete blocked by references", "product_id", id)
			return false, fmt.Errorf("delete product %d: %w", id, ErrProductReferenced)
		}
		return false, fmt.Errorf("delete product %d: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}
