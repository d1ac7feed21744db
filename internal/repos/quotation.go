package repos

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/diewo77/presupuestos-app/internal/logger"
	"github.com/diewo77/presupuestos-app/internal/models"
)

// QuotationRepo owns the quotation aggregate: the header row and its line
// items stay consistent through transactional create/delete and eager reads.
type QuotationRepo interface {
	// Create inserts the header, then each line under the generated id, as
	// one transaction. A failing line insert rolls back the header too.
	Create(ctx context.Context, q *models.Quotation) error
	// GetAll loads every header and materializes each one's lines with a
	// second query. The N+1 cost is a deliberate simplicity trade-off.
	GetAll(ctx context.Context) ([]models.Quotation, error)
	// GetByID returns nil (not an error) when the id is absent.
	GetByID(ctx context.Context, id int) (*models.Quotation, error)
	// AppendLineItem is a single insert. Duplicate (quotation, product)
	// pairs create distinct rows; totals sum them additively.
	AppendLineItem(ctx context.Context, quotationID, productID, quantity int) error
	// Update touches only the header. Returns false when no row matched.
	Update(ctx context.Context, q *models.Quotation) (bool, error)
	// Delete removes lines then header as one transaction. Returns whether
	// the header existed.
	Delete(ctx context.Context, id int) (bool, error)
}

type quotationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuotationRepo(db *gorm.DB, baseLog *logger.Logger) QuotationRepo {
	return &quotationRepo{db: db, log: baseLog.With("repo", "QuotationRepo")}
}

func (r *quotationRepo) Create(ctx context.Context, q *models.Quotation) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Lines").Create(q).Error; err != nil {
			return err
		}
		for i := range q.Lines {
			q.Lines[i].QuotationID = q.ID
			if err := tx.Omit("Product").Create(&q.Lines[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("create quotation for %q: %w", q.RecipientName, err)
	}
	return nil
}

func (r *quotationRepo) GetAll(ctx context.Context) ([]models.Quotation, error) {
	var headers []models.Quotation
	if err := r.db.WithContext(ctx).Order(`"IdPresupuesto"`).Find(&headers).Error; err != nil {
		return nil, fmt.Errorf("list quotations: %w", err)
	}
	for i := range headers {
		lines, err := r.linesFor(ctx, headers[i].ID)
		if err != nil {
			return nil, err
		}
		headers[i].Lines = lines
	}
	return headers, nil
}

func (r *quotationRepo) GetByID(ctx context.Context, id int) (*models.Quotation, error) {
	var q models.Quotation
	err := r.db.WithContext(ctx).Where(`"IdPresupuesto" = ?`, id).First(&q).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get quotation %d: %w", id, err)
	}
	lines, err := r.linesFor(ctx, id)
	if err != nil {
		return nil, err
	}
	q.Lines = lines
	return &q, nil
}

// linesFor joins lines against the catalog so each carries the current
// product description and price. Ordered by the surrogate line id so
// insertion order is explicit rather than backend-dependent.
func (r *quotationRepo) linesFor(ctx context.Context, quotationID int) ([]models.QuotationLine, error) {
	var lines []models.QuotationLine
	err := r.db.WithContext(ctx).
		Joins("Product").
		Where(`"PresupuestosDetalle"."IdPresupuesto" = ?`, quotationID).
		Order(`"PresupuestosDetalle"."Id"`).
		Find(&lines).Error
	if err != nil {
		return nil, fmt.Errorf("load lines for quotation %d: %w", quotationID, err)
	}
	return lines, nil
}

func (r *quotationRepo) AppendLineItem(ctx context.Context, quotationID, productID, quantity int) error {
	line := models.QuotationLine{QuotationID: quotationID, ProductID: productID, Quantity: quantity}
	if err := r.db.WithContext(ctx).Omit("Product").Create(&line).Error; err != nil {
		return fmt.Errorf("append line to quotation %d: %w", quotationID, err)
	}
	return nil
}

func (r *quotationRepo) Update(ctx context.Context, q *models.Quotation) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Quotation{}).
		Where(`"IdPresupuesto" = ?`, q.ID).
		Updates(map[string]interface{}{
			"NombreDestinatario": q.RecipientName,
			"FechaCreacion":      q.CreatedDate,
		})
	if res.Error != nil {
		return false, fmt.Errorf("update quotation %d: %w", q.ID, res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *quotationRepo) Delete(ctx context.Context, id int) (bool, error) {
	var existed bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(`"IdPresupuesto" = ?`, id).Delete(&models.QuotationLine{}).Error; err != nil {
			return err
		}
		res := tx.Where(`"IdPresupuesto" = ?`, id).Delete(&models.Quotation{})
		if res.Error != nil {
			return res.Error
		}
		existed = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("delete quotation %d: %w", id, err)
	}
	return existed, nil
}
