package services

import (
	"context"
	"time"

	"github.com/diewo77/presupuestos-app/internal/logger"
	"github.com/diewo77/presupuestos-app/internal/models"
	"github.com/diewo77/presupuestos-app/internal/repos"
	"github.com/diewo77/presupuestos-app/internal/validation"
)

// QuotationService validates input at the boundary and delegates persistence
// to the quotation store. Validation failures come back as field violations,
// never as errors.
type QuotationService struct {
	quotations repos.QuotationRepo
	products   repos.ProductRepo
	now        func() time.Time
	log        *logger.Logger
}

func NewQuotationService(quotations repos.QuotationRepo, products repos.ProductRepo, baseLog *logger.Logger) *QuotationService {
	return &QuotationService{
		quotations: quotations,
		products:   products,
		now:        time.Now,
		log:        baseLog.With("service", "QuotationService"),
	}
}

func (s *QuotationService) validateHeader(recipientName string, createdDate time.Time) validation.Violations {
	v := validation.Violations{}
	validation.Required("recipient_name", recipientName, v)
	validation.NotFuture("created_date", createdDate, s.now(), v)
	return v
}

// Create validates the header then persists it. The presentation layer runs
// the date check before calling in; the service rejects a future date again
// regardless.
func (s *QuotationService) Create(ctx context.Context, recipientName string, createdDate time.Time) (*models.Quotation, validation.Violations, error) {
	if v := s.validateHeader(recipientName, createdDate); !v.Empty() {
		return nil, v, nil
	}
	q := &models.Quotation{RecipientName: recipientName, CreatedDate: createdDate}
	if err := s.quotations.Create(ctx, q); err != nil {
		return nil, nil, err
	}
	return q, nil, nil
}

// Update edits the header only. found=false means the id does not exist.
func (s *QuotationService) Update(ctx context.Context, id int, recipientName string, createdDate time.Time) (bool, validation.Violations, error) {
	if v := s.validateHeader(recipientName, createdDate); !v.Empty() {
		return false, v, nil
	}
	q := &models.Quotation{ID: id, RecipientName: recipientName, CreatedDate: createdDate}
	found, err := s.quotations.Update(ctx, q)
	if err != nil {
		return false, nil, err
	}
	return found, nil, nil
}

// AddLine appends a line item after checking that the quotation and product
// both exist and the quantity is at least one.
func (s *QuotationService) AddLine(ctx context.Context, quotationID, productID, quantity int) (bool, validation.Violations, error) {
	v := validation.Violations{}
	validation.MinInt("quantity", quantity, 1, v)
	if !v.Empty() {
		return false, v, nil
	}
	q, err := s.quotations.GetByID(ctx, quotationID)
	if err != nil {
		return false, nil, err
	}
	if q == nil {
		return false, nil, nil
	}
	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return false, nil, err
	}
	if p == nil {
		return false, validation.Violations{"product_id": "unknown_product"}, nil
	}
	if err := s.quotations.AppendLineItem(ctx, quotationID, productID, quantity); err != nil {
		return false, nil, err
	}
	return true, nil, nil
}
