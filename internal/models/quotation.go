package models

import "time"

// TaxRate is the fixed IVA rate applied on top of the subtotal.
const TaxRate = 0.21

// Quotation is the aggregate root: a header plus its ordered line items.
// Lines are loaded eagerly by the store; prices are never snapshotted, so
// totals always reflect the current catalog price.
type Quotation struct {
	ID            int             `gorm:"column:IdPresupuesto;primaryKey;autoIncrement" json:"id"`
	RecipientName string          `gorm:"column:NombreDestinatario;not null" json:"recipient_name"`
	CreatedDate   time.Time       `gorm:"column:FechaCreacion;not null" json:"created_date"`
	Lines         []QuotationLine `gorm:"foreignKey:QuotationID;references:ID" json:"lines"`
}

func (Quotation) TableName() string { return "Presupuestos" }

// QuotationLine belongs to exactly one quotation. The surrogate ID makes
// line ordering explicit (insertion order). No uniqueness across
// (QuotationID, ProductID): repeated appends are additive.
type QuotationLine struct {
	ID          int     `gorm:"column:Id;primaryKey;autoIncrement" json:"-"`
	QuotationID int     `gorm:"column:IdPresupuesto;not null;index" json:"quotation_id"`
	ProductID   int     `gorm:"column:IdProducto;not null" json:"product_id"`
	Quantity    int     `gorm:"column:Cantidad;not null" json:"quantity"`
	Product     Product `gorm:"foreignKey:ProductID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"product"`
}

func (QuotationLine) TableName() string { return "PresupuestosDetalle" }

// Subtotal sums quantity × current unit price over all lines.
func (q *Quotation) Subtotal() float64 {
	var total float64
	for _, line := range q.Lines {
		total += float64(line.Quantity) * line.Product.UnitPrice
	}
	return total
}

// TotalWithTax applies the fixed tax rate to the subtotal.
func (q *Quotation) TotalWithTax() float64 {
	return q.Subtotal() * (1 + TaxRate)
}

// TotalQuantity sums line quantities, duplicates included.
func (q *Quotation) TotalQuantity() int {
	var total int
	for _, line := range q.Lines {
		total += line.Quantity
	}
	return total
}
