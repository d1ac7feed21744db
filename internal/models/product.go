package models

// Product is a catalog item. Column names follow the legacy Tienda schema;
// quotations reference products but never own them.
type Product struct {
	ID          int     `gorm:"column:IdProducto;primaryKey;autoIncrement" json:"id"`
	Description string  `gorm:"column:Descripcion;size:250;not null" json:"description"`
	UnitPrice   float64 `gorm:"column:Precio;not null" json:"unit_price"`
}

func (Product) TableName() string { return "Productos" }
