package db

import (
	"gorm.io/gorm"

	"github.com/diewo77/presupuestos-app/internal/models"
)

// Seed inserts baseline users and a small product catalog when missing.
// Safe to run repeatedly.
func Seed(conn *gorm.DB) {
	baseUsers := []models.User{
		{DisplayName: "Administrador General", Username: "admin", Password: "admin123", Role: models.RoleAdministrator},
		{DisplayName: "Cliente Demo", Username: "cliente", Password: "cliente123", Role: models.RoleClient},
	}
	for _, u := range baseUsers {
		var existing models.User
		if err := conn.Where(`"User" = ?`, u.Username).First(&existing).Error; err == gorm.ErrRecordNotFound {
			conn.Create(&u)
		}
	}

	baseProducts := []models.Product{
		{Description: "Teclado mecánico", UnitPrice: 45.00},
		{Description: "Mouse inalámbrico", UnitPrice: 19.99},
		{Description: "Monitor 24\"", UnitPrice: 139.50},
	}
	for _, p := range baseProducts {
		var existing models.Product
		if err := conn.Where(`"Descripcion" = ?`, p.Description).First(&existing).Error; err == gorm.ErrRecordNotFound {
			conn.Create(&p)
		}
	}
}
