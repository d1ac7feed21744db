package models

// Roles form a closed set; access checks compare by exact string, there is
// no hierarchy between them.
const (
	RoleAdministrator = "Administrador"
	RoleClient        = "Cliente"
)

// User is read-only from this application's perspective: records are managed
// directly in the database. Passwords are stored and compared in plaintext,
// a weakness inherited from the legacy schema and deliberately not changed.
type User struct {
	ID          int    `gorm:"column:Id;primaryKey;autoIncrement" json:"id"`
	DisplayName string `gorm:"column:Nombre;not null" json:"display_name"`
	Username    string `gorm:"column:User;not null;unique" json:"username"`
	Password    string `gorm:"column:Pass;not null" json:"-"`
	Role        string `gorm:"column:Rol;not null" json:"role"`
}

func (User) TableName() string { return "Usuarios" }
