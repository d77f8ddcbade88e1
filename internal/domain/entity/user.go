package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin     = "admin"
	RoleBodeguero = "bodeguero"
	RoleVendedor  = "vendedor"
)

// User representa un usuario de la aplicación.
// Si un usuario se elimina, sus movimientos quedan con CreatedBy anónimo (NULL en DB),
// nunca se borran.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string // admin, bodeguero, vendedor
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
