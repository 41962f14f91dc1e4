package entity

// Roles válidos para el operador autenticado.
const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
	RoleViewer   = "viewer"
)

// ValidRole indica si role es uno de los roles conocidos.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleOperator, RoleViewer:
		return true
	}
	return false
}

// Operator credencial configurada para acceder a la API.
// No hay registro de usuarios: una sola cuenta por despliegue.
type Operator struct {
	Username     string
	PasswordHash string // bcrypt; vacío = login deshabilitado
	Role         string
}
