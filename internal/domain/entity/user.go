package entity

import "strings"

// User cuenta local del operador. Password guarda un hash bcrypt; las cuentas importadas
// desde códigos antiguos pueden traerlo en texto plano hasta el primer login.
type User struct {
	Username string `json:"username"`
	Password string `json:"password,omitempty"`
}

// HasHashedPassword indica si Password ya es un hash bcrypt.
func (u User) HasHashedPassword() bool {
	return strings.HasPrefix(u.Password, "$2a$") ||
		strings.HasPrefix(u.Password, "$2b$") ||
		strings.HasPrefix(u.Password, "$2y$")
}

// Session sesión activa (solo el nombre de usuario).
type Session struct {
	Username string `json:"username"`
}
