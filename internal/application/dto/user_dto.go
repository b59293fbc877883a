package dto

// CredentialsRequest entrada para signup y login.
type CredentialsRequest struct {
	Username string `json:"username" example:"admin"`
	Password string `json:"password" example:"secret123"`
}

// LoginResponse token JWT de la sesión.
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// UserResponse cuenta sin password.
type UserResponse struct {
	Username string `json:"username"`
}
