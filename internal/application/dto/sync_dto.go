package dto

// SyncCodeResponse código de exportación para copiar y pegar en otro equipo.
type SyncCodeResponse struct {
	Code      string `json:"code"`
	Timestamp int64  `json:"timestamp"`
}

// SyncImportRequest código pegado por el operador.
type SyncImportRequest struct {
	Code string `json:"code"`
}

// SyncImportResponse resumen de lo restaurado.
type SyncImportResponse struct {
	UsersRestored     bool `json:"usersRestored"`
	CustomersRestored bool `json:"customersRestored"`
	Users             int  `json:"users"`
	Customers         int  `json:"customers"`
}
