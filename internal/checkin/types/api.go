package types

type LoginRequest struct {
	Login string `json:"login"`
	Senha string `json:"senha"`
}

type UserInfo struct {
	IDUsuario     int64  `json:"idUsuario"`
	Nome          string `json:"nome"`
	Login         string `json:"login"`
	IDTipoUsuario int    `json:"idTipoUsuario"`
}

type LoginResponse struct {
	Message  string    `json:"message"`
	Decision Decision  `json:"decision"`
	User     *UserInfo `json:"user,omitempty"`
}

type RegisterRequest struct {
	Nome  string `json:"nome"`
	Login string `json:"login"`
	Senha string `json:"senha"`
}

type RegisterResponse struct {
	Message   string `json:"message"`
	IDUsuario int64  `json:"idUsuario,omitempty"`
}

type Product struct {
	ID   int64  `json:"id"`
	Nome string `json:"nome"`
}

// ReportRow is one line of the login report. It deliberately carries no id.
type ReportRow struct {
	Nome string `json:"nome"`
	Data string `json:"data"`
	Hora string `json:"hora"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
