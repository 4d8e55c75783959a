package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// LogoutRequest optionally carries the refresh token so the whole session is
// revoked, not just the access token.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type CriarUsuarioRequest struct {
	Username     string `json:"username"      validate:"required,min=3"`
	Password     string `json:"password"      validate:"required,min=6"`
	NomeCompleto string `json:"nome_completo" validate:"required"`
	Email        string `json:"email"         validate:"required,email"`
	Tipo         string `json:"tipo"          validate:"required,oneof=admin gerente operador"`
}

type AtualizarUsuarioRequest struct {
	NomeCompleto string  `json:"nome_completo"`
	Email        *string `json:"email"    validate:"omitempty,email"`
	Tipo         string  `json:"tipo"     validate:"omitempty,oneof=admin gerente operador"`
	Password     string  `json:"password" validate:"omitempty,min=6"`
}

type AlterarSenhaRequest struct {
	SenhaAtual string `json:"senha_atual" validate:"required"`
	SenhaNova  string `json:"senha_nova"  validate:"required,min=6"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type UsuarioResponse struct {
	ID           string  `json:"id"`
	Username     string  `json:"username"`
	NomeCompleto string  `json:"nome_completo"`
	Email        string  `json:"email"`
	Tipo         string  `json:"tipo"`
	Ativo        bool    `json:"ativo"`
	DataCriacao  string  `json:"data_criacao"`
	UltimoAcesso *string `json:"ultimo_acesso"`
}

type LoginResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	TokenType    string          `json:"token_type"`
	ExpiresIn    int             `json:"expires_in"`
	User         UsuarioResponse `json:"user"`
}
