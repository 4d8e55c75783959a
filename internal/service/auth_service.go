package service

import (
	"context"
	"errors"
	"time"

	"github.com/JPEDROPS092/sistemadecadastro/internal/config"
	"github.com/JPEDROPS092/sistemadecadastro/internal/dto"
	"github.com/JPEDROPS092/sistemadecadastro/internal/model"
	"github.com/JPEDROPS092/sistemadecadastro/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TokenDenylist revokes access tokens at logout. Backed by Redis in
// production (infra.NewTokenDenylist); entries expire with the token itself.
type TokenDenylist interface {
	Deny(ctx context.Context, token string, ttl time.Duration) error
	IsDenied(ctx context.Context, token string) (bool, error)
}

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context, accessToken, refreshToken string) error
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
	CriarUsuario(ctx context.Context, req dto.CriarUsuarioRequest) (*dto.UsuarioResponse, error)
	ListarUsuarios(ctx context.Context, incluirInativos bool) ([]dto.UsuarioResponse, error)
	AtualizarUsuario(ctx context.Context, id uuid.UUID, req dto.AtualizarUsuarioRequest) (*dto.UsuarioResponse, error)
	DesativarUsuario(ctx context.Context, id uuid.UUID) error
	ReativarUsuario(ctx context.Context, id uuid.UUID) error
	Perfil(ctx context.Context, id uuid.UUID) (*dto.UsuarioResponse, error)
	AlterarSenha(ctx context.Context, id uuid.UUID, req dto.AlterarSenhaRequest) error
	// CriarUsuariosPadrao seeds the three default accounts at first boot.
	CriarUsuariosPadrao(ctx context.Context) error
}

type authService struct {
	repo     repository.UsuarioRepository
	denylist TokenDenylist
	cfg      *config.Config
}

func NewAuthService(repo repository.UsuarioRepository, denylist TokenDenylist, cfg *config.Config) AuthService {
	return &authService{repo: repo, denylist: denylist, cfg: cfg}
}

// Login authenticates by username among active users. The failure message is
// deliberately identical for unknown user and wrong password.
// There is no attempt throttling or lockout here.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, ErrCredenciaisInvalidas
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.SenhaHash), []byte(req.Password)); err != nil {
		return nil, ErrCredenciaisInvalidas
	}

	agora := time.Now().UTC()
	if err := s.repo.UpdateUltimoAcesso(ctx, user.ID, agora); err != nil {
		return nil, err
	}
	user.UltimoAcesso = &agora

	return s.buildLoginResponse(user)
}

// Logout revokes both tokens of a session. TTLs mirror each token's own
// lifetime: after expiry the denylist entry is useless anyway. The refresh
// token is optional in the request but leaving it out keeps the session
// renewable until it expires.
func (s *authService) Logout(ctx context.Context, accessToken, refreshToken string) error {
	if err := s.denylist.Deny(ctx, accessToken, time.Duration(s.cfg.JWTExpirationHours)*time.Hour); err != nil {
		return err
	}
	if refreshToken == "" {
		return nil
	}
	return s.denylist.Deny(ctx, refreshToken, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrCredenciaisInvalidas
	}

	// Same fail-open policy as the auth middleware: a denylist outage must
	// not block every renewal.
	if denied, err := s.denylist.IsDenied(ctx, refreshToken); err == nil && denied {
		return nil, ErrCredenciaisInvalidas
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrCredenciaisInvalidas
	}
	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return nil, ErrCredenciaisInvalidas
	}
	uid, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, ErrCredenciaisInvalidas
	}

	user, err := s.repo.FindByID(ctx, uid)
	if err != nil || !user.Ativo {
		return nil, ErrCredenciaisInvalidas
	}

	return s.buildLoginResponse(user)
}

func (s *authService) CriarUsuario(ctx context.Context, req dto.CriarUsuarioRequest) (*dto.UsuarioResponse, error) {
	if exists, err := s.repo.ExistsByUsername(ctx, req.Username); err != nil {
		return nil, err
	} else if exists {
		return nil, ErrConflict
	}
	if exists, err := s.repo.ExistsByEmail(ctx, req.Email); err != nil {
		return nil, err
	} else if exists {
		return nil, ErrConflict
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, err
	}
	user := &model.Usuario{
		Username:     req.Username,
		NomeCompleto: req.NomeCompleto,
		Email:        req.Email,
		SenhaHash:    string(hash),
		Tipo:         req.Tipo,
		Ativo:        true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return usuarioToResponse(user), nil
}

func (s *authService) ListarUsuarios(ctx context.Context, incluirInativos bool) ([]dto.UsuarioResponse, error) {
	var users []model.Usuario
	var err error
	if incluirInativos {
		users, err = s.repo.ListAll(ctx)
	} else {
		users, err = s.repo.List(ctx)
	}
	if err != nil {
		return nil, err
	}
	resp := make([]dto.UsuarioResponse, len(users))
	for i := range users {
		resp[i] = *usuarioToResponse(&users[i])
	}
	return resp, nil
}

func (s *authService) AtualizarUsuario(ctx context.Context, id uuid.UUID, req dto.AtualizarUsuarioRequest) (*dto.UsuarioResponse, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if req.NomeCompleto != "" {
		user.NomeCompleto = req.NomeCompleto
	}
	if req.Email != nil && *req.Email != user.Email {
		if exists, err := s.repo.ExistsByEmail(ctx, *req.Email); err != nil {
			return nil, err
		} else if exists {
			return nil, ErrConflict
		}
		user.Email = *req.Email
	}
	if req.Tipo != "" {
		user.Tipo = req.Tipo
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
		if err != nil {
			return nil, err
		}
		user.SenhaHash = string(hash)
	}
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return usuarioToResponse(user), nil
}

func (s *authService) DesativarUsuario(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.repo.SoftDelete(ctx, id)
}

func (s *authService) ReativarUsuario(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.repo.Reativar(ctx, id)
}

func (s *authService) Perfil(ctx context.Context, id uuid.UUID) (*dto.UsuarioResponse, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return usuarioToResponse(user), nil
}

func (s *authService) AlterarSenha(ctx context.Context, id uuid.UUID, req dto.AlterarSenhaRequest) error {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.SenhaHash), []byte(req.SenhaAtual)); err != nil {
		return ErrCredenciaisInvalidas
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.SenhaNova), 12)
	if err != nil {
		return err
	}
	user.SenhaHash = string(hash)
	return s.repo.Update(ctx, user)
}

// CriarUsuariosPadrao creates the admin/gerente/operador demo accounts when
// they do not exist yet. Intended for first boot of a fresh database.
func (s *authService) CriarUsuariosPadrao(ctx context.Context) error {
	padrao := []dto.CriarUsuarioRequest{
		{Username: "admin", Password: "admin123", NomeCompleto: "Administrador do Sistema", Email: "admin@sistema.com", Tipo: model.TipoAdmin},
		{Username: "gerente", Password: "gerente123", NomeCompleto: "Gerente do Sistema", Email: "gerente@sistema.com", Tipo: model.TipoGerente},
		{Username: "operador", Password: "operador123", NomeCompleto: "Operador do Sistema", Email: "operador@sistema.com", Tipo: model.TipoOperador},
	}
	for _, req := range padrao {
		if _, err := s.CriarUsuario(ctx, req); err != nil {
			if errors.Is(err, ErrConflict) {
				continue
			}
			return err
		}
		log.Info().Str("username", req.Username).Msg("usuário padrão criado")
	}
	return nil
}

func (s *authService) buildLoginResponse(user *model.Usuario) (*dto.LoginResponse, error) {
	accessToken, err := s.generateToken(user, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.generateToken(user, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		User:         *usuarioToResponse(user),
	}, nil
}

func (s *authService) generateToken(user *model.Usuario, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID.String(),
		"username": user.Username,
		"tipo":     user.Tipo,
		"exp":      time.Now().Add(duration).Unix(),
		"iat":      time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func usuarioToResponse(u *model.Usuario) *dto.UsuarioResponse {
	resp := &dto.UsuarioResponse{
		ID:           u.ID.String(),
		Username:     u.Username,
		NomeCompleto: u.NomeCompleto,
		Email:        u.Email,
		Tipo:         u.Tipo,
		Ativo:        u.Ativo,
		DataCriacao:  u.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
	if u.UltimoAcesso != nil {
		t := u.UltimoAcesso.UTC().Format("2006-01-02T15:04:05Z")
		resp.UltimoAcesso = &t
	}
	return resp
}
