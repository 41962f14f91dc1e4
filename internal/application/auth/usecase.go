package auth

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/qcommerce-agent/internal/application/dto"
	"github.com/jhoicas/qcommerce-agent/internal/domain"
	"github.com/jhoicas/qcommerce-agent/internal/domain/entity"
	"github.com/jhoicas/qcommerce-agent/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase login del operador configurado.
type AuthUseCase struct {
	operator entity.Operator
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth. Un rol vacío o desconocido queda como viewer.
func NewAuthUseCase(operator entity.Operator, jwtCfg JWTConfig) *AuthUseCase {
	if !entity.ValidRole(operator.Role) {
		operator.Role = entity.RoleViewer
	}
	return &AuthUseCase{operator: operator, jwtCfg: jwtCfg}
}

// Login verifica usuario/password contra el hash bcrypt y emite el JWT.
// Sin hash configurado el login está deshabilitado (ErrForbidden).
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, domain.NewValidationError("", "username y password son requeridos")
	}
	if uc.operator.PasswordHash == "" {
		return nil, domain.ErrForbidden
	}
	if username != uc.operator.Username {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(uc.operator.PasswordHash), []byte(in.Password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, uc.operator.Username, uc.operator.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		Username:  uc.operator.Username,
		Role:      uc.operator.Role,
		ExpiresIn: uc.jwtCfg.ExpMinutes * 60,
	}, nil
}
