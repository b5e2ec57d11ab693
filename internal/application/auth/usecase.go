package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/dihegorc/impressao3d-manager/internal/domain"
	"github.com/dihegorc/impressao3d-manager/pkg/jwt"
)

// JWTConfig configuração para geração de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Operator são as credenciais do operador único da oficina, vindas da
// configuração. Hash bcrypt vazio desabilita o login.
type Operator struct {
	Username     string
	PasswordHash string
}

// UseCase autentica o operador e emite o token de sessão.
type UseCase struct {
	operator Operator
	jwtCfg   JWTConfig
}

// New constrói o caso de uso de auth.
func New(operator Operator, jwtCfg JWTConfig) *UseCase {
	return &UseCase{operator: operator, jwtCfg: jwtCfg}
}

// Login confere usuário e senha contra o hash bcrypt configurado e gera
// o JWT. Falha sempre com ErrUnauthorized, sem distinguir usuário errado
// de senha errada.
func (uc *UseCase) Login(username, password string) (token string, err error) {
	if uc.operator.PasswordHash == "" {
		return "", domain.ErrUnauthorized
	}
	if username != uc.operator.Username {
		return "", domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(uc.operator.PasswordHash), []byte(password)); err != nil {
		return "", domain.ErrUnauthorized
	}
	return jwt.Generate(uc.jwtCfg.Secret, username, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
}
