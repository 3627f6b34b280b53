package auth

import (
	"fmt"
	"slices"
	"strings"

	"github.com/jhoicas/salestax-api/internal/domain"
	"github.com/jhoicas/salestax-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// knownScopes scopes que la API sabe verificar.
var knownScopes = []string{jwt.ScopeExemptionsRead, jwt.ScopeInvoicesRead}

// KnownScopes copia de los scopes soportados.
func KnownScopes() []string {
	return slices.Clone(knownScopes)
}

// IssuedToken token emitido para un cliente de la API.
type IssuedToken struct {
	Token     string
	ClientID  string
	Scopes    []string
	ExpiresIn int // minutos
}

// AuthUseCase emisión de tokens para clientes de la API (terminales POS, backoffice).
type AuthUseCase struct {
	jwtCfg JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(jwtCfg JWTConfig) *AuthUseCase {
	if jwtCfg.ExpMinutes <= 0 {
		jwtCfg.ExpMinutes = 60
	}
	return &AuthUseCase{jwtCfg: jwtCfg}
}

// IssueToken firma un token para clientID con los scopes pedidos.
// Retorna domain.ErrInvalidInput si falta el cliente o algún scope no existe.
func (uc *AuthUseCase) IssueToken(clientID string, scopes []string) (*IssuedToken, error) {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		return nil, domain.ErrInvalidInput
	}
	normalized := make([]string, 0, len(scopes))
	for _, s := range scopes {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if !slices.Contains(knownScopes, s) {
			return nil, fmt.Errorf("%w: scope desconocido %q", domain.ErrInvalidInput, s)
		}
		if !slices.Contains(normalized, s) {
			normalized = append(normalized, s)
		}
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, clientID, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes, normalized...)
	if err != nil {
		return nil, fmt.Errorf("auth: firmar token: %w", err)
	}
	return &IssuedToken{Token: token, ClientID: clientID, Scopes: normalized, ExpiresIn: uc.jwtCfg.ExpMinutes}, nil
}
