package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// ErrInvalidInput, ErrNotFound y ErrUnauthorized llegan al cliente; las fallas de
// colaboradores (caché, directorio) se absorben en la capa de aplicación.
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrUnauthorized = errors.New("no autorizado")
)
