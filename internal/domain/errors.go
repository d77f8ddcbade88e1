package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrProductNotFound    = errors.New("producto no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidQuantity    = errors.New("cantidad inválida para el tipo de movimiento")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrProtected          = errors.New("recurso referenciado por otros registros")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrCommitFailed       = errors.New("no se pudo confirmar la transacción")
)

// InsufficientStockError indica que una salida dejaría el stock en negativo.
// Lleva la cantidad disponible para que el caller pueda mostrarla.
// errors.Is(err, ErrInsufficientStock) retorna true.
type InsufficientStockError struct {
	Available int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente: disponible %d", e.Available)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// CommitError envuelve un fallo de la capa de almacenamiento durante el commit atómico.
// La operación completa puede reintentarse: no quedó ningún estado parcial persistido.
// errors.Is(err, ErrCommitFailed) retorna true y la causa original sigue accesible.
type CommitError struct {
	Err error
}

func (e *CommitError) Error() string {
	return "commit fallido: " + e.Err.Error()
}

func (e *CommitError) Unwrap() []error { return []error{ErrCommitFailed, e.Err} }
