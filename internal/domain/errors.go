package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("producto no encontrado en el stock")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrUnitValueRequired = errors.New("el valor unitario es obligatorio para el primer registro de un producto")
	ErrInsufficientStock = errors.New("cantidad insuficiente en stock")
)
