package domain

import "errors"

var (
	// ErrInvalidInput - запрос отклонён до обращения к хранилищу.
	ErrInvalidInput = errors.New("invalid input")
	// ErrCartNotFound - корзины с таким id нет.
	ErrCartNotFound = errors.New("cart not found")
	// ErrInsufficientStock - остатков не хватает хотя бы по одному товару.
	ErrInsufficientStock = errors.New("insufficient stock")
)
