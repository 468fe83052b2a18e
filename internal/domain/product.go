package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	errEmptyName     = errors.New("product name cannot be empty")
	errNegativePrice = errors.New("price cannot be negative")
	errNegativeStock = errors.New("stock cannot be negative")
)

// Product is the catalog aggregate. Stock is mutated only through
// ReserveStock/ReleaseStock so the non-negativity invariant holds.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
}

func NewProduct(id, name, description string, price decimal.Decimal, stock int) (Product, error) {
	if name == "" {
		return Product{}, errEmptyName
	}
	if price.IsNegative() {
		return Product{}, errNegativePrice
	}
	if stock < 0 {
		return Product{}, errNegativeStock
	}
	return Product{
		ID:          id,
		Name:        name,
		Description: description,
		Price:       price,
		Stock:       stock,
	}, nil
}

// ReserveStock checks and decrements in one step. The caller is responsible
// for serializing concurrent calls against the same product (the in-memory
// catalog does this with a per-product lock).
func (p *Product) ReserveStock(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if p.Stock < quantity {
		return &InsufficientStockError{
			ProductID: p.ID,
			Available: p.Stock,
			Requested: quantity,
		}
	}
	p.Stock -= quantity
	return nil
}

// ReleaseStock returns quantity to the pool. There is no upper bound: a
// compensating layer may release more than the current seed ever held.
func (p *Product) ReleaseStock(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	p.Stock += quantity
	return nil
}
