package service

import (
	"context"
	"strings"

	"github.com/eyeroniq/poslite/internal/domain/entity"
	"github.com/eyeroniq/poslite/internal/domain/enum"
	"github.com/eyeroniq/poslite/internal/domain/repository"
	"github.com/eyeroniq/poslite/pkg/apperror"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductService handles the catalogue entries the till sells
type ProductService struct {
	productRepo repository.ProductRepository
	ledger      repository.StockLedger
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository, ledger repository.StockLedger) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		ledger:      ledger,
	}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	Name     string
	Kind     enum.ProductKind
	Price    decimal.Decimal
	Cost     decimal.Decimal
	Quantity int
	Barcode  string
}

// CreateProduct creates a new product. Services always start with zero stock.
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	kind := input.Kind
	if kind == "" {
		kind = enum.ProductKindGood
	}

	var fieldErrors []apperror.FieldError
	if strings.TrimSpace(input.Name) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "is required"})
	}
	if !kind.Valid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "kind", Message: "must be GOOD or SERVICE"})
	}
	if input.Price.IsNegative() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "price", Message: "must not be negative"})
	}
	if input.Quantity < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "quantity", Message: "must not be negative"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	product := &entity.Product{
		Name:  strings.TrimSpace(input.Name),
		Kind:  kind,
		Price: input.Price.Round(2),
		Cost:  input.Cost.Round(2),
	}
	if kind.TracksStock() {
		product.Quantity = input.Quantity
	}

	// Check if barcode already exists
	if input.Barcode != "" {
		existing, err := s.productRepo.GetByBarcode(ctx, input.Barcode)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "barcode", Message: "already in use"},
			})
		}
		barcode := input.Barcode
		product.Barcode = &barcode
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// GetProductByID retrieves a product by ID
func (s *ProductService) GetProductByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// GetProductByBarcode retrieves a product by its scanned barcode
func (s *ProductService) GetProductByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	product, err := s.productRepo.GetByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// StockHistory returns the stock movements of a product, oldest first
func (s *ProductService) StockHistory(ctx context.Context, id uuid.UUID) ([]entity.StockMovement, error) {
	if _, err := s.GetProductByID(ctx, id); err != nil {
		return nil, err
	}
	return s.ledger.Movements(ctx, id)
}
