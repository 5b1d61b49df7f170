package service

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/eyeroniq/poslite/internal/domain/entity"
	"github.com/eyeroniq/poslite/internal/domain/enum"
	"github.com/eyeroniq/poslite/internal/domain/repository"
	"github.com/eyeroniq/poslite/pkg/apperror"
	"github.com/eyeroniq/poslite/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SaleService records sales and quotes and keeps stock in step with them
type SaleService struct {
	tx          repository.Transactor
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	clientRepo  repository.ClientRepository
	ledger      repository.StockLedger
}

// NewSaleService creates a new sale service
func NewSaleService(
	tx repository.Transactor,
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	clientRepo repository.ClientRepository,
	ledger repository.StockLedger,
) *SaleService {
	return &SaleService{
		tx:          tx,
		saleRepo:    saleRepo,
		productRepo: productRepo,
		clientRepo:  clientRepo,
		ledger:      ledger,
	}
}

// ActingUser is the authenticated user recording the sale
type ActingUser struct {
	ID   uuid.UUID
	Name string
}

// SaleItemInput represents an item in a sale. UnitPrice overrides the
// catalogue price when set.
type SaleItemInput struct {
	ProductID uuid.UUID
	Quantity  int
	UnitPrice *decimal.Decimal
}

// CreateSaleInput represents the create sale input
type CreateSaleInput struct {
	Kind          enum.SaleKind
	PaymentMethod enum.PaymentMethod
	Total         decimal.Decimal
	User          ActingUser
	ClientID      *uuid.UUID
	Items         []SaleItemInput
}

// CreateSale records a sale or a quote. A SALE persists its header, its items
// and every stock reservation as one unit; a QUOTE never touches stock. The
// total is taken as supplied by the caller.
func (s *SaleService) CreateSale(ctx context.Context, input *CreateSaleInput) (*entity.Sale, error) {
	kind := input.Kind
	if kind == "" {
		kind = enum.SaleKindSale
	}

	if fieldErrors := validateCreateSale(input, kind); len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	// Validate client if provided
	if input.ClientID != nil {
		client, err := s.clientRepo.GetByID(ctx, *input.ClientID)
		if err != nil {
			return nil, err
		}
		if client == nil {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "client_id", Message: "client does not exist"},
			})
		}
	}

	// Batch fetch all products in one query (prevents N+1)
	productIDs := make([]uuid.UUID, len(input.Items))
	for i, item := range input.Items {
		productIDs[i] = item.ProductID
	}

	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	productMap := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}

	var fieldErrors []apperror.FieldError
	items := make([]entity.SaleItem, 0, len(input.Items))
	reservations := make(map[uuid.UUID]int)

	for i, item := range input.Items {
		product, exists := productMap[item.ProductID]
		if !exists {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field:   fmt.Sprintf("items[%d].product_id", i),
				Message: fmt.Sprintf("product %s does not exist", item.ProductID),
			})
			continue
		}

		// Snapshot the price and name as they are now
		unitPrice := product.Price
		if item.UnitPrice != nil {
			unitPrice = *item.UnitPrice
		}

		items = append(items, entity.SaleItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    item.Quantity,
			UnitPrice:   unitPrice.Round(2),
		})

		if product.TracksStock() {
			reservations[product.ID] += item.Quantity
		}
	}

	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	sale := &entity.Sale{
		Kind:          kind,
		Status:        enum.SaleStatusCompleted,
		Total:         input.Total.Round(2),
		PaymentMethod: input.PaymentMethod,
		UserID:        input.User.ID,
		UserName:      input.User.Name,
		ClientID:      input.ClientID,
		Items:         items,
	}

	if !kind.AffectsStock() {
		if err := s.saleRepo.Create(ctx, sale); err != nil {
			return nil, err
		}
		zap.L().Info("quote recorded", zap.String("sale_id", sale.ID.String()), zap.Int("items", len(items)))
		return sale, nil
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.saleRepo.Create(ctx, sale); err != nil {
			return err
		}

		// Reserve in a fixed order so concurrent sales lock rows alike
		for _, productID := range sortedIDs(reservations) {
			if err := s.ledger.Reserve(ctx, productID, reservations[productID], &sale.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		zap.L().Warn("sale rolled back", zap.String("user_id", input.User.ID.String()), zap.Error(err))
		return nil, err
	}

	zap.L().Info("sale recorded",
		zap.String("sale_id", sale.ID.String()),
		zap.String("total", sale.Total.StringFixed(2)),
		zap.Int("items", len(items)))
	return sale, nil
}

// CancelSale reverses a completed sale and returns its goods to stock.
// Cancelling an already cancelled sale succeeds without effect; quotes cannot
// be cancelled.
func (s *SaleService) CancelSale(ctx context.Context, id uuid.UUID) error {
	sale, err := s.saleRepo.GetWithItems(ctx, id)
	if err != nil {
		return err
	}
	if sale == nil {
		return apperror.NewNotFoundError("Sale")
	}
	if sale.Status.Terminal() {
		return nil
	}
	if !sale.Kind.AffectsStock() {
		return apperror.NewInvalidOperationError("Quotes cannot be cancelled")
	}

	restores := make(map[uuid.UUID]int)
	for _, item := range sale.Items {
		if item.Product.TracksStock() {
			restores[item.ProductID] += item.Quantity
		}
	}

	cancelled := false
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		// The status flip is the guard: a concurrent cancel that lost the
		// race finds nothing to flip and restores nothing.
		ok, err := s.saleRepo.MarkCancelled(ctx, id)
		if err != nil || !ok {
			return err
		}

		for _, productID := range sortedIDs(restores) {
			if err := s.ledger.Restore(ctx, productID, restores[productID], &sale.ID); err != nil {
				return err
			}
		}
		cancelled = true
		return nil
	})
	if err != nil {
		return err
	}

	if cancelled {
		zap.L().Info("sale cancelled", zap.String("sale_id", id.String()))
	}
	return nil
}

// GetSale retrieves a sale with its items and client
func (s *SaleService) GetSale(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// ListSalesInput represents list sales filters
type ListSalesInput struct {
	Pagination *pagination.PaginationParams
	Kind       *enum.SaleKind
	Status     *enum.SaleStatus
	UserID     *uuid.UUID
	ClientID   *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
}

// ListSales retrieves sales newest first
func (s *SaleService) ListSales(ctx context.Context, input *ListSalesInput) (*pagination.PaginatedResult[entity.Sale], error) {
	if input.Pagination == nil {
		input.Pagination = pagination.DefaultPagination()
	}
	input.Pagination.Validate()

	sales, total, err := s.saleRepo.List(ctx, &repository.SaleFilterParams{
		Pagination: input.Pagination,
		Kind:       input.Kind,
		Status:     input.Status,
		UserID:     input.UserID,
		ClientID:   input.ClientID,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
	})
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(input.Pagination.Page, input.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(sales, pag), nil
}

func validateCreateSale(input *CreateSaleInput, kind enum.SaleKind) []apperror.FieldError {
	var errs []apperror.FieldError

	if !kind.Valid() {
		errs = append(errs, apperror.FieldError{Field: "kind", Message: "must be SALE or QUOTE"})
	}
	if !input.PaymentMethod.Valid() {
		errs = append(errs, apperror.FieldError{Field: "payment_method", Message: "must be CASH or CARD"})
	}
	if input.User.ID == uuid.Nil {
		errs = append(errs, apperror.FieldError{Field: "user", Message: "acting user is required"})
	}
	if input.Total.IsNegative() {
		errs = append(errs, apperror.FieldError{Field: "total", Message: "must not be negative"})
	}
	if len(input.Items) == 0 {
		errs = append(errs, apperror.FieldError{Field: "items", Message: "at least one item is required"})
	}

	for i, item := range input.Items {
		if item.Quantity <= 0 {
			errs = append(errs, apperror.FieldError{
				Field:   fmt.Sprintf("items[%d].quantity", i),
				Message: "must be greater than zero",
			})
		}
		if item.UnitPrice != nil && item.UnitPrice.IsNegative() {
			errs = append(errs, apperror.FieldError{
				Field:   fmt.Sprintf("items[%d].unit_price", i),
				Message: "must not be negative",
			})
		}
	}

	return errs
}

func sortedIDs(m map[uuid.UUID]int) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return bytes.Compare(ids[i][:], ids[j][:]) < 0
	})
	return ids
}
