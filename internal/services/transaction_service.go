package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "financetracker/internal/errors"
	"financetracker/internal/models"
	"financetracker/internal/validator"
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	db        *gorm.DB
	converter CurrencyConverter
}

// NewTransactionService creates a new TransactionServicer. Every new
// transaction's base-currency amount comes from converter.
func NewTransactionService(db *gorm.DB, converter CurrencyConverter) TransactionServicer {
	return &transactionService{db: db, converter: converter}
}

// CreateTransaction validates the input, converts the amount into the base
// currency at the rate for date, and stores both amounts.
func (s *transactionService) CreateTransaction(
	ctx context.Context,
	amount decimal.Decimal,
	currency string,
	date time.Time,
	description string,
	categoryID uint,
) (*TransactionResponse, error) {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	description = strings.TrimSpace(description)

	if amount.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount is required")
	}
	if !validator.IsCurrency(currency) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "currency must be a valid ISO 4217 code")
	}
	if date.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "date is required")
	}
	if description == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "description is required")
	}
	if categoryID == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category_id is required")
	}

	var category models.Category
	if err := s.db.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	tx := &models.Transaction{
		Amount:       amount,
		Currency:     currency,
		ConvertedCAD: s.converter.Convert(ctx, amount, currency, date),
		Date:         date,
		Description:  description,
		CategoryID:   categoryID,
	}
	if err := s.db.Create(tx).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	tx.Category = &category

	resp := toTransactionResponse(tx)
	return &resp, nil
}

// GetAllTransactions returns every transaction, newest first, with its
// category name.
func (s *transactionService) GetAllTransactions() ([]TransactionResponse, error) {
	var transactions []models.Transaction
	if err := s.db.Preload("Category").
		Order("created_at DESC").Order("id DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := make([]TransactionResponse, len(transactions))
	for i := range transactions {
		result[i] = toTransactionResponse(&transactions[i])
	}
	return result, nil
}

// GetTransactionByID retrieves a transaction by ID
func (s *transactionService) GetTransactionByID(transactionID uint) (*TransactionResponse, error) {
	var tx models.Transaction
	if err := s.db.Preload("Category").First(&tx, transactionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	resp := toTransactionResponse(&tx)
	return &resp, nil
}

// GetCategoryBalances groups transactions by category and totals their
// base-currency amounts. Every category appears, including empty ones.
// Buckets are ordered by total descending; equal totals keep category id order.
func (s *transactionService) GetCategoryBalances() ([]CategoryBalance, error) {
	var categories []models.Category
	if err := s.db.Order("id ASC").
		Preload("Transactions", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	balances := make([]CategoryBalance, 0, len(categories))
	for i := range categories {
		cat := &categories[i]
		entry := CategoryBalance{
			CategoryID:   cat.ID,
			CategoryName: cat.Name,
			Transactions: make([]TransactionResponse, 0, len(cat.Transactions)),
			Total:        decimal.Zero,
		}
		for j := range cat.Transactions {
			tx := &cat.Transactions[j]
			tx.Category = cat
			entry.Transactions = append(entry.Transactions, toTransactionResponse(tx))
			entry.Total = entry.Total.Add(tx.ConvertedCAD)
		}
		entry.Count = len(entry.Transactions)
		balances = append(balances, entry)
	}

	sort.SliceStable(balances, func(i, j int) bool {
		return balances[i].Total.GreaterThan(balances[j].Total)
	})

	return balances, nil
}
