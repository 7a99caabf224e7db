package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"financetracker/internal/respond"
	"financetracker/internal/services"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
	linkService        services.LinkServicer
	auditService       services.AuditServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(
	transactionService services.TransactionServicer,
	linkService services.LinkServicer,
	auditService services.AuditServicer,
) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		linkService:        linkService,
		auditService:       auditService,
	}
}

// CreateTransactionRequest represents the request payload for creating a transaction
type CreateTransactionRequest struct {
	Amount      *decimal.Decimal `json:"amount" binding:"required" swaggertype:"number"`
	Currency    string           `json:"currency" binding:"required,iso4217"`
	Date        string           `json:"date" binding:"required" example:"2024-01-15"`
	Description string           `json:"description" binding:"required,max=500"`
	CategoryID  uint             `json:"category_id" binding:"required"`
}

// CreateTransaction handles the creation of a new transaction
// @Summary     Create a transaction
// @Description Record a transaction; the amount is converted to the base currency at the rate for its date
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateTransactionRequest true "Transaction details"
// @Success     201 {object} respond.Envelope{data=services.TransactionResponse} "Transaction created"
// @Failure     400 {object} respond.Envelope "Invalid input"
// @Failure     401 {object} respond.Envelope "Unauthorized"
// @Failure     404 {object} respond.Envelope "Category not found"
// @Failure     500 {object} respond.Envelope "Server error"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	date, err := parseDate("date", req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	tx, err := h.transactionService.CreateTransaction(
		c.Request.Context(),
		*req.Amount,
		req.Currency,
		date,
		req.Description,
		req.CategoryID,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Record(c.Request.Context(), auditEntry(c, services.AuditCreateTransaction, "transaction", tx.ID,
		map[string]any{
			"amount":       tx.Amount.String(),
			"currency":     tx.Currency,
			"convertedCad": tx.ConvertedCAD.String(),
			"category_id":  tx.CategoryID,
		}))

	respond.JSON(c, http.StatusCreated, tx, "Transaction created successfully")
}

// GetAllTransactions lists every transaction
// @Summary     List transactions
// @Description Get all transactions, newest first, with their category names
// @Tags        transactions
// @Produce     json
// @Success     200 {object} respond.Envelope{data=[]services.TransactionResponse} "Transactions"
// @Failure     500 {object} respond.Envelope "Server error"
// @Router      /transactions [get]
func (h *TransactionHandler) GetAllTransactions(c *gin.Context) {
	transactions, err := h.transactionService.GetAllTransactions()
	if err != nil {
		respondWithError(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, transactions, "")
}

// GetCategoryBalances reports totals per category
// @Summary     Balance by category
// @Description Get every category with its transactions and the sum of their base-currency amounts
// @Tags        transactions
// @Produce     json
// @Success     200 {object} respond.Envelope{data=[]services.CategoryBalance} "Balances"
// @Failure     500 {object} respond.Envelope "Server error"
// @Router      /transactions/balance [get]
func (h *TransactionHandler) GetCategoryBalances(c *gin.Context) {
	balances, err := h.transactionService.GetCategoryBalances()
	if err != nil {
		respondWithError(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, balances, "")
}

// GetTransactionInvoices lists the invoices linked to a transaction
// @Summary     Invoices for a transaction
// @Description Get the invoices linked to a transaction, each with its linked transactions
// @Tags        transactions
// @Produce     json
// @Param       id path int true "Transaction ID"
// @Success     200 {object} respond.Envelope{data=[]services.InvoiceResponse} "Invoices"
// @Failure     400 {object} respond.Envelope "Invalid ID"
// @Failure     404 {object} respond.Envelope "Transaction not found"
// @Failure     500 {object} respond.Envelope "Server error"
// @Router      /transactions/{id}/invoices [get]
func (h *TransactionHandler) GetTransactionInvoices(c *gin.Context) {
	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	invoices, err := h.linkService.InvoicesForTransaction(transactionID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, invoices, "")
}
