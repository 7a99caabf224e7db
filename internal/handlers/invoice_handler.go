package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "financetracker/internal/errors"
	"financetracker/internal/models"
	"financetracker/internal/respond"
	"financetracker/internal/services"
)

// InvoiceHandler handles invoice, sync and link requests.
type InvoiceHandler struct {
	invoiceService services.InvoiceServicer
	linkService    services.LinkServicer
	syncService    services.SyncServicer
	auditService   services.AuditServicer
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(
	invoiceService services.InvoiceServicer,
	linkService services.LinkServicer,
	syncService services.SyncServicer,
	auditService services.AuditServicer,
) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
		linkService:    linkService,
		syncService:    syncService,
		auditService:   auditService,
	}
}

// CreateInvoiceRequest represents the request payload for creating an invoice
type CreateInvoiceRequest struct {
	XeroInvoiceID string               `json:"xeroInvoiceId" binding:"required,max=255"`
	InvoiceNumber string               `json:"invoiceNumber" binding:"required,max=255"`
	ContactName   string               `json:"contactName" binding:"required,max=255"`
	ContactEmail  *string              `json:"contactEmail" binding:"omitempty,email"`
	SubTotal      *decimal.Decimal     `json:"subTotal" binding:"required" swaggertype:"number"`
	TaxAmount     *decimal.Decimal     `json:"taxAmount" swaggertype:"number"`
	TotalAmount   *decimal.Decimal     `json:"totalAmount" binding:"required" swaggertype:"number"`
	Currency      string               `json:"currency" binding:"omitempty,iso4217"`
	Status        models.InvoiceStatus `json:"status" binding:"omitempty,invoice_status"`
	InvoiceDate   string               `json:"invoiceDate" binding:"required" example:"2024-01-10"`
	DueDate       *string              `json:"dueDate" example:"2024-02-10"`
	PaidDate      *string              `json:"paidDate"`
	Description   *string              `json:"description"`
	Reference     *string              `json:"reference"`
	Type          models.InvoiceType   `json:"type" binding:"omitempty,invoice_type"`
}

// UpdateInvoiceRequest is a partial update. Absent keys are left unchanged;
// contactEmail, dueDate, paidDate, description and reference may be null.
type UpdateInvoiceRequest struct {
	XeroInvoiceID *string                   `json:"xeroInvoiceId" binding:"omitempty,min=1,max=255"`
	InvoiceNumber *string                   `json:"invoiceNumber" binding:"omitempty,min=1,max=255"`
	ContactName   *string                   `json:"contactName" binding:"omitempty,min=1,max=255"`
	ContactEmail  services.Nullable[string] `json:"contactEmail" swaggertype:"string"`
	SubTotal      *decimal.Decimal          `json:"subTotal" swaggertype:"number"`
	TaxAmount     *decimal.Decimal          `json:"taxAmount" swaggertype:"number"`
	TotalAmount   *decimal.Decimal          `json:"totalAmount" swaggertype:"number"`
	Currency      *string                   `json:"currency" binding:"omitempty,iso4217"`
	Status        *models.InvoiceStatus     `json:"status" binding:"omitempty,invoice_status"`
	InvoiceDate   *string                   `json:"invoiceDate"`
	DueDate       services.Nullable[string] `json:"dueDate" swaggertype:"string"`
	PaidDate      services.Nullable[string] `json:"paidDate" swaggertype:"string"`
	Description   services.Nullable[string] `json:"description" swaggertype:"string"`
	Reference     services.Nullable[string] `json:"reference" swaggertype:"string"`
	Type          *models.InvoiceType       `json:"type" binding:"omitempty,invoice_type"`
}

// LinkTransactionRequest represents the request payload for linking a transaction to an invoice
type LinkTransactionRequest struct {
	TransactionID uint             `json:"transactionId" binding:"required"`
	InvoiceID     uint             `json:"invoiceId" binding:"required"`
	Amount        *decimal.Decimal `json:"amount" swaggertype:"number"`
	Notes         *string          `json:"notes" binding:"omitempty,max=1000"`
}

// UnlinkTransactionRequest identifies the link to remove. It may be sent as
// a JSON body or as query parameters.
type UnlinkTransactionRequest struct {
	TransactionID uint `json:"transactionId" form:"transactionId" binding:"required"`
	InvoiceID     uint `json:"invoiceId" form:"invoiceId" binding:"required"`
}

// SyncInvoices pulls invoices from the accounting system
// @Summary     Sync invoices from Xero
// @Description Fetch every invoice from the accounting system and upsert it by Xero invoice ID. The sync is all-or-nothing.
// @Tags        invoices
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} respond.Envelope{data=[]services.InvoiceResponse} "Synced invoices"
// @Failure     401 {object} respond.Envelope "Unauthorized"
// @Failure     500 {object} respond.Envelope "Sync failed"
// @Router      /invoices/sync [post]
func (h *InvoiceHandler) SyncInvoices(c *gin.Context) {
	invoices, err := h.syncService.SyncAll(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Record(c.Request.Context(), auditEntry(c, services.AuditSyncInvoices, "invoice", 0,
		map[string]any{"count": len(invoices)}))

	respond.JSON(c, http.StatusOK, invoices, fmt.Sprintf("Successfully synced %d invoices from Xero", len(invoices)))
}

// SyncInvoice pulls one invoice from the accounting system
// @Summary     Sync one invoice from Xero
// @Description Fetch a single invoice by its Xero invoice ID and upsert it.
// @Tags        invoices
// @Produce     json
// @Security    BearerAuth
// @Param       xeroId path string true "Xero invoice ID"
// @Success     200 {object} respond.Envelope{data=services.InvoiceResponse} "Synced invoice"
// @Failure     401 {object} respond.Envelope "Unauthorized"
// @Failure     404 {object} respond.Envelope "Unknown to Xero"
// @Failure     500 {object} respond.Envelope "Sync failed"
// @Router      /invoices/sync/{xeroId} [post]
func (h *InvoiceHandler) SyncInvoice(c *gin.Context) {
	invoice, err := h.syncService.SyncOne(c.Request.Context(), c.Param("xeroId"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Record(c.Request.Context(), auditEntry(c, services.AuditSyncInvoice, "invoice", invoice.ID,
		map[string]any{"xero_invoice_id": invoice.XeroInvoiceID}))

	respond.JSON(c, http.StatusOK, invoice, "Invoice synced from Xero")
}

// GetAllInvoices lists every invoice
// @Summary     List invoices
// @Description Get all invoices, newest first, each with its linked transactions
// @Tags        invoices
// @Produce     json
// @Success     200 {object} respond.Envelope{data=[]services.InvoiceResponse} "Invoices"
// @Failure     500 {object} respond.Envelope "Server error"
// @Router      /invoices [get]
func (h *InvoiceHandler) GetAllInvoices(c *gin.Context) {
	invoices, err := h.invoiceService.GetAllInvoices()
	if err != nil {
		respondWithError(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, invoices, "")
}

// GetInvoiceByID returns one invoice
// @Summary     Get an invoice
// @Description Get an invoice with its linked transactions
// @Tags        invoices
// @Produce     json
// @Param       id path int true "Invoice ID"
// @Success     200 {object} respond.Envelope{data=services.InvoiceResponse} "Invoice"
// @Failure     400 {object} respond.Envelope "Invalid ID"
// @Failure     404 {object} respond.Envelope "Invoice not found"
// @Failure     500 {object} respond.Envelope "Server error"
// @Router      /invoices/{id} [get]
func (h *InvoiceHandler) GetInvoiceByID(c *gin.Context) {
	invoiceID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	invoice, err := h.invoiceService.GetInvoiceByID(invoiceID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, invoice, "")
}

// GetInvoiceByXeroID returns the stored invoice for a Xero invoice ID
// @Summary     Get an invoice by Xero ID
// @Tags        invoices
// @Produce     json
// @Param       xeroId path string true "Xero invoice ID"
// @Success     200 {object} respond.Envelope{data=services.InvoiceResponse} "Invoice"
// @Failure     404 {object} respond.Envelope "Invoice not found"
// @Failure     500 {object} respond.Envelope "Server error"
// @Router      /invoices/xero/{xeroId} [get]
func (h *InvoiceHandler) GetInvoiceByXeroID(c *gin.Context) {
	invoice, err := h.invoiceService.GetInvoiceByXeroID(c.Param("xeroId"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, invoice, "")
}

// CreateInvoice handles the creation of a new invoice
// @Summary     Create an invoice
// @Description Create an invoice manually. Currency, status and type default to the base currency, DRAFT and ACCREC.
// @Tags        invoices
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateInvoiceRequest true "Invoice details"
// @Success     201 {object} respond.Envelope{data=services.InvoiceResponse} "Invoice created"
// @Failure     400 {object} respond.Envelope "Invalid input"
// @Failure     401 {object} respond.Envelope "Unauthorized"
// @Failure     409 {object} respond.Envelope "Duplicate Xero invoice ID"
// @Failure     500 {object} respond.Envelope "Server error"
// @Router      /invoices [post]
func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	var req CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	input, err := req.toInput()
	if err != nil {
		respondWithError(c, err)
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Record(c.Request.Context(), auditEntry(c, services.AuditCreateInvoice, "invoice", invoice.ID,
		map[string]any{
			"xeroInvoiceId": invoice.XeroInvoiceID,
			"invoiceNumber": invoice.InvoiceNumber,
			"totalAmount":   invoice.TotalAmount.String(),
		}))

	respond.JSON(c, http.StatusCreated, invoice, "Invoice created successfully")
}

// UpdateInvoice applies a partial update to an invoice
// @Summary     Update an invoice
// @Description Update the supplied fields of an invoice
// @Tags        invoices
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                  true "Invoice ID"
// @Param       request body UpdateInvoiceRequest true "Fields to update"
// @Success     200 {object} respond.Envelope{data=services.InvoiceResponse} "Invoice updated"
// @Failure     400 {object} respond.Envelope "Invalid input"
// @Failure     401 {object} respond.Envelope "Unauthorized"
// @Failure     404 {object} respond.Envelope "Invoice not found"
// @Failure     409 {object} respond.Envelope "Duplicate Xero invoice ID"
// @Failure     500 {object} respond.Envelope "Server error"
// @Router      /invoices/{id} [put]
func (h *InvoiceHandler) UpdateInvoice(c *gin.Context) {
	invoiceID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	input, err := req.toInput()
	if err != nil {
		respondWithError(c, err)
		return
	}

	invoice, err := h.invoiceService.UpdateInvoice(invoiceID, input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Record(c.Request.Context(), auditEntry(c, services.AuditUpdateInvoice, "invoice", invoice.ID,
		map[string]any{"status": invoice.Status, "totalAmount": invoice.TotalAmount.String()}))

	respond.JSON(c, http.StatusOK, invoice, "Invoice updated successfully")
}

// DeleteInvoice removes an invoice and its links
// @Summary     Delete an invoice
// @Description Delete an invoice; its transaction links are removed with it
// @Tags        invoices
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Invoice ID"
// @Success     200 {object} respond.Envelope "Invoice deleted"
// @Failure     400 {object} respond.Envelope "Invalid ID"
// @Failure     401 {object} respond.Envelope "Unauthorized"
// @Failure     404 {object} respond.Envelope "Invoice not found"
// @Failure     500 {object} respond.Envelope "Server error"
// @Router      /invoices/{id} [delete]
func (h *InvoiceHandler) DeleteInvoice(c *gin.Context) {
	invoiceID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	deleted, err := h.invoiceService.DeleteInvoice(invoiceID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if !deleted {
		respondWithError(c, apperrors.ErrInvoiceNotFound)
		return
	}

	h.auditService.Record(c.Request.Context(), auditEntry(c, services.AuditDeleteInvoice, "invoice", invoiceID, nil))

	respond.JSON(c, http.StatusOK, nil, "Invoice deleted successfully")
}

// GetInvoiceTransactions lists the links of an invoice
// @Summary     Transactions for an invoice
// @Description Get the transaction links of an invoice with a summary of each transaction
// @Tags        invoices
// @Produce     json
// @Param       id path int true "Invoice ID"
// @Success     200 {object} respond.Envelope{data=[]services.LinkResponse} "Links"
// @Failure     400 {object} respond.Envelope "Invalid ID"
// @Failure     404 {object} respond.Envelope "Invoice not found"
// @Failure     500 {object} respond.Envelope "Server error"
// @Router      /invoices/{id}/transactions [get]
func (h *InvoiceHandler) GetInvoiceTransactions(c *gin.Context) {
	invoiceID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	links, err := h.linkService.LinksForInvoice(invoiceID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, links, "")
}

// LinkTransaction links a transaction to an invoice
// @Summary     Link a transaction to an invoice
// @Description Record that a transaction settles (part of) an invoice
// @Tags        invoices
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body LinkTransactionRequest true "Link details"
// @Success     201 {object} respond.Envelope{data=services.LinkResponse} "Link created"
// @Failure     400 {object} respond.Envelope "Invalid input"
// @Failure     401 {object} respond.Envelope "Unauthorized"
// @Failure     404 {object} respond.Envelope "Transaction or invoice not found"
// @Failure     409 {object} respond.Envelope "Link already exists"
// @Failure     500 {object} respond.Envelope "Server error"
// @Router      /invoices/link-transaction [post]
func (h *InvoiceHandler) LinkTransaction(c *gin.Context) {
	var req LinkTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	link, err := h.linkService.Link(req.TransactionID, req.InvoiceID, req.Amount, req.Notes)
	if err != nil {
		respondWithError(c, err)
		return
	}

	changes := map[string]any{"transactionId": link.TransactionID, "invoiceId": link.InvoiceID}
	if link.Amount.Valid {
		changes["amount"] = link.Amount.Decimal.String()
	}
	h.auditService.Record(c.Request.Context(), auditEntry(c, services.AuditLinkTransaction, "transaction_invoice", link.ID, changes))

	respond.JSON(c, http.StatusCreated, link, "Transaction linked to invoice successfully")
}

// UnlinkTransaction removes a transaction-invoice link
// @Summary     Unlink a transaction from an invoice
// @Description Remove the link between a transaction and an invoice. IDs may be sent in the body or as query parameters.
// @Tags        invoices
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request       body  UnlinkTransactionRequest false "Link to remove"
// @Param       transactionId query int                      false "Transaction ID"
// @Param       invoiceId     query int                      false "Invoice ID"
// @Success     200 {object} respond.Envelope "Link removed"
// @Failure     400 {object} respond.Envelope "Invalid input"
// @Failure     401 {object} respond.Envelope "Unauthorized"
// @Failure     404 {object} respond.Envelope "Link not found"
// @Failure     500 {object} respond.Envelope "Server error"
// @Router      /invoices/unlink-transaction [delete]
func (h *InvoiceHandler) UnlinkTransaction(c *gin.Context) {
	var req UnlinkTransactionRequest
	var err error
	if hasBody(c.Request) {
		err = c.ShouldBindJSON(&req)
	} else {
		err = c.ShouldBindQuery(&req)
	}
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Transaction ID and Invoice ID are required"))
		return
	}

	unlinked, err := h.linkService.Unlink(req.TransactionID, req.InvoiceID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if !unlinked {
		respondWithError(c, apperrors.ErrLinkNotFound)
		return
	}

	h.auditService.Record(c.Request.Context(), auditEntry(c, services.AuditUnlinkTransaction, "transaction_invoice", 0,
		map[string]any{"transactionId": req.TransactionID, "invoiceId": req.InvoiceID}))

	respond.JSON(c, http.StatusOK, nil, "Transaction unlinked from invoice successfully")
}

func (r *CreateInvoiceRequest) toInput() (services.CreateInvoiceInput, error) {
	invoiceDate, err := parseDate("invoiceDate", r.InvoiceDate)
	if err != nil {
		return services.CreateInvoiceInput{}, err
	}
	dueDate, err := parseOptionalDate("dueDate", r.DueDate)
	if err != nil {
		return services.CreateInvoiceInput{}, err
	}
	paidDate, err := parseOptionalDate("paidDate", r.PaidDate)
	if err != nil {
		return services.CreateInvoiceInput{}, err
	}

	return services.CreateInvoiceInput{
		XeroInvoiceID: r.XeroInvoiceID,
		InvoiceNumber: r.InvoiceNumber,
		ContactName:   r.ContactName,
		ContactEmail:  r.ContactEmail,
		SubTotal:      *r.SubTotal,
		TaxAmount:     r.TaxAmount,
		TotalAmount:   *r.TotalAmount,
		Currency:      r.Currency,
		Status:        r.Status,
		InvoiceDate:   invoiceDate,
		DueDate:       dueDate,
		PaidDate:      paidDate,
		Description:   r.Description,
		Reference:     r.Reference,
		Type:          r.Type,
	}, nil
}

func (r *UpdateInvoiceRequest) toInput() (services.UpdateInvoiceInput, error) {
	input := services.UpdateInvoiceInput{
		XeroInvoiceID: r.XeroInvoiceID,
		InvoiceNumber: r.InvoiceNumber,
		ContactName:   r.ContactName,
		ContactEmail:  r.ContactEmail,
		SubTotal:      r.SubTotal,
		TaxAmount:     r.TaxAmount,
		TotalAmount:   r.TotalAmount,
		Currency:      r.Currency,
		Status:        r.Status,
		Description:   r.Description,
		Reference:     r.Reference,
		Type:          r.Type,
	}

	if r.InvoiceDate != nil {
		invoiceDate, err := parseDate("invoiceDate", *r.InvoiceDate)
		if err != nil {
			return input, err
		}
		input.InvoiceDate = &invoiceDate
	}

	var err error
	if input.DueDate, err = parseNullableDate("dueDate", r.DueDate); err != nil {
		return input, err
	}
	if input.PaidDate, err = parseNullableDate("paidDate", r.PaidDate); err != nil {
		return input, err
	}
	return input, nil
}
