package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	apperrors "financetracker/internal/errors"
	"financetracker/internal/logger"
	"financetracker/internal/models"
	"financetracker/internal/xero"
)

// syncService pulls invoices from the accounting system and upserts them by
// their external id.
type syncService struct {
	db           *gorm.DB
	source       xero.InvoiceSource
	baseCurrency string
}

// NewSyncService creates a new SyncServicer reading from source. Records
// without a currency are stored in baseCurrency.
func NewSyncService(db *gorm.DB, source xero.InvoiceSource, baseCurrency string) SyncServicer {
	return &syncService{db: db, source: source, baseCurrency: strings.ToUpper(baseCurrency)}
}

// SyncAll fetches every invoice from the source and upserts it. The batch is
// all-or-nothing: every record is mapped before any write, and the writes share
// one database transaction, so a failure leaves the store untouched.
// The synced invoices are returned in source order.
func (s *syncService) SyncAll(ctx context.Context) ([]InvoiceResponse, error) {
	log := logger.Named("invoice-sync")

	records, err := s.source.FetchInvoices(ctx)
	if err != nil {
		log.Errorw("failed to fetch invoices", "error", err)
		return nil, apperrors.Wrap(apperrors.ErrInvoiceSyncFailed, err)
	}

	mapped := make([]models.Invoice, len(records))
	for i := range records {
		inv, err := xero.ToInvoice(records[i], s.baseCurrency)
		if err != nil {
			log.Errorw("failed to map invoice", "index", i, "error", err)
			return nil, apperrors.Wrap(apperrors.ErrInvoiceSyncFailed, err)
		}
		mapped[i] = inv
	}

	created, updated := 0, 0
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range mapped {
			isNew, err := upsertInvoice(tx, &mapped[i])
			if err != nil {
				return fmt.Errorf("upserting %s: %w", mapped[i].XeroInvoiceID, err)
			}
			if isNew {
				created++
			} else {
				updated++
			}
		}
		return nil
	})
	if err != nil {
		log.Errorw("invoice sync rolled back", "error", err)
		return nil, apperrors.Wrap(apperrors.ErrInvoiceSyncFailed, err)
	}

	log.Infow("invoice sync complete", "fetched", len(records), "created", created, "updated", updated)

	result, err := buildInvoiceResponses(s.db, mapped)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return result, nil
}

// SyncOne fetches a single invoice by its Xero id and upserts it. An id the
// source does not know yields INVOICE_NOT_FOUND.
func (s *syncService) SyncOne(ctx context.Context, xeroInvoiceID string) (*InvoiceResponse, error) {
	log := logger.Named("invoice-sync")

	record, err := s.source.FetchInvoice(ctx, xeroInvoiceID)
	if err != nil {
		log.Errorw("failed to fetch invoice", "xero_invoice_id", xeroInvoiceID, "error", err)
		return nil, apperrors.Wrap(apperrors.ErrInvoiceSyncFailed, err)
	}
	if record == nil {
		return nil, apperrors.ErrInvoiceNotFound
	}

	inv, err := xero.ToInvoice(*record, s.baseCurrency)
	if err != nil {
		log.Errorw("failed to map invoice", "xero_invoice_id", xeroInvoiceID, "error", err)
		return nil, apperrors.Wrap(apperrors.ErrInvoiceSyncFailed, err)
	}

	var isNew bool
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var txErr error
		isNew, txErr = upsertInvoice(tx, &inv)
		return txErr
	})
	if err != nil {
		log.Errorw("invoice upsert failed", "xero_invoice_id", xeroInvoiceID, "error", err)
		return nil, apperrors.Wrap(apperrors.ErrInvoiceSyncFailed, err)
	}
	log.Infow("invoice synced", "xero_invoice_id", xeroInvoiceID, "created", isNew)

	result, err := buildInvoiceResponses(s.db, []models.Invoice{inv})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &result[0], nil
}

// upsertInvoice inserts inv, or overwrites every mapped field of the existing
// invoice with the same external id. inv receives the stored row's identity.
func upsertInvoice(tx *gorm.DB, inv *models.Invoice) (bool, error) {
	var existing models.Invoice
	err := tx.Where("xero_invoice_id = ?", inv.XeroInvoiceID).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return true, tx.Create(inv).Error
	case err != nil:
		return false, err
	}

	inv.ID = existing.ID
	inv.CreatedAt = existing.CreatedAt
	return false, tx.Save(inv).Error
}
