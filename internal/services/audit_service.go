package services

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"

	"financetracker/internal/logger"
	"financetracker/internal/models"
)

// Audit actions recorded by the mutating endpoints.
const (
	AuditCreateTransaction = "CREATE_TRANSACTION"
	AuditCreateInvoice     = "CREATE_INVOICE"
	AuditUpdateInvoice     = "UPDATE_INVOICE"
	AuditDeleteInvoice     = "DELETE_INVOICE"
	AuditSyncInvoices      = "SYNC_INVOICES"
	AuditSyncInvoice       = "SYNC_INVOICE"
	AuditLinkTransaction   = "LINK_TRANSACTION"
	AuditUnlinkTransaction = "UNLINK_TRANSACTION"
)

// AuditEntry describes one mutating request. ResourceID is zero for batch
// operations and for links that no longer exist.
type AuditEntry struct {
	Actor        string
	Action       string
	ResourceType string
	ResourceID   uint
	RequestID    string
	IPAddress    string
	Changes      map[string]any
}

type auditService struct {
	db *gorm.DB
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db}
}

// Record stores entry. The audit trail never fails a request: encoding and
// write errors are logged and dropped.
func (s *auditService) Record(ctx context.Context, entry AuditEntry) {
	log := logger.Named("audit").With(
		"action", entry.Action,
		"resource_type", entry.ResourceType,
		"resource_id", entry.ResourceID,
		"request_id", entry.RequestID,
	)

	row := models.AuditLog{
		Actor:        entry.Actor,
		Action:       entry.Action,
		ResourceType: entry.ResourceType,
		ResourceID:   entry.ResourceID,
		RequestID:    entry.RequestID,
		IPAddress:    entry.IPAddress,
	}
	if len(entry.Changes) > 0 {
		data, err := json.Marshal(entry.Changes)
		if err != nil {
			log.Warnw("audit changes could not be encoded", "error", err)
			data = []byte("{}")
		}
		row.Changes = string(data)
	}

	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		log.Errorw("failed to record audit entry", "actor", entry.Actor, "error", err)
	}
}
