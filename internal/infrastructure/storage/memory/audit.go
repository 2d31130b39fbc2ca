package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	appctx "foodfinder/internal/core/context"
	"foodfinder/internal/core/id"
	"foodfinder/internal/domain/catalog"
)

var (
	_ catalog.Auditor     = (*AuditLog)(nil)
	_ catalog.AuditReader = (*AuditLog)(nil)
)

// AuditLog keeps administrative audit entries in memory.
type AuditLog struct {
	mu      sync.RWMutex
	entries []catalog.AuditRecord
}

// NewAuditLog creates an empty in-memory audit log.
func NewAuditLog() *AuditLog {
	return &AuditLog{}
}

// Record implements catalog.Auditor.
func (l *AuditLog) Record(ctx context.Context, entity string, entityID id.ID, action string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal audit payload: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, catalog.AuditRecord{
		ID:        id.New(),
		Entity:    entity,
		EntityID:  entityID,
		Action:    action,
		UserID:    appctx.GetUserID(ctx),
		Payload:   raw,
		CreatedAt: time.Now().UTC(),
	})
	return nil
}

// EntityHistory implements catalog.AuditReader, newest first.
func (l *AuditLog) EntityHistory(_ context.Context, entity string, entityID id.ID, limit int) ([]catalog.AuditRecord, error) {
	if limit <= 0 {
		limit = 100
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []catalog.AuditRecord
	for i := len(l.entries) - 1; i >= 0 && len(out) < limit; i-- {
		e := l.entries[i]
		if e.Entity == entity && e.EntityID == entityID {
			out = append(out, e)
		}
	}
	return out, nil
}
