package service

import (
	"context"
	"testing"

	"clinicbook/internal/domain"

	"github.com/google/uuid"
)

func TestAuditLogAsyncPersists(t *testing.T) {
	svc, repo := newTestAuditService()

	userID := uuid.New()
	for i := 0; i < 3; i++ {
		svc.LogAsync(context.Background(), AuditEntry{
			UserID:       userID,
			UserRole:     "patient",
			Action:       "create",
			ResourceType: "appointment",
			ResourceID:   uuid.NewString(),
		})
	}

	// Shutdown drains the buffer before returning.
	svc.Shutdown()

	repo.mu.Lock()
	defer repo.mu.Unlock()
	if len(repo.entries) != 3 {
		t.Fatalf("persisted entries = %d, want 3", len(repo.entries))
	}
	for _, e := range repo.entries {
		if e.UserID != userID {
			t.Errorf("entry user = %v, want %v", e.UserID, userID)
		}
		if e.Action != domain.ActionCreate {
			t.Errorf("entry action = %q, want create", e.Action)
		}
	}
}
