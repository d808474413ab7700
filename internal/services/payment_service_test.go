package services

import (
	"context"
	"database/sql"
	"net/http"
	"testing"
	"time"

	"github.com/gymdesk/gymdesk/internal/domain/member"
	"github.com/gymdesk/gymdesk/internal/domain/payment"
	"github.com/gymdesk/gymdesk/internal/repository/postgres"
	"github.com/gymdesk/gymdesk/internal/testutil"
)

func TestPaymentService_CreateForcesPending(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewPaymentService(postgres.NewPaymentRepository(db), testLogger())
	ctx := context.Background()

	memberID := seedTestMember(t, db)

	id, err := svc.Create(ctx, &payment.Payment{
		MemberID: memberID,
		Amount:   1500,
		Method:   payment.MethodGCash,
		// Callers can't smuggle in a pre-approved payment.
		Status: payment.StatusApproved,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	p, err := svc.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if p.Status != payment.StatusPending {
		t.Errorf("Status = %q, want pending", p.Status)
	}
}

func TestPaymentService_CreateValidation(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewPaymentService(postgres.NewPaymentRepository(db), testLogger())
	ctx := context.Background()

	tests := []struct {
		name string
		p    payment.Payment
	}{
		{"missing member", payment.Payment{Amount: 100, Method: payment.MethodCash}},
		{"zero amount", payment.Payment{MemberID: 1, Method: payment.MethodCash}},
		{"negative amount", payment.Payment{MemberID: 1, Amount: -50, Method: payment.MethodCash}},
		{"bad method", payment.Payment{MemberID: 1, Amount: 100, Method: "barter"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Create(ctx, &tt.p); err == nil {
				t.Error("Create() accepted an invalid payment")
			}
		})
	}
}

func TestPaymentService_UpdateStatus(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewPaymentService(postgres.NewPaymentRepository(db), testLogger())
	ctx := context.Background()

	memberID := seedTestMember(t, db)
	id, err := svc.Create(ctx, &payment.Payment{
		MemberID: memberID, Amount: 1500, Method: payment.MethodCash,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := svc.UpdateStatus(ctx, id, "cancelled"); err == nil {
		t.Error("UpdateStatus() accepted a status outside approved/rejected")
	}

	if err := svc.UpdateStatus(ctx, id, payment.StatusApproved); err != nil {
		t.Fatalf("UpdateStatus(approved) error = %v", err)
	}

	// The transition is one-way.
	err = svc.UpdateStatus(ctx, id, payment.StatusRejected)
	if err == nil {
		t.Fatal("UpdateStatus() re-transitioned a settled payment")
	}
	if statusCode(t, err) != http.StatusConflict {
		t.Errorf("status = %d, want 409", statusCode(t, err))
	}

	p, err := svc.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if p.Status != payment.StatusApproved {
		t.Errorf("Status = %q, want approved", p.Status)
	}
}

func seedTestMember(t *testing.T, db *sql.DB) int64 {
	t.Helper()
	res, err := db.Exec(`
		INSERT INTO members (full_name, email, status, joined_at)
		VALUES ('Ana Cruz', 'ana@example.com', ?, ?)
	`, member.StatusActive, time.Now().Format(time.RFC3339))
	if err != nil {
		t.Fatalf("failed to seed member: %v", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("failed to get member id: %v", err)
	}
	return id
}
