package repositories

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"
)

var payoutCols = []string{
	"id", "freelancer_id", "amount", "payment_method", "payment_details",
	"status", "admin_notes", "created_at", "updated_at",
}

func TestGetPayoutByID_NullAdminNotes(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	repo := &PayoutRepository{DB: openRowDB(payoutCols,
		[]driver.Value{
			"po1", "f1", 200.0, "bank_transfer", []byte(`{"iban":"KZ00TEST"}`),
			"pending", nil, now, now,
		},
	)}

	p, err := repo.GetByID(context.Background(), "po1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if p.AdminNotes != "" {
		t.Errorf("admin notes = %q, want empty for an unreviewed request", p.AdminNotes)
	}
	if string(p.PaymentDetails) != `{"iban":"KZ00TEST"}` {
		t.Errorf("payment details = %s", p.PaymentDetails)
	}
}

func TestGetPayoutsByFreelancerID_NullAdminNotes(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	repo := &PayoutRepository{DB: openRowDB(payoutCols,
		[]driver.Value{
			"po1", "f1", 200.0, "bank_transfer", []byte(`{}`),
			"pending", nil, now, now,
		},
		[]driver.Value{
			"po2", "f1", 80.0, "paypal", []byte(`{}`),
			"rejected", "details do not match the account holder", now, now,
		},
	)}

	payouts, err := repo.GetByFreelancerID(context.Background(), "f1")
	if err != nil {
		t.Fatalf("GetByFreelancerID: %v", err)
	}
	if len(payouts) != 2 {
		t.Fatalf("got %d payouts, want 2", len(payouts))
	}
	if payouts[0].AdminNotes != "" {
		t.Errorf("pending payout notes = %q, want empty", payouts[0].AdminNotes)
	}
	if payouts[1].AdminNotes != "details do not match the account holder" {
		t.Errorf("rejected payout notes = %q", payouts[1].AdminNotes)
	}
}
