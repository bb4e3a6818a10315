package domain

import (
	"testing"
	"time"
)

func TestResolveStatus(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		inv  Invoice
		want Status
	}{
		{
			name: "unpaid before due date",
			inv:  Invoice{DueDate: now.Add(48 * time.Hour).Unix()},
			want: StatusPending,
		},
		{
			name: "unpaid after due date",
			inv:  Invoice{DueDate: now.Add(-time.Hour).Unix()},
			want: StatusExpired,
		},
		{
			name: "exactly at due date is still pending",
			inv:  Invoice{DueDate: now.Unix()},
			want: StatusPending,
		},
		{
			name: "paid before due date",
			inv:  Invoice{IsPaid: true, DueDate: now.Add(48 * time.Hour).Unix()},
			want: StatusPaid,
		},
		{
			name: "paid wins over expired",
			inv:  Invoice{IsPaid: true, DueDate: now.Add(-48 * time.Hour).Unix()},
			want: StatusPaid,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := ResolveStatus(tc.inv, now); got != tc.want {
				t.Fatalf("ResolveStatus = %q, want %q", got, tc.want)
			}
		})
	}
}
