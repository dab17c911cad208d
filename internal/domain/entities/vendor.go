package entities

import "time"

// VendorStatus is the account approval state set by the back office review
// flow. Only approved vendors may operate on orders or the dashboard.

type VendorStatus string

const (
	VendorStatusApproved      VendorStatus = "approved"
	VendorStatusPendingReview VendorStatus = "pending_review"
	VendorStatusRejected      VendorStatus = "rejected"
	VendorStatusSuspended     VendorStatus = "suspended"
)

// Vendor is the identity resolved from a bearer credential. Registration and
// profile management live outside this service; we only read the record.
type Vendor struct {
	ID              string       `json:"id"`
	BusinessName    string       `json:"business_name"`
	Email           string       `json:"email"`
	Status          VendorStatus `json:"status"`
	RejectionReason string       `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
}
