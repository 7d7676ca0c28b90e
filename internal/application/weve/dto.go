package weve

import "time"

// SessionView is the caller-facing projection of the active Weve session.
// The token itself is never exposed outside the subsystem.
type SessionView struct {
	UserID    int64     `json:"userId"`
	UserName  string    `json:"userName"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// SyncResult summarizes one reconciliation run. It is always fully
// constructed, even when the run failed outright.
type SyncResult struct {
	Success         bool     `json:"success"`
	AlreadyRunning  bool     `json:"-"`
	ProductsAdded   int      `json:"productsAdded"`
	ProductsUpdated int      `json:"productsUpdated"`
	ProductsSkipped int      `json:"productsSkipped"`
	Message         string   `json:"message,omitempty"`
	Errors          []string `json:"errors,omitempty"`
}

// Processed returns the number of products the run touched
func (r *SyncResult) Processed() int {
	return r.ProductsAdded + r.ProductsUpdated
}

// SyncStatus is a point-in-time read of the reconciliation state
type SyncStatus struct {
	InProgress   bool       `json:"inProgress"`
	LastSyncTime *time.Time `json:"lastSyncTime,omitempty"`
}

// OrderPushResult is the outcome of forwarding one order to Weve.
// Skipped marks a policy exclusion (ineligible order type), which is
// neither a success nor a failure.
type OrderPushResult struct {
	Success     bool   `json:"success"`
	Skipped     bool   `json:"skipped,omitempty"`
	WeveOrderID string `json:"weveOrderId,omitempty"`
	Message     string `json:"message,omitempty"`
}
