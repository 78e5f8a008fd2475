// Package queue defines message payloads exchanged over the message broker.
package queue

// RepairConfirmedEvent is published when a mechanic confirms a repair,
// either by creating it active or by toggling a customer proposal to
// active.  It carries enough information for downstream consumers to log
// or notify without querying the primary database.
type RepairConfirmedEvent struct {
	RepairID    uint64 `json:"repair_id"`
	CustomerID  uint64 `json:"customer_id"`
	Customer    string `json:"customer"`
	CarName     string `json:"car_name"`
	StartsAt    string `json:"starts_at"`
	EndsAt      string `json:"ends_at"`
	MoneyCents  int64  `json:"money_cents"`
	ConfirmedAt string `json:"confirmed_at"`
}
