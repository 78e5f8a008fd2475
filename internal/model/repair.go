package model

import "time"

// Repair is one car job owned by a single customer.  A repair starts
// inactive when a customer proposes it through the calendar and becomes
// active once a mechanic confirms it.  Mechanics may also create repairs
// directly in the active state.
//
// Fields:
//  ID         – primary key identifier.
//  CarName    – car description shown on the calendar.
//  StartDate  – first day of the job.
//  EndDate    – last day of the job.
//  Active     – confirmed by a mechanic.
//  CustomerID – owning users.id.
//  MoneyCents – price charged for the job, in cents.
//  CreatedAt  – timestamp of creation.
type Repair struct {
	ID         uint64    // repairs.id
	CarName    string    // repairs.car_name
	StartDate  time.Time // repairs.start_date
	EndDate    time.Time // repairs.end_date
	Active     bool      // repairs.active
	CustomerID uint64    // repairs.customer_id
	MoneyCents int64     // repairs.money_cents
	CreatedAt  time.Time // repairs.created_at
}
