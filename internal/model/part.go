package model

import "time"

// Part describes a spare part kept in the shop storage.  Parts are
// identified to the outside world by their OEM number and the QR code
// sticker on the shelf; the name is unique within the shop.
//
// Fields:
//  ID         – primary key identifier.
//  Name       – unique human-friendly part name.
//  AmountLeft – units currently on the shelf.
//  EngineType – engine family the part fits.
//  PriceCents – unit price in cents.
//  NrOEM      – original equipment manufacturer number.
//  QRCode     – code printed on the storage sticker.
//  CreatedAt  – timestamp of creation.
type Part struct {
	ID         uint64    // parts.id
	Name       string    // parts.name
	AmountLeft int       // parts.amount_left
	EngineType string    // parts.engine_type
	PriceCents int64     // parts.price_cents
	NrOEM      string    // parts.nr_oem
	QRCode     string    // parts.qr_code
	CreatedAt  time.Time // parts.created_at
}
