package request

import (
	"time"

	"github.com/google/uuid"
)

type CreateListingRequest struct {
	Asset              string `json:"asset" binding:"required"`
	MaxDurationSeconds int64  `json:"maxDurationSeconds" binding:"required,gt=0"`
	DailyRateUnits     int64  `json:"dailyRateUnits" binding:"required,gt=0"`
	ExtensionsAllowed  bool   `json:"extensionsAllowed"`
}

func (r CreateListingRequest) MaxDuration() time.Duration {
	return time.Duration(r.MaxDurationSeconds) * time.Second
}

type RentRequest struct {
	Asset           string `json:"asset" binding:"required"`
	DurationSeconds int64  `json:"durationSeconds" binding:"required,gt=0"`
	PaymentUnits    int64  `json:"paymentUnits" binding:"required,gt=0"`
}

func (r RentRequest) Duration() time.Duration {
	return time.Duration(r.DurationSeconds) * time.Second
}

type TransferReceiptRequest struct {
	Asset string    `json:"asset" binding:"required"`
	To    uuid.UUID `json:"to" binding:"required"`
}

type CreateOfferRequest struct {
	Asset       string    `json:"asset" binding:"required"`
	ProposedEnd time.Time `json:"proposedEnd" binding:"required"`
	PriceUnits  int64     `json:"priceUnits" binding:"required,gt=0"`
}

type AcceptOfferRequest struct {
	Asset        string `json:"asset" binding:"required"`
	PaymentUnits int64  `json:"paymentUnits"`
}

type SetFeeRequest struct {
	Recipient       uuid.UUID `json:"recipient" binding:"required"`
	RateBasisPoints int32     `json:"rateBasisPoints"`
}
