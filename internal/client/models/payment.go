package models

import "github.com/shopspring/decimal"

type PaymentIntent struct {
	PaymentID    string          `json:"paymentId"`
	ClientSecret string          `json:"clientSecret"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
}

type Payment struct {
	ID       string          `json:"id"`
	OrderID  string          `json:"orderId"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
	Status   string          `json:"status"`
}
