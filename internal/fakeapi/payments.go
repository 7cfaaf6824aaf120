package fakeapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/storefront/internal/common"
)

const (
	paymentPending   = "pending"
	paymentSucceeded = "succeeded"
)

// createPaymentIntent answers {success, data: {paymentId, clientSecret,
// amount, currency}}. A pending intent for the same order is reused.
func (s *Server) createPaymentIntent(w http.ResponseWriter, r *http.Request) {
	var in struct {
		OrderID string `json:"orderId"`
	}
	if err := decodeBody(r, &in); err != nil || in.OrderID == "" {
		fail(w, http.StatusBadRequest, "Order id is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	o := s.findOrder(w, r, in.OrderID)
	if o == nil {
		return
	}
	switch {
	case o.IsPaid:
		fail(w, http.StatusBadRequest, "Order is already paid")
		return
	case o.Status == statusCancelled:
		fail(w, http.StatusBadRequest, "Order is cancelled")
		return
	}

	p := s.paymentFor(o.ID)
	if p == nil || p.Status != paymentPending {
		secret, err := common.MakeRandHexString(16)
		if err != nil {
			fail(w, http.StatusInternalServerError, "Server error")
			return
		}
		p = &payment{
			ID:       uuid.NewString(),
			OrderID:  o.ID,
			UserID:   o.UserID,
			Amount:   o.Total,
			Currency: "usd",
			Status:   paymentPending,
			Secret:   secret,
		}
		s.payments[p.ID] = p
	}
	reply(w, http.StatusOK, canonical, map[string]any{
		"paymentId":    p.ID,
		"clientSecret": p.ID + "_secret_" + p.Secret,
		"amount":       p.Amount,
		"currency":     p.Currency,
	}, "")
}

// confirmPayment marks the payment and its order as paid.
func (s *Server) confirmPayment(w http.ResponseWriter, r *http.Request) {
	var in struct {
		PaymentID string `json:"paymentId"`
	}
	if err := decodeBody(r, &in); err != nil || in.PaymentID == "" {
		fail(w, http.StatusBadRequest, "Payment id is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, found := s.payments[in.PaymentID]
	if !found {
		fail(w, http.StatusNotFound, "Payment not found")
		return
	}
	o := s.findOrder(w, r, p.OrderID)
	if o == nil {
		return
	}
	if o.Status == statusCancelled {
		fail(w, http.StatusBadRequest, "Order is cancelled")
		return
	}
	p.Status = paymentSucceeded
	o.IsPaid = true
	if o.Status == statusPending {
		o.Status = statusProcessing
	}
	reply(w, http.StatusOK, canonical, map[string]any{"payment": p}, "Payment confirmed")
}

func (s *Server) getPayment(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o := s.findOrder(w, r, chi.URLParam(r, "orderId"))
	if o == nil {
		return
	}
	p := s.paymentFor(o.ID)
	if p == nil {
		fail(w, http.StatusNotFound, "Payment not found")
		return
	}
	reply(w, http.StatusOK, canonical, map[string]any{"payment": p}, "")
}

// paymentFor prefers a succeeded payment over pending ones.
func (s *Server) paymentFor(orderID string) *payment {
	var found *payment
	for _, p := range s.payments {
		if p.OrderID != orderID {
			continue
		}
		if found == nil || p.Status == paymentSucceeded {
			found = p
		}
	}
	return found
}
