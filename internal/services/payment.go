package services

import (
	"fmt"
	"log"
	"time"

	"github.com/fuzzyshak/narah/internal/models"
	"github.com/fuzzyshak/narah/internal/utils"
)

// PaymentService processes checkout payments.
type PaymentService interface {
	ProcessPayment(amountFils int64, method models.PaymentMethod, billingEmail string) (*PaymentResult, error)
}

// PaymentResult describes a settled payment.
type PaymentResult struct {
	PaymentID   string    `json:"payment_id"`
	Status      string    `json:"status"`
	AmountFils  int64     `json:"amount_fils"`
	ProcessedAt time.Time `json:"processed_at"`
}

// MockPaymentService simulates a payment gateway. It sleeps for the
// configured processing delay and always succeeds. "Pay at venue" checkouts
// skip the gateway entirely.
type MockPaymentService struct {
	ProcessingDelay time.Duration
}

// NewMockPaymentService creates a simulated payment service with the
// original's two-second processing delay.
func NewMockPaymentService() *MockPaymentService {
	return &MockPaymentService{ProcessingDelay: 2 * time.Second}
}

func (s *MockPaymentService) ProcessPayment(amountFils int64, method models.PaymentMethod, billingEmail string) (*PaymentResult, error) {
	now := time.Now()

	if method != models.PaymentMethodCard {
		// Nothing to settle now; the venue collects on arrival.
		return &PaymentResult{
			PaymentID:   fmt.Sprintf("venue_%d", now.UnixNano()),
			Status:      "deferred",
			AmountFils:  amountFils,
			ProcessedAt: now,
		}, nil
	}

	if s.ProcessingDelay > 0 {
		time.Sleep(s.ProcessingDelay)
	}

	log.Printf("mock payment: charged %s to %s", utils.FormatFils(amountFils), billingEmail)

	return &PaymentResult{
		PaymentID:   fmt.Sprintf("mock_pay_%d", now.UnixNano()),
		Status:      "success",
		AmountFils:  amountFils,
		ProcessedAt: time.Now(),
	}, nil
}
