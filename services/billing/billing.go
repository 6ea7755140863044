// File: lendvault/services/billing/billing.go
package billing

import (
	"fmt"
	"time"

	billingRepo "lendvault/database/repository/billing"
	"lendvault/config"
	"lendvault/models"
	"lendvault/services/user"
	"lendvault/utils"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// BillingService exposes the premium upgrade flow.
type BillingService interface {
	// CreateUpgradeIntent opens a Stripe payment intent for the premium plan
	// and records a pending invoice. Returns the client secret.
	CreateUpgradeIntent(userID string) (*UpgradeIntent, error)
	// ConfirmPayment marks the invoice for the given payment intent paid and
	// promotes the user. Idempotent across duplicate webhook deliveries.
	ConfirmPayment(paymentIntentID string) error
	// FailPayment marks the invoice for the given payment intent failed.
	FailPayment(paymentIntentID string) error
	// ListInvoices retrieves the user's payment history.
	ListInvoices(userID string) ([]models.Invoice, error)
}

// UpgradeIntent is returned to the client to complete payment.
type UpgradeIntent struct {
	InvoiceID    string `json:"invoiceId"`
	ClientSecret string `json:"clientSecret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

// DefaultBillingService is the production implementation.
type DefaultBillingService struct {
	Invoices billingRepo.InvoiceRepository
	Users    user.UserService
}

// CreateUpgradeIntent opens a Stripe payment intent for the premium plan.
func (s *DefaultBillingService) CreateUpgradeIntent(userID string) (*UpgradeIntent, error) {
	usr, err := s.Users.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	if usr.Role == models.RolePremium {
		return nil, fmt.Errorf("account is already premium")
	}
	if models.IsStaff(usr.Role) {
		return nil, fmt.Errorf("staff accounts cannot be upgraded")
	}

	amount := config.AppConfig.PremiumPlanAmount
	currency := config.AppConfig.PremiumPlanCurrency

	params := &stripe.PaymentIntentParams{
		Amount:       stripe.Int64(amount),
		Currency:     stripe.String(currency),
		ReceiptEmail: stripe.String(usr.Email),
	}
	params.AddMetadata("user_id", usr.ID)
	params.AddMetadata("plan", "premium")

	pi, err := paymentintent.New(params)
	if err != nil {
		utils.GetLogger().Error("Stripe payment intent creation failed",
			zap.String("userID", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to start payment: %w", err)
	}

	inv := &models.Invoice{
		InvoiceID:       uuid.New().String(),
		UserID:          usr.ID,
		Amount:          amount,
		Currency:        currency,
		Status:          models.InvoiceStatusPending,
		PaymentIntentID: pi.ID,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	if err := s.Invoices.Create(inv); err != nil {
		return nil, fmt.Errorf("failed to record invoice: %w", err)
	}

	return &UpgradeIntent{
		InvoiceID:    inv.InvoiceID,
		ClientSecret: pi.ClientSecret,
		Amount:       amount,
		Currency:     currency,
	}, nil
}

// ConfirmPayment marks the invoice paid and promotes the user to premium.
func (s *DefaultBillingService) ConfirmPayment(paymentIntentID string) error {
	inv, err := s.Invoices.GetByPaymentIntentID(paymentIntentID)
	if err != nil {
		return err
	}
	if inv == nil {
		return fmt.Errorf("no invoice for payment intent %s", paymentIntentID)
	}
	if inv.Status == models.InvoiceStatusPaid {
		return nil
	}

	// Promotion runs before the invoice flips to paid: the invoice stays
	// pending on a promotion failure, so the webhook retry replays both
	// steps. PromoteToPremium is idempotent, a re-run after a partial
	// failure is safe.
	if err := s.Users.PromoteToPremium(inv.UserID); err != nil {
		utils.GetLogger().Error("Failed to promote user after payment",
			zap.String("userID", inv.UserID), zap.Error(err))
		return err
	}
	if err := s.Invoices.SetStatus(inv.InvoiceID, models.InvoiceStatusPaid); err != nil {
		return err
	}

	utils.GetLogger().Info("Premium upgrade confirmed",
		zap.String("userID", inv.UserID), zap.String("invoiceID", inv.InvoiceID))
	return nil
}

// FailPayment marks the invoice for the given payment intent failed.
func (s *DefaultBillingService) FailPayment(paymentIntentID string) error {
	inv, err := s.Invoices.GetByPaymentIntentID(paymentIntentID)
	if err != nil {
		return err
	}
	if inv == nil || inv.Status != models.InvoiceStatusPending {
		return nil
	}
	return s.Invoices.SetStatus(inv.InvoiceID, models.InvoiceStatusFailed)
}

// ListInvoices retrieves the user's payment history.
func (s *DefaultBillingService) ListInvoices(userID string) ([]models.Invoice, error) {
	return s.Invoices.ListByUser(userID)
}
