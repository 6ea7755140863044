package billing

import (
	"errors"
	"sync"
	"testing"

	"lendvault/models"
	"lendvault/services/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeInvoiceRepo is an in-memory InvoiceRepository.
type fakeInvoiceRepo struct {
	mu       sync.Mutex
	invoices map[string]*models.Invoice // keyed by invoice ID
}

func newFakeInvoiceRepo(seed ...models.Invoice) *fakeInvoiceRepo {
	r := &fakeInvoiceRepo{invoices: make(map[string]*models.Invoice)}
	for i := range seed {
		inv := seed[i]
		r.invoices[inv.InvoiceID] = &inv
	}
	return r
}

func (r *fakeInvoiceRepo) Create(inv *models.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *inv
	r.invoices[inv.InvoiceID] = &cp
	return nil
}

func (r *fakeInvoiceRepo) GetByPaymentIntentID(paymentIntentID string) (*models.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, inv := range r.invoices {
		if inv.PaymentIntentID == paymentIntentID {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeInvoiceRepo) SetStatus(invoiceID, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.invoices[invoiceID]
	if !ok {
		return errors.New("invoice not found")
	}
	inv.Status = status
	return nil
}

func (r *fakeInvoiceRepo) ListByUser(userID string) ([]models.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Invoice
	for _, inv := range r.invoices {
		if inv.UserID == userID {
			out = append(out, *inv)
		}
	}
	return out, nil
}

// fakeUserService implements user.UserService; PromoteToPremium can be made
// to fail a number of times before succeeding.
type fakeUserService struct {
	mu          sync.Mutex
	promoteFail int
	promoted    []string
}

func (s *fakeUserService) RegisterUser(reg models.UserRegistration) (*user.AuthResponse, error) {
	return nil, errors.New("not implemented")
}

func (s *fakeUserService) AuthenticateUser(email, password string) (*user.AuthResponse, error) {
	return nil, errors.New("not implemented")
}

func (s *fakeUserService) RevokeAuthToken(userID string) error { return nil }

func (s *fakeUserService) GetUserByID(userID string) (*models.User, error) {
	return &models.User{ID: userID, Role: models.RoleFree}, nil
}

func (s *fakeUserService) UpdateUser(userID string, req models.UserUpdateRequest) (*models.User, error) {
	return nil, errors.New("not implemented")
}

func (s *fakeUserService) DeleteUser(userID string) error { return nil }

func (s *fakeUserService) UpdateFCMToken(userID, token string) error { return nil }

func (s *fakeUserService) PromoteToPremium(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.promoteFail > 0 {
		s.promoteFail--
		return errors.New("connection reset")
	}
	s.promoted = append(s.promoted, userID)
	return nil
}

func (s *fakeUserService) ListClients() ([]models.User, error) { return nil, nil }

func pendingInvoice() models.Invoice {
	return models.Invoice{
		InvoiceID:       "inv-1",
		UserID:          "user-1",
		Amount:          9900,
		Currency:        "usd",
		Status:          models.InvoiceStatusPending,
		PaymentIntentID: "pi-1",
	}
}

func TestConfirmPaymentPromotesAndMarksPaid(t *testing.T) {
	invoices := newFakeInvoiceRepo(pendingInvoice())
	users := &fakeUserService{}
	svc := &DefaultBillingService{Invoices: invoices, Users: users}

	require.NoError(t, svc.ConfirmPayment("pi-1"))

	inv, err := invoices.GetByPaymentIntentID("pi-1")
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusPaid, inv.Status)
	assert.Equal(t, []string{"user-1"}, users.promoted)
}

func TestConfirmPaymentIgnoresDuplicateDeliveries(t *testing.T) {
	invoices := newFakeInvoiceRepo(pendingInvoice())
	users := &fakeUserService{}
	svc := &DefaultBillingService{Invoices: invoices, Users: users}

	require.NoError(t, svc.ConfirmPayment("pi-1"))
	require.NoError(t, svc.ConfirmPayment("pi-1"))

	assert.Equal(t, []string{"user-1"}, users.promoted)
}

func TestConfirmPaymentRetrySurvivesPromotionFailure(t *testing.T) {
	invoices := newFakeInvoiceRepo(pendingInvoice())
	users := &fakeUserService{promoteFail: 1}
	svc := &DefaultBillingService{Invoices: invoices, Users: users}

	// First delivery hits a transient promotion failure; the invoice must
	// stay pending so the redelivery replays the whole confirmation.
	require.Error(t, svc.ConfirmPayment("pi-1"))
	inv, err := invoices.GetByPaymentIntentID("pi-1")
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusPending, inv.Status)
	assert.Empty(t, users.promoted)

	require.NoError(t, svc.ConfirmPayment("pi-1"))
	inv, err = invoices.GetByPaymentIntentID("pi-1")
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusPaid, inv.Status)
	assert.Equal(t, []string{"user-1"}, users.promoted)
}

func TestConfirmPaymentUnknownIntent(t *testing.T) {
	svc := &DefaultBillingService{Invoices: newFakeInvoiceRepo(), Users: &fakeUserService{}}
	assert.Error(t, svc.ConfirmPayment("pi-unknown"))
}

func TestFailPaymentMarksPendingInvoiceFailed(t *testing.T) {
	invoices := newFakeInvoiceRepo(pendingInvoice())
	svc := &DefaultBillingService{Invoices: invoices, Users: &fakeUserService{}}

	require.NoError(t, svc.FailPayment("pi-1"))

	inv, err := invoices.GetByPaymentIntentID("pi-1")
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusFailed, inv.Status)
}

func TestFailPaymentLeavesPaidInvoiceAlone(t *testing.T) {
	paid := pendingInvoice()
	paid.Status = models.InvoiceStatusPaid
	invoices := newFakeInvoiceRepo(paid)
	svc := &DefaultBillingService{Invoices: invoices, Users: &fakeUserService{}}

	require.NoError(t, svc.FailPayment("pi-1"))

	inv, err := invoices.GetByPaymentIntentID("pi-1")
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusPaid, inv.Status)
}

func TestFailPaymentUnknownIntentIsNoop(t *testing.T) {
	svc := &DefaultBillingService{Invoices: newFakeInvoiceRepo(), Users: &fakeUserService{}}
	assert.NoError(t, svc.FailPayment("pi-unknown"))
}

func TestListInvoices(t *testing.T) {
	invoices := newFakeInvoiceRepo(pendingInvoice())
	svc := &DefaultBillingService{Invoices: invoices, Users: &fakeUserService{}}

	list, err := svc.ListInvoices("user-1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
