package user

import (
	"errors"
	"testing"

	"lendvault/models"
	"lendvault/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRegisterUserCreatesFreeAccount(t *testing.T) {
	repo := newFakeUserRepo()
	crmClient := &fakeCRMClient{contactID: "crm-42"}
	dispatcher := &fakeDispatcher{}
	svc := &DefaultUserService{Repo: repo, CRM: crmClient, Dispatcher: dispatcher}

	resp, err := svc.RegisterUser(models.UserRegistration{
		Name:     "Ada Lender",
		Email:    "ada@example.com",
		Password: "sekret123",
		Company:  "Ada's Bakery",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, models.RoleFree, resp.Role)

	stored, err := repo.GetByID(resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "crm-42", stored.CRMContactID)
	assert.Equal(t, utils.HashToken(resp.Token), stored.TokenHash)
	assert.NotEqual(t, "sekret123", stored.PasswordHash)

	require.Len(t, crmClient.upserts, 1)
	assert.Equal(t, "ada@example.com", crmClient.upserts[0].Email)

	require.Len(t, dispatcher.tags, 1)
	assert.Equal(t, "crm-42", dispatcher.tags[0].ContactID)
	assert.ElementsMatch(t, []string{"client", "plan_free"}, dispatcher.tags[0].AddTags)
}

func TestRegisterUserToleratesCRMOutage(t *testing.T) {
	repo := newFakeUserRepo()
	crmClient := &fakeCRMClient{upsertErr: errors.New("crm down")}
	dispatcher := &fakeDispatcher{}
	svc := &DefaultUserService{Repo: repo, CRM: crmClient, Dispatcher: dispatcher}

	resp, err := svc.RegisterUser(models.UserRegistration{
		Name:     "Ada Lender",
		Email:    "ada@example.com",
		Password: "sekret123",
	})
	require.NoError(t, err)

	stored, err := repo.GetByID(resp.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.CRMContactID)
	// No contact id means no tagging to queue.
	assert.Empty(t, dispatcher.tags)
}

func TestRegisterUserRejectsDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo(models.User{ID: "u1", Email: "ada@example.com"})
	svc := &DefaultUserService{Repo: repo}

	_, err := svc.RegisterUser(models.UserRegistration{
		Name:     "Ada Lender",
		Email:    "ada@example.com",
		Password: "sekret123",
	})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestRegisterUserRejectsWeakPasswords(t *testing.T) {
	svc := &DefaultUserService{Repo: newFakeUserRepo()}

	for _, password := range []string{"short1", "allletters", "12345678"} {
		_, err := svc.RegisterUser(models.UserRegistration{
			Name:     "Ada Lender",
			Email:    "ada@example.com",
			Password: password,
		})
		assert.Error(t, err, "password %q should be rejected", password)
	}
}

func TestAuthenticateUserRotatesToken(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("sekret123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	repo := newFakeUserRepo(models.User{
		ID: "u1", Email: "ada@example.com", Role: models.RoleFree,
		PasswordHash: string(hash), TokenHash: "old-hash",
	})
	svc := &DefaultUserService{Repo: repo}

	resp, err := svc.AuthenticateUser("ada@example.com", "sekret123")
	require.NoError(t, err)
	assert.Equal(t, "u1", resp.ID)

	stored, err := repo.GetByID("u1")
	require.NoError(t, err)
	assert.Equal(t, utils.HashToken(resp.Token), stored.TokenHash)
	assert.NotEqual(t, "old-hash", stored.TokenHash)
}

func TestAuthenticateUserRejectsBadCredentials(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("sekret123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	repo := newFakeUserRepo(models.User{
		ID: "u1", Email: "ada@example.com", PasswordHash: string(hash),
	})
	svc := &DefaultUserService{Repo: repo}

	_, err = svc.AuthenticateUser("ada@example.com", "wrongpass1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.AuthenticateUser("nobody@example.com", "sekret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRevokeAuthTokenClearsHash(t *testing.T) {
	repo := newFakeUserRepo(models.User{ID: "u1", TokenHash: "hash"})
	svc := &DefaultUserService{Repo: repo}

	require.NoError(t, svc.RevokeAuthToken("u1"))

	stored, err := repo.GetByID("u1")
	require.NoError(t, err)
	assert.Empty(t, stored.TokenHash)
}
