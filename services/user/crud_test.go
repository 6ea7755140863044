package user

import (
	"testing"

	"lendvault/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateUserQueuesContactResync(t *testing.T) {
	repo := newFakeUserRepo(models.User{
		ID: "u1", Email: "ada@example.com", Name: "Ada", CRMContactID: "crm-42",
	})
	dispatcher := &fakeDispatcher{}
	svc := &DefaultUserService{Repo: repo, Dispatcher: dispatcher}

	updated, err := svc.UpdateUser("u1", models.UserUpdateRequest{
		Name:    "Ada Lender",
		Company: "Ada's Bakery",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada Lender", updated.Name)
	assert.Equal(t, "Ada's Bakery", updated.Company)

	require.Len(t, dispatcher.contacts, 1)
	assert.Equal(t, "u1", dispatcher.contacts[0].UserID)
	assert.Equal(t, "crm-42", dispatcher.contacts[0].Contact.ID)
	assert.Equal(t, "Ada Lender", dispatcher.contacts[0].Contact.Name)
}

func TestUpdateUserRejectsEmptyUpdate(t *testing.T) {
	repo := newFakeUserRepo(models.User{ID: "u1"})
	svc := &DefaultUserService{Repo: repo}

	_, err := svc.UpdateUser("u1", models.UserUpdateRequest{})
	assert.Error(t, err)
}

func TestPromoteToPremium(t *testing.T) {
	repo := newFakeUserRepo(models.User{
		ID: "u1", Role: models.RoleFree, CRMContactID: "crm-42",
	})
	dispatcher := &fakeDispatcher{}
	svc := &DefaultUserService{Repo: repo, Dispatcher: dispatcher}

	require.NoError(t, svc.PromoteToPremium("u1"))

	stored, err := repo.GetByID("u1")
	require.NoError(t, err)
	assert.Equal(t, models.RolePremium, stored.Role)

	require.Len(t, dispatcher.tags, 1)
	assert.Equal(t, []string{"plan_premium"}, dispatcher.tags[0].AddTags)
	assert.Equal(t, []string{"plan_free"}, dispatcher.tags[0].RemoveTags)
}

func TestPromoteToPremiumIsIdempotent(t *testing.T) {
	repo := newFakeUserRepo(models.User{ID: "u1", Role: models.RolePremium})
	dispatcher := &fakeDispatcher{}
	svc := &DefaultUserService{Repo: repo, Dispatcher: dispatcher}

	require.NoError(t, svc.PromoteToPremium("u1"))
	assert.Empty(t, dispatcher.tags)
}

func TestPromoteToPremiumRejectsStaff(t *testing.T) {
	repo := newFakeUserRepo(models.User{ID: "u1", Role: models.RoleAdvisor})
	svc := &DefaultUserService{Repo: repo}

	assert.Error(t, svc.PromoteToPremium("u1"))
}

func TestUpdateFCMToken(t *testing.T) {
	repo := newFakeUserRepo(models.User{ID: "u1"})
	svc := &DefaultUserService{Repo: repo}

	require.NoError(t, svc.UpdateFCMToken("u1", "fcm-token"))
	stored, err := repo.GetByID("u1")
	require.NoError(t, err)
	assert.Equal(t, "fcm-token", stored.FCMToken)

	assert.Error(t, svc.UpdateFCMToken("u1", ""))
}

func TestListClientsFiltersStaff(t *testing.T) {
	repo := newFakeUserRepo(
		models.User{ID: "u1", Role: models.RoleFree},
		models.User{ID: "u2", Role: models.RolePremium},
		models.User{ID: "u3", Role: models.RoleAdvisor},
		models.User{ID: "u4", Role: models.RoleUnderwriting},
	)
	svc := &DefaultUserService{Repo: repo}

	clients, err := svc.ListClients()
	require.NoError(t, err)
	assert.Len(t, clients, 2)
	for _, c := range clients {
		assert.False(t, models.IsStaff(c.Role))
	}
}
