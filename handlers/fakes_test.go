package handlers

import (
	"context"
	"errors"

	"lendvault/models"
	"lendvault/services/user"

	"go.mongodb.org/mongo-driver/bson"
)

// fakeUserService implements user.UserService for handler tests.
type fakeUserService struct {
	users map[string]*models.User
}

func newFakeUserService(seed ...models.User) *fakeUserService {
	s := &fakeUserService{users: make(map[string]*models.User)}
	for i := range seed {
		u := seed[i]
		s.users[u.ID] = &u
	}
	return s
}

func (s *fakeUserService) RegisterUser(reg models.UserRegistration) (*user.AuthResponse, error) {
	return &user.AuthResponse{ID: "new-user", Token: "token", Email: reg.Email, Role: models.RoleFree}, nil
}

func (s *fakeUserService) AuthenticateUser(email, password string) (*user.AuthResponse, error) {
	return nil, user.ErrInvalidCredentials
}

func (s *fakeUserService) RevokeAuthToken(userID string) error { return nil }

func (s *fakeUserService) GetUserByID(userID string) (*models.User, error) {
	u, ok := s.users[userID]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

func (s *fakeUserService) UpdateUser(userID string, req models.UserUpdateRequest) (*models.User, error) {
	return s.GetUserByID(userID)
}

func (s *fakeUserService) DeleteUser(userID string) error { return nil }

func (s *fakeUserService) UpdateFCMToken(userID, token string) error { return nil }

func (s *fakeUserService) PromoteToPremium(userID string) error { return nil }

func (s *fakeUserService) ListClients() ([]models.User, error) {
	var out []models.User
	for _, u := range s.users {
		if !models.IsStaff(u.Role) {
			out = append(out, *u)
		}
	}
	return out, nil
}

// fakeVaultService implements vault.VaultService for handler tests.
type fakeVaultService struct {
	items         []models.VaultItem
	reconcileErr  error
	reconciled    []string
	reconciledFor string
	result        *models.ReconcileResult
}

func (s *fakeVaultService) ListVault(ctx context.Context, userID string) ([]models.VaultItem, error) {
	return s.items, nil
}

func (s *fakeVaultService) SaveUpload(ctx context.Context, usr *models.User, code, localFilePath, fileName string) (*models.VaultItem, error) {
	return &models.VaultItem{Code: code, Status: models.DocumentStatusUploaded, FileName: fileName}, nil
}

func (s *fakeVaultService) DownloadURL(ctx context.Context, userID, code string) (string, error) {
	return "https://files.example.com/" + code, nil
}

func (s *fakeVaultService) ReconcileTags(ctx context.Context, usr *models.User, tags []string) (*models.ReconcileResult, error) {
	if s.reconcileErr != nil {
		return nil, s.reconcileErr
	}
	s.reconciled = tags
	s.reconciledFor = usr.ID
	if s.result != nil {
		return s.result, nil
	}
	return &models.ReconcileResult{Activated: []string{}, Deactivated: []string{}, CreatedDefinitions: []string{}}, nil
}

func (s *fakeVaultService) ListRequirements() ([]models.RequiredDocument, error) { return nil, nil }

func (s *fakeVaultService) CreateRequirement(doc *models.RequiredDocument) error { return nil }

func (s *fakeVaultService) RenameRequirement(code, label string) error { return nil }

func (s *fakeVaultService) EnsureCoreRequirements() error { return nil }

// stubUserRepo implements userRepo.UserRepository over a fixed user set.
type stubUserRepo struct {
	users []*models.User
}

func (r *stubUserRepo) GetByID(id string) (*models.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, errors.New("user not found")
}

func (r *stubUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *stubUserRepo) GetByCRMContactID(contactID string) (*models.User, error) {
	for _, u := range r.users {
		if u.CRMContactID == contactID {
			return u, nil
		}
	}
	return nil, nil
}

func (r *stubUserRepo) Create(u *models.User) error { return nil }

func (r *stubUserRepo) UpdateSetDocument(id string, updateDoc bson.M) error { return nil }

func (r *stubUserRepo) Delete(id string) error { return nil }

func (r *stubUserRepo) GetByIDWithProjection(id string, projection bson.M) (*models.User, error) {
	return r.GetByID(id)
}

func (r *stubUserRepo) ListByRoles(roles ...string) ([]models.User, error) { return nil, nil }
