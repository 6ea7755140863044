package user

import (
	"context"
	"errors"
	"sync"

	"lendvault/models"

	"go.mongodb.org/mongo-driver/bson"
)

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newFakeUserRepo(seed ...models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*models.User)}
	for i := range seed {
		u := seed[i]
		r.users[u.ID] = &u
	}
	return r
}

func (r *fakeUserRepo) GetByID(id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, errors.New("user not found")
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByCRMContactID(contactID string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.CRMContactID == contactID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Create(u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[u.ID]; exists {
		return errors.New("duplicate id")
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) UpdateSetDocument(id string, updateDoc bson.M) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return errors.New("user not found")
	}
	for field, value := range updateDoc {
		s, _ := value.(string)
		switch field {
		case "name":
			u.Name = s
		case "phone_number":
			u.PhoneNumber = s
		case "company":
			u.Company = s
		case "role":
			u.Role = s
		case "token_hash":
			u.TokenHash = s
		case "fcm_token":
			u.FCMToken = s
		case "crm_contact_id":
			u.CRMContactID = s
		}
	}
	return nil
}

func (r *fakeUserRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return errors.New("user not found")
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) GetByIDWithProjection(id string, projection bson.M) (*models.User, error) {
	return r.GetByID(id)
}

func (r *fakeUserRepo) ListByRoles(roles ...string) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.User
	for _, u := range r.users {
		for _, role := range roles {
			if u.Role == role {
				out = append(out, *u)
				break
			}
		}
	}
	return out, nil
}

// fakeCRMClient records outbound CRM calls.
type fakeCRMClient struct {
	mu        sync.Mutex
	contactID string
	upsertErr error
	upserts   []models.CRMContact
}

func (c *fakeCRMClient) UpsertContact(ctx context.Context, contact models.CRMContact) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.upsertErr != nil {
		return "", c.upsertErr
	}
	c.upserts = append(c.upserts, contact)
	return c.contactID, nil
}

func (c *fakeCRMClient) AddTags(ctx context.Context, contactID string, tags []string) error {
	return nil
}

func (c *fakeCRMClient) RemoveTags(ctx context.Context, contactID string, tags []string) error {
	return nil
}

func (c *fakeCRMClient) AttachFile(ctx context.Context, contactID, fileName, url string) error {
	return nil
}

// fakeDispatcher records queued side calls.
type fakeDispatcher struct {
	mu       sync.Mutex
	contacts []models.CRMContactTaskPayload
	tags     []models.CRMTagsTaskPayload
	files    []models.CRMFileTaskPayload
	pushes   []models.PushTaskPayload
}

func (d *fakeDispatcher) SyncContact(p models.CRMContactTaskPayload) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.contacts = append(d.contacts, p)
}

func (d *fakeDispatcher) PushTags(p models.CRMTagsTaskPayload) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tags = append(d.tags, p)
}

func (d *fakeDispatcher) AttachFile(p models.CRMFileTaskPayload) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.files = append(d.files, p)
}

func (d *fakeDispatcher) Push(p models.PushTaskPayload) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pushes = append(d.pushes, p)
}
