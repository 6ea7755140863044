package vault

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"lendvault/models"
)

// fakeRequirementRepo is an in-memory RequirementRepository.
type fakeRequirementRepo struct {
	mu   sync.Mutex
	docs map[string]*models.RequiredDocument
}

func newFakeRequirementRepo(seed ...models.RequiredDocument) *fakeRequirementRepo {
	r := &fakeRequirementRepo{docs: make(map[string]*models.RequiredDocument)}
	for i := range seed {
		doc := seed[i]
		r.docs[doc.Code] = &doc
	}
	return r
}

func (r *fakeRequirementRepo) GetByCode(code string) (*models.RequiredDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[code]
	if !ok {
		return nil, nil
	}
	cp := *doc
	return &cp, nil
}

func (r *fakeRequirementRepo) ListCore() ([]models.RequiredDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.RequiredDocument
	for _, doc := range r.docs {
		if doc.Core {
			out = append(out, *doc)
		}
	}
	return out, nil
}

func (r *fakeRequirementRepo) ListAll() ([]models.RequiredDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.RequiredDocument
	for _, doc := range r.docs {
		out = append(out, *doc)
	}
	return out, nil
}

func (r *fakeRequirementRepo) Create(doc *models.RequiredDocument) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.docs[doc.Code]; exists {
		return errors.New("duplicate code")
	}
	cp := *doc
	r.docs[doc.Code] = &cp
	return nil
}

func (r *fakeRequirementRepo) UpdateLabel(code, label string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[code]
	if !ok {
		return errors.New("requirement not found")
	}
	doc.Label = label
	return nil
}

func (r *fakeRequirementRepo) Count() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.docs)), nil
}

// fakeDocumentRepo is an in-memory ClientDocumentRepository.
type fakeDocumentRepo struct {
	mu   sync.Mutex
	rows map[string]*models.ClientDocument // keyed by row ID
}

func newFakeDocumentRepo(seed ...models.ClientDocument) *fakeDocumentRepo {
	r := &fakeDocumentRepo{rows: make(map[string]*models.ClientDocument)}
	for i := range seed {
		row := seed[i]
		r.rows[row.ID] = &row
	}
	return r
}

func (r *fakeDocumentRepo) GetByUserAndCode(userID, code string) (*models.ClientDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.UserID == userID && row.Code == code {
			cp := *row
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeDocumentRepo) ListByUser(userID string) ([]models.ClientDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.ClientDocument
	for _, row := range r.rows {
		if row.UserID == userID {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (r *fakeDocumentRepo) ListActiveDynamicByUser(userID string) ([]models.ClientDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.ClientDocument
	for _, row := range r.rows {
		if row.UserID == userID && row.Dynamic && row.Active {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (r *fakeDocumentRepo) Create(doc *models.ClientDocument) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.UserID == doc.UserID && row.Code == doc.Code {
			return errors.New("duplicate user/code row")
		}
	}
	cp := *doc
	r.rows[doc.ID] = &cp
	return nil
}

func (r *fakeDocumentRepo) SetActive(id string, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok {
		return errors.New("row not found")
	}
	row.Active = active
	if active {
		row.DeactivatedAt = nil
	} else {
		now := time.Now()
		row.DeactivatedAt = &now
	}
	return nil
}

func (r *fakeDocumentRepo) MarkUploaded(id, storagePublicID, fileName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok {
		return errors.New("row not found")
	}
	now := time.Now()
	row.Status = models.DocumentStatusUploaded
	row.StoragePublicID = storagePublicID
	row.FileName = fileName
	row.UploadedAt = &now
	return nil
}

// fakeStorage is an in-memory StorageService.
type fakeStorage struct {
	mu        sync.Mutex
	uploads   []string
	deletes   []string
	uploadErr error
	markSeq   int
}

func (s *fakeStorage) UploadFile(ctx context.Context, filePath, destFolder string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	s.markSeq++
	publicID := fmt.Sprintf("%s/file-%d", destFolder, s.markSeq)
	s.uploads = append(s.uploads, publicID)
	return publicID, nil
}

func (s *fakeStorage) DeleteFile(ctx context.Context, publicID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletes = append(s.deletes, publicID)
	return nil
}

func (s *fakeStorage) GetSecureDownloadURL(ctx context.Context, publicID string, validity time.Duration) (string, error) {
	return "https://files.example.com/" + publicID, nil
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
