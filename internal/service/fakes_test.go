package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/sefazor/pixelmuse-backend/internal/models"
)

type fakeSubscriptionStore struct {
	mu   sync.Mutex
	subs map[uint]*models.Subscription

	incrementErr error
}

func newFakeSubscriptionStore() *fakeSubscriptionStore {
	return &fakeSubscriptionStore{subs: make(map[uint]*models.Subscription)}
}

func (f *fakeSubscriptionStore) GetByUserID(userID uint) (*models.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sub, ok := f.subs[userID]
	if !ok {
		return nil, nil
	}
	cp := *sub
	return &cp, nil
}

func (f *fakeSubscriptionStore) GetByCustomerID(customerID string) (*models.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, sub := range f.subs {
		if sub.StripeCustomerID == customerID {
			cp := *sub
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeSubscriptionStore) Upsert(sub *models.Subscription) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *sub
	f.subs[sub.UserID] = &cp
	return nil
}

func (f *fakeSubscriptionStore) UpdateStatus(userID uint, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	sub, ok := f.subs[userID]
	if !ok {
		return errors.New("record not found")
	}
	sub.Status = status
	return nil
}

func (f *fakeSubscriptionStore) IncrementQuotaUsed(userID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.incrementErr != nil {
		return f.incrementErr
	}
	sub, ok := f.subs[userID]
	if !ok {
		return errors.New("record not found")
	}
	sub.QuotaUsed++
	return nil
}

type fakeProjectStore struct {
	mu       sync.Mutex
	nextID   uint
	projects map[uint]*models.Project

	createErr    error
	deleteRowErr error
}

func newFakeProjectStore() *fakeProjectStore {
	return &fakeProjectStore{nextID: 1, projects: make(map[uint]*models.Project)}
}

func (f *fakeProjectStore) Create(project *models.Project) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	project.ID = f.nextID
	f.nextID++
	cp := *project
	f.projects[project.ID] = &cp
	return nil
}

func (f *fakeProjectStore) GetByUserID(userID uint) ([]models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Project
	for _, p := range f.projects {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProjectStore) GetByIDAndUserID(id uint, userID uint) (*models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.projects[id]
	if !ok || p.UserID != userID {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProjectStore) Delete(id uint, userID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteRowErr != nil {
		return f.deleteRowErr
	}
	p, ok := f.projects[id]
	if !ok || p.UserID != userID {
		return errors.New("record not found")
	}
	delete(f.projects, id)
	return nil
}

type fakeBlobStorage struct {
	mu      sync.Mutex
	name    string
	blobs   map[string][]byte
	deletes []string

	uploadErr error
	deleteErr error
}

func newFakeBlobStorage(name string) *fakeBlobStorage {
	return &fakeBlobStorage{name: name, blobs: make(map[string][]byte)}
}

func (f *fakeBlobStorage) Upload(key string, reader io.Reader, contentType string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.uploadErr != nil {
		return f.uploadErr
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	f.blobs[key] = data
	return nil
}

func (f *fakeBlobStorage) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, key)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.blobs, key)
	return nil
}

func (f *fakeBlobStorage) PublicURL(key string) string {
	return fmt.Sprintf("https://cdn.example.com/%s/%s", f.name, key)
}

func (f *fakeBlobStorage) uploadCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.blobs)
}

type fakeGenerator struct {
	mu     sync.Mutex
	calls  int
	output json.RawMessage
	err    error
}

func (f *fakeGenerator) Generate(imageURL, prompt string) (json.RawMessage, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.output, nil
}

func (f *fakeGenerator) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeUserStore struct {
	mu    sync.Mutex
	users map[uint]*models.User
}

func newFakeUserStore(users ...*models.User) *fakeUserStore {
	f := &fakeUserStore{users: make(map[uint]*models.User)}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserStore) Create(user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user.ID = uint(len(f.users) + 1)
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserStore) GetByID(id uint) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserStore) GetByEmail(email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, errors.New("record not found")
}

func (f *fakeUserStore) EmailExists(email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type fakePlanStore struct {
	plans []models.Plan
}

func (f *fakePlanStore) GetAllActive() ([]models.Plan, error) {
	return f.plans, nil
}

func (f *fakePlanStore) GetByCode(code string) (*models.Plan, error) {
	for i := range f.plans {
		if f.plans[i].Code == code {
			return &f.plans[i], nil
		}
	}
	return nil, errors.New("record not found")
}

func (f *fakePlanStore) GetByStripeID(priceID, productID string) (*models.Plan, error) {
	for i := range f.plans {
		if (priceID != "" && f.plans[i].StripePriceID == priceID) ||
			(productID != "" && f.plans[i].StripeProductID == productID) {
			return &f.plans[i], nil
		}
	}
	return nil, nil
}

type fakeMailer struct {
	mu          sync.Mutex
	welcomes    []string
	activations []string
}

func (f *fakeMailer) SendWelcomeEmail(email, fullName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.welcomes = append(f.welcomes, email)
	return nil
}

func (f *fakeMailer) SendSubscriptionActivatedEmail(email, fullName string, quotaLimit int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.activations = append(f.activations, email)
	return nil
}
