package testutil

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/leandrochavesf/gofinances/ledger-backend/internal/domain"
	"github.com/leandrochavesf/gofinances/ledger-backend/internal/repository/storage"
	"github.com/leandrochavesf/gofinances/ledger-backend/internal/websocket"
	"github.com/shopspring/decimal"
)

// clock hands out strictly increasing timestamps so creation order is observable
type clock struct {
	mu   sync.Mutex
	last time.Time
}

func (c *clock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := time.Now().UTC()
	if !t.After(c.last) {
		t = c.last.Add(time.Microsecond)
	}
	c.last = t
	return t
}

// MockCategoryRepository is an in-memory implementation of domain.CategoryRepository
type MockCategoryRepository struct {
	Categories []*domain.Category

	GetByTitlesCalls int
	CreateBatchCalls int

	FindOrCreateFn func(ctx context.Context, title string) (*domain.Category, error)
	GetByTitlesFn  func(ctx context.Context, titles []string) ([]*domain.Category, error)
	CreateBatchFn  func(ctx context.Context, titles []string) ([]*domain.Category, error)
	GetAllFn       func(ctx context.Context) ([]*domain.Category, error)

	mu    sync.Mutex
	clock clock
}

// NewMockCategoryRepository creates a new MockCategoryRepository
func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{
		Categories: make([]*domain.Category, 0),
	}
}

// AddCategory seeds a category with the given title
func (m *MockCategoryRepository) AddCategory(title string) *domain.Category {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.insert(title)
}

// FindOrCreate returns the category with the title or creates it
func (m *MockCategoryRepository) FindOrCreate(ctx context.Context, title string) (*domain.Category, error) {
	if m.FindOrCreateFn != nil {
		return m.FindOrCreateFn(ctx, title)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if c := m.find(title); c != nil {
		return c, nil
	}
	return m.insert(title), nil
}

// GetByTitles retrieves every category whose title is in titles
func (m *MockCategoryRepository) GetByTitles(ctx context.Context, titles []string) ([]*domain.Category, error) {
	m.mu.Lock()
	m.GetByTitlesCalls++
	m.mu.Unlock()
	if m.GetByTitlesFn != nil {
		return m.GetByTitlesFn(ctx, titles)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]*domain.Category, 0, len(titles))
	for _, title := range titles {
		if c := m.find(title); c != nil {
			result = append(result, c)
		}
	}
	return result, nil
}

// CreateBatch inserts the titles that do not exist yet and returns only those
func (m *MockCategoryRepository) CreateBatch(ctx context.Context, titles []string) ([]*domain.Category, error) {
	m.mu.Lock()
	m.CreateBatchCalls++
	m.mu.Unlock()
	if m.CreateBatchFn != nil {
		return m.CreateBatchFn(ctx, titles)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	created := make([]*domain.Category, 0, len(titles))
	for _, title := range titles {
		if m.find(title) != nil {
			continue
		}
		created = append(created, m.insert(title))
	}
	return created, nil
}

// GetAll retrieves all categories ordered by title
func (m *MockCategoryRepository) GetAll(ctx context.Context) ([]*domain.Category, error) {
	if m.GetAllFn != nil {
		return m.GetAllFn(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]*domain.Category, len(m.Categories))
	copy(result, m.Categories)
	sort.Slice(result, func(i, j int) bool { return result[i].Title < result[j].Title })
	return result, nil
}

// Count returns the number of stored categories
func (m *MockCategoryRepository) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Categories)
}

// Snapshot implements Snapshotter
func (m *MockCategoryRepository) Snapshot() func() {
	m.mu.Lock()
	saved := make([]*domain.Category, len(m.Categories))
	copy(saved, m.Categories)
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.Categories = saved
	}
}

func (m *MockCategoryRepository) find(title string) *domain.Category {
	for _, c := range m.Categories {
		if c.Title == title {
			return c
		}
	}
	return nil
}

func (m *MockCategoryRepository) insert(title string) *domain.Category {
	now := m.clock.now()
	c := &domain.Category{
		ID:        uuid.New(),
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.Categories = append(m.Categories, c)
	return c
}

// MockTransactionRepository is an in-memory implementation of domain.TransactionRepository
type MockTransactionRepository struct {
	Transactions []*domain.Transaction

	CreateBatchCalls int

	CreateFn      func(ctx context.Context, transaction *domain.Transaction) (*domain.Transaction, error)
	CreateBatchFn func(ctx context.Context, transactions []*domain.Transaction) ([]*domain.Transaction, error)
	GetAllFn      func(ctx context.Context) ([]*domain.Transaction, error)
	DeleteFn      func(ctx context.Context, id uuid.UUID) error

	mu    sync.Mutex
	clock clock
}

// NewMockTransactionRepository creates a new MockTransactionRepository
func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		Transactions: make([]*domain.Transaction, 0),
	}
}

// AddTransaction seeds a transaction without going through validation
func (m *MockTransactionRepository) AddTransaction(title string, txType domain.TransactionType, value decimal.Decimal, category *domain.Category) *domain.Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &domain.Transaction{Title: title, Type: txType, Value: value, Category: category}
	if category != nil {
		t.CategoryID = category.ID
	}
	return m.insert(t)
}

// Create stores a new transaction
func (m *MockTransactionRepository) Create(ctx context.Context, transaction *domain.Transaction) (*domain.Transaction, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, transaction)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.insert(transaction), nil
}

// CreateBatch stores all transactions in input order
func (m *MockTransactionRepository) CreateBatch(ctx context.Context, transactions []*domain.Transaction) ([]*domain.Transaction, error) {
	m.mu.Lock()
	m.CreateBatchCalls++
	m.mu.Unlock()
	if m.CreateBatchFn != nil {
		return m.CreateBatchFn(ctx, transactions)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]*domain.Transaction, len(transactions))
	for i, t := range transactions {
		result[i] = m.insert(t)
	}
	return result, nil
}

// GetAll returns every transaction oldest first
func (m *MockTransactionRepository) GetAll(ctx context.Context) ([]*domain.Transaction, error) {
	if m.GetAllFn != nil {
		return m.GetAllFn(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]*domain.Transaction, len(m.Transactions))
	copy(result, m.Transactions)
	return result, nil
}

// Delete removes a transaction by ID
func (m *MockTransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, t := range m.Transactions {
		if t.ID == id {
			m.Transactions = append(m.Transactions[:i:i], m.Transactions[i+1:]...)
			return nil
		}
	}
	return domain.ErrTransactionNotFound
}

// Count returns the number of stored transactions
func (m *MockTransactionRepository) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Transactions)
}

// Snapshot implements Snapshotter
func (m *MockTransactionRepository) Snapshot() func() {
	m.mu.Lock()
	saved := make([]*domain.Transaction, len(m.Transactions))
	copy(saved, m.Transactions)
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.Transactions = saved
	}
}

func (m *MockTransactionRepository) insert(t *domain.Transaction) *domain.Transaction {
	now := m.clock.now()
	stored := *t
	stored.ID = uuid.New()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	m.Transactions = append(m.Transactions, &stored)
	result := stored
	return &result
}

// Snapshotter captures in-memory state and returns a function that restores it
type Snapshotter interface {
	Snapshot() func()
}

// MockTransactor implements domain.Transactor over in-memory repositories.
// A failing fn restores every participant to its state before the call.
type MockTransactor struct {
	Participants []Snapshotter
	Calls        int
	Rollbacks    int
	BeginErr     error

	mu sync.Mutex
}

// NewMockTransactor creates a transactor that rolls back the given repositories
func NewMockTransactor(participants ...Snapshotter) *MockTransactor {
	return &MockTransactor{Participants: participants}
}

// WithinTransaction runs fn and rolls back the participants when it fails
func (m *MockTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	m.Calls++
	m.mu.Unlock()
	if m.BeginErr != nil {
		return m.BeginErr
	}

	restores := make([]func(), len(m.Participants))
	for i, p := range m.Participants {
		restores[i] = p.Snapshot()
	}

	if err := fn(ctx); err != nil {
		for _, restore := range restores {
			restore()
		}
		m.mu.Lock()
		m.Rollbacks++
		m.mu.Unlock()
		return err
	}
	return nil
}

// MockUploadStore is an in-memory storage.UploadStore
type MockUploadStore struct {
	Files   map[string][]byte
	Deleted []string

	SaveErr   error
	OpenErr   error
	DeleteErr error

	mu sync.Mutex
}

var _ storage.UploadStore = (*MockUploadStore)(nil)

// NewMockUploadStore creates a new MockUploadStore
func NewMockUploadStore() *MockUploadStore {
	return &MockUploadStore{
		Files: make(map[string][]byte),
	}
}

// Put seeds a staged file under key
func (m *MockUploadStore) Put(key string, content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Files[key] = []byte(content)
}

// Save stores data under a generated key
func (m *MockUploadStore) Save(ctx context.Context, filename string, data io.Reader) (string, error) {
	if m.SaveErr != nil {
		return "", m.SaveErr
	}
	content, err := io.ReadAll(data)
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	key := storage.GenerateUploadKey(filename)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Files[key] = content
	return key, nil
}

// Open returns a reader over the staged content
func (m *MockUploadStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	if m.OpenErr != nil {
		return nil, m.OpenErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	content, ok := m.Files[key]
	if !ok {
		return nil, domain.ErrUploadNotFound
	}
	return io.NopCloser(bytes.NewReader(content)), nil
}

// Delete removes the staged content and records the key
func (m *MockUploadStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Deleted = append(m.Deleted, key)
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	delete(m.Files, key)
	return nil
}

// Exists reports whether key is still staged
func (m *MockUploadStore) Exists(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.Files[key]
	return ok
}

// RecordingPublisher captures published events
type RecordingPublisher struct {
	events []websocket.Event
	mu     sync.Mutex
}

var _ websocket.EventPublisher = (*RecordingPublisher)(nil)

// Publish records the event
func (r *RecordingPublisher) Publish(event websocket.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

// Events returns a copy of the recorded events
func (r *RecordingPublisher) Events() []websocket.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	events := make([]websocket.Event, len(r.events))
	copy(events, r.events)
	return events
}
