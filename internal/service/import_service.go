package service

import (
	"context"
	"fmt"

	"github.com/leandrochavesf/gofinances/ledger-backend/internal/domain"
	"github.com/leandrochavesf/gofinances/ledger-backend/internal/importer"
	"github.com/leandrochavesf/gofinances/ledger-backend/internal/repository/storage"
	"github.com/leandrochavesf/gofinances/ledger-backend/internal/websocket"
	"github.com/rs/zerolog/log"
)

// ImportService loads transactions in bulk from staged CSV uploads
type ImportService struct {
	uploads         storage.UploadStore
	categoryRepo    domain.CategoryRepository
	transactionRepo domain.TransactionRepository
	transactor      domain.Transactor
	eventPublisher  websocket.EventPublisher
}

// NewImportService creates a new ImportService
func NewImportService(uploads storage.UploadStore, categoryRepo domain.CategoryRepository, transactionRepo domain.TransactionRepository, transactor domain.Transactor) *ImportService {
	return &ImportService{
		uploads:         uploads,
		categoryRepo:    categoryRepo,
		transactionRepo: transactionRepo,
		transactor:      transactor,
	}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *ImportService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

// ImportTransactions parses the upload stored under sourceKey and persists one
// transaction per accepted row, in file order. Missing categories are created in
// one batch. The upload is always deleted, whatever the outcome. Imports are not
// checked against the balance.
func (s *ImportService) ImportTransactions(ctx context.Context, sourceKey string) ([]*domain.Transaction, error) {
	parsed, err := s.parseAndRelease(ctx, sourceKey)
	if err != nil {
		return nil, err
	}

	if len(parsed.Rows) == 0 {
		log.Info().
			Str("source", sourceKey).
			Int("skipped", parsed.Skipped).
			Msg("Import contained no valid rows")
		return []*domain.Transaction{}, nil
	}

	var created []*domain.Transaction
	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		categories, err := s.resolveCategories(ctx, parsed.DistinctCategoryTitles())
		if err != nil {
			return err
		}

		transactions := make([]*domain.Transaction, len(parsed.Rows))
		for i, row := range parsed.Rows {
			category := categories[row.CategoryTitle]
			transactions[i] = &domain.Transaction{
				Title:      row.Title,
				Value:      row.Value,
				Type:       row.Type,
				CategoryID: category.ID,
				Category:   category,
			}
		}

		created, err = s.transactionRepo.CreateBatch(ctx, transactions)
		if err != nil {
			return fmt.Errorf("failed to store transactions: %w", err)
		}
		for i, t := range created {
			t.Category = transactions[i].Category
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("source", sourceKey).
		Int("imported", len(created)).
		Int("skipped", parsed.Skipped).
		Msg("Transactions imported")

	s.publishEvent(websocket.TransactionsImported(created))
	return created, nil
}

func (s *ImportService) publishEvent(event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(event)
	}
}

// parseAndRelease reads the whole upload and deletes it before returning
func (s *ImportService) parseAndRelease(ctx context.Context, sourceKey string) (*importer.Result, error) {
	defer func() {
		// The upload must go even when the request was cancelled
		if err := s.uploads.Delete(context.WithoutCancel(ctx), sourceKey); err != nil {
			log.Warn().Err(err).Str("source", sourceKey).Msg("Failed to delete import source")
		}
	}()

	rc, err := s.uploads.Open(ctx, sourceKey)
	if err != nil {
		return nil, fmt.Errorf("failed to open import source: %w", err)
	}
	defer rc.Close()

	parsed, err := importer.ParseCSV(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse import source: %w", err)
	}
	return parsed, nil
}

// resolveCategories maps every title to a stored category, creating the missing
// ones with a single batch insert
func (s *ImportService) resolveCategories(ctx context.Context, titles []string) (map[string]*domain.Category, error) {
	existing, err := s.categoryRepo.GetByTitles(ctx, titles)
	if err != nil {
		return nil, fmt.Errorf("failed to look up categories: %w", err)
	}

	byTitle := make(map[string]*domain.Category, len(titles))
	for _, c := range existing {
		byTitle[c.Title] = c
	}

	missing := missingTitles(titles, byTitle)
	if len(missing) == 0 {
		return byTitle, nil
	}

	created, err := s.categoryRepo.CreateBatch(ctx, missing)
	if err != nil {
		return nil, fmt.Errorf("failed to create categories: %w", err)
	}
	for _, c := range created {
		byTitle[c.Title] = c
	}

	// Titles inserted concurrently by another writer are skipped by CreateBatch
	unresolved := missingTitles(missing, byTitle)
	if len(unresolved) == 0 {
		return byTitle, nil
	}
	found, err := s.categoryRepo.GetByTitles(ctx, unresolved)
	if err != nil {
		return nil, fmt.Errorf("failed to look up categories: %w", err)
	}
	for _, c := range found {
		byTitle[c.Title] = c
	}
	if still := missingTitles(unresolved, byTitle); len(still) > 0 {
		return nil, fmt.Errorf("%w: %q", domain.ErrCategoryUnresolved, still)
	}

	return byTitle, nil
}

func missingTitles(titles []string, byTitle map[string]*domain.Category) []string {
	var missing []string
	for _, title := range titles {
		if _, ok := byTitle[title]; !ok {
			missing = append(missing, title)
		}
	}
	return missing
}
