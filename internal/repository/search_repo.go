package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/timmy/pixgallery/internal/domain"
	"gorm.io/gorm"
)

// SearchRecordRepository persists gallery search attempts.
type SearchRecordRepository struct {
	db *gorm.DB
}

// NewSearchRecordRepository creates a new SearchRecordRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *SearchRecordRepository: repository instance bound to db.
func NewSearchRecordRepository(db *gorm.DB) *SearchRecordRepository {
	return &SearchRecordRepository{db: db}
}

// Create inserts a search record, assigning an ID when empty.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - record: record to persist.
// Returns:
//   - error: non-nil if the insert fails.
func (r *SearchRecordRepository) Create(ctx context.Context, record *domain.SearchRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	return r.db.WithContext(ctx).Create(record).Error
}

// ListRecent returns the newest records first.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - limit: maximum number of records; values <= 0 default to 20.
// Returns:
//   - []domain.SearchRecord: records ordered by creation time descending.
//   - error: non-nil if the query fails.
func (r *SearchRecordRepository) ListRecent(ctx context.Context, limit int) ([]domain.SearchRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	var records []domain.SearchRecord
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}

// ListBySession returns the records of one gallery session in the order they were made.
func (r *SearchRecordRepository) ListBySession(ctx context.Context, sessionID string) ([]domain.SearchRecord, error) {
	var records []domain.SearchRecord
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&records).Error
	return records, err
}

// CountByOutcome returns the number of records per outcome.
func (r *SearchRecordRepository) CountByOutcome(ctx context.Context) (map[domain.SearchOutcome]int64, error) {
	var rows []struct {
		Outcome domain.SearchOutcome
		Count   int64
	}
	err := r.db.WithContext(ctx).
		Model(&domain.SearchRecord{}).
		Select("outcome, COUNT(*) as count").
		Group("outcome").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[domain.SearchOutcome]int64, len(rows))
	for _, row := range rows {
		counts[row.Outcome] = row.Count
	}
	return counts, nil
}
