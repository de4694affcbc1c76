package domain

import "time"

// SearchOutcome represents how a search attempt ended.
// Values include SearchOutcomeOK, SearchOutcomeNoResults, and SearchOutcomeNetworkFailure.
type SearchOutcome string

const (
	SearchOutcomeOK             SearchOutcome = "ok"
	SearchOutcomeNoResults      SearchOutcome = "no_results"
	SearchOutcomeNetworkFailure SearchOutcome = "network_failure"
)

// SearchRecord is one persisted search attempt, written for every page
// fetched by a gallery session.
type SearchRecord struct {
	ID         string        `gorm:"type:text;primaryKey" json:"id"`
	SessionID  string        `gorm:"type:text;index:idx_search_records_session" json:"session_id"`
	SearchTerm string        `gorm:"type:text;not null;index:idx_search_records_term" json:"search_term"`
	Page       int           `gorm:"not null" json:"page"`
	HitCount   int           `gorm:"default:0" json:"hit_count"`
	TotalHits  int           `gorm:"default:0" json:"total_hits"`
	Outcome    SearchOutcome `gorm:"type:text;index:idx_search_records_outcome" json:"outcome"`
	Error      string        `gorm:"type:text" json:"error,omitempty"`
	DurationMs int64         `json:"duration_ms"`
	CreatedAt  time.Time     `gorm:"index:idx_search_records_created" json:"created_at"`
}

// TableName returns the database table name for SearchRecord.
// Parameters: none.
// Returns:
//   - string: table name for GORM mapping.
func (SearchRecord) TableName() string {
	return "search_records"
}
