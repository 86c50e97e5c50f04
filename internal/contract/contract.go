// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"github.com/pipewise/ilitrack/schema"
)

// SurveyStore defines the keyed year -> survey dataset store. The correlation
// engine itself never touches the store; commands resolve surveys through it
// and hand plain DefectSets to the engine, which keeps the engine trivially
// testable in isolation.
type SurveyStore interface {
	// SaveSurvey persists one survey, replacing any prior dataset for its year.
	SaveSurvey(survey *schema.Survey) error

	// GetSurvey returns the survey for a year, or an error when absent.
	GetSurvey(year int) (*schema.Survey, error)

	// ListSurveys returns summary rows for all stored surveys, ordered by year.
	ListSurveys() ([]schema.SurveyInfo, error)

	// ClearAll removes every stored survey.
	ClearAll() error

	// GetStatus returns status information about the store.
	GetStatus() (schema.StoreStatus, error)

	// Close closes the underlying connection.
	Close() error
}

// StoreManager hands out the survey store. This allows the persistence layer
// to be mocked for testing.
type StoreManager interface {
	GetSurveyStore() SurveyStore
}
