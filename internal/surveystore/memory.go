package surveystore

import (
	"fmt"
	"sort"
	"sync"

	"github.com/pipewise/ilitrack/internal/contract"
	"github.com/pipewise/ilitrack/schema"
)

// MemoryStoreImpl keeps surveys in process memory. Used for the none backend
// and as a stand-in for tests that do not want a database on disk.
type MemoryStoreImpl struct {
	mu      sync.RWMutex
	surveys map[int]*schema.Survey
}

var _ contract.SurveyStore = &MemoryStoreImpl{} // Compile-time check

// NewMemoryStore creates an empty in-memory survey store.
func NewMemoryStore() *MemoryStoreImpl {
	return &MemoryStoreImpl{surveys: make(map[int]*schema.Survey)}
}

// SaveSurvey stores one survey, replacing any prior dataset for its year.
func (ms *MemoryStoreImpl) SaveSurvey(survey *schema.Survey) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.surveys[survey.Year] = survey
	return nil
}

// GetSurvey returns the survey for a year, or ErrSurveyNotFound when absent.
func (ms *MemoryStoreImpl) GetSurvey(year int) (*schema.Survey, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	survey, ok := ms.surveys[year]
	if !ok {
		return nil, fmt.Errorf("%w: year %d", contract.ErrSurveyNotFound, year)
	}
	return survey, nil
}

// ListSurveys returns summary rows for all stored surveys, ordered by year.
func (ms *MemoryStoreImpl) ListSurveys() ([]schema.SurveyInfo, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	infos := make([]schema.SurveyInfo, 0, len(ms.surveys))
	for _, s := range ms.surveys {
		infos = append(infos, schema.SurveyInfo{
			Year:        s.Year,
			SourceFile:  s.SourceFile,
			LoadedAt:    s.LoadedAt,
			JointCount:  len(s.Joints.Joints),
			DefectCount: len(s.Defects.Defects),
		})
	}
	sort.Slice(infos, func(a, b int) bool { return infos[a].Year < infos[b].Year })
	return infos, nil
}

// ClearAll removes every stored survey.
func (ms *MemoryStoreImpl) ClearAll() error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.surveys = make(map[int]*schema.Survey)
	return nil
}

// GetStatus returns status information about the store.
func (ms *MemoryStoreImpl) GetStatus() (schema.StoreStatus, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	status := schema.StoreStatus{
		Backend:     schema.NoneBackend,
		SurveyCount: len(ms.surveys),
	}
	for _, s := range ms.surveys {
		status.JointRows += len(s.Joints.Joints)
		status.DefectRows += len(s.Defects.Defects)
	}
	return status, nil
}

// Close is a no-op for the in-memory store.
func (ms *MemoryStoreImpl) Close() error {
	return nil
}
