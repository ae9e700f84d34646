package application

import (
	"sync"

	"github.com/bnema/activity-indicator/internal/domain"
)

// StatusTable holds the latest install status per provider name. Records are
// kept in update order: the most recently updated provider is last.
type StatusTable struct {
	mu       sync.Mutex
	records  []domain.StatusRecord
	onChange func()
}

// NewStatusTable returns an empty table. onChange, when non-nil, is called
// after every Update and every non-empty Drain, outside the table lock.
func NewStatusTable(onChange func()) *StatusTable {
	return &StatusTable{onChange: onChange}
}

func (t *StatusTable) Update(name string, status domain.InstallStatus) {
	t.mu.Lock()
	t.records = removeRecord(t.records, name)
	t.records = append(t.records, domain.StatusRecord{Name: name, Status: status})
	t.mu.Unlock()

	t.changed()
}

// Drain removes every record matching match and returns the removed records in
// table order. The scan and the removal happen under one lock.
func (t *StatusTable) Drain(match func(domain.StatusRecord) bool) []domain.StatusRecord {
	t.mu.Lock()
	var drained []domain.StatusRecord
	kept := t.records[:0]
	for _, record := range t.records {
		if match(record) {
			drained = append(drained, record)
			continue
		}
		kept = append(kept, record)
	}
	clear(t.records[len(kept):])
	t.records = kept
	t.mu.Unlock()

	if len(drained) > 0 {
		t.changed()
	}
	return drained
}

func (t *StatusTable) DrainFailed() []domain.StatusRecord {
	return t.Drain(func(record domain.StatusRecord) bool {
		return record.Status.IsFailed()
	})
}

func (t *StatusTable) Records() []domain.StatusRecord {
	t.mu.Lock()
	defer t.mu.Unlock()

	records := make([]domain.StatusRecord, len(t.records))
	copy(records, t.records)
	return records
}

func (t *StatusTable) Get(name string) (domain.InstallStatus, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, record := range t.records {
		if record.Name == name {
			return record.Status, true
		}
	}
	return domain.InstallStatus{}, false
}

func (t *StatusTable) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.records)
}

func (t *StatusTable) changed() {
	if t.onChange != nil {
		t.onChange()
	}
}

func removeRecord(records []domain.StatusRecord, name string) []domain.StatusRecord {
	for i, record := range records {
		if record.Name == name {
			return append(records[:i], records[i+1:]...)
		}
	}
	return records
}
