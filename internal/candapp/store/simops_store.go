package store

import (
	"sync"

	"github.com/GermanFOSSIL/candapp/internal/candapp/entity"
)

// SimOpsStore is the ordered SIMOPS record collection backed by one workbook.
type SimOpsStore struct {
	mu      sync.Mutex
	path    string
	columns []string
	records []entity.SimOpsRecord
}

// OpenSimOpsStore loads the workbook at path, creating and prepopulating it
// with sample rows when it does not exist yet.
func OpenSimOpsStore(path string) (*SimOpsStore, error) {
	s := &SimOpsStore{path: path}
	if !fileExists(path) {
		s.columns = append([]string(nil), entity.SimOpsColumns...)
		s.records = SampleSimOps(5)
		if err := s.flush(s.records); err != nil {
			return nil, err
		}
		return s, nil
	}

	columns, rows, err := loadWorkbook(path, entity.SimOpsColumns)
	if err != nil {
		return nil, err
	}
	s.columns = columns
	s.records = make([]entity.SimOpsRecord, 0, len(rows))
	for _, row := range rows {
		s.records = append(s.records, entity.SimOpsFromRow(row))
	}
	return s, nil
}

// Columns returns the collection's current column order.
func (s *SimOpsStore) Columns() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.columns...)
}

// List returns a copy of the collection in storage order.
func (s *SimOpsStore) List() []entity.SimOpsRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.SimOpsRecord(nil), s.records...)
}

// Get returns the record at the given position.
func (s *SimOpsStore) Get(index int) (entity.SimOpsRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.records) {
		return entity.SimOpsRecord{}, ErrStaleSelection
	}
	return s.records[index], nil
}

// Append adds the record at the end and flushes the workbook.
func (s *SimOpsStore) Append(rec entity.SimOpsRecord) (entity.SimOpsRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := append(append([]entity.SimOpsRecord(nil), s.records...), rec)
	if err := s.flush(next); err != nil {
		return entity.SimOpsRecord{}, err
	}
	s.records = next
	return rec, nil
}

// Update replaces the record at index in place.
func (s *SimOpsStore) Update(index int, rec entity.SimOpsRecord) (entity.SimOpsRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.records) {
		return entity.SimOpsRecord{}, ErrStaleSelection
	}
	next := append([]entity.SimOpsRecord(nil), s.records...)
	next[index] = rec
	if err := s.flush(next); err != nil {
		return entity.SimOpsRecord{}, err
	}
	s.records = next
	return rec, nil
}

// Delete removes the record at index; the remaining records keep their
// relative order.
func (s *SimOpsStore) Delete(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.records) {
		return ErrStaleSelection
	}
	next := append([]entity.SimOpsRecord(nil), s.records[:index]...)
	next = append(next, s.records[index+1:]...)
	if err := s.flush(next); err != nil {
		return err
	}
	s.records = next
	return nil
}

func (s *SimOpsStore) flush(records []entity.SimOpsRecord) error {
	rows := make([]map[string]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, rec.Row())
	}
	return saveWorkbook(s.path, s.columns, rows)
}
