package store

import (
	"encoding/base64"
	"fmt"
	"sync"

	"github.com/GermanFOSSIL/candapp/internal/candapp/entity"
	"github.com/GermanFOSSIL/candapp/internal/candapp/qr"
)

// LockStore is the ordered LOTO record collection backed by one workbook.
// A single mutex serializes every load-mutate-save section: the source system
// let concurrent flushes race last-writer-wins, here the race is closed by a
// single-writer contract.
type LockStore struct {
	mu      sync.Mutex
	path    string
	columns []string
	records []entity.LockRecord
}

// OpenLockStore loads the workbook at path, creating and prepopulating it
// with sample rows when it does not exist yet.
func OpenLockStore(path string) (*LockStore, error) {
	s := &LockStore{path: path}
	if !fileExists(path) {
		s.columns = append([]string(nil), entity.LockColumns...)
		samples := SampleLocks(30)
		for i := range samples {
			if err := deriveQR(&samples[i]); err != nil {
				return nil, err
			}
		}
		s.records = samples
		if err := s.flush(s.records); err != nil {
			return nil, err
		}
		return s, nil
	}

	columns, rows, err := loadWorkbook(path, entity.LockColumns)
	if err != nil {
		return nil, err
	}
	s.columns = columns
	s.records = make([]entity.LockRecord, 0, len(rows))
	for _, row := range rows {
		rec := entity.LockFromRow(row)
		rec.QRBytes = decodeBlob(row[entity.ColLockQRBytes])
		rec.PDFAdjunto = decodeBlob(row[entity.ColLockPDFAdjunto])
		s.records = append(s.records, rec)
	}
	return s, nil
}

// Columns returns the collection's current column order.
func (s *LockStore) Columns() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.columns...)
}

// List returns a copy of the collection in storage order.
func (s *LockStore) List() []entity.LockRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.LockRecord(nil), s.records...)
}

// Get returns the record at the given position.
func (s *LockStore) Get(index int) (entity.LockRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.records) {
		return entity.LockRecord{}, ErrStaleSelection
	}
	return s.records[index], nil
}

// Append derives the QR column from the record's identifying fields, adds the
// record at the end and flushes the workbook.
func (s *LockStore) Append(rec entity.LockRecord) (entity.LockRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := deriveQR(&rec); err != nil {
		return entity.LockRecord{}, err
	}
	next := append(append([]entity.LockRecord(nil), s.records...), rec)
	if err := s.flush(next); err != nil {
		return entity.LockRecord{}, err
	}
	s.records = next
	return rec, nil
}

// Update replaces the record at index in place, regenerating the derived QR
// bytes from the updated identifying fields.
func (s *LockStore) Update(index int, rec entity.LockRecord) (entity.LockRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.records) {
		return entity.LockRecord{}, ErrStaleSelection
	}
	if err := deriveQR(&rec); err != nil {
		return entity.LockRecord{}, err
	}
	if rec.PDFAdjunto == nil {
		rec.PDFAdjunto = s.records[index].PDFAdjunto
	}
	next := append([]entity.LockRecord(nil), s.records...)
	next[index] = rec
	if err := s.flush(next); err != nil {
		return entity.LockRecord{}, err
	}
	s.records = next
	return rec, nil
}

// Delete removes the record at index; the remaining records keep their
// relative order.
func (s *LockStore) Delete(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.records) {
		return ErrStaleSelection
	}
	next := append([]entity.LockRecord(nil), s.records[:index]...)
	next = append(next, s.records[index+1:]...)
	if err := s.flush(next); err != nil {
		return err
	}
	s.records = next
	return nil
}

// flush rewrites the workbook from the given snapshot. On error the in-memory
// collection is left untouched; no partial write is assumed committed.
func (s *LockStore) flush(records []entity.LockRecord) error {
	rows := make([]map[string]string, 0, len(records))
	for _, rec := range records {
		row := rec.Row()
		row[entity.ColLockQRBytes] = encodeBlob(rec.QRBytes)
		row[entity.ColLockPDFAdjunto] = encodeBlob(rec.PDFAdjunto)
		rows = append(rows, row)
	}
	return saveWorkbook(s.path, s.columns, rows)
}

func deriveQR(rec *entity.LockRecord) error {
	png, err := qr.Encode(qr.LockPayload(rec.NoCandado, rec.Area, rec.Fecha))
	if err != nil {
		return fmt.Errorf("store: derive qr for %q: %w", rec.PrimaryKey(), err)
	}
	rec.QRBytes = png
	return nil
}

// Binary columns persist base64-encoded in their cells; cells written by the
// legacy tool that do not decode load as absent blobs.
func encodeBlob(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return base64.StdEncoding.EncodeToString(b)
}

func decodeBlob(cell string) []byte {
	if cell == "" {
		return nil
	}
	b, err := base64.StdEncoding.DecodeString(cell)
	if err != nil {
		return nil
	}
	return b
}
