package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/yourusername/crossover-billing/models"
)

// ErrNotFound means no stored invoice matches the requested id.
var ErrNotFound = errors.New("invoice not found")

// loadCollection reads a JSON array document. A missing or corrupt file
// yields an empty collection, never an error: invalid persisted data resets
// the store instead of crashing it.
func loadCollection[T any](path string) []T {
	data, err := os.ReadFile(path)
	if err != nil {
		return []T{}
	}
	var out []T
	if err := json.Unmarshal(data, &out); err != nil {
		return []T{}
	}
	if out == nil {
		out = []T{}
	}
	return out
}

// saveCollection writes the collection as an indented JSON array. Write
// failures are surfaced, never swallowed.
func saveCollection[T any](path string, items []T) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode collection: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// InvoiceStore holds the invoice collection, persisted as one JSON document.
// All mutation happens under the store mutex so concurrent payment attempts
// see a consistent check-and-set on invoice status.
type InvoiceStore struct {
	mu       sync.Mutex
	path     string
	invoices []models.Invoice
}

func NewInvoiceStore(path string) *InvoiceStore {
	return &InvoiceStore{path: path, invoices: loadCollection[models.Invoice](path)}
}

func (s *InvoiceStore) Add(invoice models.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := append(append([]models.Invoice{}, s.invoices...), invoice)
	if err := saveCollection(s.path, next); err != nil {
		return err
	}
	s.invoices = next
	return nil
}

func (s *InvoiceStore) Get(id string) (models.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, inv := range s.invoices {
		if inv.ID == id {
			return inv, nil
		}
	}
	return models.Invoice{}, ErrNotFound
}

func (s *InvoiceStore) All() []models.Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Invoice, len(s.invoices))
	copy(out, s.invoices)
	return out
}

func (s *InvoiceStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.invoices)
}

// Update applies fn to the stored invoice under the store lock and persists
// the result. The stored entry only changes when both fn and the write
// succeed, which makes UNPAID->PAID an atomic check-and-set: a second
// concurrent payment attempt observes PAID and is rejected by fn.
func (s *InvoiceStore) Update(id string, fn func(*models.Invoice) error) (models.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.invoices {
		if s.invoices[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return models.Invoice{}, ErrNotFound
	}

	next := make([]models.Invoice, len(s.invoices))
	copy(next, s.invoices)
	if err := fn(&next[idx]); err != nil {
		return models.Invoice{}, err
	}
	if err := saveCollection(s.path, next); err != nil {
		return models.Invoice{}, err
	}
	s.invoices = next
	return next[idx], nil
}

// LedgerStore is the append-only settlement log, persisted as one JSON
// document. No update, no delete.
type LedgerStore struct {
	mu      sync.Mutex
	path    string
	entries []models.Settlement
}

func NewLedgerStore(path string) *LedgerStore {
	return &LedgerStore{path: path, entries: loadCollection[models.Settlement](path)}
}

func (s *LedgerStore) Append(settlement models.Settlement) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := append(append([]models.Settlement{}, s.entries...), settlement)
	if err := saveCollection(s.path, next); err != nil {
		return err
	}
	s.entries = next
	return nil
}

func (s *LedgerStore) All() []models.Settlement {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Settlement, len(s.entries))
	copy(out, s.entries)
	return out
}
