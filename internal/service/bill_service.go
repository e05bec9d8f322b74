package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/Saiganesh18787/catalog-management-system/internal/domain"
	"github.com/Saiganesh18787/catalog-management-system/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrBillNotFound = errors.New("bill not found")

// BillService owns the expense bills. Bills are kept sorted by date,
// newest first; ties keep their relative order.
type BillService struct {
	store  *store.Store
	logger *zap.Logger

	mu    sync.Mutex
	bills []domain.Bill
}

// NewBillService loads the bills snapshot.
func NewBillService(ctx context.Context, st *store.Store, logger *zap.Logger) *BillService {
	s := &BillService{
		store:  st,
		logger: logger,
		bills:  st.Bills(ctx),
	}
	s.sortByDate()
	return s
}

// List returns a copy of the bills, newest first.
func (s *BillService) List() []domain.Bill {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Bill, len(s.bills))
	copy(out, s.bills)
	return out
}

// Add creates a bill with a fresh id and createdAt. A bill without a status
// starts as Pending.
func (s *BillService) Add(ctx context.Context, patch domain.BillPatch) domain.Bill {
	s.mu.Lock()
	defer s.mu.Unlock()

	bill := domain.Bill{
		ID:        uuid.NewString(),
		Status:    domain.BillStatusPending,
		CreatedAt: time.Now().UTC(),
	}
	bill.Apply(patch)

	s.bills = append(s.bills, bill)
	s.sortByDate()
	s.persist(ctx)
	return bill
}

// Update merges the patch into an existing bill (typically a status flip to
// Paid, or a field correction).
func (s *BillService) Update(ctx context.Context, id string, patch domain.BillPatch) (domain.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, b := range s.bills {
		if b.ID != id {
			continue
		}
		b.Apply(patch)
		s.bills[i] = b
		if patch.Date != nil {
			s.sortByDate()
		}
		s.persist(ctx)
		return b, nil
	}
	return domain.Bill{}, ErrBillNotFound
}

// Delete removes a bill.
func (s *BillService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, b := range s.bills {
		if b.ID == id {
			s.bills = append(s.bills[:i], s.bills[i+1:]...)
			s.persist(ctx)
			return nil
		}
	}
	return ErrBillNotFound
}

// sortByDate orders bills date-descending. Unparseable dates sort last.
// Callers hold the mutex.
func (s *BillService) sortByDate() {
	sort.SliceStable(s.bills, func(i, j int) bool {
		di, erri := time.Parse(domain.DateFormat, s.bills[i].Date)
		dj, errj := time.Parse(domain.DateFormat, s.bills[j].Date)
		if erri != nil {
			return false
		}
		if errj != nil {
			return true
		}
		return di.After(dj)
	})
}

func (s *BillService) persist(ctx context.Context) {
	if err := s.store.SaveBills(ctx, s.bills); err != nil {
		s.logger.Error("Failed to persist bills", zap.Error(err))
	}
}
