package payment

import (
	"context"
	"fmt"
	"sync"

	"github.com/ManuelReschke/LeadPay/app/models"
)

// MemoryRepository is an in-process Repository for tests of this package and
// of the HTTP controllers. Transactions are serialized; Transaction restores
// the previous state when fn fails. Writes made outside Transaction while a
// transaction is running are lost on rollback.
type MemoryRepository struct {
	txMu      sync.Mutex
	mu        sync.Mutex
	payments  map[string]*models.Payment
	order     []string
	leads     map[string]*models.Lead
	mutations int
	nextID    uint

	// Injected failures.
	CreateErr error
	LeadErr   error
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		payments: make(map[string]*models.Payment),
		leads:    make(map[string]*models.Lead),
	}
}

// SeedPayment stores p without counting it as a mutation.
func (r *MemoryRepository) SeedPayment(p *models.Payment) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	cp := *p
	cp.ID = r.nextID
	r.payments[p.OrderID] = &cp
	r.order = append(r.order, p.OrderID)
}

// SeedLead stores l without counting it as a mutation.
func (r *MemoryRepository) SeedLead(l *models.Lead) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *l
	r.leads[l.OrderID] = &cp
}

// Payments returns copies of all stored payments in insertion order.
func (r *MemoryRepository) Payments() []models.Payment {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Payment, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.payments[id])
	}
	return out
}

// Payment returns a copy of the payment for orderID, nil when absent.
func (r *MemoryRepository) Payment(orderID string) *models.Payment {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payments[orderID]
	if !ok {
		return nil
	}
	cp := *p
	return &cp
}

// Lead returns a copy of the lead for orderID, nil when absent.
func (r *MemoryRepository) Lead(orderID string) *models.Lead {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.leads[orderID]
	if !ok {
		return nil
	}
	cp := *l
	return &cp
}

// Mutations counts committed writes.
func (r *MemoryRepository) Mutations() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.mutations
}

func (r *MemoryRepository) CreatePayment(_ context.Context, p *models.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.CreateErr != nil {
		return r.CreateErr
	}
	if _, exists := r.payments[p.OrderID]; exists {
		return fmt.Errorf("duplicate order id %s", p.OrderID)
	}
	r.nextID++
	p.ID = r.nextID
	cp := *p
	r.payments[p.OrderID] = &cp
	r.order = append(r.order, p.OrderID)
	r.mutations++
	return nil
}

func (r *MemoryRepository) FindPaymentForUpdate(_ context.Context, orderID string) (*models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payments[orderID]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *MemoryRepository) ApplyCallback(_ context.Context, p *models.Payment, update models.PaymentCallbackUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.payments[p.OrderID]
	if !ok {
		return fmt.Errorf("payment %s vanished", p.OrderID)
	}
	update.Apply(stored)
	update.Apply(p)
	r.mutations++
	return nil
}

func (r *MemoryRepository) UpdateLeadPaymentStatus(_ context.Context, orderID, status string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.LeadErr != nil {
		return false, r.LeadErr
	}
	l, ok := r.leads[orderID]
	if !ok {
		return false, nil
	}
	l.PaymentStatus = status
	r.mutations++
	return true, nil
}

func (r *MemoryRepository) Transaction(_ context.Context, fn func(repo Repository) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()

	r.mu.Lock()
	payments := make(map[string]*models.Payment, len(r.payments))
	for k, v := range r.payments {
		cp := *v
		payments[k] = &cp
	}
	leads := make(map[string]*models.Lead, len(r.leads))
	for k, v := range r.leads {
		cp := *v
		leads[k] = &cp
	}
	order := append([]string(nil), r.order...)
	mutations := r.mutations
	r.mu.Unlock()

	if err := fn(r); err != nil {
		r.mu.Lock()
		r.payments, r.leads, r.order, r.mutations = payments, leads, order, mutations
		r.mu.Unlock()
		return err
	}
	return nil
}
