package services

import (
	"github.com/google/uuid"

	"github.com/livefire2015/creditcore/models"
)

// Store is the opaque persistence seam named in spec.md §6. SQL
// persistence itself is explicitly out of scope for the core; this
// interface is the only contract a caller-supplied repository must
// satisfy, keyed by (account_id, allocation_id) with round-trip
// equality as the sole requirement.
type Store interface {
	SaveAllocation(accountID string, allocationID uuid.UUID, record models.PaymentAllocation) error
	LoadAllocation(accountID string, allocationID uuid.UUID) (models.PaymentAllocation, error)
}

// InMemoryStore is a concrete, dependency-free Store backed by a
// process-local map; a real deployment supplies its own SQL-backed
// implementation.
type InMemoryStore struct {
	records map[string]models.PaymentAllocation
}

// NewInMemoryStore returns a ready-to-use InMemoryStore.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{records: make(map[string]models.PaymentAllocation)}
}

func storeKey(accountID string, allocationID uuid.UUID) string {
	return accountID + ":" + allocationID.String()
}

func (s *InMemoryStore) SaveAllocation(accountID string, allocationID uuid.UUID, record models.PaymentAllocation) error {
	s.records[storeKey(accountID, allocationID)] = record
	return nil
}

func (s *InMemoryStore) LoadAllocation(accountID string, allocationID uuid.UUID) (models.PaymentAllocation, error) {
	record, ok := s.records[storeKey(accountID, allocationID)]
	if !ok {
		return models.PaymentAllocation{}, models.NewFault(models.FaultUnknownAllocation, "no allocation record for key").
			WithBucket(allocationID.String())
	}
	return record, nil
}
