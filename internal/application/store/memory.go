package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"mortgageportal/internal/application/models"
	"mortgageportal/pkg/platform/sentinel"
)

// MemoryStore is an in-memory Writer, Reader, and TxRunner for tests. Saves
// stage into a scratch area and commit only when every row landed, so a
// forced failure mid-graph leaves nothing visible, matching the transactional
// behavior of the Postgres store.
type MemoryStore struct {
	mu     sync.Mutex
	graphs map[uuid.UUID]*models.Graph
	failOn string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{graphs: make(map[uuid.UUID]*models.Graph)}
}

// FailOn makes the next Save fail when it reaches the named table. Pass ""
// to clear.
func (s *MemoryStore) FailOn(table string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failOn = table
}

func (s *MemoryStore) Save(ctx context.Context, g *models.Graph) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failOn != "" {
		for _, r := range graphRows(g) {
			if r.table == s.failOn {
				return uuid.Nil, fmt.Errorf("insert %s: forced failure", r.table)
			}
		}
	}
	s.graphs[g.ApplicationID()] = g
	return g.ApplicationID(), nil
}

// Graph returns the stored graph for an application, for direct assertions.
func (s *MemoryStore) Graph(id uuid.UUID) (*models.Graph, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.graphs[id]
	return g, ok
}

// Len reports how many applications were committed.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.graphs)
}

func (s *MemoryStore) FindApplication(ctx context.Context, id uuid.UUID) (models.LoanApplication, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.graphs[id]
	if !ok {
		return models.LoanApplication{}, fmt.Errorf("application %s: %w", id, sentinel.ErrNotFound)
	}
	return g.Application, nil
}

func (s *MemoryStore) CountEntities(ctx context.Context, applicationID uuid.UUID) (EntityCounts, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.graphs[applicationID]
	if !ok {
		return EntityCounts{}, nil
	}
	c := EntityCounts{
		Borrowers:           len(g.Borrowers),
		Dependents:          len(g.Dependents),
		Addresses:           len(g.Addresses),
		Employments:         len(g.Employments),
		IncomeBreakdowns:    len(g.IncomeBreakdowns),
		OtherIncomes:        len(g.OtherIncomes),
		AssetAccounts:       len(g.AssetAccounts),
		AssetCreditOthers:   len(g.AssetCreditOthers),
		Liabilities:         len(g.Liabilities),
		OtherLiabilities:    len(g.OtherLiabilityExpenses),
		PropertiesOwned:     len(g.PropertiesOwned),
		PropertyMortgages:   len(g.PropertyMortgages),
		SubjectNewMortgages: len(g.SubjectNewMortgages),
		GiftsOrGrants:       len(g.GiftsOrGrants),
		Declarations:        len(g.Declarations),
	}
	if g.SubjectProperty != nil {
		c.SubjectProperties = 1
	}
	return c, nil
}

func (s *MemoryStore) ListLiabilities(ctx context.Context, applicationID uuid.UUID) ([]models.Liability, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.graphs[applicationID]
	if !ok {
		return nil, nil
	}
	return append([]models.Liability(nil), g.Liabilities...), nil
}

// RunInTx mirrors SQLTxRunner semantics: writes made inside fn stay visible
// only when fn returns nil. On error the pre-fn state is restored, so a save
// followed by a failing downstream step leaves nothing committed.
func (s *MemoryStore) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	snapshot := make(map[uuid.UUID]*models.Graph, len(s.graphs))
	for id, g := range s.graphs {
		snapshot[id] = g
	}
	s.mu.Unlock()

	if err := fn(ctx); err != nil {
		s.mu.Lock()
		s.graphs = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}
