/*
store.go - The entity store owning both collections

PURPOSE:
  Store is the single owner of the collaborator and record collections.
  Every mutation of either collection goes through a method here, so the
  consistency rules (cascading delete, status transitions, synthetic hire
  records) live in exactly one place.

MUTATION RULES:
  AddCollaborator:     insert Activo + synthetic INGRESO record
  UpdateCollaborator:  full replacement by id, records untouched
  DeleteCollaborators: cascade-remove every referencing record, atomically
  AddRecord:           append; EGRESO flips the collaborator to Inactivo
  UpdateRecord:        full replacement by id, type change rejected
  DeleteRecords:       remove by id; never reverts a status
  ImportCollaborators: bulk append of pre-validated rows
  ImportRecords:       bulk append; EGRESO rows flip their collaborators
                       to Inactivo in one batched update

STATUS TRANSITIONS:
  Activo -> Inactivo fires exactly on acceptance of a termination record
  (direct add or import) and is funnelled through markTerminatedLocked.
  There is no reverse transition: deleting the termination record does not
  reactivate, and a re-hire is a brand-new collaborator.

PERSISTENCE:
  The store mirrors each collection to an attached Persister after every
  successful mutation. Persistence is a subscriber, not a gatekeeper: a
  failed write is logged and the in-memory collections remain the source
  of truth for the running session.

CONCURRENCY:
  Guarded by a sync.RWMutex. Readers observe either the pre- or
  post-mutation snapshot, never an intermediate one.

SEE ALSO:
  - seed.go: dataset used when the persister has nothing usable
  - store/sqlite: the SQLite-backed Persister
*/
package roster

import (
	"context"
	"log"
	"sync"

	"github.com/shopspring/decimal"
)

// =============================================================================
// PERSISTER - Subscriber boundary to the storage collaborator
// =============================================================================

// Persister mirrors the two collections to durable storage. Load methods
// return ErrNo-style failures or decode errors; the store treats any load
// failure as "use the seed dataset".
type Persister interface {
	LoadCollaborators(ctx context.Context) ([]Collaborator, error)
	LoadRecords(ctx context.Context) ([]HRRecord, error)
	SaveCollaborators(ctx context.Context, collaborators []Collaborator) error
	SaveRecords(ctx context.Context, records []HRRecord) error
}

// Snapshot is an immutable copy of both collections at one instant.
type Snapshot struct {
	Collaborators []Collaborator
	Records       []HRRecord
}

// HireIntake is the hire-record payload that must accompany a new
// collaborator: the agreed salary, the onboarding cost, and optional notes.
type HireIntake struct {
	Salary       decimal.Decimal
	Cost         decimal.Decimal
	Observations string
}

// =============================================================================
// STORE
// =============================================================================

type Store struct {
	mu            sync.RWMutex
	collaborators []Collaborator
	records       []HRRecord
	persist       Persister // nil disables mirroring (tests)
}

// NewStore creates a store pre-populated with the given collections.
func NewStore(collaborators []Collaborator, records []HRRecord, p Persister) *Store {
	return &Store{
		collaborators: append([]Collaborator(nil), collaborators...),
		records:       append([]HRRecord(nil), records...),
		persist:       p,
	}
}

// Load builds a store from the persister's contents. A collection that is
// absent or unparsable falls back to the bundled seed dataset; the two
// collections fall back independently.
func Load(ctx context.Context, p Persister) *Store {
	collaborators, err := p.LoadCollaborators(ctx)
	if err != nil {
		log.Printf("roster: loading collaborators failed, using seed dataset: %v", err)
		collaborators = SeedCollaborators()
	}
	records, err := p.LoadRecords(ctx)
	if err != nil {
		log.Printf("roster: loading records failed, using seed dataset: %v", err)
		records = SeedRecords()
	}
	return NewStore(collaborators, records, p)
}

// Snapshot returns a copy of both collections.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Collaborators: append([]Collaborator(nil), s.collaborators...),
		Records:       append([]HRRecord(nil), s.records...),
	}
}

// Collaborators returns a copy of the collaborator collection.
func (s *Store) Collaborators() []Collaborator {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Collaborator(nil), s.collaborators...)
}

// Records returns a copy of the record collection.
func (s *Store) Records() []HRRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]HRRecord(nil), s.records...)
}

// =============================================================================
// COLLABORATOR MUTATIONS
// =============================================================================

// AddCollaborator inserts a new collaborator with status Activo and appends
// the synthetic hire record, stamped with the collaborator's UG and
// position and dated at the hire date. The identifier and status on the
// input are ignored and synthesized here.
func (s *Store) AddCollaborator(ctx context.Context, c Collaborator, hire HireIntake) (Collaborator, HRRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.ID = NewCollaboratorID()
	c.Status = StatusActive

	rec := NewRecord(c.HireDate, c.ID, c.UG, c.Position,
		HireDetails{Salary: hire.Salary}, hire.Cost, hire.Observations)

	s.collaborators = append(s.collaborators, c)
	s.records = append(s.records, rec)
	s.saveCollaboratorsLocked(ctx)
	s.saveRecordsLocked(ctx)
	return c, rec
}

// UpdateCollaborator replaces the collaborator with a matching id. Records
// are not touched.
func (s *Store) UpdateCollaborator(ctx context.Context, c Collaborator) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.collaborators {
		if s.collaborators[i].ID == c.ID {
			s.collaborators[i] = c
			s.saveCollaboratorsLocked(ctx)
			return nil
		}
	}
	return ErrCollaboratorNotFound
}

// DeleteCollaborators removes the given collaborators and cascades to every
// record referencing any of them. Both collections are replaced in one
// critical section, so no reader ever observes a record whose collaborator
// is gone.
func (s *Store) DeleteCollaborators(ctx context.Context, ids []string) (collaboratorsRemoved, recordsRemoved int) {
	if len(ids) == 0 {
		return 0, 0
	}
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	keptCollaborators := s.collaborators[:0:0]
	for _, c := range s.collaborators {
		if _, gone := drop[c.ID]; gone {
			collaboratorsRemoved++
			continue
		}
		keptCollaborators = append(keptCollaborators, c)
	}
	keptRecords := s.records[:0:0]
	for _, r := range s.records {
		if _, gone := drop[r.CollaboratorID]; gone {
			recordsRemoved++
			continue
		}
		keptRecords = append(keptRecords, r)
	}

	s.collaborators = keptCollaborators
	s.records = keptRecords
	s.saveCollaboratorsLocked(ctx)
	s.saveRecordsLocked(ctx)
	return collaboratorsRemoved, recordsRemoved
}

// =============================================================================
// RECORD MUTATIONS
// =============================================================================

// AddRecord appends a new record for the given collaborator, snapshotting
// the collaborator's current UG and position. A termination record flips
// the collaborator to Inactivo as part of the same operation.
func (s *Store) AddRecord(ctx context.Context, date Date, collaboratorID string, details RecordDetails, cost decimal.Decimal, observations string) (HRRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var owner *Collaborator
	for i := range s.collaborators {
		if s.collaborators[i].ID == collaboratorID {
			owner = &s.collaborators[i]
			break
		}
	}
	if owner == nil {
		return HRRecord{}, ErrCollaboratorNotFound
	}

	rec := NewRecord(date, collaboratorID, owner.UG, owner.Position, details, cost, observations)
	s.records = append(s.records, rec)

	if rec.Type == RecordTermination {
		s.markTerminatedLocked(map[string]struct{}{collaboratorID: {}})
		s.saveCollaboratorsLocked(ctx)
	}
	s.saveRecordsLocked(ctx)
	return rec, nil
}

// UpdateRecord replaces the record with a matching id. The type tag is
// immutable: an edit may reshape the payload within its type, never re-tag
// it. Status transitions are not re-triggered.
func (s *Store) UpdateRecord(ctx context.Context, rec HRRecord) error {
	if rec.Details == nil || rec.Details.Kind() != rec.Type {
		return ErrRecordTypeChanged
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.records {
		if s.records[i].ID == rec.ID {
			if s.records[i].Type != rec.Type {
				return ErrRecordTypeChanged
			}
			s.records[i] = rec
			s.saveRecordsLocked(ctx)
			return nil
		}
	}
	return ErrRecordNotFound
}

// DeleteRecords removes records by id. Deleting a termination record never
// reverts its collaborator to Activo; terminations are one-directional.
func (s *Store) DeleteRecords(ctx context.Context, ids []string) (removed int) {
	if len(ids) == 0 {
		return 0
	}
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.records[:0:0]
	for _, r := range s.records {
		if _, gone := drop[r.ID]; gone {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	s.records = kept
	s.saveRecordsLocked(ctx)
	return removed
}

// =============================================================================
// BULK IMPORTS
// =============================================================================

// ImportCollaborators bulk-appends rows accepted by the CSV validator.
// No status side effects: rows arrive with the status the file declared.
func (s *Store) ImportCollaborators(ctx context.Context, collaborators []Collaborator) int {
	if len(collaborators) == 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.collaborators = append(s.collaborators, collaborators...)
	s.saveCollaboratorsLocked(ctx)
	return len(collaborators)
}

// ImportRecords bulk-appends rows accepted by the CSV validator, then flips
// every collaborator referenced by an accepted termination row to Inactivo
// in one batched update.
func (s *Store) ImportRecords(ctx context.Context, records []HRRecord) int {
	if len(records) == 0 {
		return 0
	}

	terminated := make(map[string]struct{})
	for _, r := range records {
		if r.Type == RecordTermination {
			terminated[r.CollaboratorID] = struct{}{}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, records...)
	if len(terminated) > 0 {
		s.markTerminatedLocked(terminated)
		s.saveCollaboratorsLocked(ctx)
	}
	s.saveRecordsLocked(ctx)
	return len(records)
}

// =============================================================================
// STATUS TRANSITION
// =============================================================================

// markTerminatedLocked is the single place the Activo -> Inactivo
// transition happens. Callers hold the write lock.
func (s *Store) markTerminatedLocked(ids map[string]struct{}) {
	for i := range s.collaborators {
		if _, hit := ids[s.collaborators[i].ID]; hit {
			s.collaborators[i].Status = StatusInactive
		}
	}
}

// =============================================================================
// PERSISTENCE MIRRORING
// =============================================================================

func (s *Store) saveCollaboratorsLocked(ctx context.Context) {
	if s.persist == nil {
		return
	}
	snapshot := append([]Collaborator(nil), s.collaborators...)
	if err := s.persist.SaveCollaborators(ctx, snapshot); err != nil {
		log.Printf("roster: persisting collaborators failed, in-memory state kept: %v", err)
	}
}

func (s *Store) saveRecordsLocked(ctx context.Context) {
	if s.persist == nil {
		return
	}
	snapshot := append([]HRRecord(nil), s.records...)
	if err := s.persist.SaveRecords(ctx, snapshot); err != nil {
		log.Printf("roster: persisting records failed, in-memory state kept: %v", err)
	}
}
