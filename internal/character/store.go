package character

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/miskatonicsociety/keeperbot/internal/attribute"
	"github.com/miskatonicsociety/keeperbot/internal/dice"
	"github.com/miskatonicsociety/keeperbot/internal/logger"
)

var (
	ErrNoCharacter   = errors.New("no character record")
	ErrNotFound      = errors.New("attribute or skill not found")
	ErrEmptyNickname = errors.New("nickname is empty")
)

// DefaultNickname is shown when neither the record nor the platform
// supplies a name.
const DefaultNickname = "未知角色"

// Backend persists the full user id -> record mapping. Implementations
// live in internal/storage.
type Backend interface {
	Load() (map[string]*Record, error)
	Save(map[string]*Record) error
	Close() error
}

// Change describes one attribute or skill modified by an import.
type Change struct {
	Name   string // canonical attribute name or skill name
	Short  string // short code, empty for skills
	IsBase bool
	Old    int
	HadOld bool // false when a skill is created for the first time
	New    int
}

// Store owns the in-memory record map and writes it through the
// backend after every mutation. A save failure is logged and swallowed:
// the in-memory state stays ahead of disk until the next successful
// save. The mutex serializes gateway goroutines; per-user command
// ordering is still the host framework's responsibility.
type Store struct {
	mu      sync.Mutex
	backend Backend
	records map[string]*Record
}

// NewStore loads existing records from the backend. A load failure is
// logged and yields an empty store rather than an error.
func NewStore(backend Backend) *Store {
	records, err := backend.Load()
	if err != nil {
		logger.Error("Failed to load character data, starting empty", "error", err)
		records = make(map[string]*Record)
	}
	if records == nil {
		records = make(map[string]*Record)
	}
	for _, rec := range records {
		rec.normalize()
	}
	return &Store{backend: backend, records: records}
}

// persist writes the full mapping through the backend. Must be called
// with the mutex held.
func (s *Store) persist() {
	if err := s.backend.Save(s.records); err != nil {
		logger.Error("Failed to save character data", "error", err)
	}
}

// Flush forces a save of the current state, e.g. on shutdown.
func (s *Store) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.backend.Save(s.records)
}

// Get returns a copy of the user's record.
func (s *Store) Get(userID string) (*Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[userID]
	if !ok {
		return nil, false
	}
	return rec.Clone(), true
}

// Len returns the number of stored characters.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// Nickname returns the record's bound nickname, falling back to the
// platform nickname and then to DefaultNickname.
func (s *Store) Nickname(userID, platformNickname string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.records[userID]; ok && rec.Nickname != "" {
		return rec.Nickname
	}
	if platformNickname != "" {
		return platformNickname
	}
	return DefaultNickname
}

// Create generates a fresh character for the user, overwriting any
// existing record, and persists it.
func (s *Store) Create(userID, nickname string, r *dice.Roller) *Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := NewRecord(nickname, r)
	s.records[userID] = rec
	s.persist()
	return rec.Clone()
}

// Import applies parsed attribute assignments. A missing record is
// auto-created with generated defaults first. Base attributes write
// into the attribute map by short code; everything else becomes a
// custom skill. The core total is recomputed and the store persisted.
func (s *Store) Import(userID, platformNickname string, assignments []attribute.Assignment, r *dice.Roller) (rec *Record, created bool, changes []Change) {
	s.mu.Lock()
	defer s.mu.Unlock()

	target, ok := s.records[userID]
	if !ok {
		target = NewRecord(platformNickname, r)
		s.records[userID] = target
		created = true
	}

	for _, a := range assignments {
		if def, isBase := attribute.Lookup(a.Name); isBase {
			old := target.Attributes[def.Short]
			target.Attributes[def.Short] = a.Value
			changes = append(changes, Change{
				Name: a.Name, Short: def.Short, IsBase: true,
				Old: old, HadOld: true, New: a.Value,
			})
			continue
		}
		old, had := target.Skills[a.Name]
		target.Skills[a.Name] = a.Value
		changes = append(changes, Change{Name: a.Name, Old: old, HadOld: had, New: a.Value})
	}

	target.RecomputeCoreTotal()
	s.persist()
	return target.Clone(), created, changes
}

// SetAttribute overwrites a single base attribute by short code,
// recomputes the core total, and persists.
func (s *Store) SetAttribute(userID, short string, value int) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[userID]
	if !ok {
		return nil, ErrNoCharacter
	}
	rec.Attributes[short] = value
	rec.RecomputeCoreTotal()
	s.persist()
	return rec.Clone(), nil
}

// DeleteAttribute resets a base attribute to a freshly generated
// default, or removes a custom skill outright. Returns a description
// of what happened for display.
func (s *Store) DeleteAttribute(userID, name string, r *dice.Roller) (string, *Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[userID]
	if !ok {
		return "", nil, ErrNoCharacter
	}

	canonical := attribute.ResolveAlias(name)
	if def, isBase := attribute.Lookup(canonical); isBase {
		old := rec.Attributes[def.Short]
		fresh, err := attribute.DefaultValue(canonical, r)
		if err != nil {
			return "", nil, err
		}
		rec.Attributes[def.Short] = fresh
		rec.RecomputeCoreTotal()
		s.persist()
		desc := fmt.Sprintf("基础属性-%s已重置为默认值：%d → %d", canonical, old, fresh)
		return desc, rec.Clone(), nil
	}

	if old, ok := rec.Skills[canonical]; ok {
		delete(rec.Skills, canonical)
		rec.RecomputeCoreTotal()
		s.persist()
		desc := fmt.Sprintf("技能-%s已删除（原值：%d）", canonical, old)
		return desc, rec.Clone(), nil
	}

	return "", rec.Clone(), fmt.Errorf("%w: %s", ErrNotFound, name)
}

// DeleteCharacter removes the entire record. Returns false if the
// user had none.
func (s *Store) DeleteCharacter(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[userID]; !ok {
		return false
	}
	delete(s.records, userID)
	s.persist()
	return true
}

// Rename overwrites the record's nickname. Returns the old nickname.
func (s *Store) Rename(userID, newNickname string) (string, error) {
	newNickname = strings.TrimSpace(newNickname)
	if newNickname == "" {
		return "", ErrEmptyNickname
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[userID]
	if !ok {
		return "", ErrNoCharacter
	}
	old := rec.Nickname
	if old == "" {
		old = DefaultNickname
	}
	rec.Nickname = newNickname
	s.persist()
	return old, nil
}
