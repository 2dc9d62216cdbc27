// Package character holds per-user character records and the store
// that owns them. A record keeps base attribute values and custom
// skills apart, so a skill can never collide with a reserved field,
// and the core total is recomputed after every mutation.
package character

import (
	"sort"

	"github.com/miskatonicsociety/keeperbot/internal/attribute"
	"github.com/miskatonicsociety/keeperbot/internal/dice"
)

// Record is one user's character sheet.
type Record struct {
	Nickname   string         `json:"nickname"`
	Attributes map[string]int `json:"attributes"` // short code -> value
	Skills     map[string]int `json:"skills"`     // custom skill name -> value
	CoreTotal  int            `json:"core_total"` // stored for display, recomputed on load
}

// NewRecord generates a fresh character: fixed HP/MP/SAN, rolled core
// attributes, derived DB/DODGE/MOV, and the core total.
func NewRecord(nickname string, r *dice.Roller) *Record {
	rec := &Record{
		Nickname:   nickname,
		Attributes: attribute.GenerateSheet(r),
		Skills:     make(map[string]int),
	}
	rec.RecomputeCoreTotal()
	return rec
}

// normalize repairs a record loaded from storage: nil maps become
// empty and the core total is recomputed rather than trusted.
func (rec *Record) normalize() {
	if rec.Attributes == nil {
		rec.Attributes = make(map[string]int)
	}
	if rec.Skills == nil {
		rec.Skills = make(map[string]int)
	}
	rec.RecomputeCoreTotal()
}

// RecomputeCoreTotal sums the nine core attribute values (missing
// codes count as 0), stores the result, and returns it. Auto-computed
// attributes and skills never contribute.
func (rec *Record) RecomputeCoreTotal() int {
	total := 0
	for _, short := range attribute.CoreShorts {
		total += rec.Attributes[short]
	}
	rec.CoreTotal = total
	return total
}

// Value resolves an attribute or skill name against the record. Base
// attributes (after alias resolution) read from the attribute map and
// report their display label; anything else is looked up as a custom
// skill under its literal resolved name.
func (rec *Record) Value(name string) (found bool, display string, value int) {
	canonical := attribute.ResolveAlias(name)
	if def, ok := attribute.Lookup(canonical); ok {
		return true, def.Label, rec.Attributes[def.Short]
	}
	if v, ok := rec.Skills[canonical]; ok {
		return true, canonical, v
	}
	return false, name, 0
}

// SkillNames returns the custom skill names in sorted order for
// stable listings.
func (rec *Record) SkillNames() []string {
	names := make([]string, 0, len(rec.Skills))
	for name := range rec.Skills {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone deep-copies the record.
func (rec *Record) Clone() *Record {
	out := &Record{
		Nickname:   rec.Nickname,
		Attributes: make(map[string]int, len(rec.Attributes)),
		Skills:     make(map[string]int, len(rec.Skills)),
		CoreTotal:  rec.CoreTotal,
	}
	for k, v := range rec.Attributes {
		out.Attributes[k] = v
	}
	for k, v := range rec.Skills {
		out.Skills[k] = v
	}
	return out
}
