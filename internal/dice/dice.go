// Package dice implements dice notation parsing and rolling for
// percentile-based tabletop checks.
package dice

import (
	"errors"
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
)

const (
	// MaxCount is the maximum number of dice in a single expression.
	MaxCount = 100
	// MaxFaces is the maximum number of faces on a single die.
	MaxFaces = 1000
)

var (
	ErrInvalidExpression = errors.New("invalid dice expression")
	ErrCountOutOfRange   = errors.New("dice count out of range")
	ErrFacesOutOfRange   = errors.New("dice faces out of range")
)

// Expression is a parsed dice notation like "2d6+3".
type Expression struct {
	Count    int
	Faces    int
	Modifier int
}

// exprRegex matches dice notation like "d100", "2d6+3", "1d8-2".
var exprRegex = regexp.MustCompile(`^(?i)(\d*)d(\d+)([+-]\d+)?$`)

// Parse parses dice notation. The count defaults to 1 when omitted
// ("d100" means "1d100"). Count must be 1-100 and faces 1-1000.
func Parse(expr string) (Expression, error) {
	matches := exprRegex.FindStringSubmatch(strings.TrimSpace(expr))
	if matches == nil {
		return Expression{}, fmt.Errorf("%w: %q", ErrInvalidExpression, expr)
	}

	count := 1
	if matches[1] != "" {
		count, _ = strconv.Atoi(matches[1])
	}
	faces, _ := strconv.Atoi(matches[2])

	modifier := 0
	if matches[3] != "" {
		modifier, _ = strconv.Atoi(matches[3])
	}

	if count <= 0 || count > MaxCount {
		return Expression{}, fmt.Errorf("%w: %d (1-%d)", ErrCountOutOfRange, count, MaxCount)
	}
	if faces <= 0 || faces > MaxFaces {
		return Expression{}, fmt.Errorf("%w: %d (1-%d)", ErrFacesOutOfRange, faces, MaxFaces)
	}

	return Expression{Count: count, Faces: faces, Modifier: modifier}, nil
}

// String renders the expression back to notation form.
func (e Expression) String() string {
	s := fmt.Sprintf("%dd%d", e.Count, e.Faces)
	if e.Modifier > 0 {
		s += fmt.Sprintf("+%d", e.Modifier)
	} else if e.Modifier < 0 {
		s += strconv.Itoa(e.Modifier)
	}
	return s
}

// Roller produces die rolls. The zero source rolls from the shared
// math/rand generator; tests inject their own source (or a raw intn
// function) for deterministic results.
type Roller struct {
	intn func(n int) int
}

// NewRoller returns a roller backed by the given source, or by the
// shared math/rand generator when src is nil.
func NewRoller(src rand.Source) *Roller {
	if src == nil {
		return &Roller{intn: rand.Intn}
	}
	r := rand.New(src)
	return &Roller{intn: r.Intn}
}

// NewRollerFunc returns a roller that draws each die from intn, which
// must behave like rand.Intn. Used by tests to force exact rolls.
func NewRollerFunc(intn func(n int) int) *Roller {
	return &Roller{intn: intn}
}

// Roll rolls count dice with the given number of faces and applies the
// modifier. Each individual roll is uniform in [1, faces].
func (r *Roller) Roll(count, faces, modifier int) (rolls []int, total int) {
	rolls = make([]int, 0, count)
	for i := 0; i < count; i++ {
		roll := r.intn(faces) + 1
		rolls = append(rolls, roll)
		total += roll
	}
	total += modifier
	return rolls, total
}

// RollExpression rolls a parsed expression.
func (r *Roller) RollExpression(e Expression) (rolls []int, total int) {
	return r.Roll(e.Count, e.Faces, e.Modifier)
}

// D100 rolls a single percentile die (1-100).
func (r *Roller) D100() int {
	return r.intn(100) + 1
}

// signedIntRegex matches a plain signed integer literal.
var signedIntRegex = regexp.MustCompile(`^[+-]?\d+$`)

// dbExprRegex matches the modifier-free notation allowed for damage
// bonus values ("1d4", "2d6").
var dbExprRegex = regexp.MustCompile(`^(\d+)d(\d+)$`)

// DamageBonusValue resolves a damage bonus string to a number. Accepts
// a signed integer literal or modifier-free dice notation, which is
// rolled immediately. Anything else resolves to 0.
func (r *Roller) DamageBonusValue(s string) int {
	s = strings.TrimSpace(s)
	if signedIntRegex.MatchString(s) {
		v, _ := strconv.Atoi(s)
		return v
	}

	matches := dbExprRegex.FindStringSubmatch(s)
	if matches == nil {
		return 0
	}
	count, _ := strconv.Atoi(matches[1])
	faces, _ := strconv.Atoi(matches[2])
	if count <= 0 || count > MaxCount || faces <= 0 || faces > MaxFaces {
		return 0
	}
	_, total := r.Roll(count, faces, 0)
	return total
}

// SanDeductValue resolves a sanity deduction expression to a number.
// Accepts a signed integer or dice notation; the result is floored at
// 1 so a check always costs something. Unparseable input resolves to 1.
func (r *Roller) SanDeductValue(expr string) int {
	expr = strings.TrimSpace(expr)
	if signedIntRegex.MatchString(expr) {
		v, _ := strconv.Atoi(expr)
		if v < 1 {
			return 1
		}
		return v
	}

	e, err := Parse(expr)
	if err != nil {
		return 1
	}
	_, total := r.RollExpression(e)
	if total < 1 {
		return 1
	}
	return total
}
