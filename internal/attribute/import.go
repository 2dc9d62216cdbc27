package attribute

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/miskatonicsociety/keeperbot/internal/dice"
)

var (
	ErrNoParameters           = errors.New("no attribute parameters given")
	ErrNoRecognizedAttributes = errors.New("no recognized attribute pairs")
)

// Assignment is one parsed name/value pair from an import string.
type Assignment struct {
	Name  string // canonical attribute name or custom skill name
	Value int
}

// importRegex scans name/value pairs across the whole string without
// requiring separators: a run of non-numeric, non-sign characters is a
// name, immediately followed by a number or dice notation as its value.
// "力量80敏捷75" parses as two pairs.
var importRegex = regexp.MustCompile(`([^\d\s+-]+)\s*([\d+-]+(?:d\d+)?)`)

// ParseImport tokenizes a free-text import string into attribute
// assignments. Names are alias-resolved; dice values are rolled
// immediately; every surviving value is clamped into [0, 200].
// Unparseable values drop their pair silently. Duplicate names keep
// the first position but the last value wins.
func ParseImport(text string, r *dice.Roller) ([]Assignment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrNoParameters
	}

	matches := importRegex.FindAllStringSubmatch(text, -1)
	if matches == nil {
		return nil, ErrNoRecognizedAttributes
	}

	var order []Assignment
	index := make(map[string]int)

	for _, m := range matches {
		name := ResolveAlias(m[1])
		valueStr := m[2]

		var value int
		if strings.Contains(strings.ToLower(valueStr), "d") {
			expr, err := dice.Parse(valueStr)
			if err != nil {
				continue
			}
			_, value = r.RollExpression(expr)
		} else {
			v, err := strconv.Atoi(valueStr)
			if err != nil {
				continue
			}
			value = v
		}

		value = clamp(value, 0, 200)
		if i, ok := index[name]; ok {
			order[i].Value = value
			continue
		}
		index[name] = len(order)
		order = append(order, Assignment{Name: name, Value: value})
	}

	return order, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
