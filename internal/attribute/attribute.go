// Package attribute defines the character attribute catalog: the fixed
// table of base attributes, their short codes and display labels, the
// alias table for informal names, and the default-value formulas.
package attribute

import (
	"fmt"
	"strings"

	"github.com/miskatonicsociety/keeperbot/internal/dice"
)

// GenRule selects the default-value formula for a base attribute.
type GenRule int

const (
	// GenFixed uses the Fixed field as-is (HP/MP/SAN).
	GenFixed GenRule = iota
	// GenRoll3d6x5 rolls 3d6 and multiplies by 5.
	GenRoll3d6x5
	// GenRoll2d6p6x5 rolls 2d6, adds 6, and multiplies by 5.
	GenRoll2d6p6x5
	// GenDerived computes the value from freshly rolled inputs
	// (damage bonus, dodge, movement).
	GenDerived
)

// Definition describes one base attribute in the catalog.
type Definition struct {
	Name  string // canonical name, used in commands and import text
	Short string // short code, used as the storage key
	Label string // decorated display label
	Core  bool   // core attributes sum into the character total
	Gen   GenRule
	Fixed int // starting value for GenFixed attributes
}

// Catalog is the full base attribute table in display order. Schema
// changes (promoting an attribute, changing a formula) happen here,
// not in the resolution logic.
var Catalog = []Definition{
	{Name: "生命", Short: "HP", Label: "❤️生命(HP)", Gen: GenFixed, Fixed: 12},
	{Name: "魔力", Short: "MP", Label: "🧪魔力(MP)", Gen: GenFixed, Fixed: 10},
	{Name: "理智", Short: "SAN", Label: "🌀理智(SAN)", Gen: GenFixed, Fixed: 50},
	{Name: "力量", Short: "STR", Label: "💪力量(STR)", Core: true, Gen: GenRoll3d6x5},
	{Name: "体质", Short: "CON", Label: "🛡️体质(CON)", Core: true, Gen: GenRoll3d6x5},
	{Name: "体型", Short: "SIZ", Label: "📏体型(SIZ)", Core: true, Gen: GenRoll2d6p6x5},
	{Name: "敏捷", Short: "DEX", Label: "🏃敏捷(DEX)", Core: true, Gen: GenRoll3d6x5},
	{Name: "外貌", Short: "APP", Label: "✨外貌(APP)", Core: true, Gen: GenRoll3d6x5},
	{Name: "智力", Short: "INT", Label: "🧠智力(INT)", Core: true, Gen: GenRoll2d6p6x5},
	{Name: "意志", Short: "POW", Label: "🔮意志(POW)", Core: true, Gen: GenRoll3d6x5},
	{Name: "教育", Short: "EDU", Label: "📚教育(EDU)", Core: true, Gen: GenRoll2d6p6x5},
	{Name: "幸运", Short: "LUCK", Label: "🍀幸运(LUCK)", Core: true, Gen: GenRoll3d6x5},
	{Name: "伤害加值", Short: "DB", Label: "💥伤害加值(DB)", Gen: GenDerived},
	{Name: "闪避", Short: "DODGE", Label: "🤸闪避(DODGE)", Gen: GenDerived},
	{Name: "移动力", Short: "MOV", Label: "⚡移动力(MOV)", Gen: GenDerived},
}

// aliases maps informal, English, and emoji-decorated names to
// canonical names. Keys are lowercase; lookup is case-insensitive.
var aliases = map[string]string{
	// base attributes
	"str": "力量", "💪力量(str)": "力量",
	"con": "体质", "🛡️体质(con)": "体质",
	"siz": "体型", "📏体型(siz)": "体型",
	"dex": "敏捷", "🏃敏捷(dex)": "敏捷",
	"app": "外貌", "✨外貌(app)": "外貌",
	"int": "智力", "灵感": "智力", "🧠智力(int)": "智力",
	"pow": "意志", "🔮意志(pow)": "意志",
	"edu": "教育", "📚教育(edu)": "教育",
	"luck": "幸运", "运气": "幸运", "🍀幸运(luck)": "幸运",
	// auto-computed attributes
	"hp": "生命", "体力": "生命", "❤️生命(hp)": "生命",
	"mp": "魔力", "魔法": "魔力", "🧪魔力(mp)": "魔力",
	"san": "理智", "理智值": "理智", "san值": "理智", "🌀理智(san)": "理智",
	"db": "伤害加值", "💥伤害加值(db)": "伤害加值",
	"dodge": "闪避", "🤸闪避(dodge)": "闪避",
	"mov": "移动力", "⚡移动力(mov)": "移动力",
	// common skill aliases
	"计算机使用": "计算机", "电脑": "计算机",
	"信誉": "信用", "信用评级": "信用",
	"克苏鲁神话": "克苏鲁", "cm": "克苏鲁",
	"汽车驾驶": "驾驶", "汽车": "驾驶",
	"图书馆使用": "图书馆",
	"撬锁": "开锁", "锁匠": "开锁",
	"自然学": "博物学",
	"重型机械": "重型操作", "操作重型机械": "重型操作", "重型": "重型操作",
}

var (
	byName  = make(map[string]*Definition)
	byShort = make(map[string]*Definition)

	// CoreShorts lists the short codes that sum into the core total.
	CoreShorts []string
	// AutoShorts lists the auto-computed short codes excluded from it.
	AutoShorts []string
)

func init() {
	for i := range Catalog {
		def := &Catalog[i]
		byName[def.Name] = def
		byShort[def.Short] = def
		if def.Core {
			CoreShorts = append(CoreShorts, def.Short)
		} else {
			AutoShorts = append(AutoShorts, def.Short)
		}
	}
}

// ResolveAlias maps an informal name to its canonical form. Unresolved
// names pass through trimmed.
func ResolveAlias(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if canonical, ok := aliases[strings.ToLower(trimmed)]; ok {
		return canonical
	}
	return trimmed
}

// Lookup finds a base attribute by canonical name.
func Lookup(name string) (*Definition, bool) {
	def, ok := byName[name]
	return def, ok
}

// ByShort finds a base attribute by short code.
func ByShort(short string) (*Definition, bool) {
	def, ok := byShort[short]
	return def, ok
}

// IsBase reports whether name is a canonical base attribute name.
func IsBase(name string) bool {
	_, ok := byName[name]
	return ok
}

// Names returns every canonical base attribute name in catalog order.
func Names() []string {
	names := make([]string, 0, len(Catalog))
	for i := range Catalog {
		names = append(names, Catalog[i].Name)
	}
	return names
}

// DamageBonusExpr returns the damage bonus expression for a STR+SIZ
// total, per the 7th edition table. Totals below 2 fall back to "-2".
func DamageBonusExpr(str, siz int) string {
	total := str + siz
	switch {
	case total >= 205:
		return "2d6"
	case total >= 165:
		return "1d6"
	case total >= 125:
		return "1d4"
	case total >= 85:
		return "0"
	case total >= 65:
		return "-1"
	default:
		return "-2"
	}
}

// Movement returns the movement rate derived from DEX, STR and SIZ.
func Movement(dex, str, siz int) int {
	if dex < siz && str < siz {
		return 7
	}
	if dex > siz && str > siz {
		return 9
	}
	return 8
}

// DefaultValue generates a fresh default value for the named base
// attribute. Derived attributes (DB/DODGE/MOV) roll brand-new inputs
// rather than reading an existing sheet; resets are deliberately
// independent of the caller's current values.
func DefaultValue(name string, r *dice.Roller) (int, error) {
	def, ok := byName[name]
	if !ok {
		return 0, fmt.Errorf("%s is not a base attribute", name)
	}

	switch def.Gen {
	case GenFixed:
		return def.Fixed, nil
	case GenRoll3d6x5:
		_, sum := r.Roll(3, 6, 0)
		return sum * 5, nil
	case GenRoll2d6p6x5:
		_, sum := r.Roll(2, 6, 0)
		return (sum + 6) * 5, nil
	}

	switch def.Short {
	case "DB":
		str, _ := DefaultValue("力量", r)
		siz, _ := DefaultValue("体型", r)
		return r.DamageBonusValue(DamageBonusExpr(str, siz)), nil
	case "DODGE":
		dex, _ := DefaultValue("敏捷", r)
		return dex / 2, nil
	case "MOV":
		dex, _ := DefaultValue("敏捷", r)
		str, _ := DefaultValue("力量", r)
		siz, _ := DefaultValue("体型", r)
		return Movement(dex, str, siz), nil
	}
	return 0, fmt.Errorf("no default formula for %s", name)
}

// GenerateSheet rolls a complete fresh attribute set keyed by short
// code: fixed HP/MP/SAN, rolled core attributes, then DB/DODGE/MOV
// derived from the core values just rolled.
func GenerateSheet(r *dice.Roller) map[string]int {
	sheet := make(map[string]int, len(Catalog))

	for i := range Catalog {
		def := &Catalog[i]
		switch def.Gen {
		case GenFixed:
			sheet[def.Short] = def.Fixed
		case GenRoll3d6x5:
			_, sum := r.Roll(3, 6, 0)
			sheet[def.Short] = sum * 5
		case GenRoll2d6p6x5:
			_, sum := r.Roll(2, 6, 0)
			sheet[def.Short] = (sum + 6) * 5
		}
	}

	str, siz, dex := sheet["STR"], sheet["SIZ"], sheet["DEX"]
	sheet["DB"] = r.DamageBonusValue(DamageBonusExpr(str, siz))
	sheet["DODGE"] = dex / 2
	sheet["MOV"] = Movement(dex, str, siz)
	return sheet
}
