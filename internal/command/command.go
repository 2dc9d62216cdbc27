// Package command parses slash commands from chat text and resolves
// them against the dice engine, attribute catalog, and character
// store. Each command is a single-shot transaction: parse, validate,
// resolve, mutate (if applicable), render.
package command

import (
	"fmt"
	"strings"

	"github.com/miskatonicsociety/keeperbot/internal/character"
	"github.com/miskatonicsociety/keeperbot/internal/config"
	"github.com/miskatonicsociety/keeperbot/internal/dice"
	"github.com/miskatonicsociety/keeperbot/internal/template"
)

// shortVerbs maps shortcut prefixes to their long verb form. Shortcut
// resolution is a literal substitution before dispatch.
var shortVerbs = map[string]string{
	"r":       "掷骰",
	"rd":      "检定",
	"st":      "导入",
	"del":     "删除",
	"del_all": "删除角色",
	"qs":      "查询技能",
	"sc":      "san检定",
	"nn":      "改名",
}

// knownVerbs lists every long verb this plugin handles.
var knownVerbs = map[string]bool{
	"掷骰":    true,
	"检定":    true,
	"san检定": true,
	"创建角色":  true,
	"查询角色":  true,
	"查询技能":  true,
	"导入":    true,
	"删除":    true,
	"删除角色":  true,
	"改名":    true,
	"帮助":    true,
	"help":  true,
}

// Command is a parsed slash command: the long verb plus its raw
// parameter text.
type Command struct {
	Verb   string
	Params string
}

// Parse extracts a command from chat text. Returns false when the text
// is not a slash command or the verb belongs to another plugin.
// Arguments are space-delimited; everything after the verb stays raw.
func Parse(input string) (*Command, bool) {
	s := strings.TrimSpace(input)
	if !strings.HasPrefix(s, "/") {
		return nil, false
	}

	rest := s[1:]
	verb := rest
	params := ""
	if i := strings.IndexAny(rest, " \t"); i >= 0 {
		verb = rest[:i]
		params = strings.TrimSpace(rest[i+1:])
	}

	if long, ok := shortVerbs[verb]; ok {
		verb = long
	}
	if !knownVerbs[verb] {
		return nil, false
	}
	return &Command{Verb: verb, Params: params}, true
}

// Result is the outcome of one command: whether it succeeded, the
// user-facing message, and whether this plugin handled the input at
// all.
type Result struct {
	OK      bool
	Message string
	Handled bool
}

func success(msg string) Result {
	return Result{OK: true, Message: msg, Handled: true}
}

func failure(msg string) Result {
	return Result{OK: false, Message: msg, Handled: true}
}

// Resolver dispatches parsed commands. It owns no state of its own
// beyond its collaborators.
type Resolver struct {
	store  *character.Store
	cfg    *config.Config
	roller *dice.Roller
}

// NewResolver creates a resolver. A nil roller falls back to the
// shared generator.
func NewResolver(store *character.Store, cfg *config.Config, roller *dice.Roller) *Resolver {
	if roller == nil {
		roller = dice.NewRoller(nil)
	}
	return &Resolver{store: store, cfg: cfg, roller: roller}
}

// Execute runs one inbound chat message through the resolver. Inputs
// that are not commands of this plugin return Handled=false so the
// host framework can pass them on.
func (r *Resolver) Execute(userID, platformNickname, input string) Result {
	cmd, ok := Parse(input)
	if !ok {
		return Result{Handled: false}
	}
	if userID == "" {
		return failure("❌ 无法获取你的用户ID，无法执行指令！")
	}

	nickname := r.store.Nickname(userID, platformNickname)

	switch cmd.Verb {
	case "掷骰":
		return r.executeRoll(nickname, cmd.Params)
	case "检定":
		return r.executeCheck(userID, nickname, cmd.Params)
	case "san检定":
		return r.executeSanCheck(userID, nickname, cmd.Params)
	case "导入":
		return r.executeImport(userID, platformNickname, nickname, cmd.Params)
	case "删除":
		return r.executeDeleteAttribute(userID, nickname, cmd.Params)
	case "删除角色":
		return r.executeDeleteCharacter(userID, nickname, cmd.Params)
	case "创建角色":
		return r.executeCreateCharacter(userID, platformNickname, cmd.Params)
	case "查询角色":
		return r.executeQueryCharacter(userID, nickname, cmd.Params)
	case "查询技能":
		return r.executeQuerySkill(userID, nickname, cmd.Params)
	case "改名":
		return r.executeRename(userID, cmd.Params)
	case "帮助", "help":
		return success(HelpText)
	}
	return Result{Handled: false}
}

// template looks up a message template, honoring config overrides.
func (r *Resolver) template(key string) string {
	return template.Lookup(r.cfg.Templates, key)
}

// splitFirst splits parameter text into the primary parameter and the
// free-text reason that follows it.
func splitFirst(params string) (first, reason string) {
	params = strings.TrimSpace(params)
	if params == "" {
		return "", ""
	}
	parts := strings.SplitN(params, " ", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.TrimSpace(parts[1])
}

// reasonDesc builds the narrative prefix for roll and check output.
func reasonDesc(nickname, reason string) string {
	if reason != "" {
		return fmt.Sprintf("%s因为%s所以进行", nickname, reason)
	}
	return fmt.Sprintf("%s进行", nickname)
}

// judge applies the check judgement order: critical success, plain
// success, critical failure, plain failure. Critical thresholds take
// precedence over the comparison against the target.
func (r *Resolver) judge(roll, threshold int) string {
	switch {
	case roll <= r.cfg.Dice.SuccessThreshold:
		return "✨ 大成功！"
	case roll <= threshold:
		return "✅ 检定成功！"
	case roll >= r.cfg.Dice.FailThreshold:
		return "💥 大失败！"
	default:
		return "❌ 检定失败！"
	}
}

// HelpText describes every verb the plugin handles.
const HelpText = `骰子/角色管理插件
用法：
1. /r [表达式] [原因] → 投掷骰子（如/r d100 探索密室）
2. /rd [参数] [原因] → 检定（支持三种模式）
   - 模式1：/rd [阈值] [原因]（如/rd 70 躲避陷阱）
   - 模式2：/rd [属性/技能名] [原因]（如/rd 力量、/rd 伤害加值）
   - 模式3：/rd [属性+修正值] [原因]（如/rd 力量+10、/rd 伤害加值-5）
3. /sc [成功扣除/失败扣除] [原因] → SAN值（理智）检定（如/sc 1d5/1d6 目睹怪物）
   - 规则：以当前SAN值为阈值掷D100
     - 结果 < SAN值：检定成功，扣除「成功扣除」值
     - 结果 ≥ SAN值：检定失败，扣除「失败扣除」值
     - SAN值最低为0，不会出现负数
4. /创建角色 [昵称] → 生成预设基础属性（含伤害加值/闪避/移动力初始值）
5. /查询角色 → 查看所有属性
6. /查询技能 [属性/技能名] → 查看自定义技能，或单独查看指定技能/属性的值
7. /st 或 /导入 [属性数值] → 新增/修改属性/技能（如/st 力量80 伤害加值1d4，属性值范围0-200）
8. /删除 或 /del [属性/技能名] → 基础属性重置为默认值，自定义技能直接删除
9. /删除角色 或 /del_all → 删除整个角色数据
10. /nn [新昵称] → 修改角色昵称
⚠️ 生命/魔力/理智/伤害加值/闪避/移动力为自动计算属性，不计入总属性值`
