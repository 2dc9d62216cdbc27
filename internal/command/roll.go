package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/miskatonicsociety/keeperbot/internal/character"
	"github.com/miskatonicsociety/keeperbot/internal/dice"
	"github.com/miskatonicsociety/keeperbot/internal/template"
)

// executeRoll handles /掷骰 (/r): roll a dice expression with an
// optional free-text reason.
func (r *Resolver) executeRoll(nickname, params string) Result {
	exprText, reason := splitFirst(params)
	if exprText == "" {
		return failure(fmt.Sprintf("❌ %s的掷骰缺少骰子表达式！正确格式：/r [表达式] [原因]（如/r d100 探索密室）", nickname))
	}

	expr, err := dice.Parse(exprText)
	if err != nil {
		return failure(fmt.Sprintf("❌ %s的掷骰失败：%s", nickname, diceErrorText(exprText, err)))
	}

	rolls, total := r.roller.RollExpression(expr)
	return success(template.Render(r.template("roll"), map[string]any{
		"nickname":    nickname,
		"expression":  expr.String(),
		"reason_desc": reasonDesc(nickname, reason) + "掷骰",
		"rolls":       r.rollDetail(rolls),
		"modifier":    modifierText(expr.Modifier),
		"total":       total,
		"judgement":   r.rollJudgement(expr, total),
	}))
}

// RollTool rolls an expression without any user context. It backs the
// stateless tool surface exposed to LLM callers.
func (r *Resolver) RollTool(exprText string) (string, error) {
	expr, err := dice.Parse(exprText)
	if err != nil {
		return "", fmt.Errorf("%s", diceErrorText(exprText, err))
	}

	rolls, total := r.roller.RollExpression(expr)
	msg := template.Render(r.template("roll"), map[string]any{
		"nickname":    character.DefaultNickname,
		"expression":  expr.String(),
		"reason_desc": reasonDesc(character.DefaultNickname, "") + "掷骰",
		"rolls":       r.rollDetail(rolls),
		"modifier":    modifierText(expr.Modifier),
		"total":       total,
		"judgement":   r.rollJudgement(expr, total),
	})
	return msg, nil
}

// rollDetail formats the individual die results, honoring the
// show_detail config switch.
func (r *Resolver) rollDetail(rolls []int) string {
	if !r.cfg.Dice.ShowDetail {
		return "（已隐藏）"
	}
	parts := make([]string, len(rolls))
	for i, v := range rolls {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " + ")
}

// rollJudgement flags critical results for a plain roll. Only a single
// d100 qualifies; multi-die and non-percentile rolls have no critical
// bands.
func (r *Resolver) rollJudgement(expr dice.Expression, total int) string {
	if expr.Count != 1 || expr.Faces != 100 {
		return ""
	}
	switch {
	case total <= r.cfg.Dice.SuccessThreshold:
		return "✨ 大成功！"
	case total >= r.cfg.Dice.FailThreshold:
		return "💥 大失败！"
	default:
		return ""
	}
}

func modifierText(modifier int) string {
	switch {
	case modifier > 0:
		return fmt.Sprintf("+%d", modifier)
	case modifier < 0:
		return strconv.Itoa(modifier)
	default:
		return "无"
	}
}

// diceErrorText maps a parse error to its user-facing description.
func diceErrorText(exprText string, err error) string {
	switch {
	case errors.Is(err, dice.ErrCountOutOfRange):
		return fmt.Sprintf("骰子数量超出范围（1-%d）", dice.MaxCount)
	case errors.Is(err, dice.ErrFacesOutOfRange):
		return fmt.Sprintf("骰子面数超出范围（1-%d）", dice.MaxFaces)
	default:
		return fmt.Sprintf("无效的骰子表达式「%s」（格式示例：d100、2d6+3）", exprText)
	}
}
