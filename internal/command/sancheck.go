package command

import (
	"fmt"
	"strings"

	"github.com/miskatonicsociety/keeperbot/internal/template"
)

// executeSanCheck handles /san检定 (/sc). The rule parameter is
// "成功扣除/失败扣除", each side a dice expression or plain number. The
// current SAN value is the threshold: a d100 below it succeeds, equal
// or above fails, and the matching side is deducted. SAN never drops
// below zero.
func (r *Resolver) executeSanCheck(userID, nickname, params string) Result {
	rule, reason := splitFirst(params)
	if rule == "" {
		return failure(fmt.Sprintf("❌ %s的SAN检定缺少扣除规则！正确格式：/sc [成功扣除/失败扣除] [原因]（如/sc 1d5/1d6 目睹怪物）", nickname))
	}

	parts := strings.SplitN(rule, "/", 2)
	if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" || strings.TrimSpace(parts[1]) == "" {
		return failure(fmt.Sprintf("❌ %s的SAN检定规则格式错误「%s」！正确格式：[成功扣除]/[失败扣除]（如1d5/1d6、0/1d10）", nickname, rule))
	}
	successExpr := strings.TrimSpace(parts[0])
	failExpr := strings.TrimSpace(parts[1])

	rec, ok := r.store.Get(userID)
	if !ok {
		return failure(fmt.Sprintf("❌ %s还未创建角色！无法进行SAN检定，可发送/创建角色或/st指令自动创建。", nickname))
	}

	san := rec.Attributes["SAN"]
	if san <= 0 {
		return failure(fmt.Sprintf("❌ %s的SAN值已为0，无法继续检定！", nickname))
	}

	roll := r.roller.D100()

	var judgement, deductExpr, deductType string
	if roll < san {
		judgement = "✅ SAN检定成功！"
		deductExpr = successExpr
		deductType = fmt.Sprintf("成功扣除：%s", successExpr)
	} else {
		judgement = "❌ SAN检定失败！"
		deductExpr = failExpr
		deductType = fmt.Sprintf("失败扣除：%s", failExpr)
	}

	deduct := r.roller.SanDeductValue(deductExpr)
	after := san - deduct
	if after < 0 {
		after = 0
	}

	if _, err := r.store.SetAttribute(userID, "SAN", after); err != nil {
		return failure(fmt.Sprintf("❌ %s的SAN值更新失败，请重试！", nickname))
	}

	return success(template.Render(r.template("san_check"), map[string]any{
		"nickname":     nickname,
		"reason_desc":  reasonDesc(nickname, reason) + "SAN检定",
		"current_san":  san,
		"roll_result":  roll,
		"judgement":    judgement,
		"deduct_value": deduct,
		"deduct_type":  deductType,
		"before_san":   san,
		"after_san":    after,
	}))
}
