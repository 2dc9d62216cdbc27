package command

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/miskatonicsociety/keeperbot/internal/attribute"
	"github.com/miskatonicsociety/keeperbot/internal/template"
)

// attrModRegex matches mode 3 parameters like "力量+10" or
// "伤害加值-5": an attribute name followed by a signed modifier.
var attrModRegex = regexp.MustCompile(`^([^+-]+)([+-]\d+)$`)

// executeCheck handles /检定 (/rd) in its three modes: a bare numeric
// threshold, an attribute or skill name, or a name with a modifier.
func (r *Resolver) executeCheck(userID, nickname, params string) Result {
	first, reason := splitFirst(params)
	if first == "" {
		return failure(fmt.Sprintf(`❌ %s的检定缺少参数！正确格式：
1. /rd [阈值] [原因]（如/rd 70 躲避陷阱）
2. /rd [属性/技能名] [原因]（如/rd 力量）
3. /rd [属性+修正值] [原因]（如/rd 力量+10）`, nickname))
	}

	if m := attrModRegex.FindStringSubmatch(first); m != nil {
		return r.checkAttributeModified(userID, nickname, strings.TrimSpace(m[1]), m[2], reason)
	}
	if threshold, err := strconv.Atoi(first); err == nil {
		return r.checkThreshold(nickname, threshold, reason)
	}
	return r.checkAttribute(userID, nickname, first, reason)
}

// checkThreshold is mode 1: the user supplies the threshold directly.
func (r *Resolver) checkThreshold(nickname string, threshold int, reason string) Result {
	if threshold < 1 || threshold > 199 {
		return failure(fmt.Sprintf("❌ %s的检定阈值范围必须是1-199！当前输入：%d", nickname, threshold))
	}

	roll := r.roller.D100()
	return success(template.Render(r.template("check"), map[string]any{
		"nickname":    nickname,
		"threshold":   threshold,
		"reason_desc": reasonDesc(nickname, reason) + "检定",
		"roll_result": roll,
		"judgement":   r.judge(roll, threshold),
	}))
}

// checkAttribute is mode 2: the stored attribute or skill value is the
// threshold.
func (r *Resolver) checkAttribute(userID, nickname, attrName, reason string) Result {
	rec, ok := r.store.Get(userID)
	if !ok {
		return failure(fmt.Sprintf("❌ %s还未创建角色！无法获取「%s」值，可发送/创建角色或/st指令自动创建。", nickname, attrName))
	}

	found, display, value := rec.Value(attrName)
	if !found {
		return failure(fmt.Sprintf("❌ %s未找到属性/技能「%s」！可发送/查询角色查看已有属性。", nickname, attrName))
	}
	if value < 0 || value > 199 {
		return failure(fmt.Sprintf("❌ %s的「%s」值异常（%d），无法检定！有效范围：0-199", nickname, display, value))
	}

	roll := r.roller.D100()
	return success(template.Render(r.template("attr_check"), map[string]any{
		"nickname":    nickname,
		"attr_name":   display,
		"attr_type":   attrType(attrName),
		"threshold":   value,
		"reason_desc": reasonDesc(nickname, reason),
		"roll_result": roll,
		"judgement":   r.judge(roll, value),
	}))
}

// checkAttributeModified is mode 3: the stored value plus a signed
// modifier becomes the threshold.
func (r *Resolver) checkAttributeModified(userID, nickname, attrName, modText, reason string) Result {
	rec, ok := r.store.Get(userID)
	if !ok {
		return failure(fmt.Sprintf("❌ %s还未创建角色！无法获取「%s」值，可发送/创建角色或/st指令自动创建。", nickname, attrName))
	}

	found, display, base := rec.Value(attrName)
	if !found {
		return failure(fmt.Sprintf("❌ %s未找到属性/技能「%s」！可发送/查询角色查看已有属性。", nickname, attrName))
	}

	modifier, _ := strconv.Atoi(modText)
	threshold := base + modifier
	if threshold < 0 || threshold > 199 {
		return failure(fmt.Sprintf("❌ %s的「%s」修正后阈值异常（%d + %s = %d），超出检定范围0-199！", nickname, display, base, modText, threshold))
	}

	roll := r.roller.D100()
	return success(template.Render(r.template("attr_check_mod"), map[string]any{
		"nickname":    nickname,
		"attr_name":   display,
		"attr_type":   attrType(attrName),
		"base_value":  base,
		"modifier":    modText,
		"threshold":   threshold,
		"reason_desc": reasonDesc(nickname, reason),
		"roll_result": roll,
		"judgement":   r.judge(roll, threshold),
	}))
}

// attrType labels a name as a base attribute or a custom skill for
// check output.
func attrType(name string) string {
	if attribute.IsBase(attribute.ResolveAlias(name)) {
		return "基础属性"
	}
	return "自定义技能"
}
