// Package template renders user-facing chat messages from
// configurable templates. Placeholders are {name} fields substituted
// by exact match; unresolved placeholders survive as literal text so a
// user-supplied template can never fail a command.
package template

import (
	"fmt"
	"strings"
)

// Render substitutes every {key} placeholder present in data.
func Render(tmpl string, data map[string]any) string {
	out := tmpl
	for key, value := range data {
		out = strings.ReplaceAll(out, "{"+key+"}", fmt.Sprint(value))
	}
	return out
}

// Lookup returns the template for key, preferring the user override.
func Lookup(overrides map[string]string, key string) string {
	if tmpl, ok := overrides[key]; ok && tmpl != "" {
		return tmpl
	}
	return Defaults[key]
}

// Defaults holds the built-in message templates, keyed the same way
// the config file overrides them.
var Defaults = map[string]string{
	"roll": `🎲 {nickname}投掷「{expression}」结果：
{reason_desc}
单次结果：{rolls}
修正值：{modifier}
总计：{total}
{judgement}`,

	"check": `🎲 {nickname}的检定（阈值：{threshold}）
{reason_desc}
投掷结果：{roll_result}
{judgement}`,

	"attr_check": `🎲 {attr_type}-{attr_name}检定（阈值：{threshold}）
{reason_desc}「{attr_name}」{attr_type}检定
{nickname}的{attr_name}{attr_type}值：{threshold}
投掷结果：{roll_result}
{judgement}
`,

	"attr_check_mod": `🎲 {attr_type}-{attr_name}检定（修正后阈值：{threshold}）
{reason_desc}「{attr_name}」{attr_type}检定
🔹 {attr_name}基础值：{base_value}
🔹 修正值：{modifier}
🔹 最终检定阈值：{threshold}
投掷结果：{roll_result}
{judgement}
`,

	"san_check": `🎲 🌀 {nickname}的SAN值（理智）检定
{reason_desc}
{nickname}的当前SAN值：{current_san}（检定阈值）
D100投掷结果：{roll_result}
{judgement}
➡️ 扣除SAN值：{deduct_value}（{deduct_type}）
🔹 扣除前SAN值：{before_san}
🔹 扣除后SAN值：{after_san}
`,

	"character_output": `🎭 {nickname}的角色属性：
{attr_list}
📊 核心基础属性总值：{core_total}
`,

	"character_query": `🎭 {nickname}的绑定角色属性：
{attr_list}
📊 核心基础属性总数：{core_total}
`,

	"skill_query": `🎭 {nickname}的角色技能列表：
{skill_list}
📊 技能总数：{skill_count}
`,

	"single_skill": `🎭 {nickname}的角色技能/属性查询结果：
🔹 {skill_name}：{skill_value}
`,

	"import_success": `✅ {nickname}的角色属性修改/新增成功！
{tip}
修改/新增的属性：
{changes}
📊 当前核心基础属性总值：{core_total}
`,

	"import_auto_create_tip": "🔔 检测到你未创建角色，已自动生成预设属性并新增/覆盖指定值！",
	"import_update_tip":      "🔔 已新增/覆盖你指定的属性值！",

	"import_error": `❌ 属性修改失败：
{reason}
💡 正确格式：/st 力量80敏捷75 或 /st 力量80 感知75（属性值范围0-200）
💡 基础属性：{attr_names}
`,

	"delete_success": `✅ {nickname}的角色属性操作成功！
{description}
📊 当前核心基础属性总值：{core_total}
`,

	"delete_character": `✅ {nickname}的角色已删除成功！
你的所有角色数据已清空，可发送「/创建角色」重新生成。`,

	"delete_error": `❌ 属性操作失败：
{reason}
💡 支持的操作：
1. /删除 [基础属性名] → 重置为默认值（如/删除 力量）
2. /删除 [自定义技能名] → 直接删除（如/删除 感知）
`,

	"rename_success": `✅ {old_nickname}的角色已成功改名为「{new_nickname}」！
`,

	"rename_error": `❌ 角色改名失败：
{reason}
💡 正确格式：/nn [新昵称]（如/nn 冒险者小明）`,
}
