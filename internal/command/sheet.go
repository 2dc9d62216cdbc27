package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/miskatonicsociety/keeperbot/internal/attribute"
	"github.com/miskatonicsociety/keeperbot/internal/character"
	"github.com/miskatonicsociety/keeperbot/internal/template"
)

// executeImport handles /导入 (/st): parse attribute assignments and
// apply them, auto-creating the character when missing.
func (r *Resolver) executeImport(userID, platformNickname, nickname, params string) Result {
	assignments, err := attribute.ParseImport(params, r.roller)
	if err != nil {
		return failure(template.Render(r.template("import_error"), map[string]any{
			"reason":     importErrorText(err),
			"attr_names": strings.Join(attribute.Names(), "、"),
		}))
	}

	rec, created, changes := r.store.Import(userID, platformNickname, assignments, r.roller)

	lines := make([]string, 0, len(changes))
	for _, c := range changes {
		if c.IsBase {
			lines = append(lines, fmt.Sprintf("🔹 基础属性-%s(%s)：%d → %d", c.Name, c.Short, c.Old, c.New))
			continue
		}
		old := "无"
		if c.HadOld {
			old = strconv.Itoa(c.Old)
		}
		lines = append(lines, fmt.Sprintf("🔹 技能-%s：%s → %d", c.Name, old, c.New))
	}

	tip := r.template("import_update_tip")
	if created {
		tip = r.template("import_auto_create_tip")
	}

	return success(template.Render(r.template("import_success"), map[string]any{
		"nickname":   nickname,
		"tip":        tip,
		"changes":    strings.Join(lines, "\n"),
		"core_total": rec.CoreTotal,
	}))
}

func importErrorText(err error) string {
	switch {
	case errors.Is(err, attribute.ErrNoParameters):
		return "未输入任何属性参数"
	case errors.Is(err, attribute.ErrNoRecognizedAttributes):
		return "无法识别属性格式，正确示例：力量80敏捷75 或 伤害加值1d4"
	default:
		return err.Error()
	}
}

// executeCreateCharacter handles /创建角色: generate a fresh sheet,
// overwriting any existing record.
func (r *Resolver) executeCreateCharacter(userID, platformNickname, params string) Result {
	nickname := strings.TrimSpace(params)
	if nickname == "" {
		nickname = platformNickname
	}

	rec := r.store.Create(userID, nickname, r.roller)
	display := rec.Nickname
	if display == "" {
		display = character.DefaultNickname
	}

	msg := template.Render(r.template("character_output"), map[string]any{
		"nickname":   display,
		"attr_list":  attrList(rec),
		"core_total": rec.CoreTotal,
	})
	msg += fmt.Sprintf("\n✅ %s的角色创建成功！可通过/st指令新增/修改属性技能，/查询角色查看完整属性。", display)
	return success(msg)
}

// executeQueryCharacter handles /查询角色: display the full sheet.
func (r *Resolver) executeQueryCharacter(userID, nickname, params string) Result {
	if strings.TrimSpace(params) != "" {
		return failure(fmt.Sprintf("❌ %s的/查询角色命令无需参数！直接发送/查询角色即可。", nickname))
	}

	rec, ok := r.store.Get(userID)
	if !ok {
		return failure(fmt.Sprintf("❌ %s还未创建角色！可发送/创建角色或/st指令自动创建。", nickname))
	}

	return success(template.Render(r.template("character_query"), map[string]any{
		"nickname":   nickname,
		"attr_list":  attrList(rec),
		"core_total": rec.CoreTotal,
	}))
}

// executeQuerySkill handles /查询技能 (/qs): list custom skills, or
// show one attribute or skill when a name is given.
func (r *Resolver) executeQuerySkill(userID, nickname, params string) Result {
	rec, ok := r.store.Get(userID)
	if !ok {
		return failure(fmt.Sprintf("❌ %s还未创建角色！可发送/创建角色或/st指令自动创建。", nickname))
	}

	name := strings.TrimSpace(params)
	if name != "" {
		found, display, value := rec.Value(name)
		if !found {
			return failure(fmt.Sprintf("❌ %s未找到技能/属性「%s」！可发送/查询技能查看全部技能。", nickname, name))
		}
		return success(template.Render(r.template("single_skill"), map[string]any{
			"nickname":    nickname,
			"skill_name":  display,
			"skill_value": value,
		}))
	}

	names := rec.SkillNames()
	var skillList string
	if len(names) == 0 {
		skillList = "暂无自定义技能（可通过/st指令添加，如/st 图书馆使用60）"
	} else {
		lines := make([]string, len(names))
		for i, n := range names {
			lines[i] = fmt.Sprintf("🔹 %s：%d", n, rec.Skills[n])
		}
		skillList = strings.Join(lines, "\n")
	}

	return success(template.Render(r.template("skill_query"), map[string]any{
		"nickname":    nickname,
		"skill_list":  skillList,
		"skill_count": len(names),
	}))
}

// executeDeleteAttribute handles /删除 (/del): reset a base attribute
// to a fresh default, or remove a custom skill.
func (r *Resolver) executeDeleteAttribute(userID, nickname, params string) Result {
	name := strings.TrimSpace(params)
	if name == "" {
		return failure(template.Render(r.template("delete_error"), map[string]any{
			"reason": "未指定要删除的属性/技能名",
		}))
	}

	desc, rec, err := r.store.DeleteAttribute(userID, name, r.roller)
	if err != nil {
		reason := err.Error()
		switch {
		case errors.Is(err, character.ErrNoCharacter):
			reason = "你还未创建角色，无属性/技能可删除！"
		case errors.Is(err, character.ErrNotFound):
			reason = fmt.Sprintf("未找到属性/技能「%s」，无法删除！", name)
		}
		return failure(template.Render(r.template("delete_error"), map[string]any{
			"reason": reason,
		}))
	}

	return success(template.Render(r.template("delete_success"), map[string]any{
		"nickname":    nickname,
		"description": desc,
		"core_total":  rec.CoreTotal,
	}))
}

// executeDeleteCharacter handles /删除角色 (/del_all): drop the whole
// record.
func (r *Resolver) executeDeleteCharacter(userID, nickname, params string) Result {
	if strings.TrimSpace(params) != "" {
		return failure(fmt.Sprintf("❌ %s的/删除角色命令无需参数！直接发送即可删除整个角色数据。", nickname))
	}

	if !r.store.DeleteCharacter(userID) {
		return failure(fmt.Sprintf("❌ %s还未创建角色，无角色数据可删除！", nickname))
	}

	return success(template.Render(r.template("delete_character"), map[string]any{
		"nickname": nickname,
	}))
}

// executeRename handles /改名 (/nn).
func (r *Resolver) executeRename(userID, params string) Result {
	newNickname := strings.TrimSpace(params)
	old, err := r.store.Rename(userID, newNickname)
	if err != nil {
		reason := err.Error()
		switch {
		case errors.Is(err, character.ErrEmptyNickname):
			reason = "新昵称不能为空！"
		case errors.Is(err, character.ErrNoCharacter):
			reason = "你还未创建角色，无法改名！请先发送/创建角色。"
		}
		return failure(template.Render(r.template("rename_error"), map[string]any{
			"reason": reason,
		}))
	}

	return success(template.Render(r.template("rename_success"), map[string]any{
		"old_nickname": old,
		"new_nickname": newNickname,
	}))
}

// attrList renders the full attribute block in catalog order.
func attrList(rec *character.Record) string {
	lines := make([]string, 0, len(attribute.Catalog))
	for i := range attribute.Catalog {
		def := &attribute.Catalog[i]
		lines = append(lines, fmt.Sprintf("🔹 %s：%d", def.Label, rec.Attributes[def.Short]))
	}
	return strings.Join(lines, "\n")
}
