// Command sheet prints a stored character sheet as a terminal table.
// It reads the JSON character file directly, so it works on a stopped
// bot's data without going through the gateway.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"

	"github.com/alexeyco/simpletable"

	"github.com/miskatonicsociety/keeperbot/internal/attribute"
	"github.com/miskatonicsociety/keeperbot/internal/character"
	"github.com/miskatonicsociety/keeperbot/internal/storage"
)

func main() {
	storePath := flag.String("store", "data/characters.json", "Path to the character JSON file")
	userID := flag.String("user", "", "User ID to display (empty lists all users)")
	flag.Parse()

	backend := storage.NewJSONFile(*storePath)
	records, err := backend.Load()
	if err != nil {
		log.Fatalf("Failed to load %s: %v", *storePath, err)
	}

	if *userID == "" {
		listUsers(records)
		return
	}

	rec, ok := records[*userID]
	if !ok {
		log.Fatalf("No character for user %q", *userID)
	}

	nickname := rec.Nickname
	if nickname == "" {
		nickname = character.DefaultNickname
	}
	fmt.Printf("%s (user %s)\n", nickname, *userID)
	fmt.Println(sheetTable(rec))
}

func listUsers(records map[string]*character.Record) {
	if len(records) == 0 {
		fmt.Println("No characters stored.")
		return
	}

	ids := make([]string, 0, len(records))
	for id := range records {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	table := simpletable.New()
	table.Header = &simpletable.Header{
		Cells: []*simpletable.Cell{
			{Align: simpletable.AlignLeft, Text: "User ID"},
			{Align: simpletable.AlignLeft, Text: "Nickname"},
			{Align: simpletable.AlignRight, Text: "Core Total"},
			{Align: simpletable.AlignRight, Text: "Skills"},
		},
	}
	for _, id := range ids {
		rec := records[id]
		nickname := rec.Nickname
		if nickname == "" {
			nickname = character.DefaultNickname
		}
		table.Body.Cells = append(table.Body.Cells, []*simpletable.Cell{
			{Align: simpletable.AlignLeft, Text: id},
			{Align: simpletable.AlignLeft, Text: nickname},
			{Align: simpletable.AlignRight, Text: strconv.Itoa(rec.CoreTotal)},
			{Align: simpletable.AlignRight, Text: strconv.Itoa(len(rec.Skills))},
		})
	}
	table.SetStyle(simpletable.StyleUnicode)
	fmt.Fprintln(os.Stdout, table.String())
}

func sheetTable(rec *character.Record) string {
	table := simpletable.New()
	table.Header = &simpletable.Header{
		Cells: []*simpletable.Cell{
			{Align: simpletable.AlignLeft, Text: "Attribute"},
			{Align: simpletable.AlignRight, Text: "Value"},
		},
	}

	// Base attributes in catalog order
	for i := range attribute.Catalog {
		def := &attribute.Catalog[i]
		table.Body.Cells = append(table.Body.Cells, []*simpletable.Cell{
			{Align: simpletable.AlignLeft, Text: def.Label},
			{Align: simpletable.AlignRight, Text: strconv.Itoa(rec.Attributes[def.Short])},
		})
	}

	// Custom skills after, sorted
	for _, name := range rec.SkillNames() {
		table.Body.Cells = append(table.Body.Cells, []*simpletable.Cell{
			{Align: simpletable.AlignLeft, Text: "技能: " + name},
			{Align: simpletable.AlignRight, Text: strconv.Itoa(rec.Skills[name])},
		})
	}

	table.Footer = &simpletable.Footer{
		Cells: []*simpletable.Cell{
			{Align: simpletable.AlignLeft, Text: "核心总值"},
			{Align: simpletable.AlignRight, Text: strconv.Itoa(rec.CoreTotal)},
		},
	}
	table.SetStyle(simpletable.StyleUnicode)
	return table.String()
}
