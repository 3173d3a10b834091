// Package masters normalizes the venue's master sheets. Every venue names
// its columns differently (some Japanese, some English, some both), so each
// canonical field is resolved through an ordered candidate list.
package masters

import (
	"strings"

	"luxpos/ledger"
)

var idCandidates = []string{"id", "ID", "コード", "番号"}
var nameCandidates = []string{"name", "名称", "名前", "氏名"}
var activeCandidates = []string{"active", "有効", "在籍"}
var priceCandidates = []string{"price", "単価", "料金"}
var bottleCandidates = []string{"bottle", "ボトル"}

// Entry is the canonical {id, name} shape for tables and staff.
type Entry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type MenuItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	IsBottle bool   `json:"is_bottle"`
}

func ResolveTables(raw []ledger.RawRecord) []Entry {
	return resolveEntries(raw)
}

func ResolveStaff(raw []ledger.RawRecord) []Entry {
	return resolveEntries(raw)
}

func resolveEntries(raw []ledger.RawRecord) []Entry {
	entries := make([]Entry, 0, len(raw))
	for _, record := range raw {
		if !isActive(record) {
			continue
		}

		entry := Entry{
			ID:   pick(record, idCandidates),
			Name: pick(record, nameCandidates),
		}
		if entry.ID == "" && entry.Name == "" {
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

// ResolveMenuItems keeps only records with an id; a menu row without one
// cannot be ordered against.
func ResolveMenuItems(raw []ledger.RawRecord) []MenuItem {
	items := make([]MenuItem, 0, len(raw))
	for _, record := range raw {
		item := MenuItem{
			ID:       pick(record, idCandidates),
			Name:     pick(record, nameCandidates),
			Price:    parsePrice(pick(record, priceCandidates)),
			IsBottle: isTrue(pick(record, bottleCandidates)),
		}
		if item.ID == "" {
			continue
		}
		items = append(items, item)
	}
	return items
}

// SettingsFromRows flattens the two-column key/value settings collection.
// Rows without a key are skipped; later duplicates win.
func SettingsFromRows(rows []ledger.Row) map[string]string {
	settings := make(map[string]string, len(rows))
	for _, row := range rows {
		if len(row) == 0 || row[0] == "" {
			continue
		}
		value := ""
		if len(row) > 1 {
			value = row[1]
		}
		settings[row[0]] = value
	}
	return settings
}

// pick returns the first candidate field present on the record, even when
// its value is empty. A missing field and an empty one both resolve to "".
func pick(record ledger.RawRecord, candidates []string) string {
	for _, field := range candidates {
		if value, ok := record[field]; ok {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

// isActive drops records explicitly flagged inactive. Records without any
// recognizable flag field stay in; partially-configured sheets are common.
func isActive(record ledger.RawRecord) bool {
	for _, field := range activeCandidates {
		if value, ok := record[field]; ok {
			return isTrue(value)
		}
	}
	return true
}

func isTrue(value string) bool {
	return strings.EqualFold(strings.TrimSpace(value), "true")
}

// parsePrice strips everything but digits, tolerating "¥1,200" style cells.
func parsePrice(raw string) int64 {
	var price int64
	seen := false
	for _, r := range raw {
		if r < '0' || r > '9' {
			continue
		}
		seen = true
		price = price*10 + int64(r-'0')
	}
	if !seen {
		return 0
	}
	return price
}
