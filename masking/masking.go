// Package masking redacts phone numbers and e-mail addresses found by the PII
// detector while keeping a short visible prefix. All positions are Unicode
// code points, matching the offsets the detector reports.
package masking

import (
	"log"
	"sort"
	"strings"

	"github.com/camden-git/datasentinel/pii"
)

const (
	maskChar          = '*'
	phoneVisibleChars = 3
	emailVisibleChars = 2
)

func maskTail(r []rune, visible int) string {
	if len(r) <= visible {
		return string(r)
	}
	return string(r[:visible]) + strings.Repeat(string(maskChar), len(r)-visible)
}

// MaskPhone keeps the first 3 characters and replaces the rest with '*'.
func MaskPhone(s string) string {
	return maskTail([]rune(s), phoneVisibleChars)
}

// MaskEmail keeps the first 2 characters of the local part, masks the rest of
// it, and masks every character of the domain. The split is on the first '@';
// without one the whole value is treated as the local part.
func MaskEmail(s string) string {
	local, domain, found := strings.Cut(s, "@")
	masked := maskTail([]rune(local), emailVisibleChars)
	if !found {
		return masked
	}
	return masked + "@" + strings.Repeat(string(maskChar), len([]rune(domain)))
}

// ForEntity returns the masked form of an entity's text, and false for
// categories that are not masked.
func ForEntity(e pii.Entity) (string, bool) {
	switch e.Category {
	case pii.CategoryPhoneNumber:
		return MaskPhone(e.Text), true
	case pii.CategoryEmail:
		return MaskEmail(e.Text), true
	}
	return "", false
}

type replacement struct {
	start, end int
	text       string
}

// locate returns the span of e in runes. The reported span is used when it
// holds the entity text; otherwise the occurrence of the text nearest to the
// reported offset is used. When the text occurs nowhere, the reported span is
// masked as is. ok is false only when that span lies outside runes.
func locate(runes []rune, e pii.Entity) (start, end int, ok bool) {
	start, end = e.Offset, e.Offset+e.Length
	inBounds := e.Length > 0 && start >= 0 && end <= len(runes)
	target := []rune(e.Text)
	if len(target) == 0 {
		return start, end, inBounds
	}
	if inBounds && string(runes[start:end]) == e.Text {
		return start, end, true
	}

	best := -1
	for i := 0; i+len(target) <= len(runes); i++ {
		if string(runes[i:i+len(target)]) != e.Text {
			continue
		}
		if best < 0 || absInt(i-e.Offset) < absInt(best-e.Offset) {
			best = i
		}
	}
	if best < 0 {
		return start, end, inBounds
	}
	return best, best + len(target), true
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Apply rewrites text with every phone and e-mail entity masked. Replacements
// are collected first, ordered by offset and applied in one pass, so a
// substitution never shifts the position of a later one. Spans that overlap an
// earlier span or fall outside text are skipped.
func Apply(text string, entities []pii.Entity) string {
	runes := []rune(text)

	var reps []replacement
	for _, e := range entities {
		if _, ok := ForEntity(e); !ok {
			continue
		}
		start, end, ok := locate(runes, e)
		if !ok {
			log.Printf("masking: skipping %s span [%d,%d) outside text of length %d", e.Category, e.Offset, e.Offset+e.Length, len(runes))
			continue
		}
		switch {
		case start != e.Offset:
			log.Printf("masking: %s reported at offset %d found at %d", e.Category, e.Offset, start)
		case string(runes[start:end]) != e.Text:
			log.Printf("masking: %s text not found, masking reported span [%d,%d)", e.Category, start, end)
		}
		span := pii.Entity{Category: e.Category, Text: string(runes[start:end])}
		masked, _ := ForEntity(span)
		reps = append(reps, replacement{start: start, end: end, text: masked})
	}
	if len(reps) == 0 {
		return text
	}

	sort.SliceStable(reps, func(i, j int) bool { return reps[i].start < reps[j].start })

	var b strings.Builder
	b.Grow(len(text))
	cursor := 0
	for _, r := range reps {
		if r.start < cursor {
			log.Printf("masking: skipping span [%d,%d) overlapping previous replacement", r.start, r.end)
			continue
		}
		b.WriteString(string(runes[cursor:r.start]))
		b.WriteString(r.text)
		cursor = r.end
	}
	b.WriteString(string(runes[cursor:]))
	return b.String()
}
