package masking

import (
	"strings"
	"testing"

	"github.com/camden-git/datasentinel/pii"
)

func TestMaskPhone(t *testing.T) {
	cases := map[string]string{
		"5551234567":      "555*******",
		"+1 555 123 4567": "+1 ************",
		"123":             "123",
		"12":              "12",
		"":                "",
	}
	for in, want := range cases {
		if got := MaskPhone(in); got != want {
			t.Fatalf("MaskPhone(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMaskEmail(t *testing.T) {
	cases := map[string]string{
		"ab@example.com":        "ab@***********",
		"jane.doe@corp.example": "ja******@************",
		"j@x.io":                "j@****",
		"no-at-sign":            "no********",
		"a@b@c":                 "a@***",
	}
	for in, want := range cases {
		if got := MaskEmail(in); got != want {
			t.Fatalf("MaskEmail(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMaskEmailShape(t *testing.T) {
	local, domain := "employee", "example.org"
	got := MaskEmail(local + "@" + domain)
	want := local[:2] + strings.Repeat("*", len(local)-2) + "@" + strings.Repeat("*", len(domain))
	if got != want {
		t.Fatalf("MaskEmail() = %q, want %q", got, want)
	}
}

func TestApplyScenario(t *testing.T) {
	text := "Name: Jane Doe, Phone: 5551234567, Dept: Engineering"
	entities := []pii.Entity{
		{Text: "Jane Doe", Category: pii.CategoryPerson, Offset: 6, Length: 8},
		{Text: "5551234567", Category: pii.CategoryPhoneNumber, Offset: 22, Length: 10},
	}
	got := Apply(text, entities)
	if !strings.Contains(got, "Phone: 555*******") {
		t.Fatalf("masked text missing phone mask: %q", got)
	}
	if !strings.Contains(got, "Jane Doe") {
		t.Fatalf("person names are not masked: %q", got)
	}
	if strings.Contains(got, "5551234567") {
		t.Fatalf("raw phone leaked: %q", got)
	}
}

func TestApplyPhoneProperty(t *testing.T) {
	prefixes := []string{"", "Tel ", "Mobile number: ", "ÄÖÜ "}
	phones := []string{"123", "5551234567", "+44 20 7946 0958"}
	for _, prefix := range prefixes {
		for _, phone := range phones {
			text := prefix + phone + " end"
			o := len([]rune(prefix))
			l := len([]rune(phone))
			got := []rune(Apply(text, []pii.Entity{{Text: phone, Category: pii.CategoryPhoneNumber, Offset: o, Length: l}}))
			src := []rune(text)
			if string(got[o:o+3]) != string(src[o:o+3]) {
				t.Fatalf("visible prefix changed for %q: %q", text, string(got))
			}
			if string(got[o+3:o+l]) != strings.Repeat("*", l-3) {
				t.Fatalf("expected %d stars for %q, got %q", l-3, text, string(got))
			}
			if string(got[o+l:]) != " end" {
				t.Fatalf("suffix changed for %q: %q", text, string(got))
			}
		}
	}
}

func TestApplyMultipleEntitiesSinglePass(t *testing.T) {
	text := "Email: jane.doe@corp.io Phone: 5551234567"
	entities := []pii.Entity{
		{Text: "5551234567", Category: pii.CategoryPhoneNumber, Offset: 31, Length: 10},
		{Text: "jane.doe@corp.io", Category: pii.CategoryEmail, Offset: 7, Length: 16},
	}
	want := "Email: ja******@******* Phone: 555*******"
	if got := Apply(text, entities); got != want {
		t.Fatalf("Apply() = %q, want %q", got, want)
	}
}

func TestApplySkipsOverlapsAndMissingSpans(t *testing.T) {
	cases := []struct {
		name     string
		text     string
		entities []pii.Entity
		want     string
	}{
		{
			name: "overlap and out of bounds",
			text: "call 5551234567",
			entities: []pii.Entity{
				{Text: "5551234567", Category: pii.CategoryPhoneNumber, Offset: 5, Length: 10},
				{Text: "1234567", Category: pii.CategoryPhoneNumber, Offset: 8, Length: 7},
				{Text: "9999999", Category: pii.CategoryPhoneNumber, Offset: 40, Length: 7},
			},
			want: "call 555*******",
		},
		{
			name: "text differs from reported span",
			text: "Tel 555-123-4567",
			entities: []pii.Entity{
				{Text: "5551234567", Category: pii.CategoryPhoneNumber, Offset: 4, Length: 12},
			},
			want: "Tel 555*********",
		},
		{
			name: "email text differs from reported span",
			text: "mail AB@Example.com now",
			entities: []pii.Entity{
				{Text: "ab@example.com", Category: pii.CategoryEmail, Offset: 5, Length: 14},
			},
			want: "mail AB@*********** now",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Apply(tc.text, tc.entities); got != tc.want {
				t.Fatalf("Apply() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestApplyIdempotentWithoutEntities(t *testing.T) {
	masked := "Phone: 555*******, Email: ab@***********"
	if got := Apply(masked, nil); got != masked {
		t.Fatalf("Apply() changed text without entities: %q", got)
	}
}

func TestForEntityIgnoresOtherCategories(t *testing.T) {
	if _, ok := ForEntity(pii.Entity{Text: "Jane", Category: pii.CategoryPerson}); ok {
		t.Fatalf("person entities must not be masked")
	}
	if got, ok := ForEntity(pii.Entity{Text: "ab@example.com", Category: pii.CategoryEmail}); !ok || got != "ab@***********" {
		t.Fatalf("unexpected email mask %q", got)
	}
}
