package department

import (
	"os"
	"path/filepath"
	"testing"
)

func TestClassify(t *testing.T) {
	c := Default()
	cases := []struct {
		text string
		want string
	}{
		{"Dept: Engineering", "Engineering"},
		{"dept: engineering", "Engineering"},
		{"Engineering-Dept-123", "Engineering"},
		{"we engineered this", Unknown},
		{"HUMAN RESOURCES office", "Human Resources"},
		{"Human  Resources", Unknown},
		{"Sales and Marketing", "Marketing"},
		{"Wholesales team", Unknown},
		{"Salesé team", Unknown},
		{"équipe Sales", "Sales"},
		{"Sales_2", Unknown},
		{"", Unknown},
	}
	for _, tc := range cases {
		if got := c.Classify(tc.text); got != tc.want {
			t.Fatalf("Classify(%q) = %q, want %q", tc.text, got, tc.want)
		}
	}
}

func TestClassifyFirstKeywordWins(t *testing.T) {
	c, err := NewClassifier([]string{"Finance", "Sales"})
	if err != nil {
		t.Fatalf("NewClassifier() error = %v", err)
	}
	if got := c.Classify("Sales / Finance"); got != "Finance" {
		t.Fatalf("expected list order to win, got %q", got)
	}
}

func TestNewClassifierRejectsEmpty(t *testing.T) {
	if _, err := NewClassifier([]string{" ", ""}); err == nil {
		t.Fatalf("expected error for empty keyword list")
	}
}

func TestKeywordsWithRegexMetacharacters(t *testing.T) {
	c, err := NewClassifier([]string{"R&D", "Ops.Team"})
	if err != nil {
		t.Fatalf("NewClassifier() error = %v", err)
	}
	if got := c.Classify("OpsXTeam"); got != Unknown {
		t.Fatalf("keyword must match literally, got %q", got)
	}
	if got := c.Classify("dept ops.team"); got != "Ops.Team" {
		t.Fatalf("unexpected match %q", got)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "departments.yaml")
	if err := os.WriteFile(path, []byte("departments:\n  - Legal\n  - Engineering\n"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	c, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if kws := c.Keywords(); len(kws) != 2 || kws[0] != "Legal" {
		t.Fatalf("unexpected keywords: %v", kws)
	}
	if got := c.Classify("legal department"); got != "Legal" {
		t.Fatalf("unexpected classification %q", got)
	}
}

func TestLoadFileDefaultsAndErrors(t *testing.T) {
	c, err := LoadFile("")
	if err != nil {
		t.Fatalf("LoadFile(\"\") error = %v", err)
	}
	if len(c.Keywords()) != len(DefaultKeywords) {
		t.Fatalf("expected default keywords, got %v", c.Keywords())
	}
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("departments: [unterminated"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if _, err := LoadFile(bad); err == nil {
		t.Fatalf("expected parse error")
	}
}
