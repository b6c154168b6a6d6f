package department

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Unknown is returned when no keyword matches.
const Unknown = "Unknown"

// DefaultKeywords is the built-in list, in match priority order.
var DefaultKeywords = []string{"Production", "Marketing", "Sales", "Finance", "Human Resources", "Engineering"}

type rule struct {
	name string
	re   *regexp.Regexp
}

// Classifier finds the department a card belongs to by keyword.
type Classifier struct {
	rules []rule
}

// NewClassifier compiles a whole-word, case-insensitive matcher for each keyword.
// Keywords keep their order; blank entries are ignored.
func NewClassifier(keywords []string) (*Classifier, error) {
	c := &Classifier{}
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		re, err := regexp.Compile(`(?i)(?:^|[^\pL\pN_])` + regexp.QuoteMeta(kw) + `(?:$|[^\pL\pN_])`)
		if err != nil {
			return nil, fmt.Errorf("invalid department keyword %q: %w", kw, err)
		}
		c.rules = append(c.rules, rule{name: kw, re: re})
	}
	if len(c.rules) == 0 {
		return nil, fmt.Errorf("department keyword list is empty")
	}
	return c, nil
}

// Default returns a classifier over DefaultKeywords.
func Default() *Classifier {
	c, err := NewClassifier(DefaultKeywords)
	if err != nil {
		panic(err)
	}
	return c
}

// Classify returns the first keyword, in list order, that appears in text as a whole word.
func (c *Classifier) Classify(text string) string {
	for _, r := range c.rules {
		if r.re.MatchString(text) {
			return r.name
		}
	}
	return Unknown
}

// Keywords returns the configured keywords in priority order.
func (c *Classifier) Keywords() []string {
	out := make([]string, len(c.rules))
	for i, r := range c.rules {
		out[i] = r.name
	}
	return out
}

type keywordFile struct {
	Departments []string `yaml:"departments"`
}

// LoadFile builds a classifier from a YAML file of the form:
//
//	departments:
//	  - Production
//	  - Engineering
//
// An empty path returns the default classifier.
func LoadFile(path string) (*Classifier, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read departments file '%s': %w", path, err)
	}
	var kf keywordFile
	if err := yaml.Unmarshal(data, &kf); err != nil {
		return nil, fmt.Errorf("failed to parse departments file '%s': %w", path, err)
	}
	return NewClassifier(kf.Departments)
}
