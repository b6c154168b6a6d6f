package pii

import "fmt"

// Category is the entity type reported by the recognizer. Values outside the
// constants below are passed through as returned.
type Category string

const (
	CategoryPerson       Category = "Person"
	CategoryPhoneNumber  Category = "PhoneNumber"
	CategoryEmail        Category = "Email"
	CategoryAddress      Category = "Address"
	CategoryOrganization Category = "Organization"
	CategoryDateTime     Category = "DateTime"
	CategoryURL          Category = "URL"
	CategoryIPAddress    Category = "IPAddress"
)

// Entity is one detected PII occurrence. Offset and Length count Unicode code
// points into the exact text that was submitted.
type Entity struct {
	Text            string   `json:"text"`
	Category        Category `json:"category"`
	Subcategory     string   `json:"subcategory,omitempty"`
	ConfidenceScore float64  `json:"confidence_score"`
	Offset          int      `json:"offset"`
	Length          int      `json:"length"`
}

// Entities is the detector output for a single document, in service order.
type Entities []Entity

// First returns the first entity of the given category.
func (es Entities) First(c Category) (Entity, bool) {
	for _, e := range es {
		if e.Category == c {
			return e, true
		}
	}
	return Entity{}, false
}

// ByCategory groups entities by category, preserving order within each group.
func (es Entities) ByCategory() map[Category][]Entity {
	out := make(map[Category][]Entity)
	for _, e := range es {
		out[e.Category] = append(out[e.Category], e)
	}
	return out
}

// DocumentError is a per-document failure reported by the service.
type DocumentError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// DocumentResult holds either the entities of a document or the reason the
// service rejected it. Err is nil on success.
type DocumentResult struct {
	Entities Entities
	Err      *DocumentError
}

// OK reports whether the document was analyzed.
func (r DocumentResult) OK() bool { return r.Err == nil }
