package docs

import "time"

// Metadata represents the flexible key-value pairs associated with a document.
type Metadata map[string]any

// Well-known metadata keys. Sidecar files and frontmatter may carry anything;
// these are the keys the desk panels understand.
const (
	MetaAuthor      = "author"
	MetaTags        = "tags"
	MetaDifficulty  = "difficulty"
	MetaLastUpdated = "lastUpdated"
	MetaReadingTime = "readingTime"
	MetaLastFetched = "lastFetched"
)

// Difficulty levels recognized in document metadata.
const (
	DifficultyBeginner     = "Beginner"
	DifficultyIntermediate = "Intermediate"
	DifficultyAdvanced     = "Advanced"
)

// Clone returns a shallow copy so callers can stamp derived fields without
// mutating shared tree state.
func (m Metadata) Clone() Metadata {
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Author returns the author string, or "" when absent.
func (m Metadata) Author() string { return m.str(MetaAuthor) }

// Difficulty returns the difficulty label, or "" when absent.
func (m Metadata) Difficulty() string { return m.str(MetaDifficulty) }

// Tags returns the tag list. JSON decoding yields []any, YAML frontmatter
// may yield []string; both are handled.
func (m Metadata) Tags() []string {
	switch v := m[MetaTags].(type) {
	case []string:
		return v
	case []any:
		tags := make([]string, 0, len(v))
		for _, t := range v {
			if s, ok := t.(string); ok {
				tags = append(tags, s)
			}
		}
		return tags
	}
	return nil
}

// LastUpdated parses the lastUpdated stamp, returning the zero time when the
// field is absent or malformed.
func (m Metadata) LastUpdated() time.Time {
	t, err := time.Parse(time.RFC3339, m.str(MetaLastUpdated))
	if err != nil {
		return time.Time{}
	}
	return t
}

func (m Metadata) str(key string) string {
	s, _ := m[key].(string)
	return s
}

// Document is a single documentation file: its root-relative path, raw
// Markdown content and merged metadata.
type Document struct {
	Path     string   `json:"path"`
	Content  string   `json:"content"`
	Metadata Metadata `json:"metadata"`
}
