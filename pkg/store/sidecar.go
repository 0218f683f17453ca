package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/finite-collective/docdesk/pkg/docs"
)

// MetaSuffix is appended to a document's path to derive its sidecar location.
const MetaSuffix = ".meta.json"

// SidecarPath derives the sidecar metadata location for a document.
func SidecarPath(docPath string) string {
	return docPath + MetaSuffix
}

// ReadSidecar loads the sidecar metadata file next to the given absolute
// document path. A missing sidecar returns (nil, fs.ErrNotExist via os);
// malformed JSON returns a parse error. Callers decide how each case is
// surfaced; the store treats both as empty metadata but logs the latter.
func ReadSidecar(docPath string) (docs.Metadata, error) {
	data, err := os.ReadFile(SidecarPath(docPath))
	if err != nil {
		return nil, err
	}

	var meta docs.Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("malformed sidecar %s: %w", SidecarPath(docPath), err)
	}
	return meta, nil
}

func writeSidecar(docPath string, meta docs.Metadata) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize metadata: %w", err)
	}
	return writeFileAtomic(SidecarPath(docPath), data, 0644)
}

// parseFrontmatter splits a YAML frontmatter block off Markdown content.
// Content without a frontmatter block is returned untouched with nil
// metadata; a block that fails to parse is treated the same way.
func parseFrontmatter(content string) (docs.Metadata, string) {
	data := []byte(content)
	if !bytes.HasPrefix(data, []byte("---\n")) && !bytes.HasPrefix(data, []byte("---\r\n")) {
		return nil, content
	}

	parts := bytes.SplitN(data[3:], []byte("\n---"), 2)
	if len(parts) != 2 {
		return nil, content
	}

	var meta docs.Metadata
	if err := yaml.Unmarshal(parts[0], &meta); err != nil {
		return nil, content
	}

	body := strings.TrimPrefix(string(parts[1]), "\n")
	body = strings.TrimPrefix(body, "\r\n")
	return meta, body
}

// deriveMetadata infers fallback tags and difficulty from the document's
// location and content. Explicit frontmatter or sidecar values take
// precedence during the merge.
func deriveMetadata(relPath, content string) docs.Metadata {
	meta := docs.Metadata{}

	var tags []string
	parts := strings.Split(relPath, "/")
	for _, part := range parts[:len(parts)-1] {
		switch part {
		case "getting-started":
			tags = append(tags, "beginner")
		case "tutorials":
			tags = append(tags, "tutorial")
		case "reference":
			tags = append(tags, "reference")
		case "api":
			tags = append(tags, "api")
		}
	}
	base := strings.TrimSuffix(filepath.Base(relPath), filepath.Ext(relPath))
	tags = append(tags, strings.ReplaceAll(base, "-", " "))
	meta[docs.MetaTags] = tags

	lower := strings.ToLower(content)
	switch {
	case strings.Contains(lower, "beginner") || strings.Contains(lower, "introduction") || strings.Contains(lower, "hello"):
		meta[docs.MetaDifficulty] = docs.DifficultyBeginner
	case strings.Contains(lower, "advanced") || strings.Contains(lower, "expert"):
		meta[docs.MetaDifficulty] = docs.DifficultyAdvanced
	default:
		meta[docs.MetaDifficulty] = docs.DifficultyIntermediate
	}

	return meta
}

// mergeMetadata layers maps left to right, later maps winning on key clashes.
func mergeMetadata(layers ...docs.Metadata) docs.Metadata {
	out := docs.Metadata{}
	for _, layer := range layers {
		for k, v := range layer {
			out[k] = v
		}
	}
	return out
}
