package core

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// ParseFrontmatter splits note content into its YAML frontmatter and body.
// It detects if the content starts with a frontmatter block (delimited by ---).
// Content without a block yields an empty Metadata and the full text as body.
func ParseFrontmatter(content string) (Metadata, string, error) {
	data := []byte(content)
	meta := make(Metadata)

	if !bytes.HasPrefix(data, []byte("---\n")) && !bytes.HasPrefix(data, []byte("---\r\n")) {
		return meta, content, nil
	}

	rest := data[3:]
	parts := bytes.SplitN(rest, []byte("---"), 2)
	if len(parts) == 1 {
		return nil, "", errors.New("frontmatter started but no closing delimiter found")
	}

	if err := yaml.Unmarshal(parts[0], &meta); err != nil {
		return nil, "", fmt.Errorf("failed to parse frontmatter: %w", err)
	}

	body := strings.TrimPrefix(string(parts[1]), "\n")
	body = strings.TrimPrefix(body, "\r\n")
	return meta, body, nil
}

// RenderFrontmatter serializes metadata and body back into note content.
// Empty metadata produces the bare body with no frontmatter block.
func RenderFrontmatter(meta Metadata, body string) (string, error) {
	var buf bytes.Buffer

	if len(meta) > 0 {
		buf.WriteString("---\n")
		encoder := yaml.NewEncoder(&buf)
		encoder.SetIndent(2)
		if err := encoder.Encode(meta); err != nil {
			return "", err
		}
		encoder.Close()
		buf.WriteString("---\n")
	}

	buf.WriteString(body)
	return buf.String(), nil
}

// NewNoteBody prepares template content for a fresh note: it stamps a uid
// and the creation date into the frontmatter and leaves the body untouched.
func NewNoteBody(templateContent string, now time.Time) (string, error) {
	meta, body, err := ParseFrontmatter(templateContent)
	if err != nil {
		return "", err
	}

	meta["uid"] = uuid.NewString()
	meta["created"] = now.Format("2006-01-02")

	return RenderFrontmatter(meta, body)
}
