package mailer

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

var fence = []byte("---")

// Template is a parsed email template file.
type Template struct {
	Metadata map[string]any
	Body     string
}

// ParseTemplate splits an optional YAML frontmatter block, delimited by
// "---" lines, from the markdown body.
func ParseTemplate(content []byte) (*Template, error) {
	t := &Template{Metadata: map[string]any{}}
	if !bytes.HasPrefix(content, fence) {
		t.Body = string(content)
		return t, nil
	}

	rest := bytes.TrimLeft(content[len(fence):], "\r\n")
	if len(rest) == 0 {
		return nil, fmt.Errorf("%w: empty after opening fence", ErrInvalidFrontmatter)
	}
	end := bytes.Index(rest, fence)
	if end < 0 {
		return nil, fmt.Errorf("%w: missing closing fence", ErrInvalidFrontmatter)
	}

	front, body := rest[:end], rest[end+len(fence):]
	body = bytes.TrimPrefix(body, []byte("\r"))
	body = bytes.TrimPrefix(body, []byte("\n"))
	t.Body = string(body)

	if len(bytes.TrimSpace(front)) == 0 {
		return t, nil
	}
	if err := yaml.Unmarshal(front, &t.Metadata); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFrontmatter, err)
	}
	if t.Metadata == nil {
		t.Metadata = map[string]any{}
	}
	return t, nil
}
