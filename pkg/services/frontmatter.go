package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Front-matter formats reported by ParseFrontMatter.
const (
	FormatNone = ""
	FormatYAML = "yaml"
	FormatTOML = "toml"
	FormatJSON = "json"
)

// ParseFrontMatter splits content into its metadata block and Markdown body.
// It returns the metadata, the body and the detected format. Files without a
// front-matter block yield empty metadata and the whole file as body.
func ParseFrontMatter(content []byte) (map[string]interface{}, string, string, error) {
	str := normalizeLineEndings(strings.TrimPrefix(string(content), "\ufeff"))

	// Check for YAML (---)
	if block, body, ok := splitDelimited(str, "---", "---", "..."); ok {
		var fm map[string]interface{}
		if err := yaml.Unmarshal([]byte(block), &fm); err != nil {
			return nil, "", "", fmt.Errorf("parse yaml front matter: %w", err)
		}
		return sanitizeFrontMatter(fm), trimBody(body), FormatYAML, nil
	}
	// Check for TOML (+++)
	if block, body, ok := splitDelimited(str, "+++", "+++"); ok {
		var fm map[string]interface{}
		if err := toml.Unmarshal([]byte(block), &fm); err != nil {
			return nil, "", "", fmt.Errorf("parse toml front matter: %w", err)
		}
		return sanitizeFrontMatter(fm), trimBody(body), FormatTOML, nil
	}
	// Check for JSON ({)
	if strings.HasPrefix(str, "{") {
		fm, body, ok, err := splitJSON(str)
		if err != nil {
			return nil, "", "", fmt.Errorf("parse json front matter: %w", err)
		}
		if ok {
			return sanitizeFrontMatter(fm), trimBody(body), FormatJSON, nil
		}
	}

	return map[string]interface{}{}, str, FormatNone, nil
}

// splitDelimited returns the lines between an opening delimiter on the first
// line and the next line equal to one of closers, plus everything after it.
func splitDelimited(str, open string, closers ...string) (string, string, bool) {
	first, rest, found := strings.Cut(str, "\n")
	if !found || strings.TrimRight(first, " \t") != open {
		return "", "", false
	}

	offset := 0
	for offset <= len(rest) {
		line, next, more := strings.Cut(rest[offset:], "\n")
		trimmed := strings.TrimRight(line, " \t")
		for _, closer := range closers {
			if trimmed == closer {
				if !more {
					next = ""
				}
				return rest[:offset], next, true
			}
		}
		if !more {
			break
		}
		offset += len(line) + 1
	}
	return "", "", false
}

// splitJSON reads a leading JSON object. A lone "{" on the first line marks
// JSON front-matter, so decode failures are errors. Otherwise the object must
// decode and end its line, or the whole text is Markdown ("{Note} ...").
func splitJSON(str string) (map[string]interface{}, string, bool, error) {
	first, _, _ := strings.Cut(str, "\n")
	explicit := strings.TrimRight(first, " \t") == "{"

	dec := json.NewDecoder(strings.NewReader(str))
	var fm map[string]interface{}
	if err := dec.Decode(&fm); err != nil {
		if explicit {
			return nil, "", false, err
		}
		return nil, "", false, nil
	}

	rest := str[dec.InputOffset():]
	if line := strings.TrimLeft(rest, " \t"); line != "" && !strings.HasPrefix(line, "\n") {
		if explicit {
			return nil, "", false, fmt.Errorf("unexpected text after closing brace")
		}
		return nil, "", false, nil
	}
	return fm, rest, true, nil
}

func trimBody(body string) string {
	return strings.Trim(body, "\n")
}

func normalizeLineEndings(input string) string {
	return strings.ReplaceAll(input, "\r\n", "\n")
}

func sanitizeFrontMatter(fm map[string]interface{}) map[string]interface{} {
	sanitized := make(map[string]interface{}, len(fm))
	for k, v := range fm {
		sanitized[k] = sanitizeFrontMatterValue(v)
	}
	return sanitized
}

func sanitizeFrontMatterValue(value interface{}) interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		return sanitizeFrontMatter(v)
	case map[interface{}]interface{}:
		normalized := make(map[string]interface{}, len(v))
		for key, inner := range v {
			normalized[fmt.Sprint(key)] = sanitizeFrontMatterValue(inner)
		}
		return normalized
	case []interface{}:
		slice := make([]interface{}, len(v))
		for i := range v {
			slice[i] = sanitizeFrontMatterValue(v[i])
		}
		return slice
	default:
		return v
	}
}

// canonicalizeFrontMatterForJSON renders timestamps as RFC 3339 strings so the
// metadata serializes the same way whichever format it came from.
func canonicalizeFrontMatterForJSON(fm map[string]interface{}) map[string]interface{} {
	canonical := make(map[string]interface{}, len(fm))
	for k, v := range fm {
		canonical[k] = canonicalizeValueForJSON(v)
	}
	return canonical
}

func canonicalizeValueForJSON(value interface{}) interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		return canonicalizeFrontMatterForJSON(v)
	case []interface{}:
		slice := make([]interface{}, len(v))
		for i := range v {
			slice[i] = canonicalizeValueForJSON(v[i])
		}
		return slice
	case time.Time:
		return v.UTC().Format(time.RFC3339)
	case fmt.Stringer:
		// toml.LocalDate, toml.LocalDateTime and friends
		return v.String()
	default:
		return v
	}
}

// titleFromFrontMatter returns the explicit title, if any.
func titleFromFrontMatter(fm map[string]interface{}) (string, bool) {
	raw, ok := fm["title"]
	if !ok || raw == nil {
		return "", false
	}
	title := strings.TrimSpace(fmt.Sprint(canonicalizeValueForJSON(raw)))
	if title == "" {
		return "", false
	}
	return title, true
}
