// Package rules applies deterministic substitutions to transcripts before
// they are injected, so recurring recognizer mistakes ("new line", spelled
// punctuation, misheard names) can be fixed without retraining anything.
//
// The rules file holds one rule per line. Two formats are accepted:
//
//	wrong phrase => replacement        case-insensitive literal
//	s/pattern/replacement/flags        regex, flags i g m s
//
// Blank lines and lines starting with # are skipped.
package rules

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
)

type substitution struct {
	re          *regexp.Regexp
	replacement string
	firstOnly   bool
}

// Engine applies the loaded substitutions to a fixed point.
type Engine struct {
	subs      []substitution
	loopLimit int
}

// Load compiles the rules file at path. A missing or empty path yields a
// no-op engine; a malformed file is an error.
func Load(path string, loopLimit int) (*Engine, error) {
	if strings.TrimSpace(path) == "" {
		return &Engine{loopLimit: normalizeLimit(loopLimit)}, nil
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Engine{loopLimit: normalizeLimit(loopLimit)}, nil
		}
		return nil, fmt.Errorf("read rules file %q: %w", path, err)
	}

	engine, err := Parse(string(contents), loopLimit)
	if err != nil {
		return nil, fmt.Errorf("rules file %q: %w", path, err)
	}
	return engine, nil
}

// Parse compiles rules from file contents.
func Parse(contents string, loopLimit int) (*Engine, error) {
	var subs []substitution
	for index, raw := range strings.Split(contents, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		var (
			sub substitution
			err error
		)
		switch {
		case looksLikeRegexRule(line):
			sub, err = parseRegexRule(line)
		case strings.Contains(line, "=>"):
			sub, err = parseLiteralRule(line)
		default:
			err = errors.New("unsupported rule format")
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", index+1, err)
		}
		subs = append(subs, sub)
	}

	return &Engine{subs: subs, loopLimit: normalizeLimit(loopLimit)}, nil
}

// Apply transforms text deterministically, iterating until no rule changes
// the text or the loop limit is reached.
func (e *Engine) Apply(text string) (string, error) {
	if len(e.subs) == 0 {
		return text, nil
	}

	result := text
	for i := 0; i < e.loopLimit; i++ {
		changed := false
		for _, sub := range e.subs {
			next := sub.apply(result)
			if next != result {
				result = next
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	return result, nil
}

func (s substitution) apply(input string) string {
	if !s.firstOnly {
		return s.re.ReplaceAllString(input, s.replacement)
	}
	loc := s.re.FindStringIndex(input)
	if loc == nil {
		return input
	}
	head := s.re.ReplaceAllString(input[loc[0]:loc[1]], s.replacement)
	return input[:loc[0]] + head + input[loc[1]:]
}

func parseLiteralRule(line string) (substitution, error) {
	parts := strings.SplitN(line, "=>", 2)
	from := strings.TrimSpace(parts[0])
	to := strings.TrimSpace(parts[1])
	if from == "" {
		return substitution{}, errors.New("literal rule source cannot be empty")
	}

	re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(from))
	if err != nil {
		return substitution{}, fmt.Errorf("invalid literal source: %w", err)
	}
	return substitution{re: re, replacement: to}, nil
}

func parseRegexRule(line string) (substitution, error) {
	delim := line[1]
	pattern, pos, err := readDelimited(line, 2, delim)
	if err != nil {
		return substitution{}, fmt.Errorf("invalid pattern: %w", err)
	}
	replacement, pos, err := readDelimited(line, pos, delim)
	if err != nil {
		return substitution{}, fmt.Errorf("invalid replacement: %w", err)
	}

	global := false
	modifiers := "i"
	for _, flag := range strings.TrimSpace(line[pos:]) {
		switch flag {
		case 'i':
			// case-insensitive is the default
		case 'g':
			global = true
		case 'm':
			modifiers += "m"
		case 's':
			modifiers += "s"
		default:
			return substitution{}, fmt.Errorf("unsupported flag %q", flag)
		}
	}

	re, err := regexp.Compile("(?" + modifiers + ")" + pattern)
	if err != nil {
		return substitution{}, fmt.Errorf("invalid regex: %w", err)
	}
	return substitution{re: re, replacement: replacement, firstOnly: !global}, nil
}

func readDelimited(line string, start int, delim byte) (string, int, error) {
	if start >= len(line) {
		return "", 0, errors.New("unexpected end of expression")
	}

	var builder strings.Builder
	escaped := false
	for i := start; i < len(line); i++ {
		c := line[i]
		switch {
		case escaped:
			builder.WriteByte(c)
			escaped = false
		case c == '\\':
			builder.WriteByte(c)
			escaped = true
		case c == delim:
			return builder.String(), i + 1, nil
		default:
			builder.WriteByte(c)
		}
	}
	return "", 0, errors.New("unterminated expression")
}

func looksLikeRegexRule(line string) bool {
	return len(line) > 1 && line[0] == 's' && !isWordByte(line[1])
}

func isWordByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == ' ' || c == '\t'
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return 30
	}
	return limit
}
