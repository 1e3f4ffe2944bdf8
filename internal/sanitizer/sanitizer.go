// Package sanitizer strips orchestration narration from agent output so that
// only the Markdown meant for the reader is displayed.
package sanitizer

import (
	"fmt"
	"regexp"
	"strings"

	"DayTradeDesk/internal/customerrors"
)

// Pattern describes one narration block: a line starting with Marker, any
// content, Separator, then a transfer-notice line whose start matches the
// TransferNotice regular expression.
type Pattern struct {
	Marker         string `yaml:"marker"`
	Separator      string `yaml:"separator"`
	TransferNotice string `yaml:"transfer_notice"`
}

// DefaultPattern matches the tool-call narration emitted by the hosted team agent.
var DefaultPattern = Pattern{
	Marker:         "Running:",
	Separator:      "\n\n",
	TransferNotice: `transfer_task_to_\w+`,
}

func (p Pattern) compile() (*regexp.Regexp, error) {
	if p.Marker == "" {
		return nil, fmt.Errorf("pattern marker is empty: %w", customerrors.ErrInvalidParameter)
	}
	if p.TransferNotice == "" {
		return nil, fmt.Errorf("pattern transfer notice is empty: %w", customerrors.ErrInvalidParameter)
	}
	expr := `(?m:^)` + regexp.QuoteMeta(p.Marker) +
		`(?s:.*)` + regexp.QuoteMeta(p.Separator) +
		`(?:` + p.TransferNotice + `)[^\n]*\n?`
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compile transfer notice %q: %w", p.TransferNotice, err)
	}
	return re, nil
}

// Sanitizer removes every block matched by its patterns.
type Sanitizer struct {
	patterns []*regexp.Regexp
}

// New compiles the given patterns. With no patterns it uses DefaultPattern.
func New(patterns ...Pattern) (*Sanitizer, error) {
	if len(patterns) == 0 {
		patterns = []Pattern{DefaultPattern}
	}
	s := &Sanitizer{patterns: make([]*regexp.Regexp, 0, len(patterns))}
	for _, p := range patterns {
		re, err := p.compile()
		if err != nil {
			return nil, err
		}
		s.patterns = append(s.patterns, re)
	}
	return s, nil
}

// Default returns a Sanitizer for DefaultPattern.
func Default() *Sanitizer {
	s, err := New()
	if err != nil {
		panic(err)
	}
	return s
}

// Sanitize deletes narration blocks and trims surrounding whitespace.
// Trimming and deletion repeat together until neither changes the text,
// so Sanitize(Sanitize(x)) == Sanitize(x).
// Text that only partially resembles a block is left as is.
func (s *Sanitizer) Sanitize(raw string) string {
	out := strings.TrimSpace(raw)
	for {
		next := out
		for _, re := range s.patterns {
			next = re.ReplaceAllLiteralString(next, "")
		}
		next = strings.TrimSpace(next)
		if next == out {
			return out
		}
		out = next
	}
}
