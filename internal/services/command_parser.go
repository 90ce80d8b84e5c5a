package services

import (
	"regexp"
	"strings"

	"smsbridge/internal/models"
	"smsbridge/internal/validators"

	"golang.org/x/text/cases"
)

type CommandParser interface {
	Parse(raw string) (*models.ParsedCommand, bool)
}

type commandField int

const (
	fieldSender commandField = iota
	fieldNumber
	fieldBody
)

// Key spellings accepted for each field: Georgian, its Latin
// transliteration, then English.
var (
	senderKeys = []string{"სახელი", "saxeli", "sender"}
	numberKeys = []string{"ნომერი", "nomeri", "number"}
	bodyKeys   = []string{"ტექსტი", "texti", "text"}
)

var blankLinesRegex = regexp.MustCompile(`\n{2,}`)

type commandParser struct {
	keys map[string]commandField
}

func NewCommandParser() CommandParser {
	keys := make(map[string]commandField)
	for field, names := range map[commandField][]string{
		fieldSender: senderKeys,
		fieldNumber: numberKeys,
		fieldBody:   bodyKeys,
	} {
		for _, name := range names {
			keys[foldKey(name)] = field
		}
	}
	return &commandParser{keys: keys}
}

// segment is one piece of the input between separators, together with the
// separator that preceded it.
type segment struct {
	delim string
	text  string
}

// Parse extracts a complete command or reports false. Lines that are not a
// recognized "key: value" continue the field before them, so a body may span
// several lines or contain commas. The first occurrence of a key wins; a
// repeated key and whatever continues it are dropped.
func (p *commandParser) Parse(raw string) (*models.ParsedCommand, bool) {
	if strings.TrimSpace(raw) == "" {
		return nil, false
	}

	values := make(map[commandField]*strings.Builder, 3)
	var current *strings.Builder

	for _, seg := range splitSegments(raw) {
		if key, value, ok := splitKeyValue(seg.text); ok {
			if field, known := p.keys[foldKey(key)]; known {
				if _, seen := values[field]; seen {
					current = nil
					continue
				}
				current = &strings.Builder{}
				current.WriteString(value)
				values[field] = current
				continue
			}
		}

		if current != nil {
			current.WriteString(seg.delim)
			current.WriteString(seg.text)
		}
	}

	if len(values) != 3 {
		return nil, false
	}

	cmd := &models.ParsedCommand{
		SenderName:  strings.TrimSpace(values[fieldSender].String()),
		Destination: strings.TrimSpace(values[fieldNumber].String()),
		Body:        cleanBody(values[fieldBody].String()),
	}

	if errs := validators.ValidateStruct(cmd); len(errs) > 0 {
		return nil, false
	}

	return cmd, true
}

func splitSegments(raw string) []segment {
	var segments []segment
	delim := ""
	start := 0

	for i := 0; i < len(raw); i++ {
		if raw[i] == '\n' || raw[i] == ',' {
			segments = append(segments, segment{delim: delim, text: raw[start:i]})
			delim = raw[i : i+1]
			start = i + 1
		}
	}

	return append(segments, segment{delim: delim, text: raw[start:]})
}

// splitKeyValue splits on the first ASCII or full-width colon. The value may
// contain further colons.
func splitKeyValue(text string) (string, string, bool) {
	idx, width := -1, 0
	if i := strings.Index(text, ":"); i >= 0 {
		idx, width = i, 1
	}
	if i := strings.Index(text, "："); i >= 0 && (idx < 0 || i < idx) {
		idx, width = i, len("：")
	}
	if idx < 0 {
		return "", "", false
	}

	key := strings.TrimSpace(text[:idx])
	if key == "" {
		return "", "", false
	}
	return key, strings.TrimSpace(text[idx+width:]), true
}

func foldKey(key string) string {
	// A Caser keeps state; one per call.
	return cases.Fold().String(strings.TrimSpace(key))
}

func cleanBody(body string) string {
	body = strings.ReplaceAll(body, "\r", "")
	body = blankLinesRegex.ReplaceAllString(body, "\n")
	return strings.TrimSpace(body)
}
