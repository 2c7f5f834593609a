package task

import (
	"regexp"
	"strings"
)

// metaTokenRe matches one whitespace-word-bounded key:value token with
// a recognized key. Keys are case-insensitive; values are any run of
// non-whitespace. Unrecognized key:value shapes never match and stay
// in the text. The compiled pattern is only ever read, and every call
// runs a fresh match over its own input, so decodes cannot observe
// each other.
var metaTokenRe = regexp.MustCompile(`(?i)(^|\s)(id|cd|due|dd):(\S+)`)

// DecodeMeta strips every recognized metadata token from text and
// returns the cleaned text plus the extracted metadata. Whitespace
// runs left behind by removed tokens are collapsed to single spaces
// and the ends are trimmed. When a key appears more than once the
// first occurrence wins.
func DecodeMeta(text string) (string, Meta) {
	var m Meta
	for _, tok := range metaTokenRe.FindAllStringSubmatch(text, -1) {
		key := strings.ToLower(tok[2])
		val := tok[3]
		switch key {
		case "id":
			if m.ID == "" {
				m.ID = val
			}
		case "cd":
			if m.CD == "" {
				m.CD = val
			}
		case "due":
			if m.Due == "" {
				m.Due = val
			}
		case "dd":
			if m.DD == "" {
				m.DD = val
			}
		}
	}
	clean := metaTokenRe.ReplaceAllString(text, " ")
	clean = strings.Join(strings.Fields(clean), " ")
	return clean, m
}

// Encode renders the present fields in fixed order as a space-prefixed
// suffix, e.g. " id:a1x cd:2026-02-21 dd:2026-02-22". Absent fields
// are omitted; an empty Meta encodes to "".
func (m Meta) Encode() string {
	var b strings.Builder
	if m.ID != "" {
		b.WriteString(" id:")
		b.WriteString(m.ID)
	}
	if m.CD != "" {
		b.WriteString(" cd:")
		b.WriteString(m.CD)
	}
	if m.Due != "" {
		b.WriteString(" due:")
		b.WriteString(m.Due)
	}
	if m.DD != "" {
		b.WriteString(" dd:")
		b.WriteString(m.DD)
	}
	return b.String()
}

// IsZero reports whether no field is set.
func (m Meta) IsZero() bool {
	return m == Meta{}
}
