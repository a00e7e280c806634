package engine

import (
	"regexp"
	"strings"
)

// RecipientKind classifies a parsed recipient token.
type RecipientKind int

const (
	RecipientGroup RecipientKind = iota
	RecipientFunctionalRole
)

// Recipient is one classified token from a recipient cell.
type Recipient struct {
	Kind RecipientKind
	Name string
}

var (
	recipientSplitRe   = regexp.MustCompile(`[,;\n]`)
	bracketQualifierRe = regexp.MustCompile(`^\[[^\]]*\]\s*`)
)

// ParseRecipients splits one recipient cell into classified tokens.
//
// Cells delimit multiple recipients with commas, semicolons, or
// newlines. Each trimmed, non-empty token is classified:
//
//   - "VGroup: <name>" (case-insensitive prefix) → group; the name is
//     everything after the first colon.
//   - "VAssign: [Qualifier] <name>" → functional role; the optional
//     bracketed qualifier (e.g. "[Room]") is stripped along with the
//     prefix.
//   - anything else → group, named by the raw token.
//
// One cell may mix kinds; the caller keeps all tokens from a cell on a
// single destination regardless.
func ParseRecipients(raw string) []Recipient {
	parts := recipientSplitRe.Split(raw, -1)
	out := make([]Recipient, 0, len(parts))
	for _, p := range parts {
		tok := strings.TrimSpace(p)
		if tok == "" {
			continue
		}
		out = append(out, classifyRecipient(tok))
	}
	return out
}

func classifyRecipient(tok string) Recipient {
	lower := strings.ToLower(tok)
	switch {
	case strings.HasPrefix(lower, "vgroup"):
		name := ""
		if i := strings.Index(tok, ":"); i >= 0 {
			name = strings.TrimSpace(tok[i+1:])
		}
		return Recipient{Kind: RecipientGroup, Name: name}

	case strings.HasPrefix(lower, "vassign"):
		rest := tok[len("vassign"):]
		rest = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(rest), ":"))
		rest = bracketQualifierRe.ReplaceAllString(rest, "")
		return Recipient{Kind: RecipientFunctionalRole, Name: strings.TrimSpace(rest)}
	}
	return Recipient{Kind: RecipientGroup, Name: tok}
}
