package action

import (
	"regexp"
	"strings"
)

// Marker literals of the text protocol. They are matched byte-for-byte.
const (
	Delimiter   = "++"
	OpenKeyword = "nano"
	EOFKeyword  = "EOF"
)

var (
	// ++nano <path>++ \n <content> \n ++EOF++
	fileBlockRe = regexp.MustCompile(`(?s)\+\+nano ([\w./-]+)\+\+\n(.*?)\n\+\+EOF\+\+`)
	// ++<body>++ on a single line.
	commandRe = regexp.MustCompile(`\+\+(.*?)\+\+`)
	// An opening marker with no closing marker after it.
	openerRe = regexp.MustCompile(`\+\+nano [\w./-]+\+\+`)
	// Bodies that are leftovers of file-block markers, never commands.
	openMarkerBodyRe = regexp.MustCompile(`^nano [\w./-]+$`)
)

// Token is one lexical span of the response text before trimming.
// Raw always holds the exact input bytes of the span.
type Token struct {
	Kind    Kind
	Raw     string
	Span    Span
	Body    string
	Path    string
	Content string
}

// Tokenize splits text into non-overlapping tokens in byte order.
// File blocks are matched first; commands are only matched in the gaps
// between them. An opening marker that no file block closes turns the rest
// of its gap into one text token. Concatenating the Raw fields reproduces
// text exactly.
func Tokenize(text string) []Token {
	var matches []Token
	pos := 0
	for _, m := range fileBlockRe.FindAllStringSubmatchIndex(text, -1) {
		matches = append(matches, gapTokens(text, pos, m[0])...)
		matches = append(matches, Token{
			Kind:    KindFileWrite,
			Raw:     text[m[0]:m[1]],
			Span:    Span{Start: m[0], End: m[1]},
			Path:    text[m[2]:m[3]],
			Content: text[m[4]:m[5]],
		})
		pos = m[1]
	}
	matches = append(matches, gapTokens(text, pos, len(text))...)

	return fillGaps(text, matches)
}

// Unterminated returns the byte offset of the first opening marker that no
// file block closes, or -1.
func Unterminated(text string) int {
	pos := 0
	for _, m := range fileBlockRe.FindAllStringIndex(text, -1) {
		if at := openerIn(text, pos, m[0]); at >= 0 {
			return at
		}
		pos = m[1]
	}
	return openerIn(text, pos, len(text))
}

// gapTokens matches commands in text[start:end] up to the first unclosed
// opener; everything from the opener on stays prose.
func gapTokens(text string, start, end int) []Token {
	at := openerIn(text, start, end)
	if at < 0 {
		return commandTokens(text, start, end)
	}
	return append(commandTokens(text, start, at), textToken(text, at, end))
}

func openerIn(text string, start, end int) int {
	loc := openerRe.FindStringIndex(text[start:end])
	if loc == nil {
		return -1
	}
	return start + loc[0]
}

// commandTokens finds command spans inside text[start:end].
func commandTokens(text string, start, end int) []Token {
	if start >= end {
		return nil
	}
	segment := text[start:end]
	var out []Token
	for _, m := range commandRe.FindAllStringSubmatchIndex(segment, -1) {
		body := segment[m[2]:m[3]]
		if isMarkerArtifact(body) {
			continue
		}
		out = append(out, Token{
			Kind: KindCommand,
			Raw:  segment[m[0]:m[1]],
			Span: Span{Start: start + m[0], End: start + m[1]},
			Body: body,
		})
	}
	return out
}

func isMarkerArtifact(body string) bool {
	b := strings.TrimSpace(body)
	return b == EOFKeyword || openMarkerBodyRe.MatchString(b)
}

// fillGaps interleaves text tokens between the sorted matches.
func fillGaps(text string, matches []Token) []Token {
	tokens := make([]Token, 0, 2*len(matches)+1)
	pos := 0
	for _, m := range matches {
		if m.Span.Start > pos {
			tokens = append(tokens, textToken(text, pos, m.Span.Start))
		}
		tokens = append(tokens, m)
		pos = m.Span.End
	}
	if pos < len(text) {
		tokens = append(tokens, textToken(text, pos, len(text)))
	}
	return tokens
}

func textToken(text string, start, end int) Token {
	raw := text[start:end]
	return Token{Kind: KindText, Raw: raw, Span: Span{Start: start, End: end}, Body: raw}
}

// Reconstruct concatenates the raw token spans.
func Reconstruct(tokens []Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.Raw)
	}
	return b.String()
}
