package parse

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/broady/propflow/ir"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokNumber
	tokString
	tokPunct
)

// comment is a source comment plus the lines it spans.
type comment struct {
	ir.Comment
	line    int
	endLine int
}

type token struct {
	kind tokenKind
	text string // raw source text
	val  any    // decoded value for tokNumber and tokString
	line int
	col  int

	// comments precede the token in the source.
	comments []comment
}

// SyntaxError reports malformed descriptor source.
type SyntaxError struct {
	Line   int
	Column int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Msg)
}

type lexer struct {
	src  string
	pos  int
	line int
	col  int
}

func lex(src string) ([]token, error) {
	l := &lexer{src: src, line: 1, col: 1}
	var toks []token
	for {
		t, err := l.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, t)
		if t.kind == tokEOF {
			return toks, nil
		}
	}
}

func (l *lexer) errorf(line, col int, format string, args ...any) error {
	return &SyntaxError{Line: line, Column: col, Msg: fmt.Sprintf(format, args...)}
}

func (l *lexer) peekByte(off int) byte {
	if l.pos+off < len(l.src) {
		return l.src[l.pos+off]
	}
	return 0
}

// advance moves past n bytes, tracking line and column.
func (l *lexer) advance(n int) {
	for i := 0; i < n && l.pos < len(l.src); i++ {
		if l.src[l.pos] == '\n' {
			l.line++
			l.col = 1
		} else if l.src[l.pos]&0xC0 != 0x80 {
			l.col++
		}
		l.pos++
	}
}

func (l *lexer) next() (token, error) {
	var comments []comment
	for {
		for l.pos < len(l.src) && isSpace(l.src[l.pos]) {
			l.advance(1)
		}
		if strings.HasPrefix(l.src[l.pos:], "//") {
			line := l.line
			end := strings.IndexByte(l.src[l.pos:], '\n')
			if end < 0 {
				end = len(l.src) - l.pos
			}
			text := l.src[l.pos+2 : l.pos+end]
			l.advance(end)
			comments = append(comments, comment{Comment: ir.Line(strings.TrimSuffix(text, "\r")), line: line, endLine: line})
			continue
		}
		if strings.HasPrefix(l.src[l.pos:], "/*") {
			line, col := l.line, l.col
			end := strings.Index(l.src[l.pos+2:], "*/")
			if end < 0 {
				return token{}, l.errorf(line, col, "unterminated block comment")
			}
			text := l.src[l.pos+2 : l.pos+2+end]
			l.advance(end + 4)
			comments = append(comments, comment{Comment: ir.Block(text), line: line, endLine: l.line})
			continue
		}
		break
	}

	t := token{line: l.line, col: l.col, comments: comments}
	if l.pos >= len(l.src) {
		t.kind = tokEOF
		return t, nil
	}

	c := l.src[l.pos]
	switch {
	case c == '"' || c == '\'':
		return l.lexString(t)
	case c == '`':
		return l.lexTemplate(t)
	case isDigit(c),
		c == '.' && isDigit(l.peekByte(1)),
		c == '-' && (isDigit(l.peekByte(1)) || l.peekByte(1) == '.' && isDigit(l.peekByte(2))):
		return l.lexNumber(t)
	case strings.HasPrefix(l.src[l.pos:], "..."):
		return token{}, l.errorf(t.line, t.col, "spread elements are not supported")
	case strings.IndexByte(".()[]{},:;", c) >= 0:
		t.kind = tokPunct
		t.text = string(c)
		l.advance(1)
		return t, nil
	}

	r, size := utf8.DecodeRuneInString(l.src[l.pos:])
	if !isIdentStart(r) {
		return token{}, l.errorf(t.line, t.col, "unexpected character %q", r)
	}
	start := l.pos
	l.advance(size)
	for l.pos < len(l.src) {
		r, size = utf8.DecodeRuneInString(l.src[l.pos:])
		if !isIdentPart(r) {
			break
		}
		l.advance(size)
	}
	t.kind = tokIdent
	t.text = l.src[start:l.pos]
	return t, nil
}

func (l *lexer) lexNumber(t token) (token, error) {
	start := l.pos
	if l.src[l.pos] == '-' {
		l.advance(1)
	}
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if isDigit(c) || isLetter(c) || c == '.' || c == '_' {
			l.advance(1)
			continue
		}
		// Exponent sign, as in 1e-3.
		if (c == '+' || c == '-') && (l.src[l.pos-1] == 'e' || l.src[l.pos-1] == 'E') && !strings.HasPrefix(l.src[start:], "0x") {
			l.advance(1)
			continue
		}
		break
	}
	raw := l.src[start:l.pos]
	digits := strings.ReplaceAll(raw, "_", "")

	t.kind = tokNumber
	t.text = raw
	if n, err := strconv.ParseInt(digits, 0, 64); err == nil {
		t.val = float64(n)
		return t, nil
	}
	f, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return token{}, l.errorf(t.line, t.col, "invalid number %q", raw)
	}
	t.val = f
	return t, nil
}

func (l *lexer) lexString(t token) (token, error) {
	quote := l.src[l.pos]
	start := l.pos
	l.advance(1)

	var b strings.Builder
	for {
		if l.pos >= len(l.src) || l.src[l.pos] == '\n' {
			return token{}, l.errorf(t.line, t.col, "unterminated string literal")
		}
		c := l.src[l.pos]
		if c == quote {
			l.advance(1)
			break
		}
		if c != '\\' {
			b.WriteByte(c)
			l.advance(1)
			continue
		}
		if err := l.lexEscape(&b, t); err != nil {
			return token{}, err
		}
	}

	t.kind = tokString
	t.text = l.src[start:l.pos]
	t.val = b.String()
	return t, nil
}

// lexTemplate accepts template literals without substitutions.
func (l *lexer) lexTemplate(t token) (token, error) {
	start := l.pos
	l.advance(1)

	var b strings.Builder
	for {
		if l.pos >= len(l.src) {
			return token{}, l.errorf(t.line, t.col, "unterminated template literal")
		}
		c := l.src[l.pos]
		switch {
		case c == '`':
			l.advance(1)
			t.kind = tokString
			t.text = l.src[start:l.pos]
			t.val = b.String()
			return t, nil
		case c == '$' && l.peekByte(1) == '{':
			return token{}, l.errorf(l.line, l.col, "template substitutions are not supported")
		case c == '\\':
			if err := l.lexEscape(&b, t); err != nil {
				return token{}, err
			}
		default:
			b.WriteByte(c)
			l.advance(1)
		}
	}
}

// lexEscape decodes the escape sequence at l.pos into b.
func (l *lexer) lexEscape(b *strings.Builder, t token) error {
	line, col := l.line, l.col
	l.advance(1)
	if l.pos >= len(l.src) {
		return l.errorf(t.line, t.col, "unterminated string literal")
	}
	c := l.src[l.pos]
	switch c {
	case 'n':
		b.WriteByte('\n')
	case 't':
		b.WriteByte('\t')
	case 'r':
		b.WriteByte('\r')
	case 'b':
		b.WriteByte('\b')
	case 'f':
		b.WriteByte('\f')
	case 'v':
		b.WriteByte('\v')
	case '0':
		b.WriteByte(0)
	case '\n':
		// Line continuation.
	case 'x', 'u':
		n := 2
		if c == 'u' {
			n = 4
		}
		hex := l.src[l.pos+1 : min(l.pos+1+n, len(l.src))]
		if c == 'u' && strings.HasPrefix(hex, "{") {
			end := strings.IndexByte(l.src[l.pos:], '}')
			if end < 0 {
				return l.errorf(line, col, "invalid unicode escape")
			}
			hex = l.src[l.pos+2 : l.pos+end]
			n = end
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil || len(hex) == 0 {
			return l.errorf(line, col, "invalid escape sequence")
		}
		b.WriteRune(rune(v))
		l.advance(n)
	default:
		b.WriteByte(c)
	}
	l.advance(1)
	return nil
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isLetter(c byte) bool { return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' }

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}
