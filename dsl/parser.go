package dsl

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	dslLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "HashComment", Pattern: `#[^\n]*`},
		{Name: "Size", Pattern: `\d+x\d+`},
		{Name: "Number", Pattern: `-?\d+`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Symbol", Pattern: `[:;]`},
		{Name: "LBrace", Pattern: `{`},
		{Name: "RBrace", Pattern: `}`},
	})

	tokenNames       = invertSymbols(dslLexer.Symbols())
	newlineTokenType = mustTokenType("Newline")
	lbraceTokenType  = mustTokenType("LBrace")
	rbraceTokenType  = mustTokenType("RBrace")
	symbolTokenType  = mustTokenType("Symbol")
	stringTokenType  = mustTokenType("String")

	scriptParser = participle.MustBuild[Script](
		participle.Lexer(dslLexer),
		participle.Elide("Whitespace", "LineComment", "BlockComment", "HashComment"),
	)
)

// Script is the root AST node: one or more screens.
type Script struct {
	Screens []*Screen `parser:"Newline* ( @@ Newline* )*"`
}

// Screen describes one display of the given pixel size and the elements drawn on it.
type Screen struct {
	Pos        lexer.Position `parser:"" json:"-"`
	Name       string         `parser:"'screen' @Ident"`
	Size       Size           `parser:"@Size"`
	Statements []*Statement   `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}'"`
}

// Statement inside a screen block (setting or element).
type Statement struct {
	Assignment *Assignment `parser:"  @@"`
	Command    *Command    `parser:"| @@"`
}

// Assignment uses colon syntax (key: value) and tunes the screen's drawing options.
type Assignment struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Key   string         `parser:"@Ident ':'"`
	Value *Lexeme        `parser:"@@"`
}

// Command is an element instruction: a name followed by positional arguments.
type Command struct {
	Pos  lexer.Position `parser:"" json:"-"`
	Name string         `parser:"@Ident"`
	Args []*Lexeme      `parser:"@@*"`
}

// Size captures `<W>x<H>`.
type Size struct {
	Width  int
	Height int
}

// Capture implements participle.Capture.
func (s *Size) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("size capture requires value")
	}
	w, h, ok := strings.Cut(values[0], "x")
	if !ok {
		return fmt.Errorf("invalid size %q", values[0])
	}
	var err error
	if s.Width, err = strconv.Atoi(w); err != nil {
		return err
	}
	if s.Height, err = strconv.Atoi(h); err != nil {
		return err
	}
	return nil
}

// Lexeme captures a single lexical token used as an argument.
type Lexeme struct {
	Type  string         `json:"type"`
	Value string         `json:"value"`
	Raw   string         `json:"raw"`
	Pos   lexer.Position `json:"-"`
}

// Parse implements participle.Parseable so Lexeme can act as a grammar atom.
func (l *Lexeme) Parse(lex *lexer.PeekingLexer) error {
	tok := lex.Peek()
	if shouldStopArg(tok) {
		return participle.NextMatch
	}

	lexeme, err := consumeLexeme(lex)
	if err != nil {
		return err
	}
	*l = *lexeme
	return nil
}

// IsString reports whether the lexeme was a quoted string.
func (l *Lexeme) IsString() bool { return l != nil && l.Type == "String" }

// Int returns the lexeme as an integer.
func (l *Lexeme) Int() (int, error) {
	if l == nil || l.Type != "Number" {
		return 0, fmt.Errorf("%s: expected number, got %s", l.position(), l.describe())
	}
	return strconv.Atoi(l.Value)
}

func (l *Lexeme) position() string {
	if l == nil {
		return "-"
	}
	return l.Pos.String()
}

func (l *Lexeme) describe() string {
	if l == nil {
		return "nothing"
	}
	return fmt.Sprintf("%s %s", strings.ToLower(l.Type), l.Raw)
}

// Parse parses a screen script from an io.Reader.
func Parse(r io.Reader) (*Script, error) {
	return scriptParser.Parse("", r)
}

// ParseString parses a screen script from a string.
func ParseString(input string) (*Script, error) {
	return scriptParser.ParseString("", input)
}

// Unquote decodes a Go-quoted string literal, additionally accepting `\e` for the escape byte.
func Unquote(raw string) (string, error) {
	if !strings.Contains(raw, `\e`) {
		return strconv.Unquote(raw)
	}
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c != '\\' || i+1 >= len(raw) {
			b.WriteByte(c)
			continue
		}
		i++
		if raw[i] == 'e' {
			b.WriteString(`\x1b`)
			continue
		}
		b.WriteByte('\\')
		b.WriteByte(raw[i])
	}
	return strconv.Unquote(b.String())
}

// consumeLexeme reads the next non-terminating token and converts it to a Lexeme.
func consumeLexeme(lex *lexer.PeekingLexer) (*Lexeme, error) {
	tok := lex.Next()
	if tok.EOF() {
		return nil, participle.NextMatch
	}

	lexeme, err := newLexeme(*tok)
	if err != nil {
		return nil, err
	}
	return &lexeme, nil
}

func shouldStopArg(tok *lexer.Token) bool {
	if tok == nil || tok.EOF() {
		return true
	}
	switch tok.Type {
	case newlineTokenType, rbraceTokenType, lbraceTokenType:
		return true
	case symbolTokenType:
		return tok.Value == ";"
	default:
		return false
	}
}

func newLexeme(tok lexer.Token) (Lexeme, error) {
	name, ok := tokenNames[tok.Type]
	if !ok {
		name = fmt.Sprintf("#%d", tok.Type)
	}
	val := tok.Value
	if tok.Type == stringTokenType {
		unquoted, err := Unquote(tok.Value)
		if err != nil {
			return Lexeme{}, fmt.Errorf("%s: %w", tok.Pos, err)
		}
		val = unquoted
	}

	return Lexeme{
		Type:  name,
		Value: val,
		Raw:   tok.Value,
		Pos:   tok.Pos,
	}, nil
}

func invertSymbols(symbols map[string]lexer.TokenType) map[lexer.TokenType]string {
	out := make(map[lexer.TokenType]string, len(symbols))
	for name, tt := range symbols {
		out[tt] = name
	}
	return out
}

func mustTokenType(name string) lexer.TokenType {
	symbols := dslLexer.Symbols()
	tt, ok := symbols[name]
	if !ok {
		panic(fmt.Sprintf("token %s not defined", name))
	}
	return tt
}
