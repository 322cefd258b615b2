package font

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	fontLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
		{Name: "String", Pattern: `"[^"]*"|'[^']*'`},
		{Name: "Size", Pattern: `\d*\.?\d+(?:px|pt|mm|em|%)`},
		{Name: "Number", Pattern: `\d*\.?\d+`},
		{Name: "Ident", Pattern: `[A-Za-z_-][A-Za-z0-9_-]*`},
		{Name: "Punct", Pattern: `[,/]`},
	})

	shorthandParser = participle.MustBuild[shorthand](
		participle.Lexer(fontLexer),
		participle.Elide("Whitespace"),
	)
)

// shorthand is the CSS font shorthand:
// [style] [variant] [weight] size[/line-height] family[, family]*
type shorthand struct {
	Modifiers  []string      `parser:"@(Ident | Number)*"`
	Size       string        `parser:"@Size"`
	LineHeight string        `parser:"( '/' @(Size | Number | Ident) )?"`
	Families   []*familyName `parser:"@@ ( ',' @@ )*"`
}

type familyName struct {
	Quoted string   `parser:"  @String"`
	Words  []string `parser:"| @Ident+"`
}

func (f *familyName) text() string {
	if f.Quoted != "" {
		return f.Quoted
	}
	return strings.Join(f.Words, " ")
}

// Parse reads a CSS font shorthand such as "italic bold 12px/1.5 'Helvetica Neue', Arial".
func Parse(s string) (Font, error) {
	sh, err := shorthandParser.ParseString("", s)
	if err != nil {
		return Font{}, fmt.Errorf("font: parse %q: %w", s, err)
	}

	size, ok := ParseLength(sh.Size)
	if !ok {
		return Font{}, fmt.Errorf("font: invalid size %q", sh.Size)
	}
	f := Font{Size: size.Px(defaultSize)}
	for _, m := range sh.Modifiers {
		switch m {
		case "italic", "oblique":
			f.Style = m
		case "bold", "bolder", "lighter":
			f.Weight = m
		case "normal", "small-caps":
		default:
			if _, ok := ParseLength(m); ok {
				f.Weight = m
			}
		}
	}

	families := make([]string, 0, len(sh.Families))
	for _, fam := range sh.Families {
		families = append(families, fam.text())
	}
	f.Family = strings.Join(families, ", ")

	if sh.LineHeight == "" || sh.LineHeight == "normal" {
		f.LineHeight = f.Size * defaultLineHeight
	} else {
		f.LineHeight = LineHeight(sh.LineHeight, f.Size)
	}
	return f, nil
}

// MustParse is Parse that panics on error, for package-level font values.
func MustParse(s string) Font {
	f, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return f
}
