package xml

import (
	"strings"

	"github.com/beevik/etree"
	"github.com/pkg/errors"
)

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"\"", "&quot;",
	"'", "&apos;",
)

// Escape replaces the five XML metacharacters in s with their entity
// references. The vendor's parser rejects numeric character references,
// so named entities are used throughout.
func Escape(s string) string {
	return escaper.Replace(s)
}

type SyntaxError struct {
	Err error
}

func (e *SyntaxError) Error() string {
	return "malformed xml: " + e.Err.Error()
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// Format re-serializes xmlText with two-space indentation for debug output.
// The XML declaration is always stripped. Whitespace-only text nodes are
// not preserved.
func Format(xmlText string) (string, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(xmlText); err != nil {
		return "", &SyntaxError{Err: err}
	}
	if doc.Root() == nil {
		return "", &SyntaxError{Err: errors.New("no root element")}
	}

	for _, tok := range append([]etree.Token{}, doc.Child...) {
		if _, ok := tok.(*etree.ProcInst); ok {
			doc.RemoveChild(tok)
		}
	}

	doc.Indent(2)
	out, err := doc.WriteToString()
	if err != nil {
		return "", errors.Wrap(err, "serialize formatted xml")
	}

	return strings.TrimRight(out, "\n"), nil
}
