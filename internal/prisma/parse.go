// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package prisma

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/scanner"
)

// SyntaxError reports a parse failure at a source position.
type SyntaxError struct {
	Line   int
	Column int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d:%d: %s", e.Line, e.Column, e.Msg)
}

// skipped lists block keywords whose contents are not needed.
var skipped = map[string]bool{
	"datasource": true,
	"generator":  true,
	"view":       true,
	"type":       true,
}

// ParseString parses schema source text.
func ParseString(src string) (*Document, error) {
	return Parse(strings.NewReader(src))
}

// Parse reads a schema from r.
func Parse(r io.Reader) (*Document, error) {
	p := &parser{}
	p.s.Init(r)
	p.s.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanFloats | scanner.ScanStrings | scanner.ScanComments
	p.s.Whitespace = 1<<'\t' | 1<<'\r' | 1<<' '
	p.s.Error = func(s *scanner.Scanner, msg string) {
		if p.scanErr == nil {
			p.scanErr = &SyntaxError{Line: s.Position.Line, Column: s.Position.Column, Msg: msg}
		}
	}
	p.next()

	doc := &Document{}
	for {
		p.skipNewlines()
		if p.tok == scanner.EOF {
			break
		}
		if p.tok != scanner.Ident {
			return nil, p.errorf("expected declaration, found %q", p.text)
		}
		switch keyword := p.text; {
		case keyword == "model":
			m, err := p.parseModel()
			if err != nil {
				return nil, err
			}
			doc.Declarations = append(doc.Declarations, m)
		case keyword == "enum":
			e, err := p.parseEnum()
			if err != nil {
				return nil, err
			}
			doc.Declarations = append(doc.Declarations, e)
		case skipped[keyword]:
			if err := p.skipBlock(); err != nil {
				return nil, err
			}
		default:
			return nil, p.errorf("unknown block %q", keyword)
		}
		if p.scanErr != nil {
			return nil, p.scanErr
		}
	}
	if p.scanErr != nil {
		return nil, p.scanErr
	}
	return doc, nil
}

type parser struct {
	s       scanner.Scanner
	tok     rune
	text    string
	pos     scanner.Position
	doc     []string
	scanErr *SyntaxError
}

// next advances to the next token. Comments are consumed here; /// comments
// are collected as documentation for the following declaration or field.
func (p *parser) next() {
	for {
		p.tok = p.s.Scan()
		p.text = p.s.TokenText()
		p.pos = p.s.Position
		if p.tok != scanner.Comment {
			return
		}
		if line, ok := strings.CutPrefix(p.text, "///"); ok {
			p.doc = append(p.doc, strings.TrimSpace(line))
		}
	}
}

func (p *parser) takeDoc() string {
	doc := strings.Join(p.doc, "\n")
	p.doc = nil
	return doc
}

func (p *parser) errorf(format string, args ...any) error {
	if p.scanErr != nil {
		return p.scanErr
	}
	return &SyntaxError{Line: p.pos.Line, Column: p.pos.Column, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) skipNewlines() {
	for p.tok == '\n' {
		p.next()
	}
}

func (p *parser) expect(tok rune, what string) error {
	if p.tok != tok {
		return p.errorf("expected %s, found %q", what, p.text)
	}
	p.next()
	return nil
}

func (p *parser) ident(what string) (string, error) {
	if p.tok != scanner.Ident {
		return "", p.errorf("expected %s, found %q", what, p.text)
	}
	name := p.text
	p.next()
	return name, nil
}

// endOfLine accepts the newline (or closing brace) that ends a block member.
func (p *parser) endOfLine() error {
	switch p.tok {
	case '\n':
		p.next()
		return nil
	case '}', scanner.EOF:
		return nil
	}
	return p.errorf("unexpected %q", p.text)
}

func (p *parser) skipBlock() error {
	p.takeDoc()
	p.next()
	if _, err := p.ident("block name"); err != nil {
		return err
	}
	if err := p.expect('{', "'{'"); err != nil {
		return err
	}
	for depth := 1; depth > 0; p.next() {
		switch p.tok {
		case '{':
			depth++
		case '}':
			depth--
		case scanner.EOF:
			return p.errorf("unterminated block")
		}
	}
	p.doc = nil
	return nil
}

func (p *parser) parseModel() (*Model, error) {
	m := &Model{Doc: p.takeDoc()}
	p.next()
	name, err := p.ident("model name")
	if err != nil {
		return nil, err
	}
	m.Name = name
	if err := p.expect('{', "'{'"); err != nil {
		return nil, err
	}
	for {
		p.skipNewlines()
		switch p.tok {
		case '}':
			p.doc = nil
			p.next()
			return m, nil
		case scanner.EOF:
			return nil, p.errorf("unterminated model %s", m.Name)
		case '@':
			attr, err := p.parseBlockAttribute()
			if err != nil {
				return nil, err
			}
			m.Attributes = append(m.Attributes, attr)
			if err := p.endOfLine(); err != nil {
				return nil, err
			}
		default:
			f, err := p.parseField()
			if err != nil {
				return nil, err
			}
			m.Fields = append(m.Fields, f)
		}
	}
}

func (p *parser) parseField() (*Field, error) {
	f := &Field{Doc: p.takeDoc()}
	name, err := p.ident("field name")
	if err != nil {
		return nil, err
	}
	f.Name = name
	typ, err := p.ident("field type")
	if err != nil {
		return nil, err
	}
	f.Type = typ
	if p.tok == '(' {
		// Unsupported("...")
		if _, err := p.parseArgs(); err != nil {
			return nil, err
		}
	}
	if p.tok == '[' {
		p.next()
		if err := p.expect(']', "']'"); err != nil {
			return nil, err
		}
		f.List = true
	}
	if p.tok == '?' {
		p.next()
		f.Optional = true
	}
	for p.tok == '@' {
		attr, err := p.parseAttribute()
		if err != nil {
			return nil, err
		}
		f.Attributes = append(f.Attributes, attr)
	}
	if len(p.doc) > 0 {
		trailing := p.takeDoc()
		if f.Doc != "" {
			f.Doc += "\n"
		}
		f.Doc += trailing
	}
	if err := p.endOfLine(); err != nil {
		return nil, err
	}
	return f, nil
}

func (p *parser) parseBlockAttribute() (Attribute, error) {
	p.next()
	if p.tok != '@' {
		return Attribute{}, p.errorf("expected block attribute, found %q", p.text)
	}
	return p.parseAttribute()
}

func (p *parser) parseAttribute() (Attribute, error) {
	p.next()
	name, err := p.ident("attribute name")
	if err != nil {
		return Attribute{}, err
	}
	for p.tok == '.' {
		p.next()
		part, err := p.ident("attribute name")
		if err != nil {
			return Attribute{}, err
		}
		name += "." + part
	}
	attr := Attribute{Name: name}
	if p.tok == '(' {
		args, err := p.parseArgs()
		if err != nil {
			return Attribute{}, err
		}
		attr.Args = args
	}
	return attr, nil
}

func (p *parser) parseArgs() ([]Arg, error) {
	p.next()
	var args []Arg
	for {
		p.skipNewlines()
		if p.tok == ')' {
			p.next()
			return args, nil
		}
		arg, err := p.parseArg()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		p.skipNewlines()
		switch p.tok {
		case ',':
			p.next()
		case ')':
		default:
			return nil, p.errorf("expected ',' or ')', found %q", p.text)
		}
	}
}

func (p *parser) parseArg() (Arg, error) {
	v, err := p.parseValue()
	if err != nil {
		return Arg{}, err
	}
	if v.Kind == IdentValue && p.tok == ':' {
		p.next()
		val, err := p.parseValue()
		if err != nil {
			return Arg{}, err
		}
		return Arg{Name: v.Text, Value: val}, nil
	}
	return Arg{Value: v}, nil
}

func (p *parser) parseValue() (Value, error) {
	switch p.tok {
	case scanner.String:
		s, err := strconv.Unquote(p.text)
		if err != nil {
			return Value{}, p.errorf("invalid string %s", p.text)
		}
		p.next()
		return Value{Kind: StringValue, Text: s}, nil
	case scanner.Int, scanner.Float:
		v := Value{Kind: NumberValue, Text: p.text}
		p.next()
		return v, nil
	case '-':
		p.next()
		if p.tok != scanner.Int && p.tok != scanner.Float {
			return Value{}, p.errorf("expected number, found %q", p.text)
		}
		v := Value{Kind: NumberValue, Text: "-" + p.text}
		p.next()
		return v, nil
	case '[':
		p.next()
		v := Value{Kind: ArrayValue}
		for {
			p.skipNewlines()
			if p.tok == ']' {
				p.next()
				return v, nil
			}
			item, err := p.parseValue()
			if err != nil {
				return Value{}, err
			}
			v.Items = append(v.Items, item)
			p.skipNewlines()
			if p.tok == ',' {
				p.next()
			} else if p.tok != ']' {
				return Value{}, p.errorf("expected ',' or ']', found %q", p.text)
			}
		}
	case scanner.Ident:
		name := p.text
		p.next()
		for p.tok == '.' {
			p.next()
			part, err := p.ident("identifier")
			if err != nil {
				return Value{}, err
			}
			name += "." + part
		}
		if p.tok == '(' {
			args, err := p.parseArgs()
			if err != nil {
				return Value{}, err
			}
			return Value{Kind: FuncValue, Text: name, Args: args}, nil
		}
		return Value{Kind: IdentValue, Text: name}, nil
	}
	return Value{}, p.errorf("unexpected %q", p.text)
}

func (p *parser) parseEnum() (*Enum, error) {
	e := &Enum{Doc: p.takeDoc()}
	p.next()
	name, err := p.ident("enum name")
	if err != nil {
		return nil, err
	}
	e.Name = name
	if err := p.expect('{', "'{'"); err != nil {
		return nil, err
	}
	for {
		p.skipNewlines()
		switch p.tok {
		case '}':
			p.doc = nil
			p.next()
			return e, nil
		case scanner.EOF:
			return nil, p.errorf("unterminated enum %s", e.Name)
		case '@':
			if _, err := p.parseBlockAttribute(); err != nil {
				return nil, err
			}
		default:
			p.doc = nil
			member, err := p.ident("enum member")
			if err != nil {
				return nil, err
			}
			for p.tok == '@' {
				if _, err := p.parseAttribute(); err != nil {
					return nil, err
				}
			}
			e.Members = append(e.Members, member)
		}
		p.doc = nil
		if err := p.endOfLine(); err != nil {
			return nil, err
		}
	}
}
