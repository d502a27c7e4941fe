package model

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// The dump archive stores one canonical N-Triples document per
// resource: lines sorted lexicographically, UTF-8, one statement per
// line. N-Triples was chosen over richer serializations because it is
// line-oriented (diffable, resumable) and every RDF toolchain parses it.

// EncodeTriple renders one statement as an N-Triples line, without the
// trailing newline.
func EncodeTriple(t Triple) string {
	var b strings.Builder
	if strings.HasPrefix(t.Subject, "_:") {
		b.WriteString(t.Subject)
	} else {
		b.WriteString(encodeIRI(t.Subject))
	}
	b.WriteByte(' ')
	b.WriteString(encodeIRI(t.Predicate))
	b.WriteByte(' ')
	b.WriteString(encodeTerm(t.Object))
	b.WriteString(" .")
	return b.String()
}

// EncodeGraph writes a canonical N-Triples document for the given
// statements: one line per triple, lines sorted, duplicates removed.
func EncodeGraph(w io.Writer, triples []Triple) error {
	lines := make([]string, 0, len(triples))
	for _, t := range triples {
		lines = append(lines, EncodeTriple(t))
	}
	sort.Strings(lines)
	bw := bufio.NewWriter(w)
	var prev string
	for i, line := range lines {
		if i > 0 && line == prev {
			continue
		}
		prev = line
		if _, err := bw.WriteString(line); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// DecodeGraph parses an N-Triples document. Blank lines and comment
// lines are ignored.
func DecodeGraph(r io.Reader) ([]Triple, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)
	var (
		out    []Triple
		lineNo int
	)
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		t, err := DecodeTriple(line)
		if err != nil {
			return nil, fmt.Errorf("n-triples line %d: %w", lineNo, err)
		}
		out = append(out, t)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// DecodeTriple parses a single N-Triples statement.
func DecodeTriple(line string) (Triple, error) {
	p := ntParser{in: line}
	var t Triple

	p.skipSpace()
	subj, err := p.readResource()
	if err != nil {
		return t, fmt.Errorf("subject: %w", err)
	}
	if subj.Kind == TermBlank {
		// the repository never emits blank subjects, but foreign dumps may
		t.Subject = "_:" + subj.Value
	} else {
		t.Subject = subj.Value
	}

	p.skipSpace()
	pred, err := p.readIRI()
	if err != nil {
		return t, fmt.Errorf("predicate: %w", err)
	}
	t.Predicate = pred

	p.skipSpace()
	obj, err := p.readTerm()
	if err != nil {
		return t, fmt.Errorf("object: %w", err)
	}
	t.Object = obj

	p.skipSpace()
	if !p.consume('.') {
		return t, fmt.Errorf("missing terminating dot at offset %d", p.pos)
	}
	p.skipSpace()
	if !p.eof() {
		return t, fmt.Errorf("trailing content after dot: %q", p.rest())
	}
	return t, nil
}

func encodeIRI(v string) string {
	return "<" + v + ">"
}

func encodeTerm(o Term) string {
	switch o.Kind {
	case TermIRI:
		return encodeIRI(o.Value)
	case TermBlank:
		return "_:" + o.Value
	default:
		s := "\"" + escapeLiteral(o.Value) + "\""
		switch {
		case o.Lang != "":
			return s + "@" + o.Lang
		case o.Datatype != "":
			return s + "^^" + encodeIRI(o.Datatype)
		default:
			return s
		}
	}
}

func escapeLiteral(v string) string {
	var b strings.Builder
	for _, r := range v {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

type ntParser struct {
	in  string
	pos int
}

func (p *ntParser) eof() bool { return p.pos >= len(p.in) }

func (p *ntParser) rest() string { return p.in[p.pos:] }

func (p *ntParser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.in[p.pos]
}

func (p *ntParser) consume(c byte) bool {
	if p.peek() != c {
		return false
	}
	p.pos++
	return true
}

func (p *ntParser) skipSpace() {
	for !p.eof() && (p.in[p.pos] == ' ' || p.in[p.pos] == '\t') {
		p.pos++
	}
}

// readResource parses an IRI ref or a blank node label.
func (p *ntParser) readResource() (Term, error) {
	if p.peek() == '_' {
		label, err := p.readBlankLabel()
		if err != nil {
			return Term{}, err
		}
		return Blank(label), nil
	}
	iri, err := p.readIRI()
	if err != nil {
		return Term{}, err
	}
	return IRI(iri), nil
}

func (p *ntParser) readIRI() (string, error) {
	if !p.consume('<') {
		return "", fmt.Errorf("expected '<' at offset %d", p.pos)
	}
	end := strings.IndexByte(p.in[p.pos:], '>')
	if end < 0 {
		return "", fmt.Errorf("unterminated IRI at offset %d", p.pos)
	}
	iri := p.in[p.pos : p.pos+end]
	p.pos += end + 1
	if iri == "" {
		return "", fmt.Errorf("empty IRI at offset %d", p.pos)
	}
	return iri, nil
}

func (p *ntParser) readBlankLabel() (string, error) {
	if !strings.HasPrefix(p.rest(), "_:") {
		return "", fmt.Errorf("expected blank node at offset %d", p.pos)
	}
	p.pos += 2
	start := p.pos
	for !p.eof() {
		c := p.in[p.pos]
		if c == ' ' || c == '\t' {
			break
		}
		p.pos++
	}
	if p.pos == start {
		return "", fmt.Errorf("empty blank node label at offset %d", start)
	}
	return p.in[start:p.pos], nil
}

func (p *ntParser) readTerm() (Term, error) {
	switch p.peek() {
	case '<':
		iri, err := p.readIRI()
		if err != nil {
			return Term{}, err
		}
		return IRI(iri), nil
	case '_':
		label, err := p.readBlankLabel()
		if err != nil {
			return Term{}, err
		}
		return Blank(label), nil
	case '"':
		return p.readLiteral()
	default:
		return Term{}, fmt.Errorf("unexpected term at offset %d: %q", p.pos, p.rest())
	}
}

func (p *ntParser) readLiteral() (Term, error) {
	p.pos++ // opening quote
	var b strings.Builder
	for {
		if p.eof() {
			return Term{}, fmt.Errorf("unterminated literal")
		}
		c := p.in[p.pos]
		if c == '"' {
			p.pos++
			break
		}
		if c != '\\' {
			b.WriteByte(c)
			p.pos++
			continue
		}
		p.pos++
		if p.eof() {
			return Term{}, fmt.Errorf("dangling escape in literal")
		}
		esc := p.in[p.pos]
		p.pos++
		switch esc {
		case 't':
			b.WriteByte('\t')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case '"':
			b.WriteByte('"')
		case '\\':
			b.WriteByte('\\')
		case 'u', 'U':
			width := 4
			if esc == 'U' {
				width = 8
			}
			if p.pos+width > len(p.in) {
				return Term{}, fmt.Errorf("truncated \\%c escape", esc)
			}
			code, err := strconv.ParseUint(p.in[p.pos:p.pos+width], 16, 32)
			if err != nil {
				return Term{}, fmt.Errorf("invalid \\%c escape: %v", esc, err)
			}
			b.WriteRune(rune(code))
			p.pos += width
		default:
			return Term{}, fmt.Errorf("unknown escape \\%c in literal", esc)
		}
	}

	o := Literal(b.String())
	switch p.peek() {
	case '@':
		p.pos++
		start := p.pos
		for !p.eof() && p.in[p.pos] != ' ' && p.in[p.pos] != '\t' {
			p.pos++
		}
		if p.pos == start {
			return Term{}, fmt.Errorf("empty language tag")
		}
		o.Lang = p.in[start:p.pos]
	case '^':
		if !strings.HasPrefix(p.rest(), "^^") {
			return Term{}, fmt.Errorf("malformed datatype marker at offset %d", p.pos)
		}
		p.pos += 2
		dt, err := p.readIRI()
		if err != nil {
			return Term{}, fmt.Errorf("datatype: %w", err)
		}
		o.Datatype = dt
	}
	return o, nil
}
