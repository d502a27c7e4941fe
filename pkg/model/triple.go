package model

import "strings"

// TermKind discriminates the kinds of RDF terms a triple object can be.
type TermKind uint8

const (
	// TermIRI is a URI reference, internal or external.
	TermIRI TermKind = iota + 1

	// TermLiteral is a (possibly typed or language-tagged) literal.
	TermLiteral

	// TermBlank is a blank node label.
	TermBlank
)

// Term is an RDF object term.
type Term struct {
	Kind     TermKind `json:"kind"`
	Value    string   `json:"value"`
	Datatype string   `json:"datatype,omitempty"`
	Lang     string   `json:"lang,omitempty"`
}

// IRI builds an IRI term.
func IRI(v string) Term {
	return Term{Kind: TermIRI, Value: v}
}

// Literal builds a plain literal term.
func Literal(v string) Term {
	return Term{Kind: TermLiteral, Value: v}
}

// TypedLiteral builds a literal term with a datatype IRI.
func TypedLiteral(v, datatype string) Term {
	return Term{Kind: TermLiteral, Value: v, Datatype: datatype}
}

// LangLiteral builds a language-tagged literal term.
func LangLiteral(v, lang string) Term {
	return Term{Kind: TermLiteral, Value: v, Lang: lang}
}

// Blank builds a blank node term.
func Blank(label string) Term {
	return Term{Kind: TermBlank, Value: label}
}

// Triple is one RDF statement. Subjects and predicates are always IRIs
// in this repository; blank nodes only ever appear in object position
// through loaded foreign data.
type Triple struct {
	Subject   string `json:"s"`
	Predicate string `json:"p"`
	Object    Term   `json:"o"`
}

// Key returns a canonical string for ordering and deduplication.
func (t Triple) Key() string {
	var b strings.Builder
	b.WriteString(t.Subject)
	b.WriteByte('\x1f')
	b.WriteString(t.Predicate)
	b.WriteByte('\x1f')
	b.WriteString(t.Object.Key())
	return b.String()
}

// Key returns a canonical string uniquely identifying the term.
func (o Term) Key() string {
	var b strings.Builder
	b.WriteByte(byte('0' + o.Kind))
	b.WriteString(o.Value)
	b.WriteByte('\x1f')
	b.WriteString(o.Datatype)
	b.WriteByte('\x1f')
	b.WriteString(o.Lang)
	return b.String()
}
