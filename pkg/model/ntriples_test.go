package model

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeTriple(t *testing.T) {
	require.Equal(t,
		`<info:lakeland/res/a> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/ns/ldp#Resource> .`,
		EncodeTriple(Triple{
			Subject:   "info:lakeland/res/a",
			Predicate: PredType,
			Object:    IRI(ClassResource),
		}))

	require.Equal(t,
		`<info:lakeland/res/a> <http://purl.org/dc/terms/title> "say \"hi\"\n" .`,
		EncodeTriple(Triple{
			Subject:   "info:lakeland/res/a",
			Predicate: DCTermsNamespace + "title",
			Object:    Literal("say \"hi\"\n"),
		}))

	require.Equal(t,
		`<info:lakeland/res/a> <http://purl.org/dc/terms/created> "2026-01-02T03:04:05Z"^^<http://www.w3.org/2001/XMLSchema#dateTime> .`,
		EncodeTriple(Triple{
			Subject:   "info:lakeland/res/a",
			Predicate: PredCreated,
			Object:    TypedLiteral("2026-01-02T03:04:05Z", TypeDateTime),
		}))

	require.Equal(t,
		`<info:lakeland/res/a> <http://purl.org/dc/terms/title> "bonjour"@fr .`,
		EncodeTriple(Triple{
			Subject:   "info:lakeland/res/a",
			Predicate: DCTermsNamespace + "title",
			Object:    LangLiteral("bonjour", "fr"),
		}))
}

func TestGraphRoundTrip(t *testing.T) {
	in := []Triple{
		{Subject: "info:lakeland/res/a", Predicate: PredType, Object: IRI(ClassResource)},
		{Subject: "info:lakeland/res/a", Predicate: DCTermsNamespace + "title", Object: Literal("tab\there")},
		{Subject: "info:lakeland/res/a", Predicate: DCTermsNamespace + "title", Object: LangLiteral("bonjour", "fr")},
		{Subject: "info:lakeland/res/a#acl", Predicate: PredType, Object: IRI(OntologyNamespace + "ACL")},
		{Subject: "info:lakeland/res/a", Predicate: PredCreated, Object: TypedLiteral("2026-01-02T03:04:05Z", TypeDateTime)},
		{Subject: "info:lakeland/res/a", Predicate: LDPNamespace + "membershipResource", Object: Blank("b0")},
	}

	var buf bytes.Buffer
	require.NoError(t, EncodeGraph(&buf, in))

	out, err := DecodeGraph(&buf)
	require.NoError(t, err)
	require.Len(t, out, len(in))

	want := make(map[string]struct{}, len(in))
	for _, tr := range in {
		want[tr.Key()] = struct{}{}
	}
	for _, tr := range out {
		_, ok := want[tr.Key()]
		require.True(t, ok, "unexpected triple %v", tr)
	}
}

func TestEncodeGraphCanonical(t *testing.T) {
	dup := Triple{Subject: "info:lakeland/res/a", Predicate: PredType, Object: IRI(ClassResource)}
	in := []Triple{
		{Subject: "info:lakeland/res/z", Predicate: PredType, Object: IRI(ClassResource)},
		dup,
		dup,
	}
	var buf bytes.Buffer
	require.NoError(t, EncodeGraph(&buf, in))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	require.True(t, lines[0] < lines[1], "lines must be sorted")
}

func TestDecodeGraphIgnoresCommentsAndBlanks(t *testing.T) {
	doc := `
# produced by another implementation
<info:x/res/a> <http://purl.org/dc/terms/title> "a" .

<info:x/res/a> <http://purl.org/dc/terms/title> "café" .
`
	out, err := DecodeGraph(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.Equal(t, "café", out[1].Object.Value)
}

func TestDecodeTripleErrors(t *testing.T) {
	for _, bad := range []string{
		`<info:x/res/a> <p> "unterminated .`,
		`<info:x/res/a> <p> "lit"`,
		`<info:x/res/a> "notapredicate" "lit" .`,
		`<info:x/res/a> <p> "bad\qescape" .`,
		`<info:x/res/a> <p> <o> . trailing`,
	} {
		_, err := DecodeTriple(bad)
		require.Error(t, err, "expected parse failure for %q", bad)
	}
}
