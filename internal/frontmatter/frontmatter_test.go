package frontmatter

import (
	"strings"
	"testing"
)

func TestParse_SingleKey(t *testing.T) {
	rec, body := Parse("---\ntitle: Hello\n---\n# Body")
	if rec == nil {
		t.Fatal("expected a frontmatter record")
	}
	if got, ok := rec.Get("title"); !ok || got != "Hello" {
		t.Errorf("title = %q, %v, want %q", got, ok, "Hello")
	}
	if body != "# Body" {
		t.Errorf("body = %q, want %q", body, "# Body")
	}
}

func TestParse_MultipleKeysKeepOrder(t *testing.T) {
	rec, _ := Parse("---\ntitle: Test\nauthor: Jane\ndate: 2024-01-01\n---\nBody")
	if rec.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", rec.Len())
	}
	want := []Pair{
		{"title", "Test"},
		{"author", "Jane"},
		{"date", "2024-01-01"},
	}
	for i, p := range rec.Pairs() {
		if p != want[i] {
			t.Errorf("pair %d = %v, want %v", i, p, want[i])
		}
	}
}

func TestParse_NoFrontmatterIsIdentity(t *testing.T) {
	for _, content := range []string{
		"# Just a document\n\nNo frontmatter here.",
		"",
		"plain text",
		"---- not frontmatter\n\nstuff",
		"x---\nkey: value\n---\n",
	} {
		rec, body := Parse(content)
		if rec != nil {
			t.Errorf("Parse(%q) record = %v, want nil", content, rec.Pairs())
		}
		if body != content {
			t.Errorf("Parse(%q) body = %q, want input unchanged", content, body)
		}
	}
}

func TestParse_UnterminatedBlockIsIdentity(t *testing.T) {
	for _, content := range []string{
		"---\nbroken",
		"---",
		"---\n",
		"---\ntitle: Hello\nno closing fence",
	} {
		rec, body := Parse(content)
		if rec != nil {
			t.Errorf("Parse(%q) record = %v, want nil", content, rec.Pairs())
		}
		if body != content {
			t.Errorf("Parse(%q) body = %q, want input unchanged", content, body)
		}
	}
}

func TestParse_ValuesContainingColons(t *testing.T) {
	rec, _ := Parse("---\nurl: https://example.com\ntime: 10:30:00\n---\nBody")
	if got, _ := rec.Get("url"); got != "https://example.com" {
		t.Errorf("url = %q", got)
	}
	if got, _ := rec.Get("time"); got != "10:30:00" {
		t.Errorf("time = %q", got)
	}
}

func TestParse_TrimsWhitespace(t *testing.T) {
	rec, _ := Parse("---\n  title  :  Hello World  \n---\nBody")
	if got, ok := rec.Get("title"); !ok || got != "Hello World" {
		t.Errorf("title = %q, %v, want %q", got, ok, "Hello World")
	}
}

func TestParse_EmptyValue(t *testing.T) {
	rec, _ := Parse("---\ndraft:\n---\nBody")
	if got, ok := rec.Get("draft"); !ok || got != "" {
		t.Errorf("draft = %q, %v, want empty string present", got, ok)
	}
}

func TestParse_SkipsLinesWithoutColon(t *testing.T) {
	rec, _ := Parse("---\ntitle: Test\njust some text\n\nauthor: Jane\n---\nBody")
	if rec.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", rec.Len())
	}
	if _, ok := rec.Get("just some text"); ok {
		t.Error("colon-less line was recorded as a key")
	}
}

func TestParse_DelimiterInsideBodyStays(t *testing.T) {
	rec, body := Parse("---\ntitle: Test\n---\nText\n---\nMore text")
	if rec == nil || rec.Len() != 1 {
		t.Fatalf("record = %v", rec.Pairs())
	}
	if !strings.Contains(body, "---") {
		t.Errorf("body = %q, want the later delimiter preserved", body)
	}
	if body != "Text\n---\nMore text" {
		t.Errorf("body = %q", body)
	}
}

func TestParse_OnlyDelimiters(t *testing.T) {
	rec, body := Parse("---\n---\nBody")
	if rec == nil {
		t.Fatal("expected an empty record, got nil")
	}
	if rec.Len() != 0 {
		t.Errorf("Len() = %d, want 0", rec.Len())
	}
	if body != "Body" {
		t.Errorf("body = %q, want %q", body, "Body")
	}
}

func TestParse_StripsOneLeadingBlankLine(t *testing.T) {
	_, body := Parse("---\na: b\n---\n\nBody")
	if body != "Body" {
		t.Errorf("body = %q, want %q", body, "Body")
	}
	_, body = Parse("---\na: b\n---\n\n\nBody")
	if body != "\nBody" {
		t.Errorf("body = %q, want one blank line kept", body)
	}
}

func TestParse_CRLFInput(t *testing.T) {
	rec, body := Parse("---\r\ntitle: Hello\r\n---\r\nBody")
	if rec == nil {
		t.Fatal("expected a frontmatter record")
	}
	if got, _ := rec.Get("title"); got != "Hello" {
		t.Errorf("title = %q, want %q", got, "Hello")
	}
	if body != "Body" {
		t.Errorf("body = %q, want %q", body, "Body")
	}
}

func TestParse_DuplicateKeyLastValueFirstPosition(t *testing.T) {
	rec, _ := Parse("---\na: 1\nb: 2\na: 3\n---\n")
	if rec.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", rec.Len())
	}
	pairs := rec.Pairs()
	if pairs[0] != (Pair{"a", "3"}) {
		t.Errorf("pair 0 = %v, want {a 3}", pairs[0])
	}
	if pairs[1] != (Pair{"b", "2"}) {
		t.Errorf("pair 1 = %v, want {b 2}", pairs[1])
	}
}

func TestParse_ClosingDelimiterAtEOF(t *testing.T) {
	rec, body := Parse("---\ntitle: Hello\n---")
	if rec == nil {
		t.Fatal("expected a frontmatter record")
	}
	if body != "" {
		t.Errorf("body = %q, want empty", body)
	}
}

func TestRecord_NilSafe(t *testing.T) {
	var rec *Record
	if rec.Len() != 0 {
		t.Errorf("nil Len() = %d, want 0", rec.Len())
	}
	if rec.Pairs() != nil {
		t.Errorf("nil Pairs() = %v, want nil", rec.Pairs())
	}
	if _, ok := rec.Get("x"); ok {
		t.Error("nil Get reported a value")
	}
}
