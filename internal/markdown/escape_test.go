package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnchor(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"MyClass", "MyClass"},
		{"module:myModule", "module_myModule"},
		{"module:a.B#c", "module_a.B_c"},
		{"MyClass#event:changed", "MyClass_event_changed"},
		{`module:"a-b".x`, "module__a-b_.x"},
		{"Foo#'odd name'", "Foo__odd_name_"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Anchor(c.in), c.in)
	}
}

func TestCollapseNewlines(t *testing.T) {
	assert.Equal(t, "a b c", CollapseNewlines("a\nb\r\nc"))
	assert.Equal(t, "", CollapseNewlines(""))
}

func TestEscapePipes(t *testing.T) {
	assert.Equal(t, "lengthy &#124; lengthy", EscapePipes("lengthy | lengthy"))
}

func TestRestoreComments(t *testing.T) {
	assert.Equal(t, "/* note */", RestoreComments("/&#42; note &#42;/"))
}

func TestLinkify(t *testing.T) {
	cases := []struct {
		name, in, want string
	}{
		{"labelled internal", "see {@link Foo#bar|Label}", "see [Label](#Foo_bar)"},
		{"bare internal", "just like {@link MyClass#testFunc}", "just like [MyClass#testFunc](#MyClass_testFunc)"},
		{"module target", "{@link module:util.helper}", "[module:util.helper](#module_util.helper)"},
		{"external", "{@link http://github.com|GitHub}", "[GitHub](http://github.com)"},
		{"external bare", "{@link https://example.com/a:b}", "[https://example.com/a:b](https://example.com/a:b)"},
		{"several", "{@link A} and {@link B|bee}", "[A](#A) and [bee](#B)"},
		{"no directive", "plain text", "plain text"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, Linkify(c.in))
		})
	}
}

func TestSeeLink(t *testing.T) {
	assert.Equal(t, "[MyClass.myStaticFunc](#MyClass.myStaticFunc)", SeeLink("MyClass.myStaticFunc"))
	assert.Equal(t, "[GitHub](http://github.com)", SeeLink("{@link http://github.com|GitHub}"))
	assert.Equal(t, "[module:a](#module_a)", SeeLink(" module:a "))
}

func TestTableCell(t *testing.T) {
	got := tableCell("Parameter x.\nhas a lengthy | lengthy\r\ndescription, see {@link A#b|bee}.")
	assert.Equal(t, "Parameter x. has a lengthy &#124; lengthy description, see [bee](#A_b).", got)
}

func TestSplitCaption(t *testing.T) {
	caption, body := splitCaption("<caption>Testing</caption>\nDo some stuff *bold*")
	assert.Equal(t, "Testing", caption)
	assert.Equal(t, "Do some stuff *bold*", body)

	caption, body = splitCaption("  <CAPTION>Upper</CAPTION> x()")
	assert.Equal(t, "Upper", caption)
	assert.Equal(t, "x()", body)

	caption, body = splitCaption("My test *example*\nAnother line.")
	assert.Equal(t, "", caption)
	assert.Equal(t, "My test *example*\nAnother line.", body)
}

func TestSplitCaptionOnlyLeading(t *testing.T) {
	example := "first();\n<caption>Late</caption>\nsecond();"
	caption, body := splitCaption(example)
	assert.Equal(t, "", caption)
	assert.Equal(t, example, body)
}

func TestSplitCaptionIsReentrant(t *testing.T) {
	for i := 0; i < 3; i++ {
		caption, _ := splitCaption("<caption>Again</caption>\ncode")
		assert.Equal(t, "Again", caption)
	}
}
