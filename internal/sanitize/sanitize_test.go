package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"todo-be/internal/entities"
)

func TestStrip(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "bold", in: "<b>hi</b>", want: "hi"},
		{name: "script removed with body", in: "buy <script>alert(1)</script>milk", want: "buy milk"},
		{name: "attributes", in: `<a href="javascript:x">link</a>`, want: "link"},
		{name: "plain text untouched", in: "walk the dog", want: "walk the dog"},
		{name: "ampersand kept", in: "fish & chips", want: "fish & chips"},
		{name: "empty", in: "", want: ""},
		{name: "less than kept", in: "a < b", want: "a < b"},
		{name: "entity encoded tag", in: "&lt;img src=x onerror=alert(1)&gt;", want: ""},
		{name: "double encoded script", in: "&amp;lt;script&amp;gt;alert(1)&amp;lt;/script&amp;gt;ok", want: "ok"},
		{name: "encoded text around tag", in: "a &lt;b&gt;bold&lt;/b&gt; move", want: "a bold move"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Strip(tt.in))
		})
	}
}

func TestStripIsStable(t *testing.T) {
	inputs := []string{
		"&lt;img src=x onerror=alert(1)&gt;",
		"&amp;amp;lt;svg onload=x&amp;amp;gt;",
		"<<script>script>alert(1)<</script>/script>",
		"fish &amp; chips",
		"1 &lt; 2",
	}
	for _, in := range inputs {
		once := Strip(in)
		assert.NotContains(t, once, "<script", in)
		assert.NotContains(t, once, "<img", in)
		assert.NotContains(t, once, "<svg", in)
		assert.Equal(t, once, Strip(once), in)
	}
}

func TestStripTrimmed(t *testing.T) {
	assert.Equal(t, "", StripTrimmed("  <i></i>  "))
	assert.Equal(t, "x", StripTrimmed(" <p>x</p> "))
}

func TestTodos(t *testing.T) {
	in := []entities.Todo{{ID: "1", Content: "<b>hi</b>"}, {ID: "2", Content: "ok"}}

	out := Todos(in)

	assert.Equal(t, "hi", out[0].Content)
	assert.Equal(t, "ok", out[1].Content)
	assert.Equal(t, "<b>hi</b>", in[0].Content)
}
