package htmltext

import (
	"strings"
	"testing"
)

// Test table covers each stage and combined pipelines.
func TestStrip_Table(t *testing.T) {
	tests := []struct {
		name string
		in   string
		out  string
	}{
		{
			name: "identity plain text",
			in:   "senior backend engineer",
			out:  "senior backend engineer",
		},
		{
			name: "simple paragraph",
			in:   "<p>We are hiring.</p>",
			out:  "We are hiring.",
		},
		{
			name: "adjacent blocks never fuse words",
			in:   "<p>5 years experience</p><p>required</p>",
			out:  "5 years experience required",
		},
		{
			name: "list items",
			in:   "<ul><li>Go</li><li>Postgres</li></ul>",
			out:  "Go Postgres",
		},
		{
			name: "line breaks",
			in:   "remote<br>or<br/>hybrid",
			out:  "remote or hybrid",
		},
		{
			name: "inline tags preserve spacing",
			in:   "must know <b>Go</b> and <i>SQL</i>",
			out:  "must know Go and SQL",
		},
		{
			name: "script and style dropped entirely",
			in:   "<style>p{color:red}</style><p>hello</p><script>alert(1)</script>",
			out:  "hello",
		},
		{
			name: "comments dropped",
			in:   "before<!-- secret note -->after",
			out:  "beforeafter",
		},
		{
			name: "entities decoded",
			in:   "<p>Design &amp; build &lt;fast&gt; services</p>",
			out:  "Design & build <fast> services",
		},
		{
			name: "nbsp collapses with surrounding whitespace",
			in:   "one&nbsp; two",
			out:  "one two",
		},
		{
			name: "utf8 repair drops invalid bytes",
			in:   string([]byte{0xff, 'j', 'o', 'b', 0x80, ' ', 'a', 'd'}),
			out:  "job ad",
		},
		{
			name: "zero width chars removed",
			in:   "dev​ops",
			out:  "devops",
		},
		{
			name: "whitespace collapsed and trimmed",
			in:   "  <div>\n\t lead   engineer \n</div>  ",
			out:  "lead engineer",
		},
		{
			name: "empty input",
			in:   "",
			out:  "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Strip(tc.in); got != tc.out {
				t.Fatalf("Strip(%q) = %q, want %q", tc.in, got, tc.out)
			}
		})
	}
}

func TestStrip_NeverLeaksTags(t *testing.T) {
	in := `<div class="desc"><h2>Role</h2><p>Own the <a href="/x">pipeline</a>.</p><hr><table><tr><td>on-call</td></tr></table></div>`
	got := Strip(in)
	if strings.ContainsAny(got, "<>") {
		t.Fatalf("stripped output still contains angle brackets: %q", got)
	}
	for _, word := range []string{"Role", "Own the", "pipeline", "on-call"} {
		if !strings.Contains(got, word) {
			t.Fatalf("stripped output lost %q: %q", word, got)
		}
	}
}
