package display

import (
	"strings"
	"testing"
)

func TestEscapeHTML(t *testing.T) {
	t.Run("escapes markup characters", func(t *testing.T) {
		got := EscapeHTML(`<b>bold & "quoted"</b>`)
		want := `&lt;b&gt;bold &amp; "quoted"&lt;/b&gt;`
		if got != want {
			t.Errorf("Expected %q, got %q", want, got)
		}
	})

	t.Run("quotes pass through unescaped", func(t *testing.T) {
		got := EscapeHTML(`single ' and double "`)
		if got != `single ' and double "` {
			t.Errorf("Expected quotes untouched, got %q", got)
		}
	})

	t.Run("empty string", func(t *testing.T) {
		if got := EscapeHTML(""); got != "" {
			t.Errorf("Expected empty string, got %q", got)
		}
	})

	t.Run("plain text unchanged", func(t *testing.T) {
		if got := EscapeHTML("nothing special here"); got != "nothing special here" {
			t.Errorf("Expected input unchanged, got %q", got)
		}
	})

	t.Run("unicode passes through", func(t *testing.T) {
		input := "héllo 世界 🔒"
		if got := EscapeHTML(input); got != input {
			t.Errorf("Expected %q, got %q", input, got)
		}
	})

	t.Run("script tags never survive", func(t *testing.T) {
		inputs := []string{
			"<script>alert(1)</script>",
			"before <SCRIPT src=x></SCRIPT> after",
		}
		for _, input := range inputs {
			got := strings.ToLower(EscapeHTML(input))
			if strings.Contains(got, "<script") {
				t.Errorf("Escaped output still contains <script: %q", got)
			}
		}
	})

	t.Run("single pass escapes each occurrence exactly once", func(t *testing.T) {
		got := EscapeHTML("a & b & c")
		if got != "a &amp; b &amp; c" {
			t.Errorf("Expected each ampersand escaped once, got %q", got)
		}
		// Double-escaping is expected when applied twice; EscapeHTML is not idempotent.
		if twice := EscapeHTML(got); twice != "a &amp;amp; b &amp;amp; c" {
			t.Errorf("Expected double-escaped output, got %q", twice)
		}
	})

	t.Run("very long input", func(t *testing.T) {
		input := strings.Repeat("<&>", 50000)
		got := EscapeHTML(input)
		if len(got) != 50000*len("&lt;&amp;&gt;") {
			t.Errorf("Unexpected escaped length %d", len(got))
		}
	})
}
