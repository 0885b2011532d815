package sanitize

import (
	"strings"
	"testing"
)

func TestCleanStripsScripts(t *testing.T) {
	in := `Hello <script>alert("x")</script>world`
	out := Clean(in)
	if strings.Contains(out, "<script") || strings.Contains(out, "alert") {
		t.Errorf("Clean left script content: %q", out)
	}
	if !strings.Contains(out, "Hello") || !strings.Contains(out, "world") {
		t.Errorf("Clean removed legitimate text: %q", out)
	}
}

func TestCleanStripsEventHandlers(t *testing.T) {
	in := `<a href="https://example.com" onclick="steal()">link</a>`
	out := Clean(in)
	if strings.Contains(out, "onclick") {
		t.Errorf("Clean left event handler: %q", out)
	}
	if !strings.Contains(out, "link") {
		t.Errorf("Clean removed the link text: %q", out)
	}
}

func TestCleanKeepsPlainMarkdown(t *testing.T) {
	in := "# Heading\n\nSome *emphasis* and a list:\n- one\n- two"
	if out := Clean(in); out != in {
		t.Errorf("Clean altered plain markdown:\n in: %q\nout: %q", in, out)
	}
}

func TestCleanStrictLeavesOnlyText(t *testing.T) {
	in := `<b>bold</b> and <script>bad()</script>plain`
	out := CleanStrict(in)
	if strings.ContainsAny(out, "<>") {
		t.Errorf("CleanStrict left markup: %q", out)
	}
	if !strings.Contains(out, "bold") || !strings.Contains(out, "plain") {
		t.Errorf("CleanStrict removed text content: %q", out)
	}
}
