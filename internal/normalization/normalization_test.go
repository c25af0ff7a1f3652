package normalization

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestStripHTML_RemovesTagsAndNbsp(t *testing.T) {
	in := "<h2>Photosynthesis</h2><p>Plants&nbsp;make <b>food</b>.</p>"
	got := StripHTML(in)
	want := "PhotosynthesisPlants make food."
	if got != want {
		t.Fatalf("expected %q got %q", want, got)
	}
}

func TestStripHTML_LeavesOtherEntitiesAlone(t *testing.T) {
	got := StripHTML("<p>a &amp; b &lt; c</p>")
	if got != "a &amp; b &lt; c" {
		t.Fatalf("entities should pass through, got %q", got)
	}
}

func TestStripHTML_Empty(t *testing.T) {
	if got := StripHTML(""); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}

func TestChunkText_EmptyYieldsNoChunks(t *testing.T) {
	if chunks := ChunkText("", 4000); chunks != nil {
		t.Fatalf("expected nil, got %v", chunks)
	}
}

func TestChunkText_ConcatenationIsIdentity(t *testing.T) {
	text := strings.Repeat("abcdefghij", 1001)
	chunks := ChunkText(text, 4000)
	if got := strings.Join(chunks, ""); got != text {
		t.Fatalf("joined chunks differ from input")
	}
}

func TestChunkText_Widths(t *testing.T) {
	text := strings.Repeat("x", 9001)
	chunks := ChunkText(text, 4000)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks got %d", len(chunks))
	}
	if len(chunks[0]) != 4000 || len(chunks[1]) != 4000 || len(chunks[2]) != 1001 {
		t.Fatalf("unexpected chunk widths: %d %d %d", len(chunks[0]), len(chunks[1]), len(chunks[2]))
	}
}

func TestChunkText_ShorterThanMaxIsSingleChunk(t *testing.T) {
	chunks := ChunkText("short", 4000)
	if len(chunks) != 1 || chunks[0] != "short" {
		t.Fatalf("expected single identical chunk, got %v", chunks)
	}
}

func TestChunkText_SinhalaKeepsRunesIntact(t *testing.T) {
	text := strings.Repeat("මිනිස් අවශ්‍යතා ", 55)
	chunks := ChunkText(text, 10)
	for i, chunk := range chunks {
		if !utf8.ValidString(chunk) {
			t.Fatalf("chunk %d is not valid UTF-8: %q", i, chunk)
		}
		if got := utf8.RuneCountInString(chunk); got > 10 {
			t.Fatalf("chunk %d has %d runes, want at most 10", i, got)
		}
	}
	if got := strings.Join(chunks, ""); got != text {
		t.Fatalf("joined chunks differ from input")
	}
}

func TestTruncateText(t *testing.T) {
	if got := TruncateText("hello", 10); got != "hello" {
		t.Fatalf("short input should be untouched, got %q", got)
	}
	if got := TruncateText(strings.Repeat("a", 7000), 6000); len(got) != 6000 {
		t.Fatalf("expected 6000 chars got %d", len(got))
	}
}

func TestTruncateText_SinhalaCountsRunes(t *testing.T) {
	got := TruncateText("මිනිස්", 4)
	if !utf8.ValidString(got) {
		t.Fatalf("truncated text is not valid UTF-8: %q", got)
	}
	if n := utf8.RuneCountInString(got); n != 4 {
		t.Fatalf("expected 4 runes got %d", n)
	}
}

func TestParseInputString(t *testing.T) {
	if got := ParseInputString("  user@example.com \n"); got != "user@example.com" {
		t.Fatalf("expected trimmed value, got %q", got)
	}
}
