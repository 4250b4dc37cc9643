// Copyright (c) 2025-2026 BrightPath HR
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"strings"
	"testing"
)

func TestMarkdownToHTML(t *testing.T) {
	html := MarkdownToHTML("# Heading\n\nSome **bold** text.")

	if !strings.Contains(html, "<h1") {
		t.Errorf("missing heading in %q", html)
	}
	if !strings.Contains(html, "<strong>bold</strong>") {
		t.Errorf("missing bold in %q", html)
	}
}

func TestMarkdownToHTMLGFM(t *testing.T) {
	html := MarkdownToHTML("| a | b |\n|---|---|\n| 1 | 2 |")
	if !strings.Contains(html, "<table") {
		t.Errorf("GFM table not rendered: %q", html)
	}

	html = MarkdownToHTML("~~gone~~")
	if !strings.Contains(html, "<del>gone</del>") {
		t.Errorf("strikethrough not rendered: %q", html)
	}
}

func TestMarkdownToHTMLSanitizes(t *testing.T) {
	html := MarkdownToHTML("hello <script>alert('xss')</script> world")
	if strings.Contains(html, "<script") {
		t.Errorf("script tag survived sanitization: %q", html)
	}

	html = MarkdownToHTML(`<a href="javascript:alert(1)">click</a>`)
	if strings.Contains(html, "javascript:") {
		t.Errorf("javascript href survived sanitization: %q", html)
	}

	html = MarkdownToHTML(`<img src="x" onerror="alert(1)">`)
	if strings.Contains(html, "onerror") {
		t.Errorf("event handler survived sanitization: %q", html)
	}
}

func TestMarkdownToHTMLEmpty(t *testing.T) {
	if got := MarkdownToHTML(""); got != "" {
		t.Errorf("MarkdownToHTML(empty) = %q, want empty", got)
	}
}
