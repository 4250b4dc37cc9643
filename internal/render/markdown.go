// Copyright (c) 2025-2026 BrightPath HR
// SPDX-License-Identifier: GPL-3.0-or-later

// Package render converts stored markdown into sanitized HTML for API
// responses.
package render

import (
	"bytes"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// htmlSanitizer strips dangerous markup from rendered blog bodies. The
// UGC policy allows the usual formatting tags while removing scripts and
// event handlers.
var htmlSanitizer = bluemonday.UGCPolicy()

// markdown renders GitHub-flavored constructs (tables, strikethrough,
// autolinks) on top of CommonMark.
var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// MarkdownToHTML converts markdown to sanitized HTML. A render failure
// returns the empty string rather than partial output.
func MarkdownToHTML(source string) string {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(source), &buf); err != nil {
		return ""
	}
	return htmlSanitizer.Sanitize(buf.String())
}
