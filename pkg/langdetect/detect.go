// Package langdetect provides source language checks for discovered files.
// It uses go-enry to confirm that a candidate file is C# source and to
// recognize vendored, generated, and binary content that should not be
// linted.
package langdetect

import (
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

const langCSharp = "C#"

// sourceExtensions are the extensions accepted when enry cannot classify
// the content (short or ambiguous files).
var sourceExtensions = map[string]bool{
	".cs":  true,
	".csx": true,
}

// IsCSharp reports whether the file looks like C# source. Detection prefers
// content classification and falls back to the file extension when the
// classifier is unsure.
func IsCSharp(path string, content []byte) bool {
	if lang := enry.GetLanguage(filepath.Base(path), content); lang != enry.OtherLanguage {
		return lang == langCSharp
	}
	return sourceExtensions[strings.ToLower(filepath.Ext(path))]
}

// SkipReason returns a human-readable reason the file should not be linted,
// or the empty string when the file is lintable. Vendored and generated
// detection follow the linguist conventions bundled with enry, which cover
// the usual auto-generated headers in designer and protobuf output.
func SkipReason(path string, content []byte) string {
	rel := filepath.ToSlash(path)
	switch {
	case enry.IsBinary(content):
		return "binary content"
	case enry.IsVendor(rel):
		return "vendored file"
	case enry.IsGenerated(rel, content):
		return "generated file"
	}
	return ""
}
