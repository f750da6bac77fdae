// validation.go - Filename sanitization for uploaded files.
package server

import (
	"path"
	"path/filepath"
	"strings"
)

// SanitizeFilename strips directory components and unsafe characters
// from an uploaded filename so the result is usable as a storage-root
// child name.
func SanitizeFilename(filename string) string {
	// Browsers on Windows may send backslash-separated paths.
	filename = strings.ReplaceAll(filename, "\\", "/")

	// Drop any directory components the client supplied.
	filename = path.Base(filename)
	if filename == "/" || filename == "." || filename == ".." {
		filename = ""
	}

	// Remove null bytes and path separators that survived Base.
	filename = strings.ReplaceAll(filename, "\x00", "")
	filename = strings.ReplaceAll(filename, "/", "_")

	// Trim spaces and dots from start/end so the name cannot turn
	// into a hidden file or a relative segment.
	filename = strings.Trim(filename, " .")

	// Limit length, preserving the extension where possible.
	if len(filename) > 255 {
		ext := filepath.Ext(filename)
		if len(ext) < 255 {
			filename = filename[:255-len(ext)] + ext
		} else {
			filename = filename[:255]
		}
	}

	if filename == "" {
		filename = "unnamed"
	}

	return filename
}
