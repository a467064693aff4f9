package domain

import (
	"sort"
	"strings"
)

// allowedExtensions is the fixed set of upload extensions accepted for
// review. It is maintained independently of the language label table
// below, so an allowed extension may still map to "Unknown".
var allowedExtensions = map[string]bool{
	"py": true, "js": true, "java": true, "cpp": true, "c": true,
	"h": true, "hpp": true, "html": true, "css": true, "tsx": true,
	"jsx": true, "go": true, "rs": true, "php": true, "rb": true,
	"swift": true, "kt": true, "cs": true, "scala": true,
}

// extToLanguage maps a file extension to a human-readable language label.
var extToLanguage = map[string]string{
	"py": "Python", "js": "JavaScript", "jsx": "React",
	"ts": "TypeScript", "tsx": "React TypeScript",
	"java": "Java", "cpp": "C++", "c": "C",
	"h": "C Header", "hpp": "C++ Header",
	"go": "Go", "rs": "Rust", "php": "PHP",
	"rb": "Ruby", "swift": "Swift", "kt": "Kotlin",
	"cs": "C#", "scala": "Scala", "html": "HTML",
	"css": "CSS",
}

// FileExtension returns the lower-cased extension of filename without
// the dot, or "" if the filename has no extension.
func FileExtension(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 || idx == len(filename)-1 {
		return ""
	}
	return strings.ToLower(filename[idx+1:])
}

// ExtensionAllowed reports whether the filename carries an extension
// from the upload allow-list.
func ExtensionAllowed(filename string) bool {
	return allowedExtensions[FileExtension(filename)]
}

// AllowedExtensions returns the allow-list in sorted order, for error
// messages and the API index.
func AllowedExtensions() []string {
	exts := make([]string, 0, len(allowedExtensions))
	for ext := range allowedExtensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// DetectLanguage returns the language label for a filename's extension,
// or "Unknown" when the extension is not in the label table.
func DetectLanguage(filename string) string {
	if lang, ok := extToLanguage[FileExtension(filename)]; ok {
		return lang
	}
	return "Unknown"
}
