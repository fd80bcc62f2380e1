package catalog

import "strings"

// Category is the content class a gallery file is shown under
type Category string

const (
	Video        Category = "video"
	Image        Category = "image"
	Document     Category = "document"
	Presentation Category = "presentation"
	Spreadsheet  Category = "spreadsheet"
	Code         Category = "code"
	Unknown      Category = "unknown"
)

// Priority is the order extension lists are consulted in
var Priority = []Category{Video, Image, Document, Presentation, Spreadsheet, Code}

// specialRule maps a filename substring to a category
type specialRule struct {
	substr   string
	category Category
}

// Table classifies filenames. It is immutable once built and safe to share.
type Table struct {
	lists      map[Category][]string
	lookup     map[string]Category
	acceptance []string
	rules      []specialRule
}

// DefaultExtensions returns the built-in extension lists
func DefaultExtensions() map[Category][]string {
	return map[Category][]string{
		Video:        {"mp4", "webm", "mov", "avi", "mkv"},
		Image:        {"jpg", "jpeg", "png", "gif", "webp", "svg", "bmp"},
		Document:     {"pdf", "doc", "docx", "txt", "md", "rtf"},
		Presentation: {"ppt", "pptx", "key", "odp"},
		Spreadsheet:  {"xls", "xlsx", "csv", "ods"},
		Code: {
			// web
			"html", "htm", "css", "scss", "sass", "less",
			"js", "jsx", "ts", "tsx", "json", "xml",
			// backend
			"py", "java", "cpp", "c", "cs", "go", "rs", "php", "rb",
			// systems
			"asm", "s", "sh", "bash", "zsh", "bat", "ps1",
			// mobile
			"swift", "kt", "dart",
			// other
			"sql", "r", "lua", "pl", "scala", "clj", "ex", "elm",
			"vue", "svelte", "astro", "yaml", "yml", "toml", "ini",
			"makefile", "dockerfile", "gradle", "cmake",
		},
	}
}

// DefaultTable returns a table built from the built-in lists
func DefaultTable() *Table {
	return NewTable(DefaultExtensions())
}

// NewTable builds a table from per-category extension lists.
// An extension listed under more than one category resolves to the first
// category in Priority order.
func NewTable(lists map[Category][]string) *Table {
	t := &Table{
		lists:  make(map[Category][]string, len(Priority)),
		lookup: make(map[string]Category),
		// license is accepted but has no categorization rule
		acceptance: []string{"makefile", "dockerfile", "readme", "license"},
		rules: []specialRule{
			{substr: "makefile", category: Code},
			{substr: "dockerfile", category: Code},
			{substr: "readme", category: Document},
		},
	}

	for _, cat := range Priority {
		exts := make([]string, 0, len(lists[cat]))
		for _, ext := range lists[cat] {
			ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
			if ext == "" {
				continue
			}
			exts = append(exts, ext)
			if _, taken := t.lookup[ext]; !taken {
				t.lookup[ext] = cat
			}
		}
		t.lists[cat] = exts
	}

	return t
}

// Extensions returns a copy of the extension list for a category
func (t *Table) Extensions(cat Category) []string {
	out := make([]string, len(t.lists[cat]))
	copy(out, t.lists[cat])
	return out
}

// Category returns the category for a filename
func (t *Table) Category(name string) Category {
	if cat, ok := t.lookup[Extension(name)]; ok {
		return cat
	}

	lower := strings.ToLower(name)
	for _, rule := range t.rules {
		if strings.Contains(lower, rule.substr) {
			return rule.category
		}
	}

	return Unknown
}

// Accepts reports whether a file belongs in the catalog at all
func (t *Table) Accepts(name string) bool {
	if _, ok := t.lookup[Extension(name)]; ok {
		return true
	}

	lower := strings.ToLower(name)
	for _, special := range t.acceptance {
		if strings.Contains(lower, special) {
			return true
		}
	}

	return false
}

// Extension returns the lower-cased text after the last dot of name.
// A name without a dot is its own extension.
func Extension(name string) string {
	return strings.ToLower(name[strings.LastIndex(name, ".")+1:])
}

// Title returns name without its trailing extension
func Title(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[:i]
	}
	return name
}
