package adapter

import "strings"

// Object keys of a vault relative to the store prefix.
const (
	VaultKey       = "vault.json"
	UIStateKey     = "ui-state.json"
	SearchIndexKey = "search-index.json"

	NotesPrefix     = "notes/"
	TemplatesPrefix = "templates/"
	AssetsPrefix    = "assets/"
)

func NoteJSONKey(id string) string     { return NotesPrefix + id + ".json" }
func NoteMarkdownKey(id string) string { return NotesPrefix + id + ".md" }

func TemplateJSONKey(id string) string     { return TemplatesPrefix + id + ".json" }
func TemplateMarkdownKey(id string) string { return TemplatesPrefix + id + ".md" }

func AssetKey(id string) string { return AssetsPrefix + id }

// AssetIDFromKey returns the asset id of a key under [AssetsPrefix].
func AssetIDFromKey(key string) (string, bool) {
	id, ok := strings.CutPrefix(key, AssetsPrefix)
	if !ok || id == "" || strings.Contains(id, "/") {
		return "", false
	}
	return id, true
}

// normalizePrefix makes a non-empty prefix end with exactly one slash and
// drops leading slashes.
func normalizePrefix(prefix string) string {
	prefix = strings.Trim(strings.TrimSpace(prefix), "/")
	if prefix == "" {
		return ""
	}
	return prefix + "/"
}
