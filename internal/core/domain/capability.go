package domain

import (
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"
)

// CapabilityScript is an executable discovered next to, or above, a model.
type CapabilityScript struct {
	// Path is the absolute path of the executable.
	Path string
	// Name is the display name derived from the file name.
	Name string
	// Scope is the directory the script was found in.
	Scope string
}

// NewCapabilityScript builds a script value for the executable at path.
func NewCapabilityScript(path string) CapabilityScript {
	return CapabilityScript{
		Path:  path,
		Name:  DisplayName(filepath.Base(path)),
		Scope: filepath.Dir(path),
	}
}

// DisplayName turns a script file name into a menu label: the extension is
// dropped, underscores become spaces and only the first character is upper-cased.
func DisplayName(filename string) string {
	name := strings.TrimSuffix(filename, filepath.Ext(filename))
	name = strings.ReplaceAll(name, "_", " ")
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return string(unicode.ToUpper(r)) + name[size:]
}
