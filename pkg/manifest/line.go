package manifest

import "strings"

// Kind classifies a manifest line.
type Kind int

const (
	Blank       Kind = iota // empty or whitespace only
	Comment                 // starts with #
	Directive               // starts with -, or a requirement with no name
	VCS                     // starts with git+
	Requirement             // a package to pin
)

func (k Kind) String() string {
	switch k {
	case Blank:
		return "blank"
	case Comment:
		return "comment"
	case Directive:
		return "directive"
	case VCS:
		return "vcs"
	case Requirement:
		return "requirement"
	}
	return "unknown"
}

// Line is a classified manifest line.
type Line struct {
	Kind     Kind
	Raw      string // the line exactly as read
	Name     string // requirement name as written, trimmed; empty for pass-through lines
	Operator string // operator the name was split on; empty if none
}

// PassThrough reports whether the line is emitted unchanged.
func (l Line) PassThrough() bool { return l.Kind != Requirement }

// operators in the order they are looked for. Two-character operators come
// first so "flask>=1.0" splits on ">=" rather than ">".
var operators = []string{"==", ">=", "<=", "~=", ">", "<", "@"}

// Classify categorizes raw.
func Classify(raw string) Line {
	s := strings.TrimSpace(raw)
	line := Line{Raw: raw}
	switch {
	case s == "":
		line.Kind = Blank
	case strings.HasPrefix(s, "#"):
		line.Kind = Comment
	case strings.HasPrefix(s, "-"):
		line.Kind = Directive
	case strings.HasPrefix(s, "git+"):
		line.Kind = VCS
	default:
		line.Kind = Requirement
		line.Name = s
		for _, op := range operators {
			if i := strings.Index(s, op); i >= 0 {
				line.Name = strings.TrimSpace(s[:i])
				line.Operator = op
				break
			}
		}
		if line.Name == "" {
			line.Kind = Directive
			line.Operator = ""
		}
	}
	return line
}

// Declared returns the requirement as it should appear before "==":
// the written name with any environment marker (;) or trailing comment (#)
// removed. Extras are kept.
func (l Line) Declared() string {
	name := l.Name
	if i := strings.IndexAny(name, ";#"); i >= 0 {
		name = name[:i]
	}
	return strings.TrimSpace(name)
}

// Lookup returns the bare project name used to query the index: the declared
// name without extras.
func (l Line) Lookup() string {
	name := l.Declared()
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	return strings.TrimSpace(name)
}
