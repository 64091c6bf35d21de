// Package effect holds the catalog of window effects and the composition
// mode codes the Windows accent policy expects for each of them.
package effect

import (
	"fmt"
	"strings"
)

// Kind is a named window effect.
type Kind int

const (
	None Kind = iota
	BlurBehind
	Acrylic
)

type entry struct {
	name string
	mode int
}

// Mode codes are ACCENT_STATE values of the OS composition API and must
// stay in sync with it.
var catalog = map[Kind]entry{
	None:       {name: "none", mode: 0},
	BlurBehind: {name: "blur-behind", mode: 3},
	Acrylic:    {name: "acrylic", mode: 4},
}

// Kinds returns every declared kind in declaration order.
func Kinds() []Kind {
	return []Kind{None, BlurBehind, Acrylic}
}

// ModeCodeFor returns the composition mode for kind. Undeclared kinds map to 0.
func ModeCodeFor(kind Kind) int {
	return catalog[kind].mode
}

// KindForMode is the inverse of ModeCodeFor for declared kinds.
func KindForMode(mode int) (Kind, bool) {
	for _, k := range Kinds() {
		if catalog[k].mode == mode {
			return k, true
		}
	}
	return None, false
}

// CompositionMode is shorthand for ModeCodeFor(k).
func (k Kind) CompositionMode() int {
	return ModeCodeFor(k)
}

// Decorated reports whether the native layer should extend the window
// frame into the client area for this kind.
func (k Kind) Decorated() bool {
	return k == BlurBehind || k == Acrylic
}

func (k Kind) String() string {
	if e, ok := catalog[k]; ok {
		return e.name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind accepts the names returned by String, case-insensitively.
// Underscores and spaces are treated as dashes.
func ParseKind(s string) (Kind, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("_", "-", " ", "-").Replace(norm)
	if norm == "blurbehind" || norm == "blur" {
		norm = "blur-behind"
	}
	for _, k := range Kinds() {
		if catalog[k].name == norm {
			return k, nil
		}
	}
	return None, fmt.Errorf("unknown effect %q", s)
}

func (k Kind) MarshalText() ([]byte, error) {
	if _, ok := catalog[k]; !ok {
		return nil, fmt.Errorf("unknown effect kind %d", int(k))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
