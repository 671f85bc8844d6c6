// Package mesh generates the primitive shapes the scene is assembled from.
// Geometry is built on the CPU only; GPU upload lives in the renderer.
package mesh

import (
	"fmt"
	"strings"
)

// Kind identifies one of the primitive shapes.
type Kind int

// Primitive kinds. Every kind is uploaded at most once and drawn many times.
const (
	Box Kind = iota
	Plane
	Cylinder
	Cone
	Prism
	Pyramid4
	Sphere
	TaperedCylinder
	Torus

	kindCount
)

var kindNames = [kindCount]string{
	Box:             "box",
	Plane:           "plane",
	Cylinder:        "cylinder",
	Cone:            "cone",
	Prism:           "prism",
	Pyramid4:        "pyramid4",
	Sphere:          "sphere",
	TaperedCylinder: "tapered_cylinder",
	Torus:           "torus",
}

// AllKinds returns every primitive kind in declaration order.
func AllKinds() []Kind {
	kinds := make([]Kind, 0, kindCount)
	for k := Kind(0); k < kindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// Valid reports whether k names a known primitive.
func (k Kind) Valid() bool {
	return k >= 0 && k < kindCount
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind converts a name such as "tapered_cylinder" to a Kind.
// Hyphens and case are ignored, so "Tapered-Cylinder" also works.
func ParseKind(name string) (Kind, error) {
	norm := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), "-", "_"))
	for k, n := range kindNames {
		if n == norm {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown mesh kind %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("invalid mesh kind %d", int(k))
	}
	return []byte(kindNames[k]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
