// Package types holds the value types of the membership/relocation model:
// identity attributes, node table rows, section descriptors and the
// lifecycle State a member moves through. None of these types carry
// behaviour beyond what the model needs to stay deterministic and
// comparable — they are plain value types, safe to copy and to use as
// map keys.
package types

import "fmt"

// Name is a node's section-address. Ordering on Name is total and is used
// both to key the node table and to break ties in elder selection.
type Name int64

func (n Name) String() string {
	return fmt.Sprintf("Name(%d)", int64(n))
}

// Age is a node's age, in the "reaches its work-unit count" sense. Older
// nodes are sorted ahead of younger ones when selecting elders.
type Age int64

// IncrementByOne returns the next age up, used when a destination section
// allocates the post-relocation age for a candidate.
func (a Age) IncrementByOne() Age {
	return a + 1
}

// Attributes uniquely identifies a node at a point in time. A relocating
// candidate is represented by two Attributes: old (pre-relocation) and new
// (post-relocation, once the destination has renamed it).
type Attributes struct {
	Age  Age
	Name Name
}

func (a Attributes) String() string {
	return fmt.Sprintf("%v, %v", a.Age, a.Name)
}

// Less orders Attributes by (Age desc, Name asc), the same order elder
// selection applies after its state key. Neither elder selection nor
// relocation selection calls Less; relocation ranks by its own key.
func (a Attributes) Less(other Attributes) bool {
	if a.Age != other.Age {
		return a.Age > other.Age
	}
	return a.Name < other.Name
}
