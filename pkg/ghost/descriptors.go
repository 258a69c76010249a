package ghost

import "sort"

// Operation is one of the CRUD operations a resource may permit.
type Operation string

// Permitted resource operations.
const (
	OpRead   Operation = "read"
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// Surface selects which side of the Ghost API a resource lives on.
type Surface string

// API surfaces. SurfaceBoth resources are reachable through either side;
// the client prefers admin when it holds an admin key.
const (
	SurfaceAdmin   Surface = "admin"
	SurfaceContent Surface = "content"
	SurfaceBoth    Surface = "both"
)

// Descriptor is the immutable description of a named REST collection:
// its path, permitted operations, and API surface. Operations are checked
// before any network call is issued.
type Descriptor struct {
	Name       string
	Path       string
	Operations []Operation
	Surface    Surface
	Singleton  bool
}

// Allows reports whether the descriptor permits the operation.
func (d Descriptor) Allows(op Operation) bool {
	for _, o := range d.Operations {
		if o == op {
			return true
		}
	}

	return false
}

var catalog = map[string]Descriptor{
	"posts": {
		Name:       "posts",
		Path:       "posts",
		Operations: []Operation{OpRead, OpCreate, OpUpdate, OpDelete},
		Surface:    SurfaceBoth,
	},
	"pages": {
		Name:       "pages",
		Path:       "pages",
		Operations: []Operation{OpRead, OpCreate, OpUpdate, OpDelete},
		Surface:    SurfaceBoth,
	},
	"tags": {
		Name:       "tags",
		Path:       "tags",
		Operations: []Operation{OpRead, OpCreate, OpUpdate, OpDelete},
		Surface:    SurfaceBoth,
	},
	// The authors collection only exists on the content API; author records
	// are managed through users on the admin side.
	"authors": {
		Name:       "authors",
		Path:       "authors",
		Operations: []Operation{OpRead},
		Surface:    SurfaceContent,
	},
	"members": {
		Name:       "members",
		Path:       "members",
		Operations: []Operation{OpRead, OpCreate, OpUpdate, OpDelete},
		Surface:    SurfaceAdmin,
	},
	"users": {
		Name:       "users",
		Path:       "users",
		Operations: []Operation{OpRead, OpUpdate},
		Surface:    SurfaceAdmin,
	},
	// Upload only; the upload maps onto OpCreate.
	"images": {
		Name:       "images",
		Path:       "images",
		Operations: []Operation{OpCreate},
		Surface:    SurfaceAdmin,
	},
	// Upload (create) and activate (update).
	"themes": {
		Name:       "themes",
		Path:       "themes",
		Operations: []Operation{OpCreate, OpUpdate},
		Surface:    SurfaceAdmin,
	},
	"site": {
		Name:       "site",
		Path:       "site",
		Operations: []Operation{OpRead},
		Surface:    SurfaceAdmin,
		Singleton:  true,
	},
	"settings": {
		Name:       "settings",
		Path:       "settings",
		Operations: []Operation{OpRead},
		Surface:    SurfaceContent,
		Singleton:  true,
	},
}

// DescriptorFor looks up a resource descriptor by name.
func DescriptorFor(name string) (Descriptor, bool) {
	d, ok := catalog[name]

	return d, ok
}

// Descriptors returns all resource descriptors, sorted by name.
func Descriptors() []Descriptor {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}

	sort.Strings(names)

	out := make([]Descriptor, 0, len(names))
	for _, name := range names {
		out = append(out, catalog[name])
	}

	return out
}
