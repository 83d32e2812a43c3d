package module

import "github.com/armkit/armkit/resource"

// Node is the type-erased view of a module inside the resource tree. Parent
// references flow through IDs only, so a submodule never owns its parent.
type Node interface {
	ModuleName() string
	ParentID() resource.ID
}
