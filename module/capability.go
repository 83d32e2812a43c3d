package module

// Capability selects what a resource kind supports. Kinds compose a set of
// capabilities instead of inheriting from layered base types.
type Capability uint8

const (
	Deletable Capability = 1 << iota
	Updatable
	HasSubModules
	ServiceLinked
)

type Capabilities uint8

func NewCapabilities(caps ...Capability) Capabilities {
	var set Capabilities
	for _, capability := range caps {
		set |= Capabilities(capability)
	}
	return set
}

func (c Capabilities) Has(capability Capability) bool {
	return c&Capabilities(capability) != 0
}
