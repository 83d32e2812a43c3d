package resource

import (
	"slices"
	"strings"

	"github.com/armkit/armkit/faults"
)

// ID addresses one remote resource. Two IDs name the same entity exactly
// when their normalized forms are equal; comparison is case-insensitive.
type ID struct {
	Subscription  string
	ResourceGroup string
	ModulePath    []string
	Name          string
}

func NewID(subscription, resourceGroup string, modulePath []string, name string) ID {
	return ID{
		Subscription:  strings.TrimSpace(subscription),
		ResourceGroup: strings.TrimSpace(resourceGroup),
		ModulePath:    slices.Clone(modulePath),
		Name:          strings.TrimSpace(name),
	}
}

// Child addresses a resource inside one of this ID's submodules. The module
// name may carry a provider prefix, e.g. "Microsoft.Web/sites".
func (id ID) Child(moduleName, name string) ID {
	path := slices.Clone(id.ModulePath)
	if id.Name != "" {
		path = append(path, id.Name)
	}
	path = append(path, strings.Split(strings.Trim(moduleName, "/"), "/")...)
	return ID{
		Subscription:  id.Subscription,
		ResourceGroup: id.ResourceGroup,
		ModulePath:    path,
		Name:          strings.TrimSpace(name),
	}
}

func (id ID) IsZero() bool {
	return id.Subscription == "" && id.ResourceGroup == "" && len(id.ModulePath) == 0 && id.Name == ""
}

func (id ID) String() string {
	var builder strings.Builder
	builder.WriteString("/subscriptions/")
	builder.WriteString(id.Subscription)
	if id.ResourceGroup != "" {
		builder.WriteString("/resourceGroups/")
		builder.WriteString(id.ResourceGroup)
	}
	if len(id.ModulePath) > 0 {
		builder.WriteString("/providers/")
		builder.WriteString(strings.Join(id.ModulePath, "/"))
		builder.WriteString("/")
		builder.WriteString(id.Name)
	}
	return builder.String()
}

// Normalized is the cache-key form: the canonical string lowered so that
// provider casing differences never split one entity into two entries.
func (id ID) Normalized() string {
	return strings.ToLower(id.String())
}

func (id ID) Equal(other ID) bool {
	return id.Normalized() == other.Normalized()
}

// ParseID accepts the canonical form produced by String. Keyword segments
// ("subscriptions", "resourceGroups", "providers") match case-insensitively.
func ParseID(raw string) (ID, error) {
	segments := strings.Split(strings.Trim(strings.TrimSpace(raw), "/"), "/")
	if len(segments) < 2 || !strings.EqualFold(segments[0], "subscriptions") || segments[1] == "" {
		return ID{}, faults.Invariantf("resource id %q must start with /subscriptions/<id>", raw)
	}

	id := ID{Subscription: segments[1]}
	rest := segments[2:]

	if len(rest) >= 2 && strings.EqualFold(rest[0], "resourceGroups") {
		id.ResourceGroup = rest[1]
		rest = rest[2:]
	}
	if len(rest) == 0 {
		return id, nil
	}
	if !strings.EqualFold(rest[0], "providers") || len(rest) < 3 {
		return ID{}, faults.Invariantf("resource id %q has a malformed provider path", raw)
	}

	id.ModulePath = slices.Clone(rest[1 : len(rest)-1])
	id.Name = rest[len(rest)-1]
	return id, nil
}
