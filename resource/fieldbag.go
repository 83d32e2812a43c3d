package resource

// FieldBag carries the requested changes of a draft. Keys are adapter-defined
// field names; adapters translate the bag into provider DTOs on commit.
type FieldBag map[string]any

func (b FieldBag) Clone() FieldBag {
	if b == nil {
		return nil
	}
	clone := make(FieldBag, len(b))
	for key, value := range b {
		clone[key] = value
	}
	return clone
}

func (b FieldBag) String(key string) (string, bool) {
	value, ok := b[key]
	if !ok {
		return "", false
	}
	text, ok := value.(string)
	return text, ok
}
