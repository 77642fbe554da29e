package command

// ParsedArgument is an argument identifier bound to its typed value
type ParsedArgument struct {
	ID          string
	Value       any
	UsedDefault bool
}

// Arguments is the ordered list of parsed arguments of one dispatch
type Arguments []ParsedArgument

// Get returns the value bound to id
func (a Arguments) Get(id string) (any, bool) {
	for _, p := range a {
		if p.ID == id {
			return p.Value, true
		}
	}
	return nil, false
}

// Has reports whether id was bound
func (a Arguments) Has(id string) bool {
	_, ok := a.Get(id)
	return ok
}

// Value returns the value bound to id as a T
func Value[T any](args Arguments, id string) (T, bool) {
	v, ok := args.Get(id)
	if !ok {
		var zero T
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}

// ValueOr returns the value bound to id, or fallback
func ValueOr[T any](args Arguments, id string, fallback T) T {
	if v, ok := Value[T](args, id); ok {
		return v
	}
	return fallback
}
