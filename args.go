package forestx

// RtArgument is one named argument of a leaf action.
type RtArgument struct {
	Name  string
	Value RtValue
}

// NewArg pairs a name with a value.
func NewArg(name string, v RtValue) RtArgument {
	return RtArgument{Name: name, Value: v}
}

// RtArgs is the ordered argument list of a leaf action. The order is fixed
// by the tree definition at build time and never reordered at runtime.
type RtArgs []RtArgument

// First returns the first argument value, if any.
func (a RtArgs) First() (RtValue, bool) {
	return a.Ith(0)
}

// Ith returns the argument value at position i.
func (a RtArgs) Ith(i int) (RtValue, bool) {
	if i < 0 || i >= len(a) {
		return RtValue{}, false
	}
	return a[i].Value, true
}

// Find returns the value of the argument named name.
func (a RtArgs) Find(name string) (RtValue, bool) {
	for _, arg := range a {
		if arg.Name == name {
			return arg.Value, true
		}
	}
	return RtValue{}, false
}

// FindOrIth prefers the named argument and falls back to the fixed
// positional slot. This is the canonical resolution idiom every action
// implementation follows.
func (a RtArgs) FindOrIth(name string, i int) (RtValue, bool) {
	if v, ok := a.Find(name); ok {
		return v, true
	}
	return a.Ith(i)
}
