package models

// Member is one key/value pair of an Object.
type Member struct {
	Key   string
	Value Value
}

// Object is a string-keyed mapping that remembers insertion order.
// Keys are unique; setting an existing key replaces its value in place.
type Object struct {
	keys   []string
	values map[string]Value
}

// NewObject creates an empty object.
func NewObject() *Object {
	return &Object{
		keys:   []string{},
		values: map[string]Value{},
	}
}

// NewObjectFrom builds an object from members in order.
func NewObjectFrom(members ...Member) *Object {
	o := NewObject()
	for _, m := range members {
		o.Set(m.Key, m.Value)
	}
	return o
}

// Set stores v under key. A new key is appended; an existing key keeps
// its position.
func (o *Object) Set(key string, v Value) {
	if o.values == nil {
		o.values = make(map[string]Value)
	}
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (Value, bool) {
	if o == nil {
		return Value{}, false
	}
	v, ok := o.values[key]
	return v, ok
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	keys := make([]string, len(o.keys))
	copy(keys, o.keys)
	return keys
}

// Members returns the key/value pairs in insertion order.
func (o *Object) Members() []Member {
	if o == nil {
		return nil
	}
	members := make([]Member, len(o.keys))
	for i, k := range o.keys {
		members[i] = Member{Key: k, Value: o.values[k]}
	}
	return members
}

// Len returns the number of members.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Equal reports whether both objects hold equal values under the same keys
// in the same order.
func (o *Object) Equal(other *Object) bool {
	if o.Len() != other.Len() {
		return false
	}
	for i, k := range o.keys {
		if other.keys[i] != k {
			return false
		}
		if !o.values[k].Equal(other.values[k]) {
			return false
		}
	}
	return true
}

// SameKeySet reports whether both objects hold exactly the same keys,
// ignoring order.
func (o *Object) SameKeySet(other *Object) bool {
	if o.Len() != other.Len() {
		return false
	}
	for _, k := range o.keys {
		if !other.Has(k) {
			return false
		}
	}
	return true
}
