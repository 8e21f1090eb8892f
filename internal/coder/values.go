package coder

import "fmt"

// Typed accessors used when lifting decoded Values into account structs.

func (v Values) u8(name string) (uint8, error) {
	n, ok := v[name].(uint8)
	if !ok {
		return 0, fmt.Errorf("%w: field %s is not u8", ErrUnsupportedValue, name)
	}
	return n, nil
}

func (v Values) u32(name string) (uint32, error) {
	n, ok := v[name].(uint32)
	if !ok {
		return 0, fmt.Errorf("%w: field %s is not u32", ErrUnsupportedValue, name)
	}
	return n, nil
}

func (v Values) u64(name string) (uint64, error) {
	n, ok := v[name].(uint64)
	if !ok {
		return 0, fmt.Errorf("%w: field %s is not u64", ErrUnsupportedValue, name)
	}
	return n, nil
}

func (v Values) i64(name string) (int64, error) {
	n, ok := v[name].(int64)
	if !ok {
		return 0, fmt.Errorf("%w: field %s is not i64", ErrUnsupportedValue, name)
	}
	return n, nil
}

func (v Values) str(name string) (string, error) {
	s, ok := v[name].(string)
	if !ok {
		return "", fmt.Errorf("%w: field %s is not a string", ErrUnsupportedValue, name)
	}
	return s, nil
}

func (v Values) bytes32(name string) ([32]byte, error) {
	var out [32]byte

	b, ok := v[name].([]byte)
	if !ok || len(b) != 32 {
		return out, fmt.Errorf("%w: field %s is not a 32-byte array", ErrUnsupportedValue, name)
	}

	copy(out[:], b)
	return out, nil
}

func (v Values) seq(name string) ([]any, error) {
	items, ok := v[name].([]any)
	if !ok {
		return nil, fmt.Errorf("%w: field %s is not a sequence", ErrUnsupportedValue, name)
	}
	return items, nil
}

func (v Values) entries(name string) ([]MapEntry, error) {
	entries, ok := v[name].([]MapEntry)
	if !ok {
		return nil, fmt.Errorf("%w: field %s is not a map", ErrUnsupportedValue, name)
	}
	return entries, nil
}

func (v Values) values(name string) (Values, error) {
	vals, ok := v[name].(Values)
	if !ok {
		return nil, fmt.Errorf("%w: field %s is not a struct", ErrUnsupportedValue, name)
	}
	return vals, nil
}
