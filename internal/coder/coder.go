// Package coder implements the binary account-state and instruction codec.
// Record layouts are declared as schemas (ordered field lists over a small set
// of wire types) and a single generic encoder/decoder walks them. The layout
// matches the on-chain program's parser byte for byte: little-endian fixed
// width integers, u32 length prefixes for strings, sequences and maps, and a
// one-byte presence flag for optional fields. A schema plus a value admits
// exactly one byte string.
package coder

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	bin "github.com/gagliardetto/binary"
)

type Kind uint8

const (
	KindU8 Kind = iota
	KindU32
	KindU64
	KindI64
	KindFixedBytes
	KindString
	KindOption
	KindSequence
	KindMap
	KindStruct
)

// Type describes one wire shape. Schemas are pure data; the codec walks them.
type Type struct {
	Kind   Kind
	Len    int     // KindFixedBytes
	Key    *Type   // KindMap
	Elem   *Type   // KindOption, KindSequence, KindMap
	Fields []Field // KindStruct
}

type Field struct {
	Name string
	Type Type
}

var (
	U8  = Type{Kind: KindU8}
	U32 = Type{Kind: KindU32}
	U64 = Type{Kind: KindU64}
	I64 = Type{Kind: KindI64}
	Str = Type{Kind: KindString}
)

func FixedBytes(n int) Type {
	return Type{Kind: KindFixedBytes, Len: n}
}

func Option(elem Type) Type {
	return Type{Kind: KindOption, Elem: &elem}
}

func Sequence(elem Type) Type {
	return Type{Kind: KindSequence, Elem: &elem}
}

func Map(key, value Type) Type {
	return Type{Kind: KindMap, Key: &key, Elem: &value}
}

func Struct(fields ...Field) Type {
	return Type{Kind: KindStruct, Fields: fields}
}

func F(name string, t Type) Field {
	return Field{Name: name, Type: t}
}

// Values holds a struct's field values keyed by field name. Encoding order
// comes from the schema, never from map iteration.
type Values map[string]any

// MapEntry is one key/value pair of a wire map. Slices of entries preserve
// insertion order, which is what the wire format encodes.
type MapEntry struct {
	Key   any
	Value any
}

// Encode serializes value against schema t.
func Encode(value any, t Type) ([]byte, error) {
	buf := new(bytes.Buffer)
	enc := bin.NewBorshEncoder(buf)

	if err := encodeValue(enc, value, t); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Decode deserializes data against schema t. Trailing bytes beyond the
// declared structure are tolerated here, and only here: on-chain accounts may
// be over-allocated and zero-padded.
func Decode(data []byte, t Type) (any, error) {
	dec := bin.NewBorshDecoder(data)
	return decodeValue(dec, t)
}

func encodeValue(enc *bin.Encoder, value any, t Type) error {
	switch t.Kind {
	case KindU8:
		n, err := asUint(value, math.MaxUint8)
		if err != nil {
			return err
		}
		return enc.WriteUint8(uint8(n))

	case KindU32:
		n, err := asUint(value, math.MaxUint32)
		if err != nil {
			return err
		}
		return enc.WriteUint32(uint32(n), binary.LittleEndian)

	case KindU64:
		n, err := asUint(value, math.MaxUint64)
		if err != nil {
			return err
		}
		return enc.WriteUint64(n, binary.LittleEndian)

	case KindI64:
		n, err := asInt(value)
		if err != nil {
			return err
		}
		return enc.WriteInt64(n, binary.LittleEndian)

	case KindFixedBytes:
		b, ok := value.([]byte)
		if !ok {
			return fmt.Errorf("%w: expected []byte, got %T", ErrUnsupportedValue, value)
		}
		if len(b) != t.Len {
			return fmt.Errorf("%w: expected %d bytes, got %d", ErrLengthMismatch, t.Len, len(b))
		}
		return enc.WriteBytes(b, false)

	case KindString:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: expected string, got %T", ErrUnsupportedValue, value)
		}
		if err := enc.WriteUint32(uint32(len(s)), binary.LittleEndian); err != nil {
			return err
		}
		return enc.WriteBytes([]byte(s), false)

	case KindOption:
		if value == nil {
			return enc.WriteUint8(0)
		}
		if err := enc.WriteUint8(1); err != nil {
			return err
		}
		return encodeValue(enc, value, *t.Elem)

	case KindSequence:
		items, ok := value.([]any)
		if !ok {
			return fmt.Errorf("%w: expected []any, got %T", ErrUnsupportedValue, value)
		}
		if err := enc.WriteUint32(uint32(len(items)), binary.LittleEndian); err != nil {
			return err
		}
		for i, item := range items {
			if err := encodeValue(enc, item, *t.Elem); err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
		}
		return nil

	case KindMap:
		entries, ok := value.([]MapEntry)
		if !ok {
			return fmt.Errorf("%w: expected []MapEntry, got %T", ErrUnsupportedValue, value)
		}
		if err := enc.WriteUint32(uint32(len(entries)), binary.LittleEndian); err != nil {
			return err
		}
		for i, e := range entries {
			if err := encodeValue(enc, e.Key, *t.Key); err != nil {
				return fmt.Errorf("entry %d key: %w", i, err)
			}
			if err := encodeValue(enc, e.Value, *t.Elem); err != nil {
				return fmt.Errorf("entry %d value: %w", i, err)
			}
		}
		return nil

	case KindStruct:
		vals, ok := value.(Values)
		if !ok {
			return fmt.Errorf("%w: expected Values, got %T", ErrUnsupportedValue, value)
		}
		for _, f := range t.Fields {
			if err := encodeValue(enc, vals[f.Name], f.Type); err != nil {
				return fmt.Errorf("field %s: %w", f.Name, err)
			}
		}
		return nil

	default:
		return fmt.Errorf("%w: unknown kind %d", ErrUnsupportedValue, t.Kind)
	}
}

func decodeValue(dec *bin.Decoder, t Type) (any, error) {
	switch t.Kind {
	case KindU8:
		v, err := dec.ReadUint8()
		if err != nil {
			return nil, truncated(err)
		}
		return v, nil

	case KindU32:
		v, err := dec.ReadUint32(binary.LittleEndian)
		if err != nil {
			return nil, truncated(err)
		}
		return v, nil

	case KindU64:
		v, err := dec.ReadUint64(binary.LittleEndian)
		if err != nil {
			return nil, truncated(err)
		}
		return v, nil

	case KindI64:
		v, err := dec.ReadInt64(binary.LittleEndian)
		if err != nil {
			return nil, truncated(err)
		}
		return v, nil

	case KindFixedBytes:
		b, err := dec.ReadNBytes(t.Len)
		if err != nil {
			return nil, truncated(err)
		}
		return b, nil

	case KindString:
		n, err := dec.ReadUint32(binary.LittleEndian)
		if err != nil {
			return nil, truncated(err)
		}
		raw, err := dec.ReadNBytes(int(n))
		if err != nil {
			return nil, truncated(err)
		}
		return string(raw), nil

	case KindOption:
		flag, err := dec.ReadUint8()
		if err != nil {
			return nil, truncated(err)
		}
		switch flag {
		case 0:
			return nil, nil
		case 1:
			return decodeValue(dec, *t.Elem)
		default:
			return nil, fmt.Errorf("%w: option flag %d", ErrUnknownEnumTag, flag)
		}

	case KindSequence:
		n, err := dec.ReadUint32(binary.LittleEndian)
		if err != nil {
			return nil, truncated(err)
		}
		items := make([]any, 0, n)
		for i := uint32(0); i < n; i++ {
			item, err := decodeValue(dec, *t.Elem)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			items = append(items, item)
		}
		return items, nil

	case KindMap:
		n, err := dec.ReadUint32(binary.LittleEndian)
		if err != nil {
			return nil, truncated(err)
		}
		entries := make([]MapEntry, 0, n)
		for i := uint32(0); i < n; i++ {
			key, err := decodeValue(dec, *t.Key)
			if err != nil {
				return nil, fmt.Errorf("entry %d key: %w", i, err)
			}
			value, err := decodeValue(dec, *t.Elem)
			if err != nil {
				return nil, fmt.Errorf("entry %d value: %w", i, err)
			}
			entries = append(entries, MapEntry{Key: key, Value: value})
		}
		return entries, nil

	case KindStruct:
		vals := make(Values, len(t.Fields))
		for _, f := range t.Fields {
			v, err := decodeValue(dec, f.Type)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", f.Name, err)
			}
			vals[f.Name] = v
		}
		return vals, nil

	default:
		return nil, fmt.Errorf("%w: unknown kind %d", ErrUnsupportedValue, t.Kind)
	}
}

func asUint(value any, max uint64) (uint64, error) {
	var n uint64

	switch v := value.(type) {
	case uint8:
		n = uint64(v)
	case uint16:
		n = uint64(v)
	case uint32:
		n = uint64(v)
	case uint64:
		n = v
	case uint:
		n = uint64(v)
	case int:
		if v < 0 {
			return 0, fmt.Errorf("%w: negative value %d", ErrIntegerOverflow, v)
		}
		n = uint64(v)
	case int64:
		if v < 0 {
			return 0, fmt.Errorf("%w: negative value %d", ErrIntegerOverflow, v)
		}
		n = uint64(v)
	default:
		return 0, fmt.Errorf("%w: expected unsigned integer, got %T", ErrUnsupportedValue, value)
	}

	if n > max {
		return 0, fmt.Errorf("%w: %d exceeds maximum %d", ErrIntegerOverflow, n, max)
	}

	return n, nil
}

func asInt(value any) (int64, error) {
	switch v := value.(type) {
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	default:
		return 0, fmt.Errorf("%w: expected signed integer, got %T", ErrUnsupportedValue, value)
	}
}

func truncated(err error) error {
	return fmt.Errorf("%w: %v", ErrTruncatedInput, err)
}
