package protocol

import (
	"errors"
	"sort"
)

// ValueType tags an encoded detail value.
type ValueType uint8

const (
	ValueNull   ValueType = 0x00
	ValueBool   ValueType = 0x01
	ValueInt    ValueType = 0x02
	ValueFloat  ValueType = 0x03
	ValueString ValueType = 0x04
	ValueArray  ValueType = 0x05
	ValueObject ValueType = 0x06
)

// MaxValueDepth is the maximum nesting depth of arrays and objects.
const MaxValueDepth = 64

var (
	ErrInvalidPayload   = errors.New("protocol: invalid payload")
	ErrMaxDepthExceeded = errors.New("protocol: maximum nesting depth exceeded")
)

// EncodeValue appends v. Integers of any width become ValueInt, float32 and
// float64 become ValueFloat, and object keys are written in sorted order.
// Values of other types are written as null.
func EncodeValue(enc *Encoder, v any) {
	switch val := v.(type) {
	case nil:
		enc.WriteByte(byte(ValueNull))
	case bool:
		enc.WriteByte(byte(ValueBool))
		enc.WriteBool(val)
	case int:
		enc.WriteByte(byte(ValueInt))
		enc.WriteSvarint(int64(val))
	case int32:
		enc.WriteByte(byte(ValueInt))
		enc.WriteSvarint(int64(val))
	case int64:
		enc.WriteByte(byte(ValueInt))
		enc.WriteSvarint(val)
	case float32:
		enc.WriteByte(byte(ValueFloat))
		enc.WriteFloat64(float64(val))
	case float64:
		enc.WriteByte(byte(ValueFloat))
		enc.WriteFloat64(val)
	case string:
		enc.WriteByte(byte(ValueString))
		enc.WriteString(val)
	case []any:
		enc.WriteByte(byte(ValueArray))
		enc.WriteUvarint(uint64(len(val)))
		for _, item := range val {
			EncodeValue(enc, item)
		}
	case []string:
		enc.WriteByte(byte(ValueArray))
		enc.WriteUvarint(uint64(len(val)))
		for _, item := range val {
			EncodeValue(enc, item)
		}
	case map[string]any:
		enc.WriteByte(byte(ValueObject))
		enc.WriteUvarint(uint64(len(val)))
		for _, k := range sortedKeys(val) {
			enc.WriteString(k)
			EncodeValue(enc, val[k])
		}
	case map[string]string:
		enc.WriteByte(byte(ValueObject))
		enc.WriteUvarint(uint64(len(val)))
		for _, k := range sortedKeys(val) {
			enc.WriteString(k)
			EncodeValue(enc, val[k])
		}
	default:
		enc.WriteByte(byte(ValueNull))
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// DecodeValue reads one value. Integers decode as int64, floats as float64,
// arrays as []any and objects as map[string]any.
func DecodeValue(d *Decoder) (any, error) {
	return decodeValue(d, 0)
}

func decodeValue(d *Decoder, depth int) (any, error) {
	if depth > MaxValueDepth {
		return nil, ErrMaxDepthExceeded
	}

	typeByte, err := d.ReadByte()
	if err != nil {
		return nil, err
	}

	switch ValueType(typeByte) {
	case ValueNull:
		return nil, nil

	case ValueBool:
		return d.ReadBool()

	case ValueInt:
		return d.ReadSvarint()

	case ValueFloat:
		return d.ReadFloat64()

	case ValueString:
		return d.ReadString()

	case ValueArray:
		count, err := d.ReadCollectionCount()
		if err != nil {
			return nil, err
		}
		arr := make([]any, count)
		for i := 0; i < count; i++ {
			if arr[i], err = decodeValue(d, depth+1); err != nil {
				return nil, err
			}
		}
		return arr, nil

	case ValueObject:
		count, err := d.ReadCollectionCount()
		if err != nil {
			return nil, err
		}
		obj := make(map[string]any, count)
		for i := 0; i < count; i++ {
			key, err := d.ReadString()
			if err != nil {
				return nil, err
			}
			val, err := decodeValue(d, depth+1)
			if err != nil {
				return nil, err
			}
			obj[key] = val
		}
		return obj, nil

	default:
		return nil, ErrInvalidPayload
	}
}
