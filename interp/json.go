package interp

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// jsonEncode is a small, dependency-free JSON.stringify: the Value
// tagged union already mirrors JSON's shape closely enough that a
// hand-rolled encoder is simpler than bridging through encoding/json.
func jsonEncode(v Value) string {
	var sb strings.Builder
	encodeJSONInto(&sb, v)
	return sb.String()
}

func encodeJSONInto(sb *strings.Builder, v Value) {
	switch v.Kind {
	case KindUndefined, KindFunction:
		sb.WriteString("null")
	case KindNull:
		sb.WriteString("null")
	case KindBool:
		sb.WriteString(strconv.FormatBool(v.B))
	case KindNumber:
		sb.WriteString(strconv.FormatFloat(v.N, 'g', -1, 64))
	case KindString:
		sb.WriteString(strconv.Quote(v.S))
	case KindArray:
		sb.WriteByte('[')
		for i, e := range v.Obj.Elems {
			if i > 0 {
				sb.WriteByte(',')
			}
			encodeJSONInto(sb, e)
		}
		sb.WriteByte(']')
	case KindObject:
		sb.WriteByte('{')
		for i, k := range v.Obj.Keys {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(strconv.Quote(k))
			sb.WriteByte(':')
			val, _ := v.Obj.Get(k)
			encodeJSONInto(sb, val)
		}
		sb.WriteByte('}')
	}
}

// jsonDecode parses a JSON document into a Value, returning the number
// of bytes consumed so callers can recurse over siblings.
func jsonDecode(text string) (Value, int, error) {
	i := skipJSONSpace(text, 0)
	if i >= len(text) {
		return Undefined(), i, fmt.Errorf("interp: unexpected end of JSON input")
	}
	switch c := text[i]; {
	case c == '{':
		return decodeJSONObject(text, i)
	case c == '[':
		return decodeJSONArray(text, i)
	case c == '"':
		return decodeJSONString(text, i)
	case strings.HasPrefix(text[i:], "true"):
		return Bool(true), i + 4, nil
	case strings.HasPrefix(text[i:], "false"):
		return Bool(false), i + 5, nil
	case strings.HasPrefix(text[i:], "null"):
		return Null(), i + 4, nil
	default:
		return decodeJSONNumber(text, i)
	}
}

func skipJSONSpace(text string, i int) int {
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			break
		}
		i += size
	}
	return i
}

func decodeJSONObject(text string, i int) (Value, int, error) {
	obj := NewObject()
	i++
	i = skipJSONSpace(text, i)
	if i < len(text) && text[i] == '}' {
		return ObjectValue(obj), i + 1, nil
	}
	for {
		i = skipJSONSpace(text, i)
		keyVal, next, err := decodeJSONString(text, i)
		if err != nil {
			return Undefined(), i, err
		}
		i = skipJSONSpace(text, next)
		if i >= len(text) || text[i] != ':' {
			return Undefined(), i, fmt.Errorf("interp: expected ':' in JSON object")
		}
		i++
		val, next2, err := jsonDecode(text[i:])
		if err != nil {
			return Undefined(), i, err
		}
		i += next2
		obj.Set(keyVal.S, val)
		i = skipJSONSpace(text, i)
		if i < len(text) && text[i] == ',' {
			i++
			continue
		}
		break
	}
	i = skipJSONSpace(text, i)
	if i >= len(text) || text[i] != '}' {
		return Undefined(), i, fmt.Errorf("interp: expected '}' in JSON object")
	}
	return ObjectValue(obj), i + 1, nil
}

func decodeJSONArray(text string, i int) (Value, int, error) {
	var elems []Value
	i++
	i = skipJSONSpace(text, i)
	if i < len(text) && text[i] == ']' {
		return ArrayValue(elems), i + 1, nil
	}
	for {
		val, next, err := jsonDecode(text[i:])
		if err != nil {
			return Undefined(), i, err
		}
		elems = append(elems, val)
		i += next
		i = skipJSONSpace(text, i)
		if i < len(text) && text[i] == ',' {
			i++
			continue
		}
		break
	}
	i = skipJSONSpace(text, i)
	if i >= len(text) || text[i] != ']' {
		return Undefined(), i, fmt.Errorf("interp: expected ']' in JSON array")
	}
	return ArrayValue(elems), i + 1, nil
}

func decodeJSONString(text string, i int) (Value, int, error) {
	if i >= len(text) || text[i] != '"' {
		return Undefined(), i, fmt.Errorf("interp: expected string in JSON input")
	}
	end := i + 1
	for end < len(text) && text[end] != '"' {
		if text[end] == '\\' {
			end++
		}
		end++
	}
	if end >= len(text) {
		return Undefined(), i, fmt.Errorf("interp: unterminated JSON string")
	}
	unquoted, err := strconv.Unquote(text[i : end+1])
	if err != nil {
		unquoted = text[i+1 : end]
	}
	return String(unquoted), end + 1, nil
}

func decodeJSONNumber(text string, i int) (Value, int, error) {
	end := i
	for end < len(text) && strings.ContainsRune("-+.eE0123456789", rune(text[end])) {
		end++
	}
	if end == i {
		return Undefined(), i, fmt.Errorf("interp: invalid JSON token at %d", i)
	}
	f, err := strconv.ParseFloat(text[i:end], 64)
	if err != nil {
		return Undefined(), i, err
	}
	return Number(f), end, nil
}
