package pretty

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var mapType = reflect.TypeOf(Map(nil))

func valueOf(v interface{}) reflect.Value {
	return reflect.ValueOf(v)
}

// resolve follows interfaces and pointers down to a concrete value. The
// returned id identifies the underlying container for recursion checks and
// is 0 for values that can't recurse.
func resolve(v reflect.Value) (reflect.Value, uintptr) {
	var id uintptr
	for v.IsValid() {
		switch v.Kind() {
		case reflect.Interface:
			if v.IsNil() {
				return reflect.Value{}, 0
			}
			v = v.Elem()
		case reflect.Ptr:
			if v.IsNil() {
				return reflect.Value{}, 0
			}
			id = v.Pointer()
			v = v.Elem()
		case reflect.Map:
			if v.IsNil() {
				return v, 0
			}
			return v, v.Pointer()
		case reflect.Slice:
			if v.IsNil() || v.Len() == 0 {
				return v, 0
			}
			return v, v.Pointer()
		default:
			return v, id
		}
	}
	return v, id
}

// stringer returns the text of values that describe themselves.
func stringer(v reflect.Value) (string, bool) {
	if !v.IsValid() || !v.CanInterface() {
		return "", false
	}
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice:
		if v.IsNil() {
			return "", false
		}
	}
	switch t := v.Interface().(type) {
	case Map:
		return "", false
	case error:
		return t.Error(), true
	case fmt.Stringer:
		return t.String(), true
	}
	return "", false
}

type entry struct {
	key   reflect.Value
	value reflect.Value
}

func mapEntries(v reflect.Value, sortKeys bool) []entry {
	var out []entry
	if v.Type() == mapType {
		for i := 0; i < v.Len(); i++ {
			item := v.Index(i)
			out = append(out, entry{key: item.Field(0), value: item.Field(1)})
		}
	} else {
		iter := v.MapRange()
		for iter.Next() {
			out = append(out, entry{key: iter.Key(), value: iter.Value()})
		}
		// Go maps have no order, so fall back to sorting for stable output.
		sortKeys = true
	}

	if sortKeys {
		sort.SliceStable(out, func(i, j int) bool {
			return less(out[i].key, out[j].key)
		})
	}
	return out
}

// less orders keys of mixed types: numbers numerically, strings and
// booleans naturally, anything else by type name and representation.
func less(a, b reflect.Value) bool {
	a, _ = resolve(a)
	b, _ = resolve(b)

	ca, cb := keyClass(a), keyClass(b)
	if ca != cb || ca == classOther {
		ta, tb := typeName(a), typeName(b)
		if ta != tb {
			return ta < tb
		}
		st := &state{opts: DefaultOptions(), context: make(map[uintptr]bool)}
		return st.repr(a, 0) < st.repr(b, 0)
	}

	switch ca {
	case classNumber:
		return number(a) < number(b)
	case classString:
		return a.String() < b.String()
	case classBool:
		return !a.Bool() && b.Bool()
	}
	return false
}

const (
	classOther = iota
	classNumber
	classString
	classBool
)

func keyClass(v reflect.Value) int {
	if !v.IsValid() {
		return classOther
	}
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return classNumber
	case reflect.String:
		return classString
	case reflect.Bool:
		return classBool
	}
	return classOther
}

func number(v reflect.Value) float64 {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(v.Uint())
	}
	return v.Float()
}

func typeName(v reflect.Value) string {
	if !v.IsValid() {
		return "None"
	}
	return v.Type().String()
}

func structName(v reflect.Value) string {
	if name := v.Type().Name(); name != "" {
		return name
	}
	return "struct"
}

type field struct {
	name  string
	value reflect.Value
}

func structFields(v reflect.Value) []field {
	var out []field
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).PkgPath != "" {
			continue // unexported
		}
		out = append(out, field{name: t.Field(i).Name, value: v.Field(i)})
	}
	return out
}

func isBytes(v reflect.Value) bool {
	return v.Kind() == reflect.Slice && v.Type().Elem().Kind() == reflect.Uint8
}

func recursion(v reflect.Value, id uintptr) string {
	return fmt.Sprintf("<Recursion on %s with id=%d>", typeName(v), id)
}

// repr renders v on a single line.
func (s *state) repr(v reflect.Value, level int) string {
	if text, ok := stringer(v); ok {
		return text
	}

	v, id := resolve(v)
	if !v.IsValid() {
		return "None"
	}

	if v.Type() == mapType {
		return s.reprDict(v, id, level)
	}

	switch v.Kind() {
	case reflect.Bool:
		if v.Bool() {
			return "True"
		}
		return "False"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(v.Uint(), 10)
	case reflect.Float32:
		return formatFloat(v.Float(), 32)
	case reflect.Float64:
		return formatFloat(v.Float(), 64)
	case reflect.Complex64, reflect.Complex128:
		return formatComplex(v.Complex())
	case reflect.String:
		return quote(v.String())
	case reflect.Slice, reflect.Array:
		if isBytes(v) {
			return quoteBytes(v.Bytes())
		}
		return s.reprList(v, id, level)
	case reflect.Map:
		return s.reprDict(v, id, level)
	case reflect.Struct:
		return s.reprStruct(v, id, level)
	}

	return fmt.Sprintf("<%s>", v.Type())
}

func (s *state) reprList(v reflect.Value, id uintptr, level int) string {
	if v.Len() == 0 {
		return "[]"
	}
	if s.opts.Depth > 0 && level >= s.opts.Depth {
		return "[...]"
	}
	if id != 0 {
		if s.context[id] {
			return recursion(v, id)
		}
		s.context[id] = true
		defer delete(s.context, id)
	}

	parts := make([]string, v.Len())
	for i := range parts {
		parts[i] = s.repr(v.Index(i), level+1)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (s *state) reprDict(v reflect.Value, id uintptr, level int) string {
	if v.Len() == 0 {
		return "{}"
	}
	if s.opts.Depth > 0 && level >= s.opts.Depth {
		return "{...}"
	}
	if id != 0 {
		if s.context[id] {
			return recursion(v, id)
		}
		s.context[id] = true
		defer delete(s.context, id)
	}

	var parts []string
	for _, e := range mapEntries(v, s.opts.SortKeys) {
		parts = append(parts, s.repr(e.key, level+1)+": "+s.repr(e.value, level+1))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (s *state) reprStruct(v reflect.Value, id uintptr, level int) string {
	name := structName(v)
	fields := structFields(v)
	if len(fields) == 0 {
		return name + "()"
	}
	if s.opts.Depth > 0 && level >= s.opts.Depth {
		return name + "(...)"
	}
	if id != 0 {
		if s.context[id] {
			return recursion(v, id)
		}
		s.context[id] = true
		defer delete(s.context, id)
	}

	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f.name + "=" + s.repr(f.value, level+1)
	}
	return name + "(" + strings.Join(parts, ", ") + ")"
}

// formatFloat produces the shortest text that round-trips, switching to
// exponent notation outside [1e-4, 1e16).
func formatFloat(f float64, bitSize int) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}

	sci := strconv.FormatFloat(f, 'e', -1, bitSize)
	exp, err := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
	if err == nil && (exp < -4 || exp >= 16) {
		return sci
	}

	out := strconv.FormatFloat(f, 'f', -1, bitSize)
	if !strings.Contains(out, ".") {
		out += ".0"
	}
	return out
}

func formatComplex(c complex128) string {
	trim := func(f float64) string {
		return strings.TrimSuffix(formatFloat(f, 64), ".0")
	}

	re, im := real(c), imag(c)
	if re == 0 && !math.Signbit(re) {
		return trim(im) + "j"
	}

	imText := trim(im)
	if !strings.HasPrefix(imText, "-") {
		imText = "+" + imText
	}
	return "(" + trim(re) + imText + "j)"
}

func pickQuote(hasSingle, hasDouble bool) byte {
	if hasSingle && !hasDouble {
		return '"'
	}
	return '\''
}

// quote renders s as a quoted literal, escaping the quote character,
// backslashes and anything that isn't printable.
func quote(s string) string {
	q := pickQuote(strings.ContainsRune(s, '\''), strings.ContainsRune(s, '"'))

	sb := &strings.Builder{}
	sb.WriteByte(q)
	for _, r := range s {
		switch {
		case r == rune(q) || r == '\\':
			sb.WriteByte('\\')
			sb.WriteRune(r)
		case r == '\t':
			sb.WriteString(`\t`)
		case r == '\n':
			sb.WriteString(`\n`)
		case r == '\r':
			sb.WriteString(`\r`)
		case r < ' ' || r == 0x7f:
			fmt.Fprintf(sb, `\x%02x`, r)
		case unicode.IsPrint(r):
			sb.WriteRune(r)
		case r <= 0xff:
			fmt.Fprintf(sb, `\x%02x`, r)
		case r <= 0xffff:
			fmt.Fprintf(sb, `\u%04x`, r)
		default:
			fmt.Fprintf(sb, `\U%08x`, r)
		}
	}
	sb.WriteByte(q)
	return sb.String()
}

func quoteBytes(b []byte) string {
	q := pickQuote(strings.IndexByte(string(b), '\'') >= 0, strings.IndexByte(string(b), '"') >= 0)

	sb := &strings.Builder{}
	sb.WriteString("b")
	sb.WriteByte(q)
	for _, c := range b {
		switch {
		case c == q || c == '\\':
			sb.WriteByte('\\')
			sb.WriteByte(c)
		case c == '\t':
			sb.WriteString(`\t`)
		case c == '\n':
			sb.WriteString(`\n`)
		case c == '\r':
			sb.WriteString(`\r`)
		case c < ' ' || c >= 0x7f:
			fmt.Fprintf(sb, `\x%02x`, c)
		default:
			sb.WriteByte(c)
		}
	}
	sb.WriteByte(q)
	return sb.String()
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
