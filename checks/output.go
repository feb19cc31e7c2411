package checks

import (
	"fmt"
	"reflect"
	"sort"
	"time"
)

// Violation describes one disallowed value found in a concrete representation.
type Violation struct {
	Message string
	Value   any
}

// Fixed-size arrays get their own message because they are the usual way a
// tuple-shaped value sneaks into a representation.
const arrayMessage = "You cannot use fixed-size arrays for the concrete representation " +
	"because they cannot be serialized in YAML. Try using slices. " +
	"(Arrays are fine for the internal representation.)"

func disallowedTypeMessage(name string) string {
	return fmt.Sprintf("In the concrete representation you can use only the serializable "+
		"datatypes; you used a value of type %s", name)
}

// CheckOutput recursively validates that value uses only the datatypes that
// survive YAML serialization: booleans, integers, floats, strings, timestamps,
// mappings, and variable-length sequences. Mapping values and sequence
// elements are checked too; mapping keys are not.
func CheckOutput(value any) []Violation {
	var out []Violation
	checkValue(value, &out)
	return out
}

// RequireGoodOutput fails t for every violation found in value, terminating
// the test if there are any.
func RequireGoodOutput(t TestingT, value any) {
	vs := CheckOutput(value)
	for _, v := range vs {
		t.Errorf("%s (value: %v)", v.Message, v.Value)
	}
	if len(vs) > 0 {
		t.FailNow()
	}
}

func checkValue(x any, out *[]Violation) {
	if x == nil {
		*out = append(*out, Violation{Message: disallowedTypeMessage("nil"), Value: x})
		return
	}
	if _, ok := x.(time.Time); ok {
		return
	}

	v := reflect.ValueOf(x)
	switch v.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return
	case reflect.Array:
		*out = append(*out, Violation{Message: arrayMessage, Value: x})
		return
	case reflect.Slice:
		for i := 0; i < v.Len(); i++ {
			checkValue(v.Index(i).Interface(), out)
		}
	case reflect.Map:
		keys := v.MapKeys()
		sort.Slice(keys, func(i, j int) bool {
			return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
		})
		for _, k := range keys {
			checkValue(v.MapIndex(k).Interface(), out)
		}
	default:
		*out = append(*out, Violation{Message: disallowedTypeMessage(typeName(x)), Value: x})
	}
}
