package script

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
	lua "github.com/yuin/gopher-lua"
)

// goValue unwraps scalar Lua values into Go values.
// Tables, functions and userdata are returned as-is.
func goValue(v lua.LValue) any {
	switch v := v.(type) {
	case lua.LString:
		return string(v)
	case lua.LNumber:
		return float64(v)
	case lua.LBool:
		return bool(v)
	case *lua.LNilType:
		return nil
	default:
		return v
	}
}

// toFloat coerces numbers and numeric strings.
func toFloat(v lua.LValue) (float64, error) {
	switch v.Type() {
	case lua.LTNumber:
		return float64(v.(lua.LNumber)), nil
	case lua.LTString:
		return cast.ToFloat64E(strings.TrimSpace(string(v.(lua.LString))))
	default:
		return 0, fmt.Errorf("number expected, got %s", v.Type())
	}
}

// toInt coerces numbers and decimal integer strings. Numbers truncate
// toward zero and saturate at the int range; NaN is rejected.
func toInt(v lua.LValue) (int, error) {
	switch v.Type() {
	case lua.LTNumber:
		return truncInt(float64(v.(lua.LNumber)))
	case lua.LTString:
		i, err := strconv.Atoi(strings.TrimSpace(string(v.(lua.LString))))
		if err != nil {
			return 0, fmt.Errorf("integer expected, got %q", string(v.(lua.LString)))
		}
		return i, nil
	default:
		return 0, fmt.Errorf("integer expected, got %s", v.Type())
	}
}

func truncInt(f float64) (int, error) {
	switch {
	case math.IsNaN(f):
		return 0, fmt.Errorf("integer expected, got nan")
	case f >= math.MaxInt:
		return math.MaxInt, nil
	case f <= math.MinInt:
		return math.MinInt, nil
	}
	return int(f), nil
}

// toName coerces strings, numbers and booleans into a string.
func toName(v lua.LValue) (string, error) {
	switch v.Type() {
	case lua.LTString, lua.LTNumber, lua.LTBool:
		return cast.ToStringE(goValue(v))
	default:
		return "", fmt.Errorf("string expected, got %s", v.Type())
	}
}

// checkFloat reads argument n as a float or raises a Lua argument error.
func checkFloat(L *lua.LState, n int) float64 {
	f, err := toFloat(L.Get(n))
	if err != nil {
		L.ArgError(n, err.Error())
	}
	return f
}

// checkInt reads argument n as an int or raises a Lua argument error.
func checkInt(L *lua.LState, n int) int {
	i, err := toInt(L.Get(n))
	if err != nil {
		L.ArgError(n, err.Error())
	}
	return i
}

// checkName reads argument n as a string or raises a Lua argument error.
func checkName(L *lua.LState, n int) string {
	s, err := toName(L.Get(n))
	if err != nil {
		L.ArgError(n, err.Error())
	}
	return s
}

// toLua converts a Go value into a Lua value, building fresh tables for
// maps and slices so nothing is shared with the caller.
func toLua(L *lua.LState, v any) lua.LValue {
	switch v := v.(type) {
	case nil:
		return lua.LNil
	case lua.LValue:
		return v
	case bool:
		return lua.LBool(v)
	case string:
		return lua.LString(v)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return lua.LNumber(cast.ToFloat64(v))
	case map[string]any:
		t := L.CreateTable(0, len(v))
		for key, val := range v {
			t.RawSetString(key, toLua(L, val))
		}
		return t
	case map[string]string:
		t := L.CreateTable(0, len(v))
		for key, val := range v {
			t.RawSetString(key, lua.LString(val))
		}
		return t
	case []any:
		t := L.CreateTable(len(v), 0)
		for _, val := range v {
			t.Append(toLua(L, val))
		}
		return t
	case []string:
		t := L.CreateTable(len(v), 0)
		for _, val := range v {
			t.Append(lua.LString(val))
		}
		return t
	case fmt.Stringer:
		return lua.LString(v.String())
	default:
		return lua.LString(fmt.Sprint(v))
	}
}
