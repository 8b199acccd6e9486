package script

import (
	"math"
	"testing"

	lua "github.com/yuin/gopher-lua"
)

func TestToFloat(t *testing.T) {
	tests := []struct {
		name    string
		in      lua.LValue
		want    float64
		wantErr bool
	}{
		{"number", lua.LNumber(1.5), 1.5, false},
		{"numeric string", lua.LString(" 7.25 "), 7.25, false},
		{"word", lua.LString("left"), 0, true},
		{"bool", lua.LTrue, 0, true},
		{"nil", lua.LNil, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := toFloat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("toFloat(%v) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("toFloat(%v) = %v, expected %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestToInt(t *testing.T) {
	tests := []struct {
		name    string
		in      lua.LValue
		want    int
		wantErr bool
	}{
		{"integer", lua.LNumber(60), 60, false},
		{"truncates", lua.LNumber(29.9), 29, false},
		{"negative", lua.LNumber(-3.7), -3, false},
		{"string", lua.LString("120"), 120, false},
		{"padded string", lua.LString(" 42 "), 42, false},
		{"leading zero is decimal", lua.LString("010"), 10, false},
		{"hex string", lua.LString("0x10"), 0, true},
		{"fractional string", lua.LString("1.5"), 0, true},
		{"huge", lua.LNumber(1e300), math.MaxInt, false},
		{"huge negative", lua.LNumber(-1e300), math.MinInt, false},
		{"infinity", lua.LNumber(math.Inf(1)), math.MaxInt, false},
		{"nan", lua.LNumber(math.NaN()), 0, true},
		{"word", lua.LString("fast"), 0, true},
		{"table", &lua.LTable{}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := toInt(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("toInt(%v) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("toInt(%v) = %v, expected %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestToName(t *testing.T) {
	if got, err := toName(lua.LNumber(3)); err != nil || got != "3" {
		t.Errorf("toName(3) = (%q, %v), expected (\"3\", nil)", got, err)
	}
	if _, err := toName(lua.LNil); err == nil {
		t.Error("toName(nil) should fail")
	}
}

func TestToLuaBuildsFreshTables(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	src := map[string]any{
		"key":   "space",
		"count": 2,
		"mods":  []string{"shift"},
		"nil":   nil,
	}
	a := toLua(L, src).(*lua.LTable)
	b := toLua(L, src).(*lua.LTable)
	if a == b {
		t.Fatal("toLua returned the same table twice")
	}

	if got := a.RawGetString("key"); got != lua.LString("space") {
		t.Errorf("key = %v, expected space", got)
	}
	if got := a.RawGetString("count"); got != lua.LNumber(2) {
		t.Errorf("count = %v, expected 2", got)
	}
	mods, ok := a.RawGetString("mods").(*lua.LTable)
	if !ok || mods.Len() != 1 || mods.RawGetInt(1) != lua.LString("shift") {
		t.Errorf("mods = %v, expected {shift}", a.RawGetString("mods"))
	}
	if got := a.RawGetString("nil"); got != lua.LNil {
		t.Errorf("nil = %v, expected nil", got)
	}
}
