package script

import (
	lua "github.com/yuin/gopher-lua"
)

// apiTypeName names the userdata metatable scripts see as `api`.
const apiTypeName = "GameAPI"

// apiMethod binds one host operation under its public name and the
// PascalCase alias older game scripts use.
type apiMethod struct {
	name  string
	alias string
	fn    lua.LGFunction
}

var apiMethods = []apiMethod{
	{"log", "Log", apiLog},
	{"spawnEntity", "SpawnEntity", apiSpawnEntity},
	{"setVelocity", "SetVelocity", apiSetVelocity},
	{"getPosition", "GetPosition", apiGetPosition},
	{"setPosition", "SetPosition", apiSetPosition},
	{"isKeyDown", "IsKeyDown", apiIsKeyDown},
	{"setTargetFrameRate", "SetTargetFPS", apiSetTargetFrameRate},
	{"setBackgroundColor", "SetBackgroundColor", apiSetBackgroundColor},
	{"getScreenSize", "GetScreenSize", apiGetScreenSize},
}

// bindAPI exposes api to L as a userdata whose methods are called with
// colon syntax (`api:spawnEntity(...)`).
func bindAPI(L *lua.LState, api *HostAPI) *lua.LUserData {
	funcs := make(map[string]lua.LGFunction, len(apiMethods)*2)
	for _, m := range apiMethods {
		funcs[m.name] = m.fn
		funcs[m.alias] = m.fn
	}

	mt := L.NewTypeMetatable(apiTypeName)
	L.SetField(mt, "__index", L.SetFuncs(L.NewTable(), funcs))
	L.SetField(mt, "__tostring", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LString(apiTypeName))
		return 1
	}))

	ud := L.NewUserData()
	ud.Value = api
	L.SetMetatable(ud, mt)
	return ud
}

// checkAPI returns the receiver of a method call.
func checkAPI(L *lua.LState) *HostAPI {
	ud, ok := L.Get(1).(*lua.LUserData)
	if ok {
		if api, ok := ud.Value.(*HostAPI); ok {
			return api
		}
	}
	L.ArgError(1, apiTypeName+" expected, call methods with ':'")
	return nil
}

func apiLog(L *lua.LState) int {
	api := checkAPI(L)
	api.Log(L.ToStringMeta(L.Get(2)).String())
	return 0
}

func apiSpawnEntity(L *lua.LState) int {
	api := checkAPI(L)
	name := checkName(L, 2)
	x, y := checkFloat(L, 3), checkFloat(L, 4)
	w, h := checkFloat(L, 5), checkFloat(L, 6)
	r, g, b := checkInt(L, 7), checkInt(L, 8), checkInt(L, 9)
	api.SpawnEntity(name, x, y, w, h, r, g, b)
	return 0
}

func apiSetVelocity(L *lua.LState) int {
	api := checkAPI(L)
	name := checkName(L, 2)
	api.SetVelocity(name, checkFloat(L, 3), checkFloat(L, 4))
	return 0
}

func apiGetPosition(L *lua.LState) int {
	api := checkAPI(L)
	x, y, ok := api.GetPosition(checkName(L, 2))
	if !ok {
		L.Push(lua.LNil)
		L.Push(lua.LNil)
		return 2
	}
	L.Push(lua.LNumber(x))
	L.Push(lua.LNumber(y))
	return 2
}

func apiSetPosition(L *lua.LState) int {
	api := checkAPI(L)
	name := checkName(L, 2)
	api.SetPosition(name, checkFloat(L, 3), checkFloat(L, 4))
	return 0
}

func apiIsKeyDown(L *lua.LState) int {
	api := checkAPI(L)
	L.Push(lua.LBool(api.IsKeyDown(checkName(L, 2))))
	return 1
}

func apiSetTargetFrameRate(L *lua.LState) int {
	api := checkAPI(L)
	api.SetTargetFrameRate(checkInt(L, 2))
	return 0
}

func apiSetBackgroundColor(L *lua.LState) int {
	api := checkAPI(L)
	api.SetBackgroundColor(checkInt(L, 2), checkInt(L, 3), checkInt(L, 4))
	return 0
}

func apiGetScreenSize(L *lua.LState) int {
	api := checkAPI(L)
	w, h := api.GetScreenSize()
	L.Push(lua.LNumber(w))
	L.Push(lua.LNumber(h))
	return 2
}
