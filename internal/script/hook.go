package script

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// Hook names a script may define as globals.
const (
	HookInit   = "OnInit"
	HookUpdate = "Update"
	HookEvent  = "OnEvent"
)

// HookNames lists the lifecycle hooks in resolution order.
var HookNames = []string{HookInit, HookUpdate, HookEvent}

// Hook is a resolved lifecycle callback. A hook the script did not define
// resolves to a no-op hook, so callers never branch on presence.
type Hook interface {
	Name() string
	Present() bool
	call(L *lua.LState, args ...lua.LValue) error
}

type noopHook struct {
	name string
}

func (h noopHook) Name() string { return h.name }

func (h noopHook) Present() bool { return false }

func (h noopHook) call(*lua.LState, ...lua.LValue) error { return nil }

type luaHook struct {
	name string
	fn   lua.LValue
}

func (h luaHook) Name() string { return h.name }

func (h luaHook) Present() bool { return true }

func (h luaHook) call(L *lua.LState, args ...lua.LValue) error {
	return L.CallByParam(lua.P{
		Fn:      h.fn,
		NRet:    0,
		Protect: true,
	}, args...)
}

// callable reports whether v can be invoked: a function, or a value whose
// metatable defines __call.
func callable(L *lua.LState, v lua.LValue) bool {
	if v.Type() == lua.LTFunction {
		return true
	}
	return L.GetMetaField(v, "__call") != lua.LNil
}

// resolveHook looks up a global hook by name. ok is false when the global
// is set to something that cannot be called.
func resolveHook(L *lua.LState, name string) (hook Hook, ok bool) {
	v := L.GetGlobal(name)
	if v == lua.LNil {
		return noopHook{name: name}, true
	}
	if !callable(L, v) {
		return noopHook{name: name}, false
	}
	return luaHook{name: name, fn: v}, true
}

// RuntimeError is a failure raised inside a hook, including coercion
// failures from host API calls made by the hook.
type RuntimeError struct {
	Hook string
	Err  error
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("script: %s failed: %v", e.Hook, e.Err)
}

func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// Result is the outcome of one hook invocation.
type Result struct {
	Hook string
	Err  error
}

// OK reports whether the hook returned normally or was absent.
func (r Result) OK() bool {
	return r.Err == nil
}
