// Package script hosts a game's Lua entry script: it binds the host API,
// resolves the lifecycle hooks and invokes them with failure containment.
package script

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	lua "github.com/yuin/gopher-lua"
)

// EntryFile is the script every game package must provide.
const EntryFile = "game.lua"

// APIGlobal is the global name the host API is bound under.
const APIGlobal = "api"

// State is the bridge lifecycle state.
type State int

const (
	Unloaded State = iota
	Loaded
	Active
)

func (s State) String() string {
	switch s {
	case Loaded:
		return "loaded"
	case Active:
		return "active"
	default:
		return "unloaded"
	}
}

// LoadError reports an entry script that is missing or fails while its
// top-level code runs. It is the only bridge failure not contained.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("script: cannot load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Bridge owns one isolated Lua state running one game script.
type Bridge struct {
	L      *lua.LState
	api    *HostAPI
	self   *lua.LUserData
	hooks  map[string]Hook
	state  State
	path   string
	logger *log.Logger
}

// NewBridge creates a Lua state for the game in folder, binds api and runs
// the entry script. Sibling modules in folder are reachable via require.
func NewBridge(folder string, api *HostAPI, logger *log.Logger) (*Bridge, error) {
	if logger == nil {
		logger = log.Default()
	}
	path := filepath.Join(folder, EntryFile)
	if _, err := os.Stat(path); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: false})
	b := &Bridge{
		L:      L,
		api:    api,
		hooks:  make(map[string]Hook, len(HookNames)),
		path:   path,
		logger: logger,
	}

	setModulePath(L, folder)
	disableExit(L)
	b.self = bindAPI(L, api)
	L.SetGlobal(APIGlobal, b.self)

	if err := L.DoFile(path); err != nil {
		L.Close()
		return nil, &LoadError{Path: path, Err: err}
	}
	b.state = Loaded

	for _, name := range HookNames {
		hook, ok := resolveHook(L, name)
		if !ok {
			logger.Warn("hook is not callable, ignoring", "hook", name, "type", L.GetGlobal(name).Type())
		}
		b.hooks[name] = hook
	}
	logger.Debug("script loaded", "path", path, "hooks", b.Hooks())
	return b, nil
}

// setModulePath prepends the game folder to package.path.
func setModulePath(L *lua.LState, folder string) {
	pkg, ok := L.GetGlobal("package").(*lua.LTable)
	if !ok {
		return
	}
	dir := filepath.ToSlash(folder)
	current := lua.LVAsString(pkg.RawGetString("path"))
	pkg.RawSetString("path", lua.LString(dir+"/?.lua;"+dir+"/?/init.lua;"+current))
}

// disableExit replaces os.exit so a script cannot end the host process.
func disableExit(L *lua.LState) {
	osLib, ok := L.GetGlobal("os").(*lua.LTable)
	if !ok {
		return
	}
	osLib.RawSetString("exit", L.NewFunction(func(L *lua.LState) int {
		L.RaiseError("os.exit is not available to game scripts")
		return 0
	}))
}

// Path returns the entry script path.
func (b *Bridge) Path() string {
	return b.path
}

// State returns the lifecycle state.
func (b *Bridge) State() State {
	return b.state
}

// Hook returns the resolved hook called name.
func (b *Bridge) Hook(name string) Hook {
	if h, ok := b.hooks[name]; ok {
		return h
	}
	return noopHook{name: name}
}

// Hooks returns the names of the hooks the script defines.
func (b *Bridge) Hooks() []string {
	var names []string
	for _, name := range HookNames {
		if b.hooks[name] != nil && b.hooks[name].Present() {
			names = append(names, name)
		}
	}
	return names
}

// Init invokes OnInit(api).
func (b *Bridge) Init() Result {
	return b.invoke(HookInit)
}

// Update invokes Update(api, dt).
func (b *Bridge) Update(dt float64) Result {
	return b.invoke(HookUpdate, lua.LNumber(dt))
}

// Event invokes OnEvent(api, eventType, payload). The payload is copied
// into a new Lua table for every call.
func (b *Bridge) Event(eventType string, payload map[string]any) Result {
	return b.invoke(HookEvent, lua.LString(eventType), toLua(b.L, payload))
}

// invoke calls a hook with the API object as its first argument and turns
// any failure into a Result.
func (b *Bridge) invoke(name string, args ...lua.LValue) (res Result) {
	res.Hook = name
	if b.state == Unloaded {
		res.Err = &RuntimeError{Hook: name, Err: errors.New("bridge is closed")}
		return res
	}
	b.state = Active

	hook := b.Hook(name)
	if !hook.Present() {
		return res
	}

	top := b.L.GetTop()
	defer func() {
		if r := recover(); r != nil {
			b.L.SetTop(top)
			res.Err = &RuntimeError{Hook: name, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	callArgs := make([]lua.LValue, 0, len(args)+1)
	callArgs = append(callArgs, b.self)
	callArgs = append(callArgs, args...)
	if err := hook.call(b.L, callArgs...); err != nil {
		b.L.SetTop(top)
		res.Err = &RuntimeError{Hook: name, Err: err}
	}
	return res
}

// Close releases the Lua state. Later hook calls fail without running.
func (b *Bridge) Close() {
	if b.state == Unloaded {
		return
	}
	b.L.Close()
	b.state = Unloaded
}
