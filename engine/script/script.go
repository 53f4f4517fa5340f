// Package script runs Lua item callbacks. A Runtime owns one sandboxed
// Lua state for the whole session; the loader compiles content into it and
// every on_use function becomes a catalog.Callback bound to that state.
package script

import (
	"log/slog"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/turncore/types"
)

// Callback outcomes reported to the Recorder.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
	ResultError   = "error"
)

// Recorder receives one observation per callback invocation.
type Recorder interface {
	RecordCallback(result string)
}

// Options configure a Runtime.
type Options struct {
	Logger   *slog.Logger
	Recorder Recorder
}

// Runtime is a sandboxed Lua state. It is not safe for concurrent use; the
// engine invokes callbacks from a single goroutine.
type Runtime struct {
	L   *lua.LState
	log *slog.Logger
	rec Recorder
}

// New creates a sandboxed runtime with the item and user handle types
// registered.
func New(opts Options) *Runtime {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibs(L)
	sandbox(L)
	registerItemType(L)
	registerUserType(L)

	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Runtime{L: L, log: log, rec: opts.Recorder}
}

// Close releases the Lua state.
func (r *Runtime) Close() {
	r.L.Close()
}

// DoFile runs a content file in the runtime.
func (r *Runtime) DoFile(path string) error {
	return r.L.DoFile(path)
}

// DoString runs a chunk of Lua source in the runtime.
func (r *Runtime) DoString(src string) error {
	return r.L.DoString(src)
}

// Callback binds fn to the runtime.
func (r *Runtime) Callback(name string, fn *lua.LFunction) *Callback {
	return &Callback{rt: r, name: name, fn: fn}
}

func (r *Runtime) record(result string) {
	if r.rec != nil {
		r.rec.RecordCallback(result)
	}
}

// openSafeLibs opens only the Lua standard libraries that are safe for
// content files.
func openSafeLibs(L *lua.LState) {
	for _, lib := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.fn))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}
}

// sandbox removes globals that reach outside the runtime or break
// determinism.
func sandbox(L *lua.LState) {
	for _, name := range []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal", "collectgarbage",
	} {
		L.SetGlobal(name, lua.LNil)
	}
	if m, ok := L.GetGlobal("math").(*lua.LTable); ok {
		m.RawSetString("random", lua.LNil)
		m.RawSetString("randomseed", lua.LNil)
	}
}

// Callback is a Lua on_use function. It implements catalog.Callback.
type Callback struct {
	rt   *Runtime
	name string
	fn   *lua.LFunction
}

// Invoke calls the function with fresh item and user handles and reports
// whether it returned a true value. The handles go stale when the call
// returns, so a script that keeps one around gets an error on next use.
func (c *Callback) Invoke(item *types.Item, user *types.Actor) bool {
	L := c.rt.L
	ih := &itemHandle{item: item}
	uh := &userHandle{actor: user}
	defer func() {
		ih.item = nil
		uh.actor = nil
	}()

	err := L.CallByParam(lua.P{Fn: c.fn, NRet: 1, Protect: true},
		newItemUserData(L, ih), newUserUserData(L, uh))
	if err != nil {
		c.rt.log.Error("item callback failed", "callback", c.name, "error", err)
		c.rt.record(ResultError)
		return false
	}
	ret := L.Get(-1)
	L.Pop(1)

	ok := lua.LVAsBool(ret)
	if ok {
		c.rt.record(ResultSuccess)
	} else {
		c.rt.record(ResultFailure)
	}
	c.rt.log.Debug("item callback", "callback", c.name, "ok", ok)
	return ok
}
