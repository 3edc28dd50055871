package config

import (
	lua "github.com/yuin/gopher-lua"
)

// disabledGlobals are removed from every settings VM. They reach the
// filesystem, the process or the host environment, or load further code.
// string, table and math stay available.
var disabledGlobals = []string{
	"os",
	"io",
	"require",
	"dofile",
	"loadfile",
	"load",
	"loadstring",
	"debug",
}

// sandboxLuaVM removes disabledGlobals from L.
func sandboxLuaVM(L *lua.LState) {
	for _, name := range disabledGlobals {
		L.SetGlobal(name, lua.LNil)
	}
}

// newSandboxedVM returns a fresh VM with sandboxing applied.
func newSandboxedVM() *lua.LState {
	L := lua.NewState()
	sandboxLuaVM(L)
	return L
}
