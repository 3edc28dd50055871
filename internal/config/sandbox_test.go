package config

import (
	"strings"
	"testing"

	lua "github.com/yuin/gopher-lua"
)

func TestSandboxLuaVM(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantErr string // empty means success
	}{
		{name: "string allowed", code: `x = string.upper("hello")`},
		{name: "table allowed", code: `t = {1, 2, 3}; table.insert(t, 4)`},
		{name: "math allowed", code: `x = math.floor(300.5)`},
		{name: "basic functions allowed", code: `x = type("a"); y = tostring(1); z = tonumber("2")`},
		{name: "pairs allowed", code: `for k, v in pairs({a = 1}) do end`},

		{name: "os.execute blocked", code: `os.execute("ls")`, wantErr: "attempt to index"},
		{name: "os.getenv blocked", code: `x = os.getenv("HOME")`, wantErr: "attempt to index"},
		{name: "io.open blocked", code: `f = io.open("/etc/passwd")`, wantErr: "attempt to index"},
		{name: "require blocked", code: `m = require("socket")`, wantErr: "attempt to call"},
		{name: "dofile blocked", code: `dofile("/tmp/evil.lua")`, wantErr: "attempt to call"},
		{name: "loadfile blocked", code: `f = loadfile("/tmp/evil.lua")`, wantErr: "attempt to call"},
		{name: "load blocked", code: `f = load("return 1")`, wantErr: "attempt to call"},
		{name: "loadstring blocked", code: `f = loadstring("return 1")`, wantErr: "attempt to call"},
		{name: "debug blocked", code: `debug.getinfo(1)`, wantErr: "attempt to index"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			L := newSandboxedVM()
			defer L.Close()

			err := L.DoString(tt.code)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("DoString(%q) error = %v", tt.code, err)
				}
				return
			}
			if err == nil {
				t.Fatalf("DoString(%q) succeeded, want error", tt.code)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("DoString(%q) error = %v, want substring %q", tt.code, err, tt.wantErr)
			}
		})
	}
}

func TestNewSandboxedVM(t *testing.T) {
	L := newSandboxedVM()
	defer L.Close()

	for _, name := range disabledGlobals {
		if v := L.GetGlobal(name); v.Type() != lua.LTNil {
			t.Errorf("global %q = %v, want nil", name, v.Type())
		}
	}
	for _, name := range []string{"string", "table", "math"} {
		if v := L.GetGlobal(name); v.Type() != lua.LTTable {
			t.Errorf("global %q = %v, want table", name, v.Type())
		}
	}
}
