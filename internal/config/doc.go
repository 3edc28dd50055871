// Package config loads the installer's optional Lua settings file
// (<home>/.centy/installer.lua).
//
// The file runs in a sandboxed gopher-lua VM with a read-only `platform`
// table, so settings can vary per host:
//
//	installer = {
//	  repo = "centy-io/centy-daemon",
//	  timeout = platform.is_windows and 600 or 300,
//	  prerelease = false,
//	  keyring = "~/.centy/keys/release.asc",
//	}
//
// Every field is optional. A missing file yields Defaults().
package config
