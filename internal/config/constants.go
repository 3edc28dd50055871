package config

// Lua schema field names and globals
const (
	luaGlobalInstaller = "installer"
	luaFieldRepo       = "repo"
	luaFieldAPIBase    = "api_base"
	luaFieldDownload   = "download_base"
	luaFieldUserAgent  = "user_agent"
	luaFieldTimeout    = "timeout"
	luaFieldPrerelease = "prerelease"
	luaFieldRestart    = "restart"
	luaFieldKeyring    = "keyring"
)

// FileName is the settings file name under <home>/.centy.
const FileName = "installer.lua"
