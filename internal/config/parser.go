package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/centy-io/centy-installer/internal/logging"
	"github.com/centy-io/centy-installer/internal/platform"
)

// Parser represents a Lua config parser with platform detection.
type Parser struct {
	detector platform.Detector
	logger   logging.Logger
}

// NewParser creates a new config parser with the given platform detector.
// A nil detector leaves the `platform` table undefined.
func NewParser(detector platform.Detector, logger logging.Logger) *Parser {
	return &Parser{detector: detector, logger: logging.OrNop(logger)}
}

// ParseError represents a config parsing error with friendly message.
type ParseError struct {
	Path    string // empty for in-memory sources
	Message string // User-friendly message
	Detail  string // Technical details (raw Lua error)
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Path, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Message, e.Detail)
}

// Load reads the settings at path. A missing file is not an error: the
// defaults are returned.
func (p *Parser) Load(ctx context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		p.logger.Debug("no config file, using defaults", "path", path)
		return Defaults(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg, err := p.ParseString(ctx, string(data))
	if err != nil {
		var parseErr *ParseError
		if errors.As(err, &parseErr) {
			parseErr.Path = path
		}
		return nil, err
	}

	p.logger.Debug("loaded config", "path", path)
	return cfg, nil
}

// ParseString parses Lua settings from a string. Fields the script leaves
// unset keep their defaults.
func (p *Parser) ParseString(ctx context.Context, luaCode string) (*Config, error) {
	L := newSandboxedVM()
	defer L.Close()

	// Detect platform and inject platform table
	if p.detector != nil {
		platformInfo, err := p.detector.Detect(ctx)
		if err != nil {
			return nil, fmt.Errorf("platform detection failed: %w", err)
		}
		if err := platform.InjectPlatformTable(L, platformInfo); err != nil {
			return nil, fmt.Errorf("inject platform table: %w", err)
		}
	}

	if err := L.DoString(luaCode); err != nil {
		return nil, &ParseError{
			Message: "Lua syntax error",
			Detail:  err.Error(),
		}
	}

	return extractConfig(L)
}

// extractConfig reads the global "installer" table over the defaults.
// A script that never assigns it yields the defaults.
func extractConfig(L *lua.LState) (*Config, error) {
	cfg := Defaults()

	global := L.GetGlobal(luaGlobalInstaller)
	if global.Type() == lua.LTNil {
		return cfg, nil
	}
	table, ok := global.(*lua.LTable)
	if !ok {
		return nil, &ParseError{
			Message: "invalid 'installer' table",
			Detail:  fmt.Sprintf("expected table, got %s", global.Type()),
		}
	}

	strFields := []struct {
		name string
		dst  *string
	}{
		{luaFieldRepo, &cfg.Repo},
		{luaFieldAPIBase, &cfg.APIBase},
		{luaFieldDownload, &cfg.DownloadBase},
		{luaFieldUserAgent, &cfg.UserAgent},
		{luaFieldKeyring, &cfg.Keyring},
	}
	for _, f := range strFields {
		if err := getString(table, f.name, f.dst); err != nil {
			return nil, err
		}
	}

	if err := getBool(table, luaFieldPrerelease, &cfg.Prerelease); err != nil {
		return nil, err
	}
	if err := getBool(table, luaFieldRestart, &cfg.Restart); err != nil {
		return nil, err
	}

	if v := table.RawGetString(luaFieldTimeout); v.Type() != lua.LTNil {
		n, ok := v.(lua.LNumber)
		if !ok {
			return nil, fieldTypeError(luaFieldTimeout, "number (seconds)", v)
		}
		cfg.Timeout = time.Duration(float64(n) * float64(time.Second))
	}

	if err := cfg.Validate(); err != nil {
		return nil, &ParseError{
			Message: "config validation failed",
			Detail:  err.Error(),
		}
	}

	return cfg, nil
}

func getString(table *lua.LTable, name string, dst *string) error {
	v := table.RawGetString(name)
	if v.Type() == lua.LTNil {
		return nil
	}
	s, ok := v.(lua.LString)
	if !ok {
		return fieldTypeError(name, "string", v)
	}
	*dst = string(s)
	return nil
}

func getBool(table *lua.LTable, name string, dst *bool) error {
	v := table.RawGetString(name)
	if v.Type() == lua.LTNil {
		return nil
	}
	b, ok := v.(lua.LBool)
	if !ok {
		return fieldTypeError(name, "boolean", v)
	}
	*dst = bool(b)
	return nil
}

func fieldTypeError(name, want string, got lua.LValue) *ParseError {
	return &ParseError{
		Message: fmt.Sprintf("invalid '%s'", name),
		Detail:  fmt.Sprintf("expected %s, got %s", want, got.Type()),
	}
}

// FormatError formats a ParseError for user display.
// In verbose mode, show the raw Lua error. Otherwise, show friendly message.
func FormatError(err error, verbose bool) string {
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		return err.Error()
	}
	if verbose {
		return fmt.Sprintf("%s\n\nDetails:\n%s", parseErr.Message, parseErr.Detail)
	}
	// Extract the most relevant part of the error
	detail := parseErr.Detail
	if idx := strings.Index(detail, "stack traceback"); idx > 0 {
		detail = strings.TrimSpace(detail[:idx])
	}
	if parseErr.Path != "" {
		return fmt.Sprintf("%s: %s: %s", parseErr.Path, parseErr.Message, detail)
	}
	return fmt.Sprintf("%s: %s", parseErr.Message, detail)
}
