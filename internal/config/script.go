package config

import (
	"fmt"
	"os"

	lua "github.com/yuin/gopher-lua"
)

// RunScript evaluates an optional rc.lua against the configuration. The
// script sees a `termvim` table with two functions:
//
//	termvim.set(option, value)  -- override a config option
//	termvim.map(lhs, rhs)       -- map a key sequence before sending
//
// Returned mappings use Neovim key notation on both sides. A missing
// script file is not an error.
func RunScript(path string, cfg *Config) (map[string]string, error) {
	mappings := make(map[string]string)
	if path == "" {
		return mappings, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return mappings, nil
	}

	L := lua.NewState()
	defer L.Close()

	mod := L.NewTable()
	L.SetField(mod, "set", L.NewFunction(func(L *lua.LState) int {
		applyOption(L, cfg)
		return 0
	}))
	L.SetField(mod, "map", L.NewFunction(func(L *lua.LState) int {
		lhs := L.CheckString(1)
		rhs := L.CheckString(2)
		mappings[lhs] = rhs
		return 0
	}))
	L.SetGlobal("termvim", mod)

	if err := L.DoFile(path); err != nil {
		return nil, fmt.Errorf("evaluating %s: %w", path, err)
	}
	return mappings, nil
}

// applyOption handles one termvim.set call. Unknown options raise a Lua
// error so typos surface where the user wrote them.
func applyOption(L *lua.LState, cfg *Config) {
	name := L.CheckString(1)
	switch name {
	case "nvim_command":
		cfg.Nvim.Command = L.CheckString(2)
	case "grid_width":
		cfg.Grid.Width = L.CheckInt(2)
	case "grid_height":
		cfg.Grid.Height = L.CheckInt(2)
	case "log_level":
		cfg.Log.Level = L.CheckString(2)
	case "log_file":
		cfg.Log.File = L.CheckString(2)
	default:
		L.RaiseError("unknown option %q", name)
	}
}
