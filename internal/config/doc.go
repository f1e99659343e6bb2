// Package config provides layered configuration for vimcore.
//
// Settings are resolved from three layers, lowest first:
//
//	┌─────────────────────────────┐
//	│  3. Environment Variables   │  ← VIMCORE_*
//	├─────────────────────────────┤
//	│  2. Config File             │  ← ~/.config/vimcore/config.toml (or .yaml)
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │
//	└─────────────────────────────┘
//
// Files and environment are read into generic maps by the loader
// sub-package, merged, and decoded into Config. Load validates the result
// and returns ValidationErrors listing every problem.
//
// # Live Reload
//
// Watch reloads the file through fsnotify and hands the new Config to a
// callback. The engine applies input settings between keystrokes.
package config
