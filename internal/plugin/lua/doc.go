// Package lua runs the user's init.lua in a sandboxed gopher-lua state.
//
// The script sees a single module, vim, through which it changes
// settings and adds key mappings before the engine is built:
//
//	vim.set("escape_sequence", "jk")
//	vim.set("page_lines", 30)
//	vim.map("normal", "<Space>w", ":w<CR>")
//	vim.notify("init loaded")
//
// The file, io, os and debug libraries are not opened, require only
// reaches the string, table and math modules, and execution is bounded
// by a timeout.
package lua
