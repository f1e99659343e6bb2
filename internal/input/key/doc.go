// Package key provides key event types and vim-notation parsing.
//
//   - Key: a special key or KeyRune for characters
//   - Modifier: Ctrl, Alt, Shift
//   - Event: a single key press
//
// Key sequences are written the way vim mappings are: plain characters
// stand for themselves and special keys use angle-bracket names, for
// example ":w<CR>", "<Esc>", "<C-r>" or "<Space>w".
package key
