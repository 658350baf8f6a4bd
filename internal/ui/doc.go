// Package ui renders the terminal banner zy prints at startup.
//
// The banner is a rounded lipgloss box listing the served root, every
// listen URL and the serving flags:
//
//	╭──────────────────────────────────────╮
//	│ zy v1.2.0 (3f2a9c1)                  │
//	│                                      │
//	│ Root      /srv/site                  │
//	│ Listen    http://127.0.0.1:3000      │
//	│ SPA       on                         │
//	╰──────────────────────────────────────╯
//
// Callers print it only when stdout is a terminal (IsTerminal); logs stay
// the only output otherwise.
package ui
