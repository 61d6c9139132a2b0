// Package core hosts the demo grids and drives their edit sessions.
//
// It is independent of any transport: the web handlers and the terminal
// client both drive the same [Service].
//
// # Grids
//
// Two grids are built from the demo dataset at startup:
//
//   - "basic" edits every column with the provided editors.
//   - "custom" swaps the integer and float columns to the numeric editors
//     and flashes changed cells.
//
// # Edit Flow
//
//  1. [Service.StartEdit] creates the column's editor and initializes it with
//     the cell value and the keystroke that opened it. A numeric editor
//     opened by a non-digit cancels before start and no session is created.
//  2. [Service.Attach] focuses the editor once the caller shows it.
//  3. [Service.Key] routes keystrokes to the editor.
//  4. [Service.Commit] reads the editor value, persists it to the
//     [store.Store] and writes it into the grid. [Service.Cancel] discards it.
//
// A cell holds at most one open session. Sessions left open are removed by
// [Service.StartSessionSweeper] after the configured TTL.
//
// # Persistence
//
// Committed values are appended to the store. On startup [NewService]
// replays them over the demo dataset; [Service.Reset] clears both.
package core
