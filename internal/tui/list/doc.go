// Package list provides a scrolling option list for Bubble Tea models.
//
// It backs the type dropdown: a cursor over a fixed set of items, vim and
// arrow key navigation, and a window of at most Height rows kept centred on
// the cursor so long lists stay inside the terminal.
package list
