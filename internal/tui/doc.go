// Package tui implements the interactive deck: a Bubble Tea model that holds
// the type selection and the current batch, and the views that render it.
package tui
