// Package ui is the terminal front end of the page editor, built on
// Bubble Tea.
//
// Core abstractions:
//   - View: a screen region with its own model, update and view (Elm-style)
//   - EditorView: renders the page, routes pointer presses and editing keys
//   - FocusManager: rotates cell focus in document order
//   - OverlayStack: modal views above the editor (topmost receives input)
//   - Keymap: leader sequences and editor keys, gated by mode and options
//   - KeyHandler: resolves SPC leader sequences against a Keymap
package ui
