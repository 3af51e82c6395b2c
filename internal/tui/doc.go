// Package tui provides terminal user interface components for openwrt-builder.
//
// This package uses the Bubble Tea framework for the interactive template
// picker behind `openwrt-builder init`.
//
// # Template Picker
//
// The picker lists the templates under the templates root, lets the user
// select any number of them and then asks for the image name:
//
//	result, err := tui.RunPicker(tmpls)
//	switch result.Action {
//	case tui.ActionCreate:
//	    // result.Templates in selection order, result.Name validated
//	case tui.ActionQuit:
//	    // Exit
//	}
//
// # Picker Features
//
//   - Keyboard navigation (j/k or arrows) and filtering (/)
//   - Space toggles a template; selection order becomes the include order
//   - Enter moves to the name step, prefilled from the selected templates
//   - Esc in the name step goes back to the template list
//
// When stdout is not a terminal, SimplePicker renders a plain listing instead.
//
// # Dependencies
//
// Uses the Charm libraries:
//   - github.com/charmbracelet/bubbletea - TUI framework
//   - github.com/charmbracelet/bubbles - UI components
//   - github.com/charmbracelet/lipgloss - Styling
package tui
