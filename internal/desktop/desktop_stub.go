//go:build !fyne

package desktop

import "context"

// Available reports whether this binary carries the desktop window.
const Available = false

// Run returns ErrNotBuilt.
func Run(context.Context, Options) error { return ErrNotBuilt }
