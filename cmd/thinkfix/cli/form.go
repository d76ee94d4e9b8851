package cli

import (
	"os"

	"github.com/charmbracelet/huh"
)

// NewAccessibleForm creates a huh form that switches to plain text prompts
// when the ACCESSIBLE environment variable is set. Screen readers handle
// the plain prompts much better than the TUI widgets.
func NewAccessibleForm(groups ...*huh.Group) *huh.Form {
	return huh.NewForm(groups...).WithAccessible(os.Getenv("ACCESSIBLE") != "")
}
