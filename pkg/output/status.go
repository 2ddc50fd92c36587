package output

import (
	"github.com/arthur-debert/frameseq/pkg/sequence"
	"github.com/arthur-debert/frameseq/pkg/types"
	"github.com/pterm/pterm"
)

// RenameStyle returns the pterm style for a rename status
func RenameStyle(status types.OperationStatus) *pterm.Style {
	switch status {
	case types.StatusApplied:
		return pterm.NewStyle(pterm.FgGreen)
	case types.StatusFailed:
		return pterm.NewStyle(pterm.FgRed, pterm.Bold)
	case types.StatusRolledBack:
		return pterm.NewStyle(pterm.FgYellow)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

// RefreshStyle returns the pterm style for a refresh outcome
func RefreshStyle(status sequence.RefreshStatus) *pterm.Style {
	switch status {
	case sequence.RefreshUpdated:
		return pterm.NewStyle(pterm.BgGreen, pterm.FgBlack)
	case sequence.RefreshFinished:
		return pterm.NewStyle(pterm.BgCyan, pterm.FgBlack)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}
