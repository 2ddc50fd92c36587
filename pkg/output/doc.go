// Package output renders command results for humans and machines.
//
// Four formats are supported: auto (detected from the output stream),
// term (lipgloss styles from styles/styles.yaml and pterm tables), text
// (the same layout without styling) and json.
package output
