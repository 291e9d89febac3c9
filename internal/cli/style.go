package cli

import "github.com/fatih/color"

func ok() string {
	return color.New(color.FgGreen).Sprint("✓")
}

func bad() string {
	return color.New(color.FgRed).Sprint("✗")
}

// statusLabel colours a status value by how it reads to an operator.
func statusLabel(status string) string {
	switch status {
	case "approved", "hired", "sent", "open":
		return color.New(color.FgGreen).Sprint(status)
	case "rejected", "failed", "closed":
		return color.New(color.FgRed).Sprint(status)
	case "pending", "recommended":
		return color.New(color.FgYellow).Sprint(status)
	default:
		return status
	}
}
