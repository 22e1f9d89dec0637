package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var avatarColors = []string{"39", "63", "42", "214", "204", "135", "37", "212"}

// Initials reduces a display name to its one- or two-letter avatar.
func Initials(name string) string {
	if name == "" {
		return ""
	}
	parts := strings.Fields(name)
	if len(parts) > 1 {
		return strings.ToUpper(string([]rune(parts[0])[0]) + string([]rune(parts[len(parts)-1])[0]))
	}
	runes := []rune(name)
	if len(runes) < 2 {
		return strings.ToUpper(string(runes))
	}
	return strings.ToUpper(string(runes[:2]))
}

// AvatarStyle picks a stable color per name so the picker stays
// consistent between fetches.
func AvatarStyle(name string) lipgloss.Style {
	sum := 0
	for _, r := range name {
		sum += int(r)
	}
	color := avatarColors[sum%len(avatarColors)]
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(color))
}
