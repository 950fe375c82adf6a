package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"maxgear/internal/ui/state"
)

const (
	contactPhone = "+38 (097) 013-43-31"
	contactEmail = "contact@maxgear.com.ua"
)

type navItem struct {
	key    string
	label  string
	screen state.Screen
}

var navItems = []navItem{
	{key: "1", label: "Home", screen: state.ScreenHome},
	{key: "2", label: "Catalog", screen: state.ScreenCatalog},
}

// renderHeader renders the logo and the navigation with the active screen highlighted
func (r *Renderer) renderHeader(active state.Screen) string {
	items := make([]string, 0, len(navItems))
	for _, item := range navItems {
		style := r.styles.NavItem
		if item.screen == active {
			style = r.styles.NavActive
		}
		items = append(items, style.Render(fmt.Sprintf("%s %s", item.key, item.label)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, r.styles.Logo.Render("MAXGEAR"), "   ", strings.Join(items, " "))
}

// renderHealth renders the catalog reachability indicator
func (r *Renderer) renderHealth(health state.Health, detail string) string {
	switch health {
	case state.HealthOnline:
		return r.styles.Online.Render("● catalog online")
	case state.HealthOffline:
		text := "● catalog offline"
		if detail != "" {
			text += ": " + detail
		}
		return r.styles.Offline.Render(text)
	default:
		return r.styles.Dim.Render("○ checking catalog…")
	}
}

// renderFooter renders the status line, the key help and the contact line
func (r *Renderer) renderFooter(vs ViewState, width int) string {
	health := r.renderHealth(vs.Health, vs.HealthDetail)
	status := health
	if vs.StatusMessage != "" {
		msg := r.styles.Status.Render(vs.StatusMessage)
		gap := width - lipgloss.Width(health) - lipgloss.Width(msg)
		if gap < 2 {
			gap = 2
		}
		status = health + strings.Repeat(" ", gap) + msg
	}

	contact := r.styles.Contact.Render(fmt.Sprintf("%s · %s · © %d Maxgear. All rights reserved.",
		contactPhone, contactEmail, vs.Year))

	lines := []string{status}
	if vs.KeyMap != nil {
		h := vs.HelpModel
		h.ShowAll = vs.ShowHelp
		lines = append(lines, h.View(vs.KeyMap))
	}
	lines = append(lines, contact)
	return strings.Join(lines, "\n")
}
