package tui

import (
	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

type Styles struct {
	flavor catppuccin.Flavor
}

func NewStyles(themeName string) *Styles {
	flavor := flavorFromName(themeName)
	return &Styles{flavor: flavor}
}

func flavorFromName(name string) catppuccin.Flavor {
	switch name {
	case "latte":
		return catppuccin.Latte
	case "frappe":
		return catppuccin.Frappe
	case "macchiato":
		return catppuccin.Macchiato
	case "mocha":
		return catppuccin.Mocha
	default:
		return catppuccin.Mocha
	}
}

func (s *Styles) color(c catppuccin.Color) lipgloss.Color {
	return lipgloss.Color(c.Hex)
}

func (s *Styles) TitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(s.color(s.flavor.Mauve()))
}

func (s *Styles) HelpStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(s.color(s.flavor.Overlay0()))
}

func (s *Styles) BoxStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.color(s.flavor.Surface1())).
		Padding(1, 2)
}

func (s *Styles) InputBoxStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.color(s.flavor.Surface1())).
		Padding(0, 1)
}

func (s *Styles) InfoStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(s.color(s.flavor.Text()))
}

func (s *Styles) AccentStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(s.color(s.flavor.Teal()))
}

// SelectedStyle highlights the current row in menus and the picker.
func (s *Styles) SelectedStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(s.color(s.flavor.Yellow()))
}

func (s *Styles) PathStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(s.color(s.flavor.Overlay1()))
}

func (s *Styles) TagStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(s.color(s.flavor.Pink()))
}

func (s *Styles) MessageStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(s.color(s.flavor.Yellow()))
}

func (s *Styles) SuccessStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(s.color(s.flavor.Green()))
}

func (s *Styles) ErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(s.color(s.flavor.Red())).
		Bold(true)
}

// TableStyles themes the List mode project table.
func (s *Styles) TableStyles() table.Styles {
	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(s.color(s.flavor.Surface1())).
		BorderBottom(true).
		Bold(true).
		Foreground(s.color(s.flavor.Teal()))
	ts.Cell = ts.Cell.Foreground(s.color(s.flavor.Text()))
	ts.Selected = ts.Selected.
		Foreground(s.color(s.flavor.Base())).
		Background(s.color(s.flavor.Mauve())).
		Bold(true)
	return ts
}
