package tui

import (
	"testing"

	catppuccin "github.com/catppuccin/go"
)

func TestFlavorFromName(t *testing.T) {
	tests := []struct {
		name string
		want catppuccin.Flavor
	}{
		{"latte", catppuccin.Latte},
		{"frappe", catppuccin.Frappe},
		{"macchiato", catppuccin.Macchiato},
		{"mocha", catppuccin.Mocha},
		{"", catppuccin.Mocha},
		{"solarized", catppuccin.Mocha},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := flavorFromName(tt.name)
			if got.Name() != tt.want.Name() {
				t.Errorf("flavorFromName(%q) = %s, want %s", tt.name, got.Name(), tt.want.Name())
			}
		})
	}
}

func TestStyles_AllFlavors(t *testing.T) {
	for _, flavor := range []string{"latte", "frappe", "macchiato", "mocha"} {
		t.Run(flavor, func(t *testing.T) {
			styles := NewStyles(flavor)

			if !styles.TitleStyle().GetBold() {
				t.Error("TitleStyle should be bold")
			}
			if !styles.SelectedStyle().GetBold() {
				t.Error("SelectedStyle should be bold")
			}
			if styles.SuccessStyle().Render("ok") == "" {
				t.Error("SuccessStyle should render content")
			}
			if !styles.TableStyles().Selected.GetBold() {
				t.Error("selected table row should be bold")
			}
		})
	}
}
