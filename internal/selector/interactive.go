package selector

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/convkit/convkit/internal/config"
	"github.com/convkit/convkit/internal/registry"
	"github.com/convkit/convkit/internal/ui"
)

// Feature option values used by the interactive feature multiselect.
const (
	featLearningCapture   = "learning_capture"
	featContextCanary     = "context_canary"
	featDomainComposition = "domain_composition"
)

// interactive prompts the operator with a sequence of terminal forms.
type interactive struct {
	theme    *ui.Theme
	defaults HeadlessOptions
}

// NewInteractive creates a Selector that renders terminal selection forms.
// The defaults seed the initial state of each form; flag-supplied values
// still take precedence over prompt answers at the CLI layer.
func NewInteractive(theme *ui.Theme, defaults HeadlessOptions) Selector {
	if theme == nil {
		theme = ui.DefaultTheme()
	}
	return &interactive{theme: theme, defaults: defaults}
}

// Select runs the selection forms and blocks until the operator confirms.
// Each question runs as its own independent huh.Form, matching the
// sequential one-question-per-form flow of the rest of the CLI.
func (s *interactive) Select(reg *registry.Registry) (*Result, error) {
	if len(reg.Domains) == 0 {
		return nil, registry.ErrEmptyRegistry
	}

	result := &Result{
		ProjectName: s.defaults.ProjectName,
		AuthorName:  s.defaults.AuthorName,
		AuthorEmail: s.defaults.AuthorEmail,
	}
	theme := newSelectorTheme(s.theme)

	if result.ProjectName == "" {
		result.ProjectName = config.DefaultProjectName
	}
	if result.AuthorName == "" {
		result.AuthorName = config.DefaultAuthorName
	}

	steps := []huh.Field{
		huh.NewInput().
			Title("Project name").
			Description("Name of your conventions project").
			Placeholder(result.ProjectName).
			Validate(requireValue("project name is required")).
			Value(&result.ProjectName),

		huh.NewInput().
			Title("Author").
			Description("Shown in the generated configuration record").
			Placeholder(result.AuthorName).
			Value(&result.AuthorName),

		s.domainField(reg, &result.Selection.Domains),
		s.providerField(reg, &result.Selection.Providers),
		s.featureField(&result.Selection.Features),
		s.formatField(&result.Format),
	}

	for _, field := range steps {
		form := huh.NewForm(huh.NewGroup(field)).
			WithTheme(theme).
			WithAccessible(false)

		if err := form.Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil, ErrCancelled
			}
			return nil, fmt.Errorf("selection form: %w", err)
		}
	}

	// Deselecting every domain falls back to the registry defaults
	// rather than producing an empty build.
	if len(result.Selection.Domains) == 0 {
		fallback := reg.DefaultDomains()
		if len(fallback) == 0 {
			fallback = reg.DomainNames()
		}
		result.Selection.Domains = fallback
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("no domains selected; using defaults: %s", strings.Join(fallback, ", ")))
	}
	if result.Selection.Providers == nil {
		result.Selection.Providers = []string{}
	}
	if result.Format == "" {
		result.Format = config.FormatYAML
	}

	return result, nil
}

// domainField builds the domain multiselect with defaults pre-checked.
func (s *interactive) domainField(reg *registry.Registry, value *[]string) huh.Field {
	opts := make([]huh.Option[string], len(reg.Domains))
	for i, d := range reg.Domains {
		label := d.Name
		if d.Description != "" {
			label = d.Name + " - " + d.Description
		}
		opts[i] = huh.NewOption(label, d.Name).Selected(d.Default)
	}

	return huh.NewMultiSelect[string]().
		Title("Convention domains").
		Description("Choose which convention domains to include").
		Options(opts...).
		Value(value)
}

// providerField builds the provider multiselect. Nothing is pre-checked;
// an empty provider set is a valid choice.
func (s *interactive) providerField(reg *registry.Registry, value *[]string) huh.Field {
	opts := make([]huh.Option[string], len(reg.Providers))
	for i, p := range reg.Providers {
		label := p.Name
		if p.Description != "" {
			label = p.Name + " - " + p.Description
		}
		opts[i] = huh.NewOption(label, p.Name)
	}

	return huh.NewMultiSelect[string]().
		Title("AI tool providers").
		Description("Choose which AI tools to wire up (none is fine)").
		Options(opts...).
		Value(value)
}

// featureField builds the feature multiselect, writing the chosen values
// back into the Features toggles.
func (s *interactive) featureField(features *config.Features) huh.Field {
	selected := []string{}
	def := s.defaults.Features
	if def == (config.Features{}) {
		def = config.DefaultFeatures()
	}

	opts := []huh.Option[string]{
		huh.NewOption("Learning capture - capture corrections as you work", featLearningCapture).
			Selected(def.LearningCapture),
		huh.NewOption("Context canary - verify conventions are loaded", featContextCanary).
			Selected(def.ContextCanary),
		huh.NewOption("Domain composition - inheritance between domains", featDomainComposition).
			Selected(def.DomainComposition),
	}

	ms := huh.NewMultiSelect[string]().
		Title("Features").
		Description("Optional features for the generated project").
		Options(opts...).
		Value(&selected)

	return ms.Validate(func(vals []string) error {
		*features = config.Features{}
		for _, v := range vals {
			switch v {
			case featLearningCapture:
				features.LearningCapture = true
			case featContextCanary:
				features.ContextCanary = true
			case featDomainComposition:
				features.DomainComposition = true
			}
		}
		return nil
	})
}

// formatField builds the configuration record format select.
func (s *interactive) formatField(value *config.Format) huh.Field {
	return huh.NewSelect[config.Format]().
		Title("Configuration format").
		Description("Format of the generated configuration record").
		Options(
			huh.NewOption("YAML", config.FormatYAML),
			huh.NewOption("TOML", config.FormatTOML),
			huh.NewOption("JSON", config.FormatJSON),
		).
		Value(value)
}

// requireValue validates that a trimmed input is not empty.
func requireValue(msg string) func(string) error {
	return func(val string) error {
		if strings.TrimSpace(val) == "" {
			return errors.New(msg)
		}
		return nil
	}
}

// newSelectorTheme maps the convkit palette onto a huh theme.
func newSelectorTheme(t *ui.Theme) *huh.Theme {
	th := huh.ThemeBase()

	primary := lipgloss.AdaptiveColor{Light: "#C45A3C", Dark: t.Colors.Primary}
	secondary := lipgloss.AdaptiveColor{Light: "#5B21B6", Dark: t.Colors.Secondary}
	green := lipgloss.AdaptiveColor{Light: "#059669", Dark: t.Colors.Success}
	red := lipgloss.AdaptiveColor{Light: "#DC2626", Dark: t.Colors.Error}
	muted := lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: t.Colors.Muted}

	th.Focused.Title = th.Focused.Title.Foreground(primary).Bold(true)
	th.Focused.Description = th.Focused.Description.Foreground(muted)
	th.Focused.ErrorIndicator = th.Focused.ErrorIndicator.Foreground(red)
	th.Focused.ErrorMessage = th.Focused.ErrorMessage.Foreground(red)
	th.Focused.SelectSelector = th.Focused.SelectSelector.Foreground(primary).SetString("▸ ")
	th.Focused.MultiSelectSelector = th.Focused.MultiSelectSelector.Foreground(primary)
	th.Focused.SelectedOption = th.Focused.SelectedOption.Foreground(green)
	th.Focused.SelectedPrefix = lipgloss.NewStyle().Foreground(green).SetString("◆ ")
	th.Focused.UnselectedPrefix = lipgloss.NewStyle().Foreground(muted).SetString("◇ ")
	th.Focused.TextInput.Cursor = th.Focused.TextInput.Cursor.Foreground(primary)
	th.Focused.TextInput.Placeholder = th.Focused.TextInput.Placeholder.Foreground(muted)
	th.Focused.TextInput.Prompt = th.Focused.TextInput.Prompt.Foreground(secondary)

	th.Blurred = th.Focused
	th.Blurred.Base = th.Focused.Base.BorderStyle(lipgloss.HiddenBorder())

	return th
}
