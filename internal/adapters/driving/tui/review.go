// Package tui provides the interactive review screen for duplicate
// reconciliation.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tarteel-labs/qul-indexer/internal/core/domain"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	applyStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
)

// groupItem adapts one duplicate group to the list component.
type groupItem struct {
	group domain.DuplicateGroup
}

func (i groupItem) Title() string {
	return i.group.Name
}

func (i groupItem) Description() string {
	return fmt.Sprintf("keep %s, remove %d duplicates", i.group.Keep.ID, len(i.group.Remove))
}

func (i groupItem) FilterValue() string {
	return i.group.Name
}

// ReviewModel is the plan review screen. The user scrolls the
// duplicate groups and either confirms applying the plan or aborts.
type ReviewModel struct {
	report    *domain.ReconcileReport
	list      list.Model
	confirmed bool
	quitting  bool
}

// NewReviewModel creates a review screen for a reconcile plan.
func NewReviewModel(report *domain.ReconcileReport) ReviewModel {
	items := make([]list.Item, 0, len(report.Groups))
	for _, group := range report.Groups {
		items = append(items, groupItem{group: group})
	}

	l := list.New(items, list.NewDefaultDelegate(), 80, 20)
	l.Title = fmt.Sprintf("Duplicate groups (%d pending deletes)", report.PendingDeletes())
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = titleStyle

	return ReviewModel{report: report, list: l}
}

// Confirmed reports whether the user chose to apply the plan.
func (m ReviewModel) Confirmed() bool {
	return m.confirmed
}

// Init implements tea.Model.
func (m ReviewModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ReviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height-2)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "a", "enter":
			if m.report.PendingDeletes() > 0 {
				m.confirmed = true
			}
			m.quitting = true
			return m, tea.Quit

		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m ReviewModel) View() string {
	if m.quitting {
		if m.confirmed {
			return applyStyle.Render("Applying plan...") + "\n"
		}
		return footerStyle.Render("Aborted.") + "\n"
	}

	footer := footerStyle.Render("a/enter: apply   q/esc: abort")
	return m.list.View() + "\n" + footer
}
