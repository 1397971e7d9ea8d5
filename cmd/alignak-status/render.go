// Alignak Watch - Monitoring Backend Synchronization Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alignak-watch

package main

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/tomtom215/alignak-watch/internal/api"
	"github.com/tomtom215/alignak-watch/internal/models"
)

// Palette colors.
const (
	colorText    = "#c0caf5"
	colorMuted   = "#565f89"
	colorAccent  = "#7aa2f7"
	colorSuccess = "#9ece6a"
	colorWarning = "#e0af68"
	colorDanger  = "#f7768e"
	colorBorder  = "#3b4261"
)

// styles contains the lipgloss styles of the report.
type styles struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Text    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Danger  lipgloss.Style
	Box     lipgloss.Style
}

func newStyles() styles {
	return styles{
		Title:   lipgloss.NewStyle().Foreground(lipgloss.Color(colorAccent)).Bold(true),
		Label:   lipgloss.NewStyle().Foreground(lipgloss.Color(colorMuted)).Width(14),
		Text:    lipgloss.NewStyle().Foreground(lipgloss.Color(colorText)),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color(colorMuted)),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color(colorSuccess)).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color(colorWarning)),
		Danger:  lipgloss.NewStyle().Foreground(lipgloss.Color(colorDanger)).Bold(true),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colorBorder)).
			Padding(0, 1),
	}
}

// stateStyle colors a host or service state.
func (s styles) stateStyle(state string) lipgloss.Style {
	switch state {
	case "UP", "OK":
		return s.Success
	case "WARNING", "UNREACHABLE":
		return s.Warning
	case "DOWN", "CRITICAL":
		return s.Danger
	default:
		return s.Muted
	}
}

// render formats the whole report. maxProblems caps each problem list.
func render(s styles, st *status, maxProblems int, now time.Time) string {
	sections := []string{
		renderHeader(s, st, now),
		lipgloss.JoinHorizontal(lipgloss.Top,
			renderHosts(s, st.Synthesis),
			" ",
			renderServices(s, st.Synthesis),
		),
		renderProblems(s, st.Problems.Hosts, st.Problems.Services, maxProblems),
		renderDaemons(s, st),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

func renderHeader(s styles, st *status, now time.Time) string {
	conn := s.Success.Render("connected")
	if !st.Health.Connected {
		conn = s.Danger.Render("disconnected")
	}
	line := fmt.Sprintf("%s  %s  %s",
		s.Title.Render("Alignak Watch"),
		conn,
		s.Muted.Render(fmt.Sprintf("%d pending action(s)", st.Health.PendingActions)),
	)

	if last, ok := st.Health.LastPolls[models.ResourceLiveSynthesis]; ok && !last.IsZero() {
		age := now.Sub(last).Truncate(time.Second)
		line += s.Muted.Render(fmt.Sprintf("  synthesis %s ago", age))
	}
	return line
}

func row(s styles, label string, value string) string {
	return s.Label.Render(label) + value
}

func countCell(s styles, style lipgloss.Style, n int, pct float64) string {
	text := fmt.Sprintf("%4d  %5.1f%%", n, pct)
	if n == 0 {
		return s.Muted.Render(text)
	}
	return style.Render(text)
}

func renderHosts(s styles, v api.SynthesisView) string {
	h, p := v.Counts.Hosts, v.Percentages.Hosts
	lines := []string{
		s.Title.Render(fmt.Sprintf("Hosts (%d)", h.Total)),
		row(s, "up", countCell(s, s.Success, h.Up, p["up"])),
		row(s, "down", countCell(s, s.Danger, h.Down, p["down"])),
		row(s, "unreachable", countCell(s, s.Warning, h.Unreachable, p["unreachable"])),
		row(s, "acknowledged", countCell(s, s.Text, h.Acknowledged, p["acknowledged"])),
		row(s, "downtimed", countCell(s, s.Text, h.Downtimed, p["downtimed"])),
	}
	return s.Box.Render(strings.Join(lines, "\n"))
}

func renderServices(s styles, v api.SynthesisView) string {
	c, p := v.Counts.Services, v.Percentages.Services
	lines := []string{
		s.Title.Render(fmt.Sprintf("Services (%d)", c.Total)),
		row(s, "ok", countCell(s, s.Success, c.Ok, p["ok"])),
		row(s, "warning", countCell(s, s.Warning, c.Warning, p["warning"])),
		row(s, "critical", countCell(s, s.Danger, c.Critical, p["critical"])),
		row(s, "unknown", countCell(s, s.Muted, c.Unknown, p["unknown"])),
		row(s, "unreachable", countCell(s, s.Warning, c.Unreachable, p["unreachable"])),
		row(s, "acknowledged", countCell(s, s.Text, c.Acknowledged, p["acknowledged"])),
		row(s, "downtimed", countCell(s, s.Text, c.Downtimed, p["downtimed"])),
	}
	return s.Box.Render(strings.Join(lines, "\n"))
}

func renderProblems(s styles, hosts, services []models.Item, limit int) string {
	total := len(hosts) + len(services)
	if total == 0 {
		return s.Success.Render("No unhandled problems")
	}

	lines := []string{s.Title.Render(fmt.Sprintf("Problems (%d)", total))}
	lines = append(lines, problemLines(s, hosts, limit)...)
	lines = append(lines, problemLines(s, services, limit)...)
	return s.Box.Render(strings.Join(lines, "\n"))
}

// problemLines renders one line per item, worst state first, then by name.
func problemLines(s styles, items []models.Item, limit int) []string {
	sorted := make([]models.Item, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		ri, rj := stateRank(sorted[i].String(models.FieldState)), stateRank(sorted[j].String(models.FieldState))
		if ri != rj {
			return ri > rj
		}
		return sorted[i].Name < sorted[j].Name
	})

	var lines []string
	for i, item := range sorted {
		if limit > 0 && i == limit {
			lines = append(lines, s.Muted.Render(fmt.Sprintf("... and %d more", len(sorted)-limit)))
			break
		}
		state := item.String(models.FieldState)
		lines = append(lines, fmt.Sprintf("%s %s %s",
			s.stateStyle(state).Width(12).Render(state),
			s.Text.Render(item.Name),
			s.Muted.Render(item.String("ls_output")),
		))
	}
	return lines
}

func stateRank(state string) int {
	switch state {
	case "DOWN", "CRITICAL":
		return 3
	case "UNREACHABLE", "WARNING":
		return 2
	case "UNKNOWN":
		return 1
	default:
		return 0
	}
}

func renderDaemons(s styles, st *status) string {
	d := st.Daemons
	if d.Total == 0 {
		return s.Muted.Render("Daemons: none reported")
	}
	line := fmt.Sprintf("Daemons: %d/%d alive", d.Alive, d.Total)
	if len(d.Dead) == 0 {
		return s.Success.Render(line)
	}
	return s.Danger.Render(line) + s.Muted.Render("  dead: "+strings.Join(d.Dead, ", "))
}
