package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/spektr-org/salesdesk/crm"
	"github.com/spektr-org/salesdesk/dashboard"
	"github.com/spektr-org/salesdesk/engine"
)

const visibleRows = 15

// metricKinds formats catalog metrics that are not plain counts.
var metricKinds = map[string]crm.Kind{
	"total_receivables": crm.KindMoney,
	"delivery_rate":     crm.KindPercent,
	"pipeline_value":    crm.KindMoney,
	"weighted_value":    crm.KindMoney,
	"quoted_value":      crm.KindMoney,
}

// View implements tea.Model.
func (m Model) View() string {
	var content string
	var bindings []key.Binding

	lm, ok := m.active()
	switch {
	case m.adding:
		content = m.renderAddModal()
	case m.page.Path == "/":
		content = m.renderOverview()
		bindings = m.keys.overviewHelp()
	case m.page.Path == "/enablement":
		content = renderEnablement()
		bindings = []key.Binding{m.keys.Page, m.keys.Quit}
	case ok && lm.detail:
		content = m.renderDetail(lm)
		bindings = m.keys.detailHelp()
	case ok:
		content = m.renderList(lm)
		bindings = m.keys.listHelp()
	}

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), lipgloss.NewStyle().Padding(1, 2).Render(content)))
	b.WriteString("\n")
	if t := m.renderToasts(); t != "" {
		b.WriteString(t + "\n")
	}
	if m.err != nil {
		b.WriteString(errorStyle.Render("Error: "+m.err.Error()) + "\n")
	}
	b.WriteString(m.help.ShortHelpView(bindings))
	return b.String()
}

func (m Model) renderSidebar() string {
	var rows []string
	rows = append(rows, titleStyle.Render("QUBE Sales"))
	for i, p := range dashboard.Pages {
		label := fmt.Sprintf("%d %s", i+1, p.Label)
		if p.Path == m.page.Path {
			rows = append(rows, navActive.Render(label))
		} else {
			rows = append(rows, navItem.Render(label))
		}
	}
	return sidebarStyle.Render(strings.Join(rows, "\n"))
}

// ============================================================================
// OVERVIEW
// ============================================================================

func (m Model) renderOverview() string {
	ov := m.data.Overview()

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Open Pipeline", engine.FormatINR(ov.OpenPipeline)),
		card("Win Rate", engine.FormatPercent(ov.WinRate, 1)),
		card("Active Accounts", engine.FormatInt(ov.ActiveAccounts)),
		card("Pending Proposals", engine.FormatInt(ov.PendingProposals)),
		card("Open Tasks", engine.FormatInt(ov.OpenTasks)),
	)

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.page.Title) + "\n")
	b.WriteString(cards + "\n\n")

	funnel := engine.BuildChart("Pipeline Funnel", "stage", crm.Funnel(crm.OpportunityAdapter.Bind(m.data.Opportunities)))
	b.WriteString(renderBars(funnel, crm.KindMoney) + "\n")

	b.WriteString(titleStyle.Render("Urgent Tasks") + "\n")
	urgent := m.data.UrgentTasks()
	if len(urgent) == 0 {
		b.WriteString(mutedStyle.Render("Nothing urgent.") + "\n")
	}
	for _, t := range urgent {
		fmt.Fprintf(&b, "• %s  %s\n", t.Title, mutedStyle.Render(t.Due))
	}

	b.WriteString("\n")
	if m.generating {
		b.WriteString(enabledStyle.Render("Generating report..."))
	} else {
		b.WriteString(mutedStyle.Render("[g] Generate Report   [a] Add Quick Interaction"))
	}
	return b.String()
}

func card(label, value string) string {
	return cardStyle.Render(cardLabel.Render(label) + "\n" + cardValue.Render(value))
}

// renderBars draws a horizontal bar per chart point, scaled to the largest.
func renderBars(c *engine.ChartConfig, kind crm.Kind) string {
	if c == nil {
		return mutedStyle.Render("No data.")
	}
	const width = 30
	top := c.MaxPoint()

	var b strings.Builder
	b.WriteString(titleStyle.Render(c.Title) + "\n")
	for _, p := range c.Series[0].Data {
		n := 0
		if top > 0 {
			n = int(p.Value / top * width)
		}
		fmt.Fprintf(&b, "%-18s %s %s (%d)\n", p.Label, barStyle.Render(strings.Repeat("█", n)+strings.Repeat("░", width-n)), formatNumber(p.Value, kind), p.Count)
	}
	return b.String()
}

func renderEnablement() string {
	var b strings.Builder
	section := ""
	b.WriteString(titleStyle.Render("Sales Enablement Hub") + "\n")
	for _, r := range crm.EnablementResources() {
		if r.Section != section {
			section = r.Section
			b.WriteString("\n" + cardLabel.Render(section) + "\n")
		}
		b.WriteString("• " + r.Title)
		if r.Subtitle != "" {
			b.WriteString("  " + mutedStyle.Render(r.Subtitle))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// ============================================================================
// LISTS
// ============================================================================

func (m Model) renderList(lm listModel) string {
	var b strings.Builder
	title := m.page.Title
	if m.inventory {
		title = "Screen Inventory"
	}
	b.WriteString(titleStyle.Render(title) + "\n")
	b.WriteString(renderMetrics(lm) + "\n\n")

	query := lm.state.Query
	if m.searching {
		b.WriteString(m.search.View() + "\n")
	} else if query != "" {
		b.WriteString(mutedStyle.Render("/ "+query) + "\n")
	}

	b.WriteString(renderFacets(lm))
	for _, f := range lm.list.Catalog.Floors {
		fmt.Fprintf(&b, "%s ≥ %s  %s\n", facetLabel.Render(f.Label), engine.FormatInt(int(lm.state.Floors[f.Key])), mutedStyle.Render("[<] [>]"))
	}
	if n := lm.state.AppliedFilters(); n > 0 {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("%d filters applied  [c] clear", n)) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(renderTable(lm))

	if dim, groups, ok := lm.list.Breakdown(lm.view()); ok {
		kind := crm.KindInt
		if lm.list.Name == dashboard.ListPipeline {
			kind = crm.KindMoney
		}
		b.WriteString("\n" + renderBars(engine.BuildChart("By "+engine.LabelForField(dim), dim, groups), kind))
	}

	switch lm.list.Name {
	case dashboard.ListScreens:
		fmt.Fprintf(&b, "\n%s %d screens, %s  %s\n", cardLabel.Render("Draft:"), len(m.draft.Screens), engine.FormatINR(m.draft.Total()), mutedStyle.Render("[+] add filtered  [tab] quotations"))
	case dashboard.ListQuotations:
		b.WriteString("\n" + mutedStyle.Render("[tab] screen inventory") + "\n")
	}
	return b.String()
}

func renderMetrics(lm listModel) string {
	if lm.result == nil {
		return ""
	}
	var parts []string
	for _, metric := range lm.list.Catalog.Metrics {
		parts = append(parts, metricPart(metric.Name, lm.result.Metrics[metric.Name]))
	}
	for _, metric := range lm.extra {
		parts = append(parts, metricPart(metric.Name, lm.result.Metrics[metric.Name]))
	}
	return strings.Join(parts, "   ")
}

func metricPart(name string, v float64) string {
	return cardLabel.Render(engine.LabelForField(name)+": ") + cardValue.Render(formatNumber(v, metricKinds[name]))
}

func renderFacets(lm listModel) string {
	var b strings.Builder
	for i, f := range lm.list.Catalog.Facets {
		focused := i == lm.facet%len(lm.list.Catalog.Facets)
		label := facetLabel.Render(f.Label)
		if focused {
			label = facetFocus.Render(f.Label)
		}
		b.WriteString(label)
		if f.Single && !lm.state.Facets.HasFilter(f.Key) {
			b.WriteString(chipOn.Render("All"))
		}
		for j, opt := range f.Options {
			style := chip
			if lm.state.IsSelected(f.Key, opt) {
				style = chipOn
			}
			if focused && j == lm.option {
				style = style.Inherit(chipFocus)
			}
			b.WriteString(style.Render(opt))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderTable(lm listModel) string {
	cols := lm.list.Catalog.Columns
	view := lm.view()
	focusedCol, _ := lm.focusedColumn()

	header := make([]string, len(cols))
	for i, c := range cols {
		h := c.Label
		if s := lm.state.Sort; s != nil && s.Field == c.Key {
			h += map[engine.Direction]string{engine.Ascending: " ▲", engine.Descending: " ▼"}[s.Direction]
		}
		if c.Sortable && c.Key == focusedCol.Key {
			h = "[" + h + "]"
		}
		header[i] = h
	}

	start := max(lm.cursor-visibleRows+1, 0)
	end := min(start+visibleRows, view.Len())

	rows := make([][]string, 0, end-start)
	for i := start; i < end; i++ {
		row := make([]string, len(cols))
		for j, c := range cols {
			row[j] = formatCell(view.Field(i, c.Key), c.Kind)
		}
		rows = append(rows, row)
	}

	widths := make([]int, len(cols))
	for i, h := range header {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, c := range row {
			widths[i] = max(widths[i], lipgloss.Width(c))
		}
	}

	var b strings.Builder
	for i, h := range header {
		b.WriteString(headerCell.Width(widths[i] + 2).Render(h))
	}
	b.WriteString("\n")

	if len(rows) == 0 {
		b.WriteString(mutedStyle.Render("No records match the current filters.") + "\n")
	}
	for r, row := range rows {
		var line strings.Builder
		for i, c := range row {
			style := cell.Width(widths[i] + 2)
			if cols[i].Kind != crm.KindText {
				style = style.Align(lipgloss.Right)
			}
			line.WriteString(style.Render(c))
		}
		text := line.String()
		if lm.list.Name == dashboard.ListTasks && view.Dimension(start+r, "completed") == "true" {
			text = doneStyle.Render(text)
		}
		if start+r == lm.cursor {
			text = cursorRow.Render(text)
		}
		b.WriteString(text + "\n")
	}
	fmt.Fprintf(&b, "%s\n", mutedStyle.Render(fmt.Sprintf("%d of %d", view.Len(), lm.result.Total)))
	return b.String()
}

// ============================================================================
// DETAIL
// ============================================================================

func (m Model) renderDetail(lm listModel) string {
	view := lm.view()
	i := engine.IndexOf(view, lm.state.Selected)

	var b strings.Builder
	if i < 0 {
		b.WriteString(mutedStyle.Render("The selected record is no longer in view.") + "\n")
	} else {
		b.WriteString(titleStyle.Render(formatCell(view.Field(i, lm.list.Catalog.Columns[0].Key), crm.KindText)) + "\n")
		for _, c := range lm.list.Catalog.Columns[1:] {
			fmt.Fprintf(&b, "%s %s\n", facetLabel.Render(c.Label), formatCell(view.Field(i, c.Key), c.Kind))
		}
		if lm.list.Name == dashboard.ListAccounts {
			b.WriteString(m.renderAccountExtras(lm.state.Selected))
		}
	}

	prev := disabledStyle.Render("◀ Previous")
	if engine.HasNeighbor(view, lm.state.Selected, engine.Previous) {
		prev = enabledStyle.Render("◀ Previous")
	}
	next := disabledStyle.Render("Next ▶")
	if engine.HasNeighbor(view, lm.state.Selected, engine.Next) {
		next = enabledStyle.Render("Next ▶")
	}
	fmt.Fprintf(&b, "\n%s   %s   %s\n", prev, mutedStyle.Render(fmt.Sprintf("%d / %d", i+1, view.Len())), next)
	return b.String()
}

func (m Model) renderAccountExtras(id string) string {
	var acc *crm.Account
	for i := range m.data.Accounts {
		if m.data.Accounts[i].ID == id {
			acc = &m.data.Accounts[i]
			break
		}
	}
	if acc == nil {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", facetLabel.Render("Legal Name"), acc.LegalName)
	fmt.Fprintf(&b, "%s %s\n", facetLabel.Render("Credit Used"), engine.FormatPercent(acc.CreditUtilization(), 1))
	if acc.OnHold {
		b.WriteString(errorStyle.Render("Credit hold: shipments blocked") + "\n")
	}
	b.WriteString("\n" + cardLabel.Render("Contacts") + "\n")
	for _, c := range acc.Contacts {
		fmt.Fprintf(&b, "• %s, %s  %s\n", c.Name, c.Role, mutedStyle.Render(c.Email))
	}
	b.WriteString("\n" + cardLabel.Render("Activity") + "\n")
	for _, a := range acc.Activities {
		fmt.Fprintf(&b, "• %s  %s  %s\n", a.Date, a.Type, a.Description)
	}
	return b.String()
}

// ============================================================================
// OVERLAYS
// ============================================================================

func (m Model) renderAddModal() string {
	return modalStyle.Render(m.add.view())
}

func (m Model) renderToasts() string {
	var out []string
	for _, t := range m.toasts {
		style := toastInfo
		switch t.Kind {
		case dashboard.ToastSuccess:
			style = toastSuccess
		case dashboard.ToastError:
			style = toastError
		}
		out = append(out, style.Render(t.Message))
	}
	return strings.Join(out, "\n")
}

// ============================================================================
// FORMATTING
// ============================================================================

func formatCell(v engine.Value, kind crm.Kind) string {
	switch v.Kind {
	case engine.KindAbsent:
		return "-"
	case engine.KindString:
		return v.Str
	}
	return formatNumber(v.Num, kind)
}

func formatNumber(v float64, kind crm.Kind) string {
	switch kind {
	case crm.KindMoney:
		return engine.FormatINR(v)
	case crm.KindPercent:
		return engine.FormatPercent(v, 1)
	}
	if v == float64(int(v)) {
		return engine.FormatInt(int(v))
	}
	return fmt.Sprintf("%.2f", v)
}
