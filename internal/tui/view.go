package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/echotype/echotype/internal/model"
	"github.com/echotype/echotype/internal/session"
)

type styles struct {
	title    lipgloss.Style
	subtle   lipgloss.Style
	correct  lipgloss.Style
	wrong    lipgloss.Style
	cursor   lipgloss.Style
	selected lipgloss.Style
	notice   lipgloss.Style
	errText  lipgloss.Style
	footer   lipgloss.Style
}

func newStyles(darkMode bool) styles {
	if darkMode {
		return styles{
			title:    lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true),
			subtle:   lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C")),
			correct:  lipgloss.NewStyle().Foreground(lipgloss.Color("#73D13D")),
			wrong:    lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")),
			cursor:   lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")),
			selected: lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true),
			notice:   lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")),
			errText:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")),
			footer:   lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E")),
		}
	}
	return styles{
		title:    lipgloss.NewStyle().Foreground(lipgloss.Color("#1A1A1A")).Bold(true),
		subtle:   lipgloss.NewStyle().Foreground(lipgloss.Color("#767676")),
		correct:  lipgloss.NewStyle().Foreground(lipgloss.Color("#237804")),
		wrong:    lipgloss.NewStyle().Foreground(lipgloss.Color("#A8071A")),
		cursor:   lipgloss.NewStyle().Foreground(lipgloss.Color("#AD6800")),
		selected: lipgloss.NewStyle().Foreground(lipgloss.Color("#1A1A1A")).Bold(true),
		notice:   lipgloss.NewStyle().Foreground(lipgloss.Color("#AD6800")),
		errText:  lipgloss.NewStyle().Foreground(lipgloss.Color("#A8071A")),
		footer:   lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C")),
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	var body string
	switch m.page {
	case pageHome:
		body = m.viewHome()
	case pageCapture:
		body = m.viewCapture()
	case pageVerify:
		body = m.viewVerify()
	case pageSelect:
		body = m.viewSelect()
	case pageDictate:
		body = m.viewDictate()
	case pageResults:
		body = m.viewResults()
	}

	var extra []string
	if m.busy != "" {
		extra = append(extra, m.styles.subtle.Render(m.busy))
	}
	if m.errMsg != "" {
		extra = append(extra, m.styles.errText.Render(m.errMsg))
	}
	if m.notice != "" {
		extra = append(extra, m.styles.notice.Render(m.notice))
	}
	if len(extra) > 0 {
		body += "\n" + strings.Join(extra, "\n")
	}
	if m.width == 0 || m.height == 0 {
		return body
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

func (m *Model) viewHome() string {
	lines := []string{
		m.styles.title.Render("echotype"),
		"",
		"[c] capture a photo of text",
		"",
		m.styles.subtle.Render("stats: echotype stats · wrong words: echotype words"),
	}
	if m.user != nil {
		lines = append(lines, m.styles.subtle.Render("signed in as "+m.user.Name))
	} else {
		lines = append(lines, m.styles.subtle.Render("not signed in · echotype login"))
	}
	autoLabel := "off"
	if m.cfg.AutoPlay {
		autoLabel = "on"
	}
	lines = append(lines, "", m.styles.footer.Render("t theme · a autoplay ("+autoLabel+") · q quit"))
	return strings.Join(lines, "\n")
}

func (m *Model) viewCapture() string {
	input := m.pathInput.View()
	footer := "enter recognize · tab paste text · esc back"
	if m.pasteMode {
		input = m.textInput.View()
		footer = "enter extract · tab image file · esc back"
	}
	return strings.Join([]string{
		m.styles.title.Render("Capture"),
		"",
		input,
		"",
		m.styles.footer.Render(footer),
	}, "\n")
}

func (m *Model) viewVerify() string {
	list := *m.verifyList()
	lines := []string{
		m.styles.title.Render("Verify " + kindLabel(m.verifyKind)),
		"",
	}
	if len(list) == 0 {
		lines = append(lines, m.styles.subtle.Render("nothing recognized for this kind"))
	}
	for i, item := range list {
		label := item.Text
		if item.Meaning != "" {
			label += m.styles.subtle.Render("  " + item.Meaning)
		}
		if i == m.verifyCursor {
			if m.editing {
				label = m.editInput.View()
			}
			lines = append(lines, m.styles.cursor.Render("> ")+label)
		} else {
			lines = append(lines, "  "+label)
		}
	}
	lines = append(lines, "",
		m.styles.footer.Render("tab words/sentences · e edit · d delete · enter select items · esc back"))
	return strings.Join(lines, "\n")
}

func (m *Model) viewSelect() string {
	list := m.selectList()
	lines := []string{
		m.styles.title.Render(fmt.Sprintf("Select %s (%d/%d)",
			kindLabel(m.selectKind), m.sel.Count(m.selectKind), m.sel.Cap())),
		"",
	}
	if len(list) == 0 {
		lines = append(lines, m.styles.subtle.Render("nothing to select"))
	}
	for i, item := range list {
		mark := "[ ]"
		label := item.Text
		if m.sel.Selected(m.selectKind, i) {
			mark = "[x]"
			label = m.styles.selected.Render(label)
		}
		row := fmt.Sprintf("%s %s", mark, label)
		if i == m.selectCursor {
			row = m.styles.cursor.Render("> ") + row
		} else {
			row = "  " + row
		}
		lines = append(lines, row)
	}
	lines = append(lines, "",
		m.styles.footer.Render("space toggle · tab switch kind · enter start · esc back"))
	return strings.Join(lines, "\n")
}

func (m *Model) viewDictate() string {
	item := m.sess.CurrentItem()
	header := fmt.Sprintf("Item %d/%d", m.sess.Current()+1, len(m.sess.Items))

	status := "audio ready"
	if item.AudioURL == "" {
		status = "audio not yet generated"
	}
	if m.playing {
		status = "playing..."
	}
	if m.slowMode {
		status += " · slow"
	}

	lines := []string{
		m.styles.title.Render(header),
		m.styles.subtle.Render(status),
		"",
	}
	if m.sess.Revealed() {
		target := item.Text
		if m.width > 0 {
			target = wrapText(target, contentWidth(m.width))
		}
		lines = append(lines, m.styles.selected.Render(target))
		if item.Phonetic != "" {
			lines = append(lines, m.styles.subtle.Render(item.Phonetic))
		}
		if item.Meaning != "" {
			lines = append(lines, m.styles.subtle.Render(item.Meaning))
		}
		lines = append(lines, "")
	}
	lines = append(lines, m.answerInput.View(), "")
	switch m.feedback {
	case "correct":
		lines = append(lines, m.styles.correct.Render("✓ correct"))
	case "wrong":
		lines = append(lines, m.styles.wrong.Render("✗ wrong: "+item.Text))
	default:
		lines = append(lines, "")
	}
	lines = append(lines, "",
		m.styles.footer.Render("enter answer · ctrl+p play · ctrl+s slow · ctrl+r reveal · ←/→ navigate · esc home"))
	return strings.Join(lines, "\n")
}

func (m *Model) viewResults() string {
	lines := []string{
		m.styles.title.Render("Results"),
		"",
		fmt.Sprintf("Total: %d", m.summary.Total),
		m.styles.correct.Render(fmt.Sprintf("Correct: %d", m.summary.Correct)),
		m.styles.wrong.Render(fmt.Sprintf("Wrong: %d", m.summary.Incorrect)),
		fmt.Sprintf("Accuracy: %d%%", m.summary.Accuracy),
	}
	mistakes := m.sess.Mistakes()
	if len(mistakes) > 0 {
		lines = append(lines, "", m.styles.title.Render("Mistakes"))
		for i, item := range mistakes {
			answer := ""
			for j, r := range m.sess.Results {
				if m.sess.Items[j].ID == item.ID && r.IsCorrect != nil && !*r.IsCorrect {
					answer = r.UserAnswer
					break
				}
			}
			row := fmt.Sprintf("%d. %s", i+1, item.Text)
			if answer != "" && answer != session.NoAnswer {
				row += m.styles.subtle.Render("  you typed: " + answer)
			}
			lines = append(lines, row)
		}
	}
	lines = append(lines, "",
		m.styles.footer.Render("r retry · m retry mistakes · enter home · q quit"))
	return strings.Join(lines, "\n")
}

func kindLabel(kind model.ContentKind) string {
	if kind == model.KindSentence {
		return "sentences"
	}
	return "words"
}

func contentWidth(total int) int {
	w := int(float64(total) * 0.70)
	if w < 20 {
		w = 20
	}
	return w
}
