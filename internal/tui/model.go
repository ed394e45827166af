package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/echotype/echotype/internal/api"
	"github.com/echotype/echotype/internal/audio"
	"github.com/echotype/echotype/internal/model"
	"github.com/echotype/echotype/internal/session"
	"github.com/echotype/echotype/internal/stats"
	"github.com/echotype/echotype/internal/store"
	"github.com/echotype/echotype/internal/wrongbook"
)

type page int

const (
	pageHome page = iota
	pageCapture
	pageVerify
	pageSelect
	pageDictate
	pageResults
)

// Config defines dictation flow settings.
type Config struct {
	AutoPlay         bool
	AutoAdvanceMs    int
	FeedbackMs       int
	AnonymousCap     int
	AuthenticatedCap int
	DarkMode         bool
}

// Model implements the Bubble Tea dictation UI. It owns all mutable
// client state; views are pure projections of it.
type Model struct {
	cfg     Config
	client  *api.Client
	manager *audio.Manager
	player  *audio.Player
	st      *store.Store
	user    *model.User

	styles styles
	width  int
	height int

	page   page
	busy   string
	errMsg string
	notice string

	// Every asynchronous request is tagged with the generation current at
	// launch; responses from superseded requests are dropped. Playback has
	// its own counter so replaying audio cannot invalidate a pending
	// feedback or advance tick.
	gen     int
	playGen int

	pathInput textinput.Model
	textInput textinput.Model
	pasteMode bool

	text      string
	words     []model.ContentItem
	sentences []model.ContentItem

	verifyKind   model.ContentKind
	verifyCursor int
	editing      bool
	editInput    textinput.Model

	sel          *session.Selection
	selectKind   model.ContentKind
	selectCursor int

	sess        *session.Session
	answerInput textinput.Model
	feedback    string
	slowMode    bool
	playing     bool

	summary model.SessionSummary
}

type ocrDoneMsg struct {
	gen    int
	result api.OCRResult
	err    error
}

type extractDoneMsg struct {
	gen       int
	text      string
	extracted api.Extracted
	err       error
}

type prepareDoneMsg struct {
	gen   int
	items []model.QuizItem
	err   error
}

type playDoneMsg struct {
	gen int
	err error
}

type autoAdvanceMsg struct{ gen int }

type feedbackDoneMsg struct{ gen int }

type persistDoneMsg struct{ err error }

// NewModel constructs the dictation TUI model.
func NewModel(cfg Config, client *api.Client, manager *audio.Manager, player *audio.Player, st *store.Store, user *model.User) *Model {
	pathInput := textinput.New()
	pathInput.Placeholder = "path to image file"
	pathInput.CharLimit = 512

	textInput := textinput.New()
	textInput.Placeholder = "paste text to extract"
	textInput.CharLimit = 4096

	editInput := textinput.New()
	editInput.CharLimit = 512

	answerInput := textinput.New()
	answerInput.Placeholder = "type what you hear"
	answerInput.CharLimit = 512

	limit := cfg.AnonymousCap
	if user != nil {
		limit = cfg.AuthenticatedCap
	}

	return &Model{
		cfg:         cfg,
		client:      client,
		manager:     manager,
		player:      player,
		st:          st,
		user:        user,
		styles:      newStyles(cfg.DarkMode),
		pathInput:   pathInput,
		textInput:   textInput,
		editInput:   editInput,
		answerInput: answerInput,
		verifyKind:  model.KindWord,
		selectKind:  model.KindWord,
		sel:         session.NewSelection(limit),
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.player.Stop()
			return m, tea.Quit
		}
		return m.updateKey(msg)
	case ocrDoneMsg:
		return m.onOCRDone(msg)
	case extractDoneMsg:
		return m.onExtractDone(msg)
	case prepareDoneMsg:
		return m.onPrepareDone(msg)
	case playDoneMsg:
		return m.onPlayDone(msg)
	case autoAdvanceMsg:
		return m.onAutoAdvance(msg)
	case feedbackDoneMsg:
		return m.onFeedbackDone(msg)
	case persistDoneMsg:
		if msg.err != nil {
			m.notice = fmt.Sprintf("save failed: %v", msg.err)
		}
		return m, nil
	default:
		return m, nil
	}
}

func (m *Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.page {
	case pageHome:
		return m.updateHome(msg)
	case pageCapture:
		return m.updateCapture(msg)
	case pageVerify:
		return m.updateVerify(msg)
	case pageSelect:
		return m.updateSelect(msg)
	case pageDictate:
		return m.updateDictate(msg)
	case pageResults:
		return m.updateResults(msg)
	default:
		return m, nil
	}
}

func (m *Model) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "c", "enter":
		m.page = pageCapture
		m.errMsg = ""
		m.pathInput.Focus()
		return m, textinput.Blink
	case "t":
		m.cfg.DarkMode = !m.cfg.DarkMode
		m.styles = newStyles(m.cfg.DarkMode)
		return m, m.saveSettingsCmd()
	case "a":
		m.cfg.AutoPlay = !m.cfg.AutoPlay
		return m, m.saveSettingsCmd()
	}
	return m, nil
}

// saveSettingsCmd persists the toggles changed from inside the TUI without
// clobbering fields owned by the CLI layer.
func (m *Model) saveSettingsCmd() tea.Cmd {
	dark := m.cfg.DarkMode
	auto := m.cfg.AutoPlay
	return func() tea.Msg {
		ctx := context.Background()
		settings, _, err := m.st.LoadSettings(ctx)
		if err != nil {
			return persistDoneMsg{err: err}
		}
		settings.DarkMode = dark
		settings.AutoPlay = auto
		return persistDoneMsg{err: m.st.SaveSettings(ctx, settings)}
	}
}

func (m *Model) updateCapture(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.page = pageHome
		m.pathInput.Blur()
		m.textInput.Blur()
		return m, nil
	case tea.KeyTab:
		m.pasteMode = !m.pasteMode
		m.errMsg = ""
		if m.pasteMode {
			m.pathInput.Blur()
			m.textInput.Focus()
		} else {
			m.textInput.Blur()
			m.pathInput.Focus()
		}
		return m, textinput.Blink
	case tea.KeyEnter:
		if m.busy != "" {
			return m, nil
		}
		if m.pasteMode {
			text := strings.TrimSpace(m.textInput.Value())
			if text == "" {
				m.errMsg = "paste some text"
				return m, nil
			}
			m.errMsg = ""
			m.busy = "Extracting content..."
			m.gen++
			return m, m.extractCmd(m.gen, text)
		}
		path := strings.TrimSpace(m.pathInput.Value())
		if path == "" {
			m.errMsg = "enter an image path"
			return m, nil
		}
		m.errMsg = ""
		m.busy = "Recognizing text..."
		m.gen++
		return m, m.ocrCmd(m.gen, path)
	}
	var cmd tea.Cmd
	if m.pasteMode {
		m.textInput, cmd = m.textInput.Update(msg)
	} else {
		m.pathInput, cmd = m.pathInput.Update(msg)
	}
	return m, cmd
}

func (m *Model) ocrCmd(gen int, path string) tea.Cmd {
	return func() tea.Msg {
		dataURL, err := api.EncodeImageFile(path)
		if err != nil {
			return ocrDoneMsg{gen: gen, err: err}
		}
		result, err := m.client.OCR(context.Background(), dataURL)
		return ocrDoneMsg{gen: gen, result: result, err: err}
	}
}

func (m *Model) extractCmd(gen int, text string) tea.Cmd {
	return func() tea.Msg {
		extracted, err := m.client.Extract(context.Background(), text, "both")
		return extractDoneMsg{gen: gen, text: text, extracted: extracted, err: err}
	}
}

func (m *Model) onOCRDone(msg ocrDoneMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.gen {
		return m, nil
	}
	m.busy = ""
	if msg.err != nil {
		// Prior content, if any, is left untouched.
		m.errMsg = msg.err.Error()
		return m, nil
	}
	m.setContent(msg.result.Text, msg.result.Extracted)
	return m, nil
}

func (m *Model) onExtractDone(msg extractDoneMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.gen {
		return m, nil
	}
	m.busy = ""
	if msg.err != nil {
		m.errMsg = msg.err.Error()
		return m, nil
	}
	m.setContent(msg.text, msg.extracted)
	return m, nil
}

// setContent replaces the working content and moves to the verify page.
func (m *Model) setContent(text string, extracted api.Extracted) {
	m.text = text
	m.words = extracted.Words
	m.sentences = extracted.Sentences
	m.sel.Clear(model.KindWord)
	m.sel.Clear(model.KindSentence)
	m.verifyKind = model.KindWord
	m.verifyCursor = 0
	m.page = pageVerify
	m.pathInput.Blur()
	m.textInput.Blur()
}

func (m *Model) verifyList() *[]model.ContentItem {
	if m.verifyKind == model.KindSentence {
		return &m.sentences
	}
	return &m.words
}

func (m *Model) updateVerify(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	list := m.verifyList()
	if m.editing {
		switch msg.Type {
		case tea.KeyEsc:
			m.editing = false
			m.editInput.Blur()
			return m, nil
		case tea.KeyEnter:
			text := strings.TrimSpace(m.editInput.Value())
			if text != "" && m.verifyCursor < len(*list) {
				(*list)[m.verifyCursor].Text = text
			}
			m.editing = false
			m.editInput.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.editInput, cmd = m.editInput.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "esc":
		m.page = pageCapture
		m.pathInput.Focus()
		return m, textinput.Blink
	case "tab":
		m.toggleVerifyKind()
		return m, nil
	case "up", "k":
		if m.verifyCursor > 0 {
			m.verifyCursor--
		}
		return m, nil
	case "down", "j":
		if m.verifyCursor < len(*list)-1 {
			m.verifyCursor++
		}
		return m, nil
	case "e":
		if m.verifyCursor < len(*list) {
			m.editing = true
			m.editInput.SetValue((*list)[m.verifyCursor].Text)
			m.editInput.Focus()
			return m, textinput.Blink
		}
		return m, nil
	case "d":
		if m.verifyCursor < len(*list) {
			*list = append((*list)[:m.verifyCursor], (*list)[m.verifyCursor+1:]...)
			if m.verifyCursor >= len(*list) && m.verifyCursor > 0 {
				m.verifyCursor--
			}
			// Indices shifted; stale selections would point at wrong items.
			m.sel.Clear(m.verifyKind)
		}
		return m, nil
	case "enter", "n":
		m.page = pageSelect
		m.selectKind = m.verifyKind
		m.selectCursor = 0
		m.notice = ""
		return m, nil
	}
	return m, nil
}

func (m *Model) toggleVerifyKind() {
	if m.verifyKind == model.KindWord {
		m.verifyKind = model.KindSentence
	} else {
		m.verifyKind = model.KindWord
	}
	m.verifyCursor = 0
}

func (m *Model) selectList() []model.ContentItem {
	if m.selectKind == model.KindSentence {
		return m.sentences
	}
	return m.words
}

func (m *Model) updateSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	list := m.selectList()
	switch msg.String() {
	case "esc":
		m.page = pageVerify
		return m, nil
	case "tab":
		if m.selectKind == model.KindWord {
			m.selectKind = model.KindSentence
		} else {
			m.selectKind = model.KindWord
		}
		m.selectCursor = 0
		m.notice = ""
		return m, nil
	case "up", "k":
		if m.selectCursor > 0 {
			m.selectCursor--
		}
		return m, nil
	case "down", "j":
		if m.selectCursor < len(list)-1 {
			m.selectCursor++
		}
		return m, nil
	case " ":
		if m.selectCursor < len(list) {
			if err := m.sel.Toggle(m.selectKind, m.selectCursor); err != nil {
				m.notice = err.Error()
			} else {
				m.notice = ""
			}
		}
		return m, nil
	case "enter":
		items := m.sel.Pick(m.selectKind, list)
		mode := model.ModeWords
		if m.selectKind == model.KindSentence {
			mode = model.ModeSentences
		}
		return m.startSession(mode, items)
	}
	return m, nil
}

func (m *Model) startSession(mode model.SessionMode, items []model.QuizItem) (tea.Model, tea.Cmd) {
	sess, err := session.Start(mode, items)
	if err != nil {
		m.notice = err.Error()
		return m, nil
	}
	m.sess = sess
	m.busy = "Preparing audio..."
	m.errMsg = ""
	m.notice = ""
	m.playing = false
	m.gen++
	m.playGen++
	return m, m.prepareCmd(m.gen, sess.Items)
}

func (m *Model) prepareCmd(gen int, items []model.QuizItem) tea.Cmd {
	return func() tea.Msg {
		prepared, err := m.manager.Prepare(context.Background(), items)
		return prepareDoneMsg{gen: gen, items: prepared, err: err}
	}
}

func (m *Model) onPrepareDone(msg prepareDoneMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.gen {
		return m, nil
	}
	m.busy = ""
	if msg.err != nil {
		// Items without audio show as not generated; the session still runs.
		m.notice = fmt.Sprintf("audio preparation incomplete: %v", msg.err)
	}
	m.sess.Items = msg.items
	m.page = pageDictate
	m.feedback = ""
	m.slowMode = false
	m.answerInput.SetValue("")
	m.answerInput.Focus()
	cmds := []tea.Cmd{textinput.Blink}
	if m.cfg.AutoPlay {
		cmds = append(cmds, m.startPlayback(false))
	}
	return m, tea.Batch(cmds...)
}

// startPlayback supersedes any in-flight playback and starts a new one.
func (m *Model) startPlayback(slow bool) tea.Cmd {
	m.playGen++
	return m.playCmd(m.playGen, slow)
}

func (m *Model) playCmd(gen int, slow bool) tea.Cmd {
	item := m.sess.CurrentItem()
	m.playing = true
	return func() tea.Msg {
		ctx := context.Background()
		url := item.AudioURL
		if slow || url == "" {
			resolved, err := m.manager.Resolve(ctx, item.Text, slow)
			if err != nil {
				return playDoneMsg{gen: gen, err: err}
			}
			url = resolved
		}
		err := m.player.Play(ctx, url)
		return playDoneMsg{gen: gen, err: err}
	}
}

func (m *Model) onPlayDone(msg playDoneMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.playGen {
		return m, nil
	}
	m.playing = false
	if msg.err != nil {
		m.notice = fmt.Sprintf("playback failed: %v", msg.err)
		return m, nil
	}
	// Natural end: with auto-play on, move to the next item after a pause.
	if m.cfg.AutoPlay && m.page == pageDictate && m.sess.Phase() == session.InProgress &&
		!m.sess.Answered() && m.sess.Current() < len(m.sess.Items)-1 {
		gen := m.gen
		delay := time.Duration(m.cfg.AutoAdvanceMs) * time.Millisecond
		return m, tea.Tick(delay, func(time.Time) tea.Msg {
			return autoAdvanceMsg{gen: gen}
		})
	}
	return m, nil
}

func (m *Model) onAutoAdvance(msg autoAdvanceMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.gen || m.page != pageDictate || m.sess.Phase() != session.InProgress {
		return m, nil
	}
	m.sess.Advance()
	m.answerInput.SetValue("")
	return m, m.startPlayback(false)
}

func (m *Model) updateDictate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.goHome()
		return m, nil
	case tea.KeyEnter:
		if m.feedback != "" {
			return m, nil
		}
		answer := m.answerInput.Value()
		correct := m.sess.SubmitAnswer(answer)
		var cmds []tea.Cmd
		if correct {
			m.feedback = "correct"
		} else {
			m.feedback = "wrong"
			item := m.sess.CurrentItem()
			cmds = append(cmds, m.persistWrongCmd(item, strings.TrimSpace(answer)))
		}
		gen := m.gen
		delay := time.Duration(m.cfg.FeedbackMs) * time.Millisecond
		cmds = append(cmds, tea.Tick(delay, func(time.Time) tea.Msg {
			return feedbackDoneMsg{gen: gen}
		}))
		return m, tea.Batch(cmds...)
	case tea.KeyLeft:
		m.sess.Prev()
		m.answerInput.SetValue("")
		m.feedback = ""
		return m, nil
	case tea.KeyRight:
		m.sess.Next()
		m.answerInput.SetValue("")
		m.feedback = ""
		return m, nil
	case tea.KeyCtrlP:
		return m, m.startPlayback(m.slowMode)
	case tea.KeyCtrlS:
		m.slowMode = !m.slowMode
		return m, nil
	case tea.KeyCtrlR:
		m.sess.ToggleReveal()
		return m, nil
	}
	var cmd tea.Cmd
	m.answerInput, cmd = m.answerInput.Update(msg)
	return m, cmd
}

func (m *Model) onFeedbackDone(msg feedbackDoneMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.gen || m.page != pageDictate {
		return m, nil
	}
	m.feedback = ""
	m.answerInput.SetValue("")
	if m.sess.Phase() == session.Finished {
		return m.finishSession()
	}
	m.sess.Advance()
	if m.cfg.AutoPlay {
		return m, m.startPlayback(false)
	}
	return m, nil
}

func (m *Model) finishSession() (tea.Model, tea.Cmd) {
	m.summary = m.sess.Summary()
	m.page = pageResults
	m.player.Stop()
	m.playing = false
	m.gen++
	m.playGen++
	cmds := []tea.Cmd{m.recordStatsCmd(m.summary)}
	if m.user != nil {
		cmds = append(cmds, m.submitRecordCmd(m.summary))
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) recordStatsCmd(summary model.SessionSummary) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		log, err := m.st.LoadStatistics(ctx)
		if err != nil {
			return persistDoneMsg{err: err}
		}
		log = stats.RecordSession(log, summary.Correct, summary.Incorrect, time.Now())
		return persistDoneMsg{err: m.st.SaveStatistics(ctx, log)}
	}
}

func (m *Model) submitRecordCmd(summary model.SessionSummary) tea.Cmd {
	sess := m.sess
	return func() tea.Msg {
		type recordedItem struct {
			Text       string `json:"text"`
			UserAnswer string `json:"user_answer"`
			IsCorrect  *bool  `json:"is_correct"`
		}
		items := make([]recordedItem, len(sess.Items))
		for i, item := range sess.Items {
			items[i] = recordedItem{
				Text:       item.Text,
				UserAnswer: sess.Results[i].UserAnswer,
				IsCorrect:  sess.Results[i].IsCorrect,
			}
		}
		data, err := json.Marshal(items)
		if err != nil {
			return persistDoneMsg{err: err}
		}
		record := model.PracticeRecord{
			Title:        sessionTitle(sess.Mode, time.Now()),
			TotalItems:   summary.Total,
			CorrectCount: summary.Correct,
			WrongCount:   summary.Incorrect,
			Accuracy:     summary.Accuracy,
			WordsData:    string(data),
		}
		return persistDoneMsg{err: m.client.SubmitPractice(context.Background(), record)}
	}
}

func sessionTitle(mode model.SessionMode, now time.Time) string {
	kind := "Words"
	if mode == model.ModeSentences {
		kind = "Sentences"
	}
	return fmt.Sprintf("%s practice %s", kind, now.Format("2006-01-02 15:04"))
}

func (m *Model) persistWrongCmd(item model.QuizItem, answer string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		entries, err := m.st.LoadWrongWords(ctx)
		if err != nil {
			return persistDoneMsg{err: err}
		}
		entries = wrongbook.Upsert(entries, item.Text, item.Meaning, answer, time.Now())
		return persistDoneMsg{err: m.st.SaveWrongWords(ctx, entries)}
	}
}

func (m *Model) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "r":
		retry, err := m.sess.Retry()
		if err != nil {
			m.notice = err.Error()
			return m, nil
		}
		m.sess = retry
		m.busy = "Preparing audio..."
		m.gen++
		return m, m.prepareCmd(m.gen, retry.Items)
	case "m":
		retry, err := m.sess.RetryMistakes()
		if err != nil {
			m.notice = "no mistakes to retry"
			return m, nil
		}
		m.sess = retry
		m.busy = "Preparing audio..."
		m.gen++
		return m, m.prepareCmd(m.gen, retry.Items)
	case "enter", "h", "esc":
		m.goHome()
		return m, nil
	}
	return m, nil
}

// goHome clears all session state unconditionally.
func (m *Model) goHome() {
	m.player.Stop()
	m.gen++
	m.playGen++
	m.playing = false
	m.sess = nil
	m.feedback = ""
	m.busy = ""
	m.errMsg = ""
	m.notice = ""
	m.answerInput.Blur()
	m.answerInput.SetValue("")
	m.pasteMode = false
	m.textInput.Blur()
	m.page = pageHome
}
