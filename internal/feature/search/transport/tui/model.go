// Package tui はティッカー検索のターミナルUIを提供します。
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"stockchart/internal/feature/search/domain/state"
	"stockchart/internal/feature/search/usecase"
)

const (
	searchLabel  = "Search"
	loadingLabel = "Loading..."
	loadingText  = "Loading data..."
)

// Searcher は検索ユースケースのインターフェースです。
// Goの慣例に従い、インターフェースは利用者（tui）側で定義します。
type Searcher interface {
	State() state.State
	SetTicker(raw string) state.State
	Start() (usecase.Request, bool)
	Complete(ctx context.Context, req usecase.Request) state.State
}

type focus int

const (
	focusInput focus = iota
	focusButton
)

// searchDoneMsg は取得の完了をイベントループに戻します。
type searchDoneMsg struct{}

// Model はbubbleteaのモデルです。
type Model struct {
	ctx    context.Context
	search Searcher
	input  textinput.Model
	focus  focus
	width  int

	state state.State
	// shown はグラフに表示中の銘柄コードです。入力欄はその後も変わり得ます。
	shown string
}

var _ tea.Model = Model{}

// NewModel は入力欄にフォーカスした状態のModelを生成します。
func NewModel(ctx context.Context, s Searcher) Model {
	in := textinput.New()
	in.Placeholder = "AAPL"
	in.Prompt = "Ticker: "
	in.Width = 16
	in.Focus()

	return Model{
		ctx:    ctx,
		search: s,
		input:  in,
		state:  s.State(),
	}
}

// State は表示中の状態を返します。
func (m Model) State() state.State {
	return m.state
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case searchDoneMsg:
		// 古い検索の完了でも、ユースケースが保持する最新の状態を表示します。
		m.state = m.search.State()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "shift+tab":
			m.toggleFocus()
			return m, nil
		case "enter":
			return m.startSearch()
		case " ":
			if m.focus == focusButton {
				return m.startSearch()
			}
		}
	}

	if m.focus != focusInput {
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.syncTicker()
	return m, cmd
}

// syncTicker は入力欄の変更を正規化してユースケースに渡します。
// キー入力に限らず、クリップボードからの貼り付けなど入力欄を変えるすべてのメッセージが対象です。
func (m *Model) syncTicker() {
	if m.input.Value() == m.state.Ticker {
		return
	}
	m.state = m.search.SetTicker(m.input.Value())
	if m.state.Ticker != m.input.Value() {
		m.input.SetValue(m.state.Ticker)
	}
}

func (m *Model) toggleFocus() {
	if m.focus == focusInput {
		m.focus = focusButton
		m.input.Blur()
		return
	}
	m.focus = focusInput
	m.input.Focus()
}

// startSearch はボタン押下に相当します。読み込み中は無効です。
func (m Model) startSearch() (tea.Model, tea.Cmd) {
	if m.state.Loading {
		return m, nil
	}

	req, ok := m.search.Start()
	m.state = m.search.State()
	if !ok {
		return m, nil
	}
	m.shown = req.Ticker

	ctx, s := m.ctx, m.search
	return m, func() tea.Msg {
		s.Complete(ctx, req)
		return searchDoneMsg{}
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Stock Chart"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.buttonView())
	b.WriteString("\n")

	switch {
	case m.state.Loading:
		b.WriteString(messageStyle.Render(loadingText))
		b.WriteString("\n")
	case m.state.HasError():
		b.WriteString(errorStyle.Render(m.state.Error))
		b.WriteString("\n")
	}

	if m.state.HasSeries() {
		b.WriteString("\n")
		b.WriteString(RenderChart(m.shown, m.state.Series, m.width))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("enter: search • tab: switch focus • esc: quit"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) buttonView() string {
	switch {
	case m.state.Loading:
		return disabledButtonStyle.Render(loadingLabel)
	case m.focus == focusButton:
		return focusedButtonStyle.Render(searchLabel)
	default:
		return buttonStyle.Render(searchLabel)
	}
}
