package tui

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gobi/internal/domain"
	"gobi/internal/summarizer"
	"gobi/internal/textnorm"
)

// turn is one exchange in the conversation.
type turn struct {
	query   string
	reply   domain.Reply
	pending bool
}

type replyMsg struct {
	reply domain.Reply
}

// Model is the Bubble Tea model for the chat surface.
type Model struct {
	ctx       context.Context
	responder domain.Responder
	input     textinput.Model
	viewport  viewport.Model
	turns     []turn
	summary   string
	status    string
	waiting   bool
	ready     bool
}

// New creates a chat model. summary is shown under the title.
func New(ctx context.Context, responder domain.Responder, summary string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Escribe tu pregunta y presiona Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		ctx:       ctx,
		responder: responder,
		input:     ti,
		viewport:  vp,
		summary:   summary,
		status:    "Listo. Ctrl+L limpia el historial, Ctrl+C sale.",
	}
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, hh := historyBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 2 + 1 + qh + 1 // header + summary, status, input box, spacer
		m.viewport.Width = max(20, msg.Width-2)
		m.viewport.Height = max(3, msg.Height-reserved-hh)
		m.refresh()
		return m, nil
	case replyMsg:
		m.waiting = false
		if n := len(m.turns); n > 0 {
			m.turns[n-1].reply = msg.reply
			m.turns[n-1].pending = false
		}
		m.status = fmt.Sprintf("Respuesta: %s · emoción: %s", msg.reply.Kind, msg.reply.Emotion.Label)
		m.refresh()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q == "" || m.waiting {
				return m, nil
			}
			m.turns = append(m.turns, turn{query: q, pending: true})
			m.input.SetValue("")
			m.waiting = true
			m.status = "Buscando..."
			m.refresh()
			return m, m.ask(q)
		case "ctrl+l":
			if !m.waiting {
				m.turns = nil
				m.status = "Historial limpio."
				m.refresh()
			}
			return m, nil
		case "pgup", "pgdown", "up", "down":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) ask(q string) tea.Cmd {
	ctx, responder := m.ctx, m.responder
	return func() tea.Msg {
		return replyMsg{reply: responder.Respond(ctx, q)}
	}
}

func (m *Model) refresh() {
	m.viewport.SetContent(m.renderHistory())
	m.viewport.GotoBottom()
}

func (m Model) View() string {
	if !m.ready {
		return "Cargando..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("GOBI")
	summary := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(m.summary)
	history := historyBoxStyle.Render(m.viewport.View())
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	return header + "\n" + summary + "\n" + history + "\n" + input + "\n" + status
}

func (m Model) renderHistory() string {
	if len(m.turns) == 0 {
		return "Aún no hay preguntas."
	}
	var b strings.Builder
	for i, t := range m.turns {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(userStyle.Render("Tú: "))
		b.WriteString(t.query)
		b.WriteString("\n")
		b.WriteString(botStyle.Render("GOBI: "))
		if t.pending {
			b.WriteString("...")
			continue
		}
		if t.reply.Kind == domain.ReplyGrounded {
			b.WriteString(highlightBestSentence(t.reply.Answer, t.query))
		} else {
			b.WriteString(t.reply.Answer)
		}
		for _, s := range t.reply.Sources {
			b.WriteString("\n")
			b.WriteString(sourceStyle.Render("  • " + s.DisplayName + ": " + s.URL))
		}
	}
	return b.String()
}

var (
	historyBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	highlightStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	userStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	botStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
	sourceStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// highlightBestSentence emphasizes the sentence sharing most words with the query.
// Multi-line answers such as step lists are left as they are.
func highlightBestSentence(text, query string) string {
	if strings.TrimSpace(text) == "" || strings.Contains(text, "\n") {
		return text
	}
	sentences := summarizer.SplitSentences(text)
	if len(sentences) < 2 {
		return text
	}
	qTokens := toTokenSet(query)
	if len(qTokens) == 0 {
		return text
	}
	bestIdx, bestScore := 0, 0
	for i, s := range sentences {
		if score := tokenOverlapScore(qTokens, s); score > bestScore {
			bestIdx, bestScore = i, score
		}
	}
	if bestScore == 0 {
		return text
	}
	sentences[bestIdx] = highlightStyle.Render(sentences[bestIdx])
	return strings.Join(sentences, " ")
}

func toTokenSet(s string) map[string]struct{} {
	tokens := strings.FieldsFunc(textnorm.Normalize(s), isSeparator)
	m := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		m[t] = struct{}{}
	}
	return m
}

func tokenOverlapScore(queryTokens map[string]struct{}, sentence string) int {
	score := 0
	for t := range toTokenSet(sentence) {
		if _, ok := queryTokens[t]; ok {
			score++
		}
	}
	return score
}

func isSeparator(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}
