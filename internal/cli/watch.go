package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	giiker "github.com/mlowell/giiker_trigger"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Live TUI showing connection state, moves and solves",
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().IntVar(&runGPIOPin, "gpio", -1, "sysfs GPIO line to pulse (default: log only)")
	watchCmd.Flags().DurationVar(&runHold, "hold", giiker.DefaultHoldDuration, "How long the output stays high per solve")
	watchCmd.Flags().StringVar(&runUARTName, "uart-name", giiker.DefaultUARTName, "Local name for the pass-through UART service")
	watchCmd.Flags().BoolVar(&runNoUART, "no-uart", false, "Disable the pass-through UART service")
	watchCmd.Flags().BoolVar(&runNoLog, "no-log", false, "Disable the SQLite solve log")
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	connectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("82"))

	searchingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	failedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	moveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	solvedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("226"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Messages
type watchTickMsg time.Time

func watchTick() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
		return watchTickMsg(t)
	})
}

// Model
type watchModel struct {
	session *giiker.Session
	status  giiker.Status
	width   int
}

func (m watchModel) Init() tea.Cmd {
	return watchTick()
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case watchTickMsg:
		m.status = m.session.Status()
		return m, watchTick()
	}
	return m, nil
}

func (m watchModel) View() string {
	s := titleStyle.Render("Giiker Trigger") + "\n\n"

	s += labelStyle.Render("Peer:   ") + m.status.Peer + "\n"
	s += labelStyle.Render("State:  ") + renderState(m.status.State) + "\n"

	lastMove := "-"
	if m.status.HasMove {
		lastMove = moveStyle.Render(m.status.LastMove.Notation())
	}
	s += labelStyle.Render("Move:   ") + lastMove +
		labelStyle.Render(fmt.Sprintf("  (%d since last solve)", m.status.MoveCount)) + "\n"

	s += labelStyle.Render("Solves: ") + fmt.Sprintf("%d", m.status.Solves)
	if m.status.PulseActive {
		s += "  " + solvedStyle.Render("● OUTPUT HIGH")
	}
	s += "\n\n" + helpStyle.Render("q: quit")

	return s
}

func renderState(state giiker.ConnState) string {
	switch state {
	case giiker.StateConnected:
		return connectedStyle.Render(state.String())
	case giiker.StateFailed:
		return failedStyle.Render(state.String())
	default:
		return searchingStyle.Render(state.String())
	}
}

func runWatch(cmd *cobra.Command, args []string) error {
	// log lines would tear the TUI; keep the session quiet
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	opts, err := sessionOptions(logger)
	if err != nil {
		return err
	}

	session, err := giiker.New(opts...)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go session.Run(ctx)

	p := tea.NewProgram(watchModel{session: session, status: session.Status()})
	if _, err := p.Run(); err != nil {
		return err
	}

	return nil
}
