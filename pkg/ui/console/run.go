// Package console is an interactive terminal view of a bot: incoming updates
// scroll by while typed lines are sent to one chat.
package console

import (
	"context"
	"fmt"

	"tgwire/pkg/types"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SendFunc sends text to the console's chat and returns the sent message.
type SendFunc func(ctx context.Context, text string) (types.Message, error)

// Info labels the console header.
type Info struct {
	Bot  string
	Chat string
}

// Run shows the console until the user quits. Updates are read from updates
// until it is closed; a nil channel disables the incoming pane.
func Run(ctx context.Context, send SendFunc, updates <-chan types.Update, info Info) error {
	model := newModel(ctx, send, updates, info)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return err
	}

	fmt.Println(renderGoodbyeBanner(model.received, model.sent))
	return nil
}

func renderGoodbyeBanner(received, sent int) string {
	style := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("230")).
		Background(lipgloss.Color("88")).
		Padding(1, 2)

	return style.Render(fmt.Sprintf("📡 console closed · %d received · %d sent", received, sent))
}
