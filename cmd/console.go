package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"tgwire/pkg/decode"
	"tgwire/pkg/dispatch"
	"tgwire/pkg/method"
	"tgwire/pkg/poller"
	"tgwire/pkg/types"
	"tgwire/pkg/ui/console"
	"tgwire/pkg/value"

	"github.com/spf13/cobra"
)

var (
	consoleChat    string
	consoleNoWatch bool
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Open an interactive bot console",
	Long:  "Shows incoming updates as they arrive and sends every typed line to one chat as a text message.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		_ = args

		rt, err := loadRuntime("cmd.console")
		if err != nil {
			fmt.Printf("failed to start: %v\n", err)
			return
		}

		chat, err := value.ParseChatID(consoleChat)
		if err != nil {
			fmt.Printf("invalid --chat: %v\n", err)
			return
		}

		// Log lines would draw over the terminal UI.
		slog.SetDefault(slog.New(slog.DiscardHandler))

		client, err := rt.dispatcher()
		if err != nil {
			fmt.Printf("failed to connect: %v\n", err)
			return
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		me, err := dispatch.Do[types.User](ctx, client, method.NewGetMe())
		if err != nil {
			fmt.Printf("getMe failed: %v\n", err)
			return
		}

		var updates chan types.Update
		if !consoleNoWatch {
			updates = make(chan types.Update, 16)
			if err := startConsolePoller(ctx, client, rt, updates); err != nil {
				fmt.Printf("failed to start poller: %v\n", err)
				return
			}
		}

		info := console.Info{Bot: "@" + me.Username, Chat: chat.String()}
		if err := console.Run(ctx, consoleSender(client, chat), updates, info); err != nil {
			fmt.Printf("console failed: %v\n", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(consoleCmd)
	consoleCmd.Flags().StringVar(&consoleChat, "chat", "", "chat id or @username to send to")
	consoleCmd.Flags().BoolVar(&consoleNoWatch, "no-watch", false, "do not poll for incoming updates")
	_ = consoleCmd.MarkFlagRequired("chat")
}

// consoleSender sends console input as plain text messages.
func consoleSender(client poller.Doer, chat value.ChatID) console.SendFunc {
	return func(ctx context.Context, text string) (types.Message, error) {
		op, err := method.NewSendMessage(chat, text)
		if err != nil {
			return types.Message{}, err
		}

		result, err := client.Do(ctx, op)
		if err != nil {
			return types.Message{}, err
		}

		msg, ok := result.(types.Message)
		if !ok {
			return types.Message{}, fmt.Errorf("sendMessage result is %T", result)
		}
		return msg, nil
	}
}

// startConsolePoller feeds updates into the console until ctx ends.
func startConsolePoller(ctx context.Context, client poller.Doer, rt *appRuntime, updates chan<- types.Update) error {
	p, err := poller.New(client, decode.New(rt.table), rt.cfg.Telegram, rt.cfg.Polling, slog.Default())
	if err != nil {
		return err
	}

	go func() {
		defer close(updates)

		_ = p.Run(ctx, func(ctx context.Context, update types.Update) error {
			select {
			case updates <- update:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}()

	return nil
}
