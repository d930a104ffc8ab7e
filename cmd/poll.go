package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"tgwire/pkg/decode"
	"tgwire/pkg/encode"
	"tgwire/pkg/method"
	"tgwire/pkg/poller"
	"tgwire/pkg/types"
	"tgwire/pkg/ui/inspect"

	"github.com/spf13/cobra"
)

var pollEcho bool

var pollCmd = &cobra.Command{
	Use:   "poll",
	Short: "Long-poll getUpdates and print each update",
	Long:  "Runs a getUpdates loop against the configured bot and renders every decoded update. With --echo, text messages are answered with their own text.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		_ = args

		rt, err := loadRuntime("cmd.poll")
		if err != nil {
			fmt.Printf("failed to start: %v\n", err)
			return
		}

		client, err := rt.dispatcher()
		if err != nil {
			rt.log.Error("Poll configuration invalid", "error", err)
			return
		}

		p, err := poller.New(client, decode.New(rt.table), rt.cfg.Telegram, rt.cfg.Polling, slog.Default())
		if err != nil {
			rt.log.Error("Failed to initialize poller", "error", err)
			return
		}

		runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		handler := updatePrinter(cmd.OutOrStdout(), encode.New(rt.table), client, pollEcho, rt.log)

		rt.log.Info("Poller started", "echo", pollEcho, "allow_from", len(rt.cfg.Telegram.AllowFrom))
		if err := p.Run(runCtx, handler); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			rt.log.Error("Poller failed", "error", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(pollCmd)
	pollCmd.Flags().BoolVar(&pollEcho, "echo", false, "reply to text messages with the same text")
}

// updatePrinter renders every update to w and, when echo is set, answers
// plain text messages through client.
func updatePrinter(w io.Writer, enc *encode.Encoder, client poller.Doer, echo bool, log *slog.Logger) poller.Handler {
	renderer := inspect.New()

	return func(ctx context.Context, update types.Update) error {
		rendered, err := renderer.Update(enc, update)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, rendered)

		if !echo || update.Message == nil || update.Message.Text == "" {
			return nil
		}

		msg := update.Message
		if name, _, ok := msg.Command(); ok {
			log.Debug("Not echoing command", "command", name)
			return nil
		}

		stopTyping := poller.StartTyping(ctx, client, msg.Chat.ID, log)
		defer stopTyping()

		reply, err := method.NewSendMessage(msg.Chat.ID, msg.Text, method.ReplyTo(msg.MessageID))
		if err != nil {
			return fmt.Errorf("build echo: %w", err)
		}
		if _, err := client.Do(ctx, reply); err != nil {
			return fmt.Errorf("send echo: %w", err)
		}

		return nil
	}
}
