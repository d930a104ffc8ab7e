package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"tgwire/pkg/encode"
	"tgwire/pkg/method"
	"tgwire/pkg/schema"
	"tgwire/pkg/ui/inspect"
	"tgwire/pkg/value"

	"github.com/spf13/cobra"
)

// sendRequest holds the flags of the send command.
type sendRequest struct {
	chat     string
	text     string
	photo    string
	caption  string
	markdown bool
	silent   bool
	dryRun   bool
}

var sendFlags sendRequest

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send a text message or a photo",
	Long:  "Builds a sendMessage or sendPhoto call and sends it to the configured bot. With --dry-run the encoded payload is printed instead.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := loadRuntime("cmd.send")
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if sendFlags.dryRun {
			op, err := sendFlags.operation()
			if err != nil {
				return err
			}
			return printPayload(out, rt.table, op)
		}

		client, err := rt.dispatcher()
		if err != nil {
			return err
		}

		op, err := sendFlags.operation()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		result, err := client.Do(ctx, op)
		if err != nil {
			rt.log.Error("Send failed", "method", op.MethodName(), "error", err)
			return err
		}

		tree, err := encode.New(rt.table).Value(result)
		if err != nil {
			return fmt.Errorf("render result: %w", err)
		}
		fmt.Fprintln(out, inspect.New().Tree(op.MethodName(), "sent", tree))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().StringVar(&sendFlags.chat, "chat", "", "target chat id or @username")
	sendCmd.Flags().StringVar(&sendFlags.text, "text", "", "message text")
	sendCmd.Flags().StringVar(&sendFlags.photo, "photo", "", "photo to send: local path, http(s) URL, or file_id")
	sendCmd.Flags().StringVar(&sendFlags.caption, "caption", "", "photo caption")
	sendCmd.Flags().BoolVar(&sendFlags.markdown, "markdown", false, "parse text or caption as Markdown")
	sendCmd.Flags().BoolVar(&sendFlags.silent, "silent", false, "send without notification")
	sendCmd.Flags().BoolVar(&sendFlags.dryRun, "dry-run", false, "print the encoded payload without sending")
	_ = sendCmd.MarkFlagRequired("chat")
	sendCmd.MarkFlagsMutuallyExclusive("text", "photo")
	sendCmd.MarkFlagsOneRequired("text", "photo")
}

// operation builds the Bot API call described by the flags.
func (r sendRequest) operation() (method.Operation, error) {
	chat, err := value.ParseChatID(r.chat)
	if err != nil {
		return nil, fmt.Errorf("parse --chat: %w", err)
	}

	var opts []method.SendOption
	if r.markdown {
		opts = append(opts, method.Markdown())
	}
	if r.silent {
		opts = append(opts, method.Silent())
	}

	photo := strings.TrimSpace(r.photo)
	switch {
	case photo == "":
		if strings.TrimSpace(r.caption) != "" {
			return nil, errors.New("--caption requires --photo")
		}
		return method.NewSendMessage(chat, r.text, opts...)
	case strings.HasPrefix(photo, "http://") || strings.HasPrefix(photo, "https://"):
		return method.PhotoByURL(chat, photo, r.caption, opts...)
	case isLocalFile(photo):
		file, err := value.OpenFile(photo)
		if err != nil {
			return nil, fmt.Errorf("open photo: %w", err)
		}
		op, err := method.UploadPhoto(chat, file, r.caption, opts...)
		if err != nil {
			if upload, ok := file.Upload(); ok {
				_ = upload.Close()
			}
			return nil, err
		}
		return op, nil
	default:
		return method.PhotoByID(chat, photo, r.caption, opts...)
	}
}

func isLocalFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// printPayload encodes op and renders its wire keys. Attachments are closed
// without being read.
func printPayload(w io.Writer, table *schema.Table, op method.Operation) error {
	defer op.Close()

	payload, err := op.Payload(encode.New(table))
	if err != nil {
		fmt.Fprintln(w, inspect.New().Error(err))
		return fmt.Errorf("encode %s: %w", op.MethodName(), err)
	}

	fmt.Fprintln(w, inspect.New().Payload(op.MethodName(), payload))

	return nil
}
