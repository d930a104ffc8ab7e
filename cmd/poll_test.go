package cmd

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"tgwire/pkg/encode"
	"tgwire/pkg/method"
	"tgwire/pkg/types"
	"tgwire/pkg/value"
)

type recordingDoer struct {
	mu     sync.Mutex
	ops    []method.Operation
	result any
	err    error
}

func (d *recordingDoer) Do(_ context.Context, op method.Operation) (any, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.ops = append(d.ops, op)
	return d.result, d.err
}

func (d *recordingDoer) methods() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	names := make([]string, 0, len(d.ops))
	for _, op := range d.ops {
		names = append(names, op.MethodName())
	}
	return names
}

func textMessageUpdate(t *testing.T, text string, entities ...types.MessageEntity) types.Update {
	t.Helper()

	chat, err := value.NewChatID(-341054026)
	if err != nil {
		t.Fatalf("NewChatID error: %v", err)
	}

	return types.Update{
		UpdateID: 408520137,
		Message: &types.Message{
			MessageID: 3,
			Date:      1565537004,
			From:      &types.User{ID: 288825898, FirstName: "Maksim"},
			Chat:      types.Chat{ID: chat, Type: value.ChatTypeGroup, Title: "qwertyroot"},
			Text:      text,
			Entities:  entities,
		},
	}
}

func TestUpdatePrinterRendersWithoutEcho(t *testing.T) {
	var out bytes.Buffer
	doer := &recordingDoer{}
	handler := updatePrinter(&out, encode.New(testTable(t)), doer, false, slog.New(slog.DiscardHandler))

	if err := handler(context.Background(), textMessageUpdate(t, "message text")); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !strings.Contains(out.String(), "update 408520137") {
		t.Fatalf("expected rendered update, got:\n%s", out.String())
	}
	if got := doer.methods(); len(got) != 0 {
		t.Fatalf("expected no calls without echo, got %v", got)
	}
}

func TestUpdatePrinterEchoesText(t *testing.T) {
	var out bytes.Buffer
	doer := &recordingDoer{}
	handler := updatePrinter(&out, encode.New(testTable(t)), doer, true, slog.New(slog.DiscardHandler))

	if err := handler(context.Background(), textMessageUpdate(t, "hello")); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	got := doer.methods()
	if len(got) < 2 || got[0] != "sendChatAction" || got[len(got)-1] != "sendMessage" {
		t.Fatalf("calls = %v, want sendChatAction then sendMessage", got)
	}
}

func TestUpdatePrinterSkipsCommands(t *testing.T) {
	var out bytes.Buffer
	doer := &recordingDoer{}
	handler := updatePrinter(&out, encode.New(testTable(t)), doer, true, slog.New(slog.DiscardHandler))

	update := textMessageUpdate(t, "/start", types.MessageEntity{Type: value.EntityBotCommand, Offset: 0, Length: 6})
	if err := handler(context.Background(), update); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := doer.methods(); len(got) != 0 {
		t.Fatalf("expected commands to be ignored, got %v", got)
	}
}

func TestUpdatePrinterReportsSendFailure(t *testing.T) {
	var out bytes.Buffer
	doer := &recordingDoer{err: errors.New("chat not found")}
	handler := updatePrinter(&out, encode.New(testTable(t)), doer, true, slog.New(slog.DiscardHandler))

	err := handler(context.Background(), textMessageUpdate(t, "hello"))
	if err == nil || !strings.Contains(err.Error(), "send echo") {
		t.Fatalf("handler error = %v, want send echo failure", err)
	}
}

func TestConsoleSender(t *testing.T) {
	chat, err := value.NewChatID(5)
	if err != nil {
		t.Fatalf("NewChatID error: %v", err)
	}

	doer := &recordingDoer{result: types.Message{MessageID: 9, Text: "hi"}}
	msg, err := consoleSender(doer, chat)(context.Background(), "hi")
	if err != nil {
		t.Fatalf("send error: %v", err)
	}
	if msg.MessageID != 9 {
		t.Fatalf("MessageID = %d, want 9", msg.MessageID)
	}
	if got := doer.methods(); len(got) != 1 || got[0] != "sendMessage" {
		t.Fatalf("calls = %v, want [sendMessage]", got)
	}

	if _, err := consoleSender(&recordingDoer{result: true}, chat)(context.Background(), "hi"); err == nil {
		t.Fatal("expected error for unexpected result type")
	}
	if _, err := consoleSender(&recordingDoer{}, chat)(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty text")
	}
}
