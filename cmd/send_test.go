package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tgwire/pkg/method"
	"tgwire/pkg/types"
	"tgwire/pkg/value"
	"tgwire/pkg/wireerr"

	"github.com/stretchr/testify/require"
)

func TestSendRequestOperation(t *testing.T) {
	dir := t.TempDir()
	photoPath := filepath.Join(dir, "cat.jpg")
	require.NoError(t, os.WriteFile(photoPath, []byte("jpg"), 0o600))

	tests := []struct {
		name       string
		req        sendRequest
		wantMethod string
		wantKeys   []string
	}{
		{
			name:       "text",
			req:        sendRequest{chat: "-341054026", text: "hello", markdown: true},
			wantMethod: "sendMessage",
			wantKeys:   []string{"chat_id", "parse_mode", "text"},
		},
		{
			name:       "photo by id",
			req:        sendRequest{chat: "@channel", photo: "AgADBAAD", caption: "hi"},
			wantMethod: "sendPhoto",
			wantKeys:   []string{"caption", "chat_id", "photo"},
		},
		{
			name:       "photo by url",
			req:        sendRequest{chat: "5", photo: "https://example.test/cat.jpg", silent: true},
			wantMethod: "sendPhoto",
			wantKeys:   []string{"chat_id", "disable_notification", "photo"},
		},
		{
			name:       "photo upload",
			req:        sendRequest{chat: "5", photo: photoPath},
			wantMethod: "sendPhoto",
			wantKeys:   []string{"chat_id", "photo"},
		},
	}

	table := testTable(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, err := tt.req.operation()
			require.NoError(t, err)
			require.Equal(t, tt.wantMethod, op.MethodName())

			var out bytes.Buffer
			require.NoError(t, printPayload(&out, table, op))
			for _, key := range tt.wantKeys {
				if !strings.Contains(out.String(), key) {
					t.Fatalf("payload missing key %q:\n%s", key, out.String())
				}
			}
		})
	}
}

func TestSendRequestUploadIsMultipart(t *testing.T) {
	photoPath := filepath.Join(t.TempDir(), "cat.jpg")
	require.NoError(t, os.WriteFile(photoPath, []byte("jpg"), 0o600))

	op, err := sendRequest{chat: "5", photo: photoPath}.operation()
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, printPayload(&out, testTable(t), op))
	require.Contains(t, out.String(), "multipart")
	require.Contains(t, out.String(), "photo <- cat.jpg")
}

func TestSendRequestRejectsBadInput(t *testing.T) {
	if _, err := (sendRequest{chat: "", text: "x"}).operation(); err == nil {
		t.Fatal("expected error for empty chat")
	}
	if _, err := (sendRequest{chat: "1", text: "x", caption: "c"}).operation(); err == nil {
		t.Fatal("expected error for caption without photo")
	}

	_, err := sendRequest{chat: "1", text: ""}.operation()
	require.Error(t, err)
	require.True(t, wireerr.Is(err, wireerr.EncodingPrecondition))
}

type closeCounter struct {
	io.Reader
	closed int
}

func (c *closeCounter) Close() error {
	c.closed++
	return nil
}

func TestPrintPayloadClosesUploadOnEncodeFailure(t *testing.T) {
	stream := &closeCounter{Reader: strings.NewReader("jpg")}
	file, err := value.UploadFile("cat.jpg", stream)
	require.NoError(t, err)

	chat, err := value.NewChatID(5)
	require.NoError(t, err)
	op, err := method.UploadPhoto(chat, file, "")
	require.NoError(t, err)

	// The Bot API types alone do not describe the sendPhoto params.
	typesOnly, err := types.NewTable()
	require.NoError(t, err)

	var out bytes.Buffer
	require.Error(t, printPayload(&out, typesOnly, op))
	require.Equal(t, 1, stream.closed)
}
