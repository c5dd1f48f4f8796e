package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/iho/mitiledger/internal/adapter/http/dto"
)

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("expected short unchanged, got %q", got)
	}

	if got := truncate("longerstring", 6); got != "lon..." {
		t.Fatalf("expected lon..., got %q", got)
	}
}

func TestPrintJSON(t *testing.T) {
	var out bytes.Buffer
	if err := printJSON(&out, struct {
		A int `json:"a"`
	}{A: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := "{\n  \"a\": 1\n}\n"
	if out.String() != expected {
		t.Fatalf("unexpected json output:\n%s", out.String())
	}
}

// fakeBot answers every message with an echo of its sender and text.
func fakeBot(t *testing.T) (*httptest.Server, *[]dto.MessageRequest) {
	t.Helper()

	var received []dto.MessageRequest

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/messages", func(w http.ResponseWriter, r *http.Request) {
		var req dto.MessageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		received = append(received, req)
		json.NewEncoder(w).Encode(dto.MessageResponse{
			Status:  dto.StatusProcessed,
			Replies: []string{req.SenderID + ": " + req.Text},
		})
	})
	mux.HandleFunc("/api/v1/balance", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(dto.BalanceResponse{Settled: true, Text: "No hay deudas pendientes."})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return srv, &received
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestSendCmd(t *testing.T) {
	srv, received := fakeBot(t)

	out, err := execute(t, "", "--url", srv.URL, "--sender", "alice", "--conversation", "g", "send", "!miti", "50000")
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}

	if out != "alice: !miti 50000\n" {
		t.Fatalf("unexpected output %q", out)
	}

	if len(*received) != 1 || (*received)[0].ConversationID != "g" || (*received)[0].MessageID == "" {
		t.Fatalf("unexpected requests %+v", *received)
	}
}

func TestChatCmd(t *testing.T) {
	srv, received := fakeBot(t)

	out, err := execute(t, "!debe 100\n\n/as bob\ntaxi\n/quit\nignored\n", "--url", srv.URL, "--sender", "alice", "chat")
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}

	if len(*received) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(*received))
	}

	if !strings.Contains(out, "alice: !debe 100\n") || !strings.Contains(out, "bob: taxi\n") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestBalanceCmd(t *testing.T) {
	srv, _ := fakeBot(t)

	out, err := execute(t, "", "--url", srv.URL, "balance")
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}
	if out != "No hay deudas pendientes.\n" {
		t.Fatalf("unexpected output %q", out)
	}

	out, err = execute(t, "", "--url", srv.URL, "balance", "--json")
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}
	if !strings.Contains(out, `"settled": true`) {
		t.Fatalf("expected JSON output, got %q", out)
	}
}

func TestAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(dto.ErrorResponse{Error: "invalid message", Message: "sender_id is required"})
	}))
	defer srv.Close()

	_, err := execute(t, "", "--url", srv.URL, "send", "hola")
	if err == nil || !strings.Contains(err.Error(), "sender_id is required") {
		t.Fatalf("expected API error, got %v", err)
	}
}
