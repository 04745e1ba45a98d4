package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"quiz-contest-service/internal/app"
	"quiz-contest-service/internal/domain"
	"quiz-contest-service/internal/infra/memory"
)

func TestWebSocketContestFlow(t *testing.T) {
	ledger := memory.NewLedger()
	service := app.NewContestService(memory.NewQuizStore(), memory.NewRegistry(), ledger,
		app.WithIDGenerator(func() string { return "quiz-1" }),
	)
	server := newServer(service)
	defer server.Close()

	creator := dial(t, server, "creator")
	defer creator.Close()
	player := dial(t, server, "x")
	defer player.Close()

	send(t, creator, "create", map[string]any{
		"title": "Arithmetic",
		"questions": []map[string]any{
			{"text": "2+2?", "options": []string{"3", "4", "5"}, "correct": 1},
		},
		"prizeDistribution": []map[string]any{{"position": 1, "amount": 1_000_000}},
		"deposits":          []map[string]any{{"owner": "creator", "amount": 1_000_000}},
	})
	var summary domain.Summary
	expect(t, creator, "created", &summary)
	if summary.ID != "quiz-1" || !summary.Active || summary.TotalPrize != 1_000_000 {
		t.Fatalf("unexpected summary %+v", summary)
	}

	send(t, player, "question", map[string]any{"quizId": "quiz-1", "index": 0})
	var raw map[string]any
	expect(t, player, "question", &raw)
	if _, leaked := raw["correct"]; leaked {
		t.Fatalf("question view leaked the correct answer: %v", raw)
	}

	send(t, player, "submit", map[string]any{"quizId": "quiz-1", "answers": []int{1}})
	expect(t, player, "submitted", nil)

	send(t, player, "finalize", map[string]any{"quizId": "quiz-1"})
	var failure errorPayload
	expect(t, player, "error", &failure)
	if failure.Kind != "authorization" {
		t.Fatalf("expected authorization error, got %+v", failure)
	}

	send(t, creator, "finalize", map[string]any{"quizId": "quiz-1"})
	var winners []domain.Winner
	expect(t, creator, "finalized", &winners)
	if len(winners) != 1 || winners[0].Participant != "x" {
		t.Fatalf("unexpected winners %+v", winners)
	}

	send(t, player, "claim", map[string]any{"quizId": "quiz-1"})
	var cert domain.Certificate
	expect(t, player, "certificate", &cert)
	if cert.Amount != 1_000_000 || cert.Position == nil || *cert.Position != 1 || cert.Score != 1 {
		t.Fatalf("unexpected certificate %+v", cert)
	}
	if ledger.Balance("x") != 1_000_000 {
		t.Fatalf("expected payout credited, got %d", ledger.Balance("x"))
	}

	send(t, player, "balance", map[string]any{"quizId": "quiz-1"})
	var balance amountResult
	expect(t, player, "balance", &balance)
	if balance.Amount != 0 {
		t.Fatalf("expected drained pool, got %d", balance.Amount)
	}

	send(t, player, "quizzes", map[string]any{})
	var quizzes quizzesResult
	expect(t, player, "quizzes", &quizzes)
	if quizzes.Count != 1 || quizzes.IDs[0] != "quiz-1" {
		t.Fatalf("unexpected registry listing %+v", quizzes)
	}
}

func TestWebSocketRejectsBadRequests(t *testing.T) {
	service := app.NewContestService(memory.NewQuizStore(), memory.NewRegistry(), memory.NewLedger())
	server := newServer(service)
	defer server.Close()

	conn := dial(t, server, "u1")
	defer conn.Close()

	send(t, conn, "dance", map[string]any{})
	var failure errorPayload
	expect(t, conn, "error", &failure)
	if failure.Kind != "bad_request" {
		t.Fatalf("expected bad_request, got %+v", failure)
	}

	send(t, conn, "summary", map[string]any{"quizId": "nope"})
	expect(t, conn, "error", &failure)
	if failure.Kind != "not_found" {
		t.Fatalf("expected not_found, got %+v", failure)
	}

	resp, err := http.Get(server.URL + "/ws")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 without userId, got %d", resp.StatusCode)
	}
}

func newServer(service *app.ContestService) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", NewWSHandler(service, nil).ServeWS)
	return httptest.NewServer(mux)
}

func dial(t *testing.T, server *httptest.Server, userID string) *websocket.Conn {
	t.Helper()
	u := "ws" + server.URL[len("http"):] + "/ws?userId=" + userID
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return conn
}

func send(t *testing.T, conn *websocket.Conn, typ string, payload any) {
	t.Helper()
	if err := conn.WriteJSON(map[string]any{"type": typ, "payload": payload}); err != nil {
		t.Fatalf("write %s: %v", typ, err)
	}
}

func expect(t *testing.T, conn *websocket.Conn, typ string, into any) {
	t.Helper()
	var msg struct {
		Type    string          `json:"type"`
		Payload json.RawMessage `json:"payload"`
	}
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read json: %v", err)
	}
	if msg.Type != typ {
		t.Fatalf("expected type %s, got %s (%s)", typ, msg.Type, msg.Payload)
	}
	if into != nil {
		if err := json.Unmarshal(msg.Payload, into); err != nil {
			t.Fatalf("decode %s payload: %v", typ, err)
		}
	}
}
