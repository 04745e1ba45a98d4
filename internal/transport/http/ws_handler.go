package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"quiz-contest-service/internal/app"
	"quiz-contest-service/internal/domain"
)

type WSHandler struct {
	service  *app.ContestService
	log      *zap.Logger
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.ContestService, log *zap.Logger) *WSHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &WSHandler{
		service: service,
		log:     log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	ID      string          `json:"id,omitempty"`
	Payload json.RawMessage `json:"payload"`
}

type outboundMessage struct {
	Type    string `json:"type"`
	ID      string `json:"id,omitempty"`
	Payload any    `json:"payload"`
}

type quizRef struct {
	QuizID string `json:"quizId"`
}

type submitPayload struct {
	QuizID  string `json:"quizId"`
	Answers []int  `json:"answers"`
}

type questionPayload struct {
	QuizID string `json:"quizId"`
	Index  int    `json:"index"`
}

type participantPayload struct {
	QuizID      string `json:"quizId"`
	Participant string `json:"participant"`
}

type submittedResult struct {
	QuizID string `json:"quizId"`
}

type amountResult struct {
	QuizID string `json:"quizId"`
	Amount uint64 `json:"amount"`
}

type countResult struct {
	QuizID string `json:"quizId"`
	Count  int    `json:"count"`
}

type hasSubmittedResult struct {
	QuizID      string `json:"quizId"`
	Participant string `json:"participant"`
	Submitted   bool   `json:"submitted"`
}

type quizzesResult struct {
	IDs   []string `json:"ids"`
	Count int      `json:"count"`
}

type errorPayload struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

var errBadRequest = errors.New("bad request")

// ServeWS upgrades the request and serves contest commands for the caller named by userId.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	caller := r.URL.Query().Get("userId")
	if caller == "" {
		http.Error(w, "missing userId", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("ws upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			return
		}
		typ, payload, err := h.dispatch(r.Context(), caller, inbound)
		out := outboundMessage{Type: typ, ID: inbound.ID, Payload: payload}
		if err != nil {
			kind := domain.Kind(err)
			if errors.Is(err, errBadRequest) {
				kind = "bad_request"
			}
			out = outboundMessage{Type: "error", ID: inbound.ID, Payload: errorPayload{Kind: kind, Message: err.Error()}}
		}
		if err := conn.WriteJSON(out); err != nil {
			h.log.Warn("ws write error", zap.Error(err))
			return
		}
	}
}

func (h *WSHandler) dispatch(ctx context.Context, caller string, msg inboundMessage) (string, any, error) {
	switch msg.Type {
	case "create":
		var in domain.CreateQuizInput
		if err := decode(msg.Payload, &in); err != nil {
			return "", nil, err
		}
		summary, err := h.service.CreateQuiz(ctx, caller, in)
		return "created", summary, err
	case "submit":
		var p submitPayload
		if err := decode(msg.Payload, &p); err != nil {
			return "", nil, err
		}
		_, err := h.service.Submit(ctx, p.QuizID, caller, p.Answers)
		return "submitted", submittedResult{QuizID: p.QuizID}, err
	case "finalize":
		ref, err := decodeRef(msg.Payload)
		if err != nil {
			return "", nil, err
		}
		winners, err := h.service.Finalize(ctx, ref.QuizID, caller)
		return "finalized", winners, err
	case "claim":
		ref, err := decodeRef(msg.Payload)
		if err != nil {
			return "", nil, err
		}
		cert, err := h.service.Claim(ctx, ref.QuizID, caller)
		return "certificate", cert, err
	case "withdraw":
		ref, err := decodeRef(msg.Payload)
		if err != nil {
			return "", nil, err
		}
		amount, err := h.service.WithdrawRemaining(ctx, ref.QuizID, caller)
		return "withdrawn", amountResult{QuizID: ref.QuizID, Amount: amount}, err
	case "summary":
		ref, err := decodeRef(msg.Payload)
		if err != nil {
			return "", nil, err
		}
		summary, err := h.service.Summary(ctx, ref.QuizID)
		return "summary", summary, err
	case "prizes":
		ref, err := decodeRef(msg.Payload)
		if err != nil {
			return "", nil, err
		}
		prizes, err := h.service.PrizeDistribution(ctx, ref.QuizID)
		return "prizes", prizes, err
	case "winners":
		ref, err := decodeRef(msg.Payload)
		if err != nil {
			return "", nil, err
		}
		winners, err := h.service.Winners(ctx, ref.QuizID)
		return "winners", winners, err
	case "questionCount":
		ref, err := decodeRef(msg.Payload)
		if err != nil {
			return "", nil, err
		}
		n, err := h.service.QuestionCount(ctx, ref.QuizID)
		return "questionCount", countResult{QuizID: ref.QuizID, Count: n}, err
	case "question":
		var p questionPayload
		if err := decode(msg.Payload, &p); err != nil {
			return "", nil, err
		}
		view, err := h.service.Question(ctx, p.QuizID, p.Index)
		return "question", view, err
	case "hasSubmitted":
		var p participantPayload
		if err := decode(msg.Payload, &p); err != nil {
			return "", nil, err
		}
		if p.Participant == "" {
			p.Participant = caller
		}
		ok, err := h.service.HasSubmitted(ctx, p.QuizID, p.Participant)
		return "hasSubmitted", hasSubmittedResult{QuizID: p.QuizID, Participant: p.Participant, Submitted: ok}, err
	case "balance":
		ref, err := decodeRef(msg.Payload)
		if err != nil {
			return "", nil, err
		}
		amount, err := h.service.RemainingBalance(ctx, ref.QuizID)
		return "balance", amountResult{QuizID: ref.QuizID, Amount: amount}, err
	case "quizzes":
		ids, err := h.service.ListQuizzes(ctx)
		if err != nil {
			return "", nil, err
		}
		count, err := h.service.QuizCount(ctx)
		return "quizzes", quizzesResult{IDs: ids, Count: count}, err
	default:
		return "", nil, fmt.Errorf("%w: unsupported message type %q", errBadRequest, msg.Type)
	}
}

func decode(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return fmt.Errorf("%w: missing payload", errBadRequest)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}

func decodeRef(raw json.RawMessage) (quizRef, error) {
	var ref quizRef
	err := decode(raw, &ref)
	return ref, err
}
