package webform

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/DevelopIT-LTD/escobar-bot/internal/flow"
)

const maxBodySize = 64 << 10

// Handler приймає готові заявки від зовнішньої веб-форми. Поля не
// перевіряються повторно — валідація була на стороні форми.
type Handler struct {
	engine *flow.Engine
	log    *slog.Logger
}

func NewHandler(engine *flow.Engine, log *slog.Logger) *Handler {
	return &Handler{engine: engine, log: log}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "webform.ServeHTTP"

	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		h.log.Error("помилка читання тіла запиту", "op", op, "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	// недоставка у приймач не видима відправнику, заявка не губиться
	// з його точки зору
	res, err := h.engine.SubmitExternal(r.Context(), body)

	w.Header().Set("Content-Type", "application/json")
	reply := map[string]string{"status": "accepted"}
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		reply["status"] = "invalid"
	}
	if res.Reply != nil {
		reply["message"] = res.Reply.Text
	}
	_ = json.NewEncoder(w).Encode(reply)
}
