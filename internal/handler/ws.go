package handler

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"sentinel/internal/utils"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

type WSMessage struct {
	Type   string      `json:"type"`
	Target string      `json:"target,omitempty"`
	Data   interface{} `json:"data,omitempty"`
}

type wsScanRequest struct {
	Targets  []string `json:"targets"`
	Online   *bool    `json:"online,omitempty"`
	Language string   `json:"language,omitempty"`
}

// HandleWS streams verdicts for batches of targets. Each target is scanned
// independently; results arrive in completion order.
func (h *Handler) HandleWS(c echo.Context) error {
	ws, err := h.Upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = ws.Close()
	}()

	ctx := c.Request().Context()
	var inflight sync.WaitGroup
	defer inflight.Wait()

	for {
		_, msg, err := ws.ReadMessage()
		if err != nil {
			break
		}

		var input wsScanRequest
		if err := json.Unmarshal(msg, &input); err != nil {
			h.write(ws, WSMessage{Type: "error", Data: "invalid request"})
			continue
		}
		online := true
		if input.Online != nil {
			online = *input.Online
		}

		var batch sync.WaitGroup
		for _, target := range input.Targets {
			target = strings.TrimSpace(target)
			if !utils.IsAcceptableInput(target) {
				continue
			}
			batch.Add(1)
			inflight.Add(1)
			go func(t string) {
				defer inflight.Done()
				defer batch.Done()
				h.streamScan(ctx, ws, t, online, input.Language)
			}(target)
		}

		inflight.Add(1)
		go func() {
			defer inflight.Done()
			batch.Wait()
			h.write(ws, WSMessage{Type: "all_done"})
		}()
	}
	return nil
}

func (h *Handler) streamScan(ctx context.Context, ws *websocket.Conn, target string, online bool, language string) {
	h.write(ws, WSMessage{Type: "log", Target: target, Data: "Checking trust anchors and DNSSEC for " + target})
	resp := h.scan(ctx, target, online, language)
	h.write(ws, WSMessage{Type: "result", Target: target, Data: resp})
	h.write(ws, WSMessage{Type: "done", Target: target})
}

func (h *Handler) write(ws *websocket.Conn, msg WSMessage) {
	b, _ := json.Marshal(msg)
	h.wsMu.Lock()
	defer h.wsMu.Unlock()
	_ = ws.WriteMessage(websocket.TextMessage, b)
}
