package service

import (
	"context"
	"net/http"
	"skillbloom_backend/pkg/logger"
	"skillbloom_backend/pkg/monitoring"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WSMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// ServeReadingStream 升级为 WebSocket，每隔 interval 推送一条新读数，客户端断开后返回
func (s *BabyMonitorService) ServeReadingStream(w http.ResponseWriter, r *http.Request, userID uint, interval time.Duration) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Error("WebSocket upgrade failed", zap.Error(err), zap.Uint("userId", userID))
		return
	}
	defer conn.Close()

	monitoring.BabyStreams.Inc()
	defer monitoring.BabyStreams.Dec()

	// 连接被劫持后 r.Context() 不再可靠，由读循环负责取消
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go readUntilClosed(conn, cancel, userID)

	if interval <= 0 {
		interval = 5 * time.Second
	}
	ticker := time.NewTicker(interval)
	ping := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		ping.Stop()
	}()

	push := func() bool {
		reading, err := s.Current(ctx, userID)
		if err != nil {
			logger.Log.Error("Failed to generate baby reading", zap.Error(err), zap.Uint("userId", userID))
			return ctx.Err() == nil
		}
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		return conn.WriteJSON(WSMessage{Type: "reading", Data: reading}) == nil
	}

	if !push() {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !push() {
				return
			}
		case <-ping.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readUntilClosed 只处理 pong 和关闭帧，客户端发来的数据直接丢弃
func readUntilClosed(conn *websocket.Conn, cancel context.CancelFunc, userID uint) {
	defer cancel()
	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error { conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Log.Warn("WebSocket unexpected close", zap.Error(err), zap.Uint("userId", userID))
			}
			return
		}
	}
}
