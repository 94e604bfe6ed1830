package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"resumeBuilder/internal/api/middleware"
	"resumeBuilder/internal/auth"
	"resumeBuilder/internal/tasks"
)

const (
	wsAuthTimeout  = 10 * time.Second
	wsPingInterval = 30 * time.Second
	wsWriteTimeout = 5 * time.Second
)

// notificationSource 按用户订阅导出通知，返回消息通道与关闭函数。
type notificationSource interface {
	Subscribe(ctx context.Context, userID uint) (<-chan string, func() error, error)
}

// RedisNotifications 通过 Redis Pub/Sub 订阅 user_notify:<id> 频道。
type RedisNotifications struct {
	client *redis.Client
}

// NewRedisNotifications 构造基于 Redis 的通知源。
func NewRedisNotifications(client *redis.Client) *RedisNotifications {
	return &RedisNotifications{client: client}
}

// Subscribe 订阅用户频道，并把消息体转发到返回的通道。
func (n *RedisNotifications) Subscribe(ctx context.Context, userID uint) (<-chan string, func() error, error) {
	pubsub := n.client.Subscribe(ctx, tasks.NotifyChannel(userID))
	// 等待订阅确认，确保之后发布的消息不会丢失。
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, nil, fmt.Errorf("subscribe %s: %w", tasks.NotifyChannel(userID), err)
	}

	out := make(chan string)
	go func() {
		defer close(out)
		for msg := range pubsub.Channel() {
			select {
			case out <- msg.Payload:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, pubsub.Close, nil
}

// WsHandler 负责 WebSocket 鉴权，并把导出通知推送给客户端。
type WsHandler struct {
	notifications notificationSource
	tokens        middleware.TokenValidator
	logger        *slog.Logger
	upgrader      websocket.Upgrader
}

// NewWsHandler 构造 WebSocket 处理器。allowedOrigins 为空时只允许同源。
func NewWsHandler(notifications notificationSource, tokens middleware.TokenValidator, logger *slog.Logger, allowedOrigins []string) *WsHandler {
	return &WsHandler{
		notifications: notifications,
		tokens:        tokens,
		logger:        logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: originChecker(allowedOrigins),
		},
	}
}

func originChecker(allowedOrigins []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		if len(allowedOrigins) == 0 {
			u, err := url.Parse(origin)
			if err != nil {
				return false
			}
			return strings.EqualFold(u.Host, r.Host)
		}
		for _, allowed := range allowedOrigins {
			if origin == allowed {
				return true
			}
		}
		return false
	}
}

type wsAuthMessage struct {
	Type  string `json:"type"`
	Token string `json:"token"`
}

var errWsAuth = errors.New("websocket auth failed")

// HandleConnection 升级连接，要求首条消息为 {"type":"auth","token":...}，随后转发通知。
func (h *WsHandler) HandleConnection(c *gin.Context) {
	log := requestLogger(c, h.logger).With(slog.String("client_ip", c.ClientIP()))

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn("upgrade websocket failed", slog.Any("error", err))
		return
	}
	defer conn.Close()

	userID, err := h.authenticate(conn)
	if err != nil {
		log.Info("websocket authentication failed", slog.Any("error", err))
		return
	}
	log = log.With(slog.Uint64("user_id", uint64(userID)))

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	messages, closeSub, err := h.notifications.Subscribe(ctx, userID)
	if err != nil {
		log.Error("subscribe notifications failed", slog.Any("error", err))
		writeClose(conn, websocket.CloseInternalServerErr, "subscribe failed")
		return
	}
	defer closeSub()

	// 读循环只用于发现客户端断开。
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	log.Info("websocket subscribed")
	err = forwardNotifications(ctx, conn, messages)
	log.Info("websocket connection closed", slog.Any("reason", err))
}

func (h *WsHandler) authenticate(conn *websocket.Conn) (uint, error) {
	_ = conn.SetReadDeadline(time.Now().Add(wsAuthTimeout))
	defer conn.SetReadDeadline(time.Time{})

	_, message, err := conn.ReadMessage()
	if err != nil {
		return 0, fmt.Errorf("%w: read: %v", errWsAuth, err)
	}

	var msg wsAuthMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		writeClose(conn, websocket.ClosePolicyViolation, "invalid auth payload")
		return 0, fmt.Errorf("%w: decode: %v", errWsAuth, err)
	}
	if msg.Type != "auth" || msg.Token == "" {
		writeClose(conn, websocket.ClosePolicyViolation, "auth required")
		return 0, fmt.Errorf("%w: missing token", errWsAuth)
	}

	claims, err := h.tokens.ValidateToken(msg.Token, auth.TokenTypeAccess)
	if err != nil {
		writeClose(conn, websocket.ClosePolicyViolation, "unauthorized")
		return 0, fmt.Errorf("%w: %v", errWsAuth, err)
	}
	if claims.MustChangePassword {
		writeClose(conn, websocket.ClosePolicyViolation, "password change required")
		return 0, fmt.Errorf("%w: password change required", errWsAuth)
	}
	return claims.UserID, nil
}

func forwardNotifications(ctx context.Context, conn *websocket.Conn, messages <-chan string) error {
	ticker := time.NewTicker(wsPingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case payload, ok := <-messages:
			if !ok {
				writeClose(conn, websocket.CloseGoingAway, "notifications closed")
				return errors.New("notification channel closed")
			}
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.WriteMessage(websocket.TextMessage, []byte(payload)); err != nil {
				return fmt.Errorf("write message: %w", err)
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, []byte("ping"), time.Now().Add(wsWriteTimeout)); err != nil {
				return fmt.Errorf("write ping: %w", err)
			}
		}
	}
}

func writeClose(conn *websocket.Conn, code int, text string) {
	_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, text), time.Now().Add(wsWriteTimeout))
}
