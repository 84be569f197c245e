package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"cabinet/internal/application/inbox"
	proto "cabinet/internal/shared/hubprotocol/cabinet"
	"cabinet/internal/shared/goroutine"
)

const (
	streamWriteWait      = 10 * time.Second
	streamPongWait       = 90 * time.Second
	streamReadLimit      = 64 * 1024
	streamHandshakeLimit = 10 * time.Second
)

// stream is one realtime WebSocket. A dropped stream is not redialed; live
// updates resume with the next subscription.
type stream struct {
	conn      *websocket.Conn
	closeOnce sync.Once
	done      chan struct{}
}

func (s *stream) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.done)
		_ = s.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(streamWriteWait))
		err = s.conn.Close()
	})
	return err
}

func (s *stream) closed() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// SubscribeMessages streams message inserts visible to the caller while key is open.
func (c *Client) SubscribeMessages(ctx context.Context, cabinetID, key string, handler func(proto.MessageData)) (inbox.Subscription, error) {
	path := "/api/cabinets/" + url.PathEscape(cabinetID) + "/realtime/messages"
	query := url.Values{"conversation": {key}}
	s, err := c.subscribe(ctx, path, query, func(msg *proto.InboundMessage) {
		if msg.Type != proto.MsgTypeMessageInserted {
			return
		}
		var data proto.MessageData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.logger.Warnw("failed to decode message event", "error", err)
			return
		}
		handler(data)
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// SubscribeNotifications streams changes to the caller's notification log.
func (c *Client) SubscribeNotifications(ctx context.Context, cabinetID string, handler func(proto.NotificationData)) (inbox.Subscription, error) {
	path := "/api/cabinets/" + url.PathEscape(cabinetID) + "/realtime/notifications"
	s, err := c.subscribe(ctx, path, nil, func(msg *proto.InboundMessage) {
		if msg.Type != proto.MsgTypeNotificationChanged {
			return
		}
		var data proto.NotificationData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.logger.Warnw("failed to decode notification event", "error", err)
			return
		}
		handler(data)
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (c *Client) subscribe(ctx context.Context, path string, query url.Values, dispatch func(*proto.InboundMessage)) (*stream, error) {
	wsURL, err := c.buildWSURL(path, query)
	if err != nil {
		return nil, fmt.Errorf("build websocket url: %w", err)
	}

	dialer := websocket.Dialer{HandshakeTimeout: streamHandshakeLimit}
	header := http.Header{}
	header.Set("Authorization", "Bearer "+c.token)
	header.Set("User-Agent", userAgent)

	conn, resp, err := dialer.DialContext(ctx, wsURL, header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("websocket dial failed: status=%d, err=%w", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("websocket dial: %w", err)
	}

	s := &stream{conn: conn, done: make(chan struct{})}
	goroutine.SafeGo(c.logger, "realtime-stream-reader", func() {
		c.readPump(s, dispatch)
	})
	return s, nil
}

func (c *Client) readPump(s *stream, dispatch func(*proto.InboundMessage)) {
	conn := s.conn
	conn.SetReadLimit(streamReadLimit)
	_ = conn.SetReadDeadline(time.Now().Add(streamPongWait))
	conn.SetPingHandler(func(appData string) error {
		_ = conn.SetReadDeadline(time.Now().Add(streamPongWait))
		err := conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(streamWriteWait))
		if err == websocket.ErrCloseSent {
			return nil
		}
		return err
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if !s.closed() {
				c.logger.Warnw("realtime stream dropped", "error", err)
				_ = conn.Close()
			}
			return
		}

		var msg proto.InboundMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		dispatch(&msg)
	}
}

func (c *Client) buildWSURL(path string, query url.Values) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}

	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	case "http":
		u.Scheme = "ws"
	default:
		u.Scheme = "wss"
	}

	u.Path = strings.TrimSuffix(u.Path, "/") + path
	if query != nil {
		u.RawQuery = query.Encode()
	}
	return u.String(), nil
}
