package websocket

import (
	"BlackJack/internal/utils"
)

type HubInterface interface {
	SendToSession(sessionID string, msg OutgoingMessage)
	Close()
}

// Hub 按会话 ID 管理推送连接，每个会话只保留最新的一条连接
type Hub struct {
	clients    map[string]*Client // sessionID -> client
	register   chan *Client
	unregister chan *Client
	sendOne    chan sendReq
	quit       chan struct{}
}

type sendReq struct {
	SessionID string
	Message   OutgoingMessage
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		sendOne:    make(chan sendReq, 64),
		quit:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	utils.Log.Info("hub started")

	for {
		select {
		case c := <-h.register:
			if old, ok := h.clients[c.SessionID]; ok && old != c {
				close(old.Send)
			}
			h.clients[c.SessionID] = c
			utils.Log.Debug("hub register", "session", c.SessionID, "clients", len(h.clients))

		case c := <-h.unregister:
			// 只移除当前登记的那条连接，被替换的旧连接已关闭
			if cur, ok := h.clients[c.SessionID]; ok && cur == c {
				delete(h.clients, c.SessionID)
				close(c.Send)
				utils.Log.Debug("hub unregister", "session", c.SessionID, "clients", len(h.clients))
			}

		case req := <-h.sendOne:
			if client, ok := h.clients[req.SessionID]; ok {
				select {
				case client.Send <- req.Message:
				default:
					utils.Log.Warn("push dropped, client too slow", "session", req.SessionID, "event", req.Message.Event)
				}
			}

		case <-h.quit:
			for id, c := range h.clients {
				close(c.Send)
				delete(h.clients, id)
			}
			return
		}
	}
}

// SendToSession 非阻塞投递；Hub 已关闭或队列满时丢弃
func (h *Hub) SendToSession(sessionID string, msg OutgoingMessage) {
	select {
	case h.sendOne <- sendReq{SessionID: sessionID, Message: msg}:
	case <-h.quit:
	default:
		utils.Log.Warn("hub queue full, push dropped", "session", sessionID, "event", msg.Event)
	}
}

func (h *Hub) Close() {
	close(h.quit)
}
