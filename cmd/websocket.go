package main

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"freelanceBack/internal/models"
	"freelanceBack/internal/services"
)

const (
	readLimit     = 1 << 20
	readDeadline  = 120 * time.Second
	writeDeadline = 5 * time.Second
	pingInterval  = 15 * time.Second
)

type directMsg struct {
	userID string
	msg    models.Message
}

type unreg struct {
	userID string
	conn   *websocket.Conn
}

type Client struct {
	ID     string
	Socket *websocket.Conn
}

// WebSocketManager owns the live connection table. All access to clients
// happens on the Run goroutine.
type WebSocketManager struct {
	clients    map[string]*websocket.Conn
	direct     chan directMsg
	register   chan Client
	unregister chan unreg
	messages   *services.MessageService
}

func NewWebSocketManager(messages *services.MessageService) *WebSocketManager {
	return &WebSocketManager{
		clients:    make(map[string]*websocket.Conn),
		direct:     make(chan directMsg),
		register:   make(chan Client),
		unregister: make(chan unreg),
		messages:   messages,
	}
}

func (ws *WebSocketManager) Run() {
	for {
		select {
		case client := <-ws.register:
			// a newer socket for the same user replaces the old one
			if old, ok := ws.clients[client.ID]; ok && old != nil && old != client.Socket {
				_ = old.Close()
			}
			ws.clients[client.ID] = client.Socket
			log.Printf("WS register user=%s", client.ID)

		case u := <-ws.unregister:
			if cur, ok := ws.clients[u.userID]; ok && cur == u.conn {
				_ = cur.Close()
				delete(ws.clients, u.userID)
				log.Printf("WS unregister user=%s", u.userID)
			}

		case dm := <-ws.direct:
			if conn, ok := ws.clients[dm.userID]; ok {
				_ = conn.SetWriteDeadline(time.Now().Add(writeDeadline))
				if err := conn.WriteJSON(dm.msg); err != nil {
					log.Printf("direct send error to=%s: %v", dm.userID, err)
					_ = conn.Close()
					delete(ws.clients, dm.userID)
				}
			} else {
				log.Printf("direct skip: user=%s offline", dm.userID)
			}
		}
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin:       func(r *http.Request) bool { return true },
	ReadBufferSize:    1024,
	WriteBufferSize:   1024,
	EnableCompression: true,
}

// WebSocketHandler upgrades an authenticated request and keeps the socket
// registered under the caller's user id from the JWT context.
func (app *application) WebSocketHandler(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value("user_id").(string)
	if userID == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("WebSocket upgrade error:", err)
		return
	}

	conn.SetReadLimit(readLimit)
	conn.SetReadDeadline(time.Now().Add(readDeadline))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(readDeadline))
		return nil
	})

	app.wsManager.register <- Client{ID: userID, Socket: conn}

	go pingLoop(app.wsManager, conn, userID)
	go app.wsManager.readLoop(conn, userID)
}

func pingLoop(ws *WebSocketManager, conn *websocket.Conn, uid string) {
	t := time.NewTicker(pingInterval)
	defer t.Stop()
	for range t.C {
		_ = conn.SetWriteDeadline(time.Now().Add(writeDeadline))
		if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
			_ = writeClose(conn, websocket.CloseGoingAway, "ping error")
			ws.unregister <- unreg{userID: uid, conn: conn}
			return
		}
	}
}

func (ws *WebSocketManager) readLoop(conn *websocket.Conn, userID string) {
	defer func() {
		ws.unregister <- unreg{userID: userID, conn: conn}
		_ = conn.Close()
	}()

	for {
		var msg models.Message
		if err := conn.ReadJSON(&msg); err != nil {
			log.Println("read json error:", err)
			_ = writeClose(conn, websocket.CloseNormalClosure, "read error")
			return
		}

		if msg.SenderID != userID {
			log.Println("reject: sender_id does not match authenticated user")
			continue
		}
		if msg.ProjectID == "" || msg.ReceiverID == "" || strings.TrimSpace(msg.Content) == "" {
			log.Println("reject: empty project, receiver or content")
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		saved, err := ws.messages.SendMessage(ctx, msg)
		cancel()
		if err != nil {
			log.Println("save message error:", err)
			continue
		}

		ws.direct <- directMsg{userID: saved.ReceiverID, msg: saved}
	}
}

func writeClose(conn *websocket.Conn, code int, reason string) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeDeadline))
	return conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(code, reason),
		time.Now().Add(writeDeadline),
	)
}
