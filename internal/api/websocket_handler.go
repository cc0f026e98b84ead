package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/kingrain94/realty-api/internal/api/dto"
	"github.com/kingrain94/realty-api/internal/domain"
	"github.com/kingrain94/realty-api/internal/utils"
	"github.com/kingrain94/realty-api/pkg/logger"
)

const (
	websocketReadBufferSize        = 1024
	websocketWriteBufferSize       = 1024
	websocketSendChannelBufferSize = 256
	websocketWriteWait             = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  websocketReadBufferSize,
	WriteBufferSize: websocketWriteBufferSize,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

//go:generate mockery --name EventSubscriber --inpackage --testonly
type EventSubscriber interface {
	Subscribe(ctx context.Context, tenantID string, callback func(*domain.Event)) error
	Unsubscribe(tenantID string)
	Close()
}

type Client struct {
	conn     *websocket.Conn
	tenantID string
	send     chan []byte
}

// WebSocketHandler streams job and content events to backoffice clients. One
// Redis subscription is held per tenant while it has connected clients.
type WebSocketHandler struct {
	*BaseHandler
	clients       map[*Client]bool
	register      chan *Client
	unregister    chan *Client
	mutex         sync.Mutex
	logger        *logger.Logger
	events        EventSubscriber
	ctx           context.Context
	cancel        context.CancelFunc
	tenantClients map[string]int // Count of clients per tenant
}

func NewWebSocketHandler(events EventSubscriber, logger *logger.Logger) *WebSocketHandler {
	ctx, cancel := context.WithCancel(context.Background())
	return &WebSocketHandler{
		clients:       make(map[*Client]bool),
		register:      make(chan *Client),
		unregister:    make(chan *Client),
		logger:        logger,
		events:        events,
		ctx:           ctx,
		cancel:        cancel,
		tenantClients: make(map[string]int),
	}
}

// HandleWebSocket godoc
// @Summary Stream tenant events
// @Description Upgrades to a WebSocket that receives scrape, photo, index and newsletter events of the tenant
// @Tags admin-events
// @Security BearerAuth
// @Success 101
// @Failure 400 {object} dto.Error
// @Router /admin/events [get]
func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	tenant, err := utils.TenantFromContext(h.RequestCtx(c))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.Error{Error: "A tenant must be selected for this operation"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("Failed to upgrade connection", zap.Error(err))
		return
	}

	client := &Client{
		conn:     conn,
		tenantID: tenant.ID,
		send:     make(chan []byte, websocketSendChannelBufferSize),
	}
	h.register <- client

	go h.writePump(client)
	go h.readPump(client)
}

func (h *WebSocketHandler) Start() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			h.tenantClients[client.tenantID]++

			// Subscribe to tenant's channel if this is the first client
			if h.tenantClients[client.tenantID] == 1 {
				if err := h.events.Subscribe(h.ctx, client.tenantID, h.broadcast); err != nil {
					h.logger.Error("Failed to subscribe to tenant events", err, zap.String("tenant_id", client.tenantID))
				}
			}
			h.mutex.Unlock()

		case client := <-h.unregister:
			h.mutex.Lock()
			h.removeClient(client)
			h.mutex.Unlock()

		case <-h.ctx.Done():
			return
		}
	}
}

func (h *WebSocketHandler) Stop() {
	h.cancel()
	h.events.Close()
}

// removeClient must be called with the mutex held.
func (h *WebSocketHandler) removeClient(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.send)

	h.tenantClients[client.tenantID]--
	if h.tenantClients[client.tenantID] == 0 {
		h.events.Unsubscribe(client.tenantID)
		delete(h.tenantClients, client.tenantID)
	}
}

// broadcast fans an event out to the clients of its tenant. Clients that
// cannot keep up are dropped.
func (h *WebSocketHandler) broadcast(event *domain.Event) {
	message, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("Failed to marshal event", err, zap.String("event_id", event.ID))
		return
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	for client := range h.clients {
		if client.tenantID != event.TenantID {
			continue
		}
		select {
		case client.send <- message:
		default:
			h.removeClient(client)
		}
	}
}

func (h *WebSocketHandler) writePump(client *Client) {
	defer func() {
		client.conn.Close()
	}()

	for message := range client.send {
		_ = client.conn.SetWriteDeadline(time.Now().Add(websocketWriteWait))
		if err := client.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}

	// Channel was closed, send close message
	_ = client.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

func (h *WebSocketHandler) readPump(client *Client) {
	defer func() {
		h.unregister <- client
		client.conn.Close()
	}()

	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("Unexpected websocket close", zap.String("tenant_id", client.tenantID), zap.Error(err))
			}
			return
		}
	}
}
