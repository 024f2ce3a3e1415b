package ws

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
)

// Client é uma conexão websocket. Owner é o id do usuário ou da empresa
// autenticado no upgrade; vazio para conexões anônimas.
type Client struct {
	ID    string
	Owner string
	Send  chan []byte
}

type ownerMsg struct {
	owner string
	msg   []byte
}

type Hub struct {
	mu       sync.RWMutex
	clients  map[string]*Client            // id -> client
	owners   map[string]map[string]*Client // owner -> id -> client
	register chan *Client
	unreg    chan *Client

	sendAll chan []byte   // envio para todos
	toOwner chan ownerMsg // envio para as conexões de um dono

	log     *slog.Logger
	stop    chan struct{}
	stopped chan struct{}

	nextID atomic.Uint64
}

func NewHub(log *slog.Logger) *Hub {
	if log == nil {
		log = slog.Default()
	}
	return &Hub{
		clients:  make(map[string]*Client),
		owners:   make(map[string]map[string]*Client),
		register: make(chan *Client),
		unreg:    make(chan *Client),
		sendAll:  make(chan []byte, 1024),
		toOwner:  make(chan ownerMsg, 1024),
		log:      log.With("cmp", "ws.hub"),
		stop:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
}

func (h *Hub) newID() string {
	id := h.nextID.Add(1)
	return fmt.Sprintf("c%d", id)
}

func (h *Hub) Run() {
	h.log.Info("hub_run_start")
	defer close(h.stopped)

	for {
		select {
		case c := <-h.register:
			h.add(c)
			h.log.Info("client_registered", "id", c.ID, "owner", c.Owner, "total", h.Count())

		case c := <-h.unreg:
			if c != nil && h.remove(c.ID) {
				h.log.Info("client_unregistered", "id", c.ID, "total", h.Count())
			}

		case msg := <-h.sendAll:
			h.mu.RLock()
			targets := make([]*Client, 0, len(h.clients))
			for _, c := range h.clients {
				targets = append(targets, c)
			}
			h.mu.RUnlock()
			h.deliver(targets, msg)

		case m := <-h.toOwner:
			h.mu.RLock()
			targets := make([]*Client, 0, len(h.owners[m.owner]))
			for _, c := range h.owners[m.owner] {
				targets = append(targets, c)
			}
			h.mu.RUnlock()
			if len(targets) == 0 {
				h.log.Debug("send_owner_offline", "owner", m.owner)
				continue
			}
			h.deliver(targets, m.msg)

		case <-h.stop:
			h.mu.Lock()
			for id, c := range h.clients {
				close(c.Send)
				delete(h.clients, id)
			}
			h.owners = make(map[string]map[string]*Client)
			h.mu.Unlock()
			h.log.Info("hub_run_stop")
			return
		}
	}
}

// deliver nunca bloqueia o hub: cliente lento é desconectado.
func (h *Hub) deliver(targets []*Client, msg []byte) {
	for _, c := range targets {
		select {
		case c.Send <- msg:
		default:
			h.remove(c.ID)
			h.log.Warn("send_drop_slow", "id", c.ID, "owner", c.Owner)
		}
	}
}

func (h *Hub) add(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.ID] = c
	if c.Owner == "" {
		return
	}
	set := h.owners[c.Owner]
	if set == nil {
		set = make(map[string]*Client)
		h.owners[c.Owner] = set
	}
	set[c.ID] = c
}

func (h *Hub) remove(id string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	c, ok := h.clients[id]
	if !ok {
		return false
	}
	delete(h.clients, id)
	if set := h.owners[c.Owner]; set != nil {
		delete(set, id)
		if len(set) == 0 {
			delete(h.owners, c.Owner)
		}
	}
	close(c.Send)
	return true
}

// Count devolve o número de conexões registradas.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) Stop() {
	close(h.stop)
	<-h.stopped
}

// Após Stop as operações abaixo viram no-op em vez de bloquear.

// Register atribui o ID antes de entregar o cliente ao loop, então quem
// chamou pode ler c.ID logo em seguida.
func (h *Hub) Register(c *Client) {
	if c.ID == "" {
		c.ID = h.newID()
	}
	select {
	case h.register <- c:
	case <-h.stopped:
		close(c.Send)
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case h.unreg <- c:
	case <-h.stopped:
	}
}

func (h *Hub) Broadcast(b []byte) {
	select {
	case h.sendAll <- b:
	case <-h.stopped:
	}
}

// SendToOwner entrega b a todas as conexões abertas de owner.
func (h *Hub) SendToOwner(owner string, b []byte) {
	select {
	case h.toOwner <- ownerMsg{owner: owner, msg: b}:
	case <-h.stopped:
	}
}

// Route envia para o destinatário ou, sem destinatário, para todos.
func (h *Hub) Route(recipient string, b []byte) {
	if recipient == "" {
		h.Broadcast(b)
		return
	}
	h.SendToOwner(recipient, b)
}
