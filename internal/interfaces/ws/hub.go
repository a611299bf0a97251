package ws

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/application/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/pkg/jwt"
)

var _ inventory.MovementPublisher = (*Hub)(nil)

// EventMovementApplied nombre del evento enviado tras cada movimiento confirmado.
const EventMovementApplied = "movement.applied"

// LocalUserID usuario autenticado del handshake.
const LocalUserID = "user_id"

// Client lo que el hub necesita de una conexión (*websocket.Conn lo cumple).
type Client interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Balance saldo resultante de un contador tocado por el movimiento.
type Balance struct {
	ProductLocationID int64 `json:"productLocationId"`
	CurrentStock      int64 `json:"currentStock"`
}

// Event mensaje del feed en vivo.
type Event struct {
	Event    string                `json:"event"`
	Data     *dto.MovementResponse `json:"data"`
	Balances []Balance             `json:"balances"`
}

// Hub mantiene las conexiones del feed y difunde los movimientos confirmados.
type Hub struct {
	clients    map[Client]bool
	register   chan Client
	unregister chan Client
	broadcast  chan []byte
	done       chan struct{}
	mutex      sync.Mutex
	log        zerolog.Logger
}

// NewHub crea el hub; buffer es la cantidad de eventos que se encolan antes de descartar.
func NewHub(buffer int, log zerolog.Logger) *Hub {
	if buffer <= 0 {
		buffer = 256
	}
	return &Hub{
		clients:    make(map[Client]bool),
		register:   make(chan Client),
		unregister: make(chan Client),
		broadcast:  make(chan []byte, buffer),
		done:       make(chan struct{}),
		log:        log,
	}
}

// Run atiende registros y difusiones hasta que ctx se cancela; al salir cierra todas las conexiones.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mutex.Lock()
			for c := range h.clients {
				_ = c.Close()
				delete(h.clients, c)
			}
			h.mutex.Unlock()
			return

		case c := <-h.register:
			h.mutex.Lock()
			h.clients[c] = true
			n := len(h.clients)
			h.mutex.Unlock()
			h.log.Debug().Int("clients", n).Msg("cliente ws conectado")

		case c := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				_ = c.Close()
			}
			h.mutex.Unlock()

		case message := <-h.broadcast:
			h.mutex.Lock()
			for c := range h.clients {
				if err := c.WriteMessage(websocket.TextMessage, message); err != nil {
					_ = c.Close()
					delete(h.clients, c)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// Register agrega una conexión. Si el hub ya se detuvo, la cierra.
func (h *Hub) Register(c Client) {
	select {
	case h.register <- c:
	case <-h.done:
		_ = c.Close()
	}
}

// Unregister quita y cierra una conexión.
func (h *Hub) Unregister(c Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// ClientCount conexiones activas.
func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

// PublishMovement encola el evento sin bloquear al motor; si el buffer está lleno se descarta.
func (h *Hub) PublishMovement(m *entity.Movement, balances map[int64]int64) {
	ev := Event{Event: EventMovementApplied, Data: dto.FromMovement(m), Balances: make([]Balance, 0, len(balances))}
	for id, stock := range balances {
		ev.Balances = append(ev.Balances, Balance{ProductLocationID: id, CurrentStock: stock})
	}
	sort.Slice(ev.Balances, func(i, j int) bool {
		return ev.Balances[i].ProductLocationID < ev.Balances[j].ProductLocationID
	})

	payload, err := json.Marshal(ev)
	if err != nil {
		h.log.Error().Err(err).Int64("movement_id", m.ID).Msg("no se pudo serializar evento ws")
		return
	}
	select {
	case h.broadcast <- payload:
	default:
		h.log.Warn().Int64("movement_id", m.ID).Msg("feed ws saturado, evento descartado")
	}
}

// UpgradeRequired rechaza con 426 las peticiones a /ws que no piden upgrade y con 401 las que no
// traen un JWT válido. El navegador no puede enviar cabeceras en el handshake, así que el token
// se acepta en ?token= o en Authorization: Bearer.
func UpgradeRequired(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return c.SendStatus(fiber.StatusUpgradeRequired)
		}
		token := c.Query("token")
		if token == "" {
			if parts := strings.SplitN(c.Get("Authorization"), " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				token = strings.TrimSpace(parts[1])
			}
		}
		if token == "" {
			return unauthorized(c, "MISSING_TOKEN", "Token is required")
		}
		userID, _, err := jwt.Parse(jwtSecret, token)
		if err != nil {
			return unauthorized(c, "INVALID_TOKEN", "Invalid or expired token")
		}
		c.Locals(LocalUserID, userID)
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, code, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorEnvelope{
		Success: false,
		Error:   dto.ErrorResponse{Code: code, Message: message},
	})
}

// Handler conexión del feed: sólo escucha, los mensajes entrantes se ignoran.
func (h *Hub) Handler() fiber.Handler {
	return websocket.New(func(c *websocket.Conn) {
		h.Register(c)
		defer h.Unregister(c)

		for {
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	})
}
