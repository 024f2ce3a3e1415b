package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Werneck0live/job-portal/internal/auth"
	"github.com/Werneck0live/job-portal/internal/broker"
	"github.com/Werneck0live/job-portal/internal/config"
	"github.com/Werneck0live/job-portal/internal/handlers"
	"github.com/Werneck0live/job-portal/internal/utils"
	"github.com/Werneck0live/job-portal/internal/ws"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Ajuste CORS conforme necessário
	CheckOrigin: func(r *http.Request) bool { return true },
}

func main() {
	wscfg := config.LoadWSConfig()

	_ = config.InitLogger(wscfg.LogLevel)
	log := slog.Default().With("svc", "ws")
	if err := wscfg.Validate(); err != nil {
		log.Error("config_invalid", "err", err)
		os.Exit(1)
	}
	hub := ws.NewHub(log)
	go hub.Run()

	tokens := auth.NewTokens(wscfg.JWTSecret, wscfg.IdentityTokenSecret, 0)

	// Conecta no Rabbit e começa a consumir
	consumer, err := broker.NewConsumer(wscfg.RabbitURI, wscfg.RabbitQueue, wscfg.ConsumerPrefetch, log)
	if err != nil {
		log.Error("rabbit_consumer_start_error", "err", err)
		os.Exit(1)
	}
	defer func() { _ = consumer.Close() }()

	// encaminha os eventos para o destinatário (ou para todos)
	go consumer.Forward(func(m broker.Message) {
		hub.Route(m.Recipient, m.Body)
	})

	// HTTP: /ws e /healthz
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		handleWS(hub, tokens, w, r, log)
	})
	mux.HandleFunc("/healthz", handlers.Health)

	srv := &http.Server{
		Addr:              wscfg.Addr,
		Handler:           handlers.LogMiddleware(log.With("cmp", "http"))(mux),
		ReadHeaderTimeout: wscfg.ReadHeaderTimeout,
	}

	go func() {
		log.Info("ws_listen", "addr", wscfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http_server_error", "err", err)
			os.Exit(1)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), wscfg.ShutdownTimeout)
	defer cancel()
	_ = srv.Shutdown(ctx)
	hub.Stop()

	log.Info("stopped")
}

// ownerFromRequest aceita token de empresa ou de usuário; sem token a conexão
// só recebe broadcasts.
func ownerFromRequest(tokens *auth.Tokens, r *http.Request) (string, error) {
	raw := auth.TokenFromRequest(r)
	if raw == "" {
		return "", nil
	}
	if id, err := tokens.ParseCompany(raw); err == nil {
		return id, nil
	}
	return tokens.ParseIdentity(raw)
}

func handleWS(hub *ws.Hub, tokens *auth.Tokens, w http.ResponseWriter, r *http.Request, log *slog.Logger) {
	owner, err := ownerFromRequest(tokens, r)
	if err != nil {
		utils.Fail(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("ws_upgrade_error", "err", err)
		return
	}

	client := &ws.Client{Owner: owner, Send: make(chan []byte, 256)}
	hub.Register(client)
	log.Info("ws_client_connected", "id", client.ID, "owner", owner)

	// writer: mensagens do hub + ping periódico
	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer func() {
			ticker.Stop()
			_ = conn.Close()
		}()
		for {
			select {
			case msg, ok := <-client.Send:
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				if !ok {
					_ = conn.WriteMessage(websocket.CloseMessage, nil)
					return
				}
				if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					return
				}
			case <-ticker.C:
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	// reader: só detecta o fechamento
	go func() {
		defer func() {
			hub.Unregister(client)
			_ = conn.Close()
		}()
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			_ = conn.SetReadDeadline(time.Now().Add(pongWait))
			return nil
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}()
}
