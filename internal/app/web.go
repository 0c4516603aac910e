package app

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gorilla/websocket"

	"github.com/relabs-tech/gnss_computer/internal/config"
	"github.com/relabs-tech/gnss_computer/internal/pa1010d"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local development
	},
}

// RunWeb serves the latest fix over a JSON endpoint and a websocket
// stream, fed from the MQTT fix topic.
func RunWeb() error {
	cfg := config.Get()

	var (
		mu      sync.RWMutex
		lastFix pa1010d.Fix
		haveFix bool
	)

	// 1) Connect to MQTT broker
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDWeb)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	log.Printf("web: connected to MQTT broker at %s", cfg.MQTTBroker)

	// 2) Subscribe to the fix topic and keep the latest snapshot
	token := client.Subscribe(cfg.TopicGPSFix, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var fix pa1010d.Fix
		if err := json.Unmarshal(msg.Payload(), &fix); err != nil {
			log.Printf("web: fix unmarshal error: %v", err)
			return
		}
		mu.Lock()
		lastFix = fix
		haveFix = true
		mu.Unlock()
	})
	token.Wait()
	if token.Error() != nil {
		return token.Error()
	}
	log.Printf("web: subscribed to %s", cfg.TopicGPSFix)

	// 3) JSON API endpoint: latest fix
	http.HandleFunc("/api/fix", func(w http.ResponseWriter, r *http.Request) {
		mu.RLock()
		defer mu.RUnlock()

		if !haveFix {
			http.Error(w, "no data yet", http.StatusServiceUnavailable)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(lastFix); err != nil {
			log.Printf("web: json encode error: %v", err)
		}
	})

	// 4) Websocket live stream: one snapshot per second
	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("web: websocket upgrade error: %v", err)
			return
		}
		defer conn.Close()

		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()

		for range ticker.C {
			mu.RLock()
			fix, ok := lastFix, haveFix
			mu.RUnlock()
			if !ok {
				continue
			}
			if err := conn.WriteJSON(fix); err != nil {
				log.Printf("web: websocket write error: %v", err)
				return
			}
		}
	})

	// 5) Static files from ./web as the root
	fs := http.FileServer(http.Dir("web"))
	http.Handle("/", fs)

	addr := fmt.Sprintf(":%d", cfg.WebServerPort)
	log.Printf("web: server listening on %s", addr)
	return http.ListenAndServe(addr, nil)
}
