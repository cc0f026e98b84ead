package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/websocket"

	"github.com/kingrain94/realty-api/internal/domain"
)

// Command app tails the admin event stream of one tenant.
func main() {
	server := flag.String("server", "ws://localhost:10000", "API base URL")
	tenantID := flag.String("tenant", "", "Tenant ID, required for super admin tokens")
	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatal("Usage: go run ./cmd/app [-server ws://host:port] [-tenant id] <JWT_TOKEN>")
	}

	endpoint, err := url.Parse(*server + "/api/v1/admin/events")
	if err != nil {
		log.Fatal("Invalid server URL:", err)
	}
	if *tenantID != "" {
		endpoint.RawQuery = url.Values{"tenant_id": {*tenantID}}.Encode()
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+flag.Arg(0))
	fmt.Printf("Connecting to %s...\n", endpoint)
	conn, _, err := websocket.DefaultDialer.Dial(endpoint.String(), header)
	if err != nil {
		log.Fatal("Failed to connect:", err)
	}
	defer conn.Close()

	fmt.Println("Connected! Waiting for tenant events...")
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			_, message, err := conn.ReadMessage()
			if err != nil {
				log.Println("Read error:", err)
				return
			}

			var event domain.Event
			if err := json.Unmarshal(message, &event); err != nil {
				fmt.Printf("%s\n", message)
				continue
			}
			fmt.Printf("%s %-22s %s %s\n", event.OccurredAt.Format(time.TimeOnly), event.Type, event.Subject, event.Payload)
		}
	}()

	select {
	case <-done:
		return
	case <-interrupt:
		fmt.Println("\nDisconnecting...")

		// Send close message
		err := conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		if err != nil {
			log.Println("Write close:", err)
			return
		}

		// Wait for the connection to close
		select {
		case <-done:
		case <-time.After(time.Second):
		}
	}
}
