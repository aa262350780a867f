package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"os"
	"strings"

	"github.com/gorilla/websocket"

	"pokehub/internal/events"
)

func runFeedTCP(ctx context.Context, out io.Writer, addr string) error {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	defer conn.Close()
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	fmt.Fprintf(out, "connected to %s\n", addr)
	sc := bufio.NewScanner(conn)
	for sc.Scan() {
		printEvent(out, sc.Bytes())
	}
	if err := sc.Err(); err != nil {
		return err
	}
	return os.ErrClosed
}

func runFeedWS(ctx context.Context, out io.Writer, wsURL string) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return err
	}
	defer conn.Close()
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	fmt.Fprintf(out, "connected to %s\n", wsURL)
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		printEvent(out, msg)
	}
}

// printEvent renders known events as one line and anything else verbatim.
func printEvent(out io.Writer, line []byte) {
	var ev events.Event
	if err := json.Unmarshal(line, &ev); err != nil || ev.Type == "" {
		fmt.Fprintln(out, string(line))
		return
	}
	if ev.Type == "welcome" {
		var w events.Welcome
		if err := json.Unmarshal(line, &w); err == nil {
			fmt.Fprintln(out, describeWelcome(w))
			return
		}
	}
	fmt.Fprintln(out, describeEvent(ev))
}

func describeWelcome(w events.Welcome) string {
	others := w.Clients.TCPClients + w.Clients.WSClients
	msg := fmt.Sprintf("subscribed over %s, %d other subscriber(s)", w.Transport, others)
	if w.Last != nil {
		msg += "\nlast: " + describeEvent(*w.Last)
	}
	return msg
}

func describeEvent(ev events.Event) string {
	at := ev.At.Format("15:04:05")
	switch ev.Type {
	case events.TypeSearch:
		return fmt.Sprintf("[%s] search  %s", at, strings.Join(ev.Names, ""))
	case events.TypeCompare:
		if len(ev.Names) == 2 && len(ev.Totals) == 2 {
			return fmt.Sprintf("[%s] compare %s (%d) vs %s (%d): %s",
				at, ev.Names[0], ev.Totals[0], ev.Names[1], ev.Totals[1], ev.Winner)
		}
	case events.TypeTeam:
		return fmt.Sprintf("[%s] team    %s [%s]", at, strings.Join(ev.Names, ", "), strings.Join(ev.Types, "/"))
	}
	return fmt.Sprintf("[%s] %s %s", at, ev.Type, strings.Join(ev.Names, ", "))
}
