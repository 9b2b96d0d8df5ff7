// Package inputbridge is a line-oriented external control surface: a
// jog/shuttle panel, a macro pad, or any serial gadget that just wants to
// speak plain text instead of VISCA. It reads newline-delimited commands
// off a device and turns them into automation-hub entries, named with the
// same command types the HTTP façade's command endpoint accepts.
package inputbridge

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"viscabridge/internal/events"
	"viscabridge/internal/hub"
)

// Config names the device to read lines from. An empty Device disables
// the bridge.
type Config struct {
	Device string
}

// Start blocks reading lines from cfg.Device until ctx is cancelled.
// Line format: CAM,<address>,<type>[,<json-payload>]
// e.g. "CAM,1,pan-tilt-drive,{"pan_speed":5,"tilt_speed":5,"pan_dir":"left","tilt_dir":"stop"}"
func Start(ctx context.Context, cfg Config, h *hub.Hub, evbuf events.Buffer) error {
	if cfg.Device == "" {
		log.Printf("[inputbridge] disabled (no device)")
		<-ctx.Done()
		return ctx.Err()
	}

	f, err := os.Open(cfg.Device)
	if err != nil {
		return fmt.Errorf("inputbridge: cannot open %s: %w", cfg.Device, err)
	}
	defer f.Close()

	log.Printf("[inputbridge] listening on %s", cfg.Device)

	go func() {
		<-ctx.Done()
		_ = f.Close()
	}()

	scanner := bufio.NewScanner(f)
	for {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				if ctx.Err() != nil {
					log.Printf("[inputbridge] stopped: %v", ctx.Err())
					return ctx.Err()
				}
				return fmt.Errorf("inputbridge: read error: %w", err)
			}
			time.Sleep(100 * time.Millisecond)
			continue
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := handleLine(line, h, evbuf); err != nil {
			log.Printf("[inputbridge] ignoring line %q: %v", line, err)
		}
	}
}

func handleLine(line string, h *hub.Hub, evbuf events.Buffer) error {
	parts := strings.SplitN(line, ",", 4)
	if len(parts) < 3 || parts[0] != "CAM" {
		return fmt.Errorf("expected CAM,<address>,<type>[,<payload>]")
	}
	addr, err := strconv.Atoi(parts[1])
	if err != nil {
		return fmt.Errorf("bad address: %w", err)
	}
	cmdType := parts[2]
	var payload json.RawMessage
	if len(parts) == 4 && strings.TrimSpace(parts[3]) != "" {
		payload = json.RawMessage(parts[3])
	}

	cmd := hub.NewCommand(cmdType, payload)
	h.Enqueue(addr, cmd)
	if evbuf != nil {
		evbuf.Push(events.Event{
			Camera: addr,
			Topic:  "inputbridge/enqueue",
			Payload: []byte(fmt.Sprintf(`{"command_id":%q,"type":%q}`, cmd.ID, cmd.Type)),
			Time:   time.Now(),
		})
	}
	return nil
}
