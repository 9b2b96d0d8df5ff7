// cmd/viscacamsim/main.go simulates one VISCA-over-IP camera: it answers
// every Command with an ACK followed by a COMPLETE after a short delay,
// and every Inquiry with a COMPLETE carrying a dummy payload after the ACK
// delay.
// It exists to drive viscabridged and its passthrough bridge without a
// physical PTZ camera on the bench.
package main

import (
	"context"
	"flag"
	"log"
	"net"
	"os/signal"
	"syscall"
	"time"

	"viscabridge/internal/viscacmd"
	"viscabridge/internal/viscawire"
)

func main() {
	var (
		listenAddr = flag.String("listen", ":52381", "UDP address to listen on")
		address    = flag.Int("address", 1, "Simulated camera's daisy-chain address (1-7)")
		ackDelay   = flag.Duration("ack-delay", 15*time.Millisecond, "Delay before ACKing a command")
		workDelay  = flag.Duration("work-delay", 250*time.Millisecond, "Delay before COMPLETEing a command")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	udpAddr, err := net.ResolveUDPAddr("udp", *listenAddr)
	if err != nil {
		log.Fatalf("resolve %s: %v", *listenAddr, err)
	}
	conn, err := net.ListenUDP("udp", udpAddr)
	if err != nil {
		log.Fatalf("listen %s: %v", *listenAddr, err)
	}
	defer conn.Close()

	log.Printf("[viscacamsim] simulating camera %d on %s", *address, *listenAddr)

	go func() {
		<-ctx.Done()
		_ = conn.Close()
	}()

	buf := make([]byte, 32)
	for {
		conn.SetReadDeadline(time.Now().Add(500 * time.Millisecond))
		n, from, err := conn.ReadFromUDP(buf)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				continue
			}
			log.Printf("[viscacamsim] read error: %v", err)
			continue
		}
		frame := append([]byte(nil), buf[:n]...)
		go handleFrame(conn, from, frame, *address, *ackDelay, *workDelay)
	}
}

func handleFrame(conn *net.UDPConn, from *net.UDPAddr, frame []byte, address int, ackDelay, workDelay time.Duration) {
	cmd, err := viscacmd.Parse(frame)
	if err != nil {
		log.Printf("[viscacamsim] dropping malformed frame % X: %v", frame, err)
		return
	}
	socket := cmd.Socket
	if socket == 0 {
		socket = 1 // camera assigns the first free command socket; keep the sim simple
	}

	switch cmd.MsgType {
	case viscawire.Command:
		time.Sleep(ackDelay)
		send(conn, from, address, viscawire.Ack, socket, nil)
		time.Sleep(workDelay)
		send(conn, from, address, viscawire.Complete, socket, nil)
	case viscawire.Inquiry:
		time.Sleep(ackDelay)
		send(conn, from, address, viscawire.Complete, 0, dummyReply(cmd))
	default:
		log.Printf("[viscacamsim] ignoring message type %#x", byte(cmd.MsgType))
	}
}

// dummyReply fabricates a plausible-length COMPLETE payload for whatever
// inquiry was asked, since this simulator has no real lens state to
// report.
func dummyReply(cmd *viscacmd.Command) []byte {
	switch len(cmd.Payload) {
	case 1:
		return []byte{0x02} // power-style single-byte on/off inquiry
	default:
		return []byte{0x00, 0x00, 0x00, 0x00}
	}
}

func send(conn *net.UDPConn, to *net.UDPAddr, source int, mt viscawire.MsgType, socket int, payload []byte) {
	reply := &viscacmd.Command{
		Source:    source,
		Recipient: 0,
		MsgType:   mt,
		Socket:    socket,
		Payload:   payload,
	}
	frame, err := reply.Serialize()
	if err != nil {
		log.Printf("[viscacamsim] serialize reply: %v", err)
		return
	}
	if _, err := conn.WriteToUDP(frame, to); err != nil {
		log.Printf("[viscacamsim] write reply: %v", err)
	}
}
