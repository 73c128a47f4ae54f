package relay_test

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// natsStub speaks enough of the NATS client protocol for one host: CONNECT,
// PING/PONG, SUB/UNSUB and PUB with token wildcards. Queue groups are
// treated as plain subscriptions.
type natsStub struct {
	listener net.Listener

	mu    sync.Mutex
	subs  map[*stubConn]map[string]string // conn -> sid -> subject
	conns map[*stubConn]struct{}
}

type stubConn struct {
	net.Conn

	writeMu sync.Mutex
}

func (c *stubConn) send(data string) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	_, _ = io.WriteString(c.Conn, data)
}

func newNATSStub(t *testing.T) *natsStub {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	s := &natsStub{
		listener: listener,
		subs:     make(map[*stubConn]map[string]string),
		conns:    make(map[*stubConn]struct{}),
	}

	go s.accept()

	t.Cleanup(s.close)

	return s
}

func (s *natsStub) URL() string {
	return "nats://" + s.listener.Addr().String()
}

// Subscribers counts subscriptions on subject.
func (s *natsStub) Subscribers(subject string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0

	for _, sids := range s.subs {
		for _, subscribed := range sids {
			if subscribed == subject {
				count++
			}
		}
	}

	return count
}

func (s *natsStub) close() {
	_ = s.listener.Close()

	s.mu.Lock()
	defer s.mu.Unlock()

	for conn := range s.conns {
		_ = conn.Close()
	}
}

func (s *natsStub) accept() {
	for {
		raw, err := s.listener.Accept()
		if err != nil {
			return
		}

		conn := &stubConn{Conn: raw}

		s.mu.Lock()
		s.conns[conn] = struct{}{}
		s.subs[conn] = make(map[string]string)
		s.mu.Unlock()

		go s.serve(conn)
	}
}

func (s *natsStub) serve(conn *stubConn) {
	defer func() {
		s.mu.Lock()
		delete(s.subs, conn)
		delete(s.conns, conn)
		s.mu.Unlock()

		_ = conn.Close()
	}()

	conn.send(`INFO {"server_id":"stub","version":"2.10.0","proto":1,"headers":false,"max_payload":1048576}` + "\r\n")

	reader := bufio.NewReader(conn)

	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}

		fields := strings.Fields(strings.TrimRight(line, "\r\n"))
		if len(fields) == 0 {
			continue
		}

		switch strings.ToUpper(fields[0]) {
		case "PING":
			conn.send("PONG\r\n")
		case "SUB":
			// SUB <subject> [queue] <sid>
			s.mu.Lock()
			s.subs[conn][fields[len(fields)-1]] = fields[1]
			s.mu.Unlock()
		case "UNSUB":
			s.mu.Lock()
			delete(s.subs[conn], fields[1])
			s.mu.Unlock()
		case "PUB":
			// PUB <subject> [reply] <size>
			size, err := strconv.Atoi(fields[len(fields)-1])
			if err != nil {
				return
			}

			payload := make([]byte, size+2)

			_, err = io.ReadFull(reader, payload)
			if err != nil {
				return
			}

			reply := ""
			if len(fields) == 4 {
				reply = fields[2] + " "
			}

			s.publish(fields[1], reply, payload[:size])
		}
	}
}

func (s *natsStub) publish(subject, reply string, payload []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for conn, sids := range s.subs {
		for sid, pattern := range sids {
			if subjectMatches(pattern, subject) {
				conn.send(fmt.Sprintf("MSG %s %s %s%d\r\n%s\r\n", subject, sid, reply, len(payload), payload))
			}
		}
	}
}

func subjectMatches(pattern, subject string) bool {
	patternTokens := strings.Split(pattern, ".")
	subjectTokens := strings.Split(subject, ".")

	for i, token := range patternTokens {
		if token == ">" {
			return len(subjectTokens) > i
		}

		if i >= len(subjectTokens) || (token != "*" && token != subjectTokens[i]) {
			return false
		}
	}

	return len(patternTokens) == len(subjectTokens)
}
