package cache

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// kvServer is an in-memory key/value store behind a local TCP listener,
// speaking enough of the redis or memcached protocol for the clients here.
type kvServer struct {
	ln  net.Listener
	mu  sync.Mutex
	val map[string][]byte
	ttl map[string]string
}

func newKVServer(t *testing.T, serve func(*kvServer, *bufio.ReadWriter) error) *kvServer {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := &kvServer{ln: ln, val: make(map[string][]byte), ttl: make(map[string]string)}
	t.Cleanup(func() { ln.Close() })

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go func() {
				defer conn.Close()
				rw := bufio.NewReadWriter(bufio.NewReader(conn), bufio.NewWriter(conn))
				for serve(s, rw) == nil {
					if rw.Flush() != nil {
						return
					}
				}
			}()
		}
	}()
	return s
}

func (s *kvServer) addr() string {
	return s.ln.Addr().String()
}

func (s *kvServer) get(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.val[key]
	return v, ok
}

func (s *kvServer) set(key string, value []byte, ttl string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.val[key] = value
	s.ttl[key] = ttl
}

func (s *kvServer) ttlOf(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ttl[key]
}

func readLine(r *bufio.ReadWriter) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// serveRedis answers one RESP command.
func serveRedis(s *kvServer, rw *bufio.ReadWriter) error {
	head, err := readLine(rw)
	if err != nil {
		return err
	}
	if !strings.HasPrefix(head, "*") {
		return fmt.Errorf("unexpected %q", head)
	}
	n, err := strconv.Atoi(head[1:])
	if err != nil {
		return err
	}

	args := make([]string, n)
	for i := range args {
		sizeLine, err := readLine(rw)
		if err != nil {
			return err
		}
		size, err := strconv.Atoi(strings.TrimPrefix(sizeLine, "$"))
		if err != nil {
			return err
		}
		buf := make([]byte, size+2)
		if _, err = io.ReadFull(rw, buf); err != nil {
			return err
		}
		args[i] = string(buf[:size])
	}

	switch strings.ToUpper(args[0]) {
	case "PING":
		_, err = rw.WriteString("+PONG\r\n")
	case "GET":
		v, ok := s.get(args[1])
		if !ok {
			_, err = rw.WriteString("$-1\r\n")
		} else {
			_, err = fmt.Fprintf(rw, "$%d\r\n%s\r\n", len(v), v)
		}
	case "SET":
		ttl := ""
		if len(args) >= 5 {
			ttl = strings.ToLower(args[3]) + " " + args[4]
		}
		s.set(args[1], []byte(args[2]), ttl)
		_, err = rw.WriteString("+OK\r\n")
	default:
		_, err = fmt.Fprintf(rw, "-ERR unknown command '%s'\r\n", args[0])
	}
	return err
}

// serveMemcache answers one text protocol command.
func serveMemcache(s *kvServer, rw *bufio.ReadWriter) error {
	line, err := readLine(rw)
	if err != nil {
		return err
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		_, err = rw.WriteString("ERROR\r\n")
		return err
	}

	switch fields[0] {
	case "version":
		_, err = rw.WriteString("VERSION 1.6.21\r\n")
	case "get", "gets":
		for _, key := range fields[1:] {
			if v, ok := s.get(key); ok {
				if _, err = fmt.Fprintf(rw, "VALUE %s 0 %d 1\r\n%s\r\n", key, len(v), v); err != nil {
					return err
				}
			}
		}
		_, err = rw.WriteString("END\r\n")
	case "set":
		// set <key> <flags> <exptime> <bytes>
		size, err := strconv.Atoi(fields[4])
		if err != nil {
			return err
		}
		buf := make([]byte, size+2)
		if _, err = io.ReadFull(rw, buf); err != nil {
			return err
		}
		s.set(fields[1], buf[:size], fields[3])
		_, err = rw.WriteString("STORED\r\n")
		return err
	default:
		_, err = rw.WriteString("ERROR\r\n")
	}
	return err
}

// closedAddr returns an address nothing listens on.
func closedAddr(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())
	return addr
}
