package sync

import (
	"bufio"
	"errors"
	"net"
	"sync"
)

// Server accepts line-oriented TCP subscribers for a Hub.
type Server struct {
	Addr string
	Hub  *Hub

	mu sync.Mutex
	ln net.Listener
}

func NewServer(addr string, hub *Hub) *Server {
	return &Server{Addr: addr, Hub: hub}
}

func (s *Server) Run() error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve accepts on ln until it is closed. It returns nil after Close.
func (s *Server) Serve(ln net.Listener) error {
	s.mu.Lock()
	s.ln = ln
	s.mu.Unlock()
	s.Hub.log.Info("tcp sync listening", "addr", ln.Addr().String())

	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			s.Hub.log.Warn("tcp accept", "error", err)
			continue
		}

		s.Hub.Add(conn)
		s.Hub.welcome(conn)
		s.Hub.log.Info("tcp client connected", "remote", conn.RemoteAddr().String())

		go func(c net.Conn) {
			defer func() {
				s.Hub.Remove(c)
				s.Hub.log.Info("tcp client disconnected", "remote", c.RemoteAddr().String())
			}()

			// incoming lines are ignored; reading just detects disconnects
			sc := bufio.NewScanner(c)
			for sc.Scan() {
			}
		}(conn)
	}
}

func (s *Server) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return nil
	}
	return s.ln.Close()
}
