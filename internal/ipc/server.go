package ipc

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"

	"winblur/pkg/effect"
	"winblur/pkg/global"
)

type Request struct {
	Command string `json:"command"`
	Effect  string `json:"effect,omitempty"`
}

type Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Controller is the application side of the socket. Each connection is
// served on its own goroutine, so implementations serialise their own
// access to the window.
type Controller interface {
	ApplyEffect(kind effect.Kind) error
	Status() string
}

// StartSocketServer listens on socketPath and serves requests until the
// listener fails.
func StartSocketServer(socketPath string, ctl Controller) error {
	log := global.GetLogger()

	// Remove the socket file if it already exists
	if err := os.Remove(socketPath); err != nil && !os.IsNotExist(err) {
		log.Error("Failed to remove existing socket file", err)
		return err
	}

	if err := os.MkdirAll(filepath.Dir(socketPath), 0755); err != nil {
		log.Error("Failed to create socket directory", err)
		return err
	}

	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		log.Error("Failed to start socket server", err)
		return err
	}
	defer listener.Close()

	log.Info("Socket server started", "path", socketPath)
	return Serve(listener, ctl)
}

// Serve accepts connections on l until it is closed.
func Serve(l net.Listener, ctl Controller) error {
	log := global.GetLogger()

	for {
		conn, err := l.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				log.Info("Socket server stopped")
				return nil
			}
			log.Error("Failed to accept connection", err)
			return err
		}

		log.Debug("New connection accepted", "remote_addr", conn.RemoteAddr())
		go handleConnection(conn, ctl)
	}
}

func handleConnection(conn net.Conn, ctl Controller) {
	log := global.GetLogger()
	defer conn.Close()

	var req Request
	decoder := json.NewDecoder(conn)
	if err := decoder.Decode(&req); err != nil {
		log.Error("Failed to decode request", err)
		return
	}

	log.Info("Received request", "command", req.Command, "effect", req.Effect)

	resp := handleRequest(req, ctl)

	encoder := json.NewEncoder(conn)
	if err := encoder.Encode(resp); err != nil {
		log.Error("Failed to encode response", err)
	} else {
		log.Debug("Response sent successfully", "status", resp.Status)
	}
}

func handleRequest(req Request, ctl Controller) Response {
	log := global.GetLogger()

	switch req.Command {
	case "apply":
		kind, err := effect.ParseKind(req.Effect)
		if err != nil {
			return Response{Status: "error", Message: err.Error()}
		}
		if err := ctl.ApplyEffect(kind); err != nil {
			log.Error("Apply command failed", err, "effect", kind.String())
			return Response{Status: "error", Message: err.Error()}
		}
		log.Info("Apply command executed successfully", "effect", kind.String())
		return Response{Status: "success", Message: fmt.Sprintf("Applied %s", kind)}
	case "status":
		return Response{Status: "success", Message: ctl.Status()}
	default:
		log.Error("Unknown command received", fmt.Errorf("command: %s", req.Command))
		return Response{Status: "error", Message: "Unknown command"}
	}
}
