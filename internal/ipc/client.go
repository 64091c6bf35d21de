package ipc

import (
	"encoding/json"
	"net"

	"winblur/pkg/global"
)

func SendCommand(socketPath string, req Request) (Response, error) {
	log := global.GetLogger()

	log.Debug("Attempting to connect to socket server", "path", socketPath)

	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		log.Error("Failed to connect to socket server", err)
		return Response{}, err
	}
	defer conn.Close()

	return roundTrip(conn, req)
}

func roundTrip(conn net.Conn, req Request) (Response, error) {
	log := global.GetLogger()

	encoder := json.NewEncoder(conn)
	if err := encoder.Encode(req); err != nil {
		log.Error("Failed to encode request", err)
		return Response{}, err
	}

	log.Debug("Request sent successfully", "command", req.Command)

	var resp Response
	decoder := json.NewDecoder(conn)
	if err := decoder.Decode(&resp); err != nil {
		log.Error("Failed to decode response", err)
		return Response{}, err
	}

	log.Info("Response received", "status", resp.Status, "message", resp.Message)
	return resp, nil
}
