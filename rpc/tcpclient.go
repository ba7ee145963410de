package rpc

import (
	"net/rpc"
)

// TcpClient talks to a TcpServer
type TcpClient struct {
	connection
}

func NewTcpClient(serverAddress string, name string) TcpClient {
	return TcpClient{connection: newConnection(serverAddress, name, "tcp", rpc.Dial)}
}
