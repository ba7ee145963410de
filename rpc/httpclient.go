package rpc

import (
	"net/rpc"
)

// HttpClient talks to the rpc endpoint an HttpServer mounts at rpc.DefaultRPCPath
type HttpClient struct {
	connection
}

func NewHttpClient(serverAddress string, name string) HttpClient {
	return HttpClient{connection: newConnection(serverAddress, name, "http", rpc.DialHTTP)}
}
