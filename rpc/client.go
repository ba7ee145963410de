package rpc

import (
	"errors"
	"fmt"
	"net/rpc"

	"github.com/BrugadaSyndrome/bslogger"
)

// Client is implemented by TcpClient and HttpClient
type Client interface {
	Connect() error
	Call(method string, request interface{}, reply interface{}) error
	Disconnect() error
}

var (
	_ Client = (*TcpClient)(nil)
	_ Client = (*HttpClient)(nil)
)

// ErrNotConnected is returned by Call and Disconnect on a client without a connection
var ErrNotConnected = errors.New("not connected")

type dialer func(network string, address string) (*rpc.Client, error)

// connection is the state shared by both transports; they only differ in
// how the connection is dialed.
type connection struct {
	client        *rpc.Client
	dial          dialer
	serverAddress string
	transport     string

	Logger bslogger.Logger
	Name   string
}

func newConnection(serverAddress string, name string, transport string, dial dialer) connection {
	return connection{
		dial:          dial,
		serverAddress: serverAddress,
		transport:     transport,
		Logger:        bslogger.NewLogger(name, bslogger.Normal, nil),
		Name:          name,
	}
}

// ServerAddress is the address the client dials
func (c *connection) ServerAddress() string {
	return c.serverAddress
}

func (c *connection) Connect() error {
	if c.client != nil {
		c.Logger.Warning(fmt.Sprintf("Already connected over %s to %s", c.transport, c.serverAddress))
		return nil
	}

	client, err := c.dial("tcp", c.serverAddress)
	if err != nil {
		c.Logger.Error(fmt.Sprintf("Dialing %s over %s - %s", c.serverAddress, c.transport, err))
		return fmt.Errorf("dialing %s: %w", c.serverAddress, err)
	}
	c.client = client
	c.Logger.Info(fmt.Sprintf("Connected over %s to %s", c.transport, c.serverAddress))
	return nil
}

func (c *connection) Call(method string, request interface{}, reply interface{}) error {
	if c.client == nil {
		c.Logger.Error(fmt.Sprintf("Calling %s before connecting to %s", method, c.serverAddress))
		return fmt.Errorf("%s on %s: %w", method, c.serverAddress, ErrNotConnected)
	}

	if err := c.client.Call(method, request, reply); err != nil {
		c.Logger.Error(fmt.Sprintf("%s on %s - %s", method, c.serverAddress, err))
		return err
	}
	c.Logger.Debug(fmt.Sprintf("%s on %s", method, c.serverAddress))
	return nil
}

func (c *connection) Disconnect() error {
	if c.client == nil {
		c.Logger.Warning(fmt.Sprintf("Disconnecting from %s twice", c.serverAddress))
		return fmt.Errorf("disconnecting from %s: %w", c.serverAddress, ErrNotConnected)
	}

	err := c.client.Close()
	c.client = nil
	if err != nil {
		c.Logger.Error(fmt.Sprintf("Closing connection to %s - %s", c.serverAddress, err))
		return err
	}
	c.Logger.Info(fmt.Sprintf("Disconnected from %s", c.serverAddress))
	return nil
}
