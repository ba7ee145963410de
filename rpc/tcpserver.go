package rpc

import (
	"errors"
	"fmt"
	"net"
	"net/rpc"
	"sync"
	"time"

	"github.com/BrugadaSyndrome/bslogger"
)

type TcpServer struct {
	address  string
	listener *net.TCPListener
	object   interface{}
	shutdown chan bool

	Logger bslogger.Logger
	Name   string
	WG     *sync.WaitGroup
}

func NewTcpServer(object interface{}, address string, name string) TcpServer {
	return TcpServer{
		address:  address,
		object:   object,
		shutdown: make(chan bool, 1),
		Logger:   bslogger.NewLogger(name, bslogger.Normal, nil),
		Name:     name,
		WG:       &sync.WaitGroup{},
	}
}

// Address is the address the server listens on. After Run it holds the
// resolved port, which matters when the server was asked for port 0.
func (ts *TcpServer) Address() string {
	if ts.listener != nil {
		return ts.listener.Addr().String()
	}
	return ts.address
}

func (ts *TcpServer) Run() error {
	handler := rpc.NewServer()
	err := handler.Register(ts.object)
	if err != nil {
		ts.Logger.Error("Registering object")
		return err
	}

	tcpAddress, err := net.ResolveTCPAddr("tcp", ts.address)
	if err != nil {
		ts.Logger.Error(fmt.Sprintf("Resolving tcp address %s", ts.address))
		return err
	}

	ts.listener, err = net.ListenTCP("tcp", tcpAddress)
	if err != nil {
		ts.Logger.Error(fmt.Sprintf("Listening at address %s", ts.address))
		return err
	}

	ts.WG.Add(1)
	go func() {
		defer ts.WG.Done()
		for {
			select {
			case <-ts.shutdown:
				// Server has been given the signal to shutdown
				err := ts.listener.Close()
				if err != nil {
					ts.Logger.Info(fmt.Sprintf("Server closed listener - %s", err))
				}
				return
			default:
				// Poll so the shutdown signal is noticed
				ts.listener.SetDeadline(time.Now().Add(1 * time.Second))
			}

			conn, err := ts.listener.Accept()
			if err != nil {
				var netErr net.Error
				if errors.As(err, &netErr) && netErr.Timeout() {
					continue
				}
				ts.Logger.Warning(fmt.Sprintf("Accepting connection at address %s - %s", ts.Address(), err))
				continue
			}

			ts.Logger.Info(fmt.Sprintf("Server opened connection to client at address %s", conn.RemoteAddr()))
			go handler.ServeConn(conn)
		}
	}()

	ts.Logger.Info(fmt.Sprintf("Running server at address %s", ts.Address()))
	return nil
}

func (ts *TcpServer) Stop() error {
	ts.Logger.Info(fmt.Sprintf("Shutting down server at address %s", ts.Address()))
	close(ts.shutdown)
	ts.WG.Wait()
	return nil
}
