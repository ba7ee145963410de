package rpc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/rpc"
	"sync"
	"time"

	"github.com/BrugadaSyndrome/bslogger"
)

// HttpServer serves object over rpc at rpc.DefaultRPCPath and any extra
// handlers added with Handle before Run.
type HttpServer struct {
	address  string
	listener net.Listener
	mux      *http.ServeMux
	object   interface{}
	server   *http.Server

	Logger bslogger.Logger
	Name   string
	WG     *sync.WaitGroup
}

func NewHttpServer(object interface{}, address string, name string) HttpServer {
	return HttpServer{
		address: address,
		mux:     http.NewServeMux(),
		object:  object,
		Logger:  bslogger.NewLogger(name, bslogger.Normal, nil),
		Name:    name,
		WG:      &sync.WaitGroup{},
	}
}

func (hs *HttpServer) Handle(pattern string, handler http.Handler) {
	hs.mux.Handle(pattern, handler)
}

func (hs *HttpServer) Address() string {
	if hs.listener != nil {
		return hs.listener.Addr().String()
	}
	return hs.address
}

func (hs *HttpServer) Run() error {
	handler := rpc.NewServer()
	err := handler.Register(hs.object)
	if err != nil {
		hs.Logger.Error("Registering object")
		return err
	}
	hs.mux.Handle(rpc.DefaultRPCPath, handler)

	hs.listener, err = net.Listen("tcp", hs.address)
	if err != nil {
		hs.Logger.Error(fmt.Sprintf("Listening at address %s", hs.address))
		return err
	}

	hs.server = &http.Server{
		Addr:              hs.address,
		Handler:           hs.mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	hs.WG.Add(1)
	go func() {
		defer hs.WG.Done()
		if err := hs.server.Serve(hs.listener); !errors.Is(err, http.ErrServerClosed) {
			hs.Logger.Error(fmt.Sprintf("Serving at address %s - %s", hs.Address(), err))
		}
	}()

	hs.Logger.Info(fmt.Sprintf("Running server at address %s", hs.Address()))
	return nil
}

func (hs *HttpServer) Stop() error {
	if hs.server == nil {
		return errors.New("server is not running")
	}
	if err := hs.server.Shutdown(context.Background()); err != nil {
		hs.Logger.Error(fmt.Sprintf("Shutting down server at address %s", hs.Address()))
		return err
	}
	hs.WG.Wait()
	hs.Logger.Info(fmt.Sprintf("Shut down server at address %s", hs.Address()))
	return nil
}
