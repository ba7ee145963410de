package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/BrugadaSyndrome/bslogger"

	"mandelbrot/coordinator"
	"mandelbrot/display"
	"mandelbrot/mandelbrot"
	"mandelbrot/misc"
	"mandelbrot/panel"
	"mandelbrot/rpc"
)

var (
	outputFile, preset, remoteAddress, settingsFile string
	serve, useHttp, window                          bool
	workerCount                                     int
)

func main() {
	logger := bslogger.NewLogger("Main", bslogger.Normal, nil)
	parseArguments()

	settings, err := coordinator.NewSettings(settingsFile)
	misc.CheckError(err, logger, misc.Fatal)
	if preset != "" {
		settings.Mandelbrot, err = mandelbrot.Preset(preset)
		misc.CheckError(err, logger, misc.Fatal)
	}
	if workerCount > 0 {
		settings.Workers.Count = workerCount
	}

	if remoteAddress != "" {
		misc.CheckError(renderRemote(logger, settings.Mandelbrot), logger, misc.Fatal)
		return
	}

	c, err := coordinator.NewCoordinator(settings)
	misc.CheckError(err, logger, misc.Fatal)
	defer c.Close()

	frame, err := c.Generate(settings.Mandelbrot)
	misc.CheckError(err, logger, misc.Fatal)

	if !serve && !window {
		misc.CheckError(misc.SavePNG(outputFile, c.Output(frame)), logger, misc.Fatal)
		logger.Info(fmt.Sprintf("Saved image to %s", outputFile))
		return
	}

	if serve {
		tcpServer := rpc.NewTcpServer(c, settings.ServerAddress, "CoordinatorServer")
		misc.CheckError(tcpServer.Run(), logger, misc.Fatal)
		defer tcpServer.Stop()

		httpServer := rpc.NewHttpServer(c, settings.PanelAddress, "PanelServer")
		httpServer.Handle("/", panel.NewPanel(c))
		misc.CheckError(httpServer.Run(), logger, misc.Fatal)
		defer httpServer.Stop()
		logger.Info(fmt.Sprintf("Panel available at http://%s/", httpServer.Address()))
	}

	if window {
		misc.CheckError(display.NewWindow(c).Run(), logger, misc.Error)
		return
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	<-signals
	logger.Info("Shutting down")
}

func parseArguments() {
	flag.StringVar(&outputFile, "output", "mandelbrot.png", "Where to save the image when not serving")
	flag.StringVar(&preset, "preset", "", fmt.Sprintf("Named mandelbrot settings, one of %v", mandelbrot.PresetNames()))
	flag.StringVar(&remoteAddress, "remote", "", "Address of a running server to render on")
	flag.BoolVar(&serve, "serve", false, "Serve the rpc endpoint and the settings panel")
	flag.StringVar(&settingsFile, "settings", "", "Json file with coordinator settings")
	flag.BoolVar(&useHttp, "http", false, "Use the http transport for -remote (point it at the panel address)")
	flag.BoolVar(&window, "window", false, "Show frames in a desktop window")
	flag.IntVar(&workerCount, "workers", 0, "Number of render goroutines (defaults to one per cpu)")

	flag.Parse()
}

func renderRemote(logger bslogger.Logger, settings mandelbrot.Settings) error {
	var client rpc.Client
	if useHttp {
		httpClient := rpc.NewHttpClient(remoteAddress, "CoordinatorClient")
		client = &httpClient
	} else {
		tcpClient := rpc.NewTcpClient(remoteAddress, "CoordinatorClient")
		client = &tcpClient
	}

	if err := client.Connect(); err != nil {
		return err
	}
	defer client.Disconnect()

	var data []byte
	if err := client.Call("Coordinator.RenderImage", settings, &data); err != nil {
		return err
	}
	if _, err := misc.WriteFile(outputFile, data); err != nil {
		return err
	}
	logger.Info(fmt.Sprintf("Saved image rendered by %s to %s", remoteAddress, outputFile))
	return nil
}
