package coordinator

import (
	"fmt"
	"os"
	"time"

	"mandelbrot/mandelbrot"
	"mandelbrot/misc"
	"mandelbrot/worker"
)

type Settings struct {
	Caption       bool
	Mandelbrot    mandelbrot.Settings
	PanelAddress  string
	RunName       string
	SaveImages    bool
	SavePath      string
	ServerAddress string
	Workers       worker.Settings
}

// NewSettings reads settingsFile when one is given and fills in defaults
func NewSettings(settingsFile string) (Settings, error) {
	s := Settings{}
	if settingsFile != "" {
		if err := misc.ReadJSON(settingsFile, &s); err != nil {
			return Settings{}, err
		}
	}
	if err := s.Verify(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func (s *Settings) String() string {
	output := "\nCoordinator settings\n"
	output += fmt.Sprintf("Caption: %t\n", s.Caption)
	output += fmt.Sprintf("Mandelbrot: %s\n", s.Mandelbrot.String())
	output += fmt.Sprintf("Panel Address: %s\n", s.PanelAddress)
	output += fmt.Sprintf("Run Name: %s\n", s.RunName)
	output += fmt.Sprintf("Save Images: %t\n", s.SaveImages)
	output += fmt.Sprintf("Save Path: %s\n", s.SavePath)
	output += fmt.Sprintf("Server Address: %s\n", s.ServerAddress)
	output += fmt.Sprintf("Workers: %s\n", s.Workers.String())
	return output
}

func (s *Settings) Verify() error {
	// s.Caption defaults to false already
	if err := s.Mandelbrot.Verify(); err != nil {
		return fmt.Errorf("mandelbrot settings: %w", err)
	}
	if s.PanelAddress == "" {
		s.PanelAddress = "localhost:8080"
	}
	if s.RunName == "" {
		s.RunName = "run_" + time.Now().Format("2006_01_02-03_04_05")
	}
	// s.SaveImages defaults to false already
	if s.SavePath == "" {
		s.SavePath, _ = os.Getwd()
	}
	if s.ServerAddress == "" {
		s.ServerAddress = fmt.Sprintf("%s:%s", misc.GetLocalAddress(), "51000")
	}
	if err := s.Workers.Verify(); err != nil {
		return fmt.Errorf("worker settings: %w", err)
	}
	return nil
}
