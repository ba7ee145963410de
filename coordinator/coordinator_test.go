package coordinator

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"mandelbrot/mandelbrot"
	"mandelbrot/misc"
	"mandelbrot/rpc"
	"mandelbrot/worker"
)

func testSettings(t *testing.T) Settings {
	t.Helper()
	return Settings{
		Mandelbrot:    mandelbrot.Settings{Width: 64, Height: 48},
		PanelAddress:  "127.0.0.1:0",
		SavePath:      t.TempDir(),
		ServerAddress: "127.0.0.1:0",
		Workers:       worker.Settings{Count: 2, ColumnsPerTask: 4},
	}
}

func newCoordinator(t *testing.T, settings Settings) *Coordinator {
	t.Helper()
	c, err := NewCoordinator(settings)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func receive(t *testing.T, frames <-chan Frame) Frame {
	t.Helper()
	select {
	case frame, ok := <-frames:
		if !ok {
			t.Fatal("subscription closed")
		}
		return frame
	case <-time.After(5 * time.Second):
		t.Fatal("no frame published")
	}
	return Frame{}
}

func TestNewSettingsDefaults(t *testing.T) {
	s, err := NewSettings("")
	if err != nil {
		t.Fatal(err)
	}
	if s.PanelAddress != "localhost:8080" || s.RunName == "" || s.ServerAddress == "" {
		t.Errorf("settings = %s", s.String())
	}
	if s.Mandelbrot.Width != 720 || s.Workers.Count <= 0 {
		t.Errorf("settings = %s", s.String())
	}
}

func TestNewSettingsFromFile(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "settings.json")
	contents := `{"Caption": true, "Mandelbrot": {"Coloring": "TwoTone", "MaxIterations": 5000}}`
	if _, err := misc.WriteFile(fileName, []byte(contents)); err != nil {
		t.Fatal(err)
	}

	s, err := NewSettings(fileName)
	if err != nil {
		t.Fatal(err)
	}
	if !s.Caption || s.Mandelbrot.Coloring != mandelbrot.TwoTone || s.Mandelbrot.MaxIterations != mandelbrot.MaxIterationCap {
		t.Errorf("settings = %s", s.String())
	}

	if _, err := NewSettings(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("missing settings file accepted")
	}
}

func TestGenerateNumbersFrames(t *testing.T) {
	c := newCoordinator(t, testSettings(t))

	if c.Current().Image != nil {
		t.Fatal("image exists before the first Generate")
	}

	s := c.Current().Settings
	for want := uint(1); want <= 3; want++ {
		s.MaxIterations += 10
		frame, err := c.Generate(s)
		if err != nil {
			t.Fatal(err)
		}
		if frame.Number != want {
			t.Errorf("frame number = %d, want %d", frame.Number, want)
		}
		if frame.Settings.MaxIterations != s.MaxIterations {
			t.Errorf("frame settings = %s", frame.Settings.String())
		}
		if c.Current().Number != want {
			t.Errorf("current frame = %d, want %d", c.Current().Number, want)
		}
	}
}

func TestGenerateRejectsBadSettings(t *testing.T) {
	c := newCoordinator(t, testSettings(t))

	s := c.Current().Settings
	s.Bounds = mandelbrot.Bounds{RealMin: 1, RealMax: 0, ImagMin: 0, ImagMax: 1}
	if _, err := c.Generate(s); err == nil {
		t.Fatal("Generate accepted empty bounds")
	}
	if c.Current().Number != 0 {
		t.Error("failed Generate produced a frame")
	}
}

func TestSubscribe(t *testing.T) {
	c := newCoordinator(t, testSettings(t))

	frames, unsubscribe := c.Subscribe()
	if _, err := c.Generate(c.Current().Settings); err != nil {
		t.Fatal(err)
	}
	if frame := receive(t, frames); frame.Number != 1 {
		t.Errorf("frame number = %d, want 1", frame.Number)
	}

	// A reader that falls behind only sees the newest frame
	for i := 0; i < 3; i++ {
		if _, err := c.Generate(c.Current().Settings); err != nil {
			t.Fatal(err)
		}
	}
	if frame := receive(t, frames); frame.Number != 4 {
		t.Errorf("frame number = %d, want 4", frame.Number)
	}

	// Late subscribers start with the current frame
	late, unsubscribeLate := c.Subscribe()
	defer unsubscribeLate()
	if frame := receive(t, late); frame.Number != 4 {
		t.Errorf("late frame number = %d, want 4", frame.Number)
	}

	unsubscribe()
	if _, ok := <-frames; ok {
		t.Error("channel still open after unsubscribe")
	}
	unsubscribe()
}

func TestSaveImages(t *testing.T) {
	settings := testSettings(t)
	settings.SaveImages = true
	settings.Caption = true
	settings.RunName = "test_run"
	c := newCoordinator(t, settings)

	if _, err := c.Generate(c.Current().Settings); err != nil {
		t.Fatal(err)
	}
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}

	runPath := filepath.Join(settings.SavePath, settings.RunName)
	for _, name := range []string{"settings.json", "coordinator.log", "1.png"} {
		if _, err := os.Stat(filepath.Join(runPath, name)); err != nil {
			t.Errorf("missing %s - %s", name, err)
		}
	}

	var saved Settings
	if err := misc.ReadJSON(filepath.Join(runPath, "settings.json"), &saved); err != nil {
		t.Fatal(err)
	}
	if saved.Mandelbrot.Width != 64 || !saved.Caption {
		t.Errorf("saved settings = %s", saved.String())
	}
}

func TestRemoteRender(t *testing.T) {
	c := newCoordinator(t, testSettings(t))

	server := rpc.NewTcpServer(c, "127.0.0.1:0", "TestServer")
	if err := server.Run(); err != nil {
		t.Fatal(err)
	}
	defer server.Stop()

	client := rpc.NewTcpClient(server.Address(), "TestClient")
	if err := client.Connect(); err != nil {
		t.Fatal(err)
	}
	defer client.Disconnect()

	var present bool
	if err := client.Call("Coordinator.RollCall", misc.Nothing{}, &present); err != nil || !present {
		t.Fatalf("RollCall = %t, %v", present, err)
	}

	var data []byte
	if err := client.Call("Coordinator.GetImage", misc.Nothing{}, &data); err == nil {
		t.Error("GetImage succeeded before anything was generated")
	}

	request := c.Current().Settings
	request.Coloring = mandelbrot.RandomPalette
	request.Seed = 3
	if err := client.Call("Coordinator.RenderImage", request, &data); err != nil {
		t.Fatal(err)
	}
	img, err := misc.DecodePNG(data)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 64 || img.Bounds().Dy() != 48 {
		t.Errorf("image bounds = %v", img.Bounds())
	}

	var settings mandelbrot.Settings
	if err := client.Call("Coordinator.GetSettings", misc.Nothing{}, &settings); err != nil {
		t.Fatal(err)
	}
	if settings.Coloring != mandelbrot.RandomPalette || settings.Seed != 3 {
		t.Errorf("settings = %s", settings.String())
	}

	if err := client.Call("Coordinator.GetImage", misc.Nothing{}, &data); err != nil {
		t.Fatal(err)
	}
}

func TestDescribe(t *testing.T) {
	s := mandelbrot.DefaultSettings()
	if got, want := Describe(s), "UltraFractal | iterations 100 | Modulus > 2"; got != want {
		t.Errorf("Describe = %q, want %q", got, want)
	}
	s.GrayScale = true
	if got, want := Describe(s), "GrayScale | iterations 100 | Modulus > 2"; got != want {
		t.Errorf("Describe = %q, want %q", got, want)
	}
}

func TestOutputLeavesFrameUntouched(t *testing.T) {
	settings := testSettings(t)
	settings.Caption = true
	c := newCoordinator(t, settings)

	frame, err := c.Generate(c.Current().Settings)
	if err != nil {
		t.Fatal(err)
	}
	before := append([]uint8(nil), frame.Image.Pix...)

	captioned := c.Output(frame)
	if captioned == frame.Image {
		t.Fatal("Output returned the frame's own image")
	}
	if bytes.Equal(captioned.Pix, before) {
		t.Error("no caption was drawn")
	}
	if !bytes.Equal(frame.Image.Pix, before) {
		t.Error("captioning changed the frame")
	}
	if !bytes.Equal(c.Current().Image.Pix, before) {
		t.Error("captioning changed the current frame")
	}

	plain := newCoordinator(t, testSettings(t))
	frame, err = plain.Generate(plain.Current().Settings)
	if err != nil {
		t.Fatal(err)
	}
	if plain.Output(frame) != frame.Image {
		t.Error("Output copied the image with captions off")
	}
}
