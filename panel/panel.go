// Package panel is the browser front end: a settings form with a Generate
// button and a canvas that shows every frame the coordinator publishes.
//
// The page talks to /ws. It sends a JSON generate request; the server answers
// each published frame with a JSON status message followed by the frame as a
// binary PNG message. Requests that cannot be rendered get a status message
// carrying only an error.
package panel

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"sync"

	"github.com/BrugadaSyndrome/bslogger"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"mandelbrot/coordinator"
	"mandelbrot/mandelbrot"
	"mandelbrot/misc"
)

//go:embed static
var static embed.FS

// Generator is the part of the coordinator the panel drives
type Generator interface {
	Current() coordinator.Frame
	Generate(settings mandelbrot.Settings) (coordinator.Frame, error)
	Subscribe() (<-chan coordinator.Frame, func())
}

// GenerateRequest carries the fields the panel can edit. Everything else is
// taken from the current frame's settings.
type GenerateRequest struct {
	Coloring      string  `json:"coloring"`
	EscapeRadius  float64 `json:"escapeRadius"`
	GrayScale     bool    `json:"grayScale"`
	MaxIterations uint    `json:"maxIterations"`
}

// Status precedes every frame and reports failed requests
type Status struct {
	Error    string               `json:"error,omitempty"`
	Frame    uint                 `json:"frame,omitempty"`
	Settings *mandelbrot.Settings `json:"settings,omitempty"`
}

type Panel struct {
	generator Generator
	logger    bslogger.Logger
	mux       *http.ServeMux
}

func NewPanel(generator Generator) *Panel {
	p := &Panel{
		generator: generator,
		logger:    bslogger.NewLogger("Panel", bslogger.Normal, nil),
		mux:       http.NewServeMux(),
	}

	content, err := fs.Sub(static, "static")
	misc.CheckError(err, p.logger, misc.Fatal)
	p.mux.Handle("/", http.FileServer(http.FS(content)))
	p.mux.HandleFunc("/ws", p.websocketHandler)
	return p
}

func (p *Panel) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.mux.ServeHTTP(w, r)
}

// Apply overlays the request on base
func (gr GenerateRequest) Apply(base mandelbrot.Settings) (mandelbrot.Settings, error) {
	s := base
	if gr.Coloring != "" {
		coloring, err := mandelbrot.ParseColoring(gr.Coloring)
		if err != nil {
			return mandelbrot.Settings{}, err
		}
		s.Coloring = coloring
	}
	if gr.EscapeRadius != 0 {
		s.EscapeRadius = gr.EscapeRadius
	}
	s.GrayScale = gr.GrayScale
	if gr.MaxIterations != 0 {
		s.MaxIterations = gr.MaxIterations
	}
	if err := s.Verify(); err != nil {
		return mandelbrot.Settings{}, err
	}
	return s, nil
}

func (p *Panel) websocketHandler(w http.ResponseWriter, r *http.Request) {
	c, err := websocket.Accept(w, r, nil)
	if err != nil {
		p.logger.Warning(fmt.Sprintf("Accepting websocket from %s - %s", r.RemoteAddr, err))
		return
	}
	defer c.CloseNow()
	p.logger.Info(fmt.Sprintf("Panel connected from %s", r.RemoteAddr))

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	session := &session{conn: c, logger: p.logger}
	frames, unsubscribe := p.generator.Subscribe()
	defer unsubscribe()

	go func() {
		defer cancel()
		for {
			select {
			case frame, ok := <-frames:
				if !ok {
					return
				}
				if err := session.sendFrame(ctx, frame); err != nil {
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		_, data, err := c.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status != websocket.StatusNormalClosure && status != websocket.StatusGoingAway && !errors.Is(err, context.Canceled) {
				p.logger.Warning(fmt.Sprintf("Reading from panel %s - %s", r.RemoteAddr, err))
			}
			p.logger.Info(fmt.Sprintf("Panel disconnected from %s", r.RemoteAddr))
			return
		}

		var request GenerateRequest
		if err := json.Unmarshal(data, &request); err != nil {
			session.sendError(ctx, fmt.Errorf("bad request - %w", err))
			continue
		}
		settings, err := request.Apply(p.generator.Current().Settings)
		if err != nil {
			session.sendError(ctx, err)
			continue
		}
		// The rendered frame reaches this connection through the subscription
		if _, err := p.generator.Generate(settings); err != nil {
			session.sendError(ctx, err)
		}
	}
}

// session keeps a status message and its frame together on the wire
type session struct {
	conn   *websocket.Conn
	logger bslogger.Logger
	mutex  sync.Mutex
}

func (s *session) sendFrame(ctx context.Context, frame coordinator.Frame) error {
	data, err := misc.EncodePNG(frame.Image)
	if err != nil {
		s.logger.Error(err.Error())
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	settings := frame.Settings
	if err := wsjson.Write(ctx, s.conn, Status{Frame: frame.Number, Settings: &settings}); err != nil {
		return err
	}
	return s.conn.Write(ctx, websocket.MessageBinary, data)
}

func (s *session) sendError(ctx context.Context, err error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if werr := wsjson.Write(ctx, s.conn, Status{Error: err.Error()}); werr != nil {
		s.logger.Warning(fmt.Sprintf("Reporting error to panel - %s", werr))
	}
}
