package app

import (
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/stannis/internal/config"
	"github.com/kobzarvs/stannis/internal/logger"
	"github.com/kobzarvs/stannis/internal/messenger"
	"github.com/kobzarvs/stannis/internal/ui"
)

// App is the top-level runtime for stannis.
type App struct {
	args []string
}

func New(args []string) *App {
	return &App{args: args}
}

func (a *App) Run() error {
	runtime.LockOSThread()
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := logger.Init(os.Getenv("STANNIS_DEBUG") == "1"); err != nil {
		return err
	}
	defer logger.Close()

	client, err := newClient(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = client.Stop() }()

	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	defer s.Fini()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(sigs)

	v := ui.New(cfg, client)
	return run(s, v, client.Events(), sigs)
}

func newClient(cfg config.Config) (messenger.Client, error) {
	if cfg.Bridge.Command == "" {
		logger.Info("using local messenger", "name", cfg.Identity.Name)
		return messenger.NewLocal(cfg.Identity.Name), nil
	}
	return messenger.StartBridge(cfg.Bridge.Command, cfg.Bridge.Args...)
}

// run is the event loop. Network events and signals reach it through the
// screen's own queue, so PollEvent is the only place it ever waits.
func run(s tcell.Screen, v *ui.View, events <-chan messenger.Event, sigs <-chan os.Signal) error {
	stop := make(chan struct{})
	defer close(stop)
	go forward(s, stop, events, sigs)

	w, h := s.Size()
	v.Resize(w, h)
	v.Render(s)
	for {
		ev := s.PollEvent()
		if ev == nil {
			return nil
		}
		resized := false
		for {
			switch ev := ev.(type) {
			case *tcell.EventKey:
				v.HandleKey(ev)
			case *tcell.EventResize:
				resized = true
			case *tcell.EventInterrupt:
				switch data := ev.Data().(type) {
				case messenger.Event:
					v.Apply(data)
				case os.Signal:
					logger.Info("signal received", "signal", data.String())
					return nil
				}
			}
			if v.Quit() {
				return nil
			}
			if !s.HasPendingEvent() {
				break
			}
			ev = s.PollEvent()
		}
		if resized {
			w, h := s.Size()
			v.Resize(w, h)
			s.Sync()
		}
		if v.TakeSync() {
			s.Sync()
		}
		v.Render(s)
	}
}

func forward(s tcell.Screen, stop <-chan struct{}, events <-chan messenger.Event, sigs <-chan os.Signal) {
	for {
		select {
		case <-stop:
			return
		case ev := <-events:
			if err := s.PostEvent(tcell.NewEventInterrupt(ev)); err != nil {
				logger.Warn("event dropped", "kind", string(ev.Kind), "error", err)
			}
		case sig := <-sigs:
			_ = s.PostEvent(tcell.NewEventInterrupt(sig))
		}
	}
}
