package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"

	"arcstorm/audio"
	"arcstorm/combat"
	"arcstorm/config"
	"arcstorm/core"
	"arcstorm/engine"
	"arcstorm/event"
	"arcstorm/game"
	"arcstorm/vmath"
	"arcstorm/weapon"
	"arcstorm/world"
)

// visual is a transient effect drawn until its expiry
type visual struct {
	kind    event.EffectKind
	pos     vmath.Vec3
	points  []vmath.Vec3
	expires time.Time
}

// Game is the terminal front end: it owns the screen and wires input to
// the combat core, which does all the actual work via the bus
type Game struct {
	screen        tcell.Screen
	width, height int

	cfg      *config.Config
	bus      *event.Bus
	clock    engine.Clock
	sched    *engine.Scheduler
	player   *combat.PlayerState
	enemies  *combat.Coordinator
	director *game.Director
	arsenal  *weapon.Arsenal
	cues     *audio.Cues

	session uuid.UUID
	visuals []visual
	quit    bool
}

// NewGame assembles the full game from a validated config
func NewGame(cfg *config.Config, seed int64, mute bool) (*Game, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	screen.EnableFocus()

	clock := engine.NewRealClock()
	sched := engine.NewScheduler(clock)
	bus := event.NewBus()

	enemies := combat.NewCoordinator(bus)
	player := combat.NewPlayerState(bus, cfg.Player.MaxHealth)
	arena := world.NewArena(enemies, cfg.Enemies.HitRadius)
	director := game.NewDirector(bus, sched, clock, enemies, player, arena, cfg, seed)

	schemas, err := cfg.Schemas()
	if err != nil {
		screen.Fini()
		return nil, err
	}
	arsenal := weapon.NewArsenal(bus, sched, clock, arena, director.AimRay, schemas)
	director.SetArsenal(arsenal)

	cues := audio.NewCues(bus, cfg.Game.Audio && !mute)
	arsenal.SetStateObserver(func(from, to weapon.AnimState) {
		if to == weapon.StateCharged {
			cues.ChargeReady()
		}
	})

	g := &Game{
		screen:   screen,
		cfg:      cfg,
		bus:      bus,
		clock:    clock,
		sched:    sched,
		player:   player,
		enemies:  enemies,
		director: director,
		arsenal:  arsenal,
		cues:     cues,
		session:  uuid.New(),
	}
	g.width, g.height = screen.Size()

	// The front end is just another bus consumer for effect visuals
	bus.Register(g)

	return g, nil
}

// EventTypes declares the effect subscription for transient visuals
func (g *Game) EventTypes() []event.EventType {
	return []event.EventType{event.EventEffectTriggered}
}

// HandleEvent records transient visuals with a short lifetime
func (g *Game) HandleEvent(ev event.GameEvent) {
	p, ok := ev.Payload.(*event.EffectPayload)
	if !ok {
		return
	}
	g.visuals = append(g.visuals, visual{
		kind:    p.Kind,
		pos:     p.Position,
		points:  p.Points,
		expires: g.clock.Now().Add(200 * time.Millisecond),
	})
}

// Run is the single-threaded game loop: input and ticks interleave on
// one goroutine, matching the combat core's cooperative model
func (g *Game) Run() {
	inputCh := make(chan tcell.Event, 16)
	core.Go(func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				close(inputCh)
				return
			}
			inputCh <- ev
		}
	})

	tick := g.cfg.TickInterval()
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for !g.quit {
		select {
		case ev, ok := <-inputCh:
			if !ok {
				return
			}
			g.handleInput(ev)
		case <-ticker.C:
			g.sched.Advance()
			g.director.Update(tick)
			if g.player.IsDead() {
				g.arsenal.ResetState()
			}
			g.render()
		}
	}
}

// handleInput maps terminal events to combat-core operations
func (g *Game) handleInput(ev tcell.Event) {
	switch e := ev.(type) {
	case *tcell.EventResize:
		g.width, g.height = e.Size()
		g.screen.Sync()

	case *tcell.EventFocus:
		// Pointer-lock analogue: losing focus resets the weapon cycle
		if !e.Focused {
			g.arsenal.ResetState()
		}

	case *tcell.EventKey:
		switch {
		case e.Key() == tcell.KeyEscape || e.Key() == tcell.KeyCtrlC:
			g.quit = true
		case e.Rune() == 'q':
			g.quit = true
		case e.Rune() == ' ':
			// Tap to charge, tap again to fire (or cancel mid-charge)
			_, m := g.arsenal.Current()
			if m.State() == weapon.StateIdle {
				g.arsenal.StartCharging()
			} else {
				g.arsenal.Fire()
			}
		case e.Rune() >= '1' && e.Rune() <= '9':
			g.arsenal.Equip(int(e.Rune() - '1'))
		case e.Rune() == 'w':
			g.bus.Dispatch(event.EventPlayerAddShield, &event.ShieldPayload{
				Amount: g.cfg.Player.WardShield,
			})
		case e.Rune() == 'r':
			g.player.Reset()
			g.arsenal.ResetState()
			g.director.Reset()
		}
	}
}

// Close restores the terminal
func (g *Game) Close() {
	g.screen.Fini()
}

func main() {
	configPath := flag.String("config", "", "path to YAML config overriding defaults")
	seed := flag.Int64("seed", time.Now().UnixNano(), "wave spawn seed")
	mute := flag.Bool("mute", false, "disable audio cues")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	g, err := NewGame(cfg, *seed, *mute)
	if err != nil {
		log.Fatalf("startup: %v", err)
	}

	core.CrashHandler = func(r any) {
		g.screen.Fini()
		fmt.Fprintf(os.Stderr, "crash: %v\n", r)
		os.Exit(1)
	}

	g.Run()
	g.Close()
}
