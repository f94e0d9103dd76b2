// Package audio synthesizes short combat cues through the speaker.
// Failure to open the audio device is non-fatal; the game runs silent.
package audio

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"arcstorm/constant"
	"arcstorm/event"
)

// Cues maps bus events to synthesized tones
type Cues struct {
	enabled    bool
	sampleRate beep.SampleRate
}

// NewCues initializes the speaker and subscribes to combat events.
// The returned Cues stays silent when initialization fails or when the
// config disables audio.
func NewCues(bus *event.Bus, enable bool) *Cues {
	c := &Cues{
		sampleRate: beep.SampleRate(constant.AudioSampleRate),
	}
	if !enable {
		return c
	}

	if err := speaker.Init(c.sampleRate, c.sampleRate.N(time.Second/10)); err == nil {
		c.enabled = true
	}

	bus.Register(c)
	return c
}

// EventTypes declares the bus subscriptions
func (c *Cues) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventWeaponFired,
		event.EventEnemyHit,
		event.EventEnemyDied,
		event.EventPlayerTookDamage,
		event.EventEffectTriggered,
	}
}

// HandleEvent plays the cue for each combat event
func (c *Cues) HandleEvent(ev event.GameEvent) {
	switch ev.Type {
	case event.EventWeaponFired:
		c.tone(330, 80*time.Millisecond)
	case event.EventEnemyHit:
		c.tone(880, 40*time.Millisecond)
	case event.EventEnemyDied:
		c.tone(110, 220*time.Millisecond)
	case event.EventPlayerTookDamage:
		c.tone(150, 160*time.Millisecond)
	case event.EventEffectTriggered:
		if p, ok := ev.Payload.(*event.EffectPayload); ok {
			switch p.Kind {
			case event.EffectDischarge:
				c.tone(660, 100*time.Millisecond)
			case event.EffectArcLightning:
				c.tone(1320, 120*time.Millisecond)
			}
		}
	}
}

// ChargeReady is wired to the weapon machine's Charging->Charged edge
func (c *Cues) ChargeReady() {
	c.tone(990, 60*time.Millisecond)
}

// tone plays a fixed-length sine burst
func (c *Cues) tone(freq float64, d time.Duration) {
	if !c.enabled {
		return
	}

	sine, err := generators.SineTone(c.sampleRate, freq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(c.sampleRate.N(d), sine))
}
