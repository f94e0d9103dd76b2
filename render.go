package main

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"

	"arcstorm/combat"
	"arcstorm/event"
	"arcstorm/game"
	"arcstorm/vmath"
	"arcstorm/weapon"
)

const hudRows = 3

var (
	styleDefault    = tcell.StyleDefault
	stylePlayer     = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleEnemy      = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleEnemyHurt  = tcell.StyleDefault.Foreground(tcell.ColorDarkRed)
	styleProjectile = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleArc        = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleBlast      = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	styleHUD        = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleGameOver   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

// render draws one frame: the arena as a top-down XZ projection above a
// fixed HUD strip
func (g *Game) render() {
	g.screen.Clear()
	g.pruneVisuals()

	g.drawArena()
	g.drawHUD()

	if g.player.IsDead() {
		g.drawGameOver()
	}

	g.screen.Show()
}

// project maps an arena position onto screen cells. Terminal cells are
// about twice as tall as wide, so X gets double scale.
func (g *Game) project(p vmath.Vec3) (int, int) {
	fieldH := g.height - hudRows
	scale := float64(fieldH) / (2 * g.cfg.Game.ArenaRadius)

	x := g.width/2 + int(p.X*scale*2)
	y := fieldH/2 + int(p.Z*scale)
	return x, y
}

func (g *Game) drawArena() {
	px, py := g.project(game.PlayerEye)
	g.setCell(px, py, '@', stylePlayer)

	g.enemies.Each(func(e combat.Enemy) {
		x, y := g.project(e.Position)
		ch := 'O'
		style := styleEnemy
		if e.Health*2 <= e.MaxHealth {
			ch = 'o'
			style = styleEnemyHurt
		}
		g.setCell(x, y, ch, style)
	})

	g.director.Projectiles(func(id uuid.UUID, pos vmath.Vec3) {
		x, y := g.project(pos)
		g.setCell(x, y, '*', styleProjectile)
	})

	for _, v := range g.visuals {
		switch v.kind {
		case event.EffectArcLightning:
			for _, p := range v.points {
				x, y := g.project(p)
				g.setCell(x, y, '+', styleArc)
			}
		case event.EffectExplosion, event.EffectSplashDamage, event.EffectEnemyDeath:
			x, y := g.project(v.pos)
			g.setCell(x, y, '#', styleBlast)
		}
	}
}

func (g *Game) drawHUD() {
	base := g.height - hudRows

	schema, machine := g.arsenal.Current()
	line1 := fmt.Sprintf(" HP %s  Shield %s  Score %d  Wave %d",
		bar(g.player.Health(), g.player.MaxHealth(), 10),
		bar(g.player.Shield(), max(g.player.MaxShield(), 1), 10),
		g.player.Score(),
		g.director.Wave(),
	)
	line2 := fmt.Sprintf(" [%s] %s  %s", schema.ID, schema.Name, chargeMeter(machine))
	line3 := " space charge/fire  1-2 weapon  w ward  r restart  q quit"

	g.drawText(0, base, line1, styleHUD)
	g.drawText(0, base+1, line2, styleHUD)
	g.drawText(0, base+2, line3, styleHUD.Dim(true))
}

// chargeMeter renders the machine's phase and, while charging, its
// progress toward ready
func chargeMeter(m *weapon.Machine) string {
	switch m.State() {
	case weapon.StateCharging:
		total := m.Stats().ChargeDuration
		filled := 0
		if total > 0 {
			filled = int(8 * m.StateElapsed() / total)
			if filled > 8 {
				filled = 8
			}
		}
		return "[" + strings.Repeat("=", filled) + strings.Repeat(".", 8-filled) + "]"
	case weapon.StateCharged:
		return "[READY]"
	default:
		return m.State().String()
	}
}

// bar renders value/max as a fixed-width meter like [====------]
func bar(value, maxValue, width int) string {
	if value < 0 {
		value = 0
	}
	filled := 0
	if maxValue > 0 {
		filled = value * width / maxValue
		if filled > width {
			filled = width
		}
	}
	return "[" + strings.Repeat("=", filled) + strings.Repeat("-", width-filled) + "]"
}

func (g *Game) drawGameOver() {
	msg := fmt.Sprintf(" GAME OVER - score %d - press r to restart ", g.player.Score())
	x := (g.width - len(msg)) / 2
	y := (g.height - hudRows) / 2
	g.drawText(x, y, msg, styleGameOver)
}

// pruneVisuals drops expired transient effects
func (g *Game) pruneVisuals() {
	now := g.clock.Now()
	live := g.visuals[:0]
	for _, v := range g.visuals {
		if v.expires.After(now) {
			live = append(live, v)
		}
	}
	g.visuals = live
}

func (g *Game) drawText(x, y int, text string, style tcell.Style) {
	for i, r := range text {
		g.setCell(x+i, y, r, style)
	}
}

func (g *Game) setCell(x, y int, r rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return
	}
	g.screen.SetContent(x, y, r, nil, style)
}
