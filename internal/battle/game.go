// Package battle runs a tank battle campaign: it loads stages, feeds player
// input to the hero tanks, spawns and steers enemies, and drives the world
// through one collision pass per tick.
package battle

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/Ikbal01/tanks-game/internal/battle/collision"
	"github.com/Ikbal01/tanks-game/internal/battle/level"
	"github.com/Ikbal01/tanks-game/internal/battle/sprite"
	"github.com/Ikbal01/tanks-game/internal/battle/world"
	"github.com/Ikbal01/tanks-game/internal/config"
	"github.com/Ikbal01/tanks-game/internal/core"
	"github.com/Ikbal01/tanks-game/internal/registry"
)

// GameState constants
const (
	StatePlaying    = "playing"    // Battle in progress
	StatePaused     = "paused"     // Game paused
	StateStageClear = "stageclear" // Short break before the next stage
	StateGameOver   = "gameover"   // Fortress fell or every hero is gone
	StateWin        = "win"        // Last stage cleared
)

// stageClearDelay is how long the stage clear banner stays up.
const stageClearDelay = 120

// Options configures how games load their settings and maps.
type Options struct {
	ConfigPath string                  // custom battle.yaml
	Difficulty config.DifficultyPreset // empty keeps the config file's setting
	MapPath    string                  // custom map played instead of the campaign
	Stage      int                     // first campaign stage, 1-based
	Strict     bool                    // panic when a registry invariant breaks
	Logger     *log.Logger
}

var (
	defaultsMu sync.RWMutex
	defaults   = Options{Stage: 1}
)

// Configure sets the options of games created through the registry.
// The CLI calls it once before the first game starts.
func Configure(opts Options) {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()
	defaults = opts
}

func currentOptions() Options {
	defaultsMu.RLock()
	defer defaultsMu.RUnlock()
	return defaults
}

// heroCarry is what a hero takes from one stage into the next.
type heroCarry struct {
	lives int
	tier  int
}

// Game implements the tank battle.
type Game struct {
	coop   bool
	opts   Options
	logger *log.Logger

	// Configuration
	runtime    core.RuntimeConfig
	cfg        config.BattleConfig
	rules      sprite.Rules
	difficulty *config.DifficultyManager

	// Current stage
	lvl     *level.Level
	world   *world.World
	collide *collision.System
	spawner *spawner
	rng     *world.RNG

	// Campaign state
	state       string
	stage       int
	tickCount   int
	stateTimer  int
	players     []core.PlayerID
	banked      map[core.PlayerID]int // score from cleared stages
	bankedKills map[core.PlayerID]int
	carry       map[core.PlayerID]heroCarry

	minScreenW     int
	minScreenH     int
	screenTooSmall bool
}

// New creates a single player battle using the options set by Configure.
func New() *Game {
	return NewWithOptions(currentOptions(), false)
}

// NewCoop creates a two player co-op battle using the options set by Configure.
func NewCoop() *Game {
	return NewWithOptions(currentOptions(), true)
}

// NewWithOptions creates a battle with explicit options.
func NewWithOptions(opts Options, coop bool) *Game {
	if opts.Stage < 1 {
		opts.Stage = 1
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Game{coop: coop, opts: opts, logger: logger}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.coop {
		return "tanks_coop"
	}
	return "tanks"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.coop {
		return "Tanks (Co-op)"
	}
	return "Tanks"
}

// Reset starts the campaign over from the configured stage.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.LoadBattle(g.opts.ConfigPath)
	if err != nil {
		g.logger.Warn("falling back to default config", "err", err)
		cfg = config.DefaultBattleConfig()
	}
	config.ApplyBattlePreset(&cfg, g.opts.Difficulty)
	g.cfg = cfg
	g.rules = rulesFromConfig(cfg)
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	bw, bh := g.boardSize()
	g.minScreenW = bw + hudWidth
	g.minScreenH = bh
	g.screenTooSmall = runtime.ScreenW < g.minScreenW || runtime.ScreenH < g.minScreenH

	g.players = []core.PlayerID{core.Player1}
	if g.coop || runtime.Players >= 2 {
		g.players = append(g.players, core.Player2)
	}
	g.banked = make(map[core.PlayerID]int)
	g.bankedKills = make(map[core.PlayerID]int)
	g.carry = make(map[core.PlayerID]heroCarry)
	for _, p := range g.players {
		g.carry[p] = heroCarry{lives: g.rules.HeroLives}
	}

	g.rng = world.NewRNG(runtime.Seed)
	g.tickCount = 0
	g.stateTimer = 0
	g.stage = g.opts.Stage
	if g.opts.MapPath != "" {
		g.stage = 1
	}
	g.loadStage(g.stage)
	g.state = StatePlaying
}

// Resize adapts to a new terminal size without restarting the campaign.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW, g.runtime.ScreenH = w, h
	g.screenTooSmall = w < g.minScreenW || h < g.minScreenH
}

// stageCount returns the number of stages in the campaign.
func (g *Game) stageCount() int {
	if g.opts.MapPath != "" {
		return 1
	}
	return level.StageCount()
}

func (g *Game) levelFor(n int) (*level.Level, error) {
	if g.opts.MapPath != "" {
		return level.Load(g.opts.MapPath)
	}
	return level.Stage(n)
}

// loadStage builds a fresh world for stage n. Heroes keep the lives and
// tier they finished the previous stage with.
func (g *Game) loadStage(n int) {
	lvl, err := g.levelFor(n)
	if err != nil {
		g.logger.Error("stage failed to load, using stage 1", "stage", n, "err", err)
		lvl, err = level.Stage(1)
		if err != nil {
			panic(fmt.Sprintf("battle: embedded stage 1: %v", err))
		}
	}
	g.lvl = lvl

	w := world.New(&g.rules, worldOptions(g.cfg), g.rng, g.logger)
	for _, c := range lvl.Bricks {
		w.AddBrick(c.Col, c.Row)
	}
	for _, c := range lvl.Steel {
		w.AddSteel(c.Col, c.Row)
	}
	w.SetFortress(lvl.Fortress.Col, lvl.Fortress.Row)
	for _, p := range g.players {
		c := g.carry[p]
		if c.lives <= 0 {
			continue
		}
		x, y := heroSpawn(&g.rules, p)
		h := w.AddHero(p, x, y)
		h.Lives = c.lives
		h.Tier = c.tier
	}
	w.Commit()

	g.world = w
	g.collide = collision.New(w, w, g.logger)
	g.spawner = newSpawner(lvl, enemySpawns(&g.rules), g.cfg.Enemy.MaxAlive)
	g.logger.Info("stage start", "stage", n, "name", lvl.Name, "enemies", len(lvl.Enemies))
}

// Step advances the battle with input for player one only.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	multi := core.NewMultiInputFrame()
	multi.SetPlayer(core.Player1, in)
	return g.StepMulti(multi)
}

// StepMulti advances the battle by one tick with input from every player.
func (g *Game) StepMulti(in core.MultiInputFrame) core.StepResult {
	if g.screenTooSmall {
		return core.StepResult{State: g.State()}
	}

	// Handle restart
	if in.Any(core.ActionRestart) && (g.state == StateGameOver || g.state == StateWin) {
		g.Reset(g.runtime)
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Any(core.ActionPause) {
		if g.state == StatePaused {
			g.state = StatePlaying
		} else if g.state == StatePlaying {
			g.state = StatePaused
		}
	}

	switch g.state {
	case StatePlaying:
		g.tick(in)
	case StateStageClear:
		g.stateTimer--
		if g.stateTimer <= 0 {
			g.nextStage()
		}
	}
	return core.StepResult{State: g.State()}
}

// tick runs one simulation tick. Collision detection sees every move of the
// tick and the world sweeps finished entities only after it.
func (g *Game) tick(in core.MultiInputFrame) {
	g.tickCount++
	w := g.world
	w.BeginTick()

	for _, h := range w.Heroes() {
		controlHero(w, h, in.Player(h.Player))
	}

	score := g.Score()
	g.spawner.Update(w, g.difficulty.SpawnInterval(g.cfg.Enemy.SpawnInterval, score, g.tickCount))
	driveEnemies(w, g.cfg.Enemy.TurnChance, g.difficulty.FireChance(g.cfg.Enemy.FireChance, score, g.tickCount))

	w.AdvanceBullets()
	g.collide.Update()
	w.Commit()

	if err := w.Validate(); err != nil {
		if g.opts.Strict {
			panic(fmt.Sprintf("battle: tick %d: %v", w.Tick(), err))
		}
		g.logger.Error("registry invariant broken", "tick", w.Tick(), "err", err)
	}

	g.checkOutcome()
}

func (g *Game) checkOutcome() {
	w := g.world
	if w.HeroesDefeated() {
		w.GameOver()
	}
	if w.Over() {
		g.state = StateGameOver
		g.logger.Info("battle lost", "stage", g.stage, "score", g.Score(), "fortress_fallen", w.Fortress().Fallen())
		return
	}
	if g.spawner.Remaining() == 0 && len(w.Enemies()) == 0 {
		g.state = StateStageClear
		g.stateTimer = stageClearDelay
		g.logger.Info("stage clear", "stage", g.stage, "score", g.Score())
	}
}

// nextStage banks the finished stage and loads the next one, or ends the
// campaign after the last.
func (g *Game) nextStage() {
	if g.stage >= g.stageCount() {
		g.state = StateWin
		g.logger.Info("campaign won", "score", g.Score())
		return
	}

	for _, p := range g.players {
		g.banked[p] += g.world.Score(p)
		g.bankedKills[p] += g.world.Kills(p)
	}
	for _, h := range g.world.Heroes() {
		lives := h.Lives
		if h.State() == sprite.TankDestroyed {
			lives = 0
		}
		g.carry[h.Player] = heroCarry{lives: lives, tier: h.Tier}
	}

	g.stage++
	g.loadStage(g.stage)
	g.state = StatePlaying
}

// Score returns the combined score of all players.
func (g *Game) Score() int {
	total := 0
	for _, p := range g.players {
		total += g.PlayerScore(p)
	}
	return total
}

// PlayerScore returns one player's score over the whole campaign.
func (g *Game) PlayerScore(p core.PlayerID) int {
	s := g.banked[p]
	if g.world != nil {
		s += g.world.Score(p)
	}
	return s
}

// PlayerKills returns how many enemies a player destroyed.
func (g *Game) PlayerKills(p core.PlayerID) int {
	k := g.bankedKills[p]
	if g.world != nil {
		k += g.world.Kills(p)
	}
	return k
}

// Players returns the player slots taking part.
func (g *Game) Players() []core.PlayerID { return g.players }

// Stage returns the current stage, counting from 1.
func (g *Game) Stage() int { return g.stage }

// Ticks returns how many simulation ticks have been played.
func (g *Game) Ticks() int { return g.tickCount }

// Phase returns the current state constant.
func (g *Game) Phase() string { return g.state }

// World exposes the running stage.
func (g *Game) World() *world.World { return g.world }

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.Score(),
		GameOver: g.state == StateGameOver || g.state == StateWin,
		Won:      g.state == StateWin,
		Paused:   g.state == StatePaused,
		Stage:    g.stage,
	}
}

// Register the games with the registry
func init() {
	registry.Register("tanks", func() registry.Game {
		return New()
	})
	registry.Register("tanks_coop", func() registry.Game {
		return NewCoop()
	})
}
