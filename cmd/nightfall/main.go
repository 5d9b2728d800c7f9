// Package main provides the terminal front end for the horror survival
// game: it wires configuration, logging, the narrative backend, and the turn
// orchestrator, then runs a line-oriented game loop.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/cory-johannsen/nightfall/internal/config"
	"github.com/cory-johannsen/nightfall/internal/game/character"
	"github.com/cory-johannsen/nightfall/internal/game/consequence"
	"github.com/cory-johannsen/nightfall/internal/game/rng"
	"github.com/cory-johannsen/nightfall/internal/game/session"
	"github.com/cory-johannsen/nightfall/internal/game/turn"
	"github.com/cory-johannsen/nightfall/internal/game/world"
	"github.com/cory-johannsen/nightfall/internal/narrative"
	"github.com/cory-johannsen/nightfall/internal/observability"
	"github.com/cory-johannsen/nightfall/internal/server"
	"github.com/cory-johannsen/nightfall/internal/stats"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	storyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("7")).Width(80)
	alertStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func main() {
	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	flag.Parse()

	// API keys live in .env during development; a missing file is fine.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	species, locations, err := loadCatalogs(cfg.Game.ContentDir, logger)
	if err != nil {
		logger.Fatal("loading catalogs", zap.Error(err))
	}

	src := rng.NewCryptoSource()
	sess := session.New(species, locations, src, logger)
	sess.SetDifficulty(session.Difficulty(cfg.Game.Difficulty))

	backend := buildBackend(cfg.Narrative, logger)
	narrator := narrative.NewService(backend, src, logger)
	engine := consequence.NewEngine(src)
	recorder := stats.NewMemory()
	orch := turn.NewOrchestrator(sess, narrator, engine, recorder, logger)

	// The countdown reports timeout through this channel so the game loop
	// can announce it between inputs.
	endCh := make(chan turn.Outcome, 1)
	countdown := turn.NewCountdown(time.Second, func() {
		if outcome, ended := orch.Tick(); ended {
			select {
			case endCh <- outcome:
			default:
			}
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runner := server.NewRunner(logger)

	countdownDone := make(chan struct{})
	var countdownOnce sync.Once
	runner.Add("countdown", &server.FuncService{
		StartFn: func() error {
			stop := countdown.Start()
			<-countdownDone
			stop()
			return nil
		},
		StopFn: func() {
			countdownOnce.Do(func() { close(countdownDone) })
		},
	})

	runner.Add("game-loop", &server.FuncService{
		StartFn: func() error {
			gameLoop(ctx, cancel, orch, locations, narrator, recorder, endCh)
			cancel()
			return nil
		},
		StopFn: func() {},
	})

	if err := runner.Run(ctx); err != nil {
		logger.Fatal("runner error", zap.Error(err))
	}
}

// loadCatalogs reads the species and location catalogs from contentDir,
// falling back to the builtin catalogs when a directory is absent.
func loadCatalogs(contentDir string, logger *zap.Logger) ([]*character.Template, *world.Catalog, error) {
	species := character.Builtin()
	if dir := filepath.Join(contentDir, "species"); dirExists(dir) {
		loaded, err := character.LoadTemplates(dir)
		if err != nil {
			return nil, nil, err
		}
		if len(loaded) > 0 {
			species = loaded
		}
		logger.Info("species catalog loaded", zap.String("dir", dir), zap.Int("count", len(loaded)))
	}

	locs := world.Builtin()
	if dir := filepath.Join(contentDir, "locations"); dirExists(dir) {
		loaded, err := world.LoadLocations(dir)
		if err != nil {
			return nil, nil, err
		}
		if len(loaded) > 0 {
			locs = loaded
		}
		logger.Info("location catalog loaded", zap.String("dir", dir), zap.Int("count", len(loaded)))
	}

	catalog, err := world.NewCatalog(locs)
	if err != nil {
		return nil, nil, err
	}
	return species, catalog, nil
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// buildBackend constructs the configured Generator, or nil for pure
// fallback play.
func buildBackend(cfg config.NarrativeConfig, logger *zap.Logger) narrative.Generator {
	switch cfg.Provider {
	case "ollama":
		logger.Info("using ollama backend",
			zap.String("base_url", cfg.Ollama.BaseURL),
			zap.String("model", cfg.Ollama.Model),
		)
		return narrative.NewOllamaClient(cfg.Ollama.BaseURL, cfg.Ollama.Model, cfg.Ollama.Timeout)
	case "anthropic":
		logger.Info("using anthropic backend", zap.String("model", cfg.Anthropic.Model))
		return narrative.NewAnthropicClient(cfg.Anthropic.APIKey, cfg.Anthropic.Model)
	default:
		logger.Info("no narrative backend configured, using fallback stories")
		return nil
	}
}

// gameLoop reads player intents line by line until quit or EOF.
func gameLoop(ctx context.Context, cancel context.CancelFunc, orch *turn.Orchestrator, locations *world.Catalog, narrator *narrative.Service, recorder *stats.Memory, endCh <-chan turn.Outcome) {
	fmt.Println(titleStyle.Render("NIGHTFALL — HORROR APOCALYPSE"))
	if narrator.TestConnection(ctx) {
		fmt.Println(dimStyle.Render("Narrative backend online."))
	} else {
		fmt.Println(dimStyle.Render("Narrative backend unreachable; expect fallback stories."))
	}
	fmt.Println(dimStyle.Render("Commands: start, reset, go <location>, add, difficulty <level>, status, locations, stats, quit"))

	scanner := bufio.NewScanner(os.Stdin)
	for {
		announceEnd(endCh)
		fmt.Print(promptStyle.Render("> "))
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		switch strings.ToLower(fields[0]) {
		case "quit", "exit":
			return
		case "start":
			orch.Session().Start()
			snap := orch.Session().Snapshot()
			fmt.Println(storyStyle.Render(snap.CurrentStory))
			printRoster(snap)
		case "reset":
			orch.Session().Reset()
			fmt.Println(dimStyle.Render("Game reset."))
		case "add":
			if c, ok := orch.Session().AddCharacter(); ok {
				fmt.Printf("%s %s the %s joins your team.\n", c.Emoji, c.Name, c.Species)
			} else {
				fmt.Println(dimStyle.Render("No room for another survivor."))
			}
		case "difficulty":
			if len(fields) < 2 || !orch.Session().SetDifficulty(session.Difficulty(fields[1])) {
				fmt.Println(dimStyle.Render("Usage: difficulty easy|normal|nightmare"))
			}
		case "status":
			printRoster(orch.Session().Snapshot())
		case "locations":
			printLocations(locations)
		case "stats":
			printStats(recorder)
		case "go":
			if len(fields) < 2 {
				fmt.Println(dimStyle.Render("Usage: go <location id>"))
				continue
			}
			loc, ok := findLocation(locations, fields[1])
			if !ok {
				fmt.Println(dimStyle.Render("Unknown location. Try 'locations'."))
				continue
			}
			runTurn(ctx, orch, "", loc)
		default:
			runTurn(ctx, orch, line, nil)
		}

		select {
		case <-ctx.Done():
			return
		default:
		}
	}
}

// runTurn submits one turn and renders its result.
func runTurn(ctx context.Context, orch *turn.Orchestrator, input string, loc *world.Location) {
	res := orch.Submit(ctx, input, loc)
	switch res.Status {
	case turn.StatusRejected:
		fmt.Println(dimStyle.Render("The night ignores you. Start a game first."))
		return
	case turn.StatusStale:
		return
	}

	fmt.Println(storyStyle.Render(res.Story))
	for _, c := range res.Consequences {
		fmt.Println(alertStyle.Render(c.Description))
	}
	if res.Ended {
		announceOutcome(res.Outcome)
	}
}

func announceEnd(endCh <-chan turn.Outcome) {
	select {
	case outcome := <-endCh:
		announceOutcome(outcome)
	default:
	}
}

func announceOutcome(outcome turn.Outcome) {
	switch outcome {
	case turn.OutcomeDeath:
		fmt.Println(alertStyle.Render("💀 All your characters have perished!"))
	case turn.OutcomeVictory:
		fmt.Println(titleStyle.Render("🏆 You survived the apocalypse!"))
	case turn.OutcomeTimeout:
		fmt.Println(alertStyle.Render("⏰ Time has run out!"))
	}
}

func printRoster(snap session.Snapshot) {
	if len(snap.Roster) == 0 {
		fmt.Println(dimStyle.Render("No survivors yet. Start the game to begin."))
		return
	}
	fmt.Printf("Time left %s · difficulty %s · %d/%d alive\n",
		formatTime(snap.TimeLeft), snap.Difficulty, snap.LivingCount(), len(snap.Roster))
	for _, c := range snap.Roster {
		state := fmt.Sprintf("HP %d/%d · ATK %d", c.HP, c.MaxHP, c.Attack)
		if !c.Alive {
			state = "DECEASED"
		}
		fmt.Printf("  %s %s (%s) — %s\n", c.Emoji, c.Name, c.Species, state)
	}
}

func printLocations(locations *world.Catalog) {
	for _, loc := range locations.All() {
		fmt.Printf("  %-12s %s — %s (danger %d/10)\n", loc.ID, loc.Name, loc.Description, loc.Danger)
	}
}

func printStats(recorder *stats.Memory) {
	fmt.Printf("Games played: %d\n", recorder.GamesPlayed())
	if best, ok := recorder.BestTime(); ok {
		fmt.Printf("Best time: %s\n", formatTime(best))
	} else {
		fmt.Println("Best time: none")
	}
}

// findLocation resolves a location by catalog ID or 1-based index.
func findLocation(locations *world.Catalog, key string) (*world.Location, bool) {
	if loc, ok := locations.ByID(strings.ToLower(key)); ok {
		return loc, true
	}
	if idx, err := strconv.Atoi(key); err == nil {
		all := locations.All()
		if idx >= 1 && idx <= len(all) {
			return all[idx-1], true
		}
	}
	return nil, false
}

func formatTime(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
