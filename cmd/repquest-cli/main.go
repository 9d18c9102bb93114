// Command repquest-cli is the offline-first tracker client. State lives in
// a local cache and mirrors to the server when reachable; every command
// works without a network connection.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/repquest/repquest/internal/cache"
	"github.com/repquest/repquest/internal/game"
	"github.com/repquest/repquest/internal/models"
	"github.com/repquest/repquest/internal/remote"
	"github.com/repquest/repquest/internal/syncer"
)

// Version is set at build time via -ldflags.
var Version = "dev"

const usage = `Usage: repquest-cli [flags] <command> [args]

Commands:
  status                                 level, rank, XP, attribute stats
  quests                                 today's daily quests
  badges                                 badge list with unlock state
  plan                                   show the workout plan
  log <day> <exercise#> <set#> <kg> <reps> [rpe]
                                         record a set for today
  done <day> <exercise#>                 mark an exercise finished
  swap <day> <exercise#>                 cycle to the next alternative exercise
  finish <day> [-note text]              finalize today's workout
  weight <kg> [waist]                    save today's body measurement
  history [n]                            recent sessions (default 10)
  delete-session <id>                    delete a session (asks to confirm)
  delete-metric <date>                   delete a measurement (asks to confirm)

Flags:
`

func main() {
	serverURL := flag.String("server", os.Getenv("REPQUEST_SERVER"), "server URL (empty = offline only)")
	apiKey := flag.String("api-key", os.Getenv("REPQUEST_API_KEY"), "server API key")
	user := flag.String("user", "", "user login on the server")
	stateDir := flag.String("state", "", "state directory (default ~/.repquest)")
	yes := flag.Bool("yes", false, "skip confirmation prompts")
	version := flag.Bool("version", false, "print version and exit")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *version {
		fmt.Println("repquest-cli", Version)
		return
	}
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	dir := *stateDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "cannot determine home directory:", err)
			os.Exit(1)
		}
		dir = filepath.Join(home, ".repquest")
	}

	c, err := cache.Open(dir)
	if err != nil {
		fmt.Fprintln(os.Stderr, "opening local cache:", err)
		os.Exit(1)
	}
	defer c.Close()

	var rc syncer.Remote
	if *serverURL != "" {
		rc = remote.New(*serverURL, *apiKey, *user)
	}

	store := syncer.New(c, rc, log)
	ctx := context.Background()
	if err := store.Load(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "loading state:", err)
		os.Exit(1)
	}

	if err := run(ctx, store, flag.Args(), *yes); err != nil {
		if errors.Is(err, syncer.ErrRemote) {
			// Local state is committed; the server will catch up on the
			// next successful sync.
			fmt.Fprintln(os.Stderr, "saved locally, but sync failed:", err)
			return
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, store *syncer.Store, args []string, yes bool) error {
	cmd, rest := args[0], args[1:]
	today := time.Now().Format("2006-01-02")

	switch cmd {
	case "status":
		printStats(store)
		return nil

	case "quests":
		for _, q := range store.DailyQuests() {
			mark := " "
			if q.Completed {
				mark = "x"
			}
			fmt.Printf("[%s] %-20s %4d XP  %s\n", mark, q.Title, q.XP, q.Description)
		}
		return nil

	case "badges":
		for _, b := range store.Badges() {
			mark := " "
			if b.Unlocked {
				mark = "x"
			}
			fmt.Printf("[%s] %-20s %s\n", mark, b.Title, b.Description)
		}
		return nil

	case "plan":
		printPlan(store.Plan())
		return nil

	case "log":
		if len(rest) < 5 {
			return fmt.Errorf("usage: log <day> <exercise#> <set#> <kg> <reps> [rpe]")
		}
		exIdx, setIdx, err := parseIndexes(rest[1], rest[2])
		if err != nil {
			return err
		}
		set := models.SetEntry{Weight: rest[3], Reps: rest[4], Completed: true}
		if len(rest) > 5 {
			set.RPE = rest[5]
		}
		store.LogSet(today, rest[0], exIdx, setIdx, set)
		fmt.Printf("logged %s x %s on %s #%d\n", rest[3], rest[4], rest[0], exIdx)
		return nil

	case "done":
		if len(rest) < 2 {
			return fmt.Errorf("usage: done <day> <exercise#>")
		}
		exIdx, err := strconv.Atoi(rest[1])
		if err != nil {
			return fmt.Errorf("exercise# must be a number")
		}
		store.MarkDone(today, rest[0], exIdx, true)
		fmt.Println("marked done")
		return nil

	case "swap":
		if len(rest) < 2 {
			return fmt.Errorf("usage: swap <day> <exercise#>")
		}
		exIdx, err := strconv.Atoi(rest[1])
		if err != nil {
			return fmt.Errorf("exercise# must be a number")
		}
		name, err := store.SwapExercise(today, rest[0], exIdx)
		if err != nil {
			return err
		}
		fmt.Println("now showing:", name)
		return nil

	case "finish":
		if len(rest) < 1 {
			return fmt.Errorf("usage: finish <day> [-note text]")
		}
		note := ""
		if len(rest) >= 3 && rest[1] == "-note" {
			note = strings.Join(rest[2:], " ")
		}
		session, err := store.FinishWorkout(ctx, today, rest[0], note, nil)
		if err != nil && !errors.Is(err, syncer.ErrRemote) {
			return err
		}
		fmt.Printf("finished %q: %d exercises, %.0f volume\n",
			session.Label, len(session.Exercises), game.SessionVolume(session))
		printStats(store)
		return err

	case "weight":
		if len(rest) < 1 {
			return fmt.Errorf("usage: weight <kg> [waist]")
		}
		m := models.BodyMetric{Date: today, Weight: rest[0]}
		if len(rest) > 1 {
			m.Waist = rest[1]
		}
		return store.SaveBodyMetric(ctx, m)

	case "history":
		n := 10
		if len(rest) > 0 {
			if v, err := strconv.Atoi(rest[0]); err == nil {
				n = v
			}
		}
		for i, s := range store.History() {
			if i >= n {
				break
			}
			fmt.Printf("%s  %s  %-20s %d exercises  %.0f volume\n",
				s.ID, s.Date, s.Label, len(s.Exercises), game.SessionVolume(s))
		}
		return nil

	case "delete-session":
		if len(rest) < 1 {
			return fmt.Errorf("usage: delete-session <id>")
		}
		id, err := uuid.Parse(rest[0])
		if err != nil {
			return fmt.Errorf("invalid session id")
		}
		if !confirm(fmt.Sprintf("delete session %s?", id), yes) {
			return nil
		}
		return store.DeleteSession(ctx, id)

	case "delete-metric":
		if len(rest) < 1 {
			return fmt.Errorf("usage: delete-metric <date>")
		}
		if !confirm(fmt.Sprintf("delete measurement for %s?", rest[0]), yes) {
			return nil
		}
		return store.DeleteBodyMetric(ctx, rest[0])

	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func parseIndexes(exStr, setStr string) (int, int, error) {
	exIdx, err := strconv.Atoi(exStr)
	if err != nil {
		return 0, 0, fmt.Errorf("exercise# must be a number")
	}
	setIdx, err := strconv.Atoi(setStr)
	if err != nil {
		return 0, 0, fmt.Errorf("set# must be a number")
	}
	return exIdx, setIdx, nil
}

// confirm asks before destructive operations unless -yes was given.
func confirm(prompt string, yes bool) bool {
	if yes {
		return true
	}
	fmt.Printf("%s [y/N] ", prompt)
	line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	return strings.EqualFold(strings.TrimSpace(line), "y")
}

func printStats(store *syncer.Store) {
	stats := store.Stats()
	fmt.Printf("Level %d  %s  (%.0f XP)\n", stats.Level, stats.Rank, stats.TotalXP)
	fmt.Printf("Next level: %.1f%%, %.0f XP to go\n",
		stats.Progress.Percentage, stats.Progress.XPMissing)
	for _, attr := range []string{game.AttrStrength, game.AttrTechnique, game.AttrStamina, game.AttrAesthetics} {
		a := stats.Attributes[attr]
		fmt.Printf("  %-11s lvl %-3d %.0f XP\n", attr, a.Level, a.XP)
	}
}

func printPlan(plan models.Plan) {
	for _, dayKey := range models.DayKeys {
		day, ok := plan[dayKey]
		if !ok {
			continue
		}
		fmt.Printf("%s: %s (%s)\n", dayKey, day.Title, day.Focus)
		for i, ex := range day.Exercises {
			fmt.Printf("  %d. %-25s %s", i, ex.Name, ex.Sets)
			if ex.Note != "" {
				fmt.Printf("  (%s)", ex.Note)
			}
			fmt.Println()
		}
	}
}
