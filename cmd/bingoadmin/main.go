// bingoadmin is the operator surface: it reads and writes the shared
// game-data and settings documents directly and dumps everyone's progress,
// bypassing the per-player board logic entirely.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"

	appcfg "github.com/bishwajeet-gh/bingo/internal/config"
	"github.com/bishwajeet-gh/bingo/internal/jsonbin"
	"github.com/bishwajeet-gh/bingo/internal/obslog"
	"github.com/bishwajeet-gh/bingo/pkg/bingodto"
)

func main() {
	if err := obslog.InitFromEnv(); err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	cfg, err := appcfg.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if cfg.UseMock {
		log.Fatalf("admin tool requires the hosted document store; unset USE_MOCK")
	}

	headers := func() map[string]string {
		return map[string]string{
			"X-Master-Key": cfg.JSONBinAPIKey,
			"X-Bin-Meta":   "false",
			"versioning":   "false",
		}
	}
	client := jsonbin.NewClient(cfg.JSONBinBaseURL,
		jsonbin.WithHeaderProvider(headers),
		jsonbin.WithTimeout(cfg.RequestTimeout),
		jsonbin.WithRetry(cfg.RetryMaxAttempts),
		jsonbin.WithRetryDelay(cfg.RetryDelay),
	)
	docs := jsonbin.NewService(client, jsonbin.BinIDs{
		GameData: cfg.GameDataBinID,
		Progress: cfg.ProgressBinID,
		Winners:  cfg.WinnersBinID,
		Toggles:  cfg.TogglesBinID,
		Settings: cfg.SettingsBinID,
	}, false, cfg.DefaultBoardSize)

	ctx := context.Background()
	args := os.Args[1:]
	if len(args) == 0 {
		usage()
	}

	switch args[0] {
	case "dump":
		dump(ctx, docs)
	case "stats":
		stats(ctx, docs)
	case "set-tasks":
		setGameData(ctx, docs, args[1:], true)
	case "set-users":
		setGameData(ctx, docs, args[1:], false)
	case "set-size":
		setSize(ctx, cfg, docs, args[1:])
	default:
		usage()
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, strings.Join([]string{
		"usage: bingoadmin <command>",
		"  dump              print every player's progress and notes",
		"  stats             print totals across all players",
		"  set-tasks <file>  replace the task pool (one task per line)",
		"  set-users <file>  replace the roster (one name per line)",
		"  set-size <n>      set the shared board size",
	}, "\n"))
	os.Exit(2)
}

func dump(ctx context.Context, docs *jsonbin.Service) {
	all := docs.AllProgress(ctx)
	for _, name := range sortedNames(all) {
		s := all[name]
		fmt.Printf("%s: bingos=%d completed=%d/%d lastSynced=%s\n",
			name, s.BingoCount, len(s.SelectedCells), s.BoardSize*s.BoardSize,
			s.LastSynced.Format("2006-01-02 15:04:05"))
		indices := make([]int, 0, len(s.NotesByIndex))
		for idx := range s.NotesByIndex {
			indices = append(indices, idx)
		}
		sort.Ints(indices)
		for _, idx := range indices {
			task := ""
			if idx >= 0 && idx < len(s.Tasks) {
				task = s.Tasks[idx]
			}
			fmt.Printf("    cell %d (%s): %s\n", idx, task, s.NotesByIndex[idx])
		}
	}
}

func stats(ctx context.Context, docs *jsonbin.Service) {
	all := docs.AllProgress(ctx)
	withBingo, totalBingos := 0, 0
	for _, s := range all {
		if s.BingoCount > 0 {
			withBingo++
		}
		totalBingos += s.BingoCount
	}
	fmt.Printf("players: %d\nplayers with bingo: %d\ntotal bingos: %d\n",
		len(all), withBingo, totalBingos)
}

func setGameData(ctx context.Context, docs *jsonbin.Service, args []string, tasks bool) {
	if len(args) != 1 {
		usage()
	}
	raw, err := os.ReadFile(args[0])
	if err != nil {
		log.Fatalf("read %s: %v", args[0], err)
	}
	var lines []string
	for _, line := range strings.Split(string(raw), "\n") {
		if s := strings.TrimSpace(line); s != "" {
			lines = append(lines, s)
		}
	}
	doc := docs.GameData(ctx)
	if tasks {
		doc.Tasks = lines
	} else {
		doc.Users = lines
	}
	if err := docs.UpdateGameData(ctx, doc); err != nil {
		log.Fatalf("update game data: %v", err)
	}
	fmt.Printf("game data updated: %d tasks, %d users\n", len(doc.Tasks), len(doc.Users))
}

func setSize(ctx context.Context, cfg *appcfg.AppConfig, docs *jsonbin.Service, args []string) {
	if len(args) != 1 {
		usage()
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || !cfg.BoardSizeAllowed(n) {
		log.Fatalf("board size must be one of %v", cfg.BoardSizes)
	}
	if err := docs.UpdateSettings(ctx, &bingodto.SettingsDocument{BoardSize: n}); err != nil {
		log.Fatalf("update settings: %v", err)
	}
	fmt.Printf("board size set to %d (existing boards reset on next login)\n", n)
}

func sortedNames(all bingodto.ProgressDocument) []string {
	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
