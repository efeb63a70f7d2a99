package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	appcfg "github.com/bishwajeet-gh/bingo/internal/config"
	"github.com/bishwajeet-gh/bingo/internal/jsonbin"
	"github.com/bishwajeet-gh/bingo/internal/obslog"
	"github.com/bishwajeet-gh/bingo/internal/session"
	"github.com/bishwajeet-gh/bingo/internal/store"
)

func main() {
	if err := obslog.InitFromEnv(); err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	cfg, err := appcfg.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	docs := jsonbin.NewService(newClient(cfg), binIDs(cfg), cfg.UseMock, cfg.DefaultBoardSize)

	ctx := context.Background()
	var st store.Store
	if docs.MockEnabled(ctx) || cfg.RedisURL == "" {
		st = store.NewMemoryStore()
	} else {
		rs, err := store.NewRedisStore(cfg.RedisURL)
		if err != nil {
			log.Fatalf("store init error: %v", err)
		}
		st = rs
	}
	defer st.Close()

	sess := session.New(st, docs)
	sess.Events = session.Events{
		BingoCountChanged: func(count int) {
			if count > 0 {
				fmt.Printf("*** BINGO x%d ***\n", count)
			}
		},
		StateSaved: func(ok bool) {
			if ok {
				fmt.Println("Progress synced to cloud.")
			} else {
				fmt.Println("Sync failed; your progress is safe locally.")
			}
		},
		WinnersChanged: func() {
			fmt.Println("Leaderboard updated.")
		},
	}

	in := bufio.NewScanner(os.Stdin)
	name := prompt(in, "Player name: ")
	if err := sess.Start(ctx, name); err != nil {
		log.Fatalf("login error: %v", err)
	}

	fmt.Printf("Welcome, %s. Type 'help' for commands.\n", sess.Player())
	renderBoard(sess)

	for {
		fmt.Print("> ")
		if !in.Scan() {
			return
		}
		parts := strings.Fields(in.Text())
		if len(parts) == 0 {
			continue
		}
		switch strings.ToLower(parts[0]) {
		case "help":
			printHelp()
		case "board":
			renderBoard(sess)
		case "t", "toggle":
			handleToggle(ctx, sess, in, parts[1:])
		case "note":
			handleNote(ctx, sess, parts[1:])
		case "sync":
			if err := sess.Sync(ctx); err != nil {
				fmt.Printf("sync error: %v\n", err)
			}
		case "reset":
			if err := sess.Reset(ctx); err != nil {
				fmt.Printf("reset error: %v\n", err)
			} else {
				fmt.Println("Fresh board dealt.")
				renderBoard(sess)
			}
		case "top":
			for i, w := range sess.Leaderboard(ctx) {
				fmt.Printf("%2d. %-20s %d\n", i+1, w.Name, w.Score)
			}
		case "quit", "exit":
			return
		default:
			fmt.Println("Unknown command. Try 'help'.")
		}
	}
}

func newClient(cfg *appcfg.AppConfig) *jsonbin.Client {
	if cfg.JSONBinAPIKey == "" {
		return nil
	}
	headers := func() map[string]string {
		return map[string]string{
			"X-Master-Key": cfg.JSONBinAPIKey,
			"X-Bin-Meta":   "false",
			"versioning":   "false",
		}
	}
	return jsonbin.NewClient(cfg.JSONBinBaseURL,
		jsonbin.WithHeaderProvider(headers),
		jsonbin.WithTimeout(cfg.RequestTimeout),
		jsonbin.WithRetry(cfg.RetryMaxAttempts),
		jsonbin.WithRetryDelay(cfg.RetryDelay),
	)
}

func binIDs(cfg *appcfg.AppConfig) jsonbin.BinIDs {
	return jsonbin.BinIDs{
		GameData: cfg.GameDataBinID,
		Progress: cfg.ProgressBinID,
		Winners:  cfg.WinnersBinID,
		Toggles:  cfg.TogglesBinID,
		Settings: cfg.SettingsBinID,
	}
}

func handleToggle(ctx context.Context, sess *session.Session, in *bufio.Scanner, args []string) {
	if len(args) < 1 {
		fmt.Println("usage: t <cell>")
		return
	}
	index, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Println("usage: t <cell>")
		return
	}
	req, err := sess.Toggle(ctx, index)
	if err != nil {
		fmt.Printf("toggle error: %v\n", err)
		return
	}
	if req == nil {
		renderBoard(sess)
		return
	}
	fmt.Printf("Completing: %s\n", req.Task)
	if req.Note != "" {
		fmt.Printf("Existing note: %s\n", req.Note)
	}
	note := prompt(in, "Add a note (enter to keep/skip, '!' to cancel): ")
	if note == "!" {
		if err := sess.Commit(ctx, index, false, ""); err != nil {
			fmt.Printf("cancel error: %v\n", err)
		}
		return
	}
	if note == "" {
		note = req.Note
	}
	if err := sess.Commit(ctx, index, true, note); err != nil {
		fmt.Printf("commit error: %v\n", err)
		return
	}
	renderBoard(sess)
}

func handleNote(ctx context.Context, sess *session.Session, args []string) {
	if len(args) < 1 {
		fmt.Println("usage: note <cell> [text]")
		return
	}
	index, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Println("usage: note <cell> [text]")
		return
	}
	if err := sess.SetNote(ctx, index, strings.Join(args[1:], " ")); err != nil {
		fmt.Printf("note error: %v\n", err)
	}
}

func renderBoard(sess *session.Session) {
	b := sess.Board()
	n := b.Dimension()
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			idx := row*n + col
			mark := " "
			if b.Selected(idx) {
				mark = "x"
			}
			fmt.Printf("[%s]%-3d", mark, idx)
		}
		fmt.Println()
	}
	for i := 0; i < b.TotalCells(); i++ {
		flag := "   "
		if b.Selected(i) {
			flag = " ✓ "
		}
		line := fmt.Sprintf("%3d%s%s", i, flag, b.Task(i))
		if note := b.Note(i); note != "" {
			line += " :: " + note
		}
		fmt.Println(line)
	}
	fmt.Printf("%d of %d squares completed, %d bingo(s)\n",
		b.CompletedCells(), b.TotalCells(), b.BingoCount())
}

func prompt(in *bufio.Scanner, label string) string {
	fmt.Print(label)
	if !in.Scan() {
		return ""
	}
	return strings.TrimSpace(in.Text())
}

func printHelp() {
	fmt.Println(strings.Join([]string{
		"board            redraw the board",
		"t <cell>         toggle a cell (selecting asks for a note)",
		"note <cell> [t]  set or clear a cell note",
		"sync             push progress and leaderboard to the cloud",
		"reset            deal a fresh board and clear remote entries",
		"top              show the leaderboard",
		"quit             leave",
	}, "\n"))
}
