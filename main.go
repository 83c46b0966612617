// Self-play demo: an MTD(f) player and an MCTS player alternate games of
// Quarto, swapping sides after every game.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/giovanni-poggio/quarto/internal/config"
	"github.com/giovanni-poggio/quarto/internal/game"
	"github.com/giovanni-poggio/quarto/internal/mcts"
	"github.com/giovanni-poggio/quarto/internal/mtdf"
	"github.com/giovanni-poggio/quarto/internal/storage"
	"github.com/giovanni-poggio/quarto/internal/symmetry"
)

type player interface {
	Name() string
	ChooseMove(state game.State) (game.Move, error)
}

var (
	boardColor = color.New(color.FgCyan)
	movedColor = color.New(color.FgYellow, color.Bold)
)

func main() {
	configPath := flag.String("config", "", "TOML configuration file")
	games := flag.Int("games", 0, "number of games (overrides config)")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("configuration")
	}
	if *games > 0 {
		cfg.Games = *games
	}

	store, err := storage.NewStorage()
	if err != nil {
		log.Warn().Err(err).Msg("storage unavailable, running without cache")
		store = nil
	} else {
		defer store.Close()
	}

	var rules game.Rules = game.Basic{}
	if cfg.Symmetry {
		rules = loadTables(store)
	}

	mtdfPlayer := mtdf.NewPlayer(rules, mtdf.Options{
		MaxTime:  cfg.MTDFMaxTime(),
		MaxDepth: cfg.MTDF.MaxDepth,
	})
	mctsPlayer := mcts.NewPlayer(rules, mcts.Options{
		MaxTime:     cfg.MCTSMaxTime(),
		ExpandK:     cfg.MCTS.ExpandK,
		NSims:       cfg.MCTS.NSims,
		Exploration: cfg.MCTS.Exploration,
		Workers:     cfg.MCTS.Workers,
		Seed:        cfg.MCTS.Seed,
	})

	players := map[game.Player]player{
		game.Player1: mtdfPlayer,
		game.Player2: mctsPlayer,
	}
	cumPayoffs := map[string]float64{}
	wins := map[string]int{}

	for n := 0; n < cfg.Games; n++ {
		log.Info().Int("game", n).
			Str("player1", players[game.Player1].Name()).
			Str("player2", players[game.Player2].Name()).
			Msg("starting")

		state := game.New()
		printState(state)
		for !state.IsOver() {
			plying := state.Plying()
			move, err := players[plying].ChooseMove(state)
			if err != nil {
				log.Fatal().Err(err).Msg("player failed")
			}
			state = rules.Play(state, move)
			printState(state)
		}

		payoffs := state.Payoffs()
		winnerName := ""
		if winner, ok := state.Winner(); ok {
			winnerName = players[winner].Name()
			wins[winnerName]++
		}
		for p, pl := range players {
			cumPayoffs[pl.Name()] += payoffs[p]
		}
		log.Info().
			Str("winner", winnerName).
			Interface("cum_payoffs", cumPayoffs).
			Interface("wins", wins).
			Msg("game over")

		if store != nil {
			if err := store.RecordGame(winnerName); err != nil {
				log.Warn().Err(err).Msg("recording game")
			}
		}

		// Swap sides for the next game.
		players[game.Player1], players[game.Player2] = players[game.Player2], players[game.Player1]
	}

	log.Info().Interface("cum_payoffs", cumPayoffs).Interface("wins", wins).Msg("done")
}

// loadTables loads the symmetry tables from the cache, building and caching
// them on a miss.
func loadTables(store *storage.Storage) *symmetry.Tables {
	if store != nil {
		boards, pieces, ok, err := store.LoadDAGs()
		if err != nil {
			log.Warn().Err(err).Msg("reading DAG cache")
		} else if ok {
			tables, err := symmetry.FromBlobs(boards, pieces)
			if err == nil {
				log.Info().
					Int("board_nodes", tables.BoardNodes()).
					Int("piece_nodes", tables.PieceNodes()).
					Msg("symmetry tables loaded from cache")
				return tables
			}
			log.Warn().Err(err).Msg("decoding DAG cache, rebuilding")
		}
	}

	tables := symmetry.Build()
	log.Info().
		Int("board_nodes", tables.BoardNodes()).
		Int("piece_nodes", tables.PieceNodes()).
		Msg("symmetry tables built")

	if store != nil {
		if err := saveTables(store, tables); err != nil {
			log.Warn().Err(err).Msg("caching DAGs")
		}
	}
	return tables
}

func saveTables(store *storage.Storage, tables *symmetry.Tables) error {
	boards, err := tables.EncodeBoards()
	if err != nil {
		return err
	}
	pieces, err := tables.EncodePieces()
	if err != nil {
		return err
	}
	if err := store.SaveBoardDAG(boards); err != nil {
		return err
	}
	return store.SavePieceDAG(pieces)
}

func printState(state game.State) {
	last, hasLast := state.LastPlaced()
	for i := 0; i < game.Side; i++ {
		for j := 0; j < game.Side; j++ {
			sq := game.NewSquare(i, j)
			cell := state.PieceAt(sq).String()
			if hasLast && sq == last {
				movedColor.Print(cell)
			} else {
				boardColor.Print(cell)
			}
			if j < game.Side-1 {
				fmt.Print(" ")
			}
		}
		fmt.Println()
	}
	fmt.Printf("ply=%2d\tphase=%s\tpiece=%s\n\n", state.Ply(), state.Phase(), state.Selected())
}
