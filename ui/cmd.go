package ui

import (
	"cellchess/src"
	"cellchess/src/logx"
	"cellchess/src/storage"
	clic "cellchess/ui/cli"
	"cellchess/ui/conf"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
)

func GetLogger(w io.Writer, c *cli.Command, cfg *conf.Config) *logx.Logx {
	level := cfg.LogLevel
	if c.IsSet("level") {
		level = c.String("level")
	}
	l := logx.NewLogx(
		logx.GetLoggerLevelByString(level),
		c.Bool("dev"),
		c.Bool("console"),
	)
	l.InitLogger(w)
	return l
}

// LoadConfig reads the config file and lets flags override it.
func LoadConfig(c *cli.Command) (*conf.Config, error) {
	cfg, err := conf.Load(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("error load config: %w", err)
	}
	if c.IsSet("castle-rook") {
		cfg.CastleRook = c.Bool("castle-rook")
	}
	if c.IsSet("en-passant") {
		cfg.EnPassant = c.Bool("en-passant")
	}
	if c.IsSet("promotion") {
		cfg.Promotion = c.Bool("promotion")
	}
	if c.IsSet("ascii") {
		cfg.Glyphs = "unicode"
		if c.Bool("ascii") {
			cfg.Glyphs = "ascii"
		}
	}
	if c.IsSet("db") {
		cfg.DBPath = c.String("db")
	}
	return cfg, nil
}

func RunPlay(c *cli.Command) error {
	cfg, err := LoadConfig(c)
	if err != nil {
		return err
	}
	file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("error open logfile: %v", err)
	}
	defer file.Close()
	logger := GetLogger(file, c, cfg)
	defer logger.Sync() //nolint:errcheck

	logger.Infof("rules: %+v", cfg.Rules())
	game := src.NewGame(logger, cfg.Rules())

	color := clic.IsTerminal(os.Stdout)
	if color {
		clic.EnableANSI()
	}
	cl := clic.NewCLI(game, os.Stdin, os.Stdout, clic.Style{Color: color, ASCII: cfg.ASCII(), Attacks: cfg.Attacks}, logger)

	if cfg.DBPath != "" {
		store, err := storage.Open(cfg.DBPath)
		if err != nil {
			logger.Errorf("error open storage: %v", err)
			return err
		}
		defer store.Close()
		cl.SetRecorder(store)
	}
	return cl.Run()
}

func RunStats(c *cli.Command, w io.Writer) error {
	cfg, err := LoadConfig(c)
	if err != nil {
		return err
	}
	if cfg.DBPath == "" {
		return fmt.Errorf("no database: set --db or db_path in %s", c.String("config"))
	}
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()
	stats, err := store.LoadStats()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Games:       %d\n", stats.GamesPlayed)
	fmt.Fprintf(w, "White wins:  %d\n", stats.WhiteWins)
	fmt.Fprintf(w, "Black wins:  %d\n", stats.BlackWins)
	fmt.Fprintf(w, "Stalemates:  %d\n", stats.Stalemates)
	fmt.Fprintf(w, "Longest:     %d plies\n", stats.LongestGame)
	fmt.Fprintf(w, "White share: %.1f%%\n", stats.WhiteWinRate())
	return nil
}

func Command() *cli.Command {
	cf := &cli.StringFlag{
		Name:  "config",
		Usage: "path to JSON config",
		Value: conf.DefaultFile,
	}
	dbf := &cli.StringFlag{
		Name:  "db",
		Usage: "directory of the finished games database",
	}
	df := &cli.BoolFlag{
		Name:    "dev",
		Aliases: []string{"d"},
		Usage:   "dev encode log",
	}
	lf := &cli.StringFlag{
		Name:        "level",
		Aliases:     []string{"l"},
		Usage:       "level log",
		DefaultText: "info",
	}
	lcf := &cli.BoolFlag{
		Name:    "console",
		Aliases: []string{"c"},
		Usage:   "console log",
	}
	crf := &cli.BoolFlag{
		Name:  "castle-rook",
		Usage: "move the rook when castling",
	}
	epf := &cli.BoolFlag{
		Name:  "en-passant",
		Usage: "allow en passant captures",
	}
	prf := &cli.BoolFlag{
		Name:  "promotion",
		Usage: "promote pawns on the last rank to queens",
	}
	af := &cli.BoolFlag{
		Name:  "ascii",
		Usage: "draw pieces as letters",
	}
	playff := []cli.Flag{cf, dbf, df, lf, lcf, crf, epf, prf, af}
	statsff := []cli.Flag{cf, dbf}

	return &cli.Command{
		Name:           "cellchess",
		Usage:          "two-player chess in the terminal",
		DefaultCommand: "play",
		Commands: []*cli.Command{
			{
				Name:  "play",
				Usage: "play a hot-seat game",
				Flags: playff,
				Action: func(ctx context.Context, c *cli.Command) error {
					return RunPlay(c)
				},
			},
			{
				Name:  "stats",
				Usage: "show recorded results",
				Flags: statsff,
				Action: func(ctx context.Context, c *cli.Command) error {
					return RunStats(c, os.Stdout)
				},
			},
		},
	}
}

func RunCellChess() error {
	return Command().Run(context.Background(), os.Args)
}
