package conf

import (
	"cellchess/src/logic/rules"
	"cellchess/src/logx"
	"encoding/json"
	"fmt"
	"os"
)

const DefaultFile = "cellchess.json"

type Config struct {
	CastleRook bool   `json:"castle_rook"`  // move the rook too when castling
	EnPassant  bool   `json:"en_passant"`   //
	Promotion  bool   `json:"promotion"`    // pawns on the last rank become queens
	Glyphs     string `json:"glyphs"`       // unicode/ascii
	Attacks    bool   `json:"show_attacks"` // attack counts under every board
	DBPath     string `json:"db_path"`      // finished games, empty to disable
	LogFile    string `json:"log_file"`     //
	LogLevel   string `json:"log_level"`    // debug/info/warn/error
}

func Default() Config {
	return Config{
		CastleRook: false,
		EnPassant:  false,
		Promotion:  false,
		Glyphs:     "unicode",
		Attacks:    false,
		DBPath:     "",
		LogFile:    "cellchess.log",
		LogLevel:   "info",
	}
}

// Load reads file, or returns defaults when it does not exist.
func Load(file string) (*Config, error) {
	_, err := os.Stat(file)
	if os.IsNotExist(err) {
		def := Default()
		return &def, nil
	} else if err != nil {
		return nil, err
	}

	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c := Default()
	dec := json.NewDecoder(f)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("error decode config: %w", err)
	}
	correctableConfig(&c)

	return &c, nil
}

func (c *Config) Save(file string) error {
	jsonData, err := json.MarshalIndent(c, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(file, jsonData, 0644)
}

func (c *Config) Rules() rules.Options {
	return rules.Options{CastleRook: c.CastleRook, EnPassant: c.EnPassant, Promotion: c.Promotion}
}

func (c *Config) ASCII() bool {
	return c.Glyphs == "ascii"
}

func correctableConfig(c *Config) {
	def := Default()
	if c.Glyphs != "unicode" && c.Glyphs != "ascii" {
		c.Glyphs = def.Glyphs
	}
	if c.LogFile == "" {
		c.LogFile = def.LogFile
	}
	if _, ok := logx.LevelByString(c.LogLevel); !ok {
		c.LogLevel = def.LogLevel
	}
}
