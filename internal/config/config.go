package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/iamasit07/connect-four/internal/domain"
	"github.com/iamasit07/connect-four/internal/service/bot"
)

type Config struct {
	Port           string
	AllowedOrigins []string

	// Game
	Rows           int
	Columns        int
	Difficulty     bot.BotDifficulty
	SearchDepth    int // overrides the difficulty depth when > 0
	MaxSearchDepth int
	BotMoveDelay   time.Duration

	// Session housekeeping
	FinishedSessionTTL time.Duration
	ActiveSessionTTL   time.Duration
	CleanupInterval    time.Duration

	// Arena
	ArenaGames        int
	ArenaConcurrency  int
	ArenaDepthA       int
	ArenaDepthB       int
	ArenaOpeningPlies int
	ArenaSeed         int64
}

// GridPreset is a board size offered by the setup menu.
type GridPreset struct {
	Rows    int `json:"rows"`
	Columns int `json:"columns"`
}

// GridPresets are the sizes offered by the setup menu, in menu order.
var GridPresets = []GridPreset{
	{Rows: 6, Columns: 7},
	{Rows: 7, Columns: 8},
	{Rows: 8, Columns: 9},
}

var AppConfig *Config

// LoadEnvFiles loads .env from the working directory or its parent. A missing
// file is not an error.
func LoadEnvFiles() {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../.env"); err != nil {
			log.Println("[CONFIG] No .env file found")
		}
	}
}

func LoadConfig() *Config {
	allowedOrigins := []string{"http://localhost:5173"} // Local development
	allowedOrigins = append(allowedOrigins, GetEnvAsList("ALLOWED_ORIGINS")...)

	AppConfig = &Config{
		Port:           GetEnv("PORT", "8080"),
		AllowedOrigins: allowedOrigins,

		Rows:           GetEnvAsInt("BOARD_ROWS", domain.DefaultRows),
		Columns:        GetEnvAsInt("BOARD_COLUMNS", domain.DefaultColumns),
		Difficulty:     bot.ParseDifficulty(GetEnv("BOT_DIFFICULTY", string(bot.DifficultyMedium))),
		SearchDepth:    GetEnvAsInt("SEARCH_DEPTH", 0),
		MaxSearchDepth: GetEnvAsInt("MAX_SEARCH_DEPTH", 8),
		BotMoveDelay:   GetEnvAsDuration("BOT_MOVE_DELAY_MS", 200, time.Millisecond),

		FinishedSessionTTL: GetEnvAsDuration("SESSION_FINISHED_TTL_MINUTES", 60, time.Minute),
		ActiveSessionTTL:   GetEnvAsDuration("SESSION_ACTIVE_TTL_MINUTES", 24*60, time.Minute),
		CleanupInterval:    GetEnvAsDuration("CLEANUP_INTERVAL_MINUTES", 60, time.Minute),

		ArenaGames:        GetEnvAsInt("ARENA_GAMES", 20),
		ArenaConcurrency:  GetEnvAsInt("ARENA_CONCURRENCY", 4),
		ArenaDepthA:       GetEnvAsInt("ARENA_DEPTH_A", bot.DifficultyMedium.Depth()),
		ArenaDepthB:       GetEnvAsInt("ARENA_DEPTH_B", bot.DifficultyHard.Depth()),
		ArenaOpeningPlies: GetEnvAsInt("ARENA_OPENING_PLIES", 2),
		ArenaSeed:         int64(GetEnvAsInt("ARENA_SEED", 1)),
	}

	return AppConfig
}

// Depth is the search depth the computer opponent plays at.
func (c *Config) Depth() int {
	if c.SearchDepth > 0 {
		return c.SearchDepth
	}
	return c.Difficulty.Depth()
}

// Validate rejects configurations the engine cannot play with.
func (c *Config) Validate() error {
	if err := ValidateGrid(c.Rows, c.Columns); err != nil {
		return err
	}
	if c.SearchDepth < 0 {
		return fmt.Errorf("SEARCH_DEPTH must not be negative, got %d", c.SearchDepth)
	}
	if c.MaxSearchDepth < 1 {
		return fmt.Errorf("MAX_SEARCH_DEPTH must be positive, got %d", c.MaxSearchDepth)
	}
	if c.Depth() > c.MaxSearchDepth {
		return fmt.Errorf("search depth %d exceeds MAX_SEARCH_DEPTH %d", c.Depth(), c.MaxSearchDepth)
	}
	if c.ArenaDepthA < 1 || c.ArenaDepthB < 1 {
		return fmt.Errorf("arena depths must be positive, got %d and %d", c.ArenaDepthA, c.ArenaDepthB)
	}
	if c.ArenaConcurrency < 1 {
		return fmt.Errorf("ARENA_CONCURRENCY must be positive, got %d", c.ArenaConcurrency)
	}
	if c.ArenaGames < 0 || c.ArenaOpeningPlies < 0 {
		return fmt.Errorf("arena game count and opening plies must not be negative")
	}
	return nil
}

// ValidateGrid checks a board size against the win length.
func ValidateGrid(rows, cols int) error {
	if rows < domain.WinLength || cols < domain.WinLength {
		return fmt.Errorf("%w: %dx%d, need at least %d in both directions",
			domain.ErrBoardTooSmall, rows, cols, domain.WinLength)
	}
	return nil
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("[CONFIG] Invalid integer value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

// GetEnvAsDuration reads an integer count of unit.
func GetEnvAsDuration(key string, defaultValue int, unit time.Duration) time.Duration {
	return time.Duration(GetEnvAsInt(key, defaultValue)) * unit
}

// GetEnvAsList splits a comma separated value, dropping blanks.
func GetEnvAsList(key string) []string {
	var out []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
