// subrun is Submarine Adventure, an endless runner for the terminal.
//
// Usage:
//
//	subrun list               - List game variants
//	subrun play [variant]     - Play a variant (default: submarine)
//	subrun menu               - Pick variants and browse scores interactively
//	subrun scores [variant]   - Show the high-score table
//	subrun serve              - Start SSH server for remote play
//	subrun config             - Print the default tuning YAML
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.subrun/scores.db)
//	--log-level <level>  - debug, info, warn or error (default: warn)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import variants to register them
	_ "github.com/vovakirdan/sub-arcade/internal/games/submarine"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagLogLevel   string
	flagConfig     string
	flagDifficulty string
	flagSprites    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "subrun",
	Short: "Submarine Adventure - dodge the sea floor in your terminal",
	Long: `Submarine Adventure is an endless runner: your submarine hops over
kelp, rocks and mines, collects pearls and races for the high-score table.

Available commands:
  list     - Show game variants
  play     - Play a variant directly
  menu     - Interactive picker with the high-score screen
  scores   - Print high scores and run statistics
  serve    - Start SSH server for remote play
  config   - Print the default tuning file

Examples:
  subrun play
  subrun play submarine_classic --difficulty hard
  subrun menu
  subrun scores --stats
  subrun serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.subrun/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom tuning YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagSprites, "sprites", "", "Directory with sprite overrides (<name>.txt)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}
