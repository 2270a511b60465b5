// Package main provides the CourseForge CLI application entry point.
// CourseForge is a chat-driven authoring tool that orchestrates generative
// agents to design, adapt, and grade structured course curricula.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"courseforge/internal/logger"
	"courseforge/internal/shell"
)

var (
	logLevel  string
	logFile   string
	testMode  bool
	storePath string
	version   = "0.1.0" // This could be set at build time
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "courseforge",
	Short: "CourseForge - agentic curriculum authoring",
	Long: `CourseForge is a chat-driven authoring tool. Four generative agents share one
evolving course document: the Curriculum Architect designs it, the Assessment
Designer grades it, the Adaptive Learning Specialist reshapes it, and the
Coach Assistant answers questions about teaching it.`,
	Run: runChat, // Default behavior is the interactive chat
}

// chatCmd represents the chat command (explicit version of default behavior)
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start the interactive authoring chat",
	Run:   runChat,
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("CourseForge v%s\n", version)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Set log level (debug|info|warn|error) [default: info]")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to file instead of stderr")
	rootCmd.PersistentFlags().BoolVar(&testMode, "test-mode", false, "Run in deterministic test mode")
	rootCmd.PersistentFlags().StringVar(&storePath, "store", "", "Path to the sqlite store [default: ~/.courseforge/courseforge.db]")

	for _, flag := range []string{"log-level", "log-file", "test-mode", "store"} {
		if err := viper.BindPFlag(flag, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			fmt.Fprintf(os.Stderr, "Error binding %s flag: %v\n", flag, err)
			os.Exit(1)
		}
	}

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(versionCmd)

	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// .env is optional; environment variables win over file values
	_ = godotenv.Load()

	if err := logger.Configure(logLevel, logFile, testMode); err != nil {
		fmt.Fprintf(os.Stderr, "Error configuring logger: %v\n", err)
		os.Exit(1)
	}
}

// defaultStorePath returns the sqlite path under the user's home directory.
func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "courseforge.db"
	}
	return filepath.Join(home, ".courseforge", "courseforge.db")
}

func runChat(_ *cobra.Command, _ []string) {
	logger.Info("Starting CourseForge", "version", version)

	path := storePath
	if path == "" {
		path = defaultStorePath()
	}

	svc, err := shell.InitializeServices(testMode, path)
	if err != nil {
		logger.Fatal("Failed to initialize services", "error", err)
	}
	defer func() { _ = svc.Close() }()

	if err := shell.NewREPL(svc).Run(); err != nil {
		logger.Fatal("Chat loop failed", "error", err)
	}
}
