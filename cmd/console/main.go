package main

import (
	"bufio"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/jwebster45206/life-engine/pkg/state"
)

type ConsoleConfig struct {
	APIBaseURL string
	Timeout    time.Duration
}

var sprites = []string{"cowok", "cewek"}

func main() {
	cfg := &ConsoleConfig{
		APIBaseURL: getEnv("API_BASE_URL", "http://localhost:8080"),
		Timeout:    30 * time.Second,
	}

	client := &http.Client{
		Timeout: cfg.Timeout,
	}

	if !testConnection(client, cfg.APIBaseURL) {
		fmt.Fprintf(os.Stderr, "Could not connect to API. Please ensure the API is running.\nTry: docker-compose up -d\n")
		os.Exit(1)
	}

	w, err := getWorld(client, cfg.APIBaseURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load world: %v\n", err)
		os.Exit(1)
	}

	var gs *state.GameState
	if len(os.Args) > 1 {
		// Resume an existing session by ID.
		id, err := uuid.Parse(os.Args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid session ID: %s\n", os.Args[1])
			os.Exit(1)
		}
		sr, err := getSession(client, cfg.APIBaseURL, id)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to resume session: %v\n", err)
			os.Exit(1)
		}
		gs = sr.State
	} else {
		gs = promptNewSession(client, cfg.APIBaseURL)
	}

	p := tea.NewProgram(NewConsoleUI(client, cfg.APIBaseURL, gs, w),
		tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}

func promptNewSession(client *http.Client, baseURL string) *state.GameState {
	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Siapa namamu? ")
	name, err := reader.ReadString('\n')
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read input\n")
		os.Exit(1)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		fmt.Fprintf(os.Stderr, "Name is required\n")
		os.Exit(1)
	}

	fmt.Println("\nPilih karakter:")
	for i, s := range sprites {
		fmt.Printf("  %d - %s\n", i+1, s)
	}
	fmt.Print("\nSelect a character by number: ")

	var choice int
	if _, err := fmt.Scanf("%d", &choice); err != nil || choice < 1 || choice > len(sprites) {
		fmt.Fprintf(os.Stderr, "Invalid selection\n")
		os.Exit(1)
	}

	gs, err := createSession(client, baseURL, name, sprites[choice-1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create session: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\nSession ID (simpan untuk melanjutkan): %s\n", gs.ID)
	time.Sleep(time.Second)
	return gs
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
