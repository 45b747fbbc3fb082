package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/spellbook/internal/config"
	"github.com/KirkDiggler/spellbook/internal/repositories/characters"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer client.Close()

	if _, pingErr := client.Ping(ctx).Result(); pingErr != nil {
		log.Fatalf("Failed to connect to Redis: %v", pingErr)
	}

	all, err := characters.NewRedis(client).List(ctx)
	if err != nil {
		log.Fatalf("Failed to list characters: %v", err)
	}

	fmt.Printf("Found %d characters:\n", len(all))
	for _, state := range all {
		stats := make([]string, 0, len(state.Stats.Stats))
		for _, s := range state.Stats.Stats {
			stats = append(stats, fmt.Sprintf("%s %d/%d", s.Type, s.Current, s.Max))
		}
		fmt.Printf("  %s: %s (%s)\n", state.ID, state.Name, state.Side)
		fmt.Printf("    stats:  %s\n", strings.Join(stats, ", "))
		fmt.Printf("    spells: %s\n", strings.Join(state.Spells.Spells, ", "))
	}
}
