package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/spellbook/internal/config"
	"github.com/KirkDiggler/spellbook/internal/dice"
	"github.com/KirkDiggler/spellbook/internal/domain/character"
	"github.com/KirkDiggler/spellbook/internal/events"
	"github.com/KirkDiggler/spellbook/internal/repositories/characters"
	"github.com/KirkDiggler/spellbook/internal/services"
	"github.com/KirkDiggler/spellbook/internal/services/encounter"
)

const maxTurns = 200

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	heroID := flag.String("hero", "", "ID of a saved hero to continue with")
	heroName := flag.String("name", "Hero", "Name for a new hero")
	debug := flag.Bool("debug", false, "Fight with a hero that knows every spell")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	bus := events.NewBus()
	bus.Subscribe(events.EventTypeCast, &events.ListenerFunc{
		Name: "console",
		Fn: func(e events.Event) error {
			cast := e.(*events.CastEvent)
			fmt.Printf("  %s\n", cast.Text)
			return nil
		},
	})
	bus.Subscribe(events.EventTypeEffect, &events.ListenerFunc{
		Name: "console",
		Fn: func(e events.Event) error {
			change := e.(*events.EffectEvent).Change
			fmt.Printf("  [%s %s on %s]\n", change.Name, change.Event, change.OwnerID)
			return nil
		},
	})

	source := dice.NewRandomSource()
	if cfg.Engine.Seed != 0 {
		source = dice.NewSeededSource(cfg.Engine.Seed)
	}

	repo, closeRepo := connectRepository(ctx, &cfg.Redis)
	defer closeRepo()

	provider := services.NewProvider(&services.ProviderConfig{
		CharacterRepository: repo,
		Source:              source,
		Bus:                 bus,
		TurnDuration:        cfg.Engine.TurnDuration,
		StrictCasts:         cfg.Engine.StrictCasts,
	})
	svc := provider.EncounterService
	roster := provider.Roster

	var hero *character.Character
	switch {
	case *heroID != "":
		state, err := repo.Get(ctx, *heroID)
		if err != nil {
			log.Fatalf("Failed to load hero %s: %v", *heroID, err)
		}
		hero, err = character.FromState(state, provider.Engine, provider.Catalog)
		if err != nil {
			log.Fatalf("Failed to restore hero %s: %v", *heroID, err)
		}
	case *debug:
		hero = roster.Debug(*heroName)
	default:
		hero = roster.Hero(*heroName)
	}

	battle, err := svc.StartBattle(ctx, &encounter.StartBattleInput{
		Party:   []*character.Character{hero},
		Enemies: []*character.Character{roster.Villager(), roster.Knight(), roster.Healer()},
	})
	if err != nil {
		log.Fatalf("Failed to start battle: %v", err)
	}

	autopilot := encounter.NewAutopilot(svc, source)
	fmt.Printf("%s enters the ruins.\n", hero)
	for !battle.IsOver() && battle.TurnCount() < maxTurns {
		fmt.Printf("Turn %d: %s acts\n", battle.TurnCount()+1, battle.Current().Name)
		if _, err := autopilot.PlayTurn(ctx, battle.ID); err != nil {
			log.Fatalf("Failed to resolve turn: %v", err)
		}
	}

	fmt.Println()
	for _, entry := range battle.Log() {
		fmt.Println(entry)
	}
	fmt.Printf("\nOutcome: %s after %d turns (%s simulated)\n", battle.Status(), battle.TurnCount(), time.Duration(battle.TurnCount())*cfg.Engine.TurnDuration)
	if battle.ExperienceGiven() > 0 {
		fmt.Printf("The party earned %d experience.\n", battle.ExperienceGiven())
	}

	if err := svc.EndBattle(ctx, battle.ID); err != nil {
		log.Printf("Failed to save party: %v", err)
		return
	}
	fmt.Printf("Saved %s as %s\n", hero.Name, hero.ID)
}

// connectRepository uses Redis when it answers and memory otherwise
func connectRepository(ctx context.Context, cfg *config.RedisConfig) (characters.Repository, func()) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Printf("Failed to connect to Redis at %s: %v", cfg.Addr, err)
		log.Println("Falling back to in-memory repository")
		_ = client.Close()
		return characters.NewInMemoryRepository(), func() {}
	}

	log.Printf("Using Redis at %s for persistence", cfg.Addr)
	return characters.NewRedis(client), func() {
		if err := client.Close(); err != nil {
			log.Printf("Error closing Redis connection: %v", err)
		}
	}
}
