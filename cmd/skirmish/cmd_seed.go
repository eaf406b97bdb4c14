package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/skirmish/app/models"
	"github.com/shashiranjanraj/skirmish/app/repositories"
	"github.com/shashiranjanraj/skirmish/config"
	"github.com/shashiranjanraj/skirmish/pkg/auth"
	"github.com/shashiranjanraj/skirmish/pkg/database"
	"github.com/shashiranjanraj/skirmish/pkg/logger"
)

// skirmish seed — load demo users and catalog entries into the database.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with demo users, combatants, and items",
	RunE: func(cmd *cobra.Command, args []string) error {
		return seed()
	},
}

func seed() error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	mongo, err := database.Connect(ctx)
	if err != nil {
		return err
	}
	defer mongo.Close(context.Background()) //nolint:errcheck

	users := repositories.NewUserRepository(mongo.DB)
	combatants := repositories.NewCombatantRepository(mongo.DB)
	items := repositories.NewItemRepository(mongo.DB)

	seedUsers := []struct {
		email    string
		password string
		roles    []string
	}{
		{"admin@example.com", "changeme", []string{"user", "admin"}},
		{"player@example.com", "changeme", []string{"user"}},
	}

	for _, su := range seedUsers {
		existing, err := users.FindByEmail(ctx, su.email)
		if err != nil {
			return err
		}
		if existing != nil {
			logger.Info("seed: user exists, skipping", "email", su.email)
			continue
		}

		hash, err := auth.HashPassword(su.password, config.BcryptCost())
		if err != nil {
			return err
		}
		u := &models.User{Email: su.email, Password: hash, Roles: su.roles}
		if err := users.Insert(ctx, u); err != nil {
			return err
		}
		logger.Info("seed: user created", "email", su.email)
	}

	seedCombatants := []models.Combatant{
		{Name: "Goblin", Initiative: 12, Hitpoints: 7},
		{Name: "Orc", Initiative: 10, Hitpoints: 15},
		{Name: "Ogre", Initiative: 8, Hitpoints: 59},
		{Name: "Young Dragon", Initiative: 14, Hitpoints: 178},
	}
	for i := range seedCombatants {
		if err := combatants.Insert(ctx, &seedCombatants[i]); err != nil {
			return err
		}
	}
	logger.Info("seed: combatants created", "count", len(seedCombatants))

	seedItems := []models.Item{
		{Title: "Healing Potion", Price: 50},
		{Title: "Longsword", Price: 15},
		{Title: "Plate Armor", Price: 1500},
	}
	for i := range seedItems {
		if err := items.Insert(ctx, &seedItems[i]); err != nil {
			return err
		}
	}
	logger.Info("seed: items created", "count", len(seedItems))

	fmt.Println("Seeding complete.")
	return nil
}
