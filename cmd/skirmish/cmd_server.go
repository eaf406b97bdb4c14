package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/skirmish/app/controllers"
	"github.com/shashiranjanraj/skirmish/app/repositories"
	"github.com/shashiranjanraj/skirmish/app/routes"
	"github.com/shashiranjanraj/skirmish/app/services"
	"github.com/shashiranjanraj/skirmish/config"
	"github.com/shashiranjanraj/skirmish/pkg/auth"
	"github.com/shashiranjanraj/skirmish/pkg/cache"
	"github.com/shashiranjanraj/skirmish/pkg/database"
	"github.com/shashiranjanraj/skirmish/pkg/logger"
)

// skirmish serve — start the HTTP server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

func serve() error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mongo, err := database.Connect(ctx)
	if err != nil {
		return err
	}
	defer mongo.Close(context.Background()) //nolint:errcheck

	if config.LogMongo() {
		sink, err := logger.NewMongoHandler(config.MongoURI(), config.MongoDB(), "logs")
		if err != nil {
			logger.Warn("mongo log sink disabled", "err", err)
		} else {
			logger.AttachHandler(sink)
			defer sink.Close()
		}
	}

	// Redis is an optional read cache; the API works without it.
	if err := cache.Connect(); err != nil {
		logger.Warn("redis unavailable, catalog cache disabled", "err", err)
	}

	r := routes.Register(buildDeps(mongo))

	srv := &http.Server{
		Addr:         ":" + config.AppPort(),
		Handler:      r.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", config.AppEnv())
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// buildDeps wires repositories, services, and controllers.
func buildDeps(mongo *database.Mongo) routes.Deps {
	users := repositories.NewUserRepository(mongo.DB)
	combatants := repositories.NewCombatantRepository(mongo.DB)
	encounters := repositories.NewEncounterRepository(mongo.DB)
	items := repositories.NewItemRepository(mongo.DB)
	orders := repositories.NewOrderRepository(mongo.DB)

	tokens := auth.NewTokens(config.JWTSecret(), config.TokenTTL())

	authSvc := services.NewAuthService(users, tokens, config.BcryptCost())
	combatantSvc := services.NewCombatantService(combatants, encounters)
	encounterSvc := services.NewEncounterService(encounters, combatants, users)
	itemSvc := services.NewItemService(items)
	orderSvc := services.NewOrderService(orders, items, users)

	return routes.Deps{
		Tokens:     tokens,
		Users:      users,
		Auth:       controllers.NewAuthController(authSvc),
		Combatants: controllers.NewCombatantController(combatantSvc),
		Encounters: controllers.NewEncounterController(encounterSvc),
		Items:      controllers.NewItemController(itemSvc),
		Orders:     controllers.NewOrderController(orderSvc),
	}
}

// skirmish route:list — print all registered named routes.
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all registered named routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		r := routes.Register(routes.Deps{
			Tokens:     auth.NewTokens(config.JWTSecret(), config.TokenTTL()),
			Auth:       &controllers.AuthController{},
			Combatants: &controllers.CombatantController{},
			Encounters: &controllers.EncounterController{},
			Items:      &controllers.ItemController{},
			Orders:     &controllers.OrderController{},
		})

		names := r.Names()
		if len(names) == 0 {
			fmt.Println("No named routes registered.")
			return nil
		}
		sort.Strings(names)

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "NAME\tPATH")
		fmt.Fprintln(w, "----\t----")
		for _, name := range names {
			path, _ := r.Path(name)
			fmt.Fprintf(w, "%s\t%s\n", name, path)
		}
		return w.Flush()
	},
}
