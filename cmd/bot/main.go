package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/korjavin/smartpantry/pkg/config"
	"github.com/korjavin/smartpantry/pkg/logger"
	"github.com/korjavin/smartpantry/pkg/messages"
	"github.com/korjavin/smartpantry/pkg/pantry"
	"github.com/korjavin/smartpantry/pkg/recipes"
	"github.com/korjavin/smartpantry/pkg/recommend"
	"github.com/korjavin/smartpantry/pkg/state"
	"github.com/korjavin/smartpantry/pkg/telegram"
)

const recommendationLimit = 5

func main() {
	log := logger.Global
	log.Info("Starting Smart Pantry bot...")

	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Error("Failed to load configuration: %v", err)
		os.Exit(1)
	}
	if err := cfg.RequireBotToken(); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
	logger.Configure(os.Stdout, logger.ParseLevel(cfg.LogLevel))
	log = logger.Global

	store, closer, err := pantry.Open(cfg)
	if err != nil {
		log.Error("Failed to open pantry store: %v", err)
		os.Exit(1)
	}
	defer closer.Close()

	catalog, err := recipes.LoadFile(cfg.RecipesPath)
	if err != nil {
		log.Error("Failed to load recipes: %v", err)
		os.Exit(1)
	}

	pantryService := pantry.New(store)
	recommender := recommend.New(pantryService, catalog)
	stateManager := state.New()

	bot, err := telegram.New(cfg.BotToken)
	if err != nil {
		log.Error("Failed to initialize Telegram bot: %v", err)
		os.Exit(1)
	}

	ctx := context.Background()

	addProducts := func(message *tgbotapi.Message, text string) {
		chatID := message.Chat.ID
		items := pantry.ItemsFromText(text)
		if len(items) == 0 {
			bot.SendMessage(chatID, "I couldn't find any products in your message. Try something like: flour: 500 g, egg: 6")
			return
		}
		if _, err := pantryService.AddMany(ctx, telegram.SessionFor(message), items); err != nil {
			log.Error("Failed to add products: %v", err)
			bot.SendMessage(chatID, messages.Error("add products"))
			return
		}
		bot.SendMessage(chatID, messages.Added(items))
	}

	commandHandlers := map[string]telegram.CommandHandler{
		"start": func(message *tgbotapi.Message) {
			bot.SendMessage(message.Chat.ID, messages.Welcome())
		},
		"pantry": func(message *tgbotapi.Message) {
			chatID := message.Chat.ID
			views, err := pantryService.List(ctx, telegram.SessionFor(message))
			if err != nil {
				log.Error("Failed to list pantry: %v", err)
				bot.SendMessage(chatID, messages.Error("retrieve your pantry"))
				return
			}
			if len(views) == 0 {
				bot.SendMessage(chatID, messages.EmptyPantry())
				return
			}
			bot.SendMessage(chatID, messages.PantryContents(views))
		},
		"add": func(message *tgbotapi.Message) {
			args := strings.TrimSpace(message.CommandArguments())
			if args == "" {
				bot.SendMessage(message.Chat.ID, "Usage: /add flour: 500 g, egg: 6")
				return
			}
			addProducts(message, args)
		},
		"sync_pantry": func(message *tgbotapi.Message) {
			chatID := message.Chat.ID
			if err := pantryService.Reset(ctx, telegram.SessionFor(message)); err != nil {
				log.Error("Failed to reset pantry: %v", err)
				bot.SendMessage(chatID, messages.Error("reset your pantry"))
				return
			}
			stateManager.SetState(telegram.StateKey(message), state.StateAddingProducts)
			bot.SendMessage(chatID, "🧹 Your pantry is now empty. Send me your products (flour: 500 g, egg: 6) and say \"done\" when finished.")
		},
		"recipes": func(message *tgbotapi.Message) {
			chatID := message.Chat.ID
			report, err := recommender.Recommend(ctx, telegram.SessionFor(message))
			if err != nil {
				log.Error("Failed to match recipes: %v", err)
				bot.SendMessage(chatID, messages.Error("match recipes"))
				return
			}
			bot.SendMessage(chatID, messages.Recommendations(report, recommendationLimit))
		},
	}

	defaultHandler := func(message *tgbotapi.Message) {
		if message.Text == "" || message.IsCommand() {
			return
		}
		chatID := message.Chat.ID
		key := telegram.StateKey(message)
		if stateManager.GetState(key) != state.StateAddingProducts {
			return
		}
		if strings.EqualFold(strings.TrimSpace(message.Text), "done") {
			stateManager.ClearState(key)
			bot.SendMessage(chatID, "👍 Pantry saved. Use /recipes to see what you can cook.")
			return
		}
		stateManager.SetState(key, state.StateAddingProducts)
		addProducts(message, message.Text)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("Shutting down...")
		bot.Stop()
	}()

	log.Info("Bot is now running. Press CTRL-C to exit.")
	if err := bot.Start(commandHandlers, defaultHandler); err != nil {
		log.Error("Error running bot: %v", err)
		os.Exit(1)
	}
}
