package bot

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"movie-magic-club/config"
	"movie-magic-club/services"
)

const startReply = "👋 Hi!\n\n" +
	"Movies Magic Club bot is online.\n" +
	"Use the website / web app to browse movies & series. 🎬"

const pollTimeoutSeconds = 50

// Run long-polls Telegram until the context is cancelled. The bot only
// answers /start in private chats; everything else happens on the website.
// Incomplete credentials log a warning and leave the bot stopped.
func Run(ctx context.Context, creds config.Credentials) {
	if !creds.Valid() {
		slog.Warn("Telegram bot not started, credentials are incomplete")
		return
	}

	client := services.NewTelegramClient(creds.BotToken)
	slog.Info("Telegram bot started")

	var offset int64
	for {
		select {
		case <-ctx.Done():
			slog.Info("Telegram bot stopped")
			return
		default:
		}

		updates, err := client.GetUpdates(ctx, offset, pollTimeoutSeconds)
		if err != nil {
			if ctx.Err() != nil {
				slog.Info("Telegram bot stopped")
				return
			}

			slog.Error("Failed to fetch bot updates", "error", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(5 * time.Second):
			}
			continue
		}

		for _, update := range updates {
			if update.UpdateID >= offset {
				offset = update.UpdateID + 1
			}
			handleUpdate(ctx, client, update)
		}
	}
}

func handleUpdate(ctx context.Context, client *services.TelegramClient, update services.TelegramUpdate) {
	msg := update.Message
	if msg == nil || msg.Chat.Type != "private" {
		return
	}
	if !strings.HasPrefix(msg.Text, "/start") {
		return
	}

	chatID := strconv.FormatInt(msg.Chat.ID, 10)
	if err := client.SendMessage(ctx, chatID, startReply); err != nil {
		slog.Error("Failed to answer /start", "chatID", chatID, "error", err)
	}
}
