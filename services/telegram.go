package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const telegramAPIBase = "https://api.telegram.org"

// TelegramClient is a thin wrapper over the Bot API used for admin
// notifications and the long-polling bot.
type TelegramClient struct {
	token  string
	client *http.Client
}

func NewTelegramClient(token string) *TelegramClient {
	return &TelegramClient{
		token: token,
		// Long polls hold the connection open for up to a minute.
		client: &http.Client{Timeout: 70 * time.Second},
	}
}

func (t *TelegramClient) methodURL(method string) string {
	return fmt.Sprintf("%s/bot%s/%s", telegramAPIBase, t.token, method)
}

// TelegramChat identifies where a message came from.
type TelegramChat struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

// TelegramMessage is the part of an incoming message the bot reads.
type TelegramMessage struct {
	MessageID int64        `json:"message_id"`
	Text      string       `json:"text"`
	Chat      TelegramChat `json:"chat"`
}

// TelegramUpdate is one long-poll update.
type TelegramUpdate struct {
	UpdateID int64            `json:"update_id"`
	Message  *TelegramMessage `json:"message"`
}

// SendMessage sends an HTML-formatted message to a chat.
func (t *TelegramClient) SendMessage(ctx context.Context, chatID, text string) error {
	payload := map[string]interface{}{
		"chat_id":    chatID,
		"text":       text,
		"parse_mode": "HTML",
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", t.methodURL("sendMessage"), bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram sendMessage returned %s: %s", resp.Status, string(body))
	}

	var parsed struct {
		OK          bool   `json:"ok"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return fmt.Errorf("failed to decode telegram response: %w", err)
	}
	if !parsed.OK {
		return fmt.Errorf("telegram sendMessage failed: %s", parsed.Description)
	}
	return nil
}

// GetUpdates long-polls for new updates past the given offset.
func (t *TelegramClient) GetUpdates(ctx context.Context, offset int64, timeoutSeconds int) ([]TelegramUpdate, error) {
	endpoint := fmt.Sprintf("%s?offset=%d&timeout=%d", t.methodURL("getUpdates"), offset, timeoutSeconds)

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("telegram getUpdates returned %s: %s", resp.Status, string(body))
	}

	var parsed struct {
		OK     bool             `json:"ok"`
		Result []TelegramUpdate `json:"result"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode telegram updates: %w", err)
	}
	if !parsed.OK {
		return nil, fmt.Errorf("telegram getUpdates failed: %s", string(body))
	}
	return parsed.Result, nil
}

// NotifyMovieAdded tells the admin chat that the pipeline published a movie.
func (t *TelegramClient) NotifyMovieAdded(ctx context.Context, chatID, siteURL, title, movieID string) error {
	link := strings.TrimRight(siteURL, "/") + "/movie/" + movieID

	message := fmt.Sprintf(
		"✅ <b>Movie Auto-Added!</b>\n\n"+
			"🎬 <b>Title:</b> %s\n"+
			"🆔 <b>ID:</b> %s\n"+
			"⏱️ <b>Time:</b> %s\n"+
			"🔗 <b>View:</b> %s",
		title, movieID, time.Now().Format("15:04:05"), link,
	)
	return t.SendMessage(ctx, chatID, message)
}
