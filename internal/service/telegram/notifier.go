// Package telegram delivers fire-and-forget alerts to a Telegram chat,
// deduplicated by content hash so repeated cycles do not spam.
package telegram

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"TradeRadar/internal/domain/repository"
	httpclient "TradeRadar/pkg/http"
	"TradeRadar/pkg/logger"
)

const sendTimeout = 10 * time.Second

type Notifier struct {
	token   string
	chatID  string
	apiBase string
	http    *httpclient.Client
	log     *logger.Logger

	mu       sync.Mutex
	lastHash string
}

func New(token, chatID string, log *logger.Logger) repository.Notifier {
	return &Notifier{
		token:   token,
		chatID:  chatID,
		apiBase: "https://api.telegram.org",
		http:    httpclient.NewClient(httpclient.WithTimeout(sendTimeout)),
		log:     log,
	}
}

// Notify sends text to the configured chat. A message identical to the
// previous one is silently dropped. Delivery errors are logged, not
// returned as failures that callers would retry.
func (n *Notifier) Notify(ctx context.Context, text string) error {
	sum := sha1.Sum([]byte(text))
	h := hex.EncodeToString(sum[:])

	n.mu.Lock()
	if h == n.lastHash {
		n.mu.Unlock()
		return nil
	}
	n.lastHash = h
	n.mu.Unlock()

	url := fmt.Sprintf("%s/bot%s/sendMessage", n.apiBase, n.token)
	err := n.http.SendAndParse(ctx, &httpclient.RequestOptions{
		Method: httpclient.MethodPost,
		URL:    url,
		Body: map[string]string{
			"chat_id": n.chatID,
			"text":    text,
		},
		Timeout: sendTimeout,
	}, nil)
	if err != nil {
		n.log.Warn("telegram send failed", logger.Error(err))
	}
	return nil
}
