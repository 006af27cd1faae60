package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"TradeRadar/internal/domain/models"
	"TradeRadar/pkg/config"
	"TradeRadar/pkg/logger"
)

// Stream maintains a live aggTrade tape per subscribed pair over the
// Binance WebSocket feed. When running, the whale detector can read
// recent trades from memory instead of hitting the REST tape.
type Stream struct {
	url            string
	reconnectDelay time.Duration
	pingInterval   time.Duration
	tapeSize       int
	log            *logger.Logger

	mu    sync.RWMutex
	conn  *websocket.Conn
	tapes map[string][]models.RawTrade
	subs  map[string]struct{}
	subID int
}

func NewStream(cfg *config.Config, log *logger.Logger) *Stream {
	return &Stream{
		url:            cfg.Stream.URL,
		reconnectDelay: cfg.Stream.ReconnectDelay,
		pingInterval:   cfg.Stream.PingInterval,
		tapeSize:       cfg.Stream.TapeSize,
		log:            log,
		tapes:          make(map[string][]models.RawTrade),
		subs:           make(map[string]struct{}),
	}
}

// Connect establishes the WebSocket connection.
func (s *Stream) Connect(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, s.url, nil)
	if err != nil {
		return fmt.Errorf("stream connect: %w", err)
	}
	s.mu.Lock()
	s.conn = conn
	s.mu.Unlock()
	s.log.Info("stream connected", logger.String("url", s.url))
	return nil
}

// Subscribe adds aggTrade subscriptions for the given pairs. Pairs
// already subscribed are skipped.
func (s *Stream) Subscribe(pairs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return fmt.Errorf("stream not connected")
	}

	var fresh []string
	for _, p := range pairs {
		key := strings.ToLower(p)
		if _, ok := s.subs[key]; ok {
			continue
		}
		s.subs[key] = struct{}{}
		fresh = append(fresh, key+"@aggTrade")
	}
	if len(fresh) == 0 {
		return nil
	}

	s.subID++
	msg := map[string]interface{}{
		"method": "SUBSCRIBE",
		"params": fresh,
		"id":     s.subID,
	}
	if err := s.conn.WriteJSON(msg); err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}
	s.log.Info("stream subscribed", logger.Strings("streams", fresh))
	return nil
}

// aggTradeFrame mirrors the aggTrade stream payload.
type aggTradeFrame struct {
	EventType    string `json:"e"`
	Pair         string `json:"s"`
	Price        string `json:"p"`
	Qty          string `json:"q"`
	TradeTime    int64  `json:"T"`
	IsBuyerMaker bool   `json:"m"`
}

// Run reads frames until ctx is cancelled, reconnecting on errors.
func (s *Stream) Run(ctx context.Context) {
	go s.pingLoop(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if err := s.readFrame(); err != nil {
			s.log.Warn("stream read failed, reconnecting", logger.Error(err))
			s.reconnect(ctx)
		}
	}
}

func (s *Stream) readFrame() error {
	s.mu.RLock()
	conn := s.conn
	s.mu.RUnlock()
	if conn == nil {
		return fmt.Errorf("stream conn nil")
	}

	_, b, err := conn.ReadMessage()
	if err != nil {
		return fmt.Errorf("stream read: %w", err)
	}

	var frame aggTradeFrame
	if err := json.Unmarshal(b, &frame); err != nil || frame.EventType != "aggTrade" {
		// control frames and subscribe acks are ignored
		return nil
	}

	s.append(frame.Pair, models.RawTrade{
		Price:        frame.Price,
		Qty:          frame.Qty,
		Time:         frame.TradeTime,
		IsBuyerMaker: frame.IsBuyerMaker,
	})
	return nil
}

func (s *Stream) append(pair string, tr models.RawTrade) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tape := append(s.tapes[pair], tr)
	if len(tape) > s.tapeSize {
		tape = tape[len(tape)-s.tapeSize:]
	}
	s.tapes[pair] = tape
}

// Tape returns a copy of the most recent trades for a pair, up to limit.
func (s *Stream) Tape(pairID string, limit int) []models.RawTrade {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tape := s.tapes[pairID]
	if limit > 0 && len(tape) > limit {
		tape = tape[len(tape)-limit:]
	}
	out := make([]models.RawTrade, len(tape))
	copy(out, tape)
	return out
}

func (s *Stream) reconnect(ctx context.Context) {
	s.mu.Lock()
	if s.conn != nil {
		_ = s.conn.Close()
		s.conn = nil
	}
	subs := make([]string, 0, len(s.subs))
	for p := range s.subs {
		subs = append(subs, p)
	}
	s.subs = make(map[string]struct{})
	s.mu.Unlock()

	for {
		select {
		case <-ctx.Done():
			return
		case <-time.After(s.reconnectDelay):
		}
		if err := s.Connect(ctx); err != nil {
			s.log.Warn("stream reconnect failed", logger.Error(err))
			continue
		}
		if err := s.Subscribe(subs); err != nil {
			s.log.Warn("stream resubscribe failed", logger.Error(err))
			continue
		}
		return
	}
}

// Close tears down the connection.
func (s *Stream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn != nil {
		err := s.conn.Close()
		s.conn = nil
		return err
	}
	return nil
}

func (s *Stream) pingLoop(ctx context.Context) {
	ticker := time.NewTicker(s.pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.mu.RLock()
			conn := s.conn
			s.mu.RUnlock()
			if conn != nil {
				_ = conn.WriteMessage(websocket.PingMessage, nil)
			}
		}
	}
}
