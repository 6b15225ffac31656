// Package tracing keeps the most recent observed exchanges and streams new
// ones to live subscribers.
package tracing

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prasenjit/go-oasgen/internal/models"
)

// DefaultMaxExchanges is used when the buffer size is not positive
const DefaultMaxExchanges = 1000

// Service manages the exchange feed
type Service struct {
	mu           sync.RWMutex
	exchanges    []*models.Exchange
	maxExchanges int
	subscribers  map[string]chan *models.Exchange
}

// NewService creates a new exchange feed
func NewService(maxExchanges int) *Service {
	if maxExchanges <= 0 {
		maxExchanges = DefaultMaxExchanges
	}

	return &Service{
		exchanges:    make([]*models.Exchange, 0),
		maxExchanges: maxExchanges,
		subscribers:  make(map[string]chan *models.Exchange),
	}
}

// Record stores an exchange and notifies subscribers
func (s *Service) Record(exchange *models.Exchange) {
	s.mu.Lock()

	if exchange.ID == "" {
		exchange.ID = uuid.New().String()
	}
	if exchange.Timestamp.IsZero() {
		exchange.Timestamp = time.Now()
	}

	s.exchanges = append(s.exchanges, exchange)
	if len(s.exchanges) > s.maxExchanges {
		s.exchanges = s.exchanges[len(s.exchanges)-s.maxExchanges:]
	}

	subscribers := make([]chan *models.Exchange, 0, len(s.subscribers))
	for _, ch := range s.subscribers {
		subscribers = append(subscribers, ch)
	}

	s.mu.Unlock()

	// Slow subscribers miss exchanges rather than block the request
	for _, ch := range subscribers {
		select {
		case ch <- exchange:
		default:
		}
	}
}

// Exchanges returns matching exchanges, newest first
func (s *Service) Exchanges(filter *models.ExchangeFilter) []*models.Exchange {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.Exchange, 0)

	for i := len(s.exchanges) - 1; i >= 0; i-- {
		exchange := s.exchanges[i]

		if !Matches(exchange, filter) {
			continue
		}

		result = append(result, exchange)

		if filter != nil && filter.Limit > 0 && len(result) >= filter.Limit {
			break
		}
	}

	return result
}

// Exchange returns a single exchange by ID
func (s *Service) Exchange(id string) *models.Exchange {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, exchange := range s.exchanges {
		if exchange.ID == id {
			return exchange
		}
	}

	return nil
}

// Clear removes all exchanges
func (s *Service) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.exchanges = make([]*models.Exchange, 0)
}

// Subscribe creates a subscription for live exchanges
func (s *Service) Subscribe() (string, chan *models.Exchange) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New().String()
	ch := make(chan *models.Exchange, 100)
	s.subscribers[id] = ch

	return id, ch
}

// Unsubscribe removes a subscription
func (s *Service) Unsubscribe(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ch, ok := s.subscribers[id]; ok {
		close(ch)
		delete(s.subscribers, id)
	}
}

// Stats returns feed statistics
func (s *Service) Stats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]interface{}{
		"totalExchanges":    len(s.exchanges),
		"maxExchanges":      s.maxExchanges,
		"activeSubscribers": len(s.subscribers),
	}
}
