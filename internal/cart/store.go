package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sonuarjun3120/krishpafoods/internal/logs"
)

const (
	cartKeyPrefix = "cart:"
	cartTTL       = 7 * 24 * time.Hour
)

var ErrEmptySessionID = errors.New("session id is required")

type Line struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	Weight    string  `json:"weight"`
	Quantity  int32   `json:"quantity"`
	ImageURL  string  `json:"imageUrl,omitempty"`
}

type Cart struct {
	Lines []Line `json:"lines"`
}

// Store keeps one cart per storefront session in Redis. A line is
// identified by its (productId, weight) pair; adding the same pair again
// merges quantities.
type Store struct {
	rdb    redis.Cmdable
	logger logs.Logger
}

func NewStore(rdb redis.Cmdable, logger logs.Logger) *Store {
	return &Store{
		rdb:    rdb,
		logger: logger,
	}
}

func (s *Store) Get(ctx context.Context, sessionID string) (Cart, error) {
	if sessionID == "" {
		return Cart{}, ErrEmptySessionID
	}

	raw, err := s.rdb.Get(ctx, cartKeyPrefix+sessionID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Cart{}, nil
		}
		return Cart{}, fmt.Errorf("failed to load cart: %w", err)
	}

	var c Cart
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return Cart{}, fmt.Errorf("failed to decode cart: %w", err)
	}
	return c, nil
}

func (s *Store) AddItem(ctx context.Context, sessionID string, line Line) (Cart, error) {
	if line.Quantity < 1 {
		line.Quantity = 1
	}

	c, err := s.Get(ctx, sessionID)
	if err != nil {
		return Cart{}, err
	}

	merged := false
	for i := range c.Lines {
		if c.Lines[i].ProductID == line.ProductID && c.Lines[i].Weight == line.Weight {
			c.Lines[i].Quantity += line.Quantity
			merged = true
			break
		}
	}
	if !merged {
		c.Lines = append(c.Lines, line)
	}

	if err := s.save(ctx, sessionID, c); err != nil {
		return Cart{}, err
	}
	return c, nil
}

// UpdateQuantity clamps to zero; a zero quantity removes the line.
func (s *Store) UpdateQuantity(ctx context.Context, sessionID, productID, weight string, quantity int32) (Cart, error) {
	c, err := s.Get(ctx, sessionID)
	if err != nil {
		return Cart{}, err
	}

	if quantity < 0 {
		quantity = 0
	}

	lines := c.Lines[:0]
	for _, l := range c.Lines {
		if l.ProductID == productID && l.Weight == weight {
			if quantity == 0 {
				continue
			}
			l.Quantity = quantity
		}
		lines = append(lines, l)
	}
	c.Lines = lines

	if err := s.save(ctx, sessionID, c); err != nil {
		return Cart{}, err
	}
	return c, nil
}

func (s *Store) RemoveItem(ctx context.Context, sessionID, productID, weight string) (Cart, error) {
	return s.UpdateQuantity(ctx, sessionID, productID, weight, 0)
}

func (s *Store) Clear(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return ErrEmptySessionID
	}
	if err := s.rdb.Del(ctx, cartKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

func (s *Store) save(ctx context.Context, sessionID string, c Cart) error {
	if sessionID == "" {
		return ErrEmptySessionID
	}

	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}

	if err := s.rdb.Set(ctx, cartKeyPrefix+sessionID, raw, cartTTL).Err(); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}
