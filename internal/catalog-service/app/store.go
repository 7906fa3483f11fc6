// Package app implements the in-memory catalog store. Stock numbers here
// are advisory for the invoicing pipeline: nothing decrements them when an
// invoice is created.
package app

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/gamestore/internal/catalog-service/domain"
)

type Store struct {
	mu       sync.RWMutex
	consoles map[int64]domain.Console
	games    map[int64]domain.Game
	tshirts  map[int64]domain.TShirt
}

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// NewStore returns a store preloaded with the demo inventory.
func NewStore() *Store {
	return &Store{
		consoles: map[int64]domain.Console{
			1: {ID: 1, Model: "PlayStation 5", Manufacturer: "Sony", MemoryAmount: "825GB", Processor: "AMD Zen 2", Price: price("499.99"), Quantity: 25},
			2: {ID: 2, Model: "Xbox Series X", Manufacturer: "Microsoft", MemoryAmount: "1TB", Processor: "AMD Zen 2", Price: price("499.99"), Quantity: 30},
			3: {ID: 3, Model: "Switch OLED", Manufacturer: "Nintendo", MemoryAmount: "64GB", Processor: "Nvidia Tegra X1", Price: price("349.99"), Quantity: 40},
		},
		games: map[int64]domain.Game{
			8:  {ID: 8, Title: "Fort Lines", EsrbRating: "E10+", Description: "Base defense simulation", Studio: "Dolby Studios", Price: price("23.99"), Quantity: 100},
			9:  {ID: 9, Title: "Shards of Night", EsrbRating: "M", Description: "Open-world adventure", Studio: "Night Forge", Price: price("59.99"), Quantity: 60},
			10: {ID: 10, Title: "Kart Clash", EsrbRating: "E", Description: "Party racing", Studio: "Bluewater", Price: price("39.99"), Quantity: 80},
		},
		tshirts: map[int64]domain.TShirt{
			2: {ID: 2, Size: "M", Color: "Black", Description: "Classic arcade logo tee", Price: price("14.50"), Quantity: 1000},
			3: {ID: 3, Size: "L", Color: "Blue", Description: "Retro controller print", Price: price("17.99"), Quantity: 500},
		},
	}
}

func (s *Store) ConsoleByID(id int64) (domain.Console, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.consoles[id]
	return c, ok
}

func (s *Store) GameByID(id int64) (domain.Game, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.games[id]
	return g, ok
}

func (s *Store) TShirtByID(id int64) (domain.TShirt, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tshirts[id]
	return t, ok
}

func (s *Store) Consoles() []domain.Console {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Console, 0, len(s.consoles))
	for _, c := range s.consoles {
		out = append(out, c)
	}
	return out
}

func (s *Store) Games() []domain.Game {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Game, 0, len(s.games))
	for _, g := range s.games {
		out = append(out, g)
	}
	return out
}

func (s *Store) TShirts() []domain.TShirt {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.TShirt, 0, len(s.tshirts))
	for _, t := range s.tshirts {
		out = append(out, t)
	}
	return out
}
