// Package notice - временные баннеры ошибок и успеха.
package notice

import (
	"sync"
	"time"
)

const DefaultLifetime = 5 * time.Second

type Kind string

const (
	KindError   Kind = "error"
	KindSuccess Kind = "success"
)

type Banner struct {
	Kind      Kind      `json:"kind"`
	Text      string    `json:"text"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (b Banner) Expired(now time.Time) bool {
	return !now.Before(b.ExpiresAt)
}

// Board хранит баннеры одной страницы. Новый баннер того же вида заменяет прежний,
// как единственный блок #ajax-error на странице.
type Board struct {
	mu       sync.Mutex
	lifetime time.Duration
	banners  map[Kind]Banner
}

func NewBoard(lifetime time.Duration) *Board {
	if lifetime <= 0 {
		lifetime = DefaultLifetime
	}
	return &Board{lifetime: lifetime, banners: make(map[Kind]Banner)}
}

func (b *Board) Show(kind Kind, text string, now time.Time) Banner {
	b.mu.Lock()
	defer b.mu.Unlock()
	banner := Banner{Kind: kind, Text: text, ExpiresAt: now.Add(b.lifetime)}
	b.banners[kind] = banner
	return banner
}

func (b *Board) Error(text string, now time.Time) Banner {
	return b.Show(KindError, text, now)
}

func (b *Board) Success(text string, now time.Time) Banner {
	return b.Show(KindSuccess, text, now)
}

// Dismiss убирает баннер вида kind (успешный запрос скрывает прежнюю ошибку).
func (b *Board) Dismiss(kind Kind) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.banners, kind)
}

// Active - неистёкшие баннеры, ошибка первой.
func (b *Board) Active(now time.Time) []Banner {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []Banner
	for _, kind := range []Kind{KindError, KindSuccess} {
		if banner, ok := b.banners[kind]; ok && !banner.Expired(now) {
			out = append(out, banner)
		}
	}
	return out
}

// Sweep удаляет истёкшие баннеры и возвращает их количество.
func (b *Board) Sweep(now time.Time) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	removed := 0
	for kind, banner := range b.banners {
		if banner.Expired(now) {
			delete(b.banners, kind)
			removed++
		}
	}
	return removed
}
