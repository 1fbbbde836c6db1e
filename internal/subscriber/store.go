// Package subscriber manages the email subscription document shared by
// the pipeline and the dashboard. The file has two historical shapes:
// the current per-symbol map and a legacy flat list meaning "subscribed
// to every symbol". Reads interpret the legacy shape in place; the
// first mutation migrates it to the map for good.
package subscriber

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	// ErrInvalidEmail rejects addresses without an @.
	ErrInvalidEmail = errors.New("invalid email address")
	// ErrUnknownSymbol rejects subscriptions to symbols outside the registry.
	ErrUnknownSymbol = errors.New("unknown symbol")
)

// Stats summarizes the store for the dashboard.
type Stats struct {
	TotalSubscriptions int            `json:"total_subscriptions"`
	UniqueSubscribers  int            `json:"unique_subscribers"`
	PerSymbol          map[string]int `json:"per_symbol"`
}

// Store is a mutex-guarded view over the subscriber document. Writes
// rewrite the whole file, so concurrent processes can still lose
// updates; only in-process access is safe.
type Store struct {
	mu       sync.Mutex
	path     string
	registry []string

	// Exactly one of these is active: legacy holds the flat-list shape
	// until migration, bySymbol the per-symbol map.
	legacy   []string
	bySymbol map[string][]string
}

type document struct {
	Emails json.RawMessage `json:"emails"`
}

// New loads the store at path, tolerating a missing file. registry is
// the known symbol list, which bounds subscriptions and drives the
// legacy migration.
func New(path string, registry []string) (*Store, error) {
	s := &Store{
		path:     path,
		registry: append([]string(nil), registry...),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			s.bySymbol = make(map[string][]string)
			return s, nil
		}
		return nil, fmt.Errorf("read subscribers: %w", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse subscribers: %w", err)
	}
	if len(doc.Emails) == 0 || string(doc.Emails) == "null" {
		s.bySymbol = make(map[string][]string)
		return s, nil
	}

	var bySymbol map[string][]string
	if err := json.Unmarshal(doc.Emails, &bySymbol); err == nil {
		s.bySymbol = bySymbol
		return s, nil
	}

	var flat []string
	if err := json.Unmarshal(doc.Emails, &flat); err == nil {
		s.legacy = flat
		return s, nil
	}

	return nil, fmt.Errorf("parse subscribers: emails is neither a map nor a list")
}

// Migrated reports whether the store is in the per-symbol shape.
func (s *Store) Migrated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.legacy == nil
}

// Migrate converts a legacy flat list into the per-symbol map: every
// legacy subscriber is subscribed to every registry symbol. It is a
// no-op when already migrated.
func (s *Store) Migrate() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.legacy == nil {
		return nil
	}
	s.migrateLocked()
	return s.saveLocked()
}

func (s *Store) migrateLocked() {
	bySymbol := make(map[string][]string, len(s.registry))
	for _, sym := range s.registry {
		bySymbol[sym] = []string{}
		for _, email := range s.legacy {
			if e := normalize(email); e != "" {
				bySymbol[sym] = append(bySymbol[sym], e)
			}
		}
	}
	s.bySymbol = bySymbol
	s.legacy = nil
}

// Subscribers returns the emails subscribed to a symbol. Under the
// legacy shape everyone is subscribed to everything.
func (s *Store) Subscribers(symbol string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.legacy != nil {
		return append([]string(nil), s.legacy...)
	}
	return append([]string(nil), s.bySymbol[symbol]...)
}

// Subscribe adds an email to a symbol's list. It reports false when the
// email was already subscribed; the list is unchanged in that case.
func (s *Store) Subscribe(symbol, email string) (bool, error) {
	e := normalize(email)
	if !strings.Contains(e, "@") {
		return false, ErrInvalidEmail
	}
	if !s.known(symbol) {
		return false, fmt.Errorf("%w: %s", ErrUnknownSymbol, symbol)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.legacy != nil {
		s.migrateLocked()
	}

	for _, existing := range s.bySymbol[symbol] {
		if existing == e {
			return false, nil
		}
	}
	s.bySymbol[symbol] = append(s.bySymbol[symbol], e)
	return true, s.saveLocked()
}

// Unsubscribe removes an email from a symbol's list, reporting whether
// anything was removed.
func (s *Store) Unsubscribe(symbol, email string) (bool, error) {
	e := normalize(email)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.legacy != nil {
		s.migrateLocked()
	}

	if !s.removeLocked(symbol, e) {
		return false, nil
	}
	return true, s.saveLocked()
}

// UnsubscribeAll removes an email from every symbol and returns how
// many subscriptions were dropped.
func (s *Store) UnsubscribeAll(email string) (int, error) {
	e := normalize(email)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.legacy != nil {
		s.migrateLocked()
	}

	removed := 0
	for sym := range s.bySymbol {
		if s.removeLocked(sym, e) {
			removed++
		}
	}
	if removed == 0 {
		return 0, nil
	}
	return removed, s.saveLocked()
}

// SetSubscriptions makes an email's subscriptions exactly the selected
// registry symbols: selected ones are added, everything else removed.
func (s *Store) SetSubscriptions(email string, symbols []string) error {
	e := normalize(email)
	if !strings.Contains(e, "@") {
		return ErrInvalidEmail
	}
	selected := make(map[string]bool, len(symbols))
	for _, sym := range symbols {
		if !s.known(sym) {
			return fmt.Errorf("%w: %s", ErrUnknownSymbol, sym)
		}
		selected[sym] = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.legacy != nil {
		s.migrateLocked()
	}

	for _, sym := range s.registry {
		if selected[sym] {
			already := false
			for _, existing := range s.bySymbol[sym] {
				if existing == e {
					already = true
					break
				}
			}
			if !already {
				s.bySymbol[sym] = append(s.bySymbol[sym], e)
			}
		} else {
			s.removeLocked(sym, e)
		}
	}
	return s.saveLocked()
}

// Stats counts subscriptions. Legacy flat lists count as one
// subscription per registry symbol per email.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Stats{PerSymbol: make(map[string]int)}
	unique := make(map[string]bool)

	if s.legacy != nil {
		for _, email := range s.legacy {
			unique[normalize(email)] = true
		}
		for _, sym := range s.registry {
			st.PerSymbol[sym] = len(s.legacy)
			st.TotalSubscriptions += len(s.legacy)
		}
		st.UniqueSubscribers = len(unique)
		return st
	}

	for sym, emails := range s.bySymbol {
		st.PerSymbol[sym] = len(emails)
		st.TotalSubscriptions += len(emails)
		for _, email := range emails {
			unique[email] = true
		}
	}
	st.UniqueSubscribers = len(unique)
	return st
}

func (s *Store) removeLocked(symbol, email string) bool {
	emails := s.bySymbol[symbol]
	for i, existing := range emails {
		if existing == email {
			s.bySymbol[symbol] = append(emails[:i], emails[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Store) saveLocked() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	doc := map[string]any{"emails": s.bySymbol}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode subscribers: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write subscribers: %w", err)
	}
	return nil
}

func (s *Store) known(symbol string) bool {
	for _, sym := range s.registry {
		if sym == symbol {
			return true
		}
	}
	return false
}

func normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
