// Package store is the record store shared by the admin and public pages.
//
// Records live under two keys: the primary key owned by the admin controller
// and a derived copy read by the public renderer. Persist writes both in one
// key-value transaction so they never drift apart.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"zozikafe/internal/domain/lang"
	"zozikafe/internal/domain/machines"
	"zozikafe/internal/infra/kv"
)

const (
	KeyMachines = "zozikafe_machines"
	KeyDisplay  = "zozikafe_machines_display"
	KeyLanguage = "language"
)

type RecordStore struct {
	kv kv.Store
}

func New(s kv.Store) *RecordStore {
	return &RecordStore{kv: s}
}

// Load returns the primary records. A missing or undecodable key reads as empty.
func (r *RecordStore) Load(ctx context.Context) []machines.Machine {
	return r.decode(ctx, KeyMachines)
}

// LoadDisplay returns the derived copy the public page renders from.
func (r *RecordStore) LoadDisplay(ctx context.Context) []machines.Machine {
	return r.decode(ctx, KeyDisplay)
}

// Persist overwrites the primary key and the derived key with list.
func (r *RecordStore) Persist(ctx context.Context, list []machines.Machine) error {
	data, err := encode(list)
	if err != nil {
		return err
	}
	if err := r.kv.SetAll(ctx, []kv.Entry{
		{Key: KeyMachines, Value: data},
		{Key: KeyDisplay, Value: data},
	}); err != nil {
		return fmt.Errorf("persist machines: %w", err)
	}
	return nil
}

// SeedDisplay writes list to the derived key only, and only while that key
// is still empty. It reports whether it wrote, so a save that lands first is
// never overwritten.
func (r *RecordStore) SeedDisplay(ctx context.Context, list []machines.Machine) (bool, error) {
	data, err := encode(list)
	if err != nil {
		return false, err
	}
	wrote, err := r.kv.SetIf(ctx, KeyDisplay, data, isEmptyList)
	if err != nil {
		return false, fmt.Errorf("seed display: %w", err)
	}
	return wrote, nil
}

// LanguagePreference is the site-wide default language, if one was stored.
func (r *RecordStore) LanguagePreference(ctx context.Context) (lang.Code, bool) {
	raw, err := r.kv.Get(ctx, KeyLanguage)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			log.Printf("store: read %s: %v", KeyLanguage, err)
		}
		return "", false
	}
	return lang.Parse(string(raw))
}

func (r *RecordStore) SetLanguagePreference(ctx context.Context, code lang.Code) error {
	if err := r.kv.Set(ctx, KeyLanguage, []byte(code)); err != nil {
		return fmt.Errorf("store language: %w", err)
	}
	return nil
}

func (r *RecordStore) decode(ctx context.Context, key string) []machines.Machine {
	raw, err := r.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			log.Printf("store: read %s: %v", key, err)
		}
		return []machines.Machine{}
	}
	var list []machines.Machine
	if err := json.Unmarshal(raw, &list); err != nil {
		log.Printf("store: %s is not valid JSON, treating as empty: %v", key, err)
		return []machines.Machine{}
	}
	if list == nil {
		list = []machines.Machine{}
	}
	return list
}

// isEmptyList matches what decode reads as empty.
func isEmptyList(raw []byte) bool {
	if raw == nil {
		return true
	}
	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err != nil {
		return true
	}
	return len(list) == 0
}

func encode(list []machines.Machine) ([]byte, error) {
	if list == nil {
		list = []machines.Machine{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return nil, fmt.Errorf("encode machines: %w", err)
	}
	return data, nil
}
