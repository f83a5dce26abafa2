package app

import (
	"context"
	"errors"

	"github.com/louisbranch/spawning/internal/services/spawn/storage"
)

type fakeSettingsStore struct {
	settings map[string]storage.Settings
	puts     int
	getErr   error
	putErr   error
}

func newFakeSettingsStore() *fakeSettingsStore {
	return &fakeSettingsStore{settings: map[string]storage.Settings{}}
}

func (f *fakeSettingsStore) GetSettings(_ context.Context, profile string) (storage.Settings, error) {
	if f.getErr != nil {
		return storage.Settings{}, f.getErr
	}
	s, ok := f.settings[profile]
	if !ok {
		return storage.Settings{}, storage.ErrNotFound
	}
	return s, nil
}

func (f *fakeSettingsStore) PutSettings(_ context.Context, profile string, settings storage.Settings) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.puts++
	f.settings[profile] = settings
	return nil
}

var errStoreDown = errors.New("store down")
