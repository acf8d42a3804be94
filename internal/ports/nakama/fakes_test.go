package nakama

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/heroiclabs/nakama-common/api"
	"github.com/heroiclabs/nakama-common/runtime"
)

// noopLogger implements runtime.Logger for tests that only need to satisfy the interface.
type noopLogger struct{}

func (noopLogger) Debug(string, ...interface{}) {}
func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}
func (noopLogger) WithField(string, interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) WithFields(map[string]interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) Fields() map[string]interface{} {
	return nil
}

type storedObject struct {
	value   string
	version string
}

// fakeStorage mimics Nakama storage version checks for a single collection.
type fakeStorage struct {
	mu      sync.Mutex
	objects map[string]storedObject
	seq     int

	// beforeWrite runs once before the next write is applied, outside the lock.
	beforeWrite func()
	readErr     error
	writeErr    error
	lastWrite   *runtime.StorageWrite
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string]storedObject)}
}

func (f *fakeStorage) StorageRead(ctx context.Context, reads []*runtime.StorageRead) ([]*api.StorageObject, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.readErr != nil {
		return nil, f.readErr
	}
	var out []*api.StorageObject
	for _, r := range reads {
		obj, ok := f.objects[r.Collection+"/"+r.Key]
		if !ok {
			continue
		}
		out = append(out, &api.StorageObject{
			Collection: r.Collection,
			Key:        r.Key,
			Value:      obj.value,
			Version:    obj.version,
		})
	}
	return out, nil
}

func (f *fakeStorage) StorageWrite(ctx context.Context, writes []*runtime.StorageWrite) ([]*api.StorageObjectAck, error) {
	if hook := f.beforeWrite; hook != nil {
		f.beforeWrite = nil
		hook()
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return nil, f.writeErr
	}
	var acks []*api.StorageObjectAck
	for _, w := range writes {
		id := w.Collection + "/" + w.Key
		existing, exists := f.objects[id]
		switch {
		case w.Version == "*" && exists:
			return nil, runtime.ErrStorageRejectedVersion
		case w.Version != "" && w.Version != "*" && (!exists || existing.version != w.Version):
			return nil, runtime.ErrStorageRejectedVersion
		}
		f.seq++
		version := fmt.Sprintf("v%d", f.seq)
		f.objects[id] = storedObject{value: w.Value, version: version}
		f.lastWrite = w
		acks = append(acks, &api.StorageObjectAck{Collection: w.Collection, Key: w.Key, Version: version})
	}
	return acks, nil
}

// recordingSender captures notifications.
type recordingSender struct {
	mu   sync.Mutex
	sent []*runtime.NotificationSend
	err  error
}

func (r *recordingSender) NotificationsSend(ctx context.Context, notifications []*runtime.NotificationSend) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, notifications...)
	return nil
}

func (r *recordingSender) bySubject(subject string) []*runtime.NotificationSend {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*runtime.NotificationSend
	for _, n := range r.sent {
		if n.Subject == subject {
			out = append(out, n)
		}
	}
	return out
}

var errStorageDown = errors.New("storage down")
