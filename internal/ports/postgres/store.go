// Package postgres stores rooms in PostgreSQL, guarding every replace with the row version.
package postgres

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"

	"bridgeroom/internal/domain"
	"bridgeroom/internal/ports"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schema embed.FS

type DB struct{ *pgxpool.Pool }

func Open(ctx context.Context, dsn string) (*DB, error) {
	p, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &DB{p}, nil
}

func (db *DB) Close()                         { db.Pool.Close() }
func (db *DB) Ping(ctx context.Context) error { return db.Pool.Ping(ctx) }

// Migrate applies the embedded schema. It is idempotent.
func Migrate(ctx context.Context, db *DB) error {
	sqlBytes, err := schema.ReadFile("schema.sql")
	if err != nil {
		return err
	}
	_, err = db.Exec(ctx, string(sqlBytes))
	return err
}

// RoomStore implements ports.RoomStore on the rooms table.
type RoomStore struct {
	db *DB
}

func NewRoomStore(db *DB) *RoomStore {
	return &RoomStore{db: db}
}

func (s *RoomStore) Create(ctx context.Context, room domain.Room) error {
	data, err := json.Marshal(room)
	if err != nil {
		return fmt.Errorf("failed to marshal room: %w", err)
	}
	tag, err := s.db.Exec(ctx, `
		INSERT INTO rooms(room_id, owner_id, state, version, data)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (room_id) DO NOTHING
	`, room.RoomID, room.OwnerID, string(room.State), room.Version, data)
	if err != nil {
		return fmt.Errorf("failed to insert room %s: %w", room.RoomID, err)
	}
	if tag.RowsAffected() == 0 {
		return ports.ErrRoomExists
	}
	return nil
}

func (s *RoomStore) Get(ctx context.Context, roomID string) (domain.Room, error) {
	var (
		version int64
		data    []byte
	)
	err := s.db.QueryRow(ctx, `
		SELECT version, data
		  FROM rooms
		 WHERE room_id = $1
	`, roomID).Scan(&version, &data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Room{}, ports.ErrRoomNotFound
		}
		return domain.Room{}, fmt.Errorf("failed to load room %s: %w", roomID, err)
	}

	var room domain.Room
	if err := json.Unmarshal(data, &room); err != nil {
		return domain.Room{}, fmt.Errorf("failed to unmarshal room %s: %w", roomID, err)
	}
	room.Version = version
	return room, nil
}

func (s *RoomStore) Replace(ctx context.Context, room domain.Room, expectedVersion int64) error {
	data, err := json.Marshal(room)
	if err != nil {
		return fmt.Errorf("failed to marshal room: %w", err)
	}
	tag, err := s.db.Exec(ctx, `
		UPDATE rooms
		   SET state = $2,
		       version = $3,
		       data = $4,
		       updated_at = now()
		 WHERE room_id = $1
		   AND version = $5
	`, room.RoomID, string(room.State), room.Version, data, expectedVersion)
	if err != nil {
		return fmt.Errorf("failed to update room %s: %w", room.RoomID, err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	// Zero rows: either the version moved on or the room is gone.
	var exists bool
	if err := s.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM rooms WHERE room_id = $1)`, room.RoomID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check room %s: %w", room.RoomID, err)
	}
	if !exists {
		return ports.ErrRoomNotFound
	}
	return ports.ErrVersionConflict
}

var _ ports.RoomStore = (*RoomStore)(nil)
