package app

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"bridgeroom/internal/bot"
	"bridgeroom/internal/domain"
	"bridgeroom/internal/ports"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("room not found")
	// ErrCommitConflict is returned when every commit attempt lost a version race. Retryable.
	ErrCommitConflict = fmt.Errorf("%w: concurrent update, retry", domain.ErrConflict)
	// ErrStoreUnavailable marks transient storage failures and timeouts.
	ErrStoreUnavailable = errors.New("room store unavailable")
	ErrUnknownAction    = errors.New("unknown action")
	// ErrRobotStalled is returned alongside a committed room when driving robot seats failed.
	ErrRobotStalled  = errors.New("robot turn failed")
	ErrVoiceDisabled = errors.New("voice chat is not configured")
)

// errNoRobotTurn stops the robot loop when the room no longer waits on a robot.
var errNoRobotTurn = errors.New("no robot turn")

// Options tunes a Service. Zero values select the defaults.
type Options struct {
	MaxCommitAttempts int
	StoreTimeout      time.Duration
	// Robots drives robot seats after every committed action. Nil leaves them idle.
	Robots bot.Brain
	Voice  *VivoxService
}

// Service contains bridge room use-cases. Every mutation is an optimistic
// read-compute-replace against the RoomStore.
type Service struct {
	store    ports.RoomStore
	notifier ports.RoomNotifier

	rngMu sync.Mutex
	rng   *rand.Rand

	newID func() string
	now   func() time.Time

	maxAttempts  int
	storeTimeout time.Duration
	robots       bot.Brain
	voice        *VivoxService
}

// NewService constructs a Service. rng may be nil to use a time-seeded default; notifier may be
// nil to drop events.
func NewService(store ports.RoomStore, notifier ports.RoomNotifier, rng *rand.Rand, opts Options) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.MaxCommitAttempts <= 0 {
		opts.MaxCommitAttempts = DefaultMaxCommitAttempts
	}
	if opts.StoreTimeout <= 0 {
		opts.StoreTimeout = DefaultStoreTimeout
	}
	return &Service{
		store:        store,
		notifier:     notifier,
		rng:          rng,
		newID:        uuid.NewString,
		now:          time.Now,
		maxAttempts:  opts.MaxCommitAttempts,
		storeTimeout: opts.StoreTimeout,
		robots:       opts.Robots,
		voice:        opts.Voice,
	}
}

// CreateRoom creates a waiting room owned by ownerID.
func (s *Service) CreateRoom(ctx context.Context, ownerID string, opts domain.RoomOptions) (domain.Room, error) {
	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		var (
			room domain.Room
			err  error
		)
		s.withRNG(func(rng *rand.Rand) {
			room, err = domain.NewRoom(s.newID(), ownerID, opts, rng)
		})
		if err != nil {
			return domain.Room{}, err
		}
		now := s.now().UnixMilli()
		room.Version = 1
		room.CreatedAt = now
		room.UpdatedAt = now

		err = s.withTimeout(ctx, func(ctx context.Context) error {
			return s.store.Create(ctx, room)
		})
		switch {
		case err == nil:
			s.notify(ctx, room, roomCreatedEvents(room))
			return room, nil
		case errors.Is(err, ports.ErrRoomExists):
			continue
		default:
			return domain.Room{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
		}
	}
	return domain.Room{}, ErrCommitConflict
}

// JoinRoom seats userID at seat, or at a random empty seat when seat is "".
func (s *Service) JoinRoom(ctx context.Context, roomID, userID, seat string) (domain.Room, error) {
	_, next, err := s.mutate(ctx, roomID, func(room domain.Room) (domain.Room, error) {
		var (
			out domain.Room
			err error
		)
		s.withRNG(func(rng *rand.Rand) {
			out, err = domain.JoinRoom(room, userID, seat, rng)
		})
		return out, err
	})
	if err != nil {
		return domain.Room{}, err
	}
	s.notify(ctx, next, playerJoinedEvents(next, userID))
	return next, nil
}

// StartRoom deals a shuffled deck, fills empty seats with robots and opens the auction.
func (s *Service) StartRoom(ctx context.Context, roomID, requesterID string) (domain.Room, error) {
	_, next, err := s.mutate(ctx, roomID, func(room domain.Room) (domain.Room, error) {
		var hands domain.Hands
		s.withRNG(func(rng *rand.Rand) {
			hands = domain.DealRandom(rng)
		})
		return domain.StartRoom(room, requesterID, hands)
	})
	if err != nil {
		return domain.Room{}, err
	}
	s.notify(ctx, next, gameStartedEvents(next))
	return s.driveRobots(ctx, next)
}

// SubmitBid records actorID's call.
func (s *Service) SubmitBid(ctx context.Context, roomID, actorID, call string) (domain.Room, error) {
	next, err := s.bid(ctx, roomID, actorID, call)
	if err != nil {
		return domain.Room{}, err
	}
	return s.driveRobots(ctx, next)
}

// PlayCard plays actorID's card to the current trick.
func (s *Service) PlayCard(ctx context.Context, roomID, actorID, card string) (domain.Room, error) {
	next, err := s.play(ctx, roomID, actorID, card)
	if err != nil {
		return domain.Room{}, err
	}
	return s.driveRobots(ctx, next)
}

// GetRoom loads the current room.
func (s *Service) GetRoom(ctx context.Context, roomID string) (domain.Room, error) {
	return s.load(ctx, roomID)
}

// VoiceToken issues a voice grant for a human seated in the room. action is "join" for the room
// channel or "login".
func (s *Service) VoiceToken(ctx context.Context, roomID, userID, action string) (VoiceGrant, error) {
	if !s.voice.Configured() {
		return VoiceGrant{}, ErrVoiceDisabled
	}
	room, err := s.load(ctx, roomID)
	if err != nil {
		return VoiceGrant{}, err
	}
	return s.voice.RoomGrant(room, userID, action)
}

func (s *Service) bid(ctx context.Context, roomID, actorID, call string) (domain.Room, error) {
	_, next, err := s.mutate(ctx, roomID, func(room domain.Room) (domain.Room, error) {
		return domain.SubmitBid(room, actorID, call)
	})
	if err != nil {
		return domain.Room{}, err
	}
	seat, _ := next.Seats.SeatOf(actorID)
	s.notify(ctx, next, bidEvents(next, seat, domain.Call(call)))
	return next, nil
}

func (s *Service) play(ctx context.Context, roomID, actorID, code string) (domain.Room, error) {
	prev, next, err := s.mutate(ctx, roomID, func(room domain.Room) (domain.Room, error) {
		return domain.PlayCard(room, actorID, code)
	})
	if err != nil {
		return domain.Room{}, err
	}
	seat, _ := next.Seats.SeatOf(actorID)
	card, _ := domain.ParseCard(code)
	s.notify(ctx, next, cardEvents(prev, next, seat, card))
	return next, nil
}

// driveRobots keeps applying robot moves, each as its own commit, while a robot holds the turn.
// Failures after the human's commit are reported as ErrRobotStalled with the last committed room.
func (s *Service) driveRobots(ctx context.Context, room domain.Room) (domain.Room, error) {
	if s.robots == nil {
		return room, nil
	}
	for i := 0; i < maxRobotMoves; i++ {
		if !domain.IsRobot(room.Turn()) {
			return room, nil
		}
		next, err := s.robotMove(ctx, room.RoomID)
		if errors.Is(err, errNoRobotTurn) {
			return room, nil
		}
		if err != nil {
			return room, fmt.Errorf("%w: %w", ErrRobotStalled, err)
		}
		room = next
	}
	return room, nil
}

// robotMove recomputes the robot's choice from the freshly read room on every attempt.
func (s *Service) robotMove(ctx context.Context, roomID string) (domain.Room, error) {
	var move bot.Move
	var actor string
	prev, next, err := s.mutate(ctx, roomID, func(room domain.Room) (domain.Room, error) {
		actor = room.Turn()
		if !domain.IsRobot(actor) {
			return domain.Room{}, errNoRobotTurn
		}
		agent, err := bot.NewAgent(room, actor, s.robots)
		if err != nil {
			return domain.Room{}, err
		}
		move, err = agent.Play(room)
		if err != nil {
			return domain.Room{}, err
		}
		if room.State == domain.StateBidding {
			return domain.SubmitBid(room, actor, string(move.Call))
		}
		return domain.PlayCard(room, actor, move.Card.String())
	})
	if err != nil {
		return domain.Room{}, err
	}

	seat, _ := next.Seats.SeatOf(actor)
	if prev.State == domain.StateBidding {
		s.notify(ctx, next, bidEvents(next, seat, move.Call))
	} else {
		s.notify(ctx, next, cardEvents(prev, next, seat, move.Card))
	}
	return next, nil
}

// mutate runs the optimistic commit loop: read, apply, replace if the version is unchanged.
// It returns the room as read and the committed room.
func (s *Service) mutate(ctx context.Context, roomID string, apply func(domain.Room) (domain.Room, error)) (domain.Room, domain.Room, error) {
	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		current, err := s.load(ctx, roomID)
		if err != nil {
			return domain.Room{}, domain.Room{}, err
		}
		next, err := apply(current.Clone())
		if err != nil {
			return current, domain.Room{}, err
		}
		next.Version = current.Version + 1
		next.UpdatedAt = s.now().UnixMilli()

		err = s.withTimeout(ctx, func(ctx context.Context) error {
			return s.store.Replace(ctx, next, current.Version)
		})
		switch {
		case err == nil:
			return current, next, nil
		case errors.Is(err, ports.ErrVersionConflict):
			continue
		case errors.Is(err, ports.ErrRoomNotFound):
			return domain.Room{}, domain.Room{}, fmt.Errorf("%w: %s", ErrNotFound, roomID)
		default:
			return domain.Room{}, domain.Room{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
		}
	}
	return domain.Room{}, domain.Room{}, ErrCommitConflict
}

func (s *Service) load(ctx context.Context, roomID string) (domain.Room, error) {
	if roomID == "" {
		return domain.Room{}, fmt.Errorf("%w: room id is required", domain.ErrValidation)
	}
	var room domain.Room
	err := s.withTimeout(ctx, func(ctx context.Context) error {
		var err error
		room, err = s.store.Get(ctx, roomID)
		return err
	})
	switch {
	case err == nil:
		return room, nil
	case errors.Is(err, ports.ErrRoomNotFound):
		return domain.Room{}, fmt.Errorf("%w: %s", ErrNotFound, roomID)
	default:
		return domain.Room{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
}

func (s *Service) withTimeout(ctx context.Context, fn func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	return fn(ctx)
}

func (s *Service) withRNG(fn func(*rand.Rand)) {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	fn(s.rng)
}

func (s *Service) notify(ctx context.Context, room domain.Room, events []ports.Event) {
	if s.notifier == nil || len(events) == 0 {
		return
	}
	s.notifier.NotifyRoom(ctx, room, events)
}
