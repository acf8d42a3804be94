package app

import (
	"fmt"
	"time"

	"bridgeroom/internal/domain"

	"github.com/form3tech-oss/jwt-go"
	"github.com/google/uuid"
)

// Voice token actions accepted by the room voice RPC.
const (
	VivoxTokenActionLogin = "login"
	VivoxTokenActionJoin  = "join"
)

const voiceTokenTTL = time.Hour

// VoiceGrant is a signed Vivox token for one seated player. Channel is set for join grants.
type VoiceGrant struct {
	Token     string `json:"token"`
	Channel   string `json:"channel,omitempty"`
	ExpiresAt int64  `json:"expires_at"`
}

// VivoxService signs Vivox access tokens that let the humans seated in a room share its channel.
type VivoxService struct {
	secret string
	issuer string
	domain string

	now   func() time.Time
	nonce func() string
}

func NewVivoxService(secret, issuer, domain string) *VivoxService {
	return &VivoxService{
		secret: secret,
		issuer: issuer,
		domain: domain,
		now:    time.Now,
		nonce:  uuid.NewString,
	}
}

// Configured reports whether every credential is present.
func (s *VivoxService) Configured() bool {
	return s != nil && s.secret != "" && s.issuer != "" && s.domain != ""
}

// RoomChannelName is the voice channel shared by the players of one room.
func RoomChannelName(roomID string) string {
	return "bridge-" + roomID
}

// RoomGrant signs a token for userID in room. Only humans holding a seat get one; a join grant
// always targets the room's own channel.
func (s *VivoxService) RoomGrant(room domain.Room, userID, action string) (VoiceGrant, error) {
	if !s.Configured() {
		return VoiceGrant{}, ErrVoiceDisabled
	}
	if userID == "" || domain.IsRobot(userID) {
		return VoiceGrant{}, fmt.Errorf("%w: %q cannot use voice", domain.ErrValidation, userID)
	}
	if _, err := domain.SeatOf(room, userID); err != nil {
		return VoiceGrant{}, err
	}

	from := s.userURI(userID)
	grant := VoiceGrant{}
	var to string
	switch action {
	case VivoxTokenActionLogin:
		to = from
	case VivoxTokenActionJoin:
		grant.Channel = RoomChannelName(room.RoomID)
		to = s.channelURI(grant.Channel)
	default:
		return VoiceGrant{}, fmt.Errorf("%w: unsupported voice action %q", domain.ErrValidation, action)
	}

	expires := s.now().Add(voiceTokenTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss": s.issuer,
		"sub": userID,
		"exp": expires.Unix(),
		"vxa": action,
		"vxi": s.nonce(),
		"f":   from,
		"t":   to,
	})
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return VoiceGrant{}, fmt.Errorf("failed to sign voice token: %w", err)
	}
	grant.Token = signed
	grant.ExpiresAt = expires.Unix()
	return grant, nil
}

func (s *VivoxService) userURI(userID string) string {
	return "sip:." + s.issuer + "." + userID + ".@" + s.domain
}

func (s *VivoxService) channelURI(channel string) string {
	return "sip:confctl-g-" + channel + "@" + s.domain
}
