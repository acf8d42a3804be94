package domain

import (
	"fmt"
	"strconv"
)

// Call is a single auction call: "pass", a level call "1C".."7NT", "double" or "redouble".
type Call string

const (
	CallPass     Call = "pass"
	CallDouble   Call = "double"
	CallRedouble Call = "redouble"
)

// Strain suffixes for level calls, lowest to highest.
var strains = [5]string{"C", "D", "H", "S", "NT"}

var callVocabulary = buildVocabulary()

func buildVocabulary() map[Call]bool {
	vocab := map[Call]bool{CallPass: true, CallDouble: true, CallRedouble: true}
	for level := 1; level <= 7; level++ {
		for _, strain := range strains {
			vocab[Call(strconv.Itoa(level)+strain)] = true
		}
	}
	return vocab
}

// ParseCall validates a call against the fixed 38-call vocabulary. Codes are case sensitive.
func ParseCall(s string) (Call, error) {
	c := Call(s)
	if !callVocabulary[c] {
		return "", fmt.Errorf("%w: %q", ErrInvalidBid, s)
	}
	return c, nil
}

// IsLevel reports whether the call names a level and strain.
func (c Call) IsLevel() bool {
	return callVocabulary[c] && c != CallPass && c != CallDouble && c != CallRedouble
}

// Level returns the numeric level of a level call, or 0.
func (c Call) Level() int {
	if !c.IsLevel() {
		return 0
	}
	return int(c[0] - '0')
}

// Strain returns the strain suffix of a level call ("C", "D", "H", "S" or "NT").
func (c Call) Strain() string {
	if !c.IsLevel() {
		return ""
	}
	return string(c[1:])
}

// Bid is one entry in the auction log.
type Bid struct {
	Seat Seat `json:"seat"`
	Call Call `json:"call"`
}

// Contract records the last level call of a closed auction. Penalty flags are kept for display only.
type Contract struct {
	Seat      Seat `json:"seat"`
	Call      Call `json:"call"`
	Doubled   bool `json:"doubled,omitempty"`
	Redoubled bool `json:"redoubled,omitempty"`
}

// Auction is the frozen bid log carried out of the bidding phase. Contract is nil on a pass-out.
type Auction struct {
	Bids     []Bid     `json:"bids"`
	Contract *Contract `json:"contract,omitempty"`
}

// auctionClosed reports whether the log has at least four entries and ends with three passes.
func auctionClosed(bids []Bid) bool {
	n := len(bids)
	if n < 4 {
		return false
	}
	for _, b := range bids[n-3:] {
		if b.Call != CallPass {
			return false
		}
	}
	return true
}

// resolveContract returns the most recent level call with any double or redouble made after it.
func resolveContract(bids []Bid) *Contract {
	for i := len(bids) - 1; i >= 0; i-- {
		if !bids[i].Call.IsLevel() {
			continue
		}
		contract := &Contract{Seat: bids[i].Seat, Call: bids[i].Call}
		for _, later := range bids[i+1:] {
			switch later.Call {
			case CallDouble:
				contract.Doubled = true
			case CallRedouble:
				contract.Redoubled = true
			}
		}
		return contract
	}
	return nil
}
