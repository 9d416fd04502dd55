package groundlink

import (
	"fmt"
	"sync/atomic"
)

// LinkStats holds protocol-level counters for a StreamParser/Decoder
// pair. All fields are uint64 and must be accessed with atomic
// operations, structured around this domain's events (frames parsed,
// sessions, recoveries, duplicates) rather than retransmission counters —
// this link has no retransmission to count.
type LinkStats struct {
	BytesFed uint64 // total bytes handed to StreamParser.Feed

	FECAccepted   uint64 // FEC frames that passed sync+CRC
	FECRejected   uint64 // FEC frame attempts that failed CRC
	TelemAccepted uint64
	TelemRejected uint64
	OverflowTrims uint64 // times the parser buffer was trimmed to the retained tail

	SessionsStarted  uint64 // image sessions begun (first accepted packet)
	SessionsReset    uint64 // image_id changes that forced a reset
	DuplicatePackets uint64 // packets whose block_id was already held

	GroupsDecoded   uint64 // RS groups successfully reconstructed
	GroupsFailed    uint64 // RS groups with more erasures than parity
	BlocksRecovered uint64 // data blocks filled in by RS reconstruction
}

// NewLinkStats returns a zeroed LinkStats.
func NewLinkStats() *LinkStats {
	return new(LinkStats)
}

// DefaultStats is the package-wide default counter set, used by
// NewStreamParser/NewDecoder when the caller does not supply their own.
var DefaultStats = NewLinkStats()

// Header returns column headers matching ToSlice()'s field order.
func (s *LinkStats) Header() []string {
	return []string{
		"BytesFed",
		"FECAccepted", "FECRejected",
		"TelemAccepted", "TelemRejected",
		"OverflowTrims",
		"SessionsStarted", "SessionsReset", "DuplicatePackets",
		"GroupsDecoded", "GroupsFailed", "BlocksRecovered",
	}
}

// ToSlice renders a thread-safe snapshot of every counter as strings, in
// the same order as Header().
func (s *LinkStats) ToSlice() []string {
	c := s.Copy()
	return []string{
		fmt.Sprint(c.BytesFed),
		fmt.Sprint(c.FECAccepted), fmt.Sprint(c.FECRejected),
		fmt.Sprint(c.TelemAccepted), fmt.Sprint(c.TelemRejected),
		fmt.Sprint(c.OverflowTrims),
		fmt.Sprint(c.SessionsStarted), fmt.Sprint(c.SessionsReset), fmt.Sprint(c.DuplicatePackets),
		fmt.Sprint(c.GroupsDecoded), fmt.Sprint(c.GroupsFailed), fmt.Sprint(c.BlocksRecovered),
	}
}

// Copy returns a consistent atomic snapshot of s.
func (s *LinkStats) Copy() *LinkStats {
	d := NewLinkStats()
	d.BytesFed = atomic.LoadUint64(&s.BytesFed)
	d.FECAccepted = atomic.LoadUint64(&s.FECAccepted)
	d.FECRejected = atomic.LoadUint64(&s.FECRejected)
	d.TelemAccepted = atomic.LoadUint64(&s.TelemAccepted)
	d.TelemRejected = atomic.LoadUint64(&s.TelemRejected)
	d.OverflowTrims = atomic.LoadUint64(&s.OverflowTrims)
	d.SessionsStarted = atomic.LoadUint64(&s.SessionsStarted)
	d.SessionsReset = atomic.LoadUint64(&s.SessionsReset)
	d.DuplicatePackets = atomic.LoadUint64(&s.DuplicatePackets)
	d.GroupsDecoded = atomic.LoadUint64(&s.GroupsDecoded)
	d.GroupsFailed = atomic.LoadUint64(&s.GroupsFailed)
	d.BlocksRecovered = atomic.LoadUint64(&s.BlocksRecovered)
	return d
}

// Reset zeroes every counter atomically.
func (s *LinkStats) Reset() {
	atomic.StoreUint64(&s.BytesFed, 0)
	atomic.StoreUint64(&s.FECAccepted, 0)
	atomic.StoreUint64(&s.FECRejected, 0)
	atomic.StoreUint64(&s.TelemAccepted, 0)
	atomic.StoreUint64(&s.TelemRejected, 0)
	atomic.StoreUint64(&s.OverflowTrims, 0)
	atomic.StoreUint64(&s.SessionsStarted, 0)
	atomic.StoreUint64(&s.SessionsReset, 0)
	atomic.StoreUint64(&s.DuplicatePackets, 0)
	atomic.StoreUint64(&s.GroupsDecoded, 0)
	atomic.StoreUint64(&s.GroupsFailed, 0)
	atomic.StoreUint64(&s.BlocksRecovered, 0)
}

func (s *LinkStats) addBytesFed(n uint64)    { atomic.AddUint64(&s.BytesFed, n) }
func (s *LinkStats) incFECAccepted()         { atomic.AddUint64(&s.FECAccepted, 1) }
func (s *LinkStats) incFECRejected()         { atomic.AddUint64(&s.FECRejected, 1) }
func (s *LinkStats) incTelemAccepted()       { atomic.AddUint64(&s.TelemAccepted, 1) }
func (s *LinkStats) incTelemRejected()       { atomic.AddUint64(&s.TelemRejected, 1) }
func (s *LinkStats) incOverflowTrims()       { atomic.AddUint64(&s.OverflowTrims, 1) }
func (s *LinkStats) incSessionsStarted()     { atomic.AddUint64(&s.SessionsStarted, 1) }
func (s *LinkStats) incSessionsReset()       { atomic.AddUint64(&s.SessionsReset, 1) }
func (s *LinkStats) incDuplicatePackets()    { atomic.AddUint64(&s.DuplicatePackets, 1) }
func (s *LinkStats) incGroupsDecoded()       { atomic.AddUint64(&s.GroupsDecoded, 1) }
func (s *LinkStats) incGroupsFailed()        { atomic.AddUint64(&s.GroupsFailed, 1) }
func (s *LinkStats) addBlocksRecovered(n uint64) { atomic.AddUint64(&s.BlocksRecovered, n) }
