package groundlink

// SessionState is the receiver's lifecycle:
// Empty -> Accumulating -> Recoverable -> Recovered, with any mismatched
// image_id forcing Empty -> Accumulating again.
type SessionState int

const (
	StateEmpty SessionState = iota
	StateAccumulating
	StateRecoverable
	StateRecovered
)

// Decoder accumulates FEC packets for a single image session, keyed by
// block_id, and reconstructs the original file once k_data blocks have
// arrived (possibly a strict mix of data and parity blocks).
type Decoder struct {
	state SessionState

	haveParams bool
	imageID    uint8
	callsign   string
	kData      int
	nTotal     int
	fileSize   int
	fileType   FileType
	mPerGroup  int
	numGroups  int

	blocks  map[uint16][BlockPayload]byte
	decoded []byte
	stats   *LinkStats
}

// NewDecoder returns an empty decoder. stats may be nil, in which case
// DefaultStats is used.
func NewDecoder(stats *LinkStats) *Decoder {
	if stats == nil {
		stats = DefaultStats
	}
	return &Decoder{
		state:     StateEmpty,
		numGroups: 1,
		blocks:    make(map[uint16][BlockPayload]byte),
		stats:     stats,
	}
}

// Reset returns the decoder to a fresh Empty state, equivalent to a
// just-constructed Decoder.
func (d *Decoder) Reset() {
	d.state = StateEmpty
	d.haveParams = false
	d.imageID = 0
	d.callsign = ""
	d.kData = 0
	d.nTotal = 0
	d.fileSize = 0
	d.fileType = FileTypeRaw
	d.mPerGroup = 0
	d.numGroups = 1
	d.blocks = make(map[uint16][BlockPayload]byte)
	d.decoded = nil
}

// ImageID, Callsign, FileType, FileSize return the authoritative session
// parameters adopted from the first accepted packet.
func (d *Decoder) ImageID() uint8      { return d.imageID }
func (d *Decoder) Callsign() string    { return d.callsign }
func (d *Decoder) FileType() FileType  { return d.fileType }
func (d *Decoder) FileSize() int       { return d.fileSize }
func (d *Decoder) State() SessionState { return d.state }

// AddPacket absorbs one FEC packet. If pkt.ImageID differs from the
// current session, the decoder resets first. The first
// packet of a session fixes every authoritative parameter; duplicate
// block_ids are overwritten silently.
func (d *Decoder) AddPacket(pkt Packet) {
	if d.haveParams && pkt.ImageID != d.imageID {
		d.Reset()
		d.stats.incSessionsReset()
	}
	if !d.haveParams {
		d.imageID = pkt.ImageID
		d.callsign = pkt.Callsign
		d.kData = int(pkt.KData)
		d.nTotal = int(pkt.NTotal)
		d.fileSize = int(pkt.FileSize)
		d.fileType = pkt.FileType
		d.mPerGroup = int(pkt.MPerGroup)
		d.numGroups = int(pkt.NumGroups)
		d.haveParams = true
		d.state = StateAccumulating
		d.stats.incSessionsStarted()
	}

	if _, dup := d.blocks[pkt.BlockID]; dup {
		d.stats.incDuplicatePackets()
	}
	d.blocks[pkt.BlockID] = pkt.Payload

	if d.state == StateAccumulating && d.CanDecode() {
		d.state = StateRecoverable
	}
}

// ReceivedCount is the number of distinct block_ids currently held.
func (d *Decoder) ReceivedCount() int {
	return len(d.blocks)
}

// CanDecode reports whether enough blocks have arrived to attempt a
// decode.
func (d *Decoder) CanDecode() bool {
	return d.kData > 0 && len(d.blocks) >= d.kData
}

// Progress is the fraction of k_data blocks received, capped at 1.0.
func (d *Decoder) Progress() float64 {
	if d.kData == 0 {
		return 0
	}
	p := float64(len(d.blocks)) / float64(d.kData)
	if p > 1 {
		p = 1
	}
	return p
}

// IsComplete reports whether Decode has already produced output for this
// session.
func (d *Decoder) IsComplete() bool {
	return d.decoded != nil
}

// Decode attempts one-shot group-wise erasure decoding. On success it
// caches and returns the file_size-truncated recovered bytes and moves
// the session to Recovered; a Recovered session stays Recovered (sticky)
// and Decode is a no-op returning the cached bytes. On failure (some
// group has more erasures than m_per_group) it returns
// (nil, false) and the session remains Accumulating/Recoverable,
// awaiting more packets.
func (d *Decoder) Decode() ([]byte, bool) {
	if d.decoded != nil {
		return d.decoded, true
	}
	if !d.CanDecode() {
		return nil, false
	}

	gSize := rsMax - d.mPerGroup
	if d.numGroups == 1 {
		// PlanGroups' single-group plan encodes exactly k_data data
		// positions with no padding. The header does not carry g_size, so
		// every one-group session is decoded with that layout.
		gSize = d.kData
	}
	recovered := make([][BlockPayload]byte, d.kData)

	for g := 0; g < d.numGroups; g++ {
		members := GroupMembers(d.kData, d.numGroups, g)
		parityStart := d.kData + g*d.mPerGroup

		present := make([]bool, gSize+d.mPerGroup)
		erasures := 0
		for pos, blockID := range members {
			if _, ok := d.blocks[uint16(blockID)]; ok {
				present[pos] = true
			} else {
				erasures++
			}
		}
		// positions len(members)..gSize-1 are known-zero padding, not
		// erasures: the codeword byte there is always 0 (decodeGroup never
		// writes it), so mark it present rather than leaving it an
		// unresolved erasure for the RS solver.
		for pos := len(members); pos < gSize; pos++ {
			present[pos] = true
		}
		for p := 0; p < d.mPerGroup; p++ {
			pid := uint16(parityStart + p)
			if _, ok := d.blocks[pid]; ok {
				present[gSize+p] = true
			} else {
				erasures++
			}
		}

		if erasures > d.mPerGroup {
			d.stats.incGroupsFailed()
			return nil, false
		}

		recoveredInGroup, err := d.decodeGroup(members, parityStart, gSize, present)
		if err != nil {
			d.stats.incGroupsFailed()
			return nil, false
		}
		for pos, blockID := range members {
			recovered[blockID] = recoveredInGroup[pos]
		}
		d.stats.incGroupsDecoded()
	}

	flat := make([]byte, 0, d.kData*BlockPayload)
	for i := range recovered {
		flat = append(flat, recovered[i][:]...)
	}
	if d.fileSize < len(flat) {
		flat = flat[:d.fileSize]
	}

	d.decoded = flat
	d.state = StateRecovered
	return d.decoded, true
}

// decodeGroup runs the column-wise RS reconstruction for one group,
// returning the recovered payload for each of members (in the same
// order as members), reusing already-present data blocks as-is.
func (d *Decoder) decodeGroup(members []int, parityStart, gSize int, present []bool) ([][BlockPayload]byte, error) {
	out := make([][BlockPayload]byte, len(members))
	var recoveredCount uint64

	for col := 0; col < BlockPayload; col++ {
		codeword := make([]byte, gSize+d.mPerGroup)
		for pos, blockID := range members {
			if b, ok := d.blocks[uint16(blockID)]; ok {
				codeword[pos] = b[col]
			}
		}
		for p := 0; p < d.mPerGroup; p++ {
			if b, ok := d.blocks[uint16(parityStart+p)]; ok {
				codeword[gSize+p] = b[col]
			}
		}

		msg, err := rsDecodeColumn(codeword, present, gSize, d.mPerGroup)
		if err != nil {
			return nil, err
		}
		for pos, blockID := range members {
			out[pos][col] = msg[pos]
			if _, ok := d.blocks[uint16(blockID)]; !ok && col == 0 {
				recoveredCount++
			}
		}
	}

	if recoveredCount > 0 {
		d.stats.addBlocksRecovered(recoveredCount)
	}
	return out, nil
}

// AssemblePartial returns the current best-effort concatenation of data
// blocks, zero-filling any not yet received, truncated to file_size.
// Used for progressive preview before the K-threshold is reached. It
// returns ErrEmptySession if no packet has arrived yet to establish the
// session's parameters.
func (d *Decoder) AssemblePartial() ([]byte, error) {
	if d.decoded != nil {
		return d.decoded, nil
	}
	if d.kData == 0 {
		return nil, ErrEmptySession
	}

	out := make([]byte, 0, d.kData*BlockPayload)
	for i := 0; i < d.kData; i++ {
		if b, ok := d.blocks[uint16(i)]; ok {
			out = append(out, b[:]...)
		} else {
			out = append(out, make([]byte, BlockPayload)...)
		}
	}
	if d.fileSize < len(out) {
		out = out[:d.fileSize]
	}
	return out, nil
}
