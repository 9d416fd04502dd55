package groundlink

import (
	"os"

	"github.com/pkg/errors"
)

// EncoderConfig carries the per-image parameters a sender supplies, a
// plain struct rather than a flags/env-parsed configuration object —
// this is a library, not a CLI.
type EncoderConfig struct {
	Callsign string
	ImageID  uint8
	FECRatio float64 // clamped to [0.01, 2.0]
}

// Encoder turns one file's bytes into an ordered list of FEC packets
// ready for serialisation onto a byte stream.
type Encoder struct {
	cfg EncoderConfig
}

// NewEncoder clamps cfg.FECRatio and returns a ready Encoder.
func NewEncoder(cfg EncoderConfig) *Encoder {
	cfg.FECRatio = clampRatio(cfg.FECRatio)
	return &Encoder{cfg: cfg}
}

// EncodeFile reads path and encodes its contents.
func (e *Encoder) EncodeFile(path string) ([]Packet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read file")
	}
	return e.EncodeBytes(data)
}

// EncodeBytes chunks data into k 200-byte data blocks, plans RS groups,
// computes parity column-wise per group, and returns packets in the
// canonical order: data blocks ascending by block_id, then parity
// blocks ascending by block_id.
func (e *Encoder) EncodeBytes(data []byte) ([]Packet, error) {
	fileSize := len(data)
	fileType := DetectFileType(data)

	k := (fileSize + BlockPayload - 1) / BlockPayload
	if k < 1 {
		k = 1
	}

	plan := PlanGroups(k, e.cfg.FECRatio)
	nTotal := plan.NTotal(k)

	dataMatrix := make([][BlockPayload]byte, k)
	for i := 0; i < k; i++ {
		start := i * BlockPayload
		end := start + BlockPayload
		if end > fileSize {
			end = fileSize
		}
		if start < fileSize {
			copy(dataMatrix[i][:], data[start:end])
		}
		// bytes beyond fileSize stay zero, matching the sender's
		// zero-pad obligation.
	}

	parity, err := e.buildParity(dataMatrix, k, plan)
	if err != nil {
		return nil, err
	}

	packets := make([]Packet, 0, nTotal)
	common := func(blockID uint16) Packet {
		return Packet{
			Callsign:  e.cfg.Callsign,
			ImageID:   e.cfg.ImageID,
			BlockID:   blockID,
			KData:     uint16(k),
			NTotal:    uint16(nTotal),
			FileSize:  uint32(fileSize),
			FileType:  fileType,
			MPerGroup: uint8(plan.MPerGroup),
			NumGroups: uint8(plan.NumGroups),
		}
	}

	for i := 0; i < k; i++ {
		pkt := common(uint16(i))
		pkt.Payload = dataMatrix[i]
		packets = append(packets, pkt)
	}
	for i, row := range parity {
		pkt := common(uint16(k + i))
		pkt.Payload = row
		packets = append(packets, pkt)
	}
	return packets, nil
}

// buildParity computes the num_groups*m_per_group parity rows, group by
// group, column by column, matching the original's per-group RSCodec
// construction and interleaved group assignment (block_id % num_groups).
func (e *Encoder) buildParity(dataMatrix [][BlockPayload]byte, k int, plan GroupPlan) ([][BlockPayload]byte, error) {
	parity := make([][BlockPayload]byte, plan.MTotal())

	for g := 0; g < plan.NumGroups; g++ {
		members := GroupMembers(k, plan.NumGroups, g)
		padCount := plan.GSize - len(members)
		if padCount < 0 {
			return nil, errors.New("groundlink: group planner produced an oversized group")
		}

		groupParityBase := g * plan.MPerGroup
		for col := 0; col < BlockPayload; col++ {
			msg := make([]byte, plan.GSize)
			for pos, blockID := range members {
				msg[pos] = dataMatrix[blockID][col]
			}
			// msg[len(members):] stays zero: known-zero padding, not an
			// erasure.

			par, err := rsEncodeColumn(msg, plan.GSize, plan.MPerGroup)
			if err != nil {
				return nil, err
			}
			for p := 0; p < plan.MPerGroup; p++ {
				parity[groupParityBase+p][col] = par[p]
			}
		}
	}
	return parity, nil
}
