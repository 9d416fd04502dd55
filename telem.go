package groundlink

import "encoding/binary"

// Wire constants for the TELEM frame.
const (
	TelemSize  = 10
	telemSync0 = 0x5A
	telemSync1 = 0xA5
	protoVer   = 0x01
	telemType  = 0x30
)

// TelemInfo is a decoded TELEM frame: radio link-quality telemetry
// interleaved with FEC packets on the same byte stream.
type TelemInfo struct {
	RSSI    int16
	SNR     int8 // quarter-dB units
	TXPower uint8
}

// crc16CCITT computes CRC-16/CCITT (poly 0x1021, init 0xFFFF) over data.
func crc16CCITT(data []byte) uint16 {
	crc := uint16(0xFFFF)
	for _, b := range data {
		crc ^= uint16(b) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = (crc << 1) ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}

// BuildTelem serialises a 10-byte TELEM frame: little-endian sync
// 0xA55A, proto_ver, msg_type, rssi, snr, tx_power, then CRC-16/CCITT
// over bytes [2:8).
func BuildTelem(rssi int16, snr int8, txPower uint8) []byte {
	buf := make([]byte, TelemSize)
	buf[0] = telemSync0
	buf[1] = telemSync1
	buf[2] = protoVer
	buf[3] = telemType
	binary.LittleEndian.PutUint16(buf[4:6], uint16(rssi))
	buf[6] = byte(snr)
	buf[7] = txPower

	crc := crc16CCITT(buf[2:8])
	binary.LittleEndian.PutUint16(buf[8:10], crc)
	return buf
}

// TelemFromBytes parses and validates a 10-byte TELEM frame, returning
// ErrShortPacket, ErrBadSync or ErrBadCRC on failure.
func TelemFromBytes(raw []byte) (TelemInfo, error) {
	var t TelemInfo
	if len(raw) < TelemSize {
		return t, ErrShortPacket
	}
	if raw[0] != telemSync0 || raw[1] != telemSync1 {
		return t, ErrBadSync
	}

	body := raw[2:8]
	expected := binary.LittleEndian.Uint16(raw[8:10])
	if crc16CCITT(body) != expected {
		return t, ErrBadCRC
	}

	t.RSSI = int16(binary.LittleEndian.Uint16(raw[4:6]))
	t.SNR = int8(raw[6])
	t.TXPower = raw[7]
	return t, nil
}
