package dxwifi

import (
	"encoding/binary"
	"hash/crc32"
)

// oti is the Object Transmission Information header: 12 bytes, big-endian
// on the wire, replicated at the start of every LDPC frame.
type oti struct {
	esi uint16
	n   uint16
	k   uint16
	rem uint16
	crc uint32
}

func (o oti) marshal(buf []byte) {
	binary.BigEndian.PutUint16(buf[0:2], o.esi)
	binary.BigEndian.PutUint16(buf[2:4], o.n)
	binary.BigEndian.PutUint16(buf[4:6], o.k)
	binary.BigEndian.PutUint16(buf[6:8], o.rem)
	binary.BigEndian.PutUint32(buf[8:12], o.crc)
}

func unmarshalOTI(buf []byte) oti {
	return oti{
		esi: binary.BigEndian.Uint16(buf[0:2]),
		n:   binary.BigEndian.Uint16(buf[2:4]),
		k:   binary.BigEndian.Uint16(buf[4:6]),
		rem: binary.BigEndian.Uint16(buf[6:8]),
		crc: binary.BigEndian.Uint32(buf[8:12]),
	}
}

// ldpcFrame is a single OTI-plus-symbol unit, exactly LDPCFrameSize bytes:
// buf[0:OTISize] is the header, buf[OTISize:] is the symbol payload.
type ldpcFrame []byte

func newLDPCFrame() ldpcFrame {
	return make(ldpcFrame, LDPCFrameSize)
}

func (f ldpcFrame) symbol() []byte {
	return f[OTISize:]
}

func (f ldpcFrame) setOTI(o oti) {
	o.marshal(f[:OTISize])
}

func (f ldpcFrame) oti() oti {
	return unmarshalOTI(f[:OTISize])
}

func symbolCRC(symbol []byte) uint32 {
	return crc32.ChecksumIEEE(symbol)
}
