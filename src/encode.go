package dxwifi

import "fmt"

// Encode transforms message into a sequence of n RS-LDPC frames, each
// RSLDPCFrameSize bytes, from which decode can recover message even when
// frames are lost or corrupted. coderate is k/n; lower values mean more
// redundancy.
func Encode(message []byte, coderate float64) ([]byte, error) {
	p := deriveParams(len(message), coderate)

	if p.n > OFECMaxSymbols {
		return nil, ErrExceededMaxSymbols
	}

	if p.n1 < N1Min {
		return nil, ErrBelowN1Min
	}

	frames := make([]ldpcFrame, p.n)
	for i := range frames {
		frames[i] = newLDPCFrame()
	}

	// Source symbols: copy message bytes, zero-padding the last symbol.
	for esi := 0; esi < p.k-1; esi++ {
		copy(frames[esi].symbol(), message[esi*SymbolSize:(esi+1)*SymbolSize])
	}

	// Whether rem is 0 (full last symbol) or not, copying the remaining
	// message bytes is correct either way; the rest of the buffer stays
	// zero, which is part of the on-wire contract (see decode's use of
	// rem to truncate the final symbol back down).
	lastSymbol := frames[p.k-1].symbol()
	copy(lastSymbol, message[(p.k-1)*SymbolSize:])

	sourceSymbols := make([][]byte, p.k)
	for i := 0; i < p.k; i++ {
		sourceSymbols[i] = frames[i].symbol()
	}

	// Repair symbols, built row by row via the staircase recurrence.
	enc := newLDPCEncoderSession(p.k, p.n-p.k, p.n1, PRNGSeed)

	var prevRepair []byte

	for row := 0; row < p.n-p.k; row++ {
		esi := p.k + row

		repair, err := buildRepairSymbolSafe(enc, row, sourceSymbols, prevRepair)
		if err != nil {
			Log.Warn("failed to build LDPC repair symbol; frame will carry whatever bytes were produced", "esi", esi, "err", err)
		}

		copy(frames[esi].symbol(), repair)
		prevRepair = repair
	}

	for esi := range frames {
		crc := symbolCRC(frames[esi].symbol())
		frames[esi].setOTI(oti{
			esi: uint16(esi),
			n:   uint16(p.n),
			k:   uint16(p.k),
			rem: uint16(p.rem),
			crc: crc,
		})
	}

	out := make([]byte, p.n*RSLDPCFrameSize)

	for i, frame := range frames {
		dst := out[i*RSLDPCFrameSize : (i+1)*RSLDPCFrameSize]
		rsEncodeFrame(frame, dst)
	}

	return out, nil
}

// buildRepairSymbolSafe isolates any panic from the LDPC engine into an
// error so a single bad repair row never aborts the whole encode; it is
// logged by the caller and not fatal.
func buildRepairSymbolSafe(enc *ldpcEncoderSession, row int, sourceSymbols [][]byte, prevRepair []byte) (symbol []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			symbol = make([]byte, SymbolSize)
			err = fmt.Errorf("ldpc: building repair row %d panicked: %v", row, r)
		}
	}()

	return enc.buildRepairSymbol(row, sourceSymbols, prevRepair), nil
}

// rsEncodeFrame RS-encodes an LDPC frame's RSBlocksPerFrame blocks into
// the destination RS-LDPC frame slice.
func rsEncodeFrame(frame ldpcFrame, dst []byte) {
	padded := make([]byte, RSBlocksPerFrame*RSMsgLen)
	copy(padded, frame)

	for b := 0; b < RSBlocksPerFrame; b++ {
		msg := padded[b*RSMsgLen : (b+1)*RSMsgLen]
		codeword := rsEncodeBlock(msg)
		copy(dst[b*RSCodewordLen:(b+1)*RSCodewordLen], codeword)
	}
}
