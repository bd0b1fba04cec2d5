package dxwifi

// Decode recovers the original message from encoded, an arbitrary-length
// buffer of concatenated RS-LDPC frames. It tolerates missing or
// corrupted frames up to the underlying codes' recovery budgets.
func Decode(encoded []byte) ([]byte, error) {
	if len(encoded)%RSLDPCFrameSize != 0 {
		Log.Warn("decode: input length is not a multiple of the frame size; truncating to the last whole frame")
	}

	nframes := len(encoded) / RSLDPCFrameSize
	if nframes == 0 {
		return nil, ErrNoOTIFound
	}

	frames := make([]ldpcFrame, nframes)

	for i := 0; i < nframes; i++ {
		src := encoded[i*RSLDPCFrameSize : (i+1)*RSLDPCFrameSize]
		frames[i] = rsDecodeFrame(src, i)
	}

	discovered, ok := discoverOTI(frames)
	if !ok {
		return nil, ErrNoOTIFound
	}

	n, k, rem := int(discovered.n), int(discovered.k), int(discovered.rem)
	if k == 0 {
		return nil, ErrNoOTIFound
	}

	n1 := deriveParamsFromNK(n, k)

	dec := newLDPCDecoderSession(k, n, n1, PRNGSeed)

	for _, frame := range frames {
		o := frame.oti()
		esi := int(o.esi)

		// Deliberately strict `>`: an esi == n, technically out of the
		// valid [0,n) range, is accepted here rather than rejected.
		if esi > n {
			Log.Debug("decode: skipping frame with out-of-range ESI", "esi", esi, "n", n)
			continue
		}

		dec.addObservation(esi, frame.symbol())
	}

	if !dec.finishDecoding() {
		return nil, ErrDecodeNotPossible
	}

	sourceSymbols := dec.sourceSymbols()

	out := make([]byte, k*SymbolSize)
	for i := 0; i < k-1; i++ {
		copy(out[i*SymbolSize:(i+1)*SymbolSize], sourceSymbols[i])
	}

	lastLen := SymbolSize
	if rem != 0 {
		lastLen = rem
	}

	copy(out[(k-1)*SymbolSize:(k-1)*SymbolSize+lastLen], sourceSymbols[k-1][:lastLen])

	return out[:(k-1)*SymbolSize+lastLen], nil
}

// rsDecodeFrame RS-decodes the RSBlocksPerFrame blocks of one RS-LDPC
// frame back into an LDPC frame. RS failures are logged, not fatal: the
// best-effort bytes are still returned so OTI discovery's CRC check (or
// the LDPC layer) can decide whether to trust them.
func rsDecodeFrame(src []byte, frameIdx int) ldpcFrame {
	padded := make([]byte, RSBlocksPerFrame*RSMsgLen)

	for b := 0; b < RSBlocksPerFrame; b++ {
		codeword := src[b*RSCodewordLen : (b+1)*RSCodewordLen]

		msg, err := rsDecodeBlock(codeword)
		if err != nil {
			Log.Debug("decode: RS could not fully correct a block", "frame", frameIdx, "block", b, "err", err)
		}

		copy(padded[b*RSMsgLen:(b+1)*RSMsgLen], msg)
	}

	return ldpcFrame(padded[:LDPCFrameSize])
}

// discoverOTI walks frames in ascending index, returning the first whose
// symbol CRC matches its own header CRC. That frame's OTI defines (n, k,
// rem) for the whole blob. A frame that fails the check is skipped here,
// not dropped: it is still offered to the LDPC decoder afterward.
func discoverOTI(frames []ldpcFrame) (oti, bool) {
	for i, frame := range frames {
		o := frame.oti()
		if symbolCRC(frame.symbol()) == o.crc {
			return o, true
		}

		Log.Debug("decode: OTI CRC mismatch during discovery", "frame", i)
	}

	return oti{}, false
}
