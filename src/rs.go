package dxwifi

import "github.com/vivint/infectious"

// rsCodec wraps a single RS(255,223) code shared by every block in every
// frame. infectious performs blind Berlekamp-Welch byte-error correction
// over a fully-populated share set, unlike an erasure-only shard codec:
// decoding needs "errors only" correction with no known erasure
// positions, which is exactly infectious.Decode(nil, shares).
var rsCodec = func() *infectious.FEC {
	fec, err := infectious.NewFEC(RSMsgLen, RSCodewordLen)
	if err != nil {
		panic("dxwifi: failed to initialize RS(255,223) codec: " + err.Error())
	}

	return fec
}()

// rsEncodeBlock RS-encodes one RSMsgLen-byte message block into a
// newly-sized RSCodewordLen-byte codeword.
func rsEncodeBlock(msg []byte) []byte {
	codeword := make([]byte, RSCodewordLen)

	err := rsCodec.Encode(msg, func(s infectious.Share) {
		codeword[s.Number] = s.Data[0]
	})
	if err != nil {
		panic("dxwifi: rs encode failed: " + err.Error())
	}

	return codeword
}

// rsDecodeBlock attempts to correct byte errors in an RSCodewordLen-byte
// codeword and returns the RSMsgLen-byte message. A non-nil error means RS
// could not fully correct the block; the best-effort bytes are still
// returned so the caller can still try the LDPC/CRC layer above before
// giving up on the symbol.
func rsDecodeBlock(codeword []byte) ([]byte, error) {
	shares := make([]infectious.Share, RSCodewordLen)
	for i := range shares {
		shares[i].Number = i
		shares[i].Data = append(shares[i].Data, codeword[i])
	}

	decoded, err := rsCodec.Decode(nil, shares)
	if err != nil {
		// Best effort: hand back the uncorrected message bytes so the
		// LDPC/CRC layer above can still decide whether to trust them.
		return append([]byte(nil), codeword[:RSMsgLen]...), err
	}

	return decoded, nil
}
