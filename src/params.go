// Package dxwifi implements a concatenated forward-error-correction codec:
// an inner LDPC-Staircase erasure code wrapped by an outer per-block
// Reed-Solomon byte-error code, framed with a self-describing OTI header.
package dxwifi

import "math"

const (
	// SymbolSize is the payload byte count of every LDPC symbol.
	SymbolSize = 512

	// RS(255,223): 223 message bytes, 32 parity bytes per block.
	RSMsgLen      = 223
	RSPar         = 32
	RSCodewordLen = RSMsgLen + RSPar

	// OTISize is the marshaled byte length of an OTI header.
	OTISize = 12

	LDPCFrameSize = OTISize + SymbolSize

	// PRNGSeed is fixed by protocol contract, not negotiated.
	PRNGSeed = 1804289383

	// N1Min is deliberately low: it only needs to reject the degenerate
	// n-k == 0 case (coderate rounds n down to k, leaving no repair
	// symbols at all), not small-but-nonzero repair counts. A 1-byte
	// message at coderate 0.5 (n-k == 1) must still be encodable.
	N1Min = 1
	N1Max = 20

	OFECMaxSymbols = 8192
)

// RSBlocksPerFrame is the number of RS codewords needed to cover one LDPC
// frame, ceil((OTISize+SymbolSize) / RSMsgLen).
var RSBlocksPerFrame = int(math.Ceil(float64(LDPCFrameSize) / float64(RSMsgLen)))

// RSLDPCFrameSize is the total wire size of one frame.
var RSLDPCFrameSize = RSBlocksPerFrame * RSCodewordLen

// params holds the parameters derived for one encode/decode operation.
type params struct {
	k   int
	n   int
	rem int
	n1  int
}

// deriveParams implements the parameter-derivation rule shared by encode
// and decode: rem/k come from the message length, n from the coderate,
// N1 from n-k capped at N1Max.
func deriveParams(msglen int, coderate float64) params {
	rem := msglen % SymbolSize
	k := int(math.Ceil(float64(msglen) / float64(SymbolSize)))
	n := int(math.Floor(float64(k) / coderate))
	n1 := n - k
	if n1 > N1Max {
		n1 = N1Max
	}

	return params{k: k, n: n, rem: rem, n1: n1}
}

// deriveParamsFromNK rebuilds the N1 parameter from a discovered (n, k)
// pair, used by the decoder once OTI discovery has found n and k.
func deriveParamsFromNK(n, k int) int {
	n1 := n - k
	if n1 > N1Max {
		n1 = N1Max
	}

	return n1
}
