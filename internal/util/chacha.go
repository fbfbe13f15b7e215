package util

import "math/bits"

// "expand 32-byte k"
var sigma = [4]uint32{0x61707865, 0x3320646e, 0x79622d32, 0x6b206574}

const (
	pcgMul = 6364136223846793005
	pcgInc = 11634580027462260723
)

// expandSeed stretches a 64-bit seed into a 256-bit key, one PCG32 output per key word
func expandSeed(seed uint64) [8]uint32 {
	var key [8]uint32
	state := seed
	for i := range key {
		state = state*pcgMul + pcgInc
		xorshifted := uint32(((state >> 18) ^ state) >> 27)
		rot := int(state >> 59)
		key[i] = bits.RotateLeft32(xorshifted, -rot)
	}
	return key
}

func quarterRound(a, b, c, d uint32) (uint32, uint32, uint32, uint32) {
	a += b
	d = bits.RotateLeft32(d^a, 16)
	c += d
	b = bits.RotateLeft32(b^c, 12)
	a += b
	d = bits.RotateLeft32(d^a, 8)
	c += d
	b = bits.RotateLeft32(b^c, 7)
	return a, b, c, d
}

// chachaBlock computes one keystream block with a 64-bit block counter and a zero stream id
func chachaBlock(out *[16]uint32, key *[8]uint32, counter uint64, rounds int) {
	var in [16]uint32
	copy(in[0:4], sigma[:])
	copy(in[4:12], key[:])
	in[12] = uint32(counter)
	in[13] = uint32(counter >> 32)

	x := in
	for i := 0; i < rounds; i += 2 {
		// columns
		x[0], x[4], x[8], x[12] = quarterRound(x[0], x[4], x[8], x[12])
		x[1], x[5], x[9], x[13] = quarterRound(x[1], x[5], x[9], x[13])
		x[2], x[6], x[10], x[14] = quarterRound(x[2], x[6], x[10], x[14])
		x[3], x[7], x[11], x[15] = quarterRound(x[3], x[7], x[11], x[15])
		// diagonals
		x[0], x[5], x[10], x[15] = quarterRound(x[0], x[5], x[10], x[15])
		x[1], x[6], x[11], x[12] = quarterRound(x[1], x[6], x[11], x[12])
		x[2], x[7], x[8], x[13] = quarterRound(x[2], x[7], x[8], x[13])
		x[3], x[4], x[9], x[14] = quarterRound(x[3], x[4], x[9], x[14])
	}
	for i := range out {
		out[i] = x[i] + in[i]
	}
}
