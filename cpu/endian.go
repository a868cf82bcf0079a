package cpu

import (
	"encoding/binary"
)

// WordToBytes splits a word into its memory layout: low byte first.
func WordToBytes(w Word) [2]Byte {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], uint16(w))
	return [2]Byte{Byte(b[0]), Byte(b[1])}
}

// BytesToWord joins two memory cells, low byte first, into a word.
func BytesToWord(lo, hi Byte) Word {
	return Word(binary.LittleEndian.Uint16([]byte{byte(lo), byte(hi)}))
}

// nextAddress returns the address of the cell following addr, wrapping at 64K.
func nextAddress(addr uint16) uint16 {
	return addr + 1
}
