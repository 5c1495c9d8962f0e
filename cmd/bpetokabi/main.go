// Command bpetokabi is the C-callable ABI surface over the tokenizer
// engine (spec §6.1): one entry point per (operation, vocabulary) pair,
// each streaming its results through a caller-supplied callback invoked
// synchronously and in order.
//
// Built with `go build -buildmode=c-shared -tags bpeabi`; gated behind
// the bpeabi tag so an ordinary `go build ./...`/`go test ./...` of the
// rest of the module never requires a cgo toolchain.
//
//go:build bpeabi

package main

/*
#include <stddef.h>
#include <stdint.h>

typedef void (*byte_cb)(size_t index, uint8_t b);
typedef void (*token16_cb)(size_t index, uint16_t token);
typedef void (*token32_cb)(size_t index, uint32_t token);

static void call_byte_cb(byte_cb cb, size_t index, uint8_t b) { cb(index, b); }
static void call_token16_cb(token16_cb cb, size_t index, uint16_t token) { cb(index, token); }
static void call_token32_cb(token32_cb cb, size_t index, uint32_t token) { cb(index, token); }
*/
import "C"

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/bytepair/tokenizer/internal/registry"
)

// validate enforces the ABI's pointer contract (spec §7, BadInputPointer):
// non-null, and a length that can't overflow an internal byte-count
// multiplication. Violations abort the process with a descriptive
// message; they are not recoverable errors because the caller has
// already broken the calling convention.
func validate(buffer unsafe.Pointer, length C.size_t) {
	if buffer == nil && length != 0 {
		panic(fmt.Sprintf("bpetokabi: null buffer with nonzero length %d", uint64(length)))
	}
	if uint64(length) >= math.MaxUint64/8 {
		panic(fmt.Sprintf("bpetokabi: length %d too large", uint64(length)))
	}
}

// goBytes copies a C buffer into a Go byte slice.
func goBytes(buffer *C.uint8_t, length C.size_t) []byte {
	validate(unsafe.Pointer(buffer), length)
	if length == 0 {
		return nil
	}
	return C.GoBytes(unsafe.Pointer(buffer), C.int(length))
}

//export grapheme
func grapheme(buffer *C.uint8_t, length C.size_t, cb C.byte_cb) {
	b := goBytes(buffer, length)
	for i, c := range b {
		C.call_byte_cb(cb, C.size_t(i), C.uint8_t(c))
	}
}

//export encode_r50k
func encode_r50k(buffer *C.uint8_t, length C.size_t, cb C.token16_cb) {
	t, err := registry.R50k()
	if err != nil {
		panic(fmt.Sprintf("bpetokabi: table load failure: %v", err))
	}
	for i, id := range t.Encode(goBytes(buffer, length)) {
		C.call_token16_cb(cb, C.size_t(i), C.uint16_t(id))
	}
}

//export encode_p50k
func encode_p50k(buffer *C.uint8_t, length C.size_t, cb C.token16_cb) {
	t, err := registry.P50k()
	if err != nil {
		panic(fmt.Sprintf("bpetokabi: table load failure: %v", err))
	}
	for i, id := range t.Encode(goBytes(buffer, length)) {
		C.call_token16_cb(cb, C.size_t(i), C.uint16_t(id))
	}
}

//export encode_cl100k
func encode_cl100k(buffer *C.uint8_t, length C.size_t, cb C.token32_cb) {
	t, err := registry.Cl100k()
	if err != nil {
		panic(fmt.Sprintf("bpetokabi: table load failure: %v", err))
	}
	for i, id := range t.Encode(goBytes(buffer, length)) {
		C.call_token32_cb(cb, C.size_t(i), C.uint32_t(id))
	}
}

//export encode_o200k
func encode_o200k(buffer *C.uint8_t, length C.size_t, cb C.token32_cb) {
	t, err := registry.O200k()
	if err != nil {
		panic(fmt.Sprintf("bpetokabi: table load failure: %v", err))
	}
	for i, id := range t.Encode(goBytes(buffer, length)) {
		C.call_token32_cb(cb, C.size_t(i), C.uint32_t(id))
	}
}

func goTokens16(buffer *C.uint16_t, length C.size_t) []uint16 {
	validate(unsafe.Pointer(buffer), length)
	if length == 0 {
		return nil
	}
	out := make([]uint16, int(length))
	src := unsafe.Slice((*uint16)(unsafe.Pointer(buffer)), int(length))
	copy(out, src)
	return out
}

func goTokens32(buffer *C.uint32_t, length C.size_t) []uint32 {
	validate(unsafe.Pointer(buffer), length)
	if length == 0 {
		return nil
	}
	out := make([]uint32, int(length))
	src := unsafe.Slice((*uint32)(unsafe.Pointer(buffer)), int(length))
	copy(out, src)
	return out
}

//export decode_r50k
func decode_r50k(buffer *C.uint16_t, length C.size_t, cb C.byte_cb) {
	t, err := registry.R50k()
	if err != nil {
		panic(fmt.Sprintf("bpetokabi: table load failure: %v", err))
	}
	b, errs := t.Decode(goTokens16(buffer, length))
	logDecodeErrors(errs)
	for i, c := range b {
		C.call_byte_cb(cb, C.size_t(i), C.uint8_t(c))
	}
}

//export decode_p50k
func decode_p50k(buffer *C.uint16_t, length C.size_t, cb C.byte_cb) {
	t, err := registry.P50k()
	if err != nil {
		panic(fmt.Sprintf("bpetokabi: table load failure: %v", err))
	}
	b, errs := t.Decode(goTokens16(buffer, length))
	logDecodeErrors(errs)
	for i, c := range b {
		C.call_byte_cb(cb, C.size_t(i), C.uint8_t(c))
	}
}

//export decode_cl100k
func decode_cl100k(buffer *C.uint32_t, length C.size_t, cb C.byte_cb) {
	t, err := registry.Cl100k()
	if err != nil {
		panic(fmt.Sprintf("bpetokabi: table load failure: %v", err))
	}
	b, errs := t.Decode(goTokens32(buffer, length))
	logDecodeErrors(errs)
	for i, c := range b {
		C.call_byte_cb(cb, C.size_t(i), C.uint8_t(c))
	}
}

//export decode_o200k
func decode_o200k(buffer *C.uint32_t, length C.size_t, cb C.byte_cb) {
	t, err := registry.O200k()
	if err != nil {
		panic(fmt.Sprintf("bpetokabi: table load failure: %v", err))
	}
	b, errs := t.Decode(goTokens32(buffer, length))
	logDecodeErrors(errs)
	for i, c := range b {
		C.call_byte_cb(cb, C.size_t(i), C.uint8_t(c))
	}
}

func logDecodeErrors(errs []error) {
	// UnknownId is recoverable per spec §7: skip and continue. The ABI
	// has no logging channel of its own, so these are simply dropped;
	// Go-side callers use internal/tokenizer directly and see them.
	_ = errs
}

func main() {}
