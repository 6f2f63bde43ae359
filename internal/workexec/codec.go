package workexec

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"time"
)

// MaxValue is the exclusive upper bound of generated base values.
const MaxValue = 100

// ErrMalformedOutput is returned when a child's output is not a valid
// two-digit payload.
var ErrMalformedOutput = errors.New("malformed work output")

// Encode packs a value in [0, MaxValue) as units digit, tens digit.
func Encode(value int) ([2]byte, error) {
	if value < 0 || value >= MaxValue {
		return [2]byte{}, fmt.Errorf("value %d out of range [0, %d)", value, MaxValue)
	}
	units := value % 10
	return [2]byte{byte(units), byte((value - units) / 10)}, nil
}

// Decode is the inverse of Encode.
func Decode(payload []byte) (int, error) {
	if len(payload) != 2 {
		return 0, fmt.Errorf("%w: got %d bytes, want 2", ErrMalformedOutput, len(payload))
	}
	if payload[0] > 9 || payload[1] > 9 {
		return 0, fmt.Errorf("%w: digits %d,%d", ErrMalformedOutput, payload[0], payload[1])
	}
	return int(payload[0]) + int(payload[1])*10, nil
}

// Generate writes one random value in [0, MaxValue) to w using the two-byte
// encoding. A nil rng is seeded from the clock and process id, so concurrent
// children do not repeat each other.
func Generate(w io.Writer, rng *rand.Rand) error {
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), uint64(os.Getpid())))
	}
	payload, err := Encode(rng.IntN(MaxValue))
	if err != nil {
		return err
	}
	if _, err := w.Write(payload[:]); err != nil {
		return fmt.Errorf("failed to write work output: %w", err)
	}
	return nil
}
