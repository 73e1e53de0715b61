package compress

// NoOpCodec passes payloads through without decompression.
//
// Useful for testing the container layer with synthetic "compressed" records
// and for callers that inflate payloads out of band.
type NoOpCodec struct{}

// NewNoOpCodec creates a new no-operation codec.
func NewNoOpCodec() NoOpCodec {
	return NoOpCodec{}
}

// Decompress returns the input data directly, still validating the declared
// size so size-mismatch handling stays exercised on the pass-through path.
//
// Note: The returned slice shares the same underlying memory as the input.
//
// Parameters:
//   - data: Input payload (returned as-is)
//   - declaredSize: Expected payload size
//
// Returns:
//   - []byte: Same slice as input data
//   - error: errs.ErrSizeMismatch when len(data) != declaredSize
func (c NoOpCodec) Decompress(data []byte, declaredSize int) ([]byte, error) {
	if err := checkSize(data, declaredSize); err != nil {
		return nil, err
	}

	return data, nil
}
