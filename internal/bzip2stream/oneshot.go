package bzip2stream

// CompressOneShot runs a full RUN...FINISH cycle over data in a single
// logical call, growing out internally. It is the building block the
// one-shot façade entry uses for the Bzip2 codec.
func CompressOneShot(data []byte, blockSize100k, workFactor int) ([]byte, error) {
	enc := NewEncodeStream(blockSize100k, workFactor)

	var result []byte
	buf := make([]byte, 64*1024)

	remaining := data
	for {
		n, produced, status, err := enc.Compress(ActionFinish, remaining, buf)
		if err != nil {
			return nil, err
		}
		remaining = remaining[n:]
		result = append(result, buf[:produced]...)
		if status == StatusStreamEnd {
			return result, nil
		}
	}
}

// DecompressOneShot decodes a stream produced by CompressOneShot.
func DecompressOneShot(data []byte) ([]byte, error) {
	dec := NewDecodeStream(false)

	var result []byte
	buf := make([]byte, 64*1024)

	remaining := data
	for {
		n, produced, status, err := dec.Decompress(ActionFinish, remaining, buf)
		if err != nil {
			return nil, err
		}
		remaining = remaining[n:]
		result = append(result, buf[:produced]...)
		if status == StatusStreamEnd {
			return result, nil
		}
		if n == 0 && produced == 0 {
			// No progress possible with the given chunking; avoid spinning.
			return result, nil
		}
	}
}
