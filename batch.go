package vsnsl

// EncodeBatch encodes each element of texts under one lock, preserving
// order and count. The batch is all-or-nothing: the first failing element
// aborts it, and the returned error is a *BatchError carrying that
// element's index.
func (c *Codec) EncodeBatch(texts []string, lock int) ([]string, error) {
	out := make([]string, 0, len(texts))
	for i, text := range texts {
		enc, err := c.EncodeData(text, lock)
		if err != nil {
			return nil, &BatchError{Index: i, Err: err}
		}
		out = append(out, enc)
	}
	c.stats.Batches.Add(1)
	c.metrics.RecordOp(opEncodeBatch, len(texts))
	return out, nil
}

// DecodeBatch decodes each element of encoded under one lock. Same
// contract as EncodeBatch: order-preserving and fail-fast.
func (c *Codec) DecodeBatch(encoded []string, lock int) ([]string, error) {
	out := make([]string, 0, len(encoded))
	for i, e := range encoded {
		dec, err := c.DecodeData(e, lock)
		if err != nil {
			return nil, &BatchError{Index: i, Err: err}
		}
		out = append(out, dec)
	}
	c.stats.Batches.Add(1)
	c.metrics.RecordOp(opDecodeBatch, len(encoded))
	return out, nil
}
