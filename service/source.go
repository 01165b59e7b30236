package service

import "fmt"

// singleFileSource serves exactly one in-memory file — what the /assemble endpoint builds from a
// request body. An include or incbin naming any other path fails, since a single HTTP request
// carries only one source file.
type singleFileSource struct {
	path string
	text string
}

func newSingleFileSource(path, text string) *singleFileSource {
	return &singleFileSource{path: path, text: text}
}

func (s *singleFileSource) Read(path string) (string, error) {
	if path != s.path {
		return "", fmt.Errorf("no such file: %s", path)
	}
	return s.text, nil
}

func (s *singleFileSource) ReadBinary(path string) ([]byte, error) {
	return nil, fmt.Errorf("incbin is not supported over the assemble service: %s", path)
}

func (s *singleFileSource) Resolve(fromPath, includePath string) (string, error) {
	return "", fmt.Errorf("include is not supported over the assemble service: %s", includePath)
}

// bufferSink is an in-memory emitter.OutputSink backing the /assemble endpoint's response — it
// grows to fit whatever offset the emitter writes to, same as a sparse file would.
type bufferSink struct {
	data []byte
}

func newBufferSink() *bufferSink {
	return &bufferSink{}
}

func (b *bufferSink) WriteAt(offset uint32, data []byte) error {
	end := int(offset) + len(data)
	if end > len(b.data) {
		grown := make([]byte, end)
		copy(grown, b.data)
		b.data = grown
	}
	copy(b.data[offset:], data)
	return nil
}

func (b *bufferSink) Close() error { return nil }
