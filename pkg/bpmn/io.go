package bpmn

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	errs "github.com/matzehuels/bpmnlayout/pkg/errors"
)

// =============================================================================
// Process Serialization API
// =============================================================================

// MarshalProcess converts a process to indented JSON bytes.
func MarshalProcess(p *Process) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteProcess(p, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteProcess writes a process as JSON to an io.Writer.
func WriteProcess(p *Process, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadProcessFile reads and validates a process JSON file.
func ReadProcessFile(path string) (*Process, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "process file %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadProcess(f)
}

// ReadProcess decodes and validates a process from an io.Reader.
func ReadProcess(r io.Reader) (*Process, error) {
	var p Process
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		if errs.GetCode(err) != "" {
			return nil, err
		}
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode process")
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}
