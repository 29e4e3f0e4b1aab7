package model

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
)

// SafeTensors format:
// [8 bytes: header_size (uint64 LE)]
// [header_size bytes: JSON header]
// [tensor data: raw bytes]

// maxHeaderSize bounds the JSON header of a checkpoint file.
const maxHeaderSize = 100 * 1024 * 1024

// tensorInfo describes one tensor in the SafeTensors JSON header.
type tensorInfo struct {
	DType       string   `json:"dtype"`
	Shape       []int    `json:"shape"`
	DataOffsets [2]int64 `json:"data_offsets"` // [start, end]
}

// ReadStateDict reads a SafeTensors file into a state dict plus its
// free-form metadata.
//
// F32 and F64 payloads are supported; F64 is narrowed to float32, which is
// the parameter precision of the training harness.
func ReadStateDict(path string) (map[string]*Tensor, map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open checkpoint: %w", err)
	}
	defer file.Close()

	var headerSize uint64
	if err := binary.Read(file, binary.LittleEndian, &headerSize); err != nil {
		return nil, nil, fmt.Errorf("failed to read header size: %w", err)
	}
	if headerSize > maxHeaderSize {
		return nil, nil, fmt.Errorf("invalid header size: %d (too large)", headerSize)
	}

	headerBytes := make([]byte, headerSize)
	if _, err := io.ReadFull(file, headerBytes); err != nil {
		return nil, nil, fmt.Errorf("failed to read header: %w", err)
	}

	var rawHeader map[string]json.RawMessage
	if err := json.Unmarshal(headerBytes, &rawHeader); err != nil {
		return nil, nil, fmt.Errorf("failed to parse header JSON: %w", err)
	}

	metadata := make(map[string]string)
	infos := make(map[string]tensorInfo, len(rawHeader))
	for name, raw := range rawHeader {
		if name == "__metadata__" {
			if err := json.Unmarshal(raw, &metadata); err != nil {
				return nil, nil, fmt.Errorf("failed to parse metadata: %w", err)
			}
			continue
		}
		var info tensorInfo
		if err := json.Unmarshal(raw, &info); err != nil {
			return nil, nil, fmt.Errorf("failed to parse tensor %s: %w", name, err)
		}
		infos[name] = info
	}

	dataStart := int64(8 + headerSize)
	stateDict := make(map[string]*Tensor, len(infos))
	for name, info := range infos {
		size := info.DataOffsets[1] - info.DataOffsets[0]
		if size < 0 {
			return nil, nil, fmt.Errorf("tensor %s has negative size", name)
		}
		buf := make([]byte, size)
		if _, err := file.ReadAt(buf, dataStart+info.DataOffsets[0]); err != nil {
			return nil, nil, fmt.Errorf("failed to read tensor %s: %w", name, err)
		}

		var data []float32
		switch info.DType {
		case "F32":
			if size%4 != 0 {
				return nil, nil, fmt.Errorf("tensor %s: F32 payload of %d bytes", name, size)
			}
			data = make([]float32, size/4)
			for i := range data {
				data[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
			}
		case "F64":
			if size%8 != 0 {
				return nil, nil, fmt.Errorf("tensor %s: F64 payload of %d bytes", name, size)
			}
			data = make([]float32, size/8)
			for i := range data {
				data[i] = float32(math.Float64frombits(binary.LittleEndian.Uint64(buf[i*8:])))
			}
		default:
			return nil, nil, fmt.Errorf("tensor %s: unsupported dtype %q", name, info.DType)
		}

		t, err := NewTensor(info.Shape, data)
		if err != nil {
			return nil, nil, fmt.Errorf("tensor %s: %w", name, err)
		}
		stateDict[name] = t
	}

	return stateDict, metadata, nil
}

// WriteStateDict writes a state dict to a SafeTensors file.
//
// Tensors are written in alphabetical order by name (SafeTensors
// requirement), always as F32. The training harness uses this to snapshot
// checkpoints; tests use it to build fixtures.
func WriteStateDict(path string, stateDict map[string]*Tensor, metadata map[string]string) error {
	names := make([]string, 0, len(stateDict))
	for name := range stateDict {
		names = append(names, name)
	}
	sort.Strings(names)

	header := make(map[string]any, len(names)+1)
	if len(metadata) > 0 {
		header["__metadata__"] = metadata
	}

	var offset int64
	for _, name := range names {
		t := stateDict[name]
		size := int64(t.NumElements()) * 4
		header[name] = tensorInfo{
			DType:       "F32",
			Shape:       t.Shape,
			DataOffsets: [2]int64{offset, offset + size},
		}
		offset += size
	}

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create checkpoint: %w", err)
	}
	defer file.Close()

	if err := binary.Write(file, binary.LittleEndian, uint64(len(headerJSON))); err != nil {
		return fmt.Errorf("failed to write header size: %w", err)
	}
	if _, err := file.Write(headerJSON); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	buf := make([]byte, 4)
	for _, name := range names {
		for _, v := range stateDict[name].Data {
			binary.LittleEndian.PutUint32(buf, math.Float32bits(v))
			if _, err := file.Write(buf); err != nil {
				return fmt.Errorf("failed to write tensor %s: %w", name, err)
			}
		}
	}

	return nil
}
