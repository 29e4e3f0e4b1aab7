package hitgraph

import (
	"archive/zip"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/sbinet/npyio"
	"gonum.org/v1/gonum/mat"
)

// NPZ archive entry names for a dense hit graph. np.savez stores each array
// under <key>.npy.
const (
	keyX  = "X"
	keyRi = "Ri"
	keyRo = "Ro"
	keyY  = "y"
)

// LoadNPZ reads a dense hit graph from a NumPy .npz archive.
//
// The archive must contain the arrays X [n,f], Ri [n,e], Ro [n,e] and y [e].
// Both float32 and float64 payloads are accepted; everything is widened to
// float64 for analysis.
func LoadNPZ(path string) (*Graph, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open graph archive: %w", err)
	}
	defer zr.Close()

	arrays := make(map[string]*array, len(zr.File))
	for _, zf := range zr.File {
		name := strings.TrimSuffix(zf.Name, ".npy")
		a, err := readArray(zf)
		if err != nil {
			return nil, fmt.Errorf("failed to read array %s in %s: %w", zf.Name, path, err)
		}
		arrays[name] = a
	}

	g := &Graph{}
	if g.X, err = denseFrom(arrays, keyX); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if g.Ri, err = denseFrom(arrays, keyRi); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if g.Ro, err = denseFrom(arrays, keyRo); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	ay, ok := arrays[keyY]
	if !ok {
		return nil, fmt.Errorf("%s: missing array %q", path, keyY)
	}
	if len(ay.shape) != 1 {
		return nil, fmt.Errorf("%s: array %q must be 1-D, got shape %v", path, keyY, ay.shape)
	}
	g.Y = ay.data

	if _, e := g.Ri.Dims(); e != len(g.Y) {
		return nil, fmt.Errorf("%s: %d incidence columns but %d labels", path, e, len(g.Y))
	}
	return g, nil
}

// LoadSparseNPZ reads a hit graph and converts it to the edge-list form.
func LoadSparseNPZ(path string) (*SparseGraph, error) {
	g, err := LoadNPZ(path)
	if err != nil {
		return nil, err
	}
	return g.ToSparse()
}

// array is a decoded npy payload.
type array struct {
	shape []int
	data  []float64
}

func readArray(zf *zip.File) (*array, error) {
	rc, err := zf.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open entry: %w", err)
	}
	defer rc.Close()

	r, err := npyio.NewReader(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse npy header: %w", err)
	}
	if r.Header.Descr.Fortran {
		return nil, fmt.Errorf("fortran-order arrays are not supported")
	}

	var data []float64
	switch dt := r.Header.Descr.Type; dt {
	case "<f4", "|f4", "f4":
		var v []float32
		if err := r.Read(&v); err != nil {
			return nil, fmt.Errorf("failed to read float32 data: %w", err)
		}
		data = make([]float64, len(v))
		for i, x := range v {
			data[i] = float64(x)
		}
	case "<f8", "|f8", "f8":
		if err := r.Read(&data); err != nil {
			return nil, fmt.Errorf("failed to read float64 data: %w", err)
		}
	case "<i4", "|i4", "i4":
		var v []int32
		if err := r.Read(&v); err != nil {
			return nil, fmt.Errorf("failed to read int32 data: %w", err)
		}
		data = make([]float64, len(v))
		for i, x := range v {
			data[i] = float64(x)
		}
	case "<i8", "|i8", "i8":
		var v []int64
		if err := r.Read(&v); err != nil {
			return nil, fmt.Errorf("failed to read int64 data: %w", err)
		}
		data = make([]float64, len(v))
		for i, x := range v {
			data[i] = float64(x)
		}
	case "|u1", "u1", "<u1":
		var v []uint8
		if err := r.Read(&v); err != nil {
			return nil, fmt.Errorf("failed to read uint8 data: %w", err)
		}
		data = make([]float64, len(v))
		for i, x := range v {
			data[i] = float64(x)
		}
	default:
		return nil, fmt.Errorf("unsupported npy dtype %q", dt)
	}

	return &array{shape: r.Header.Descr.Shape, data: data}, nil
}

func denseFrom(arrays map[string]*array, key string) (*mat.Dense, error) {
	a, ok := arrays[key]
	if !ok {
		return nil, fmt.Errorf("missing array %q", key)
	}
	if len(a.shape) != 2 {
		return nil, fmt.Errorf("array %q must be 2-D, got shape %v", key, a.shape)
	}
	return mat.NewDense(a.shape[0], a.shape[1], a.data), nil
}

// WriteNPZ writes arrays to a NumPy .npz archive.
//
// Values may be *mat.Dense (written 2-D float64) or []float64 (written 1-D).
// This is the writer counterpart of LoadNPZ, used by tests and by tools that
// produce reduced graph files.
func WriteNPZ(path string, arrays map[string]any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create graph archive: %w", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)

	names := make([]string, 0, len(arrays))
	for name := range arrays {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		w, err := zw.Create(name + ".npy")
		if err != nil {
			return fmt.Errorf("failed to create entry %s: %w", name, err)
		}
		switch v := arrays[name].(type) {
		case *mat.Dense:
			err = npyio.Write(w, v)
		case []float64:
			err = npyio.Write(w, v)
		case []float32:
			err = npyio.Write(w, v)
		default:
			return fmt.Errorf("unsupported array type %T for %s", v, name)
		}
		if err != nil {
			return fmt.Errorf("failed to write array %s: %w", name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finalize archive: %w", err)
	}
	return nil
}
