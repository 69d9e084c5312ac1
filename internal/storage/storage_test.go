package storage

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"showroom/internal/domain"
)

func TestValidateGLB(t *testing.T) {
	glbHeader := []byte{0x67, 0x6c, 0x54, 0x46, 0x02, 0x00, 0x00, 0x00}

	tests := []struct {
		name     string
		filename string
		header   []byte
		wantErr  bool
	}{
		{name: "valid glb", filename: "chair.glb", header: glbHeader, wantErr: false},
		{name: "uppercase extension", filename: "CHAIR.GLB", header: glbHeader, wantErr: false},
		{name: "wrong extension", filename: "chair.gltf", header: glbHeader, wantErr: true},
		{name: "no extension", filename: "chair", header: glbHeader, wantErr: true},
		{name: "wrong magic", filename: "chair.glb", header: []byte("PK\x03\x04"), wantErr: true},
		{name: "truncated header", filename: "chair.glb", header: []byte{0x67, 0x6c}, wantErr: true},
		{name: "empty payload", filename: "chair.glb", header: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGLB(tt.filename, tt.header)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrValidation) {
					t.Errorf("ValidateGLB() error = %v, want ErrValidation", err)
				}
				return
			}
			if err != nil {
				t.Errorf("ValidateGLB() error = %v", err)
			}
		})
	}
}

func TestProgressReader(t *testing.T) {
	payload := bytes.Repeat([]byte{0xAB}, 1000)

	var last UploadProgress
	calls := 0
	r := NewProgressReader(bytes.NewReader(payload), int64(len(payload)), func(p UploadProgress) {
		last = p
		calls++
	})

	n, err := io.Copy(io.Discard, r)
	if err != nil {
		t.Fatalf("Copy() error = %v", err)
	}
	if n != int64(len(payload)) {
		t.Fatalf("Copy() = %d bytes, want %d", n, len(payload))
	}
	if calls == 0 {
		t.Fatal("progress callback never fired")
	}
	if last.Loaded != int64(len(payload)) || last.Percentage != 100 {
		t.Errorf("final progress = %+v, want fully loaded", last)
	}
}

func TestProgressReaderNilCallback(t *testing.T) {
	payload := []byte("data")
	r := NewProgressReader(bytes.NewReader(payload), int64(len(payload)), nil)
	if _, ok := r.(*bytes.Reader); !ok {
		t.Error("nil callback must return the reader unwrapped")
	}
}
