package loader

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"io"
	"strings"

	"github.com/pkg/errors"
)

var (
	errInvalidGLTFVersion = errors.New("invalid glTF version: must be 2.0")
	errInvalidGLBMagic    = errors.New("invalid GLB magic number")
	errInvalidGLBVersion  = errors.New("invalid GLB version: must be 2")
	errMissingJSONChunk   = errors.New("GLB file missing JSON chunk")
)

// parseDocument decodes glTF JSON, or a GLB container when data starts with the GLB magic.
func parseDocument(data []byte) (*gltfDocument, error) {
	if len(data) >= 4 && binary.LittleEndian.Uint32(data[:4]) == gltfGLBMagic {
		return parseGLB(data)
	}
	return parseGLTF(data)
}

func parseGLTF(data []byte) (*gltfDocument, error) {
	var doc gltfDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "parse glTF JSON")
	}
	if !strings.HasPrefix(doc.Asset.Version, "2.") {
		return nil, errInvalidGLTFVersion
	}
	return &doc, nil
}

// parseGLB walks the GLB chunks and decodes the JSON chunk. The binary chunk is skipped.
func parseGLB(data []byte) (*gltfDocument, error) {
	if len(data) < 12 {
		return nil, errors.New("GLB file too small")
	}
	r := bytes.NewReader(data)

	var header gltfGLBHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, errors.Wrap(err, "read GLB header")
	}
	if header.Magic != gltfGLBMagic {
		return nil, errInvalidGLBMagic
	}
	if header.Version != gltfGLBVersion {
		return nil, errInvalidGLBVersion
	}

	for {
		var chunk gltfGLBChunkHeader
		if err := binary.Read(r, binary.LittleEndian, &chunk); err != nil {
			if err == io.EOF {
				break
			}
			return nil, errors.Wrap(err, "read GLB chunk header")
		}
		if chunk.ChunkType != gltfGLBChunkJSON {
			if _, err := r.Seek(int64(chunk.ChunkLength), io.SeekCurrent); err != nil {
				return nil, errors.Wrap(err, "skip GLB chunk")
			}
			continue
		}
		jsonData := make([]byte, chunk.ChunkLength)
		if _, err := io.ReadFull(r, jsonData); err != nil {
			return nil, errors.Wrap(err, "read GLB JSON chunk")
		}
		return parseGLTF(jsonData)
	}
	return nil, errMissingJSONChunk
}
