//go:build onnx

package cli

import (
	"os"

	"github.com/identra-io/ghostvault/pkg/adapter"
	"github.com/m-mizutani/goerr/v2"
)

func buildEmbedder(kind string) (adapter.Embedder, error) {
	switch kind {
	case "", "hash":
		return adapter.NewHashEmbedder(0), nil
	case "onnx":
		return adapter.NewONNXEmbedder(adapter.ONNXEmbedderConfig{
			ModelPath:   os.Getenv("GHOSTVAULT_ONNX_MODEL"),
			VocabPath:   os.Getenv("GHOSTVAULT_ONNX_VOCAB"),
			LibraryPath: os.Getenv("GHOSTVAULT_ONNX_LIB"),
		})
	default:
		return nil, goerr.New("unknown embedder", goerr.Value("embedder", kind))
	}
}
