//go:build !onnx

package cli

import (
	"github.com/identra-io/ghostvault/pkg/adapter"
	"github.com/m-mizutani/goerr/v2"
)

func buildEmbedder(kind string) (adapter.Embedder, error) {
	switch kind {
	case "", "hash":
		return adapter.NewHashEmbedder(0), nil
	case "onnx":
		return nil, goerr.New("this build does not include the onnx embedder (rebuild with -tags onnx)")
	default:
		return nil, goerr.New("unknown embedder", goerr.Value("embedder", kind))
	}
}
