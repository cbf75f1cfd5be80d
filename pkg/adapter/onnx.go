//go:build onnx

package adapter

import (
	"context"
	"os"
	"strings"
	"unicode"

	"github.com/m-mizutani/goerr/v2"
	ort "github.com/yalue/onnxruntime_go"
)

// ONNXEmbedderConfig configures the local ONNX embedding model.
type ONNXEmbedderConfig struct {
	// ModelPath points at the .onnx model file (e.g. all-MiniLM-L6-v2).
	ModelPath string

	// VocabPath points at the WordPiece vocab.txt.
	VocabPath string

	// Dimensions is the output vector size. Defaults to 384.
	Dimensions int

	// LibraryPath optionally overrides the onnxruntime shared library
	// location. Empty uses the platform default.
	LibraryPath string
}

// ONNXEmbedder runs a sentence-embedding model locally. It is not reentrant;
// wrap it in a SerialEmbedder before sharing across goroutines.
type ONNXEmbedder struct {
	session    *ort.DynamicAdvancedSession
	vocab      map[string]int64
	dimensions int
}

const (
	onnxMaxSeqLen = 128
	clsToken      = "[CLS]"
	sepToken      = "[SEP]"
	unkToken      = "[UNK]"
)

// NewONNXEmbedder loads the model and vocabulary.
func NewONNXEmbedder(cfg ONNXEmbedderConfig) (*ONNXEmbedder, error) {
	if cfg.ModelPath == "" {
		return nil, goerr.New("model path is required")
	}
	if cfg.Dimensions == 0 {
		cfg.Dimensions = 384
	}

	if cfg.LibraryPath != "" {
		ort.SetSharedLibraryPath(cfg.LibraryPath)
	}
	if err := ort.InitializeEnvironment(); err != nil {
		return nil, goerr.Wrap(err, "failed to initialize onnxruntime")
	}

	vocab, err := loadVocab(cfg.VocabPath)
	if err != nil {
		return nil, err
	}

	session, err := ort.NewDynamicAdvancedSession(cfg.ModelPath,
		[]string{"input_ids", "attention_mask", "token_type_ids"},
		[]string{"last_hidden_state"},
		nil,
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create onnx session",
			goerr.Value("model", cfg.ModelPath))
	}

	return &ONNXEmbedder{
		session:    session,
		vocab:      vocab,
		dimensions: cfg.Dimensions,
	}, nil
}

// Embed tokenizes text, runs the model and mean-pools token embeddings into
// a single normalized vector.
func (e *ONNXEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, goerr.Wrap(err, "embedding canceled")
	}

	ids := e.tokenize(text)

	inputIDs := make([]int64, onnxMaxSeqLen)
	attentionMask := make([]int64, onnxMaxSeqLen)
	tokenTypes := make([]int64, onnxMaxSeqLen)
	for i, id := range ids {
		if i >= onnxMaxSeqLen {
			break
		}
		inputIDs[i] = id
		attentionMask[i] = 1
	}

	shape := ort.NewShape(1, onnxMaxSeqLen)
	idTensor, err := ort.NewTensor(shape, inputIDs)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create input tensor")
	}
	defer idTensor.Destroy()

	maskTensor, err := ort.NewTensor(shape, attentionMask)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create mask tensor")
	}
	defer maskTensor.Destroy()

	typeTensor, err := ort.NewTensor(shape, tokenTypes)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create type tensor")
	}
	defer typeTensor.Destroy()

	outShape := ort.NewShape(1, onnxMaxSeqLen, int64(e.dimensions))
	outTensor, err := ort.NewEmptyTensor[float32](outShape)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create output tensor")
	}
	defer outTensor.Destroy()

	err = e.session.Run(
		[]ort.Value{idTensor, maskTensor, typeTensor},
		[]ort.Value{outTensor},
	)
	if err != nil {
		return nil, goerr.Wrap(err, "model inference failed")
	}

	return meanPool(outTensor.GetData(), attentionMask, e.dimensions), nil
}

func (e *ONNXEmbedder) Dimensions() int {
	return e.dimensions
}

// Close releases the model session.
func (e *ONNXEmbedder) Close() {
	e.session.Destroy()
}

// tokenize is a minimal WordPiece tokenizer: lowercase, split on whitespace
// and punctuation, then greedy longest-match against the vocab with "##"
// continuation pieces.
func (e *ONNXEmbedder) tokenize(text string) []int64 {
	ids := []int64{e.lookup(clsToken)}

	for _, word := range splitWords(strings.ToLower(text)) {
		ids = append(ids, e.wordpiece(word)...)
		if len(ids) >= onnxMaxSeqLen-1 {
			break
		}
	}

	if len(ids) > onnxMaxSeqLen-1 {
		ids = ids[:onnxMaxSeqLen-1]
	}
	return append(ids, e.lookup(sepToken))
}

func (e *ONNXEmbedder) wordpiece(word string) []int64 {
	var pieces []int64
	start := 0
	for start < len(word) {
		end := len(word)
		var id int64 = -1
		for end > start {
			piece := word[start:end]
			if start > 0 {
				piece = "##" + piece
			}
			if v, ok := e.vocab[piece]; ok {
				id = v
				break
			}
			end--
		}
		if id < 0 {
			return []int64{e.lookup(unkToken)}
		}
		pieces = append(pieces, id)
		start = end
	}
	return pieces
}

func (e *ONNXEmbedder) lookup(token string) int64 {
	if id, ok := e.vocab[token]; ok {
		return id
	}
	return 0
}

func splitWords(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r)
	})
}

func loadVocab(path string) (map[string]int64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read vocab", goerr.Value("path", path))
	}

	vocab := make(map[string]int64)
	for i, line := range strings.Split(string(data), "\n") {
		token := strings.TrimRight(line, "\r")
		if token == "" {
			continue
		}
		vocab[token] = int64(i)
	}
	return vocab, nil
}

func meanPool(hidden []float32, mask []int64, dims int) []float32 {
	pooled := make([]float32, dims)
	var count float32
	for i, m := range mask {
		if m == 0 {
			continue
		}
		count++
		for d := 0; d < dims; d++ {
			pooled[d] += hidden[i*dims+d]
		}
	}
	if count > 0 {
		for d := range pooled {
			pooled[d] /= count
		}
	}
	return normalize(pooled)
}
