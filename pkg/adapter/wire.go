package adapter

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// The backend speaks gRPC with JSON-encoded message bodies. Registering the
// codec once makes it available to both the client (via CallContentSubtype)
// and any in-process test server.
const codecName = "json"

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return codecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

// Full method names of the remote service.
const (
	methodStoreMemory       = "/ghostvault.v1.MemoryService/StoreMemory"
	methodQueryMemories     = "/ghostvault.v1.MemoryService/QueryMemories"
	methodSearchMemories    = "/ghostvault.v1.MemoryService/SearchMemories"
	methodGetRecentMemories = "/ghostvault.v1.MemoryService/GetRecentMemories"
	methodLogin             = "/ghostvault.v1.AuthService/Login"
	methodRegister          = "/ghostvault.v1.AuthService/Register"
)

// Every response carries an explicit success flag plus a message on failure.
// Callers must check the flag; a transport-level success says nothing about
// whether the remote accepted the request.

type storeMemoryRequest struct {
	Content  string            `json:"content"`
	Metadata map[string]string `json:"metadata,omitempty"`
	Tags     []string          `json:"tags,omitempty"`
}

type storeMemoryResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message,omitempty"`
	MemoryID string `json:"memory_id,omitempty"`
}

type queryMemoriesRequest struct {
	Query   string            `json:"query"`
	Limit   int32             `json:"limit"`
	Filters map[string]string `json:"filters,omitempty"`
}

type queryMemoriesResponse struct {
	Success  bool         `json:"success"`
	Message  string       `json:"message,omitempty"`
	Memories []wireMemory `json:"memories,omitempty"`
}

type searchMemoriesRequest struct {
	QueryVector         []float32 `json:"query_vector"`
	Limit               int32     `json:"limit"`
	SimilarityThreshold float64   `json:"similarity_threshold"`
}

type searchMemoriesResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Matches []wireMatch `json:"matches,omitempty"`
}

type getRecentMemoriesRequest struct {
	Limit int32 `json:"limit"`
}

type getRecentMemoriesResponse struct {
	Success  bool         `json:"success"`
	Message  string       `json:"message,omitempty"`
	Memories []wireMemory `json:"memories,omitempty"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message,omitempty"`
	AccessToken string `json:"access_token,omitempty"`
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	UserID  string `json:"user_id,omitempty"`
}

type wireMemory struct {
	ID       string            `json:"id"`
	Content  string            `json:"content"`
	Metadata map[string]string `json:"metadata,omitempty"`
	Tags     []string          `json:"tags,omitempty"`

	// Seconds since epoch; 0 when the remote omits it.
	CreatedAt int64 `json:"created_at,omitempty"`
}

type wireMatch struct {
	Memory wireMemory `json:"memory"`
	Score  float64    `json:"similarity_score"`
}
