package vectorstore

import (
	"context"
	"testing"

	"github.com/qdrant/go-client/qdrant"
)

func TestGRPCAddress(t *testing.T) {
	tests := []struct {
		name     string
		urlStr   string
		wantErr  bool
		wantHost string
		wantPort int
	}{
		{
			name:     "valid URL",
			urlStr:   "http://localhost:6333",
			wantHost: "localhost",
			wantPort: 6334, // gRPC port is HTTP port + 1
		},
		{
			name:     "URL with custom port",
			urlStr:   "http://qdrant:9000",
			wantHost: "qdrant",
			wantPort: 9001,
		},
		{
			name:    "invalid URL",
			urlStr:  "://invalid",
			wantErr: true,
		},
		{
			name:     "URL without port",
			urlStr:   "http://localhost",
			wantHost: "localhost",
			wantPort: 6334, // Default
		},
		{
			name:     "URL without hostname",
			urlStr:   "http://:6333",
			wantHost: "localhost", // Defaults to localhost
			wantPort: 6334,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host, port, err := grpcAddress(tt.urlStr)
			if tt.wantErr {
				if err == nil {
					t.Error("grpcAddress() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("grpcAddress() error = %v", err)
			}
			if host != tt.wantHost {
				t.Errorf("grpcAddress() host = %v, want %v", host, tt.wantHost)
			}
			if port != tt.wantPort {
				t.Errorf("grpcAddress() port = %v, want %v", port, tt.wantPort)
			}
		})
	}
}

func TestNewQdrantStore_InvalidURL(t *testing.T) {
	_, err := NewQdrantStore("://invalid")
	if err == nil {
		t.Error("NewQdrantStore() with invalid URL should return error")
	}
}

func TestQdrantStore_Upsert_EmptyPoints(t *testing.T) {
	// Returns before the client is touched.
	store := &QdrantStore{}

	if err := store.Upsert(context.Background(), "notes", []Point{}); err != nil {
		t.Errorf("Upsert() with empty points should return early without error, got: %v", err)
	}
}

func TestQdrantStore_Delete_EmptyIDs(t *testing.T) {
	store := &QdrantStore{}

	if err := store.Delete(context.Background(), "notes", []string{}); err != nil {
		t.Errorf("Delete() with empty IDs should return early without error, got: %v", err)
	}
}

func TestQdrantStore_Search_InvalidK(t *testing.T) {
	store := &QdrantStore{}
	ctx := context.Background()

	if _, err := store.Search(ctx, "notes", []float32{1.0, 2.0}, 0, nil); err == nil {
		t.Error("Search() with k=0 should return error")
	}
	if _, err := store.Search(ctx, "notes", []float32{1.0, 2.0}, -1, nil); err == nil {
		t.Error("Search() with k=-1 should return error")
	}
}

func TestBuildFilter(t *testing.T) {
	ctx := context.Background()

	if f := buildFilter(ctx, nil); f != nil {
		t.Errorf("buildFilter(nil) = %v, want nil", f)
	}
	if f := buildFilter(ctx, map[string]any{"score": 1.5}); f != nil {
		t.Errorf("buildFilter() with only unsupported values = %v, want nil", f)
	}

	f := buildFilter(ctx, map[string]any{
		"owner_id": "user-1",
		"version":  2,
		"ignored":  []string{"x"},
	})
	if f == nil {
		t.Fatal("buildFilter() = nil, want filter")
	}
	if len(f.Must) != 2 {
		t.Fatalf("buildFilter() produced %d conditions, want 2", len(f.Must))
	}

	owner := f.Must[0].GetField()
	if owner.GetKey() != "owner_id" || owner.GetMatch().GetKeyword() != "user-1" {
		t.Errorf("first condition = %v, want owner_id keyword match", owner)
	}
	version := f.Must[1].GetField()
	if version.GetKey() != "version" || version.GetMatch().GetInteger() != 2 {
		t.Errorf("second condition = %v, want version integer match", version)
	}
}

func TestConvertPayloadToMap(t *testing.T) {
	result := convertPayloadToMap(nil)
	if result == nil {
		t.Error("convertPayloadToMap() should return empty map, not nil")
	}

	payload := qdrant.NewValueMap(map[string]any{
		"owner_id": "user-1",
		"title":    "Groceries",
		"count":    3,
	})
	got := convertPayloadToMap(payload)
	if got["owner_id"] != "user-1" || got["title"] != "Groceries" {
		t.Errorf("convertPayloadToMap() = %v", got)
	}
	if got["count"] != int64(3) {
		t.Errorf("convertPayloadToMap() count = %v (%T), want int64(3)", got["count"], got["count"])
	}
}
