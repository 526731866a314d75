package ipfs

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testApiKey = "test-key"

// newTestServer mimics the companion server's routes and API key check.
func newTestServer(t *testing.T) *httptest.Server {
	documents := map[string]json.RawMessage{
		"QmDoc": json.RawMessage(`{"title":"Voyage"}`),
	}

	mux := http.NewServeMux()

	mux.HandleFunc(uploadImagePath, func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}
		file, _, err := r.FormFile("image")
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing image file"})
			return
		}
		data, _ := io.ReadAll(file)
		assert.Equal(t, []byte("png-bytes"), data)
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "imageCID": "QmImage"})
	})

	mux.HandleFunc(uploadJSONPath, func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Voyage", body["title"])
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "dataCID": "QmData"})
	})

	mux.HandleFunc(uploadMetadataPath, func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}
		assert.Equal(t, "Badge", r.FormValue("name"))
		assert.Equal(t, "A badge", r.FormValue("description"))
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success":  true,
			"dataCID":  "QmMeta",
			"imageCID": "QmImage",
			"imageURL": "http://server/api/image/QmImage",
		})
	})

	mux.HandleFunc(dataPath, func(w http.ResponseWriter, r *http.Request) {
		cid := r.URL.Path[len(dataPath):]
		doc, ok := documents[cid]
		if !ok {
			writeJSON(w, http.StatusInternalServerError, map[string]string{
				"error":   "Failed to retrieve data from IPFS",
				"message": "not found",
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": doc})
	})

	mux.HandleFunc(imagePath, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path[len(imagePath):] != "QmImage" {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to retrieve image from IPFS"})
			return
		}
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte("png-bytes"))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func authorized(w http.ResponseWriter, r *http.Request) bool {
	switch r.Header.Get(apiKeyHeader) {
	case testApiKey:
		return true
	case "":
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized", "message": "API key is required"})
	default:
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized", "message": "Invalid API key"})
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestClient_Uploads(t *testing.T) {
	ctx := context.Background()
	server := newTestServer(t)
	client := NewClient(server.URL+"/", testApiKey, nil)

	cid, err := client.UploadBytes(ctx, []byte("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "QmImage", cid)

	cid, err = client.UploadJSON(ctx, map[string]string{"title": "Voyage"})
	require.NoError(t, err)
	assert.Equal(t, "QmData", cid)

	result, err := client.UploadMetadata(ctx, "Badge", "A badge", []byte("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "QmMeta", result.DataCID)
	assert.Equal(t, "QmImage", result.ImageCID)
	assert.Equal(t, "http://server/api/image/QmImage", result.ImageURL)
}

func TestClient_UploadValidation(t *testing.T) {
	ctx := context.Background()
	client := NewClient("http://127.0.0.1:0", testApiKey, nil)

	_, err := client.UploadBytes(ctx, nil)
	assert.Equal(t, ErrEmptyContent, err)

	_, err = client.UploadJSON(ctx, map[string]string{})
	assert.Equal(t, ErrEmptyContent, err)

	_, err = client.UploadJSON(ctx, nil)
	assert.Equal(t, ErrEmptyContent, err)

	_, err = client.UploadMetadata(ctx, "", "desc", []byte{1})
	assert.Equal(t, ErrEmptyContent, errors.Cause(err))

	_, err = client.FetchJSON(ctx, "../etc")
	assert.Equal(t, ErrInvalidCID, errors.Cause(err))
}

func TestClient_Unauthorized(t *testing.T) {
	ctx := context.Background()
	server := newTestServer(t)

	for _, key := range []string{"", "wrong"} {
		_, err := NewClient(server.URL, key, nil).UploadJSON(ctx, map[string]string{"title": "Voyage"})
		require.Error(t, err)
		assert.Equal(t, ErrUnauthorized, errors.Cause(err))
	}
}

func TestClient_Fetch(t *testing.T) {
	ctx := context.Background()
	server := newTestServer(t)
	client := NewClient(server.URL, testApiKey, nil)

	doc, err := client.FetchJSON(ctx, "QmDoc")
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"Voyage"}`, string(doc))

	var decoded struct {
		Title string `json:"title"`
	}
	require.NoError(t, DecodeJSON(ctx, client, "QmDoc", &decoded))
	assert.Equal(t, "Voyage", decoded.Title)

	_, err = client.FetchJSON(ctx, "QmMissing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	image, err := client.FetchBytes(ctx, "QmImage")
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), image)

	_, err = client.FetchBytes(ctx, "QmOther")
	assert.Error(t, err)
}

func TestClient_URLs(t *testing.T) {
	client := NewClient("http://localhost:3001/", "", nil)
	assert.Equal(t, "http://localhost:3001/api/image/QmImage", client.GatewayURL("QmImage"))
	assert.Equal(t, "http://localhost:3001/api/data/QmDoc", client.DataURL("QmDoc"))
}
