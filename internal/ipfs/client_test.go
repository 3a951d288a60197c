package ipfs

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantumauth-io/credential-minter/internal/validate"
)

const testCID = "QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG"

func gatewayClient(srv *httptest.Server) *Client {
	return NewClient(Config{
		JWT:                    "jwt",
		Gateway:                strings.TrimPrefix(srv.URL, "http://"),
		RetryDelayMilliseconds: 5,
	}, WithGatewayScheme("http"), WithHTTPClient(srv.Client()))
}

func TestUpload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/pinning/pinFileToIPFS", r.URL.Path)
		assert.Equal(t, "Bearer secret-jwt", r.Header.Get("Authorization"))

		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		f, hdr, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			return
		}
		defer f.Close()

		body, _ := io.ReadAll(f)
		assert.Equal(t, "%PDF-1.7 test", string(body))
		assert.Equal(t, "diploma.pdf", hdr.Filename)
		assert.Equal(t, "application/pdf", hdr.Header.Get("Content-Type"))
		assert.JSONEq(t, `{"name":"diploma.pdf"}`, r.FormValue("pinataMetadata"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(pinResponse{IpfsHash: testCID, PinSize: 13})
	}))
	defer srv.Close()

	c := NewClient(Config{APIURL: srv.URL + "/", JWT: " secret-jwt "}, WithHTTPClient(srv.Client()))
	hash, err := c.Upload(context.Background(), "diploma.pdf", "application/pdf", []byte("%PDF-1.7 test"))
	require.NoError(t, err)
	require.Equal(t, testCID, hash)
}

func TestUpload_Errors(t *testing.T) {
	t.Run("missing token", func(t *testing.T) {
		_, err := NewClient(Config{}).Upload(context.Background(), "a.pdf", "application/pdf", []byte("x"))
		require.ErrorIs(t, err, ErrNotConfigured)
	})

	t.Run("empty file", func(t *testing.T) {
		_, err := NewClient(Config{JWT: "jwt"}).Upload(context.Background(), "a.pdf", "application/pdf", nil)
		var ve *validate.ValidationError
		require.ErrorAs(t, err, &ve)
	})

	t.Run("unauthorized", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "invalid jwt", http.StatusUnauthorized)
		}))
		defer srv.Close()

		_, err := NewClient(Config{APIURL: srv.URL, JWT: "jwt"}).Upload(context.Background(), "a.pdf", "", []byte("x"))
		var se *StatusError
		require.ErrorAs(t, err, &se)
		require.Equal(t, http.StatusUnauthorized, se.Status)
		require.Equal(t, "invalid jwt", se.Body)
	})

	t.Run("bad hash in response", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"IpfsHash":"nope"}`))
		}))
		defer srv.Close()

		_, err := NewClient(Config{APIURL: srv.URL, JWT: "jwt"}).Upload(context.Background(), "a.pdf", "", []byte("x"))
		require.Error(t, err)
	})
}

func TestGatewayURL(t *testing.T) {
	require.Equal(t, "https://gateway.pinata.cloud/ipfs/"+testCID, NewClient(Config{}).GatewayURL(testCID))
	require.Equal(t, "https://ipfs.example.org/ipfs/"+testCID, NewClient(Config{Gateway: "ipfs.example.org/"}).GatewayURL(testCID))
}

func TestRetrieve(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ipfs/"+testCID, r.URL.Path)
		_, _ = w.Write([]byte("%PDF-1.7"))
	}))
	defer srv.Close()

	data, err := gatewayClient(srv).Retrieve(context.Background(), testCID)
	require.NoError(t, err)
	require.Equal(t, "%PDF-1.7", string(data))
}

func TestRetrieve_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "busy", http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	data, err := gatewayClient(srv).Retrieve(context.Background(), testCID)
	require.NoError(t, err)
	require.Equal(t, "ok", string(data))
	require.EqualValues(t, 3, calls.Load())
}

func TestRetrieve_NotFoundIsFinal(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := gatewayClient(srv).Retrieve(context.Background(), testCID)
	var se *StatusError
	require.ErrorAs(t, err, &se)
	require.Equal(t, http.StatusNotFound, se.Status)
	require.EqualValues(t, 1, calls.Load())
}

func TestRetrieve_InvalidHash(t *testing.T) {
	_, err := NewClient(Config{}).Retrieve(context.Background(), "not-a-cid")
	var ve *validate.ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestRetrieve_GivesUpOnPersistentServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := gatewayClient(srv).Retrieve(context.Background(), testCID)
	var se *StatusError
	require.ErrorAs(t, err, &se)
	require.Equal(t, http.StatusServiceUnavailable, se.Status)
	require.EqualValues(t, maxGatewayRetries+1, calls.Load())
}
