package webhook

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhosseinghanipour/todoapi/internal/application/ports"
)

func TestHTTPEmitterPostsSignedJSON(t *testing.T) {
	var (
		gotBody   []byte
		gotSig    string
		gotType   string
		gotCustom string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		gotSig = r.Header.Get(SignatureHeader)
		gotType = r.Header.Get("Content-Type")
		gotCustom = r.Header.Get("X-Source")
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	e := NewHTTPEmitter(srv.URL, WithSigningSecret("s3cret"), WithHeader("X-Source", "todoapi"))
	ev := ports.AuditEvent{Event: "user.register", UserID: "u-1", Success: true, At: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
	require.NoError(t, e.Emit(context.Background(), ev))

	assert.Equal(t, "application/json", gotType)
	assert.Equal(t, "todoapi", gotCustom)
	assert.Equal(t, Sign([]byte("s3cret"), gotBody), gotSig)

	var decoded ports.AuditEvent
	require.NoError(t, json.Unmarshal(gotBody, &decoded))
	assert.Equal(t, "user.register", decoded.Event)
	assert.Equal(t, "u-1", decoded.UserID)
}

func TestHTTPEmitterUnsignedWithoutSecret(t *testing.T) {
	var sig string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sig = r.Header.Get(SignatureHeader)
	}))
	defer srv.Close()

	require.NoError(t, NewHTTPEmitter(srv.URL, WithSigningSecret("")).Emit(context.Background(), ports.AuditEvent{Event: "x"}))
	assert.Empty(t, sig)
}

func TestHTTPEmitterNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := NewHTTPEmitter(srv.URL, WithClient(srv.Client())).Emit(context.Background(), ports.AuditEvent{Event: "x"})
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadGateway, statusErr.Status)
}

func TestSignKnownVector(t *testing.T) {
	// RFC 4231 test case 2.
	got := Sign([]byte("Jefe"), []byte("what do ya want for nothing?"))
	assert.Equal(t, "sha256=5bdcc146bf60754e6a042426089575c75a003f089d2739839dec58b964ec3843", got)
}
