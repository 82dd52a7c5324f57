package detran

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"vehicledebts/pkg/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL+"/", 2*time.Second, logger.NewNop())
}

func TestConsult_DecodesPayload(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/ConsultaIPVA", r.URL.Path)
		assert.Equal(t, "ABC1234", r.URL.Query().Get("license_plate"))
		assert.Equal(t, "12345678900", r.URL.Query().Get("renavam"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"IPVAs":{"IPVA":[{"Valor":136569,"Cota":7,"Exercicio":2021}]}}`))
	})

	payload, err := client.Consult(context.Background(), "ConsultaIPVA", "ABC1234", "12345678900")
	require.NoError(t, err)

	items := payload["IPVAs"].(map[string]any)["IPVA"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "136569", fmt.Sprint(items[0].(map[string]any)["Valor"]))
}

func TestConsult_Latin1Body(t *testing.T) {
	body, err := charmap.ISO8859_1.NewEncoder().String(`{"Multas":{"Multa":[{"DescricaoEnquadramento":"Sinalização"}]}}`)
	require.NoError(t, err)

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=ISO-8859-1")
		_, _ = w.Write([]byte(body))
	})

	payload, err := client.Consult(context.Background(), "ConsultaMultas", "ABC1234", "12345678900")
	require.NoError(t, err)

	item := payload["Multas"].(map[string]any)["Multa"].([]any)[0].(map[string]any)
	assert.Equal(t, "Sinalização", item["DescricaoEnquadramento"])
}

func TestConsult_EmptyAndNullBodies(t *testing.T) {
	for _, body := range []string{"", "null", "{}"} {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(body))
		})

		payload, err := client.Consult(context.Background(), "ConsultaDPVAT", "ABC1234", "12345678900")
		require.NoError(t, err, body)
		assert.Empty(t, payload, body)
		assert.NotNil(t, payload, body)
	}
}

func TestConsult_StatusError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("manutenção"))
	})

	_, err := client.Consult(context.Background(), "ConsultaMultas", "ABC1234", "12345678900")

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
	assert.Equal(t, "ConsultaMultas", statusErr.Method)
}

func TestConsult_InvalidJSON(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[1,2,3]`))
	})

	_, err := client.Consult(context.Background(), "ConsultaLicenciamento", "ABC1234", "12345678900")
	assert.Error(t, err)
}

func TestConsult_CanceledContext(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not be sent")
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Consult(ctx, "ConsultaMultas", "ABC1234", "12345678900")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConsult_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer server.Close()
	client := NewClient(server.URL, 50*time.Millisecond, logger.NewNop())

	_, err := client.Consult(context.Background(), "ConsultaMultas", "ABC1234", "12345678900")
	assert.Error(t, err)
}

func TestConsult_MissingBaseURL(t *testing.T) {
	client := NewClient("", 0, nil)

	_, err := client.Consult(context.Background(), "ConsultaMultas", "ABC1234", "12345678900")
	assert.ErrorIs(t, err, ErrEmptyBaseURL)
	assert.Equal(t, defaultTimeout, client.Timeout)
}

func TestConsult_ReturnsOnCancelWhileWaiting(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	t.Cleanup(server.Close)
	t.Cleanup(func() { close(release) })
	client := NewClient(server.URL, 10*time.Second, logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	start := time.Now()
	_, err := client.Consult(ctx, "ConsultaIPVA", "ABC1234", "12345678900")

	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), 2*time.Second)
}
