package graphql

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testOp = Operation{Name: "GetThing", Document: "query GetThing($id: ID!) { thing(id: $id) { id name } }"}

type thingData struct {
	Thing struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"thing"`
}

type recordingObserver struct {
	mu    sync.Mutex
	kinds []string
}

func (o *recordingObserver) ObserveOperation(operation, kind string, elapsed time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.kinds = append(o.kinds, kind)
}

func TestDoDecodesDataAndSendsToken(t *testing.T) {
	var got request
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"thing":{"id":"7","name":"Choir"}}}`))
	}))
	defer srv.Close()

	obs := &recordingObserver{}
	c := NewClient(srv.URL, WithObserver(obs))

	var out thingData
	err := c.Do(WithToken(context.Background(), "tok"), testOp, map[string]any{"id": "7"}, &out)

	require.NoError(t, err)
	assert.Equal(t, "Choir", out.Thing.Name)
	assert.Equal(t, "Bearer tok", auth)
	assert.Equal(t, "GetThing", got.OperationName)
	assert.Equal(t, "7", got.Variables["id"])
	assert.Equal(t, []string{""}, obs.kinds)
}

func TestDoWithoutTokenSendsNoAuthorization(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write([]byte(`{"data":null}`))
	}))
	defer srv.Close()

	require.NoError(t, NewClient(srv.URL).Do(context.Background(), testOp, nil, nil))
}

func TestDoServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":null,"errors":[{"message":"Phone already registered","extensions":{"code":"BAD_USER_INPUT"}},{"message":"second"}]}`))
	}))
	defer srv.Close()

	obs := &recordingObserver{}
	err := NewClient(srv.URL, WithObserver(obs)).Do(context.Background(), testOp, nil, nil)

	var serverErr *ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Len(t, serverErr.Errors, 2)
	assert.Equal(t, "BAD_USER_INPUT", serverErr.Code())
	assert.Equal(t, "Phone already registered", Message(err))
	assert.Equal(t, []string{"server"}, obs.kinds)
}

func TestDoServerErrorOnNon200StillStructured(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"errors":[{"message":"Variable \"$id\" is required"}]}`))
	}))
	defer srv.Close()

	err := NewClient(srv.URL).Do(context.Background(), testOp, nil, nil)

	var serverErr *ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, http.StatusBadRequest, serverErr.StatusCode)
}

func TestDoTransportErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "bad gateway with html body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				w.Write([]byte("<html>bad gateway</html>"))
			},
		},
		{
			name: "invalid json on 200",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("{not json"))
			},
		},
		{
			name: "500 with empty errors",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"data":null}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			err := NewClient(srv.URL).Do(context.Background(), testOp, nil, &thingData{})

			var transportErr *TransportError
			require.ErrorAs(t, err, &transportErr)
			assert.Equal(t, "transport", Kind(err))
			assert.NotEmpty(t, Message(err))
		})
	}
}

func TestDoNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	err := NewClient(url, WithTimeout(time.Second)).Do(context.Background(), testOp, nil, nil)

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Zero(t, transportErr.StatusCode)
}

func TestMessageFallsBackToPlainError(t *testing.T) {
	assert.Equal(t, "", Message(nil))
	assert.Equal(t, "boom", Message(errors.New("boom")))
	assert.Equal(t, "other", Kind(errors.New("boom")))

	wrapped := &ServerError{Operation: "X", Errors: []ErrorMessage{{Message: "  "}, {Message: "real"}}}
	assert.Equal(t, "real", Message(wrapped))
}
