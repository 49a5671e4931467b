package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testEndpoint = "https://hooks.example.com/intake"

func newMockedClient(t *testing.T, opts ...Option) *Client {
	t.Helper()

	httpClient := &http.Client{}
	httpmock.ActivateNonDefault(httpClient)
	t.Cleanup(httpmock.DeactivateAndReset)

	client, err := New(testEndpoint, append([]Option{WithHTTPClient(httpClient)}, opts...)...)
	require.NoError(t, err)
	return client
}

func TestNew_RequiresEndpoint(t *testing.T) {
	_, err := New("  ")
	assert.Error(t, err)
}

func TestPost_SendsJSONOnce(t *testing.T) {
	client := newMockedClient(t)

	var received map[string]string
	httpmock.RegisterResponder(http.MethodPost, testEndpoint, func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
		if err := json.NewDecoder(req.Body).Decode(&received); err != nil {
			return nil, err
		}
		return httpmock.NewJsonResponse(http.StatusOK, map[string]any{"message": "ok"})
	})

	resp, err := client.Post(context.Background(), map[string]string{"project_name": "Launch"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", resp.Message())
	assert.Equal(t, map[string]string{"project_name": "Launch"}, received)
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestPost_Non2xxCarriesStatusAndMessage(t *testing.T) {
	client := newMockedClient(t)
	httpmock.RegisterResponder(http.MethodPost, testEndpoint,
		httpmock.NewStringResponder(http.StatusBadRequest, `{"message":"bad payload"}`))

	_, err := client.Post(context.Background(), map[string]string{})
	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Equal(t, http.StatusBadRequest, transportErr.StatusCode)
	assert.Equal(t, "bad payload", transportErr.Message)
	assert.Equal(t, "HTTP error! status: 400, message: bad payload", transportErr.Error())
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestPost_Non2xxMessageIsPlainText(t *testing.T) {
	client := newMockedClient(t)
	httpmock.RegisterResponder(http.MethodPost, testEndpoint,
		httpmock.NewStringResponder(http.StatusConflict, `{"message":"<b>R&amp;D</b> already <script>x()</script>registered"}`))

	_, err := client.Post(context.Background(), map[string]string{})
	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Equal(t, "R&D already registered", transportErr.Message)
}

func TestPost_Non2xxMarkupOnlyMessageFallsBack(t *testing.T) {
	client := newMockedClient(t)
	httpmock.RegisterResponder(http.MethodPost, testEndpoint,
		httpmock.NewStringResponder(http.StatusBadGateway, `{"message":"<script>x()</script>"}`))

	_, err := client.Post(context.Background(), map[string]string{})
	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Equal(t, UnknownMessage, transportErr.Message)
}

func TestPost_Non2xxWithoutMessageFallsBack(t *testing.T) {
	client := newMockedClient(t, WithUnknownMessage("未知錯誤"))
	httpmock.RegisterResponder(http.MethodPost, testEndpoint,
		httpmock.NewStringResponder(http.StatusInternalServerError, "<html>oops</html>"))

	_, err := client.Post(context.Background(), map[string]string{})
	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Equal(t, http.StatusInternalServerError, transportErr.StatusCode)
	assert.Equal(t, "未知錯誤", transportErr.Message)
}

func TestPost_NonJSONSuccessIsTransportError(t *testing.T) {
	client := newMockedClient(t)
	httpmock.RegisterResponder(http.MethodPost, testEndpoint,
		httpmock.NewStringResponder(http.StatusOK, "Accepted"))

	_, err := client.Post(context.Background(), map[string]string{})
	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.False(t, transportErr.HasStatus())
	assert.Error(t, transportErr.Unwrap())
}

func TestPost_NetworkFailure(t *testing.T) {
	client := newMockedClient(t)
	httpmock.RegisterResponder(http.MethodPost, testEndpoint,
		httpmock.NewErrorResponder(errors.New("connection refused")))

	_, err := client.Post(context.Background(), map[string]string{})
	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Zero(t, transportErr.StatusCode)
	assert.Contains(t, transportErr.Error(), "connection refused")
}

func TestPost_EncodeFailureIsNotTransportError(t *testing.T) {
	client := newMockedClient(t)

	_, err := client.Post(context.Background(), map[string]any{"bad": make(chan int)})
	require.Error(t, err)
	var transportErr *TransportError
	assert.False(t, errors.As(err, &transportErr))
	assert.Equal(t, 0, httpmock.GetTotalCallCount())
}

func TestPost_AgainstHTTPTestServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if r.Method != http.MethodPost || r.Header.Get("X-Source") != "formrelay" {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"echo":` + string(body) + `}`))
	}))
	t.Cleanup(server.Close)

	client, err := New(server.URL, WithHeader("X-Source", "formrelay"))
	require.NoError(t, err)

	resp, err := client.Post(context.Background(), map[string]string{"a": "b"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": "b"}, resp.Body["echo"])
}
