package jet_test

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/jet-merchant-client/internal/jet"
)

func TestClassifyStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code int
		want jet.StatusClass
	}{
		{100, jet.ClassOther},
		{199, jet.ClassOther},
		{200, jet.ClassSuccess},
		{204, jet.ClassSuccess},
		{299, jet.ClassSuccess},
		{301, jet.ClassOther},
		{400, jet.ClassClientError},
		{404, jet.ClassClientError},
		{499, jet.ClassClientError},
		{500, jet.ClassServerError},
		{503, jet.ClassServerError},
		{599, jet.ClassServerError},
		{600, jet.ClassOther},
	}

	for _, tt := range tests {
		t.Run(strconv.Itoa(tt.code), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, jet.ClassifyStatus(tt.code))
		})
	}
}

func TestResponse_Predicates(t *testing.T) {
	t.Parallel()

	resp := jet.NewResponse(http.StatusServiceUnavailable, nil, []byte("Service Unavailable"))

	assert.True(t, resp.IsServerError())
	assert.False(t, resp.IsClientError())
	assert.False(t, resp.IsSuccess())
	assert.Equal(t, "Service Unavailable", resp.Content())
	assert.NotNil(t, resp.Header())
}

func TestResponse_JSON(t *testing.T) {
	t.Parallel()

	resp := jet.NewResponse(http.StatusOK, nil, []byte(`{"sku_urls":["merchant-skus/a"]}`))

	obj, err := resp.JSONObject()
	require.NoError(t, err)
	assert.Equal(t, []any{"merchant-skus/a"}, obj["sku_urls"])

	var decoded struct {
		SKUURLs []string `json:"sku_urls"`
	}
	require.NoError(t, resp.Decode(&decoded))
	assert.Equal(t, []string{"merchant-skus/a"}, decoded.SKUURLs)
}

func TestResponse_JSONInvalidBody(t *testing.T) {
	t.Parallel()

	resp := jet.NewResponse(http.StatusServiceUnavailable, nil, []byte("<html>down</html>"))

	_, err := resp.JSON()
	require.ErrorIs(t, err, jet.ErrInvalidResponseBody)

	// The failure is memoized.
	_, again := resp.JSON()
	assert.Same(t, err, again)

	// Raw access still works.
	assert.Equal(t, "<html>down</html>", resp.Content())
	assert.Equal(t, []byte("<html>down</html>"), resp.Bytes())
}

func TestResponse_JSONObjectRejectsArray(t *testing.T) {
	t.Parallel()

	resp := jet.NewResponse(http.StatusOK, nil, []byte(`[1,2]`))

	_, err := resp.JSONObject()
	require.ErrorIs(t, err, jet.ErrInvalidResponseBody)
}

func TestResponse_BytesIsCopy(t *testing.T) {
	t.Parallel()

	resp := jet.NewResponse(http.StatusOK, nil, []byte("abc"))
	b := resp.Bytes()
	b[0] = 'z'

	assert.Equal(t, "abc", resp.Content())
}

func TestResponse_Err(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, jet.NewResponse(http.StatusCreated, nil, nil).Err())
	})

	t.Run("error messages", func(t *testing.T) {
		t.Parallel()

		resp := jet.NewResponse(http.StatusBadRequest, nil,
			[]byte(`{"errors":["product_title is required","brand too long"]}`))

		err := resp.Err()
		var apiErr *jet.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		assert.Equal(t, []string{"product_title is required", "brand too long"}, apiErr.Messages)
		assert.Contains(t, err.Error(), "product_title is required; brand too long")
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		err := jet.NewResponse(http.StatusNotFound, nil, []byte("missing")).Err()
		assert.True(t, jet.IsNotFound(err))
		assert.Contains(t, err.Error(), "missing")
	})
}
