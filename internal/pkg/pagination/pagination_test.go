package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paramsFor(t *testing.T, target string) *Params {
	t.Helper()

	var params *Params
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		params = GetParams(c)
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	require.NoError(t, err)
	resp.Body.Close()
	require.NotNil(t, params)
	return params
}

func TestGetParamsDefaults(t *testing.T) {
	params := paramsFor(t, "/")

	assert.Equal(t, 1, params.Page)
	assert.Equal(t, DefaultLimit, params.Limit)
	assert.Equal(t, 0, params.Offset)
}

func TestGetParamsExplicit(t *testing.T) {
	params := paramsFor(t, "/?page=3&limit=25")

	assert.Equal(t, 3, params.Page)
	assert.Equal(t, 25, params.Limit)
	assert.Equal(t, 50, params.Offset)
}

func TestGetParamsClampsBadInput(t *testing.T) {
	params := paramsFor(t, "/?page=-1&limit=0")
	assert.Equal(t, 1, params.Page)
	assert.Equal(t, DefaultLimit, params.Limit)

	params = paramsFor(t, "/?page=abc&limit=9999")
	assert.Equal(t, 1, params.Page)
	assert.Equal(t, MaxLimit, params.Limit)
}

func TestGetMeta(t *testing.T) {
	meta := GetMeta(&Params{Page: 2, Limit: 10}, 35)

	assert.Equal(t, 4, meta.TotalPages)
	assert.Equal(t, int64(35), meta.Total)
	assert.True(t, meta.HasNext)
	assert.True(t, meta.HasPrev)

	meta = GetMeta(&Params{Page: 1, Limit: 10}, 5)
	assert.Equal(t, 1, meta.TotalPages)
	assert.False(t, meta.HasNext)
	assert.False(t, meta.HasPrev)
}
